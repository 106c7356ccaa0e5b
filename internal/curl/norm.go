package curl

import (
	"strings"
)

// draft is the mutable request state threaded through one parse.
type draft struct {
	method  string
	getFlag bool
	headers []Header
	cookies *Cookies
	body    *bodyBuilder
	urls    []string
	opts    Options
	warn    *WarningCollector
}

func newDraft(warn *WarningCollector) *draft {
	return &draft{
		method: MethodGet,
		body:   newBodyBuilder(),
		warn:   warn,
	}
}

func (d *draft) apply(cmd *Cmd) {
	for _, it := range cmd.Items {
		for _, tok := range it.Expand {
			d.warn.Addf(WarnShellExpansion, warnShellFormat, tok)
		}
		switch {
		case it.empty():
		case it.IsOpt:
			applyOpt(d, it.Opt)
		default:
			d.urls = append(d.urls, it.Pos)
		}
	}
}

// addHeader handles a raw "Name: value" argument. The first Cookie header
// becomes the request cookies unless -b already set them; later cookie
// sources are dropped.
func (d *draft) addHeader(raw string) {
	name, value := splitHeader(raw)
	if name == "" {
		return
	}
	if strings.EqualFold(name, headerCookie) {
		if d.cookies == nil {
			d.cookies = parseCookies(value, CookieSourceHeader)
		}
		return
	}
	d.appendHeader(name, value)
}

func (d *draft) appendHeader(name, value string) {
	d.headers = append(d.headers, Header{
		Key:       name,
		Value:     value,
		Enabled:   true,
		Sensitive: sensitiveHeaders.Has(name),
	})
}

func (d *draft) ensureHeader(name, value string) {
	if _, ok := lookupHeader(d.headers, name); ok {
		return
	}
	d.appendHeader(name, value)
}

func (d *draft) request() *Request {
	req := &Request{
		Method:  d.method,
		Headers: d.headers,
		Cookies: d.cookies,
		Options: d.opts,
	}
	if req.Headers == nil {
		req.Headers = []Header{}
	}

	req.URL = resolveURL(d.urls)
	req.Query = ExtractQueryParams(req.URL)
	if dec, ok := decodeURL(req.URL); ok {
		req.URLDecoded = dec
	}

	if d.body.has && req.Method == MethodGet && !d.getFlag {
		req.Method = MethodPost
	}
	req.Body = d.body.build(req.Headers)
	return req
}

// resolveURL picks the last http(s) candidate, else the last candidate of any
// shape, mirroring curl's use of the final non-option argument.
func resolveURL(cands []string) string {
	for i := len(cands) - 1; i >= 0; i-- {
		if isHTTPURL(cands[i]) && !strings.HasPrefix(cands[i], "-") {
			return cands[i]
		}
	}
	for i := len(cands) - 1; i >= 0; i-- {
		if !strings.HasPrefix(cands[i], "-") {
			return cands[i]
		}
	}
	return ""
}

func isHTTPURL(v string) bool {
	lower := strings.ToLower(v)
	return strings.HasPrefix(lower, schemeHTTP) || strings.HasPrefix(lower, schemeHTTPS)
}

func parseCookies(raw string, src CookieSource) *Cookies {
	c := &Cookies{Raw: raw, Items: []CookieItem{}, Source: src}
	for _, part := range strings.Split(raw, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		c.Items = append(c.Items, CookieItem{
			Key:       key,
			Value:     strings.TrimSpace(value),
			Sensitive: src == CookieSourceFlag || sensitiveCookie(key),
		})
	}
	return c
}

func sensitiveCookie(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range sensitiveCookieHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func lookupHeader(headers []Header, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Key, name) {
			return h.Value, true
		}
	}
	return "", false
}
