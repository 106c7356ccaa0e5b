package render

import (
	"sort"
	"strings"

	"github.com/unkn0wn-root/curlparse/internal/curl"
)

const (
	maskedValue = "****"
	// shorter secrets are masked in structured fields but not searched for in
	// the raw command text.
	minRedactLen = 3
)

// Mask returns a copy of res with sensitive values replaced. The raw and
// normalized command text get the same values redacted.
func Mask(res *curl.Result) *curl.Result {
	if res == nil || res.Request == nil {
		return res
	}
	out := *res
	req := *res.Request
	var secrets []string

	req.Headers = make([]curl.Header, len(res.Request.Headers))
	for i, h := range res.Request.Headers {
		if h.Sensitive && h.Value != "" {
			secrets = append(secrets, h.Value)
			h.Value = maskedValue
		}
		req.Headers[i] = h
	}

	if c := res.Request.Cookies; c != nil {
		cp := *c
		cp.Items = make([]curl.CookieItem, len(c.Items))
		for i, item := range c.Items {
			if item.Sensitive && item.Value != "" {
				secrets = append(secrets, item.Value)
				item.Value = maskedValue
			}
			cp.Items[i] = item
		}
		cp.Raw = redact(c.Raw, secrets)
		req.Cookies = &cp
	}

	if ba := res.Request.Options.BasicAuth; ba != nil {
		if ba.Password != "" {
			secrets = append(secrets, ba.Password)
		}
		req.Options.BasicAuth = &curl.BasicAuth{User: ba.User, Password: maskedValue}
	}

	out.Request = &req
	out.Original = redact(res.Original, secrets)
	out.Normalized = redact(res.Normalized, secrets)
	return &out
}

func redact(s string, secrets []string) string {
	if s == "" || len(secrets) == 0 {
		return s
	}
	sorted := append([]string(nil), secrets...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	for _, v := range sorted {
		if len(v) < minRedactLen {
			continue
		}
		s = strings.ReplaceAll(s, v, maskedValue)
	}
	return s
}
