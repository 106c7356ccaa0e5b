package render

import (
	"fmt"
	"mime"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/util"
)

const (
	multipartBoundary = "curlparse-boundary"
	headerAuth        = "Authorization"
	headerContentType = "Content-Type"
)

// RenderHTTP writes results as a .http request file. The header comment lists
// the source commands and every warning raised while parsing them.
func RenderHTTP(results []*curl.Result, headerComment string) string {
	var b strings.Builder

	renderHeader(&b, buildHeader(headerComment, results))

	idx := 0
	for _, res := range results {
		if res == nil || res.Request == nil {
			continue
		}
		if idx > 0 {
			b.WriteString("\n")
		}
		renderRequest(&b, res.Request)
		idx++
	}

	return b.String()
}

func buildHeader(base string, results []*curl.Result) string {
	var lines []string
	lines = appendLines(lines, base)

	var src, warn []string
	for _, res := range results {
		if res == nil {
			continue
		}
		src = append(src, res.Normalized)
		for _, w := range res.Warnings {
			warn = append(warn, fmt.Sprintf("Warning: %s: %s", w.Code, w.Message))
		}
	}
	if src = util.DedupeNonEmptyStrings(src); len(src) > 0 {
		lines = append(lines, "Source:")
		lines = append(lines, src...)
	}
	lines = append(lines, util.DedupeNonEmptyStrings(warn)...)
	return strings.Join(lines, "\n")
}

func appendLines(lines []string, raw string) []string {
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

func renderHeader(b *strings.Builder, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		b.WriteString("# ")
		b.WriteString(strings.TrimSpace(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func renderRequest(b *strings.Builder, req *curl.Request) {
	line := reqLine(req)
	b.WriteString("### ")
	b.WriteString(line)
	b.WriteString("\n")

	renderAuth(b, req.Options.BasicAuth)
	renderSettings(b, req.Options)

	b.WriteString(line)
	b.WriteString("\n")

	body, contentType := renderBody(req)
	renderHeaders(b, req)
	if contentType != "" {
		if _, ok := req.HeaderValue(headerContentType); !ok {
			b.WriteString(headerContentType)
			b.WriteString(": ")
			b.WriteString(contentType)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if strings.TrimSpace(body) != "" {
		b.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			b.WriteString("\n")
		}
	}
}

func reqLine(req *curl.Request) string {
	m := strings.ToUpper(strings.TrimSpace(req.Method))
	if m == "" {
		m = curl.MethodGet
	}
	return fmt.Sprintf("%s %s", m, strings.TrimSpace(req.URL))
}

func renderAuth(b *strings.Builder, auth *curl.BasicAuth) {
	if auth == nil {
		return
	}
	b.WriteString("# @auth basic ")
	b.WriteString(strings.TrimSpace(auth.User))
	b.WriteString(" ")
	b.WriteString(strings.TrimSpace(auth.Password))
	b.WriteString("\n")
}

func renderSettings(b *strings.Builder, opts curl.Options) {
	set := []struct {
		key string
		on  bool
	}{
		{key: "follow-redirects", on: opts.FollowRedirects},
		{key: "insecure", on: opts.InsecureTLS},
		{key: "compressed", on: opts.Compressed},
	}
	for _, s := range set {
		if !s.on {
			continue
		}
		b.WriteString("# @setting ")
		b.WriteString(s.key)
		b.WriteString(" true\n")
	}
}

// renderHeaders keeps header order. The Authorization header produced by
// -u is covered by the @auth directive and is skipped.
func renderHeaders(b *strings.Builder, req *curl.Request) {
	for _, h := range req.Headers {
		if req.Options.BasicAuth != nil &&
			strings.EqualFold(h.Key, headerAuth) &&
			strings.HasPrefix(h.Value, "Basic ") {
			continue
		}
		if !h.Enabled {
			b.WriteString("# ")
		}
		b.WriteString(h.Key)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString("\n")
	}
	if c := req.Cookies; c != nil && strings.TrimSpace(c.Raw) != "" {
		b.WriteString("Cookie: ")
		b.WriteString(strings.TrimSpace(c.Raw))
		b.WriteString("\n")
	}
}

// renderBody returns the body text and the Content-Type it needs when the
// request does not already carry one.
func renderBody(req *curl.Request) (string, string) {
	body := req.Body
	if body == nil {
		return "", ""
	}
	switch body.Kind {
	case curl.BodyURLEncoded:
		return encodeForm(body.URLEncodedItems), "application/x-www-form-urlencoded"
	case curl.BodyMultipart:
		boundary := boundaryOf(req)
		return encodeMultipart(body.MultipartItems, boundary), "multipart/form-data; boundary=" + boundary
	default:
		if body.Text == nil {
			return "", ""
		}
		return *body.Text, ""
	}
}

func encodeForm(items []curl.FormItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if !it.Enabled {
			continue
		}
		parts = append(parts, url.QueryEscape(it.Key)+"="+url.QueryEscape(it.Value))
	}
	return strings.Join(parts, "&")
}

func boundaryOf(req *curl.Request) string {
	if ct, ok := req.HeaderValue(headerContentType); ok {
		if _, params, err := mime.ParseMediaType(ct); err == nil && params["boundary"] != "" {
			return params["boundary"]
		}
	}
	return multipartBoundary
}

// encodeMultipart writes form parts; file parts reference their path with
// the "< path" include syntax.
func encodeMultipart(items []curl.MultipartItem, boundary string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("--")
		b.WriteString(boundary)
		b.WriteString("\n")
		if it.Kind == curl.MultipartFile {
			fmt.Fprintf(&b, "Content-Disposition: form-data; name=%q; filename=%q\n\n", it.Key, filepath.Base(it.Path))
			b.WriteString("< ")
			b.WriteString(it.Path)
			b.WriteString("\n")
			continue
		}
		fmt.Fprintf(&b, "Content-Disposition: form-data; name=%q\n\n", it.Key)
		b.WriteString(it.Value)
		b.WriteString("\n")
	}
	if len(items) > 0 {
		b.WriteString("--")
		b.WriteString(boundary)
		b.WriteString("--\n")
	}
	return b.String()
}
