package curl

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// ExtractQueryParams returns the decoded query parameters of rawURL in order.
// Unparseable URLs fall back to a manual split on '?' and '&'.
func ExtractQueryParams(rawURL string) []QueryParam {
	if u, err := url.Parse(rawURL); err == nil {
		return splitQuery(u.RawQuery, url.QueryUnescape)
	}

	_, q, found := strings.Cut(rawURL, "?")
	if !found {
		return []QueryParam{}
	}
	q, _, _ = strings.Cut(q, "#")
	return splitQuery(q, url.PathUnescape)
}

func splitQuery(q string, decode func(string) (string, error)) []QueryParam {
	out := []QueryParam{}
	for _, part := range strings.Split(q, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		out = append(out, QueryParam{
			Key:     decodeOr(key, decode),
			Value:   decodeOr(value, decode),
			Enabled: true,
		})
	}
	return out
}

func decodeOr(v string, decode func(string) (string, error)) string {
	if out, err := decode(v); err == nil {
		return out
	}
	return v
}

// decodeURL percent-decodes rawURL and turns a punycode host into Unicode.
// ok is false when nothing changed.
func decodeURL(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	out := decodeOr(rawURL, url.PathUnescape)
	if u, err := url.Parse(rawURL); err == nil {
		if host := u.Hostname(); host != "" {
			if uni, err := idna.ToUnicode(host); err == nil && uni != host {
				out = strings.Replace(out, host, uni, 1)
			}
		}
	}
	return out, out != rawURL
}
