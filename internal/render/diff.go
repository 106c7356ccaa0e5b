package render

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/unkn0wn-root/curlparse/internal/curl"
)

// NormalizationDiff returns a unified diff from the raw input to the
// normalized command, or "" when they are identical.
func NormalizationDiff(res *curl.Result) string {
	if res == nil {
		return ""
	}
	return udiff.Unified("original", "normalized", withNewline(res.Original), withNewline(res.Normalized))
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
