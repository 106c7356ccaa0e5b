package curl

import (
	"encoding/base64"
	"strings"

	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

// ErrNotCurlCommand is returned when the input holds no curl invocation.
var ErrNotCurlCommand = errdef.New(errdef.CodeParse, "not a curl command")

// Parse turns text containing a curl command into a structured request.
// Unsupported constructs become warnings; the only error is input that does
// not resolve to a command starting with `curl`.
func Parse(input string) (*Result, error) {
	cmd, ok := ExtractCommand(NormalizeLineContinuations(input))
	if !ok {
		return nil, errdef.Wrap(errdef.CodeParse, ErrNotCurlCommand, "no curl command found")
	}

	normalized := collapseWhitespace(cmd)
	tok := Tokenize(normalized)
	if len(tok) == 0 || tok[0].Value != cmdCurl {
		first := ""
		if len(tok) > 0 {
			first = tok[0].Value
		}
		return nil, errdef.Wrap(errdef.CodeParse, ErrNotCurlCommand, "command starts with %q", first)
	}

	warn := newWarningCollector()
	d := newDraft(warn)
	d.apply(parseCmd(tok))

	return &Result{
		Original:   input,
		Normalized: normalized,
		Request:    d.request(),
		Warnings:   warn.List(),
	}, nil
}

func buildBasicAuthHeader(user, pass string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
	return authHeaderBasicPrefix + encoded
}

// splitHeader splits "Name: value" on the first colon; a header without a
// colon keeps its name and gets an empty value.
func splitHeader(header string) (string, string) {
	name, value, _ := strings.Cut(header, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	return name, strings.TrimSpace(value)
}
