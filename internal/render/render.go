// Package render turns parse results into the output formats of the CLI.
package render

import (
	"bytes"
	"encoding/json"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/unkn0wn-root/curlparse/internal/config"
	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

type Options struct {
	Format config.OutputFormat
	// Mask replaces sensitive header, cookie and credential values.
	Mask bool
	// HeaderComment is prepended to http output as comment lines.
	HeaderComment string
	// Width caps summary values; zero means unlimited.
	Width  int
	Styles Styles
}

// Render encodes results in opts.Format. A single result is encoded as one
// document; several become a list (a "results" table for TOML).
func Render(results []*curl.Result, opts Options) (string, error) {
	if opts.Mask {
		masked := make([]*curl.Result, len(results))
		for i, res := range results {
			masked[i] = Mask(res)
		}
		results = masked
	}

	switch opts.Format {
	case config.OutputFormatJSON, "":
		return encodeJSON(pick(results))
	case config.OutputFormatYAML:
		return encodeYAML(pick(results))
	case config.OutputFormatTOML:
		if len(results) == 1 {
			return encodeTOML(results[0])
		}
		return encodeTOML(struct {
			Results []*curl.Result `toml:"results"`
		}{Results: results})
	case config.OutputFormatHTTP:
		return RenderHTTP(results, opts.HeaderComment), nil
	case config.OutputFormatSummary:
		return Summary(results, opts.Styles, opts.Width), nil
	default:
		return "", errdef.New(errdef.CodeRender, "unsupported output format %q", opts.Format)
	}
}

func pick(results []*curl.Result) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

func encodeJSON(v any) (string, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", errdef.Wrap(errdef.CodeRender, err, "encode json")
	}
	return buf.String(), nil
}

func encodeYAML(v any) (string, error) {
	buf := &bytes.Buffer{}
	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return "", errdef.Wrap(errdef.CodeRender, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return "", errdef.Wrap(errdef.CodeRender, err, "encode yaml")
	}
	return buf.String(), nil
}

// encodeTOML goes through the JSON form so bodies keep their one payload
// field per kind; go-toml has no per-type marshal hook.
func encodeTOML(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errdef.Wrap(errdef.CodeRender, err, "encode toml")
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return "", errdef.Wrap(errdef.CodeRender, err, "encode toml")
	}
	data, err := toml.Marshal(dropNulls(generic))
	if err != nil {
		return "", errdef.Wrap(errdef.CodeRender, err, "encode toml")
	}
	out := string(data)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func dropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			if val == nil {
				delete(t, k)
				continue
			}
			t[k] = dropNulls(val)
		}
		return t
	case []any:
		for i, val := range t {
			t[i] = dropNulls(val)
		}
		return t
	default:
		return v
	}
}
