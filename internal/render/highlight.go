package render

import (
	"io"

	"github.com/alecthomas/chroma/quick"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/curlparse/internal/config"
	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

// Highlight writes content to w with syntax colors matching format. Plain
// text is written when the profile has no colors or the format has no lexer.
func Highlight(w io.Writer, content string, format config.OutputFormat, style string, profile termenv.Profile) error {
	lexer := lexerFor(format)
	formatter := formatterFor(profile)
	if lexer == "" || formatter == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if style == "" {
		style = config.OutputStyleDefault
	}
	if err := quick.Highlight(w, content, lexer, formatter, style); err != nil {
		return errdef.Wrap(errdef.CodeRender, err, "highlight %s output", format)
	}
	return nil
}

func lexerFor(format config.OutputFormat) string {
	switch format {
	case config.OutputFormatJSON:
		return "json"
	case config.OutputFormatYAML:
		return "yaml"
	case config.OutputFormatTOML:
		return "toml"
	case config.OutputFormatHTTP:
		return "http"
	default:
		return ""
	}
}

func formatterFor(profile termenv.Profile) string {
	switch profile {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal"
	default:
		return ""
	}
}
