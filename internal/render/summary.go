package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/curlparse/internal/curl"
)

const ellipsis = "…"

// Styles holds the lipgloss styles of the summary table and warning lines.
// The zero value renders plain text.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles binds styles to w using the given color profile; termenv.Ascii
// disables color.
func NewStyles(w io.Writer, profile termenv.Profile) Styles {
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Label:   r.NewStyle().Foreground(lipgloss.Color("14")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

type row struct {
	label string
	value string
	muted bool
}

// Summary renders a two-column overview of each result. Label widths are
// measured in terminal cells so wide runes line up.
func Summary(results []*curl.Result, st Styles, width int) string {
	var b strings.Builder
	for i, res := range results {
		if res == nil || res.Request == nil {
			continue
		}
		if i > 0 {
			b.WriteString("\n")
		}
		req := res.Request
		b.WriteString(st.Title.Render(reqLine(req)))
		b.WriteString("\n")
		writeRows(&b, summaryRows(res), st, width)
	}
	return b.String()
}

func summaryRows(res *curl.Result) []row {
	req := res.Request
	rows := []row{{label: "URL", value: req.URL}}
	if req.URLDecoded != "" {
		rows = append(rows, row{label: "Decoded", value: req.URLDecoded})
	}
	for _, q := range req.Query {
		rows = append(rows, row{label: "Query", value: q.Key + "=" + q.Value})
	}
	for _, h := range req.Headers {
		rows = append(rows, row{label: "Header", value: h.Key + ": " + h.Value, muted: !h.Enabled})
	}
	if c := req.Cookies; c != nil {
		for _, item := range c.Items {
			rows = append(rows, row{label: "Cookie", value: item.Key + "=" + item.Value})
		}
	}
	rows = append(rows, bodyRows(req.Body)...)
	for _, opt := range optionNames(req.Options) {
		rows = append(rows, row{label: "Option", value: opt})
	}
	for _, w := range res.Warnings {
		rows = append(rows, row{label: "Warning", value: string(w.Code) + " " + w.Message})
	}
	return rows
}

func bodyRows(body *curl.Body) []row {
	if body == nil {
		return nil
	}
	label := "Body (" + string(body.Kind) + ")"
	switch body.Kind {
	case curl.BodyURLEncoded:
		rows := make([]row, 0, len(body.URLEncodedItems))
		for _, it := range body.URLEncodedItems {
			rows = append(rows, row{label: label, value: it.Key + "=" + it.Value})
		}
		return rows
	case curl.BodyMultipart:
		rows := make([]row, 0, len(body.MultipartItems))
		for _, it := range body.MultipartItems {
			if it.Kind == curl.MultipartFile {
				rows = append(rows, row{label: label, value: it.Key + "=@" + it.Path, muted: true})
				continue
			}
			rows = append(rows, row{label: label, value: it.Key + "=" + it.Value})
		}
		return rows
	default:
		if body.Text == nil {
			return nil
		}
		return []row{{label: label, value: oneLine(*body.Text)}}
	}
}

func optionNames(opts curl.Options) []string {
	var out []string
	if opts.FollowRedirects {
		out = append(out, "follow redirects")
	}
	if opts.InsecureTLS {
		out = append(out, "insecure TLS")
	}
	if opts.Compressed {
		out = append(out, "compressed")
	}
	if opts.BasicAuth != nil {
		out = append(out, "basic auth as "+opts.BasicAuth.User)
	}
	return out
}

func writeRows(b *strings.Builder, rows []row, st Styles, width int) {
	labelWidth := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r.label); w > labelWidth {
			labelWidth = w
		}
	}
	for _, r := range rows {
		value := r.value
		if width > 0 {
			value = runewidth.Truncate(value, width, ellipsis)
		}
		style := st.Label
		if r.label == "Warning" {
			style = st.Warning
		}
		b.WriteString("  ")
		b.WriteString(style.Render(runewidth.FillRight(r.label, labelWidth)))
		b.WriteString("  ")
		if r.muted {
			b.WriteString(st.Muted.Render(value))
		} else {
			b.WriteString(value)
		}
		b.WriteString("\n")
	}
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Warnings renders one line per warning for a diagnostic stream.
func Warnings(ws []curl.Warning, st Styles) string {
	var b strings.Builder
	for _, w := range ws {
		fmt.Fprintf(&b, "%s %s: %s\n", st.Warning.Render("warning"), w.Code, w.Message)
	}
	return b.String()
}
