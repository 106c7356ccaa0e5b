package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/curlparse/internal/config"
	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/errdef"
	"github.com/unkn0wn-root/curlparse/internal/history"
	"github.com/unkn0wn-root/curlparse/internal/render"
	"github.com/unkn0wn-root/curlparse/internal/telemetry"
)

const (
	sourceArg       = "arg"
	sourceFile      = "file"
	sourceClipboard = "clipboard"
	sourceStdin     = "stdin"
)

type cliOptions struct {
	command     string
	file        string
	arg         string
	clipboard   bool
	format      string
	out         string
	overwrite   bool
	all         bool
	mask        bool
	diff        bool
	color       string
	style       string
	width       int
	history     bool
	historyList bool
	historyDel  string
	saveConfig  bool
}

type app struct {
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	readClipboard func() (string, error)
	settings      config.Settings
	settingsFile  config.SettingsHandle
	inst          telemetry.Instrumenter
	now           func() time.Time
	version       string
}

func (a *app) run(ctx context.Context, opts cliOptions) error {
	format, ok := config.ParseOutputFormat(opts.format)
	if !ok {
		return errdef.New(errdef.CodeConfig, "unknown output format %q", opts.format)
	}
	mode, ok := config.ParseColorMode(opts.color)
	if !ok {
		return errdef.New(errdef.CodeConfig, "unknown color mode %q", opts.color)
	}

	if opts.saveConfig {
		return a.saveSettings(format, mode, opts)
	}
	if opts.historyList {
		return a.listHistory(opts.arg)
	}
	if id := strings.TrimSpace(opts.historyDel); id != "" {
		return a.deleteHistory(id)
	}

	src, source, err := a.readInput(opts)
	if err != nil {
		return err
	}

	results, err := a.parse(ctx, src, source, opts.all)
	if err != nil {
		return err
	}

	errStyles := render.NewStyles(a.stderr, profileFor(a.stderr, mode))
	for _, res := range results {
		if ws := render.Warnings(res.Warnings, errStyles); ws != "" {
			fmt.Fprint(a.stderr, ws)
		}
		if opts.diff {
			fmt.Fprint(a.stderr, render.NormalizationDiff(res))
		}
	}

	if opts.history {
		if err := a.record(results, opts.mask); err != nil {
			return err
		}
	}

	outProfile := termenv.Ascii
	if opts.out == "" {
		outProfile = profileFor(a.stdout, mode)
	}
	content, err := render.Render(results, render.Options{
		Format:        format,
		Mask:          opts.mask,
		HeaderComment: fmt.Sprintf("Generated by curlparse %s", a.version),
		Width:         opts.width,
		Styles:        render.NewStyles(a.stdout, outProfile),
	})
	if err != nil {
		return err
	}

	if opts.out != "" {
		if err := render.WriteFile(ctx, content, opts.out, opts.overwrite); err != nil {
			return err
		}
		fmt.Fprintf(a.stderr, "Wrote %s\n", opts.out)
		return nil
	}
	if format == config.OutputFormatSummary {
		_, err := io.WriteString(a.stdout, content)
		return err
	}
	return render.Highlight(a.stdout, content, format, opts.style, outProfile)
}

// readInput picks the first configured source: -c, -file or the positional
// argument, the clipboard, then stdin.
func (a *app) readInput(opts cliOptions) (string, string, error) {
	switch {
	case strings.TrimSpace(opts.command) != "":
		return opts.command, sourceArg, nil
	case opts.file != "" || opts.arg != "":
		path := opts.file
		if path == "" {
			path = opts.arg
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return "", "", errdef.Wrap(errdef.CodeFilesystem, err, "read %s", path)
		}
		return string(data), sourceFile, nil
	case opts.clipboard:
		if a.readClipboard == nil {
			return "", "", errdef.New(errdef.CodeUnknown, "clipboard is not available")
		}
		text, err := a.readClipboard()
		if err != nil {
			return "", "", errdef.Wrap(errdef.CodeUnknown, err, "read clipboard")
		}
		return text, sourceClipboard, nil
	default:
		if a.stdin == nil {
			return "", "", errdef.New(errdef.CodeParse, "no input")
		}
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return "", "", errdef.Wrap(errdef.CodeFilesystem, err, "read stdin")
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", "", errdef.New(errdef.CodeParse, "no input")
		}
		return string(data), sourceStdin, nil
	}
}

// parse records one span per command. With all set, every command in src is
// parsed and the first failure aborts the run.
func (a *app) parse(ctx context.Context, src, source string, all bool) ([]*curl.Result, error) {
	inst := a.inst
	if inst == nil {
		inst = telemetry.Noop()
	}
	traced := func(in string) (*curl.Result, error) {
		_, span := inst.Start(ctx, telemetry.ParseStart{Source: source, Input: in})
		res, err := curl.Parse(in)
		span.End(res, err)
		return res, err
	}

	if all {
		return curl.ParseAllWith(src, traced)
	}
	res, err := traced(src)
	if err != nil {
		return nil, err
	}
	return []*curl.Result{res}, nil
}

func (a *app) store() *history.Store {
	return history.NewStore(a.settings.HistoryFile(), a.settings.History.MaxEntries)
}

func (a *app) record(results []*curl.Result, mask bool) error {
	st := a.store()
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	for _, res := range results {
		if mask {
			res = render.Mask(res)
		}
		if err := st.Append(history.NewEntry(res, now())); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) listHistory(filter string) error {
	st := a.store()
	if err := st.Load(); err != nil {
		return err
	}
	entries := st.ByURL(filter)
	fmt.Fprintf(a.stderr, "History: %s (%d entries)\n", st.Path(), len(entries))
	for _, e := range entries {
		line := fmt.Sprintf(
			"%s  %s  %-7s %s",
			e.ID,
			e.ParsedAt.Format(time.RFC3339),
			e.Method,
			e.URL,
		)
		if n := len(e.Warnings); n > 0 {
			line += fmt.Sprintf("  (%d warnings)", n)
		}
		fmt.Fprintln(a.stdout, line)
	}
	return nil
}

// saveSettings persists the output and history flags as the new defaults.
func (a *app) saveSettings(format config.OutputFormat, mode config.ColorMode, opts cliOptions) error {
	settings := a.settings
	settings.Output.Format = format
	settings.Output.Color = mode
	if style := strings.TrimSpace(opts.style); style != "" {
		settings.Output.Style = style
	}
	settings.History.Enabled = opts.history
	if err := config.SaveSettings(settings, a.settingsFile); err != nil {
		return err
	}
	a.settings = settings
	path := a.settingsFile.Path
	if path == "" {
		path = "default location"
	}
	fmt.Fprintf(a.stderr, "Saved settings to %s\n", path)
	return nil
}

func (a *app) deleteHistory(id string) error {
	removed, err := a.store().Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return errdef.New(errdef.CodeHistory, "history entry %s not found", id)
	}
	fmt.Fprintf(a.stderr, "Deleted %s\n", id)
	return nil
}

// profileFor maps a color mode to a termenv profile for w. Auto mode honours
// NO_COLOR and CLICOLOR_FORCE and falls back to plain text off a terminal.
func profileFor(w io.Writer, mode config.ColorMode) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		return termenv.ANSI256
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}
