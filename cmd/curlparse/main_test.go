package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/muesli/termenv"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/unkn0wn-root/curlparse/internal/config"
	"github.com/unkn0wn-root/curlparse/internal/curl"
	"github.com/unkn0wn-root/curlparse/internal/errdef"
	"github.com/unkn0wn-root/curlparse/internal/telemetry"
)

type testApp struct {
	*app
	out *bytes.Buffer
	err *bytes.Buffer
}

func newTestApp(t *testing.T, stdin string) testApp {
	t.Helper()
	settings := config.DefaultSettings()
	settings.History.Path = filepath.Join(t.TempDir(), "history.json")
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return testApp{
		app: &app{
			stdin:    strings.NewReader(stdin),
			stdout:   out,
			stderr:   errOut,
			settings: settings,
			inst:     telemetry.Noop(),
			now:      func() time.Time { return fixed },
			version:  "test",
		},
		out: out,
		err: errOut,
	}
}

func baseOptions() cliOptions {
	return cliOptions{format: "json", color: "never"}
}

func TestRunJSONFromCommand(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.command = `curl -k https://api.example.com/items -d '{"a":1}'`

	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	var res curl.Result
	if err := json.Unmarshal(ta.out.Bytes(), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, ta.out.String())
	}
	if res.Request == nil || res.Request.Method != "POST" {
		t.Fatalf("expected POST request, got %+v", res.Request)
	}
	if res.Request.URL != "https://api.example.com/items" {
		t.Fatalf("unexpected url %q", res.Request.URL)
	}
	if !strings.Contains(ta.err.String(), "warning INSECURE_TLS: ") {
		t.Fatalf("expected insecure warning on stderr, got %q", ta.err.String())
	}
}

func TestRunNotCurlFailsWithoutOutput(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.command = "wget https://example.com"

	err := ta.run(context.Background(), opts)
	if !errors.Is(err, curl.ErrNotCurlCommand) {
		t.Fatalf("expected ErrNotCurlCommand, got %v", err)
	}
	if ta.out.Len() != 0 {
		t.Fatalf("expected no output, got %q", ta.out.String())
	}
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.command = "curl https://example.com"
	opts.format = "xml"

	err := ta.run(context.Background(), opts)
	if errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestReadInputPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cmd.txt")
	if err := os.WriteFile(path, []byte("curl https://file.test"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	ta := newTestApp(t, "curl https://stdin.test")
	ta.readClipboard = func() (string, error) { return "curl https://clip.test", nil }

	cases := []struct {
		name   string
		opts   cliOptions
		want   string
		source string
	}{
		{"command", cliOptions{command: "curl https://c.test", file: path, clipboard: true}, "curl https://c.test", sourceArg},
		{"file", cliOptions{file: path, clipboard: true}, "curl https://file.test", sourceFile},
		{"argument", cliOptions{arg: path}, "curl https://file.test", sourceFile},
		{"clipboard", cliOptions{clipboard: true}, "curl https://clip.test", sourceClipboard},
		{"stdin", cliOptions{}, "curl https://stdin.test", sourceStdin},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, source, err := ta.readInput(tc.opts)
			if err != nil {
				t.Fatalf("readInput: %v", err)
			}
			if got != tc.want || source != tc.source {
				t.Fatalf("expected %q from %s, got %q from %s", tc.want, tc.source, got, source)
			}
		})
	}
}

func TestReadInputEmptyStdin(t *testing.T) {
	ta := newTestApp(t, "  \n")
	if _, _, err := ta.readInput(cliOptions{}); err == nil {
		t.Fatalf("expected error for empty stdin")
	}
}

func TestReadInputMissingFile(t *testing.T) {
	ta := newTestApp(t, "")
	_, _, err := ta.readInput(cliOptions{file: filepath.Join(t.TempDir(), "missing")})
	if errdef.CodeOf(err) != errdef.CodeFilesystem {
		t.Fatalf("expected filesystem error, got %v", err)
	}
}

func TestRunAllHTTP(t *testing.T) {
	input := heredoc.Doc(`
		Fetch the list:
		$ curl https://a.test/items

		Then create one:
		$ curl -X PUT https://b.test/items/1 -H 'Content-Type: application/json' -d '{"n":1}'
	`)
	ta := newTestApp(t, input)
	opts := baseOptions()
	opts.format = "http"
	opts.all = true

	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := ta.out.String()
	if !strings.Contains(out, "# Generated by curlparse test") {
		t.Fatalf("expected header comment, got:\n%s", out)
	}
	if !strings.Contains(out, "### GET https://a.test/items") ||
		!strings.Contains(out, "### PUT https://b.test/items/1") {
		t.Fatalf("expected both requests, got:\n%s", out)
	}
}

func TestRunRecordsSpanPerCommand(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	inst, err := telemetry.New(telemetry.Config{}, telemetry.WithSpanProcessor(recorder))
	if err != nil {
		t.Fatalf("telemetry: %v", err)
	}
	defer func() { _ = inst.Shutdown(context.Background()) }()

	ta := newTestApp(t, "curl https://a.test\ncurl https://b.test\n")
	ta.inst = inst
	opts := baseOptions()
	opts.all = true

	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := len(recorder.Ended()); got != 2 {
		t.Fatalf("expected 2 spans, got %d", got)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "req.http")
	opts := baseOptions()
	opts.command = "curl https://example.com"
	opts.format = "http"
	opts.out = dst

	ta := newTestApp(t, "")
	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "GET https://example.com") {
		t.Fatalf("unexpected file content:\n%s", data)
	}
	if ta.out.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", ta.out.String())
	}

	ta = newTestApp(t, "")
	if err := ta.run(context.Background(), opts); err == nil {
		t.Fatalf("expected error when output exists without overwrite")
	}
	opts.overwrite = true
	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("overwrite run: %v", err)
	}
}

func TestRunMask(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.command = "curl https://example.com -H 'Authorization: Bearer abcdef'"
	opts.mask = true

	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(ta.out.String(), "abcdef") {
		t.Fatalf("secret leaked into output:\n%s", ta.out.String())
	}
}

func TestRunDiff(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.command = "curl   https://example.com \\\n  -k"
	opts.diff = true

	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(ta.err.String(), "--- original") {
		t.Fatalf("expected diff on stderr, got %q", ta.err.String())
	}
}

func TestRunHistoryRecordAndList(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.history = true
	opts.command = "curl -k https://example.com/a"
	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	opts.command = "curl https://example.com/b"
	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}

	ta.out.Reset()
	if err := ta.run(context.Background(), cliOptions{
		format:      "json",
		color:       "never",
		historyList: true,
		arg:         "https://example.com/a/",
	}); err != nil {
		t.Fatalf("list: %v", err)
	}
	wantHeader := "History: " + ta.settings.HistoryFile() + " (1 entries)"
	if !strings.Contains(ta.err.String(), wantHeader) {
		t.Fatalf("expected %q on stderr, got %q", wantHeader, ta.err.String())
	}
	lines := strings.Split(strings.TrimSpace(ta.out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one matching entry, got %q", ta.out.String())
	}
	if !strings.Contains(lines[0], "2026-03-01T12:00:00Z  GET     https://example.com/a  (1 warnings)") {
		t.Fatalf("unexpected history line %q", lines[0])
	}
}

func TestRunHistoryDelete(t *testing.T) {
	ta := newTestApp(t, "")
	opts := baseOptions()
	opts.history = true
	opts.command = "curl https://example.com/a"
	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	st := ta.store()
	if err := st.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	entries := st.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	del := cliOptions{format: "json", color: "never", historyDel: entries[0].ID}
	if err := ta.run(context.Background(), del); err != nil {
		t.Fatalf("delete: %v", err)
	}
	st = ta.store()
	if err := st.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := len(st.Entries()); got != 0 {
		t.Fatalf("expected empty history, got %d entries", got)
	}

	err := ta.run(context.Background(), del)
	if errdef.CodeOf(err) != errdef.CodeHistory {
		t.Fatalf("expected history error for missing entry, got %v", err)
	}
}

func TestRunSaveSettings(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURLPARSE_CONFIG_DIR", dir)

	ta := newTestApp(t, "")
	ta.settingsFile = config.SettingsHandle{
		Path:   filepath.Join(dir, "settings.toml"),
		Format: config.SettingsFormatTOML,
	}
	opts := cliOptions{format: "yaml", color: "always", style: "dracula", history: true, saveConfig: true}
	if err := ta.run(context.Background(), opts); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ta.out.Len() != 0 {
		t.Fatalf("expected no stdout, got %q", ta.out.String())
	}

	got, handle, err := config.LoadSettings()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if handle.Path != ta.settingsFile.Path {
		t.Fatalf("expected settings at %s, got %s", ta.settingsFile.Path, handle.Path)
	}
	want := config.OutputSettings{Format: config.OutputFormatYAML, Color: config.ColorAlways, Style: "dracula"}
	if got.Output != want {
		t.Fatalf("expected output %+v, got %+v", want, got.Output)
	}
	if !got.History.Enabled {
		t.Fatalf("expected history to be enabled")
	}
}

func TestUsageListsWarningCodes(t *testing.T) {
	for _, code := range curl.WarningCodes {
		if !strings.Contains(usage, string(code)) {
			t.Fatalf("usage does not mention %s:\n%s", code, usage)
		}
	}
}

func TestProfileFor(t *testing.T) {
	buf := &bytes.Buffer{}
	if got := profileFor(buf, config.ColorNever); got != termenv.Ascii {
		t.Fatalf("never: got %v", got)
	}
	if got := profileFor(buf, config.ColorAlways); got != termenv.ANSI256 {
		t.Fatalf("always: got %v", got)
	}
}
