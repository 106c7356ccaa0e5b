package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

func TestLoadSettingsReturnsDefaultHandleWhenMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURLPARSE_CONFIG_DIR", dir)

	settings, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	expectedPath := filepath.Join(dir, "settings.toml")
	if handle.Path != expectedPath {
		t.Fatalf("expected handle path %q, got %q", expectedPath, handle.Path)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q, got %q", SettingsFormatTOML, handle.Format)
	}
	if settings.Output.Format != OutputFormatJSON {
		t.Fatalf("expected default format json, got %q", settings.Output.Format)
	}
	if settings.History.MaxEntries != HistoryMaxEntriesDefault {
		t.Fatalf(
			"expected default max entries %d, got %d",
			HistoryMaxEntriesDefault,
			settings.History.MaxEntries,
		)
	}
	if settings.HistoryFile() != filepath.Join(dir, "history.json") {
		t.Fatalf("unexpected history file %q", settings.HistoryFile())
	}
}

func TestSaveAndLoadSettingsTOML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURLPARSE_CONFIG_DIR", dir)

	want := Settings{
		Output:  OutputSettings{Format: OutputFormatYAML, Color: ColorNever, Style: "dracula"},
		History: HistorySettings{Enabled: true, MaxEntries: 10},
	}
	if err := SaveSettings(want, SettingsHandle{}); err != nil {
		t.Fatalf("SaveSettings failed: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Output != want.Output {
		t.Fatalf("expected output %+v, got %+v", want.Output, got.Output)
	}
	if !got.History.Enabled || got.History.MaxEntries != 10 {
		t.Fatalf("unexpected history settings %+v", got.History)
	}
	if handle.Format != SettingsFormatTOML {
		t.Fatalf("expected format %q after save, got %q", SettingsFormatTOML, handle.Format)
	}
}

func TestLoadSettingsTOMLKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURLPARSE_CONFIG_DIR", dir)

	data := []byte("[output]\nformat = \"SUMMARY\"\n")
	if err := os.WriteFile(filepath.Join(dir, "settings.toml"), data, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	got, _, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Output.Format != OutputFormatSummary {
		t.Fatalf("expected summary format, got %q", got.Output.Format)
	}
	if got.Output.Color != ColorAuto || got.Output.Style != OutputStyleDefault {
		t.Fatalf("expected defaults for missing keys, got %+v", got.Output)
	}
}

func TestLoadSettingsJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURLPARSE_CONFIG_DIR", dir)

	path := filepath.Join(dir, "settings.json")
	data := []byte(`{"output": {"format": "http", "color": "always"}, "history": {"enabled": true}}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write json settings: %v", err)
	}

	got, handle, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if got.Output.Format != OutputFormatHTTP || got.Output.Color != ColorAlways {
		t.Fatalf("unexpected output settings %+v", got.Output)
	}
	if handle.Format != SettingsFormatJSON {
		t.Fatalf("expected json format, got %q", handle.Format)
	}
	if handle.Path != path {
		t.Fatalf("expected handle path %q, got %q", path, handle.Path)
	}
}

func TestLoadSettingsJSONRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CURLPARSE_CONFIG_DIR", dir)

	data := []byte(`{"output": {"format": "json"}, "theme": "dark"}`)
	if err := os.WriteFile(filepath.Join(dir, "settings.json"), data, 0o644); err != nil {
		t.Fatalf("write json settings: %v", err)
	}

	_, _, err := LoadSettings()
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
	if errdef.CodeOf(err) != errdef.CodeConfig {
		t.Fatalf("expected config code, got %s", errdef.CodeOf(err))
	}
}

func TestNormaliseSettings(t *testing.T) {
	out := NormaliseOutputSettings(OutputSettings{Format: "xml", Color: "Rainbow", Style: "  "})
	if out != DefaultOutputSettings() {
		t.Fatalf("expected defaults, got %+v", out)
	}

	hist := NormaliseHistorySettings(HistorySettings{MaxEntries: -5, Path: " /tmp/h.json "})
	if hist.MaxEntries != HistoryMaxEntriesMin {
		t.Fatalf("expected clamp to %d, got %d", HistoryMaxEntriesMin, hist.MaxEntries)
	}
	if hist.Path != "/tmp/h.json" {
		t.Fatalf("expected trimmed path, got %q", hist.Path)
	}
	if got := NormaliseHistorySettings(HistorySettings{MaxEntries: 1 << 20}).MaxEntries; got != HistoryMaxEntriesMax {
		t.Fatalf("expected clamp to max, got %d", got)
	}
}

func TestParseOutputFormat(t *testing.T) {
	if f, ok := ParseOutputFormat(" YAML "); !ok || f != OutputFormatYAML {
		t.Fatalf("expected yaml, got %q %v", f, ok)
	}
	if _, ok := ParseOutputFormat("xml"); ok {
		t.Fatalf("xml must be rejected")
	}
}
