package config

import "strings"

type OutputFormat string

const (
	OutputFormatJSON    OutputFormat = "json"
	OutputFormatYAML    OutputFormat = "yaml"
	OutputFormatTOML    OutputFormat = "toml"
	OutputFormatHTTP    OutputFormat = "http"
	OutputFormatSummary OutputFormat = "summary"
)

// OutputFormats lists the accepted values of output.format.
var OutputFormats = []OutputFormat{
	OutputFormatJSON,
	OutputFormatYAML,
	OutputFormatTOML,
	OutputFormatHTTP,
	OutputFormatSummary,
}

type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const (
	OutputStyleDefault       = "monokai"
	HistoryMaxEntriesDefault = 200
	HistoryMaxEntriesMin     = 1
	HistoryMaxEntriesMax     = 10000
)

type OutputSettings struct {
	Format OutputFormat `json:"format" toml:"format"`
	Color  ColorMode    `json:"color"  toml:"color"`
	Style  string       `json:"style"  toml:"style"`
}

type HistorySettings struct {
	Enabled    bool   `json:"enabled"     toml:"enabled"`
	Path       string `json:"path"        toml:"path"`
	MaxEntries int    `json:"max_entries" toml:"max_entries"`
}

func DefaultOutputSettings() OutputSettings {
	return OutputSettings{
		Format: OutputFormatJSON,
		Color:  ColorAuto,
		Style:  OutputStyleDefault,
	}
}

func DefaultHistorySettings() HistorySettings {
	return HistorySettings{MaxEntries: HistoryMaxEntriesDefault}
}

// NormaliseOutputSettings replaces unknown or empty values with defaults.
func NormaliseOutputSettings(in OutputSettings) OutputSettings {
	out := DefaultOutputSettings()
	if f, ok := ParseOutputFormat(string(in.Format)); ok {
		out.Format = f
	}
	out.Color = normaliseColorMode(in.Color, out.Color)
	if style := strings.TrimSpace(in.Style); style != "" {
		out.Style = style
	}
	return out
}

func NormaliseHistorySettings(in HistorySettings) HistorySettings {
	out := DefaultHistorySettings()
	out.Enabled = in.Enabled
	out.Path = strings.TrimSpace(in.Path)
	out.MaxEntries = clampInt(
		in.MaxEntries,
		HistoryMaxEntriesMin,
		HistoryMaxEntriesMax,
		HistoryMaxEntriesDefault,
	)
	return out
}

// ParseOutputFormat accepts a format name in any case.
func ParseOutputFormat(v string) (OutputFormat, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, f := range OutputFormats {
		if string(f) == v {
			return f, true
		}
	}
	return "", false
}

func ParseColorMode(v string) (ColorMode, bool) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(v))); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, true
	default:
		return "", false
	}
}

func normaliseColorMode(in ColorMode, def ColorMode) ColorMode {
	if m, ok := ParseColorMode(string(in)); ok {
		return m
	}
	return def
}

func clampInt[T ~int](value, min, max, fallback T) T {
	if value == 0 {
		return fallback
	}
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
