package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/unkn0wn-root/curlparse/internal/errdef"
)

const (
	SettingsFormatTOML SettingsFormat = "toml"
	SettingsFormatJSON SettingsFormat = "json"
)

type Settings struct {
	Output  OutputSettings  `json:"output"  toml:"output"`
	History HistorySettings `json:"history" toml:"history"`
}

type SettingsFormat string
type SettingsHandle struct {
	Path   string
	Format SettingsFormat
}

func DefaultSettings() Settings {
	return Settings{
		Output:  DefaultOutputSettings(),
		History: DefaultHistorySettings(),
	}
}

func (s Settings) normalise() Settings {
	s.Output = NormaliseOutputSettings(s.Output)
	s.History = NormaliseHistorySettings(s.History)
	return s
}

// HistoryFile returns the configured history path or the default one.
func (s Settings) HistoryFile() string {
	if s.History.Path != "" {
		return s.History.Path
	}
	return HistoryPath()
}

// tries loading TOML first, then JSON, then returns defaults if neither exists.
// parse errors fail immediately but missing files just skip to the next format.
func LoadSettings() (Settings, SettingsHandle, error) {
	dir := Dir()
	candidates := []SettingsHandle{
		{Path: filepath.Join(dir, "settings.toml"), Format: SettingsFormatTOML},
		{Path: filepath.Join(dir, "settings.json"), Format: SettingsFormatJSON},
	}

	var accumulated error
	for _, candidate := range candidates {
		data, err := os.ReadFile(candidate.Path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			accumulated = errors.Join(
				accumulated,
				fmt.Errorf("read settings %q: %w", candidate.Path, err),
			)
			continue
		}

		settings, err := decodeSettings(data, candidate.Format)
		if err != nil {
			return Settings{}, SettingsHandle{}, errdef.Wrap(
				errdef.CodeConfig,
				err,
				"parse settings %q",
				candidate.Path,
			)
		}
		return settings.normalise(), candidate, nil
	}

	if accumulated != nil {
		return Settings{}, SettingsHandle{}, errdef.Wrap(errdef.CodeFilesystem, accumulated, "load settings")
	}

	return DefaultSettings(), SettingsHandle{
		Path:   candidates[0].Path,
		Format: SettingsFormatTOML,
	}, nil
}

func decodeSettings(data []byte, format SettingsFormat) (Settings, error) {
	settings := DefaultSettings()
	switch format {
	case SettingsFormatTOML:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	case SettingsFormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&settings); err != nil {
			return Settings{}, err
		}
	default:
		return Settings{}, fmt.Errorf("unsupported settings format %q", format)
	}
	return settings, nil
}

func SaveSettings(settings Settings, handle SettingsHandle) error {
	settings = settings.normalise()
	path := handle.Path
	format := handle.Format
	if path == "" {
		path = filepath.Join(Dir(), "settings.toml")
	}
	if format == "" {
		format = SettingsFormatTOML
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "ensure settings directory")
	}

	var (
		data []byte
		err  error
	)

	switch format {
	case SettingsFormatTOML:
		data, err = toml.Marshal(settings)
	case SettingsFormatJSON:
		buffer := &bytes.Buffer{}
		encoder := json.NewEncoder(buffer)
		encoder.SetIndent("", "  ")
		if err = encoder.Encode(settings); err == nil {
			data = buffer.Bytes()
		}
	default:
		return errdef.New(errdef.CodeConfig, "unsupported settings format %q", format)
	}
	if err != nil {
		return errdef.Wrap(errdef.CodeConfig, err, "encode settings")
	}

	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write settings %q", path)
	}
	return nil
}

// writeFileAtomic writes to a temp file in the target directory and renames
// it over path, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".curlparse-*.tmp")
	if err != nil {
		return err
	}

	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		closeErr := tmp.Close()
		if closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}

	if err := tmp.Chmod(perm); err != nil {
		closeErr := tmp.Close()
		if closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpPath, path)
}
