package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	appName     = "curlparse"
	envDir      = "CURLPARSE_CONFIG_DIR"
	historyFile = "history.json"
)

// Dir returns the directory holding settings and history. CURLPARSE_CONFIG_DIR
// wins; otherwise the OS user config dir is used, falling back to the home
// directory and finally the working directory.
func Dir() string {
	if dir := strings.TrimSpace(os.Getenv(envDir)); dir != "" {
		return dir
	}
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, appName)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, "."+appName)
	}
	return "." + appName
}

// HistoryPath is the default location of the parse history file.
func HistoryPath() string {
	return filepath.Join(Dir(), historyFile)
}
