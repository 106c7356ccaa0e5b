package curl

import (
	"fmt"
	"strings"
)

type WarningCode string

const (
	WarnUnsupportedCookieFile WarningCode = "UNSUPPORTED_COOKIE_FILE"
	WarnUnsupportedDataFile   WarningCode = "UNSUPPORTED_DATA_FILE"
	WarnUnsupportedConfigFile WarningCode = "UNSUPPORTED_CONFIG_FILE"
	WarnInsecureTLS           WarningCode = "INSECURE_TLS"
	WarnShellExpansion        WarningCode = "SHELL_EXPANSION"
)

// WarningCodes lists every code a Result can carry.
var WarningCodes = []WarningCode{
	WarnUnsupportedCookieFile,
	WarnUnsupportedDataFile,
	WarnUnsupportedConfigFile,
	WarnInsecureTLS,
	WarnShellExpansion,
}

type Warning struct {
	Code    WarningCode `json:"code"    yaml:"code"    toml:"code"`
	Message string      `json:"message" yaml:"message" toml:"message"`
}

const (
	warnCookieFileFormat = "cookie file %q cannot be read; pass cookies inline instead"
	warnDataFileFormat   = "body file %q cannot be read; the body was dropped"
	warnUploadFormat     = "upload file %q cannot be read; the body was dropped"
	warnConfigFormat     = "config file %q is not read; its options are ignored"
	warnInsecureMessage  = "TLS certificate verification is disabled (-k/--insecure)"
	warnShellFormat      = "token %q contains shell expansion that was not evaluated"
)

// WarningCollector accumulates warnings in the order they were raised.
type WarningCollector struct {
	list []Warning
}

func newWarningCollector() *WarningCollector {
	return &WarningCollector{}
}

func (c *WarningCollector) Add(code WarningCode, msg string) {
	if c == nil {
		return
	}
	c.list = append(c.list, Warning{Code: code, Message: strings.TrimSpace(msg)})
}

func (c *WarningCollector) Addf(code WarningCode, format string, args ...any) {
	c.Add(code, fmt.Sprintf(format, args...))
}

func (c *WarningCollector) List() []Warning {
	if c == nil || len(c.list) == 0 {
		return []Warning{}
	}
	out := make([]Warning, len(c.list))
	copy(out, c.list)
	return out
}

// hasShellExpansion reports tokens that a shell would expand. Quoting is not
// taken into account, so single-quoted text is flagged too.
func hasShellExpansion(v string) bool {
	return strings.ContainsAny(v, "$`")
}
