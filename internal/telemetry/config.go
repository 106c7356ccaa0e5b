package telemetry

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	envEndpoint    = "CURLPARSE_OTEL_ENDPOINT"
	envInsecure    = "CURLPARSE_OTEL_INSECURE"
	envService     = "CURLPARSE_OTEL_SERVICE"
	envDialTimeout = "CURLPARSE_OTEL_DIAL_TIMEOUT"
	envHeaders     = "CURLPARSE_OTEL_HEADERS"

	DefaultServiceName = "curlparse"
)

type Config struct {
	Endpoint    string
	Insecure    bool
	ServiceName string
	Version     string
	DialTimeout time.Duration
	Headers     map[string]string
}

// Enabled reports whether spans should be exported.
func (c Config) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != ""
}

// ConfigFromEnv reads the CURLPARSE_OTEL_* variables through getenv.
// Malformed optional values fall back to their defaults.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := Config{
		Endpoint:    strings.TrimSpace(getenv(envEndpoint)),
		ServiceName: strings.TrimSpace(getenv(envService)),
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = DefaultServiceName
	}
	if v, err := strconv.ParseBool(strings.TrimSpace(getenv(envInsecure))); err == nil {
		cfg.Insecure = v
	}
	if v, err := time.ParseDuration(strings.TrimSpace(getenv(envDialTimeout))); err == nil && v > 0 {
		cfg.DialTimeout = v
	}
	if h, err := ParseHeaders(getenv(envHeaders)); err == nil {
		cfg.Headers = h
	}
	return cfg
}

// ParseHeaders parses "k=v,k2=v2". Blank input yields nil.
func ParseHeaders(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, val, ok := strings.Cut(part, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid header %q: expected key=value", part)
		}
		out[key] = strings.TrimSpace(val)
	}
	return out, nil
}
