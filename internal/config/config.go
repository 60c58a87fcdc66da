package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

const (
	// EnvBaseURL overrides the default service address when set.
	EnvBaseURL = "HOOPNARRATOR_API_URL"

	// DefaultBaseURL points at a local backend, matching its dev defaults.
	DefaultBaseURL = "http://localhost:8000/api/v1"
)

// ResolveBaseURL picks the service base address: explicit flag value first,
// then the environment, then the local default. The result is normalized
// and validated.
func ResolveBaseURL(flagValue string) (string, error) {
	raw := strings.TrimSpace(flagValue)
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv(EnvBaseURL))
	}
	if raw == "" {
		raw = DefaultBaseURL
	}
	return NormalizeBaseURL(raw)
}

// NormalizeBaseURL trims whitespace and trailing slashes and verifies the
// address is an absolute http(s) URL.
func NormalizeBaseURL(raw string) (string, error) {
	v := strings.TrimRight(strings.TrimSpace(raw), "/")
	if v == "" {
		return "", fmt.Errorf("service base URL is required")
	}
	u, err := url.Parse(v)
	if err != nil {
		return "", fmt.Errorf("invalid service base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid service base URL %q: expected http or https scheme", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid service base URL %q: missing host", raw)
	}
	return v, nil
}
