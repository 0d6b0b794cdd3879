package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateProjectURL checks a user-supplied repository or live URL and
// returns it in cleaned form. Only absolute http/https URLs without
// userinfo are accepted; fragments are dropped.
func ValidateProjectURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty url")
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("invalid url: unsupported scheme")
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("invalid url: missing host")
	}
	if parsed.User != nil {
		return "", fmt.Errorf("invalid url: userinfo not allowed")
	}

	parsed.Scheme = scheme
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""

	return parsed.String(), nil
}
