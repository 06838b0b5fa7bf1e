package hostfunc

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultMaxURLLength   = 8192
	DefaultMaxBodySize    = 1 << 20 // 1MB
	DefaultRequestTimeout = 30 * time.Second
)

type HTTPConfig struct {
	AllowedHosts   []string
	MaxBodySize    int64
	MaxURLLength   int
	RequestTimeout time.Duration
}

// NewHTTPGet returns a host function fetching args[0] over GET,
// restricted to the configured allowed hosts.
func NewHTTPGet(cfg HTTPConfig) Func {
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.MaxURLLength == 0 {
		cfg.MaxURLLength = DefaultMaxURLLength
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	client := &http.Client{Timeout: cfg.RequestTimeout}

	return func(args []string) (string, error) {
		if len(args) < 1 || args[0] == "" {
			return "", errors.New("url required")
		}
		rawURL := args[0]

		if len(rawURL) > cfg.MaxURLLength {
			return "", errors.New("url exceeds max length")
		}

		parsed, err := url.Parse(rawURL)
		if err != nil {
			return "", errors.New("invalid url")
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return "", errors.New("scheme must be http or https")
		}

		if len(cfg.AllowedHosts) == 0 {
			return "", errors.New("http not enabled")
		}
		if !hostAllowed(cfg.AllowedHosts, parsed.Hostname()) {
			return "", fmt.Errorf("host not allowed: %s", parsed.Hostname())
		}

		resp, err := client.Get(rawURL)
		if err != nil {
			return "", fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxBodySize))
		if err != nil {
			return "", fmt.Errorf("read body: %w", err)
		}
		return string(body), nil
	}
}

func hostAllowed(allowed []string, host string) bool {
	host = strings.ToLower(host)
	for _, a := range allowed {
		a = strings.ToLower(a)
		if host == a {
			return true
		}
		// *.example.com matches subdomains only.
		if rest, ok := strings.CutPrefix(a, "*."); ok && strings.HasSuffix(host, "."+rest) {
			return true
		}
	}
	return false
}
