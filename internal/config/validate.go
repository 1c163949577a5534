package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the loaded configuration. Load calls it automatically.
// Language pair support is checked by the router, not here.
func (c *Config) Validate() error {
	if err := c.Linguee.validate(); err != nil {
		return fmt.Errorf("linguee: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (l *LingueeConfig) validate() error {
	if err := validateBaseURL(l.SearchURL); err != nil {
		return fmt.Errorf("search_url: %w", err)
	}
	if err := validateBaseURL(l.BrowseURL); err != nil {
		return fmt.Errorf("browse_url: %w", err)
	}
	if strings.TrimSpace(l.UserAgent) == "" {
		return fmt.Errorf("user_agent must not be empty")
	}
	if l.ResultWidth <= 0 {
		return fmt.Errorf("result_width must be > 0 (got %d)", l.ResultWidth)
	}
	if l.ResultHeight <= 0 {
		return fmt.Errorf("result_height must be > 0 (got %d)", l.ResultHeight)
	}
	if l.Debounce < 0 {
		return fmt.Errorf("debounce must be >= 0 (got %s)", l.Debounce)
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
