package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	a := &c.Assistant

	if a.Server.Addr == "" {
		return errors.New("server address cannot be empty")
	}

	// Validate address format and port
	if _, err := net.ResolveTCPAddr("tcp", a.Server.Addr); err != nil {
		return fmt.Errorf("invalid server address: %v", err)
	}

	u, err := url.Parse(a.Completion.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid completion base_url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("completion base_url must be http or https, got %q", a.Completion.BaseURL)
	}
	if u.Host == "" {
		return errors.New("completion base_url missing host")
	}

	if a.Completion.Model == "" {
		return errors.New("completion model cannot be empty")
	}
	if a.Completion.MaxTokens <= 0 {
		return errors.New("completion max_tokens must be positive")
	}
	if a.Completion.Temperature < 0 || a.Completion.Temperature > 2 {
		return fmt.Errorf("completion temperature must be in [0, 2], got %v", a.Completion.Temperature)
	}
	if a.Completion.Timeout <= 0 {
		return errors.New("completion timeout must be positive")
	}

	if a.Server.WriteTimeout > 0 && a.Server.WriteTimeout <= a.Completion.Timeout {
		return errors.New("server write_timeout must exceed completion timeout")
	}

	if a.Upload.MaxBytes <= 0 {
		return errors.New("upload max_bytes must be positive")
	}

	if a.Session.TTL <= 0 {
		return errors.New("session ttl must be positive")
	}

	if a.Audit.Enabled && a.Audit.DBPath == "" {
		return errors.New("audit db_path cannot be empty when audit is enabled")
	}

	return nil
}
