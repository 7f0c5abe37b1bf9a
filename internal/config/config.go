package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete assistant configuration.
// The structure matches the config.yaml file and can be overridden by environment variables.

type Config struct {
	Assistant AssistantConfig `json:"assistant" mapstructure:"assistant"`
}

// AssistantConfig contains the main assistant configuration

type AssistantConfig struct {
	Server     ServerConfig     `json:"server" mapstructure:"server"`
	Completion CompletionConfig `json:"completion" mapstructure:"completion"`
	Upload     UploadConfig     `json:"upload" mapstructure:"upload"`
	Session    SessionConfig    `json:"session" mapstructure:"session"`
	Audit      AuditConfig      `json:"audit" mapstructure:"audit"`
}

// ServerConfig contains HTTP server configuration

type ServerConfig struct {
	Addr         string        `json:"addr" mapstructure:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `json:"idle_timeout" mapstructure:"idle_timeout"`
}

// CompletionConfig contains the chat-completion provider configuration.
// APIKey is bound to OPENROUTER_API_KEY; when set there it takes
// precedence over any value in the config file.

type CompletionConfig struct {
	BaseURL     string        `json:"base_url" mapstructure:"base_url"`
	Model       string        `json:"model" mapstructure:"model"`
	APIKey      string        `json:"api_key" mapstructure:"api_key"`
	MaxTokens   int           `json:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64       `json:"temperature" mapstructure:"temperature"`
	Timeout     time.Duration `json:"timeout" mapstructure:"timeout"`
}

// UploadConfig constrains the document upload surface

type UploadConfig struct {
	MaxBytes int64 `json:"max_bytes" mapstructure:"max_bytes"`
}

// SessionConfig contains session store configuration

type SessionConfig struct {
	TTL          time.Duration `json:"ttl" mapstructure:"ttl"`
	CookieSecure bool          `json:"cookie_secure" mapstructure:"cookie_secure"`
}

// AuditConfig contains usage-log configuration. The log records request
// metadata only; prompts, completions and credentials are never written.

type AuditConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	DBPath  string `json:"db_path" mapstructure:"db_path"`
}

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	// Load .env first (ignore error if not present)
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.legal-assistant")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("LEGAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// The provider key keeps its conventional variable name.
	_ = viper.BindEnv("assistant.completion.api_key", "OPENROUTER_API_KEY")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("no config file found, using defaults")
		} else {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Resolve paths (expand ~)
	if cfg.Assistant.Audit.DBPath != "" {
		cfg.Assistant.Audit.DBPath = resolvePath(cfg.Assistant.Audit.DBPath)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("assistant.server.addr", ":8080")
	viper.SetDefault("assistant.server.read_timeout", "15s")
	// Write timeout sits above the completion timeout so a slow upstream
	// response is not cut off mid-write.
	viper.SetDefault("assistant.server.write_timeout", "75s")
	viper.SetDefault("assistant.server.idle_timeout", "60s")

	viper.SetDefault("assistant.completion.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("assistant.completion.model", "openai/gpt-4o-mini")
	viper.SetDefault("assistant.completion.api_key", "")
	viper.SetDefault("assistant.completion.max_tokens", 2000)
	viper.SetDefault("assistant.completion.temperature", 0.3)
	viper.SetDefault("assistant.completion.timeout", "60s")

	viper.SetDefault("assistant.upload.max_bytes", 10*1024*1024)

	viper.SetDefault("assistant.session.ttl", "12h")
	viper.SetDefault("assistant.session.cookie_secure", false)

	viper.SetDefault("assistant.audit.enabled", true)
	viper.SetDefault("assistant.audit.db_path", "/tmp/legal_assistant_usage.db")
}

// resolvePath resolves ~ to home directory and cleans the path
func resolvePath(p string) string {
	if p == "" {
		return p
	}
	if p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return filepath.Clean(p)
}
