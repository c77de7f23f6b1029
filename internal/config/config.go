// Package config provides Viper-based hierarchical configuration for the
// extraction engine: defaults, then an optional config file, then
// CLEARLEDGR_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/clearledgr/clearledgr-ap/internal/logging"
)

// Config is the complete engine configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Classifier struct {
		// IgnoredDomains is the sender-domain denylist; documents from these
		// domains are classified "ignored" before any extraction runs.
		IgnoredDomains []string `mapstructure:"ignored_domains" yaml:"ignored_domains"`
	} `mapstructure:"classifier" yaml:"classifier"`

	Extraction struct {
		MaxAttachments   int `mapstructure:"max_attachments" yaml:"max_attachments"`
		MaxBytes         int `mapstructure:"max_bytes" yaml:"max_bytes"`
		MaxPages         int `mapstructure:"max_pages" yaml:"max_pages"`
		MaxChars         int `mapstructure:"max_chars" yaml:"max_chars"`
		QualityEarlyStop int `mapstructure:"quality_early_stop" yaml:"quality_early_stop"`
	} `mapstructure:"extraction" yaml:"extraction"`

	// Arbitration margins are tuned defaults, not invariants; see the
	// documentation for the arbiter package.
	Arbitration struct {
		EmailScoreFloor int `mapstructure:"email_score_floor" yaml:"email_score_floor"`
		VendorMargin    int `mapstructure:"vendor_margin" yaml:"vendor_margin"`
		AmountMargin    int `mapstructure:"amount_margin" yaml:"amount_margin"`
		InvoiceMargin   int `mapstructure:"invoice_margin" yaml:"invoice_margin"`
		DateMargin      int `mapstructure:"date_margin" yaml:"date_margin"`
	} `mapstructure:"arbitration" yaml:"arbitration"`

	Matcher struct {
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	} `mapstructure:"matcher" yaml:"matcher"`

	Routing struct {
		AutoRouteExceptions bool `mapstructure:"auto_route_exceptions" yaml:"auto_route_exceptions"`
	} `mapstructure:"routing" yaml:"routing"`

	Insights struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Model   string `mapstructure:"model" yaml:"model"`
		APIKey  string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"insights" yaml:"insights"`

	Accounts struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"accounts" yaml:"accounts"`
}

// Load initializes Viper configuration with hierarchical loading.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.clearledgr-ap")
	v.AddConfigPath(".clearledgr-ap")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CLEARLEDGR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Keep going with defaults and env vars; a broken file should not
			// take the engine down.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	// The insights API key always comes from the environment, unprefixed.
	if err := v.BindEnv("insights.api_key", "GEMINI_API_KEY"); err != nil {
		fmt.Printf("Warning: failed to bind GEMINI_API_KEY environment variable: %v\n", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("classifier.ignored_domains", []string{})

	v.SetDefault("extraction.max_attachments", 3)
	v.SetDefault("extraction.max_bytes", 10*1024*1024)
	v.SetDefault("extraction.max_pages", 20)
	v.SetDefault("extraction.max_chars", 50000)
	v.SetDefault("extraction.quality_early_stop", 70)

	v.SetDefault("arbitration.email_score_floor", 15)
	v.SetDefault("arbitration.vendor_margin", 5)
	v.SetDefault("arbitration.amount_margin", 8)
	v.SetDefault("arbitration.invoice_margin", 5)
	v.SetDefault("arbitration.date_margin", 5)

	v.SetDefault("matcher.base_url", "")
	v.SetDefault("matcher.timeout_seconds", 10)

	v.SetDefault("routing.auto_route_exceptions", false)

	v.SetDefault("insights.enabled", false)
	v.SetDefault("insights.model", "gemini-2.0-flash")

	v.SetDefault("accounts.file", "accounts.yaml")
}

func validate(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if config.Extraction.MaxAttachments < 1 {
		return fmt.Errorf("extraction.max_attachments must be at least 1, got: %d", config.Extraction.MaxAttachments)
	}
	if config.Extraction.MaxBytes < 1 || config.Extraction.MaxPages < 1 || config.Extraction.MaxChars < 1 {
		return fmt.Errorf("extraction budgets must be positive")
	}

	if config.Matcher.TimeoutSeconds < 1 || config.Matcher.TimeoutSeconds > 300 {
		return fmt.Errorf("matcher.timeout_seconds must be between 1 and 300, got: %d", config.Matcher.TimeoutSeconds)
	}

	if config.Insights.Enabled && config.Insights.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY required when insights are enabled")
	}

	return nil
}

// ConfigureLogging builds the engine logger from the log section.
func ConfigureLogging(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
