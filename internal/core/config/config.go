// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the provisioner and the API daemon.
type Config struct {
	// SharePoint site that owns the CRM lists, e.g. https://contoso.sharepoint.com/sites/sales
	SiteURL string `env:"SP_SITE_URL,required,notEmpty"`

	// Graph endpoint and token scope
	GraphBaseURL string        `env:"GRAPH_BASE_URL" envDefault:"https://graph.microsoft.com/v1.0"`
	GraphScope   string        `env:"GRAPH_SCOPE" envDefault:"https://graph.microsoft.com/.default"`
	GraphTimeout time.Duration `env:"GRAPH_TIMEOUT" envDefault:"30s"`

	// Optional Entra ID tenant for the CLI credential
	TenantID string `env:"AZURE_TENANT_ID"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`

	// Run journal (optional)
	JournalDSN string `env:"JOURNAL_DATABASE_URL"`

	// API daemon
	Port string `env:"APP_PORT" envDefault:"8080"`
}

// Load parses the environment into Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SiteURL)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("SP_SITE_URL must be an absolute https URL, got %q", c.SiteURL)
	}
	if _, err := url.Parse(c.GraphBaseURL); err != nil {
		return fmt.Errorf("GRAPH_BASE_URL: %w", err)
	}
	c.GraphBaseURL = strings.TrimRight(c.GraphBaseURL, "/")
	if c.GraphTimeout <= 0 {
		return fmt.Errorf("GRAPH_TIMEOUT must be positive")
	}
	return nil
}

// IsDevelopment reports whether human-friendly log output is wanted.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// JournalEnabled reports whether provisioning runs are recorded.
func (c *Config) JournalEnabled() bool {
	return c.JournalDSN != ""
}
