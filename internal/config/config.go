// internal/config/config.go
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath     = "config/app.yaml"
	defaultListPageSize   = 18
	defaultEditorPageSize = 10
	defaultRefreshCron    = "*/5 * * * *"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	// Activity entries older than this are pruned daily.
	ActivityRetention time.Duration `yaml:"activity_retention"`
}

type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	// Zero means no client-side timeout.
	Timeout time.Duration `yaml:"timeout"`
	// Outgoing request cap. Zero disables throttling.
	MaxRPS float64 `yaml:"max_rps"`
	Burst  int     `yaml:"burst"`
}

type DashboardConfig struct {
	ListPageSize   int    `yaml:"list_page_size"`
	EditorPageSize int    `yaml:"editor_page_size"`
	RefreshCron    string `yaml:"refresh_cron"`
	StaticDir      string `yaml:"static_dir"`
}

type RateLimitConfig struct {
	Enabled      bool          `yaml:"enabled"`
	MaxMutations int           `yaml:"max_mutations"`
	Window       time.Duration `yaml:"window"`
	TrustProxy   bool          `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name            string        `yaml:"name"`
		Environment     string        `yaml:"environment"`
		Port            int           `yaml:"port"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"app"`

	Backend BackendConfig `yaml:"backend"`

	Database DatabaseConfig `yaml:"database"`

	Dashboard DashboardConfig `yaml:"dashboard"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableRefresh bool `yaml:"enable_refresh"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML without touching the environment or validating.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &cfg, nil
}

// applyEnv lets deployments point at another backend or port without editing YAML.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("API_URL")); v != "" {
		c.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.App.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("ENVIRONMENT")); v != "" {
		c.App.Environment = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = 30 * time.Second
	}
	if c.Database.ActivityRetention == 0 {
		c.Database.ActivityRetention = 30 * 24 * time.Hour
	}
	if c.Dashboard.ListPageSize == 0 {
		c.Dashboard.ListPageSize = defaultListPageSize
	}
	if c.Dashboard.EditorPageSize == 0 {
		c.Dashboard.EditorPageSize = defaultEditorPageSize
	}
	if c.Dashboard.RefreshCron == "" {
		c.Dashboard.RefreshCron = defaultRefreshCron
	}
	if c.Dashboard.StaticDir == "" {
		c.Dashboard.StaticDir = "build/bin/static"
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if strings.TrimSpace(c.Backend.BaseURL) == "" {
		return fmt.Errorf("backend base_url is required")
	}
	if _, err := url.Parse(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend base_url is invalid: %w", err)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must not be negative")
	}
	if c.Backend.MaxRPS < 0 || c.Backend.Burst < 0 {
		return fmt.Errorf("backend max_rps and burst must not be negative")
	}
	if c.Dashboard.ListPageSize < 1 || c.Dashboard.EditorPageSize < 1 {
		return fmt.Errorf("page sizes must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.MaxMutations < 0 || c.RateLimit.Window < 0) {
		return fmt.Errorf("rate_limit values must not be negative")
	}
	if c.Features.EnableRefresh {
		if _, err := cron.ParseStandard(c.Dashboard.RefreshCron); err != nil {
			return fmt.Errorf("invalid refresh_cron %q: %w", c.Dashboard.RefreshCron, err)
		}
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
