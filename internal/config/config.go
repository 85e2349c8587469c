package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"CryptoBoard/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Market struct {
		BaseURL           string  `yaml:"base_url"`
		APIKey            string  `yaml:"api_key"`
		VsCurrency        string  `yaml:"vs_currency"`
		Limit             int      `yaml:"limit"`
		RateLimitPerSec   *float64 `yaml:"rate_limit_per_sec"` // 0 = unlimited
		RateLimitBurst    int      `yaml:"rate_limit_burst"`
		RequestTimeoutSec int      `yaml:"request_timeout_sec"`
	} `yaml:"market"`
	Dashboard struct {
		RefreshInterval time.Duration `yaml:"refresh_interval"`
		TimeFrame       string        `yaml:"time_frame"`
		ShowRSI         *bool         `yaml:"show_rsi"`
		RSIPeriod       int           `yaml:"rsi_period"`
		Timezone        string        `yaml:"timezone"`
	} `yaml:"dashboard"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		cfg.Market.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.Market.APIKey = v
	}
	if v := os.Getenv("VS_CURRENCY"); v != "" {
		cfg.Market.VsCurrency = v
	}
	if v := os.Getenv("MARKET_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MARKET_LIMIT: %w", err)
		}
		cfg.Market.Limit = n
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("REFRESH_INTERVAL: %w", err)
		}
		cfg.Dashboard.RefreshInterval = d
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Market.VsCurrency == "" {
		cfg.Market.VsCurrency = "usd"
	}
	if cfg.Market.Limit == 0 {
		cfg.Market.Limit = 10
	}
	if cfg.Market.RateLimitPerSec == nil {
		perSec := 0.5
		cfg.Market.RateLimitPerSec = &perSec
	}
	if cfg.Market.RateLimitBurst == 0 {
		cfg.Market.RateLimitBurst = 1
	}
	if cfg.Market.RequestTimeoutSec == 0 {
		cfg.Market.RequestTimeoutSec = 30
	}
	if cfg.Dashboard.RefreshInterval == 0 {
		cfg.Dashboard.RefreshInterval = 60 * time.Second
	}
	if cfg.Dashboard.TimeFrame == "" {
		cfg.Dashboard.TimeFrame = string(model.TimeFrame7D)
	}
	if cfg.Dashboard.ShowRSI == nil {
		on := true
		cfg.Dashboard.ShowRSI = &on
	}
	if cfg.Dashboard.RSIPeriod == 0 {
		cfg.Dashboard.RSIPeriod = 14
	}
	if cfg.Dashboard.Timezone == "" {
		cfg.Dashboard.Timezone = "Local"
	}

	return cfg, nil
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Market.Limit <= 0 || c.Market.Limit > 250 {
		return fmt.Errorf("market.limit must be in 1..250")
	}
	if c.Market.RateLimitPerSec == nil || *c.Market.RateLimitPerSec < 0 {
		return fmt.Errorf("market.rate_limit_per_sec must not be negative")
	}
	if c.Dashboard.RefreshInterval < time.Second {
		return fmt.Errorf("dashboard.refresh_interval must be at least 1s")
	}
	if _, err := model.ParseTimeFrame(c.Dashboard.TimeFrame); err != nil {
		return fmt.Errorf("dashboard.time_frame %q: %w", c.Dashboard.TimeFrame, err)
	}
	if c.Dashboard.RSIPeriod <= 0 {
		return fmt.Errorf("dashboard.rsi_period must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("dashboard.timezone: %w", err)
	}
	return nil
}

// Location resolves the configured timezone for chart labels.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Dashboard.Timezone)
}

// TimeFrame returns the configured initial time frame.
func (c *Config) TimeFrame() model.TimeFrame {
	tf, err := model.ParseTimeFrame(c.Dashboard.TimeFrame)
	if err != nil {
		return model.TimeFrame7D
	}
	return tf
}
