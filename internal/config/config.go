package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSymbols is the tracked list used when none is configured.
var DefaultSymbols = []string{
	"AAPL", "MSFT", "NVDA", "TSLA", "AMZN",
	"GOOG", "META", "NFLX", "AMD", "INTC",
	"CSCO", "ADBE", "CRM", "ORCL", "IBM",
}

// Config holds all application configuration.
type Config struct {
	Symbols    []string `yaml:"symbols"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Refresh struct {
		PriceIntervalMs int `yaml:"price_interval_ms"`
		ChartIntervalMs int `yaml:"chart_interval_ms"`
		FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
		// Pointer so an explicit 0 (cache disabled) survives defaulting.
		CacheTTLSec *int `yaml:"cache_ttl_sec"`
	} `yaml:"refresh"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Maintenance struct {
		PruneCron     string `yaml:"prune_cron"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"maintenance"`
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
	if v := os.Getenv("SYMBOLS"); v != "" {
		cfg.Symbols = splitCSV(v)
	}
	if v := os.Getenv("MARKET_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("MARKET_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("PRICE_INTERVAL_MS"); v != "" {
		var ms int
		if _, err := fmt.Sscanf(v, "%d", &ms); err == nil {
			cfg.Refresh.PriceIntervalMs = ms
		}
	}
	if v := os.Getenv("CHART_INTERVAL_MS"); v != "" {
		var ms int
		if _, err := fmt.Sscanf(v, "%d", &ms); err == nil {
			cfg.Refresh.ChartIntervalMs = ms
		}
	}
	if v := os.Getenv("FETCH_TIMEOUT_SEC"); v != "" {
		var sec int
		if _, err := fmt.Sscanf(v, "%d", &sec); err == nil {
			cfg.Refresh.FetchTimeoutSec = sec
		}
	}
	if v := os.Getenv("CACHE_TTL_SEC"); v != "" {
		var sec int
		if _, err := fmt.Sscanf(v, "%d", &sec); err == nil {
			cfg.Refresh.CacheTTLSec = &sec
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Symbols) == 0 {
		cfg.Symbols = append([]string(nil), DefaultSymbols...)
	}
	if cfg.Refresh.PriceIntervalMs == 0 {
		cfg.Refresh.PriceIntervalMs = 30000
	}
	if cfg.Refresh.ChartIntervalMs == 0 {
		cfg.Refresh.ChartIntervalMs = 60000
	}
	if cfg.Refresh.FetchTimeoutSec == 0 {
		cfg.Refresh.FetchTimeoutSec = 10
	}
	if cfg.Refresh.CacheTTLSec == nil {
		ttl := 5
		cfg.Refresh.CacheTTLSec = &ttl
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tickerboard.db"
	}
	if cfg.Maintenance.PruneCron == "" {
		cfg.Maintenance.PruneCron = "0 30 0 * * *"
	}
	if cfg.Maintenance.RetentionDays == 0 {
		cfg.Maintenance.RetentionDays = 7
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols list must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Symbols))
	for _, s := range c.Symbols {
		if s == "" {
			return fmt.Errorf("symbols list contains an empty entry")
		}
		if _, dup := seen[s]; dup {
			return fmt.Errorf("duplicate symbol: %s", s)
		}
		seen[s] = struct{}{}
	}
	if c.Refresh.PriceIntervalMs <= 0 {
		return fmt.Errorf("refresh.price_interval_ms must be positive")
	}
	if c.Refresh.ChartIntervalMs <= 0 {
		return fmt.Errorf("refresh.chart_interval_ms must be positive")
	}
	if c.Refresh.FetchTimeoutSec <= 0 {
		return fmt.Errorf("refresh.fetch_timeout_sec must be positive")
	}
	if c.Refresh.CacheTTLSec != nil && *c.Refresh.CacheTTLSec < 0 {
		return fmt.Errorf("refresh.cache_ttl_sec must not be negative")
	}
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
