package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Boosty   BoostyConfig   `mapstructure:"boosty"`
	Gelbooru GelbooruConfig `mapstructure:"gelbooru"`
	Booru    BooruConfig    `mapstructure:"booru"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Filters  FilterConfig   `mapstructure:"filters"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// BoostyConfig holds Boosty access settings
type BoostyConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
	Limit int    `mapstructure:"limit"`
	Proxy string `mapstructure:"proxy"`
}

// GelbooruConfig holds Gelbooru API credentials and paging
type GelbooruConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
	UserID string `mapstructure:"user_id"`
	Limit  int    `mapstructure:"limit"`
	Proxy  string `mapstructure:"proxy"`
}

// BooruConfig points at a Gelbooru-compatible host
type BooruConfig struct {
	URL   string `mapstructure:"url"`
	Limit int    `mapstructure:"limit"`
	Proxy string `mapstructure:"proxy"`
}

// HTTPConfig holds settings shared by every client
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Proxy   string        `mapstructure:"proxy"`
}

// FilterConfig maps filter names to expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// ProxyFor returns the service proxy, falling back to http.proxy
func (c *Config) ProxyFor(service string) string {
	var p string
	switch service {
	case "boosty":
		p = c.Boosty.Proxy
	case "gelbooru":
		p = c.Gelbooru.Proxy
	case "booru":
		p = c.Booru.Proxy
	}
	if p == "" {
		return c.HTTP.Proxy
	}
	return p
}
