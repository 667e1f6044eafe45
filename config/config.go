package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/imgdl/request"
)

// EnvPrefix is prepended to every environment override, e.g. IMGDL_BOOSTY_TOKEN
const EnvPrefix = "IMGDL"

// Load loads the configuration. A missing config file is not an error
// unless configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".imgdl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/imgdl/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key is registered
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("boosty.url", "")
	v.SetDefault("boosty.token", "")
	v.SetDefault("boosty.limit", 0)
	v.SetDefault("boosty.proxy", "")

	v.SetDefault("gelbooru.url", "")
	v.SetDefault("gelbooru.api_key", "")
	v.SetDefault("gelbooru.user_id", "")
	v.SetDefault("gelbooru.limit", 0)
	v.SetDefault("gelbooru.proxy", "")

	v.SetDefault("booru.url", "")
	v.SetDefault("booru.limit", 0)
	v.SetDefault("booru.proxy", "")

	v.SetDefault("http.timeout", "0s")
	v.SetDefault("http.proxy", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative: %s", cfg.HTTP.Timeout)
	}

	limits := map[string]int{
		"boosty.limit":   cfg.Boosty.Limit,
		"gelbooru.limit": cfg.Gelbooru.Limit,
		"booru.limit":    cfg.Booru.Limit,
	}
	for key, limit := range limits {
		if limit < 0 {
			return fmt.Errorf("%s must not be negative: %d", key, limit)
		}
	}

	proxies := map[string]string{
		"http.proxy":     cfg.HTTP.Proxy,
		"boosty.proxy":   cfg.Boosty.Proxy,
		"gelbooru.proxy": cfg.Gelbooru.Proxy,
		"booru.proxy":    cfg.Booru.Proxy,
	}
	for key, proxy := range proxies {
		if proxy == "" {
			continue
		}
		if err := request.ValidateProxyURL(proxy); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	urls := []struct{ key, value string }{
		{"boosty.url", cfg.Boosty.URL},
		{"gelbooru.url", cfg.Gelbooru.URL},
		{"booru.url", cfg.Booru.URL},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if !isHTTPURL(u.value) {
			return fmt.Errorf("%s must be an http(s) URL: %s", u.key, u.value)
		}
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
