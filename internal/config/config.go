package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything showcase reads from its config file.
type Config struct {
	APIURL        string
	PageSize      int
	FeaturedCount int
	HomeNewsCount int
	RefreshEvery  time.Duration // zero disables background refresh
	LogDir        string
	CachePath     string
	CacheTTL      time.Duration
}

const (
	defaultConfigPath    = "~/.config/showcase/config.toml"
	defaultLogDir        = "~/.local/share/showcase"
	defaultAPIURL        = "http://127.0.0.1:4000/api"
	defaultPageSize      = 12
	defaultFeaturedCount = 20
	defaultHomeNewsCount = 3
	defaultRefreshEvery  = 5 * time.Minute
	defaultCacheTTL      = 10 * time.Minute
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	logDir := mustExpand(defaultLogDir)
	return Config{
		APIURL:        defaultAPIURL,
		PageSize:      defaultPageSize,
		FeaturedCount: defaultFeaturedCount,
		HomeNewsCount: defaultHomeNewsCount,
		RefreshEvery:  defaultRefreshEvery,
		LogDir:        logDir,
		CachePath:     filepath.Join(logDir, "cache.db"),
		CacheTTL:      defaultCacheTTL,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL        string  `toml:"api_url"`
		PageSize      int     `toml:"page_size"`
		FeaturedCount int     `toml:"featured_count"`
		HomeNewsCount int     `toml:"home_news_count"`
		RefreshEvery  *string `toml:"refresh_every"`
		LogDir        string  `toml:"log_dir"`
		CachePath     string  `toml:"cache_path"`
		CacheTTL      string  `toml:"cache_ttl"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg := Defaults()

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if err := ValidateAPIURL(cfg.APIURL); err != nil {
		return Config{}, err
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.FeaturedCount > 0 {
		cfg.FeaturedCount = raw.FeaturedCount
	}
	if raw.HomeNewsCount > 0 {
		cfg.HomeNewsCount = raw.HomeNewsCount
	}
	if raw.RefreshEvery != nil {
		d, err := parseDuration("refresh_every", *raw.RefreshEvery, defaultRefreshEvery)
		if err != nil {
			return Config{}, err
		}
		cfg.RefreshEvery = d
	}
	ttl, err := parseDuration("cache_ttl", raw.CacheTTL, defaultCacheTTL)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL = ttl

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = mustExpand(v)
	}
	cfg.CachePath = filepath.Join(cfg.LogDir, "cache.db")
	if v := strings.TrimSpace(raw.CachePath); v != "" {
		cfg.CachePath = mustExpand(v)
	}

	return cfg, nil
}

// ValidateAPIURL rejects values that cannot be used as a backend base URL.
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url %q: missing host", raw)
	}
	return nil
}

// LogPath returns the path to the application log file.
func (c Config) LogPath() string {
	if strings.TrimSpace(c.LogDir) == "" {
		return mustExpand(defaultLogDir + "/showcase.log")
	}
	return filepath.Join(c.LogDir, "showcase.log")
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", key)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
