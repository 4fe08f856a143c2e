// Package config resolves client settings from defaults, an optional .env,
// an optional YAML file and WISHLIST_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const fileName = "config.yaml"

// Config holds everything the client needs at startup.
type Config struct {
	APIURL     string        `yaml:"api_url"`
	Timeout    time.Duration `yaml:"timeout"`
	ConfigDir  string        `yaml:"config_dir"`
	LogFile    string        `yaml:"log_file"`
	LogLevel   string        `yaml:"log_level"`
	Theme      string        `yaml:"theme"`
	DateLayout string        `yaml:"date_layout"`
	ExportDir  string        `yaml:"export_dir"`
}

// DefaultDir is $XDG_CONFIG_HOME/wishlist, or ~/.wishlist.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "wishlist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".wishlist"
	}
	return filepath.Join(home, ".wishlist")
}

func defaults() Config {
	return Config{
		APIURL:     "http://localhost:5000",
		Timeout:    30 * time.Second,
		LogLevel:   "info",
		Theme:      "classic",
		DateLayout: "02 Jan 2006",
		ExportDir:  ".",
	}
}

// Load builds the config. path is an explicit YAML file; when empty,
// config.yaml in the config dir is used if present.
func Load(path string) (*Config, error) {
	// .env is optional; real env vars win over it.
	_ = godotenv.Load()

	cfg := defaults()
	cfg.ConfigDir = getEnv("WISHLIST_CONFIG_DIR", DefaultDir())

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.ConfigDir, fileName)
	}
	if err := readFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg.APIURL = getEnv("WISHLIST_API_URL", cfg.APIURL)
	cfg.LogLevel = getEnv("WISHLIST_LOG_LEVEL", cfg.LogLevel)
	cfg.Theme = getEnv("WISHLIST_THEME", cfg.Theme)
	cfg.DateLayout = getEnv("WISHLIST_DATE_LAYOUT", cfg.DateLayout)
	cfg.ExportDir = getEnv("WISHLIST_EXPORT_DIR", cfg.ExportDir)
	cfg.LogFile = getEnv("WISHLIST_LOG_FILE", cfg.LogFile)
	if v := getEnv("WISHLIST_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("WISHLIST_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.ConfigDir, "wishlist.log")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// Validate checks the fields a session cannot run without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api url %q is not an absolute URL", c.APIURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.DateLayout == "" {
		return errors.New("date layout is empty")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
