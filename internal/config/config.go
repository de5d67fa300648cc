package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	OutDir           string `toml:"out_dir"`
	Me               string `toml:"me"`
	Previews         bool   `toml:"previews"`
	Workers          int    `toml:"workers"`
	FetchTimeout     string `toml:"fetch_timeout"`
	UserAgent        string `toml:"user_agent"`
	MaxImageBytes    int64  `toml:"max_image_bytes"`
	MaxDocumentBytes int64  `toml:"max_document_bytes"`
	ThumbnailURL     string `toml:"thumbnail_url"`
	LogLevel         string `toml:"log_level"`
	LogFile          string `toml:"log_file"`
}

func defaults() *Config {
	return &Config{
		OutDir:           ".",
		Previews:         true,
		Workers:          4,
		FetchTimeout:     "15s",
		UserAgent:        "Mozilla/5.0 (wex/1.0)",
		MaxImageBytes:    2_500_000,
		MaxDocumentBytes: 800_000,
		LogLevel:         "warn",
	}
}

// Load reads ~/.config/wex/config.toml if present, then applies WEX_*
// environment overrides (optionally from a .env file in the working
// directory).
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return LoadFile(filepath.Join(home, ".config", "wex", "config.toml"))
}

// LoadFile is Load with an explicit config path. A missing file is not an
// error.
func LoadFile(cfgPath string) (*Config, error) {
	home, _ := os.UserHomeDir()
	cfg := defaults()

	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if _, err := time.ParseDuration(cfg.FetchTimeout); err != nil {
		return nil, fmt.Errorf("fetch_timeout: %w", err)
	}

	cfg.OutDir = expandHome(cfg.OutDir, home)
	cfg.LogFile = expandHome(cfg.LogFile, home)

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("WEX_OUTDIR"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("WEX_ME"); v != "" {
		c.Me = v
	}
	if v := os.Getenv("WEX_PREVIEWS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WEX_PREVIEWS: %w", err)
		}
		c.Previews = b
	}
	if v := os.Getenv("WEX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEX_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("WEX_FETCH_TIMEOUT"); v != "" {
		c.FetchTimeout = v
	}
	if v := os.Getenv("WEX_USER_AGENT"); v != "" {
		c.UserAgent = v
	}
	if v := os.Getenv("WEX_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("WEX_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	return nil
}

// Timeout returns FetchTimeout as a duration. Load has already validated it.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.FetchTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
