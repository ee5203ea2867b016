package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/andreyvit/jsonfix"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

const (
	EnvAddr     = "DATETIME_ADDR"
	EnvDB       = "DATETIME_DB"
	EnvCache    = "DATETIME_CACHE"
	EnvCacheTTL = "DATETIME_CACHE_TTL"
)

type Config struct {
	Addr      string `json:"addr"`
	DBPath    string `json:"db_path"`
	CachePath string `json:"cache_path"`
	CacheTTL  string `json:"cache_ttl"`
}

func Default() Config {
	return Config{
		Addr:      ":11436",
		DBPath:    "~/.datetime/history.db",
		CachePath: "~/.datetime/cache.db",
		CacheTTL:  "24h",
	}
}

// LoadEnv reads a .env file into the process environment. Variables that are
// already set win.
func LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Load starts from Default, applies the JSON file at path (if path is not
// empty) and then environment overrides. The file may contain comments and
// trailing commas.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return cfg, err
		}

		data, err := os.ReadFile(expanded)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}

		if err := json.Unmarshal(jsonfix.Bytes(data), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	override(&cfg.Addr, EnvAddr)
	override(&cfg.DBPath, EnvDB)
	override(&cfg.CachePath, EnvCache)
	override(&cfg.CacheTTL, EnvCacheTTL)

	var err error
	if cfg.DBPath, err = homedir.Expand(cfg.DBPath); err != nil {
		return cfg, err
	}
	if cfg.CachePath, err = homedir.Expand(cfg.CachePath); err != nil {
		return cfg, err
	}

	if _, err := cfg.TTL(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func override(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// TTL parses CacheTTL. An empty value disables expiry.
func (c Config) TTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	return d, nil
}
