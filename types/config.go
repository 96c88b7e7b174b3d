package types

import (
	"encoding/json"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/mcuadros/go-defaults"
)

const (
	StoreTypeMemory = "memory"
	StoreTypeSQLite = "sqlite"
	StoreTypeRedis  = "redis"

	envPrefix = "KVSTORAGE_"

	sessionTable  = "kvstorage_session"
	sessionPrefix = "_kvsession"
)

type Config struct {
	// Local backs the persistent core.
	Local StoreConfig `json:"local" envPrefix:"LOCAL_"`
	// Session backs the process-scoped core.
	Session StoreConfig `json:"session" envPrefix:"SESSION_"`
}

type StoreConfig struct {
	Type   string       `json:"type" env:"TYPE" default:"memory"`
	Redis  RedisConfig  `json:"redis" envPrefix:"REDIS_"`
	SQLite SQLiteConfig `json:"sqlite" envPrefix:"SQLITE_"`
}

type RedisConfig struct {
	Addr          string   `json:"addr" env:"ADDR" default:"127.0.0.1:6379"`
	SentinelAddrs []string `json:"sentinel_addrs" env:"SENTINEL_ADDRS" envSeparator:","`
	MasterName    string   `json:"master_name" env:"MASTER_NAME"`
	Username      string   `json:"username" env:"USERNAME"`
	Password      string   `json:"password" env:"PASSWORD"`
	DB            int      `json:"db" env:"DB"`
	// Expire is the per-key TTL in seconds, 0 keeps keys forever.
	Expire uint   `json:"expire" env:"EXPIRE"`
	Prefix string `json:"prefix" env:"PREFIX" default:"_kvstorage"`
}

type SQLiteConfig struct {
	Path  string `json:"path" env:"PATH" default:"kvstorage.db"`
	Table string `json:"table" env:"TABLE" default:"kvstorage"`
}

// NewConfig returns a config with every default applied.
func NewConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads an optional JSON file, fills in defaults and then
// applies KVSTORAGE_* environment overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := json.Unmarshal(bs, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}
	applyDefaults(cfg)
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, errors.Wrapf(err, "failed to parse environment")
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	// the struct tag defaults are shared by both scopes, the persistent side
	// differs in type and the session side must not share a table or prefix
	// with it, otherwise clearing one scope wipes the other
	if cfg.Local.Type == "" {
		cfg.Local.Type = StoreTypeSQLite
	}
	if cfg.Session.SQLite.Table == "" {
		cfg.Session.SQLite.Table = sessionTable
	}
	if cfg.Session.Redis.Prefix == "" {
		cfg.Session.Redis.Prefix = sessionPrefix
	}
	defaults.SetDefaults(cfg)
}
