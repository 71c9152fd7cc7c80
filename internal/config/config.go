// Package config loads Life Admin settings from defaults, an optional config
// file, LIFEADMIN_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"lifeadmin/internal/storage"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "LIFEADMIN"

// Config is the root configuration.
type Config struct {
	DBPath  string       `json:"db_path" mapstructure:"db_path"`
	Account string       `json:"account" mapstructure:"account"`
	Debug   bool         `json:"debug"   mapstructure:"debug"`
	Server  ServerConfig `json:"server"  mapstructure:"server"`
}

// ServerConfig describes the HTTP API listener.
type ServerConfig struct {
	Addr string `json:"addr" mapstructure:"addr"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) error {
	dbPath, err := storage.DefaultDBPath()
	if err != nil {
		return err
	}
	v.SetDefault("db_path", dbPath)
	v.SetDefault("account", storage.DefaultAccount)
	v.SetDefault("debug", false)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	return nil
}

// Load reads configuration into a Config. path may be empty, in which case
// only defaults, environment and flags bound on v apply. A missing file at an
// explicit path is an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if err := SetDefaults(v); err != nil {
		return Config{}, err
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c Config) Validate() error {
	c.Account = strings.TrimSpace(c.Account)
	if c.Account == "" {
		return errors.New("account must not be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("db_path must not be empty")
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("server.addr must not be empty")
	}
	return nil
}
