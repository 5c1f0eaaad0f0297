// Copyright (C) 2025 useme-com
//
// This file is part of transferwise-go.
//
// transferwise-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// transferwise-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with transferwise-go.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads transferwise-go settings from a YAML file and
// TRANSFERWISE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	transferwise "github.com/useme-com/transferwise-go"
	"github.com/useme-com/transferwise-go/pkg/client"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. TRANSFERWISE_API_TOKEN
	EnvPrefix = "TRANSFERWISE"

	DefaultTimeout  = 30 * time.Second
	DefaultLogLevel = "info"
)

var keys = []string{
	"api_base_url",
	"api_token",
	"private_key_path",
	"private_key_passphrase",
	"timeout",
	"profile_id",
	"log.level",
	"log.development",
}

// Config holds the client settings read from file and environment
type Config struct {
	APIBaseURL           string        `mapstructure:"api_base_url"           validate:"required,url"`
	APIToken             string        `mapstructure:"api_token"              validate:"required"`
	PrivateKeyPath       string        `mapstructure:"private_key_path"       validate:"required"`
	PrivateKeyPassphrase string        `mapstructure:"private_key_passphrase"`
	Timeout              time.Duration `mapstructure:"timeout"                validate:"gte=0"`
	ProfileID            int64         `mapstructure:"profile_id"             validate:"gte=0"`
	Log                  LogConfig     `mapstructure:"log"`
}

// LogConfig selects the zap logger level and flavour
type LogConfig struct {
	Level       string `mapstructure:"level"       validate:"required,oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

// Load reads path (when non-empty) or ./transferwise.yaml (when present),
// overlays the environment and validates the result.
func Load(path string) (*Config, error) {
	vip := viper.New()
	if path != "" {
		vip.SetConfigFile(path)
	} else {
		vip.SetConfigName("transferwise")
		vip.AddConfigPath("./configs")
		vip.AddConfigPath(".")
	}

	vip.SetConfigType("yaml")
	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vip.AutomaticEnv()
	for _, key := range keys {
		if err := vip.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	vip.SetDefault("api_base_url", transferwise.DefaultSandboxURL)
	vip.SetDefault("timeout", DefaultTimeout)
	vip.SetDefault("log.level", DefaultLogLevel)

	if err := vip.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// ClientConfig returns the construction parameters of pkg/client
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		APIBaseURL:           c.APIBaseURL,
		APIToken:             c.APIToken,
		PrivateKeyPath:       c.PrivateKeyPath,
		PrivateKeyPassphrase: c.PrivateKeyPassphrase,
	}
}

// ClientOptions returns the client options implied by the configuration
func (c *Config) ClientOptions(logger *zap.Logger) []client.Option {
	return []client.Option{
		client.WithTimeout(c.Timeout),
		client.WithLogger(logger),
	}
}

// NewLogger builds a zap logger for cfg
func NewLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level

	return zcfg.Build()
}
