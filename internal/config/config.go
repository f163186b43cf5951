// Copyright 2025 Menagerie Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "arena.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

type Config struct {
	DatabasePath string `yaml:"databasePath"                          split_words:"true"`
	BindAddr     string `yaml:"bindAddr"                              split_words:"true"`
	VaultId      string `yaml:"vaultId"                               split_words:"true"`
	// ListingThreshold is a decimal integer in the smallest token unit
	ListingThreshold string `yaml:"listingThreshold" split_words:"true"`
	// SharePrice is a decimal ratio of token units per vault share,
	// e.g. "1050000000000000000/1000000000000000000"
	SharePrice         string `yaml:"sharePrice"         split_words:"true"`
	EpochDuration      string `yaml:"epochDuration"      split_words:"true"`
	FirstStageDuration string `yaml:"firstStageDuration" split_words:"true"`
	SettleInterval     string `yaml:"settleInterval"     split_words:"true"`
	GenesisTime        int64  `yaml:"genesisTime"        split_words:"true"`
	MetricsPort        uint   `yaml:"metricsPort"        split_words:"true"`
	TokenDecimals      uint   `yaml:"tokenDecimals"      split_words:"true"`
}

var globalConfig = &Config{
	DatabasePath:       ".arena",
	BindAddr:           "0.0.0.0",
	VaultId:            "default",
	ListingThreshold:   "200000000000000000000",
	SharePrice:         "1/1",
	EpochDuration:      "168h",
	FirstStageDuration: "48h",
	SettleInterval:     "1m",
	GenesisTime:        0,
	MetricsPort:        12798,
	TokenDecimals:      18,
}

func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.arena/arena.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".arena", "arena.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
		// Try to check for /etc/arena/arena.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/arena/arena.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, globalConfig); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	// Environment variables override the config file
	if err := envconfig.Process("arena", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}
	return globalConfig, nil
}

func GetConfig() *Config {
	return globalConfig
}
