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

package arena

import (
	"errors"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/menagerie-labs/arena/oracle"
	"github.com/prometheus/client_golang/prometheus"
)

type Config struct {
	promRegistry       prometheus.Registerer
	logger             *slog.Logger
	priceSource        oracle.PriceSource
	listingThreshold   *big.Int
	dataDir            string
	vaultId            string
	genesisTime        time.Time
	epochDuration      time.Duration
	firstStageDuration time.Duration
	settleInterval     time.Duration
	tokenDecimals      uint
}

func (c *Config) validate() error {
	if c.priceSource == nil {
		return errors.New("no price source configured")
	}
	if c.listingThreshold == nil || c.listingThreshold.Sign() <= 0 {
		return errors.New("listing threshold must be positive")
	}
	if c.genesisTime.IsZero() {
		return errors.New("genesis time not configured")
	}
	if c.settleInterval <= 0 {
		return errors.New("settle interval must be positive")
	}
	return nil
}

// ConfigOptionFunc is a type that represents functions that modify the arena config
type ConfigOptionFunc func(*Config)

// NewConfig creates a new arena config with the specified options
func NewConfig(opts ...ConfigOptionFunc) Config {
	c := Config{
		// Default logger will throw away logs
		// We do this so we don't have to add guards around every log operation
		logger:             slog.New(slog.NewJSONHandler(io.Discard, nil)),
		epochDuration:      7 * 24 * time.Hour,
		firstStageDuration: 2 * 24 * time.Hour,
		settleInterval:     time.Minute,
		tokenDecimals:      18,
	}
	// Apply options
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger specifies the logger to use. This defaults to discarding log output
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithPrometheusRegistry specifies the prometheus registry for metrics. Metrics are disabled by default
func WithPrometheusRegistry(registry prometheus.Registerer) ConfigOptionFunc {
	return func(c *Config) {
		c.promRegistry = registry
	}
}

// WithDataDir specifies the persistent data directory to use. The default is to store everything in memory
func WithDataDir(dataDir string) ConfigOptionFunc {
	return func(c *Config) {
		c.dataDir = dataDir
	}
}

// WithPriceSource specifies the vault share price source
func WithPriceSource(source oracle.PriceSource) ConfigOptionFunc {
	return func(c *Config) {
		c.priceSource = source
	}
}

// WithVaultId specifies the vault identifier passed to the price source on each read
func WithVaultId(vaultId string) ConfigOptionFunc {
	return func(c *Config) {
		c.vaultId = vaultId
	}
}

// WithTokenDecimals specifies the yield token's decimal places. This defaults to 18
func WithTokenDecimals(decimals uint) ConfigOptionFunc {
	return func(c *Config) {
		c.tokenDecimals = decimals
	}
}

// WithListingThreshold specifies the cumulative vote weight at which a collection becomes listed
func WithListingThreshold(threshold *big.Int) ConfigOptionFunc {
	return func(c *Config) {
		c.listingThreshold = threshold
	}
}

// WithGenesisTime specifies the wall time of the first epoch's start.
// Persisted params from an existing database take precedence.
func WithGenesisTime(genesisTime time.Time) ConfigOptionFunc {
	return func(c *Config) {
		c.genesisTime = genesisTime
	}
}

// WithEpochDuration specifies the epoch length. This defaults to one week
func WithEpochDuration(d time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.epochDuration = d
	}
}

// WithFirstStageDuration specifies how long the staking stage lasts within each epoch. This defaults to two days
func WithFirstStageDuration(d time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.firstStageDuration = d
	}
}

// WithSettleInterval specifies how often the background settlement loop runs. This defaults to one minute
func WithSettleInterval(d time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.settleInterval = d
	}
}
