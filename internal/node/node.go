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

package node

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/menagerie-labs/arena"
	"github.com/menagerie-labs/arena/internal/config"
	"github.com/menagerie-labs/arena/oracle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BuildOptions converts the file/env configuration into arena config
// options. Shared between the serve and admit commands.
func BuildOptions(
	cfg *config.Config,
	logger *slog.Logger,
) ([]arena.ConfigOptionFunc, error) {
	threshold, ok := new(big.Int).SetString(cfg.ListingThreshold, 10)
	if !ok {
		return nil, fmt.Errorf(
			"invalid listing threshold: %s", cfg.ListingThreshold,
		)
	}
	sharePrice, ok := new(big.Rat).SetString(cfg.SharePrice)
	if !ok {
		return nil, fmt.Errorf("invalid share price: %s", cfg.SharePrice)
	}
	epochDuration, err := time.ParseDuration(cfg.EpochDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid epoch duration: %w", err)
	}
	firstStageDuration, err := time.ParseDuration(cfg.FirstStageDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid first stage duration: %w", err)
	}
	settleInterval, err := time.ParseDuration(cfg.SettleInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid settle interval: %w", err)
	}
	genesisTime := time.Now()
	if cfg.GenesisTime > 0 {
		genesisTime = time.Unix(cfg.GenesisTime, 0)
	}
	return []arena.ConfigOptionFunc{
		arena.WithLogger(logger),
		arena.WithDataDir(cfg.DatabasePath),
		arena.WithPriceSource(oracle.NewStaticSource(sharePrice)),
		arena.WithVaultId(cfg.VaultId),
		arena.WithTokenDecimals(cfg.TokenDecimals),
		arena.WithListingThreshold(threshold),
		arena.WithGenesisTime(genesisTime),
		arena.WithEpochDuration(epochDuration),
		arena.WithFirstStageDuration(firstStageDuration),
		arena.WithSettleInterval(settleInterval),
	}, nil
}

func Run(cfg *config.Config, logger *slog.Logger) error {
	logger.Debug(fmt.Sprintf("config: %+v", cfg), "component", "node")
	opts, err := BuildOptions(cfg, logger)
	if err != nil {
		return err
	}
	// Enable metrics with default prometheus registry
	opts = append(
		opts,
		arena.WithPrometheusRegistry(prometheus.DefaultRegisterer),
	)
	a, err := arena.New(arena.NewConfig(opts...))
	if err != nil {
		return err
	}
	// Metrics listener
	http.Handle("/metrics", promhttp.Handler())
	logger.Info(
		"serving prometheus metrics on "+fmt.Sprintf(
			"%s:%d",
			cfg.BindAddr,
			cfg.MetricsPort,
		),
		"component", "node",
	)
	metricsServer := &http.Server{
		Addr: fmt.Sprintf(
			"%s:%d",
			cfg.BindAddr,
			cfg.MetricsPort,
		),
		ReadHeaderTimeout: 60 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error(
				fmt.Sprintf("failed to start metrics listener: %s", err),
				"component", "node",
			)
			os.Exit(1)
		}
	}()
	// Wait for interrupt/termination signal
	signalCtx, signalCtxStop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer signalCtxStop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- a.Run(signalCtx)
	}()

	select {
	case <-signalCtx.Done():
		logger.Info("signal received, initiating graceful shutdown")
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			30*time.Second,
		)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn(
				"failed to shutdown metrics server",
				"component", "node",
				"error", err,
			)
		}
		return a.Stop()
	case err := <-errChan:
		return err
	}
}
