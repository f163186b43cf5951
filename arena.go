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

// Package arena ties the storage, oracle, event, and ledger components
// into a single embeddable service.
package arena

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/menagerie-labs/arena/database"
	"github.com/menagerie-labs/arena/epoch"
	"github.com/menagerie-labs/arena/event"
	"github.com/menagerie-labs/arena/ledger"
	"github.com/menagerie-labs/arena/oracle"
)

type Arena struct {
	config       Config
	db           *database.Database
	eventBus     *event.EventBus
	oracle       *oracle.Oracle
	ledger       *ledger.Ledger
	done         chan struct{}
	shutdownOnce sync.Once
}

// New opens the database and wires up the ledger. The returned Arena
// is ready for ledger calls; Run starts the background settlement
// loop.
func New(cfg Config) (*Arena, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	a := &Arena{
		config:   cfg,
		eventBus: event.NewEventBus(cfg.promRegistry, cfg.logger),
		done:     make(chan struct{}),
	}
	db, err := database.New(cfg.logger, cfg.dataDir)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.db = db
	a.oracle = oracle.New(cfg.priceSource, cfg.vaultId, cfg.tokenDecimals)
	l, err := ledger.New(a.db, a.eventBus, a.oracle, ledger.Config{
		Logger:           cfg.logger,
		PromRegistry:     cfg.promRegistry,
		ListingThreshold: cfg.listingThreshold,
		EpochParams: epoch.Params{
			GenesisTime:        cfg.genesisTime,
			EpochDuration:      cfg.epochDuration,
			FirstStageDuration: cfg.firstStageDuration,
		},
	})
	if err != nil {
		a.db.Close()
		return nil, fmt.Errorf("failed to create ledger: %w", err)
	}
	a.ledger = l
	return a, nil
}

// Ledger returns the underlying ledger for direct operation calls
func (a *Arena) Ledger() *ledger.Ledger {
	return a.ledger
}

// EventBus returns the event bus for subscribing to ledger events
func (a *Arena) EventBus() *event.EventBus {
	return a.eventBus
}

// Database returns the underlying database
func (a *Arena) Database() *database.Database {
	return a.db
}

// Run drives the periodic settlement loop until the context is
// canceled or Stop is called. Mutating calls settle lazily on their
// own, so the loop only bounds how stale the read side can get during
// quiet periods.
func (a *Arena) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.config.settleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return a.Stop()
		case <-a.done:
			return nil
		case <-ticker.C:
			if err := a.ledger.Settle(time.Now()); err != nil {
				a.config.logger.Error(
					"background settlement failed",
					"component", "arena",
					"error", err,
				)
			}
		}
	}
}

// Stop shuts down the background loop, the event bus, and the database
func (a *Arena) Stop() error {
	var err error
	a.shutdownOnce.Do(func() {
		close(a.done)
		a.eventBus.Stop()
		err = a.db.Close()
	})
	return err
}

// Close is an alias for Stop
func (a *Arena) Close() error {
	return a.Stop()
}
