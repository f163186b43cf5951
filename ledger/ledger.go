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

// Package ledger implements the epoch-gated position ledger: listing
// registry, staking ledger, voting ledger, and the lazy epoch
// settlement that ties them together. Operations are serialized under
// a single writer lock and run inside one database transaction each,
// so every operation either completes in full or leaves no trace.
package ledger

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/menagerie-labs/arena/database"
	"github.com/menagerie-labs/arena/database/models"
	"github.com/menagerie-labs/arena/epoch"
	"github.com/menagerie-labs/arena/event"
	"github.com/menagerie-labs/arena/oracle"
	"github.com/prometheus/client_golang/prometheus"
)

// Config carries the ledger's scalar configuration
type Config struct {
	Logger *slog.Logger
	// PromRegistry receives ledger metrics when non-nil
	PromRegistry prometheus.Registerer
	// ListingThreshold is the cumulative active vote weight at which a
	// nominated collection becomes listed
	ListingThreshold *big.Int
	// EpochParams holds genesis time and stage durations. When the
	// database already carries a params row, the stored values win.
	EpochParams epoch.Params
}

// Ledger is the single-writer state machine over the database. All
// mutating methods recompute the current epoch from the caller's
// timestamp and apply any pending settlement before their own effect.
type Ledger struct {
	db               *database.Database
	bus              *event.EventBus
	oracle           *oracle.Oracle
	eparams          epoch.Params
	listingThreshold *big.Int
	logger           *slog.Logger
	metrics          *ledgerMetrics
	mu               sync.Mutex
}

// New creates a ledger over the given database, event bus, and price
// oracle. The params row is created on first use and read back on
// subsequent opens.
func New(
	db *database.Database,
	bus *event.EventBus,
	orc *oracle.Oracle,
	cfg Config,
) (*Ledger, error) {
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if cfg.ListingThreshold == nil || cfg.ListingThreshold.Sign() <= 0 {
		return nil, fmt.Errorf("listing threshold must be positive")
	}
	l := &Ledger{
		db:               db,
		bus:              bus,
		oracle:           orc,
		eparams:          cfg.EpochParams,
		listingThreshold: new(big.Int).Set(cfg.ListingThreshold),
		logger:           logger,
	}
	if cfg.PromRegistry != nil {
		l.initMetrics(cfg.PromRegistry)
	}
	if err := l.loadOrInitParams(); err != nil {
		return nil, err
	}
	if err := l.eparams.Validate(); err != nil {
		return nil, fmt.Errorf("invalid epoch params: %w", err)
	}
	return l, nil
}

// loadOrInitParams reconciles the configured epoch params with the
// persisted row. Stored scalars win so that a restart with a changed
// config cannot silently renumber history.
func (l *Ledger) loadOrInitParams() error {
	stored, err := l.db.GetLedgerParams(nil)
	if err != nil {
		return err
	}
	if stored != nil {
		l.eparams = epoch.Params{
			GenesisTime:        time.Unix(stored.GenesisTime, 0),
			EpochDuration:      time.Duration(stored.EpochDuration) * time.Second,
			FirstStageDuration: time.Duration(stored.FirstStageDuration) * time.Second,
		}
		return nil
	}
	row := &models.LedgerParams{
		GenesisTime:        l.eparams.GenesisTime.Unix(),
		EpochDuration:      int64(l.eparams.EpochDuration / time.Second),
		FirstStageDuration: int64(l.eparams.FirstStageDuration / time.Second),
	}
	return l.db.SetLedgerParams(row, nil)
}

// EpochParams returns the active epoch configuration
func (l *Ledger) EpochParams() epoch.Params {
	return l.eparams
}

// CurrentEpoch returns the ledger epoch number at the given time.
// Ledger epochs are numbered from 1: epoch N covers
// [genesis+(N-1)*dur, genesis+N*dur). The offset keeps zero free as
// the "still active" sentinel on voting positions.
func (l *Ledger) CurrentEpoch(now time.Time) uint64 {
	return l.eparams.EpochOf(now) + 1
}

// CurrentStage returns the stage active at the given time
func (l *Ledger) CurrentStage(now time.Time) epoch.Stage {
	return l.eparams.StageOf(now)
}

// opContext carries per-operation state: the transaction, the caller's
// timestamp, and events queued for publication after commit
type opContext struct {
	txn    *database.Txn
	now    time.Time
	epoch  uint64
	stage  epoch.Stage
	events []event.Event
}

// emit journals an event inside the transaction and queues it for bus
// publication after a successful commit
func (l *Ledger) emit(
	ctx *opContext,
	eventType event.EventType,
	payload any,
) error {
	_, err := l.db.AppendEvent(
		ctx.txn,
		string(eventType),
		ctx.now.Unix(),
		payload,
	)
	if err != nil {
		return err
	}
	ctx.events = append(ctx.events, event.NewEvent(eventType, payload))
	return nil
}

// run executes one mutating operation: take the writer lock, open a
// transaction, apply catch-up settlement, apply the operation, commit,
// then publish queued events. A failure at any step rolls back the
// whole transaction, including settlement effects, which the next call
// will redo.
func (l *Ledger) run(
	now time.Time,
	op string,
	fn func(ctx *opContext) error,
) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	ctx := &opContext{
		now:   now,
		epoch: l.CurrentEpoch(now),
		stage: l.eparams.StageOf(now),
	}
	txn := l.db.Transaction()
	ctx.txn = txn
	err := txn.Do(func(txn *database.Txn) error {
		if err := l.settleThrough(ctx); err != nil {
			return err
		}
		return fn(ctx)
	})
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	if l.metrics != nil {
		l.metrics.operationsTotal.WithLabelValues(op, outcome).Inc()
		l.metrics.currentEpoch.Set(float64(ctx.epoch))
	}
	if err != nil {
		l.logger.Debug(
			"operation failed",
			"component", "ledger",
			"op", op,
			"epoch", ctx.epoch,
			"error", err,
		)
		return err
	}
	l.logger.Debug(
		"operation applied",
		"component", "ledger",
		"op", op,
		"epoch", ctx.epoch,
	)
	if l.bus != nil {
		for _, evt := range ctx.events {
			l.bus.Publish(evt.Type, evt)
		}
	}
	return nil
}
