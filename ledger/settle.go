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

package ledger

import (
	"fmt"
	"time"

	"github.com/menagerie-labs/arena/database/models"
	"github.com/menagerie-labs/arena/event"
)

// Settle applies any pending epoch settlement without performing any
// other mutation. Every mutating operation runs the same step first,
// so calling Settle explicitly is only needed to bound how much
// catch-up the next operation will carry.
func (l *Ledger) Settle(now time.Time) error {
	return l.run(now, "settle", func(ctx *opContext) error {
		// run already applied settleThrough
		return nil
	})
}

// settleThrough settles every finished epoch that has not been settled
// yet, in order, up to but excluding the current epoch. Settling epoch
// e re-evaluates listing eligibility as of epoch e+1, when e's expired
// vote entries no longer count. Idempotent: progress is tracked in the
// params row inside the same transaction, so a rolled back operation
// re-runs an identical settlement next time.
func (l *Ledger) settleThrough(ctx *opContext) error {
	params, err := l.db.GetLedgerParams(ctx.txn)
	if err != nil {
		return err
	}
	if params == nil {
		return fmt.Errorf("ledger params row missing")
	}
	for e := params.LastSettledEpoch + 1; e < ctx.epoch; e++ {
		if err := l.settleEpoch(ctx, e); err != nil {
			return err
		}
		params.LastSettledEpoch = e
	}
	return l.db.SetLedgerParams(params, ctx.txn)
}

func (l *Ledger) settleEpoch(ctx *opContext, epochId uint64) error {
	// Vote entries with endEpoch == epochId have just lapsed; listing
	// eligibility is re-checked against the epoch after the one being
	// settled
	evalEpoch := epochId + 1
	listed, err := l.db.GetCollectionsByState(
		models.CollectionStateListed, ctx.txn,
	)
	if err != nil {
		return err
	}
	var delisted uint
	for i := range listed {
		collection := &listed[i]
		if collection.Admitted {
			continue
		}
		activeWeight, err := l.db.ActiveVoteWeight(
			collection.ID, evalEpoch, ctx.txn,
		)
		if err != nil {
			return err
		}
		if activeWeight.Cmp(l.listingThreshold) >= 0 {
			continue
		}
		collection.State = models.CollectionStateNominated
		if err := l.db.SetCollection(collection, ctx.txn); err != nil {
			return err
		}
		delisted++
		err = l.emit(
			ctx,
			event.CollectionDelistedEventType,
			event.CollectionDelistedEvent{
				Collection: collection.Address,
				Epoch:      epochId,
			},
		)
		if err != nil {
			return err
		}
	}
	record := &models.EpochRecord{
		EpochID:       epochId,
		SettledTime:   ctx.now.Unix(),
		ListedCount:   uint(len(listed)) - delisted,
		DelistedCount: delisted,
	}
	if err := l.db.SetEpochRecord(record, ctx.txn); err != nil {
		return err
	}
	if l.metrics != nil {
		l.metrics.epochsSettled.Inc()
		l.metrics.delistedTotal.Add(float64(delisted))
	}
	l.logger.Info(
		"epoch settled",
		"component", "ledger",
		"epoch", epochId,
		"listed", record.ListedCount,
		"delisted", delisted,
	)
	return l.emit(
		ctx,
		event.EpochSettledEventType,
		event.EpochSettledEvent{
			Epoch:         epochId,
			ListedCount:   record.ListedCount,
			DelistedCount: delisted,
		},
	)
}
