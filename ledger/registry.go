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
	"math/big"
	"time"

	"github.com/menagerie-labs/arena/database/models"
	"github.com/menagerie-labs/arena/database/types"
	"github.com/menagerie-labs/arena/event"
)

// NominateCollection registers a collection so that it can accumulate
// votes toward listing. Nominating an already-registered collection is
// a no-op.
func (l *Ledger) NominateCollection(
	now time.Time,
	address string,
	royaltyRecipient string,
) error {
	return l.run(now, "nominate_collection", func(ctx *opContext) error {
		existing, err := l.db.GetCollection(address, ctx.txn)
		if err != nil {
			return err
		}
		if existing != nil {
			return nil
		}
		collection := &models.Collection{
			Address:          address,
			RoyaltyRecipient: royaltyRecipient,
			State:            models.CollectionStateNominated,
			AddedEpoch:       ctx.epoch,
		}
		if err := l.db.SetCollection(collection, ctx.txn); err != nil {
			return err
		}
		return l.emit(
			ctx,
			event.CollectionNominatedEventType,
			event.CollectionNominatedEvent{
				Collection:       address,
				RoyaltyRecipient: royaltyRecipient,
				Epoch:            ctx.epoch,
			},
		)
	})
}

// AdmitCollection lists a collection administratively, bypassing the
// vote-weight threshold. Admitted collections are never delisted by
// settlement. Admitting an already-admitted collection is a no-op.
func (l *Ledger) AdmitCollection(
	now time.Time,
	address string,
	royaltyRecipient string,
) error {
	return l.run(now, "admit_collection", func(ctx *opContext) error {
		return l.admitOne(ctx, address, royaltyRecipient)
	})
}

// AdmitBatch lists multiple collections in a single transaction. The
// two lists pair up element-wise; either every admission applies or
// none do.
func (l *Ledger) AdmitBatch(
	now time.Time,
	addresses []string,
	royaltyRecipients []string,
) error {
	return l.run(now, "admit_batch", func(ctx *opContext) error {
		if len(addresses) != len(royaltyRecipients) {
			return fmt.Errorf(
				"%w: %d addresses, %d recipients",
				ErrLengthMismatch,
				len(addresses),
				len(royaltyRecipients),
			)
		}
		for i, address := range addresses {
			err := l.admitOne(ctx, address, royaltyRecipients[i])
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (l *Ledger) admitOne(
	ctx *opContext,
	address string,
	royaltyRecipient string,
) error {
	collection, err := l.db.GetCollection(address, ctx.txn)
	if err != nil {
		return err
	}
	if collection == nil {
		collection = &models.Collection{
			Address:    address,
			AddedEpoch: ctx.epoch,
		}
	}
	if collection.Admitted {
		return nil
	}
	collection.RoyaltyRecipient = royaltyRecipient
	collection.State = models.CollectionStateListed
	collection.ListedEpoch = ctx.epoch
	collection.Admitted = true
	if err := l.db.SetCollection(collection, ctx.txn); err != nil {
		return err
	}
	return l.emit(
		ctx,
		event.CollectionAdmittedEventType,
		event.CollectionAdmittedEvent{
			Collection:       address,
			RoyaltyRecipient: royaltyRecipient,
			Epoch:            ctx.epoch,
		},
	)
}

// VoteForCollection records a weighted vote for a nominated or listed
// collection. The vote stays active through the epoch the lock
// duration reaches, rounded up to a whole number of epochs. Crossing
// the listing threshold lists the collection immediately.
func (l *Ledger) VoteForCollection(
	now time.Time,
	voter string,
	address string,
	weight *big.Int,
	lockDuration time.Duration,
) (uint, error) {
	var entryId uint
	err := l.run(now, "vote_for_collection", func(ctx *opContext) error {
		if weight == nil || weight.Sign() <= 0 {
			return fmt.Errorf("%w: weight must be positive", ErrInsufficientWeight)
		}
		if lockDuration <= 0 {
			return fmt.Errorf(
				"%w: lock duration must be positive", ErrInvalidAmount,
			)
		}
		collection, err := l.db.GetCollection(address, ctx.txn)
		if err != nil {
			return err
		}
		if collection == nil {
			return fmt.Errorf("%w: collection %s", ErrUnknownEntity, address)
		}
		entry := &models.VoteEntry{
			Weight:       types.NewBigInt(new(big.Int).Set(weight)),
			Voter:        voter,
			CollectionID: collection.ID,
			StartEpoch:   ctx.epoch,
			EndEpoch:     ctx.epoch + l.eparams.EpochsCeil(lockDuration),
		}
		if err := l.db.SetVoteEntry(entry, ctx.txn); err != nil {
			return err
		}
		entryId = entry.ID
		err = l.emit(
			ctx,
			event.VotedForCollectionEventType,
			event.VotedForCollectionEvent{
				Voter:       voter,
				Collection:  address,
				Weight:      weight.String(),
				VoteEntryID: entry.ID,
				StartEpoch:  entry.StartEpoch,
				EndEpoch:    entry.EndEpoch,
			},
		)
		if err != nil {
			return err
		}
		if collection.Listed() {
			return nil
		}
		activeWeight, err := l.db.ActiveVoteWeight(
			collection.ID, ctx.epoch, ctx.txn,
		)
		if err != nil {
			return err
		}
		if activeWeight.Cmp(l.listingThreshold) < 0 {
			return nil
		}
		collection.State = models.CollectionStateListed
		collection.ListedEpoch = ctx.epoch
		if err := l.db.SetCollection(collection, ctx.txn); err != nil {
			return err
		}
		return l.emit(
			ctx,
			event.CollectionListedEventType,
			event.CollectionListedEvent{
				Collection:   address,
				ActiveWeight: activeWeight.String(),
				Epoch:        ctx.epoch,
			},
		)
	})
	return entryId, err
}

// Prolongate extends a vote entry's active span by the given lock
// duration counted from the current epoch. An entry can be prolonged
// while active and for one epoch after it expires; beyond that the
// weight must be placed through a fresh vote.
func (l *Ledger) Prolongate(
	now time.Time,
	voter string,
	entryId uint,
	lockDuration time.Duration,
) error {
	return l.run(now, "prolongate", func(ctx *opContext) error {
		if lockDuration <= 0 {
			return fmt.Errorf(
				"%w: lock duration must be positive", ErrInvalidAmount,
			)
		}
		entry, err := l.db.GetVoteEntry(entryId, ctx.txn)
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("%w: vote entry %d", ErrUnknownEntity, entryId)
		}
		if entry.Voter != voter {
			return fmt.Errorf(
				"%w: vote entry %d belongs to %s",
				ErrNotOwner, entryId, entry.Voter,
			)
		}
		// One epoch of grace after expiry, matching the window in
		// which the stale weight has not yet been settled away
		if ctx.epoch > entry.EndEpoch+1 {
			return fmt.Errorf(
				"%w: vote entry %d ended at epoch %d",
				ErrVoteExpired, entryId, entry.EndEpoch,
			)
		}
		// Re-base from the current epoch rather than stacking onto
		// the prior deadline
		newEnd := ctx.epoch + l.eparams.EpochsCeil(lockDuration)
		if newEnd <= entry.EndEpoch {
			newEnd = entry.EndEpoch + 1
		}
		oldEnd := entry.EndEpoch
		entry.EndEpoch = newEnd
		if err := l.db.SetVoteEntry(entry, ctx.txn); err != nil {
			return err
		}
		return l.emit(
			ctx,
			event.VoteProlongedEventType,
			event.VoteProlongedEvent{
				Voter:       voter,
				VoteEntryID: entryId,
				OldEndEpoch: oldEnd,
				NewEndEpoch: newEnd,
			},
		)
	})
}
