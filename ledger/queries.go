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
)

// Read-side accessors. These read committed state directly and do not
// apply catch-up settlement, so a collection whose weight has lapsed
// stays listed until the next mutation or Settle call.

// Collection returns a collection by address
func (l *Ledger) Collection(address string) (*models.Collection, error) {
	collection, err := l.db.GetCollection(address, nil)
	if err != nil {
		return nil, err
	}
	if collection == nil {
		return nil, fmt.Errorf("%w: collection %s", ErrUnknownEntity, address)
	}
	return collection, nil
}

// Collections returns all collections in the given state
func (l *Ledger) Collections(state string) ([]models.Collection, error) {
	return l.db.GetCollectionsByState(state, nil)
}

// VoteEntry returns a vote entry by id
func (l *Ledger) VoteEntry(id uint) (*models.VoteEntry, error) {
	entry, err := l.db.GetVoteEntry(id, nil)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: vote entry %d", ErrUnknownEntity, id)
	}
	return entry, nil
}

// ActiveVoteWeight returns the summed weight of a collection's
// non-expired vote entries as of the given time
func (l *Ledger) ActiveVoteWeight(
	address string,
	now time.Time,
) (*big.Int, error) {
	collection, err := l.Collection(address)
	if err != nil {
		return nil, err
	}
	return l.db.ActiveVoteWeight(collection.ID, l.CurrentEpoch(now), nil)
}

// StakingPosition returns a staking position by id
func (l *Ledger) StakingPosition(id uint) (*models.StakingPosition, error) {
	position, err := l.db.GetStakingPosition(id, nil)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, fmt.Errorf("%w: staking position %d", ErrUnknownEntity, id)
	}
	return position, nil
}

// VotingPosition returns a voting position by id
func (l *Ledger) VotingPosition(id uint) (*models.VotingPosition, error) {
	position, err := l.db.GetVotingPosition(id, nil)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, fmt.Errorf("%w: voting position %d", ErrUnknownEntity, id)
	}
	return position, nil
}

// RewardBalance returns the accumulated reward-token balance for an
// identity. Identities with no balance read as zero.
func (l *Ledger) RewardBalance(owner string) (*big.Int, error) {
	return l.db.GetRewardBalance(owner, nil)
}

// EpochRecord returns the settlement record for an epoch, or an
// ErrUnknownEntity error if that epoch has not been settled
func (l *Ledger) EpochRecord(epochId uint64) (*models.EpochRecord, error) {
	record, err := l.db.GetEpochRecord(epochId, nil)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: epoch %d", ErrUnknownEntity, epochId)
	}
	return record, nil
}
