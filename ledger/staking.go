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
	"github.com/menagerie-labs/arena/epoch"
	"github.com/menagerie-labs/arena/event"
)

// Stake places an asset from a listed collection into escrow and opens
// a staking position. Only legal during the staking stage of an epoch.
// Each asset instance can back at most one open position.
func (l *Ledger) Stake(
	now time.Time,
	owner string,
	address string,
	tokenId uint64,
) (uint, error) {
	var positionId uint
	err := l.run(now, "stake", func(ctx *opContext) error {
		if ctx.stage != epoch.StageStaking {
			return fmt.Errorf(
				"%w: staking is closed during %s",
				ErrWrongStage, ctx.stage,
			)
		}
		collection, err := l.db.GetCollection(address, ctx.txn)
		if err != nil {
			return err
		}
		if collection == nil {
			return fmt.Errorf("%w: collection %s", ErrUnknownEntity, address)
		}
		if !collection.Listed() {
			return fmt.Errorf(
				"%w: collection %s is %s",
				ErrCollectionNotListed, address, collection.State,
			)
		}
		existing, err := l.db.GetActiveStakingPositionByAsset(
			collection.ID, tokenId, ctx.txn,
		)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf(
				"%w: asset %s/%d already staked as position %d",
				ErrPositionInUse, address, tokenId, existing.ID,
			)
		}
		position := &models.StakingPosition{
			Owner:        owner,
			CollectionID: collection.ID,
			TokenID:      tokenId,
			CreatedEpoch: ctx.epoch,
			CreatedTime:  ctx.now.Unix(),
		}
		if err := l.db.SetStakingPosition(position, ctx.txn); err != nil {
			return err
		}
		positionId = position.ID
		return l.emit(
			ctx,
			event.AssetStakedEventType,
			event.AssetStakedEvent{
				Owner:             owner,
				Collection:        address,
				TokenID:           tokenId,
				StakingPositionID: position.ID,
				Epoch:             ctx.epoch,
			},
		)
	})
	return positionId, err
}

// Unstake releases a staked asset back to its owner and closes the
// position. Only legal during the staking stage, and only once every
// voting position referencing the stake has been liquidated.
func (l *Ledger) Unstake(
	now time.Time,
	owner string,
	positionId uint,
) error {
	return l.run(now, "unstake", func(ctx *opContext) error {
		if ctx.stage != epoch.StageStaking {
			return fmt.Errorf(
				"%w: unstaking is closed during %s",
				ErrWrongStage, ctx.stage,
			)
		}
		position, err := l.db.GetStakingPosition(positionId, ctx.txn)
		if err != nil {
			return err
		}
		if position == nil || !position.Staked() {
			return fmt.Errorf(
				"%w: staking position %d", ErrUnknownEntity, positionId,
			)
		}
		if position.Owner != owner {
			return fmt.Errorf(
				"%w: staking position %d belongs to %s",
				ErrNotOwner, positionId, position.Owner,
			)
		}
		activeVotes, err := l.db.CountActiveVotingPositionsByStake(
			positionId, ctx.txn,
		)
		if err != nil {
			return err
		}
		if activeVotes > 0 {
			return fmt.Errorf(
				"%w: %d active voting positions reference stake %d",
				ErrPositionInUse, activeVotes, positionId,
			)
		}
		collection, err := l.db.GetCollectionByID(
			position.CollectionID, ctx.txn,
		)
		if err != nil {
			return err
		}
		if collection == nil {
			return fmt.Errorf(
				"%w: collection %d", ErrUnknownEntity, position.CollectionID,
			)
		}
		position.UnstakedTime = ctx.now.Unix()
		if err := l.db.SetStakingPosition(position, ctx.txn); err != nil {
			return err
		}
		return l.emit(
			ctx,
			event.AssetUnstakedEventType,
			event.AssetUnstakedEvent{
				Owner:             owner,
				Collection:        collection.Address,
				TokenID:           position.TokenID,
				StakingPositionID: positionId,
				Epoch:             ctx.epoch,
			},
		)
	})
}
