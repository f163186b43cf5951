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
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/menagerie-labs/arena/database/models"
	"github.com/menagerie-labs/arena/database/types"
	"github.com/menagerie-labs/arena/epoch"
	"github.com/menagerie-labs/arena/event"
	"github.com/menagerie-labs/arena/oracle"
)

// CreateVotingPosition deposits yield tokens behind a staked asset and
// opens a voting position. The deposit converts to vault shares at the
// oracle's current share price; the recorded amounts never change
// except through WithdrawDai. Only legal during the voting stage, and
// only once the stake's cooldown has elapsed.
func (l *Ledger) CreateVotingPosition(
	ctx context.Context,
	now time.Time,
	owner string,
	stakingPositionId uint,
	daiAmount *big.Int,
	zooAmount *big.Int,
) (uint, error) {
	var positionId uint
	err := l.run(now, "create_voting_position", func(opCtx *opContext) error {
		if opCtx.stage != epoch.StageVoting {
			return fmt.Errorf(
				"%w: voting is closed during %s",
				ErrWrongStage, opCtx.stage,
			)
		}
		if daiAmount == nil || daiAmount.Sign() <= 0 {
			return fmt.Errorf(
				"%w: dai amount must be positive", ErrInvalidAmount,
			)
		}
		if zooAmount == nil || zooAmount.Sign() < 0 {
			return fmt.Errorf(
				"%w: zoo amount must not be negative", ErrInvalidAmount,
			)
		}
		stake, err := l.db.GetStakingPosition(stakingPositionId, opCtx.txn)
		if err != nil {
			return err
		}
		if stake == nil || !stake.Staked() {
			return fmt.Errorf(
				"%w: staking position %d", ErrUnknownEntity, stakingPositionId,
			)
		}
		cooldownEnd := stake.CreatedTime +
			int64(l.eparams.FirstStageDuration/time.Second)
		if opCtx.now.Unix() < cooldownEnd {
			return fmt.Errorf(
				"%w: staking position %d cools down until %d",
				ErrCooldownActive, stakingPositionId, cooldownEnd,
			)
		}
		// Single price read per operation. A failure here aborts the
		// whole operation; the caller may retry once the oracle
		// recovers.
		rate, err := l.oracle.Rate(ctx)
		if err != nil {
			return err
		}
		shares := rate.TokensToShares(daiAmount)
		position := &models.VotingPosition{
			DaiInvested:       types.NewBigInt(new(big.Int).Set(daiAmount)),
			ZooInvested:       types.NewBigInt(new(big.Int).Set(zooAmount)),
			VaultShares:       types.NewBigInt(shares),
			Owner:             owner,
			StakingPositionID: stakingPositionId,
			StartEpoch:        opCtx.epoch,
		}
		if err := l.db.SetVotingPosition(position, opCtx.txn); err != nil {
			return err
		}
		positionId = position.ID
		return l.emit(
			opCtx,
			event.VotingPositionCreatedEventType,
			event.VotingPositionCreatedEvent{
				Owner:             owner,
				DaiAmount:         daiAmount.String(),
				ZooAmount:         zooAmount.String(),
				VaultShares:       shares.String(),
				VotingPositionID:  position.ID,
				StakingPositionID: stakingPositionId,
				Epoch:             opCtx.epoch,
			},
		)
	})
	return positionId, err
}

// WithdrawDai withdraws part or all of a voting position's yield
// deposit to the beneficiary. A request for less than the recorded
// deposit is a partial withdrawal, reducing daiInvested and
// zooInvested in lock-step proportion. A request for the full deposit
// or more liquidates the position: all remaining shares convert to
// tokens, any excess over daiInvested is credited to the beneficiary's
// reward balance, and the recorded amounts stay as a historical
// record.
func (l *Ledger) WithdrawDai(
	ctx context.Context,
	now time.Time,
	caller string,
	positionId uint,
	beneficiary string,
	amount *big.Int,
) error {
	return l.run(now, "withdraw_dai", func(opCtx *opContext) error {
		if amount == nil || amount.Sign() <= 0 {
			return fmt.Errorf(
				"%w: withdrawal amount must be positive", ErrInvalidAmount,
			)
		}
		position, err := l.db.GetVotingPosition(positionId, opCtx.txn)
		if err != nil {
			return err
		}
		if position == nil {
			return fmt.Errorf(
				"%w: voting position %d", ErrUnknownEntity, positionId,
			)
		}
		if position.Owner != caller {
			return fmt.Errorf(
				"%w: voting position %d belongs to %s",
				ErrNotOwner, positionId, position.Owner,
			)
		}
		if position.Liquidated() {
			return fmt.Errorf(
				"%w: voting position %d closed at epoch %d",
				ErrAlreadyLiquidated, positionId, position.EndEpoch,
			)
		}
		rate, err := l.oracle.Rate(ctx)
		if err != nil {
			return err
		}
		daiInvested := position.DaiInvested.Int
		if amount.Cmp(daiInvested) >= 0 {
			return l.liquidate(opCtx, position, beneficiary, rate)
		}
		shares := rate.TokensToShares(amount)
		if shares.Cmp(position.VaultShares.Int) > 0 {
			return fmt.Errorf(
				"%w: position %d holds %s shares, withdrawal needs %s",
				ErrInsufficientBalance,
				positionId,
				position.VaultShares.Int,
				shares,
			)
		}
		// Reduce zooInvested by the same fraction the withdrawal
		// takes from daiInvested, truncating toward zero
		zooReleased := new(big.Int).Mul(position.ZooInvested.Int, amount)
		zooReleased.Quo(zooReleased, daiInvested)
		position.DaiInvested = types.NewBigInt(
			new(big.Int).Sub(daiInvested, amount),
		)
		position.ZooInvested = types.NewBigInt(
			new(big.Int).Sub(position.ZooInvested.Int, zooReleased),
		)
		position.VaultShares = types.NewBigInt(
			new(big.Int).Sub(position.VaultShares.Int, shares),
		)
		if err := l.db.SetVotingPosition(position, opCtx.txn); err != nil {
			return err
		}
		return l.emit(
			opCtx,
			event.DaiWithdrawnEventType,
			event.DaiWithdrawnEvent{
				Beneficiary:      beneficiary,
				DaiAmount:        amount.String(),
				ZooReleased:      zooReleased.String(),
				VotingPositionID: positionId,
				Epoch:            opCtx.epoch,
			},
		)
	})
}

// liquidate closes a voting position. The recorded daiInvested and
// zooInvested values survive as historical fields; endEpoch is the
// sole liveness flag.
func (l *Ledger) liquidate(
	opCtx *opContext,
	position *models.VotingPosition,
	beneficiary string,
	rate *oracle.Rate,
) error {
	tokens := rate.SharesToTokens(position.VaultShares.Int)
	yield := new(big.Int).Sub(tokens, position.DaiInvested.Int)
	if yield.Sign() < 0 {
		yield.SetInt64(0)
	}
	if yield.Sign() > 0 {
		err := l.db.CreditRewardBalance(beneficiary, yield, opCtx.txn)
		if err != nil {
			return err
		}
	}
	position.EndEpoch = opCtx.epoch
	if err := l.db.SetVotingPosition(position, opCtx.txn); err != nil {
		return err
	}
	err := l.emit(
		opCtx,
		event.DaiWithdrawnEventType,
		event.DaiWithdrawnEvent{
			Beneficiary:      beneficiary,
			DaiAmount:        position.DaiInvested.Int.String(),
			ZooReleased:      position.ZooInvested.Int.String(),
			VotingPositionID: position.ID,
			Epoch:            opCtx.epoch,
		},
	)
	if err != nil {
		return err
	}
	return l.emit(
		opCtx,
		event.PositionLiquidatedEventType,
		event.PositionLiquidatedEvent{
			Beneficiary:      beneficiary,
			YieldFlushed:     yield.String(),
			ZooReturned:      position.ZooInvested.Int.String(),
			VotingPositionID: position.ID,
			Epoch:            opCtx.epoch,
		},
	)
}
