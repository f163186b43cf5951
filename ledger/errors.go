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

import "errors"

// Failure kinds surfaced by ledger operations. Every operation
// validates all preconditions before mutating any state and aborts
// entirely on the first violation; callers match with errors.Is and
// read the wrapped message for the entity and invariant involved.
var (
	// ErrNotOwner indicates a caller/authorization mismatch
	ErrNotOwner = errors.New("caller is not the owner")

	// ErrUnknownEntity indicates a referenced id or collection does not exist
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrCollectionNotListed indicates the collection is not eligible for staking
	ErrCollectionNotListed = errors.New("collection not listed")

	// ErrCooldownActive indicates the staked asset has not finished its cooldown
	ErrCooldownActive = errors.New("staking cooldown active")

	// ErrInsufficientBalance indicates a withdrawal exceeds the position's balance
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientWeight indicates a vote with zero weight
	ErrInsufficientWeight = errors.New("insufficient vote weight")

	// ErrAlreadyLiquidated indicates the voting position is already closed
	ErrAlreadyLiquidated = errors.New("position already liquidated")

	// ErrVoteExpired indicates a vote entry lapsed beyond the prolongation grace window
	ErrVoteExpired = errors.New("vote entry expired")

	// ErrPositionInUse indicates active voting positions still reference the stake
	ErrPositionInUse = errors.New("staking position in use")

	// ErrWrongStage indicates the operation is not legal in the current epoch stage
	ErrWrongStage = errors.New("operation not legal in current stage")

	// ErrLengthMismatch indicates batch admission lists of unequal length
	ErrLengthMismatch = errors.New("batch list length mismatch")

	// ErrInvalidAmount indicates a zero or negative token amount
	ErrInvalidAmount = errors.New("invalid amount")
)
