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

package models

import "github.com/menagerie-labs/arena/database/types"

// VotingPosition backs one staked asset with a yield deposit and a
// governance deposit. EndEpoch is zero while the position is active.
// After liquidation DaiInvested and ZooInvested are frozen as a
// historical record: downstream settlement computes pro-rata shares
// from the amounts recorded at each epoch's comparison, so zeroing
// them would corrupt already-settled epochs.
type VotingPosition struct {
	DaiInvested       types.BigInt `gorm:"type:text;not null"`
	ZooInvested       types.BigInt `gorm:"type:text;not null"`
	VaultShares       types.BigInt `gorm:"type:text;not null"`
	Owner             string       `gorm:"size:255;index;not null"`
	StakingPositionID uint         `gorm:"index;not null"`
	ID                uint         `gorm:"primarykey"`
	StartEpoch        uint64
	EndEpoch          uint64
}

func (VotingPosition) TableName() string {
	return "voting_position"
}

// Liquidated returns true once the position has been closed
func (v *VotingPosition) Liquidated() bool {
	return v.EndEpoch != 0
}
