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

// StakingPosition records one escrowed asset. The ledger owns the
// asset exclusively for the lifetime of the position. CreatedTime is
// kept alongside CreatedEpoch because the anti-flash-stake cooldown is
// measured in wall time, not epochs.
type StakingPosition struct {
	Owner        string `gorm:"size:255;index;not null"`
	CollectionID uint   `gorm:"index;not null"`
	TokenID      uint64 `gorm:"index;not null"`
	ID           uint   `gorm:"primarykey"`
	CreatedEpoch uint64
	CreatedTime  int64
	UnstakedTime int64
}

func (StakingPosition) TableName() string {
	return "staking_position"
}

// Staked returns true while the asset remains in escrow
func (s *StakingPosition) Staked() bool {
	return s.UnstakedTime == 0
}
