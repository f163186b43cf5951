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

// RewardBalance accumulates reward-token credits per identity. Yield
// flushed at liquidation lands here; spending it is the business of
// the external lottery, not the ledger.
type RewardBalance struct {
	Amount types.BigInt `gorm:"type:text;not null"`
	Owner  string       `gorm:"size:255;uniqueIndex;not null"`
	ID     uint         `gorm:"primarykey"`
}

func (RewardBalance) TableName() string {
	return "reward_balance"
}
