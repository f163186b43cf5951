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

// VoteEntry is one token-weighted vote toward listing a collection.
// Entries are append-only: they are never deleted, and expiry is a
// computed predicate on the current epoch rather than a state change.
type VoteEntry struct {
	Weight       types.BigInt `gorm:"type:text;not null"`
	Voter        string       `gorm:"size:255;index;not null"`
	CollectionID uint         `gorm:"index;not null"`
	ID           uint         `gorm:"primarykey"`
	StartEpoch   uint64
	EndEpoch     uint64
}

func (VoteEntry) TableName() string {
	return "vote_entry"
}

// Expired returns true once the current epoch has passed the entry's end epoch
func (v *VoteEntry) Expired(currentEpoch uint64) bool {
	return currentEpoch > v.EndEpoch
}
