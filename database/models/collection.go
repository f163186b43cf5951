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

// Collection eligibility states. A collection without a row is
// implicitly unlisted.
const (
	CollectionStateNominated = "nominated"
	CollectionStateListed    = "listed"
)

// Collection tracks the eligibility state of an asset collection.
// Admitted collections were listed administratively and never revert
// to nominated, regardless of vote weight.
type Collection struct {
	Address          string `gorm:"size:255;uniqueIndex;not null"`
	RoyaltyRecipient string `gorm:"size:255"`
	State            string `gorm:"size:32;index;not null"`
	ID               uint   `gorm:"primarykey"`
	AddedEpoch       uint64
	ListedEpoch      uint64
	Admitted         bool
}

func (Collection) TableName() string {
	return "collection"
}

// Listed returns true if the collection is currently eligible for staking
func (c *Collection) Listed() bool {
	return c.State == CollectionStateListed
}
