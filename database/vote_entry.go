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

package database

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/menagerie-labs/arena/database/models"
	"gorm.io/gorm"
)

// GetVoteEntry returns a single vote entry by id, or nil if not found
func (d *Database) GetVoteEntry(
	id uint,
	txn *Txn,
) (*models.VoteEntry, error) {
	var ret models.VoteEntry
	db := d.resolveDB(txn)
	result := db.Where("id = ?", id).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetVoteEntry: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// GetVoteEntriesByCollection returns all vote entries for a collection
// in creation order. Entries are append-only, so expired entries are
// included; callers filter on the current epoch.
func (d *Database) GetVoteEntriesByCollection(
	collectionId uint,
	txn *Txn,
) ([]models.VoteEntry, error) {
	var ret []models.VoteEntry
	db := d.resolveDB(txn)
	result := db.Where("collection_id = ?", collectionId).
		Order("id").
		Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetVoteEntriesByCollection: query: %w", result.Error,
		)
	}
	return ret, nil
}

// ActiveVoteWeight sums the weight of all non-expired vote entries for
// a collection as of the given epoch
func (d *Database) ActiveVoteWeight(
	collectionId uint,
	currentEpoch uint64,
	txn *Txn,
) (*big.Int, error) {
	entries, err := d.GetVoteEntriesByCollection(collectionId, txn)
	if err != nil {
		return nil, fmt.Errorf("ActiveVoteWeight: %w", err)
	}
	total := new(big.Int)
	for _, entry := range entries {
		if entry.Expired(currentEpoch) {
			continue
		}
		total.Add(total, entry.Weight.Int)
	}
	return total, nil
}

// SetVoteEntry saves a vote entry
func (d *Database) SetVoteEntry(
	entry *models.VoteEntry,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(entry); result.Error != nil {
		return fmt.Errorf(
			"SetVoteEntry: save: %w", result.Error,
		)
	}
	return nil
}
