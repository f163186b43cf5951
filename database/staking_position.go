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

	"github.com/menagerie-labs/arena/database/models"
	"gorm.io/gorm"
)

// GetStakingPosition returns a single staking position by id, or nil if not found
func (d *Database) GetStakingPosition(
	id uint,
	txn *Txn,
) (*models.StakingPosition, error) {
	var ret models.StakingPosition
	db := d.resolveDB(txn)
	result := db.Where("id = ?", id).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetStakingPosition: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// GetActiveStakingPositionByAsset returns the active staking position
// holding the given asset, or nil. At most one position may hold an
// asset instance at a time.
func (d *Database) GetActiveStakingPositionByAsset(
	collectionId uint,
	tokenId uint64,
	txn *Txn,
) (*models.StakingPosition, error) {
	var ret models.StakingPosition
	db := d.resolveDB(txn)
	result := db.Where(
		"collection_id = ? AND token_id = ? AND unstaked_time = 0",
		collectionId,
		tokenId,
	).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetActiveStakingPositionByAsset: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// GetActiveStakingPositions returns all positions still holding their
// asset in escrow, ordered by id
func (d *Database) GetActiveStakingPositions(
	txn *Txn,
) ([]models.StakingPosition, error) {
	var ret []models.StakingPosition
	db := d.resolveDB(txn)
	result := db.Where("unstaked_time = 0").Order("id").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetActiveStakingPositions: query: %w", result.Error,
		)
	}
	return ret, nil
}

// SetStakingPosition saves a staking position
func (d *Database) SetStakingPosition(
	position *models.StakingPosition,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(position); result.Error != nil {
		return fmt.Errorf(
			"SetStakingPosition: save: %w", result.Error,
		)
	}
	return nil
}
