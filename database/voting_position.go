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

// GetVotingPosition returns a single voting position by id, or nil if not found
func (d *Database) GetVotingPosition(
	id uint,
	txn *Txn,
) (*models.VotingPosition, error) {
	var ret models.VotingPosition
	db := d.resolveDB(txn)
	result := db.Where("id = ?", id).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetVotingPosition: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// CountActiveVotingPositionsByStake returns the number of
// non-liquidated voting positions referencing a staking position
func (d *Database) CountActiveVotingPositionsByStake(
	stakingPositionId uint,
	txn *Txn,
) (int64, error) {
	var count int64
	db := d.resolveDB(txn)
	result := db.Model(&models.VotingPosition{}).
		Where("staking_position_id = ? AND end_epoch = 0", stakingPositionId).
		Count(&count)
	if result.Error != nil {
		return 0, fmt.Errorf(
			"CountActiveVotingPositionsByStake: query: %w", result.Error,
		)
	}
	return count, nil
}

// GetActiveVotingPositions returns all non-liquidated voting
// positions, ordered by id
func (d *Database) GetActiveVotingPositions(
	txn *Txn,
) ([]models.VotingPosition, error) {
	var ret []models.VotingPosition
	db := d.resolveDB(txn)
	result := db.Where("end_epoch = 0").Order("id").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetActiveVotingPositions: query: %w", result.Error,
		)
	}
	return ret, nil
}

// SetVotingPosition saves a voting position
func (d *Database) SetVotingPosition(
	position *models.VotingPosition,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(position); result.Error != nil {
		return fmt.Errorf(
			"SetVotingPosition: save: %w", result.Error,
		)
	}
	return nil
}
