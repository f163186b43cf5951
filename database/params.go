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

// GetLedgerParams returns the singleton params row, or nil if the
// ledger has not been initialized
func (d *Database) GetLedgerParams(
	txn *Txn,
) (*models.LedgerParams, error) {
	var ret models.LedgerParams
	db := d.resolveDB(txn)
	result := db.First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetLedgerParams: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// SetLedgerParams saves the params row
func (d *Database) SetLedgerParams(
	params *models.LedgerParams,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(params); result.Error != nil {
		return fmt.Errorf(
			"SetLedgerParams: save: %w", result.Error,
		)
	}
	return nil
}

// GetEpochRecord returns the settlement record for an epoch, or nil if
// the epoch has not been settled
func (d *Database) GetEpochRecord(
	epochId uint64,
	txn *Txn,
) (*models.EpochRecord, error) {
	var ret models.EpochRecord
	db := d.resolveDB(txn)
	result := db.Where("epoch_id = ?", epochId).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetEpochRecord: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// SetEpochRecord saves an epoch settlement record
func (d *Database) SetEpochRecord(
	record *models.EpochRecord,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(record); result.Error != nil {
		return fmt.Errorf(
			"SetEpochRecord: save: %w", result.Error,
		)
	}
	return nil
}
