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

// GetCollection returns a single collection by its address, or nil if
// it was never registered
func (d *Database) GetCollection(
	address string,
	txn *Txn,
) (*models.Collection, error) {
	var ret models.Collection
	db := d.resolveDB(txn)
	result := db.Where("address = ?", address).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetCollection: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// GetCollectionByID returns a single collection by row id, or nil if not found
func (d *Database) GetCollectionByID(
	id uint,
	txn *Txn,
) (*models.Collection, error) {
	var ret models.Collection
	db := d.resolveDB(txn)
	result := db.Where("id = ?", id).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf(
			"GetCollectionByID: query: %w", result.Error,
		)
	}
	return &ret, nil
}

// GetCollectionsByState returns all collections in the given state,
// ordered by row id
func (d *Database) GetCollectionsByState(
	state string,
	txn *Txn,
) ([]models.Collection, error) {
	var ret []models.Collection
	db := d.resolveDB(txn)
	result := db.Where("state = ?", state).Order("id").Find(&ret)
	if result.Error != nil {
		return nil, fmt.Errorf(
			"GetCollectionsByState: query: %w", result.Error,
		)
	}
	return ret, nil
}

// SetCollection saves a collection
func (d *Database) SetCollection(
	collection *models.Collection,
	txn *Txn,
) error {
	db := d.resolveDB(txn)
	if result := db.Save(collection); result.Error != nil {
		return fmt.Errorf(
			"SetCollection: save: %w", result.Error,
		)
	}
	return nil
}
