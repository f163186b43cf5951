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
	"github.com/menagerie-labs/arena/database/types"
	"gorm.io/gorm"
)

// GetRewardBalance returns the accumulated reward-token balance for an
// identity. Missing rows read as zero.
func (d *Database) GetRewardBalance(
	owner string,
	txn *Txn,
) (*big.Int, error) {
	var ret models.RewardBalance
	db := d.resolveDB(txn)
	result := db.Where("owner = ?", owner).First(&ret)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf(
			"GetRewardBalance: query: %w", result.Error,
		)
	}
	return ret.Amount.Int, nil
}

// CreditRewardBalance adds amount to an identity's reward balance,
// creating the row if needed
func (d *Database) CreditRewardBalance(
	owner string,
	amount *big.Int,
	txn *Txn,
) error {
	var row models.RewardBalance
	db := d.resolveDB(txn)
	result := db.Where("owner = ?", owner).First(&row)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf(
				"CreditRewardBalance: query: %w", result.Error,
			)
		}
		row = models.RewardBalance{
			Owner:  owner,
			Amount: types.NewBigInt(new(big.Int)),
		}
	}
	row.Amount = types.NewBigInt(
		new(big.Int).Add(row.Amount.Int, amount),
	)
	if result := db.Save(&row); result.Error != nil {
		return fmt.Errorf(
			"CreditRewardBalance: save: %w", result.Error,
		)
	}
	return nil
}
