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

package database_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/menagerie-labs/arena/database"
	"github.com/menagerie-labs/arena/database/models"
	"github.com/menagerie-labs/arena/database/types"
	"github.com/stretchr/testify/require"
)

func newTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(nil, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestTxnCommit(t *testing.T) {
	db := newTestDatabase(t)
	txn := db.Transaction()
	err := txn.Do(func(txn *database.Txn) error {
		collection := &models.Collection{
			Address:    "col1",
			State:      models.CollectionStateNominated,
			AddedEpoch: 1,
		}
		if err := db.SetCollection(collection, txn); err != nil {
			return err
		}
		_, err := db.AppendEvent(
			txn, "collection.nominated", 1000,
			map[string]string{"collection": "col1"},
		)
		return err
	})
	require.NoError(t, err)

	collection, err := db.GetCollection("col1", nil)
	require.NoError(t, err)
	require.NotNil(t, collection)
	require.Equal(t, models.CollectionStateNominated, collection.State)

	entries, err := db.GetEventsAfter(0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "collection.nominated", entries[0].Type)
	require.Equal(t, uint64(0), entries[0].Seq)
	require.Equal(t, int64(1000), entries[0].Time)
}

func TestTxnRollback(t *testing.T) {
	db := newTestDatabase(t)
	bogus := errors.New("bogus")
	txn := db.Transaction()
	err := txn.Do(func(txn *database.Txn) error {
		collection := &models.Collection{
			Address: "col1",
			State:   models.CollectionStateNominated,
		}
		if err := db.SetCollection(collection, txn); err != nil {
			return err
		}
		_, err := db.AppendEvent(
			txn, "collection.nominated", 1000, nil,
		)
		if err != nil {
			return err
		}
		return bogus
	})
	require.ErrorIs(t, err, bogus)

	collection, err := db.GetCollection("col1", nil)
	require.NoError(t, err)
	require.Nil(t, collection)
	entries, err := db.GetEventsAfter(0, 0)
	require.NoError(t, err)
	require.Empty(t, entries)

	// The next committed event reuses the rolled back sequence number
	txn = db.Transaction()
	err = txn.Do(func(txn *database.Txn) error {
		seq, err := db.AppendEvent(txn, "collection.admitted", 2000, nil)
		require.Equal(t, uint64(0), seq)
		return err
	})
	require.NoError(t, err)
	entries, err = db.GetEventsAfter(0, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, uint64(0), entries[0].Seq)
}

func TestJournalSequenceSurvivesReopen(t *testing.T) {
	dataDir := t.TempDir()
	db, err := database.New(nil, dataDir)
	require.NoError(t, err)
	txn := db.Transaction()
	err = txn.Do(func(txn *database.Txn) error {
		for i := range 3 {
			_, err := db.AppendEvent(
				txn, "staking.staked", int64(1000+i), nil,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = database.New(nil, dataDir)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	txn = db.Transaction()
	err = txn.Do(func(txn *database.Txn) error {
		seq, err := db.AppendEvent(txn, "staking.unstaked", 2000, nil)
		require.Equal(t, uint64(3), seq)
		return err
	})
	require.NoError(t, err)
	entries, err := db.GetEventsAfter(3, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "staking.unstaked", entries[0].Type)
}

func TestActiveVoteWeight(t *testing.T) {
	db := newTestDatabase(t)
	txn := db.Transaction()
	err := txn.Do(func(txn *database.Txn) error {
		collection := &models.Collection{
			Address: "col1",
			State:   models.CollectionStateNominated,
		}
		if err := db.SetCollection(collection, txn); err != nil {
			return err
		}
		entries := []models.VoteEntry{
			{
				Weight:       types.NewBigInt(big.NewInt(100)),
				Voter:        "alice",
				CollectionID: collection.ID,
				StartEpoch:   1,
				EndEpoch:     2,
			},
			{
				Weight:       types.NewBigInt(big.NewInt(50)),
				Voter:        "bob",
				CollectionID: collection.ID,
				StartEpoch:   1,
				EndEpoch:     5,
			},
		}
		for i := range entries {
			if err := db.SetVoteEntry(&entries[i], txn); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	collection, err := db.GetCollection("col1", nil)
	require.NoError(t, err)
	weight, err := db.ActiveVoteWeight(collection.ID, 2, nil)
	require.NoError(t, err)
	require.Zero(t, weight.Cmp(big.NewInt(150)))
	// The first entry lapses after epoch 2
	weight, err = db.ActiveVoteWeight(collection.ID, 3, nil)
	require.NoError(t, err)
	require.Zero(t, weight.Cmp(big.NewInt(50)))
}

func TestRewardBalance(t *testing.T) {
	db := newTestDatabase(t)
	balance, err := db.GetRewardBalance("alice", nil)
	require.NoError(t, err)
	require.Zero(t, balance.Sign())

	txn := db.Transaction()
	err = txn.Do(func(txn *database.Txn) error {
		if err := db.CreditRewardBalance(
			"alice", big.NewInt(100), txn,
		); err != nil {
			return err
		}
		return db.CreditRewardBalance("alice", big.NewInt(25), txn)
	})
	require.NoError(t, err)
	balance, err = db.GetRewardBalance("alice", nil)
	require.NoError(t, err)
	require.Zero(t, balance.Cmp(big.NewInt(125)))
}
