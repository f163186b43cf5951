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
	"encoding/binary"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/menagerie-labs/arena/database/types"
)

var journalKeyPrefix = []byte("evt")

func journalKey(seq uint64) []byte {
	key := make([]byte, len(journalKeyPrefix)+8)
	copy(key, journalKeyPrefix)
	binary.BigEndian.PutUint64(key[len(journalKeyPrefix):], seq)
	return key
}

// JournalEntry is the persisted form of a published ledger event
type JournalEntry struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Seq     uint64          `json:"seq"`
	Time    int64           `json:"time"`
}

// AppendEvent appends a ledger event to the journal inside the given
// transaction. The sequence number is only advanced on commit, so a
// rolled back operation leaves no gap.
func (d *Database) AppendEvent(
	txn *Txn,
	eventType string,
	eventTime int64,
	payload any,
) (uint64, error) {
	if txn == nil {
		return 0, types.ErrNilTxn
	}
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("AppendEvent: encode payload: %w", err)
	}
	seq := d.nextSeq + uint64(txn.journalPending)
	entry := JournalEntry{
		Seq:     seq,
		Type:    eventType,
		Time:    eventTime,
		Payload: rawPayload,
	}
	rawEntry, err := json.Marshal(&entry)
	if err != nil {
		return 0, fmt.Errorf("AppendEvent: encode entry: %w", err)
	}
	if err := txn.Journal().Set(journalKey(seq), rawEntry); err != nil {
		return 0, fmt.Errorf("AppendEvent: journal set: %w", err)
	}
	txn.journalPending++
	return seq, nil
}

// GetEvent returns a single journal entry by sequence number
func (d *Database) GetEvent(seq uint64) (*JournalEntry, error) {
	var entry JournalEntry
	err := d.journal.View(func(txn *badger.Txn) error {
		item, err := txn.Get(journalKey(seq))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return types.ErrJournalKeyNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("GetEvent: %w", err)
	}
	return &entry, nil
}

// GetEventsAfter returns up to limit journal entries with sequence
// numbers at or after the given value, in order
func (d *Database) GetEventsAfter(
	seq uint64,
	limit int,
) ([]JournalEntry, error) {
	var ret []JournalEntry
	err := d.journal.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		it := txn.NewIterator(iterOpts)
		defer it.Close()
		for it.Seek(journalKey(seq)); it.ValidForPrefix(journalKeyPrefix); it.Next() {
			if limit > 0 && len(ret) >= limit {
				break
			}
			var entry JournalEntry
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &entry)
			})
			if err != nil {
				return err
			}
			ret = append(ret, entry)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("GetEventsAfter: %w", err)
	}
	return ret, nil
}

// commitJournalSeq advances the in-memory sequence counter after a
// successful commit. Called with the transaction lock held.
func (d *Database) commitJournalSeq(pending int) {
	d.nextSeq += uint64(pending)
}
