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
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"gorm.io/gorm"
)

// Txn coordinates a metadata transaction and a journal transaction.
// The two are first-class siblings, not nested: the journal commits
// first so that a metadata commit failure never leaves ledger state
// ahead of the event log.
type Txn struct {
	db          *Database
	metadataTxn *gorm.DB
	journalTxn  *badger.Txn
	lock        sync.Mutex
	// count of journal entries written but not yet committed
	journalPending int
	finished       bool
}

func NewTxn(db *Database) *Txn {
	return &Txn{
		db:          db,
		metadataTxn: db.db.Begin(),
		journalTxn:  db.journal.NewTransaction(true),
	}
}

// DB returns the parent database instance
func (t *Txn) DB() *Database {
	return t.db
}

// Metadata returns the underlying metadata transaction handle
func (t *Txn) Metadata() *gorm.DB {
	return t.metadataTxn
}

// Journal returns the journal transaction handle
func (t *Txn) Journal() *badger.Txn {
	return t.journalTxn
}

// Do executes the specified function in the context of the transaction.
// Any errors returned will result in the transaction being rolled back
func (t *Txn) Do(fn func(*Txn) error) error {
	if err := fn(t); err != nil {
		if err2 := t.Rollback(); err2 != nil {
			return fmt.Errorf(
				"rollback failed: %w: original error: %w",
				err2,
				err,
			)
		}
		return err
	}
	if err := t.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	return nil
}

func (t *Txn) Commit() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	// Commit journal transaction first (so if this fails, metadata never commits)
	if err := t.journalTxn.Commit(); err != nil {
		if result := t.metadataTxn.Rollback(); result.Error != nil {
			t.db.logger.Error(
				"metadata rollback failed after journal commit failure",
				"error", result.Error,
			)
		}
		t.finished = true
		return fmt.Errorf("journal commit failed: %w", err)
	}
	if result := t.metadataTxn.Commit(); result.Error != nil {
		t.db.logger.Error(
			"partial commit: journal committed, metadata failed",
			"error", result.Error,
		)
		// journal entries are already durable
		t.db.commitJournalSeq(t.journalPending)
		t.finished = true
		return fmt.Errorf(
			"partial commit: metadata commit failed after journal commit: %w",
			result.Error,
		)
	}
	t.db.commitJournalSeq(t.journalPending)
	t.finished = true
	return nil
}

func (t *Txn) Rollback() error {
	t.lock.Lock()
	defer t.lock.Unlock()
	if t.finished {
		return nil
	}
	t.journalTxn.Discard()
	result := t.metadataTxn.Rollback()
	t.finished = true
	if result.Error != nil {
		return fmt.Errorf("metadata rollback: %w", result.Error)
	}
	return nil
}

// Release releases transaction resources. It is equivalent to Rollback,
// with errors logged rather than returned, making it safe for deferred
// calls after a commit.
func (t *Txn) Release() {
	if err := t.Rollback(); err != nil {
		t.db.logger.Debug(
			"transaction release failed",
			"error", err,
		)
	}
}

// resolveDB returns the gorm handle for a query: the transaction's if
// one is given, the bare connection otherwise
func (d *Database) resolveDB(txn *Txn) *gorm.DB {
	if txn != nil {
		return txn.metadataTxn
	}
	return d.db
}
