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

// LedgerParams is the single-row table holding genesis time, the
// epoch/stage durations, and settlement progress. Durations are in
// seconds. Epoch numbering is a pure function of these values plus a
// caller-supplied timestamp, never of ambient clock state.
type LedgerParams struct {
	ID                 uint `gorm:"primarykey"`
	GenesisTime        int64
	EpochDuration      int64
	FirstStageDuration int64
	LastSettledEpoch   uint64
}

func (LedgerParams) TableName() string {
	return "ledger_params"
}
