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

// EpochRecord is written once per settled epoch by the catch-up step
type EpochRecord struct {
	ID            uint   `gorm:"primarykey"`
	EpochID       uint64 `gorm:"uniqueIndex;not null"`
	SettledTime   int64
	ListedCount   uint
	DelistedCount uint
}

func (EpochRecord) TableName() string {
	return "epoch_record"
}
