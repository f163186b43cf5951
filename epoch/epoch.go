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

// Package epoch derives the global epoch number and the active stage
// from a caller-supplied timestamp. Epoch state is never ambient: every
// operation passes "now" explicitly, which keeps the ledger
// deterministic under injected timestamps.
package epoch

import (
	"errors"
	"time"
)

// Stage identifies which operations are legal at a point within an epoch
type Stage int

const (
	// StageStaking covers the first part of each epoch: staking is
	// open and freshly staked assets are cooling down
	StageStaking Stage = iota
	// StageVoting covers the remainder of the epoch
	StageVoting
)

func (s Stage) String() string {
	switch s {
	case StageStaking:
		return "staking"
	case StageVoting:
		return "voting"
	default:
		return "unknown"
	}
}

var (
	ErrBeforeGenesis      = errors.New("timestamp before genesis time")
	ErrInvalidDuration    = errors.New("epoch duration must be positive")
	ErrFirstStageTooLarge = errors.New(
		"first stage duration must be shorter than epoch duration",
	)
)

// Params holds the scalar epoch configuration. Durations are truncated
// to whole seconds to match their persisted form.
type Params struct {
	GenesisTime        time.Time
	EpochDuration      time.Duration
	FirstStageDuration time.Duration
}

// Validate checks the params for internal consistency
func (p Params) Validate() error {
	if p.EpochDuration <= 0 {
		return ErrInvalidDuration
	}
	if p.FirstStageDuration <= 0 || p.FirstStageDuration >= p.EpochDuration {
		return ErrFirstStageTooLarge
	}
	return nil
}

// EpochOf returns the epoch number containing the given timestamp:
// floor((now - genesis) / epochDuration). Timestamps before genesis
// clamp to epoch zero.
func (p Params) EpochOf(now time.Time) uint64 {
	elapsed := now.Sub(p.GenesisTime)
	if elapsed < 0 {
		return 0
	}
	return uint64(elapsed / p.EpochDuration)
}

// EpochStart returns the wall time at which the given epoch begins
func (p Params) EpochStart(epochId uint64) time.Time {
	return p.GenesisTime.Add(time.Duration(epochId) * p.EpochDuration)
}

// StageOf returns the stage active at the given timestamp. The staking
// stage runs from each epoch boundary until FirstStageDuration has
// elapsed within the epoch.
func (p Params) StageOf(now time.Time) Stage {
	elapsed := now.Sub(p.GenesisTime)
	if elapsed < 0 {
		return StageStaking
	}
	intoEpoch := elapsed % p.EpochDuration
	if intoEpoch < p.FirstStageDuration {
		return StageStaking
	}
	return StageVoting
}

// EpochsCeil converts a duration to a whole number of epochs, rounding
// up. Used to derive vote lock end epochs from lock durations.
func (p Params) EpochsCeil(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	n := uint64(d / p.EpochDuration)
	if d%p.EpochDuration != 0 {
		n++
	}
	return n
}
