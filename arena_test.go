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

package arena

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/menagerie-labs/arena/event"
	"github.com/menagerie-labs/arena/oracle"
	"github.com/stretchr/testify/require"
)

func newTestArena(t *testing.T) *Arena {
	t.Helper()
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
	a, err := New(NewConfig(
		WithDataDir(t.TempDir()),
		WithPriceSource(oracle.NewStaticSource(new(big.Rat).SetInt(scale))),
		WithListingThreshold(new(big.Int).Mul(big.NewInt(200), scale)),
		WithGenesisTime(time.Unix(1_700_000_000, 0)),
		WithEpochDuration(time.Hour),
		WithFirstStageDuration(20*time.Minute),
		WithSettleInterval(50*time.Millisecond),
	))
	require.NoError(t, err)
	t.Cleanup(func() { a.Stop() })
	return a
}

func TestArenaLifecycle(t *testing.T) {
	a := newTestArena(t)
	require.NotNil(t, a.Ledger())
	require.NotNil(t, a.EventBus())
	require.NotNil(t, a.Database())

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() {
		runDone <- a.Run(ctx)
	}()
	cancel()
	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for run loop to exit")
	}
	// Stop is idempotent
	require.NoError(t, a.Stop())
}

func TestArenaInvalidConfig(t *testing.T) {
	_, err := New(NewConfig())
	require.Error(t, err)
}

func TestArenaEndToEnd(t *testing.T) {
	a := newTestArena(t)
	now := time.Unix(1_700_000_000, 0).Add(time.Minute)
	subId, eventCh := a.EventBus().Subscribe(
		event.CollectionAdmittedEventType,
	)
	defer a.EventBus().Unsubscribe(
		event.CollectionAdmittedEventType, subId,
	)

	err := a.Ledger().AdmitCollection(now, "col1", "roy1")
	require.NoError(t, err)
	stakeId, err := a.Ledger().Stake(now, "alice", "col1", 7)
	require.NoError(t, err)
	position, err := a.Ledger().StakingPosition(stakeId)
	require.NoError(t, err)
	require.Equal(t, "alice", position.Owner)

	select {
	case evt := <-eventCh:
		require.Equal(t, event.CollectionAdmittedEventType, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for admission event")
	}
}
