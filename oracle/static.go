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

package oracle

import (
	"context"
	"errors"
	"math/big"
	"sync"
)

// StaticSource is an in-process price source for dev and test use. The
// price can be moved forward to simulate yield accrual.
type StaticSource struct {
	mu    sync.RWMutex
	price *big.Rat
}

// NewStaticSource creates a source with the given initial price
func NewStaticSource(price *big.Rat) *StaticSource {
	return &StaticSource{
		price: new(big.Rat).Set(price),
	}
}

func (s *StaticSource) CurrentSharePrice(
	_ context.Context,
	_ string,
) (*big.Rat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.price == nil {
		return nil, errors.New("no price set")
	}
	return new(big.Rat).Set(s.price), nil
}

// SetPrice updates the share price. Prices only move up in a healthy
// vault, but no guard is enforced here so tests can exercise edge
// behavior.
func (s *StaticSource) SetPrice(price *big.Rat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.price = new(big.Rat).Set(price)
}

// FailingSource always reports the vault as unreachable
type FailingSource struct{}

func (FailingSource) CurrentSharePrice(
	_ context.Context,
	_ string,
) (*big.Rat, error) {
	return nil, errors.New("vault unreachable")
}
