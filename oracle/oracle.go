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

// Package oracle wraps an external yield-bearing vault behind a single
// share-price query and provides share/token conversions at a fixed
// rate snapshot. The vault is queried, never mutated.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// ErrOracleUnavailable is returned when the external vault cannot be
// queried. Callers must treat this as fatal to the enclosing operation
// and leave no partial state behind.
var ErrOracleUnavailable = errors.New("price oracle unavailable")

// PriceSource is the external vault boundary: one query returning the
// current share price as a rational number
type PriceSource interface {
	CurrentSharePrice(ctx context.Context, vaultId string) (*big.Rat, error)
}

// Oracle converts between vault shares and deposit tokens for one
// vault and one deposit-token type
type Oracle struct {
	source        PriceSource
	vaultId       string
	tokenScale    *big.Int
	tokenDecimals uint
}

// New creates an oracle for the given vault and deposit-token decimals
func New(source PriceSource, vaultId string, tokenDecimals uint) *Oracle {
	return &Oracle{
		source:        source,
		vaultId:       vaultId,
		tokenDecimals: tokenDecimals,
		tokenScale: new(big.Int).Exp(
			big.NewInt(10),
			big.NewInt(int64(tokenDecimals)), //nolint:gosec
			nil,
		),
	}
}

// TokenDecimals returns the deposit-token precision
func (o *Oracle) TokenDecimals() uint {
	return o.tokenDecimals
}

// Rate is a single atomic read of the share price. All conversions
// within one ledger operation must go through the same Rate so that a
// price change mid-operation cannot skew the books.
type Rate struct {
	price      *big.Rat
	tokenScale *big.Int
}

// Rate queries the current share price. The price is monotonically
// non-decreasing as yield accrues, but two reads in the same epoch may
// differ, so the snapshot must not be cached across operations.
func (o *Oracle) Rate(ctx context.Context) (*Rate, error) {
	price, err := o.source.CurrentSharePrice(ctx, o.vaultId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOracleUnavailable, err)
	}
	if price == nil || price.Sign() <= 0 {
		return nil, fmt.Errorf(
			"%w: invalid share price for vault %s",
			ErrOracleUnavailable,
			o.vaultId,
		)
	}
	return &Rate{
		price:      new(big.Rat).Set(price),
		tokenScale: o.tokenScale,
	}, nil
}

// SharesToTokens converts shares to tokens:
// tokens = shares * price / 10^tokenDecimals, truncated toward zero
func (r *Rate) SharesToTokens(shares *big.Int) *big.Int {
	// shares * num / (den * 10^dec)
	tokens := new(big.Int).Mul(shares, r.price.Num())
	divisor := new(big.Int).Mul(r.price.Denom(), r.tokenScale)
	return tokens.Quo(tokens, divisor)
}

// TokensToShares converts tokens to shares:
// shares = tokens * 10^tokenDecimals / price, truncated toward zero.
// Round-tripping through SharesToTokens may lose at most one unit of
// token precision to truncation.
func (r *Rate) TokensToShares(tokens *big.Int) *big.Int {
	// tokens * 10^dec * den / num
	shares := new(big.Int).Mul(tokens, r.tokenScale)
	shares.Mul(shares, r.price.Denom())
	return shares.Quo(shares, r.price.Num())
}
