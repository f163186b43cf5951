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
	"testing"
)

func mustBig(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("bad big.Int literal: %s", s)
	}
	return v
}

func TestSharesToTokensPowerOfTenPrice(t *testing.T) {
	// pps = 1e18 with 18 token decimals: conversion is the identity
	src := NewStaticSource(
		new(big.Rat).SetInt(mustBig(t, "1000000000000000000")),
	)
	o := New(src, "vault0", 18)
	rate, err := o.Rate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	shares := mustBig(t, "1000000000000000000")
	tokens := rate.SharesToTokens(shares)
	if tokens.Cmp(shares) != 0 {
		t.Errorf("got %s tokens, wanted %s", tokens, shares)
	}
	// pps = 2e18: one share is worth two tokens
	src.SetPrice(new(big.Rat).SetInt(mustBig(t, "2000000000000000000")))
	rate, err = o.Rate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	tokens = rate.SharesToTokens(shares)
	expected := mustBig(t, "2000000000000000000")
	if tokens.Cmp(expected) != 0 {
		t.Errorf("got %s tokens, wanted %s", tokens, expected)
	}
}

func TestTokensToSharesInverse(t *testing.T) {
	src := NewStaticSource(
		new(big.Rat).SetInt(mustBig(t, "2000000000000000000")),
	)
	o := New(src, "vault0", 18)
	rate, err := o.Rate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	tokens := mustBig(t, "1000000000000000000")
	shares := rate.TokensToShares(tokens)
	expected := mustBig(t, "500000000000000000")
	if shares.Cmp(expected) != 0 {
		t.Errorf("got %s shares, wanted %s", shares, expected)
	}
}

// Round-trip tolerance: sharesToTokens(tokensToShares(x)) may differ
// from x by at most one unit of token precision for any input in
// [1, 10^37], due to truncation toward zero.
func TestRoundTripTolerance(t *testing.T) {
	// A non-power-of-ten price: 1.05 tokens per share
	price := new(big.Rat).SetInt(mustBig(t, "1050000000000000000"))
	o := New(NewStaticSource(price), "vault0", 18)
	rate, err := o.Rate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	one := big.NewInt(1)
	for exp := 0; exp <= 37; exp++ {
		x := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
		// Throw in a non-power-of-ten neighbor as well
		for _, input := range []*big.Int{x, new(big.Int).Add(x, big.NewInt(7))} {
			got := rate.SharesToTokens(rate.TokensToShares(input))
			diff := new(big.Int).Sub(input, got)
			if diff.Sign() < 0 {
				t.Fatalf(
					"round-trip of %s grew to %s: value created from rounding",
					input, got,
				)
			}
			if diff.Cmp(one) > 0 {
				t.Errorf(
					"round-trip of %s lost %s units, tolerance is 1",
					input, diff,
				)
			}
		}
	}
}

func TestRateUnavailable(t *testing.T) {
	o := New(FailingSource{}, "vault0", 18)
	_, err := o.Rate(context.Background())
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("got %v, wanted ErrOracleUnavailable", err)
	}
}

func TestRateRejectsNonPositivePrice(t *testing.T) {
	src := NewStaticSource(new(big.Rat))
	o := New(src, "vault0", 18)
	_, err := o.Rate(context.Background())
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Errorf("got %v, wanted ErrOracleUnavailable", err)
	}
}
