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

package types

import (
	"math/big"
	"testing"
)

func TestBigIntRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "zero", value: "0"},
		{name: "small", value: "42"},
		{name: "token amount", value: "100000000000000000000"},
		{name: "negative delta", value: "-1"},
		{name: "beyond uint64", value: "99999999999999999999999999999999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orig, ok := new(big.Int).SetString(tt.value, 10)
			if !ok {
				t.Fatalf("bad test input: %s", tt.value)
			}
			v, err := BigInt{Int: orig}.Value()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			var decoded BigInt
			if err := decoded.Scan(v); err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if decoded.Cmp(orig) != 0 {
				t.Errorf("got %s, wanted %s", decoded.String(), tt.value)
			}
		})
	}
}

func TestBigIntScanBadInput(t *testing.T) {
	var b BigInt
	if err := b.Scan(12345); err == nil {
		t.Error("expected error for non-string input")
	}
	if err := b.Scan("not-a-number"); err == nil {
		t.Error("expected error for unparseable input")
	}
}

func TestBigIntNilValue(t *testing.T) {
	v, err := BigInt{}.Value()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if v != "0" {
		t.Errorf("got %v, wanted 0", v)
	}
}

func TestRatRoundTrip(t *testing.T) {
	orig := big.NewRat(1050000000000000000, 1000000000000000000)
	v, err := Rat{Rat: orig}.Value()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	var decoded Rat
	if err := decoded.Scan(v); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if decoded.Cmp(orig) != 0 {
		t.Errorf("got %s, wanted %s", decoded.String(), orig.String())
	}
}
