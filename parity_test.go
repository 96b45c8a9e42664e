// go-kwp6227
// Copyright (c) 2026 The Voldiag Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-kwp6227.
//
// go-kwp6227 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-kwp6227 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-kwp6227; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package kwp6227

import (
	"testing"
)

func TestWithParity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  byte
		parity Parity
		want   byte
	}{
		{
			name:   "odd parity of all-zero byte sets bit 7",
			input:  0x00,
			parity: ParityOdd,
			want:   0x80,
		},
		{
			name:   "even parity of all-zero byte clears bit 7",
			input:  0x00,
			parity: ParityEven,
			want:   0x00,
		},
		{
			name:   "odd parity of tester address",
			input:  0x13, // three set bits, already odd
			parity: ParityOdd,
			want:   0x13,
		},
		{
			name:   "even parity of tester address",
			input:  0x13,
			parity: ParityEven,
			want:   0x93,
		},
		{
			name:   "odd parity of typical ECU address",
			input:  0x33, // four set bits
			parity: ParityOdd,
			want:   0xB3,
		},
		{
			name:   "existing high bit is replaced",
			input:  0x93,
			parity: ParityOdd,
			want:   0x13,
		},
		{
			name:   "odd parity of seven set bits",
			input:  0x7F,
			parity: ParityOdd,
			want:   0x7F,
		},
		{
			name:   "even parity of seven set bits",
			input:  0x7F,
			parity: ParityEven,
			want:   0xFF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := WithParity(tt.input, tt.parity); got != tt.want {
				t.Errorf("WithParity(0x%02X, %v) = 0x%02X, want 0x%02X", tt.input, tt.parity, got, tt.want)
			}
		})
	}
}

// WithParity must never change the low seven bits, whatever the input.
func TestWithParityPreservesLowBits(t *testing.T) {
	t.Parallel()

	for c := 0; c < 256; c++ {
		got := WithParity(byte(c), ParityOdd)
		if got&0x7F != byte(c)&0x7F {
			t.Fatalf("WithParity(0x%02X) = 0x%02X, low bits changed", c, got)
		}
	}
}
