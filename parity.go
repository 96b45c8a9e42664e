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

// Parity selects a parity mode, both for UART framing in SerialSettings and
// for the per-byte address parity used during slow init.
type Parity byte

const (
	// ParityNone disables parity
	ParityNone Parity = iota
	// ParityEven selects even parity
	ParityEven
	// ParityOdd selects odd parity
	ParityOdd
)

// WithParity replaces the most significant bit of c with a parity bit
// computed over the low seven bits. The ECU address transmitted during the
// 5-baud init carries odd parity in bit 7; ongoing traffic does not.
func WithParity(c byte, parity Parity) byte {
	var p byte
	if parity == ParityOdd {
		p = 1
	}

	for i := 0; i < 7; i++ {
		p ^= c
		p <<= 1
	}

	return (c & 0x7f) | (p & 0x80)
}
