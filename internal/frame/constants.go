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

// Package frame provides wire constants and checksum helpers for KWP6227
// frames, shared between the driver core and the concrete transports.
package frame

// Frame layout constants
const (
	// HeaderLen is length byte + destination + source
	HeaderLen = 3
	// ChecksumLen is the single trailing checksum byte
	ChecksumLen = 1
	// MinPayload and MaxPayload bound the service bytes a frame can carry
	MinPayload = 1
	MaxPayload = 14
	// MaxFrame is the largest complete frame on the wire
	MaxFrame = HeaderLen + MaxPayload + ChecksumLen

	// LengthBase is added to the payload length in the header length byte.
	// Unlike KWP2000, the KWP6227 length value also counts the trailing
	// checksum byte, so the byte on the wire is LengthBase + payload + 1.
	LengthBase = 0x80
)

// Overhead is the number of non-payload bytes in a complete frame.
const Overhead = HeaderLen + ChecksumLen
