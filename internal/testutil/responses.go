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

// Package testutil builds canned KWP6227 wire frames for tests.
package testutil

import (
	"github.com/voldiag/go-kwp6227/internal/frame"
)

// BuildResponseFrame assembles a complete inbound frame (header, payload,
// checksum) the way an ECU would put it on the wire.
func BuildResponseFrame(dst, src byte, payload []byte) []byte {
	buf := make([]byte, 0, frame.HeaderLen+len(payload)+frame.ChecksumLen)
	buf = append(buf, frame.LengthBase+byte(len(payload))+1, dst, src)
	buf = append(buf, payload...)
	buf = append(buf, frame.Checksum(buf))
	return buf
}

// BuildControlAck assembles the positive response an ECU sends for a
// one-byte control request: the service identifier with bit 6 set.
func BuildControlAck(dst, src, service byte) []byte {
	return BuildResponseFrame(dst, src, []byte{service | 0x40})
}
