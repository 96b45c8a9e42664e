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
	"time"

	"github.com/voldiag/go-kwp6227/internal/frame"
)

// MaxPayload is the largest payload a single KWP6227 frame can carry.
const MaxPayload = frame.MaxPayload

// buildFrame encodes an outbound message into the header and payload bytes
// handed to the transport. The trailing checksum is appended by the
// transport, but the length byte already counts it: 0x80 + payload + 1.
// This is the point where KWP6227 diverges from KWP2000, whose length value
// excludes the checksum.
func buildFrame(msg *Message, defaultDst, defaultSrc byte) ([]byte, error) {
	if len(msg.Data) < frame.MinPayload || len(msg.Data) > frame.MaxPayload {
		return nil, ErrBadLength
	}

	buf := make([]byte, frame.HeaderLen+len(msg.Data))
	buf[0] = frame.LengthBase + byte(len(msg.Data)) + 1
	buf[1] = msg.Destination
	if buf[1] == 0 {
		buf[1] = defaultDst
	}
	buf[2] = msg.Source
	if buf[2] == 0 {
		buf[2] = defaultSrc
	}
	copy(buf[frame.HeaderLen:], msg.Data)

	return buf, nil
}

// parseFrame decodes a complete received frame (header, payload, verified
// checksum) into a Message. The payload is everything past the header minus
// the trailing checksum byte.
func parseFrame(buf []byte) (*Message, error) {
	if len(buf) < frame.Overhead+frame.MinPayload {
		return nil, ErrBadLength
	}

	data := make([]byte, len(buf)-frame.Overhead)
	copy(data, buf[frame.HeaderLen:len(buf)-frame.ChecksumLen])

	return &Message{
		Data:        data,
		Destination: buf[1],
		Source:      buf[2],
		ReceivedAt:  time.Now(),
	}, nil
}
