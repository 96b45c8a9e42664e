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
)

// Message is the payload-level unit exchanged with callers: 1-14 service
// bytes plus optional explicit addressing. A zero Destination or Source
// falls back to the session's negotiated addresses on send. Inbound
// messages carry the receive completion time in ReceivedAt.
type Message struct {
	ReceivedAt  time.Time
	Data        []byte
	Destination byte
	Source      byte
}

// NewMessage creates an outbound message addressed with the session
// defaults.
func NewMessage(data ...byte) *Message {
	return &Message{Data: data}
}
