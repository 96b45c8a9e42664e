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
	"sync"
	"time"
)

// BlockingMockTransport is a mock transport whose Receive blocks until
// Unblock() is called, the configured timeout expires, or the transport is
// closed. Used for exercising timeout paths.
type BlockingMockTransport struct {
	*MockTransport
	blockChan chan struct{}
	timeout   time.Duration
	blockMu   sync.Mutex
}

// NewBlockingMockTransport creates a new blocking mock transport
func NewBlockingMockTransport() *BlockingMockTransport {
	return &BlockingMockTransport{
		MockTransport: NewMockTransport(),
		blockChan:     make(chan struct{}),
		timeout:       5 * time.Second,
	}
}

// SetBlockTimeout overrides the default 5s blocking ceiling
func (m *BlockingMockTransport) SetBlockTimeout(d time.Duration) {
	m.blockMu.Lock()
	defer m.blockMu.Unlock()
	m.timeout = d
}

// Receive blocks until Unblock, the block timeout, or the receive timeout,
// whichever comes first, then behaves like MockTransport.Receive.
func (m *BlockingMockTransport) Receive(buf []byte, timeout time.Duration) (int, error) {
	m.blockMu.Lock()
	blockChan := m.blockChan
	ceiling := m.timeout
	m.blockMu.Unlock()

	if timeout > 0 && timeout < ceiling {
		ceiling = timeout
	}

	select {
	case <-blockChan:
		// Unblocked, deliver the scripted response.
	case <-time.After(ceiling):
		return 0, NewTimeoutError("receive", "mock")
	}

	return m.MockTransport.Receive(buf, timeout)
}

// Unblock allows blocked Receive calls to proceed
func (m *BlockingMockTransport) Unblock() {
	m.blockMu.Lock()
	defer m.blockMu.Unlock()
	close(m.blockChan)
	m.blockChan = make(chan struct{})
}
