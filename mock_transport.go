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

// MockTransport is a scripted Transport for tests. It advertises both
// capabilities and answers init with the D3 B0 key bytes unless told
// otherwise.
type MockTransport struct {
	initErr      error
	configureErr error
	sendErr      error
	receiveErr   error
	capabilities map[TransportCapability]bool
	sent         [][]byte
	responses    [][]byte
	settings     SerialSettings
	mu           sync.Mutex
	initCalls    int
	flushCalls   int
	receiveCalls int
	keyByte1     byte
	keyByte2     byte
	closed       bool
}

// NewMockTransport creates a mock that a default session can connect
// through.
func NewMockTransport() *MockTransport {
	return &MockTransport{
		capabilities: map[TransportCapability]bool{
			CapabilityFullInit: true,
			CapabilityChecksum: true,
		},
		keyByte1: KeyByte1,
		keyByte2: KeyByte2,
	}
}

// SetCapability overrides one capability flag
func (m *MockTransport) SetCapability(capability TransportCapability, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capabilities[capability] = enabled
}

// SetKeyBytes overrides the key bytes returned by InitBus
func (m *MockTransport) SetKeyBytes(kb1, kb2 byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyByte1, m.keyByte2 = kb1, kb2
}

// SetInitError makes InitBus fail
func (m *MockTransport) SetInitError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initErr = err
}

// SetSendError makes Send fail
func (m *MockTransport) SetSendError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sendErr = err
}

// SetReceiveError makes Receive fail
func (m *MockTransport) SetReceiveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiveErr = err
}

// QueueResponse appends one complete inbound frame to the receive script
func (m *MockTransport) QueueResponse(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, append([]byte(nil), data...))
}

// Sent returns copies of all frames handed to Send
func (m *MockTransport) Sent() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.sent))
	for i, s := range m.sent {
		out[i] = append([]byte(nil), s...)
	}
	return out
}

// LastSent returns the most recent frame handed to Send, or nil
func (m *MockTransport) LastSent() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return nil
	}
	return append([]byte(nil), m.sent[len(m.sent)-1]...)
}

// InitCalls returns how many times InitBus was invoked
func (m *MockTransport) InitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCalls
}

// FlushCalls returns how many times FlushInput was invoked
func (m *MockTransport) FlushCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushCalls
}

// ReceiveCalls returns how many times Receive was invoked
func (m *MockTransport) ReceiveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.receiveCalls
}

// Settings returns the serial settings recorded by Configure
func (m *MockTransport) Settings() SerialSettings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// HasCapability implements TransportCapabilityChecker
func (m *MockTransport) HasCapability(capability TransportCapability) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capabilities[capability]
}

// Configure implements Transport
func (m *MockTransport) Configure(settings SerialSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.configureErr != nil {
		return m.configureErr
	}
	m.settings = settings
	return nil
}

// FlushInput implements Transport
func (m *MockTransport) FlushInput() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flushCalls++
	return nil
}

// InitBus implements Transport
func (m *MockTransport) InitBus(InitMode, byte) (byte, byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	if m.initErr != nil {
		return 0, 0, m.initErr
	}
	return m.keyByte1, m.keyByte2, nil
}

// Send implements Transport
func (m *MockTransport) Send(data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, append([]byte(nil), data...))
	return nil
}

// Receive implements Transport
func (m *MockTransport) Receive(buf []byte, _ time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiveCalls++
	if m.receiveErr != nil {
		return 0, m.receiveErr
	}
	if len(m.responses) == 0 {
		return 0, NewTimeoutError("receive", "mock")
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return copy(buf, resp), nil
}

// Close implements Transport
func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Type implements Transport
func (*MockTransport) Type() TransportType {
	return TransportMock
}
