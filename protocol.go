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
	"fmt"
	"sort"
	"sync"
	"time"
)

// Protocol is the capability set every keyword protocol driver exposes to
// the surrounding framework, selected by name at configuration time.
type Protocol interface {
	// Connect negotiates the bus and activates the session
	Connect(target, source byte) error
	// Stop tears the session down; always succeeds for the caller
	Stop() error
	// Send transmits one message
	Send(msg *Message) error
	// Receive collects one inbound message
	Receive(timeout time.Duration) (*Message, error)
	// Request pairs one outbound message with one inbound message
	Request(msg *Message, timeout time.Duration) (*Message, error)
	// OnIdleTimeout issues the keepalive probe
	OnIdleTimeout()
}

// ProtocolFactory creates a protocol driver bound to a transport.
type ProtocolFactory func(transport Transport, opts ...Option) (Protocol, error)

var (
	protocolsMu sync.RWMutex
	protocols   = make(map[string]ProtocolFactory)
)

// RegisterProtocol makes a protocol driver selectable by name. Registering
// the same name twice panics, as does a nil factory.
func RegisterProtocol(name string, factory ProtocolFactory) {
	protocolsMu.Lock()
	defer protocolsMu.Unlock()
	if factory == nil {
		panic("kwp6227: RegisterProtocol factory is nil")
	}
	if _, dup := protocols[name]; dup {
		panic("kwp6227: RegisterProtocol called twice for " + name)
	}
	protocols[name] = factory
}

// OpenProtocol creates the named protocol driver on the given transport.
func OpenProtocol(name string, transport Transport, opts ...Option) (Protocol, error) {
	protocolsMu.RLock()
	factory, ok := protocols[name]
	protocolsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown protocol %q", name)
	}
	return factory(transport, opts...)
}

// Protocols returns the sorted names of all registered protocol drivers.
func Protocols() []string {
	protocolsMu.RLock()
	defer protocolsMu.RUnlock()
	names := make([]string, 0, len(protocols))
	for name := range protocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterProtocol("kwp6227", func(transport Transport, opts ...Option) (Protocol, error) {
		return New(transport, opts...)
	})
}
