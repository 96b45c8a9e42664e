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

// Transport defines the byte-level interface to a K-line interface adapter.
// Implementations own the physical bit timing, the 5-baud init pulse train
// and checksum handling; the driver only invokes this narrow contract and
// never manages the adapter's lifecycle.
type Transport interface {
	// Configure sets the serial framing parameters for the data phase
	Configure(settings SerialSettings) error

	// FlushInput discards any pending input bytes
	FlushInput() error

	// InitBus performs bus initialization and returns the two key bytes
	// the ECU answered with. addr must already carry the parity bit the
	// init mode requires.
	InitBus(mode InitMode, addr byte) (kb1, kb2 byte, err error)

	// Send transmits a frame. interByteDelay is the minimum pause the
	// adapter must keep between consecutive bytes on the wire.
	Send(data []byte, interByteDelay time.Duration) error

	// Receive reads one inbound frame into buf and returns the number of
	// bytes received, including the trailing checksum byte.
	Receive(buf []byte, timeout time.Duration) (int, error)

	// Close closes the transport connection
	Close() error

	// Type returns the transport type
	Type() TransportType
}

// TransportType represents the type of transport
type TransportType string

const (
	// TransportKLine represents a plain serial K-line adapter.
	TransportKLine TransportType = "kline"
	// TransportGPIO represents a GPIO-assisted adapter that bit-bangs the
	// init sequence on a dedicated pin.
	TransportGPIO TransportType = "gpio"
	// TransportMock represents a mock transport for testing
	TransportMock TransportType = "mock"
)

// TransportCapability represents specific capabilities or behaviors of a
// transport
type TransportCapability string

const (
	// CapabilityFullInit indicates the transport performs the complete bus
	// initialization handshake itself (pulse train, sync byte, key byte
	// exchange).
	CapabilityFullInit TransportCapability = "full_init"

	// CapabilityChecksum indicates the transport appends the checksum on
	// transmit and verifies it on receive (L2 checksum handling).
	CapabilityChecksum TransportCapability = "l2_checksum"
)

// TransportCapabilityChecker defines an interface for querying transport
// capabilities. KWP6227 refuses to start on transports that do not advertise
// both CapabilityFullInit and CapabilityChecksum.
type TransportCapabilityChecker interface {
	// HasCapability returns true if the transport has the specified capability
	HasCapability(capability TransportCapability) bool
}

// InitMode selects the bus initialization method.
type InitMode byte

const (
	// InitSlow5Baud is the 5-baud address wakeup. The only mode KWP6227
	// supports.
	InitSlow5Baud InitMode = iota
	// InitFast is the KWP2000 fast init (25ms low, 25ms high wakeup).
	InitFast
	// InitCARB is the CARB/ISO9141 variant of the slow init.
	InitCARB
)

// String returns the init mode name.
func (m InitMode) String() string {
	switch m {
	case InitSlow5Baud:
		return "slow-5baud"
	case InitFast:
		return "fast"
	case InitCARB:
		return "carb"
	default:
		return "unknown"
	}
}

// SerialSettings holds the serial framing parameters for the data phase of
// a session. Parity here is the UART framing parity, which stays off for
// KWP6227 traffic; the init address parity is applied per byte instead.
type SerialSettings struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   Parity
}

// hasCapability checks a transport for a capability, treating transports
// that do not implement TransportCapabilityChecker as having none.
func hasCapability(t Transport, capability TransportCapability) bool {
	if checker, ok := t.(TransportCapabilityChecker); ok {
		return checker.HasCapability(capability)
	}
	return false
}
