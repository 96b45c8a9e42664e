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

package kline

import (
	"testing"
	"time"

	kwp6227 "github.com/voldiag/go-kwp6227"
)

// TestTransportCreation verifies basic transport properties without
// touching hardware.
func TestTransportCreation(t *testing.T) {
	t.Parallel()

	testPortName := "/dev/ttyUSB0"
	transport := &Transport{portName: testPortName}

	if transport.portName != testPortName {
		t.Errorf("Expected port name %s, got %s", testPortName, transport.portName)
	}

	if transport.Type() != kwp6227.TransportKLine {
		t.Errorf("Expected transport type %v, got %v", kwp6227.TransportKLine, transport.Type())
	}

	if transport.IsConnected() {
		t.Error("Expected IsConnected() to return false for uninitialized transport")
	}
}

func TestTransportCapabilities(t *testing.T) {
	t.Parallel()

	transport := &Transport{}
	if !transport.HasCapability(kwp6227.CapabilityFullInit) {
		t.Error("kline must advertise full init")
	}
	if !transport.HasCapability(kwp6227.CapabilityChecksum) {
		t.Error("kline must advertise L2 checksum handling")
	}
	if transport.HasCapability("something_else") {
		t.Error("unknown capabilities must not be advertised")
	}
}

func TestOperationsWithoutPort(t *testing.T) {
	t.Parallel()

	transport := &Transport{portName: "COM9"}

	if err := transport.Configure(kwp6227.SerialSettings{BaudRate: 10400}); err == nil {
		t.Error("Configure must fail without an open port")
	}
	if err := transport.FlushInput(); err == nil {
		t.Error("FlushInput must fail without an open port")
	}
	if _, _, err := transport.InitBus(kwp6227.InitSlow5Baud, 0x10); err == nil {
		t.Error("InitBus must fail without an open port")
	}
	if err := transport.Send([]byte{0x82, 0x10, 0x13, 0xA0}, 0); err == nil {
		t.Error("Send must fail without an open port")
	}
	if _, err := transport.Receive(make([]byte, 18), 50*time.Millisecond); err == nil {
		t.Error("Receive must fail without an open port")
	}
	if err := transport.Close(); err != nil {
		t.Errorf("Close on unopened transport must be a no-op, got %v", err)
	}
}

func TestSlowInitRuns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		addr byte
		want []bitRun
	}{
		{
			name: "all zero address",
			addr: 0x00,
			// start + eight zero bits, then the stop bit
			want: []bitRun{{low: true, count: 9}, {low: false, count: 1}},
		},
		{
			name: "all ones address",
			addr: 0xFF,
			want: []bitRun{{low: true, count: 1}, {low: false, count: 9}},
		},
		{
			name: "alternating nibbles",
			addr: 0x33, // LSB first: 1 1 0 0 1 1 0 0
			want: []bitRun{
				{low: true, count: 1},  // start
				{low: false, count: 2}, // bits 0,1
				{low: true, count: 2},  // bits 2,3
				{low: false, count: 2}, // bits 4,5
				{low: true, count: 2},  // bits 6,7
				{low: false, count: 1}, // stop
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := slowInitRuns(tt.addr)
			if len(got) != len(tt.want) {
				t.Fatalf("slowInitRuns(0x%02X) = %v, want %v", tt.addr, got, tt.want)
			}

			totalBits := 0
			for i, run := range got {
				if run != tt.want[i] {
					t.Errorf("run %d = %v, want %v", i, run, tt.want[i])
				}
				totalBits += run.count
			}
			// Always one start, eight data and one stop bit.
			if totalBits != 10 {
				t.Errorf("total bit periods = %d, want 10", totalBits)
			}
		})
	}
}
