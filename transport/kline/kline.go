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

// Package kline provides a serial K-line transport for KWP6227 using plain
// USB-serial K-line cables. It performs the full 5-baud bus initialization
// with timed break conditions and handles the trailing frame checksum, so
// it advertises both the full-init and L2-checksum capabilities.
package kline

import (
	"fmt"
	"time"

	retry "github.com/avast/retry-go/v4"
	"go.bug.st/serial"

	kwp6227 "github.com/voldiag/go-kwp6227"
	"github.com/voldiag/go-kwp6227/internal/frame"
)

const (
	defaultBaudRate = 10400

	// slowInitBitPeriod is the bit time of the 5-baud address wakeup.
	slowInitBitPeriod = 200 * time.Millisecond

	// syncByte is what the ECU transmits at the data-phase baud rate once
	// the 5-baud address woke it up.
	syncByte = 0x55

	// syncTimeout bounds the wait for the sync byte (W1, up to 300 ms,
	// plus margin); keyByteTimeout bounds each key byte (W2/W3).
	syncTimeout    = 500 * time.Millisecond
	keyByteTimeout = 300 * time.Millisecond

	// keyAckDelay is the pause before acknowledging the second key byte
	// (W4).
	keyAckDelay = 30 * time.Millisecond

	// interByteGap ends an inbound frame: once the first byte arrived,
	// a read pause this long means the ECU is done transmitting.
	interByteGap = 50 * time.Millisecond

	// echoTimeout bounds draining our own transmission off the single
	// wire bus.
	echoTimeout = 100 * time.Millisecond
)

// Transport implements the kwp6227.Transport interface over a serial
// K-line adapter.
type Transport struct {
	port     serial.Port
	portName string
}

// New opens a K-line transport on the given serial port. Opening is retried
// a few times because USB-serial adapters briefly refuse access right after
// enumeration.
func New(portName string) (*Transport, error) {
	mode := &serial.Mode{
		BaudRate: defaultBaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	var port serial.Port
	err := retry.Do(
		func() error {
			p, err := serial.Open(portName, mode)
			if err != nil {
				return err
			}
			port = p
			return nil
		},
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open port %q: %w", portName, err)
	}

	_ = port.ResetInputBuffer()
	_ = port.ResetOutputBuffer()

	return &Transport{port: port, portName: portName}, nil
}

// HasCapability implements kwp6227.TransportCapabilityChecker
func (*Transport) HasCapability(capability kwp6227.TransportCapability) bool {
	switch capability {
	case kwp6227.CapabilityFullInit, kwp6227.CapabilityChecksum:
		return true
	default:
		return false
	}
}

// Type returns the transport type
func (*Transport) Type() kwp6227.TransportType {
	return kwp6227.TransportKLine
}

// IsConnected returns true if the serial port is open
func (t *Transport) IsConnected() bool {
	return t.port != nil
}

// Configure implements kwp6227.Transport
func (t *Transport) Configure(settings kwp6227.SerialSettings) error {
	if t.port == nil {
		return kwp6227.NewTransportError("configure", t.portName, kwp6227.ErrDeviceNotFound, kwp6227.ErrorTypePermanent)
	}

	mode := &serial.Mode{
		BaudRate: settings.BaudRate,
		DataBits: settings.DataBits,
	}
	if mode.BaudRate == 0 {
		mode.BaudRate = defaultBaudRate
	}
	if mode.DataBits == 0 {
		mode.DataBits = 8
	}

	switch settings.Parity {
	case kwp6227.ParityEven:
		mode.Parity = serial.EvenParity
	case kwp6227.ParityOdd:
		mode.Parity = serial.OddParity
	default:
		mode.Parity = serial.NoParity
	}

	if settings.StopBits == 2 {
		mode.StopBits = serial.TwoStopBits
	} else {
		mode.StopBits = serial.OneStopBit
	}

	if err := t.port.SetMode(mode); err != nil {
		return kwp6227.NewTransportError("configure", t.portName, err, kwp6227.ErrorTypePermanent)
	}
	return nil
}

// FlushInput implements kwp6227.Transport
func (t *Transport) FlushInput() error {
	if t.port == nil {
		return kwp6227.NewTransportError("flush", t.portName, kwp6227.ErrDeviceNotFound, kwp6227.ErrorTypePermanent)
	}
	if err := t.port.ResetInputBuffer(); err != nil {
		return kwp6227.NewTransportError("flush", t.portName, err, kwp6227.ErrorTypeTransient)
	}
	return nil
}

// InitBus implements kwp6227.Transport. It transmits the address at 5 baud
// using timed break conditions (a UART cannot run that slow), then collects
// the sync byte and the two key bytes at the data-phase baud rate and
// acknowledges the second key byte with its complement.
func (t *Transport) InitBus(mode kwp6227.InitMode, addr byte) (byte, byte, error) {
	if t.port == nil {
		return 0, 0, kwp6227.NewTransportError("init", t.portName, kwp6227.ErrDeviceNotFound, kwp6227.ErrorTypePermanent)
	}
	if mode != kwp6227.InitSlow5Baud {
		return 0, 0, kwp6227.NewTransportError("init", t.portName,
			fmt.Errorf("init mode %s not implemented", mode), kwp6227.ErrorTypePermanent)
	}

	if err := t.sendSlowAddress(addr); err != nil {
		return 0, 0, err
	}

	return t.CompleteInit()
}

// CompleteInit collects the ECU's side of the slow init handshake: the sync
// byte, both key bytes, and the closing address acknowledgement. It is
// split out from InitBus for adapters that produce the 5-baud wakeup by
// other means (see the gpio transport) but share the serial data phase.
func (t *Transport) CompleteInit() (byte, byte, error) {
	if t.port == nil {
		return 0, 0, kwp6227.NewTransportError("init", t.portName, kwp6227.ErrDeviceNotFound, kwp6227.ErrorTypePermanent)
	}

	// The wakeup pulses show up as garbage in our own receiver.
	_ = t.port.ResetInputBuffer()

	sync, err := t.readByte(syncTimeout)
	if err != nil {
		return 0, 0, kwp6227.NewTransportError("init", t.portName,
			fmt.Errorf("no sync byte: %w", err), kwp6227.ErrorTypeTransient)
	}
	if sync != syncByte {
		return 0, 0, kwp6227.NewTransportError("init", t.portName,
			fmt.Errorf("bad sync byte %02X", sync), kwp6227.ErrorTypeTransient)
	}

	kb1, err := t.readByte(keyByteTimeout)
	if err != nil {
		return 0, 0, kwp6227.NewTransportError("init", t.portName,
			fmt.Errorf("no first key byte: %w", err), kwp6227.ErrorTypeTransient)
	}
	kb2, err := t.readByte(keyByteTimeout)
	if err != nil {
		return 0, 0, kwp6227.NewTransportError("init", t.portName,
			fmt.Errorf("no second key byte: %w", err), kwp6227.ErrorTypeTransient)
	}

	time.Sleep(keyAckDelay)
	if err := t.writeAll([]byte{^kb2}); err != nil {
		return 0, 0, err
	}
	t.discardEcho(1)

	// The ECU closes the handshake with the inverted address; its exact
	// value does not matter for session setup.
	if _, err := t.readByte(keyByteTimeout); err != nil {
		return 0, 0, kwp6227.NewTransportError("init", t.portName,
			fmt.Errorf("no address acknowledgement: %w", err), kwp6227.ErrorTypeTransient)
	}

	return kb1, kb2, nil
}

// Send implements kwp6227.Transport. The trailing checksum is appended
// here; the driver core never sees it.
func (t *Transport) Send(data []byte, interByteDelay time.Duration) error {
	if t.port == nil {
		return kwp6227.NewTransportError("send", t.portName, kwp6227.ErrDeviceNotFound, kwp6227.ErrorTypePermanent)
	}

	buf := make([]byte, 0, len(data)+frame.ChecksumLen)
	buf = append(buf, data...)
	buf = append(buf, frame.Checksum(data))

	if interByteDelay <= 0 {
		if err := t.writeAll(buf); err != nil {
			return err
		}
	} else {
		for i, b := range buf {
			if i > 0 {
				time.Sleep(interByteDelay)
			}
			if err := t.writeAll([]byte{b}); err != nil {
				return err
			}
		}
	}

	// Single-wire bus: our own bytes come right back.
	t.discardEcho(len(buf))
	return nil
}

// Receive implements kwp6227.Transport. It reads one complete frame: the
// first byte may take up to timeout to arrive, after which a pause of
// interByteGap ends the frame. The verified checksum byte stays in buf and
// counts toward the returned length.
func (t *Transport) Receive(buf []byte, timeout time.Duration) (int, error) {
	if t.port == nil {
		return 0, kwp6227.NewTransportError("receive", t.portName, kwp6227.ErrDeviceNotFound, kwp6227.ErrorTypePermanent)
	}

	total, err := t.readFrame(buf, timeout)
	if err != nil {
		return 0, err
	}

	if !frame.ValidateTrailing(buf[:total]) {
		return 0, kwp6227.NewTransportError("receive", t.portName, kwp6227.ErrChecksumMismatch, kwp6227.ErrorTypeTransient)
	}

	return total, nil
}

// Close implements kwp6227.Transport
func (t *Transport) Close() error {
	if t.port == nil {
		return nil
	}
	err := t.port.Close()
	t.port = nil
	if err != nil {
		return fmt.Errorf("failed to close port %q: %w", t.portName, err)
	}
	return nil
}

// sendSlowAddress clocks the address byte out at 5 baud: one start bit,
// eight data bits LSB first, one stop bit. Low periods are produced with
// timed break conditions, high periods by letting the line idle.
func (t *Transport) sendSlowAddress(addr byte) error {
	for _, run := range slowInitRuns(addr) {
		d := time.Duration(run.count) * slowInitBitPeriod
		if run.low {
			if err := t.port.Break(d); err != nil {
				return kwp6227.NewTransportError("init", t.portName,
					fmt.Errorf("break failed: %w", err), kwp6227.ErrorTypePermanent)
			}
		} else {
			time.Sleep(d)
		}
	}
	return nil
}

// bitRun is a run of consecutive identical bit periods in the 5-baud
// address sequence.
type bitRun struct {
	low   bool
	count int
}

// slowInitRuns compresses the ten-bit 5-baud sequence (start, LSB-first
// data, stop) into runs so consecutive low bits become one long break.
func slowInitRuns(addr byte) []bitRun {
	bits := make([]bool, 0, 10)
	bits = append(bits, false) // start bit
	for i := 0; i < 8; i++ {
		bits = append(bits, addr&(1<<i) != 0)
	}
	bits = append(bits, true) // stop bit

	var runs []bitRun
	for _, high := range bits {
		if len(runs) > 0 && runs[len(runs)-1].low == !high {
			runs[len(runs)-1].count++
			continue
		}
		runs = append(runs, bitRun{low: !high, count: 1})
	}
	return runs
}

// readByte reads a single byte within the given deadline.
func (t *Transport) readByte(timeout time.Duration) (byte, error) {
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return 0, fmt.Errorf("set read timeout: %w", err)
	}

	one := make([]byte, 1)
	n, err := t.port.Read(one)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, kwp6227.ErrTransportTimeout
	}
	return one[0], nil
}

// readFrame fills buf with one frame's worth of bytes.
func (t *Transport) readFrame(buf []byte, timeout time.Duration) (int, error) {
	if err := t.port.SetReadTimeout(timeout); err != nil {
		return 0, kwp6227.NewTransportError("receive", t.portName, err, kwp6227.ErrorTypePermanent)
	}

	total := 0
	n, err := t.port.Read(buf)
	if err != nil {
		return 0, kwp6227.NewTransportError("receive", t.portName, err, kwp6227.ErrorTypeTransient)
	}
	if n == 0 {
		return 0, kwp6227.NewTimeoutError("receive", t.portName)
	}
	total += n

	if err := t.port.SetReadTimeout(interByteGap); err != nil {
		return 0, kwp6227.NewTransportError("receive", t.portName, err, kwp6227.ErrorTypePermanent)
	}
	for total < len(buf) {
		n, err := t.port.Read(buf[total:])
		if err != nil {
			return 0, kwp6227.NewTransportError("receive", t.portName, err, kwp6227.ErrorTypeTransient)
		}
		if n == 0 {
			break // inter-byte gap, frame complete
		}
		total += n
	}

	return total, nil
}

// writeAll writes the whole buffer, tolerating short writes.
func (t *Transport) writeAll(data []byte) error {
	for len(data) > 0 {
		n, err := t.port.Write(data)
		if err != nil {
			return kwp6227.NewTransportError("send", t.portName,
				fmt.Errorf("%w: %w", kwp6227.ErrTransportWrite, err), kwp6227.ErrorTypeTransient)
		}
		data = data[n:]
	}
	return nil
}

// discardEcho drains up to n echoed bytes off the single-wire bus. Missing
// echo bytes are tolerated; adapters with echo cancellation simply return
// nothing here.
func (t *Transport) discardEcho(n int) {
	if err := t.port.SetReadTimeout(echoTimeout); err != nil {
		return
	}
	scratch := make([]byte, n)
	for n > 0 {
		got, err := t.port.Read(scratch[:n])
		if err != nil || got == 0 {
			return
		}
		n -= got
	}
}
