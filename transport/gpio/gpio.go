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

// Package gpio provides a KWP6227 transport for boards like the Raspberry
// Pi where the K-line transceiver's TX input is also wired to a GPIO pin.
// The 5-baud wakeup is bit-banged on the pin, which works with UART drivers
// that cannot generate timed break conditions; the data phase runs over the
// regular serial port exactly as in the kline transport.
package gpio

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	kwp6227 "github.com/voldiag/go-kwp6227"
	"github.com/voldiag/go-kwp6227/transport/kline"
)

// slowInitBitPeriod is the bit time of the 5-baud address wakeup.
const slowInitBitPeriod = 200 * time.Millisecond

// Transport implements the kwp6227.Transport interface with a GPIO-assisted
// init. The embedded kline transport carries the whole data phase.
type Transport struct {
	*kline.Transport
	pin     gpio.PinIO
	pinName string
}

// New creates a GPIO-assisted transport. portName is the serial device for
// the data phase, pinName the GPIO pin wired to the K-line TX (e.g.
// "GPIO17").
func New(portName, pinName string) (*Transport, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}

	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("gpio pin %q: %w", pinName, kwp6227.ErrDeviceNotFound)
	}

	// K-line idles high.
	if err := pin.Out(gpio.High); err != nil {
		return nil, fmt.Errorf("failed to drive pin %q: %w", pinName, err)
	}

	serial, err := kline.New(portName)
	if err != nil {
		return nil, err
	}

	return &Transport{
		Transport: serial,
		pin:       pin,
		pinName:   pinName,
	}, nil
}

// Type returns the transport type
func (*Transport) Type() kwp6227.TransportType {
	return kwp6227.TransportGPIO
}

// InitBus implements kwp6227.Transport. The address goes out on the GPIO
// pin at 5 baud; the handshake completes on the serial port.
func (t *Transport) InitBus(mode kwp6227.InitMode, addr byte) (byte, byte, error) {
	if mode != kwp6227.InitSlow5Baud {
		return 0, 0, kwp6227.NewTransportError("init", t.pinName,
			fmt.Errorf("init mode %s not implemented", mode), kwp6227.ErrorTypePermanent)
	}

	if err := t.bangAddress(addr); err != nil {
		return 0, 0, err
	}

	return t.CompleteInit()
}

// Close releases the GPIO pin and the serial port.
func (t *Transport) Close() error {
	if t.pin != nil {
		_ = t.pin.Out(gpio.High)
		_ = t.pin.Halt()
		t.pin = nil
	}
	return t.Transport.Close()
}

// bangAddress clocks the address out on the pin: start bit low, eight data
// bits LSB first, stop bit high, 200 ms each.
func (t *Transport) bangAddress(addr byte) error {
	for _, level := range addressLevels(addr) {
		if err := t.pin.Out(level); err != nil {
			return kwp6227.NewTransportError("init", t.pinName,
				fmt.Errorf("pin write failed: %w", err), kwp6227.ErrorTypePermanent)
		}
		time.Sleep(slowInitBitPeriod)
	}
	return nil
}

// addressLevels expands the address byte into the ten pin levels of the
// 5-baud sequence.
func addressLevels(addr byte) []gpio.Level {
	levels := make([]gpio.Level, 0, 10)
	levels = append(levels, gpio.Low) // start bit
	for i := 0; i < 8; i++ {
		levels = append(levels, gpio.Level(addr&(1<<i) != 0))
	}
	return append(levels, gpio.High) // stop bit
}
