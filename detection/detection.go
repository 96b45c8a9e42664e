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

// Package detection enumerates serial ports that look like K-line interface
// cables. Detection is advisory: it cannot tell a K-line cable from any
// other USB-serial converter with the same bridge chip, so the result is a
// ranked candidate list, not a guarantee.
package detection

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// DeviceInfo describes one candidate serial device.
type DeviceInfo struct {
	// Path is the OS device path ("/dev/ttyUSB0", "COM3")
	Path string
	// Name is a human-readable description
	Name string
	// VIDPID is the USB vendor:product pair, empty for non-USB ports
	VIDPID string
	// SerialNumber is the USB serial number, if any
	SerialNumber string
	// Likely is set when the bridge chip is one commonly used in K-line
	// cables
	Likely bool
}

// knownBridges maps USB VID:PID pairs of serial bridge chips commonly found
// in K-line and OBD interface cables to a readable name.
var knownBridges = map[string]string{
	"0403:6001": "FTDI FT232R",
	"0403:6015": "FTDI FT231X",
	"10C4:EA60": "Silicon Labs CP210x",
	"1A86:7523": "WCH CH340",
	"067B:2303": "Prolific PL2303",
}

// DefaultBlocklist returns VID:PID pairs of devices known to misbehave when
// probed and excluded from detection results.
func DefaultBlocklist() []string {
	return []string{
		// Counterfeit FT232 chips re-flashed with a zero PID by older
		// FTDI drivers; they enumerate but drop bytes at 10400 baud.
		"0403:0000",
	}
}

// IsBlocked checks if a VID:PID pair is in the blocklist.
func IsBlocked(vidpid string, blocklist []string) bool {
	vidpid = strings.ToUpper(strings.TrimSpace(vidpid))
	for _, blocked := range blocklist {
		if vidpid == strings.ToUpper(strings.TrimSpace(blocked)) {
			return true
		}
	}
	return false
}

// Detect lists candidate K-line adapters, most promising first. USB ports
// with a known bridge chip are marked Likely and sorted to the front.
func Detect() ([]DeviceInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		// Some platforms cannot enumerate USB metadata; fall back to
		// the bare port list.
		fallback := fallbackPorts()
		if len(fallback) > 0 {
			return fallback, nil
		}
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}

	blocklist := DefaultBlocklist()

	var likely, rest []DeviceInfo
	for _, port := range ports {
		info := DeviceInfo{
			Path: port.Name,
			Name: port.Product,
		}

		if port.IsUSB {
			info.VIDPID = strings.ToUpper(port.VID + ":" + port.PID)
			info.SerialNumber = port.SerialNumber

			if IsBlocked(info.VIDPID, blocklist) {
				continue
			}

			if bridge, ok := knownBridges[info.VIDPID]; ok {
				info.Likely = true
				if info.Name == "" {
					info.Name = bridge
				}
			}
		}

		if info.Likely {
			likely = append(likely, info)
		} else {
			rest = append(rest, info)
		}
	}

	return append(likely, rest...), nil
}
