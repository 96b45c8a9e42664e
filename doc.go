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

/*
Package kwp6227 implements the KWP6227 ("Keyword D3 B0") diagnostic session
and framing driver, the keyword protocol used by engine and chassis ECUs for
extended diagnostics on the 1996-1998 Volvo 850, S40, C70, S70, V70, XC70,
V90 and possibly other models.

The message headers are similar, but not identical, to KWP2000: in KWP2000
the length value in the header counts the data bytes only, while in KWP6227
it also counts the trailing checksum byte, so the length value is one
greater than it would be in KWP2000.

The driver owns the session handshake (5-baud slow init with an odd-parity
address byte, key byte verification), frame construction and parsing,
synchronous request/response pairing, and the keepalive and stop control
messages. Byte-level serial I/O, the 5-baud bit timing, and checksum
handling are delegated to a Transport; the transport subpackages provide a
plain serial K-line adapter and a GPIO-assisted one.

Basic Usage:

	import (
	    "github.com/voldiag/go-kwp6227"
	    "github.com/voldiag/go-kwp6227/transport/kline"
	)

	transport, err := kline.New("/dev/ttyUSB0")
	if err != nil {
	    log.Fatal(err)
	}
	defer transport.Close()

	session, err := kwp6227.New(transport)
	if err != nil {
	    log.Fatal(err)
	}
	if err := session.Connect(0x10, kwp6227.TesterAddress); err != nil {
	    log.Fatal(err)
	}
	defer session.Stop()

	resp, err := session.Request(kwp6227.NewMessage(0xA5, 0x01), time.Second)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Printf("% X\n", resp.Data)

Sessions are strictly half-duplex and not safe for concurrent use; run one
session per goroutine or serialize access externally. The keepalive
subpackage provides an idle monitor that issues TesterPresent probes while
the session sits unused.
*/
package kwp6227
