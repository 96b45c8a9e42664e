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
	"log"
	"os"
)

// debugEnabled gates the verbose protocol trace. Set KWP6227_DEBUG to any
// non-empty value to enable it.
var debugEnabled = os.Getenv("KWP6227_DEBUG") != ""

func debugf(format string, args ...any) {
	if debugEnabled {
		log.Printf("kwp6227: "+format, args...)
	}
}

func debugln(args ...any) {
	if debugEnabled {
		log.Println(append([]any{"kwp6227:"}, args...)...)
	}
}
