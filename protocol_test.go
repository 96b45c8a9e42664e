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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenProtocol(t *testing.T) {
	t.Parallel()

	proto, err := OpenProtocol("kwp6227", NewMockTransport(), WithConfig(fastConfig()))
	require.NoError(t, err)
	require.NotNil(t, proto)

	require.NoError(t, proto.Connect(0x10, TesterAddress))
	require.NoError(t, proto.Stop())
}

func TestOpenProtocolUnknown(t *testing.T) {
	t.Parallel()

	_, err := OpenProtocol("kwp9000", NewMockTransport())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown protocol")
}

func TestProtocolsListsRegistered(t *testing.T) {
	t.Parallel()

	assert.Contains(t, Protocols(), "kwp6227")
}

// Compile-time check that Session satisfies the Protocol capability set.
var _ Protocol = (*Session)(nil)
