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
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voldiag/go-kwp6227/internal/testutil"
)

// fastConfig keeps the protocol timing but shrinks the fixed waits so the
// suite does not sleep through real bus delays.
func fastConfig() *SessionConfig {
	return &SessionConfig{
		InitMode:       InitSlow5Baud,
		RequestTimeout: 20 * time.Millisecond,
		SettleDelay:    time.Millisecond,
		StopWait:       50 * time.Millisecond,
	}
}

func newTestSession(t *testing.T, mock *MockTransport) *Session {
	t.Helper()
	session, err := New(mock, WithConfig(fastConfig()))
	require.NoError(t, err)
	return session
}

func connectTestSession(t *testing.T, mock *MockTransport) *Session {
	t.Helper()
	session := newTestSession(t, mock)
	require.NoError(t, session.Connect(0x10, TesterAddress))
	return session
}

func TestConnect(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)

	assert.True(t, session.Connected())
	assert.Equal(t, 1, mock.InitCalls())
	assert.GreaterOrEqual(t, mock.FlushCalls(), 1)

	kb1, kb2 := session.KeyBytes()
	assert.Equal(t, byte(KeyByte1), kb1)
	assert.Equal(t, byte(KeyByte2), kb2)

	target, source := session.Addresses()
	assert.Equal(t, byte(0x10), target)
	assert.Equal(t, byte(TesterAddress), source)

	// Zero bitrate falls back to the protocol default.
	assert.Equal(t, 10400, session.Bitrate())
	settings := mock.Settings()
	assert.Equal(t, 10400, settings.BaudRate)
	assert.Equal(t, 8, settings.DataBits)
	assert.Equal(t, 1, settings.StopBits)
	assert.Equal(t, ParityNone, settings.Parity)
}

func TestConnectMissingCapabilities(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		disable TransportCapability
	}{
		{name: "no full init", disable: CapabilityFullInit},
		{name: "no L2 checksum", disable: CapabilityChecksum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := NewMockTransport()
			mock.SetCapability(tt.disable, false)
			session := newTestSession(t, mock)

			err := session.Connect(0x10, TesterAddress)
			require.ErrorIs(t, err, ErrProtocolNotSupported)

			// Must fail before any bus activity.
			assert.Equal(t, 0, mock.InitCalls())
			assert.False(t, session.Connected())
		})
	}
}

func TestConnectInitModeRejected(t *testing.T) {
	t.Parallel()

	for _, mode := range []InitMode{InitFast, InitCARB} {
		mock := NewMockTransport()
		session, err := New(mock, WithConfig(fastConfig()), WithInitMode(mode))
		require.NoError(t, err)

		err = session.Connect(0x10, TesterAddress)
		require.ErrorIs(t, err, ErrInitNotSupported)
		assert.Equal(t, 0, mock.InitCalls())
	}
}

func TestConnectWrongKeyBytes(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetKeyBytes(0x8F, 0xE9) // KWP2000 pair, not ours
	session := newTestSession(t, mock)

	err := session.Connect(0x10, TesterAddress)
	require.ErrorIs(t, err, ErrWrongKeyBytes)

	// Session state must be fully released.
	assert.False(t, session.Connected())
	kb1, kb2 := session.KeyBytes()
	assert.Zero(t, kb1)
	assert.Zero(t, kb2)
	target, source := session.Addresses()
	assert.Zero(t, target)
	assert.Zero(t, source)
}

func TestConnectInitFailure(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	mock.SetInitError(errors.New("no ECU response"))
	session := newTestSession(t, mock)

	err := session.Connect(0x10, TesterAddress)
	require.Error(t, err)
	assert.False(t, session.Connected())
}

func TestConnectCustomBitrate(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	cfg := fastConfig()
	cfg.Bitrate = 9600
	session, err := New(mock, WithConfig(cfg))
	require.NoError(t, err)

	require.NoError(t, session.Connect(0x10, TesterAddress))
	assert.Equal(t, 9600, session.Bitrate())
	assert.Equal(t, 9600, mock.Settings().BaudRate)
}

func TestSendReceiveLoopback(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)

	for length := 1; length <= MaxPayload; length++ {
		payload := make([]byte, length)
		for i := range payload {
			payload[i] = byte(length + i)
		}

		require.NoError(t, session.Send(NewMessage(payload...)))

		sent := mock.LastSent()
		require.NotNil(t, sent)
		assert.Equal(t, byte(0x80+length+1), sent[0])

		// Loop the frame back the way the ECU would answer it.
		mock.QueueResponse(testutil.BuildResponseFrame(TesterAddress, 0x10, payload))
		msg, err := session.Receive(20 * time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, payload, msg.Data)
		assert.Equal(t, byte(TesterAddress), msg.Destination)
		assert.Equal(t, byte(0x10), msg.Source)
	}
}

func TestSendBadLengthNoTransportIO(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)

	require.ErrorIs(t, session.Send(NewMessage()), ErrBadLength)
	require.ErrorIs(t, session.Send(NewMessage(make([]byte, 15)...)), ErrBadLength)
	assert.Empty(t, mock.Sent())
}

func TestSendNotConnected(t *testing.T) {
	t.Parallel()

	session := newTestSession(t, NewMockTransport())
	require.ErrorIs(t, session.Send(NewMessage(0xA5)), ErrNotConnected)

	_, err := session.Receive(10 * time.Millisecond)
	require.ErrorIs(t, err, ErrNotConnected)
}

func TestStopWithResponse(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)
	mock.QueueResponse(testutil.BuildControlAck(TesterAddress, 0x10, svcStopDiagnosticSession))

	start := time.Now()
	require.NoError(t, session.Stop())

	// Acked stop must not fall back to the session-timeout wait.
	assert.Less(t, time.Since(start), session.config.StopWait)
	assert.False(t, session.Connected())

	sent := mock.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, []byte{svcStopDiagnosticSession}, sent[3:])
}

func TestStopWithoutResponse(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)

	start := time.Now()
	require.NoError(t, session.Stop())

	// No reply: Stop waits out the ECU's own session timeout instead of
	// reporting a failure.
	assert.GreaterOrEqual(t, time.Since(start), session.config.StopWait)
	assert.False(t, session.Connected())
}

func TestStopIdempotent(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)
	mock.QueueResponse(testutil.BuildControlAck(TesterAddress, 0x10, svcStopDiagnosticSession))

	require.NoError(t, session.Stop())
	sentAfterFirst := len(mock.Sent())
	require.NoError(t, session.Stop())
	assert.Equal(t, sentAfterFirst, len(mock.Sent()))
}

func TestOnIdleTimeoutSendsTesterPresent(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)
	mock.QueueResponse(testutil.BuildControlAck(TesterAddress, 0x10, svcTesterPresent))

	session.OnIdleTimeout()

	sent := mock.LastSent()
	require.NotNil(t, sent)
	assert.Equal(t, []byte{svcTesterPresent}, sent[3:])
	assert.True(t, session.Connected())
}

func TestOnIdleTimeoutSwallowsErrors(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)

	// No queued reply: the probe times out, and that must stay invisible.
	session.OnIdleTimeout()
	assert.True(t, session.Connected())

	// Inactive session: probe is a no-op.
	idle := newTestSession(t, NewMockTransport())
	idle.OnIdleTimeout()
}

func TestIdleClockAdvances(t *testing.T) {
	t.Parallel()

	mock := NewMockTransport()
	session := connectTestSession(t, mock)

	time.Sleep(10 * time.Millisecond)
	require.GreaterOrEqual(t, session.IdleFor(), 10*time.Millisecond)

	require.NoError(t, session.Send(NewMessage(0xA5)))
	assert.Less(t, session.IdleFor(), 10*time.Millisecond)
}
