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
	"log"
	"time"

	"github.com/voldiag/go-kwp6227/internal/frame"
)

// Protocol identification constants
const (
	// KeyByte1 and KeyByte2 are the fixed identification pair the ECU must
	// answer slow init with for this protocol (hence "Keyword D3 B0").
	KeyByte1 = 0xD3
	KeyByte2 = 0xB0

	// TesterAddress is the conventional source address for diagnostic
	// testers. Some ECUs refuse other addresses.
	TesterAddress = 0x13
)

// Control service identifiers
const (
	svcStopDiagnosticSession = 0xA0
	svcTesterPresent         = 0xA1
)

// receiveSlack is added to every receive timeout to absorb transport
// scheduling jitter.
const receiveSlack = 100 * time.Millisecond

type sessionState int

const (
	stateIdle sessionState = iota
	stateInitializing
	stateActive
	stateStopping
	stateClosed
)

// SessionConfig contains configuration options for a Session.
type SessionConfig struct {
	// Bitrate for the data phase. 0 selects the 10400 baud default.
	Bitrate int
	// InitMode is the requested bus initialization method. Anything other
	// than InitSlow5Baud fails Connect with ErrInitNotSupported.
	InitMode InitMode
	// InterMessageDelay is the minimum quiet time before each transmitted
	// frame, giving the ECU room to finish processing (P3 min).
	InterMessageDelay time.Duration
	// InterByteDelay is the minimum pause between bytes of a transmitted
	// frame (P4 min).
	InterByteDelay time.Duration
	// RequestTimeout bounds the receive half of internal control
	// request/response cycles (stop, keepalive).
	RequestTimeout time.Duration
	// SettleDelay is the quiet period after flushing input before the bus
	// init is started.
	SettleDelay time.Duration
	// StopWait is how long Stop waits for the ECU's own session timeout
	// when the stop request got no answer.
	StopWait time.Duration
}

// DefaultSessionConfig returns the timing defaults for KWP6227.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		Bitrate:           10400,
		InitMode:          InitSlow5Baud,
		InterMessageDelay: 55 * time.Millisecond,
		InterByteDelay:    5 * time.Millisecond,
		RequestTimeout:    1000 * time.Millisecond,
		SettleDelay:       300 * time.Millisecond,
		StopWait:          5000 * time.Millisecond,
	}
}

// Session drives one point-to-point KWP6227 diagnostic session over a
// transport.
//
// Thread Safety: Session is NOT thread-safe. The protocol is strictly
// half-duplex request/response, and address and state consistency depend on
// at most one in-flight operation per session. Callers must serialize
// access, e.g. one session per worker or an external mutex. Operations may
// block for bounded durations (up to StopWait during Stop); there is no
// cancellation mechanism beyond the timeouts.
type Session struct {
	lastActivity time.Time
	transport    Transport
	config       *SessionConfig
	state        sessionState
	target       byte
	source       byte
	bitrate      int
	keyByte1     byte
	keyByte2     byte
}

// New creates a Session on the given transport. The transport stays owned
// by the caller; the session never closes it.
func New(transport Transport, opts ...Option) (*Session, error) {
	session := &Session{
		transport: transport,
		config:    DefaultSessionConfig(),
		state:     stateIdle,
	}

	for _, opt := range opts {
		if err := opt(session); err != nil {
			return nil, err
		}
	}

	return session, nil
}

// Connect negotiates the bus and brings the session to the active state.
// target is the ECU address, source the tester address. On any failure the
// session state is released before the error is returned; no partial
// session remains visible.
func (s *Session) Connect(target, source byte) error {
	if !hasCapability(s.transport, CapabilityFullInit) || !hasCapability(s.transport, CapabilityChecksum) {
		return fmt.Errorf("%w: transport must do full init and L2 checksums", ErrProtocolNotSupported)
	}

	if s.config.InitMode != InitSlow5Baud {
		return fmt.Errorf("%w: got %s", ErrInitNotSupported, s.config.InitMode)
	}

	if source != TesterAddress {
		log.Printf("kwp6227: using tester address %02X, some ECUs require %02X", source, byte(TesterAddress))
	}

	s.state = stateInitializing
	s.target = target
	s.source = source
	s.bitrate = s.config.Bitrate
	if s.bitrate == 0 {
		s.bitrate = 10400
	}

	settings := SerialSettings{
		BaudRate: s.bitrate,
		DataBits: 8,
		StopBits: 1,
		Parity:   ParityNone,
	}
	if err := s.transport.Configure(settings); err != nil {
		s.release()
		return fmt.Errorf("failed to configure serial settings: %w", err)
	}

	if err := s.transport.FlushInput(); err != nil {
		s.release()
		return fmt.Errorf("failed to flush input: %w", err)
	}

	// Let the bus settle before waking the ECU.
	time.Sleep(s.config.SettleDelay)

	kb1, kb2, err := s.transport.InitBus(InitSlow5Baud, WithParity(target, ParityOdd))
	if err != nil {
		s.release()
		return fmt.Errorf("bus init failed: %w", err)
	}

	if kb1 != KeyByte1 || kb2 != KeyByte2 {
		s.release()
		return fmt.Errorf("%w: got %02X%02X", ErrWrongKeyBytes, kb1, kb2)
	}

	s.keyByte1 = kb1
	s.keyByte2 = kb2
	s.state = stateActive
	s.touch()

	debugf("session active: target=%02X source=%02X bitrate=%d", target, source, s.bitrate)
	return nil
}

// Send encodes msg into a frame and hands it to the transport. Zero
// Destination/Source fall back to the negotiated session addresses.
func (s *Session) Send(msg *Message) error {
	if s.state != stateActive && s.state != stateStopping {
		return ErrNotConnected
	}

	buf, err := buildFrame(msg, s.target, s.source)
	if err != nil {
		return err
	}

	time.Sleep(s.config.InterMessageDelay)

	if err := s.transport.Send(buf, s.config.InterByteDelay); err != nil {
		return fmt.Errorf("send failed: %w", err)
	}

	s.touch()
	return nil
}

// Receive reads exactly one inbound frame. Frames are fixed-shape, so a
// single transport read yields one logical message; there is no multi-frame
// reassembly.
func (s *Session) Receive(timeout time.Duration) (*Message, error) {
	if s.state != stateActive && s.state != stateStopping {
		return nil, ErrNotConnected
	}

	buf := make([]byte, frame.MaxFrame)
	n, err := s.transport.Receive(buf, timeout+receiveSlack)
	if err != nil {
		return nil, fmt.Errorf("receive failed: %w", err)
	}

	msg, err := parseFrame(buf[:n])
	if err != nil {
		return nil, err
	}

	s.touch()
	return msg, nil
}

// Request pairs one outbound message with exactly one correlated inbound
// message. A send failure short-circuits without attempting a receive.
func (s *Session) Request(msg *Message, timeout time.Duration) (*Message, error) {
	if err := s.Send(msg); err != nil {
		return nil, err
	}

	resp, err := s.Receive(timeout)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, ErrNoResponse
	}

	return resp, nil
}

// Stop sends the StopDiagnosticSession request and releases the session.
// It always succeeds from the caller's perspective: if the ECU does not
// answer, Stop waits out the ECU's own session timeout instead of failing.
func (s *Session) Stop() error {
	if s.state != stateActive {
		s.release()
		return nil
	}

	s.state = stateStopping

	_, err := s.Request(NewMessage(svcStopDiagnosticSession), s.config.RequestTimeout)
	if err != nil {
		log.Printf("kwp6227: StopDiagnosticSession request failed, waiting for session to time out: %v", err)
		time.Sleep(s.config.StopWait)
	}

	s.release()
	debugln("session released")
	return nil
}

// OnIdleTimeout issues a TesterPresent probe to keep the ECU from timing
// out an idle session. The response, if any, is discarded; this is a
// best-effort probe and failures are swallowed.
func (s *Session) OnIdleTimeout() {
	if s.state != stateActive {
		return
	}

	if _, err := s.Request(NewMessage(svcTesterPresent), s.config.RequestTimeout); err != nil {
		debugf("keepalive probe failed: %v", err)
	}
}

// KeyBytes returns the identification pair received during init, or zeros
// when the session is not active.
func (s *Session) KeyBytes() (kb1, kb2 byte) {
	return s.keyByte1, s.keyByte2
}

// Addresses returns the negotiated target and source addresses.
func (s *Session) Addresses() (target, source byte) {
	return s.target, s.source
}

// Bitrate returns the negotiated data-phase bitrate.
func (s *Session) Bitrate() int {
	return s.bitrate
}

// Connected reports whether the session is in the active state.
func (s *Session) Connected() bool {
	return s.state == stateActive
}

// IdleFor returns how long ago the last frame was sent or received.
func (s *Session) IdleFor() time.Duration {
	if s.lastActivity.IsZero() {
		return 0
	}
	return time.Since(s.lastActivity)
}

// touch records traffic for the idle clock.
func (s *Session) touch() {
	s.lastActivity = time.Now()
}

// release frees all per-session state. After release the session is closed
// and a new Connect is required before further use.
func (s *Session) release() {
	s.target = 0
	s.source = 0
	s.bitrate = 0
	s.keyByte1 = 0
	s.keyByte2 = 0
	s.lastActivity = time.Time{}
	s.state = stateClosed
}
