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

// Option is a functional option for configuring a Session
type Option func(*Session) error

// WithConfig replaces the whole session configuration.
func WithConfig(config *SessionConfig) Option {
	return func(s *Session) error {
		if config == nil {
			config = DefaultSessionConfig()
		}
		s.config = config
		return nil
	}
}

// WithBitrate sets the data-phase bitrate. Zero keeps the 10400 default.
func WithBitrate(bitrate int) Option {
	return func(s *Session) error {
		s.config.Bitrate = bitrate
		return nil
	}
}

// WithInitMode sets the requested bus initialization method. KWP6227 only
// accepts InitSlow5Baud; Connect fails otherwise.
func WithInitMode(mode InitMode) Option {
	return func(s *Session) error {
		s.config.InitMode = mode
		return nil
	}
}

// WithInterMessageDelay sets the minimum quiet time before each transmitted
// frame.
func WithInterMessageDelay(d time.Duration) Option {
	return func(s *Session) error {
		s.config.InterMessageDelay = d
		return nil
	}
}

// WithInterByteDelay sets the minimum pause between transmitted frame bytes.
func WithInterByteDelay(d time.Duration) Option {
	return func(s *Session) error {
		s.config.InterByteDelay = d
		return nil
	}
}

// WithRequestTimeout sets the receive timeout for internal control
// request/response cycles.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Session) error {
		s.config.RequestTimeout = d
		return nil
	}
}

// WithStopWait sets how long Stop waits for the ECU session timeout when
// the stop request goes unanswered.
func WithStopWait(d time.Duration) Option {
	return func(s *Session) error {
		s.config.StopWait = d
		return nil
	}
}
