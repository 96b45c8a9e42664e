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

// Package keepalive owns the idle clock for a diagnostic session. The
// driver core only supplies the probe action (OnIdleTimeout); this monitor
// decides when to fire it so the ECU never times the session out.
package keepalive

import (
	"context"
	"time"
)

// Prober is the slice of a session the monitor needs: the idle clock and
// the probe action. *kwp6227.Session satisfies it.
type Prober interface {
	// Connected reports whether the session is active
	Connected() bool
	// IdleFor returns the time since the last frame was sent or received
	IdleFor() time.Duration
	// OnIdleTimeout issues the keepalive probe
	OnIdleTimeout()
}

// Config contains configuration options for the Monitor
type Config struct {
	// Interval is the idle ceiling; the probe fires when the session has
	// seen no traffic for this long. Must stay below the ECU's own
	// session timeout (around 5 s).
	Interval time.Duration
	// Poll is how often the idle clock is checked
	Poll time.Duration
}

// DefaultConfig returns conservative keepalive timing.
func DefaultConfig() *Config {
	return &Config{
		Interval: 2 * time.Second,
		Poll:     100 * time.Millisecond,
	}
}

// Monitor periodically checks a session's idle clock and fires the
// keepalive probe when it crosses the configured ceiling.
//
// The probe itself counts as traffic, so a quiet session is probed once per
// interval, not continuously. The monitor shares the session with the
// caller and relies on the caller not issuing operations concurrently with
// a firing probe; run it from the same goroutine loop that owns the
// session, or pause it around foreground requests.
type Monitor struct {
	prober Prober
	config *Config
}

// NewMonitor creates a keepalive monitor for a session.
func NewMonitor(prober Prober, config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}
	return &Monitor{
		prober: prober,
		config: config,
	}
}

// Run watches the idle clock until the context is cancelled or the session
// leaves the active state. It returns ctx.Err() on cancellation and nil
// when the session closed.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.config.Poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if !m.prober.Connected() {
			return nil
		}

		if m.prober.IdleFor() >= m.config.Interval {
			m.prober.OnIdleTimeout()
		}
	}
}
