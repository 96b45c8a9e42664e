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
)

func TestIsRetryable(t *testing.T) {
	t.Parallel()
	tests := getIsRetryableTestCases()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsRetryable(tt.err)
			if got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func getIsRetryableTestCases() []struct {
	err  error
	name string
	want bool
} {
	return []struct {
		err  error
		name string
		want bool
	}{
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
		{
			name: "transport timeout retryable",
			err:  ErrTransportTimeout,
			want: true,
		},
		{
			name: "transport read retryable",
			err:  ErrTransportRead,
			want: true,
		},
		{
			name: "transport write retryable",
			err:  ErrTransportWrite,
			want: true,
		},
		{
			name: "checksum mismatch retryable",
			err:  ErrChecksumMismatch,
			want: true,
		},
		{
			name: "communication failed retryable",
			err:  ErrCommunicationFailed,
			want: true,
		},
		{
			name: "bad length not retryable",
			err:  ErrBadLength,
			want: false,
		},
		{
			name: "wrong key bytes not retryable",
			err:  ErrWrongKeyBytes,
			want: false,
		},
		{
			name: "protocol not supported not retryable",
			err:  ErrProtocolNotSupported,
			want: false,
		},
		{
			name: "init not supported not retryable",
			err:  ErrInitNotSupported,
			want: false,
		},
		{
			name: "device not found not retryable",
			err:  ErrDeviceNotFound,
			want: false,
		},
	}
}

func TestIsRetryableTransportError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		transport *TransportError
		name      string
		want      bool
	}{
		{
			name: "transient transport error",
			transport: &TransportError{
				Err:       errors.New("read interrupted"),
				Op:        "receive",
				Port:      "/dev/ttyUSB0",
				Type:      ErrorTypeTransient,
				Retryable: true,
			},
			want: true,
		},
		{
			name: "permanent transport error",
			transport: &TransportError{
				Err:       errors.New("port gone"),
				Op:        "send",
				Port:      "/dev/ttyUSB0",
				Type:      ErrorTypePermanent,
				Retryable: false,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsRetryable(tt.transport); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransportErrorFormatting(t *testing.T) {
	t.Parallel()

	inner := errors.New("device reports readiness to read but returned no data")
	err := NewTransportError("receive", "/dev/ttyUSB0", inner, ErrorTypeTransient)

	if got := err.Error(); got != "transport receive on /dev/ttyUSB0: device reports readiness to read but returned no data" {
		t.Errorf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to expose the inner error")
	}
	if !err.Retryable {
		t.Error("transient errors must be retryable")
	}

	bare := NewTransportError("send", "", inner, ErrorTypePermanent)
	if got := bare.Error(); got != "transport send: device reports readiness to read but returned no data" {
		t.Errorf("unexpected Error() without port: %q", got)
	}
	if bare.Retryable {
		t.Error("permanent errors must not be retryable")
	}
}

func TestNewTimeoutError(t *testing.T) {
	t.Parallel()

	err := NewTimeoutError("receive", "mock")
	if !errors.Is(err, ErrTransportTimeout) {
		t.Error("timeout errors must unwrap to ErrTransportTimeout")
	}
	if GetErrorType(err) != ErrorTypeTimeout {
		t.Error("timeout errors must classify as ErrorTypeTimeout")
	}
}

func TestGetErrorType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		name string
		want ErrorType
	}{
		{name: "nil", err: nil, want: ErrorTypeUnknown},
		{name: "timeout sentinel", err: ErrTransportTimeout, want: ErrorTypeTimeout},
		{name: "read sentinel", err: ErrTransportRead, want: ErrorTypeTransient},
		{name: "protocol error", err: ErrWrongKeyBytes, want: ErrorTypePermanent},
		{
			name: "classified transport error",
			err:  NewTransportError("init", "COM3", errors.New("no sync byte"), ErrorTypeTransient),
			want: ErrorTypeTransient,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetErrorType(tt.err); got != tt.want {
				t.Errorf("GetErrorType() = %v, want %v", got, tt.want)
			}
		})
	}
}
