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
	"fmt"
)

// Protocol errors. These are terminal for the operation that returned them;
// the driver never retries on its own.
var (
	// ErrBadLength indicates a payload outside the 1-14 byte range the
	// frame format can carry.
	ErrBadLength = errors.New("payload length outside 1-14 bytes")

	// ErrProtocolNotSupported indicates the transport lacks a capability
	// this protocol depends on (full bus init or L2 checksum handling).
	ErrProtocolNotSupported = errors.New("transport cannot carry KWP6227")

	// ErrInitNotSupported indicates an initialization mode other than
	// 5-baud slow init was requested.
	ErrInitNotSupported = errors.New("only slow init is supported")

	// ErrWrongKeyBytes indicates the ECU answered initialization with key
	// bytes other than the expected D3 B0 pair.
	ErrWrongKeyBytes = errors.New("wrong key bytes, expecting D3B0")

	// ErrNoResponse indicates a request/response cycle completed without
	// collecting an inbound message. (The C driver reported this case as
	// an out-of-memory sentinel; only the no-message meaning survives in
	// Go, where allocation cannot fail.)
	ErrNoResponse = errors.New("no response message collected")

	// ErrNotConnected indicates an operation was attempted on a session
	// that is not in the active state.
	ErrNotConnected = errors.New("session not connected")
)

// Transport errors
var (
	ErrTransportTimeout    = errors.New("transport timeout")
	ErrTransportRead       = errors.New("transport read failed")
	ErrTransportWrite      = errors.New("transport write failed")
	ErrChecksumMismatch    = errors.New("checksum mismatch")
	ErrCommunicationFailed = errors.New("communication failed")
	ErrDeviceNotFound      = errors.New("device not found")
)

// ErrorType classifies transport errors for retry decisions made by layers
// above this driver.
type ErrorType int

const (
	// ErrorTypeUnknown is the zero value classification
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeTransient marks errors that may succeed on retry
	ErrorTypeTransient
	// ErrorTypePermanent marks errors that will not succeed on retry
	ErrorTypePermanent
	// ErrorTypeTimeout marks deadline expirations
	ErrorTypeTimeout
)

// TransportError wraps an underlying transport failure with the operation
// and port it occurred on. The driver propagates these unchanged; it never
// retries the operation itself.
type TransportError struct {
	Err       error
	Op        string
	Port      string
	Type      ErrorType
	Retryable bool
}

// Error implements the error interface
func (e *TransportError) Error() string {
	if e.Port != "" {
		return fmt.Sprintf("transport %s on %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError with retryability derived from
// the classification.
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType == ErrorTypeTransient || errType == ErrorTypeTimeout,
	}
}

// NewTimeoutError creates a TransportError for a read deadline expiration.
func NewTimeoutError(op, port string) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       ErrTransportTimeout,
		Type:      ErrorTypeTimeout,
		Retryable: true,
	}
}

// retryableErrors is the set of sentinel errors considered transient.
var retryableErrors = []error{
	ErrTransportTimeout,
	ErrTransportRead,
	ErrTransportWrite,
	ErrChecksumMismatch,
	ErrCommunicationFailed,
}

// IsRetryable reports whether err is worth retrying at a higher layer.
// Protocol errors (bad length, wrong key bytes, unsupported transport) are
// never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Retryable
	}

	for _, retryable := range retryableErrors {
		if errors.Is(err, retryable) {
			return true
		}
	}
	return false
}

// GetErrorType classifies an arbitrary error for retry decisions.
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypeUnknown
	}

	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr.Type
	}

	switch {
	case errors.Is(err, ErrTransportTimeout):
		return ErrorTypeTimeout
	case IsRetryable(err):
		return ErrorTypeTransient
	default:
		return ErrorTypePermanent
	}
}
