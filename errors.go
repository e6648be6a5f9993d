// go-rylr896
// Copyright (c) 2025 The NodeLink Project Contributors.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// This file is part of go-rylr896.
//
// go-rylr896 is free software; you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public
// License as published by the Free Software Foundation; either
// version 3 of the License, or (at your option) any later version.
//
// go-rylr896 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with go-rylr896; if not, write to the Free Software Foundation,
// Inc., 51 Franklin Street, Fifth Floor, Boston, MA  02110-1301, USA.

package rylr896

import (
	"errors"
	"fmt"
)

// Channel and link errors
var (
	// ErrNoData indicates a read found nothing buffered on the channel.
	// The receive path treats this as "come back later", not a fault.
	ErrNoData = errors.New("no data available")

	// ErrTransportTimeout indicates a channel operation timed out
	ErrTransportTimeout = errors.New("transport timeout")

	// ErrTransportRead indicates a failed read from the channel
	ErrTransportRead = errors.New("transport read failed")

	// ErrTransportWrite indicates a failed write to the channel
	ErrTransportWrite = errors.New("transport write failed")

	// ErrCommunicationFailed indicates the radio module stopped answering
	ErrCommunicationFailed = errors.New("communication with radio module failed")

	// ErrFrameCorrupted indicates a received line failed structural parsing
	ErrFrameCorrupted = errors.New("frame corrupted")
)

// Protocol and configuration errors
var (
	// ErrMalformedPacket indicates a payload did not decode to a known record
	ErrMalformedPacket = errors.New("malformed packet payload")

	// ErrPayloadTooLarge indicates an encoded payload exceeds frame capacity
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrPortNotFound indicates the serial port does not exist
	ErrPortNotFound = errors.New("serial port not found")

	// ErrNotConnected indicates the channel is not open
	ErrNotConnected = errors.New("channel not connected")

	// ErrInvalidParameter indicates a caller-supplied value is out of range
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ErrorType classifies errors for retry decisions
type ErrorType int

const (
	// ErrorTypePermanent indicates an error that will not resolve by retrying
	ErrorTypePermanent ErrorType = iota
	// ErrorTypeTransient indicates an error that may resolve by retrying
	ErrorTypeTransient
	// ErrorTypeTimeout indicates an operation that ran out of time
	ErrorTypeTimeout
)

// TransportError wraps a channel-level failure with the operation and port
// it occurred on
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
		return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a TransportError with retryability derived from
// the error type
func NewTransportError(op, port string, err error, errType ErrorType) *TransportError {
	return &TransportError{
		Op:        op,
		Port:      port,
		Err:       err,
		Type:      errType,
		Retryable: errType != ErrorTypePermanent,
	}
}

// NewTimeoutError creates a retryable timeout TransportError
func NewTimeoutError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrTransportTimeout, ErrorTypeTimeout)
}

// NewFrameCorruptedError creates a retryable TransportError for a line that
// failed structural parsing
func NewFrameCorruptedError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrFrameCorrupted, ErrorTypeTransient)
}

// NewPayloadTooLargeError creates a permanent TransportError for an encode
// that cannot fit the frame
func NewPayloadTooLargeError(op, port string) *TransportError {
	return NewTransportError(op, port, ErrPayloadTooLarge, ErrorTypePermanent)
}

// retryableSentinels are link-level conditions worth another attempt
var retryableSentinels = []error{
	ErrTransportTimeout,
	ErrTransportRead,
	ErrTransportWrite,
	ErrCommunicationFailed,
	ErrFrameCorrupted,
	ErrNoData,
}

// IsRetryable reports whether an operation that failed with err is worth
// retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Retryable
	}

	var radioErr *RadioError
	if errors.As(err, &radioErr) {
		return radioErr.Transient()
	}

	for _, sentinel := range retryableSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// GetErrorType returns the classification of err
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ErrorTypePermanent
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Type
	}

	if errors.Is(err, ErrTransportTimeout) {
		return ErrorTypeTimeout
	}

	for _, sentinel := range retryableSentinels {
		if errors.Is(err, sentinel) {
			return ErrorTypeTransient
		}
	}

	var radioErr *RadioError
	if errors.As(err, &radioErr) && radioErr.Transient() {
		return ErrorTypeTransient
	}

	return ErrorTypePermanent
}
