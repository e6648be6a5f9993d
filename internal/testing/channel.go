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

// Package testing provides mock implementations and response builders for
// exercising the node without a serial port or radio hardware.
package testing

import (
	"sync"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
)

// MockChannel is an in-memory Channel. Bytes queued with QueueRead come back
// from ReadByte in order; everything written lands in an inspection buffer.
type MockChannel struct {
	mu       sync.Mutex
	rx       []byte
	tx       []byte
	writeErr error
	closed   bool
}

// compile-time interface check
var _ rylr896.Channel = (*MockChannel)(nil)

// NewMockChannel creates an empty mock channel
func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

// QueueRead appends data to the bytes ReadByte will serve
func (m *MockChannel) QueueRead(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rx = append(m.rx, data...)
}

// QueueReadString is QueueRead for string literals
func (m *MockChannel) QueueReadString(s string) {
	m.QueueRead([]byte(s))
}

// SetWriteError makes every subsequent WriteByte fail with err
func (m *MockChannel) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Written returns a copy of everything written so far
func (m *MockChannel) Written() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(m.tx))
	copy(out, m.tx)
	return out
}

// ResetWritten discards the write inspection buffer
func (m *MockChannel) ResetWritten() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tx = m.tx[:0]
}

// Closed reports whether Close has been called
func (m *MockChannel) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// WriteByte implements rylr896.Channel
func (m *MockChannel) WriteByte(b byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.tx = append(m.tx, b)
	return nil
}

// ReadByte implements rylr896.Channel. It returns rylr896.ErrNoData once the
// queue is drained, matching the non-blocking UART read behavior.
func (m *MockChannel) ReadByte() (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.rx) == 0 {
		return 0, rylr896.ErrNoData
	}
	b := m.rx[0]
	m.rx = m.rx[1:]
	return b, nil
}

// Close implements rylr896.Channel
func (m *MockChannel) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Port implements rylr896.Channel
func (m *MockChannel) Port() string {
	return "mock"
}
