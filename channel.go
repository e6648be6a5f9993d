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

// Channel is the byte-level serial link to the radio module's command
// interface. The node assumes no buffering beyond a single byte on either
// side of this interface.
//
// Implementations must be safe to call from a single goroutine at a time;
// the Node serializes access with its own channel lock.
type Channel interface {
	// WriteByte writes one byte, blocking until it is accepted
	WriteByte(b byte) error

	// ReadByte returns one pending byte, or ErrNoData if nothing is
	// buffered. Implementations should not block for longer than a short
	// poll interval.
	ReadByte() (byte, error)

	// Close closes the channel
	Close() error

	// Port returns a human-readable identifier for error reporting
	Port() string
}

// ChannelType identifies a channel implementation
type ChannelType string

const (
	// ChannelUART is a physical serial port
	ChannelUART ChannelType = "uart"
	// ChannelMock is an in-memory channel for testing
	ChannelMock ChannelType = "mock"
)

// writeAll writes a complete frame to the channel one byte at a time, the
// only write granularity the Channel contract offers.
func writeAll(ch Channel, data []byte) error {
	for _, b := range data {
		if err := ch.WriteByte(b); err != nil {
			return err
		}
	}
	return nil
}
