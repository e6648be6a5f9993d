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

// Package uart provides the serial-port Channel for a RYLR896 module wired
// to a UART.
package uart

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
)

// DefaultBaudRate is the RYLR896 factory baud rate
const DefaultBaudRate = 115200

// readPollTimeout keeps Read from blocking so that ReadByte can report
// ErrNoData promptly when the module is quiet
const readPollTimeout = 5 * time.Millisecond

// Channel is a rylr896.Channel over a serial port
type Channel struct {
	mu       sync.Mutex
	port     serial.Port
	portName string
	baudRate int

	// read-ahead buffer; the port is drained in chunks, bytes are handed
	// out one at a time
	buf  [64]byte
	head int
	tail int

	closed bool
}

var _ rylr896.Channel = (*Channel)(nil)

// Option is a functional option for configuring the channel
type Option func(*Channel)

// WithBaudRate overrides the default baud rate
func WithBaudRate(baud int) Option {
	return func(c *Channel) {
		c.baudRate = baud
	}
}

// Open opens the named serial port with RYLR896 settings (8N1)
func Open(portName string, opts ...Option) (*Channel, error) {
	c := &Channel{
		portName: portName,
		baudRate: DefaultBaudRate,
	}
	for _, opt := range opts {
		opt(c)
	}

	mode := &serial.Mode{
		BaudRate: c.baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		if strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			return nil, fmt.Errorf("%w: %s", rylr896.ErrPortNotFound, portName)
		}
		return nil, rylr896.NewTransportError("open", portName, err, rylr896.ErrorTypePermanent)
	}

	if err := port.SetReadTimeout(readPollTimeout); err != nil {
		_ = port.Close()
		return nil, rylr896.NewTransportError("open", portName, err, rylr896.ErrorTypePermanent)
	}

	c.port = port
	return c, nil
}

// ListPorts returns the serial port names present on the system
func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// WriteByte implements rylr896.Channel
func (c *Channel) WriteByte(b byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return rylr896.ErrNotConnected
	}

	n, err := c.port.Write([]byte{b})
	if err != nil {
		return rylr896.NewTransportError("write", c.portName,
			fmt.Errorf("%w: %v", rylr896.ErrTransportWrite, err), rylr896.ErrorTypeTransient)
	}
	if n != 1 {
		return rylr896.NewTransportError("write", c.portName,
			rylr896.ErrTransportWrite, rylr896.ErrorTypeTransient)
	}
	return nil
}

// ReadByte implements rylr896.Channel. It returns rylr896.ErrNoData when the
// module has nothing buffered; the short read timeout on the port keeps that
// path prompt.
func (c *Channel) ReadByte() (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, rylr896.ErrNotConnected
	}

	if c.head == c.tail {
		n, err := c.port.Read(c.buf[:])
		if err != nil {
			return 0, rylr896.NewTransportError("read", c.portName,
				fmt.Errorf("%w: %v", rylr896.ErrTransportRead, err), rylr896.ErrorTypeTransient)
		}
		if n == 0 {
			// read timeout expired with nothing pending
			return 0, rylr896.ErrNoData
		}
		c.head = 0
		c.tail = n
	}

	b := c.buf[c.head]
	c.head++
	return b, nil
}

// Close implements rylr896.Channel
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if err := c.port.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", c.portName, err)
	}
	return nil
}

// Port implements rylr896.Channel
func (c *Channel) Port() string {
	return c.portName
}
