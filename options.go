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
	"fmt"
	"log"
	"time"
)

// Option is a functional option for configuring a Node
type Option func(*Node) error

// WithDestination sets the gateway's radio address
func WithDestination(address int) Option {
	return func(n *Node) error {
		if address < 0 || address > 65535 {
			return fmt.Errorf("%w: destination address %d out of range", ErrInvalidParameter, address)
		}
		n.destination = address
		return nil
	}
}

// WithAutoTransmitTicks sets the countdown between automatic transmissions
func WithAutoTransmitTicks(ticks uint32) Option {
	return func(n *Node) error {
		if ticks == 0 {
			return fmt.Errorf("%w: auto-transmit countdown must be at least one tick", ErrInvalidParameter)
		}
		n.autoTicks = ticks
		return nil
	}
}

// WithTickInterval sets the real-time length of one tick
func WithTickInterval(d time.Duration) Option {
	return func(n *Node) error {
		if d <= 0 {
			return fmt.Errorf("%w: tick interval must be positive", ErrInvalidParameter)
		}
		n.tickInterval = d
		return nil
	}
}

// WithPumpInterval sets how often Run drains the receive side
func WithPumpInterval(d time.Duration) Option {
	return func(n *Node) error {
		if d <= 0 {
			return fmt.Errorf("%w: pump interval must be positive", ErrInvalidParameter)
		}
		n.pumpInterval = d
		return nil
	}
}

// WithMeasureTimeout bounds a single sensor acquisition
func WithMeasureTimeout(d time.Duration) Option {
	return func(n *Node) error {
		if d <= 0 {
			return fmt.Errorf("%w: measure timeout must be positive", ErrInvalidParameter)
		}
		n.measureTimeout = d
		return nil
	}
}

// WithMaxRetries overrides the delivery retry budget
func WithMaxRetries(retries int) Option {
	return func(n *Node) error {
		if retries < 1 || retries > 255 {
			return fmt.Errorf("%w: retry budget %d out of range", ErrInvalidParameter, retries)
		}
		n.maxRetries = uint8(retries)
		return nil
	}
}

// WithAckTimeoutTicks overrides how many ticks to wait for an ack
func WithAckTimeoutTicks(ticks uint32) Option {
	return func(n *Node) error {
		if ticks == 0 {
			return fmt.Errorf("%w: ack timeout must be at least one tick", ErrInvalidParameter)
		}
		n.ackTimeout = ticks
		return nil
	}
}

// WithLogger directs the node's operational log
func WithLogger(logger *log.Logger) Option {
	return func(n *Node) error {
		if logger == nil {
			return fmt.Errorf("%w: nil logger", ErrInvalidParameter)
		}
		n.logger = logger
		return nil
	}
}
