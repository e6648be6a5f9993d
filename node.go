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
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/NodeLinkProject/go-rylr896/internal/frame"
)

// Node drives one sensor node's reliable-delivery loop over a half-duplex
// radio link: periodic ticks age the ack timeout and initiate transmissions,
// while the receive path accumulates notification lines and feeds decoded
// acknowledgments back into the transmit state.
//
// Locking discipline: the channel and the transmit state each have their own
// mutex. A handler takes one lock, does the minimal work under it, and
// releases it before taking the other; in particular the state transition
// after a transmit happens only once the channel lock has been dropped, and
// ack processing happens only after line collection has released the channel
// lock. The receive accumulator needs no lock; only the receive path touches
// it.
type Node struct {
	chanMu sync.Mutex
	ch     Channel

	stateMu sync.Mutex
	state   *TransmitState
	pending SensorReading // reading of the packet in flight, kept for reporting

	rx frame.Accumulator

	sensor  Sensor
	logger  *log.Logger
	trigger atomic.Bool

	destination    int
	autoTicks      uint32
	tickInterval   time.Duration
	pumpInterval   time.Duration
	measureTimeout time.Duration
	maxRetries     uint8
	ackTimeout     uint32

	// Tick-path state, only ever touched from the tick handler
	countdown uint32
	sequence  uint16
}

// Default runtime parameters
const (
	// DefaultDestination is the gateway's fixed radio address
	DefaultDestination = 2
	// DefaultAutoTransmitTicks is the countdown between automatic
	// transmissions, in ticks
	DefaultAutoTransmitTicks = 10
	// DefaultTickInterval makes one tick nominally one second
	DefaultTickInterval = time.Second
	// DefaultPumpInterval is how often Run drains the receive side
	DefaultPumpInterval = 10 * time.Millisecond
	// DefaultMeasureTimeout bounds a single sensor acquisition
	DefaultMeasureTimeout = 500 * time.Millisecond
)

// New creates a node bound to a channel and a sensor. The node starts idle
// with sequence number 1 and the auto-transmit countdown fully wound.
func New(ch Channel, sensor Sensor, opts ...Option) (*Node, error) {
	if ch == nil {
		return nil, fmt.Errorf("%w: nil channel", ErrInvalidParameter)
	}
	if sensor == nil {
		return nil, fmt.Errorf("%w: nil sensor", ErrInvalidParameter)
	}

	n := &Node{
		ch:             ch,
		sensor:         sensor,
		logger:         log.Default(),
		destination:    DefaultDestination,
		autoTicks:      DefaultAutoTransmitTicks,
		tickInterval:   DefaultTickInterval,
		pumpInterval:   DefaultPumpInterval,
		measureTimeout: DefaultMeasureTimeout,
		maxRetries:     MaxRetries,
		ackTimeout:     AckTimeoutTicks,
		sequence:       1,
	}

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, err
		}
	}

	n.state = newTransmitState(n.maxRetries, n.ackTimeout)
	n.countdown = n.autoTicks
	return n, nil
}

// TriggerTransmit requests an immediate transmission on the next tick, the
// button-press analogue. The request is dropped silently if a packet is
// still in flight when the tick evaluates it.
func (n *Node) TriggerTransmit() {
	n.trigger.Store(true)
}

// Idle reports whether the node could initiate a transmission right now
func (n *Node) Idle() bool {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	return n.state.Idle()
}

// InFlight returns the sequence number of the packet awaiting an ack, if any
func (n *Node) InFlight() (uint16, bool) {
	n.stateMu.Lock()
	defer n.stateMu.Unlock()
	if n.state.Idle() {
		return 0, false
	}
	return n.state.Sequence(), true
}

// Tick is the periodic handler. It ages the ack timeout first and evaluates
// the transmit trigger second, so an abandonment in this tick can free the
// machine for a transmission in the same tick.
func (n *Node) Tick() {
	n.stateMu.Lock()
	ev := n.state.Age()
	seq := n.state.Sequence()
	retries := n.state.Retries()
	idle := n.state.Idle()
	pending := n.pending
	n.stateMu.Unlock()

	switch ev {
	case AgeRetrying:
		n.logger.Printf("ack timeout for packet #%d, attempt %d/%d, still waiting",
			seq, retries+1, n.maxRetries)
	case AgeAbandoned:
		n.logger.Printf("max retries (%d) exceeded for packet #%d, giving up",
			n.maxRetries, seq)
		n.emitTelemetry(pending, outcomeAbandoned, retries)
	}

	fire := false
	source := "auto"
	if n.trigger.Swap(false) {
		fire = true
		source = "manual"
		n.countdown = n.autoTicks
	} else {
		if n.countdown > 0 {
			n.countdown--
		}
		if n.countdown == 0 {
			fire = true
			n.countdown = n.autoTicks
		}
	}

	if !fire {
		return
	}
	if !idle {
		debugf("transmit trigger (%s) dropped, packet #%d still in flight", source, seq)
		return
	}
	n.transmit(source)
}

// transmit acquires a reading, frames it, writes it to the channel, and arms
// the transmit state. A failure at any step before the write leaves the
// state untouched and only skips this cycle.
func (n *Node) transmit(source string) {
	ctx, cancel := context.WithTimeout(context.Background(), n.measureTimeout)
	defer cancel()

	m, err := n.sensor.Measure(ctx)
	if err != nil {
		n.logger.Printf("sensor read failed, skipping cycle: %v", err)
		return
	}

	reading := SensorReading{
		Sequence:      n.sequence,
		Temperature:   m.Temperature,
		Humidity:      m.Humidity,
		GasResistance: m.GasResistance,
	}

	out, err := frame.BuildSend(n.destination, EncodeReading(reading))
	if err != nil {
		n.logger.Printf("frame build failed, skipping cycle: %v", err)
		return
	}

	n.chanMu.Lock()
	werr := writeAll(n.ch, out)
	n.chanMu.Unlock()
	if werr != nil {
		n.logger.Printf("frame write failed for packet #%d: %v", reading.Sequence, werr)
		return
	}

	// Arm only after the channel lock is gone
	n.stateMu.Lock()
	armed := n.state.Arm(reading.Sequence)
	if armed {
		n.pending = reading
	}
	n.stateMu.Unlock()
	if !armed {
		// Tick is the only transmit path, so this indicates misuse
		n.logger.Printf("transmit state already armed, packet #%d untracked", reading.Sequence)
		return
	}

	n.sequence++ // wraps through 0 by design; sequence numbers are not persisted
	debugf("sent packet #%d (%s trigger): %d frame bytes to address %d",
		reading.Sequence, source, len(out), n.destination)
}

// Pump is the receive handler. It drains every byte currently pending on
// the channel into the accumulator under the channel lock, then processes
// completed lines after releasing it.
func (n *Node) Pump() {
	var lines [][]byte

	n.chanMu.Lock()
	for {
		b, err := n.ch.ReadByte()
		if err != nil {
			if !errors.Is(err, ErrNoData) {
				debugf("channel read error: %v", err)
			}
			break
		}

		if err := n.rx.Push(b); err != nil {
			n.logger.Printf("receive buffer full, clearing %d bytes", n.rx.Len())
			n.rx.Clear()
			continue
		}

		if b == '\n' && n.rx.HasLine() {
			line := make([]byte, n.rx.Len())
			copy(line, n.rx.Bytes())
			lines = append(lines, line)
			n.rx.Clear()
		}
	}
	n.chanMu.Unlock()

	for _, line := range lines {
		n.handleLine(line)
	}
}

// handleLine parses one complete received line and feeds any acknowledgment
// it carries into the transmit state. Malformed lines are discarded; they
// are never fatal.
func (n *Node) handleLine(line []byte) {
	payload, err := frame.ParsePayload(line)
	if err != nil {
		// Module chatter (+OK, +READY) and line noise all land here
		debugf("ignoring line %q: %v", line, err)
		return
	}

	msg, err := DecodeAck(payload)
	if err != nil {
		n.logger.Printf("discarding undecodable ack payload: %v", err)
		return
	}

	n.stateMu.Lock()
	ev := n.state.OnAck(msg)
	seq := n.state.Sequence()
	retries := n.state.Retries()
	pending := n.pending
	n.stateMu.Unlock()

	switch ev {
	case AckDelivered:
		n.logger.Printf("%s received, packet #%d delivered", msg.Kind, msg.Sequence)
		n.emitTelemetry(pending, outcomeDelivered, retries)
	case AckMismatch:
		n.logger.Printf("%s sequence mismatch: expected %d, got %d", msg.Kind, seq, msg.Sequence)
	case AckRetrying:
		n.logger.Printf("%s received for packet #%d, will retry", msg.Kind, msg.Sequence)
	case AckAbandoned:
		n.logger.Printf("max retries reached after %s for packet #%d, giving up", msg.Kind, msg.Sequence)
		n.emitTelemetry(pending, outcomeAbandoned, retries)
	case AckStale:
		debugf("stale %s for packet #%d ignored", msg.Kind, msg.Sequence)
	}
}

// Run drives the node until ctx is cancelled: the receive side is drained at
// the pump interval and the tick handler fires at the tick interval.
func (n *Node) Run(ctx context.Context) error {
	tick := time.NewTicker(n.tickInterval)
	defer tick.Stop()
	pump := time.NewTicker(n.pumpInterval)
	defer pump.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-pump.C:
			n.Pump()
		case <-tick.C:
			n.Tick()
		}
	}
}

// Close closes the underlying channel
func (n *Node) Close() error {
	n.chanMu.Lock()
	defer n.chanMu.Unlock()
	if err := n.ch.Close(); err != nil {
		return fmt.Errorf("failed to close channel: %w", err)
	}
	return nil
}
