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

// Delivery parameters. A retry here re-arms the ack timeout; the frame
// itself is written to the channel exactly once per trigger.
const (
	// MaxRetries is the number of timeout or NACK strikes before a
	// transmission is abandoned
	MaxRetries = 3
	// AckTimeoutTicks is how many timer ticks to wait for an
	// acknowledgment before counting a retry
	AckTimeoutTicks = 2
)

// TransmitStatus is the coarse state of the delivery machine
type TransmitStatus int

const (
	// StatusIdle means no packet is in flight
	StatusIdle TransmitStatus = iota
	// StatusWaitingForAck means exactly one packet is in flight
	StatusWaitingForAck
)

// AgeEvent is the outcome of one tick of timeout aging
type AgeEvent int

const (
	// AgeIdle means there was nothing in flight to age
	AgeIdle AgeEvent = iota
	// AgeWaiting means the timeout was decremented and waiting continues
	AgeWaiting
	// AgeRetrying means the timeout expired and was re-armed for another try
	AgeRetrying
	// AgeAbandoned means the retry budget ran out and delivery was given up
	AgeAbandoned
)

// AckEvent is the outcome of feeding a received acknowledgment in
type AckEvent int

const (
	// AckStale means an ack arrived with nothing in flight
	AckStale AckEvent = iota
	// AckMismatch means the ack named a different sequence than in flight
	AckMismatch
	// AckDelivered means a matching positive ack completed delivery
	AckDelivered
	// AckRetrying means a matching NACK forced the timeout to expire so the
	// next tick retries immediately
	AckRetrying
	// AckAbandoned means a matching NACK arrived with no retries left
	AckAbandoned
)

// TransmitState is the single in-flight packet tracker. The node enforces at
// most one outstanding transmission by refusing to arm while waiting.
//
// TransmitState itself does no locking; the owner must hold its state lock
// around every call.
type TransmitState struct {
	status       TransmitStatus
	sequence     uint16
	timeoutTicks uint32
	retries      uint8
	maxRetries   uint8
	ackTimeout   uint32
}

// NewTransmitState creates an idle tracker with the default retry budget
func NewTransmitState() *TransmitState {
	return newTransmitState(MaxRetries, AckTimeoutTicks)
}

func newTransmitState(maxRetries uint8, ackTimeout uint32) *TransmitState {
	return &TransmitState{
		status:     StatusIdle,
		maxRetries: maxRetries,
		ackTimeout: ackTimeout,
	}
}

// Status returns the current coarse state
func (s *TransmitState) Status() TransmitStatus { return s.status }

// Idle reports whether a new transmission may be initiated
func (s *TransmitState) Idle() bool { return s.status == StatusIdle }

// Sequence returns the sequence number of the packet in flight. Valid only
// while waiting; it retains the last armed value afterwards for reporting.
func (s *TransmitState) Sequence() uint16 { return s.sequence }

// Retries returns the retries consumed so far
func (s *TransmitState) Retries() uint8 { return s.retries }

// TimeoutTicks returns the ticks remaining before the next timeout strike
func (s *TransmitState) TimeoutTicks() uint32 { return s.timeoutTicks }

// Arm records a freshly sent packet and starts the ack timeout. It returns
// false if a packet is already in flight, in which case nothing changes.
func (s *TransmitState) Arm(sequence uint16) bool {
	if s.status != StatusIdle {
		return false
	}
	s.status = StatusWaitingForAck
	s.sequence = sequence
	s.timeoutTicks = s.ackTimeout
	s.retries = 0
	return true
}

// Age advances the timeout by one tick. When the timeout hits zero the
// strike is counted against the retry budget: within budget the timeout is
// re-armed, past it the delivery is abandoned and the machine returns to
// idle.
func (s *TransmitState) Age() AgeEvent {
	if s.status != StatusWaitingForAck {
		return AgeIdle
	}

	if s.timeoutTicks > 0 {
		s.timeoutTicks--
		return AgeWaiting
	}

	s.retries++
	if s.retries < s.maxRetries {
		s.timeoutTicks = s.ackTimeout
		return AgeRetrying
	}
	s.status = StatusIdle
	return AgeAbandoned
}

// OnAck feeds a decoded acknowledgment into the machine.
//
// A matching positive ack completes delivery. A matching NACK within the
// retry budget zeroes the timeout so the next Age call lands in the expiry
// branch immediately; past the budget it abandons. Anything else leaves the
// machine untouched.
func (s *TransmitState) OnAck(m AckMessage) AckEvent {
	if s.status != StatusWaitingForAck {
		return AckStale
	}
	if m.Sequence != s.sequence {
		return AckMismatch
	}

	if m.Kind == KindAck {
		s.status = StatusIdle
		return AckDelivered
	}

	// NACK: the gateway saw the frame but the payload checksum failed
	if s.retries < s.maxRetries {
		s.timeoutTicks = 0
		s.retries++
		return AckRetrying
	}
	s.status = StatusIdle
	return AckAbandoned
}
