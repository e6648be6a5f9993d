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

package testing

import (
	"context"
	"fmt"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
)

// BuildReceiveLine assembles a +RCV notification line as the module would
// emit it for a payload arriving from addr.
func BuildReceiveLine(addr int, payload []byte, rssi, snr int) []byte {
	head := fmt.Sprintf("+RCV=%d,%d,", addr, len(payload))
	line := make([]byte, 0, len(head)+len(payload)+16)
	line = append(line, head...)
	line = append(line, payload...)
	line = append(line, fmt.Sprintf(",%d,%d\r\n", rssi, snr)...)
	return line
}

// BuildAckLine builds a complete +RCV line carrying an ACK for seq
func BuildAckLine(seq uint16) []byte {
	payload := rylr896.EncodeAck(rylr896.AckMessage{Kind: rylr896.KindAck, Sequence: seq})
	return BuildReceiveLine(2, payload, -42, 9)
}

// BuildNackLine builds a complete +RCV line carrying a NACK for seq
func BuildNackLine(seq uint16) []byte {
	payload := rylr896.EncodeAck(rylr896.AckMessage{Kind: rylr896.KindNack, Sequence: seq})
	return BuildReceiveLine(2, payload, -42, 9)
}

// StaticSensor returns the same measurement on every call
type StaticSensor struct {
	Value rylr896.Measurement
}

// Measure implements rylr896.Sensor
func (s *StaticSensor) Measure(_ context.Context) (rylr896.Measurement, error) {
	return s.Value, nil
}

// FailingSensor fails every acquisition with Err
type FailingSensor struct {
	Err error
}

// Measure implements rylr896.Sensor
func (s *FailingSensor) Measure(_ context.Context) (rylr896.Measurement, error) {
	return rylr896.Measurement{}, s.Err
}
