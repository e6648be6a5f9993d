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
	"encoding/binary"
	"fmt"
)

// Wire layout. Every multi-byte field is little-endian. This layout is an
// interoperability contract with the gateway's codec: both ends must use it
// byte for byte.
//
//	Sensor reading (10 bytes):
//	  [0:2]  sequence       uint16
//	  [2:4]  temperature    int16, centidegrees Celsius
//	  [4:6]  humidity       uint16, basis points (0-10000)
//	  [6:10] gas resistance uint32, ohms
//
//	Acknowledgment record (3 bytes):
//	  [0]    kind           1 = ack, 2 = nack
//	  [1:3]  sequence       uint16
//
// Acknowledgment records deliberately carry no checksum; they are short
// enough that the design accepts the corruption risk.
const (
	ReadingLength = 10
	AckLength     = 3
)

// AckKind is the acknowledgment type tag
type AckKind byte

const (
	// KindAck acknowledges successful reception
	KindAck AckKind = 1
	// KindNack reports a reception with a failed payload checksum
	KindNack AckKind = 2
)

// String returns the wire name of the kind
func (k AckKind) String() string {
	switch k {
	case KindAck:
		return "ACK"
	case KindNack:
		return "NACK"
	default:
		return fmt.Sprintf("AckKind(%d)", byte(k))
	}
}

// SensorReading is one environmental measurement cycle, stamped with the
// sequence number it will travel under
type SensorReading struct {
	Sequence      uint16
	Temperature   int16  // centidegrees Celsius
	Humidity      uint16 // basis points
	GasResistance uint32 // ohms
}

// AckMessage is a decoded acknowledgment record
type AckMessage struct {
	Kind     AckKind
	Sequence uint16
}

// EncodeReading serializes a reading into its fixed wire layout
func EncodeReading(r SensorReading) []byte {
	buf := make([]byte, ReadingLength)
	binary.LittleEndian.PutUint16(buf[0:2], r.Sequence)
	binary.LittleEndian.PutUint16(buf[2:4], uint16(r.Temperature))
	binary.LittleEndian.PutUint16(buf[4:6], r.Humidity)
	binary.LittleEndian.PutUint32(buf[6:10], r.GasResistance)
	return buf
}

// DecodeReading parses the fixed wire layout back into a reading
func DecodeReading(data []byte) (SensorReading, error) {
	if len(data) != ReadingLength {
		return SensorReading{}, fmt.Errorf("%w: reading is %d bytes, want %d",
			ErrMalformedPacket, len(data), ReadingLength)
	}
	return SensorReading{
		Sequence:      binary.LittleEndian.Uint16(data[0:2]),
		Temperature:   int16(binary.LittleEndian.Uint16(data[2:4])),
		Humidity:      binary.LittleEndian.Uint16(data[4:6]),
		GasResistance: binary.LittleEndian.Uint32(data[6:10]),
	}, nil
}

// EncodeAck serializes an acknowledgment record. The node itself never sends
// acks; this exists so both codec directions are exercised against the same
// layout.
func EncodeAck(m AckMessage) []byte {
	buf := make([]byte, AckLength)
	buf[0] = byte(m.Kind)
	binary.LittleEndian.PutUint16(buf[1:3], m.Sequence)
	return buf
}

// DecodeAck parses an acknowledgment record. Input must be exactly AckLength
// bytes with a known kind tag; anything else is a decode failure.
func DecodeAck(data []byte) (AckMessage, error) {
	if len(data) != AckLength {
		return AckMessage{}, fmt.Errorf("%w: ack is %d bytes, want %d",
			ErrMalformedPacket, len(data), AckLength)
	}
	kind := AckKind(data[0])
	if kind != KindAck && kind != KindNack {
		return AckMessage{}, fmt.Errorf("%w: unknown ack kind %d",
			ErrMalformedPacket, data[0])
	}
	return AckMessage{
		Kind:     kind,
		Sequence: binary.LittleEndian.Uint16(data[1:3]),
	}, nil
}
