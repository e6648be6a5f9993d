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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		reading SensorReading
	}{
		{
			name: "typical indoor reading",
			reading: SensorReading{
				Sequence:      1,
				Temperature:   2710, // 27.1 °C
				Humidity:      5600, // 56.00 %
				GasResistance: 114231,
			},
		},
		{
			name: "freezing and dry",
			reading: SensorReading{
				Sequence:      1000,
				Temperature:   -1550,
				Humidity:      0,
				GasResistance: 0,
			},
		},
		{
			name: "field extremes",
			reading: SensorReading{
				Sequence:      65535,
				Temperature:   -32768,
				Humidity:      10000,
				GasResistance: 4294967295,
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			encoded := EncodeReading(tt.reading)
			require.Len(t, encoded, ReadingLength)

			decoded, err := DecodeReading(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.reading, decoded)
		})
	}
}

// TestReadingWireLayout pins the exact byte positions of the reading record.
// The gateway decodes this independently, so the layout must never drift.
func TestReadingWireLayout(t *testing.T) {
	t.Parallel()
	encoded := EncodeReading(SensorReading{
		Sequence:      0x0201,
		Temperature:   0x0A96, // 2710
		Humidity:      0x15E0, // 5600
		GasResistance: 0x0001BE37,
	})
	want := []byte{
		0x01, 0x02, // sequence LE
		0x96, 0x0A, // temperature LE
		0xE0, 0x15, // humidity LE
		0x37, 0xBE, 0x01, 0x00, // gas resistance LE
	}
	assert.Equal(t, want, encoded)
}

func TestAckRoundTrip(t *testing.T) {
	t.Parallel()
	for _, kind := range []AckKind{KindAck, KindNack} {
		for _, seq := range []uint16{0, 1, 255, 256, 65535} {
			msg := AckMessage{Kind: kind, Sequence: seq}
			decoded, err := DecodeAck(EncodeAck(msg))
			require.NoError(t, err)
			assert.Equal(t, msg, decoded)
		}
	}
}

func TestDecodeAckHandConstructed(t *testing.T) {
	t.Parallel()
	// kind 1, sequence 1 little-endian
	msg, err := DecodeAck([]byte{0x01, 0x01, 0x00})
	require.NoError(t, err)
	assert.Equal(t, KindAck, msg.Kind)
	assert.Equal(t, uint16(1), msg.Sequence)

	// kind 2, sequence 0x1234
	msg, err = DecodeAck([]byte{0x02, 0x34, 0x12})
	require.NoError(t, err)
	assert.Equal(t, KindNack, msg.Kind)
	assert.Equal(t, uint16(0x1234), msg.Sequence)
}

func TestDecodeAckMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "short", data: []byte{0x01, 0x00}},
		{name: "long", data: []byte{0x01, 0x00, 0x01, 0x00}},
		{name: "unknown kind zero", data: []byte{0x00, 0x01, 0x00}},
		{name: "unknown kind high", data: []byte{0xFF, 0x01, 0x00}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeAck(tt.data)
			require.ErrorIs(t, err, ErrMalformedPacket)
		})
	}
}

// TestDecodeAckArbitraryInput checks the strict decoder against every
// possible kind byte and a range of lengths without panicking.
func TestDecodeAckArbitraryInput(t *testing.T) {
	t.Parallel()
	for kind := 0; kind < 256; kind++ {
		data := []byte{byte(kind), 0xAB, 0xCD}
		msg, err := DecodeAck(data)
		if kind == int(KindAck) || kind == int(KindNack) {
			require.NoError(t, err)
			assert.Equal(t, uint16(0xCDAB), msg.Sequence)
		} else {
			assert.Error(t, err)
		}
	}
	for size := 0; size < 16; size++ {
		if size == AckLength {
			continue
		}
		_, err := DecodeAck(make([]byte, size))
		assert.Error(t, err, "size %d", size)
	}
}
