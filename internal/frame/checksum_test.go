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

package frame

import "testing"

func TestChecksum(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data []byte
		want uint16
	}{
		{
			name: "empty data",
			data: []byte{},
			want: 0xFFFF, // Initial register value, nothing folded in
		},
		{
			name: "check string",
			data: []byte("123456789"),
			want: 0x29B1, // Published CRC-16/IBM-3740 check value
		},
		{
			name: "single byte",
			data: []byte{'A'},
			want: 0xB915,
		},
		{
			name: "all zeros",
			data: []byte{0x00, 0x00, 0x00, 0x00},
			want: 0x84C0,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum() = 0x%04X, want 0x%04X", got, tt.want)
			}
		})
	}
}

func TestChecksumDeterministic(t *testing.T) {
	t.Parallel()
	data := []byte{0x01, 0x96, 0x0A, 0x94, 0x15, 0xE0, 0x2E, 0x00, 0x00, 0x00}
	first := Checksum(data)
	for i := 0; i < 100; i++ {
		if got := Checksum(data); got != first {
			t.Fatalf("Checksum() not deterministic: 0x%04X then 0x%04X", first, got)
		}
	}
}

// TestChecksumBitFlip verifies that flipping any single bit of the payload
// changes the checksum. CRC-16 guarantees this for all single-bit errors.
func TestChecksumBitFlip(t *testing.T) {
	t.Parallel()
	data := []byte{0x01, 0x00, 0x96, 0x0A, 0xE0, 0x2E, 0x49, 0x00, 0x01, 0x00}
	base := Checksum(data)

	for i := range data {
		for bit := 0; bit < 8; bit++ {
			mutated := make([]byte, len(data))
			copy(mutated, data)
			mutated[i] ^= 1 << bit
			if got := Checksum(mutated); got == base {
				t.Errorf("bit flip at byte %d bit %d left checksum unchanged (0x%04X)", i, bit, got)
			}
		}
	}
}

func TestValidateChecksum(t *testing.T) {
	t.Parallel()

	payload := []byte("123456789")
	valid := append(append([]byte{}, payload...), 0x29, 0xB1)
	corrupt := append(append([]byte{}, payload...), 0x29, 0xB2)

	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{name: "valid trailer", data: valid, want: true},
		{name: "corrupt trailer", data: corrupt, want: false},
		{name: "too short", data: []byte{0x29}, want: false},
		{name: "checksum only", data: []byte{0xFF, 0xFF}, want: true}, // empty payload, CRC 0xFFFF
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidateChecksum(tt.data); got != tt.want {
				t.Errorf("ValidateChecksum() = %v, want %v", got, tt.want)
			}
		})
	}
}
