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

import (
	"bytes"
	"errors"
	"testing"
)

func TestBuildSend(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload []byte
		dest    int
		want    []byte
	}{
		{
			name:    "four byte payload",
			dest:    2,
			payload: []byte{0xDE, 0xAD, 0xBE, 0xEF},
			// Length field is payload + 2 checksum bytes; CRC 0x4097 big-endian
			want: []byte("AT+SEND=2,6,\xDE\xAD\xBE\xEF\x40\x97\r\n"),
		},
		{
			name:    "encoded reading payload",
			dest:    2,
			payload: []byte{0x01, 0x00, 0x96, 0x0A, 0xE0, 0x2E, 0x30, 0x75, 0x00, 0x00},
			want:    []byte("AT+SEND=2,12,\x01\x00\x96\x0A\xE0\x2E\x30\x75\x00\x00\x6E\xF9\r\n"),
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BuildSend(tt.dest, tt.payload)
			if err != nil {
				t.Fatalf("BuildSend() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("BuildSend() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestBuildSendChecksumTrailer verifies the two bytes before the terminator
// are the big-endian CRC of the payload alone.
func TestBuildSendChecksumTrailer(t *testing.T) {
	t.Parallel()
	payload := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	got, err := BuildSend(2, payload)
	if err != nil {
		t.Fatalf("BuildSend() error = %v", err)
	}

	body := got[:len(got)-len(Terminator)]
	crc := Checksum(payload)
	hi, lo := body[len(body)-2], body[len(body)-1]
	if hi != byte(crc>>8) || lo != byte(crc) {
		t.Errorf("trailer = %02X %02X, want %02X %02X", hi, lo, byte(crc>>8), byte(crc))
	}
	if !ValidateChecksum(body[len(body)-len(payload)-ChecksumLength:]) {
		t.Error("payload+trailer failed ValidateChecksum")
	}
}

func TestBuildSendErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload []byte
		wantErr error
	}{
		{
			name:    "empty payload",
			payload: nil,
			wantErr: ErrEmptyPayload,
		},
		{
			name:    "payload at capacity",
			payload: make([]byte, MaxPayload),
			wantErr: nil,
		},
		{
			name:    "payload over capacity",
			payload: make([]byte, MaxPayload+1),
			wantErr: ErrPayloadTooLarge,
		},
	}

	for _, tt := range tests {
		tt := tt // capture loop variable
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildSend(2, tt.payload)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildSend() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
