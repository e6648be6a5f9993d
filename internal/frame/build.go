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
	"errors"
	"strconv"
)

// Framing errors
var (
	ErrPayloadTooLarge = errors.New("payload exceeds maximum frame capacity")
	ErrEmptyPayload    = errors.New("empty payload")
)

// BuildSend produces the complete byte sequence for one transmission:
//
//	AT+SEND=<dest>,<len(payload)+2>,<payload><crcHi><crcLo>\r\n
//
// The declared length covers the payload plus the two checksum bytes. The
// checksum is computed over the payload only and appended big-endian, high
// byte first.
func BuildSend(dest int, payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}

	crc := Checksum(payload)
	total := len(payload) + ChecksumLength

	out := make([]byte, 0, len(SendPrefix)+8+total+len(Terminator))
	out = append(out, SendPrefix...)
	out = strconv.AppendInt(out, int64(dest), 10)
	out = append(out, ',')
	out = strconv.AppendInt(out, int64(total), 10)
	out = append(out, ',')
	out = append(out, payload...)
	out = append(out, byte(crc>>8), byte(crc))
	out = append(out, Terminator...)
	return out, nil
}
