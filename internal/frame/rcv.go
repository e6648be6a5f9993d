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
)

// Parse errors
var (
	ErrNotReceiveLine   = errors.New("not a +RCV notification line")
	ErrMalformedLine    = errors.New("malformed +RCV line")
	ErrBadLengthField   = errors.New("invalid length field")
	ErrTruncatedPayload = errors.New("declared payload length exceeds buffer")
)

// ParsePayload extracts the binary payload embedded in a reception
// notification line of the form:
//
//	+RCV=<address>,<length>,<payload>,<rssi>,<snr>\r\n
//
// The address field is skipped, the length field is parsed as decimal ASCII,
// and exactly that many bytes after the second comma are returned as a slice
// into the caller's buffer. The trailing RSSI and SNR fields are never
// inspected; the declared length is sufficient to locate the payload, and the
// payload itself may contain commas or CR/LF bytes.
func ParsePayload(line []byte) ([]byte, error) {
	if len(line) < MinRecvLength {
		return nil, ErrNotReceiveLine
	}
	if !bytes.HasPrefix(line, []byte(RecvPrefix)) {
		return nil, ErrNotReceiveLine
	}

	rest := line[len(RecvPrefix):]

	comma1 := bytes.IndexByte(rest, ',')
	if comma1 < 0 {
		return nil, ErrMalformedLine
	}
	comma2 := bytes.IndexByte(rest[comma1+1:], ',')
	if comma2 < 0 {
		return nil, ErrMalformedLine
	}
	comma2 += comma1 + 1

	length, err := parseDecimal(rest[comma1+1 : comma2])
	if err != nil {
		return nil, err
	}

	start := comma2 + 1
	if start+length > len(rest) {
		return nil, ErrTruncatedPayload
	}
	return rest[start : start+length], nil
}

// parseDecimal parses an unsigned decimal length field without allocating.
// Values beyond MaxDataLength are rejected outright, which also bounds the
// loop against absurd inputs.
func parseDecimal(field []byte) (int, error) {
	if len(field) == 0 {
		return 0, ErrBadLengthField
	}
	n := 0
	for _, c := range field {
		if c < '0' || c > '9' {
			return 0, ErrBadLengthField
		}
		n = n*10 + int(c-'0')
		if n > MaxDataLength {
			return 0, ErrBadLengthField
		}
	}
	return n, nil
}
