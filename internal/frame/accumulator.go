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

import "errors"

// AccumulatorCapacity bounds the receive scratch buffer. A +RCV line carrying
// a 3-byte acknowledgment record is well under this; anything longer without
// a terminator is noise.
const AccumulatorCapacity = 128

// ErrOverflow reports that a byte arrived with the accumulator already full.
// The caller is expected to Clear and resume; no partial recovery is
// attempted.
var ErrOverflow = errors.New("receive accumulator full")

// Accumulator collects incoming bytes until a complete CRLF-terminated line
// is available. It is a fixed-capacity buffer with no hidden growth; it must
// be owned by a single receive path and is not safe for concurrent use.
type Accumulator struct {
	buf [AccumulatorCapacity]byte
	n   int
}

// Push appends one byte, or returns ErrOverflow leaving the contents intact.
func (a *Accumulator) Push(b byte) error {
	if a.n == len(a.buf) {
		return ErrOverflow
	}
	a.buf[a.n] = b
	a.n++
	return nil
}

// Len returns the number of buffered bytes.
func (a *Accumulator) Len() int { return a.n }

// Bytes returns the buffered bytes. The slice aliases the accumulator's
// storage and is invalidated by the next Push or Clear.
func (a *Accumulator) Bytes() []byte { return a.buf[:a.n] }

// Clear discards all buffered bytes.
func (a *Accumulator) Clear() { a.n = 0 }

// HasLine reports whether the buffer currently ends with the CRLF terminator.
func (a *Accumulator) HasLine() bool {
	return a.n >= 2 && a.buf[a.n-2] == '\r' && a.buf[a.n-1] == '\n'
}
