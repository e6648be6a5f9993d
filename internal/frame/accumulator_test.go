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

func TestAccumulatorPushAndLine(t *testing.T) {
	t.Parallel()
	var acc Accumulator

	for _, b := range []byte("+OK\r\n") {
		if acc.HasLine() {
			t.Fatal("HasLine() true before terminator complete")
		}
		if err := acc.Push(b); err != nil {
			t.Fatalf("Push() error = %v", err)
		}
	}

	if !acc.HasLine() {
		t.Fatal("HasLine() false after CRLF")
	}
	if acc.Len() != 5 {
		t.Errorf("Len() = %d, want 5", acc.Len())
	}
	if !bytes.Equal(acc.Bytes(), []byte("+OK\r\n")) {
		t.Errorf("Bytes() = %q", acc.Bytes())
	}

	acc.Clear()
	if acc.Len() != 0 || acc.HasLine() {
		t.Error("Clear() did not reset accumulator")
	}
}

func TestAccumulatorBareNewlineIsNotLine(t *testing.T) {
	t.Parallel()
	var acc Accumulator
	_ = acc.Push('x')
	_ = acc.Push('\n')
	if acc.HasLine() {
		t.Error("HasLine() true for LF without preceding CR")
	}
}

func TestAccumulatorOverflow(t *testing.T) {
	t.Parallel()
	var acc Accumulator

	for i := 0; i < AccumulatorCapacity; i++ {
		if err := acc.Push(byte(i)); err != nil {
			t.Fatalf("Push() error at %d: %v", i, err)
		}
	}
	if err := acc.Push(0xFF); !errors.Is(err, ErrOverflow) {
		t.Fatalf("Push() error = %v, want ErrOverflow", err)
	}
	// Contents intact until the owner decides to clear
	if acc.Len() != AccumulatorCapacity {
		t.Errorf("Len() = %d after overflow, want %d", acc.Len(), AccumulatorCapacity)
	}

	acc.Clear()
	if err := acc.Push(0x01); err != nil {
		t.Errorf("Push() after Clear() error = %v", err)
	}
}
