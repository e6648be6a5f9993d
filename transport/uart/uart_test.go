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

package uart

import (
	"errors"
	"testing"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
)

func TestOpenNonexistentPort(t *testing.T) {
	t.Parallel()
	_, err := Open("/dev/ttyDOESNOTEXIST99")
	if err == nil {
		t.Fatal("Open() succeeded on a nonexistent port")
	}
}

func TestOptionsApplied(t *testing.T) {
	t.Parallel()
	c := &Channel{portName: "test", baudRate: DefaultBaudRate}
	WithBaudRate(9600)(c)
	if c.baudRate != 9600 {
		t.Errorf("baudRate = %d, want 9600", c.baudRate)
	}
}

func TestClosedChannelRefusesIO(t *testing.T) {
	t.Parallel()
	c := &Channel{portName: "test", closed: true}

	if err := c.WriteByte('A'); !errors.Is(err, rylr896.ErrNotConnected) {
		t.Errorf("WriteByte() on closed channel = %v, want ErrNotConnected", err)
	}
	if _, err := c.ReadByte(); !errors.Is(err, rylr896.ErrNotConnected) {
		t.Errorf("ReadByte() on closed channel = %v, want ErrNotConnected", err)
	}
}

func TestPortName(t *testing.T) {
	t.Parallel()
	c := &Channel{portName: "/dev/ttyUSB0"}
	if got := c.Port(); got != "/dev/ttyUSB0" {
		t.Errorf("Port() = %q, want /dev/ttyUSB0", got)
	}
}
