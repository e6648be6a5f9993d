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

import "context"

// Measurement is one finished environmental reading, in the fixed-point
// units the wire format carries
type Measurement struct {
	Temperature   int16  // centidegrees Celsius
	Humidity      uint16 // basis points (0-10000)
	GasResistance uint32 // ohms
}

// Sensor produces measurements on demand. The node calls Measure once per
// transmission attempt; implementations may block up to the context
// deadline.
type Sensor interface {
	Measure(ctx context.Context) (Measurement, error)
}

// SensorFunc adapts a plain function to the Sensor interface
type SensorFunc func(ctx context.Context) (Measurement, error)

// Measure implements Sensor
func (f SensorFunc) Measure(ctx context.Context) (Measurement, error) {
	return f(ctx)
}
