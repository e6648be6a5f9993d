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

import "encoding/json"

// deliveryOutcome is the terminal fate of one transmitted reading
type deliveryOutcome string

const (
	outcomeDelivered deliveryOutcome = "delivered"
	outcomeAbandoned deliveryOutcome = "abandoned"
)

// telemetryRecord is the per-delivery summary written to the log. The field
// names stay short and stable because downstream log scrapers key on them.
type telemetryRecord struct {
	Seq         uint16          `json:"seq"`
	Temperature float64         `json:"t"`
	Humidity    float64         `json:"h"`
	Gas         uint32          `json:"g"`
	Outcome     deliveryOutcome `json:"outcome"`
	Retries     uint8           `json:"retries"`
}

// emitTelemetry writes one structured line per completed delivery attempt,
// converting the fixed-point wire units back to human-scale values.
func (n *Node) emitTelemetry(reading SensorReading, outcome deliveryOutcome, retries uint8) {
	rec := telemetryRecord{
		Seq:         reading.Sequence,
		Temperature: float64(reading.Temperature) / 100,
		Humidity:    float64(reading.Humidity) / 100,
		Gas:         reading.GasResistance,
		Outcome:     outcome,
		Retries:     retries,
	}
	data, err := json.Marshal(rec)
	if err != nil {
		// Fixed-shape struct, cannot fail in practice
		debugf("telemetry marshal failed: %v", err)
		return
	}
	n.logger.Printf("telemetry: %s", data)
}
