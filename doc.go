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

// Package rylr896 implements a battery sensor node speaking to a gateway
// through a REYAX RYLR896 LoRa module over its AT command UART.
//
// The package covers the full node side of the link: configuring the radio
// (ConfigureRadio), framing sensor readings into AT+SEND commands with a
// CRC-16 trailer, parsing +RCV notification lines back out, and running the
// stop-and-wait delivery loop (Node) that retries unacknowledged packets a
// bounded number of times.
//
// Basic usage:
//
//	ch, err := uart.Open("/dev/ttyUSB0")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := rylr896.ConfigureRadio(ctx, ch, rylr896.DefaultRadioConfig()); err != nil {
//		log.Fatal(err)
//	}
//	node, err := rylr896.New(ch, sensor)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer node.Close()
//	node.Run(ctx)
//
// Time inside the delivery loop is counted in ticks rather than wall-clock
// durations; Run maps one tick to a configurable interval (one second by
// default). The ack timeout and retry budget are therefore deterministic
// regardless of the tick rate, which also keeps the loop trivially testable
// by calling Tick and Pump directly.
package rylr896
