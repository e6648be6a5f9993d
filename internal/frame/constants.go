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

// Package frame provides wire framing and protocol constants for RYLR896 communication
package frame

// Command and notification markers used on the module's serial command channel
const (
	SendPrefix = "AT+SEND=" // Outgoing data frame command
	RecvPrefix = "+RCV="    // Incoming reception notification line
	Terminator = "\r\n"     // Line terminator on both directions
)

// Frame size limits
const (
	MaxDataLength  = 240                           // Maximum data length per transmission (RYLR896 spec)
	ChecksumLength = 2                             // CRC-16 appended to every data frame
	MaxPayload     = MaxDataLength - ChecksumLength // Maximum encoded payload per frame
	MinRecvLength  = 10                            // Shortest well-formed +RCV line (prefix + fields)
)
