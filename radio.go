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

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/NodeLinkProject/go-rylr896/internal/frame"
)

// ISM band center frequencies the module accepts, in Hz
const (
	Band433MHz = 433000000
	Band868MHz = 868000000
	Band915MHz = 915000000
)

// RYLR896 result codes carried in +ERR= responses
const (
	CodeMissingTerminator = 1  // command not ended with CRLF
	CodeInvalidCommand    = 2  // head of the command is not a valid AT command
	CodeBusy              = 3  // module still processing the previous command
	CodeBadParameter      = 4  // parameter count or format wrong
	CodeTXOverLimit       = 10 // data to send exceeds the payload limit
	CodeTXTimeout         = 11 // transmit did not complete in time
	CodeRXTimeout         = 12 // CRC error on receive
	CodeCRCError          = 13 // header CRC error
	CodeUnknownFailure    = 15 // unknown internal failure
)

// RadioError is a command rejection reported by the module itself
type RadioError struct {
	Code int
}

func (e *RadioError) Error() string {
	return fmt.Sprintf("radio error +ERR=%d", e.Code)
}

// Transient reports whether retrying the same command can succeed. Timeouts
// and over-the-air corruption pass; parameter and syntax errors never will.
func (e *RadioError) Transient() bool {
	switch e.Code {
	case CodeTXOverLimit, CodeTXTimeout, CodeRXTimeout:
		return true
	default:
		return false
	}
}

// RadioParameters is the LoRa modulation setting tuple for AT+PARAMETER
type RadioParameters struct {
	SpreadingFactor int // 7-12
	Bandwidth       int // 0-9, coded per the module's table (9 = 500 kHz)
	CodingRate      int // 1-4, meaning 4/5 through 4/8
	Preamble        int // 4-7 symbols
}

// DefaultRadioParameters matches the gateway's fixed modulation settings.
// Both sides must agree or neither hears the other.
var DefaultRadioParameters = RadioParameters{
	SpreadingFactor: 7,
	Bandwidth:       9,
	CodingRate:      1,
	Preamble:        7,
}

// RadioConfig holds everything ConfigureRadio programs into the module
type RadioConfig struct {
	// Address is this node's own radio address
	Address int
	// NetworkID isolates this deployment from neighbouring ones
	NetworkID int
	// BandHz is the RF center frequency
	BandHz int
	// Parameters is the modulation tuple
	Parameters RadioParameters
	// Retry governs re-issuing commands the module rejected transiently.
	// Nil selects DefaultRetryConfig.
	Retry *RetryConfig
	// ResponseTimeout bounds the wait for each command's +OK
	ResponseTimeout time.Duration
}

// DefaultRadioConfig returns the stock node setup: address 1 talking to a
// gateway at address 2 on network 18 in the 915 MHz band.
func DefaultRadioConfig() RadioConfig {
	return RadioConfig{
		Address:         1,
		NetworkID:       18,
		BandHz:          Band915MHz,
		Parameters:      DefaultRadioParameters,
		ResponseTimeout: 2 * time.Second,
	}
}

func (c *RadioConfig) validate() error {
	if c.Address < 0 || c.Address > 65535 {
		return fmt.Errorf("%w: address %d out of range", ErrInvalidParameter, c.Address)
	}
	if c.NetworkID < 0 || c.NetworkID > 16 && c.NetworkID != 18 {
		return fmt.Errorf("%w: network ID %d not supported by the module", ErrInvalidParameter, c.NetworkID)
	}
	if c.BandHz < 410000000 || c.BandHz > 940000000 {
		return fmt.Errorf("%w: band %d Hz outside the module's range", ErrInvalidParameter, c.BandHz)
	}
	p := c.Parameters
	if p.SpreadingFactor < 7 || p.SpreadingFactor > 12 {
		return fmt.Errorf("%w: spreading factor %d out of range", ErrInvalidParameter, p.SpreadingFactor)
	}
	if p.Bandwidth < 0 || p.Bandwidth > 9 {
		return fmt.Errorf("%w: bandwidth code %d out of range", ErrInvalidParameter, p.Bandwidth)
	}
	if p.CodingRate < 1 || p.CodingRate > 4 {
		return fmt.Errorf("%w: coding rate %d out of range", ErrInvalidParameter, p.CodingRate)
	}
	if p.Preamble < 4 || p.Preamble > 7 {
		return fmt.Errorf("%w: preamble length %d out of range", ErrInvalidParameter, p.Preamble)
	}
	return nil
}

// ConfigureRadio programs the module over ch: a probe, then address, network
// ID, band, and modulation parameters, in that order. Each command is retried
// on transient rejections per cfg.Retry. The channel must not be shared with
// a running Node while configuration is in progress.
func ConfigureRadio(ctx context.Context, ch Channel, cfg RadioConfig) error {
	if ch == nil {
		return fmt.Errorf("%w: nil channel", ErrInvalidParameter)
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	retry := cfg.Retry // nil selects the default inside RetryWithConfig
	timeout := cfg.ResponseTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	commands := []string{
		"AT",
		"AT+ADDRESS=" + strconv.Itoa(cfg.Address),
		"AT+NETWORKID=" + strconv.Itoa(cfg.NetworkID),
		"AT+BAND=" + strconv.Itoa(cfg.BandHz),
		fmt.Sprintf("AT+PARAMETER=%d,%d,%d,%d",
			cfg.Parameters.SpreadingFactor, cfg.Parameters.Bandwidth,
			cfg.Parameters.CodingRate, cfg.Parameters.Preamble),
	}

	for _, cmd := range commands {
		cmd := cmd
		err := RetryWithConfig(ctx, retry, func() error {
			return exchange(ctx, ch, cmd, timeout)
		})
		if err != nil {
			return fmt.Errorf("radio setup command %q failed: %w", cmd, err)
		}
		debugf("radio setup: %s ok", cmd)
	}
	return nil
}

// exchange writes one AT command and waits for its response line. The module
// answers "+OK" on success and "+ERR=<code>" on rejection; unsolicited lines
// such as "+READY" and command echoes are skipped.
func exchange(ctx context.Context, ch Channel, cmd string, timeout time.Duration) error {
	if err := writeAll(ch, []byte(cmd+"\r\n")); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	var acc frame.Accumulator
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if time.Now().After(deadline) {
			return NewTimeoutError("exchange", ch.Port())
		}

		b, err := ch.ReadByte()
		if err != nil {
			if errors.Is(err, ErrNoData) {
				time.Sleep(time.Millisecond)
				continue
			}
			return NewTransportError("exchange", ch.Port(), err, ErrorTypeTransient)
		}

		if err := acc.Push(b); err != nil {
			acc.Clear()
			continue
		}
		if b != '\n' || !acc.HasLine() {
			continue
		}

		line := bytes.TrimRight(acc.Bytes(), "\r\n")
		acc.Clear()

		switch {
		case len(line) == 0:
			// blank line between responses
		case bytes.Equal(line, []byte("+OK")):
			return nil
		case bytes.HasPrefix(line, []byte("+ERR=")):
			code, convErr := strconv.Atoi(string(line[len("+ERR="):]))
			if convErr != nil {
				return fmt.Errorf("%w: unparseable error line %q", ErrCommunicationFailed, line)
			}
			return &RadioError{Code: code}
		default:
			// +READY banners and echoed commands
			debugf("radio setup: skipping line %q", line)
		}
	}
}
