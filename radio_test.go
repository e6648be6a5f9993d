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

package rylr896_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
	mock "github.com/NodeLinkProject/go-rylr896/internal/testing"
)

func fastRadioConfig() rylr896.RadioConfig {
	cfg := rylr896.DefaultRadioConfig()
	cfg.ResponseTimeout = 100 * time.Millisecond
	cfg.Retry = &rylr896.RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
	return cfg
}

func TestConfigureRadioCommandSequence(t *testing.T) {
	t.Parallel()
	ch := mock.NewMockChannel()
	ch.QueueReadString("+OK\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n")

	require.NoError(t, rylr896.ConfigureRadio(context.Background(), ch, fastRadioConfig()))

	want := "AT\r\n" +
		"AT+ADDRESS=1\r\n" +
		"AT+NETWORKID=18\r\n" +
		"AT+BAND=915000000\r\n" +
		"AT+PARAMETER=7,9,1,7\r\n"
	assert.Equal(t, want, string(ch.Written()))
}

func TestConfigureRadioSkipsUnsolicitedLines(t *testing.T) {
	t.Parallel()
	ch := mock.NewMockChannel()
	// Power-on banner and a stray blank line interleaved with the replies
	ch.QueueReadString("+READY\r\n+OK\r\n\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n")

	require.NoError(t, rylr896.ConfigureRadio(context.Background(), ch, fastRadioConfig()))
}

func TestConfigureRadioRetriesTransientRejection(t *testing.T) {
	t.Parallel()
	ch := mock.NewMockChannel()
	// First probe is rejected with an RX timeout, the reissue succeeds
	ch.QueueReadString("+ERR=12\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n+OK\r\n")

	require.NoError(t, rylr896.ConfigureRadio(context.Background(), ch, fastRadioConfig()))

	// The probe went out twice, the rest once
	want := "AT\r\n" + "AT\r\n" +
		"AT+ADDRESS=1\r\n" +
		"AT+NETWORKID=18\r\n" +
		"AT+BAND=915000000\r\n" +
		"AT+PARAMETER=7,9,1,7\r\n"
	assert.Equal(t, want, string(ch.Written()))
}

func TestConfigureRadioPermanentRejectionStops(t *testing.T) {
	t.Parallel()
	ch := mock.NewMockChannel()
	ch.QueueReadString("+ERR=4\r\n")

	err := rylr896.ConfigureRadio(context.Background(), ch, fastRadioConfig())
	require.Error(t, err)

	var radioErr *rylr896.RadioError
	require.ErrorAs(t, err, &radioErr)
	assert.Equal(t, rylr896.CodeBadParameter, radioErr.Code)

	// No retry for a parameter rejection: the probe went out exactly once
	assert.Equal(t, "AT\r\n", string(ch.Written()))
}

func TestConfigureRadioTimeout(t *testing.T) {
	t.Parallel()
	ch := mock.NewMockChannel() // never answers

	cfg := fastRadioConfig()
	cfg.ResponseTimeout = 20 * time.Millisecond
	cfg.Retry.MaxAttempts = 1

	err := rylr896.ConfigureRadio(context.Background(), ch, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, rylr896.ErrTransportTimeout)
}

func TestConfigureRadioValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(*rylr896.RadioConfig)
	}{
		{name: "address out of range", mutate: func(c *rylr896.RadioConfig) { c.Address = -1 }},
		{name: "band out of range", mutate: func(c *rylr896.RadioConfig) { c.BandHz = 100 }},
		{name: "spreading factor too low", mutate: func(c *rylr896.RadioConfig) { c.Parameters.SpreadingFactor = 6 }},
		{name: "spreading factor too high", mutate: func(c *rylr896.RadioConfig) { c.Parameters.SpreadingFactor = 13 }},
		{name: "bandwidth code too high", mutate: func(c *rylr896.RadioConfig) { c.Parameters.Bandwidth = 10 }},
		{name: "coding rate zero", mutate: func(c *rylr896.RadioConfig) { c.Parameters.CodingRate = 0 }},
		{name: "preamble too short", mutate: func(c *rylr896.RadioConfig) { c.Parameters.Preamble = 3 }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ch := mock.NewMockChannel()
			cfg := fastRadioConfig()
			tt.mutate(&cfg)

			err := rylr896.ConfigureRadio(context.Background(), ch, cfg)
			require.ErrorIs(t, err, rylr896.ErrInvalidParameter)
			assert.Empty(t, ch.Written(), "invalid config still reached the module")
		})
	}
}

func TestConfigureRadioNilChannel(t *testing.T) {
	t.Parallel()
	err := rylr896.ConfigureRadio(context.Background(), nil, fastRadioConfig())
	require.ErrorIs(t, err, rylr896.ErrInvalidParameter)
}

func TestConfigureRadioContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := mock.NewMockChannel()
	err := rylr896.ConfigureRadio(ctx, ch, fastRadioConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}