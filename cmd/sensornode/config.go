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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
	"github.com/NodeLinkProject/go-rylr896/sensor/bme680"
)

// Config is the on-disk node configuration
type Config struct {
	// Port is the serial port the RYLR896 is attached to
	Port string `yaml:"port"`
	// BaudRate for the module's UART, 115200 unless reconfigured
	BaudRate int `yaml:"baud_rate"`
	// Destination is the gateway's radio address
	Destination int `yaml:"destination"`
	// IntervalSeconds is the automatic reporting period
	IntervalSeconds int `yaml:"interval_seconds"`

	Radio  RadioSection  `yaml:"radio"`
	Sensor SensorSection `yaml:"sensor"`
}

// RadioSection configures the module itself
type RadioSection struct {
	Address         int `yaml:"address"`
	NetworkID       int `yaml:"network_id"`
	BandHz          int `yaml:"band_hz"`
	SpreadingFactor int `yaml:"spreading_factor"`
	Bandwidth       int `yaml:"bandwidth"`
	CodingRate      int `yaml:"coding_rate"`
	Preamble        int `yaml:"preamble"`
}

// SensorSection configures the BME680
type SensorSection struct {
	Bus              string `yaml:"bus"`
	Address          uint16 `yaml:"address"`
	HeaterTempC      int    `yaml:"heater_temp_c"`
	HeaterDurationMs int    `yaml:"heater_duration_ms"`
}

// defaultConfig mirrors the stock deployment: node 1 reporting to gateway 2
// every 10 seconds on the 915 MHz band
func defaultConfig() Config {
	radio := rylr896.DefaultRadioConfig()
	return Config{
		Port:            "/dev/ttyUSB0",
		BaudRate:        115200,
		Destination:     rylr896.DefaultDestination,
		IntervalSeconds: 10,
		Radio: RadioSection{
			Address:         radio.Address,
			NetworkID:       radio.NetworkID,
			BandHz:          radio.BandHz,
			SpreadingFactor: radio.Parameters.SpreadingFactor,
			Bandwidth:       radio.Parameters.Bandwidth,
			CodingRate:      radio.Parameters.CodingRate,
			Preamble:        radio.Parameters.Preamble,
		},
		Sensor: SensorSection{
			Bus:              "",
			Address:          bme680.AddrLow,
			HeaterTempC:      320,
			HeaterDurationMs: 150,
		},
	}
}

// loadConfig merges the YAML file at path over the defaults. A missing file
// is not an error when path is the default location.
func loadConfig(path string, required bool) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// radioConfig converts the YAML section to the library's setup struct
func (c *Config) radioConfig() rylr896.RadioConfig {
	return rylr896.RadioConfig{
		Address:   c.Radio.Address,
		NetworkID: c.Radio.NetworkID,
		BandHz:    c.Radio.BandHz,
		Parameters: rylr896.RadioParameters{
			SpreadingFactor: c.Radio.SpreadingFactor,
			Bandwidth:       c.Radio.Bandwidth,
			CodingRate:      c.Radio.CodingRate,
			Preamble:        c.Radio.Preamble,
		},
	}
}
