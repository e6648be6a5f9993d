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

// Package bme680 drives a Bosch BME680 environmental sensor over I2C in
// forced mode, producing the temperature, humidity, and gas resistance
// readings the node transmits. Pressure measurement is left disabled; the
// link format does not carry it.
package bme680

import (
	"context"
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
)

// I2C addresses selectable via the SDO pin
const (
	AddrLow  = 0x76 // SDO to GND
	AddrHigh = 0x77 // SDO to VDDIO
)

// Register map
const (
	regChipID     = 0xD0
	regReset      = 0xE0
	regCtrlHum    = 0x72
	regCtrlMeas   = 0x74
	regConfig     = 0x75
	regCtrlGas1   = 0x71
	regGasWait0   = 0x64
	regResHeat0   = 0x5A
	regMeasStatus = 0x1D

	regCoeff1     = 0x89 // 25 bytes
	regCoeff2     = 0xE1 // 16 bytes
	regResHeatVal = 0x00
	regResHeatRng = 0x02
	regRangeSwErr = 0x04

	chipID   = 0x61
	resetCmd = 0xB6
)

// measStatus bits
const (
	statusNewData   = 0x80
	statusMeasuring = 0x20
)

// gasStatus bits in the gas_r_lsb register
const (
	gasValid   = 0x20
	heaterStab = 0x10
)

// calibration holds the factory trim values read once at startup
type calibration struct {
	t1 uint16
	t2 int16
	t3 int8

	h1 uint16
	h2 uint16
	h3 int8
	h4 int8
	h5 int8
	h6 uint8
	h7 int8

	gh1 int8
	gh2 int16
	gh3 int8

	resHeatRange uint8
	resHeatVal   int8
	rangeSwErr   int8
}

// Dev is an opened BME680
type Dev struct {
	d     *i2c.Dev
	cal   calibration
	name  string
	tFine int32

	heaterTemp int // target plate temperature, °C
	heaterDur  int // heating time before the gas read, ms
	ambient    int // last compensated ambient, °C, seeds the heater math
}

var _ rylr896.Sensor = (*Dev)(nil)

// Option is a functional option for configuring the device
type Option func(*Dev)

// WithHeater overrides the default gas heater set point of 320 °C for 150 ms
func WithHeater(tempC, durationMs int) Option {
	return func(d *Dev) {
		d.heaterTemp = tempC
		d.heaterDur = durationMs
	}
}

// New opens and initializes a BME680 at addr on bus: chip identification,
// soft reset, calibration readout, and oversampling plus heater setup.
func New(bus i2c.Bus, addr uint16, opts ...Option) (*Dev, error) {
	if addr != AddrLow && addr != AddrHigh {
		return nil, fmt.Errorf("%w: BME680 address %#x", rylr896.ErrInvalidParameter, addr)
	}

	d := &Dev{
		d:          &i2c.Dev{Addr: addr, Bus: bus},
		name:       fmt.Sprintf("bme680@%#x", addr),
		heaterTemp: 320,
		heaterDur:  150,
		ambient:    25,
	}
	for _, opt := range opts {
		opt(d)
	}

	var id [1]byte
	if err := d.d.Tx([]byte{regChipID}, id[:]); err != nil {
		return nil, fmt.Errorf("failed to read %s chip ID: %w", d.name, err)
	}
	if id[0] != chipID {
		return nil, fmt.Errorf("device at %s is not a BME680 (chip ID %#x)", d.name, id[0])
	}

	if err := d.d.Tx([]byte{regReset, resetCmd}, nil); err != nil {
		return nil, fmt.Errorf("failed to reset %s: %w", d.name, err)
	}
	time.Sleep(10 * time.Millisecond)

	if err := d.readCalibration(); err != nil {
		return nil, err
	}
	if err := d.configure(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) readCalibration() error {
	var c1 [25]byte
	var c2 [16]byte
	if err := d.d.Tx([]byte{regCoeff1}, c1[:]); err != nil {
		return fmt.Errorf("failed to read %s calibration block 1: %w", d.name, err)
	}
	if err := d.d.Tx([]byte{regCoeff2}, c2[:]); err != nil {
		return fmt.Errorf("failed to read %s calibration block 2: %w", d.name, err)
	}

	cal := &d.cal
	cal.t2 = int16(uint16(c1[1]) | uint16(c1[2])<<8)
	cal.t3 = int8(c1[3])

	// H1 and H2 share the nibble register at 0xE2
	cal.h2 = uint16(c2[0])<<4 | uint16(c2[1])>>4
	cal.h1 = uint16(c2[2])<<4 | uint16(c2[1])&0x0F
	cal.h3 = int8(c2[3])
	cal.h4 = int8(c2[4])
	cal.h5 = int8(c2[5])
	cal.h6 = c2[6]
	cal.h7 = int8(c2[7])
	cal.t1 = uint16(c2[8]) | uint16(c2[9])<<8
	cal.gh2 = int16(uint16(c2[10]) | uint16(c2[11])<<8)
	cal.gh1 = int8(c2[12])
	cal.gh3 = int8(c2[13])

	var b [1]byte
	if err := d.d.Tx([]byte{regResHeatVal}, b[:]); err != nil {
		return fmt.Errorf("failed to read %s res_heat_val: %w", d.name, err)
	}
	cal.resHeatVal = int8(b[0])
	if err := d.d.Tx([]byte{regResHeatRng}, b[:]); err != nil {
		return fmt.Errorf("failed to read %s res_heat_range: %w", d.name, err)
	}
	cal.resHeatRange = (b[0] & 0x30) >> 4
	if err := d.d.Tx([]byte{regRangeSwErr}, b[:]); err != nil {
		return fmt.Errorf("failed to read %s range_sw_err: %w", d.name, err)
	}
	cal.rangeSwErr = int8(b[0]&0xF0) >> 4
	return nil
}

// configure programs oversampling, filtering, and the gas heater profile.
// Pressure oversampling stays at skip.
func (d *Dev) configure() error {
	steps := []struct {
		reg, val byte
	}{
		{regCtrlHum, 0x02},  // humidity x2
		{regConfig, 0x02<<2}, // IIR filter coefficient 3
		{regGasWait0, encodeGasWait(d.heaterDur)},
		{regResHeat0, d.heaterSetPoint()},
		{regCtrlGas1, 0x10}, // run_gas, heater profile 0
	}
	for _, s := range steps {
		if err := d.d.Tx([]byte{s.reg, s.val}, nil); err != nil {
			return fmt.Errorf("failed to configure %s register %#x: %w", d.name, s.reg, err)
		}
	}
	return nil
}

// Measure implements rylr896.Sensor: it triggers one forced-mode conversion,
// waits for completion, and compensates the raw readings with the factory
// trim values.
func (d *Dev) Measure(ctx context.Context) (rylr896.Measurement, error) {
	// Refresh the heater set point with the latest ambient temperature
	if err := d.d.Tx([]byte{regResHeat0, d.heaterSetPoint()}, nil); err != nil {
		return rylr896.Measurement{}, fmt.Errorf("failed to arm %s heater: %w", d.name, err)
	}

	// temperature x8, pressure skip, forced mode
	if err := d.d.Tx([]byte{regCtrlMeas, 0x04<<5 | 0x01}, nil); err != nil {
		return rylr896.Measurement{}, fmt.Errorf("failed to trigger %s conversion: %w", d.name, err)
	}

	for {
		select {
		case <-ctx.Done():
			return rylr896.Measurement{}, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}

		var status [1]byte
		if err := d.d.Tx([]byte{regMeasStatus}, status[:]); err != nil {
			return rylr896.Measurement{}, fmt.Errorf("failed to poll %s status: %w", d.name, err)
		}
		if status[0]&statusNewData != 0 && status[0]&statusMeasuring == 0 {
			break
		}
	}

	// One burst from meas_status through gas_r_lsb
	var data [15]byte
	if err := d.d.Tx([]byte{regMeasStatus}, data[:]); err != nil {
		return rylr896.Measurement{}, fmt.Errorf("failed to read %s data block: %w", d.name, err)
	}

	tempADC := int32(data[5])<<12 | int32(data[6])<<4 | int32(data[7])>>4
	humADC := int32(data[8])<<8 | int32(data[9])
	gasADC := int32(data[13])<<2 | int32(data[14])>>6
	gasRange := data[14] & 0x0F

	tempComp := d.compensateTemperature(tempADC)
	humComp := d.compensateHumidity(humADC)
	d.ambient = int(tempComp / 100)

	var gasOhms uint32
	if data[14]&gasValid != 0 && data[14]&heaterStab != 0 {
		gasOhms = d.compensateGas(gasADC, gasRange)
	}

	return rylr896.Measurement{
		Temperature:   clampInt16(tempComp),
		Humidity:      clampHumidity(humComp),
		GasResistance: gasOhms,
	}, nil
}

// compensateTemperature converts a raw ADC value to centidegrees Celsius
// using the Bosch integer formula, keeping t_fine for the humidity path.
func (d *Dev) compensateTemperature(adc int32) int32 {
	var1 := (adc >> 3) - int32(d.cal.t1)<<1
	var2 := (var1 * int32(d.cal.t2)) >> 11
	var3 := ((var1 >> 1) * (var1 >> 1)) >> 12
	var3 = (var3 * (int32(d.cal.t3) << 4)) >> 14
	d.tFine = var2 + var3
	return (d.tFine*5 + 128) >> 8
}

// compensateHumidity converts a raw ADC value to milli-percent relative
// humidity (1000 = 1 %RH)
func (d *Dev) compensateHumidity(adc int32) int32 {
	tempScaled := (d.tFine*5 + 128) >> 8
	var1 := adc - int32(d.cal.h1)<<4 - ((tempScaled*int32(d.cal.h3))/100)>>1
	var2 := (int32(d.cal.h2) *
		((tempScaled*int32(d.cal.h4))/100 +
			((tempScaled*((tempScaled*int32(d.cal.h5))/100))>>6)/100 +
			1<<14)) >> 10
	var3 := var1 * var2
	var4 := (int32(d.cal.h6)<<7 + (tempScaled*int32(d.cal.h7))/100) >> 4
	var5 := ((var3 >> 14) * (var3 >> 14)) >> 10
	var6 := (var4 * var5) >> 1
	return (((var3 + var6) >> 10) * 1000) >> 12
}

// Gas range scaling constants from the Bosch reference driver
var (
	gasLookup1 = [16]int64{
		2147483647, 2147483647, 2147483647, 2147483647,
		2147483647, 2126008810, 2147483647, 2130303777,
		2147483647, 2147483647, 2143188679, 2136746228,
		2147483647, 2126008810, 2147483647, 2147483647,
	}
	gasLookup2 = [16]int64{
		4096000000, 2048000000, 1024000000, 512000000,
		255744255, 127110228, 64000000, 32258064,
		16016016, 8000000, 4000000, 2000000,
		1000000, 500000, 250000, 125000,
	}
)

// compensateGas converts a raw gas ADC value and range to plate resistance
// in ohms
func (d *Dev) compensateGas(adc int32, gasRange uint8) uint32 {
	var1 := (1340 + 5*int64(d.cal.rangeSwErr)) * gasLookup1[gasRange] >> 16
	var2 := (int64(adc) << 15) - 16777216 + var1
	var3 := (gasLookup2[gasRange] * var1) >> 9
	res := (var3 + (var2 >> 1)) / var2
	if res < 0 {
		return 0
	}
	return uint32(res)
}

// heaterSetPoint computes the res_heat_0 register value for the configured
// target temperature at the current ambient
func (d *Dev) heaterSetPoint() byte {
	target := d.heaterTemp
	if target > 400 {
		target = 400
	}

	var1 := (int32(d.ambient) * int32(d.cal.gh3)) / 1000 * 256
	var2 := (int32(d.cal.gh1) + 784) *
		(((int32(d.cal.gh2)+154009)*int32(target)*5/100 + 3276800) / 10)
	var3 := var1 + var2/2
	var4 := var3 / (int32(d.cal.resHeatRange) + 4)
	var5 := 131*int32(d.cal.resHeatVal) + 65536
	resX100 := (var4/var5 - 250) * 34
	return byte((resX100 + 50) / 100)
}

// encodeGasWait packs a heating time in milliseconds into the gas_wait
// register format: a 6-bit mantissa with a x1/x4/x16/x64 multiplier
func encodeGasWait(ms int) byte {
	if ms < 1 {
		ms = 1
	}
	if ms > 0xFC0 {
		ms = 0xFC0
	}
	var factor byte
	for ms > 0x3F {
		ms /= 4
		factor++
	}
	return byte(ms) | factor<<6
}

func clampInt16(v int32) int16 {
	switch {
	case v > 32767:
		return 32767
	case v < -32768:
		return -32768
	default:
		return int16(v)
	}
}

// clampHumidity converts milli-percent to the basis-point wire unit
func clampHumidity(v int32) uint16 {
	if v < 0 {
		return 0
	}
	bp := v / 10
	if bp > 10000 {
		return 10000
	}
	return uint16(bp)
}
