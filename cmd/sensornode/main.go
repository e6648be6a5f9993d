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

// sensornode runs a battery sensor node: a BME680 sampled on a timer, with
// readings delivered to the gateway through a RYLR896 LoRa module.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	rylr896 "github.com/NodeLinkProject/go-rylr896"
	"github.com/NodeLinkProject/go-rylr896/sensor/bme680"
	"github.com/NodeLinkProject/go-rylr896/transport/uart"
)

const defaultConfigPath = "/etc/sensornode.yaml"

func main() {
	var (
		configPath = flag.String("config", defaultConfigPath, "path to the YAML configuration")
		port       = flag.String("port", "", "serial port of the RYLR896 (overrides config)")
		dest       = flag.Int("dest", 0, "gateway address (overrides config)")
		interval   = flag.Int("interval", 0, "reporting interval in seconds (overrides config)")
		demo       = flag.Bool("demo", false, "use a synthetic sensor instead of a BME680")
		listPorts  = flag.Bool("list-ports", false, "list serial ports and exit")
		debug      = flag.Bool("debug", false, "enable protocol debug output")
	)
	flag.Parse()

	if *listPorts {
		ports, err := uart.ListPorts()
		if err != nil {
			log.Fatalf("failed to list ports: %v", err)
		}
		if len(ports) == 0 {
			fmt.Println("no serial ports found")
			return
		}
		for _, p := range ports {
			fmt.Println(p)
		}
		return
	}

	if *debug {
		rylr896.SetDebugEnabled(true)
	}

	if err := run(*configPath, *port, *dest, *interval, *demo); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, portOverride string, destOverride, intervalOverride int, demo bool) error {
	cfg, err := loadConfig(configPath, configPath != defaultConfigPath)
	if err != nil {
		return err
	}
	if portOverride != "" {
		cfg.Port = portOverride
	}
	if destOverride > 0 {
		cfg.Destination = destOverride
	}
	if intervalOverride > 0 {
		cfg.IntervalSeconds = intervalOverride
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ch, err := uart.Open(cfg.Port, uart.WithBaudRate(cfg.BaudRate))
	if err != nil {
		return err
	}

	log.Printf("configuring radio on %s: address %d, network %d, %d Hz",
		cfg.Port, cfg.Radio.Address, cfg.Radio.NetworkID, cfg.Radio.BandHz)
	if err := rylr896.ConfigureRadio(ctx, ch, cfg.radioConfig()); err != nil {
		_ = ch.Close()
		return err
	}

	sensor, err := openSensor(&cfg, demo)
	if err != nil {
		_ = ch.Close()
		return err
	}

	node, err := rylr896.New(ch, sensor,
		rylr896.WithDestination(cfg.Destination),
		rylr896.WithAutoTransmitTicks(uint32(cfg.IntervalSeconds)),
	)
	if err != nil {
		_ = ch.Close()
		return err
	}
	defer func() {
		if err := node.Close(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("reporting to gateway %d every %ds", cfg.Destination, cfg.IntervalSeconds)
	if err := node.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Print("shutting down")
	return nil
}

func openSensor(cfg *Config, demo bool) (rylr896.Sensor, error) {
	if demo {
		log.Print("using synthetic sensor data")
		return demoSensor(), nil
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph host: %w", err)
	}
	bus, err := i2creg.Open(cfg.Sensor.Bus)
	if err != nil {
		return nil, fmt.Errorf("failed to open I2C bus %q: %w", cfg.Sensor.Bus, err)
	}

	dev, err := bme680.New(bus, cfg.Sensor.Address,
		bme680.WithHeater(cfg.Sensor.HeaterTempC, cfg.Sensor.HeaterDurationMs))
	if err != nil {
		return nil, err
	}
	return dev, nil
}

// demoSensor produces a slow random walk around plausible indoor conditions
func demoSensor() rylr896.Sensor {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	temp, hum, gas := 2200.0, 4500.0, 120000.0

	return rylr896.SensorFunc(func(_ context.Context) (rylr896.Measurement, error) {
		temp += rng.Float64()*40 - 20
		hum += rng.Float64()*100 - 50
		gas += rng.Float64()*4000 - 2000

		if hum < 0 {
			hum = 0
		}
		if hum > 10000 {
			hum = 10000
		}
		if gas < 1000 {
			gas = 1000
		}

		return rylr896.Measurement{
			Temperature:   int16(temp),
			Humidity:      uint16(hum),
			GasResistance: uint32(gas),
		}, nil
	})
}
