// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package flir reads FLIR Lepton modules attached over SPI for video and
// I²C for command and control. The wire protocol lives in periph.io's
// lepton driver; this package adapts its 14-bit frames to the viewer
// pipeline.
package flir

import (
	"fmt"
	"time"

	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/devices/lepton"
	"periph.io/x/periph/devices/lepton/image14bit"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// Counts sit on a 14 bit scale centered at 8192 when a pixel matches the
// sensor's own temperature, one count per 25 milli-kelvin.
const (
	centerCount    = 8192
	kelvinPerCount = 0.025
)

// Camera is an open Lepton. Frames arrive over SPI at 9 Hz; the viewer
// pulls them from a single goroutine, there is no background reader.
type Camera struct {
	dev *lepton.Dev
	spi spi.PortCloser
	i2c i2c.BusCloser
	seq uint64
}

// Open connects on the named SPI and I²C buses. Empty names select the
// first bus registered on the host.
func Open(spiName, i2cName string) (*Camera, error) {
	s, err := spireg.Open(spiName)
	if err != nil {
		return nil, fmt.Errorf("flir: %w", err)
	}
	b, err := i2creg.Open(i2cName)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("flir: %w", err)
	}
	dev, err := lepton.New(s, b)
	if err != nil {
		b.Close()
		s.Close()
		return nil, fmt.Errorf("flir: %w", err)
	}
	return &Camera{dev: dev, spi: s, i2c: b}, nil
}

// ReadRaw blocks until the next frame syncs, which can take a few frame
// periods while the VoSPI stream resynchronizes after a desync.
func (c *Camera) ReadRaw() (*thermal.Frame, error) {
	bounds := c.dev.Bounds()
	src := lepton.Frame{Gray14: image14bit.NewGray14(bounds)}
	if err := c.dev.NextFrame(&src); err != nil {
		return nil, fmt.Errorf("flir: %w", err)
	}
	c.seq++
	f := thermal.NewFrame(bounds.Dx(), bounds.Dy())
	f.Seq = c.seq
	f.When = time.Now()
	for y := 0; y < f.H; y++ {
		for x := 0; x < f.W; x++ {
			f.Set16(x, y, uint16(src.Intensity14At(x, y)))
		}
	}
	return f, nil
}

// Size returns the sensor resolution, 80x60 on the Lepton 2 family.
func (c *Camera) Size() (int, int) {
	bounds := c.dev.Bounds()
	return bounds.Dx(), bounds.Dy()
}

// Model returns the count mapping anchored on the sensor's temperature at
// call time. Counts are relative to the sensor itself, so the mapping
// drifts as the module warms up; refresh it after a flat field correction.
func (c *Camera) Model() (thermal.TemperatureModel, error) {
	t, err := c.dev.GetTemp()
	if err != nil {
		return thermal.TemperatureModel{}, fmt.Errorf("flir: %w", err)
	}
	return modelAt(float64(t-physic.ZeroCelsius) / float64(physic.Celsius)), nil
}

// RunFFC closes the camera's own shutter for a flat field correction. This
// is the sensor's internal correction, independent of any correction image
// the viewer keeps on disk.
func (c *Camera) RunFFC() error {
	return c.dev.RunFFC()
}

// Close halts the camera and releases both buses.
func (c *Camera) Close() error {
	err := c.dev.Halt()
	if cerr := c.i2c.Close(); err == nil {
		err = cerr
	}
	if cerr := c.spi.Close(); err == nil {
		err = cerr
	}
	return err
}

// modelAt builds the affine mapping for a sensor sitting at the given
// temperature in Celsius.
func modelAt(sensorC float64) thermal.TemperatureModel {
	return thermal.TemperatureModel{
		Scale:  kelvinPerCount,
		Offset: centerCount*kelvinPerCount - sensorC,
	}
}
