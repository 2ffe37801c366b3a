// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// seekpi-grab captures a single frame.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/ProgramingPro2/seekpi/camera"
	"github.com/ProgramingPro2/seekpi/camera/flir"
	"github.com/ProgramingPro2/seekpi/camera/seek"
	"github.com/ProgramingPro2/seekpi/camera/senxor"
	"github.com/ProgramingPro2/seekpi/palette"
	"github.com/ProgramingPro2/seekpi/thermal"
	"periph.io/x/periph/host"
)

func openCamera(typ, serialPort, spiPort, i2cBus, ffcPath string, synthetic bool) (camera.Camera, error) {
	if synthetic {
		return camera.NewSynthetic(0, 0), nil
	}
	switch typ {
	case "senxor":
		return senxor.Open(serialPort)
	case "lepton":
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		return flir.Open(spiPort, i2cBus)
	}
	kind, err := seek.ParseKind(typ)
	if err != nil {
		return nil, err
	}
	return seek.Open(kind, ffcPath)
}

func mainImpl() error {
	cameraType := flag.String("camera", "seekpro", "camera backend: seek, seekpro, senxor or lepton")
	synthetic := flag.Bool("synthetic", false, "use the synthetic frame generator instead of hardware")
	serialPort := flag.String("serial", "", "serial port for the senxor backend, autodetected when empty")
	spiPort := flag.String("spi", "", "SPI port for the lepton backend")
	i2cBus := flag.String("i2c", "", "I²C bus for the lepton backend")
	ffcPath := flag.String("ffc", "", "flat field calibration file")
	paletteIdx := flag.Int("palette", -1, "colorize with this palette index instead of saving raw 16 bit gray")
	meta := flag.Bool("meta", false, "print frame metadata")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)

	if flag.NArg() != 1 {
		return errors.New("supply path to PNG to save")
	}

	cam, err := openCamera(*cameraType, *serialPort, *spiPort, *i2cBus, *ffcPath, *synthetic)
	if err != nil {
		return err
	}
	defer cam.Close()
	frame, err := cam.ReadRaw()
	if err != nil {
		return err
	}
	if *meta {
		lo, hi := frame.MinMax()
		m := thermal.DefaultModel()
		if fc, ok := cam.(*flir.Camera); ok {
			if m, err = fc.Model(); err != nil {
				return err
			}
		}
		fmt.Printf("Seq:    %d\n", frame.Seq)
		fmt.Printf("Taken:  %s\n", frame.When.Format(time.RFC3339))
		fmt.Printf("Counts: %d - %d\n", lo, hi)
		fmt.Printf("Range:  %.1f°C - %.1f°C\n", m.Celsius(lo), m.Celsius(hi))
	}

	var img image.Image = frame
	if *paletteIdx >= 0 {
		eng := palette.NewEngine(palette.Builtin())
		if *paletteIdx >= eng.Len() {
			return fmt.Errorf("palette index %d out of range, %d available", *paletteIdx, eng.Len())
		}
		img = eng.Apply(thermal.Normalize(frame, false), *paletteIdx)
	}

	f, err := os.Create(flag.Args()[0])
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nseekpi-grab: %s.\n", err)
		os.Exit(1)
	}
}
