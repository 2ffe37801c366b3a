// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// seekpi shows thermal camera frames on a small LCD with three-button
// control, plus a browser UI and optional MQTT telemetry.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/ProgramingPro2/seekpi/buttons"
	"github.com/ProgramingPro2/seekpi/camera"
	"github.com/ProgramingPro2/seekpi/camera/flir"
	"github.com/ProgramingPro2/seekpi/camera/seek"
	"github.com/ProgramingPro2/seekpi/camera/senxor"
	"github.com/ProgramingPro2/seekpi/config"
	"github.com/ProgramingPro2/seekpi/display"
	"github.com/ProgramingPro2/seekpi/st7789"
	"github.com/ProgramingPro2/seekpi/telemetry"
	"github.com/ProgramingPro2/seekpi/thermal"
	"github.com/ProgramingPro2/seekpi/viewer"
	"github.com/ProgramingPro2/seekpi/webui"
	"github.com/maruel/interrupt"
	"periph.io/x/periph/conn/gpio/gpioreg"
	"periph.io/x/periph/conn/spi/spireg"
	"periph.io/x/periph/host"
)

// cameraOpener returns the constructor matching the configured backend. The
// returned function is also used by the viewer to reopen the camera with a
// fresh calibration file.
func cameraOpener(typ, serialPort, spiPort, i2cBus string, synthetic bool) func(string) (camera.Camera, error) {
	return func(ffcPath string) (camera.Camera, error) {
		if synthetic {
			s := camera.NewSynthetic(0, 0)
			s.Interval = 100 * time.Millisecond
			return s, nil
		}
		switch typ {
		case "senxor":
			return senxor.Open(serialPort)
		case "lepton":
			return flir.Open(spiPort, i2cBus)
		}
		kind, err := seek.ParseKind(typ)
		if err != nil {
			return nil, err
		}
		return seek.Open(kind, ffcPath)
	}
}

func openLCD(rotation int) (display.Display, error) {
	p, err := spireg.Open("")
	if err != nil {
		return nil, err
	}
	dc := gpioreg.ByName("GPIO25")
	rst := gpioreg.ByName("GPIO24")
	if dc == nil || rst == nil {
		p.Close()
		return nil, errors.New("control pins GPIO24/GPIO25 not available")
	}
	opts := st7789.DefaultOpts
	opts.Rotation = rotation
	dev, err := st7789.NewSPI(p, dc, rst, nil, &opts)
	if err != nil {
		p.Close()
		return nil, err
	}
	return display.NewLCD(dev), nil
}

func mainImpl() error {
	cameraType := flag.String("camera", "", "camera backend: seek, seekpro, senxor or lepton (default: saved setting)")
	synthetic := flag.Bool("synthetic", false, "use the synthetic frame generator instead of hardware")
	serialPort := flag.String("serial", "", "serial port for the senxor backend, autodetected when empty")
	spiPort := flag.String("spi", "", "SPI port for the lepton backend")
	i2cBus := flag.String("i2c", "", "I²C bus for the lepton backend")
	ffcPath := flag.String("ffc", "", "flat field calibration file (default: saved setting)")
	paletteIdx := flag.Int("palette", -1, "startup palette index (default: saved setting)")
	lcd := flag.Bool("lcd", false, "drive the ST7789 panel over SPI")
	rotation := flag.Int("rotate", 0, "panel rotation in quarter turns (0-3)")
	port := flag.Int("port", 8010, "http port to listen on, 0 to disable")
	mqtt := flag.String("mqtt", "", "MQTT broker to publish telemetry to, e.g. tcp://127.0.0.1:1883")
	writeConfig := flag.Bool("writeConfig", false, "write the effective config file and exit")
	cpuprofile := flag.String("cpuprofile", "", "dump CPU profile in file")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return err
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := config.Load(config.Path())
	if *cameraType != "" {
		cfg.CameraType = *cameraType
	}
	if *ffcPath != "" {
		cfg.FFCPath = *ffcPath
	}
	if *paletteIdx >= 0 {
		cfg.PaletteIndex = *paletteIdx
	}
	if *writeConfig {
		return config.Save(config.Path(), cfg)
	}

	interrupt.HandleCtrlC()

	if _, err := host.Init(); err != nil {
		log.Printf("host init: %v", err)
	}

	open := cameraOpener(cfg.CameraType, *serialPort, *spiPort, *i2cBus, *synthetic)
	cam, err := open(cfg.FFCPath)
	if err != nil {
		return err
	}
	var model thermal.TemperatureModel
	if fc, ok := cam.(*flir.Camera); ok {
		// Lepton counts are relative to the sensor, not absolute like the
		// Seek calibration, so anchor the mapping once at startup.
		if model, err = fc.Model(); err != nil {
			return err
		}
	}

	var disp display.Display = &display.Null{}
	if *lcd {
		d, err := openLCD(*rotation)
		if err != nil {
			// The web UI stays useful on a kiosk with a loose panel.
			fmt.Fprintf(os.Stderr, "seekpi: lcd unavailable, continuing headless: %v\n", err)
		} else {
			disp = d
		}
	}

	var events <-chan buttons.Button
	if btns, err := buttons.Open(nil); err != nil {
		fmt.Fprintf(os.Stderr, "seekpi: buttons unavailable: %v\n", err)
	} else {
		defer btns.Close()
		events = btns.Events()
	}

	var web *webui.Server
	if *port != 0 {
		web = webui.Start(*port)
	}
	var tel *telemetry.Publisher
	if *mqtt != "" {
		if tel, err = telemetry.Connect(&telemetry.Opts{Broker: *mqtt}); err != nil {
			return err
		}
	}

	app, err := viewer.New(viewer.Opts{
		Camera:     cam,
		Display:    disp,
		Events:     events,
		Web:        web,
		Telemetry:  tel,
		Config:     cfg,
		ConfigPath: config.Path(),
		OpenCamera: open,
		Model:      model,
	})
	if err != nil {
		return err
	}

	// Exit cleanly when a new binary lands; the supervisor restarts us.
	go func() {
		if err := watchFile(); err != nil {
			log.Printf("watch: %v", err)
		}
		interrupt.Set()
	}()

	last := time.Now()
	var tickErr error
	for !interrupt.IsSet() {
		if tickErr = app.Tick(); tickErr != nil {
			break
		}
		if time.Since(last) >= time.Second {
			s := app.Stats()
			fmt.Printf("\r%d frames %d read errors %d show errors", s.Frames, s.ReadErrors, s.ShowErrors)
			last = time.Now()
		}
	}
	fmt.Print("\n")
	if err := app.Shutdown(); tickErr == nil {
		tickErr = err
	}
	return tickErr
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nseekpi: %s.\n", err)
		os.Exit(1)
	}
}
