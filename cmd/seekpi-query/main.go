// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// seekpi-query prints a thermal camera's internal state without starting
// the viewer. The lepton backend is queried over I²C alone, so it works
// while another process owns the SPI video stream.
package main

import (
	"flag"
	"fmt"
	"os"

	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/devices/lepton/cci"
	"periph.io/x/periph/host"

	"github.com/ProgramingPro2/seekpi/camera/senxor"
)

func queryLepton(i2cName string, hz int, ffc bool) error {
	if _, err := host.Init(); err != nil {
		return err
	}
	i2cBus, err := i2creg.Open(i2cName)
	if err != nil {
		return err
	}
	defer i2cBus.Close()
	if hz != 0 {
		if err := i2cBus.SetSpeed(physic.Frequency(hz) * physic.Hertz); err != nil {
			return err
		}
	}
	dev, err := cci.New(i2cBus)
	if err != nil {
		return err
	}
	status, err := dev.GetStatus()
	if err != nil {
		return err
	}
	fmt.Printf("Status.CameraStatus: %s\n", status.CameraStatus)
	fmt.Printf("Status.CommandCount: %d\n", status.CommandCount)
	serial, err := dev.GetSerial()
	if err != nil {
		return err
	}
	fmt.Printf("Serial:              0x%x\n", serial)
	uptime, err := dev.GetUptime()
	if err != nil {
		return err
	}
	fmt.Printf("Uptime:              %s\n", uptime)
	temp, err := dev.GetTemp()
	if err != nil {
		return err
	}
	fmt.Printf("Temp:                %s\n", temp)
	temp, err = dev.GetTempHousing()
	if err != nil {
		return err
	}
	fmt.Printf("Temp housing:        %s\n", temp)
	pos, err := dev.GetShutterPos()
	if err != nil {
		return err
	}
	fmt.Printf("ShutterPos:          %s\n", pos)
	mode, err := dev.GetFFCModeControl()
	if err != nil {
		return err
	}
	fmt.Printf("FFCMode.FFCShutterMode:          %s\n", mode.FFCShutterMode)
	fmt.Printf("FFCMode.ShutterTempLockoutState: %s\n", mode.ShutterTempLockoutState)
	fmt.Printf("FFCMode.VideoFreezeDuringFFC:    %t\n", mode.VideoFreezeDuringFFC)
	fmt.Printf("FFCMode.FFCDesired:              %t\n", mode.FFCDesired)
	fmt.Printf("FFCMode.ElapsedTimeSinceLastFFC: %s\n", mode.ElapsedTimeSinceLastFFC)
	fmt.Printf("FFCMode.DesiredFFCPeriod:        %s\n", mode.DesiredFFCPeriod)
	fmt.Printf("FFCMode.ExplicitCommandToOpen:   %t\n", mode.ExplicitCommandToOpen)
	fmt.Printf("FFCMode.DesiredFFCTempDelta:     %s\n", mode.DesiredFFCTempDelta)
	fmt.Printf("FFCMode.ImminentDelay:           %d\n", mode.ImminentDelay)
	if ffc {
		return dev.RunFFC()
	}
	return nil
}

func querySenxor(port string, fps float64) error {
	cam, err := senxor.Open(port)
	if err != nil {
		return err
	}
	defer cam.Close()
	w, h := cam.Size()
	fmt.Printf("Model: %s\n", cam.Model())
	fmt.Printf("Size:  %dx%d\n", w, h)
	if fps > 0 {
		actual, err := cam.SetFramerate(fps)
		if err != nil {
			return err
		}
		fmt.Printf("Framerate: %.1f fps\n", actual)
	}
	return nil
}

func mainImpl() error {
	cameraType := flag.String("camera", "lepton", "camera backend to query: lepton or senxor")
	i2cName := flag.String("i2c", "", "I²C bus to use")
	i2cHz := flag.Int("hz", 0, "I²C bus speed")
	ffc := flag.Bool("ffc", false, "trigger the lepton's internal FFC")
	serialPort := flag.String("serial", "", "serial port for the senxor backend, autodetected when empty")
	fps := flag.Float64("fps", 0, "reprogram the senxor framerate")
	flag.Parse()

	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Args())
	}

	switch *cameraType {
	case "lepton":
		return queryLepton(*i2cName, *i2cHz, *ffc)
	case "senxor":
		return querySenxor(*serialPort, *fps)
	}
	return fmt.Errorf("unknown camera type %q", *cameraType)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "\nseekpi-query: %s.\n", err)
		os.Exit(1)
	}
}
