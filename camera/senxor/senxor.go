// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package senxor reads Meridian MI48-based thermal sensors over their
// USB-CDC serial interface. Unlike the USB Seek cameras it needs no native
// library, just a serial port.
package senxor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// The EVK enumerates as an STM32 virtual COM port.
const usbVID = "0483"

var usbPIDs = []string{"5740"}

// Camera is an open MI48 device. The viewer pulls frames from it on one
// goroutine; there is no background reader.
type Camera struct {
	port      serial.Port
	model     string
	maxFPS    float64
	w, h      int
	seq       uint64
	streaming bool
}

// Open connects to the sensor on the named port, or autodetects it by USB
// ID when name is empty.
func Open(name string) (*Camera, error) {
	if name == "" {
		var err error
		if name, err = findPort(); err != nil {
			return nil, err
		}
	}
	// Baud rate and framing are meaningless on USB-CDC.
	p, err := serial.Open(name, &serial.Mode{})
	if err != nil {
		return nil, fmt.Errorf("senxor: opening %s: %w", name, err)
	}
	c := &Camera{port: p}
	if err := c.identify(); err != nil {
		p.Close()
		return nil, err
	}
	return c, nil
}

func findPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("senxor: listing serial ports: %w", err)
	}
	for _, p := range ports {
		if !strings.EqualFold(p.VID, usbVID) {
			continue
		}
		for _, pid := range usbPIDs {
			if strings.EqualFold(p.PID, pid) {
				return p.Name, nil
			}
		}
	}
	return "", errors.New("senxor: no MI48 device found")
}

func (c *Camera) identify() error {
	t, err := c.readRegister(regSenxorType, 1)
	if err != nil {
		return fmt.Errorf("senxor: reading sensor type: %w", err)
	}
	w, h, model, ok := sensorDims(t[0])
	if !ok {
		return fmt.Errorf("senxor: unknown sensor type %d", t[0])
	}
	c.w, c.h, c.model = w, h, model
	c.maxFPS = sensorMaxFPS(t[0])
	return nil
}

// Model returns the detected sensor model name.
func (c *Camera) Model() string {
	return c.model
}

// SetFramerate programs the closest achievable rate and returns it.
func (c *Camera) SetFramerate(fps float64) (float64, error) {
	if fps <= 0 || c.maxFPS == 0 || fps > c.maxFPS {
		return 0, fmt.Errorf("senxor: frame rate %g out of range (max %g)", fps, c.maxFPS)
	}
	div := int(math.Round(c.maxFPS / fps))
	if div < 1 {
		div = 1
	}
	if err := c.writeRegister(regFrameRate, uint8(div)); err != nil {
		return 0, err
	}
	return c.maxFPS / float64(div), nil
}

// ReadRaw starts the continuous stream on first use and blocks until the
// next frame packet arrives.
func (c *Camera) ReadRaw() (*thermal.Frame, error) {
	if c.port == nil {
		return nil, errors.New("senxor: camera is closed")
	}
	if !c.streaming {
		if err := c.writeRegister(regFrameMode, frameModeContinuous); err != nil {
			return nil, fmt.Errorf("senxor: starting stream: %w", err)
		}
		c.streaming = true
	}
	for {
		typ, payload, err := readPacket(c.port)
		if err != nil {
			return nil, fmt.Errorf("senxor: reading frame: %w", err)
		}
		if typ != packetFrame {
			continue
		}
		f, err := frameFromPayload(payload, c.w, c.h)
		if err != nil {
			return nil, fmt.Errorf("senxor: %w", err)
		}
		c.seq++
		f.Seq = c.seq
		f.When = time.Now()
		return f, nil
	}
}

func (c *Camera) Size() (int, int) {
	return c.w, c.h
}

func (c *Camera) Close() error {
	if c.port == nil {
		return nil
	}
	if c.streaming {
		// Best effort; the device also stops on port close.
		_ = c.writeRegister(regFrameMode, frameModeIdle)
		c.streaming = false
	}
	err := c.port.Close()
	c.port = nil
	return err
}

// sendCommand writes one framed command and waits for its matching
// response, discarding any frame packets that arrive in between.
func (c *Camera) sendCommand(cmd string) ([]byte, error) {
	if _, err := c.port.Write(encodeCommand(cmd)); err != nil {
		return nil, fmt.Errorf("senxor: writing command: %w", err)
	}
	want := cmd[:4]
	for {
		typ, payload, err := readPacket(c.port)
		if err != nil {
			return nil, fmt.Errorf("senxor: reading response: %w", err)
		}
		if typ == want {
			return payload, nil
		}
	}
}

// readRegister reads n consecutive byte-wide registers starting at addr.
// Responses carry the value as ASCII hex.
func (c *Camera) readRegister(addr uint8, n int) ([]byte, error) {
	out := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		resp, err := c.sendCommand(fmt.Sprintf("RREG%02XXXXXXX", addr+uint8(i)))
		if err != nil {
			return nil, err
		}
		b, err := hex.DecodeString(string(resp))
		if err != nil || len(b) == 0 {
			return nil, fmt.Errorf("senxor: bad register response %q", resp)
		}
		out = append(out, b...)
	}
	return out, nil
}

func (c *Camera) writeRegister(addr, value uint8) error {
	_, err := c.sendCommand(fmt.Sprintf("WREG%02X%02XXXXX", addr, value))
	return err
}
