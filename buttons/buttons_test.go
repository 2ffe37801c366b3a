// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package buttons

import (
	"testing"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpiotest"
)

func testPin(name string) *gpiotest.Pin {
	return &gpiotest.Pin{N: name, EdgesChan: make(chan gpio.Level, 4)}
}

func waitEvent(t *testing.T, c *Controller) Button {
	t.Helper()
	select {
	case b := <-c.Events():
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("no event")
	}
	return 0
}

func expectQuiet(t *testing.T, c *Controller, d time.Duration) {
	t.Helper()
	select {
	case b := <-c.Events():
		t.Fatalf("unexpected event %s", b)
	case <-time.After(d):
	}
}

func TestPress(t *testing.T) {
	mode, down, up := testPin("MODE"), testPin("DOWN"), testPin("UP")
	c, err := New(mode, down, up)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	up.EdgesChan <- gpio.Low
	if b := waitEvent(t, c); b != Up {
		t.Fatalf("got %s, want UP", b)
	}
	down.EdgesChan <- gpio.Low
	if b := waitEvent(t, c); b != Down {
		t.Fatalf("got %s, want DOWN", b)
	}
}

func TestDebounce(t *testing.T) {
	mode, down, up := testPin("MODE"), testPin("DOWN"), testPin("UP")
	c, err := New(mode, down, up)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	// A press with contact bounce: two falling edges back to back.
	mode.EdgesChan <- gpio.Low
	mode.EdgesChan <- gpio.Low
	if b := waitEvent(t, c); b != Mode {
		t.Fatalf("got %s, want MODE", b)
	}
	expectQuiet(t, c, 100*time.Millisecond)
	// A distinct press after the debounce window passes through.
	mode.EdgesChan <- gpio.Low
	if b := waitEvent(t, c); b != Mode {
		t.Fatalf("got %s, want MODE", b)
	}
}

func TestReleaseIgnored(t *testing.T) {
	mode, down, up := testPin("MODE"), testPin("DOWN"), testPin("UP")
	c, err := New(mode, down, up)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	// The line reads high again by the time the edge is handled.
	mode.EdgesChan <- gpio.High
	expectQuiet(t, c, 100*time.Millisecond)
}

func TestNewNilPin(t *testing.T) {
	if _, err := New(testPin("MODE"), nil, testPin("UP")); err == nil {
		t.Fatal("nil pin accepted")
	}
}

func TestOpenUnknownPin(t *testing.T) {
	opts := Opts{ModePin: "NOSUCHPIN0", DownPin: "NOSUCHPIN1", UpPin: "NOSUCHPIN2"}
	if _, err := Open(&opts); err == nil {
		t.Fatal("unknown pin name accepted")
	}
}

func TestCloseTwice(t *testing.T) {
	c, err := New(testPin("MODE"), testPin("DOWN"), testPin("UP"))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestButtonString(t *testing.T) {
	if Mode.String() != "MODE" || Down.String() != "DOWN" || Up.String() != "UP" {
		t.Fatal("bad button names")
	}
	if Button(9).String() != "Button(9)" {
		t.Fatalf("got %s", Button(9))
	}
}
