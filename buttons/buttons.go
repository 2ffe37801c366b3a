// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package buttons turns the three panel push buttons into a stream of
// events.
//
// The buttons short their GPIO line to ground, so the lines are
// configured with the internal pull-up and a press shows up as a
// falling edge.
package buttons

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// Button identifies a panel button.
type Button int

// The three panel buttons.
const (
	Mode Button = iota
	Down
	Up
)

func (b Button) String() string {
	switch b {
	case Mode:
		return "MODE"
	case Down:
		return "DOWN"
	case Up:
		return "UP"
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// Opts names the header pins to use.
type Opts struct {
	ModePin string
	DownPin string
	UpPin   string
}

// DefaultOpts matches the button hat wiring.
var DefaultOpts = Opts{ModePin: "GPIO5", DownPin: "GPIO6", UpPin: "GPIO13"}

// Presses closer together than this are treated as switch bounce.
const debounce = 50 * time.Millisecond

// waitGranularity bounds how long the watch goroutines take to notice
// Close.
const waitGranularity = 250 * time.Millisecond

// Controller watches the buttons and delivers debounced presses.
type Controller struct {
	events chan Button
	done   chan struct{}
	once   sync.Once
}

// Open resolves the named pins through the host GPIO registry and
// starts watching them.
func Open(opts *Opts) (*Controller, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	var pins [3]gpio.PinIO
	for i, name := range []string{opts.ModePin, opts.DownPin, opts.UpPin} {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("buttons: no pin named %q", name)
		}
		pins[i] = p
	}
	return New(pins[0], pins[1], pins[2])
}

// New starts watching three already resolved pins, reconfiguring them
// as pulled-up inputs triggering on falling edges. The pin order is
// MODE, DOWN, UP.
func New(mode, down, up gpio.PinIO) (*Controller, error) {
	if mode == nil || down == nil || up == nil {
		return nil, errors.New("buttons: all three pins are required")
	}
	c := &Controller{
		events: make(chan Button, 8),
		done:   make(chan struct{}),
	}
	for i, p := range []gpio.PinIO{mode, down, up} {
		if err := p.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			c.Close()
			return nil, fmt.Errorf("buttons: %s: %w", p, err)
		}
		go c.watch(p, Button(i))
	}
	return c, nil
}

// Events returns the stream of button presses. Presses are dropped
// rather than queued when the consumer falls behind.
func (c *Controller) Events() <-chan Button {
	return c.events
}

// Close stops the watch goroutines. The events channel stays open;
// in-flight sends may still land until the goroutines notice.
func (c *Controller) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Controller) watch(p gpio.PinIO, b Button) {
	var last time.Time
	for {
		select {
		case <-c.done:
			return
		default:
		}
		if !p.WaitForEdge(waitGranularity) {
			continue
		}
		// Releases and noise read high again by the time we get here.
		if p.Read() != gpio.Low {
			continue
		}
		now := time.Now()
		if !last.IsZero() && now.Sub(last) < debounce {
			continue
		}
		last = now
		select {
		case c.events <- b:
		default:
		}
	}
}
