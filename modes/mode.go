// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package modes implements the viewer's mode state machine: five modes behind
// one interface, a shared mutable State, and a Manager that routes frames and
// button presses to whichever mode is active.
//
// Everything here runs on the tick loop goroutine. Nothing blocks, nothing
// locks; serialization is the caller's job.
package modes

import (
	"image/color"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// Result is what the active mode hands back for one tick. Created fresh
// every tick and owned by the caller.
type Result struct {
	// Status lines specific to the mode, appended after the base status.
	Status []string
	// Mask marks pixels to highlight; nil means no highlight.
	Mask *thermal.Mask
	// MaskColor tints the highlight. Zero value lets the renderer pick
	// its default.
	MaskColor color.RGBA
	// Stats are labeled extremes in display units.
	Stats map[string]thermal.Spot
	// Banner is a transient message to enqueue after this tick.
	Banner string
}

// Hooks are the callbacks a mode may fire into the owning application.
type Hooks struct {
	// SaveFlatField persists an averaged calibration frame and returns
	// the path it was written to.
	SaveFlatField func(*thermal.Frame) (string, error)
	// ReloadCamera asks the owner to reopen the camera with the given
	// calibration file before the next read. May be nil.
	ReloadCamera func(path string)
}

// Mode is one UI mode. Implementations mutate the shared State through its
// methods and report transient messages as return values; they never touch
// I/O directly.
type Mode interface {
	Name() string
	OnEnter(s *State) *Result
	OnExit(s *State)
	Update(raw *thermal.Frame, celsius *thermal.CelsiusFrame, s *State) *Result
	// OnButtonUp and OnButtonDown return a banner message, or "".
	OnButtonUp(s *State) string
	OnButtonDown(s *State) string
	// OnModeButton reports whether the press was consumed. When it is
	// not, the caller advances to the next mode via Manager.Cycle.
	OnModeButton(s *State) (bool, string)
}

// nopMode supplies the do-nothing defaults so each mode only spells out what
// it actually handles.
type nopMode struct{}

func (nopMode) OnEnter(*State) *Result             { return nil }
func (nopMode) OnExit(*State)                      {}
func (nopMode) OnButtonUp(*State) string           { return "" }
func (nopMode) OnButtonDown(*State) string         { return "" }
func (nopMode) OnModeButton(*State) (bool, string) { return false, "" }
