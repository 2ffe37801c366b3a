// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"fmt"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// defaultFlatFieldFrames is how many frames get averaged into one
// calibration image.
const defaultFlatFieldFrames = 60

// FlatField captures a flat-field calibration: with the lens covered it
// averages a run of frames, hands the result to the save hook, and asks for
// a camera reload on success. The accumulator only exists while a capture
// is in flight.
type FlatField struct {
	nopMode
	hooks  Hooks
	target int

	capturing bool
	accum     []float32
	w, h      int
	captured  int
}

// NewFlatField returns the mode. frames <= 0 selects the default of 60.
func NewFlatField(hooks Hooks, frames int) *FlatField {
	if frames <= 0 {
		frames = defaultFlatFieldFrames
	}
	return &FlatField{hooks: hooks, target: frames}
}

func (*FlatField) Name() string { return "FFC" }

func (f *FlatField) OnEnter(*State) *Result {
	f.reset()
	return &Result{Status: []string{"Cover lens, press UP to start capture"}}
}

func (f *FlatField) OnExit(*State) {
	f.reset()
}

func (f *FlatField) OnButtonUp(*State) string {
	if f.capturing {
		return ""
	}
	f.capturing = true
	f.accum = nil
	f.captured = 0
	return "Capturing flat field..."
}

func (f *FlatField) Update(raw *thermal.Frame, _ *thermal.CelsiusFrame, s *State) *Result {
	if !f.capturing {
		status := []string{"Press UP to capture calibration"}
		if s.FFLastSaved != "" {
			status = append(status, "Latest FFC loaded")
		}
		return &Result{Status: status}
	}

	// A camera swap mid-capture changes the frame shape; start over.
	if f.accum == nil || len(f.accum) != len(raw.Pix) {
		f.accum = make([]float32, len(raw.Pix))
		f.w, f.h = raw.W, raw.H
		f.captured = 0
	}
	for i, v := range raw.Pix {
		f.accum[i] += float32(v)
	}
	f.captured++
	res := &Result{Status: []string{fmt.Sprintf("Capturing frame %d/%d", f.captured, f.target)}}

	if f.captured >= f.target {
		avg := thermal.NewFrame(f.w, f.h)
		n := float32(f.captured)
		for i := range avg.Pix {
			avg.Pix[i] = uint16(f.accum[i] / n)
		}
		res.Banner = f.finish(avg, s)
		f.reset()
	}
	return res
}

// finish runs the save hook and reports the outcome banner.
func (f *FlatField) finish(avg *thermal.Frame, s *State) string {
	if f.hooks.SaveFlatField == nil {
		return "FFC save failed"
	}
	path, err := f.hooks.SaveFlatField(avg)
	if err != nil || path == "" {
		return "FFC save failed"
	}
	s.FFLastSaved = path
	if f.hooks.ReloadCamera != nil {
		f.hooks.ReloadCamera(path)
	}
	return "FFC saved: " + path
}

func (f *FlatField) reset() {
	f.capturing = false
	f.accum = nil
	f.captured = 0
}
