// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"fmt"
	"image/color"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// Unit is the display temperature unit.
type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// thresholdOps is the cycle order for the highlight comparison.
var thresholdOps = []thermal.Op{thermal.OpAbove, thermal.OpBelow, thermal.OpNear}

// State is the durable UI state shared by all modes. The threshold is always
// stored in Celsius; display values are derived through the conversion
// methods and never stored redundantly.
type State struct {
	PaletteIdx   int
	PaletteNames []string

	ThresholdC       float64
	ThresholdMode    thermal.Op
	ThresholdFloor   float64
	ThresholdCeiling float64

	AutoExposureLock bool
	SettingsIndex    int
	FFLastSaved      string

	Unit              Unit
	DefaultThresholdC float64
	DefaultThresholdF float64
}

// NewState returns a State with factory defaults and the given palette
// names.
func NewState(paletteNames []string) *State {
	return &State{
		PaletteNames:      paletteNames,
		ThresholdC:        30,
		ThresholdMode:     thermal.OpAbove,
		ThresholdFloor:    -20,
		ThresholdCeiling:  120,
		Unit:              Celsius,
		DefaultThresholdC: 30,
		DefaultThresholdF: 86,
	}
}

// PaletteName returns the active palette's name.
func (s *State) PaletteName() string {
	if len(s.PaletteNames) == 0 {
		return fmt.Sprintf("#%d", s.PaletteIdx)
	}
	return s.PaletteNames[mod(s.PaletteIdx, len(s.PaletteNames))]
}

// IncrementPalette advances the palette with wraparound.
func (s *State) IncrementPalette() {
	if len(s.PaletteNames) == 0 {
		return
	}
	s.PaletteIdx = mod(s.PaletteIdx+1, len(s.PaletteNames))
}

// DecrementPalette steps the palette back with wraparound.
func (s *State) DecrementPalette() {
	if len(s.PaletteNames) == 0 {
		return
	}
	s.PaletteIdx = mod(s.PaletteIdx-1, len(s.PaletteNames))
}

// CycleThresholdMode advances the comparison through >, <, =.
func (s *State) CycleThresholdMode() {
	idx := 0
	for i, op := range thresholdOps {
		if op == s.ThresholdMode {
			idx = i
			break
		}
	}
	s.ThresholdMode = thresholdOps[(idx+1)%len(thresholdOps)]
}

// ConvertCToDisplay converts a Celsius value into the display unit.
func (s *State) ConvertCToDisplay(v float64) float64 {
	if s.Unit == Celsius {
		return v
	}
	return v*9/5 + 32
}

// ConvertDisplayToC converts a display-unit value back to Celsius.
func (s *State) ConvertDisplayToC(v float64) float64 {
	if s.Unit == Celsius {
		return v
	}
	return (v - 32) * 5 / 9
}

// ThresholdDisplay returns the threshold in the display unit.
func (s *State) ThresholdDisplay() float64 {
	return s.ConvertCToDisplay(s.ThresholdC)
}

// DefaultThresholdDisplay returns the unit-appropriate default threshold in
// the display unit.
func (s *State) DefaultThresholdDisplay() float64 {
	if s.Unit == Celsius {
		return s.ConvertCToDisplay(s.DefaultThresholdC)
	}
	return s.DefaultThresholdF
}

// ThresholdStep is the button increment in the display unit: half a degree
// Celsius, or a whole degree Fahrenheit.
func (s *State) ThresholdStep() float64 {
	if s.Unit == Celsius {
		return 0.5
	}
	return 1
}

// AdjustThresholdDisplay nudges the threshold by a display-unit delta and
// clamps the result to the floor/ceiling band in Celsius.
func (s *State) AdjustThresholdDisplay(delta float64) {
	c := s.ConvertDisplayToC(s.ThresholdDisplay() + delta)
	if c > s.ThresholdCeiling {
		c = s.ThresholdCeiling
	}
	if c < s.ThresholdFloor {
		c = s.ThresholdFloor
	}
	s.ThresholdC = c
}

// ToggleTemperatureUnit flips between Celsius and Fahrenheit.
func (s *State) ToggleTemperatureUnit() {
	if s.Unit == Celsius {
		s.Unit = Fahrenheit
	} else {
		s.Unit = Celsius
	}
}

// SetThresholdToDefault resets the threshold to the unit-appropriate
// default.
func (s *State) SetThresholdToDefault() {
	if s.Unit == Celsius {
		s.ThresholdC = s.DefaultThresholdC
	} else {
		s.ThresholdC = s.ConvertDisplayToC(s.DefaultThresholdF)
	}
}

// StatsToDisplay converts hotspot values into the display unit, keeping
// their pixel locations.
func (s *State) StatsToDisplay(h thermal.Hotspots) map[string]thermal.Spot {
	return map[string]thermal.Spot{
		"min": {Value: s.ConvertCToDisplay(h.Min.Value), At: h.Min.At},
		"max": {Value: s.ConvertCToDisplay(h.Max.Value), At: h.Max.At},
	}
}

// HighlightColor returns the stipple color for the current comparison.
func (s *State) HighlightColor() color.RGBA {
	switch s.ThresholdMode {
	case thermal.OpAbove:
		return color.RGBA{R: 255, A: 255}
	case thermal.OpBelow:
		return color.RGBA{G: 136, B: 255, A: 255}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}

// mod is the true modulo; the result is in [0, n) even for negative a.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
