// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"github.com/ProgramingPro2/seekpi/thermal"
)

// Palette lets UP/DOWN walk the colormap table. MODE is not consumed here,
// so pressing it moves on to the next mode.
type Palette struct {
	nopMode
}

func NewPalette() *Palette {
	return &Palette{}
}

func (*Palette) Name() string { return "Palette" }

func (*Palette) Update(_ *thermal.Frame, c *thermal.CelsiusFrame, s *State) *Result {
	return &Result{
		Status: []string{"UP/DOWN change palette"},
		Stats:  s.StatsToDisplay(thermal.ComputeHotspots(c)),
	}
}

func (*Palette) OnButtonUp(s *State) string {
	s.IncrementPalette()
	return "Palette " + s.PaletteName()
}

func (*Palette) OnButtonDown(s *State) string {
	s.DecrementPalette()
	return "Palette " + s.PaletteName()
}
