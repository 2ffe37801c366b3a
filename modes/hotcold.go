// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"fmt"
	"image/color"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// HotCold tracks the frame's temperature spread and marks the pixels in the
// top and bottom 2% of the distribution, recomputed every tick.
type HotCold struct {
	nopMode
}

func NewHotCold() *HotCold {
	return &HotCold{}
}

func (*HotCold) Name() string { return "Hot/Cold" }

func (*HotCold) Update(_ *thermal.Frame, c *thermal.CelsiusFrame, s *State) *Result {
	stats := s.StatsToDisplay(thermal.ComputeHotspots(c))
	hot := stats["max"].Value
	cold := stats["min"].Value
	return &Result{
		Status: []string{
			fmt.Sprintf("Hot %.1f°%s", hot, s.Unit),
			fmt.Sprintf("Cold %.1f°%s", cold, s.Unit),
			fmt.Sprintf("Δ %.1f°%s", hot-cold, s.Unit),
		},
		Mask:      thermal.PercentileBand(c, 2, 98),
		MaskColor: color.RGBA{R: 255, G: 140, A: 255},
		Stats:     stats,
	}
}
