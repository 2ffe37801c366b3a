// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"fmt"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// Live is the default mode: the calibrated feed with threshold
// highlighting. UP/DOWN nudge the threshold, MODE cycles the comparison.
type Live struct {
	nopMode
}

func NewLive() *Live {
	return &Live{}
}

func (*Live) Name() string { return "Live" }

func (*Live) Update(_ *thermal.Frame, c *thermal.CelsiusFrame, s *State) *Result {
	mask := thermal.HighlightThreshold(c, s.ThresholdC, s.ThresholdMode)
	return &Result{
		Status: []string{
			fmt.Sprintf("Highlight %s", s.ThresholdMode),
			fmt.Sprintf("AEL %s", onOff(s.AutoExposureLock)),
		},
		Mask:      mask,
		MaskColor: s.HighlightColor(),
		Stats:     s.StatsToDisplay(thermal.ComputeHotspots(c)),
	}
}

func (*Live) OnButtonUp(s *State) string {
	s.AdjustThresholdDisplay(s.ThresholdStep())
	return thresholdBanner(s)
}

func (*Live) OnButtonDown(s *State) string {
	s.AdjustThresholdDisplay(-s.ThresholdStep())
	return thresholdBanner(s)
}

func (*Live) OnModeButton(s *State) (bool, string) {
	s.CycleThresholdMode()
	return true, fmt.Sprintf("Highlight %s", s.ThresholdMode)
}

func thresholdBanner(s *State) string {
	return fmt.Sprintf("Threshold %.1f°%s (%s)", s.ThresholdDisplay(), s.Unit, s.ThresholdMode)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
