// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Op selects which side of a threshold gets highlighted.
type Op string

const (
	// OpAbove marks pixels strictly hotter than the threshold.
	OpAbove Op = ">"
	// OpBelow marks pixels strictly colder than the threshold.
	OpBelow Op = "<"
	// OpNear marks pixels within 0.5°C of the threshold.
	OpNear Op = "="
)

// nearTolC is the half-width of the OpNear band in Celsius.
const nearTolC = 0.5

// HighlightThreshold builds a mask of the pixels matching op against
// threshold (always in Celsius). An unknown op yields an empty mask.
func HighlightThreshold(c *CelsiusFrame, threshold float64, op Op) *Mask {
	m := NewMask(c.W, c.H)
	t := float32(threshold)
	switch op {
	case OpAbove:
		for i, v := range c.Pix {
			m.Bits[i] = v > t
		}
	case OpBelow:
		for i, v := range c.Pix {
			m.Bits[i] = v < t
		}
	case OpNear:
		for i, v := range c.Pix {
			d := v - t
			if d < 0 {
				d = -d
			}
			m.Bits[i] = d <= nearTolC
		}
	}
	return m
}

// PercentileBand builds a mask of the pixels at or beyond the given
// percentiles: everything at or below the low one, plus everything at or
// above the high one. Percentiles are in [0, 100].
func PercentileBand(c *CelsiusFrame, low, high float64) *Mask {
	sorted := make([]float64, len(c.Pix))
	for i, v := range c.Pix {
		sorted[i] = float64(v)
	}
	sort.Float64s(sorted)
	lo := float32(stat.Quantile(low/100, stat.LinInterp, sorted, nil))
	hi := float32(stat.Quantile(high/100, stat.LinInterp, sorted, nil))
	m := NewMask(c.W, c.H)
	for i, v := range c.Pix {
		m.Bits[i] = v >= hi || v <= lo
	}
	return m
}
