// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import "image"

// Spot is a temperature extreme and where it was found.
type Spot struct {
	Value float64
	At    image.Point
}

// Hotspots are the per-frame extremes used for overlay labels.
type Hotspots struct {
	Min Spot
	Max Spot
}

// ComputeHotspots scans a temperature grid for its extremes. Ties go to the
// first occurrence in row-major order.
func ComputeHotspots(c *CelsiusFrame) Hotspots {
	minI, maxI := 0, 0
	min, max := c.Pix[0], c.Pix[0]
	for i, v := range c.Pix {
		if v < min {
			min = v
			minI = i
		}
		if v > max {
			max = v
			maxI = i
		}
	}
	return Hotspots{
		Min: Spot{Value: float64(min), At: image.Point{X: minI % c.W, Y: minI / c.W}},
		Max: Spot{Value: float64(max), At: image.Point{X: maxI % c.W, Y: maxI / c.W}},
	}
}
