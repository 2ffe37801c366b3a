// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package thermal implements the frame processing pipeline: raw 16-bit sensor
// counts in, calibrated temperatures, normalized luminance and highlight masks
// out. Everything here is pure computation; no I/O, no blocking.
package thermal

import (
	"image"
	"image/color"
	"time"
)

// Frame is a single 16-bit thermal frame in row-major order. It implements
// image.Image as a Gray16 so it can be handed to png.Encode unmodified.
//
// A Frame is produced fresh by a camera on every read and is not retained by
// the pipeline across ticks.
type Frame struct {
	W, H int
	Pix  []uint16
	Seq  uint64    // monotonic per camera
	When time.Time // capture time
}

// NewFrame returns a zeroed frame of the given dimensions.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]uint16, w*h)}
}

func (f *Frame) ColorModel() color.Model {
	return color.Gray16Model
}

func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.W, f.H)
}

func (f *Frame) At(x, y int) color.Color {
	return color.Gray16{Y: f.Pix[y*f.W+x]}
}

// At16 returns the raw count at (x, y).
func (f *Frame) At16(x, y int) uint16 {
	return f.Pix[y*f.W+x]
}

// Set16 sets the raw count at (x, y).
func (f *Frame) Set16(x, y int, v uint16) {
	f.Pix[y*f.W+x] = v
}

// MinMax returns the smallest and largest count in the frame.
func (f *Frame) MinMax() (uint16, uint16) {
	min := uint16(0xffff)
	max := uint16(0)
	for _, v := range f.Pix {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// CelsiusFrame is a calibrated temperature grid, derived from a Frame every
// tick and never persisted.
type CelsiusFrame struct {
	W, H int
	Pix  []float32
}

// NewCelsiusFrame returns a zeroed temperature grid.
func NewCelsiusFrame(w, h int) *CelsiusFrame {
	return &CelsiusFrame{W: w, H: h, Pix: make([]float32, w*h)}
}

// AtC returns the temperature at (x, y) in Celsius.
func (c *CelsiusFrame) AtC(x, y int) float32 {
	return c.Pix[y*c.W+x]
}

// Mask is a boolean grid with the same shape as the frame it was derived
// from. True marks a highlighted pixel.
type Mask struct {
	W, H int
	Bits []bool
}

// NewMask returns an all-false mask.
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Bits: make([]bool, w*h)}
}

// At reports whether (x, y) is set.
func (m *Mask) At(x, y int) bool {
	return m.Bits[y*m.W+x]
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}
