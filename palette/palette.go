// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package palette colorizes 8-bit luminance images through fixed 256-entry
// lookup tables. The tables are static data, expanded once at startup; the
// engine itself only ever does lookups.
package palette

import (
	"image"
	"image/color"
)

// Map is a named colorization table. A nil table is the grayscale identity.
type Map struct {
	Name string
	lut  *[256][3]uint8
}

// Gray reports whether the map is the grayscale identity.
func (m *Map) Gray() bool {
	return m.lut == nil
}

// RGB returns the color for luminance v.
func (m *Map) RGB(v uint8) (uint8, uint8, uint8) {
	if m.lut == nil {
		return v, v, v
	}
	e := &m.lut[v]
	return e[0], e[1], e[2]
}

// Engine applies one of a fixed set of maps to luminance images.
type Engine struct {
	maps []Map
}

// NewEngine returns an engine over the given maps. Most callers want
// NewEngine(Builtin()).
func NewEngine(maps []Map) *Engine {
	return &Engine{maps: maps}
}

// Len returns the number of maps.
func (e *Engine) Len() int {
	return len(e.maps)
}

// Name returns the name of map idx.
func (e *Engine) Name(idx int) string {
	return e.maps[idx].Name
}

// Names returns all map names in order.
func (e *Engine) Names() []string {
	out := make([]string, len(e.maps))
	for i := range e.maps {
		out[i] = e.maps[i].Name
	}
	return out
}

// Apply colorizes src with map idx. Passing an index outside [0, Len())
// is a caller bug and panics; wrapping is the caller's job.
func (e *Engine) Apply(src *image.Gray, idx int) *image.RGBA {
	m := &e.maps[idx]
	b := src.Bounds()
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		so := (y - b.Min.Y) * src.Stride
		do := (y - b.Min.Y) * dst.Stride
		for x := 0; x < b.Dx(); x++ {
			r, g, bl := m.RGB(src.Pix[so+x])
			o := do + x*4
			dst.Pix[o] = r
			dst.Pix[o+1] = g
			dst.Pix[o+2] = bl
			dst.Pix[o+3] = 0xff
		}
	}
	return dst
}

// ColorAt is a single-pixel Apply, mostly for tests and tools.
func (e *Engine) ColorAt(v uint8, idx int) color.RGBA {
	r, g, b := e.maps[idx].RGB(v)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
