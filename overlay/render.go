// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/ProgramingPro2/seekpi/thermal"
)

const (
	// stippleTarget caps how many highlight squares get stamped per frame.
	stippleTarget = 800
	stippleAlpha  = 120
	panelAlpha    = 200
	panelPad      = 3
	lineGap       = 1
)

var defaultHighlight = color.RGBA{R: 255, G: 255, B: 0, A: 255}

// Overlay is everything drawn on top of one colorized frame. All fields are
// optional; the zero value renders nothing.
type Overlay struct {
	// Mask marks pixels to stipple. Must match the base image shape.
	Mask *thermal.Mask
	// MaskColor tints the stipple. The zero value means yellow.
	MaskColor color.RGBA
	// Stats are labeled spots, drawn near their anchor point. Values are
	// already in display units.
	Stats map[string]thermal.Spot
	// Unit suffixes stat labels ("C" or "F").
	Unit string
	// Status lines fill the bottom-right panel, top to bottom.
	Status []string
}

// Renderer composites overlays onto frames. It never mutates its inputs and
// always returns a new image.
type Renderer struct {
	fonts *Fonts
	white *image.Uniform
}

// NewRenderer returns a renderer using the given fonts, or LoadFonts() when
// nil.
func NewRenderer(f *Fonts) *Renderer {
	if f == nil {
		f = LoadFonts()
	}
	return &Renderer{fonts: f, white: image.NewUniform(color.White)}
}

// Render draws ov onto a copy of base.
func (r *Renderer) Render(base *image.RGBA, ov Overlay) *image.RGBA {
	dst := &image.RGBA{
		Pix:    append([]uint8(nil), base.Pix...),
		Stride: base.Stride,
		Rect:   base.Rect,
	}
	if ov.Mask != nil {
		r.stipple(dst, ov.Mask, ov.MaskColor)
	}
	if len(ov.Stats) > 0 {
		r.statLabels(dst, ov.Stats, ov.Unit)
	}
	if len(ov.Status) > 0 {
		r.statusPanel(dst, ov.Status)
	}
	return dst
}

// stipple stamps translucent 3x3 squares on a subsample of the mask. The
// subsample stride keeps the stamp count near stippleTarget no matter how
// large the mask is.
func (r *Renderer) stipple(dst *image.RGBA, m *thermal.Mask, c color.RGBA) {
	count := m.Count()
	if count == 0 {
		return
	}
	if c == (color.RGBA{}) {
		c = defaultHighlight
	}
	stride := count / stippleTarget
	if stride < 1 {
		stride = 1
	}
	layer := image.NewRGBA(image.Rect(0, 0, m.W, m.H))
	// Premultiplied stamp color.
	pr := uint8(int(c.R) * stippleAlpha / 255)
	pg := uint8(int(c.G) * stippleAlpha / 255)
	pb := uint8(int(c.B) * stippleAlpha / 255)
	k := 0
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if !m.Bits[y*m.W+x] {
				continue
			}
			if k%stride == 0 {
				stamp(layer, x, y, pr, pg, pb, stippleAlpha)
			}
			k++
		}
	}
	b := dst.Bounds()
	draw.Draw(dst, b, layer, image.Point{}, draw.Over)
}

func stamp(layer *image.RGBA, x, y int, pr, pg, pb, pa uint8) {
	for yy := y - 1; yy <= y+1; yy++ {
		if yy < 0 || yy >= layer.Rect.Max.Y {
			continue
		}
		for xx := x - 1; xx <= x+1; xx++ {
			if xx < 0 || xx >= layer.Rect.Max.X {
				continue
			}
			o := yy*layer.Stride + xx*4
			layer.Pix[o] = pr
			layer.Pix[o+1] = pg
			layer.Pix[o+2] = pb
			layer.Pix[o+3] = pa
		}
	}
}

// statLabels draws each stat at its anchor pixel. Text that sticks out past
// an edge is clipped by the drawer, same as the rest of the overlay.
func (r *Renderer) statLabels(dst *image.RGBA, stats map[string]thermal.Spot, unit string) {
	names := make([]string, 0, len(stats))
	for n := range stats {
		names = append(names, n)
	}
	sort.Strings(names)
	b := dst.Bounds()
	for _, n := range names {
		s := stats[n]
		text := fmt.Sprintf("%s %.1f°%s", strings.ToUpper(n), s.Value, unit)
		r.text(dst, text, b.Min.X+s.At.X, b.Min.Y+s.At.Y, r.fonts.Label)
	}
}

// statusPanel dims the bottom-right corner and lays the lines out
// right-aligned with a 1-pixel gap between them.
func (r *Renderer) statusPanel(dst *image.RGBA, lines []string) {
	face := r.fonts.Status
	lh := face.Metrics().Height.Ceil()
	maxw := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > maxw {
			maxw = w
		}
	}
	b := dst.Bounds()
	totalh := len(lines)*lh + (len(lines)-1)*lineGap
	x0 := b.Dx() - maxw - 2*panelPad
	y0 := b.Dy() - totalh - 2*panelPad
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	fillRect(dst, b.Min.X+x0, b.Min.Y+y0, b.Max.X, b.Max.Y, panelAlpha)
	y := y0 + panelPad
	for _, l := range lines {
		w := font.MeasureString(face, l).Ceil()
		x := b.Dx() - panelPad - w
		if x < x0+panelPad {
			x = x0 + panelPad
		}
		r.text(dst, l, b.Min.X+x, b.Min.Y+y, face)
		y += lh + lineGap
	}
}

// fillRect blends a black rectangle of the given alpha over dst in place.
func fillRect(dst *image.RGBA, x0, y0, x1, y1 int, alpha uint8) {
	keep := 255 - int(alpha)
	for y := y0; y < y1; y++ {
		o := (y-dst.Rect.Min.Y)*dst.Stride + (x0-dst.Rect.Min.X)*4
		for x := x0; x < x1; x++ {
			dst.Pix[o] = uint8(int(dst.Pix[o]) * keep / 255)
			dst.Pix[o+1] = uint8(int(dst.Pix[o+1]) * keep / 255)
			dst.Pix[o+2] = uint8(int(dst.Pix[o+2]) * keep / 255)
			o += 4
		}
	}
}

// text draws one line with its top-left corner at (x, y).
func (r *Renderer) text(dst *image.RGBA, s string, x, y int, face font.Face) {
	d := font.Drawer{
		Dst:  dst,
		Src:  r.white,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}
