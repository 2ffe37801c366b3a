// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import (
	"math"
	"testing"
)

func TestCelsiusDefaultModel(t *testing.T) {
	m := DefaultModel()
	f := NewFrame(4, 4)
	for i := range f.Pix {
		f.Pix[i] = 2000
	}
	c := m.ToCelsius(f)
	if c.W != 4 || c.H != 4 {
		t.Fatalf("unexpected shape %dx%d", c.W, c.H)
	}
	for i, v := range c.Pix {
		if math.Abs(float64(v)-(-193.15)) > 1e-3 {
			t.Fatalf("pixel %d: got %g, want -193.15", i, v)
		}
	}
	// Well below any plausible target, so nothing is hotter than 30°C.
	mask := HighlightThreshold(c, 30, OpAbove)
	if mask.Count() != 0 {
		t.Fatalf("expected empty mask, got %d set", mask.Count())
	}
}

func TestCelsiusCustomModel(t *testing.T) {
	m := TemperatureModel{Scale: 0.01, Offset: 100}
	if got := m.Celsius(20000); got != 100 {
		t.Fatalf("got %g, want 100", got)
	}
}

func TestNormalizeStretch(t *testing.T) {
	f := NewFrame(2, 2)
	f.Pix = []uint16{1000, 1500, 2000, 3000}
	g := Normalize(f, false)
	want := []uint8{0, 63, 127, 255}
	for i, v := range g.Pix {
		if v != want[i] {
			t.Fatalf("pixel %d: got %d, want %d", i, v, want[i])
		}
	}
}

func TestNormalizeFlat(t *testing.T) {
	f := NewFrame(3, 2)
	for i := range f.Pix {
		f.Pix[i] = 4242
	}
	g := Normalize(f, false)
	for i, v := range g.Pix {
		if v != 0 {
			t.Fatalf("pixel %d: got %d, want 0", i, v)
		}
	}
}

func TestNormalizeLocked(t *testing.T) {
	f := NewFrame(2, 1)
	f.Pix = []uint16{0x1234, 0xff00}
	g := Normalize(f, true)
	if g.Pix[0] != 0x12 || g.Pix[1] != 0xff {
		t.Fatalf("got %d, %d", g.Pix[0], g.Pix[1])
	}
	// The locked scale must not depend on frame content.
	f2 := NewFrame(2, 1)
	f2.Pix = []uint16{0x1234, 0x5678}
	g2 := Normalize(f2, true)
	if g2.Pix[0] != g.Pix[0] {
		t.Fatalf("locked scale moved: %d != %d", g2.Pix[0], g.Pix[0])
	}
}

func TestHotspotsFirstOccurrenceWins(t *testing.T) {
	c := NewCelsiusFrame(3, 2)
	c.Pix = []float32{5, 1, 9, 1, 9, 5}
	h := ComputeHotspots(c)
	if h.Min.Value != 1 || h.Min.At.X != 1 || h.Min.At.Y != 0 {
		t.Fatalf("min: got %+v", h.Min)
	}
	if h.Max.Value != 9 || h.Max.At.X != 2 || h.Max.At.Y != 0 {
		t.Fatalf("max: got %+v", h.Max)
	}
}

func TestHighlightOps(t *testing.T) {
	c := NewCelsiusFrame(2, 2)
	c.Pix = []float32{29.4, 30, 30.5, 31}
	if got := HighlightThreshold(c, 30, OpAbove).Bits; !equalBits(got, []bool{false, false, true, true}) {
		t.Fatalf("above: got %v", got)
	}
	if got := HighlightThreshold(c, 30, OpBelow).Bits; !equalBits(got, []bool{true, false, false, false}) {
		t.Fatalf("below: got %v", got)
	}
	// 29.4 is imprecise in float32 but well outside the ±0.5 band.
	if got := HighlightThreshold(c, 30, OpNear).Bits; !equalBits(got, []bool{false, true, true, false}) {
		t.Fatalf("near: got %v", got)
	}
	if got := HighlightThreshold(c, 30, Op("?")).Count(); got != 0 {
		t.Fatalf("unknown op: got %d set", got)
	}
}

func TestPercentileBand(t *testing.T) {
	c := NewCelsiusFrame(10, 10)
	for i := range c.Pix {
		c.Pix[i] = float32(i)
	}
	m := PercentileBand(c, 2, 98)
	if !m.At(0, 0) || !m.At(1, 0) {
		t.Fatal("cold tail not marked")
	}
	if !m.At(9, 9) || !m.At(8, 9) {
		t.Fatal("hot tail not marked")
	}
	if m.At(0, 5) {
		t.Fatal("median marked")
	}
	if n := m.Count(); n < 4 || n > 8 {
		t.Fatalf("band too wide: %d pixels", n)
	}
}

func TestFrameMinMax(t *testing.T) {
	f := NewFrame(2, 2)
	f.Pix = []uint16{500, 2, 9000, 300}
	min, max := f.MinMax()
	if min != 2 || max != 9000 {
		t.Fatalf("got %d, %d", min, max)
	}
}

func equalBits(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
