// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package palette

import (
	"image"
	"testing"
)

func TestBuiltinTable(t *testing.T) {
	maps := Builtin()
	if len(maps) != 22 {
		t.Fatalf("got %d maps, want 22", len(maps))
	}
	if maps[0].Name != "GRAY" || !maps[0].Gray() {
		t.Fatalf("first map is %q", maps[0].Name)
	}
	seen := map[string]bool{}
	for _, m := range maps {
		if seen[m.Name] {
			t.Fatalf("duplicate map %q", m.Name)
		}
		seen[m.Name] = true
	}
	for _, name := range []string{"JET", "HOT", "VIRIDIS", "TURBO", "TWILIGHT_SHIFTED"} {
		if !seen[name] {
			t.Fatalf("missing map %q", name)
		}
	}
}

func TestAnchorsHitExactly(t *testing.T) {
	for _, g := range gradients {
		lut := buildLUT(g.stops)
		first, last := g.stops[0], g.stops[len(g.stops)-1]
		if lut[0] != [3]uint8{first.r, first.g, first.b} {
			t.Fatalf("%s: entry 0 is %v", g.name, lut[0])
		}
		if lut[255] != [3]uint8{last.r, last.g, last.b} {
			t.Fatalf("%s: entry 255 is %v", g.name, lut[255])
		}
	}
}

func TestApplyGrayIdentity(t *testing.T) {
	e := NewEngine(Builtin())
	src := image.NewGray(image.Rect(0, 0, 3, 1))
	src.Pix = []uint8{0, 100, 255}
	dst := e.Apply(src, 0)
	for i, v := range src.Pix {
		o := i * 4
		if dst.Pix[o] != v || dst.Pix[o+1] != v || dst.Pix[o+2] != v || dst.Pix[o+3] != 0xff {
			t.Fatalf("pixel %d: got %v", i, dst.Pix[o:o+4])
		}
	}
}

func TestApplyLookup(t *testing.T) {
	e := NewEngine(Builtin())
	jet := 0
	for i, n := range e.Names() {
		if n == "JET" {
			jet = i
		}
	}
	if jet == 0 {
		t.Fatal("JET not found")
	}
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.Pix = []uint8{0, 255}
	dst := e.Apply(src, jet)
	if dst.Pix[0] != 0 || dst.Pix[1] != 0 || dst.Pix[2] != 128 {
		t.Fatalf("jet[0]: got %v", dst.Pix[0:3])
	}
	if dst.Pix[4] != 128 || dst.Pix[5] != 0 || dst.Pix[6] != 0 {
		t.Fatalf("jet[255]: got %v", dst.Pix[4:7])
	}
}

func TestApplySubimage(t *testing.T) {
	e := NewEngine(Builtin())
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 16)
	}
	sub := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	dst := e.Apply(sub, 0)
	if dst.Bounds().Dx() != 2 || dst.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", dst.Bounds())
	}
	if dst.Pix[0] != sub.Pix[0] {
		t.Fatalf("got %d, want %d", dst.Pix[0], sub.Pix[0])
	}
}

func TestColorAt(t *testing.T) {
	e := NewEngine(Builtin())
	c := e.ColorAt(128, 0)
	if c.R != 128 || c.G != 128 || c.B != 128 || c.A != 0xff {
		t.Fatalf("got %+v", c)
	}
}
