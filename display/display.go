// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package display abstracts where composed frames end up, either an
// attached LCD panel or nowhere when running headless.
package display

import (
	"image"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Display receives one composed frame per tick.
type Display interface {
	Show(img image.Image) error
	Halt() error
}

// Null discards frames but keeps a copy of the most recent one. Useful
// in tests and during development off the Pi.
type Null struct {
	mu   sync.Mutex
	last *image.RGBA
}

// Show keeps a copy of img; the caller is free to reuse its buffer.
func (n *Null) Show(img image.Image) error {
	b := img.Bounds()
	dup := image.NewRGBA(b)
	draw.Draw(dup, b, img, b.Min, draw.Src)
	n.mu.Lock()
	n.last = dup
	n.mu.Unlock()
	return nil
}

// Halt drops the retained frame.
func (n *Null) Halt() error {
	n.mu.Lock()
	n.last = nil
	n.mu.Unlock()
	return nil
}

// Last returns the most recently shown frame, or nil.
func (n *Null) Last() image.Image {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.last == nil {
		return nil
	}
	return n.last
}

// Drawer is the subset of a panel driver the LCD adapter needs.
// st7789.Dev implements it.
type Drawer interface {
	Bounds() image.Rectangle
	Draw(r image.Rectangle, src image.Image, sp image.Point) error
	Halt() error
}

// LCD scales composed frames to an attached panel.
type LCD struct {
	drawer Drawer
	buf    *image.RGBA
}

// NewLCD wraps a panel driver.
func NewLCD(d Drawer) *LCD {
	return &LCD{drawer: d, buf: image.NewRGBA(d.Bounds())}
}

// Show pushes img to the panel, scaling when the sizes differ. The
// thermal frame is much smaller than the panel so bilinear keeps the
// result smooth.
func (l *LCD) Show(img image.Image) error {
	b := l.buf.Bounds()
	if img.Bounds().Size() == b.Size() {
		draw.Draw(l.buf, b, img, img.Bounds().Min, draw.Src)
	} else {
		xdraw.BiLinear.Scale(l.buf, b, img, img.Bounds(), xdraw.Src, nil)
	}
	return l.drawer.Draw(b, l.buf, image.Point{})
}

// Halt blanks the panel.
func (l *LCD) Halt() error {
	return l.drawer.Halt()
}
