// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7789 drives a Sitronix ST7789 TFT panel over SPI, like the
// Waveshare 2.4" 240x320 LCD hat.
//
// The panel runs in RGB565 mode. Rotation is done in hardware through
// MADCTL so a full frame push stays one linear write.
package st7789

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"time"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/conn/spi"
)

// Opts holds the panel geometry in its unrotated orientation.
type Opts struct {
	W        int
	H        int
	Rotation int // quarter turns clockwise: 0, 1, 2 or 3
}

// DefaultOpts matches the Waveshare 2.4" hat.
var DefaultOpts = Opts{W: 240, H: 320}

// Command bytes per the ST7789V datasheet.
const (
	cmdSWRESET = 0x01
	cmdSLPIN   = 0x10
	cmdSLPOUT  = 0x11
	cmdNORON   = 0x13
	cmdINVON   = 0x21
	cmdDISPOFF = 0x28
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdRASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdMADCTL  = 0x36
	cmdCOLMOD  = 0x3A
)

// Linux spidev caps a single transfer at 4KiB unless the module is
// loaded with a larger bufsiz.
const maxTxSize = 4096

// MADCTL value per quarter turn. The MV/MX/MY bits shuffle the scan
// order so window coordinates stay in the logical orientation.
var madctl = [4]byte{0x00, 0x60, 0xC0, 0xA0}

// Dev is an open handle to the panel.
type Dev struct {
	c    spi.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	bl   gpio.PinOut
	rect image.Rectangle
	buf  []byte
}

// NewSPI opens the panel on the supplied port. dc is mandatory; rst
// and bl may be nil when those lines are strapped in hardware.
func NewSPI(p spi.Port, dc, rst, bl gpio.PinOut, opts *Opts) (*Dev, error) {
	if dc == nil {
		return nil, errors.New("st7789: dc pin is required")
	}
	if opts == nil {
		opts = &DefaultOpts
	}
	if opts.Rotation < 0 || opts.Rotation > 3 {
		return nil, fmt.Errorf("st7789: invalid rotation %d", opts.Rotation)
	}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("st7789: invalid size %dx%d", opts.W, opts.H)
	}
	c, err := p.Connect(62500*physic.KiloHertz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	w, h := opts.W, opts.H
	if opts.Rotation&1 != 0 {
		w, h = h, w
	}
	d := &Dev{c: c, dc: dc, rst: rst, bl: bl, rect: image.Rect(0, 0, w, h)}
	if err := d.init(opts.Rotation); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%s, %s}", d.c, d.rect.Max)
}

// Bounds returns the addressable area in the logical (rotated)
// orientation.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw pushes the region of src under r+sp to the rectangle r of the
// panel.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	if err := d.setWindow(r); err != nil {
		return err
	}
	return d.sendPixels(r, src, sp)
}

// Halt blanks the panel, turns the backlight off and puts the
// controller to sleep.
func (d *Dev) Halt() error {
	if err := d.command(cmdDISPOFF); err != nil {
		return err
	}
	if err := d.command(cmdSLPIN); err != nil {
		return err
	}
	if d.bl != nil {
		return d.bl.Out(gpio.Low)
	}
	return nil
}

func (d *Dev) init(rotation int) error {
	if d.rst != nil {
		// Hardware reset pulse.
		for _, l := range []gpio.Level{gpio.High, gpio.Low, gpio.High} {
			if err := d.rst.Out(l); err != nil {
				return err
			}
			time.Sleep(10 * time.Millisecond)
		}
	} else if err := d.command(cmdSWRESET); err != nil {
		return err
	}
	if err := d.command(cmdSLPOUT); err != nil {
		return err
	}
	// The controller ignores further commands while waking up.
	time.Sleep(120 * time.Millisecond)
	if err := d.command(cmdCOLMOD, 0x55); err != nil {
		return err
	}
	if err := d.command(cmdMADCTL, madctl[rotation]); err != nil {
		return err
	}
	// ST7789 panels ship with inverted gamma.
	if err := d.command(cmdINVON); err != nil {
		return err
	}
	if err := d.command(cmdNORON); err != nil {
		return err
	}
	if err := d.command(cmdDISPON); err != nil {
		return err
	}
	if d.bl != nil {
		return d.bl.Out(gpio.High)
	}
	return nil
}

func (d *Dev) command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return d.data(data)
}

func (d *Dev) data(b []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(b) > maxTxSize {
		if err := d.c.Tx(b[:maxTxSize], nil); err != nil {
			return err
		}
		b = b[maxTxSize:]
	}
	return d.c.Tx(b, nil)
}

func (d *Dev) setWindow(r image.Rectangle) error {
	x0, x1 := r.Min.X, r.Max.X-1
	y0, y1 := r.Min.Y, r.Max.Y-1
	if err := d.command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return err
	}
	if err := d.command(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return err
	}
	return d.command(cmdRAMWR)
}

func (d *Dev) sendPixels(r image.Rectangle, src image.Image, sp image.Point) error {
	n := r.Dx() * r.Dy() * 2
	if cap(d.buf) < n {
		d.buf = make([]byte, n)
	}
	buf := d.buf[:n]
	if img, ok := src.(*image.RGBA); ok {
		i := 0
		for y := 0; y < r.Dy(); y++ {
			o := img.PixOffset(sp.X, sp.Y+y)
			row := img.Pix[o : o+r.Dx()*4]
			for x := 0; x < len(row); x += 4 {
				p := rgb565(row[x], row[x+1], row[x+2])
				buf[i] = byte(p >> 8)
				buf[i+1] = byte(p)
				i += 2
			}
		}
	} else {
		i := 0
		for y := 0; y < r.Dy(); y++ {
			for x := 0; x < r.Dx(); x++ {
				c := color.RGBAModel.Convert(src.At(sp.X+x, sp.Y+y)).(color.RGBA)
				p := rgb565(c.R, c.G, c.B)
				buf[i] = byte(p >> 8)
				buf[i+1] = byte(p)
				i += 2
			}
		}
	}
	return d.data(buf)
}

func rgb565(r, g, b uint8) uint16 {
	return uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b)>>3
}
