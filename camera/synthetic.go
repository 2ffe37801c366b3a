// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package camera

import (
	"math"
	"time"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// Synthetic generates a slowly rotating gradient, sized like a Seek Compact
// by default. It exists so the whole pipeline can run on a dev machine.
type Synthetic struct {
	// Interval paces ReadRaw to simulate a sensor frame rate. Zero means
	// no pacing, which is what tests want.
	Interval time.Duration

	w, h  int
	phase float64
	seq   uint64
}

// NewSynthetic returns a generator of the given size; zero dimensions
// select the 206x156 default.
func NewSynthetic(w, h int) *Synthetic {
	if w <= 0 || h <= 0 {
		w, h = 206, 156
	}
	return &Synthetic{w: w, h: h}
}

func (s *Synthetic) ReadRaw() (*thermal.Frame, error) {
	if s.Interval > 0 {
		time.Sleep(s.Interval)
	}
	f := thermal.NewFrame(s.w, s.h)
	sin, cos := math.Sincos(s.phase)
	dx := 65535.0 / float64(max(s.w-1, 1))
	dy := 65535.0 / float64(max(s.h-1, 1))
	for y := 0; y < s.h; y++ {
		yc := float64(y) * dy * cos
		for x := 0; x < s.w; x++ {
			f.Pix[y*s.w+x] = uint16(int64(float64(x)*dx*sin + yc))
		}
	}
	s.phase += 0.1
	s.seq++
	f.Seq = s.seq
	f.When = time.Now()
	return f, nil
}

func (s *Synthetic) Size() (int, int) {
	return s.w, s.h
}

func (s *Synthetic) Close() error {
	return nil
}
