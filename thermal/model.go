// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

// TemperatureModel converts raw sensor counts to Celsius with an affine
// mapping: celsius = raw*Scale - Offset. The default values are the Seek
// factory calibration; both knobs are exposed so a different sensor can be
// dropped in without touching the pipeline.
type TemperatureModel struct {
	Scale  float64
	Offset float64
}

// DefaultModel returns the Seek factory calibration.
func DefaultModel() TemperatureModel {
	return TemperatureModel{Scale: 0.04, Offset: 273.15}
}

// Celsius converts a single raw count.
func (t TemperatureModel) Celsius(raw uint16) float64 {
	return float64(raw)*t.Scale - t.Offset
}

// ToCelsius converts a whole frame. The result has the same shape as f.
func (t TemperatureModel) ToCelsius(f *Frame) *CelsiusFrame {
	c := NewCelsiusFrame(f.W, f.H)
	for i, v := range f.Pix {
		c.Pix[i] = float32(float64(v)*t.Scale - t.Offset)
	}
	return c
}
