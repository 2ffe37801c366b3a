// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package camera defines the frame source interface shared by all sensor
// backends, plus a synthetic generator for working without hardware.
package camera

import (
	"github.com/ProgramingPro2/seekpi/thermal"
)

// Camera produces 16-bit thermal frames at the sensor's own cadence.
// Implementations are not required to be safe for concurrent reads; the tick
// loop is the single reader.
type Camera interface {
	// ReadRaw blocks until the next frame is available and returns it as
	// a freshly allocated Frame.
	ReadRaw() (*thermal.Frame, error)
	// Size returns the frame dimensions in pixels.
	Size() (w, h int)
	Close() error
}
