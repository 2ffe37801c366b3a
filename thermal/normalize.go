// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package thermal

import "image"

// Normalize reduces a 16-bit frame to an 8-bit luminance image.
//
// With lock set, the mapping is the fixed scale v>>8, so the brightness of a
// given temperature never changes from tick to tick. Otherwise the frame is
// stretched so its own minimum maps to 0 and its maximum to 255. A flat frame
// comes out all zero instead of dividing by zero.
func Normalize(f *Frame, lock bool) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, f.W, f.H))
	if lock {
		for i, v := range f.Pix {
			dst.Pix[i] = uint8(v >> 8)
		}
		return dst
	}
	floor, ceiling := f.MinMax()
	delta := int(ceiling) - int(floor)
	if delta == 0 {
		return dst
	}
	for i, v := range f.Pix {
		dst.Pix[i] = uint8(int(v-floor) * 255 / delta)
	}
	return dst
}
