// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package palette

// The built-in maps are stored as gradient anchors and expanded to full
// 256-entry tables at init. Anchors follow the classic colormap definitions
// closely enough for display work; nothing downstream depends on exact
// channel values.

type stop struct {
	at      float64
	r, g, b uint8
}

var gradients = []struct {
	name  string
	stops []stop
}{
	{"AUTUMN", []stop{{0, 255, 0, 0}, {1, 255, 255, 0}}},
	{"BONE", []stop{{0, 0, 0, 0}, {0.375, 84, 84, 116}, {0.75, 167, 199, 199}, {1, 255, 255, 255}}},
	{"JET", []stop{{0, 0, 0, 128}, {0.125, 0, 0, 255}, {0.375, 0, 255, 255}, {0.625, 255, 255, 0}, {0.875, 255, 0, 0}, {1, 128, 0, 0}}},
	{"WINTER", []stop{{0, 0, 0, 255}, {1, 0, 255, 128}}},
	{"RAINBOW", []stop{{0, 255, 0, 0}, {0.2, 255, 255, 0}, {0.4, 0, 255, 0}, {0.6, 0, 255, 255}, {0.8, 0, 0, 255}, {1, 255, 0, 255}}},
	{"OCEAN", []stop{{0, 0, 0, 0}, {1.0 / 3, 0, 0, 85}, {2.0 / 3, 0, 127, 170}, {1, 255, 255, 255}}},
	{"SUMMER", []stop{{0, 0, 128, 102}, {1, 255, 255, 102}}},
	{"SPRING", []stop{{0, 255, 0, 255}, {1, 255, 255, 0}}},
	{"COOL", []stop{{0, 0, 255, 255}, {1, 255, 0, 255}}},
	{"HSV", []stop{{0, 255, 0, 0}, {1.0 / 6, 255, 255, 0}, {1.0 / 3, 0, 255, 0}, {0.5, 0, 255, 255}, {2.0 / 3, 0, 0, 255}, {5.0 / 6, 255, 0, 255}, {1, 255, 0, 0}}},
	{"PINK", []stop{{0, 0, 0, 0}, {0.25, 165, 104, 104}, {0.5, 208, 180, 147}, {0.75, 233, 233, 195}, {1, 255, 255, 255}}},
	{"HOT", []stop{{0, 0, 0, 0}, {1.0 / 3, 255, 0, 0}, {2.0 / 3, 255, 255, 0}, {1, 255, 255, 255}}},
	{"PARULA", []stop{{0, 62, 38, 168}, {0.15, 33, 96, 229}, {0.3, 12, 139, 218}, {0.45, 27, 169, 185}, {0.6, 91, 189, 135}, {0.75, 180, 195, 85}, {0.9, 245, 202, 44}, {1, 249, 251, 14}}},
	{"MAGMA", []stop{{0, 0, 0, 4}, {0.13, 28, 16, 68}, {0.25, 79, 18, 123}, {0.38, 129, 37, 129}, {0.5, 181, 54, 122}, {0.63, 229, 80, 100}, {0.75, 251, 135, 97}, {0.88, 254, 194, 135}, {1, 252, 253, 191}}},
	{"INFERNO", []stop{{0, 0, 0, 4}, {0.13, 31, 12, 72}, {0.25, 85, 15, 109}, {0.38, 136, 34, 106}, {0.5, 186, 54, 85}, {0.63, 227, 89, 51}, {0.75, 249, 140, 10}, {0.88, 249, 201, 50}, {1, 252, 255, 164}}},
	{"PLASMA", []stop{{0, 13, 8, 135}, {0.14, 84, 2, 163}, {0.29, 139, 10, 165}, {0.43, 185, 50, 137}, {0.57, 219, 92, 104}, {0.71, 244, 136, 73}, {0.86, 254, 188, 43}, {1, 240, 249, 33}}},
	{"VIRIDIS", []stop{{0, 68, 1, 84}, {0.11, 72, 40, 120}, {0.22, 62, 74, 137}, {0.33, 49, 104, 142}, {0.44, 38, 130, 142}, {0.56, 31, 158, 137}, {0.67, 53, 183, 121}, {0.78, 109, 205, 89}, {0.89, 180, 222, 44}, {1, 253, 231, 37}}},
	{"CIVIDIS", []stop{{0, 0, 32, 76}, {0.25, 64, 82, 110}, {0.5, 123, 122, 119}, {0.75, 187, 158, 97}, {1, 255, 234, 70}}},
	{"TWILIGHT", []stop{{0, 226, 217, 226}, {0.25, 117, 141, 221}, {0.4, 82, 58, 166}, {0.5, 47, 20, 54}, {0.6, 131, 41, 66}, {0.75, 189, 101, 95}, {1, 226, 217, 226}}},
	{"TWILIGHT_SHIFTED", []stop{{0, 47, 20, 54}, {0.1, 131, 41, 66}, {0.25, 189, 101, 95}, {0.5, 226, 217, 226}, {0.75, 117, 141, 221}, {0.9, 82, 58, 166}, {1, 47, 20, 54}}},
	{"TURBO", []stop{{0, 48, 18, 59}, {0.125, 66, 67, 170}, {0.25, 62, 138, 248}, {0.375, 26, 199, 172}, {0.5, 110, 231, 87}, {0.625, 201, 227, 36}, {0.75, 249, 185, 44}, {0.875, 239, 92, 23}, {1, 122, 4, 3}}},
}

var builtin []Map

func init() {
	builtin = make([]Map, 0, len(gradients)+1)
	builtin = append(builtin, Map{Name: "GRAY"})
	for _, g := range gradients {
		builtin = append(builtin, Map{Name: g.name, lut: buildLUT(g.stops)})
	}
}

// Builtin returns the full ordered map set, grayscale first. The returned
// slice is shared; callers must not modify it.
func Builtin() []Map {
	return builtin
}

func buildLUT(stops []stop) *[256][3]uint8 {
	var lut [256][3]uint8
	seg := 0
	for i := 0; i < 256; i++ {
		t := float64(i) / 255
		for seg < len(stops)-2 && t > stops[seg+1].at {
			seg++
		}
		a, b := stops[seg], stops[seg+1]
		u := 0.0
		if b.at > a.at {
			u = (t - a.at) / (b.at - a.at)
		}
		if u > 1 {
			u = 1
		}
		lut[i][0] = lerp(a.r, b.r, u)
		lut[i][1] = lerp(a.g, b.g, u)
		lut[i][2] = lerp(a.b, b.b, u)
	}
	return &lut
}

func lerp(a, b uint8, u float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*u + 0.5)
}
