// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package flir

import (
	"math"
	"testing"
)

func TestModelAnchoring(t *testing.T) {
	m := modelAt(25)
	if got := m.Celsius(centerCount); math.Abs(got-25) > 1e-9 {
		t.Fatalf("center count maps to %.3f°C, want 25", got)
	}
	// 40 counts at 25mK each is one degree.
	if got := m.Celsius(centerCount + 40); math.Abs(got-26) > 1e-9 {
		t.Fatalf("center+40 maps to %.3f°C, want 26", got)
	}
	if got := m.Celsius(centerCount - 40); math.Abs(got-24) > 1e-9 {
		t.Fatalf("center-40 maps to %.3f°C, want 24", got)
	}
}

func TestOpenUnknownBus(t *testing.T) {
	if _, err := Open("nosuchbus#9", "nosuchbus#9"); err == nil {
		t.Fatal("expected an error for a bus that does not exist")
	}
}
