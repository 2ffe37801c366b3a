// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package camera

import "testing"

func TestSyntheticDefaults(t *testing.T) {
	s := NewSynthetic(0, 0)
	w, h := s.Size()
	if w != 206 || h != 156 {
		t.Fatalf("got %dx%d", w, h)
	}
	f, err := s.ReadRaw()
	if err != nil {
		t.Fatal(err)
	}
	if f.W != w || f.H != h || len(f.Pix) != w*h {
		t.Fatalf("frame %dx%d, %d pixels", f.W, f.H, len(f.Pix))
	}
	if f.Seq != 1 {
		t.Fatalf("seq %d", f.Seq)
	}
}

func TestSyntheticAnimates(t *testing.T) {
	s := NewSynthetic(32, 24)
	f1, _ := s.ReadRaw()
	f2, _ := s.ReadRaw()
	if f2.Seq != f1.Seq+1 {
		t.Fatalf("seq %d after %d", f2.Seq, f1.Seq)
	}
	same := true
	for i := range f1.Pix {
		if f1.Pix[i] != f2.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("consecutive frames identical")
	}
	if &f1.Pix[0] == &f2.Pix[0] {
		t.Fatal("frames share a buffer")
	}
}
