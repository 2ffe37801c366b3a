// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package seek

import "testing"

func TestParseKind(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Kind
	}{
		{"seek", Compact},
		{"SeekCompact", Compact},
		{"compactxr", Compact},
		{"seekpro", CompactPro},
		{"CompactPRO", CompactPro},
	} {
		got, err := ParseKind(tc.in)
		if err != nil || got != tc.want {
			t.Fatalf("ParseKind(%q) = %v, %v", tc.in, got, err)
		}
	}
	if _, err := ParseKind("flir"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

func TestKindString(t *testing.T) {
	if Compact.String() != "seek" || CompactPro.String() != "seekpro" {
		t.Fatalf("got %q, %q", Compact, CompactPro)
	}
}
