// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package seek drives Seek Thermal Compact and CompactPRO cameras through
// the libseekshim C wrapper around libseek-thermal. Building it for real
// hardware needs cgo and the shim library; without cgo, Open reports
// ErrUnavailable and the rest of the viewer keeps working on other
// backends.
package seek

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects the camera model, matching the shim's camera_type argument.
type Kind int

const (
	// Compact covers the Seek Compact and CompactXR.
	Compact Kind = 0
	// CompactPro is the Seek CompactPRO.
	CompactPro Kind = 1
)

// ErrUnavailable means the binary was built without cgo, so the shim
// library is not linked in.
var ErrUnavailable = errors.New("seek: support not compiled in; rebuild with cgo")

// ParseKind maps the user-facing camera type names onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "seek", "seekcompact", "compactxr":
		return Compact, nil
	case "seekpro", "compactpro":
		return CompactPro, nil
	}
	return 0, fmt.Errorf("seek: unsupported camera type %q", s)
}

func (k Kind) String() string {
	switch k {
	case Compact:
		return "seek"
	case CompactPro:
		return "seekpro"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
