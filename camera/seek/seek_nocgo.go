// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !cgo

package seek

import (
	"github.com/ProgramingPro2/seekpi/thermal"
)

// Camera is a placeholder when built without cgo; Open never produces one.
type Camera struct{}

func Open(kind Kind, ffcPath string) (*Camera, error) {
	return nil, ErrUnavailable
}

func (*Camera) ReadRaw() (*thermal.Frame, error) {
	return nil, ErrUnavailable
}

func (*Camera) Size() (int, int) {
	return 0, 0
}

func (*Camera) Close() error {
	return nil
}
