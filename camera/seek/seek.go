// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build cgo

package seek

/*
#cgo LDFLAGS: -lseekshim

#include <stdlib.h>

void* seek_open(int camera_type, const char* ffc_path);
void  seek_close(void* handle);
int   seek_get_dimensions(void* handle, int* width, int* height);
int   seek_read_frame(void* handle, unsigned short* buffer, int size);
*/
import "C"

import (
	"errors"
	"fmt"
	"time"
	"unsafe"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// Camera is an open Seek device. Not safe for concurrent reads.
type Camera struct {
	handle unsafe.Pointer
	kind   Kind
	w, h   int
	seq    uint64
}

// Open opens the camera, optionally loading a flat-field calibration PNG.
func Open(kind Kind, ffcPath string) (*Camera, error) {
	var cpath *C.char
	if ffcPath != "" {
		cpath = C.CString(ffcPath)
		defer C.free(unsafe.Pointer(cpath))
	}
	h := C.seek_open(C.int(kind), cpath)
	if h == nil {
		return nil, fmt.Errorf("seek: opening %s camera: is it connected?", kind)
	}
	var w, ht C.int
	if C.seek_get_dimensions(h, &w, &ht) == 0 {
		C.seek_close(h)
		return nil, errors.New("seek: querying frame dimensions")
	}
	return &Camera{handle: h, kind: kind, w: int(w), h: int(ht)}, nil
}

// ReadRaw blocks until the sensor delivers the next frame.
func (c *Camera) ReadRaw() (*thermal.Frame, error) {
	if c.handle == nil {
		return nil, errors.New("seek: camera is closed")
	}
	f := thermal.NewFrame(c.w, c.h)
	n := C.seek_read_frame(c.handle, (*C.ushort)(unsafe.Pointer(&f.Pix[0])), C.int(len(f.Pix)))
	if n < 0 {
		return nil, fmt.Errorf("seek: reading frame: shim error %d", int(n))
	}
	c.seq++
	f.Seq = c.seq
	f.When = time.Now()
	return f, nil
}

func (c *Camera) Size() (int, int) {
	return c.w, c.h
}

func (c *Camera) Close() error {
	if c.handle != nil {
		C.seek_close(c.handle)
		c.handle = nil
	}
	return nil
}
