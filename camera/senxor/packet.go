// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package senxor

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/ProgramingPro2/seekpi/thermal"
)

// The MI48 EVK speaks a simple framed ASCII protocol over USB-CDC: a
// four-byte marker, the total length as four ASCII hex digits, a four-char
// packet type, the payload, then four CRC bytes. The length covers type,
// payload and CRC.

const (
	marker      = "   #"
	packetFrame = "GFRA"
)

// Register addresses and frame modes, per the MI48 datasheet.
const (
	regFrameMode  = 0xB1
	regFwVersion  = 0xB2
	regFrameRate  = 0xB4
	regSenxorType = 0xBA

	frameModeIdle       = 0
	frameModeSingle     = 1
	frameModeContinuous = 2
)

// encodeCommand frames a 12-character command for the wire.
func encodeCommand(cmd string) []byte {
	return []byte(fmt.Sprintf("%s%04X%s", marker, len(cmd), cmd))
}

// readPacket reads one packet, resynchronizing byte by byte if the stream
// starts mid-packet. The trailing CRC is consumed but not checked; the EVK
// firmware sends a constant filler there by default.
func readPacket(r io.Reader) (string, []byte, error) {
	hdr := make([]byte, 12)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return "", nil, err
	}
	for string(hdr[:4]) != marker {
		copy(hdr, hdr[1:])
		if _, err := io.ReadFull(r, hdr[11:]); err != nil {
			return "", nil, err
		}
	}
	n, err := strconv.ParseUint(string(hdr[4:8]), 16, 16)
	if err != nil {
		return "", nil, fmt.Errorf("bad packet length %q: %w", hdr[4:8], err)
	}
	typ := string(hdr[8:12])
	if n < 8 {
		return "", nil, fmt.Errorf("packet length %d too short", n)
	}
	payload := make([]byte, n-8)
	if _, err := io.ReadFull(r, payload); err != nil {
		return "", nil, err
	}
	crc := make([]byte, 4)
	if _, err := io.ReadFull(r, crc); err != nil {
		return "", nil, err
	}
	return typ, payload, nil
}

// frameFromPayload converts a GFRA payload into a frame. The sensor
// prepends header rows, so the image is the tail of the payload; pixel
// words are big-endian.
func frameFromPayload(p []byte, w, h int) (*thermal.Frame, error) {
	need := w * h * 2
	if len(p) < need {
		return nil, fmt.Errorf("short frame: %d bytes, want at least %d", len(p), need)
	}
	p = p[len(p)-need:]
	f := thermal.NewFrame(w, h)
	for i := range f.Pix {
		f.Pix[i] = binary.BigEndian.Uint16(p[2*i:])
	}
	return f, nil
}

// sensorDims maps the SENXOR_TYPE register onto frame geometry.
func sensorDims(t uint8) (w, h int, model string, ok bool) {
	switch t {
	case 0, 1, 3:
		return 80, 62, "MI0801", true
	case 2:
		return 32, 32, "MI0301", true
	case 8:
		return 160, 120, "Panther", true
	}
	return 0, 0, "", false
}

// sensorMaxFPS returns the sensor's native frame rate, or 0 when unknown.
func sensorMaxFPS(t uint8) float64 {
	switch t {
	case 0, 1:
		return 25.5
	case 2:
		return 28.57
	}
	return 0
}
