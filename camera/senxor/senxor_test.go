// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package senxor

import (
	"bytes"
	"testing"
)

func buildPacket(typ string, payload []byte) []byte {
	var b bytes.Buffer
	b.WriteString(marker)
	total := len(payload) + 8
	const digits = "0123456789ABCDEF"
	b.WriteByte(digits[total>>12&0xf])
	b.WriteByte(digits[total>>8&0xf])
	b.WriteByte(digits[total>>4&0xf])
	b.WriteByte(digits[total&0xf])
	b.WriteString(typ)
	b.Write(payload)
	b.Write([]byte{0, 0, 0, 0}) // CRC filler
	return b.Bytes()
}

func TestEncodeCommand(t *testing.T) {
	got := string(encodeCommand("RREGBAXXXXXX"))
	if got != "   #000CRREGBAXXXXXX" {
		t.Fatalf("got %q", got)
	}
}

func TestReadPacketRoundTrip(t *testing.T) {
	payload := []byte("41FE") // register responses are ASCII hex
	r := bytes.NewReader(buildPacket("RREG", payload))
	typ, got, err := readPacket(r)
	if err != nil {
		t.Fatal(err)
	}
	if typ != "RREG" || !bytes.Equal(got, payload) {
		t.Fatalf("got %q, %q", typ, got)
	}
}

func TestReadPacketResync(t *testing.T) {
	var b bytes.Buffer
	b.WriteString("noise bytes")
	b.Write(buildPacket(packetFrame, make([]byte, 16)))
	typ, payload, err := readPacket(&b)
	if err != nil {
		t.Fatal(err)
	}
	if typ != packetFrame || len(payload) != 16 {
		t.Fatalf("got %q, %d bytes", typ, len(payload))
	}
}

func TestReadPacketTruncated(t *testing.T) {
	full := buildPacket(packetFrame, make([]byte, 32))
	if _, _, err := readPacket(bytes.NewReader(full[:20])); err == nil {
		t.Fatal("expected error on truncated stream")
	}
}

func TestFrameFromPayload(t *testing.T) {
	// 2x2 frame behind a 4-byte header row.
	payload := []byte{
		0xaa, 0xbb, 0xcc, 0xdd,
		0x01, 0x00,
		0x02, 0x00,
		0x00, 0x03,
		0xff, 0xff,
	}
	f, err := frameFromPayload(payload, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint16{0x0100, 0x0200, 0x0003, 0xffff}
	for i, v := range f.Pix {
		if v != want[i] {
			t.Fatalf("pixel %d: got %#x, want %#x", i, v, want[i])
		}
	}
}

func TestFrameFromPayloadShort(t *testing.T) {
	if _, err := frameFromPayload(make([]byte, 6), 2, 2); err == nil {
		t.Fatal("expected error for short payload")
	}
}

func TestSensorDims(t *testing.T) {
	w, h, model, ok := sensorDims(1)
	if !ok || w != 80 || h != 62 || model != "MI0801" {
		t.Fatalf("got %dx%d %q %v", w, h, model, ok)
	}
	if _, _, _, ok := sensorDims(42); ok {
		t.Fatal("unknown type accepted")
	}
}
