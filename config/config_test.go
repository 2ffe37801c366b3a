// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	d := Default()
	if d.CameraType != "seekpro" {
		t.Fatalf("camera type %q", d.CameraType)
	}
	if d.PaletteIndex != 2 {
		t.Fatalf("palette index %d", d.PaletteIndex)
	}
	if d.ThresholdC != 30 || d.ThresholdMode != ">" {
		t.Fatalf("threshold %g %q", d.ThresholdC, d.ThresholdMode)
	}
	if d.TemperatureUnit != "C" {
		t.Fatalf("unit %q", d.TemperatureUnit)
	}
	if d.DefaultThresholdC != 30 || d.DefaultThresholdF != 86 {
		t.Fatalf("default thresholds %g %g", d.DefaultThresholdC, d.DefaultThresholdF)
	}
	if d.AutoExposureLock || d.FFCPath != "" {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Data{
		CameraType:        "seek",
		PaletteIndex:      5,
		ThresholdC:        42.5,
		ThresholdMode:     "<",
		AutoExposureLock:  true,
		FFCPath:           "/tmp/ffc.png",
		TemperatureUnit:   "F",
		DefaultThresholdC: 35,
		DefaultThresholdF: 95,
	}
	if err := Save(path, want); err != nil {
		t.Fatal(err)
	}
	if got := Load(path); got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	if got := Load(filepath.Join(t.TempDir(), "config.json")); got != Default() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Load(path); got != Default() {
		t.Fatalf("got %+v, want defaults", got)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"palette_index": 7}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got := Load(path)
	if got.PaletteIndex != 7 {
		t.Fatalf("palette index %d, want 7", got.PaletteIndex)
	}
	if got.CameraType != "seekpro" || got.ThresholdC != 30 {
		t.Fatalf("missing fields lost their defaults: %+v", got)
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

// The on-disk key names are a stable contract; renaming a struct field
// must not silently change them.
func TestFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := Save(path, Default()); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{
		"camera_type", "palette_index", "threshold_c", "threshold_mode",
		"auto_exposure_lock", "ffc_path", "temperature_unit",
		"default_threshold_c", "default_threshold_f",
	} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("key %q missing from %s", k, raw)
		}
	}
}
