// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config persists viewer settings between runs as a small JSON
// document under the user's config directory.
package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

const (
	appDir     = "seekpi"
	configFile = "config.json"
)

// Data mirrors the on-disk JSON document. Field names are stable; old
// config files with missing fields load with the defaults filled in.
type Data struct {
	CameraType        string  `json:"camera_type"`
	PaletteIndex      int     `json:"palette_index"`
	ThresholdC        float64 `json:"threshold_c"`
	ThresholdMode     string  `json:"threshold_mode"`
	AutoExposureLock  bool    `json:"auto_exposure_lock"`
	FFCPath           string  `json:"ffc_path"`
	TemperatureUnit   string  `json:"temperature_unit"`
	DefaultThresholdC float64 `json:"default_threshold_c"`
	DefaultThresholdF float64 `json:"default_threshold_f"`
}

// Default returns the settings used when no config file exists yet.
func Default() Data {
	return Data{
		CameraType:        "seekpro",
		PaletteIndex:      2,
		ThresholdC:        30,
		ThresholdMode:     ">",
		TemperatureUnit:   "C",
		DefaultThresholdC: 30,
		DefaultThresholdF: 86,
	}
}

// Dir returns the per-user directory holding the config file and saved
// flat field frames.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appDir)
}

// Path returns the default location of the config file.
func Path() string {
	return filepath.Join(Dir(), configFile)
}

// Load reads the config at path. A missing, unreadable or corrupt file
// yields the defaults; fields absent from the file keep their default
// value.
func Load(path string) Data {
	d := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return d
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Printf("config: %s is invalid json: %v", path, err)
		return Default()
	}
	return d
}

// Save writes the config as indented JSON, creating the parent
// directory if needed.
func Save(path string, d Data) error {
	data, err := json.MarshalIndent(&d, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
