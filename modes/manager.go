// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"github.com/ProgramingPro2/seekpi/thermal"
)

// Manager owns the fixed mode sequence and the shared state, and routes
// frames and button presses to the active mode.
type Manager struct {
	model thermal.TemperatureModel
	state *State
	modes []Mode
	index int
}

// NewManager builds the standard five-mode machine, starting in Live.
func NewManager(model thermal.TemperatureModel, hooks Hooks, paletteNames []string) *Manager {
	return &Manager{
		model: model,
		state: NewState(paletteNames),
		modes: []Mode{
			NewLive(),
			NewPalette(),
			NewFlatField(hooks, 0),
			NewHotCold(),
			NewSettings(),
		},
	}
}

// State returns the shared mutable state.
func (m *Manager) State() *State {
	return m.state
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	return m.modes[m.index]
}

// Cycle exits the active mode, advances to the next one with wraparound and
// enters it. It returns the banner to show: the entry result's banner when
// there is one, otherwise "<Name> Mode".
func (m *Manager) Cycle() string {
	m.Current().OnExit(m.state)
	m.index = (m.index + 1) % len(m.modes)
	if res := m.Current().OnEnter(m.state); res != nil && res.Banner != "" {
		return res.Banner
	}
	return m.Current().Name() + " Mode"
}

// HandleModePress forwards MODE to the active mode. When consumed is false
// the caller is expected to Cycle; the manager never cycles on its own.
func (m *Manager) HandleModePress() (consumed bool, message string) {
	return m.Current().OnModeButton(m.state)
}

// HandleButtonUp forwards UP and returns the banner message, if any.
func (m *Manager) HandleButtonUp() string {
	return m.Current().OnButtonUp(m.state)
}

// HandleButtonDown forwards DOWN and returns the banner message, if any.
func (m *Manager) HandleButtonDown() string {
	return m.Current().OnButtonDown(m.state)
}

// Update derives the Celsius frame and runs the active mode's per-tick
// logic.
func (m *Manager) Update(raw *thermal.Frame) *Result {
	return m.Current().Update(raw, m.model.ToCelsius(raw), m.state)
}
