// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package modes

import (
	"fmt"

	"github.com/ProgramingPro2/seekpi/thermal"
)

type settingItem struct {
	label  string
	action func(*State) string
}

// Settings is a small menu. UP/DOWN move the cursor with wraparound, MODE
// activates the selected item, so MODE is always consumed here; leaving the
// menu happens by cycling past it.
type Settings struct {
	nopMode
	items []settingItem
}

func NewSettings() *Settings {
	return &Settings{
		items: []settingItem{
			{"Toggle AEL", func(s *State) string {
				s.AutoExposureLock = !s.AutoExposureLock
				return fmt.Sprintf("AEL %s", onOff(s.AutoExposureLock))
			}},
			{"Units °C/°F", func(s *State) string {
				s.ToggleTemperatureUnit()
				return fmt.Sprintf("Units °%s", s.Unit)
			}},
			{"Cycle Highlight", func(s *State) string {
				s.CycleThresholdMode()
				return fmt.Sprintf("Highlight %s", s.ThresholdMode)
			}},
			{"Reset Threshold", func(s *State) string {
				s.SetThresholdToDefault()
				return fmt.Sprintf("Threshold %.1f°%s", s.ThresholdDisplay(), s.Unit)
			}},
		},
	}
}

func (*Settings) Name() string { return "Settings" }

func (m *Settings) Update(_ *thermal.Frame, _ *thermal.CelsiusFrame, s *State) *Result {
	status := make([]string, 0, len(m.items)+1)
	status = append(status, "MODE to activate")
	for i, item := range m.items {
		prefix := " "
		if i == s.SettingsIndex {
			prefix = ">"
		}
		status = append(status, prefix+" "+item.label)
	}
	return &Result{Status: status}
}

func (m *Settings) OnButtonUp(s *State) string {
	s.SettingsIndex = mod(s.SettingsIndex+1, len(m.items))
	return ""
}

func (m *Settings) OnButtonDown(s *State) string {
	s.SettingsIndex = mod(s.SettingsIndex-1, len(m.items))
	return ""
}

func (m *Settings) OnModeButton(s *State) (bool, string) {
	return true, m.items[s.SettingsIndex].action(s)
}
