// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package overlay

import "fmt"

// FormatStatus builds the base status lines shown in every mode.
func FormatStatus(mode, paletteName string) []string {
	return []string{mode + " Mode", "Palette " + paletteName}
}

// FormatTarget renders the threshold line appended to the base status while
// the live mode is active. The value is already in display units.
func FormatTarget(value float64, unit string) string {
	return fmt.Sprintf("Target %.1f°%s", value, unit)
}
