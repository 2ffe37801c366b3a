// Copyright 2025 The seekpi authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package overlay

import (
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts are the two faces the renderer needs: Label for on-image stat
// labels, Status for the panel and banners.
type Fonts struct {
	Label  font.Face
	Status font.Face
}

// LoadFonts builds faces from the bundled Go Regular TrueType font, falling
// back to the fixed 7x13 bitmap face if parsing fails. The fallback has no
// degree-sign glyph but keeps the viewer usable.
func LoadFonts() *Fonts {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Printf("overlay: parsing bundled font: %v", err)
		return &Fonts{Label: basicfont.Face7x13, Status: basicfont.Face7x13}
	}
	label, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("overlay: label face: %v", err)
		label = basicfont.Face7x13
	}
	status, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Printf("overlay: status face: %v", err)
		status = basicfont.Face7x13
	}
	return &Fonts{Label: label, Status: status}
}
