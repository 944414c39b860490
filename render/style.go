// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render

import (
	"image/color"

	"github.com/js-arias/phyview/palette"
)

// Style is the drawing style of a tree.
type Style struct {
	LineWidth float64
	Color     color.Color

	// Label visibility
	TipLabels      bool
	InternalLabels bool
	BranchLabels   bool

	// Label sizes
	TipSize      float64
	InternalSize float64
	BranchSize   float64

	// If set, a scale bar is drawn
	// for trees with branch lengths.
	Legend bool

	// Radius of node markers.
	Marker float64

	// If defined,
	// branches are colored by their distance to the root.
	Gradient palette.Gradienter

	// If defined,
	// terminal labels are colored with the keys.
	Keys *palette.Keys

	// Overlay colors
	SelectColor color.Color
	HoverColor  color.Color
	FoundColor  color.Color
	CursorColor color.Color
}

// DefaultStyle returns the default style
// for a given scale factor.
func DefaultStyle(sf float64) Style {
	if sf <= 0 {
		sf = 1
	}
	return Style{
		LineWidth:      1 * sf,
		Color:          color.Black,
		TipLabels:      true,
		InternalLabels: false,
		BranchLabels:   false,
		TipSize:        12 * sf,
		InternalSize:   10 * sf,
		BranchSize:     9 * sf,
		Legend:         true,
		Marker:         4 * sf,
		SelectColor:    color.RGBA{220, 5, 12, 255},
		HoverColor:     color.RGBA{25, 101, 176, 255},
		FoundColor:     color.RGBA{247, 203, 69, 255},
		CursorColor:    color.RGBA{187, 187, 187, 255},
	}
}

// LabelOffset returns the distance between a node and its label.
func (s Style) LabelOffset() float64 {
	return s.TipSize / 2
}
