// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package palette implements color gradients
// used to color branches by their depth,
// and color keys used to color terminal labels.
package palette

import (
	"image/color"
	"sort"
	"strings"

	"github.com/js-arias/blind"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// HalfGrayScale returns a gray scale
// between 0 (black)
// and 128 (gray).
type HalfGrayScale struct{}

func (h HalfGrayScale) Gradient(v float64) color.Color {
	c := 128 - uint8(clamp(v)*128)
	return color.RGBA{c, c, c, 255}
}

// LightGrayScale returns a gray scale
// between 0 (black)
// to 200 (light gray).
type LightGrayScale struct{}

func (l LightGrayScale) Gradient(v float64) color.Color {
	c := 200 - uint8(clamp(v)*200)
	return color.RGBA{c, c, c, 255}
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// Solid is a gradient of a single color.
type Solid struct {
	Color color.Color
}

func (s Solid) Gradient(v float64) color.Color {
	if s.Color == nil {
		return color.Black
	}
	return s.Color
}

var gradients = map[string]Gradienter{
	"gray":         HalfGrayScale{},
	"lightgray":    LightGrayScale{},
	"incandescent": Incandescent{},
	"iridescent":   Iridescent{},
	"rainbow":      RainbowPurpleToRed{},
}

// ByName returns a gradient by its name.
// Valid names are:
// "gray", "lightgray", "incandescent",
// "iridescent", and "rainbow".
func ByName(name string) (Gradienter, bool) {
	g, ok := gradients[strings.ToLower(strings.TrimSpace(name))]
	return g, ok
}

// Names returns the names of the defined gradients.
func Names() []string {
	names := make([]string, 0, len(gradients))
	for n := range gradients {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
