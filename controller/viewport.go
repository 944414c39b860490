// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package controller

import (
	"math"

	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/shape"
)

// ZoomLevels are the factors applied to the window size
// to obtain the size of the canvas.
var ZoomLevels = []float64{1, 1.5, 2, 3, 4, 6, 8, 12, 16, 24, 32, 48, 64, 96, 128}

// Viewport is the visible part of a tree canvas.
// Angles are in radians.
type Viewport struct {
	// Size of the window.
	Width, Height float64

	// Zoom indices for the width and height of the canvas.
	ZoomW, ZoomH int

	// Origin of the visible rectangle.
	ScrollX, ScrollY float64

	Projection layout.Projection
	OpenAngle  float64
	Rotation   float64

	RootLen   float64
	DrawRoot  bool
	AlignTips bool
}

// DefaultViewport returns a viewport
// for a window of the given size.
func DefaultViewport(w, h float64) Viewport {
	return Viewport{
		Width:      w,
		Height:     h,
		Projection: layout.Phylogram,
		OpenAngle:  layout.MaxOpenAngle,
		RootLen:    20,
		DrawRoot:   true,
	}
}

func zoomIndex(i int) int {
	return min(max(i, 0), len(ZoomLevels)-1)
}

// Canvas returns the rectangle of the whole canvas.
func (v Viewport) Canvas() shape.Rect {
	w := v.Width * ZoomLevels[zoomIndex(v.ZoomW)]
	h := v.Height * ZoomLevels[zoomIndex(v.ZoomH)]
	return shape.R(0, 0, w, h)
}

// Visible returns the visible rectangle of the canvas.
func (v Viewport) Visible() shape.Rect {
	return shape.R(v.ScrollX, v.ScrollY, v.ScrollX+v.Width, v.ScrollY+v.Height)
}

// clamp keeps the viewport inside the canvas
// and the angles inside their valid ranges.
func (v *Viewport) clamp() {
	v.ZoomW = zoomIndex(v.ZoomW)
	v.ZoomH = zoomIndex(v.ZoomH)
	c := v.Canvas()
	v.ScrollX = math.Max(0, math.Min(v.ScrollX, c.Dx()-v.Width))
	v.ScrollY = math.Max(0, math.Min(v.ScrollY, c.Dy()-v.Height))
	v.OpenAngle = layout.ClampOpenAngle(v.OpenAngle)
	v.Rotation = layout.NormalizeRotation(v.Rotation)
	if v.RootLen < 0 {
		v.RootLen = 0
	}
}

// zoom sets the zoom indices
// keeping the center of the visible rectangle
// at the same relative position of the canvas.
func (v *Viewport) zoom(w, h int) bool {
	w, h = zoomIndex(w), zoomIndex(h)
	if w == v.ZoomW && h == v.ZoomH {
		return false
	}
	old := v.Canvas()
	mid := v.Visible().Center()
	rx := mid.X / old.Dx()
	ry := mid.Y / old.Dy()

	v.ZoomW, v.ZoomH = w, h
	c := v.Canvas()
	v.ScrollX = rx*c.Dx() - v.Width/2
	v.ScrollY = ry*c.Dy() - v.Height/2
	v.clamp()
	return true
}

// center scrolls the viewport
// so the point is at the center of the visible rectangle.
func (v *Viewport) center(pt shape.Point) {
	v.ScrollX = pt.X - v.Width/2
	v.ScrollY = pt.Y - v.Height/2
	v.clamp()
}
