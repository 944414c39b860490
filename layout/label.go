// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package layout

import (
	"math"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/shape"
)

// An Anchor is the position of a label.
type Anchor struct {
	Pos   shape.Point
	Angle float64
	Align shape.Align

	// Alignment line,
	// from the node to the start of the label.
	HasLine  bool
	LineFrom shape.Point
	LineTo   shape.Point
}

// TipAnchor returns the anchor of a terminal label,
// at the child end of the edge.
func TipAnchor(e *edge.Edge, p Params) Anchor {
	off := p.LabelOffset
	if p.Projection == Fan {
		th := p.Theta(e.Y)
		r := p.R(e.X1)
		a := Anchor{
			Pos:   shape.Polar(p.Center(), r+off, th),
			Angle: th,
			Align: shape.Left,
		}
		if p.AlignTips {
			a.Pos = shape.Polar(p.Center(), p.Radius()+off, th)
			if p.Radius()-r > 2*off {
				a.HasLine = true
				a.LineFrom = shape.Polar(p.Center(), r+off, th)
				a.LineTo = shape.Polar(p.Center(), p.Radius(), th)
			}
		}
		return Readable(a)
	}

	c := p.Point(e.X1, e.Y)
	a := Anchor{
		Pos:   shape.Pt(c.X+off, c.Y),
		Align: shape.Left,
	}
	if p.AlignTips {
		a.Pos.X = p.Rect.Max.X + off
		if p.Rect.Max.X-c.X > 2*off {
			a.HasLine = true
			a.LineFrom = shape.Pt(c.X+off, c.Y)
			a.LineTo = shape.Pt(p.Rect.Max.X, c.Y)
		}
	}
	return a
}

// InternalAnchor returns the anchor of an internal node label,
// at the child end of the edge.
func InternalAnchor(e *edge.Edge, p Params) Anchor {
	off := p.LabelOffset / 2
	if p.Projection == Fan {
		th := p.Theta(e.Y)
		return Readable(Anchor{
			Pos:   shape.Polar(p.Center(), p.R(e.X1)-off, th),
			Angle: th,
			Align: shape.Right,
		})
	}
	c := p.Point(e.X1, e.Y)
	return Anchor{
		Pos:   shape.Pt(c.X-off, c.Y-off),
		Align: shape.Right,
	}
}

// BranchAnchor returns the anchor of a branch label,
// at the middle of the edge.
func BranchAnchor(e *edge.Edge, p Params) Anchor {
	off := p.LabelOffset / 2
	mid := (e.X0 + e.X1) / 2
	if p.Projection == Fan {
		th := p.Theta(e.Y)
		pos := shape.Polar(p.Center(), p.R(mid), th)
		// move the label over the branch
		pos = pos.Add(shape.Pt(math.Sin(th)*off, -math.Cos(th)*off))
		return Readable(Anchor{
			Pos:   pos,
			Angle: th,
			Align: shape.Center,
		})
	}
	m := p.Point(mid, e.Y)
	return Anchor{
		Pos:   shape.Pt(m.X, m.Y-off),
		Align: shape.Center,
	}
}

// Readable rotates a fan label
// so that it reads from left to right:
// if the angle is in the left half of the circle,
// the label is rotated by π
// and its alignment is flipped.
func Readable(a Anchor) Anchor {
	th := math.Mod(a.Angle, 2*math.Pi)
	if th < 0 {
		th += 2 * math.Pi
	}
	if th > math.Pi/2 && th < 3*math.Pi/2 {
		a.Angle = th - math.Pi
		a.Align = a.Align.Flip()
		return a
	}
	a.Angle = th
	return a
}

// Default distances of the tree rectangle.
const (
	Margin       = 10
	LegendHeight = 30
	legendLeft   = 20
	legendGap    = 12
)

// TreeRect returns the rectangle in which a tree is drawn
// in a canvas,
// leaving space for the root stub,
// the terminal labels,
// and the legend.
func TreeRect(canvas shape.Rect, proj Projection, labelWidth, rootLen float64, legend bool) shape.Rect {
	bottom := float64(Margin)
	if legend {
		bottom += LegendHeight
	}

	if proj == Fan {
		area := shape.Rect{
			Min: shape.Pt(canvas.Min.X+Margin, canvas.Min.Y+Margin),
			Max: shape.Pt(canvas.Max.X-Margin, canvas.Max.Y-bottom),
		}
		side := math.Min(area.Dx(), area.Dy()) - 2*labelWidth
		if side < 0 {
			side = 0
		}
		c := area.Center()
		return shape.R(c.X-side/2, c.Y-side/2, c.X+side/2, c.Y+side/2)
	}

	r := shape.Rect{
		Min: shape.Pt(canvas.Min.X+Margin+rootLen, canvas.Min.Y+Margin),
		Max: shape.Pt(canvas.Max.X-Margin-labelWidth, canvas.Max.Y-bottom),
	}
	if r.Max.X < r.Min.X {
		r.Max.X = r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Max.Y = r.Min.Y
	}
	return r
}

// ScaleLength returns a round length for a scale bar
// of a tree with the given height:
// about a quarter of the height,
// rounded down to one significant figure
// if it is larger than 10,
// or to a tenth otherwise.
func ScaleLength(height float64) float64 {
	if height <= 0 || math.IsNaN(height) || math.IsInf(height, 0) {
		return 0
	}
	v := height / 4
	if v > 10 {
		mag := math.Pow(10, math.Floor(math.Log10(v)))
		return math.Floor(v/mag) * mag
	}
	if r := math.Floor(v*10) / 10; r > 0 {
		return r
	}

	// very short trees
	mag := math.Pow(10, math.Floor(math.Log10(v)))
	return math.Floor(v/mag) * mag
}

// ScaleBar returns the segment of the scale bar
// of a tree with the given height,
// and the length of the bar in tree units.
// It returns false if the tree has no height.
func ScaleBar(height float64, p Params) (from, to shape.Point, length float64, ok bool) {
	length = ScaleLength(height)
	if length == 0 {
		return from, to, 0, false
	}

	w := p.Rect.Dx()
	if p.Projection == Fan {
		w = p.Radius() - p.inner()
	}
	px := length / height * w
	from = shape.Pt(p.Rect.Min.X+legendLeft, p.Rect.Max.Y+legendGap)
	to = shape.Pt(from.X+px, from.Y)
	return from, to, length, true
}
