// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ltt

import (
	"image/color"
	"math"

	"github.com/js-arias/phyview/shape"
)

// Style is the drawing style of a lineages-through-time frame.
type Style struct {
	LineWidth float64
	TextSize  float64
	Color     color.Color
	Axis      color.Color
}

// DefaultStyle returns the default style
// for a given scale factor.
func DefaultStyle(sf float64) Style {
	if sf <= 0 {
		sf = 1
	}
	return Style{
		LineWidth: 1.5 * sf,
		TextSize:  9 * sf,
		Color:     color.RGBA{25, 101, 176, 255},
		Axis:      color.Black,
	}
}

// Axes maps a series into a rectangle of the canvas.
// The horizontal axis shares the scale
// of the tree drawn in the range [X0, X1] of the canvas.
type Axes struct {
	X0, X1 float64
	Rect   shape.Rect
	End    float64
	Max    int
}

// NewAxes returns the axes of a series.
func NewAxes(s Series, x0, x1 float64, rect shape.Rect) Axes {
	return Axes{
		X0:   x0,
		X1:   x1,
		Rect: rect,
		End:  s.End(),
		Max:  max(s.Max(), 2),
	}
}

// X returns the canvas position of a time.
func (a Axes) X(t float64) float64 {
	if a.End <= 0 {
		return a.X0
	}
	return a.X0 + t/a.End*(a.X1-a.X0)
}

// Y returns the canvas position of a number of lineages
// in a logarithmic scale.
func (a Axes) Y(n float64) float64 {
	if n < 1 {
		n = 1
	}
	v := math.Log10(n) / math.Log10(float64(a.Max))
	return a.Rect.Max.Y - v*a.Rect.Dy()
}

// Frame returns the drawing of a series
// with its axes and ticks.
func Frame(s Series, a Axes, st Style) *shape.Frame {
	f := &shape.Frame{}
	if len(s) == 0 {
		return f
	}

	axis := shape.Stroke{Width: st.LineWidth / 2, Color: st.Axis}
	var ax shape.Path
	ax.Move(shape.Pt(a.X0, a.Rect.Min.Y))
	ax.Line(shape.Pt(a.X0, a.Rect.Max.Y))
	ax.Line(shape.Pt(a.X1, a.Rect.Max.Y))
	f.Add(ax, axis)

	tick := st.TextSize / 2
	xs := Ticks(0, a.End, XTicks, false)
	dec := Decimals(Spacing(0, a.End, XTicks))
	var tp shape.Path
	for _, v := range xs {
		x := a.X(v)
		tp.Move(shape.Pt(x, a.Rect.Max.Y))
		tp.Line(shape.Pt(x, a.Rect.Max.Y+tick))
		f.AddText(shape.Text{
			Text:  Label(v, dec),
			Pos:   shape.Pt(x, a.Rect.Max.Y+tick+st.TextSize),
			Size:  st.TextSize,
			Color: st.Axis,
			Align: shape.Center,
		})
	}
	for _, v := range Ticks(1, float64(a.Max), YTicks, true) {
		y := a.Y(v)
		tp.Move(shape.Pt(a.X0, y))
		tp.Line(shape.Pt(a.X0-tick, y))
		f.AddText(shape.Text{
			Text:  Label(v, 0),
			Pos:   shape.Pt(a.X0-tick-2, y+st.TextSize/3),
			Size:  st.TextSize,
			Color: st.Axis,
			Align: shape.Right,
		})
	}
	f.Add(tp, axis)

	var p shape.Path
	for i, pt := range s {
		x := a.X(pt.Time)
		y := a.Y(float64(pt.Count))
		if i == 0 {
			p.Move(shape.Pt(x, y))
			continue
		}
		prev := a.Y(float64(s[i-1].Count))
		p.Line(shape.Pt(x, prev))
		p.Line(shape.Pt(x, y))
	}
	f.Add(p, shape.Stroke{Width: st.LineWidth, Color: st.Color})
	return f
}
