// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package shape implements the drawing primitives
// produced by the layout and render packages
// and consumed by the screen and file backends.
//
// Coordinates are canvas pixels,
// with the origin at the top-left corner
// and y growing downwards.
package shape

import (
	"image/color"
	"math"
	"unicode/utf8"
)

// A Point is a position in the canvas.
type Point struct {
	X, Y float64
}

// Pt is a shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the vector p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns the vector p*k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Polar returns the point at a distance r
// and angle a (in radians)
// from the center c.
func Polar(c Point, r, a float64) Point {
	return Point{
		X: c.X + r*math.Cos(a),
		Y: c.Y + r*math.Sin(a),
	}
}

// A Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// R is a shorthand for a rectangle
// with the indicated corners.
func R(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Pt(x0, y0), Max: Pt(x1, y1)}
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() float64 {
	return r.Max.X - r.Min.X
}

// Dy returns the height of the rectangle.
func (r Rect) Dy() float64 {
	return r.Max.Y - r.Min.Y
}

// Empty returns true if the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains returns true if the point is inside the rectangle
// (including its border).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Inset returns the rectangle
// shrunk by d at each side.
func (r Rect) Inset(d float64) Rect {
	nr := Rect{
		Min: Point{X: r.Min.X + d, Y: r.Min.Y + d},
		Max: Point{X: r.Max.X - d, Y: r.Max.Y - d},
	}
	if nr.Min.X > nr.Max.X {
		c := (r.Min.X + r.Max.X) / 2
		nr.Min.X, nr.Max.X = c, c
	}
	if nr.Min.Y > nr.Max.Y {
		c := (r.Min.Y + r.Max.Y) / 2
		nr.Min.Y, nr.Max.Y = c, c
	}
	return nr
}

// Union returns the smallest rectangle
// that contains both rectangles.
// An empty rectangle with a zero value is ignored.
func (r Rect) Union(s Rect) Rect {
	if r == (Rect{}) {
		return s
	}
	if s == (Rect{}) {
		return r
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, s.Min.X), Y: math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, s.Max.X), Y: math.Max(r.Max.Y, s.Max.Y)},
	}
}

// TextWidth returns the approximate width
// of a text drawn with a given font size.
// It assumes an average glyph width
// of 0.6 of the font size.
func TextWidth(s string, size float64) float64 {
	return float64(utf8.RuneCountInString(s)) * size * 0.6
}

// Align is the horizontal alignment of a text
// relative to its anchor.
type Align int

// Valid text alignments.
const (
	// The text starts at the anchor.
	Left Align = iota

	// The text is centered on the anchor.
	Center

	// The text ends at the anchor.
	Right
)

// Flip returns the opposite alignment.
func (a Align) Flip() Align {
	switch a {
	case Left:
		return Right
	case Right:
		return Left
	}
	return Center
}

func (a Align) String() string {
	switch a {
	case Left:
		return "left"
	case Center:
		return "center"
	case Right:
		return "right"
	}
	return "unknown"
}

// A Stroke is the style used to draw a path.
type Stroke struct {
	Width float64
	Color color.Color

	// Dash lengths,
	// nil for a solid line.
	Dash []float64
}

// Text is a label drawn at an anchor point.
// The anchor is at the vertical middle of the text.
type Text struct {
	Text  string
	Pos   Point
	Size  float64
	Color color.Color
	Align Align

	// Rotation angle in radians,
	// clockwise as y grows downwards.
	Angle float64
}

// Shape is a path drawn with a stroke
// and an optional fill.
type Shape struct {
	Path   Path
	Stroke Stroke

	// Fill color, nil for no fill.
	Fill color.Color
}

// A Frame is the drawing of a layer.
// Shapes are drawn before texts.
type Frame struct {
	Shapes []Shape
	Texts  []Text
}

// Add adds a shape to the frame.
func (f *Frame) Add(p Path, s Stroke) {
	if p.Empty() {
		return
	}
	f.Shapes = append(f.Shapes, Shape{Path: p, Stroke: s})
}

// AddText adds a text to the frame.
func (f *Frame) AddText(t Text) {
	if t.Text == "" {
		return
	}
	f.Texts = append(f.Texts, t)
}

// Len returns the number of elements in a frame.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Shapes) + len(f.Texts)
}

// Bounds returns the approximate bounding box
// of the elements in the frame.
func (f *Frame) Bounds() Rect {
	var r Rect
	if f == nil {
		return r
	}
	for _, s := range f.Shapes {
		r = r.Union(s.Path.Bounds())
	}
	for _, t := range f.Texts {
		w := TextWidth(t.Text, t.Size)
		r = r.Union(R(t.Pos.X-w, t.Pos.Y-t.Size, t.Pos.X+w, t.Pos.Y+t.Size))
	}
	return r
}
