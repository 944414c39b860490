// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package layout computes the canvas geometry of the edges of a tree
// for the phylogram and fan projections.
//
// In a phylogram,
// branches are horizontal segments
// and siblings are joined by vertical segments.
// In a fan,
// branches are radial segments
// and siblings are joined by circular arcs.
package layout

import (
	"math"
	"strings"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/shape"
)

// Projection is the way in which a tree is drawn.
type Projection int

// Valid projections.
const (
	Phylogram Projection = iota
	Fan
)

func (p Projection) String() string {
	switch p {
	case Phylogram:
		return "phylogram"
	case Fan:
		return "fan"
	}
	return "unknown"
}

// ParseProjection returns a projection from its name.
func ParseProjection(s string) (Projection, bool) {
	switch strings.ToLower(s) {
	case "phylogram", "rectangular", "rect":
		return Phylogram, true
	case "fan", "circular", "polar":
		return Fan, true
	}
	return Phylogram, false
}

// Angle limits.
const (
	MinOpenAngle = math.Pi / 4
	MaxOpenAngle = 2 * math.Pi
)

// Params are the parameters
// used to map the normalized edge coordinates
// into the canvas.
type Params struct {
	Projection Projection

	// Rectangle in which the tree is drawn,
	// not including the root stub or the labels.
	Rect shape.Rect

	// Fan angles, in radians.
	OpenAngle float64
	Rotation  float64

	// Length of the root stub in pixels.
	RootLen  float64
	DrawRoot bool

	// Number of terminals.
	Tips int

	// Distance between a node and its label.
	LabelOffset float64

	// If set, tip labels are aligned
	// at the right border of a phylogram
	// or at the rim of a fan.
	AlignTips bool
}

// Center returns the center of a fan.
func (p Params) Center() shape.Point {
	return p.Rect.Center()
}

// Radius returns the radius of a fan.
func (p Params) Radius() float64 {
	return math.Min(p.Rect.Dx(), p.Rect.Dy()) / 2
}

// inner returns the radius used by the root stub of a fan.
func (p Params) inner() float64 {
	if !p.DrawRoot || p.RootLen <= 0 {
		return 0
	}
	return math.Min(p.RootLen, p.Radius()/2)
}

// R returns the radius in a fan
// of a normalized horizontal coordinate.
func (p Params) R(x float64) float64 {
	in := p.inner()
	return in + x*(p.Radius()-in)
}

// Theta returns the angle in a fan
// of a normalized vertical coordinate.
// In a full circle
// the terminals are spread over (N-1)/N of the circle
// so the first and last terminals do not overlap.
func (p Params) Theta(y float64) float64 {
	open := p.OpenAngle
	if open >= MaxOpenAngle-1e-9 && p.Tips > 1 {
		open = open * float64(p.Tips-1) / float64(p.Tips)
	}
	return p.Rotation + y*open
}

// Point returns the canvas position
// of a pair of normalized coordinates.
func (p Params) Point(x, y float64) shape.Point {
	if p.Projection == Fan {
		return shape.Polar(p.Center(), p.R(x), p.Theta(y))
	}
	return shape.Point{
		X: p.Rect.Min.X + x*p.Rect.Dx(),
		Y: p.Rect.Min.Y + y*p.Rect.Dy(),
	}
}

// ClampOpenAngle returns an open angle
// in the valid range [π/4, 2π].
func ClampOpenAngle(a float64) float64 {
	if math.IsNaN(a) || a < MinOpenAngle {
		return MinOpenAngle
	}
	if a > MaxOpenAngle {
		return MaxOpenAngle
	}
	return a
}

// NormalizeRotation returns a rotation angle
// in the range [-π, π].
func NormalizeRotation(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	}
	if a < -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Geometry is the canvas geometry of an edge.
type Geometry struct {
	// End points of the branch.
	Parent, Child shape.Point

	// Angle of the branch in a fan.
	Angle float64

	// Joint with the previous sibling:
	// a vertical segment in a phylogram,
	// or an arc in a fan.
	HasJoint  bool
	JointFrom shape.Point
	JointTo   shape.Point

	// Arc of the joint in a fan.
	Center     shape.Point
	Radius     float64
	ArcFrom    float64
	ArcTo      float64
	projection Projection
}

// Edge returns the geometry of an edge.
func Edge(e *edge.Edge, p Params) Geometry {
	g := Geometry{
		Parent:     p.Point(e.X0, e.Y),
		Child:      p.Point(e.X1, e.Y),
		projection: p.Projection,
	}
	if p.Projection == Fan {
		g.Angle = p.Theta(e.Y)
	}
	if !e.HasYParent {
		return g
	}

	g.HasJoint = true
	g.JointFrom = g.Parent
	g.JointTo = p.Point(e.X0, e.YParent)
	if p.Projection == Fan {
		g.Center = p.Center()
		g.Radius = p.R(e.X0)
		g.ArcFrom = g.Angle
		g.ArcTo = p.Theta(e.YParent)
	}
	return g
}

// RootStub returns the geometry of the root stub.
// In a phylogram it is a horizontal segment
// of the root length to the left of the root.
// In a fan it is a radial segment
// from the center to the root.
func RootStub(e *edge.Edge, p Params) Geometry {
	g := Geometry{
		Child:      p.Point(e.X1, e.Y),
		projection: p.Projection,
	}
	if p.Projection == Fan {
		g.Angle = p.Theta(e.Y)
		g.Parent = p.Center()
		return g
	}
	x := p.Rect.Min.X + e.X0*p.Rect.Dx()
	g.Parent = shape.Pt(x-p.RootLen, g.Child.Y)
	return g
}

// Append adds the branch and joint of the geometry
// to a path.
func (g Geometry) Append(path *shape.Path) {
	path.Move(g.Parent)
	path.Line(g.Child)
	if !g.HasJoint {
		return
	}
	if g.projection == Fan {
		if g.Radius <= 0 {
			return
		}
		path.Arc(g.Center, g.Radius, g.ArcFrom, g.ArcTo)
		return
	}
	path.Move(g.JointFrom)
	path.Line(g.JointTo)
}

// Path returns a path with the branch and the joint.
func (g Geometry) Path() shape.Path {
	var p shape.Path
	g.Append(&p)
	return p
}
