// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package shape

import "math"

// SegKind is the kind of a path segment.
type SegKind int

// Valid segment kinds.
const (
	MoveTo SegKind = iota
	LineTo
	ArcTo
	Close
)

// A Segment is an element of a path.
//
// For an arc,
// Center and Radius define the circle,
// and the arc goes from the angle Start
// sweeping Sweep radians
// (positive sweeps grow the angle).
// Pt is the end point of the segment.
type Segment struct {
	Kind   SegKind
	Pt     Point
	Center Point
	Radius float64
	Start  float64
	Sweep  float64
}

// A Path is a sequence of segments.
type Path struct {
	Segs []Segment
}

// Empty returns true if the path does not draw anything.
func (p Path) Empty() bool {
	for _, s := range p.Segs {
		if s.Kind != MoveTo {
			return false
		}
	}
	return true
}

// Move starts a new sub-path at the indicated point.
func (p *Path) Move(pt Point) {
	p.Segs = append(p.Segs, Segment{Kind: MoveTo, Pt: pt})
}

// Line adds a straight line from the current point.
func (p *Path) Line(pt Point) {
	p.Segs = append(p.Segs, Segment{Kind: LineTo, Pt: pt})
}

// Arc adds a circular arc from the angle start
// to the angle end,
// taking the shortest direction.
// If the current point is not at the start of the arc
// a new sub-path is started.
func (p *Path) Arc(c Point, r, start, end float64) {
	sweep := math.Remainder(end-start, 2*math.Pi)
	if math.Abs(end-start) >= 2*math.Pi-1e-9 {
		sweep = end - start
	}
	p.ArcSweep(c, r, start, sweep)
}

// ArcSweep adds a circular arc from the angle start
// sweeping the indicated number of radians.
func (p *Path) ArcSweep(c Point, r, start, sweep float64) {
	from := Polar(c, r, start)
	if cur, ok := p.Current(); !ok || cur.Dist(from) > 1e-6 {
		p.Move(from)
	}
	p.Segs = append(p.Segs, Segment{
		Kind:   ArcTo,
		Pt:     Polar(c, r, start+sweep),
		Center: c,
		Radius: r,
		Start:  start,
		Sweep:  sweep,
	})
}

// Circle adds a closed circle.
func (p *Path) Circle(c Point, r float64) {
	p.Move(Polar(c, r, 0))
	p.Segs = append(p.Segs, Segment{
		Kind:   ArcTo,
		Pt:     Polar(c, r, 2*math.Pi),
		Center: c,
		Radius: r,
		Sweep:  2 * math.Pi,
	})
	p.ClosePath()
}

// ClosePath closes the current sub-path.
func (p *Path) ClosePath() {
	p.Segs = append(p.Segs, Segment{Kind: Close})
}

// Current returns the current point of the path.
func (p *Path) Current() (Point, bool) {
	for i := len(p.Segs) - 1; i >= 0; i-- {
		if p.Segs[i].Kind == Close {
			continue
		}
		return p.Segs[i].Pt, true
	}
	return Point{}, false
}

// Append adds the segments of another path.
func (p *Path) Append(q Path) {
	p.Segs = append(p.Segs, q.Segs...)
}

// Bounds returns the bounding box of the path.
// Arcs are bounded by their whole circle.
func (p Path) Bounds() Rect {
	first := true
	var r Rect
	add := func(q Rect) {
		if first {
			r = q
			first = false
			return
		}
		r = Rect{
			Min: Point{X: math.Min(r.Min.X, q.Min.X), Y: math.Min(r.Min.Y, q.Min.Y)},
			Max: Point{X: math.Max(r.Max.X, q.Max.X), Y: math.Max(r.Max.Y, q.Max.Y)},
		}
	}
	for _, s := range p.Segs {
		switch s.Kind {
		case MoveTo, LineTo:
			add(Rect{Min: s.Pt, Max: s.Pt})
		case ArcTo:
			add(R(s.Center.X-s.Radius, s.Center.Y-s.Radius, s.Center.X+s.Radius, s.Center.Y+s.Radius))
		}
	}
	return r
}

// Polylines returns the path as a set of polylines,
// approximating arcs with segments
// no longer than step pixels.
func (p Path) Polylines(step float64) [][]Point {
	if step <= 0 {
		step = 1
	}
	var lines [][]Point
	var cur []Point
	var start Point
	for _, s := range p.Segs {
		switch s.Kind {
		case MoveTo:
			if len(cur) > 1 {
				lines = append(lines, cur)
			}
			cur = []Point{s.Pt}
			start = s.Pt
		case LineTo:
			if len(cur) == 0 {
				cur = []Point{s.Pt}
				continue
			}
			cur = append(cur, s.Pt)
		case ArcTo:
			n := int(math.Ceil(math.Abs(s.Sweep) * s.Radius / step))
			if n < 1 {
				n = 1
			}
			if len(cur) == 0 {
				cur = []Point{Polar(s.Center, s.Radius, s.Start)}
			}
			for i := 1; i <= n; i++ {
				a := s.Start + s.Sweep*float64(i)/float64(n)
				cur = append(cur, Polar(s.Center, s.Radius, a))
			}
		case Close:
			if len(cur) > 0 {
				cur = append(cur, start)
			}
		}
	}
	if len(cur) > 1 {
		lines = append(lines, cur)
	}
	return lines
}
