// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package layout_test

import (
	"math"
	"testing"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/shape"
)

const eps = 1e-9

func flatten(t testing.TB, s string, stub bool) *edge.Set {
	t.Helper()

	tr, err := newick.Parse(s)
	if err != nil {
		t.Fatalf("unable to parse %q: %v", s, err)
	}
	return edge.Flatten(tr, edge.Options{RootStub: stub})
}

func near(p, q shape.Point) bool {
	return p.Dist(q) < 1e-6
}

func TestPhylogram(t *testing.T) {
	s := flatten(t, "((A:1,B:2)ab:3,C:4);", true)
	p := layout.Params{
		Projection: layout.Phylogram,
		Rect:       shape.R(0, 0, 100, 50),
		RootLen:    10,
		DrawRoot:   true,
		Tips:       s.TipCount(),
	}

	// edge of C
	c := s.Edges[len(s.Edges)-1]
	g := layout.Edge(&c, p)
	if !near(g.Parent, shape.Pt(0, 50)) || !near(g.Child, shape.Pt(80, 50)) {
		t.Errorf("edge C: got %v-%v, want (0,50)-(80,50)", g.Parent, g.Child)
	}
	if !g.HasJoint || !near(g.JointTo, shape.Pt(0, 12.5)) {
		t.Errorf("edge C: joint to %v, want (0,12.5)", g.JointTo)
	}
	path := g.Path()
	if len(path.Segs) != 4 {
		t.Errorf("edge C: path segments %d, want %d", len(path.Segs), 4)
	}

	root := s.Edges[s.Root]
	rg := layout.RootStub(&root, p)
	if !near(rg.Parent, shape.Pt(-10, 31.25)) || !near(rg.Child, shape.Pt(0, 31.25)) {
		t.Errorf("root stub: got %v-%v, want (-10,31.25)-(0,31.25)", rg.Parent, rg.Child)
	}
}

func TestFan(t *testing.T) {
	s := flatten(t, "(A:1,B:1,C:1);", false)
	p := layout.Params{
		Projection: layout.Fan,
		Rect:       shape.R(0, 0, 200, 200),
		OpenAngle:  math.Pi,
		Tips:       s.TipCount(),
	}

	// B is at the middle of the open angle
	b := s.Edges[1]
	g := layout.Edge(&b, p)
	if math.Abs(g.Angle-math.Pi/2) > eps {
		t.Errorf("edge B: angle %.6f, want %.6f", g.Angle, math.Pi/2)
	}
	if !near(g.Child, shape.Pt(100, 200)) {
		t.Errorf("edge B: child %v, want (100,200)", g.Child)
	}
	if !near(g.Parent, shape.Pt(100, 100)) {
		t.Errorf("edge B: parent %v, want the center", g.Parent)
	}
	// joint at the center has no arc
	if path := g.Path(); len(path.Segs) != 2 {
		t.Errorf("edge B: path segments %d, want %d", len(path.Segs), 2)
	}

	// full circle
	p.OpenAngle = 2 * math.Pi
	c := s.Edges[2]
	if got, want := p.Theta(c.Y), 2*math.Pi*2/3; math.Abs(got-want) > eps {
		t.Errorf("full circle: last tip angle %.6f, want %.6f", got, want)
	}
}

func TestFanArc(t *testing.T) {
	s := flatten(t, "((A:1,B:1):1,C:2);", false)
	p := layout.Params{
		Projection: layout.Fan,
		Rect:       shape.R(0, 0, 200, 200),
		OpenAngle:  math.Pi,
		Tips:       s.TipCount(),
	}
	// edge of B: arc at half the radius
	b := s.Edges[2]
	g := layout.Edge(&b, p)
	if !g.HasJoint {
		t.Fatalf("edge B: expecting a joint")
	}
	if math.Abs(g.Radius-50) > eps {
		t.Errorf("edge B: arc radius %.6f, want %.6f", g.Radius, 50.0)
	}
	if math.Abs(g.ArcFrom-math.Pi/2) > eps || math.Abs(g.ArcTo) > eps {
		t.Errorf("edge B: arc %.6f-%.6f, want %.6f-0", g.ArcFrom, g.ArcTo, math.Pi/2)
	}
}

func TestFanWedge(t *testing.T) {
	s := flatten(t, "((A:1,B:1):1,(C:1,D:1):1);", false)
	p := layout.Params{
		Projection: layout.Fan,
		Rect:       shape.R(0, 0, 200, 200),
		OpenAngle:  layout.MinOpenAngle,
		Rotation:   math.Pi / 3,
		Tips:       s.TipCount(),
	}
	if got := p.Theta(1) - p.Theta(0); math.Abs(got-math.Pi/4) > eps {
		t.Errorf("open angle: got %.6f, want %.6f", got, math.Pi/4)
	}

	from, to := p.Rotation, p.Rotation+math.Pi/4
	inside := func(a float64) bool {
		return a >= from-eps && a <= to+eps
	}
	arcs := 0
	for i := range s.Edges {
		e := &s.Edges[i]
		g := layout.Edge(e, p)
		if !inside(g.Angle) {
			t.Errorf("edge %q: angle %.6f outside [%.6f, %.6f]", e.Label, g.Angle, from, to)
		}
		if !g.HasJoint {
			continue
		}
		arcs++
		if !inside(g.ArcFrom) || !inside(g.ArcTo) {
			t.Errorf("edge %q: arc %.6f-%.6f outside [%.6f, %.6f]", e.Label, g.ArcFrom, g.ArcTo, from, to)
		}
		if g.ArcTo > g.ArcFrom {
			t.Errorf("edge %q: arc %.6f-%.6f, want a sweep toward the previous sibling", e.Label, g.ArcFrom, g.ArcTo)
		}
	}
	if arcs != 3 {
		t.Errorf("arcs: got %d, want %d", arcs, 3)
	}
}

func TestFanInnerRadius(t *testing.T) {
	tests := map[string]struct {
		rootLen  float64
		drawRoot bool
		inner    float64
	}{
		"no root":    {rootLen: 10, inner: 0},
		"root stub":  {rootLen: 10, drawRoot: true, inner: 10},
		"long root":  {rootLen: 80, drawRoot: true, inner: 50},
		"empty stub": {rootLen: 0, drawRoot: true, inner: 0},
	}
	for name, test := range tests {
		p := layout.Params{
			Projection: layout.Fan,
			Rect:       shape.R(0, 0, 200, 200),
			OpenAngle:  math.Pi,
			RootLen:    test.rootLen,
			DrawRoot:   test.drawRoot,
			Tips:       3,
		}
		if got := p.R(0); math.Abs(got-test.inner) > eps {
			t.Errorf("%s: r(0): got %.6f, want %.6f", name, got, test.inner)
		}
		if got := p.R(1); math.Abs(got-100) > eps {
			t.Errorf("%s: r(1): got %.6f, want %.6f", name, got, 100.0)
		}
		want := test.inner + 0.5*(100-test.inner)
		if got := p.R(0.5); math.Abs(got-want) > eps {
			t.Errorf("%s: r(0.5): got %.6f, want %.6f", name, got, want)
		}
	}
}

func TestReadable(t *testing.T) {
	tests := map[string]struct {
		angle float64
		want  float64
		align shape.Align
	}{
		"right":  {angle: 0, want: 0, align: shape.Left},
		"bottom": {angle: math.Pi / 2, want: math.Pi / 2, align: shape.Left},
		"left":   {angle: math.Pi, want: 0, align: shape.Right},
		"down":   {angle: -math.Pi / 4, want: 7 * math.Pi / 4, align: shape.Left},
		"up":     {angle: 5 * math.Pi / 4, want: math.Pi / 4, align: shape.Right},
	}
	for name, test := range tests {
		a := layout.Readable(layout.Anchor{Angle: test.angle, Align: shape.Left})
		if math.Abs(a.Angle-test.want) > eps || a.Align != test.align {
			t.Errorf("%s: got %.6f %v, want %.6f %v", name, a.Angle, a.Align, test.want, test.align)
		}
	}
}

func TestAngles(t *testing.T) {
	if got := layout.ClampOpenAngle(0); got != math.Pi/4 {
		t.Errorf("clamp open angle 0: got %.6f, want %.6f", got, math.Pi/4)
	}
	if got := layout.ClampOpenAngle(10); got != 2*math.Pi {
		t.Errorf("clamp open angle 10: got %.6f, want %.6f", got, 2*math.Pi)
	}
	if got := layout.NormalizeRotation(3 * math.Pi / 2); math.Abs(got+math.Pi/2) > eps {
		t.Errorf("normalize 3π/2: got %.6f, want %.6f", got, -math.Pi/2)
	}
	if got := layout.NormalizeRotation(-5 * math.Pi / 2); math.Abs(got+math.Pi/2) > eps {
		t.Errorf("normalize -5π/2: got %.6f, want %.6f", got, -math.Pi/2)
	}
}

func TestTipAnchor(t *testing.T) {
	s := flatten(t, "((A:1,B:2)ab:3,C:4);", false)
	p := layout.Params{
		Projection:  layout.Phylogram,
		Rect:        shape.R(0, 0, 100, 50),
		Tips:        s.TipCount(),
		LabelOffset: 5,
	}
	a := s.Edges[1]
	an := layout.TipAnchor(&a, p)
	if !near(an.Pos, shape.Pt(85, 0)) || an.HasLine {
		t.Errorf("tip A: got %v (line %v), want (85,0) without line", an.Pos, an.HasLine)
	}

	p.AlignTips = true
	an = layout.TipAnchor(&a, p)
	if !near(an.Pos, shape.Pt(105, 0)) || !an.HasLine {
		t.Errorf("aligned tip A: got %v (line %v), want (105,0) with line", an.Pos, an.HasLine)
	}
	b := s.Edges[2]
	if an := layout.TipAnchor(&b, p); an.HasLine {
		t.Errorf("aligned tip B: should not have an alignment line")
	}
}

func TestScaleLength(t *testing.T) {
	tests := map[float64]float64{
		5:     1.2,
		100:   20,
		1000:  200,
		47:    10,
		0.2:   0.05,
		0:     0,
		2.005: 0.5,
	}
	for h, want := range tests {
		if got := layout.ScaleLength(h); math.Abs(got-want) > eps {
			t.Errorf("scale length for %.3f: got %.6f, want %.6f", h, got, want)
		}
	}
}

func TestTreeRect(t *testing.T) {
	canvas := shape.R(0, 0, 400, 300)
	r := layout.TreeRect(canvas, layout.Phylogram, 50, 20, true)
	want := shape.R(30, 10, 340, 260)
	if r != want {
		t.Errorf("phylogram: got %v, want %v", r, want)
	}

	r = layout.TreeRect(canvas, layout.Fan, 20, 0, false)
	if r.Dx() != r.Dy() || r.Dx() != 240 {
		t.Errorf("fan: got %v x %v, want 240 x 240", r.Dx(), r.Dy())
	}
}
