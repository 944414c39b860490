// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package render builds the drawing layers of a tree view.
//
// Each layer is a frame of drawing primitives
// retained in the cache of the tree state
// until a change invalidates it.
// Edge paths and node data are built in parallel
// over contiguous parts of the visible edges.
package render

import (
	"context"
	"image/color"
	"math"
	"strconv"

	"github.com/js-arias/phyview/cache"
	"github.com/js-arias/phyview/cull"
	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
)

// A Request is the description of a view to render.
type Request struct {
	Params layout.Params

	// Whole canvas,
	// and its visible part.
	Canvas  shape.Rect
	Visible shape.Rect

	Hover     tree.ID
	Cursor    shape.Point
	HasCursor bool

	// If set,
	// all edges and labels are drawn
	// without label limits,
	// and overlays are not drawn.
	Export bool
}

// A Renderer builds the layers of a tree view.
type Renderer struct {
	pool *Pool
	caps cull.Caps
}

// New returns a new renderer.
func New(pool *Pool, caps cull.Caps) *Renderer {
	if pool == nil {
		pool = NewPool(DefaultThreads)
	}
	return &Renderer{
		pool: pool,
		caps: caps,
	}
}

// Pool returns the working pool of the renderer.
func (r *Renderer) Pool() *Pool {
	return r.pool
}

// Visible returns the edges that intersect a rectangle of the canvas.
func (r *Renderer) Visible(st *treestate.State, p layout.Params, view shape.Rect, style Style) cull.Result {
	s := st.Edges()
	if p.Projection == layout.Fan {
		return cull.Fan(s, p, r.caps, style.TipSize)
	}
	return cull.Phylogram(s, p, view, r.caps, style.TipSize)
}

// extend returns the visible rectangle
// extended by its own height at each side.
func extend(view shape.Rect) shape.Rect {
	h := view.Dy()
	return shape.Rect{
		Min: shape.Pt(view.Min.X, view.Min.Y-h),
		Max: shape.Pt(view.Max.X, view.Max.Y+h),
	}
}

// Frames returns the frames of all layers in drawing order.
// Layers found in the store are reused,
// other layers are built and stored.
func (r *Renderer) Frames(ctx context.Context, st *treestate.State, store *cache.Store, req Request, style Style) ([]*shape.Frame, error) {
	s := st.Edges()
	p := req.Params

	var ext, vis cull.Result
	switch {
	case req.Export:
		caps := cull.Caps{Tips: math.MaxInt, Nodes: math.MaxInt}
		ext = cull.Fan(s, p, caps, 0)
		vis = ext
	case p.Projection == layout.Fan:
		ext = r.Visible(st, p, req.Visible, style)
		vis = ext
	default:
		ext = r.Visible(st, p, extend(req.Visible), style)
		vis = r.Visible(st, p, req.Visible, style)
	}

	var extNodes, visNodes []NodeData
	nodes := func(res cull.Result, cached *[]NodeData) ([]NodeData, error) {
		if *cached != nil {
			return *cached, nil
		}
		nd, err := Nodes(ctx, r.pool, s, res.Edges(s), p)
		if err != nil {
			return nil, err
		}
		*cached = nd
		return nd, nil
	}

	frames := make([]*shape.Frame, 0, len(cache.Layers()))
	for _, l := range cache.Layers() {
		if f, ok := store.Get(l); ok {
			frames = append(frames, f)
			continue
		}

		var f *shape.Frame
		var err error
		switch l {
		case cache.Bounds:
			f = r.bounds(req)
		case cache.Edges:
			f, err = r.edges(ctx, s, ext.Edges(s), p, style)
			store.SetCoverage(ext.TipLo, ext.TipHi, ext.Full)
		case cache.TipLabels:
			f = &shape.Frame{}
			if style.TipLabels && ext.TipLabels {
				var nd []NodeData
				if nd, err = nodes(ext, &extNodes); err == nil {
					f = tipLabels(nd, style)
				}
			}
		case cache.InternalLabels:
			f = &shape.Frame{}
			if style.InternalLabels && ext.NodeLabels {
				var nd []NodeData
				if nd, err = nodes(ext, &extNodes); err == nil {
					f = internalLabels(nd, style)
				}
			}
		case cache.BranchLabels:
			f = &shape.Frame{}
			if style.BranchLabels && ext.NodeLabels {
				var nd []NodeData
				if nd, err = nodes(ext, &extNodes); err == nil {
					f = branchLabels(nd, style)
				}
			}
		case cache.Found:
			f = &shape.Frame{}
			if !req.Export {
				var nd []NodeData
				if nd, err = nodes(vis, &visNodes); err == nil {
					f = found(st, nd, style)
				}
			}
		case cache.Selected:
			f = &shape.Frame{}
			if !req.Export {
				var nd []NodeData
				if nd, err = nodes(vis, &visNodes); err == nil {
					f = selected(st, nd, style)
				}
			}
		case cache.Hovered:
			f = &shape.Frame{}
			if !req.Export && req.Hover != tree.Nil {
				var nd []NodeData
				if nd, err = nodes(vis, &visNodes); err == nil {
					f = hovered(req.Hover, nd, style)
				}
			}
		case cache.CursorLine:
			f = &shape.Frame{}
			if !req.Export && req.HasCursor {
				f = cursorLine(req.Cursor, p, style)
			}
		case cache.Legend:
			f = &shape.Frame{}
			if style.Legend {
				f = legend(s.Height, p, style)
			}
		}
		if err != nil {
			return nil, err
		}
		store.Put(l, f)
		frames = append(frames, f)
	}
	return frames, nil
}

func (r *Renderer) bounds(req Request) *shape.Frame {
	var p shape.Path
	c := req.Canvas
	p.Move(c.Min)
	p.Line(shape.Pt(c.Max.X, c.Min.Y))
	p.Line(c.Max)
	p.Line(shape.Pt(c.Min.X, c.Max.Y))
	p.ClosePath()
	return &shape.Frame{
		Shapes: []shape.Shape{{
			Path:   p,
			Stroke: shape.Stroke{Color: color.White},
			Fill:   color.White,
		}},
	}
}

// edges builds the paths of the edges.
// Without a gradient,
// each part of the edges is a single path.
func (r *Renderer) edges(ctx context.Context, s *edge.Set, idx []int, p layout.Params, style Style) (*shape.Frame, error) {
	stroke := shape.Stroke{Width: style.LineWidth, Color: style.Color}
	parts, err := Map(ctx, r.pool, len(idx), func(start, end int) []shape.Shape {
		if style.Gradient == nil {
			var path shape.Path
			for _, i := range idx[start:end] {
				e := &s.Edges[i]
				if e.Parent == tree.Nil {
					continue
				}
				layout.Edge(e, p).Append(&path)
			}
			return []shape.Shape{{Path: path, Stroke: stroke}}
		}

		shapes := make([]shape.Shape, 0, end-start)
		for _, i := range idx[start:end] {
			e := &s.Edges[i]
			if e.Parent == tree.Nil {
				continue
			}
			st := stroke
			st.Color = style.Gradient.Gradient(e.X1)
			shapes = append(shapes, shape.Shape{
				Path:   layout.Edge(e, p).Path(),
				Stroke: st,
			})
		}
		return shapes
	})
	if err != nil {
		return nil, err
	}

	f := &shape.Frame{}
	for _, sh := range parts {
		for _, x := range sh {
			f.Add(x.Path, x.Stroke)
		}
	}

	if s.Root >= 0 && p.DrawRoot {
		root := &s.Edges[s.Root]
		st := stroke
		if !root.IsTip {
			st.Dash = []float64{4, 2}
		}
		f.Add(layout.RootStub(root, p).Path(), st)
	}
	return f, nil
}

func tipLabels(nodes []NodeData, style Style) *shape.Frame {
	f := &shape.Frame{}
	dash := shape.Stroke{
		Width: style.LineWidth / 2,
		Color: style.CursorColor,
		Dash:  []float64{2, 2},
	}
	for _, n := range nodes {
		if !n.IsTip || n.Label == "" {
			continue
		}
		c := style.Color
		if kc, ok := style.Keys.Color(n.Label); ok {
			c = kc
		}
		f.AddText(shape.Text{
			Text:  n.Label,
			Pos:   n.Tip.Pos,
			Size:  style.TipSize,
			Color: c,
			Align: n.Tip.Align,
			Angle: n.Tip.Angle,
		})
		if n.Tip.HasLine {
			var p shape.Path
			p.Move(n.Tip.LineFrom)
			p.Line(n.Tip.LineTo)
			f.Add(p, dash)
		}
	}
	return f
}

func internalLabels(nodes []NodeData, style Style) *shape.Frame {
	f := &shape.Frame{}
	for _, n := range nodes {
		if n.IsTip || n.Label == "" {
			continue
		}
		f.AddText(shape.Text{
			Text:  n.Label,
			Pos:   n.Internal.Pos,
			Size:  style.InternalSize,
			Color: style.Color,
			Align: n.Internal.Align,
			Angle: n.Internal.Angle,
		})
	}
	return f
}

func branchLabels(nodes []NodeData, style Style) *shape.Frame {
	f := &shape.Frame{}
	for _, n := range nodes {
		if !n.HasLen {
			continue
		}
		f.AddText(shape.Text{
			Text:  strconv.FormatFloat(n.Len, 'g', 4, 64),
			Pos:   n.Branch.Pos,
			Size:  style.BranchSize,
			Color: style.Color,
			Align: n.Branch.Align,
			Angle: n.Branch.Angle,
		})
	}
	return f
}

func marker(f *shape.Frame, pt shape.Point, r float64, c color.Color) {
	var p shape.Path
	p.Circle(pt, r)
	f.Shapes = append(f.Shapes, shape.Shape{
		Path:   p,
		Stroke: shape.Stroke{Width: 1, Color: c},
		Fill:   c,
	})
}

func found(st *treestate.State, nodes []NodeData, style Style) *shape.Frame {
	f := &shape.Frame{}
	if len(st.Hits()) == 0 {
		return f
	}
	cur, _ := st.Current()
	for _, n := range nodes {
		if !st.IsHit(n.Node) {
			continue
		}
		r := style.Marker
		if n.Node == cur {
			r *= 1.5
		}
		marker(f, n.Point, r, style.FoundColor)
	}
	return f
}

func selected(st *treestate.State, nodes []NodeData, style Style) *shape.Frame {
	f := &shape.Frame{}
	for _, n := range nodes {
		if st.IsSelected(n.Node) {
			marker(f, n.Point, style.Marker, style.SelectColor)
		}
	}
	return f
}

func hovered(id tree.ID, nodes []NodeData, style Style) *shape.Frame {
	f := &shape.Frame{}
	for _, n := range nodes {
		if n.Node != id {
			continue
		}
		var p shape.Path
		p.Circle(n.Point, style.Marker*1.5)
		f.Add(p, shape.Stroke{Width: style.LineWidth, Color: style.HoverColor})
		break
	}
	return f
}

// cursorLine draws the line that tracks the cursor:
// a vertical line in a phylogram,
// or a circle in a fan.
func cursorLine(pt shape.Point, p layout.Params, style Style) *shape.Frame {
	f := &shape.Frame{}
	stroke := shape.Stroke{
		Width: style.LineWidth / 2,
		Color: style.CursorColor,
		Dash:  []float64{3, 3},
	}
	var path shape.Path
	if p.Projection == layout.Fan {
		r := pt.Dist(p.Center())
		if r > p.Radius() {
			return f
		}
		path.Circle(p.Center(), r)
		f.Add(path, stroke)
		return f
	}
	if pt.X < p.Rect.Min.X || pt.X > p.Rect.Max.X {
		return f
	}
	path.Move(shape.Pt(pt.X, p.Rect.Min.Y))
	path.Line(shape.Pt(pt.X, p.Rect.Max.Y))
	f.Add(path, stroke)
	return f
}

func legend(height float64, p layout.Params, style Style) *shape.Frame {
	f := &shape.Frame{}
	from, to, length, ok := layout.ScaleBar(height, p)
	if !ok {
		return f
	}
	var path shape.Path
	path.Move(from)
	path.Line(to)
	f.Add(path, shape.Stroke{Width: style.LineWidth * 2, Color: style.Color})
	f.AddText(shape.Text{
		Text:  strconv.FormatFloat(length, 'g', -1, 64),
		Pos:   shape.Pt((from.X+to.X)/2, from.Y+style.BranchSize+2),
		Size:  style.BranchSize,
		Color: style.Color,
		Align: shape.Center,
	})
	return f
}
