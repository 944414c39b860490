// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cull selects the edges and labels
// that must be drawn in the visible part of a canvas.
package cull

import (
	"math"
	"slices"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/shape"
)

// Default label limits.
const (
	DefaultTipLabels  = 1000
	DefaultNodeLabels = 2000
)

// Margin is the number of extra terminals
// added at each side of the visible range.
const Margin = 3

// Caps are the maximum number of labels
// drawn at the same time.
type Caps struct {
	Tips  int
	Nodes int
}

// DefaultCaps returns the default label limits.
func DefaultCaps() Caps {
	return Caps{
		Tips:  DefaultTipLabels,
		Nodes: DefaultNodeLabels,
	}
}

// A Range is a contiguous range of edges
// in the chunked edge layout.
// The range includes both ends.
type Range struct {
	StartChunk, StartIndex int
	EndChunk, EndIndex     int
	empty                  bool
}

// Bounds returns the indices in the edge sequence
// of the first and last edges of the range.
func (r Range) Bounds(s *edge.Set) (lo, hi int) {
	if r.empty {
		return 0, -1
	}
	return s.Pos(r.StartChunk, r.StartIndex), s.Pos(r.EndChunk, r.EndIndex)
}

// Empty returns true if the range has no edges.
func (r Range) Empty() bool {
	return r.empty
}

// Result is the set of edges to draw.
type Result struct {
	Range Range

	// Edges outside the range
	// that cross the visible band.
	Extra []int

	// Range of visible terminals.
	TipLo, TipHi int

	// Full is true if all edges are visible.
	Full bool

	// If false,
	// there are too many labels of the class,
	// and none is drawn.
	TipLabels  bool
	NodeLabels bool
}

// Edges returns the indices of the edges to draw,
// in drawing order.
func (r Result) Edges(s *edge.Set) []int {
	lo, hi := r.Range.Bounds(s)
	n := len(r.Extra)
	if hi >= lo {
		n += hi - lo + 1
	}
	idx := make([]int, 0, n)
	ex := 0
	for i := lo; i <= hi; i++ {
		for ex < len(r.Extra) && r.Extra[ex] < i {
			idx = append(idx, r.Extra[ex])
			ex++
		}
		idx = append(idx, i)
	}
	return append(idx, r.Extra[ex:]...)
}

func fullRange(s *edge.Set) Range {
	if s.Len() == 0 {
		return Range{empty: true}
	}
	last := s.Edges[s.Len()-1]
	return Range{
		EndChunk: last.Chunk,
		EndIndex: last.Index,
	}
}

// NodeSize returns the vertical distance
// between two consecutive terminals in a phylogram.
func NodeSize(s *edge.Set, p layout.Params) float64 {
	n := s.TipCount()
	if n < 2 {
		return p.Rect.Dy()
	}
	return p.Rect.Dy() / float64(n-1)
}

// Phylogram returns the edges of a phylogram
// that are inside or near the visible part of the canvas.
// The label size is used to check
// if tip labels would collide.
func Phylogram(s *edge.Set, p layout.Params, view shape.Rect, caps Caps, labelSize float64) Result {
	n := s.TipCount()
	if n == 0 {
		return Result{Range: Range{empty: true}}
	}

	ns := NodeSize(s, p)
	lo, hi := 0, n-1
	if ns > 0 {
		y0 := view.Min.Y - p.Rect.Min.Y
		y1 := view.Max.Y - p.Rect.Min.Y
		lo = int(math.Floor(y0/ns)) - Margin
		hi = int(math.Ceil(y1/ns)) + Margin
	}
	lo = max(lo, 0)
	hi = min(hi, n-1)
	if lo > hi {
		// the band is outside the tree
		lo = hi
		if lo < 0 {
			lo, hi = 0, 0
		}
	}

	r := Result{
		TipLo: lo,
		TipHi: hi,
		Full:  lo == 0 && hi == n-1,
	}
	first := s.Tips[lo]
	last := s.Tips[hi]

	start := first
	if r.Full {
		start = 0
		last = s.Len() - 1
	}

	r.Range = Range{
		StartChunk: s.Edges[start].Chunk,
		StartIndex: s.Edges[start].Index,
		EndChunk:   s.Edges[last].Chunk,
		EndIndex:   s.Edges[last].Index,
	}
	if !r.Full {
		r.Extra = bridging(s, start, last)
	}

	tips := hi - lo + 1
	r.TipLabels = tips <= caps.Tips && ns >= labelSize
	r.NodeLabels = countInternal(s, r) <= caps.Nodes
	return r
}

// bridging returns the edges outside a range
// that can cross the band of the range:
// the ancestors of the first edge of the range,
// and the next siblings of the last edge
// and its ancestors.
func bridging(s *edge.Set, start, last int) []int {
	var extra []int
	for pe := s.Edges[start].ParentEdge; pe >= 0; pe = s.Edges[pe].ParentEdge {
		extra = append(extra, pe)
	}

	// next siblings are found after the range
	// as the first edge with the same parent
	// and the next sibling index.
	chain := make(map[int]int)
	for e := last; e >= 0; e = s.Edges[e].ParentEdge {
		chain[s.Edges[e].ParentEdge] = s.Edges[e].Sibling + 1
	}
	for i := last + 1; i < s.Len() && len(chain) > 0; i++ {
		e := s.Edges[i]
		sib, ok := chain[e.ParentEdge]
		if !ok || e.Sibling != sib {
			continue
		}
		extra = append(extra, i)
		delete(chain, e.ParentEdge)
	}

	slices.Sort(extra)
	return slices.Compact(extra)
}

func countInternal(s *edge.Set, r Result) int {
	lo, hi := r.Range.Bounds(s)
	count := 0
	for i := lo; i <= hi; i++ {
		if !s.Edges[i].IsTip {
			count++
		}
	}
	for _, i := range r.Extra {
		if !s.Edges[i].IsTip {
			count++
		}
	}
	return count
}

// Fan returns the edges of a fan.
// All edges are considered visible,
// so only the label limits are checked.
func Fan(s *edge.Set, p layout.Params, caps Caps, labelSize float64) Result {
	n := s.TipCount()
	r := Result{
		Range: fullRange(s),
		TipLo: 0,
		TipHi: n - 1,
		Full:  true,
	}

	// arc length between two terminals
	// at the rim of the fan
	spacing := math.Inf(1)
	if n > 1 {
		open := p.Theta(1) - p.Theta(0)
		spacing = p.Radius() * open / float64(n-1)
	}
	r.TipLabels = n <= caps.Tips && spacing >= labelSize
	r.NodeLabels = s.Len()-n <= caps.Nodes
	return r
}
