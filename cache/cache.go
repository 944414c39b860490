// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cache implements the retained drawing layers of a tree view
// and the table that indicates which layers
// must be rebuilt after a change.
package cache

import (
	"strings"

	"github.com/js-arias/phyview/shape"
)

// Layer is a retained drawing layer.
type Layer int

// Drawing layers,
// in drawing order.
const (
	Bounds Layer = iota
	Edges
	TipLabels
	InternalLabels
	BranchLabels
	Found
	Selected
	Hovered
	CursorLine
	Legend

	numLayers
)

var layerNames = [numLayers]string{
	Bounds:         "bounds",
	Edges:          "edges",
	TipLabels:      "tip-labels",
	InternalLabels: "internal-labels",
	BranchLabels:   "branch-labels",
	Found:          "found",
	Selected:       "selected",
	Hovered:        "hovered",
	CursorLine:     "cursor-line",
	Legend:         "legend",
}

func (l Layer) String() string {
	if l < 0 || l >= numLayers {
		return "unknown"
	}
	return layerNames[l]
}

// Layers returns all layers in drawing order.
func Layers() []Layer {
	ls := make([]Layer, 0, numLayers)
	for l := Bounds; l < numLayers; l++ {
		ls = append(ls, l)
	}
	return ls
}

// A Mask is a set of layers.
type Mask uint16

// Of returns a mask with the indicated layers.
func Of(ls ...Layer) Mask {
	var m Mask
	for _, l := range ls {
		m |= 1 << l
	}
	return m
}

// Has returns true if the layer is in the mask.
func (m Mask) Has(l Layer) bool {
	return m&(1<<l) != 0
}

func (m Mask) String() string {
	var names []string
	for l := Bounds; l < numLayers; l++ {
		if m.Has(l) {
			names = append(names, l.String())
		}
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Common layer sets.
var (
	Labels   = Of(TipLabels, InternalLabels, BranchLabels)
	Overlays = Of(Found, Selected, Hovered, CursorLine)
	All      = Mask(1<<numLayers - 1)
)

// Change is a kind of change in the state of a view.
type Change int

// Valid changes.
const (
	// A new tree is loaded.
	Load Change = iota

	// The ordering of the nodes is changed.
	Ordering

	// The tree is rerooted or unrooted.
	Reroot

	// The projection is changed
	// (phylogram or fan).
	Projection

	// The canvas size or zoom is changed.
	CanvasSize

	// The open or rotation angle is changed.
	Angle

	// The root length or root visibility is changed.
	RootStyle

	// The size or visibility of tip labels is changed.
	TipLabelStyle

	// The size or visibility of internal labels is changed.
	InternalLabelStyle

	// The size or visibility of branch labels is changed.
	BranchLabelStyle

	// The legend visibility is changed.
	LegendStyle

	// The set of selected nodes is changed.
	Selection

	// The hovered node or cursor position is changed.
	Hover

	// The search results are changed.
	Search

	// The viewport is scrolled
	// inside the area covered by the cached layers.
	Scroll

	// The viewport is scrolled
	// outside the area covered by the cached layers.
	ScrollOutside
)

var changeNames = map[Change]string{
	Load:               "load",
	Ordering:           "ordering",
	Reroot:             "reroot",
	Projection:         "projection",
	CanvasSize:         "canvas-size",
	Angle:              "angle",
	RootStyle:          "root-style",
	TipLabelStyle:      "tip-label-style",
	InternalLabelStyle: "internal-label-style",
	BranchLabelStyle:   "branch-label-style",
	LegendStyle:        "legend-style",
	Selection:          "selection",
	Hover:              "hover",
	Search:             "search",
	Scroll:             "scroll",
	ScrollOutside:      "scroll-outside",
}

func (c Change) String() string {
	if n, ok := changeNames[c]; ok {
		return n
	}
	return "unknown"
}

// Clears returns the layers
// that must be rebuilt after a change.
func Clears(c Change) Mask {
	switch c {
	case Load:
		return All
	case Ordering, Angle, RootStyle:
		return Of(Edges) | Labels | Overlays
	case Reroot:
		// the height of the tree can change
		return Of(Edges, Legend) | Labels | Overlays
	case Projection, CanvasSize:
		return Of(Bounds, Edges, Legend) | Labels | Overlays
	case TipLabelStyle:
		return Of(TipLabels)
	case InternalLabelStyle:
		return Of(InternalLabels)
	case BranchLabelStyle:
		return Of(BranchLabels)
	case LegendStyle:
		return Of(Legend)
	case Selection:
		return Of(Selected)
	case Hover:
		return Of(Hovered, CursorLine)
	case Search:
		return Of(Found)
	case Scroll:
		return Overlays
	case ScrollOutside:
		return Of(Edges) | Labels | Overlays
	}
	return 0
}

// A Store keeps the frame of each layer.
// A layer without a frame is dirty
// and must be rebuilt before drawing.
type Store struct {
	frames [numLayers]*shape.Frame

	// range of tips covered by the cached layers
	lo, hi int
	full   bool
}

// NewStore returns an empty store
// with all layers dirty.
func NewStore() *Store {
	return &Store{}
}

// Get returns the frame of a layer,
// and false if the layer is dirty.
func (s *Store) Get(l Layer) (*shape.Frame, bool) {
	f := s.frames[l]
	return f, f != nil
}

// Put sets the frame of a layer.
func (s *Store) Put(l Layer, f *shape.Frame) {
	if f == nil {
		f = &shape.Frame{}
	}
	s.frames[l] = f
}

// Apply clears the layers affected by a change.
func (s *Store) Apply(c Change) Mask {
	m := Clears(c)
	s.Clear(m)
	return m
}

// Clear removes the frames of the indicated layers.
func (s *Store) Clear(m Mask) {
	for l := Bounds; l < numLayers; l++ {
		if m.Has(l) {
			s.frames[l] = nil
		}
	}
	if m.Has(Edges) {
		s.lo, s.hi, s.full = 0, 0, false
	}
}

// Dirty returns the layers without a frame.
func (s *Store) Dirty() Mask {
	var m Mask
	for l := Bounds; l < numLayers; l++ {
		if s.frames[l] == nil {
			m |= 1 << l
		}
	}
	return m
}

// SetCoverage sets the range of tips
// drawn in the cached edges layer.
// If full is true,
// the cached layers include all tips.
func (s *Store) SetCoverage(lo, hi int, full bool) {
	s.lo, s.hi, s.full = lo, hi, full
}

// Covers returns true if the cached edges layer
// includes the indicated range of tips.
func (s *Store) Covers(lo, hi int) bool {
	if s.frames[Edges] == nil {
		return false
	}
	if s.full {
		return true
	}
	return lo >= s.lo && hi <= s.hi
}
