// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package edge converts a tree into a flat sequence of edges
// with normalized coordinates.
//
// Each edge is the branch between a node and its parent,
// and edges are stored in pre-order,
// following the order of the children of each node.
// The horizontal coordinates (X0, X1)
// are the fraction of the tree height
// at the parent and child ends of the edge,
// and the vertical coordinate (Y)
// is the fraction of the tree span
// in which the node is drawn.
package edge

import (
	"github.com/js-arias/phyview/tree"
)

// DefaultChunks is the default number of chunks.
const DefaultChunks = 8

// An Edge is the drawable branch of a node.
type Edge struct {
	Node   tree.ID
	Parent tree.ID // Nil for the root stub
	IsTip  bool
	Label  string

	// Raw branch length,
	// HasLen is false if the length is undefined.
	Len    float64
	HasLen bool

	// NormLen is the branch length
	// divided by the tree height
	// (zero if the tree has no branch lengths).
	NormLen float64

	X0, X1 float64
	Y      float64

	// Y of the previous sibling,
	// HasYParent is false for the first child.
	YParent    float64
	HasYParent bool

	// Position in the chunked layout.
	Chunk, Index int

	// Index of the parent edge in the edge sequence,
	// -1 if the parent is the root without a stub.
	ParentEdge int

	// Sibling is the index of the node
	// among the children of its parent.
	Sibling int

	// Tip is the index of the terminal in drawing order,
	// -1 for internal nodes.
	Tip int

	// Depth is the number of edges from the root.
	Depth int
}

// Options are the options used to flatten a tree.
type Options struct {
	// If set, an edge for the root is added.
	RootStub bool

	// Number of chunks,
	// if zero, DefaultChunks is used.
	Chunks int
}

// A Set is the flattened sequence of edges of a tree.
type Set struct {
	Edges  []Edge
	Chunks [][]Edge

	// Edge index of each terminal,
	// in drawing order.
	Tips []int

	// Index of the root stub,
	// or -1 if there is no stub.
	Root int

	// Y of the root node.
	RootY float64

	// Tree height used for normalization,
	// zero if the tree has no branch lengths.
	Height float64

	// MaxDepth is the maximum number of edges
	// from the root to a terminal.
	MaxDepth int

	starts []int
	byNode map[tree.ID]int
}

// Flatten returns the edges of a tree.
func Flatten(t *tree.Tree, opts Options) *Set {
	height := t.Height()
	maxDepth := t.MaxDepth()
	tips := t.TipCount()

	s := &Set{
		Edges:    make([]Edge, 0, t.NodeCount()),
		Root:     -1,
		Height:   height,
		MaxDepth: maxDepth,
		byNode:   make(map[tree.ID]int, t.NodeCount()),
	}
	if t.Root() == tree.Nil {
		s.chunk(opts.Chunks)
		return s
	}

	norm := func(id tree.ID) float64 {
		if height > 0 {
			return t.EffLen(id) / height
		}
		if maxDepth > 0 {
			return 1 / float64(maxDepth)
		}
		return 0
	}

	// pre-order traversal
	type item struct {
		id      tree.ID
		parent  int // parent edge, -1 if none
		x0      float64
		depth   int
		sibling int
	}
	// a tree of a single node is drawn as its root stub
	single := t.NodeCount() == 1
	if single {
		opts.RootStub = true
	}
	rootEdge := -1
	if opts.RootStub {
		rootEdge = 0
	}
	var stack []item
	root := t.Root()
	if opts.RootStub {
		stack = append(stack, item{id: root, parent: -1})
	} else {
		children := t.Children(root)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{id: children[i], parent: -1, depth: 1, sibling: i})
		}
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		e := Edge{
			Node:       it.id,
			Parent:     t.Parent(it.id),
			IsTip:      t.IsTip(it.id),
			Label:      t.Label(it.id),
			X0:         it.x0,
			X1:         it.x0,
			ParentEdge: it.parent,
			Sibling:    it.sibling,
			Tip:        -1,
			Depth:      it.depth,
		}
		if single {
			e.Len, e.HasLen = t.Len(it.id)
			e.X1 = 1
		}
		if e.Parent != tree.Nil {
			e.Len, e.HasLen = t.Len(it.id)
			e.NormLen = norm(it.id)
			e.X1 = it.x0 + e.NormLen
			if e.X1 > 1 {
				e.X1 = 1
			}
		}
		if e.IsTip {
			e.Tip = len(s.Tips)
			s.Tips = append(s.Tips, len(s.Edges))
		}
		idx := len(s.Edges)
		s.byNode[it.id] = idx
		s.Edges = append(s.Edges, e)

		children := t.Children(it.id)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, item{
				id:      children[i],
				parent:  idx,
				x0:      e.X1,
				depth:   it.depth + 1,
				sibling: i,
			})
		}
	}
	s.Root = rootEdge

	// vertical positions
	if tips == 1 {
		for _, i := range s.Tips {
			s.Edges[i].Y = 0.5
		}
	} else {
		for i, ei := range s.Tips {
			s.Edges[ei].Y = float64(i) / float64(tips-1)
		}
	}
	// in reverse pre-order the children of a node
	// are always set before the node itself
	for i := len(s.Edges) - 1; i >= 0; i-- {
		e := &s.Edges[i]
		if !e.IsTip {
			e.Y = s.meanY(t.Children(e.Node))
		}
	}
	s.RootY = 0.5
	if children := t.Children(root); len(children) > 0 {
		s.RootY = s.meanY(children)
	}
	if rootEdge >= 0 {
		s.Edges[rootEdge].Y = s.RootY
	}

	// joints
	for i := range s.Edges {
		e := &s.Edges[i]
		if e.Sibling == 0 || e.Parent == tree.Nil {
			continue
		}
		prev := t.Children(e.Parent)[e.Sibling-1]
		e.YParent = s.Edges[s.byNode[prev]].Y
		e.HasYParent = true
	}

	s.chunk(opts.Chunks)
	return s
}

// meanY returns the mean of the vertical positions
// of the first and last nodes.
func (s *Set) meanY(ids []tree.ID) float64 {
	first := s.Edges[s.byNode[ids[0]]].Y
	last := s.Edges[s.byNode[ids[len(ids)-1]]].Y
	return (first + last) / 2
}

// chunk partitions the edges into k contiguous chunks.
func (s *Set) chunk(k int) {
	bounds := Chunk(len(s.Edges), k)
	s.Chunks = make([][]Edge, 0, len(bounds)-1)
	s.starts = bounds[:len(bounds)-1]
	for c := 0; c+1 < len(bounds); c++ {
		for i := bounds[c]; i < bounds[c+1]; i++ {
			s.Edges[i].Chunk = c
			s.Edges[i].Index = i - bounds[c]
		}
		s.Chunks = append(s.Chunks, s.Edges[bounds[c]:bounds[c+1]])
	}
}

// Chunk returns the boundaries of k contiguous chunks
// of a sequence of n elements.
// The returned slice has the starting index of each chunk
// plus a final n.
// All chunks have the same size,
// except the last one that takes the remainder.
// If k is less than one,
// DefaultChunks is used,
// and if n is less than k,
// n chunks are used.
func Chunk(n, k int) []int {
	if k < 1 {
		k = DefaultChunks
	}
	if n < k {
		k = n
	}
	if k == 0 {
		return []int{0}
	}
	size := n / k
	bounds := make([]int, 0, k+1)
	for c := 0; c < k; c++ {
		bounds = append(bounds, c*size)
	}
	return append(bounds, n)
}

// Len returns the number of edges.
func (s *Set) Len() int {
	return len(s.Edges)
}

// TipCount returns the number of terminals.
func (s *Set) TipCount() int {
	return len(s.Tips)
}

// Index returns the edge index of a node,
// and false if the node has no edge.
func (s *Set) Index(id tree.ID) (int, bool) {
	i, ok := s.byNode[id]
	return i, ok
}

// Edge returns the edge of a node.
func (s *Set) Edge(id tree.ID) (Edge, bool) {
	i, ok := s.byNode[id]
	if !ok {
		return Edge{}, false
	}
	return s.Edges[i], true
}

// Pos returns the index in the edge sequence
// of an edge at a given chunk and index.
func (s *Set) Pos(chunk, idx int) int {
	return s.starts[chunk] + idx
}

// Start returns the index in the edge sequence
// of the first edge of a chunk.
func (s *Set) Start(chunk int) int {
	return s.starts[chunk]
}
