// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render

import (
	"context"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
)

// NodeData is the canvas data of a node.
type NodeData struct {
	Edge  int
	Node  tree.ID
	IsTip bool
	Label string

	// Len is the branch length,
	// HasLen is false if the branch has no length.
	Len    float64
	HasLen bool

	// Position of the node.
	Point shape.Point

	// Label anchors.
	Tip      layout.Anchor
	Internal layout.Anchor
	Branch   layout.Anchor
}

// Nodes returns the data of the nodes
// of the indicated edges.
func Nodes(ctx context.Context, pool *Pool, s *edge.Set, idx []int, p layout.Params) ([]NodeData, error) {
	parts, err := Map(ctx, pool, len(idx), func(start, end int) []NodeData {
		nd := make([]NodeData, 0, end-start)
		for _, i := range idx[start:end] {
			e := &s.Edges[i]
			d := NodeData{
				Edge:   i,
				Node:   e.Node,
				IsTip:  e.IsTip,
				Label:  e.Label,
				Len:    e.Len,
				HasLen: e.HasLen,
				Point:  p.Point(e.X1, e.Y),
			}
			if e.IsTip {
				d.Tip = layout.TipAnchor(e, p)
			} else {
				d.Internal = layout.InternalAnchor(e, p)
			}
			if e.Parent != tree.Nil {
				d.Branch = layout.BranchAnchor(e, p)
			}
			nd = append(nd, d)
		}
		return nd
	})
	if err != nil {
		return nil, err
	}
	// equivalent to slices.Concat (Go 1.22+), unavailable in the go 1.21 toolchain
	size := 0
	for _, p := range parts {
		size += len(p)
	}
	var all []NodeData
	if size > 0 {
		all = make([]NodeData, 0, size)
	}
	for _, p := range parts {
		all = append(all, p...)
	}
	return all, nil
}

// Nearest returns the node nearest to a point,
// within a maximum distance.
// It returns false if no node is found.
func Nearest(nodes []NodeData, pt shape.Point, radius float64) (NodeData, bool) {
	best := -1
	bestDist := radius
	for i, n := range nodes {
		d := n.Point.Dist(pt)
		if d <= bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return NodeData{}, false
	}
	return nodes[best], true
}
