// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/timetree"
)

// MillionYears is the default scale
// used to convert between branch lengths
// and ages of a time-calibrated tree.
const MillionYears = 1_000_000

// FromTimeTree returns a tree from a time-calibrated tree.
// Branch lengths are the age differences
// between each node and its parent,
// divided by scale.
func FromTimeTree(tt *timetree.Tree, scale float64) *Tree {
	if scale <= 0 {
		scale = MillionYears
	}
	t := New(tt.Name())

	type pair struct {
		src    int
		parent ID
	}
	stack := []pair{{src: tt.Root(), parent: Nil}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		id, _ := t.Add(p.parent, tt.Taxon(p.src))
		if p.parent != Nil {
			pa := tt.Parent(p.src)
			t.SetLen(id, float64(tt.Age(pa)-tt.Age(p.src))/scale)
		}

		children := tt.Children(p.src)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pair{src: children[i], parent: id})
		}
	}
	return t
}

// TimeTree returns a time-calibrated version of the tree,
// using the tree height as the age of the root.
// Ages are multiplied by scale.
func (t *Tree) TimeTree(name string, scale float64) (*timetree.Tree, error) {
	if !t.HasBranchLengths() {
		return nil, errors.New("tree without branch lengths")
	}
	if scale <= 0 {
		scale = MillionYears
	}
	if name == "" {
		name = t.name
	}

	h := t.Height()
	age := func(d float64) int64 {
		return int64(math.Round((h - d) * scale))
	}

	tt := timetree.New(name, age(0))
	ids := map[ID]int{t.root: 0}
	dist := map[ID]float64{t.root: 0}
	for _, id := range t.Nodes() {
		if id == t.root {
			continue
		}
		p := t.Parent(id)
		d := dist[p] + t.EffLen(id)
		dist[id] = d

		var tax string
		if t.IsTip(id) {
			tax = t.Label(id)
		}
		nid, err := tt.Add(ids[p], age(d), tax)
		if err != nil {
			return nil, fmt.Errorf("node %v: %v", id, err)
		}
		ids[id] = nid
	}
	return tt, nil
}
