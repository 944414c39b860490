// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"cmp"
	"fmt"
	"slices"
)

// CanRoot returns true if the tree can be rerooted
// on the branch above the indicated node.
// It is false for the current root,
// and for the children of a binary root
// (as rerooting there will be a no-op).
func (t *Tree) CanRoot(id ID) bool {
	n := t.node(id)
	if n == nil || id == t.root {
		return false
	}
	if n.parent == t.root && len(t.node(t.root).children) == 2 {
		return false
	}
	return true
}

// Reroot places the root of the tree
// at the midpoint of the branch above the indicated node.
// The parent links on the path from the node
// to the old root are reversed,
// and if the old root is left with a single child,
// it is removed.
// It returns the ID of the new root.
func (t *Tree) Reroot(id ID) (ID, error) {
	if !t.CanRoot(id) {
		return Nil, fmt.Errorf("node %v: %w", id, ErrCannotRoot)
	}
	n := t.node(id)
	oldRoot := t.root

	r := t.newNode("")
	half := n.length / 2
	hasLen := n.hasLen

	p := t.node(n.parent)
	p.children = removeID(p.children, n.id)
	n.parent = r.id
	n.length = half
	r.children = append(r.children, n.id, p.id)

	// reverse the path to the old root
	prev := r
	prevLen, prevHas := half, hasLen
	for cur := p; cur != nil; {
		next := t.node(cur.parent)
		curLen, curHas := cur.length, cur.hasLen

		cur.parent = prev.id
		cur.length, cur.hasLen = prevLen, prevHas
		if next != nil {
			next.children = removeID(next.children, cur.id)
			cur.children = append(cur.children, next.id)
		}

		prevLen, prevHas = curLen, curHas
		prev = cur
		cur = next
	}

	t.root = r.id
	t.unrooted = false
	t.collapse(oldRoot)
	t.facts = nil
	return r.id, nil
}

// collapse removes a node with a single child,
// joining its branch with the branch of its child,
// or removes an unnamed node without children.
func (t *Tree) collapse(id ID) {
	n := t.node(id)
	if n == nil || n.parent == Nil {
		return
	}
	p := t.node(n.parent)
	switch len(n.children) {
	case 0:
		p.children = removeID(p.children, id)
	case 1:
		c := t.node(n.children[0])
		c.parent = p.id
		c.length += n.length
		c.hasLen = c.hasLen || n.hasLen
		i := slices.Index(p.children, id)
		p.children[i] = c.id
	default:
		return
	}
	t.nodes[id.index()-1] = nil
}

// Unroot removes a binary root.
// One of the children of the root
// (the first internal node,
// or the first child if both are terminals)
// becomes the new root,
// and the other child becomes a child of the new root
// with a branch length that is the sum of both branches.
// It returns the ID of the new root.
func (t *Tree) Unroot() (ID, error) {
	root := t.node(t.root)
	if root == nil || t.unrooted || len(root.children) != 2 {
		return Nil, ErrCannotUnroot
	}

	promoted := t.node(root.children[0])
	other := t.node(root.children[1])
	if len(promoted.children) == 0 && len(other.children) > 0 {
		promoted, other = other, promoted
	}

	other.parent = promoted.id
	other.length += promoted.length
	other.hasLen = other.hasLen || promoted.hasLen
	promoted.children = append(promoted.children, other.id)

	promoted.parent = Nil
	promoted.length = 0
	promoted.hasLen = false

	t.nodes[root.id.index()-1] = nil
	t.root = promoted.id
	t.unrooted = true
	t.facts = nil
	return promoted.id, nil
}

// Sort reorders the children of each node
// by the number of descendant terminals.
// In ascending order ties are broken by insertion order,
// the descending order is the exact reverse of the ascending order.
func (t *Tree) Sort(descending bool) {
	counts := t.tipCounts()
	for _, n := range t.nodes {
		if n == nil || len(n.children) < 2 {
			continue
		}
		slices.SortFunc(n.children, func(a, b ID) int {
			if c := cmp.Compare(counts[a.index()], counts[b.index()]); c != 0 {
				return c
			}
			return cmp.Compare(t.node(a).seq, t.node(b).seq)
		})
		if descending {
			slices.Reverse(n.children)
		}
	}
}

func removeID(ids []ID, id ID) []ID {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}
