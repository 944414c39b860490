// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements a phylogenetic tree
// with optional branch lengths
// that can be rerooted, unrooted, and sorted.
//
// A tree owns its nodes.
// Each node is identified by an opaque ID
// that is stable across rerooting and sorting
// (only the node created by a reroot gets a new ID,
// and only the node removed by an unroot loses its ID).
package tree

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by tree mutations.
var (
	ErrCannotRoot   = errors.New("cannot root on node")
	ErrCannotUnroot = errors.New("tree cannot be unrooted")
	ErrUnknownNode  = errors.New("unknown node")
)

// ID is an opaque node identifier.
// It is made of the generation of the tree
// and the index of the node in the tree.
type ID uint64

// Nil is the zero ID,
// it is never assigned to a node.
const Nil ID = 0

func makeID(gen, idx uint32) ID {
	return ID(uint64(gen)<<32 | uint64(idx))
}

func (id ID) gen() uint32 {
	return uint32(id >> 32)
}

func (id ID) index() int {
	return int(uint32(id))
}

// String returns the ID
// as "generation.index".
func (id ID) String() string {
	if id == Nil {
		return "nil"
	}
	return strconv.FormatUint(uint64(id.gen()), 10) + "." + strconv.Itoa(id.index())
}

// generation counter for new trees.
var generation atomic.Uint32

type node struct {
	id       ID
	name     string
	length   float64
	hasLen   bool
	parent   ID
	children []ID

	// insertion order,
	// used to break ties when sorting
	seq int
}

// A Tree is a rooted representation of a phylogenetic tree.
// A tree with more than two descendants at the root
// (or that results from Unroot)
// is reported as unrooted.
type Tree struct {
	name     string
	gen      uint32
	nodes    []*node
	root     ID
	unrooted bool
	seq      int

	facts *facts
}

// facts are the derived values of a tree.
type facts struct {
	tips         int
	internals    int
	nodes        int
	hasLen       bool
	hasTipLabels bool
	hasIntLabels bool
	height       float64
	maxDepth     int

	// root-to-tip distances, in pre-order
	tipDist []float64
}

// New creates a new empty tree.
func New(name string) *Tree {
	return &Tree{
		name: name,
		gen:  generation.Add(1),
	}
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// SetTreeName sets the name of the tree.
func (t *Tree) SetTreeName(name string) {
	t.name = name
}

// Add adds a new node as the last child of the parent node.
// If parent is Nil,
// the node will be the root of the tree.
func (t *Tree) Add(parent ID, name string) (ID, error) {
	if parent == Nil {
		if t.root != Nil {
			return Nil, errors.New("tree already has a root")
		}
		n := t.newNode(name)
		t.root = n.id
		return n.id, nil
	}

	p := t.node(parent)
	if p == nil {
		return Nil, fmt.Errorf("parent %v: %w", parent, ErrUnknownNode)
	}
	n := t.newNode(name)
	n.parent = parent
	p.children = append(p.children, n.id)
	return n.id, nil
}

func (t *Tree) newNode(name string) *node {
	n := &node{
		id:   makeID(t.gen, uint32(len(t.nodes)+1)),
		name: name,
		seq:  t.seq,
	}
	t.seq++
	t.nodes = append(t.nodes, n)
	t.facts = nil
	return n
}

func (t *Tree) node(id ID) *node {
	if id == Nil || id.gen() != t.gen {
		return nil
	}
	i := id.index() - 1
	if i < 0 || i >= len(t.nodes) {
		return nil
	}
	return t.nodes[i]
}

// SetName sets the name of a node.
func (t *Tree) SetName(id ID, name string) error {
	n := t.node(id)
	if n == nil {
		return fmt.Errorf("node %v: %w", id, ErrUnknownNode)
	}
	n.name = name
	t.facts = nil
	return nil
}

// SetLen sets the branch length of a node.
// Negative values are set to zero.
func (t *Tree) SetLen(id ID, length float64) error {
	n := t.node(id)
	if n == nil {
		return fmt.Errorf("node %v: %w", id, ErrUnknownNode)
	}
	if length < 0 || math.IsNaN(length) {
		length = 0
	}
	n.length = length
	n.hasLen = true
	t.facts = nil
	return nil
}

// Exists returns true if the ID is a node of the tree.
func (t *Tree) Exists(id ID) bool {
	return t.node(id) != nil
}

// Root returns the ID of the root node.
func (t *Tree) Root() ID {
	return t.root
}

// IsRoot returns true if the node is the root of the tree.
func (t *Tree) IsRoot(id ID) bool {
	return id != Nil && id == t.root
}

// Parent returns the parent of a node.
// It returns Nil for the root
// or for an unknown node.
func (t *Tree) Parent(id ID) ID {
	n := t.node(id)
	if n == nil {
		return Nil
	}
	return n.parent
}

// Children returns the children of a node
// in drawing order.
// The returned slice should not be modified.
func (t *Tree) Children(id ID) []ID {
	n := t.node(id)
	if n == nil {
		return nil
	}
	return n.children
}

// IsTip returns true if the node has no children.
func (t *Tree) IsTip(id ID) bool {
	n := t.node(id)
	if n == nil {
		return false
	}
	return len(n.children) == 0
}

// Label returns the name of a node.
func (t *Tree) Label(id ID) string {
	n := t.node(id)
	if n == nil {
		return ""
	}
	return n.name
}

// Len returns the branch length of a node,
// and false if the node has no branch length.
func (t *Tree) Len(id ID) (float64, bool) {
	n := t.node(id)
	if n == nil {
		return 0, false
	}
	return n.length, n.hasLen
}

// EffLen returns the effective branch length of a node:
// its length if it is defined,
// or 1 if it is undefined.
func (t *Tree) EffLen(id ID) float64 {
	n := t.node(id)
	if n == nil {
		return 0
	}
	if !n.hasLen {
		return 1
	}
	return n.length
}

// Nodes returns the nodes of the tree
// in pre-order.
func (t *Tree) Nodes() []ID {
	if t.root == Nil {
		return nil
	}
	ids := make([]ID, 0, len(t.nodes))
	stack := []ID{t.root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)

		children := t.node(id).children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return ids
}

// Tips returns the terminal nodes of the tree
// in drawing order.
func (t *Tree) Tips() []ID {
	var tips []ID
	for _, id := range t.Nodes() {
		if t.IsTip(id) {
			tips = append(tips, id)
		}
	}
	return tips
}

// Internals returns the internal nodes of the tree
// in pre-order.
func (t *Tree) Internals() []ID {
	var ids []ID
	for _, id := range t.Nodes() {
		if !t.IsTip(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Find returns the nodes with a given name,
// in pre-order.
func (t *Tree) Find(name string) []ID {
	var ids []ID
	for _, id := range t.Nodes() {
		if t.node(id).name == name {
			ids = append(ids, id)
		}
	}
	return ids
}

// Ancestors returns the ancestors of a node,
// from its parent to the root.
func (t *Tree) Ancestors(id ID) []ID {
	var anc []ID
	for p := t.Parent(id); p != Nil; p = t.Parent(p) {
		anc = append(anc, p)
	}
	return anc
}

// IsDescendant returns true if id is a descendant of anc
// (a node is not a descendant of itself).
func (t *Tree) IsDescendant(id, anc ID) bool {
	for p := t.Parent(id); p != Nil; p = t.Parent(p) {
		if p == anc {
			return true
		}
	}
	return false
}

// Depth returns the number of edges
// from the root to the node.
func (t *Tree) Depth(id ID) int {
	return len(t.Ancestors(id))
}

// Dist returns the sum of the effective branch lengths
// from the root to the node.
func (t *Tree) Dist(id ID) float64 {
	var d float64
	for ; id != Nil && id != t.root; id = t.Parent(id) {
		d += t.EffLen(id)
	}
	return d
}

// TipsBelow returns the number of terminals
// descendant from a node
// (a terminal counts itself).
func (t *Tree) TipsBelow(id ID) int {
	if t.node(id) == nil {
		return 0
	}
	count := 0
	stack := []ID{id}
	for len(stack) > 0 {
		n := t.node(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if len(n.children) == 0 {
			count++
			continue
		}
		stack = append(stack, n.children...)
	}
	return count
}

// tipCounts returns the number of terminals below each node,
// indexed by node index.
func (t *Tree) tipCounts() []int {
	counts := make([]int, len(t.nodes)+1)
	ids := t.Nodes()
	for i := len(ids) - 1; i >= 0; i-- {
		n := t.node(ids[i])
		if len(n.children) == 0 {
			counts[n.id.index()] = 1
			continue
		}
		for _, c := range n.children {
			counts[n.id.index()] += counts[c.index()]
		}
	}
	return counts
}

func (t *Tree) getFacts() *facts {
	if t.facts != nil {
		return t.facts
	}

	f := &facts{}
	ids := t.Nodes()
	dist := make(map[ID]float64, len(ids))
	depth := make(map[ID]int, len(ids))
	for _, id := range ids {
		n := t.node(id)
		f.nodes++
		if n.hasLen && id != t.root {
			f.hasLen = true
		}
		if p := n.parent; p != Nil {
			dist[id] = dist[p] + t.EffLen(id)
			depth[id] = depth[p] + 1
		}
		if len(n.children) == 0 {
			f.tips++
			if n.name != "" {
				f.hasTipLabels = true
			}
			f.tipDist = append(f.tipDist, dist[id])
			if dist[id] > f.height {
				f.height = dist[id]
			}
			if depth[id] > f.maxDepth {
				f.maxDepth = depth[id]
			}
			continue
		}
		f.internals++
		if n.name != "" {
			f.hasIntLabels = true
		}
	}
	if !f.hasLen {
		f.height = 0
	}
	t.facts = f
	return f
}

// TipCount returns the number of terminals in the tree.
func (t *Tree) TipCount() int {
	return t.getFacts().tips
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	return t.getFacts().nodes
}

// InternalCount returns the number of internal nodes in the tree.
func (t *Tree) InternalCount() int {
	return t.getFacts().internals
}

// HasBranchLengths returns true if any non-root node
// has a defined branch length.
func (t *Tree) HasBranchLengths() bool {
	return t.getFacts().hasLen
}

// HasTipLabels returns true if any terminal has a name.
func (t *Tree) HasTipLabels() bool {
	return t.getFacts().hasTipLabels
}

// HasInternalLabels returns true if any internal node has a name.
func (t *Tree) HasInternalLabels() bool {
	return t.getFacts().hasIntLabels
}

// Height returns the maximum distance
// from the root to any terminal.
// It returns 0 if the tree has no branch lengths.
func (t *Tree) Height() float64 {
	return t.getFacts().height
}

// MaxDepth returns the maximum number of edges
// from the root to any terminal.
func (t *Tree) MaxDepth() int {
	return t.getFacts().maxDepth
}

// IsRooted returns true if the root has at most two children
// and the tree was not produced by Unroot.
func (t *Tree) IsRooted() bool {
	if t.root == Nil || t.unrooted {
		return false
	}
	return len(t.node(t.root).children) <= 2
}

// Ultrametric is the result of an ultrametricity test.
type Ultrametric int

// Valid ultrametricity values.
const (
	// The tree has no branch lengths.
	Undefined Ultrametric = iota

	// All terminals are equidistant from the root.
	Yes

	// Terminals are at different distances from the root.
	No
)

func (u Ultrametric) String() string {
	switch u {
	case Yes:
		return "yes"
	case No:
		return "no"
	}
	return "undefined"
}

// IsUltrametric returns Yes if all root-to-tip distances
// are within eps of each other.
// If eps is negative,
// it uses the tree height divided by 100.
// It returns Undefined if the tree has no branch lengths.
func (t *Tree) IsUltrametric(eps float64) Ultrametric {
	if !t.HasBranchLengths() {
		return Undefined
	}
	if eps < 0 {
		eps = t.Height() / 100
	}
	dist := t.getFacts().tipDist
	if len(dist) == 0 {
		return Undefined
	}
	if floats.Max(dist)-floats.Min(dist) <= eps {
		return Yes
	}
	return No
}

// Clone returns a deep copy of the tree.
// Node IDs are preserved.
func (t *Tree) Clone() *Tree {
	nt := &Tree{
		name:     t.name,
		gen:      t.gen,
		nodes:    make([]*node, len(t.nodes)),
		root:     t.root,
		unrooted: t.unrooted,
		seq:      t.seq,
	}
	for i, n := range t.nodes {
		if n == nil {
			continue
		}
		cp := *n
		cp.children = slices.Clone(n.children)
		nt.nodes[i] = &cp
	}
	return nt
}

// Subtree returns a new tree
// made of the indicated node
// and all of its descendants.
// The new tree has a new generation of IDs.
func (t *Tree) Subtree(id ID) (*Tree, error) {
	if t.node(id) == nil {
		return nil, fmt.Errorf("node %v: %w", id, ErrUnknownNode)
	}

	st := New(t.name)
	type pair struct {
		old, parent ID
	}
	stack := []pair{{old: id}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.node(p.old)
		nid, err := st.Add(p.parent, n.name)
		if err != nil {
			return nil, err
		}
		if n.hasLen && p.parent != Nil {
			st.SetLen(nid, n.length)
		}
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, pair{old: n.children[i], parent: nid})
		}
	}
	return st, nil
}
