// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package treestate implements the state of a loaded tree:
// the working tree and its flattened edges for each ordering,
// the set of selected nodes,
// the search results,
// and the drawing caches.
package treestate

import (
	"slices"
	"strings"

	"github.com/js-arias/phyview/cache"
	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/tree"
)

// Ordering is the order of the children of each node.
type Ordering int

// Valid orderings.
const (
	// Children are in the order of the input tree.
	Unordered Ordering = iota

	// Children are sorted by ascending number of terminals.
	Ascending

	// Children are sorted by descending number of terminals.
	Descending

	numOrderings
)

func (o Ordering) String() string {
	switch o {
	case Unordered:
		return "unordered"
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	}
	return "unknown"
}

// ParseOrdering returns an ordering from its name.
func ParseOrdering(s string) (Ordering, bool) {
	for o := Unordered; o < numOrderings; o++ {
		if strings.EqualFold(s, o.String()) {
			return o, true
		}
	}
	return Unordered, false
}

// Options are the options used to build the edges
// of a tree state.
type Options struct {
	// Number of chunks of the edges,
	// usually the number of working threads.
	Chunks int

	// If set, the edges include a root stub.
	RootStub bool
}

type view struct {
	tree  *tree.Tree
	edges *edge.Set
}

// A State is the state of a loaded tree.
type State struct {
	original *tree.Tree
	current  *tree.Tree
	views    [numOrderings]*view
	ordering Ordering
	opts     Options

	selected map[tree.ID]bool

	query    string
	tipsOnly bool
	hits     []tree.ID
	isHit    map[tree.ID]bool
	cursor   int

	caches *cache.Store
}

// New returns a new state for a tree.
func New(t *tree.Tree, opts Options) *State {
	if opts.Chunks < 1 {
		opts.Chunks = edge.DefaultChunks
	}
	s := &State{
		opts:   opts,
		caches: cache.NewStore(),
	}
	s.Init(t)
	return s
}

// Init replaces the tree of the state.
// Selection and search results are cleared.
func (s *State) Init(t *tree.Tree) {
	s.original = t
	s.current = t.Clone()
	s.views = [numOrderings]*view{}
	s.selected = make(map[tree.ID]bool)
	s.query = ""
	s.tipsOnly = false
	s.setHits(nil)
	s.cursor = 0
}

// Original returns the tree as it was loaded.
func (s *State) Original() *tree.Tree {
	return s.original
}

// Tree returns the working tree
// with the children sorted with the current ordering.
func (s *State) Tree() *tree.Tree {
	return s.view().tree
}

// Edges returns the edges of the working tree
// with the current ordering.
func (s *State) Edges() *edge.Set {
	return s.view().edges
}

// view returns the view of the current ordering,
// building it if necessary.
func (s *State) view() *view {
	if v := s.views[s.ordering]; v != nil {
		return v
	}

	t := s.current
	switch s.ordering {
	case Ascending:
		t = s.current.Clone()
		t.Sort(false)
	case Descending:
		t = s.current.Clone()
		t.Sort(true)
	}
	v := &view{
		tree: t,
		edges: edge.Flatten(t, edge.Options{
			RootStub: s.opts.RootStub,
			Chunks:   s.opts.Chunks,
		}),
	}
	s.views[s.ordering] = v
	return v
}

// Ordering returns the current ordering.
func (s *State) Ordering() Ordering {
	return s.ordering
}

// SetOrdering sets the ordering of the tree.
// It returns false if the ordering is not changed.
func (s *State) SetOrdering(o Ordering) bool {
	if o < 0 || o >= numOrderings || o == s.ordering {
		return false
	}
	s.ordering = o
	s.refreshSearch()
	return true
}

// RootStub returns true if the edges include a root stub.
func (s *State) RootStub() bool {
	return s.opts.RootStub
}

// SetRootStub sets whether the edges include a root stub.
// It returns false if the value is not changed.
func (s *State) SetRootStub(stub bool) bool {
	if stub == s.opts.RootStub {
		return false
	}
	s.opts.RootStub = stub
	s.views = [numOrderings]*view{}
	return true
}

// CanRoot returns true if the tree can be rerooted
// at the indicated node.
func (s *State) CanRoot(id tree.ID) bool {
	return s.current.CanRoot(id)
}

// Root reroots the working tree on the indicated node.
// The views of all orderings are rebuilt.
func (s *State) Root(id tree.ID) error {
	if _, err := s.current.Reroot(id); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

// Unroot removes the root of the working tree.
func (s *State) Unroot() error {
	if _, err := s.current.Unroot(); err != nil {
		return err
	}
	s.rebuild()
	return nil
}

// rebuild removes the views
// and updates the selection and search
// after a change in the working tree.
func (s *State) rebuild() {
	s.views = [numOrderings]*view{}
	for id := range s.selected {
		if !s.current.Exists(id) {
			delete(s.selected, id)
		}
	}
	s.refreshSearch()
}

// Caches returns the drawing caches of the tree.
func (s *State) Caches() *cache.Store {
	return s.caches
}

// TipCount returns the number of terminals.
func (s *State) TipCount() int {
	return s.current.TipCount()
}

// NodeCount returns the number of nodes.
func (s *State) NodeCount() int {
	return s.current.NodeCount()
}

// InternalCount returns the number of internal nodes.
func (s *State) InternalCount() int {
	return s.current.InternalCount()
}

// Height returns the tree height.
func (s *State) Height() float64 {
	return s.current.Height()
}

// Ultrametric returns the ultrametricity of the working tree.
func (s *State) Ultrametric() tree.Ultrametric {
	return s.current.IsUltrametric(-1)
}

// IsUltrametric returns true if the tree is ultrametric,
// a tree without branch lengths is ultrametric by convention.
func (s *State) IsUltrametric() bool {
	return s.Ultrametric() != tree.No
}

// HasBranchLengths returns true if the tree has branch lengths.
func (s *State) HasBranchLengths() bool {
	return s.current.HasBranchLengths()
}

// HasTipLabels returns true if any terminal is named.
func (s *State) HasTipLabels() bool {
	return s.current.HasTipLabels()
}

// HasInternalLabels returns true if any internal node is named.
func (s *State) HasInternalLabels() bool {
	return s.current.HasInternalLabels()
}

// IsRooted returns true if the working tree is rooted.
func (s *State) IsRooted() bool {
	return s.current.IsRooted()
}

// ToggleSelect toggles the selection of a node.
// It returns true if the node is selected after the call.
func (s *State) ToggleSelect(id tree.ID) bool {
	if !s.current.Exists(id) {
		return false
	}
	if s.selected[id] {
		delete(s.selected, id)
		return false
	}
	s.selected[id] = true
	return true
}

// IsSelected returns true if a node is selected.
func (s *State) IsSelected(id tree.ID) bool {
	return s.selected[id]
}

// Selected returns the selected nodes
// in drawing order.
func (s *State) Selected() []tree.ID {
	if len(s.selected) == 0 {
		return nil
	}
	ids := make([]tree.ID, 0, len(s.selected))
	for _, e := range s.Edges().Edges {
		if s.selected[e.Node] {
			ids = append(ids, e.Node)
		}
	}
	return ids
}

// ClearSelection removes all nodes from the selection.
// It returns false if there were no selected nodes.
func (s *State) ClearSelection() bool {
	if len(s.selected) == 0 {
		return false
	}
	clear(s.selected)
	return true
}

// Search searches for the nodes
// which names contain the query,
// ignoring case.
// If tipsOnly is true,
// only terminals are searched.
// Results are in drawing order,
// and the current hit is set to the first result.
// An empty query clears the results.
// It returns the number of results.
func (s *State) Search(query string, tipsOnly bool) int {
	s.query = query
	s.tipsOnly = tipsOnly
	s.cursor = 0
	s.setHits(s.find())
	return len(s.hits)
}

// setHits sets the search results.
func (s *State) setHits(hits []tree.ID) {
	s.hits = hits
	s.isHit = make(map[tree.ID]bool, len(hits))
	for _, id := range hits {
		s.isHit[id] = true
	}
}

func (s *State) find() []tree.ID {
	if s.query == "" {
		return nil
	}
	q := strings.ToLower(s.query)
	var hits []tree.ID
	for _, e := range s.Edges().Edges {
		if s.tipsOnly && !e.IsTip {
			continue
		}
		if strings.Contains(strings.ToLower(e.Label), q) {
			hits = append(hits, e.Node)
		}
	}
	return hits
}

// refreshSearch reruns the current search,
// keeping the current hit if it is still found.
func (s *State) refreshSearch() {
	if s.query == "" {
		return
	}
	cur, ok := s.Current()
	s.setHits(s.find())
	s.cursor = 0
	if !ok {
		return
	}
	if i := slices.Index(s.hits, cur); i >= 0 {
		s.cursor = i
	}
}

// Query returns the current search query.
func (s *State) Query() string {
	return s.query
}

// Hits returns the search results.
func (s *State) Hits() []tree.ID {
	return s.hits
}

// IsHit returns true if a node is in the search results.
func (s *State) IsHit(id tree.ID) bool {
	return s.isHit[id]
}

// Cursor returns the index of the current hit.
func (s *State) Cursor() int {
	return s.cursor
}

// Current returns the current hit,
// and false if there are no results.
func (s *State) Current() (tree.ID, bool) {
	if len(s.hits) == 0 {
		return tree.Nil, false
	}
	return s.hits[s.cursor], true
}

// NextHit advances the current hit,
// wrapping around at the end of the results.
// It returns false if the current hit is not changed.
func (s *State) NextHit() bool {
	if len(s.hits) < 2 {
		return false
	}
	s.cursor = (s.cursor + 1) % len(s.hits)
	return true
}

// PrevHit moves the current hit backwards,
// wrapping around at the start of the results.
// It returns false if the current hit is not changed.
func (s *State) PrevHit() bool {
	if len(s.hits) < 2 {
		return false
	}
	s.cursor = (s.cursor - 1 + len(s.hits)) % len(s.hits)
	return true
}
