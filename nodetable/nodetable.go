// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodetable implements a virtual table
// with the nodes of a tree.
//
// Only the rows inside the visible window are built,
// so the table can be used with very large trees.
package nodetable

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
)

// DefaultRowHeight is the default height of a row.
const DefaultRowHeight = 20

// Column is a column of the table.
type Column int

// Table columns.
const (
	Selected Column = iota
	NodeID
	Label
)

// Columns returns the table columns
// in display order.
func Columns() []Column {
	return []Column{Selected, NodeID, Label}
}

func (c Column) String() string {
	switch c {
	case Selected:
		return "selected"
	case NodeID:
		return "node"
	case Label:
		return "label"
	}
	return "unknown"
}

// A Row is a row of the table.
type Row struct {
	// Position of the node in traversal order.
	Index int

	Node     tree.ID
	Label    string
	IsTip    bool
	Selected bool
}

// Table is a table of the nodes of a tree state.
type Table struct {
	st        *treestate.State
	rowHeight float64

	nodes []tree.ID
	pos   map[tree.ID]int

	sorted bool
	col    Column
	desc   bool
}

// New returns a new table for a tree state.
// If rowHeight is zero,
// DefaultRowHeight will be used.
func New(st *treestate.State, rowHeight float64) *Table {
	if rowHeight <= 0 {
		rowHeight = DefaultRowHeight
	}
	t := &Table{
		st:        st,
		rowHeight: rowHeight,
	}
	t.Refresh()
	return t
}

// Refresh rebuilds the rows of the table
// from the current tree of the tree state,
// keeping the sort order.
func (t *Table) Refresh() {
	t.nodes = t.st.Tree().Nodes()
	t.pos = make(map[tree.ID]int, len(t.nodes))
	for i, id := range t.nodes {
		t.pos[id] = i
	}
	if t.sorted {
		t.sort()
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.nodes)
}

// RowHeight returns the height of a row.
func (t *Table) RowHeight() float64 {
	return t.rowHeight
}

// ContentHeight returns the height of the table,
// including the header.
func (t *Table) ContentHeight() float64 {
	return t.rowHeight * float64(len(t.nodes)+1)
}

// Sort returns the column used to sort the table,
// and whether the order is descending.
// It returns false if the table is in traversal order.
func (t *Table) Sort() (col Column, desc, ok bool) {
	return t.col, t.desc, t.sorted
}

// Toggle sorts the table by a column.
// If the table is already sorted by the column,
// the sort direction is reversed.
func (t *Table) Toggle(col Column) {
	if t.sorted && t.col == col {
		t.desc = !t.desc
	} else {
		t.sorted = true
		t.col = col
		t.desc = false
	}
	t.sort()
}

// Reset sets the table in traversal order.
func (t *Table) Reset() {
	t.sorted = false
	t.desc = false
	slices.SortFunc(t.nodes, func(a, b tree.ID) int {
		return cmp.Compare(t.pos[a], t.pos[b])
	})
}

func (t *Table) sort() {
	tr := t.st.Tree()
	var fn func(a, b tree.ID) int
	switch t.col {
	case Selected:
		fn = func(a, b tree.ID) int {
			return cmpBool(t.st.IsSelected(a), t.st.IsSelected(b))
		}
	case NodeID:
		fn = func(a, b tree.ID) int {
			return cmp.Compare(a, b)
		}
	case Label:
		fn = func(a, b tree.ID) int {
			return strings.Compare(strings.ToLower(tr.Label(a)), strings.ToLower(tr.Label(b)))
		}
	}
	slices.SortStableFunc(t.nodes, func(a, b tree.ID) int {
		c := fn(a, b)
		if t.desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(t.pos[a], t.pos[b])
	})
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

// Row returns the row at a given position.
func (t *Table) Row(i int) Row {
	id := t.nodes[i]
	tr := t.st.Tree()
	return Row{
		Index:    t.pos[id],
		Node:     id,
		Label:    tr.Label(id),
		IsTip:    tr.IsTip(id),
		Selected: t.st.IsSelected(id),
	}
}

// Find returns the row of a node,
// and false if the node is not in the table.
func (t *Table) Find(id tree.ID) (int, bool) {
	i := slices.Index(t.nodes, id)
	return i, i >= 0
}

// Window returns the rows visible
// in a viewport of the given height
// scrolled to scrollY.
// It returns the position of the first row.
func (t *Table) Window(scrollY, viewportH float64) (int, []Row) {
	if len(t.nodes) == 0 || viewportH <= 0 {
		return 0, nil
	}
	first := int(math.Floor(math.Max(scrollY, 0) / t.rowHeight))
	n := int(math.Ceil(viewportH / t.rowHeight))
	if first >= len(t.nodes) {
		return len(t.nodes), nil
	}
	last := min(first+n, len(t.nodes))

	rows := make([]Row, 0, last-first)
	for i := first; i < last; i++ {
		rows = append(rows, t.Row(i))
	}
	return first, rows
}

// Click toggles the selection of the node in a row.
// It returns true if the node is selected after the click.
func (t *Table) Click(row int) bool {
	if row < 0 || row >= len(t.nodes) {
		return false
	}
	return t.st.ToggleSelect(t.nodes[row])
}
