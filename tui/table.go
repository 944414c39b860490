// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/js-arias/phyview/nodetable"
	"github.com/mattn/go-runewidth"
)

// Widths of the fixed columns of the node table.
const (
	selectedWidth = 3
	nodeWidth     = 8
)

// headerRows is the number of lines
// used by the header of the node table.
const headerRows = 2

// A tablePane shows the rows of the node table
// that fit in the pane.
type tablePane struct {
	model         table.Model
	width, height int

	// cursor and first visible row
	// in table positions
	cursor, offset int
}

func newTablePane() *tablePane {
	s := table.DefaultStyles()
	s.Selected = s.Selected.Foreground(styles.Color("229")).Background(styles.Color("57"))
	return &tablePane{
		model: table.New(
			table.WithFocused(false),
			table.WithStyles(s),
		),
	}
}

// rows returns the number of visible rows.
func (p *tablePane) rows() int {
	return max(p.height-headerRows, 1)
}

func (p *tablePane) resize(w, h int) {
	p.width, p.height = w, h
	p.model.SetWidth(w)
	p.model.SetHeight(h)
}

func (p *tablePane) columns(t *nodetable.Table) []table.Column {
	titles := map[nodetable.Column]string{
		nodetable.Selected: "sel",
		nodetable.NodeID:   "node",
		nodetable.Label:    "label",
	}
	if col, desc, ok := t.Sort(); ok {
		mark := " +"
		if desc {
			mark = " -"
		}
		titles[col] += mark
	}
	label := max(p.width-selectedWidth-nodeWidth-6, 5)
	return []table.Column{
		{Title: titles[nodetable.Selected], Width: selectedWidth},
		{Title: titles[nodetable.NodeID], Width: nodeWidth},
		{Title: titles[nodetable.Label], Width: label},
	}
}

// move moves the cursor
// keeping it inside the visible rows.
func (p *tablePane) move(t *nodetable.Table, delta int) {
	if t == nil || t.Len() == 0 {
		p.cursor, p.offset = 0, 0
		return
	}
	p.cursor = min(max(p.cursor+delta, 0), t.Len()-1)
	if p.cursor < p.offset {
		p.offset = p.cursor
	}
	if n := p.rows(); p.cursor >= p.offset+n {
		p.offset = p.cursor - n + 1
	}
}

// sync rebuilds the visible rows.
func (p *tablePane) sync(t *nodetable.Table) {
	if t == nil {
		p.model.SetRows(nil)
		return
	}
	p.move(t, 0)
	cols := p.columns(t)
	p.model.SetColumns(cols)

	first, rs := t.Window(float64(p.offset)*t.RowHeight(), float64(p.rows())*t.RowHeight())
	rows := make([]table.Row, 0, len(rs))
	for _, r := range rs {
		sel := ""
		if r.Selected {
			sel = "*"
		}
		rows = append(rows, table.Row{
			sel,
			r.Node.String(),
			runewidth.Truncate(r.Label, cols[2].Width, "…"),
		})
	}
	p.model.SetRows(rows)
	p.model.SetCursor(p.cursor - first)
}

// rowAt returns the table position of a line of the pane.
func (p *tablePane) rowAt(t *nodetable.Table, line int) (int, bool) {
	if t == nil || line < headerRows {
		return 0, false
	}
	row := p.offset + line - headerRows
	if row >= t.Len() {
		return 0, false
	}
	return row, true
}

func (p *tablePane) view() string {
	return p.model.View()
}
