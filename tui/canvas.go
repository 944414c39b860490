// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	"github.com/js-arias/phyview/shape"
	"github.com/mattn/go-runewidth"
)

// Dots of a terminal cell.
// Each dot is a pixel of the tree canvas.
const (
	DotsX = 2
	DotsY = 4
)

// PathStep is the maximum length of a segment,
// in dots,
// used to approximate arcs.
const PathStep = 2

const brailleBase = 0x2800

var brailleBits = [DotsY][DotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// continuation marks the cell covered by a wide rune.
const continuation = -1

type cell struct {
	dots  uint8
	color color.Color

	text      rune
	textColor color.Color
}

// A Canvas is a raster of terminal cells,
// in which each cell is a braille pattern
// of 2 by 4 dots.
type Canvas struct {
	cols, rows int
	cells      []cell
}

// NewCanvas returns a canvas
// with the indicated number of columns and rows.
func NewCanvas(cols, rows int) *Canvas {
	cols = max(cols, 0)
	rows = max(rows, 0)
	return &Canvas{
		cols:  cols,
		rows:  rows,
		cells: make([]cell, cols*rows),
	}
}

// Size returns the size of the canvas in dots.
func (c *Canvas) Size() (w, h int) {
	return c.cols * DotsX, c.rows * DotsY
}

// Set sets a dot.
// Dots outside the canvas,
// or with a background color,
// are ignored.
func (c *Canvas) Set(x, y int, col color.Color) {
	w, h := c.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	if isBackground(col) {
		return
	}
	cl := &c.cells[(y/DotsY)*c.cols+x/DotsX]
	cl.dots |= brailleBits[y%DotsY][x%DotsX]
	cl.color = col
}

// Line draws a line between two points,
// in dots.
func (c *Canvas) Line(a, b shape.Point, col color.Color) {
	w, h := c.Size()
	a, b, ok := clip(a, b, shape.R(-1, -1, float64(w+1), float64(h+1)))
	if !ok {
		return
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	for i := 0; i <= n; i++ {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		c.Set(int(math.Floor(a.X+t*dx)), int(math.Floor(a.Y+t*dy)), col)
	}
}

// clip clips a segment to a rectangle
// using the Liang-Barsky algorithm.
func clip(a, b shape.Point, r shape.Rect) (shape.Point, shape.Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, a.X - r.Min.X},
		{dx, r.Max.X - a.X},
		{-dy, a.Y - r.Min.Y},
		{dy, r.Max.Y - a.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = math.Max(t0, t)
			continue
		}
		if t < t0 {
			return a, b, false
		}
		t1 = math.Min(t1, t)
	}
	na := shape.Pt(a.X+t0*dx, a.Y+t0*dy)
	nb := shape.Pt(a.X+t1*dx, a.Y+t1*dy)
	return na, nb, true
}

// Text writes a text anchored at a point,
// in dots.
// Texts are always horizontal
// and replace the dots of the cells they cover.
func (c *Canvas) Text(s string, pos shape.Point, a shape.Align, col color.Color) {
	if s == "" || c.rows == 0 {
		return
	}
	row := int(math.Floor(pos.Y / DotsY))
	if row < 0 || row >= c.rows {
		return
	}
	w := runewidth.StringWidth(s)
	x := int(math.Floor(pos.X / DotsX))
	switch a {
	case shape.Right:
		x -= w
	case shape.Center:
		x -= w / 2
	}
	if x >= c.cols || x+w <= 0 {
		return
	}

	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x >= 0 && x+rw <= c.cols {
			cl := &c.cells[row*c.cols+x]
			cl.text = r
			cl.textColor = col
			for i := 1; i < rw; i++ {
				c.cells[row*c.cols+x+i].text = continuation
			}
		}
		x += rw
		if x >= c.cols {
			break
		}
	}
}

// Draw draws a frame,
// translating its elements by the origin.
func (c *Canvas) Draw(f *shape.Frame, origin shape.Point) {
	if f == nil {
		return
	}
	for _, s := range f.Shapes {
		col := s.Stroke.Color
		if col == nil {
			col = s.Fill
		}
		for _, pl := range s.Path.Polylines(PathStep) {
			for i := 1; i < len(pl); i++ {
				c.Line(pl[i-1].Sub(origin), pl[i].Sub(origin), col)
			}
		}
	}
	for _, t := range f.Texts {
		c.Text(t.Text, t.Pos.Sub(origin), t.Align, t.Color)
	}
}

// String returns the canvas as lines of text.
func (c *Canvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		var runColor color.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(paint(runColor, run.String()))
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			cl := c.cells[row*c.cols+col]
			r, fg := ' ', color.Color(nil)
			switch {
			case cl.text == continuation:
				continue
			case cl.text != 0:
				r, fg = cl.text, cl.textColor
			case cl.dots != 0:
				r, fg = rune(brailleBase+int(cl.dots)), cl.color
			}
			if !sameColor(fg, runColor) {
				flush()
				runColor = fg
			}
			run.WriteRune(r)
		}
		flush()
	}
	return b.String()
}

// paint returns a text with a foreground color.
// Black texts use the default color of the terminal.
func paint(col color.Color, s string) string {
	if col == nil || isBlack(col) {
		return s
	}
	return styles.NewStyle().Foreground(hexColor(col)).Render(s)
}

func hexColor(col color.Color) styles.Color {
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	return styles.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	r0, g0, b0, a0 := a.RGBA()
	r1, g1, b1, a1 := b.RGBA()
	return r0 == r1 && g0 == g1 && b0 == b1 && a0 == a1
}

func isBlack(col color.Color) bool {
	r, g, b, _ := col.RGBA()
	return r == 0 && g == 0 && b == 0
}

// isBackground returns true for transparent
// and white colors.
func isBackground(col color.Color) bool {
	if col == nil {
		return true
	}
	r, g, b, a := col.RGBA()
	if a == 0 {
		return true
	}
	return r >= 0xf000 && g >= 0xf000 && b >= 0xf000
}

// truncate truncates a text to a width in cells.
func truncate(s string, w int) string {
	return runewidth.Truncate(s, w, "…")
}
