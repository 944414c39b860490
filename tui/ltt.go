// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tui

import (
	"fmt"
	"math"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"
	"github.com/js-arias/phyview/ltt"
	"github.com/mattn/go-runewidth"
)

// An lttStrip is a terminal plot
// of a lineages-through-time series.
type lttStrip struct {
	cols, rows int
	canvas     *plot.Canvas

	// horizontal scroll, in dots
	scroll float64
}

func newLTTStrip(cols, rows int) *lttStrip {
	s := &lttStrip{}
	s.resize(cols, rows)
	return s
}

func (s *lttStrip) resize(cols, rows int) {
	s.cols, s.rows = max(cols, 1), max(rows, 1)
	p := plot.NewCanvas(s.cols, s.rows)
	p.NumDataPoints = s.cols * DotsX
	p.ShowAxis = false
	if styles.DefaultRenderer().HasDarkBackground() {
		p.LineColors = []plot.Color{plot.Red}
	} else {
		p.LineColors = []plot.Color{plot.Black}
	}
	s.canvas = &p
}

// time returns the time of a dot of the strip.
// The time axis is placed between the canvas positions x0 and x1.
func (s *lttStrip) time(ser ltt.Series, dot int, x0, x1 float64) float64 {
	if x1 <= x0 {
		return math.NaN()
	}
	x := s.scroll + float64(dot)
	return (x - x0) / (x1 - x0) * ser.End()
}

// fill samples the series at each dot of the strip.
// Counts are plotted in a log scale.
func (s *lttStrip) fill(ser ltt.Series, x0, x1 float64) {
	data := make([]float64, s.canvas.NumDataPoints)
	end := ser.End()
	for i := range data {
		t := s.time(ser, i, x0, x1)
		if math.IsNaN(t) || t < 0 || t > end {
			continue
		}
		if n := ser.At(t); n > 1 {
			data[i] = math.Log10(float64(n))
		}
	}
	s.canvas.Fill([][]float64{data})
}

// ruler returns the line below the strip,
// with a mark at the cursor column.
func (s *lttStrip) ruler(ser ltt.Series, cursor float64, ok bool, x0, x1 float64) string {
	if !ok || len(ser) == 0 {
		return strings.Repeat(" ", s.cols)
	}
	dot := int(math.Floor(cursor - s.scroll))
	col := dot / DotsX
	if dot < 0 || col >= s.cols {
		return strings.Repeat(" ", s.cols)
	}
	t := s.time(ser, dot, x0, x1)
	info := fmt.Sprintf(" t=%s lineages=%d", ltt.Label(t, 2), ser.At(t))

	line := []rune(strings.Repeat(" ", s.cols))
	line[col] = '^'
	start := col + 1
	if start+runewidth.StringWidth(info) > s.cols {
		start = max(col-runewidth.StringWidth(info), 0)
	}
	for i, r := range info {
		if p := start + i; p < s.cols && p != col {
			line[p] = r
		}
	}
	return string(line)
}

func (s *lttStrip) String() string {
	return s.canvas.String()
}
