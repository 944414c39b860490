// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ltt implements lineages-through-time series
// of a flattened tree.
//
// The count at a time t is the number of lineages
// that were alive just before t.
// Terminal lineages are alive up to the end of the tree,
// so the series is non-decreasing
// and its final value is the number of terminals.
package ltt

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/tree"
)

// A Point is a sample of a lineages-through-time series.
type Point struct {
	Time  float64
	Count int
}

// A Series is a step function
// of the number of lineages through time.
// Each point is the start of a step.
type Series []Point

// Compute returns the lineages-through-time series
// of a set of edges.
//
// The series starts with a single lineage at time 0,
// adds a point at each distinct starting time of an edge,
// and ends with the number of terminals
// at the height of the tree.
// Times are in tree units,
// or in normalized units
// if the tree has no branch lengths.
func Compute(s *edge.Set) Series {
	tips := s.TipCount()
	if tips == 0 {
		return nil
	}

	scale := s.Height
	if scale <= 0 {
		scale = 1
	}

	var starts, ends []float64
	for _, e := range s.Edges {
		if e.Parent == tree.Nil {
			continue
		}
		starts = append(starts, e.X0)
		if !e.IsTip {
			ends = append(ends, e.X1)
		}
	}
	slices.Sort(starts)
	slices.Sort(ends)

	ser := Series{{Time: 0, Count: 1}}
	for i, x := range starts {
		if x <= 0 {
			continue
		}
		if i > 0 && starts[i-1] == x {
			continue
		}
		born := sort.SearchFloat64s(starts, x)
		dead := sort.SearchFloat64s(ends, x)
		ser = append(ser, Point{Time: x * scale, Count: born - dead})
	}
	return append(ser, Point{Time: scale, Count: tips})
}

// At returns the number of lineages at a time.
func (s Series) At(t float64) int {
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Time > t
	})
	if i == 0 {
		return 0
	}
	return s[i-1].Count
}

// End returns the final time of the series.
func (s Series) End() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Time
}

// Max returns the maximum number of lineages.
func (s Series) Max() int {
	max := 0
	for _, p := range s {
		if p.Count > max {
			max = p.Count
		}
	}
	return max
}

// Len implements the plotter.XYer interface.
func (s Series) Len() int {
	return len(s)
}

// XY implements the plotter.XYer interface.
func (s Series) XY(i int) (x, y float64) {
	return s[i].Time, float64(s[i].Count)
}

var headerFields = []string{
	"time",
	"lineages",
}

// Write writes a series into a tab-delimited file.
func (s Series) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# lineages through time\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))

	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(headerFields); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	for _, p := range s {
		row := []string{
			strconv.FormatFloat(p.Time, 'f', -1, 64),
			strconv.Itoa(p.Count),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// Read reads a series from a tab-delimited file.
//
// The file must have a header with the fields
// "time" and "lineages".
// Points must be sorted by time.
//
// Here is an example file:
//
//	# lineages through time
//	time	lineages
//	0	1
//	1	2
//	2	3
func Read(r io.Reader) (Series, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range headerFields {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var s Series
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "time"
		t, err := strconv.ParseFloat(strings.TrimSpace(row[fields[f]]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if len(s) > 0 && t < s[len(s)-1].Time {
			return nil, fmt.Errorf("on row %d: field %q: time %.6g before previous point", ln, f, t)
		}

		f = "lineages"
		n, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("on row %d: field %q: invalid value %d", ln, f, n)
		}
		s = append(s, Point{Time: t, Count: n})
	}
	return s, nil
}
