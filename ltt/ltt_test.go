// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ltt_test

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyview/edge"
	"github.com/js-arias/phyview/ltt"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
	"pgregory.net/rapid"
)

func flatten(t testing.TB, s string, stub bool) *edge.Set {
	t.Helper()

	tr, err := newick.Parse(s)
	if err != nil {
		t.Fatalf("unable to parse tree %q: %v", s, err)
	}
	return edge.Flatten(tr, edge.Options{RootStub: stub})
}

func TestCompute(t *testing.T) {
	tests := map[string]struct {
		tree string
		want ltt.Series
	}{
		"balanced": {
			tree: "((A:1,B:1):1,C:2);",
			want: ltt.Series{{0, 1}, {1, 2}, {2, 3}},
		},
		"ladder": {
			tree: "(((A:1,B:1):1,C:2):1,D:3);",
			want: ltt.Series{{0, 1}, {1, 2}, {2, 3}, {3, 4}},
		},
		"polytomy": {
			tree: "((A:1,B:1,C:1):1,D:2);",
			want: ltt.Series{{0, 1}, {1, 2}, {2, 4}},
		},
		"no lengths": {
			tree: "(A,(B,C));",
			want: ltt.Series{{0, 1}, {0.5, 2}, {1, 3}},
		},
	}

	for name, test := range tests {
		for _, stub := range []bool{false, true} {
			s := flatten(t, test.tree, stub)
			got := ltt.Compute(s)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("%s (stub %v): got %v, want %v", name, stub, got, test.want)
			}
		}
	}
}

func TestAt(t *testing.T) {
	s := ltt.Series{{0, 1}, {1, 2}, {2, 3}}
	tests := []struct {
		t    float64
		want int
	}{
		{-1, 0},
		{0, 1},
		{0.5, 1},
		{1, 2},
		{1.9, 2},
		{2, 3},
		{5, 3},
	}
	for _, test := range tests {
		if got := s.At(test.t); got != test.want {
			t.Errorf("at %.2f: got %d, want %d", test.t, got, test.want)
		}
	}
}

func TestComputeProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		tips := rapid.IntRange(2, 40).Draw(t, "tips")
		withLen := rapid.Bool().Draw(t, "lengths")

		// build a random binary tree by splitting terminals
		tr := tree.New("random")
		root, _ := tr.Add(tree.Nil, "")
		leaves := []tree.ID{root}
		for len(leaves) < tips {
			i := rapid.IntRange(0, len(leaves)-1).Draw(t, "split")
			p := leaves[i]
			a, _ := tr.Add(p, "")
			b, _ := tr.Add(p, "")
			leaves = append(leaves[:i], leaves[i+1:]...)
			leaves = append(leaves, a, b)
		}
		if withLen {
			for _, id := range tr.Nodes() {
				if tr.IsRoot(id) {
					continue
				}
				l := rapid.Float64Range(0.01, 10).Draw(t, "length")
				tr.SetLen(id, l)
			}
		}
		for i, id := range tr.Tips() {
			tr.SetName(id, fmt.Sprintf("t%d", i))
		}

		s := edge.Flatten(tr, edge.Options{})
		ser := ltt.Compute(s)
		if len(ser) < 2 {
			t.Fatalf("series too short: %v", ser)
		}
		if ser[0] != (ltt.Point{Time: 0, Count: 1}) {
			t.Fatalf("first point: got %v, want %v", ser[0], ltt.Point{Time: 0, Count: 1})
		}
		for i := 1; i < len(ser); i++ {
			if ser[i].Count < ser[i-1].Count {
				t.Fatalf("point %d: count decreases: %v", i, ser)
			}
			if ser[i].Time < ser[i-1].Time {
				t.Fatalf("point %d: time decreases: %v", i, ser)
			}
		}
		if last := ser[len(ser)-1].Count; last != tips {
			t.Fatalf("final count: got %d, want %d", last, tips)
		}
	})
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		n        int
		log      bool
		want     []float64
	}{
		{"unit range", 0, 1, 6, false, []float64{0, 0.5, 1}},
		{"two", 0, 2, 6, false, []float64{0, 1, 2}},
		{"large", 0, 100, 6, false, []float64{0, 50, 100}},
		{"log decades", 1, 100, 5, true, []float64{1, 10, 100}},
		{"log short", 1, 3, 5, true, []float64{1, 2, 3}},
		{"log medium", 1, 20, 5, true, []float64{1, 2, 5, 10, 20}},
	}
	for _, test := range tests {
		got := ltt.Ticks(test.min, test.max, test.n, test.log)
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
	}
}

func TestDecimals(t *testing.T) {
	tests := []struct {
		spacing float64
		want    int
	}{
		{1, 0},
		{20, 0},
		{0.5, 1},
		{2.5, 1},
		{0.25, 2},
		{0.1 + 0.2, 1},
		{0.00001, 4},
	}
	for _, test := range tests {
		if got := ltt.Decimals(test.spacing); got != test.want {
			t.Errorf("decimals %v: got %d, want %d", test.spacing, got, test.want)
		}
	}
}

func TestTicker(t *testing.T) {
	ticks := ltt.Ticker{N: 6}.Ticks(0, 1)
	var labels []string
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	want := []string{"0.0", "0.5", "1.0"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("labels: got %v, want %v", labels, want)
	}
}

func TestSync(t *testing.T) {
	var s ltt.Sync
	if _, ok := s.Scrolled(ltt.TreeSide, 100); ok {
		t.Errorf("disabled sync: scroll mirrored")
	}

	s.Enable(true)
	x, ok := s.Scrolled(ltt.TreeSide, 150)
	if !ok || x != 150 {
		t.Errorf("tree scroll: got %.1f (%v), want %.1f (true)", x, ok, 150.0)
	}

	// echo of the mirrored scroll
	if _, ok := s.Scrolled(ltt.PlotSide, 150); ok {
		t.Errorf("echo scroll: mirrored back")
	}

	// small scrolls are ignored
	if _, ok := s.Scrolled(ltt.PlotSide, 150.3); ok {
		t.Errorf("small scroll: mirrored")
	}

	x, ok = s.Scrolled(ltt.PlotSide, 90)
	if !ok || x != 90 {
		t.Errorf("plot scroll: got %.1f (%v), want %.1f (true)", x, ok, 90.0)
	}
	if _, ok := s.Scrolled(ltt.TreeSide, 90); ok {
		t.Errorf("echo scroll: mirrored back")
	}
	x, ok = s.Scrolled(ltt.TreeSide, 10)
	if !ok || x != 10 {
		t.Errorf("tree scroll: got %.1f (%v), want %.1f (true)", x, ok, 10.0)
	}
}

func TestFrame(t *testing.T) {
	s := ltt.Series{{0, 1}, {1, 2}, {2, 3}}
	a := ltt.NewAxes(s, 50, 250, shape.R(50, 0, 250, 100))
	if x := a.X(1); x != 150 {
		t.Errorf("x: got %.2f, want %.2f", x, 150.0)
	}
	if y := a.Y(1); y != 100 {
		t.Errorf("y at 1: got %.2f, want %.2f", y, 100.0)
	}
	if y := a.Y(3); math.Abs(y) > 1e-9 {
		t.Errorf("y at max: got %.2f, want %.2f", y, 0.0)
	}

	f := ltt.Frame(s, a, ltt.DefaultStyle(1))
	if len(f.Shapes) != 3 {
		t.Errorf("shapes: got %d, want %d", len(f.Shapes), 3)
	}
	if len(f.Texts) == 0 {
		t.Errorf("expecting tick labels")
	}
}

func TestReadWrite(t *testing.T) {
	want := ltt.Series{{0, 1}, {0.5, 2}, {2.25, 5}}

	var buf bytes.Buffer
	if err := want.Write(&buf); err != nil {
		t.Fatalf("unable to write data: %v", err)
	}
	got, err := ltt.Read(&buf)
	if err != nil {
		t.Logf("input data:\n%s\n", buf.String())
		t.Fatalf("unable to read data: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("read: got %v, want %v", got, want)
	}

	bad := "time\tlineages\n1\t2\n0\t1\n"
	if _, err := ltt.Read(strings.NewReader(bad)); err == nil {
		t.Errorf("unsorted series: expecting error")
	}
}

func TestWritePlot(t *testing.T) {
	s := ltt.Series{{0, 1}, {1, 2}, {2, 3}}
	var buf bytes.Buffer
	if err := s.WritePlot(&buf, "svg", "test"); err != nil {
		t.Fatalf("unable to write plot: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Errorf("output is not an SVG file")
	}
}
