// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package render_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/js-arias/phyview/cache"
	"github.com/js-arias/phyview/cull"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/render"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
)

func newState(t testing.TB, s string) *treestate.State {
	t.Helper()

	tr, err := newick.Parse(s)
	if err != nil {
		t.Fatalf("unable to parse tree %q: %v", s, err)
	}
	return treestate.New(tr, treestate.Options{Chunks: 2, RootStub: true})
}

func request(st *treestate.State, proj layout.Projection) render.Request {
	canvas := shape.R(0, 0, 400, 300)
	rect := layout.TreeRect(canvas, proj, 40, 20, true)
	return render.Request{
		Params: layout.Params{
			Projection:  proj,
			Rect:        rect,
			OpenAngle:   layout.MaxOpenAngle,
			RootLen:     20,
			DrawRoot:    true,
			Tips:        st.TipCount(),
			LabelOffset: 6,
		},
		Canvas:  canvas,
		Visible: canvas,
		Hover:   tree.Nil,
	}
}

func findNode(t testing.TB, st *treestate.State, name string) tree.ID {
	t.Helper()
	ids := st.Tree().Find(name)
	if len(ids) != 1 {
		t.Fatalf("node %q: got %d nodes, want 1", name, len(ids))
	}
	return ids[0]
}

func TestFrames(t *testing.T) {
	for _, proj := range []layout.Projection{layout.Phylogram, layout.Fan} {
		st := newState(t, "((A:1,B:2)ab:3,C:4);")
		r := render.New(render.NewPool(2), cull.DefaultCaps())
		style := render.DefaultStyle(1)
		style.TipSize = 1

		req := request(st, proj)
		frames, err := r.Frames(context.Background(), st, st.Caches(), req, style)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", proj, err)
		}
		if len(frames) != len(cache.Layers()) {
			t.Fatalf("%s: frames: got %d, want %d", proj, len(frames), len(cache.Layers()))
		}
		if frames[cache.Edges].Len() == 0 {
			t.Errorf("%s: edges layer is empty", proj)
		}
		if got := len(frames[cache.TipLabels].Texts); got != 3 {
			t.Errorf("%s: tip labels: got %d, want %d", proj, got, 3)
		}
		if got := len(frames[cache.Legend].Texts); got != 1 {
			t.Errorf("%s: legend: got %d texts, want %d", proj, got, 1)
		}
		if frames[cache.Selected].Len() != 0 {
			t.Errorf("%s: selected layer is not empty", proj)
		}
		if st.Caches().Dirty() != 0 {
			t.Errorf("%s: dirty layers after render: %v", proj, st.Caches().Dirty())
		}

		// cached frames are reused
		again, err := r.Frames(context.Background(), st, st.Caches(), req, style)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", proj, err)
		}
		for i := range frames {
			if frames[i] != again[i] {
				t.Errorf("%s: layer %v: frame was rebuilt", proj, cache.Layer(i))
			}
		}
	}
}

func TestSelectionLayer(t *testing.T) {
	st := newState(t, "((A:1,B:2)ab:3,C:4);")
	r := render.New(nil, cull.DefaultCaps())
	style := render.DefaultStyle(1)
	req := request(st, layout.Phylogram)

	if _, err := r.Frames(context.Background(), st, st.Caches(), req, style); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edges, _ := st.Caches().Get(cache.Edges)

	st.ToggleSelect(findNode(t, st, "ab"))
	st.ToggleSelect(findNode(t, st, "C"))
	st.Caches().Apply(cache.Selection)

	frames, err := r.Frames(context.Background(), st, st.Caches(), req, style)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := frames[cache.Selected].Len(); got != 2 {
		t.Errorf("selected markers: got %d, want %d", got, 2)
	}
	if frames[cache.Edges] != edges {
		t.Errorf("edges layer rebuilt after a selection change")
	}
}

// balanced returns a balanced tree
// with the indicated number of terminals,
// named "t0", "t1", ...
func balanced(t testing.TB, tips int) *tree.Tree {
	t.Helper()

	tr := tree.New("balanced")
	root, err := tr.Add(tree.Nil, "")
	if err != nil {
		t.Fatalf("unable to add root: %v", err)
	}
	leaves := []tree.ID{root}
	for len(leaves) < tips {
		p := leaves[0]
		leaves = leaves[1:]
		for j := 0; j < 2; j++ {
			id, err := tr.Add(p, "")
			if err != nil {
				t.Fatalf("unable to add node: %v", err)
			}
			leaves = append(leaves, id)
		}
	}
	for i, id := range tr.Tips() {
		tr.SetName(id, fmt.Sprintf("t%d", i))
	}
	return tr
}

func TestFoundLayerLargeFan(t *testing.T) {
	const tips = 20_000
	st := treestate.New(balanced(t, tips), treestate.Options{Chunks: 4, RootStub: true})
	r := render.New(render.NewPool(4), cull.DefaultCaps())
	style := render.DefaultStyle(1)
	req := request(st, layout.Fan)

	if n := st.Search("t", true); n != tips {
		t.Fatalf("search: got %d results, want %d", n, tips)
	}
	frames, err := r.Frames(context.Background(), st, st.Caches(), req, style)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(frames[cache.Found].Shapes); got != tips {
		t.Errorf("found markers: got %d, want %d", got, tips)
	}

	// a search change rebuilds only the found layer
	edges := frames[cache.Edges]
	if n := st.Search("t1", true); n == 0 || n == tips {
		t.Fatalf("search %q: got %d results", "t1", n)
	}
	st.Caches().Apply(cache.Search)
	frames, err = r.Frames(context.Background(), st, st.Caches(), req, style)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := len(frames[cache.Found].Shapes), len(st.Hits()); got != want {
		t.Errorf("found markers: got %d, want %d", got, want)
	}
	if frames[cache.Edges] != edges {
		t.Errorf("edges layer rebuilt after a search change")
	}
}

func BenchmarkFoundLayer(b *testing.B) {
	const tips = 50_000
	st := treestate.New(balanced(b, tips), treestate.Options{RootStub: true})
	r := render.New(render.NewPool(0), cull.DefaultCaps())
	style := render.DefaultStyle(1)
	req := request(st, layout.Fan)
	st.Search("t", true)
	if _, err := r.Frames(context.Background(), st, st.Caches(), req, style); err != nil {
		b.Fatalf("unexpected error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		st.NextHit()
		st.Caches().Apply(cache.Search)
		if _, err := r.Frames(context.Background(), st, st.Caches(), req, style); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func TestExportFrames(t *testing.T) {
	st := newState(t, "((A:1,B:2)ab:3,C:4);")
	st.Search("a", false)
	r := render.New(nil, cull.Caps{})
	style := render.DefaultStyle(1)
	req := request(st, layout.Phylogram)
	req.Export = true

	frames, err := r.Frames(context.Background(), st, cache.NewStore(), req, style)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(frames[cache.TipLabels].Texts); got != 3 {
		t.Errorf("tip labels: got %d, want %d", got, 3)
	}
	if frames[cache.Found].Len() != 0 {
		t.Errorf("found layer drawn in export")
	}
}

func TestMap(t *testing.T) {
	p := render.NewPool(3)
	got, err := render.Map(context.Background(), p, 10, func(start, end int) int {
		return end - start
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{3, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("parts: got %v, want %v", got, want)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("part %d: got %d, want %d", i, got[i], w)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := render.Map(ctx, p, 10, func(start, end int) int { return 0 }); err == nil {
		t.Errorf("expecting error on a canceled context")
	}
}

func TestNearest(t *testing.T) {
	nodes := []render.NodeData{
		{Label: "a", Point: shape.Pt(0, 0)},
		{Label: "b", Point: shape.Pt(10, 0)},
	}
	n, ok := render.Nearest(nodes, shape.Pt(8, 1), 5)
	if !ok || n.Label != "b" {
		t.Errorf("nearest: got %q (%v), want %q", n.Label, ok, "b")
	}
	if _, ok := render.Nearest(nodes, shape.Pt(5, 20), 5); ok {
		t.Errorf("nearest: unexpected node found")
	}
}
