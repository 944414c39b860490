// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package controller_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyview/cache"
	"github.com/js-arias/phyview/controller"
	"github.com/js-arias/phyview/cull"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/render"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
	"github.com/js-arias/timetree"
)

const testTree = "((A:1,B:2)ab:3,C:4)root;"

func newController(t testing.TB, w, h float64) *controller.Controller {
	t.Helper()

	tr, err := newick.Parse(testTree)
	if err != nil {
		t.Fatalf("unable to parse tree %q: %v", testTree, err)
	}
	c := controller.New(controller.Options{
		Renderer: render.New(render.NewPool(2), cull.DefaultCaps()),
		View:     controller.DefaultViewport(w, h),
	})
	c.Update(controller.Load{Name: "test.tre", Trees: []*tree.Tree{tr}})
	if c.State() == nil {
		t.Fatalf("tree not loaded")
	}
	return c
}

func findNode(t testing.TB, c *controller.Controller, name string) tree.ID {
	t.Helper()
	ids := c.State().Tree().Find(name)
	if len(ids) != 1 {
		t.Fatalf("node %q: got %d nodes, want 1", name, len(ids))
	}
	return ids[0]
}

// nodePoint returns the window position of a node.
func nodePoint(t testing.TB, c *controller.Controller, id tree.ID) shape.Point {
	t.Helper()
	e, ok := c.State().Edges().Edge(id)
	if !ok {
		t.Fatalf("node %v: edge not found", id)
	}
	pt := c.Params().Point(e.X1, e.Y)
	v := c.View()
	return shape.Pt(pt.X-v.ScrollX, pt.Y-v.ScrollY)
}

func draw(t testing.TB, c *controller.Controller) {
	t.Helper()
	if _, err := c.Frames(context.Background()); err != nil {
		t.Fatalf("unable to draw: %v", err)
	}
	if d := c.State().Caches().Dirty(); d != 0 {
		t.Fatalf("after drawing: dirty layers %v", d)
	}
}

func hasEvent(ev []controller.Event, want controller.Event) bool {
	for _, e := range ev {
		if reflect.DeepEqual(e, want) {
			return true
		}
	}
	return false
}

func TestLoad(t *testing.T) {
	tr, err := newick.Parse(testTree)
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}
	c := controller.New(controller.Options{View: controller.DefaultViewport(400, 300)})
	if ev := c.Update(controller.PointerMoved{X: 10, Y: 10}); ev != nil {
		t.Errorf("without tree: unexpected events %v", ev)
	}

	ev := c.Update(controller.Load{Name: "test.tre", Trees: []*tree.Tree{tr}})
	want := controller.TreeChanged{Name: "test.tre", Index: 0, Trees: 1}
	if !hasEvent(ev, want) {
		t.Errorf("load: events %v, want %v", ev, want)
	}
	if n := c.State().TipCount(); n != 3 {
		t.Errorf("load: tips %d, want %d", n, 3)
	}
	if got := c.Series(); len(got) == 0 || got[len(got)-1].Count != 3 {
		t.Errorf("load: lineages-through-time %v", got)
	}

	frames, err := c.Frames(context.Background())
	if err != nil {
		t.Fatalf("unable to draw: %v", err)
	}
	if len(frames) != len(cache.Layers()) {
		t.Errorf("frames: got %d, want %d", len(frames), len(cache.Layers()))
	}

	st := c.State()
	ev = c.Update(controller.Load{Name: "bad.tre", Err: errors.New("bad tree")})
	if len(ev) != 1 {
		t.Fatalf("load error: got %d events, want 1", len(ev))
	}
	if _, ok := ev[0].(controller.ErrorBanner); !ok {
		t.Errorf("load error: got %T, want ErrorBanner", ev[0])
	}
	if c.State() != st {
		t.Errorf("load error: tree state changed")
	}
}

func TestInvalidation(t *testing.T) {
	c := newController(t, 400, 300)
	st := c.State()
	draw(t, c)

	c.Update(controller.ToggleSelect{Node: findNode(t, c, "C")})
	if got, want := st.Caches().Dirty(), cache.Of(cache.Selected); got != want {
		t.Errorf("selection: dirty %v, want %v", got, want)
	}
	draw(t, c)

	c.Update(controller.SetOrdering{Ordering: treestate.Ascending})
	d := st.Caches().Dirty()
	if !d.Has(cache.Edges) || d.Has(cache.Bounds) {
		t.Errorf("ordering: dirty %v", d)
	}
	draw(t, c)

	if ev := c.Update(controller.RootAt{Node: st.Tree().Root()}); ev != nil {
		t.Errorf("root at root: unexpected events %v", ev)
	}
	if d := st.Caches().Dirty(); d != 0 {
		t.Errorf("root at root: dirty %v", d)
	}

	c.Update(controller.ShowLabels{Class: controller.InternalLabels, Show: true})
	if got, want := st.Caches().Dirty(), cache.Of(cache.InternalLabels); got != want {
		t.Errorf("internal labels: dirty %v, want %v", got, want)
	}
}

func TestHover(t *testing.T) {
	c := newController(t, 400, 300)
	draw(t, c)

	a := findNode(t, c, "A")
	pt := nodePoint(t, c, a)
	ev := c.Update(controller.PointerMoved{X: pt.X + 2, Y: pt.Y + 2})
	if c.Hover() != a {
		t.Errorf("hover: got %v, want %v", c.Hover(), a)
	}
	if got, want := c.State().Caches().Dirty(), cache.Of(cache.Hovered, cache.CursorLine); got != want {
		t.Errorf("hover: dirty %v, want %v", got, want)
	}

	e, _ := c.State().Edges().Edge(a)
	r := c.Params().Rect
	var found bool
	for _, x := range ev {
		cur, ok := x.(controller.CursorOnTreeCanvas)
		if !ok {
			continue
		}
		found = true
		want := e.X1 + 2/r.Dx()
		if math.Abs(cur.X-want) > 1e-6 {
			t.Errorf("cursor: got %.6f, want %.6f", cur.X, want)
		}
	}
	if !found {
		t.Errorf("cursor: event not found in %v", ev)
	}

	c.Update(controller.PointerLeft{})
	if c.Hover() != tree.Nil {
		t.Errorf("pointer left: hovered node %v", c.Hover())
	}
}

func TestContextMenu(t *testing.T) {
	c := newController(t, 400, 300)
	draw(t, c)

	ab := findNode(t, c, "ab")
	pt := nodePoint(t, c, ab)
	ev := c.Update(controller.Clicked{X: pt.X, Y: pt.Y, Button: controller.Right})
	if len(ev) != 1 {
		t.Fatalf("right click: got %d events, want 1", len(ev))
	}
	menu, ok := ev[0].(controller.ContextMenu)
	if !ok {
		t.Fatalf("right click: got %T, want ContextMenu", ev[0])
	}
	if menu.Node != ab {
		t.Errorf("menu node: got %v, want %v", menu.Node, ab)
	}
	if want := []controller.Action{controller.Select, controller.CopySubtree}; !reflect.DeepEqual(menu.Actions, want) {
		t.Errorf("menu actions: got %v, want %v", menu.Actions, want)
	}
	if c.Mode() != controller.Menu {
		t.Errorf("mode: got %v, want %v", c.Mode(), controller.Menu)
	}

	if ev := c.Update(controller.Zoom{Width: 2, Height: 2}); ev != nil {
		t.Errorf("zoom with menu: unexpected events %v", ev)
	}
	if v := c.View(); v.ZoomW != 0 || v.ZoomH != 0 {
		t.Errorf("zoom with menu: got %d %d, want 0 0", v.ZoomW, v.ZoomH)
	}

	ev = c.Update(controller.MenuAction{Action: controller.CopySubtree})
	want := controller.Subtree{Node: ab, Newick: "(A:1,B:2)ab;"}
	if !hasEvent(ev, want) {
		t.Errorf("copy subtree: events %v, want %v", ev, want)
	}
	if c.Mode() != controller.Idle {
		t.Errorf("mode: got %v, want %v", c.Mode(), controller.Idle)
	}

	pt = nodePoint(t, c, findNode(t, c, "A"))
	ev = c.Update(controller.Clicked{X: pt.X, Y: pt.Y, Button: controller.Right})
	if len(ev) != 1 {
		t.Fatalf("right click on A: got %d events, want 1", len(ev))
	}
	menu = ev[0].(controller.ContextMenu)
	if want := []controller.Action{controller.Select, controller.RootHere}; !reflect.DeepEqual(menu.Actions, want) {
		t.Errorf("menu actions: got %v, want %v", menu.Actions, want)
	}
	c.Update(controller.MenuAction{Action: controller.RootHere})
	if h := c.State().Height(); math.Abs(h-7.5) > 1e-9 {
		t.Errorf("root at A: height %.3f, want %.3f", h, 7.5)
	}
}

func TestZoom(t *testing.T) {
	c := newController(t, 200, 100)

	c.Update(controller.Zoom{Width: 2, Height: 2})
	v := c.View()
	if v.ScrollX != 100 || v.ScrollY != 50 {
		t.Errorf("zoom in: origin %.1f %.1f, want %.1f %.1f", v.ScrollX, v.ScrollY, 100.0, 50.0)
	}
	if cv := v.Canvas(); cv.Dx() != 400 || cv.Dy() != 200 {
		t.Errorf("zoom in: canvas %.1fx%.1f, want %.1fx%.1f", cv.Dx(), cv.Dy(), 400.0, 200.0)
	}

	c.Update(controller.Zoom{Width: 0, Height: 0})
	v = c.View()
	if v.ScrollX != 0 || v.ScrollY != 0 {
		t.Errorf("zoom out: origin %.1f %.1f, want 0 0", v.ScrollX, v.ScrollY)
	}
}

func TestSync(t *testing.T) {
	c := newController(t, 400, 300)
	c.Update(controller.Zoom{Width: 2, Height: 0})

	ev := c.Update(controller.Scrolled{X: 100, Y: 0})
	if !hasEvent(ev, controller.LTTScrollTo{X: 100}) {
		t.Errorf("tree scroll: events %v, want LTTScrollTo", ev)
	}
	if ev := c.Update(controller.LTTScrolled{X: 100}); ev != nil {
		t.Errorf("plot echo: unexpected events %v", ev)
	}

	ev = c.Update(controller.LTTScrolled{X: 50})
	if !hasEvent(ev, controller.ScrollTo{X: 50, Y: 0}) {
		t.Errorf("plot scroll: events %v, want ScrollTo", ev)
	}
	if x := c.View().ScrollX; x != 50 {
		t.Errorf("plot scroll: origin %.1f, want %.1f", x, 50.0)
	}

	ev = c.Update(controller.Scrolled{X: 120, Y: 0})
	if !hasEvent(ev, controller.LTTScrollTo{X: 120}) {
		t.Errorf("tree scroll after echo: events %v, want LTTScrollTo", ev)
	}
	c.Update(controller.LTTScrolled{X: 120})

	c.Update(controller.SetProjection{Projection: layout.Fan})
	ev = c.Update(controller.Scrolled{X: 10, Y: 0})
	for _, e := range ev {
		if _, ok := e.(controller.LTTScrollTo); ok {
			t.Errorf("fan scroll: unexpected mirror %v", e)
		}
	}
}

func TestSearch(t *testing.T) {
	c := newController(t, 400, 300)
	draw(t, c)

	c.Update(controller.Search{Query: "B", TipsOnly: true})
	st := c.State()
	if n := len(st.Hits()); n != 1 {
		t.Fatalf("search: got %d hits, want 1", n)
	}
	if got, want := st.Caches().Dirty(), cache.Of(cache.Found); got != want {
		t.Errorf("search: dirty %v, want %v", got, want)
	}
	if ev := c.Update(controller.NextResult{}); ev != nil {
		t.Errorf("next result: unexpected events %v", ev)
	}
	if st.Cursor() != 0 {
		t.Errorf("next result: cursor %d, want 0", st.Cursor())
	}
}

func TestKeys(t *testing.T) {
	c := newController(t, 400, 300)

	c.Update(controller.KeyPressed{Key: "p"})
	if p := c.View().Projection; p != layout.Fan {
		t.Errorf("key p: projection %v, want %v", p, layout.Fan)
	}
	if ev := c.Update(controller.KeyPressed{Key: "a"}); ev != nil {
		t.Errorf("key a at full circle: unexpected events %v", ev)
	}
	c.Update(controller.KeyPressed{Key: "A"})
	if got, want := c.View().OpenAngle, layout.MaxOpenAngle-controller.AngleStep; math.Abs(got-want) > 1e-9 {
		t.Errorf("key A: open angle %.4f, want %.4f", got, want)
	}
	c.Update(controller.KeyPressed{Key: "o"})
	if o := c.State().Ordering(); o != treestate.Ascending {
		t.Errorf("key o: ordering %v, want %v", o, treestate.Ascending)
	}
}

func TestExportTo(t *testing.T) {
	c := newController(t, 400, 300)
	dir := t.TempDir()

	name := filepath.Join(dir, "tree.svg")
	if ev := c.Update(controller.ExportTo{Name: name}); !hasEvent(ev, controller.Exported{Name: name}) {
		t.Fatalf("export svg: events %v", ev)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read %q: %v", name, err)
	}
	if !strings.Contains(string(b), "<svg") {
		t.Errorf("export svg: output is not an SVG file")
	}

	name = filepath.Join(dir, "tree.nwk")
	c.Update(controller.ExportTo{Name: name})
	b, err = os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read %q: %v", name, err)
	}
	if got := strings.TrimSpace(string(b)); got != testTree {
		t.Errorf("export newick: got %q, want %q", got, testTree)
	}

	ev := c.Update(controller.ExportTo{Name: filepath.Join(dir, "none", "tree.png")})
	if len(ev) != 1 {
		t.Fatalf("export error: got %d events, want 1", len(ev))
	}
	if _, ok := ev[0].(controller.ErrorBanner); !ok {
		t.Errorf("export error: got %T, want ErrorBanner", ev[0])
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	name := filepath.Join(dir, "trees.nwk")
	if err := os.WriteFile(name, []byte(testTree+"\n(X,Y);\n"), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
	m := controller.ReadFile(name)
	if m.Err != nil {
		t.Fatalf("unable to read %q: %v", name, m.Err)
	}
	if len(m.Trees) != 2 {
		t.Errorf("newick file: got %d trees, want %d", len(m.Trees), 2)
	}

	// time-calibrated trees
	tr, err := newick.Parse("((A:1,B:1):2,C:3);")
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}
	tt, err := tr.TimeTree("dated", tree.MillionYears)
	if err != nil {
		t.Fatalf("unable to build time tree: %v", err)
	}
	tc := timetree.NewCollection()
	if err := tc.Add(tt); err != nil {
		t.Fatalf("unable to add time tree: %v", err)
	}
	var buf bytes.Buffer
	if err := tc.TSV(&buf); err != nil {
		t.Fatalf("unable to write time trees: %v", err)
	}
	name = filepath.Join(dir, "trees.tab")
	if err := os.WriteFile(name, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
	m = controller.ReadFile(name)
	if m.Err != nil {
		t.Fatalf("unable to read %q: %v", name, m.Err)
	}
	if len(m.Trees) != 1 {
		t.Fatalf("time tree file: got %d trees, want %d", len(m.Trees), 1)
	}
	if got := m.Trees[0]; len(got.Tips()) != 3 || math.Abs(got.Height()-3) > 1e-6 {
		t.Errorf("time tree: got %d terminals and height %.3f, want %d and %.3f", len(got.Tips()), got.Height(), 3, 3.0)
	}

	if m := controller.ReadFile(filepath.Join(dir, "none.nwk")); m.Err == nil {
		t.Errorf("missing file: expecting error")
	}
}
