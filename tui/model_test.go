// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tui_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/js-arias/phyview/controller"
	"github.com/js-arias/phyview/cull"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/render"
	"github.com/js-arias/phyview/tree"
	phyview "github.com/js-arias/phyview/tui"
)

const testTree = "((Alpha:1,Beta:2)ab:3,Gamma:4)root;"

func newModel(t testing.TB) *phyview.Model {
	t.Helper()

	tr, err := newick.Parse(testTree)
	if err != nil {
		t.Fatalf("unable to parse tree %q: %v", testTree, err)
	}
	m := phyview.New("", phyview.Options{
		Controller: controller.Options{
			Renderer: render.New(render.NewPool(2), cull.DefaultCaps()),
		},
	})
	update(m, tui.WindowSizeMsg{Width: 80, Height: 30})
	update(m, controller.Load{Name: "test.tre", Trees: []*tree.Tree{tr}})
	if m.Controller().State() == nil {
		t.Fatalf("tree not loaded")
	}
	return m
}

func update(m *phyview.Model, msg tui.Msg) tui.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func runes(s string) tui.KeyMsg {
	return tui.KeyMsg{Type: tui.KeyRunes, Runes: []rune(s)}
}

// cellOf returns the cell of a node in the tree window.
func cellOf(t testing.TB, m *phyview.Model, name string) (x, y int) {
	t.Helper()
	c := m.Controller()
	ids := c.State().Tree().Find(name)
	if len(ids) != 1 {
		t.Fatalf("node %q: got %d nodes, want 1", name, len(ids))
	}
	e, ok := c.State().Edges().Edge(ids[0])
	if !ok {
		t.Fatalf("node %q: edge not found", name)
	}
	pt := c.Params().Point(e.X1, e.Y)
	v := c.View()
	return int(pt.X-v.ScrollX) / phyview.DotsX, int(pt.Y-v.ScrollY) / phyview.DotsY
}

func TestView(t *testing.T) {
	m := newModel(t)

	v := m.Controller().View()
	if v.Width != 80*phyview.DotsX {
		t.Errorf("window width: got %.0f, want %d", v.Width, 80*phyview.DotsX)
	}

	view := m.View()
	for _, s := range []string{"Gamma", "3 terminals", "test.tre [1/1]", "rooted h=5 non-ultrametric", "phylogram"} {
		if !strings.Contains(view, s) {
			t.Errorf("view: %q not found", s)
		}
	}
	if !strings.ContainsFunc(view, func(r rune) bool {
		return r > 0x2800 && r <= 0x28ff
	}) {
		t.Errorf("view: tree not drawn")
	}
}

func TestKeys(t *testing.T) {
	m := newModel(t)

	update(m, runes("p"))
	if p := m.Controller().View().Projection; p != layout.Fan {
		t.Errorf("projection: got %v, want %v", p, layout.Fan)
	}
	if !strings.Contains(m.View(), "fan") {
		t.Errorf("status: projection not updated")
	}

	update(m, runes("?"))
	if !strings.Contains(m.View(), "open angle") {
		t.Errorf("help: full help not shown")
	}

	// search prompt
	update(m, runes("/"))
	update(m, runes("Gam"))
	update(m, tui.KeyMsg{Type: tui.KeyEnter})
	st := m.Controller().State()
	if len(st.Hits()) != 1 || st.Query() != "Gam" {
		t.Errorf("search: got %d hits for %q, want %d for %q", len(st.Hits()), st.Query(), 1, "Gam")
	}

	// a closed prompt ignores the query
	update(m, runes("f"))
	update(m, runes("Alpha"))
	update(m, tui.KeyMsg{Type: tui.KeyEsc})
	if st.Query() != "Gam" {
		t.Errorf("search: got %q, want %q", st.Query(), "Gam")
	}

	cmd := update(m, runes("q"))
	if cmd == nil {
		t.Fatalf("quit: command not returned")
	}
	if _, ok := cmd().(tui.QuitMsg); !ok {
		t.Errorf("quit: got %T, want tea.QuitMsg", cmd())
	}
}

func TestMouse(t *testing.T) {
	m := newModel(t)

	x, y := cellOf(t, m, "ab")
	update(m, tui.MouseMsg{X: x, Y: y, Action: tui.MouseActionMotion, Button: tui.MouseButtonNone})
	st := m.Controller().State()
	if h := m.Controller().Hover(); st.Tree().Label(h) != "ab" {
		t.Errorf("hover: got %q, want %q", st.Tree().Label(h), "ab")
	}

	update(m, tui.MouseMsg{X: x, Y: y, Action: tui.MouseActionPress, Button: tui.MouseButtonLeft})
	ab := st.Tree().Find("ab")[0]
	if !st.IsSelected(ab) {
		t.Errorf("click: node %q not selected", "ab")
	}

	// context menu
	update(m, tui.MouseMsg{X: x, Y: y, Action: tui.MouseActionPress, Button: tui.MouseButtonRight})
	if mode := m.Controller().Mode(); mode != controller.Menu {
		t.Fatalf("context menu: got mode %v, want %v", mode, controller.Menu)
	}
	if !strings.Contains(m.View(), "2 copy subtree") {
		t.Errorf("context menu: actions not shown")
	}
	update(m, runes("2"))
	if mode := m.Controller().Mode(); mode != controller.Idle {
		t.Errorf("context menu: got mode %v, want %v", mode, controller.Idle)
	}
	want := []string{"(Alpha:1,Beta:2)ab;"}
	if got := m.Subtrees(); len(got) != 1 || got[0] != want[0] {
		t.Errorf("subtree: got %v, want %v", got, want)
	}

	// leaving the window
	update(m, tui.MouseMsg{X: 10, Y: 28, Action: tui.MouseActionMotion, Button: tui.MouseButtonNone})
	if h := m.Controller().Hover(); h != tree.Nil {
		t.Errorf("pointer left: got hover %v, want none", h)
	}

	// wheel
	update(m, runes("+"))
	update(m, tui.MouseMsg{X: 5, Y: 5, Action: tui.MouseActionPress, Button: tui.MouseButtonWheelDown})
	if v := m.Controller().View(); v.ScrollY <= 0 {
		t.Errorf("wheel: got scroll %.1f, want > 0", v.ScrollY)
	}
}

func TestTable(t *testing.T) {
	m := newModel(t)

	update(m, runes("T"))
	if v := m.Controller().View(); v.Width >= 80*phyview.DotsX {
		t.Errorf("table: window width %.0f not reduced", v.Width)
	}
	if !strings.Contains(m.View(), "label") {
		t.Errorf("table: header not shown")
	}

	// the first row is the root,
	// the second row is the first child
	update(m, tui.KeyMsg{Type: tui.KeyDown})
	update(m, tui.KeyMsg{Type: tui.KeyEnter})
	st := m.Controller().State()
	ab := st.Tree().Find("ab")[0]
	if !st.IsSelected(ab) {
		t.Errorf("table: node %q not selected", "ab")
	}

	update(m, runes("3"))
	if col, _, ok := m.Controller().Table().Sort(); !ok || col.String() != "label" {
		t.Errorf("table: got sort %v %v, want %q", col, ok, "label")
	}
}

func TestExport(t *testing.T) {
	m := newModel(t)
	name := filepath.Join(t.TempDir(), "tree.svg")

	update(m, runes("e"))
	if !strings.Contains(m.View(), "test.svg") {
		t.Errorf("export: default name not shown")
	}
	update(m, tui.KeyMsg{Type: tui.KeyCtrlU})
	update(m, runes(name))
	update(m, tui.KeyMsg{Type: tui.KeyEnter})

	if _, err := os.Stat(name); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(m.View(), "exported") {
		t.Errorf("export: status not updated")
	}

	update(m, runes("e"))
	update(m, tui.KeyMsg{Type: tui.KeyCtrlU})
	update(m, runes(filepath.Join(t.TempDir(), "none", "tree.svg")))
	update(m, tui.KeyMsg{Type: tui.KeyEnter})
	if m.Err() == nil {
		t.Errorf("export: expecting error")
	}
}

func TestWatcher(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tree.nwk")
	if err := os.WriteFile(name, []byte(testTree+"\n"), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}

	w, err := phyview.NewWatcher(name)
	if err != nil {
		t.Fatalf("unable to watch %q: %v", name, err)
	}
	defer w.Close()

	if err := os.WriteFile(name, []byte("(A,B);\n"), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatalf("watcher: change not reported")
	}
}

func TestWatcherClose(t *testing.T) {
	name := filepath.Join(t.TempDir(), "tree.nwk")
	if err := os.WriteFile(name, []byte(testTree+"\n"), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}

	w, err := phyview.NewWatcher(name)
	if err != nil {
		t.Fatalf("unable to watch %q: %v", name, err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = w.Close()
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("close %d: unexpected error: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Errorf("close after close: unexpected error: %v", err)
	}
}
