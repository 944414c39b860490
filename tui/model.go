// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tui implements a terminal host
// for the tree viewer controller.
//
// The tree is drawn with braille patterns,
// in which each dot is a pixel of the tree canvas.
package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/js-arias/phyview/controller"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/nodetable"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
)

// Rows used by the lineages-through-time strip,
// without the ruler.
const lttRows = 4

var (
	errorStyle  = styles.NewStyle().Foreground(styles.Color("9")).Bold(true)
	statusStyle = styles.NewStyle().Foreground(styles.Color("245"))
	menuStyle   = styles.NewStyle().Foreground(styles.Color("212"))
)

type prompt int

const (
	noPrompt prompt = iota
	searchPrompt
	tipsPrompt
	exportPrompt
)

// Options are the options of a terminal viewer.
type Options struct {
	Controller controller.Options

	// If set,
	// the file is read again when it changes.
	Watch bool

	// If nil,
	// log records are discarded.
	Logger *slog.Logger
}

// Model is a terminal viewer of phylogenetic trees.
// It implements the bubbletea Model interface.
type Model struct {
	ctrl *controller.Controller
	log  *slog.Logger

	keys   keyMap
	help   help.Model
	input  textinput.Model
	prompt prompt

	table      *tablePane
	showTable  bool
	tableFocus bool
	strip      *lttStrip

	width, height      int
	treeCols, treeRows int

	tree  string
	dirty bool

	status   string
	err      error
	menu     *controller.ContextMenu
	subtrees []string

	// relative position of the pointer
	// in the tree rectangle
	cursor    float64
	hasCursor bool
	inside    bool

	name    string
	watch   bool
	file    string
	watcher *Watcher
}

// New returns a terminal viewer.
// If name is not empty,
// the trees of the file are read when the program starts.
func New(name string, opts Options) *Model {
	if opts.Logger == nil {
		// equivalent to slog.DiscardHandler (Go 1.24+), unavailable in the go 1.21 toolchain
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if opts.Controller.Logger == nil {
		opts.Controller.Logger = opts.Logger
	}
	if opts.Controller.RowHeight == 0 {
		opts.Controller.RowHeight = 1
	}

	in := textinput.New()
	in.CharLimit = 256

	return &Model{
		ctrl:  controller.New(opts.Controller),
		log:   opts.Logger,
		keys:  newKeyMap(),
		help:  help.New(),
		input: in,
		table: newTablePane(),
		strip: newLTTStrip(1, lttRows),
		name:  name,
		watch: opts.Watch,
	}
}

// Controller returns the controller of the viewer.
func (m *Model) Controller() *controller.Controller {
	return m.ctrl
}

// Subtrees returns the subtrees copied
// from the context menu.
func (m *Model) Subtrees() []string {
	return m.subtrees
}

// Err returns the last error shown by the viewer.
func (m *Model) Err() error {
	return m.err
}

// Close stops watching the tree file.
func (m *Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	err := m.watcher.Close()
	m.watcher = nil
	return err
}

// Init implements the bubbletea Model interface.
func (m *Model) Init() tui.Cmd {
	cmds := []tui.Cmd{tui.SetWindowTitle("phyview")}
	if m.name != "" {
		cmds = append(cmds, loadFile(m.name))
	}
	return tui.Batch(cmds...)
}

// loadFile returns a command that reads a tree file.
func loadFile(name string) tui.Cmd {
	return func() tui.Msg {
		return controller.ReadFile(name)
	}
}

// Update implements the bubbletea Model interface.
func (m *Model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	var cmd tui.Cmd
	switch msg := msg.(type) {
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cmd = m.layout()
	case tui.KeyMsg:
		cmd = m.key(msg)
	case tui.MouseMsg:
		cmd = m.mouse(msg)
	case controller.Load:
		cmd = m.send(msg)
	case fileChanged:
		m.log.Info("file changed", "file", msg.name)
		cmd = tui.Batch(loadFile(msg.name), watchFile(m.watcher, msg.name))
	}
	m.refresh()
	return m, cmd
}

// send sends a message to the controller
// and processes the resulting events.
func (m *Model) send(msg controller.Msg) tui.Cmd {
	return m.handle(m.ctrl.Update(msg))
}

func (m *Model) handle(evs []controller.Event) tui.Cmd {
	var cmds []tui.Cmd
	for len(evs) > 0 {
		ev := evs[0]
		evs = evs[1:]
		switch e := ev.(type) {
		case controller.Redraw:
			m.dirty = true
		case controller.ScrollTo:
			// the tree window is always drawn
			// at the origin of the viewport
			m.dirty = true
		case controller.LTTScrollTo:
			m.strip.scroll = e.X
			m.dirty = true
			evs = append(evs, m.ctrl.Update(controller.LTTScrolled{X: e.X})...)
		case controller.CursorOnTreeCanvas:
			m.cursor = e.X
			m.hasCursor = true
		case controller.ContextMenu:
			menu := e
			m.menu = &menu
		case controller.Subtree:
			m.subtrees = append(m.subtrees, e.Newick)
			m.status = "subtree: " + e.Newick
		case controller.TreeChanged:
			m.err = nil
			m.status = ""
			m.table.cursor, m.table.offset = 0, 0
			m.strip.scroll = 0
			if c := m.watchTree(e.Name); c != nil {
				cmds = append(cmds, c)
			}
			m.log.Info("tree", "file", e.Name, "index", e.Index, "trees", e.Trees)
		case controller.Exported:
			m.status = "exported: " + filepath.Base(e.Name)
			m.log.Info("export", "file", e.Name)
		case controller.ErrorBanner:
			m.err = e.Err
			m.log.Error("viewer", "err", e.Err)
		}
	}
	if m.ctrl.Mode() == controller.Idle {
		m.menu = nil
	}
	return tui.Batch(cmds...)
}

// watchTree starts watching a tree file.
func (m *Model) watchTree(name string) tui.Cmd {
	if !m.watch || (m.watcher != nil && m.file == name) {
		return nil
	}
	m.Close()
	w, err := NewWatcher(name)
	if err != nil {
		m.log.Warn("watch", "file", name, "err", err)
		return nil
	}
	m.watcher = w
	m.file = name
	return watchFile(w, name)
}

// footerRows returns the number of rows
// used by the help.
func (m *Model) footerRows() int {
	if !m.help.ShowAll {
		return 1
	}
	return max(styles.Height(m.help.View(m.keys)), 1)
}

// layout sets the size of the panes
// from the size of the terminal.
func (m *Model) layout() tui.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	m.help.Width = m.width
	m.input.Width = max(m.width-20, 10)

	// the status line and the ruler of the strip
	rows := m.height - lttRows - 2 - m.footerRows()
	m.treeRows = max(rows, 1)
	m.treeCols = m.width
	if m.showTable {
		tw := m.width * 2 / 5
		m.table.resize(tw, m.treeRows)
		m.treeCols = max(m.width-tw-1, 1)
	}
	m.strip.resize(m.treeCols, lttRows)
	m.dirty = true

	return m.send(controller.Resized{
		Width:  float64(m.treeCols * DotsX),
		Height: float64(m.treeRows * DotsY),
	})
}

func (m *Model) key(msg tui.KeyMsg) tui.Cmd {
	if m.prompt != noPrompt {
		return m.promptKey(msg)
	}
	m.err = nil

	if m.menu != nil {
		if n, err := strconv.Atoi(msg.String()); err == nil && n > 0 && n <= len(m.menu.Actions) {
			return m.send(controller.MenuAction{Action: m.menu.Actions[n-1]})
		}
		if key.Matches(msg, m.keys.Quit) {
			return tui.Quit
		}
		return m.send(controller.KeyPressed{Key: msg.String()})
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tui.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.layout()
	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(searchPrompt, "search: ", "")
	case key.Matches(msg, m.keys.SearchTips):
		return m.openPrompt(tipsPrompt, "search terminals: ", "")
	case key.Matches(msg, m.keys.Export):
		return m.openPrompt(exportPrompt, "export to: ", m.exportName())
	case key.Matches(msg, m.keys.Table):
		m.showTable = !m.showTable
		m.tableFocus = m.showTable
		return m.layout()
	case key.Matches(msg, m.keys.Focus):
		if m.showTable {
			m.tableFocus = !m.tableFocus
		}
		return nil
	}

	if m.showTable && m.tableFocus {
		if cmd, ok := m.tableKey(msg); ok {
			return cmd
		}
	}
	return m.send(controller.KeyPressed{Key: msg.String()})
}

// exportName returns the default name of an exported file.
func (m *Model) exportName() string {
	name, _, _ := m.ctrl.File()
	if name == "" {
		return "tree.svg"
	}
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".svg"
}

func (m *Model) tableKey(msg tui.KeyMsg) (tui.Cmd, bool) {
	t := m.ctrl.Table()
	if t == nil {
		return nil, false
	}
	switch s := msg.String(); s {
	case "up":
		m.table.move(t, -1)
	case "down":
		m.table.move(t, 1)
	case "pgup":
		m.table.move(t, -m.table.rows())
	case "pgdown":
		m.table.move(t, m.table.rows())
	case "home":
		m.table.move(t, -t.Len())
	case "end":
		m.table.move(t, t.Len())
	case "enter", " ":
		return m.send(controller.TableClicked{Row: m.table.cursor}), true
	case "1", "2", "3":
		n, _ := strconv.Atoi(s)
		return m.send(controller.SortTable{Column: nodetable.Columns()[n-1]}), true
	default:
		return nil, false
	}
	return nil, true
}

func (m *Model) openPrompt(p prompt, label, value string) tui.Cmd {
	m.prompt = p
	m.input.Prompt = label
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.prompt = noPrompt
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) promptKey(msg tui.KeyMsg) tui.Cmd {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return nil
	case "enter":
		v := strings.TrimSpace(m.input.Value())
		p := m.prompt
		m.closePrompt()
		switch p {
		case searchPrompt:
			return m.send(controller.Search{Query: v})
		case tipsPrompt:
			return m.send(controller.Search{Query: v, TipsOnly: true})
		case exportPrompt:
			if v == "" {
				return nil
			}
			return m.send(controller.ExportTo{Name: v})
		}
		return nil
	}

	var cmd tui.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) mouse(msg tui.MouseMsg) tui.Cmd {
	if msg.X < m.treeCols && msg.Y < m.treeRows {
		return m.treeMouse(msg)
	}

	var cmds []tui.Cmd
	if m.inside {
		m.inside = false
		m.hasCursor = false
		cmds = append(cmds, m.send(controller.PointerLeft{}))
	}

	switch {
	case msg.X < m.treeCols && msg.Y < m.treeRows+lttRows:
		if m.ctrl.View().Projection != layout.Phylogram {
			break
		}
		step := float64(m.treeCols*DotsX) / 10
		switch msg.Button {
		case tui.MouseButtonWheelUp, tui.MouseButtonWheelLeft:
			m.strip.scroll -= step
		case tui.MouseButtonWheelDown, tui.MouseButtonWheelRight:
			m.strip.scroll += step
		default:
			return tui.Batch(cmds...)
		}
		m.strip.scroll = max(m.strip.scroll, 0)
		m.dirty = true
		cmds = append(cmds, m.send(controller.LTTScrolled{X: m.strip.scroll}))
	case m.showTable && msg.X > m.treeCols && msg.Y < m.treeRows:
		t := m.ctrl.Table()
		if t == nil {
			break
		}
		switch {
		case msg.Button == tui.MouseButtonWheelUp:
			m.table.move(t, -3)
		case msg.Button == tui.MouseButtonWheelDown:
			m.table.move(t, 3)
		case msg.Action == tui.MouseActionPress && msg.Button == tui.MouseButtonLeft:
			if row, ok := m.table.rowAt(t, msg.Y); ok {
				m.table.cursor = row
				cmds = append(cmds, m.send(controller.TableClicked{Row: row}))
			}
		}
	}
	return tui.Batch(cmds...)
}

// treeMouse processes the mouse events on the tree window.
// The pointer is placed at the center of the cell.
func (m *Model) treeMouse(msg tui.MouseMsg) tui.Cmd {
	x := float64(msg.X*DotsX) + DotsX/2
	y := float64(msg.Y*DotsY) + DotsY/2
	m.inside = true

	wheel := func(dx, dy float64) tui.Cmd {
		if msg.Shift {
			dx, dy = dy, dx
		}
		v := m.ctrl.View()
		return m.send(controller.Scrolled{
			X: v.ScrollX + dx*v.Width/10,
			Y: v.ScrollY + dy*v.Height/10,
		})
	}

	switch msg.Button {
	case tui.MouseButtonWheelUp:
		return wheel(0, -1)
	case tui.MouseButtonWheelDown:
		return wheel(0, 1)
	case tui.MouseButtonWheelLeft:
		return wheel(-1, 0)
	case tui.MouseButtonWheelRight:
		return wheel(1, 0)
	}

	switch msg.Action {
	case tui.MouseActionPress:
		b := controller.Left
		switch msg.Button {
		case tui.MouseButtonLeft:
		case tui.MouseButtonRight:
			b = controller.Right
		default:
			return nil
		}
		return m.send(controller.Clicked{X: x, Y: y, Button: b})
	case tui.MouseActionMotion:
		m.hasCursor = false
		return m.send(controller.PointerMoved{X: x, Y: y})
	}
	return nil
}

// refresh draws the tree window
// if it was changed.
func (m *Model) refresh() {
	if m.showTable {
		m.table.sync(m.ctrl.Table())
	}
	if !m.dirty || m.treeRows == 0 {
		return
	}
	m.dirty = false

	cv := NewCanvas(m.treeCols, m.treeRows)
	frames, err := m.ctrl.Frames(context.Background())
	if err != nil {
		m.err = err
		m.log.Error("draw", "err", err)
	}
	v := m.ctrl.View()
	origin := shape.Pt(v.ScrollX, v.ScrollY)
	for _, f := range frames {
		cv.Draw(f, origin)
	}
	m.tree = cv.String()

	if v.Projection != layout.Phylogram {
		m.strip.scroll = 0
	}
	x0, x1 := m.lttRange()
	m.strip.fill(m.ctrl.Series(), x0, x1)
}

// lttRange returns the canvas positions
// of the time axis of the lineages-through-time strip.
func (m *Model) lttRange() (x0, x1 float64) {
	if m.ctrl.View().Projection == layout.Phylogram {
		r := m.ctrl.Params().Rect
		return r.Min.X, r.Max.X
	}
	return 0, float64(m.treeCols * DotsX)
}

// View implements the bubbletea Model interface.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}

	top := m.tree
	if m.showTable {
		left := styles.NewStyle().Width(m.treeCols).Height(m.treeRows).Render(m.tree)
		top = styles.JoinHorizontal(styles.Top, left, " ", m.table.view())
	}

	x0, x1 := m.lttRange()
	cursor := x0 + m.cursor*(x1-x0)
	ruler := m.strip.ruler(m.ctrl.Series(), cursor, m.hasCursor, x0, x1)

	return styles.JoinVertical(styles.Left,
		top,
		m.strip.String(),
		statusStyle.Render(ruler),
		m.statusLine(),
		m.footer(),
	)
}

func (m *Model) statusLine() string {
	if m.err != nil {
		return errorStyle.Render("error: " + m.err.Error())
	}
	st := m.ctrl.State()
	if st == nil {
		return statusStyle.Render("no tree loaded")
	}

	v := m.ctrl.View()
	name, index, trees := m.ctrl.File()
	parts := []string{fmt.Sprintf("%s [%d/%d]", filepath.Base(name), index+1, trees)}
	// event messages go first so they are not truncated
	if m.status != "" {
		parts = append(parts, m.status)
	}
	parts = append(parts,
		humanize.Comma(int64(st.TipCount()))+" terminals",
		treeFacts(st),
		v.Projection.String(),
		st.Ordering().String(),
		fmt.Sprintf("zoom %gx%g", controller.ZoomLevels[v.ZoomW], controller.ZoomLevels[v.ZoomH]),
	)
	if n := len(st.Selected()); n > 0 {
		parts = append(parts, humanize.Comma(int64(n))+" selected")
	}
	if q := st.Query(); q != "" {
		hits := len(st.Hits())
		parts = append(parts, fmt.Sprintf("%q: %d/%s", q, st.Cursor()+1, humanize.Comma(int64(hits))))
	}
	if id := m.ctrl.Hover(); id != tree.Nil {
		if l := st.Tree().Label(id); l != "" {
			parts = append(parts, l)
		}
	}
	line := strings.Join(parts, " | ")
	return statusStyle.Render(truncate(line, m.width))
}

// treeFacts returns the rooting, height
// and ultrametricity of the working tree.
func treeFacts(st *treestate.State) string {
	f := "unrooted"
	if st.IsRooted() {
		f = "rooted"
	}
	if !st.HasBranchLengths() {
		return f
	}
	f += " h=" + humanize.FtoaWithDigits(st.Height(), 3)
	if st.Ultrametric() == tree.Yes {
		return f + " ultrametric"
	}
	return f + " non-ultrametric"
}

func (m *Model) footer() string {
	if m.prompt != noPrompt {
		return m.input.View()
	}
	if m.menu != nil {
		label := m.menu.Label
		if label == "" {
			label = m.menu.Node.String()
		}
		items := []string{label + ":"}
		for i, a := range m.menu.Actions {
			items = append(items, fmt.Sprintf("%d %s", i+1, a))
		}
		items = append(items, "esc close")
		return menuStyle.Render(truncate(strings.Join(items, "  "), m.width))
	}
	return m.help.View(m.keys)
}
