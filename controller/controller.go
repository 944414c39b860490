// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package controller implements the interaction controller
// of a tree viewer.
//
// The host sends messages
// (pointer, scroll, keyboard, and menu actions)
// to the controller,
// which updates the tree state and the viewport,
// invalidates the affected drawing layers,
// and returns the events that the host must process.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/js-arias/phyview/cache"
	"github.com/js-arias/phyview/cull"
	"github.com/js-arias/phyview/export"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/ltt"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/nodetable"
	"github.com/js-arias/phyview/render"
	"github.com/js-arias/phyview/shape"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
)

// HoverRadius is the maximum distance,
// in unscaled pixels,
// between the pointer and a hovered node.
const HoverRadius = 9

// Options are the options of a controller.
type Options struct {
	// If nil,
	// a renderer with default settings is used.
	Renderer *render.Renderer

	Style    render.Style
	LTTStyle ltt.Style
	View     Viewport
	Ordering treestate.Ordering

	ScaleFactor float64

	// Row height of the node table.
	RowHeight float64

	// If nil,
	// log records are discarded.
	Logger *slog.Logger
}

// A Controller handles the interaction with a tree view.
type Controller struct {
	renderer *render.Renderer
	style    render.Style
	lttStyle ltt.Style
	view     Viewport
	ordering treestate.Ordering
	sf       float64
	rowH     float64
	log      *slog.Logger

	name  string
	trees []*tree.Tree
	index int

	st     *treestate.State
	table  *nodetable.Table
	series ltt.Series

	// width reserved for terminal labels
	labelW float64

	mode     Mode
	menuNode tree.ID

	hover     tree.ID
	cursor    shape.Point
	hasCursor bool

	// visible nodes used for hovering
	nodes   []render.NodeData
	nodesOK bool

	sync ltt.Sync
}

// New returns a new controller without a tree.
func New(opts Options) *Controller {
	if opts.Renderer == nil {
		opts.Renderer = render.New(nil, cull.DefaultCaps())
	}
	if opts.ScaleFactor <= 0 {
		opts.ScaleFactor = 1
	}
	if opts.Logger == nil {
		// equivalent to slog.DiscardHandler (Go 1.24+), unavailable in the go 1.21 toolchain
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if opts.Style.LineWidth == 0 {
		opts.Style = render.DefaultStyle(opts.ScaleFactor)
	}
	if opts.LTTStyle.LineWidth == 0 {
		opts.LTTStyle = ltt.DefaultStyle(opts.ScaleFactor)
	}
	if opts.View.OpenAngle == 0 {
		opts.View.OpenAngle = layout.MaxOpenAngle
	}
	opts.View.clamp()

	c := &Controller{
		renderer: opts.Renderer,
		style:    opts.Style,
		lttStyle: opts.LTTStyle,
		view:     opts.View,
		ordering: opts.Ordering,
		sf:       opts.ScaleFactor,
		rowH:     opts.RowHeight,
		log:      opts.Logger,
		hover:    tree.Nil,
		menuNode: tree.Nil,
	}
	c.sync.Enable(c.view.Projection == layout.Phylogram)
	return c
}

// State returns the state of the current tree,
// or nil if no tree is loaded.
func (c *Controller) State() *treestate.State {
	return c.st
}

// Table returns the node table of the current tree,
// or nil if no tree is loaded.
func (c *Controller) Table() *nodetable.Table {
	return c.table
}

// View returns the current viewport.
func (c *Controller) View() Viewport {
	return c.view
}

// Style returns the current drawing style.
func (c *Controller) Style() render.Style {
	return c.style
}

// Mode returns the interaction mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Hover returns the hovered node,
// or tree.Nil if no node is hovered.
func (c *Controller) Hover() tree.ID {
	return c.hover
}

// Series returns the lineages-through-time series
// of the current tree.
func (c *Controller) Series() ltt.Series {
	return c.series
}

// File returns the name of the loaded file,
// the index of the current tree,
// and the number of trees in the file.
func (c *Controller) File() (name string, index, trees int) {
	return c.name, c.index, len(c.trees)
}

// Params returns the layout parameters
// of the current view.
func (c *Controller) Params() layout.Params {
	v := c.view
	canvas := v.Canvas()
	rootLen := 0.0
	if v.DrawRoot {
		rootLen = v.RootLen
	}
	lw := math.Min(c.labelW, canvas.Dx()/3)
	legend := c.style.Legend && c.st != nil && c.st.HasBranchLengths()

	tips := 0
	if c.st != nil {
		tips = c.st.TipCount()
	}
	return layout.Params{
		Projection:  v.Projection,
		Rect:        layout.TreeRect(canvas, v.Projection, lw, rootLen, legend),
		OpenAngle:   v.OpenAngle,
		Rotation:    v.Rotation,
		RootLen:     v.RootLen,
		DrawRoot:    v.DrawRoot,
		Tips:        tips,
		LabelOffset: c.style.LabelOffset(),
		AlignTips:   v.AlignTips,
	}
}

func (c *Controller) request() render.Request {
	return render.Request{
		Params:    c.Params(),
		Canvas:    c.view.Canvas(),
		Visible:   c.view.Visible(),
		Hover:     c.hover,
		Cursor:    c.cursor,
		HasCursor: c.hasCursor,
	}
}

// Frames returns the drawing layers of the visible part of the canvas,
// in canvas coordinates.
// Layers are taken from the caches of the tree state when possible.
func (c *Controller) Frames(ctx context.Context) ([]*shape.Frame, error) {
	if c.st == nil {
		return nil, nil
	}
	return c.renderer.Frames(ctx, c.st, c.st.Caches(), c.request(), c.style)
}

// ExportFrames returns the drawing layers of the whole canvas
// without overlays.
// The caches of the tree state are not modified.
func (c *Controller) ExportFrames(ctx context.Context) ([]*shape.Frame, error) {
	if c.st == nil {
		return nil, nil
	}
	req := c.request()
	req.Visible = req.Canvas
	req.Hover = tree.Nil
	req.HasCursor = false
	req.Export = true
	return c.renderer.Frames(ctx, c.st, cache.NewStore(), req, c.style)
}

// Document returns the export document of the whole canvas.
func (c *Controller) Document(ctx context.Context) (export.Document, error) {
	frames, err := c.ExportFrames(ctx)
	if err != nil {
		return export.Document{}, err
	}
	canvas := c.view.Canvas()
	return export.Document{
		Frames: frames,
		Width:  canvas.Dx(),
		Height: canvas.Dy(),
		Margin: export.Margin,
	}, nil
}

// Export writes the whole canvas in the indicated format.
func (c *Controller) Export(ctx context.Context, w io.Writer, f export.Format) error {
	d, err := c.Document(ctx)
	if err != nil {
		return err
	}
	return export.Write(w, f, d)
}

// LTTFrame returns the drawing of the lineages-through-time series
// in a rectangle.
// In a phylogram,
// the time axis shares the horizontal scale of the tree.
func (c *Controller) LTTFrame(rect shape.Rect) *shape.Frame {
	x0, x1 := rect.Min.X, rect.Max.X
	if c.view.Projection == layout.Phylogram {
		r := c.Params().Rect
		x0, x1 = r.Min.X, r.Max.X
	}
	a := ltt.NewAxes(c.series, x0, x1, rect)
	return ltt.Frame(c.series, a, c.lttStyle)
}

// apply invalidates the layers affected by a change.
// It is the only place in which the caches are cleared.
func (c *Controller) apply(ch cache.Change) {
	if c.st == nil {
		return
	}
	m := c.st.Caches().Apply(ch)
	switch ch {
	case cache.Hover, cache.Selection, cache.Search:
	default:
		c.nodes, c.nodesOK = nil, false
	}
	switch ch {
	case cache.Load, cache.Reroot:
		c.table.Refresh()
		c.series = ltt.Compute(c.st.Edges())
		c.measure()
	case cache.Ordering:
		c.table.Refresh()
	}
	c.log.Debug("invalidate", "change", ch.String(), "layers", m.String())
}

// restyle applies a style change.
// If the tree rectangle is changed
// all layers that depend on the canvas are cleared.
func (c *Controller) restyle(before layout.Params, ch cache.Change) {
	if c.Params().Rect != before.Rect {
		ch = cache.CanvasSize
	}
	c.apply(ch)
}

// measure sets the width reserved for terminal labels.
func (c *Controller) measure() {
	c.labelW = 0
	if c.st == nil || !c.style.TipLabels {
		return
	}
	tr := c.st.Tree()
	for _, id := range tr.Tips() {
		c.labelW = math.Max(c.labelW, shape.TextWidth(tr.Label(id), c.style.TipSize))
	}
	if c.labelW > 0 {
		c.labelW += 2 * c.style.LabelOffset()
	}
}

// visibleNodes returns the data of the visible nodes.
func (c *Controller) visibleNodes() []render.NodeData {
	if c.nodesOK {
		return c.nodes
	}
	p := c.Params()
	res := c.renderer.Visible(c.st, p, c.view.Visible(), c.style)
	s := c.st.Edges()
	nd, err := render.Nodes(context.Background(), c.renderer.Pool(), s, res.Edges(s), p)
	if err != nil {
		c.log.Debug("visible nodes", "err", err)
		return nil
	}
	c.nodes, c.nodesOK = nd, true
	return nd
}

// nodeAt returns the visible node nearest to a window position.
func (c *Controller) nodeAt(x, y float64) (render.NodeData, bool) {
	pt := shape.Pt(x+c.view.ScrollX, y+c.view.ScrollY)
	return render.Nearest(c.visibleNodes(), pt, HoverRadius*c.sf)
}

// Update processes a message
// and returns the resulting events.
func (c *Controller) Update(msg Msg) []Event {
	if c.mode == Menu {
		switch m := msg.(type) {
		case MenuAction, CloseMenu, Resized, Load, ExportTo:
		case Clicked:
			return c.closeMenu()
		case KeyPressed:
			if m.Key == "esc" {
				return c.closeMenu()
			}
			return nil
		default:
			return nil
		}
	}

	switch m := msg.(type) {
	case Load:
		return c.load(m)
	case SelectTree:
		return c.showTree(m.Index)
	case Resized:
		return c.resize(m.Width, m.Height)
	case ExportTo:
		return c.exportTo(m.Name)
	case MenuAction:
		return c.menuAction(m.Action)
	case CloseMenu:
		return c.closeMenu()
	}

	if c.st == nil {
		return nil
	}
	switch m := msg.(type) {
	case PointerMoved:
		return c.pointerMoved(m)
	case PointerLeft:
		if c.hover == tree.Nil && !c.hasCursor {
			return nil
		}
		c.hover = tree.Nil
		c.hasCursor = false
		c.apply(cache.Hover)
		return []Event{Redraw{}}
	case Clicked:
		return c.clicked(m)
	case Scrolled:
		return c.scrolled(m.X, m.Y)
	case LTTScrolled:
		return c.lttScrolled(m.X)
	case Zoom:
		return c.zoom(m.Width, m.Height)
	case SetProjection:
		return c.setProjection(m.Projection)
	case SetOrdering:
		return c.setOrdering(m.Ordering)
	case RootAt:
		return c.root(m.Node)
	case Unroot:
		return c.unroot()
	case Search:
		n := c.st.Search(m.Query, m.TipsOnly)
		c.apply(cache.Search)
		ev := []Event{Redraw{}}
		if n > 0 {
			ev = append(ev, c.centerOnHit()...)
		}
		return ev
	case NextResult:
		if !c.st.NextHit() {
			return nil
		}
		c.apply(cache.Search)
		return append([]Event{Redraw{}}, c.centerOnHit()...)
	case PrevResult:
		if !c.st.PrevHit() {
			return nil
		}
		c.apply(cache.Search)
		return append([]Event{Redraw{}}, c.centerOnHit()...)
	case SetOpenAngle:
		return c.setAngles(m.Angle, c.view.Rotation)
	case SetRotation:
		return c.setAngles(c.view.OpenAngle, m.Angle)
	case SetLabelSize:
		return c.setLabels(m.Class, m.Size*c.sf, c.labelShown(m.Class))
	case ShowLabels:
		return c.setLabels(m.Class, c.labelSize(m.Class), m.Show)
	case ShowLegend:
		if c.style.Legend == m.Show {
			return nil
		}
		p := c.Params()
		c.style.Legend = m.Show
		c.restyle(p, cache.LegendStyle)
		return []Event{Redraw{}}
	case SetRoot:
		return c.setRoot(m.Length, m.Draw)
	case AlignTips:
		if c.view.AlignTips == m.Align {
			return nil
		}
		c.view.AlignTips = m.Align
		c.apply(cache.TipLabelStyle)
		return []Event{Redraw{}}
	case ToggleSelect:
		return c.toggleSelect(m.Node)
	case ClearSelection:
		if !c.st.ClearSelection() {
			return nil
		}
		c.apply(cache.Selection)
		return []Event{Redraw{}}
	case TableClicked:
		if m.Row < 0 || m.Row >= c.table.Len() {
			return nil
		}
		c.table.Click(m.Row)
		c.apply(cache.Selection)
		return []Event{Redraw{}}
	case SortTable:
		c.table.Toggle(m.Column)
		return []Event{Redraw{}}
	case KeyPressed:
		return c.key(m.Key)
	}
	return nil
}

func (c *Controller) load(m Load) []Event {
	if m.Err != nil {
		c.log.Debug("load", "file", m.Name, "err", m.Err)
		return []Event{ErrorBanner{Err: m.Err}}
	}
	if len(m.Trees) == 0 {
		err := fmt.Errorf("file %q: no trees found", m.Name)
		return []Event{ErrorBanner{Err: err}}
	}
	c.name = m.Name
	c.trees = m.Trees
	c.st = nil
	return c.showTree(0)
}

func (c *Controller) showTree(i int) []Event {
	if i < 0 || i >= len(c.trees) {
		return nil
	}
	if c.st != nil && i == c.index {
		return nil
	}
	c.index = i
	c.st = treestate.New(c.trees[i], treestate.Options{
		Chunks:   c.renderer.Pool().Threads(),
		RootStub: true,
	})
	c.st.SetOrdering(c.ordering)
	c.table = nodetable.New(c.st, c.rowH)
	c.mode = Idle
	c.menuNode = tree.Nil
	c.hover = tree.Nil
	c.hasCursor = false
	c.view.ScrollX, c.view.ScrollY = 0, 0
	c.sync.Enable(c.view.Projection == layout.Phylogram)
	c.apply(cache.Load)

	c.log.Debug("tree", "file", c.name, "index", i, "tips", c.st.TipCount())
	return []Event{
		TreeChanged{Name: c.name, Index: i, Trees: len(c.trees)},
		ScrollTo{X: 0, Y: 0},
		Redraw{},
	}
}

func (c *Controller) resize(w, h float64) []Event {
	if w <= 0 || h <= 0 || (w == c.view.Width && h == c.view.Height) {
		return nil
	}
	c.view.Width, c.view.Height = w, h
	c.view.clamp()
	c.apply(cache.CanvasSize)
	return []Event{Redraw{}}
}

func (c *Controller) pointerMoved(m PointerMoved) []Event {
	c.cursor = shape.Pt(m.X+c.view.ScrollX, m.Y+c.view.ScrollY)
	c.hasCursor = true
	c.hover = tree.Nil
	if n, ok := c.nodeAt(m.X, m.Y); ok {
		c.hover = n.Node
	}
	c.apply(cache.Hover)

	ev := []Event{Redraw{}}
	r := c.Params().Rect
	if r.Dx() > 0 && r.Contains(c.cursor) {
		ev = append(ev, CursorOnTreeCanvas{X: (c.cursor.X - r.Min.X) / r.Dx()})
	}
	return ev
}

func (c *Controller) clicked(m Clicked) []Event {
	n, ok := c.nodeAt(m.X, m.Y)
	if !ok {
		return nil
	}
	if m.Button == Right {
		c.mode = Menu
		c.menuNode = n.Node
		return []Event{ContextMenu{
			Node:    n.Node,
			Label:   n.Label,
			IsTip:   n.IsTip,
			Actions: c.actions(n.Node),
		}}
	}
	return c.toggleSelect(n.Node)
}

// actions returns the actions available for a node.
func (c *Controller) actions(id tree.ID) []Action {
	tr := c.st.Tree()
	acts := []Action{Select}
	if c.st.CanRoot(id) {
		acts = append(acts, RootHere)
	}
	if tr.IsRoot(id) && c.st.IsRooted() {
		acts = append(acts, UnrootTree)
	}
	if !tr.IsTip(id) {
		acts = append(acts, CopySubtree)
	}
	return acts
}

func (c *Controller) closeMenu() []Event {
	if c.mode != Menu {
		return nil
	}
	c.mode = Idle
	c.menuNode = tree.Nil
	return []Event{Redraw{}}
}

func (c *Controller) menuAction(a Action) []Event {
	if c.mode != Menu {
		return nil
	}
	id := c.menuNode
	c.mode = Idle
	c.menuNode = tree.Nil

	switch a {
	case Select:
		return c.toggleSelect(id)
	case RootHere:
		return c.root(id)
	case UnrootTree:
		return c.unroot()
	case CopySubtree:
		return []Event{Subtree{
			Node:   id,
			Newick: newick.SubtreeString(c.st.Tree(), id),
		}}
	}
	return nil
}

func (c *Controller) toggleSelect(id tree.ID) []Event {
	if !c.st.Tree().Exists(id) {
		return nil
	}
	c.st.ToggleSelect(id)
	c.apply(cache.Selection)
	return []Event{Redraw{}}
}

func (c *Controller) root(id tree.ID) []Event {
	if err := c.st.Root(id); err != nil {
		c.log.Debug("root", "node", id, "err", err)
		return nil
	}
	c.hover = tree.Nil
	c.apply(cache.Reroot)
	return []Event{Redraw{}}
}

func (c *Controller) unroot() []Event {
	if err := c.st.Unroot(); err != nil {
		c.log.Debug("unroot", "err", err)
		return nil
	}
	c.hover = tree.Nil
	c.apply(cache.Reroot)
	return []Event{Redraw{}}
}

// moved updates the caches after the viewport origin is changed.
func (c *Controller) moved() {
	res := c.renderer.Visible(c.st, c.Params(), c.view.Visible(), c.style)
	if c.st.Caches().Covers(res.TipLo, res.TipHi) {
		c.apply(cache.Scroll)
		return
	}
	c.apply(cache.ScrollOutside)
}

// mirror returns the event that scrolls
// the lineages-through-time window.
func (c *Controller) mirror() []Event {
	x, ok := c.sync.Scrolled(ltt.TreeSide, c.view.ScrollX)
	if !ok {
		return nil
	}
	return []Event{LTTScrollTo{X: x}}
}

func (c *Controller) scrolled(x, y float64) []Event {
	old := c.view
	c.view.ScrollX, c.view.ScrollY = x, y
	c.view.clamp()

	var ev []Event
	if c.view.ScrollX != x || c.view.ScrollY != y {
		ev = append(ev, ScrollTo{X: c.view.ScrollX, Y: c.view.ScrollY})
	}
	if c.view.ScrollX == old.ScrollX && c.view.ScrollY == old.ScrollY {
		return ev
	}
	c.moved()
	ev = append(ev, Redraw{})
	return append(ev, c.mirror()...)
}

func (c *Controller) lttScrolled(x float64) []Event {
	x, ok := c.sync.Scrolled(ltt.PlotSide, x)
	if !ok {
		return nil
	}
	c.view.ScrollX = x
	c.view.clamp()
	c.moved()

	// the tree window is scrolled by the controller,
	// so its echo is consumed here.
	c.sync.Scrolled(ltt.TreeSide, c.view.ScrollX)
	return []Event{
		ScrollTo{X: c.view.ScrollX, Y: c.view.ScrollY},
		Redraw{},
	}
}

// moveTo scrolls the viewport
// to center a canvas point.
func (c *Controller) moveTo(pt shape.Point) []Event {
	old := c.view
	c.view.center(pt)
	if c.view.ScrollX == old.ScrollX && c.view.ScrollY == old.ScrollY {
		return nil
	}
	c.moved()
	ev := []Event{ScrollTo{X: c.view.ScrollX, Y: c.view.ScrollY}, Redraw{}}
	return append(ev, c.mirror()...)
}

func (c *Controller) centerOnHit() []Event {
	id, ok := c.st.Current()
	if !ok {
		return nil
	}
	e, ok := c.st.Edges().Edge(id)
	if !ok {
		return nil
	}
	return c.moveTo(c.Params().Point(e.X1, e.Y))
}

func (c *Controller) zoom(w, h int) []Event {
	if !c.view.zoom(w, h) {
		return nil
	}
	c.apply(cache.CanvasSize)
	ev := []Event{ScrollTo{X: c.view.ScrollX, Y: c.view.ScrollY}, Redraw{}}
	return append(ev, c.mirror()...)
}

func (c *Controller) setProjection(p layout.Projection) []Event {
	if p == c.view.Projection {
		return nil
	}
	c.view.Projection = p
	c.sync.Enable(p == layout.Phylogram)
	c.hover = tree.Nil
	c.apply(cache.Projection)
	return []Event{Redraw{}}
}

func (c *Controller) setOrdering(o treestate.Ordering) []Event {
	if !c.st.SetOrdering(o) {
		return nil
	}
	c.ordering = o
	c.hover = tree.Nil
	c.apply(cache.Ordering)
	return []Event{Redraw{}}
}

func (c *Controller) setAngles(open, rotation float64) []Event {
	open = layout.ClampOpenAngle(open)
	rotation = layout.NormalizeRotation(rotation)
	if open == c.view.OpenAngle && rotation == c.view.Rotation {
		return nil
	}
	c.view.OpenAngle = open
	c.view.Rotation = rotation
	c.apply(cache.Angle)
	return []Event{Redraw{}}
}

func (c *Controller) setRoot(length float64, draw bool) []Event {
	length = math.Max(length, 0)
	if length == c.view.RootLen && draw == c.view.DrawRoot {
		return nil
	}
	p := c.Params()
	c.view.RootLen = length
	c.view.DrawRoot = draw
	c.restyle(p, cache.RootStyle)
	return []Event{Redraw{}}
}

func (c *Controller) labelSize(l LabelClass) float64 {
	switch l {
	case InternalLabels:
		return c.style.InternalSize
	case BranchLabels:
		return c.style.BranchSize
	}
	return c.style.TipSize
}

func (c *Controller) labelShown(l LabelClass) bool {
	switch l {
	case InternalLabels:
		return c.style.InternalLabels
	case BranchLabels:
		return c.style.BranchLabels
	}
	return c.style.TipLabels
}

// setLabels sets the size and visibility of a class of labels.
func (c *Controller) setLabels(l LabelClass, size float64, show bool) []Event {
	size = math.Max(size, 1)
	if size == c.labelSize(l) && show == c.labelShown(l) {
		return nil
	}
	p := c.Params()
	switch l {
	case TipLabels:
		c.style.TipSize = size
		c.style.TipLabels = show
		c.measure()
		c.restyle(p, cache.TipLabelStyle)
	case InternalLabels:
		c.style.InternalSize = size
		c.style.InternalLabels = show
		c.apply(cache.InternalLabelStyle)
	case BranchLabels:
		c.style.BranchSize = size
		c.style.BranchLabels = show
		c.apply(cache.BranchLabelStyle)
	}
	return []Event{Redraw{}}
}

func (c *Controller) exportTo(name string) []Event {
	if c.st == nil {
		return nil
	}
	if err := c.writeFile(name); err != nil {
		c.log.Debug("export", "file", name, "err", err)
		return []Event{ErrorBanner{Err: err}}
	}
	return []Event{Exported{Name: name}}
}

func (c *Controller) writeFile(name string) (err error) {
	if _, ok := export.FormatOf(name); ok {
		d, err := c.Document(context.Background())
		if err != nil {
			return err
		}
		return export.WriteFile(name, d)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()
	if err := newick.Write(f, c.st.Tree()); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}

// ErrNoTree is returned when an operation
// requires a loaded tree.
var ErrNoTree = errors.New("no tree loaded")

// WriteNewick writes the current tree in Newick format.
func (c *Controller) WriteNewick(w io.Writer) error {
	if c.st == nil {
		return ErrNoTree
	}
	return newick.Write(w, c.st.Tree())
}
