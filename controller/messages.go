// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package controller

import (
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/nodetable"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/phyview/treestate"
)

// A Msg is a message sent to the controller.
type Msg interface {
	msg()
}

// Button is a pointer button.
type Button int

// Pointer buttons.
const (
	Left Button = iota
	Right
)

// LabelClass is a class of labels.
type LabelClass int

// Label classes.
const (
	TipLabels LabelClass = iota
	InternalLabels
	BranchLabels
)

func (l LabelClass) String() string {
	switch l {
	case TipLabels:
		return "tip"
	case InternalLabels:
		return "internal"
	case BranchLabels:
		return "branch"
	}
	return "unknown"
}

// Positions of pointer messages
// are relative to the window.
type (
	// PointerMoved is sent when the pointer moves over the tree window.
	PointerMoved struct{ X, Y float64 }

	// PointerLeft is sent when the pointer leaves the tree window.
	PointerLeft struct{}

	// Clicked is sent when a pointer button is pressed.
	Clicked struct {
		X, Y   float64
		Button Button
	}

	// Scrolled is sent when the tree window is scrolled
	// to a new origin.
	Scrolled struct{ X, Y float64 }

	// LTTScrolled is sent when the lineages-through-time window
	// is scrolled horizontally.
	LTTScrolled struct{ X float64 }

	// Resized is sent when the tree window changes its size.
	Resized struct{ Width, Height float64 }

	// Zoom sets the zoom indices of the canvas.
	Zoom struct{ Width, Height int }

	SetProjection struct{ Projection layout.Projection }
	SetOrdering   struct{ Ordering treestate.Ordering }

	// RootAt reroots the tree at a node.
	RootAt struct{ Node tree.ID }

	// Unroot removes the root of the tree.
	Unroot struct{}

	// Search looks for nodes with a label
	// that contains the query.
	Search struct {
		Query    string
		TipsOnly bool
	}

	NextResult struct{}
	PrevResult struct{}

	// Angles are in radians.
	SetOpenAngle struct{ Angle float64 }
	SetRotation  struct{ Angle float64 }

	SetLabelSize struct {
		Class LabelClass
		Size  float64
	}
	ShowLabels struct {
		Class LabelClass
		Show  bool
	}

	ShowLegend struct{ Show bool }

	// SetRoot sets the length and visibility of the root stub.
	SetRoot struct {
		Length float64
		Draw   bool
	}

	AlignTips struct{ Align bool }

	ToggleSelect struct{ Node tree.ID }

	// ClearSelection deselects all nodes.
	ClearSelection struct{}

	// KeyPressed is sent with the name of a pressed key.
	KeyPressed struct{ Key string }

	// MenuAction executes an action of the context menu.
	MenuAction struct{ Action Action }

	// CloseMenu closes the context menu.
	CloseMenu struct{}

	// Load sets the trees read from a file.
	// If Err is set,
	// the file could not be read.
	Load struct {
		Name  string
		Trees []*tree.Tree
		Err   error
	}

	// SelectTree shows a tree of the loaded file.
	SelectTree struct{ Index int }

	// ExportTo writes the tree into a file.
	// The format is taken from the file extension,
	// files with an unknown extension
	// are written as Newick trees.
	ExportTo struct{ Name string }

	// TableClicked is sent when a row of the node table
	// is clicked.
	TableClicked struct{ Row int }

	// SortTable sorts the node table by a column.
	SortTable struct{ Column nodetable.Column }
)

func (PointerMoved) msg()   {}
func (PointerLeft) msg()    {}
func (Clicked) msg()        {}
func (Scrolled) msg()       {}
func (LTTScrolled) msg()    {}
func (Resized) msg()        {}
func (Zoom) msg()           {}
func (SetProjection) msg()  {}
func (SetOrdering) msg()    {}
func (RootAt) msg()         {}
func (Unroot) msg()         {}
func (Search) msg()         {}
func (NextResult) msg()     {}
func (PrevResult) msg()     {}
func (SetOpenAngle) msg()   {}
func (SetRotation) msg()    {}
func (SetLabelSize) msg()   {}
func (ShowLabels) msg()     {}
func (ShowLegend) msg()     {}
func (SetRoot) msg()        {}
func (AlignTips) msg()      {}
func (ToggleSelect) msg()   {}
func (ClearSelection) msg() {}
func (KeyPressed) msg()     {}
func (MenuAction) msg()     {}
func (CloseMenu) msg()      {}
func (Load) msg()           {}
func (SelectTree) msg()     {}
func (ExportTo) msg()       {}
func (TableClicked) msg()   {}
func (SortTable) msg()      {}

// An Event is published by the controller
// as a result of a message.
type Event interface {
	event()
}

type (
	// CursorOnTreeCanvas is published when the pointer
	// is inside the tree rectangle.
	// X is the relative horizontal position in the rectangle.
	CursorOnTreeCanvas struct{ X float64 }

	// ScrollTo asks the host to scroll the tree window.
	ScrollTo struct{ X, Y float64 }

	// LTTScrollTo asks the host to scroll
	// the lineages-through-time window.
	LTTScrollTo struct{ X float64 }

	// ContextMenu asks the host to open a context menu
	// for a node.
	ContextMenu struct {
		Node    tree.ID
		Label   string
		IsTip   bool
		Actions []Action
	}

	// Subtree is published with the Newick text of a subtree.
	Subtree struct {
		Node   tree.ID
		Newick string
	}

	// Redraw is published when the drawing of the tree is changed.
	Redraw struct{}

	// TreeChanged is published when a new tree is shown.
	TreeChanged struct {
		Name  string
		Index int
		Trees int
	}

	// Exported is published when a file is written.
	Exported struct{ Name string }

	// ErrorBanner asks the host to show an error.
	ErrorBanner struct{ Err error }
)

func (CursorOnTreeCanvas) event() {}
func (ScrollTo) event()           {}
func (LTTScrollTo) event()        {}
func (ContextMenu) event()        {}
func (Subtree) event()            {}
func (Redraw) event()             {}
func (TreeChanged) event()        {}
func (Exported) event()           {}
func (ErrorBanner) event()        {}

// Action is an action of the context menu.
type Action int

// Context menu actions.
const (
	Select Action = iota
	RootHere
	UnrootTree
	CopySubtree
)

func (a Action) String() string {
	switch a {
	case Select:
		return "select"
	case RootHere:
		return "root here"
	case UnrootTree:
		return "unroot"
	case CopySubtree:
		return "copy subtree"
	}
	return "unknown"
}

// Mode is the interaction mode of the controller.
type Mode int

// Interaction modes.
const (
	// Idle is the normal mode.
	Idle Mode = iota

	// Menu is the mode while a context menu is open,
	// only menu, window and file messages are processed.
	Menu
)

func (m Mode) String() string {
	if m == Menu {
		return "menu"
	}
	return "idle"
}
