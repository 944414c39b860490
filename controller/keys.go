// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package controller

import (
	"math"

	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/treestate"
)

// AngleStep is the change of an angle
// produced by a key.
const AngleStep = math.Pi / 12

// A KeyBinding is the description of a key.
type KeyBinding struct {
	Keys []string
	Help string
}

// Bindings returns the keys handled by the controller.
func Bindings() []KeyBinding {
	return []KeyBinding{
		{Keys: []string{"+", "-"}, Help: "zoom"},
		{Keys: []string{"w", "W"}, Help: "zoom width"},
		{Keys: []string{"v", "V"}, Help: "zoom height"},
		{Keys: []string{"left", "right", "up", "down", "pgup", "pgdown", "home", "end"}, Help: "move"},
		{Keys: []string{"p"}, Help: "phylogram/fan"},
		{Keys: []string{"o"}, Help: "ordering"},
		{Keys: []string{"r", "R"}, Help: "rotate"},
		{Keys: []string{"a", "A"}, Help: "open angle"},
		{Keys: []string{"t", "i", "b"}, Help: "labels"},
		{Keys: []string{"l"}, Help: "legend"},
		{Keys: []string{"g"}, Help: "align tips"},
		{Keys: []string{"n", "N"}, Help: "next/prev result"},
		{Keys: []string{"u"}, Help: "unroot"},
		{Keys: []string{"<", ">"}, Help: "prev/next tree"},
		{Keys: []string{"esc"}, Help: "clear selection"},
	}
}

// key processes a pressed key.
func (c *Controller) key(k string) []Event {
	v := c.view
	step := v.Width / 10
	switch k {
	case "+", "=":
		return c.zoom(v.ZoomW+1, v.ZoomH+1)
	case "-":
		return c.zoom(v.ZoomW-1, v.ZoomH-1)
	case "w":
		return c.zoom(v.ZoomW+1, v.ZoomH)
	case "W":
		return c.zoom(v.ZoomW-1, v.ZoomH)
	case "v":
		return c.zoom(v.ZoomW, v.ZoomH+1)
	case "V":
		return c.zoom(v.ZoomW, v.ZoomH-1)

	case "left":
		return c.scrolled(v.ScrollX-step, v.ScrollY)
	case "right":
		return c.scrolled(v.ScrollX+step, v.ScrollY)
	case "up":
		return c.scrolled(v.ScrollX, v.ScrollY-v.Height/10)
	case "down":
		return c.scrolled(v.ScrollX, v.ScrollY+v.Height/10)
	case "pgup":
		return c.scrolled(v.ScrollX, v.ScrollY-v.Height)
	case "pgdown":
		return c.scrolled(v.ScrollX, v.ScrollY+v.Height)
	case "home":
		return c.scrolled(0, 0)
	case "end":
		return c.scrolled(v.ScrollX, math.Inf(1))

	case "p":
		if v.Projection == layout.Fan {
			return c.setProjection(layout.Phylogram)
		}
		return c.setProjection(layout.Fan)
	case "o":
		next := treestate.Unordered
		switch c.st.Ordering() {
		case treestate.Unordered:
			next = treestate.Ascending
		case treestate.Ascending:
			next = treestate.Descending
		}
		return c.setOrdering(next)
	case "r":
		return c.setAngles(v.OpenAngle, v.Rotation+AngleStep)
	case "R":
		return c.setAngles(v.OpenAngle, v.Rotation-AngleStep)
	case "a":
		return c.setAngles(v.OpenAngle+AngleStep, v.Rotation)
	case "A":
		return c.setAngles(v.OpenAngle-AngleStep, v.Rotation)

	case "t":
		return c.setLabels(TipLabels, c.style.TipSize, !c.style.TipLabels)
	case "i":
		return c.setLabels(InternalLabels, c.style.InternalSize, !c.style.InternalLabels)
	case "b":
		return c.setLabels(BranchLabels, c.style.BranchSize, !c.style.BranchLabels)
	case "l":
		return c.Update(ShowLegend{Show: !c.style.Legend})
	case "g":
		return c.Update(AlignTips{Align: !v.AlignTips})

	case "n":
		return c.Update(NextResult{})
	case "N":
		return c.Update(PrevResult{})
	case "u":
		return c.unroot()
	case "<":
		return c.showTree(c.index - 1)
	case ">":
		return c.showTree(c.index + 1)
	case "esc":
		return c.Update(ClearSelection{})
	}
	return nil
}
