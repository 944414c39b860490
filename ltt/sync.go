// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ltt

import "math"

// Side is a scrollable side of a synchronized view.
type Side int

// Scrollable sides.
const (
	TreeSide Side = iota
	PlotSide
)

func (s Side) other() Side {
	if s == TreeSide {
		return PlotSide
	}
	return TreeSide
}

// Sync mirrors the horizontal scroll
// of the tree and the lineages-through-time plot.
//
// When a side is scrolled,
// the scroll is mirrored to the other side,
// and the next scroll reported by the other side
// is taken as the echo of the mirror
// and is not mirrored back.
type Sync struct {
	enabled bool
	pos     float64
	echo    [2]bool
}

// Enable enables or disables the synchronization.
// Pending echoes are discarded.
func (s *Sync) Enable(on bool) {
	s.enabled = on
	s.echo = [2]bool{}
}

// Enabled returns true if the synchronization is enabled.
func (s *Sync) Enabled() bool {
	return s.enabled
}

// Scrolled reports that a side was scrolled
// to the horizontal position x.
// It returns the position to which the other side must scroll,
// or false if the scroll must not be mirrored.
func (s *Sync) Scrolled(from Side, x float64) (float64, bool) {
	if !s.enabled {
		s.pos = x
		return 0, false
	}
	if s.echo[from] {
		s.echo[from] = false
		s.pos = x
		return 0, false
	}
	if math.Abs(x-s.pos) <= 0.5 {
		return 0, false
	}
	s.pos = x
	s.echo[from.other()] = true
	s.echo[from] = false
	return x, true
}
