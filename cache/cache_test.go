// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package cache_test

import (
	"testing"

	"github.com/js-arias/phyview/cache"
	"github.com/js-arias/phyview/shape"
)

func TestClears(t *testing.T) {
	tests := map[string]struct {
		change cache.Change
		clears []cache.Layer
		keeps  []cache.Layer
	}{
		"ordering": {
			change: cache.Ordering,
			clears: []cache.Layer{cache.Edges, cache.TipLabels, cache.InternalLabels, cache.BranchLabels, cache.Selected, cache.Hovered},
			keeps:  []cache.Layer{cache.Bounds, cache.Legend},
		},
		"reroot": {
			change: cache.Reroot,
			clears: []cache.Layer{cache.Edges, cache.TipLabels, cache.Found, cache.CursorLine, cache.Legend},
			keeps:  []cache.Layer{cache.Bounds},
		},
		"projection": {
			change: cache.Projection,
			clears: []cache.Layer{cache.Bounds, cache.Edges, cache.BranchLabels, cache.Selected, cache.Legend},
		},
		"canvas size": {
			change: cache.CanvasSize,
			clears: []cache.Layer{cache.Bounds, cache.Edges, cache.TipLabels, cache.Hovered, cache.Legend},
		},
		"angle": {
			change: cache.Angle,
			clears: []cache.Layer{cache.Edges, cache.InternalLabels, cache.Selected},
			keeps:  []cache.Layer{cache.Bounds, cache.Legend},
		},
		"tip labels": {
			change: cache.TipLabelStyle,
			clears: []cache.Layer{cache.TipLabels},
			keeps:  []cache.Layer{cache.Edges, cache.InternalLabels, cache.BranchLabels, cache.Selected},
		},
		"selection": {
			change: cache.Selection,
			clears: []cache.Layer{cache.Selected},
			keeps:  []cache.Layer{cache.Edges, cache.Hovered, cache.Found},
		},
		"hover": {
			change: cache.Hover,
			clears: []cache.Layer{cache.Hovered, cache.CursorLine},
			keeps:  []cache.Layer{cache.Selected, cache.Edges},
		},
		"scroll": {
			change: cache.Scroll,
			clears: []cache.Layer{cache.Found, cache.Selected, cache.Hovered, cache.CursorLine},
			keeps:  []cache.Layer{cache.Edges, cache.TipLabels, cache.Bounds},
		},
		"scroll outside": {
			change: cache.ScrollOutside,
			clears: []cache.Layer{cache.Edges, cache.TipLabels, cache.Selected},
			keeps:  []cache.Layer{cache.Bounds, cache.Legend},
		},
	}

	for name, test := range tests {
		m := cache.Clears(test.change)
		for _, l := range test.clears {
			if !m.Has(l) {
				t.Errorf("%s: layer %v should be cleared", name, l)
			}
		}
		for _, l := range test.keeps {
			if m.Has(l) {
				t.Errorf("%s: layer %v should be kept", name, l)
			}
		}
	}
}

func TestStore(t *testing.T) {
	s := cache.NewStore()
	if got := s.Dirty(); got != cache.All {
		t.Errorf("new store: dirty %v, want %v", got, cache.All)
	}

	for _, l := range cache.Layers() {
		s.Put(l, &shape.Frame{})
	}
	if got := s.Dirty(); got != 0 {
		t.Errorf("filled store: dirty %v, want none", got)
	}

	s.SetCoverage(10, 20, false)
	if !s.Covers(12, 18) {
		t.Errorf("coverage: range 12-18 should be covered")
	}
	if s.Covers(5, 18) {
		t.Errorf("coverage: range 5-18 should not be covered")
	}

	m := s.Apply(cache.Selection)
	if got := s.Dirty(); got != m {
		t.Errorf("after selection: dirty %v, want %v", got, m)
	}
	if _, ok := s.Get(cache.Edges); !ok {
		t.Errorf("after selection: edges should be cached")
	}

	s.Apply(cache.Reroot)
	if _, ok := s.Get(cache.Edges); ok {
		t.Errorf("after reroot: edges should be dirty")
	}
	if s.Covers(12, 18) {
		t.Errorf("after reroot: coverage should be cleared")
	}
}
