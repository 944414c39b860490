// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package config_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyview/config"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/treestate"
)

func TestLoad(t *testing.T) {
	t.Setenv("PHYVIEW_THREADS", "4")
	t.Setenv("PHYVIEW_SCALE_FACTOR", "2")
	t.Setenv("PHYVIEW_TIP_LABELS_MAX", "50")

	s, err := config.Load()
	if err != nil {
		t.Fatalf("unable to load settings: %v", err)
	}
	if s.Threads != 4 {
		t.Errorf("threads: got %d, want %d", s.Threads, 4)
	}
	if s.ScaleFactor != 2 {
		t.Errorf("scale factor: got %.1f, want %.1f", s.ScaleFactor, 2.0)
	}
	caps := s.Caps()
	if caps.Tips != 50 || caps.Nodes != 2000 {
		t.Errorf("caps: got %d %d, want %d %d", caps.Tips, caps.Nodes, 50, 2000)
	}

	t.Setenv("PHYVIEW_THREADS", "0")
	s, err = config.Load()
	if err != nil {
		t.Fatalf("unable to load settings: %v", err)
	}
	if s.Threads != 8 {
		t.Errorf("zero threads: got %d, want %d", s.Threads, 8)
	}

	t.Setenv("PHYVIEW_THREADS", "many")
	if _, err := config.Load(); err == nil {
		t.Errorf("invalid threads: expecting error")
	}
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	if err := config.Usage(&buf); err != nil {
		t.Fatalf("unable to write usage: %v", err)
	}
	for _, v := range []string{"PHYVIEW_THREADS", "PHYVIEW_SCALE_FACTOR", "PHYVIEW_LOG"} {
		if !strings.Contains(buf.String(), v) {
			t.Errorf("usage: variable %q not found", v)
		}
	}
}

func TestReadStyleTSV(t *testing.T) {
	in := `# tree style
key	value
projection	fan
open-angle	270
tip-labels	false
gradient	incandescent
`
	s, err := config.ReadStyleTSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read style: %v", err)
	}
	if s.Proj() != layout.Fan {
		t.Errorf("projection: got %v, want %v", s.Proj(), layout.Fan)
	}
	if s.TipLabels {
		t.Errorf("tip labels: got %v, want %v", s.TipLabels, false)
	}
	if s.Gradient != "incandescent" {
		t.Errorf("gradient: got %q, want %q", s.Gradient, "incandescent")
	}
	if s.Width != 800 {
		t.Errorf("width: got %.1f, want default %.1f", s.Width, 800.0)
	}
	open, _ := s.Angles()
	if math.Abs(open-1.5*math.Pi) > 1e-9 {
		t.Errorf("open angle: got %.4f, want %.4f", open, 1.5*math.Pi)
	}

	for name, in := range map[string]string{
		"unknown key":   "key\tvalue\nshape\tround\n",
		"no header":     "projection\tfan\n",
		"bad value":     "key\tvalue\nopen-angle\twide\n",
		"bad gradient":  "key\tvalue\ngradient\tsepia\n",
		"bad ordering":  "key\tvalue\nordering\trandom\n",
		"bad canvas":    "key\tvalue\nwidth\t0\n",
		"bad structure": "key\tvalue\n\tfan\n",
	} {
		if _, err := config.ReadStyleTSV(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error", name)
		}
	}
}

func TestReadStyleYAML(t *testing.T) {
	in := `projection: phylogram
ordering: descending
tip-size: 8
branch-labels: true
`
	s, err := config.ReadStyleYAML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read style: %v", err)
	}
	if s.Order() != treestate.Descending {
		t.Errorf("ordering: got %v, want %v", s.Order(), treestate.Descending)
	}
	if !s.BranchLabels || s.TipSize != 8 {
		t.Errorf("labels: got %v %.1f, want %v %.1f", s.BranchLabels, s.TipSize, true, 8.0)
	}

	if _, err := config.ReadStyleYAML(strings.NewReader("colour: red\n")); err == nil {
		t.Errorf("unknown field: expecting error")
	}
	if _, err := config.ReadStyleYAML(strings.NewReader("projection: circle\n")); err == nil {
		t.Errorf("unknown projection: expecting error")
	}
}

func TestStyleFiles(t *testing.T) {
	dir := t.TempDir()
	want := config.DefaultStyle()
	want.Projection = layout.Fan.String()
	want.Rotation = 45
	want.Gradient = "rainbow"

	var tsv bytes.Buffer
	if err := want.WriteTSV(&tsv); err != nil {
		t.Fatalf("unable to write TSV: %v", err)
	}
	var yml bytes.Buffer
	if err := want.WriteYAML(&yml); err != nil {
		t.Fatalf("unable to write YAML: %v", err)
	}

	for name, data := range map[string][]byte{
		"style.tab":  tsv.Bytes(),
		"style.yaml": yml.Bytes(),
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("unable to write %q: %v", path, err)
		}
		got, err := config.ReadStyle(path)
		if err != nil {
			t.Fatalf("%s: unable to read style: %v", name, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %+v, want %+v", name, got, want)
		}
	}

	if _, err := config.ReadStyle(filepath.Join(dir, "none.tab")); err == nil {
		t.Errorf("missing file: expecting error")
	}
}

func TestRender(t *testing.T) {
	s := config.DefaultStyle()
	s.Gradient = "gray"
	s.InternalLabels = true

	rs, err := s.Render(2)
	if err != nil {
		t.Fatalf("unable to build render style: %v", err)
	}
	if rs.TipSize != 2*s.TipSize {
		t.Errorf("tip size: got %.1f, want %.1f", rs.TipSize, 2*s.TipSize)
	}
	if rs.Gradient == nil {
		t.Errorf("gradient: not set")
	}
	if !rs.InternalLabels {
		t.Errorf("internal labels: not set")
	}

	dir := t.TempDir()
	keys := filepath.Join(dir, "keys.tab")
	if err := os.WriteFile(keys, []byte("taxon\tcolor\nA\t255,0,0\n"), 0o644); err != nil {
		t.Fatalf("unable to write keys: %v", err)
	}
	s.Keys = keys
	rs, err = s.Render(1)
	if err != nil {
		t.Fatalf("unable to build render style: %v", err)
	}
	if _, ok := rs.Keys.Color("A"); !ok {
		t.Errorf("keys: color of %q not found", "A")
	}

	s.Keys = filepath.Join(dir, "none.tab")
	if _, err := s.Render(1); err == nil {
		t.Errorf("missing key file: expecting error")
	}
}

func TestOptions(t *testing.T) {
	s := config.DefaultStyle()
	s.Projection = layout.Fan.String()
	s.Ordering = treestate.Ascending.String()
	s.OpenAngle = 180
	s.AlignTips = true

	opts, err := s.Options(2)
	if err != nil {
		t.Fatalf("unable to build options: %v", err)
	}
	v := opts.View
	if v.Width != 1600 || v.Height != 1200 {
		t.Errorf("window: got %.0fx%.0f, want %dx%d", v.Width, v.Height, 1600, 1200)
	}
	if v.Projection != layout.Fan || !v.AlignTips {
		t.Errorf("view: got %v %v, want %v %v", v.Projection, v.AlignTips, layout.Fan, true)
	}
	if math.Abs(v.OpenAngle-math.Pi) > 1e-9 {
		t.Errorf("open angle: got %.4f, want %.4f", v.OpenAngle, math.Pi)
	}
	if v.RootLen != 2*s.RootLength {
		t.Errorf("root length: got %.1f, want %.1f", v.RootLen, 2*s.RootLength)
	}
	if opts.Ordering != treestate.Ascending {
		t.Errorf("ordering: got %v, want %v", opts.Ordering, treestate.Ascending)
	}
	if opts.Style.LineWidth != 2*s.LineWidth {
		t.Errorf("line width: got %.1f, want %.1f", opts.Style.LineWidth, 2*s.LineWidth)
	}
}
