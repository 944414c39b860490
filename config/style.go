// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package config

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/js-arias/phyview/controller"
	"github.com/js-arias/phyview/layout"
	"github.com/js-arias/phyview/palette"
	"github.com/js-arias/phyview/render"
	"github.com/js-arias/phyview/treestate"
	"gopkg.in/yaml.v3"
)

// Style is the drawing style of a tree.
// Angles are in degrees.
type Style struct {
	Projection string  `yaml:"projection"`
	Ordering   string  `yaml:"ordering"`
	OpenAngle  float64 `yaml:"open-angle"`
	Rotation   float64 `yaml:"rotation"`

	RootLength float64 `yaml:"root-length"`
	DrawRoot   bool    `yaml:"draw-root"`
	AlignTips  bool    `yaml:"align-tips"`
	LineWidth  float64 `yaml:"line-width"`
	Legend     bool    `yaml:"legend"`

	TipLabels      bool    `yaml:"tip-labels"`
	InternalLabels bool    `yaml:"internal-labels"`
	BranchLabels   bool    `yaml:"branch-labels"`
	TipSize        float64 `yaml:"tip-size"`
	InternalSize   float64 `yaml:"internal-size"`
	BranchSize     float64 `yaml:"branch-size"`

	// Name of a color gradient
	// used to color the branches.
	Gradient string `yaml:"gradient,omitempty"`

	// Path of a color key file
	// used to color the terminal labels.
	Keys string `yaml:"keys,omitempty"`

	// Canvas size used for exports.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DefaultStyle returns the default style.
func DefaultStyle() Style {
	rs := render.DefaultStyle(1)
	return Style{
		Projection:   layout.Phylogram.String(),
		Ordering:     treestate.Unordered.String(),
		OpenAngle:    360,
		RootLength:   20,
		DrawRoot:     true,
		LineWidth:    rs.LineWidth,
		Legend:       rs.Legend,
		TipLabels:    rs.TipLabels,
		TipSize:      rs.TipSize,
		InternalSize: rs.InternalSize,
		BranchSize:   rs.BranchSize,
		Width:        800,
		Height:       600,
	}
}

// Validate returns an error if a value of the style is invalid.
func (s Style) Validate() error {
	if _, ok := layout.ParseProjection(s.Projection); !ok {
		return fmt.Errorf("style: unknown projection %q", s.Projection)
	}
	if _, ok := treestate.ParseOrdering(s.Ordering); !ok {
		return fmt.Errorf("style: unknown ordering %q", s.Ordering)
	}
	if s.Gradient != "" {
		if _, ok := palette.ByName(s.Gradient); !ok {
			return fmt.Errorf("style: unknown gradient %q", s.Gradient)
		}
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("style: invalid canvas size %.0fx%.0f", s.Width, s.Height)
	}
	return nil
}

// Proj returns the projection of the style.
func (s Style) Proj() layout.Projection {
	p, _ := layout.ParseProjection(s.Projection)
	return p
}

// Order returns the ordering of the style.
func (s Style) Order() treestate.Ordering {
	o, _ := treestate.ParseOrdering(s.Ordering)
	return o
}

// Angles returns the open and rotation angles in radians.
func (s Style) Angles() (open, rotation float64) {
	open = layout.ClampOpenAngle(s.OpenAngle * math.Pi / 180)
	rotation = layout.NormalizeRotation(s.Rotation * math.Pi / 180)
	return open, rotation
}

// Render returns the render style
// for a given scale factor.
// If the style has a key file,
// the file is read.
func (s Style) Render(sf float64) (render.Style, error) {
	if sf <= 0 {
		sf = 1
	}
	rs := render.DefaultStyle(sf)
	rs.LineWidth = s.LineWidth * sf
	rs.Legend = s.Legend
	rs.TipLabels = s.TipLabels
	rs.InternalLabels = s.InternalLabels
	rs.BranchLabels = s.BranchLabels
	rs.TipSize = s.TipSize * sf
	rs.InternalSize = s.InternalSize * sf
	rs.BranchSize = s.BranchSize * sf

	if s.Gradient != "" {
		g, ok := palette.ByName(s.Gradient)
		if !ok {
			return render.Style{}, fmt.Errorf("style: unknown gradient %q", s.Gradient)
		}
		rs.Gradient = g
	}
	if s.Keys != "" {
		k, err := palette.ReadKeysFile(s.Keys)
		if err != nil {
			return render.Style{}, err
		}
		rs.Keys = k
	}
	return rs, nil
}

// Options returns the controller options
// for a given scale factor.
// The window size of the viewport is the canvas size of the style.
func (s Style) Options(sf float64) (controller.Options, error) {
	if sf <= 0 {
		sf = 1
	}
	rs, err := s.Render(sf)
	if err != nil {
		return controller.Options{}, err
	}
	v := controller.DefaultViewport(s.Width*sf, s.Height*sf)
	v.Projection = s.Proj()
	v.OpenAngle, v.Rotation = s.Angles()
	v.RootLen = s.RootLength * sf
	v.DrawRoot = s.DrawRoot
	v.AlignTips = s.AlignTips
	return controller.Options{
		Style:       rs,
		View:        v,
		Ordering:    s.Order(),
		ScaleFactor: sf,
	}, nil
}

// ReadStyle reads a style file.
// Files with the extension ".yaml" or ".yml"
// are read as YAML files,
// any other file is read as a tab-delimited file.
// Undefined values are taken from the default style.
func ReadStyle(name string) (Style, error) {
	f, err := os.Open(name)
	if err != nil {
		return Style{}, err
	}
	defer f.Close()

	var s Style
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		s, err = ReadStyleYAML(f)
	default:
		s, err = ReadStyleTSV(f)
	}
	if err != nil {
		return Style{}, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return s, nil
}

// ReadStyleYAML reads a style from a YAML document.
func ReadStyleYAML(r io.Reader) (Style, error) {
	s := DefaultStyle()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Style{}, err
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

var styleHeader = []string{
	"key",
	"value",
}

// ReadStyleTSV reads a style from a tab-delimited file.
//
// The TSV must contain the following fields:
//
//   - key, the name of the style value
//   - value, the value
//
// Values are interpreted as in YAML style files.
//
// Here is an example file:
//
//	# tree style
//	key	value
//	projection	fan
//	open-angle	270
//	tip-labels	true
//	gradient	incandescent
func ReadStyleTSV(r io.Reader) (Style, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return Style{}, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	for _, h := range styleHeader {
		if _, ok := fields[h]; !ok {
			return Style{}, fmt.Errorf("expecting field %q", h)
		}
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return Style{}, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "key"
		k := strings.ToLower(strings.TrimSpace(row[fields[f]]))
		if k == "" {
			return Style{}, fmt.Errorf("on row %d: field %q: empty key", ln, f)
		}
		f = "value"
		v := strings.TrimSpace(row[fields[f]])
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v},
		)
	}

	b, err := yaml.Marshal(doc)
	if err != nil {
		return Style{}, err
	}
	return ReadStyleYAML(bytes.NewReader(b))
}

// WriteTSV writes a style as a tab-delimited file.
func (s Style) WriteTSV(w io.Writer) error {
	var doc yaml.Node
	if err := doc.Encode(s); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# tree style\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(styleHeader); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		row := []string{
			doc.Content[i].Value,
			doc.Content[i+1].Value,
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}
	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}

// WriteYAML writes a style as a YAML document.
func (s Style) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
