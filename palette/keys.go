// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package palette

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

// Keys stores the colors
// of the terminal labels.
type Keys struct {
	color map[string]color.Color
	gray  map[string]uint8
}

func normKey(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// lookup returns the key that matches a name:
// the whole name,
// or its first word (usually a genus name).
func lookup[T any](m map[string]T, name string) (T, bool) {
	n := normKey(name)
	if v, ok := m[n]; ok {
		return v, true
	}
	if i := strings.IndexByte(n, ' '); i > 0 {
		if v, ok := m[n[:i]]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Len returns the number of defined keys.
func (k *Keys) Len() int {
	if k == nil {
		return 0
	}
	return len(k.color)
}

// Color returns the color associated with a name.
// If no color is defined for the name,
// it will return transparent black.
func (k *Keys) Color(name string) (color.Color, bool) {
	if k == nil {
		return color.RGBA{0, 0, 0, 0}, false
	}
	c, ok := lookup(k.color, name)
	if !ok {
		return color.RGBA{0, 0, 0, 0}, false
	}
	return c, true
}

// HasGrayScale returns true if a gray scale is defined
// for the keys.
func (k *Keys) HasGrayScale() bool {
	return k != nil && len(k.gray) > 0
}

// Gray returns the gray color associated with a name.
// If no color is defined for the name,
// it will return transparent black.
func (k *Keys) Gray(name string) (color.Color, bool) {
	if k == nil {
		return color.RGBA{0, 0, 0, 0}, false
	}
	g, ok := lookup(k.gray, name)
	if !ok {
		return color.RGBA{0, 0, 0, 0}, false
	}
	return color.RGBA{g, g, g, 255}, true
}

// ReadKeys reads a key file
// used to define the colors of the terminals.
// A key matches a terminal with the same name,
// or terminals whose first word is the key
// (so a genus name colors all of its species).
// Matches ignore case.
//
// A key file is a tab-delimited file
// with the following required columns:
//
//	-taxon	the name used as identifier
//	-color	an RGB value separated by commas,
//		for example "125,132,148".
//
// Optionally it can contain the following columns:
//
//	-gray:  for a gray scale value
//
// Any other columns, will be ignored.
// Here is an example of a key file:
//
//	taxon	color	gray	comment
//	Homo	0, 26, 51	0	humans
//	Pan paniscus	68, 167, 196	20	bonobo
//	Pan troglodytes	251, 236, 93	90	chimpanzee
func ReadKeys(r io.Reader) (*Keys, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"taxon", "color"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	k := &Keys{
		color: make(map[string]color.Color),
		gray:  make(map[string]uint8),
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "taxon"
		name := normKey(row[fields[f]])
		if name == "" {
			continue
		}

		f = "color"
		c, err := parseRGB(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		k.color[name] = c

		f = "gray"
		if _, ok := fields[f]; !ok {
			continue
		}
		gray, err := strconv.Atoi(strings.TrimSpace(row[fields[f]]))
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if gray < 0 || gray > 255 {
			return nil, fmt.Errorf("on row %d: field %q: invalid value %d", ln, f, gray)
		}
		k.gray[name] = uint8(gray)
	}
	return k, nil
}

// ReadKeysFile reads a key file from a file.
func ReadKeysFile(name string) (*Keys, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	k, err := ReadKeys(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return k, nil
}

func parseRGB(s string) (color.RGBA, error) {
	val := strings.Split(s, ",")
	if len(val) != 3 {
		return color.RGBA{}, fmt.Errorf("found %d values, want 3", len(val))
	}
	var rgb [3]uint8
	for i, name := range []string{"red", "green", "blue"} {
		v, err := strconv.Atoi(strings.TrimSpace(val[i]))
		if err != nil {
			return color.RGBA{}, fmt.Errorf("[%s value]: %v", name, err)
		}
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("[%s value]: invalid value %d", name, v)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
