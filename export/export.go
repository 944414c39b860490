// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export writes the frames of a tree view
// into PDF, SVG, and PNG files.
//
// All formats replay the same frames
// built for the screen,
// so strokes, dashes, and label rotations
// are the same as in the on-screen drawing.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/phyview/shape"
)

// Margin is the default page margin.
const Margin = 20

// DefaultFont is the font family recorded in the exported files.
const DefaultFont = "Liberation Sans"

// A Document is a drawing to be exported.
type Document struct {
	Frames []*shape.Frame

	// Size of the canvas.
	Width, Height float64

	// Uniform margin around the canvas.
	Margin float64

	// Font family of the texts.
	Font string
}

// Page returns the size of the page
// including the margins.
func (d Document) Page() (w, h float64) {
	return d.Width + 2*d.Margin, d.Height + 2*d.Margin
}

func (d Document) font() string {
	if d.Font == "" {
		return DefaultFont
	}
	return d.Font
}

// Error is an error produced while writing an export file.
type Error struct {
	Format string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("while writing %s file: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Format is an export format.
type Format string

// Valid export formats.
const (
	PDF Format = "pdf"
	SVG Format = "svg"
	PNG Format = "png"
)

// FormatOf returns the export format of a file name.
func FormatOf(name string) (Format, bool) {
	f := Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), "."))
	switch f {
	case PDF, SVG, PNG:
		return f, true
	}
	return "", false
}

// Write writes a document using the indicated format.
func Write(w io.Writer, f Format, d Document) error {
	switch f {
	case PDF:
		return WritePDF(w, d)
	case SVG:
		return WriteSVG(w, d)
	case PNG:
		return WritePNG(w, d)
	}
	return &Error{Format: string(f), Err: fmt.Errorf("unknown format %q", f)}
}

// WriteFile writes a document into a file,
// using the file extension as the format.
func WriteFile(name string, d Document) (err error) {
	format, ok := FormatOf(name)
	if !ok {
		return &Error{Format: filepath.Ext(name), Err: fmt.Errorf("file %q: unknown format", name)}
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

	return Write(f, format, d)
}

// baseline is the distance from the vertical middle
// to the baseline of a text.
func baseline(size float64) float64 {
	return size / 3
}

// offset returns the horizontal shift of a text
// of the given width.
func offset(a shape.Align, width float64) float64 {
	switch a {
	case shape.Center:
		return -width / 2
	case shape.Right:
		return -width
	}
	return 0
}

func rgba(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{0, 0, 0, 255}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

// errWriter keeps the first error of a writer.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	if err != nil {
		ew.err = err
	}
	return n, err
}
