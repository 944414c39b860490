// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package export

import (
	"io"

	"github.com/js-arias/phyview/shape"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgpdf"
)

// WritePDF writes a document as a single page PDF.
// Canvas pixels are PDF points,
// and the page includes the margin.
func WritePDF(w io.Writer, d Document) error {
	pw, ph := d.Page()
	c := vgpdf.New(vg.Length(pw), vg.Length(ph))
	c.EmbedFonts(false)

	// the canvas is y-down,
	// the page is y-up
	tr := func(p shape.Point) vg.Point {
		return vg.Point{
			X: vg.Length(p.X + d.Margin),
			Y: vg.Length(ph - (p.Y + d.Margin)),
		}
	}

	for _, f := range d.Frames {
		if f == nil {
			continue
		}
		for _, s := range f.Shapes {
			p := pdfPath(s.Path, tr)
			if s.Fill != nil {
				c.SetColor(s.Fill)
				c.Fill(p)
			}
			if s.Stroke.Width <= 0 || s.Stroke.Color == nil {
				continue
			}
			c.SetColor(s.Stroke.Color)
			c.SetLineWidth(vg.Length(s.Stroke.Width))
			var dash []vg.Length
			for _, v := range s.Stroke.Dash {
				dash = append(dash, vg.Length(v))
			}
			c.SetLineDash(dash, 0)
			c.Stroke(p)
		}
		for _, t := range f.Texts {
			face := font.DefaultCache.Lookup(plot.DefaultFont, vg.Length(t.Size))
			width := face.Width(t.Text).Points()

			c.Push()
			pt := tr(t.Pos)
			c.Translate(pt)
			c.Rotate(-t.Angle)
			c.SetColor(rgba(t.Color))
			c.FillString(face, vg.Point{
				X: vg.Length(offset(t.Align, width)),
				Y: vg.Length(-baseline(t.Size)),
			}, t.Text)
			c.Pop()
		}
	}

	if _, err := c.WriteTo(w); err != nil {
		return &Error{Format: string(PDF), Err: err}
	}
	return nil
}

// pdfPath returns a path in page coordinates.
// As the y axis is flipped,
// arc angles change their sign.
func pdfPath(p shape.Path, tr func(shape.Point) vg.Point) vg.Path {
	var vp vg.Path
	for _, s := range p.Segs {
		switch s.Kind {
		case shape.MoveTo:
			vp.Move(tr(s.Pt))
		case shape.LineTo:
			vp.Line(tr(s.Pt))
		case shape.ArcTo:
			vp.Arc(tr(s.Center), vg.Length(s.Radius), -s.Start, -s.Sweep)
		case shape.Close:
			vp.Close()
		}
	}
	return vp
}
