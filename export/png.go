// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package export

import (
	"image/color"
	"io"
	"math"

	"git.sr.ht/~sbinet/gg"
	"github.com/js-arias/phyview/shape"
	"golang.org/x/image/font/basicfont"
)

// faceSize is the size in pixels
// of the fixed font used in PNG images.
const faceSize = 13

// WritePNG writes a document as a PNG image.
// The texts are drawn with a fixed bitmap font
// scaled to the size of each text.
func WritePNG(w io.Writer, d Document) error {
	pw, ph := d.Page()
	dc := gg.NewContext(int(math.Ceil(pw)), int(math.Ceil(ph)))
	dc.SetColor(color.White)
	dc.Clear()
	dc.Translate(d.Margin, d.Margin)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	dc.SetFontFace(basicfont.Face7x13)

	for _, f := range d.Frames {
		if f == nil {
			continue
		}
		for _, s := range f.Shapes {
			if s.Fill != nil {
				ggPath(dc, s.Path)
				dc.SetColor(s.Fill)
				dc.Fill()
			}
			if s.Stroke.Width <= 0 || s.Stroke.Color == nil {
				continue
			}
			ggPath(dc, s.Path)
			dc.SetColor(s.Stroke.Color)
			dc.SetLineWidth(s.Stroke.Width)
			dc.SetDash(s.Stroke.Dash...)
			dc.Stroke()
		}
		for _, t := range f.Texts {
			ax := 0.0
			switch t.Align {
			case shape.Center:
				ax = 0.5
			case shape.Right:
				ax = 1
			}
			dc.Push()
			dc.RotateAbout(t.Angle, t.Pos.X, t.Pos.Y)
			k := t.Size / faceSize
			dc.ScaleAbout(k, k, t.Pos.X, t.Pos.Y)
			dc.SetColor(rgba(t.Color))
			dc.DrawStringAnchored(t.Text, t.Pos.X, t.Pos.Y, ax, 0.5)
			dc.Pop()
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return &Error{Format: string(PNG), Err: err}
	}
	return nil
}

func ggPath(dc *gg.Context, p shape.Path) {
	dc.ClearPath()
	for _, s := range p.Segs {
		switch s.Kind {
		case shape.MoveTo:
			dc.MoveTo(s.Pt.X, s.Pt.Y)
		case shape.LineTo:
			dc.LineTo(s.Pt.X, s.Pt.Y)
		case shape.ArcTo:
			dc.DrawArc(s.Center.X, s.Center.Y, s.Radius, s.Start, s.Start+s.Sweep)
		case shape.Close:
			dc.ClosePath()
		}
	}
}
