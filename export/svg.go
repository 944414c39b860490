// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package export

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/js-arias/phyview/shape"
)

// WriteSVG writes a document as an SVG file.
func WriteSVG(w io.Writer, d Document) error {
	ew := &errWriter{w: w}
	s := svg.New(ew)

	pw, ph := d.Page()
	s.Start(int(math.Ceil(pw)), int(math.Ceil(ph)))
	s.Gstyle(fmt.Sprintf("font-family:%s", d.font()))
	s.Gtransform(fmt.Sprintf("translate(%s,%s)", num(d.Margin), num(d.Margin)))

	for _, f := range d.Frames {
		if f == nil {
			continue
		}
		for _, sh := range f.Shapes {
			s.Path(svgPath(sh.Path), shapeStyle(sh))
		}
		for _, t := range f.Texts {
			s.Gtransform(fmt.Sprintf("translate(%s,%s) rotate(%s)", num(t.Pos.X), num(t.Pos.Y), num(t.Angle*180/math.Pi)))
			s.Text(0, 0, t.Text, textStyle(t))
			s.Gend()
		}
	}

	s.Gend()
	s.Gend()
	s.End()
	if ew.err != nil {
		return &Error{Format: string(SVG), Err: ew.err}
	}
	return nil
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func colorStyle(c color.Color) (string, string) {
	n := rgba(c)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), num(float64(n.A) / 255)
}

func shapeStyle(sh shape.Shape) string {
	var st []string
	if sh.Fill != nil {
		c, op := colorStyle(sh.Fill)
		st = append(st, "fill:"+c, "fill-opacity:"+op)
	} else {
		st = append(st, "fill:none")
	}
	if sh.Stroke.Width > 0 && sh.Stroke.Color != nil {
		c, op := colorStyle(sh.Stroke.Color)
		st = append(st,
			"stroke:"+c,
			"stroke-opacity:"+op,
			"stroke-width:"+num(sh.Stroke.Width),
			"stroke-linecap:round",
			"stroke-linejoin:round",
		)
		if len(sh.Stroke.Dash) > 0 {
			ds := make([]string, 0, len(sh.Stroke.Dash))
			for _, v := range sh.Stroke.Dash {
				ds = append(ds, num(v))
			}
			st = append(st, "stroke-dasharray:"+strings.Join(ds, ","))
		}
	}
	return strings.Join(st, ";")
}

func textStyle(t shape.Text) string {
	anchor := "start"
	switch t.Align {
	case shape.Center:
		anchor = "middle"
	case shape.Right:
		anchor = "end"
	}
	c, op := colorStyle(t.Color)
	return strings.Join([]string{
		"font-size:" + num(t.Size) + "px",
		"text-anchor:" + anchor,
		"dominant-baseline:central",
		"fill:" + c,
		"fill-opacity:" + op,
	}, ";")
}

// svgPath returns the data of an SVG path.
// Full circles are split in two arcs.
func svgPath(p shape.Path) string {
	var b strings.Builder
	cur := false
	for _, s := range p.Segs {
		switch s.Kind {
		case shape.MoveTo:
			fmt.Fprintf(&b, "M%s %s ", num(s.Pt.X), num(s.Pt.Y))
			cur = true
		case shape.LineTo:
			if !cur {
				fmt.Fprintf(&b, "M%s %s ", num(s.Pt.X), num(s.Pt.Y))
				cur = true
				continue
			}
			fmt.Fprintf(&b, "L%s %s ", num(s.Pt.X), num(s.Pt.Y))
		case shape.ArcTo:
			start := shape.Polar(s.Center, s.Radius, s.Start)
			cmd := "L"
			if !cur {
				cmd = "M"
				cur = true
			}
			fmt.Fprintf(&b, "%s%s %s ", cmd, num(start.X), num(start.Y))
			n := 1
			if math.Abs(s.Sweep) > math.Pi {
				n = 2
			}
			sweep := 0
			if s.Sweep > 0 {
				sweep = 1
			}
			for i := 1; i <= n; i++ {
				end := shape.Polar(s.Center, s.Radius, s.Start+s.Sweep*float64(i)/float64(n))
				fmt.Fprintf(&b, "A%s %s 0 0 %d %s %s ", num(s.Radius), num(s.Radius), sweep, num(end.X), num(end.Y))
			}
		case shape.Close:
			b.WriteString("Z ")
		}
	}
	return strings.TrimSpace(b.String())
}
