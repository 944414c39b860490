// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ltt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// A Plotter draws a lineages-through-time series
// as a step function.
type Plotter struct {
	Series Series
	Style  draw.LineStyle
}

// NewPlotter returns a plotter for a series
// using the default line style.
func NewPlotter(s Series) *Plotter {
	return &Plotter{
		Series: s,
		Style:  plotter.DefaultLineStyle,
	}
}

// DataRange implements the plot.DataRanger interface.
func (lp *Plotter) DataRange() (xMin, xMax, yMin, yMax float64) {
	if len(lp.Series) == 0 {
		return 0, 1, 1, 2
	}
	times := make([]float64, 0, len(lp.Series))
	counts := make([]float64, 0, len(lp.Series))
	for _, p := range lp.Series {
		times = append(times, p.Time)
		counts = append(counts, float64(p.Count))
	}
	xMin, xMax = floats.Min(times), floats.Max(times)
	yMax = floats.Max(counts)
	if xMax <= xMin {
		xMax = xMin + 1
	}
	if yMax <= 1 {
		yMax = 2
	}
	return xMin, xMax, 1, yMax
}

// Plot implements the plot.Plotter interface.
func (lp *Plotter) Plot(c draw.Canvas, plt *plot.Plot) {
	if len(lp.Series) == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)

	c.SetLineStyle(lp.Style)
	var p vg.Path
	for i, pt := range lp.Series {
		x := trX(pt.Time)
		y := trY(float64(max(pt.Count, 1)))
		if i == 0 {
			p.Move(vg.Point{X: x, Y: y})
			continue
		}

		// vertical step at the change of the count
		prev := trY(float64(max(lp.Series[i-1].Count, 1)))
		p.Line(vg.Point{X: x, Y: prev})
		p.Line(vg.Point{X: x, Y: y})
	}
	c.Stroke(p)
}

// Plot returns a plot of a series,
// with the time in the x axis
// and the number of lineages
// in a logarithmic y axis.
func (s Series) Plot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time"
	p.Y.Label.Text = "lineages"
	p.X.Tick.Marker = Ticker{N: XTicks}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = Ticker{N: YTicks, Log: true}

	p.Add(plotter.NewGrid())
	lp := NewPlotter(s)
	p.Add(lp)
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = lp.DataRange()
	return p
}

// Default plot size.
const (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

// Save saves a plot of a series in a file.
// The format is set by the file extension,
// and can be "pdf", "png", or "svg".
func (s Series) Save(name, title string) error {
	p := s.Plot(title)
	if err := p.Save(Width, Height, name); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}

// WritePlot writes a plot of a series
// in the indicated format.
func (s Series) WritePlot(w io.Writer, format, title string) error {
	format = strings.TrimPrefix(strings.ToLower(format), ".")
	p := s.Plot(title)
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("while writing %s plot: %v", format, err)
	}
	return nil
}

// Format returns the plot format of a file name.
func Format(name string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}
