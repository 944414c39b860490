// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package ltt

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
)

// Default number of ticks of each axis.
const (
	XTicks = 6
	YTicks = 5
)

// maxSteps limits the search of a tick spacing.
const maxSteps = 64

// Ticks returns the tick values between min and max.
// The spacing of the ticks is reduced
// until there are at least n/2 ticks in the range.
//
// In a linear axis the spacings are 1, 2, and 5
// times a power of ten.
// In a logarithmic axis,
// ticks are placed at each power of ten,
// then at 1, 2, and 5 times each power of ten,
// and finally at every integer multiple.
func Ticks(min, max float64, n int, log bool) []float64 {
	if math.IsNaN(min) || math.IsNaN(max) || max < min {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if log {
		return logTicks(min, max, n)
	}
	return linearTicks(min, max, n)
}

// Spacing returns the spacing of the linear ticks
// between min and max.
func Spacing(min, max float64, n int) float64 {
	r := max - min
	if r <= 0 {
		return 0
	}
	if n < 1 {
		n = 1
	}

	// 1, 0.5, 0.2, 0.1, 0.05...
	mag := math.Pow(10, math.Ceil(math.Log10(r)))
	steps := []float64{1, 0.5, 0.2}
	s := mag
	for i := 0; i < maxSteps; i++ {
		s = mag * steps[i%3]
		if count(min, max, s) >= float64(n)/2 {
			break
		}
		if i%3 == 2 {
			mag /= 10
		}
	}
	return s
}

func count(min, max, s float64) float64 {
	return math.Floor(max/s+1e-9) - math.Ceil(min/s-1e-9) + 1
}

func linearTicks(min, max float64, n int) []float64 {
	if max == min {
		return []float64{min}
	}
	s := Spacing(min, max, n)
	first := math.Ceil(min/s - 1e-9)
	last := math.Floor(max/s + 1e-9)
	ticks := make([]float64, 0, int(last-first)+1)
	for i := first; i <= last; i++ {
		// round to the decimals of the spacing
		v := i * s
		d := math.Pow(10, float64(Decimals(s)))
		ticks = append(ticks, math.Round(v*d)/d)
	}
	return ticks
}

var logMultipliers = [][]float64{
	{1},
	{1, 2, 5},
	{1, 2, 3, 4, 5, 6, 7, 8, 9},
}

func logTicks(min, max float64, n int) []float64 {
	if min <= 0 {
		min = 1
	}
	if max < min {
		return nil
	}
	lo := int(math.Floor(math.Log10(min)))
	hi := int(math.Ceil(math.Log10(max)))

	var ticks []float64
	for _, ms := range logMultipliers {
		ticks = ticks[:0]
		for e := lo; e <= hi; e++ {
			p := math.Pow(10, float64(e))
			for _, m := range ms {
				v := m * p
				if v < min*(1-1e-9) || v > max*(1+1e-9) {
					continue
				}
				ticks = append(ticks, v)
			}
		}
		if float64(len(ticks)) >= float64(n)/2 {
			break
		}
	}
	return ticks
}

// Decimals returns the number of decimals
// required to print the fractional part of a tick spacing,
// between 0 and 4.
func Decimals(spacing float64) int {
	spacing = math.Abs(spacing)
	if spacing == 0 || math.IsInf(spacing, 0) || math.IsNaN(spacing) {
		return 0
	}
	frac := spacing - math.Floor(spacing)
	frac = math.Round(frac*1e10) / 1e10
	if frac == 0 {
		return 0
	}
	s := strconv.FormatFloat(frac, 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	return min(len(s)-i-1, 4)
}

// Label returns the label of a tick value.
func Label(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Ticker is a plot.Ticker for lineages-through-time plots.
type Ticker struct {
	// Number of target ticks.
	N int

	// If set, ticks are logarithmic.
	Log bool
}

// Ticks implements the plot.Ticker interface.
func (t Ticker) Ticks(min, max float64) []plot.Tick {
	n := t.N
	if n < 1 {
		n = XTicks
	}
	vs := Ticks(min, max, n, t.Log)
	dec := 0
	if !t.Log {
		dec = Decimals(Spacing(min, max, n))
	} else if len(vs) > 0 {
		dec = Decimals(vs[0])
	}

	ticks := make([]plot.Tick, 0, len(vs))
	for _, v := range vs {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: Label(v, dec),
		})
	}
	return ticks
}
