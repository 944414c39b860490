// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// trees as image files.
package draw

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/config"
	"github.com/js-arias/phyview/controller"
	"github.com/js-arias/phyview/export"
	"github.com/js-arias/phyview/render"
)

var Command = &command.Command{
	Usage: `draw [--tsv] [--style <style-file>]
	[--format <format>] [--scale <value>]
	[-o|--output <out-prefix>] [<tree-file>]`,
	Short: "draw trees as image files",
	Long: `
Command draw reads the trees from a file and draws each tree into an image
file.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.

By default, trees are drawn as phylograms with the default style. Use the flag
--style to define a style file. See 'phytool help style-files' for the
description of the style file.

By default, the images will be SVG files. Use the flag --format to set a
different format; valid formats are "svg", "pdf", and "png".

By default, the canvas is drawn at the size defined by the style. Use the flag
--scale to define a scale factor for the image (it can have decimal points).

By default, the names of the trees will be used as the output file names. Use
the flag -o, or --output, to define a prefix for the resulting files.

The number of working threads, and the maximum number of labels, are taken
from the environment variables used by PhyView, PHYVIEW_THREADS,
PHYVIEW_TIP_LABELS_MAX, and PHYVIEW_NODE_LABELS_MAX.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool
var styleFile string
var formatFlag string
var scale float64
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
	c.Flags().StringVar(&styleFile, "style", "", "")
	c.Flags().StringVar(&formatFlag, "format", "svg", "")
	c.Flags().Float64Var(&scale, "scale", 1, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	format := strings.ToLower(formatFlag)
	if _, ok := export.FormatOf("tree." + format); !ok {
		return c.UsageError(fmt.Sprintf("invalid --format value %q", formatFlag))
	}
	if scale <= 0 {
		return c.UsageError(fmt.Sprintf("invalid --scale value %.3f", scale))
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	ls, err := input.Read(c.Stdin(), name, tsvFlag)
	if err != nil {
		return err
	}

	s, err := config.Load()
	if err != nil {
		return err
	}
	style := config.DefaultStyle()
	if styleFile != "" {
		style, err = config.ReadStyle(styleFile)
		if err != nil {
			return err
		}
	}
	opts, err := style.Options(scale)
	if err != nil {
		return err
	}
	opts.Renderer = render.New(render.NewPool(s.Threads), s.Caps())

	ctrl := controller.New(opts)
	if err := check(ctrl.Update(controller.Load{Name: name, Trees: ls})); err != nil {
		return err
	}
	for i, t := range ls {
		ctrl.Update(controller.SelectTree{Index: i})
		out := input.Name(t, i)
		if outPrefix != "" {
			out = outPrefix + "-" + out
		}
		out += "." + format
		if err := check(ctrl.Update(controller.ExportTo{Name: out})); err != nil {
			return err
		}
	}
	return nil
}

// check returns the error of an error banner.
func check(ev []controller.Event) error {
	for _, e := range ev {
		if b, ok := e.(controller.ErrorBanner); ok {
			return b.Err
		}
	}
	return nil
}
