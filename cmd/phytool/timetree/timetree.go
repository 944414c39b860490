// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package timetree implements a command to convert
// trees into time-calibrated trees.
package timetree

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `timetree [--scale <value>]
	[-o|--output <file>] [<tree-file>]`,
	Short: "convert trees into time-calibrated trees",
	Long: `
Command timetree reads Newick trees from a file and writes them as a
tab-delimited file of time-calibrated trees.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input. All trees must have branch
lengths. The height of each tree is used as the age of its root.

By default, branch lengths are read as million years. Use the flag --scale to
set the number of years of a branch length unit.

By default, the trees will be written in the standard output. Use the flag -o,
or --output, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var scale float64
var output string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&scale, "scale", tree.MillionYears, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if scale <= 0 {
		return c.UsageError(fmt.Sprintf("invalid --scale value %.3f", scale))
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	ls, err := input.Read(c.Stdin(), name, false)
	if err != nil {
		return err
	}

	coll := timetree.NewCollection()
	for i, t := range ls {
		tn := input.Name(t, i)
		tt, err := t.TimeTree(tn, scale)
		if err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
		if err := coll.Add(tt); err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
	}

	return input.Output(c.Stdout(), output, func(w io.Writer) error {
		return coll.TSV(w)
	})
}
