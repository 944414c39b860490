// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package ltt implements a command to write
// the lineages-through-time series of trees.
package ltt

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/ltt"
	"github.com/js-arias/phyview/treestate"
)

var Command = &command.Command{
	Usage: `ltt [--tsv] [--plot <prefix>] [--format <format>]
	[-o|--output <file>] [<tree-file>]`,
	Short: "write lineages-through-time series",
	Long: `
Command ltt reads the trees from a file and writes the lineages-through-time
series of each tree.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.

The series is written as a tab-delimited file with the following columns:

	-tree     the name of the tree
	-time     the time of the step, from the root
	-lineages the number of lineages at the step

Times are in branch length units. If the tree has no branch lengths, times are
normalized to the number of nodes from the root.

By default, the series will be written in the standard output. Use the flag -o,
or --output, to define an output file.

If the flag --plot is set, a plot of each series will be drawn, using the
value of the flag as the prefix of the image files. By default the plots are
SVG files. Use the flag --format to set a different format; valid formats are
"svg", "pdf", and "png".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool
var plotPrefix string
var formatFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
	c.Flags().StringVar(&plotPrefix, "plot", "", "")
	c.Flags().StringVar(&formatFlag, "format", "svg", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	format := ltt.Format("x." + formatFlag)
	switch format {
	case "svg", "pdf", "png":
	default:
		return c.UsageError(fmt.Sprintf("invalid --format value %q", formatFlag))
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	ls, err := input.Read(c.Stdin(), name, tsvFlag)
	if err != nil {
		return err
	}

	names := make([]string, len(ls))
	series := make([]ltt.Series, len(ls))
	for i, t := range ls {
		names[i] = input.Name(t, i)
		st := treestate.New(t, treestate.Options{})
		series[i] = ltt.Compute(st.Edges())
	}

	if plotPrefix != "" {
		for i, s := range series {
			out := fmt.Sprintf("%s-%s.%s", plotPrefix, names[i], format)
			if err := s.Save(out, names[i]); err != nil {
				return err
			}
		}
	}

	return input.Output(c.Stdout(), output, func(w io.Writer) error {
		return writeSeries(w, names, series)
	})
}

func writeSeries(w io.Writer, names []string, series []ltt.Series) error {
	if _, err := fmt.Fprintf(w, "tree\ttime\tlineages\n"); err != nil {
		return err
	}
	for i, s := range series {
		for _, p := range s {
			if _, err := fmt.Fprintf(w, "%s\t%.6f\t%d\n", names[i], p.Time, p.Count); err != nil {
				return err
			}
		}
	}
	return nil
}
