// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// a summary of the trees in a file.
package stats

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/tree"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "stats [--tsv] [<tree-file>]",
	Short: "print a summary of the trees",
	Long: `
Command stats reads the trees from a file and prints a summary of each tree,
including the number of terminals and nodes, the height of the tree, if the
tree is rooted and ultrametric, and the distribution of its branch lengths.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
}

func run(c *command.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	ls, err := input.Read(c.Stdin(), name, tsvFlag)
	if err != nil {
		return err
	}

	for i, t := range ls {
		if i > 0 {
			fmt.Fprintf(c.Stdout(), "\n")
		}
		if err := writeStats(c.Stdout(), input.Name(t, i), t); err != nil {
			return err
		}
	}
	return nil
}

func writeStats(w io.Writer, name string, t *tree.Tree) error {
	fmt.Fprintf(w, "tree: %s\n", name)
	fmt.Fprintf(w, "\tterminals: %s\n", humanize.Comma(int64(t.TipCount())))
	fmt.Fprintf(w, "\tinternal nodes: %s\n", humanize.Comma(int64(t.InternalCount())))
	fmt.Fprintf(w, "\tmaximum depth: %d\n", t.MaxDepth())
	fmt.Fprintf(w, "\trooted: %v\n", t.IsRooted())
	if !t.HasBranchLengths() {
		_, err := fmt.Fprintf(w, "\tbranch lengths: none\n")
		return err
	}

	fmt.Fprintf(w, "\theight: %s\n", format(t.Height()))
	fmt.Fprintf(w, "\tultrametric: %v\n", t.IsUltrametric(-1))

	var lens []float64
	for _, id := range t.Nodes() {
		if t.IsRoot(id) {
			continue
		}
		if v, ok := t.Len(id); ok {
			lens = append(lens, v)
		}
	}
	if len(lens) == 0 {
		return nil
	}
	slices.Sort(lens)
	var sum float64
	for _, v := range lens {
		sum += v
	}
	_, err := fmt.Fprintf(w, "\tbranch lengths: n=%d sum=%s min=%s q05=%s median=%s q95=%s max=%s\n",
		len(lens),
		format(sum),
		format(lens[0]),
		format(stat.Quantile(0.05, stat.Empirical, lens, nil)),
		format(stat.Quantile(0.5, stat.Empirical, lens, nil)),
		format(stat.Quantile(0.95, stat.Empirical, lens, nil)),
		format(lens[len(lens)-1]),
	)
	return err
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
