// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the terminal names of the trees.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
)

var Command = &command.Command{
	Usage: "terms [--tsv] [--tree] [<tree-file>]",
	Short: "print the terminals of the trees",
	Long: `
Command terms reads the trees from a file and prints the names of the
terminals, in alphabetical order. Each name is printed once, even if it is
found in several trees. Unnamed terminals are ignored.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.

If the flag --tree is set, the terminals are printed for each tree, in
drawing order.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool
var byTree bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
	c.Flags().BoolVar(&byTree, "tree", false, "")
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

	if byTree {
		for i, t := range ls {
			fmt.Fprintf(c.Stdout(), "# %s\n", input.Name(t, i))
			for _, id := range t.Tips() {
				if l := t.Label(id); l != "" {
					fmt.Fprintf(c.Stdout(), "%s\n", l)
				}
			}
		}
		return nil
	}

	set := make(map[string]bool)
	for _, t := range ls {
		for _, id := range t.Tips() {
			if l := t.Label(id); l != "" {
				set[l] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	slices.Sort(names)
	for _, n := range names {
		fmt.Fprintf(c.Stdout(), "%s\n", n)
	}
	return nil
}
