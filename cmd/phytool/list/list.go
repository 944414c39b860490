// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to list
// the trees in a file.
package list

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
)

var Command = &command.Command{
	Usage: "list [--tsv] [--count] [<tree-file>]",
	Short: "list the trees in a file",
	Long: `
Command list reads the trees from a file and prints the name of each tree.
Trees without a name are listed by their position in the file.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.

If the flag --count is set, the number of terminals of each tree will be
printed.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool
var countFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
	c.Flags().BoolVar(&countFlag, "count", false, "")
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
		if countFlag {
			fmt.Fprintf(c.Stdout(), "%s\t%s\n", input.Name(t, i), humanize.Comma(int64(t.TipCount())))
			continue
		}
		fmt.Fprintf(c.Stdout(), "%s\n", input.Name(t, i))
	}
	return nil
}
