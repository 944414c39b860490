// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements a command to write
// trees as Newick trees.
package newick

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/tree"
)

var Command = &command.Command{
	Usage: `newick [--tsv]
	[--root <node>] [--unroot]
	[--subtree <node>]
	[--ladderize <order>]
	[-o|--output <file>] [<tree-file>]`,
	Short: "write trees in Newick format",
	Long: `
Command newick reads the trees from a file and writes them as Newick trees.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.

Trees can be modified before being written. If the flag --root is set, the
trees will be rerooted at the branch of the indicated node. The flag --unroot
removes the root of the trees. The flag --subtree writes only the clade of the
indicated node. Nodes are identified by their names.

The flag --ladderize sorts the children of each node by their number of
terminals; valid values are "ascending" and "descending".

By default, the trees will be written in the standard output. Use the flag -o,
or --output, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool
var unroot bool
var rootNode string
var subtree string
var ladderize string
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
	c.Flags().BoolVar(&unroot, "unroot", false, "")
	c.Flags().StringVar(&rootNode, "root", "", "")
	c.Flags().StringVar(&subtree, "subtree", "", "")
	c.Flags().StringVar(&ladderize, "ladderize", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	var desc bool
	switch ladderize {
	case "", "ascending":
	case "descending":
		desc = true
	default:
		return c.UsageError(fmt.Sprintf("invalid --ladderize value %q", ladderize))
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	ls, err := input.Read(c.Stdin(), name, tsvFlag)
	if err != nil {
		return err
	}

	for i, t := range ls {
		nt, err := transform(t)
		if err != nil {
			return fmt.Errorf("tree %q: %v", input.Name(t, i), err)
		}
		if ladderize != "" {
			nt.Sort(desc)
		}
		ls[i] = nt
	}

	return input.Output(c.Stdout(), output, func(w io.Writer) error {
		for _, t := range ls {
			if err := newick.Write(w, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func transform(t *tree.Tree) (*tree.Tree, error) {
	if rootNode != "" {
		id, err := findNode(t, rootNode)
		if err != nil {
			return nil, err
		}
		if _, err := t.Reroot(id); err != nil {
			return nil, fmt.Errorf("root at %q: %w", rootNode, err)
		}
	}
	if unroot {
		if _, err := t.Unroot(); err != nil {
			return nil, err
		}
	}
	if subtree != "" {
		id, err := findNode(t, subtree)
		if err != nil {
			return nil, err
		}
		return t.Subtree(id)
	}
	return t, nil
}

func findNode(t *tree.Tree, name string) (tree.ID, error) {
	ids := t.Find(name)
	switch len(ids) {
	case 0:
		return tree.Nil, fmt.Errorf("node %q not found", name)
	case 1:
		return ids[0], nil
	}
	return tree.Nil, fmt.Errorf("node %q: found %d nodes with the same name", name, len(ids))
}
