// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package nodes implements a command to write
// the nodes of the trees.
package nodes

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/tree"
)

var Command = &command.Command{
	Usage: `nodes [--tsv] [--json]
	[-o|--output <file>] [<tree-file>]`,
	Short: "write the nodes of the trees",
	Long: `
Command nodes reads the trees from a file and writes the nodes of each tree,
in pre-order.

The argument of the command is the name of the tree file. If no file is given,
the trees will be read from the standard input, by default as Newick trees. Use
the flag --tsv to read a tab-delimited file of time-calibrated trees from the
standard input.

By default, the nodes are written as a tab-delimited file with the following
columns:

	-tree    the name of the tree
	-node    the ID of the node
	-parent  the ID of the parent node, or "-" for the root
	-label   the label of the node
	-length  the length of the branch, or "-" if undefined
	-tips    the number of terminals descendant from the node
	-depth   the number of nodes from the root

Use the flag --json to write the nodes as a JSON array of trees.

By default, the nodes will be written in the standard output. Use the flag -o,
or --output, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var tsvFlag bool
var jsonFlag bool
var output string

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&tsvFlag, "tsv", false, "")
	c.Flags().BoolVar(&jsonFlag, "json", false, "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
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

	trees := make([]treeNodes, len(ls))
	for i, t := range ls {
		trees[i] = treeNodes{
			Name:  input.Name(t, i),
			Nodes: nodes(t),
		}
	}

	return input.Output(c.Stdout(), output, func(w io.Writer) error {
		if jsonFlag {
			return writeJSON(w, trees)
		}
		return writeTSV(w, trees)
	})
}

type node struct {
	ID     string   `json:"id"`
	Parent string   `json:"parent,omitempty"`
	Label  string   `json:"label,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Tips   int      `json:"tips"`
	Depth  int      `json:"depth"`
}

type treeNodes struct {
	Name  string `json:"tree"`
	Nodes []node `json:"nodes"`
}

func nodes(t *tree.Tree) []node {
	ids := t.Nodes()
	pos := make(map[tree.ID]int, len(ids))
	ns := make([]node, 0, len(ids))
	for i, id := range ids {
		pos[id] = i
		n := node{
			ID:    id.String(),
			Label: t.Label(id),
		}
		if !t.IsRoot(id) {
			p := t.Parent(id)
			n.Parent = p.String()
			n.Depth = ns[pos[p]].Depth + 1
		}
		if v, ok := t.Len(id); ok {
			n.Length = &v
		}
		ns = append(ns, n)
	}

	// in pre-order, descendants are after their ancestors
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if t.IsTip(id) {
			ns[i].Tips++
		}
		if !t.IsRoot(id) {
			ns[pos[t.Parent(id)]].Tips += ns[i].Tips
		}
	}
	return ns
}

func writeJSON(w io.Writer, trees []treeNodes) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(trees); err != nil {
		return fmt.Errorf("while encoding JSON: %v", err)
	}
	return nil
}

func writeTSV(w io.Writer, trees []treeNodes) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"tree", "node", "parent", "label", "length", "tips", "depth"}
	if err := tab.Write(header); err != nil {
		return err
	}
	for _, t := range trees {
		for _, n := range t.Nodes {
			parent := n.Parent
			if parent == "" {
				parent = "-"
			}
			length := "-"
			if n.Length != nil {
				length = strconv.FormatFloat(*n.Length, 'f', -1, 64)
			}
			row := []string{
				t.Name,
				n.ID,
				parent,
				n.Label,
				length,
				strconv.Itoa(n.Tips),
				strconv.Itoa(n.Depth),
			}
			if err := tab.Write(row); err != nil {
				return err
			}
		}
	}
	tab.Flush()
	return tab.Error()
}
