// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyTool is a tool to inspect, convert, and draw phylogenetic trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyview/cmd/phytool/draw"
	"github.com/js-arias/phyview/cmd/phytool/list"
	"github.com/js-arias/phyview/cmd/phytool/ltt"
	"github.com/js-arias/phyview/cmd/phytool/newick"
	"github.com/js-arias/phyview/cmd/phytool/nodes"
	"github.com/js-arias/phyview/cmd/phytool/stats"
	"github.com/js-arias/phyview/cmd/phytool/terms"
	"github.com/js-arias/phyview/cmd/phytool/timetree"
)

var app = &command.Command{
	Usage: "phytool <command> [<argument>...]",
	Short: "a tool to inspect, convert, and draw phylogenetic trees",
}

func init() {
	app.Add(draw.Command)
	app.Add(list.Command)
	app.Add(ltt.Command)
	app.Add(newick.Command)
	app.Add(nodes.Command)
	app.Add(stats.Command)
	app.Add(terms.Command)
	app.Add(timetree.Command)
}

func main() {
	app.Main()
}
