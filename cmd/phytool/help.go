// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(colorKeyGuide)
	app.Add(newickFilesGuide)
	app.Add(styleFilesGuide)
}

var newickFilesGuide = &command.Command{
	Usage: "newick-files",
	Short: "about tree files",
	Long: `
PhyTool and PhyView read trees from two kinds of files.

By default, a tree file is read as a Newick file, a text file with one or more
trees, each one ending with a semicolon. Here is an example file with two
trees:

	((Homo:6,Pan:6)Hominini:2,Gorilla:8)Homininae;
	((Homo,Gorilla),Pan);

Terminal and internal nodes can have names, and branch lengths are given after
a colon. Names with blanks or delimiters are enclosed in single quotes, for
example 'Pan paniscus', and an underscore in an unquoted name is read as a
blank. Comments enclosed in square brackets are ignored. When a file is read,
errors are reported with the line and column of the failure.

Files with the extension ".tab" or ".tsv" are read as tab-delimited files of
time-calibrated trees, as produced by the command 'phytool timetree'. In these
files, ages are stored in years, and branch lengths are read in million years.
Each row of the file is a node of a tree, with the name of the tree, the ID of
the node, the ID of its parent, its age, and for terminals, its taxon name.

When the commands read the trees from the standard input, Newick is the
default format; use the flag --tsv to read a tab-delimited file.
	`,
}

var styleFilesGuide = &command.Command{
	Usage: "style-files",
	Short: "about drawing style files",
	Long: `
The drawing style of a tree can be defined in a style file. The style file is
used by the command 'phytool draw', and by PhyView when the environment
variable PHYVIEW_STYLE is set.

A style file is either a YAML file, when the extension of the file is ".yaml"
or ".yml", or a tab-delimited file with the following columns:

	-key    the name of the style parameter
	-value  the value of the parameter

Here is an example of a tab-delimited style file:

	# tree style
	key	value
	projection	fan
	open-angle	270
	rotation	45
	gradient	incandescent

And the same style as a YAML file:

	projection: fan
	open-angle: 270
	rotation: 45
	gradient: incandescent

The valid parameters are:

	-projection       either "phylogram" or "fan".
	-ordering         either "unordered", "ascending", or "descending".
	-open-angle       the angle used by a fan, in degrees.
	-rotation         the rotation of a fan, in degrees.
	-root-length      the length of the root branch, in pixels.
	-draw-root        if true, the root branch is drawn.
	-align-tips       if true, terminal labels are aligned.
	-line-width       the width of the branches, in pixels.
	-legend           if true, a scale bar is drawn.
	-tip-labels       if true, terminal labels are drawn.
	-internal-labels  if true, internal node labels are drawn.
	-branch-labels    if true, branch lengths are drawn.
	-tip-size         the font size of terminal labels.
	-internal-size    the font size of internal labels.
	-branch-size      the font size of branch labels.
	-gradient         a color gradient for the branches, by the distance to
	                  the root; valid values are "gray", "lightgray",
	                  "incandescent", "iridescent", and "rainbow".
	-keys             a color key file for the terminal labels.
	-width            the width of the canvas, in pixels.
	-height           the height of the canvas, in pixels.

Undefined parameters take their default values.
	`,
}

var colorKeyGuide = &command.Command{
	Usage: "color-keys",
	Short: "about color keys file",
	Long: `
By default, terminal labels are drawn in black. A color key file can be used
to set the colors of the terminal labels.

A color key file is a tab-delimited file with the following columns:

	-taxon  the name used as an identifier
	-color  a RGB value separated by commas, for example, "125,132,148".

Optionally, it can contain the following column:

	-gray   for a gray scale value (using the RGB scale)

Any other columns will be ignored.

A key matches a terminal with the same name, or terminals whose first word is
the key, so a genus name colors all of its species. Matches ignore case.

Here is an example of a key file:

	taxon	color	gray	comment
	Homo	0, 26, 51	0	humans
	Pan paniscus	68, 167, 196	20	bonobo
	Pan troglodytes	251, 236, 93	90	chimpanzee
	`,
}
