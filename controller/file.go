// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package controller

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/phyview/newick"
	"github.com/js-arias/phyview/tree"
	"github.com/js-arias/timetree"
)

// IsTimeTree returns true if a file name
// is a file of time-calibrated trees.
func IsTimeTree(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tab", ".tsv":
		return true
	}
	return false
}

// ReadFile reads the trees in a file
// and returns the message that loads them.
//
// Files with extension ".tab" or ".tsv"
// are read as time-calibrated trees,
// any other file is read as a Newick file.
func ReadFile(name string) Load {
	f, err := os.Open(name)
	if err != nil {
		return Load{Name: name, Err: err}
	}
	defer f.Close()

	ls, err := ReadTrees(f, IsTimeTree(name))
	if err != nil {
		return Load{Name: name, Err: fmt.Errorf("while reading file %q: %v", name, err)}
	}
	return Load{Name: name, Trees: ls}
}

// ReadTrees reads the trees from a reader.
// If tsv is true,
// the trees are read as time-calibrated trees,
// with branch lengths in million years.
func ReadTrees(r io.Reader, tsv bool) ([]*tree.Tree, error) {
	if !tsv {
		return newick.Read(r)
	}

	c, err := timetree.ReadTSV(r)
	if err != nil {
		return nil, err
	}
	var ls []*tree.Tree
	for _, tn := range c.Names() {
		tt := c.Tree(tn)
		if tt == nil {
			continue
		}
		ls = append(ls, tree.FromTimeTree(tt, tree.MillionYears))
	}
	return ls, nil
}
