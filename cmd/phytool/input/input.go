// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package input reads the trees used by phytool commands.
package input

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/phyview/controller"
	"github.com/js-arias/phyview/tree"
)

// Read reads the trees of a file.
// If the name is empty or "-",
// the trees are read from r,
// and tsv indicates if the trees
// are time-calibrated trees in a tab-delimited file.
func Read(r io.Reader, name string, tsv bool) ([]*tree.Tree, error) {
	if name != "" && name != "-" {
		m := controller.ReadFile(name)
		if m.Err != nil {
			return nil, m.Err
		}
		if len(m.Trees) == 0 {
			return nil, fmt.Errorf("file %q: no trees found", name)
		}
		return m.Trees, nil
	}

	ls, err := controller.ReadTrees(r, tsv)
	if err != nil {
		return nil, fmt.Errorf("while reading standard input: %v", err)
	}
	if len(ls) == 0 {
		return nil, fmt.Errorf("standard input: no trees found")
	}
	return ls, nil
}

// Name returns the name of a tree.
// If the tree has no name,
// it uses its position in the file,
// starting from 1.
func Name(t *tree.Tree, i int) string {
	if n := t.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("tree-%d", i+1)
}

// Output calls fn with a writer on a file,
// or on w if the name is empty or "-".
func Output(w io.Writer, name string, fn func(w io.Writer) error) (err error) {
	if name == "" || name == "-" {
		return fn(w)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
