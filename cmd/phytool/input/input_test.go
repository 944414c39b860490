// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package input_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/phyview/cmd/phytool/input"
	"github.com/js-arias/phyview/newick"
)

func TestRead(t *testing.T) {
	in := "((A:1,B:2):3,C:4)root;\n(X,Y);\n"
	ls, err := input.Read(strings.NewReader(in), "", false)
	if err != nil {
		t.Fatalf("unable to read trees: %v", err)
	}
	if len(ls) != 2 {
		t.Fatalf("trees: got %d, want %d", len(ls), 2)
	}
	if got := input.Name(ls[1], 1); got != "tree-2" {
		t.Errorf("name: got %q, want %q", got, "tree-2")
	}

	name := filepath.Join(t.TempDir(), "trees.nwk")
	if err := os.WriteFile(name, []byte(in), 0o644); err != nil {
		t.Fatalf("unable to write %q: %v", name, err)
	}
	ls, err = input.Read(strings.NewReader(""), name, false)
	if err != nil {
		t.Fatalf("unable to read trees: %v", err)
	}
	if got := newick.String(ls[0]); got != "((A:1,B:2):3,C:4)root;" {
		t.Errorf("tree: got %q, want %q", got, "((A:1,B:2):3,C:4)root;")
	}

	if _, err := input.Read(strings.NewReader(""), "", false); err == nil {
		t.Errorf("empty input: expecting error")
	}
	if _, err := input.Read(strings.NewReader("((A,B);"), "-", false); err == nil {
		t.Errorf("invalid tree: expecting error")
	}
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	err := input.Output(&buf, "", func(w io.Writer) error {
		_, err := io.WriteString(w, "text")
		return err
	})
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	if buf.String() != "text" {
		t.Errorf("output: got %q, want %q", buf.String(), "text")
	}

	name := filepath.Join(t.TempDir(), "out.txt")
	err = input.Output(nil, name, func(w io.Writer) error {
		_, err := io.WriteString(w, "file")
		return err
	})
	if err != nil {
		t.Fatalf("unable to write: %v", err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read %q: %v", name, err)
	}
	if string(b) != "file" {
		t.Errorf("file: got %q, want %q", b, "file")
	}

	errWrite := errors.New("write failed")
	if err := input.Output(nil, name, func(io.Writer) error { return errWrite }); err == nil {
		t.Errorf("failed write: expecting error")
	}
}
