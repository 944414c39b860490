// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyView is a terminal viewer of phylogenetic trees.
//
// Usage:
//
//	phyview [<tree-file>]
//
// The tree file is either a Newick file,
// or a tab-delimited file of time-calibrated trees
// (with extension ".tab" or ".tsv").
// The file is read again when it changes.
//
// The viewer is configured with environment variables,
// run "phyview -h" to see them.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/js-arias/phyview/config"
	"github.com/js-arias/phyview/render"
	phyview "github.com/js-arias/phyview/tui"
)

// TerminalScale is the scale factor of a terminal,
// in which each braille dot is a pixel.
const TerminalScale = 1.0 / 3

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "phyview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("too many arguments: expecting a single tree file")
	}
	var name string
	if len(args) == 1 {
		switch args[0] {
		case "-h", "--help", "help":
			fmt.Fprintf(os.Stdout, "usage: phyview [<tree-file>]\n\n")
			return config.Usage(os.Stdout)
		}
		name = args[0]
	}

	s, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(s.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	style := config.DefaultStyle()
	if s.Style != "" {
		style, err = config.ReadStyle(s.Style)
		if err != nil {
			return err
		}
	}
	opts, err := style.Options(s.ScaleFactor * TerminalScale)
	if err != nil {
		return err
	}
	opts.Renderer = render.New(render.NewPool(s.Threads), s.Caps())
	opts.Logger = logger

	m := phyview.New(name, phyview.Options{
		Controller: opts,
		Watch:      true,
		Logger:     logger,
	})
	defer m.Close()

	logger.Info("start", "file", name, "threads", s.Threads)
	p := tui.NewProgram(m, tui.WithAltScreen(), tui.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	// subtrees copied from the context menu
	for _, nw := range m.Subtrees() {
		fmt.Fprintln(os.Stdout, nw)
	}
	return nil
}

// newLogger returns a logger that writes JSON records
// into a file.
// If no file is given,
// records are discarded.
func newLogger(name string) (*slog.Logger, func(), error) {
	if name == "" {
		// equivalent to slog.DiscardHandler (Go 1.24+), unavailable in the go 1.21 toolchain
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)})), func() {}, nil
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("while opening log file: %v", err)
	}
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), func() { f.Close() }, nil
}
