// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package config implements the settings of the tree viewer
// read from the environment,
// and the drawing styles read from style files.
package config

import (
	"fmt"
	"io"

	"github.com/js-arias/phyview/cull"
	"github.com/js-arias/phyview/render"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the prefix of the environment variables
// used by the settings.
const Prefix = "PHYVIEW"

// Settings are the settings of the viewer.
type Settings struct {
	// Number of working threads.
	Threads int `envconfig:"THREADS" default:"8" desc:"number of working threads"`

	// Maximum number of labels of each class.
	TipLabelsMax  int `envconfig:"TIP_LABELS_MAX" default:"1000" desc:"maximum number of terminal labels"`
	NodeLabelsMax int `envconfig:"NODE_LABELS_MAX" default:"2000" desc:"maximum number of node labels"`

	// Scale factor of the screen.
	ScaleFactor float64 `envconfig:"SCALE_FACTOR" default:"1" desc:"scale factor of the screen"`

	// If set, debug records are written in this file.
	Log string `envconfig:"LOG" desc:"file for debug records"`

	// If set, the drawing style is read from this file.
	Style string `envconfig:"STYLE" desc:"style file"`
}

// Load reads the settings from the environment.
func Load() (Settings, error) {
	var s Settings
	if err := envconfig.Process(Prefix, &s); err != nil {
		return Settings{}, fmt.Errorf("while reading settings: %v", err)
	}
	s.normalize()
	return s, nil
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		Threads:       render.DefaultThreads,
		TipLabelsMax:  cull.DefaultTipLabels,
		NodeLabelsMax: cull.DefaultNodeLabels,
		ScaleFactor:   1,
	}
}

func (s *Settings) normalize() {
	if s.Threads < 1 {
		s.Threads = render.DefaultThreads
	}
	if s.TipLabelsMax < 0 {
		s.TipLabelsMax = cull.DefaultTipLabels
	}
	if s.NodeLabelsMax < 0 {
		s.NodeLabelsMax = cull.DefaultNodeLabels
	}
	if s.ScaleFactor <= 0 {
		s.ScaleFactor = 1
	}
}

// Caps returns the label limits of the settings.
func (s Settings) Caps() cull.Caps {
	return cull.Caps{
		Tips:  s.TipLabelsMax,
		Nodes: s.NodeLabelsMax,
	}
}

// Usage writes the description of the environment variables.
func Usage(w io.Writer) error {
	return envconfig.Usagef(Prefix, &Settings{}, w, envconfig.DefaultTableFormat)
}
