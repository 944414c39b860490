// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/js-arias/phyview/controller"
)

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	SearchTips key.Binding
	Export     key.Binding
	Table      key.Binding
	Focus      key.Binding
	Toggle     key.Binding
	Sort       key.Binding

	// keys processed by the controller
	view []key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SearchTips: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "search terminals"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Table: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "node table"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus table"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select row"),
		),
		Sort: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "sort column"),
		),
	}
	for _, b := range controller.Bindings() {
		// only the first two keys are shown
		// in the help
		keys := b.Keys[:min(len(b.Keys), 2)]
		km.view = append(km.view, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(strings.Join(keys, "/"), b.Help),
		))
	}
	return km
}

func (km keyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Help, km.Search, km.Export, km.Table, km.Quit}
}

func (km keyMap) FullHelp() [][]key.Binding {
	half := (len(km.view) + 1) / 2
	return [][]key.Binding{
		{km.Help, km.Search, km.SearchTips, km.Export, km.Quit},
		{km.Table, km.Focus, km.Toggle, km.Sort},
		km.view[:half],
		km.view[half:],
	}
}
