// Package prompt collects missing project answers interactively.
package prompt

import (
	"github.com/pterm/pterm"
)

// Asker is the interactive surface the collector needs
type Asker interface {
	Select(label string, options []string, def string) (string, error)
	Text(label, def string) (string, error)
	Confirm(label string, def bool) (bool, error)
}

// TerminalAsker asks on the terminal with pterm widgets
type TerminalAsker struct{}

// NewTerminalAsker creates a TerminalAsker
func NewTerminalAsker() *TerminalAsker {
	return &TerminalAsker{}
}

// Select shows an arrow-key menu of options, preselecting def when set
func (TerminalAsker) Select(label string, options []string, def string) (string, error) {
	sel := pterm.DefaultInteractiveSelect.WithOptions(options)
	if def != "" {
		sel = sel.WithDefaultOption(def)
	}
	return sel.Show(label)
}

// Text reads a line of input; def is returned for an empty answer
func (TerminalAsker) Text(label, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultValue(def).Show(label)
}

// Confirm asks a yes/no question
func (TerminalAsker) Confirm(label string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(label)
}
