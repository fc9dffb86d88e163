package ui

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive color definition
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef describes one named style
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
	MarginTop  int    `yaml:"marginTop,omitempty"`
}

type styleFile struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Styles maps semantic names to lipgloss styles
type Styles map[string]lipgloss.Style

//go:embed styles.yaml
var embeddedStyles []byte

var (
	defaultStyles     Styles
	defaultStylesOnce sync.Once
)

// StyleNames are the names every renderer relies on
var StyleNames = []string{"Header", "Success", "Error", "Warning", "Muted", "FilePath", "Bold", "Item"}

// LoadStyles parses a YAML style sheet
func LoadStyles(data []byte) (Styles, error) {
	var file styleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(file.Colors))
	for name, def := range file.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(Styles, len(file.Styles))
	for name, def := range file.Styles {
		styles[name] = buildStyle(def, colors)
	}
	return styles, nil
}

// DefaultStyles returns the bundled style sheet. A broken sheet falls back
// to unstyled output.
func DefaultStyles() Styles {
	defaultStylesOnce.Do(func() {
		styles, err := LoadStyles(embeddedStyles)
		if err != nil {
			styles = make(Styles)
		}
		defaultStyles = styles
	})
	return defaultStyles
}

func buildStyle(def StyleDef, colors map[string]lipgloss.AdaptiveColor) lipgloss.Style {
	style := lipgloss.NewStyle()
	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Foreground != "" {
		if color, ok := colors[def.Foreground]; ok {
			style = style.Foreground(color)
		}
	}
	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.MarginTop > 0 {
		style = style.MarginTop(def.MarginTop)
	}
	return style
}

// Get returns the named style, or a plain style when it is missing
func (s Styles) Get(name string) lipgloss.Style {
	if style, ok := s[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}
