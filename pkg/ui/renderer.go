// Package ui renders command results for terminals, plain text and JSON.
package ui

import (
	"fmt"
	"io"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderSummary renders the outcome of a create run
	RenderSummary(s Summary) error

	// RenderError renders a fatal error
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format. FormatAuto is resolved
// against output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch Resolve(format, output) {
	case FormatTerminal:
		return newTerminalRenderer(output, DefaultStyles()), nil
	case FormatText:
		return &textRenderer{w: output}, nil
	case FormatJSON:
		return &jsonRenderer{w: output}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
