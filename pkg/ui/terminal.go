package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
)

type terminalRenderer struct {
	w      io.Writer
	styles Styles
}

func newTerminalRenderer(w io.Writer, styles Styles) *terminalRenderer {
	return &terminalRenderer{w: w, styles: styles}
}

func (r *terminalRenderer) RenderSummary(s Summary) error {
	st := r.styles
	var b strings.Builder

	b.WriteString(st.Get("Success").Render("Project created successfully!"))
	b.WriteString("\n")
	b.WriteString(st.Get("Header").Render("Project structure:"))
	b.WriteString("\n")
	b.WriteString(st.Get("Item").Render(s.structure() + " " + st.Get("Muted").Render("("+s.TemplatePath+")")))
	b.WriteString("\n")
	if counts := s.counts(); counts != "" {
		b.WriteString(st.Get("Item").Render(st.Get("Muted").Render(counts)))
		b.WriteString("\n")
	}

	if s.Result != nil {
		if len(s.Result.Generated) > 0 {
			b.WriteString(st.Get("Header").Render("Generated:"))
			b.WriteString("\n")
			for _, g := range s.Result.Generated {
				b.WriteString(st.Get("Item").Render(st.Get("FilePath").Render(g)))
				b.WriteString("\n")
			}
		}
		if s.Result.HasWarnings() {
			b.WriteString(st.Get("Header").Render("Warnings:"))
			b.WriteString("\n")
			for _, w := range s.Result.Warnings {
				line := fmt.Sprintf("%s %s", st.Get("FilePath").Render(w.Path), st.Get("Warning").Render(w.Op+": "+w.Err.Error()))
				b.WriteString(st.Get("Item").Render(line))
				b.WriteString("\n")
			}
		}
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, renderMarkdown(s.NextStepsMarkdown()))
	return err
}

func (r *terminalRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.w, r.styles.Get("Error").Render("Error: ")+err.Error())
	return werr
}

func (r *terminalRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}

// renderMarkdown renders with glamour and falls back to the raw markdown
func renderMarkdown(md string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
