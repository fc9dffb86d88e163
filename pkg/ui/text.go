package ui

import (
	"fmt"
	"io"
)

type textRenderer struct {
	w io.Writer
}

func (r *textRenderer) RenderSummary(s Summary) error {
	fmt.Fprintf(r.w, "Project %s created from %s\n", s.ProjectName, s.TemplatePath)
	fmt.Fprintf(r.w, "Structure: %s\n", s.structure())
	if counts := s.counts(); counts != "" {
		fmt.Fprintln(r.w, counts)
	}

	if s.Result != nil {
		for _, g := range s.Result.Generated {
			fmt.Fprintf(r.w, "generated %s\n", g)
		}
		for _, w := range s.Result.Warnings {
			fmt.Fprintf(r.w, "warning: %s\n", w.Error())
		}
		for _, f := range s.Result.UnresolvedFiles() {
			fmt.Fprintf(r.w, "unresolved in %s: %v\n", f, s.Result.Unresolved[f])
		}
	}

	fmt.Fprintln(r.w, "Next steps:")
	for _, step := range s.NextSteps {
		fmt.Fprintf(r.w, "  %s\n", step)
	}
	return nil
}

func (r *textRenderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.w, "Error: %v\n", err)
	return werr
}

func (r *textRenderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.w, msg)
	return err
}
