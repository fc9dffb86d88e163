package ui

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/fastgen/pkg/errors"
)

type jsonRenderer struct {
	w io.Writer
}

type jsonWarning struct {
	Path  string `json:"path"`
	Op    string `json:"op"`
	Error string `json:"error"`
}

type jsonRename struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type jsonSummary struct {
	Project    string              `json:"project"`
	Template   string              `json:"template"`
	TargetDir  string              `json:"target_dir,omitempty"`
	Copied     []string            `json:"copied"`
	Rendered   []string            `json:"rendered"`
	Renamed    []jsonRename        `json:"renamed"`
	Generated  []string            `json:"generated"`
	Warnings   []jsonWarning       `json:"warnings"`
	Unresolved map[string][]string `json:"unresolved,omitempty"`
	NextSteps  []string            `json:"next_steps"`
}

func (r *jsonRenderer) encode(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *jsonRenderer) RenderSummary(s Summary) error {
	out := jsonSummary{
		Project:   s.ProjectName,
		Template:  s.TemplatePath,
		Copied:    []string{},
		Rendered:  []string{},
		Renamed:   []jsonRename{},
		Generated: []string{},
		Warnings:  []jsonWarning{},
		NextSteps: s.NextSteps,
	}
	if res := s.Result; res != nil {
		out.TargetDir = res.TargetDir
		out.Copied = append(out.Copied, res.Copied...)
		out.Rendered = append(out.Rendered, res.Rendered...)
		out.Generated = append(out.Generated, res.Generated...)
		for _, rn := range res.Renamed {
			out.Renamed = append(out.Renamed, jsonRename{From: rn.From, To: rn.To})
		}
		for _, w := range res.Warnings {
			out.Warnings = append(out.Warnings, jsonWarning{Path: w.Path, Op: w.Op, Error: w.Err.Error()})
		}
		if len(res.Unresolved) > 0 {
			out.Unresolved = res.Unresolved
		}
	}
	return r.encode(out)
}

func (r *jsonRenderer) RenderError(err error) error {
	return r.encode(map[string]interface{}{
		"error":   err.Error(),
		"code":    errors.GetErrorCode(err),
		"details": errors.GetErrorDetails(err),
	})
}

func (r *jsonRenderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
