package ui

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/fastgen/pkg/materialize"
	"github.com/arthur-debert/fastgen/pkg/project"
)

// Summary is everything shown after a project has been created
type Summary struct {
	ProjectName  string
	Architecture string
	TemplatePath string
	Result       *materialize.Result
	NextSteps    []string
}

// NewSummary builds the summary for a created project
func NewSummary(cfg *project.Config, result *materialize.Result) Summary {
	return Summary{
		ProjectName:  cfg.ProjectName,
		Architecture: cfg.Architecture,
		TemplatePath: cfg.TemplatePath(),
		Result:       result,
		NextSteps:    NextSteps(cfg),
	}
}

// NextSteps lists the shell commands to start working on the project
func NextSteps(cfg *project.Config) []string {
	steps := []string{"cd " + cfg.ProjectName}
	if !cfg.InstallDeps {
		steps = append(steps, "npm install")
	}
	if cfg.Template == "with-docker" {
		steps = append(steps, "docker compose up --build")
	} else {
		steps = append(steps, "npm run dev")
	}
	return steps
}

// NextStepsMarkdown renders the steps as a markdown section
func (s Summary) NextStepsMarkdown() string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n```sh\n")
	for _, step := range s.NextSteps {
		b.WriteString(step)
		b.WriteByte('\n')
	}
	b.WriteString("```\n")
	return b.String()
}

func (s Summary) structure() string {
	if s.Architecture == project.Microservices {
		return "Microservices architecture"
	}
	return "Single application"
}

func (s Summary) counts() string {
	if s.Result == nil {
		return ""
	}
	return fmt.Sprintf("%d files copied, %d rendered", len(s.Result.Copied), len(s.Result.Rendered))
}
