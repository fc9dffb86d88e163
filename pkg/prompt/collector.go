package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/fastgen/pkg/config"
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/logging"
	"github.com/arthur-debert/fastgen/pkg/project"
	"github.com/rs/zerolog"
)

const (
	maxAttempts        = 3
	defaultProjectName = "my-fastify-app"
	defaultServices    = "user,order"
)

// Collector fills in the answers a project is still missing
type Collector struct {
	asker    Asker
	defaults config.Defaults
	logger   zerolog.Logger
	// AskInstall asks whether dependencies should be installed
	AskInstall bool
}

// NewCollector creates a collector
func NewCollector(asker Asker, defaults config.Defaults) *Collector {
	return &Collector{
		asker:      asker,
		defaults:   defaults,
		logger:     logging.GetLogger("prompt"),
		AskInstall: true,
	}
}

// Collect asks for every empty field of cfg, in the order a user expects:
// name, architecture, project type, backend, template, then the questions
// that depend on those answers.
func (c *Collector) Collect(cfg *project.Config) error {
	if cfg.ProjectName == "" {
		name, err := c.askValid("Project name:", defaultProjectName, func(s string) error {
			return project.ValidateProjectName(s)
		})
		if err != nil {
			return err
		}
		cfg.ProjectName = name
	}

	var err error
	if cfg.Architecture == "" {
		if cfg.Architecture, err = c.choose("Choose your architecture:", project.ArchitectureChoices); err != nil {
			return err
		}
	}
	if cfg.ProjectType == "" {
		label := fmt.Sprintf("Choose your %s setup:", cfg.Architecture)
		if cfg.ProjectType, err = c.choose(label, project.ProjectTypeChoices(cfg.Architecture)); err != nil {
			return err
		}
	}
	if cfg.BackendType == "" {
		if cfg.BackendType, err = c.choose("Choose your backend type:", project.BackendTypeChoices); err != nil {
			return err
		}
	}
	if cfg.Template == "" {
		choices := project.TemplateChoices(cfg.Architecture, cfg.ProjectType)
		if cfg.Template, err = c.choose("Choose your template:", choices); err != nil {
			return err
		}
	}

	if cfg.BackendPort == 0 {
		if cfg.BackendPort, err = c.askPort("Backend port:", c.defaults.BackendPort); err != nil {
			return err
		}
	}
	if cfg.FrontendPort == 0 && cfg.ProjectType == project.Fullstack {
		if cfg.FrontendPort, err = c.askPort("Frontend port:", c.defaults.FrontendPort); err != nil {
			return err
		}
	}
	if cfg.Database == "" && cfg.BackendType == project.BackendWithDatabase {
		if cfg.Database, err = c.choose("Choose your database:", project.DatabaseChoices); err != nil {
			return err
		}
	}
	if len(cfg.Services) == 0 && cfg.Architecture == project.Microservices {
		answer, err := c.askValid("Services (comma separated):", defaultServices, func(s string) error {
			if len(splitList(s)) == 0 {
				return errors.New(errors.ErrInvalidInput, "at least one service is required")
			}
			return nil
		})
		if err != nil {
			return err
		}
		cfg.Services = splitList(answer)
	}

	if c.AskInstall {
		if cfg.InstallDeps, err = c.asker.Confirm("Install dependencies?", true); err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "prompt aborted")
		}
	}

	c.logger.Debug().Str("template", cfg.TemplatePath()).Msg("Collected project answers")
	return nil
}

// ConfirmErase asks whether an existing directory may be removed
func (c *Collector) ConfirmErase(path string) (bool, error) {
	ok, err := c.asker.Confirm(fmt.Sprintf("Directory %s already exists. Do you want to erase it?", path), false)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCancelled, "prompt aborted")
	}
	return ok, nil
}

func (c *Collector) choose(label string, choices []project.Choice) (string, error) {
	if len(choices) == 0 {
		return "", errors.Newf(errors.ErrInvalidInput, "no choices available for %q", label)
	}
	options := make([]string, len(choices))
	for i, ch := range choices {
		options[i] = optionLabel(ch)
	}
	answer, err := c.asker.Select(label, options, options[0])
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCancelled, "prompt aborted")
	}
	for i, opt := range options {
		if opt == answer {
			return choices[i].Value, nil
		}
	}
	return "", errors.Newf(errors.ErrInvalidInput, "unexpected answer %q", answer)
}

func (c *Collector) askValid(label, def string, validate func(string) error) (string, error) {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		answer, err := c.asker.Text(label, def)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCancelled, "prompt aborted")
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			answer = def
		}
		if lastErr = validate(answer); lastErr == nil {
			return answer, nil
		}
		c.logger.Warn().Err(lastErr).Str("answer", answer).Msg("Invalid answer")
	}
	return "", lastErr
}

func (c *Collector) askPort(label string, def int) (int, error) {
	var port int
	_, err := c.askValid(label, strconv.Itoa(def), func(s string) error {
		p, err := strconv.Atoi(s)
		if err != nil {
			return errors.Newf(errors.ErrInvalidInput, "port must be a number, got %q", s)
		}
		if err := project.ValidatePort(p); err != nil {
			return err
		}
		port = p
		return nil
	})
	return port, err
}

func optionLabel(ch project.Choice) string {
	if ch.Description == "" {
		return ch.Title
	}
	return fmt.Sprintf("%s (%s)", ch.Title, ch.Description)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
