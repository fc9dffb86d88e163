package project

import (
	"path"

	"github.com/arthur-debert/fastgen/pkg/config"
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/values"
)

// Config is a fully populated project description
type Config struct {
	ProjectName     string
	Architecture    string
	ProjectType     string
	BackendType     string
	Template        string
	Database        string
	BackendPort     int
	FrontendPort    int
	Services        []string
	ServiceBasePort int
	GatewayPort     int
	Author          string
	Description     string
	InstallDeps     bool
	// Extra variables, usually from a vars file; never override built-ins
	Extra values.Variables
}

// ApplyDefaults fills unset fields from the configured defaults
func (c *Config) ApplyDefaults(d config.Defaults) {
	if c.BackendPort == 0 {
		c.BackendPort = d.BackendPort
	}
	if c.FrontendPort == 0 {
		c.FrontendPort = d.FrontendPort
	}
	if c.ServiceBasePort == 0 {
		c.ServiceBasePort = d.ServiceBasePort
	}
	if c.GatewayPort == 0 {
		c.GatewayPort = d.GatewayPort
	}
	if c.Database == "" && c.BackendType == BackendWithDatabase {
		c.Database = d.Database
	}
}

// Validate checks every field the materializer depends on
func (c *Config) Validate() error {
	if err := ValidateProjectName(c.ProjectName); err != nil {
		return err
	}
	if !hasChoice(ArchitectureChoices, c.Architecture) {
		return invalid("architecture", c.Architecture, Values(ArchitectureChoices))
	}
	if !hasChoice(ProjectTypeChoices(c.Architecture), c.ProjectType) {
		return invalid("project type", c.ProjectType, Values(ProjectTypeChoices(c.Architecture)))
	}
	if !hasChoice(BackendTypeChoices, c.BackendType) {
		return invalid("backend type", c.BackendType, Values(BackendTypeChoices))
	}
	if !validSegment(c.Template) {
		return errors.Newf(errors.ErrInvalidInput, "template %q is not a valid template name", c.Template)
	}
	if c.Database != "" && !validSegment(c.Database) {
		return errors.Newf(errors.ErrInvalidInput, "database %q is not a valid name", c.Database)
	}

	ports := []int{c.BackendPort}
	if c.ProjectType == Fullstack {
		ports = append(ports, c.FrontendPort)
	}
	for _, p := range ports {
		if err := ValidatePort(p); err != nil {
			return err
		}
	}

	if c.Architecture == Microservices {
		if len(c.Services) == 0 {
			return errors.New(errors.ErrInvalidInput, "microservices projects need at least one service")
		}
		seen := make(map[string]struct{}, len(c.Services))
		for _, s := range c.Services {
			if !validSegment(s) {
				return errors.Newf(errors.ErrInvalidInput, "service name %q must be lowercase letters, digits, '.', '_' or '-'", s)
			}
			if _, dup := seen[s]; dup {
				return errors.Newf(errors.ErrInvalidInput, "service %q is listed twice", s)
			}
			seen[s] = struct{}{}
		}
		for _, p := range []int{c.GatewayPort, c.ServiceBasePort, c.ServiceBasePort + len(c.Services) - 1} {
			if err := ValidatePort(p); err != nil {
				return err
			}
		}
	}
	return nil
}

func invalid(field, got string, allowed []string) error {
	return errors.Newf(errors.ErrInvalidInput, "unknown %s %q", field, got).
		WithDetail("allowed", allowed)
}

// TemplatePath is architecture/projectType/template/backendType, plus the
// database for with-database backends.
func (c *Config) TemplatePath() string {
	p := path.Join(c.Architecture, c.ProjectType, c.Template, c.BackendType)
	if c.BackendType == BackendWithDatabase && c.Database != "" {
		p = path.Join(p, c.Database)
	}
	return p
}

// Variables builds the template variables for this project
func (c *Config) Variables() values.Variables {
	vars := values.Variables{
		"PROJECT_NAME":      values.String(c.ProjectName),
		"PACKAGE_NAME":      values.String(SanitizePackageName(c.ProjectName)),
		"ARCHITECTURE":      values.String(c.Architecture),
		"PROJECT_TYPE":      values.String(c.ProjectType),
		"BACKEND_TYPE":      values.String(c.BackendType),
		"TEMPLATE":          values.String(c.Template),
		"FRONTEND_PORT":     values.Int(int64(c.FrontendPort)),
		"BACKEND_PORT":      values.Int(int64(c.BackendPort)),
		"DATABASE":          values.String(c.Database),
		"SERVICES":          values.Strings(c.Services...),
		"SERVICE_BASE_PORT": values.Int(int64(c.ServiceBasePort)),
		"GATEWAY_PORT":      values.Int(int64(c.GatewayPort)),
		"INSTALL_DEPS":      values.Bool(c.InstallDeps),
		"IS_MICROSERVICES":  values.Bool(c.Architecture == Microservices),
		"IS_FULLSTACK":      values.Bool(c.ProjectType == Fullstack),
		"HAS_DATABASE":      values.Bool(c.Database != ""),
	}
	if c.Database == "" {
		vars["DATABASE"] = values.String("postgresql")
	}
	if c.Author != "" {
		vars["AUTHOR"] = values.String(c.Author)
	}
	if c.Description != "" {
		vars["PROJECT_DESCRIPTION"] = values.String(c.Description)
	}
	return vars.Merge(c.Extra)
}
