package config

import (
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/rules"
	"github.com/pelletier/go-toml/v2"
)

// Config is the effective configuration
type Config struct {
	Templates   Templates            `koanf:"templates" toml:"templates"`
	Walker      Walker               `koanf:"walker" toml:"walker"`
	Replacement Replacement          `koanf:"replacement" toml:"replacement"`
	Reserved    []rules.ReservedName `koanf:"reserved" toml:"reserved"`
	Hooks       Hooks                `koanf:"hooks" toml:"hooks"`
	Defaults    Defaults             `koanf:"defaults" toml:"defaults"`
}

// Templates selects the template tree
type Templates struct {
	// Root is an on-disk template directory; empty selects the bundled tree
	Root string `koanf:"root" toml:"root"`
}

// Walker configures tree enumeration
type Walker struct {
	ExcludeDirs []string `koanf:"exclude_dirs" toml:"exclude_dirs"`
}

// Replacement configures which files are rendered
type Replacement struct {
	SkipPatterns []string `koanf:"skip_patterns" toml:"skip_patterns"`
}

// Hooks binds template ids to post-processing hooks
type Hooks struct {
	Bindings map[string]string `koanf:"bindings" toml:"bindings"`
}

// Defaults are used for any value the user does not provide
type Defaults struct {
	FrontendPort    int    `koanf:"frontend_port" toml:"frontend_port"`
	BackendPort     int    `koanf:"backend_port" toml:"backend_port"`
	Database        string `koanf:"database" toml:"database"`
	ServiceBasePort int    `koanf:"service_base_port" toml:"service_base_port"`
	GatewayPort     int    `koanf:"gateway_port" toml:"gateway_port"`
}

// Rules compiles the file policy described by the configuration
func (c *Config) Rules() (*rules.Rules, error) {
	return rules.New(c.Walker.ExcludeDirs, c.Replacement.SkipPatterns, c.Reserved)
}

// Validate checks values that would otherwise fail late in the pipeline
func (c *Config) Validate() error {
	if _, err := c.Rules(); err != nil {
		return errors.Wrap(err, errors.ErrConfigParse, "invalid file rules")
	}

	ports := map[string]int{
		"defaults.frontend_port":     c.Defaults.FrontendPort,
		"defaults.backend_port":      c.Defaults.BackendPort,
		"defaults.service_base_port": c.Defaults.ServiceBasePort,
		"defaults.gateway_port":      c.Defaults.GatewayPort,
	}
	for key, port := range ports {
		if port < 1 || port > 65535 {
			return errors.Newf(errors.ErrConfigParse, "%s must be between 1 and 65535, got %d", key, port).
				WithDetail("key", key)
		}
	}

	for template, hook := range c.Hooks.Bindings {
		if template == "" || hook == "" {
			return errors.Newf(errors.ErrConfigParse, "hook binding %q -> %q is incomplete", template, hook)
		}
	}
	return nil
}

// Dump renders the configuration as TOML
func (c *Config) Dump() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}
