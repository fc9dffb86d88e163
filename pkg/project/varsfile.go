package project

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/arthur-debert/fastgen/pkg/values"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadVarsFile reads extra template variables from a .toml, .yaml, .yml or
// .json file. The top level must be a table of names to values.
func LoadVarsFile(fsys types.FS, path string) (values.Variables, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "read vars file %s", path)
	}

	raw := make(map[string]interface{})
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported vars file type %q", ext).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "parse vars file %s", path)
	}

	return values.FromMap(raw), nil
}

// ParseAssignments turns NAME=VALUE pairs into variables. Values containing
// commas become sequences.
func ParseAssignments(pairs []string) (values.Variables, error) {
	vars := make(values.Variables, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "variable %q must be written as NAME=VALUE", pair)
		}
		switch {
		case value == "true" || value == "false":
			vars[name] = values.Bool(value == "true")
		case strings.Contains(value, ","):
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			vars[name] = values.Strings(parts...)
		default:
			vars[name] = values.String(value)
		}
	}
	return vars, nil
}
