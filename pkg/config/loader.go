package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/logging"
	"github.com/arthur-debert/fastgen/pkg/rules"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of configuration environment variables
	EnvPrefix = "FASTGEN_"
	// ProjectFile is looked up in the working directory
	ProjectFile = ".fastgen.toml"
)

// LoadOptions controls which layers are read
type LoadOptions struct {
	// ConfigFile is an explicit file; it must exist when set
	ConfigFile string
	// WorkDir is searched for ProjectFile; empty means the process cwd
	WorkDir string
	// SkipUserFile ignores $XDG_CONFIG_HOME/fastgen/config.toml
	SkipUserFile bool
	// Overrides are dotted keys applied last, usually from command flags
	Overrides map[string]interface{}
}

// Load builds the effective configuration from every layer
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}

	// 2-4. Optional user and project files, then the explicit one
	var optional []string
	if !opts.SkipUserFile {
		optional = append(optional, UserConfigPath())
	}
	optional = append(optional, filepath.Join(opts.WorkDir, ProjectFile))

	for _, path := range optional {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", opts.ConfigFile).Msg("Loaded explicit config file")
	}

	// 5. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 6. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				stringToReservedNameHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the embedded defaults with no other layer applied
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse embedded defaults")
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal embedded defaults")
	}
	return &cfg, nil
}

// UserConfigPath returns the per-user configuration file path
func UserConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "fastgen", "config.toml")
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

// stringToReservedNameHookFunc decodes "from=to" strings, which is how the
// reserved table is written in an environment variable. A whole table is a
// comma separated list of such pairs.
func stringToReservedNameHookFunc() mapstructure.DecodeHookFunc {
	reservedType := reflect.TypeOf(rules.ReservedName{})
	tableType := reflect.SliceOf(reservedType)
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		switch t {
		case reservedType:
			return parseReservedName(data.(string))
		case tableType:
			var table []rules.ReservedName
			for _, pair := range strings.Split(data.(string), ",") {
				if strings.TrimSpace(pair) == "" {
					continue
				}
				entry, err := parseReservedName(pair)
				if err != nil {
					return nil, err
				}
				table = append(table, entry)
			}
			return table, nil
		}
		return data, nil
	}
}

func parseReservedName(s string) (rules.ReservedName, error) {
	from, to, ok := strings.Cut(strings.TrimSpace(s), "=")
	if !ok {
		return rules.ReservedName{}, errors.Newf(errors.ErrConfigParse, "reserved name %q must be written as from=to", s)
	}
	return rules.ReservedName{From: strings.TrimSpace(from), To: strings.TrimSpace(to)}, nil
}
