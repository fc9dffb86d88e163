package fastgen

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/fastgen/internal/version"
	"github.com/arthur-debert/fastgen/pkg/config"
	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/filesystem"
	"github.com/arthur-debert/fastgen/pkg/hooks"
	"github.com/arthur-debert/fastgen/pkg/logging"
	"github.com/arthur-debert/fastgen/pkg/materialize"
	"github.com/arthur-debert/fastgen/pkg/prompt"
	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/arthur-debert/fastgen/pkg/ui"
	"github.com/arthur-debert/fastgen/templates"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// env is what commands need from the process; tests swap it out
type env struct {
	// dest is where projects are written
	dest types.FS
	// interactive reports whether prompting is possible
	interactive func() bool
	asker       prompt.Asker
	getwd       func() (string, error)
}

func defaultEnv() *env {
	return &env{
		dest: filesystem.NewOS(),
		interactive: func() bool {
			return ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout)
		},
		asker: prompt.NewTerminalAsker(),
		getwd: os.Getwd,
	}
}

// globalOptions are the persistent flags
type globalOptions struct {
	verbosity    int
	configFile   string
	templatesDir string
	output       string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultEnv())
}

func newRootCmd(e *env) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "fastgen",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&opts.templatesDir, "templates-dir", "", MsgFlagTemplatesDir)
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "auto", MsgFlagOutput)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newCreateCmd(e, opts))
	rootCmd.AddCommand(newRenderCmd(opts))
	rootCmd.AddCommand(newTemplatesCmd(e, opts))
	rootCmd.AddCommand(newConfigCmd(e, opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// loadConfig applies every config layer plus the flag overrides
func (o *globalOptions) loadConfig(e *env) (*config.Config, error) {
	wd, err := e.getwd()
	if err != nil {
		return nil, err
	}
	overrides := map[string]interface{}{}
	if o.templatesDir != "" {
		overrides["templates.root"] = o.templatesDir
	}
	return config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		WorkDir:    wd,
		Overrides:  overrides,
	})
}

// renderer builds the output renderer selected with --output
func (o *globalOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.output)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// templateSource returns the template tree and the root inside it. A
// configured directory replaces the bundled templates entirely.
func templateSource(cfg *config.Config) (types.FS, string, error) {
	if cfg.Templates.Root == "" {
		return filesystem.NewEmbedded(templates.FS()), ".", nil
	}
	dir, err := filepath.Abs(cfg.Templates.Root)
	if err != nil {
		return nil, "", err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, "", errors.Newf(errors.ErrNotFound, "templates directory %s is not a directory", dir).
			WithDetail("path", dir)
	}
	return filesystem.NewTemplateDir(dir), "/", nil
}

func newMaterializer(cfg *config.Config, dest types.FS) (*materialize.Materializer, error) {
	r, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	dispatcher, err := hooks.NewDispatcher(cfg.Hooks.Bindings)
	if err != nil {
		return nil, err
	}
	src, root, err := templateSource(cfg)
	if err != nil {
		return nil, err
	}
	return materialize.New(materialize.Options{
		Templates:    src,
		TemplateRoot: root,
		Dest:         dest,
		Rules:        r,
		Hooks:        dispatcher,
	})
}
