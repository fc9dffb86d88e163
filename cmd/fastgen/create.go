package fastgen

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/filesystem"
	"github.com/arthur-debert/fastgen/pkg/materialize"
	"github.com/arthur-debert/fastgen/pkg/project"
	"github.com/arthur-debert/fastgen/pkg/prompt"
	"github.com/arthur-debert/fastgen/pkg/ui"
	"github.com/arthur-debert/fastgen/pkg/values"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type createOptions struct {
	cfg project.Config

	dir           string
	varsFile      string
	vars          []string
	overwrite     bool
	noInteractive bool
}

func newCreateCmd(e *env, g *globalOptions) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:     "create [name]",
		Short:   MsgCreateShort,
		Long:    MsgCreateLong,
		Example: MsgCreateExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.cfg.ProjectName = args[0]
			}
			askInstall := !cmd.Flags().Changed("install")
			return runCreate(cmd, e, g, opts, askInstall)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.cfg.Architecture, "architecture", "", "Architecture: monolith or microservices")
	f.StringVar(&opts.cfg.ProjectType, "type", "", "Project type: backend-only or fullstack")
	f.StringVar(&opts.cfg.BackendType, "backend", "", "Backend type: basic, with-auth or with-database")
	f.StringVar(&opts.cfg.Template, "template", "", "Template name, e.g. basic or with-docker")
	f.StringVar(&opts.cfg.Database, "database", "", "Database for with-database backends")
	f.IntVar(&opts.cfg.BackendPort, "backend-port", 0, "Backend port")
	f.IntVar(&opts.cfg.FrontendPort, "frontend-port", 0, "Frontend port for fullstack projects")
	f.StringSliceVar(&opts.cfg.Services, "services", nil, "Service names for microservices projects")
	f.IntVar(&opts.cfg.ServiceBasePort, "service-base-port", 0, "Port of the first service")
	f.IntVar(&opts.cfg.GatewayPort, "gateway-port", 0, "API gateway port")
	f.StringVar(&opts.cfg.Author, "author", "", "Author name")
	f.StringVar(&opts.cfg.Description, "description", "", "Project description")
	f.BoolVar(&opts.cfg.InstallDeps, "install", false, "Mark dependencies as installed by a later step")
	f.StringVar(&opts.dir, "dir", "", "Parent directory of the project (default is the current directory)")
	f.StringVar(&opts.varsFile, "vars-file", "", MsgFlagVarsFile)
	f.StringArrayVar(&opts.vars, "var", nil, MsgFlagVar)
	f.BoolVarP(&opts.overwrite, "overwrite", "y", false, "Replace an existing project directory without asking")
	f.BoolVar(&opts.overwrite, "yes", false, "Alias for --overwrite")
	f.BoolVar(&opts.noInteractive, "no-interactive", false, "Never prompt; fail on missing answers")

	return cmd
}

func runCreate(cmd *cobra.Command, e *env, g *globalOptions, opts *createOptions, askInstall bool) error {
	renderer, err := g.renderer(cmd)
	if err != nil {
		return err
	}
	cfg, err := g.loadConfig(e)
	if err != nil {
		return err
	}

	pc := opts.cfg
	extra, err := extraVars(opts.varsFile, opts.vars)
	if err != nil {
		return err
	}
	pc.Extra = extra

	interactive := !opts.noInteractive && e.interactive()
	collector := prompt.NewCollector(e.asker, cfg.Defaults)
	if interactive {
		collector.AskInstall = askInstall
		if err := collector.Collect(&pc); err != nil {
			return err
		}
	} else if pc.ProjectName == "" {
		return errors.New(errors.ErrInvalidInput, MsgErrNameMissing)
	}

	pc.ApplyDefaults(cfg.Defaults)
	if err := pc.Validate(); err != nil {
		return err
	}

	parent := opts.dir
	if parent == "" {
		if parent, err = e.getwd(); err != nil {
			return err
		}
	}
	target, err := filepath.Abs(filepath.Join(parent, pc.ProjectName))
	if err != nil {
		return err
	}

	m, err := newMaterializer(cfg, e.dest)
	if err != nil {
		return err
	}

	req := materialize.Request{
		TemplatePath: pc.TemplatePath(),
		TargetDir:    target,
		Vars:         pc.Variables(),
		Overwrite:    opts.overwrite,
	}
	log.Info().Str("template", req.TemplatePath).Str("target", target).Msg("Creating project")
	if interactive {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgCreating, pc.ProjectName, req.TemplatePath)
	}

	result, err := m.Materialize(cmd.Context(), req)
	if errors.IsErrorCode(err, errors.ErrDestinationConflict) {
		if !interactive {
			return errors.Wrapf(err, errors.ErrDestinationConflict, MsgErrConflict, target)
		}
		erase, askErr := collector.ConfirmErase(target)
		if askErr != nil {
			return askErr
		}
		if !erase {
			return err
		}
		req.Overwrite = true
		result, err = m.Materialize(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	return renderer.RenderSummary(ui.NewSummary(&pc, result))
}

// extraVars merges the vars file with --var assignments, which win
func extraVars(varsFile string, assignments []string) (values.Variables, error) {
	vars, err := project.ParseAssignments(assignments)
	if err != nil {
		return nil, err
	}
	if varsFile == "" {
		return vars, nil
	}
	fromFile, err := project.LoadVarsFile(filesystem.NewOS(), varsFile)
	if err != nil {
		return nil, err
	}
	return vars.Merge(fromFile), nil
}
