package fastgen

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Create Fastify projects from templates"
	MsgCreateShort     = "Create a new project"
	MsgRenderShort     = "Render one file with template variables"
	MsgTemplatesShort  = "List available templates"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man page"

	MsgCreating       = "Creating %s from %s\n"
	MsgUnresolved     = "unresolved placeholders: %s\n"
	MsgNoTemplates    = "No templates found."
	MsgVersionFormat  = "fastgen version %s\n  commit: %s\n  built:  %s\n"
	MsgErrNameMissing = "a project name is required when not running interactively"
	MsgErrConflict    = "directory %s already exists (use --overwrite to replace it)"

	MsgFlagVerbose      = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig       = "Config file to load after the user and project files"
	MsgFlagTemplatesDir = "Read templates from this directory instead of the bundled ones"
	MsgFlagOutput       = "Output format: auto, term, text or json"
	MsgFlagVarsFile     = "File with extra template variables (.toml, .yaml or .json)"
	MsgFlagVar          = "Extra template variable as NAME=VALUE, repeatable"
	MsgFlagDefaults     = "Print the built-in defaults, ignoring config files and environment"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/create-long.txt
	msgCreateLongRaw string
	MsgCreateLong    = strings.TrimSpace(msgCreateLongRaw)

	//go:embed msgs/create-example.txt
	msgCreateExampleRaw string
	MsgCreateExample    = strings.TrimRight(msgCreateExampleRaw, "\n")

	//go:embed msgs/render-long.txt
	msgRenderLongRaw string
	MsgRenderLong    = strings.TrimSpace(msgRenderLongRaw)

	//go:embed msgs/templates-long.txt
	msgTemplatesLongRaw string
	MsgTemplatesLong    = strings.TrimSpace(msgTemplatesLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
