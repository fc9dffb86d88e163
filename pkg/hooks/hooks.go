package hooks

import (
	"context"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/registry"
	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/arthur-debert/fastgen/pkg/values"
	"github.com/rs/zerolog"
)

// Built-in hook names
const (
	ComposeHook   = "compose"
	WorkspaceHook = "workspace"
)

// HookContext is everything a hook may read or write
type HookContext struct {
	FS        types.FS
	TargetDir string
	Vars      values.Variables
	Logger    zerolog.Logger
}

// Hook generates artifacts inside the target directory and returns the
// paths it wrote.
type Hook func(ctx context.Context, hc HookContext) ([]string, error)

// DefaultBindings maps template ids to hook names
var DefaultBindings = map[string]string{
	"with-docker":    ComposeHook,
	"react-monorepo": WorkspaceHook,
	"vue-monorepo":   WorkspaceHook,
}

// Dispatcher resolves a template id to its hook and runs it
type Dispatcher struct {
	hooks    registry.Registry[Hook]
	bindings map[string]string
}

// NewDispatcher creates a dispatcher with the built-in hooks registered.
// A nil bindings map selects DefaultBindings.
func NewDispatcher(bindings map[string]string) (*Dispatcher, error) {
	if bindings == nil {
		bindings = DefaultBindings
	}

	d := &Dispatcher{
		hooks:    registry.New[Hook](),
		bindings: make(map[string]string, len(bindings)),
	}
	registry.MustRegister(d.hooks, ComposeHook, Hook(Compose))
	registry.MustRegister(d.hooks, WorkspaceHook, Hook(Workspace))

	for template, name := range bindings {
		d.bindings[template] = name
	}
	return d, d.checkBindings()
}

// Register adds a custom hook
func (d *Dispatcher) Register(name string, hook Hook) error {
	return d.hooks.Register(name, hook)
}

// Bind binds a template id to a registered hook
func (d *Dispatcher) Bind(templateID, hookName string) error {
	if !d.hooks.Has(hookName) {
		return errors.Newf(errors.ErrNotFound, "unknown hook %q", hookName).
			WithDetail("template", templateID)
	}
	d.bindings[templateID] = hookName
	return nil
}

// Hooks lists the registered hook names
func (d *Dispatcher) Hooks() []string {
	return d.hooks.List()
}

// Lookup returns the hook bound to templateID
func (d *Dispatcher) Lookup(templateID string) (string, Hook, bool) {
	name, ok := d.bindings[templateID]
	if !ok {
		return "", nil, false
	}
	hook, err := d.hooks.Get(name)
	if err != nil {
		return "", nil, false
	}
	return name, hook, true
}

// Run executes the hook bound to templateID. An unbound id is a no-op.
// Any hook error is returned as HOOK_FAILED.
func (d *Dispatcher) Run(ctx context.Context, templateID string, hc HookContext) ([]string, error) {
	name, hook, ok := d.Lookup(templateID)
	if !ok {
		hc.Logger.Debug().Str("template", templateID).Msg("No post-processing hook bound")
		return nil, nil
	}

	hc.Logger.Debug().Str("template", templateID).Str("hook", name).Msg("Running post-processing hook")
	paths, err := hook(ctx, hc)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrHookFailed) {
			return paths, err
		}
		return paths, errors.Wrapf(err, errors.ErrHookFailed, "hook %s failed", name).
			WithDetail("hook", name).
			WithDetail("template", templateID)
	}
	return paths, nil
}

func (d *Dispatcher) checkBindings() error {
	for template, name := range d.bindings {
		if !d.hooks.Has(name) {
			return errors.Newf(errors.ErrConfigParse, "template %q is bound to unknown hook %q", template, name)
		}
	}
	return nil
}

// hookError builds a HOOK_FAILED error for input problems
func hookError(hook, format string, args ...interface{}) *errors.FastgenError {
	return errors.Newf(errors.ErrHookFailed, format, args...).WithDetail("hook", hook)
}
