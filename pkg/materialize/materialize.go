package materialize

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/hooks"
	"github.com/arthur-debert/fastgen/pkg/logging"
	"github.com/arthur-debert/fastgen/pkg/render"
	"github.com/arthur-debert/fastgen/pkg/rules"
	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/arthur-debert/fastgen/pkg/values"
	"github.com/arthur-debert/fastgen/pkg/walker"
	"github.com/rs/zerolog"
)

// TemplateVar names the variable holding the template id used for hooks
const TemplateVar = "TEMPLATE"

var errNotText = stderrors.New("content is not valid UTF-8 text")

// Options configures a Materializer
type Options struct {
	// Templates holds the template trees, rooted at TemplateRoot
	Templates    types.FS
	TemplateRoot string
	// Dest is where projects are written
	Dest types.FS
	// Rules defaults to rules.Default()
	Rules *rules.Rules
	// Hooks defaults to the built-in bindings
	Hooks *hooks.Dispatcher
}

// Materializer runs the materialization pipeline
type Materializer struct {
	templates    types.FS
	templateRoot string
	dest         types.FS
	rules        *rules.Rules
	hooks        *hooks.Dispatcher
	logger       zerolog.Logger
}

// Request is a single materialization
type Request struct {
	// TemplatePath is relative to the template root, slash separated
	TemplatePath string
	TargetDir    string
	Vars         values.Variables
	// Overwrite removes an existing TargetDir instead of failing
	Overwrite bool
}

// New creates a Materializer
func New(opts Options) (*Materializer, error) {
	if opts.Templates == nil || opts.Dest == nil {
		return nil, errors.New(errors.ErrInvalidInput, "template and destination filesystems are required")
	}
	if opts.TemplateRoot == "" {
		opts.TemplateRoot = "."
	}
	if opts.Rules == nil {
		opts.Rules = rules.Default()
	}
	if opts.Hooks == nil {
		d, err := hooks.NewDispatcher(nil)
		if err != nil {
			return nil, err
		}
		opts.Hooks = d
	}

	return &Materializer{
		templates:    opts.Templates,
		templateRoot: opts.TemplateRoot,
		dest:         opts.Dest,
		rules:        opts.Rules,
		hooks:        opts.Hooks,
		logger:       logging.GetLogger("materialize"),
	}, nil
}

// Materialize produces req.TargetDir from the template at req.TemplatePath.
// On a hook failure the partial Result is returned together with the error.
func (m *Materializer) Materialize(ctx context.Context, req Request) (*Result, error) {
	vars := req.Vars.Clone()
	logger := m.logger.With().
		Str("template", req.TemplatePath).
		Str("target", req.TargetDir).
		Logger()
	done := logging.LogOperationStart(logger, "materialize")
	defer done()

	source, err := m.resolveTemplate(req.TemplatePath)
	if err != nil {
		return nil, err
	}
	if err := m.prepareTarget(req.TargetDir, req.Overwrite); err != nil {
		return nil, err
	}

	result := newResult(req.TargetDir)

	if err := m.copyStage(ctx, logger, source, req.TargetDir, result); err != nil {
		return result, err
	}
	if err := m.substituteStage(ctx, logger, req.TargetDir, vars, result); err != nil {
		return result, err
	}
	m.renameStage(ctx, logger, req.TargetDir, result)

	if err := m.hookStage(ctx, logger, req.TargetDir, vars, result); err != nil {
		return result, err
	}

	logger.Info().
		Int("copied", len(result.Copied)).
		Int("rendered", len(result.Rendered)).
		Int("warnings", len(result.Warnings)).
		Msg("Materialization complete")
	return result, nil
}

// resolveTemplate maps a template path to a directory in the template FS.
// Paths escaping the root are reported as not found.
func (m *Materializer) resolveTemplate(templatePath string) (string, error) {
	notFound := func() error {
		return errors.Newf(errors.ErrTemplateNotFound, "template not found: %s", templatePath).
			WithDetail("template", templatePath)
	}

	clean := path.Clean(strings.ReplaceAll(templatePath, `\`, "/"))
	if templatePath == "" || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", notFound()
	}

	source := filepath.Join(m.templateRoot, filepath.FromSlash(clean))
	info, err := m.templates.Stat(source)
	if err != nil || !info.IsDir() {
		return "", notFound()
	}
	return source, nil
}

func (m *Materializer) prepareTarget(target string, overwrite bool) error {
	if target == "" {
		return errors.New(errors.ErrInvalidInput, "target directory is required")
	}

	_, err := m.dest.Stat(target)
	switch {
	case err == nil && !overwrite:
		return errors.Newf(errors.ErrDestinationConflict, "directory %s already exists", target).
			WithDetail("target", target)
	case err == nil:
		m.logger.Info().Str("target", target).Msg("Removing existing target directory")
		if err := m.dest.RemoveAll(target); err != nil {
			return errors.Wrapf(err, errors.ErrCopyFailed, "remove existing %s", target)
		}
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrCopyFailed, "stat %s", target)
	}
	return nil
}

func (m *Materializer) copyStage(ctx context.Context, logger zerolog.Logger, source, target string, result *Result) error {
	done := logging.LogOperationStart(logger, "copy")
	defer done()

	var p plan
	err := m.planTree(ctx, source, target, &p)
	if err == nil {
		logger.Debug().Int("operations", len(p.ops)).Msg("Copy planned")
		err = m.dest.MkdirAll(filepath.Dir(target), 0755)
	}
	if err == nil {
		err = m.apply(ctx, p.ops)
	}
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrCancelled) {
			return err
		}
		return errors.Wrapf(err, errors.ErrCopyFailed, "copy template to %s", target)
	}
	result.Copied = append(result.Copied, p.files...)
	return nil
}

// plan is the ordered list of operations a stage hands to apply
type plan struct {
	ops   []types.Operation
	files []string
}

// planTree plans the copy of src into dst, parents before children
func (m *Materializer) planTree(ctx context.Context, src, dst string, p *plan) error {
	info, err := m.templates.Stat(src)
	if err != nil {
		return err
	}
	p.ops = append(p.ops, types.Operation{
		Type:        types.OperationCreateDir,
		Target:      dst,
		Mode:        dirMode(info.Mode()),
		Description: "create " + dst,
	})

	entries, err := m.templates.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := m.planTree(ctx, from, to, p); err != nil {
				return err
			}
			continue
		}

		fi, err := entry.Info()
		if err != nil {
			return err
		}
		data, err := m.templates.ReadFile(from)
		if err != nil {
			return err
		}
		p.ops = append(p.ops, types.Operation{
			Type:        types.OperationWriteFile,
			Target:      to,
			Content:     data,
			Mode:        fileMode(fi.Mode()),
			Description: "copy " + from,
		})
		p.files = append(p.files, to)
	}
	return nil
}

// apply runs ops on the destination, through its own executor when it has one
func (m *Materializer) apply(ctx context.Context, ops []types.Operation) error {
	if a, ok := m.dest.(types.Applier); ok {
		return a.Apply(ctx, ops)
	}
	for _, op := range ops {
		if err := checkCancelled(ctx); err != nil {
			return err
		}
		var err error
		switch op.Type {
		case types.OperationCreateDir:
			err = m.dest.MkdirAll(op.Target, op.Mode)
		case types.OperationWriteFile:
			err = m.dest.WriteFile(op.Target, op.Content, op.Mode)
		case types.OperationDeleteFile:
			err = m.dest.Remove(op.Target)
		default:
			err = errors.Newf(errors.ErrInvalidInput, "unsupported operation type: %s", op.Type)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Materializer) substituteStage(ctx context.Context, logger zerolog.Logger, target string, vars values.Variables, result *Result) error {
	done := logging.LogOperationStart(logger, "substitute")
	defer done()

	files, err := walker.ListFiles(m.dest, target, m.rules.ExcludedDirs())
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "list files in %s", target)
	}

	for _, file := range files {
		if err := checkCancelled(ctx); err != nil {
			return err
		}

		rel := relPath(target, file)
		if m.rules.ShouldSkip(rel) {
			logger.Trace().Str("file", rel).Msg("Skipping file")
			continue
		}

		if w := m.substituteFile(file, rel, vars, result); w != nil {
			logger.Debug().Str("file", w.Path).Str("op", w.Op).Err(w.Err).Msg("File left as copied")
			result.Warnings = append(result.Warnings, *w)
		}
	}
	return nil
}

// substituteFile renders one file in place; a problem is returned as a
// warning and the file is left untouched.
func (m *Materializer) substituteFile(file, rel string, vars values.Variables, result *Result) *FileWarning {
	warn := func(op string, err error) *FileWarning {
		return &FileWarning{
			Path: rel,
			Op:   op,
			Err:  errors.Wrapf(err, errors.ErrFileProcessing, "%s failed", op).WithDetail("file", rel),
		}
	}

	data, err := m.dest.ReadFile(file)
	if err != nil {
		return warn("read", err)
	}
	if !utf8.Valid(data) {
		return warn("read", errNotText)
	}

	out, err := render.Parse(string(data)).Execute(vars)
	if err != nil {
		return warn("render", err)
	}
	if len(out.Unresolved) > 0 {
		result.Unresolved[rel] = out.Unresolved
	}
	if out.Text == string(data) {
		return nil
	}

	perm := fs.FileMode(0644)
	if info, err := m.dest.Stat(file); err == nil {
		perm = info.Mode().Perm()
	}
	if err := m.dest.WriteFile(file, []byte(out.Text), perm); err != nil {
		return warn("write", err)
	}
	result.Rendered = append(result.Rendered, rel)
	return nil
}

// renameStage applies the reserved-name table at the top of the target.
// It never fails; problems become warnings.
func (m *Materializer) renameStage(ctx context.Context, logger zerolog.Logger, target string, result *Result) {
	for _, rn := range m.rules.Reserved {
		from := filepath.Join(target, rn.From)
		info, err := m.dest.Stat(from)
		if err != nil || info.IsDir() {
			continue
		}
		to := filepath.Join(target, rn.To)
		if err := m.rename(ctx, from, to, info.Mode().Perm()); err != nil {
			w := FileWarning{
				Path: rn.From,
				Op:   "rename",
				Err:  errors.Wrapf(err, errors.ErrFileProcessing, "rename to %s", rn.To),
			}
			logger.Debug().Str("file", rn.From).Err(err).Msg("Reserved file not renamed")
			result.Warnings = append(result.Warnings, w)
			continue
		}
		logger.Debug().Str("from", rn.From).Str("to", rn.To).Msg("Renamed reserved file")
		result.Renamed = append(result.Renamed, Rename{From: rn.From, To: rn.To})
	}
}

// rename moves one file as a write of its content followed by a delete
func (m *Materializer) rename(ctx context.Context, from, to string, perm fs.FileMode) error {
	data, err := m.dest.ReadFile(from)
	if err != nil {
		return err
	}
	return m.apply(ctx, []types.Operation{
		{Type: types.OperationWriteFile, Target: to, Content: data, Mode: perm, Description: "rename " + from},
		{Type: types.OperationDeleteFile, Target: from, Description: "remove " + from},
	})
}

func (m *Materializer) hookStage(ctx context.Context, logger zerolog.Logger, target string, vars values.Variables, result *Result) error {
	templateID := vars.Get(TemplateVar).String()
	if templateID == "" {
		return nil
	}

	done := logging.LogOperationStart(logger, "post-process")
	defer done()

	paths, err := m.hooks.Run(ctx, templateID, hooks.HookContext{
		FS:        m.dest,
		TargetDir: target,
		Vars:      vars,
		Logger:    logger,
	})
	result.Generated = append(result.Generated, paths...)
	return err
}

func checkCancelled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCancelled, "materialization cancelled")
	}
	return nil
}

func relPath(root, file string) string {
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return filepath.ToSlash(file)
	}
	return filepath.ToSlash(rel)
}

// fileMode keeps the template's permission bits and guarantees the owner
// can rewrite the copy. Embedded templates report read-only modes.
func fileMode(mode fs.FileMode) fs.FileMode {
	return mode.Perm() | 0600
}

func dirMode(mode fs.FileMode) fs.FileMode {
	return mode.Perm() | 0700
}
