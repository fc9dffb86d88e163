// Package synthfs executes planned file operations through a synthfs
// pipeline against the real filesystem.
package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/logging"
	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	"github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/rs/zerolog"
)

// Executor runs operations against the OS filesystem
type Executor struct {
	logger     zerolog.Logger
	filesystem synthfs.FileSystem
}

// NewExecutor creates an executor rooted at the filesystem root
func NewExecutor() *Executor {
	return &Executor{
		logger:     logging.GetLogger("synthfs"),
		filesystem: filesystem.NewOSFileSystem("/"),
	}
}

// Apply executes ops in order. Targets may be relative to the working
// directory. An empty plan is a no-op.
func (e *Executor) Apply(ctx context.Context, ops []types.Operation) error {
	if len(ops) == 0 {
		return nil
	}

	// synthfs refuses to create over an existing file, so clear replaced
	// targets first
	for _, op := range ops {
		if op.Type != types.OperationWriteFile {
			continue
		}
		if info, err := os.Lstat(op.Target); err == nil && !info.IsDir() {
			e.logger.Debug().Str("target", op.Target).Msg("Removing existing file before write")
			if err := os.Remove(op.Target); err != nil {
				return errors.Wrapf(err, errors.ErrCopyFailed, "remove existing %s", op.Target)
			}
		}
	}

	pipeline := synthfs.NewMemPipeline()
	for i, op := range ops {
		synthOp, err := e.convert(i, op)
		if err != nil {
			return err
		}
		if err := pipeline.Add(synthOp); err != nil {
			return errors.Wrapf(err, errors.ErrCopyFailed, "failed to add operation for %s", op.Target)
		}
	}

	e.logger.Debug().Int("operationCount", len(ops)).Msg("Executing operations")

	result := synthfs.NewExecutor().Run(ctx, pipeline, e.filesystem)
	if err := result.GetError(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return errors.Wrap(ctxErr, errors.ErrCancelled, "materialization cancelled")
		}
		return errors.Wrap(err, errors.ErrCopyFailed, "failed to execute operations")
	}
	return nil
}

// convert maps one operation onto its synthfs equivalent. synthfs paths
// are relative to its root.
func (e *Executor) convert(seq int, op types.Operation) (synthfs.Operation, error) {
	if op.Target == "" {
		return nil, errors.Newf(errors.ErrInvalidInput, "%s operation requires a target", op.Type)
	}
	abs, err := filepath.Abs(op.Target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve path: %s", op.Target)
	}
	relPath, err := filepath.Rel("/", abs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", op.Target)
	}
	opID := core.OperationID(fmt.Sprintf("%d-%s-%s", seq, op.Type, relPath))

	switch op.Type {
	case types.OperationCreateDir:
		mode := op.Mode
		if mode == 0 {
			mode = 0755
		}
		createOp := operations.NewCreateDirectoryOperation(opID, relPath)
		createOp.SetItem(&directoryItem{path: relPath, mode: mode})
		return synthfs.NewOperationsPackageAdapter(createOp), nil

	case types.OperationWriteFile:
		mode := op.Mode
		if mode == 0 {
			mode = 0644
		}
		createOp := operations.NewCreateFileOperation(opID, relPath)
		createOp.SetItem(&fileItem{path: relPath, content: op.Content, mode: mode})
		return synthfs.NewOperationsPackageAdapter(createOp), nil

	case types.OperationDeleteFile:
		deleteOp := operations.NewDeleteOperation(opID, relPath)
		return synthfs.NewOperationsPackageAdapter(deleteOp), nil
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "unsupported operation type: %s", op.Type)
}

// fileItem describes a file for create operations
type fileItem struct {
	path    string
	content []byte
	mode    fs.FileMode
}

func (f *fileItem) Path() string       { return f.path }
func (f *fileItem) Type() string       { return "file" }
func (f *fileItem) Content() []byte    { return f.content }
func (f *fileItem) Mode() fs.FileMode  { return f.mode }
func (f *fileItem) IsDir() bool        { return false }
func (f *fileItem) ModTime() time.Time { return time.Now() }
func (f *fileItem) Size() int64        { return int64(len(f.content)) }

// directoryItem describes a directory for create operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
