package filesystem

import (
	"context"
	"io/fs"
	"os"

	"github.com/arthur-debert/fastgen/pkg/synthfs"
	"github.com/arthur-debert/fastgen/pkg/types"
)

// osFS implements types.FS using the OS filesystem. Planned operations run
// through a synthfs pipeline.
type osFS struct {
	executor *synthfs.Executor
}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{executor: synthfs.NewExecutor()}
}

// Apply implements types.Applier
func (o *osFS) Apply(ctx context.Context, ops []types.Operation) error {
	return o.executor.Apply(ctx, ops)
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (o *osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

func (o *osFS) Remove(name string) error {
	return os.Remove(name)
}

func (o *osFS) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
