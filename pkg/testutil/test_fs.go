package testutil

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/fastgen/pkg/filesystem"
	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// NewTestFS creates a new in-memory filesystem for testing.
func NewTestFS() types.FS {
	return filesystem.NewAferoFS(afero.NewMemMapFs())
}

// WriteTree creates every file in files under root. Keys are slash
// separated paths relative to root; parent directories are created.
func WriteTree(t testing.TB, fsys types.FS, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, fsys.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, fsys.WriteFile(path, []byte(content), 0644))
	}
}

// ReadTree returns every file under root keyed by its slash separated
// path relative to root.
func ReadTree(t testing.TB, fsys types.FS, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	var walk func(dir string)
	walk = func(dir string) {
		entries, err := fsys.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			if e.IsDir() {
				walk(path)
				continue
			}
			data, err := fsys.ReadFile(path)
			require.NoError(t, err)
			rel, err := filepath.Rel(root, path)
			require.NoError(t, err)
			out[filepath.ToSlash(rel)] = string(data)
		}
	}
	walk(root)
	return out
}

// SortedKeys returns the keys of a tree in lexical order.
func SortedKeys(tree map[string]string) []string {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RecordingFS wraps a types.FS and records every mutating call so tests
// can assert that nothing was written.
type RecordingFS struct {
	types.FS
	Writes []string
}

// NewRecordingFS wraps fsys.
func NewRecordingFS(fsys types.FS) *RecordingFS {
	return &RecordingFS{FS: fsys}
}

func (r *RecordingFS) record(op string, paths ...string) {
	r.Writes = append(r.Writes, op+" "+strings.Join(paths, " "))
}

func (r *RecordingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	r.record("write", name)
	return r.FS.WriteFile(name, data, perm)
}

func (r *RecordingFS) MkdirAll(path string, perm fs.FileMode) error {
	r.record("mkdir", path)
	return r.FS.MkdirAll(path, perm)
}

func (r *RecordingFS) Rename(oldpath, newpath string) error {
	r.record("rename", oldpath, newpath)
	return r.FS.Rename(oldpath, newpath)
}

func (r *RecordingFS) Remove(name string) error {
	r.record("remove", name)
	return r.FS.Remove(name)
}

func (r *RecordingFS) RemoveAll(path string) error {
	r.record("removeall", path)
	return r.FS.RemoveAll(path)
}
