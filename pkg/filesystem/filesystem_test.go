package filesystem

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/arthur-debert/fastgen/pkg/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAferoFS_ReadWrite(t *testing.T) {
	fsys := NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fsys.MkdirAll("/proj/src", 0755))
	require.NoError(t, fsys.WriteFile("/proj/src/main.go", []byte("package main"), 0644))

	data, err := fsys.ReadFile("/proj/src/main.go")
	require.NoError(t, err)
	assert.Equal(t, "package main", string(data))

	_, err = fsys.ReadFile("/proj/src")
	assert.ErrorIs(t, err, fs.ErrInvalid, "reading a directory should fail")

	entries, err := fsys.ReadDir("/proj")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "src", entries[0].Name())
	assert.True(t, entries[0].IsDir())

	require.NoError(t, fsys.Rename("/proj/src/main.go", "/proj/src/app.go"))
	_, err = fsys.Stat("/proj/src/main.go")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.RemoveAll("/proj"))
	_, err = fsys.Stat("/proj")
	assert.True(t, os.IsNotExist(err))
}

func TestEmbedded_ReadOnly(t *testing.T) {
	src := fstest.MapFS{
		"monolith/basic/README.md":  {Data: []byte("# {{PROJECT_NAME}}")},
		"monolith/basic/_gitignore": {Data: []byte("node_modules")},
	}
	fsys := NewEmbedded(src)

	info, err := fsys.Stat("monolith/basic")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := fsys.ReadFile("monolith/basic/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# {{PROJECT_NAME}}", string(data))

	entries, err := fsys.ReadDir("monolith/basic")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	assert.Error(t, fsys.WriteFile("monolith/basic/new.txt", []byte("x"), 0644))
}

func TestTemplateDir_StaysInsideRoot(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "monolith", "basic"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "monolith", "basic", "a.txt"), []byte("a"), 0644))

	fsys := NewTemplateDir(dir)

	data, err := fsys.ReadFile("monolith/basic/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	_, err = fsys.Stat("../")
	assert.Error(t, err)
}

func TestOS_ReadDir(t *testing.T) {
	dir := t.TempDir()
	fsys := NewOS()

	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644))
	require.NoError(t, fsys.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	entries, err := fsys.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a.txt", entries[0].Name())
	assert.Equal(t, "b.txt", entries[1].Name())

	require.NoError(t, fsys.Remove(filepath.Join(dir, "a.txt")))
	_, err = fsys.Stat(filepath.Join(dir, "a.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestOS_AppliesPlans(t *testing.T) {
	fsys := NewOS()
	applier, ok := fsys.(types.Applier)
	require.True(t, ok, "the OS filesystem executes plans itself")

	dir := filepath.Join(t.TempDir(), "proj")
	require.NoError(t, applier.Apply(context.Background(), []types.Operation{
		{Type: types.OperationCreateDir, Target: dir, Mode: 0755},
		{Type: types.OperationWriteFile, Target: filepath.Join(dir, "a.txt"), Content: []byte("a"), Mode: 0644},
	}))

	data, err := fsys.ReadFile(filepath.Join(dir, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(data))

	_, ok = NewAferoFS(afero.NewMemMapFs()).(types.Applier)
	assert.False(t, ok)
}
