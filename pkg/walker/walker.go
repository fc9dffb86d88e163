// Package walker enumerates the files of a generated tree.
package walker

import (
	"path/filepath"

	"github.com/arthur-debert/fastgen/pkg/types"
)

// ListFiles returns every regular file below root, depth-first in directory
// entry order. Directories whose base name is in excluded are pruned at any
// depth. Returned paths are root joined with the relative path, so they are
// absolute when root is.
func ListFiles(fsys types.FS, root string, excluded map[string]struct{}) ([]string, error) {
	var files []string
	if err := walk(fsys, root, excluded, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func walk(fsys types.FS, dir string, excluded map[string]struct{}, files *[]string) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if _, skip := excluded[entry.Name()]; skip {
				continue
			}
			if err := walk(fsys, path, excluded, files); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			continue
		}
		*files = append(*files, path)
	}
	return nil
}
