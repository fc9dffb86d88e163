package walker

import (
	"path/filepath"
	"sort"

	"github.com/arthur-debert/fastgen/pkg/types"
)

// ListTemplates finds the template directories below root: the first
// directory on each path that directly holds a regular file. Results are
// slash separated, relative to root and sorted.
func ListTemplates(fsys types.FS, root string, excluded map[string]struct{}) ([]string, error) {
	var found []string
	if err := findTemplates(fsys, root, "", excluded, &found); err != nil {
		return nil, err
	}
	sort.Strings(found)
	return found, nil
}

func findTemplates(fsys types.FS, root, rel string, excluded map[string]struct{}, found *[]string) error {
	entries, err := fsys.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	var subdirs []string
	for _, entry := range entries {
		if entry.Type().IsRegular() && rel != "" {
			*found = append(*found, rel)
			return nil
		}
		if entry.IsDir() {
			if _, skip := excluded[entry.Name()]; !skip {
				subdirs = append(subdirs, entry.Name())
			}
		}
	}

	for _, name := range subdirs {
		child := name
		if rel != "" {
			child = rel + "/" + name
		}
		if err := findTemplates(fsys, root, child, excluded, found); err != nil {
			return err
		}
	}
	return nil
}
