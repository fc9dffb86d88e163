package materialize

import (
	"fmt"
	"sort"
)

// FileWarning is a non-fatal problem with a single file
type FileWarning struct {
	// Path is relative to the target directory
	Path string
	// Op is the step that failed: read, render, write or rename
	Op  string
	Err error
}

func (w FileWarning) Error() string {
	return fmt.Sprintf("%s %s: %v", w.Op, w.Path, w.Err)
}

func (w FileWarning) Unwrap() error { return w.Err }

// Rename records a reserved-name rename, relative to the target
type Rename struct {
	From string
	To   string
}

// Result describes what a materialization did
type Result struct {
	TargetDir string
	// Copied lists every file written by the copy step
	Copied []string
	// Rendered lists files whose content changed during substitution
	Rendered []string
	Renamed  []Rename
	// Generated lists artifacts written by the post-processing hook
	Generated []string
	Warnings  []FileWarning
	// Unresolved maps relative file paths to placeholder names left verbatim
	Unresolved map[string][]string
}

func newResult(target string) *Result {
	return &Result{
		TargetDir:  target,
		Unresolved: make(map[string][]string),
	}
}

// HasWarnings reports whether any file produced a warning
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// UnresolvedFiles returns the files with unresolved placeholders, sorted
func (r *Result) UnresolvedFiles() []string {
	files := make([]string, 0, len(r.Unresolved))
	for f := range r.Unresolved {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}
