// Package filesystem provides filesystem implementations for fastgen.
//
// This package contains implementations of the types.FS interface:
// the OS filesystem, an afero-backed filesystem used by tests and a
// read-only view over embedded template trees.
package filesystem
