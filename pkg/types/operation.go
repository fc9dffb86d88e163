package types

import (
	"context"
	"io/fs"
)

// OperationType defines the type of file system operation
type OperationType string

const (
	// OperationCreateDir creates a directory
	OperationCreateDir OperationType = "create_dir"

	// OperationWriteFile writes content to a file, replacing any existing file
	OperationWriteFile OperationType = "write_file"

	// OperationDeleteFile deletes a file
	OperationDeleteFile OperationType = "delete_file"
)

// Operation represents a low-level file system operation. A materialization
// stage plans a list of them and hands the list to an Applier.
type Operation struct {
	Type OperationType

	// Target is the path the operation acts on
	Target string

	// Content is written by OperationWriteFile
	Content []byte

	// Mode is the permission of created files and directories
	Mode fs.FileMode

	// Description is a human-readable description
	Description string
}

// Applier is implemented by destinations that execute a plan of operations
// themselves instead of having each one replayed through the FS methods.
type Applier interface {
	Apply(ctx context.Context, ops []Operation) error
}
