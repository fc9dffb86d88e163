// Package types defines the interfaces shared between the materialization
// engine and its collaborators.
package types
