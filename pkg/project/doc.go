// Package project describes a project to generate: the answers gathered by
// the collector, their validation, the template path they select and the
// variables handed to the materializer.
package project
