// Package testutil provides utilities for testing fastgen components.
//
// Trees are built in memory with afero so pipeline tests never touch the
// real filesystem unless they ask for a temp dir explicitly.
package testutil
