// Package templates bundles the project templates shipped with fastgen.
package templates

import (
	"embed"
	"io/fs"
)

//go:embed all:monolith all:microservices
var bundled embed.FS

// FS returns the bundled template tree, rooted at the architecture level
func FS() fs.FS {
	return bundled
}
