package rules

import (
	"path"
	"strings"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// ReservedName maps a file name that is safe to ship inside a template to
// the dotfile name it must have in the generated project.
type ReservedName struct {
	From string `koanf:"from" toml:"from"`
	To   string `koanf:"to" toml:"to"`
}

// Rules is the complete file policy for one materialization
type Rules struct {
	ExcludeDirs  []string
	SkipPatterns []string
	Reserved     []ReservedName

	excluded map[string]struct{}
	patterns []string
}

// DefaultExcludeDirs are pruned by the walker at any depth
var DefaultExcludeDirs = []string{"node_modules", ".git", "dist", "build"}

// DefaultSkipPatterns are files copied byte-for-byte but never rendered
var DefaultSkipPatterns = []string{
	// images
	"**/*.{png,jpg,jpeg,gif,bmp,ico,svg,webp,tiff}",
	// fonts and binaries
	"**/*.{woff,woff2,ttf,eot,otf,exe,dll,so,dylib,bin}",
	// archives
	"**/*.{zip,tar,gz,tgz,rar,7z,bz2,xz}",
	// office documents
	"**/*.{pdf,doc,docx,xls,xlsx,ppt,pptx}",
	// audio and video
	"**/*.{mp3,mp4,wav,ogg,avi,mov,webm,flac}",
	// lockfiles
	"**/package-lock.json",
	"**/yarn.lock",
	"**/pnpm-lock.yaml",
	// version control and dependency caches
	"**/.git/**",
	"**/node_modules/**",
	// OS artifacts
	"**/.DS_Store",
	"**/Thumbs.db",
}

// DefaultReserved is the rename table applied at the top of the target
var DefaultReserved = []ReservedName{
	{From: "_gitignore", To: ".gitignore"},
	{From: "_npmrc", To: ".npmrc"},
	{From: "_env.example", To: ".env.example"},
	{From: "_dockerignore", To: ".dockerignore"},
}

// Default returns the built-in policy
func Default() *Rules {
	r, err := New(DefaultExcludeDirs, DefaultSkipPatterns, DefaultReserved)
	if err != nil {
		panic(err)
	}
	return r
}

// New validates and compiles a policy. Skip patterns are doublestar globs
// matched case-insensitively against slash separated relative paths.
func New(excludeDirs, skipPatterns []string, reserved []ReservedName) (*Rules, error) {
	r := &Rules{
		ExcludeDirs:  append([]string(nil), excludeDirs...),
		SkipPatterns: append([]string(nil), skipPatterns...),
		Reserved:     append([]ReservedName(nil), reserved...),
		excluded:     make(map[string]struct{}, len(excludeDirs)),
	}

	for _, dir := range excludeDirs {
		if dir == "" || strings.ContainsAny(dir, `/\`) {
			return nil, errors.Newf(errors.ErrInvalidInput, "excluded directory must be a plain name: %q", dir)
		}
		r.excluded[dir] = struct{}{}
	}

	for _, p := range skipPatterns {
		lower := strings.ToLower(p)
		if !doublestar.ValidatePattern(lower) {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid skip pattern: %q", p)
		}
		r.patterns = append(r.patterns, lower)
	}

	seen := make(map[string]struct{}, len(reserved))
	for _, rn := range reserved {
		if rn.From == "" || rn.To == "" || path.Base(rn.From) != rn.From || path.Base(rn.To) != rn.To {
			return nil, errors.Newf(errors.ErrInvalidInput, "reserved name must map a file name to a file name: %q -> %q", rn.From, rn.To)
		}
		if _, dup := seen[rn.From]; dup {
			return nil, errors.Newf(errors.ErrInvalidInput, "reserved name %q listed twice", rn.From)
		}
		seen[rn.From] = struct{}{}
	}

	return r, nil
}

// ExcludedDirs returns the pruning set used by the walker
func (r *Rules) ExcludedDirs() map[string]struct{} {
	return r.excluded
}

// IsExcludedDir reports whether a directory with this base name is pruned
func (r *Rules) IsExcludedDir(name string) bool {
	_, ok := r.excluded[name]
	return ok
}

// ShouldSkip reports whether the file at relPath (relative to the target
// root) must not be rendered.
func (r *Rules) ShouldSkip(relPath string) bool {
	p := strings.ToLower(strings.TrimPrefix(path.Clean(strings.ReplaceAll(relPath, `\`, "/")), "./"))
	for _, pattern := range r.patterns {
		if ok, _ := doublestar.Match(pattern, p); ok {
			return true
		}
	}
	return false
}
