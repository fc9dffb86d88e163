package project

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/arthur-debert/fastgen/pkg/errors"
)

const maxProjectNameLength = 214

var reservedProjectNames = map[string]struct{}{
	"node_modules": {}, "favicon.ico": {}, "index": {}, "main": {}, "test": {},
	"src": {}, "build": {}, "dist": {}, "lib": {}, "bin": {}, "package": {},
	"npm": {}, "yarn": {}, "pnpm": {},
}

var (
	invalidPackageChars = regexp.MustCompile(`[^a-z0-9\-_.]`)
	edgeSeparators      = regexp.MustCompile(`^[-_.]+|[-_.]+$`)
	repeatedSeparators  = regexp.MustCompile(`[-_.]{2,}`)
	segmentPattern      = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
)

// ValidateProjectName applies npm package naming rules
func ValidateProjectName(name string) error {
	fail := func(msg string) error {
		return errors.New(errors.ErrInvalidInput, msg).WithDetail("name", name)
	}

	switch {
	case name == "":
		return fail("project name cannot be empty")
	case len(name) > maxProjectNameLength:
		return fail("project name cannot be longer than 214 characters")
	case strings.ToLower(name) != name:
		return fail("project name must be lowercase")
	case strings.ContainsAny(name, "~'!()*"):
		return fail("project name cannot contain special characters")
	case strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_"):
		return fail("project name cannot start with . or _")
	case strings.IndexFunc(name, unicode.IsSpace) >= 0:
		return fail("project name cannot contain spaces")
	case strings.ContainsAny(name, `/\`):
		return fail("project name cannot contain path separators")
	}
	if _, reserved := reservedProjectNames[name]; reserved {
		return fail("project name \"" + name + "\" is reserved")
	}
	return nil
}

// ValidatePort accepts unprivileged TCP ports
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return errors.Newf(errors.ErrInvalidInput, "port must be between 1 and 65535, got %d", port)
	}
	if port < 1024 {
		return errors.Newf(errors.ErrInvalidInput, "port should be greater than 1024 to avoid conflicts with system ports, got %d", port)
	}
	return nil
}

// SanitizePackageName turns an arbitrary name into a valid package name
func SanitizePackageName(name string) string {
	s := strings.ToLower(name)
	s = invalidPackageChars.ReplaceAllString(s, "-")
	s = edgeSeparators.ReplaceAllString(s, "")
	return repeatedSeparators.ReplaceAllString(s, "-")
}

// validSegment reports whether s is usable as one template path segment
func validSegment(s string) bool {
	return segmentPattern.MatchString(s)
}
