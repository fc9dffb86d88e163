// Package rules holds the file policies applied while materializing a
// template: which directories the walker prunes, which files are never run
// through the placeholder engine, and which reserved names are renamed to
// their dotfile form after copying.
package rules
