// Package render implements the placeholder language used by template files.
//
// Supported tags:
//
//	{{NAME}}                    substitution
//	{{#NAME}}...{{/NAME}}       section, rendered when NAME is truthy
//	{{^NAME}}...{{/NAME}}       inverted section, rendered when NAME is falsy
//	{{#each NAME}}...{{/each}}  iteration over a sequence
//	{{.}}                       current element inside an each body
//
// Content is lexed into a flat token stream, parsed with an explicit stack
// into a node tree and evaluated recursively, so blocks of the same name may
// nest. Parsing never fails: tags that cannot be matched stay literal text.
// Names that are not bound are left verbatim and reported as unresolved.
package render
