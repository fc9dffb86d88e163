// Package materialize turns a template tree and a set of variables into a
// project directory.
//
// A run performs, in order: template resolution and destination checks
// (before any write), a byte-for-byte copy of the template, placeholder
// substitution over every eligible file, reserved-name renames at the top
// of the target, and the post-processing hook bound to the TEMPLATE
// variable.
//
// Copy and hook failures are fatal. Per-file substitution problems and
// rename problems are recorded as warnings in the Result and processing
// continues, leaving the affected file as copied.
package materialize
