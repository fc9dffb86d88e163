// Package values defines the variant type used for template variables.
//
// A Value is exactly one of Absent, Bool, Scalar, Sequence or Mapping and
// each kind has a single truthiness rule:
//
//	Absent   false
//	Bool     its value
//	Scalar   true, including "" and 0
//	Sequence true when non-empty
//	Mapping  true
//
// Variables maps names to values. It is built once by the caller, cloned by
// the pipeline and never mutated afterwards.
package values
