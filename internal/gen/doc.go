// Package gen turns a checked AST into source text for one of the
// dialect.Target outputs.
//
// The closure target lowers constructs the C surface has and the target
// lacks: nested functions become closures bound with let or let mut,
// ++/-- become compound assignments, three-part for loops become loop with
// an explicit increment, and switch becomes match. The C-style target
// re-emits the surface syntax and is what the formatter prints.
//
// Emission is a single walk over the file; a jump plan computed up front
// decides which loops and switches need generated labels.
package gen
