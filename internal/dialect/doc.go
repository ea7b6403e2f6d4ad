// Package dialect holds the per-target tables used by the code generator:
// primitive spellings, label sigils, visibility keywords, reserved words and
// operator precedence.
//
// A Target never changes how a file is parsed or checked; it only selects
// leaf tokens and parenthesization during emission.
package dialect
