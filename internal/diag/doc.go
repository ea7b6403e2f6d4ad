// Package diag defines the diagnostic model shared by every cinder phase.
//
// # Purpose
//
//   - Deterministic data structures for findings of the lexer, parser,
//     capture analyzer and generator.
//   - Light-weight emission helpers (Reporter, ReportBuilder, Bag) so phases
//     never depend on storage or rendering.
//
// # Scope
//
// No formatting, IO or CLI concerns live here. Rendering is internal/diagfmt;
// orchestration is internal/driver.
//
// # Codes
//
// Code is a compact numeric identifier with a stable string form:
//
//   - 1xxx LEX – lexical errors (unterminated string, unknown character).
//   - 2xxx SYN – parse errors; the parser stops at the first one.
//   - 3xxx SEM – semantic errors from the capture analyzer; accumulated.
//   - 4xxx GEN – code generation failures (unsupported AST shapes).
//   - 5xxx IO  – loading and writing files.
//
// Notes add secondary spans ("declared here"); they must not repeat the message.
package diag
