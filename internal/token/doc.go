// Package token defines lexical token kinds and trivia for the cinder front end.
// Invariants:
//   - Token.Text is the exact source slice for Token.Span.
//   - Primitive type names (int, float, void, i32, ...) are identifiers;
//     the parser classifies them, the lexer does not.
//   - Comments and whitespace never appear in the token stream; they are
//     attached to the following token as Leading trivia.
//   - '#' is a standalone token; "#define" is Hash followed by Ident("define").
package token
