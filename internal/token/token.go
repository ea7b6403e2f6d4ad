package token

import (
	"cinder/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a numeric, string, char or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwLet && t.Kind <= KwFn
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// HasNewlineBefore reports whether a line break separates this token from the previous one.
func (t Token) HasNewlineBefore() bool {
	for _, tr := range t.Leading {
		if tr.Kind == TriviaNewline {
			return true
		}
		if tr.Kind == TriviaBlockComment && containsNewline(tr.Text) {
			return true
		}
	}
	return false
}

// Describe renders the token for "found ..." parts of diagnostics.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier '" + t.Text + "'"
	case IntLit, FloatLit, StringLit, CharLit:
		return t.Kind.String() + " " + t.Text
	default:
		return "'" + t.Text + "'"
	}
}

func containsNewline(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return true
		}
	}
	return false
}
