package parser

import (
	"strings"

	"cinder/internal/diag"
	"cinder/internal/source"
	"cinder/internal/token"
)

// ParseError is the first syntax error of a file.
type ParseError struct {
	Code     diag.Code
	Span     source.Span
	Message  string
	Expected []string
	Found    string
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if len(e.Expected) > 0 {
		sb.WriteString(" (expected ")
		sb.WriteString(strings.Join(e.Expected, ", "))
		if e.Found != "" {
			sb.WriteString("; found ")
			sb.WriteString(e.Found)
		}
		sb.WriteString(")")
	} else if e.Found != "" {
		sb.WriteString(" (found ")
		sb.WriteString(e.Found)
		sb.WriteString(")")
	}
	return sb.String()
}

// fail записывает первую ошибку; последующие игнорируются. Всегда false,
// чтобы писать `return ast.NoExprID, p.fail(...)`.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string, expected ...string) bool {
	if p.err != nil {
		return false
	}
	p.err = &ParseError{
		Code:     code,
		Span:     sp,
		Message:  msg,
		Expected: expected,
		Found:    p.peek().Describe(),
	}
	return false
}

// failHere reports at the current token.
func (p *Parser) failHere(code diag.Code, msg string, expected ...string) bool {
	return p.fail(code, p.diagnosticSpan(), msg, expected...)
}

// diagnosticSpan — для EOF указываем на конец последнего токена.
func (p *Parser) diagnosticSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return p.lastSpan.EndPoint()
	}
	return tok.Span
}

// expect — ожидаем конкретный токен. Если нет — фиксируем ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{Kind: token.Invalid}, p.failHere(code, msg, describeKind(k))
}

func describeKind(k token.Kind) string {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.CharLit, token.EOF:
		return k.String()
	}
	return "'" + k.String() + "'"
}
