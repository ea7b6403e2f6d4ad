package lexer

import (
	"cinder/internal/diag"
	"cinder/internal/token"
)

// "..." и '.': escape-последовательности \' \" \\ \n \t \r \0 \xNN не
// валидируются глубоко, только пропускаются целиком.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			return lx.emit(token.StringLit, start)
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
			lx.bumpRune()
			continue
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return lx.emit(token.Invalid, start)
		}
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.emit(token.Invalid, start)
}

func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF(), b == '\n', b == '\'':
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "empty or unterminated char literal")
		return lx.emit(token.Invalid, start)
	case b == '\\':
		lx.cursor.Bump()
		if lx.cursor.Peek() == 'x' {
			lx.cursor.Bump()
			lx.eatDigits(isHex)
		} else {
			lx.bumpRune()
		}
	default:
		lx.bumpRune()
	}
	if !lx.cursor.Eat('\'') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedChar, sp, "unterminated char literal")
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(token.CharLit, start)
}
