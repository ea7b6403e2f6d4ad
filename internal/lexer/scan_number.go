package lexer

import (
	"cinder/internal/diag"
	"cinder/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10, .5
// Суффиксы (u, l, f) остаются в Token.Text, Kind ставим как IntLit/FloatLit по факту.
// Неверные формы — репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// ведущая точка — значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		return lx.finishNumber(start, kind, true)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		var digit func(byte) bool
		switch lx.cursor.Peek() {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Bump()
			if !digit(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.errLex(diag.LexBadNumber, sp, "expected digits after base prefix")
				return lx.emit(token.Invalid, start)
			}
			lx.eatDigits(digit)
			return lx.finishNumber(start, kind, false)
		}
	}

	lx.eatDigits(isDec)

	// дробная часть: "1." допустимо, "1.foo" — нет (это доступ к полю)
	if lx.cursor.Peek() == '.' {
		_, next, ok := lx.cursor.Peek2()
		if !ok || (!isIdentStartByte(next) && next != '.') {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDigits(isDec)
		}
	}
	return lx.finishNumber(start, kind, true)
}

func (lx *Lexer) eatDigits(digit func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !digit(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

// finishNumber съедает экспоненту (для десятичных) и буквенные суффиксы.
func (lx *Lexer) finishNumber(start Mark, kind token.Kind, allowExp bool) token.Token {
	if allowExp && (lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E') {
		kind = token.FloatLit
		lx.cursor.Bump()
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return lx.emit(token.Invalid, start)
		}
		lx.eatDigits(isDec)
	}
	for isNumberSuffix(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadNumber, sp, "invalid suffix on number literal")
		return lx.emit(token.Invalid, start)
	}
	return lx.emit(kind, start)
}

func isNumberSuffix(b byte) bool {
	switch b {
	case 'u', 'U', 'l', 'L', 'f', 'F':
		return true
	}
	return false
}
