package lexer

import (
	"cinder/internal/diag"
	"cinder/internal/token"
)

// Жадность: сначала 3-символьные, затем 2-символьные, затем 1-символьные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	switch {
	case lx.try3('<', '<', '='):
		return lx.emit(token.ShlAssign, start)
	case lx.try3('>', '>', '='):
		return lx.emit(token.ShrAssign, start)
	}

	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, found := twoCharOps[[2]byte{b0, b1}]; found {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.emit(k, start)
		}
	}

	// односимвольные
	ch := lx.cursor.Bump()
	if k, found := oneCharOps[ch]; found {
		return lx.emit(k, start)
	}
	if ch >= utf8RuneSelf {
		// вернуть курсор и съесть руну целиком
		lx.cursor.Reset(start)
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteBytes(lx.file.Content[sp.Start:sp.End]))
	return lx.emit(token.Invalid, start)
}

var twoCharOps = map[[2]byte]token.Kind{
	{':', ':'}: token.ColonColon,
	{'-', '>'}: token.Arrow,
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
	{'<', '<'}: token.Shl,
	{'>', '>'}: token.Shr,
	{'+', '+'}: token.PlusPlus,
	{'-', '-'}: token.MinusMinus,
	{'+', '='}: token.PlusAssign,
	{'-', '='}: token.MinusAssign,
	{'*', '='}: token.StarAssign,
	{'/', '='}: token.SlashAssign,
	{'%', '='}: token.PercentAssign,
	{'&', '='}: token.AmpAssign,
	{'|', '='}: token.PipeAssign,
	{'^', '='}: token.CaretAssign,
}

var oneCharOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'~': token.Tilde,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'#': token.Hash,
}
