package parser

import (
	"cinder/internal/token"
)

// stmtHead — результат классификации начала инструкции.
type stmtHead uint8

const (
	headExpr stmtHead = iota
	headNestedFn
	headImplicitDecl
	headAssign
)

// classifyHead решает, чем является инструкция, начинающаяся с Type/Ident.
// Порядок правил:
//  1. Ident '=' — всегда присваивание (проверяем второй токен, а не тип);
//  2. Type Ident '(' — вложенная функция, модификаторы между ними не пропускаются;
//  3. Type [*|&|[N]]* Ident ('=' | ';' | '[') — неявное объявление;
//  4. иначе — выражение.
func (p *Parser) classifyHead() stmtHead {
	if p.peek().Kind == token.Ident && p.peekN(1).Kind == token.Assign {
		return headAssign
	}
	base, ok := p.scanBaseType(0)
	if !ok {
		return headExpr
	}
	// `x * g(y);` — умножение, а не `int* g(...)`
	if p.peekN(base).Kind == token.Ident && p.peekN(base+1).Kind == token.LParen {
		return headNestedFn
	}
	end, ok := p.scanTypeSuffix(base)
	if !ok || p.peekN(end).Kind != token.Ident {
		return headExpr
	}
	switch p.peekN(end + 1).Kind {
	case token.Assign, token.Semicolon, token.LBracket:
		return headImplicitDecl
	}
	return headExpr
}

// scanType пробегает токены типа начиная с позиции i, не потребляя их.
// Возвращает позицию первого токена после типа.
func (p *Parser) scanType(i int) (int, bool) {
	i, ok := p.scanBaseType(i)
	if !ok {
		return i, false
	}
	return p.scanTypeSuffix(i)
}

// scanBaseType stops before any pointer, reference or array suffix.
func (p *Parser) scanBaseType(i int) (int, bool) {
	switch p.peekN(i).Kind {
	case token.KwAuto:
		i++
	case token.KwFn:
		if p.peekN(i+1).Kind != token.LParen {
			return i, false
		}
		j, ok := p.skipBalanced(i+1, token.LParen, token.RParen)
		if !ok {
			return i, false
		}
		i = j
		if p.peekN(i).Kind == token.Arrow {
			return p.scanType(i + 1)
		}
	case token.Ident:
		i++
		for p.peekN(i).Kind == token.ColonColon && p.peekN(i+1).Kind == token.Ident {
			i += 2
		}
		if p.peekN(i).Kind == token.Lt {
			j, ok := p.skipAngles(i)
			if !ok {
				return i, false
			}
			i = j
		}
	default:
		return i, false
	}
	return i, true
}

func (p *Parser) scanTypeSuffix(i int) (int, bool) {
	for {
		switch p.peekN(i).Kind {
		case token.Star, token.Amp:
			i++
		case token.LBracket:
			// T[] или T[N]; идентификатор/литерал внутри — длина
			switch p.peekN(i + 1).Kind {
			case token.RBracket:
				i += 2
			case token.IntLit, token.Ident:
				if p.peekN(i+2).Kind != token.RBracket {
					return i, true
				}
				i += 3
			default:
				return i, true
			}
		default:
			return i, true
		}
	}
}

// skipAngles пропускает сбалансированные <...>, учитывая '>>'.
// Внутри допустимы только токены, из которых состоят типы.
func (p *Parser) skipAngles(i int) (int, bool) {
	depth := 0
	for {
		switch p.peekN(i).Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			depth -= 2
		case token.Ident, token.Comma, token.ColonColon, token.Star, token.Amp,
			token.LBracket, token.RBracket, token.IntLit, token.KwAuto, token.KwFn,
			token.LParen, token.RParen, token.Arrow:
		default:
			return i, false
		}
		i++
		if depth == 0 {
			return i, true
		}
		if depth < 0 {
			return i, false
		}
	}
}

func (p *Parser) skipBalanced(i int, open, closeKind token.Kind) (int, bool) {
	depth := 0
	for {
		switch p.peekN(i).Kind {
		case open:
			depth++
		case closeKind:
			depth--
		case token.EOF:
			return i, false
		}
		i++
		if depth == 0 {
			return i, true
		}
	}
}

// genericPathAhead reports `Name<...>::` at the current position, which
// starts a scoped call like Vec<int>::new rather than a comparison.
func (p *Parser) genericPathAhead() bool {
	if p.peekN(1).Kind != token.Lt {
		return false
	}
	end, ok := p.skipAngles(1)
	return ok && p.peekN(end).Kind == token.ColonColon
}

// isForIn проверяет `(x in` и `(Type x in` сразу после '('.
func (p *Parser) isForIn() bool {
	if p.peek().Kind == token.Ident && p.peekN(1).Kind == token.KwIn {
		return true
	}
	end, ok := p.scanType(0)
	return ok && p.peekN(end).Kind == token.Ident && p.peekN(end+1).Kind == token.KwIn
}
