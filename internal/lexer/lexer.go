package lexer

import (
	"cinder/internal/source"
	"cinder/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	errs   int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	if lx.cursor.EOF() {
		// Leading у EOF остаётся, чтобы макро-тело видело конец строки.
		tok := token.Token{
			Kind:    token.EOF,
			Span:    lx.emptySpan(),
			Leading: lx.hold,
		}
		lx.hold = nil
		return tok
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()

	case isDec(ch):
		tok = lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		tok = lx.scanNumber()

	case ch == '"':
		tok = lx.scanString()

	case ch == '\'':
		tok = lx.scanChar()

	default:
		tok = lx.scanOperatorOrPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Position returns the 1-based line and column of the next unread byte.
func (lx *Lexer) Position() source.LineCol {
	return source.LineCol{Line: lx.cursor.Line, Col: lx.cursor.Col}
}

// ErrorCount reports how many lexical errors were produced so far.
func (lx *Lexer) ErrorCount() int {
	return lx.errs
}

// Checkpoint is a saved lexer state: cursor offset, line, column and the
// buffered look token.
type Checkpoint struct {
	mark Mark
	look *token.Token
	errs int
}

// Checkpoint запоминает состояние для спекулятивного разбора.
func (lx *Lexer) Checkpoint() Checkpoint {
	cp := Checkpoint{mark: lx.cursor.Mark(), errs: lx.errs}
	if lx.look != nil {
		t := *lx.look
		cp.look = &t
	}
	return cp
}

// Restore rewinds the lexer to cp. Tokens produced after cp are re-lexed on demand.
func (lx *Lexer) Restore(cp Checkpoint) {
	lx.cursor.Reset(cp.mark)
	lx.look = cp.look
	lx.hold = nil
	lx.errs = cp.errs
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}
