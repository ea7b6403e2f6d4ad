package parser

import (
	"slices"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

type Options struct {
	Reporter diag.Reporter // получает ParseError как SYN-диагностику; может быть nil
}

// Result of one ParseFile call. On error File is ast.NoFileID and Err is set.
type Result struct {
	File   ast.FileID
	Err    *ParseError
	Macros *Registry
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов
	arenas   *ast.Builder // построитель аренных узлов
	file     ast.FileID
	opts     Options
	buf      []token.Token // буфер lookahead, buf[0] — текущий токен
	lastSpan source.Span   // span последнего съеденного токена для лучшей диагностики
	macros   *Registry
	err      *ParseError
}

// ParseFile — входная точка для разбора одного файла.
// Первая ошибка прерывает разбор; частичный AST не возвращается.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:     lx,
		arenas: arenas,
		opts:   opts,
		macros: NewRegistry(),
	}
	start := p.peek().Span
	file := arenas.NewFile(start)
	p.file = file

	if !p.parseItems() {
		if p.err == nil {
			p.fail(diag.SynUnexpectedToken, p.peek().Span, "unexpected token")
		}
		if opts.Reporter != nil {
			opts.Reporter.Report(p.err.Code, diag.SevError, p.err.Span, p.err.Error(), nil)
		}
		return Result{File: ast.NoFileID, Err: p.err, Macros: p.macros}
	}
	arenas.Files.Get(file).Span = start.Cover(p.lastSpan)
	return Result{File: file, Macros: p.macros}
}

// peek возвращает текущий токен, не потребляя его.
func (p *Parser) peek() token.Token {
	return p.peekN(0)
}

// peekN смотрит на n токенов вперёд (0 — текущий).
func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		if len(p.buf) > 0 && p.buf[len(p.buf)-1].Kind == token.EOF {
			return p.buf[len(p.buf)-1]
		}
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[n]
}

// advance — съедает текущий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind == token.EOF {
		return tok
	}
	p.buf = p.buf[1:]
	if tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// eat consumes the current token if it has kind k.
func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// checkpoint — точка отката для спекулятивного разбора (cast vs группа).
type checkpoint struct {
	lex      lexer.Checkpoint
	buf      []token.Token
	lastSpan source.Span
	err      *ParseError
}

func (p *Parser) checkpoint() checkpoint {
	return checkpoint{
		lex:      p.lx.Checkpoint(),
		buf:      slices.Clone(p.buf),
		lastSpan: p.lastSpan,
		err:      p.err,
	}
}

func (p *Parser) restore(cp checkpoint) {
	p.lx.Restore(cp.lex)
	p.buf = cp.buf
	p.lastSpan = cp.lastSpan
	p.err = cp.err
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.StringsInterner.Intern(tok.Text)
}

// parseIdent — ожидает Ident и интернирует его.
func (p *Parser) parseIdent(what string) (source.StringID, source.Span, bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what)
	if !ok {
		return source.NoStringID, source.Span{}, false
	}
	return p.intern(tok), tok.Span, true
}
