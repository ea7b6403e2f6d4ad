package lexer_test

import (
	"testing"

	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cnd", []byte(input))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens
		}
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestOperatorsGreedy(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"<<=", []token.Kind{token.ShlAssign, token.EOF}},
		{">>= >>", []token.Kind{token.ShrAssign, token.Shr, token.EOF}},
		{"x++ --y", []token.Kind{token.Ident, token.PlusPlus, token.MinusMinus, token.Ident, token.EOF}},
		{"p->f::g", []token.Kind{token.Ident, token.Arrow, token.Ident, token.ColonColon, token.Ident, token.EOF}},
		{"a+=~b", []token.Kind{token.Ident, token.PlusAssign, token.Tilde, token.Ident, token.EOF}},
		{"#define", []token.Kind{token.Hash, token.Ident, token.EOF}},
		{"a&&b||!c", []token.Kind{token.Ident, token.AndAnd, token.Ident, token.OrOr, token.Bang, token.Ident, token.EOF}},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		got := kindsOf(collectAllTokens(lx))
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tt.input, bag.Items())
		}
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d = %s, want %s", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestKeywordsAndPrimitives(t *testing.T) {
	lx, _ := makeTestLexer("let var int void static pub fn")
	got := kindsOf(collectAllTokens(lx))
	want := []token.Kind{token.KwLet, token.KwVar, token.Ident, token.Ident, token.KwStatic, token.KwPub, token.KwFn, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.IntLit},
		{"0x1F", token.IntLit},
		{"0b1010", token.IntLit},
		{"10u", token.IntLit},
		{"3.14", token.FloatLit},
		{".5", token.FloatLit},
		{"1e-3", token.FloatLit},
		{"2.0f", token.FloatLit},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		tok := lx.Next()
		if tok.Kind != tt.kind || tok.Text != tt.input {
			t.Errorf("%q: got %s %q", tt.input, tok.Kind, tok.Text)
		}
		if bag.Len() != 0 {
			t.Errorf("%q: unexpected diagnostics", tt.input)
		}
	}
}

func TestNumberFollowedByMember(t *testing.T) {
	lx, _ := makeTestLexer("1.foo")
	got := kindsOf(collectAllTokens(lx))
	want := []token.Kind{token.IntLit, token.Dot, token.Ident, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStringsAndChars(t *testing.T) {
	lx, bag := makeTestLexer(`"a\"b" 'c' '\n'`)
	toks := collectAllTokens(lx)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[0].Text != `"a\"b"` {
		t.Errorf("string token = %s %q", toks[0].Kind, toks[0].Text)
	}
	if toks[1].Kind != token.CharLit || toks[2].Kind != token.CharLit {
		t.Errorf("char tokens = %s, %s", toks[1].Kind, toks[2].Kind)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{"\"ab\ncd\"", diag.LexUnterminatedString},
		{"/* open", diag.LexUnterminatedBlockComment},
		{"@", diag.LexUnknownChar},
		{"'a", diag.LexUnterminatedChar},
		{"0x", diag.LexBadNumber},
		{"12abc", diag.LexBadNumber},
	}
	for _, tt := range tests {
		lx, bag := makeTestLexer(tt.input)
		collectAllTokens(lx)
		if bag.Len() == 0 {
			t.Errorf("%q: expected %s", tt.input, tt.code.ID())
			continue
		}
		if got := bag.Items()[0].Code; got != tt.code {
			t.Errorf("%q: got %s, want %s", tt.input, got.ID(), tt.code.ID())
		}
		if lx.ErrorCount() == 0 {
			t.Errorf("%q: ErrorCount not updated", tt.input)
		}
	}
}

func TestTriviaAndNewlines(t *testing.T) {
	lx, _ := makeTestLexer("a // c\n/* x */ b /* multi\nline */ c")
	toks := collectAllTokens(lx)
	if toks[0].HasNewlineBefore() {
		t.Error("first token has no newline before it")
	}
	if !toks[1].HasNewlineBefore() {
		t.Error("b follows a newline")
	}
	if len(toks[1].Leading) != 5 {
		t.Errorf("b leading trivia = %d entries, want 5", len(toks[1].Leading))
	}
	if !toks[2].HasNewlineBefore() {
		t.Error("c follows a multi-line block comment")
	}
}

func TestNestedBlockComment(t *testing.T) {
	lx, bag := makeTestLexer("/* a /* b */ c */ x")
	tok := lx.Next()
	if tok.Kind != token.Ident || tok.Text != "x" || bag.Len() != 0 {
		t.Fatalf("got %s %q with %d diagnostics", tok.Kind, tok.Text, bag.Len())
	}
}

func TestPositionTracksLinesAndRunes(t *testing.T) {
	lx, _ := makeTestLexer("ab\n  é x")
	lx.Next() // ab
	lx.Next() // é
	pos := lx.Position()
	if pos.Line != 2 || pos.Col != 4 {
		t.Fatalf("position = %d:%d, want 2:4", pos.Line, pos.Col)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("second peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
}

func TestCheckpointRestore(t *testing.T) {
	lx, _ := makeTestLexer("(int) x\ny")
	lx.Next() // (
	lx.Peek() // int, buffered
	cp := lx.Checkpoint()
	before := lx.Position()

	collectAllTokens(lx)
	lx.Restore(cp)

	if pos := lx.Position(); pos != before {
		t.Fatalf("position after restore = %v, want %v", pos, before)
	}
	got := collectAllTokens(lx)
	texts := []string{"int", ")", "x", "y", ""}
	for i, want := range texts {
		if got[i].Text != want {
			t.Fatalf("token %d = %q, want %q", i, got[i].Text, want)
		}
	}
	if !got[3].HasNewlineBefore() {
		t.Error("re-lexed token lost its leading newline")
	}
}
