package fuzztests

import (
	"testing"

	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.cnd", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for {
			tok := lx.Next()
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %v has span %v after offset %d", tok.Kind, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			if tok.Kind == token.EOF {
				break
			}
		}
	})
}
