package driver

import (
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // EOF included
	Bag     *diag.Bag
}

// Tokenize lexes the whole file at path.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(Options{MaxDiagnostics: maxDiagnostics}.maxDiagnostics())
	lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})

	// Токенизация: собираем все токены до EOF
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	finishBag(bag)
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, nil
}
