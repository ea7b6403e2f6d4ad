package driver

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/parser"
	"cinder/internal/sema"
	"cinder/internal/source"
)

// ParseResult holds a parsed file. Builder is nil when parsing failed:
// a syntax error leaves no AST behind.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Err     *parser.ParseError
	Macros  *parser.Registry
	Bag     *diag.Bag
}

// OK reports a file that parsed without any error diagnostic.
func (r *ParseResult) OK() bool {
	return r.Builder != nil && !r.Bag.HasErrors()
}

func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	pr := parseLoaded(fs, fileID, diag.NewBag(Options{MaxDiagnostics: maxDiagnostics}.maxDiagnostics()))
	finishBag(pr.Bag)
	return pr, nil
}

// finishBag orders diagnostics by position and drops repeats. The lexer and
// parser may both flag the same bad token.
func finishBag(bag *diag.Bag) {
	bag.Sort()
	bag.Dedup()
}

func parseLoaded(fs *source.FileSet, id source.FileID, bag *diag.Bag) *ParseResult {
	file := fs.Get(id)
	reporter := &diag.BagReporter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter})

	out := &ParseResult{
		FileSet: fs,
		File:    file,
		FileID:  res.File,
		Err:     res.Err,
		Macros:  res.Macros,
		Bag:     bag,
	}
	if res.Err == nil {
		out.Builder = builder
	}
	return out
}

// CheckResult is a parsed file plus its capture analysis.
type CheckResult struct {
	*ParseResult
	Sema *sema.Result // nil when parsing failed
}

func (r *CheckResult) OK() bool {
	return r.ParseResult.OK() && r.Sema != nil && r.Sema.OK()
}

// Check parses path and runs the capture analyzer when parsing succeeded.
func Check(path string, maxDiagnostics int) (*CheckResult, error) {
	pr, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	res := checkParsed(pr)
	finishBag(res.Bag)
	return res, nil
}

func checkParsed(pr *ParseResult) *CheckResult {
	out := &CheckResult{ParseResult: pr}
	if !pr.OK() {
		return out
	}
	res := sema.Check(pr.Builder, pr.FileID, sema.Options{Reporter: &diag.BagReporter{Bag: pr.Bag}})
	out.Sema = &res
	return out
}
