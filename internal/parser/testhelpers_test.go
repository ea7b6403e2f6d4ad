package parser

import (
	"fmt"
	"strings"
	"testing"

	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/lexer"
	"cinder/internal/source"
	"cinder/internal/testkit"
)

func parseSource(t *testing.T, input string) (*ast.Builder, Result, *diag.Bag) {
	t.Helper()

	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.cnd", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	reporter := &diag.BagReporter{Bag: bag}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := ParseFile(lx, builder, Options{Reporter: reporter})

	if result.Err == nil {
		if err := testkit.CheckSpanInvariants(builder, result.File, file); err != nil {
			t.Fatalf("span invariants: %v", err)
		}
	}
	return builder, result, bag
}

// mustParse fails the test on any diagnostic.
func mustParse(t *testing.T, input string) (*ast.Builder, ast.FileID) {
	t.Helper()
	b, res, bag := parseSource(t, input)
	if res.Err != nil || bag.HasErrors() {
		t.Fatalf("unexpected errors: %v; %s", res.Err, diagnosticsSummary(bag))
	}
	return b, res.File
}

// bodyOf returns the statements of the n-th top-level function.
func bodyOf(t *testing.T, b *ast.Builder, file ast.FileID, n int) []ast.StmtID {
	t.Helper()
	items := b.Files.Get(file).Items
	if n >= len(items) {
		t.Fatalf("expected at least %d items, got %d", n+1, len(items))
	}
	fn, ok := b.Items.Fn(items[n])
	if !ok {
		t.Fatalf("item %d is not a function", n)
	}
	blk, ok := b.Stmts.Block(fn.Body)
	if !ok {
		t.Fatalf("function body is not a block")
	}
	return blk.Stmts
}

// exprOf unwraps an expression statement, or the right side of `x = e;`.
func exprOf(t *testing.T, b *ast.Builder, stmt ast.StmtID) ast.ExprID {
	t.Helper()
	es, ok := b.Stmts.Expr(stmt)
	if !ok {
		t.Fatalf("statement is not an expression statement: kind=%d", b.Stmts.Get(stmt).Kind)
	}
	if bin, ok := b.Exprs.Binary(es.Expr); ok && bin.Op == ast.ExprBinaryAssign {
		return bin.Right
	}
	return es.Expr
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
