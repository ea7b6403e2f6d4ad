package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"cinder/internal/ast"
	"cinder/internal/source"
)

// CheckSpanInvariants runs span invariants on a parsed file:
// 1) file.Span is within file content bounds and covers every item span
// 2) every item span is non-empty and points at the same file
// 3) statements of function bodies nest inside their parent span
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if !f.Span.Contains(sp) {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		if fn, ok := b.Items.Fn(it); ok {
			if err := checkStmt(b, fn.Body, sp); err != nil {
				return fmt.Errorf("fn %s: %w", b.Name(fn.Name), err)
			}
		}
	}
	return nil
}

func checkStmt(b *ast.Builder, id ast.StmtID, parent source.Span) error {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	if !parent.Contains(st.Span) {
		return fmt.Errorf("statement span %v is outside parent %v", st.Span, parent)
	}
	var children []ast.StmtID
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := b.Stmts.Block(id)
		children = blk.Stmts
	case ast.StmtIf:
		s, _ := b.Stmts.If(id)
		children = []ast.StmtID{s.Then, s.Else}
	case ast.StmtWhile:
		s, _ := b.Stmts.While(id)
		children = []ast.StmtID{s.Body}
	case ast.StmtFor:
		s, _ := b.Stmts.For(id)
		children = []ast.StmtID{s.Init, s.Body}
	case ast.StmtForIn:
		s, _ := b.Stmts.ForIn(id)
		children = []ast.StmtID{s.Body}
	case ast.StmtSwitch:
		s, _ := b.Stmts.Switch(id)
		for _, arm := range s.Arms {
			children = append(children, arm.Body...)
		}
	case ast.StmtNestedFn:
		fn, _ := b.Stmts.NestedFn(id)
		children = []ast.StmtID{fn.Body}
	}
	for _, child := range children {
		if err := checkStmt(b, child, st.Span); err != nil {
			return err
		}
	}
	return nil
}
