package sema

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/parser"
	"cinder/internal/source"
)

// walkStmts walks one block in the current scope. Declarations are indexed
// first so that a use before its declaration can name it.
func (cc *captureChecker) walkStmts(stmts []ast.StmtID) {
	for _, id := range stmts {
		if name, sp, ok := cc.declaredName(id); ok {
			if _, seen := cc.scope.declared[name]; !seen {
				cc.scope.declared[name] = sp
			}
		}
	}
	for pos, id := range stmts {
		cc.walkStmt(id, pos)
	}
}

func (cc *captureChecker) declaredName(id ast.StmtID) (source.StringID, source.Span, bool) {
	stmts := cc.builder.Stmts
	if let, ok := stmts.Let(id); ok {
		return let.Name, let.NameSpan, true
	}
	if fn, ok := stmts.NestedFn(id); ok {
		return fn.Name, fn.NameSpan, true
	}
	return source.NoStringID, source.Span{}, false
}

// inScope walks fn inside a fresh child block scope.
func (cc *captureChecker) inScope(fn func()) {
	cc.enter(newScope(cc.scope, cc.frame), cc.frame, fn)
}

func (cc *captureChecker) walkStmt(id ast.StmtID, pos int) {
	if !id.IsValid() {
		return
	}
	stmts := cc.builder.Stmts
	stmt := stmts.Get(id)
	switch stmt.Kind {
	case ast.StmtBlock:
		blk, _ := stmts.Block(id)
		cc.inScope(func() { cc.walkStmts(blk.Stmts) })

	case ast.StmtLet:
		let, _ := stmts.Let(id)
		cc.walkLet(id, let, pos)

	case ast.StmtExpr:
		es, _ := stmts.Expr(id)
		cc.walkExpr(es.Expr)

	case ast.StmtIf:
		st, _ := stmts.If(id)
		cc.walkExpr(st.Cond)
		cc.inScope(func() { cc.walkStmt(st.Then, 0) })
		cc.inScope(func() { cc.walkStmt(st.Else, 0) })

	case ast.StmtWhile:
		st, _ := stmts.While(id)
		cc.walkExpr(st.Cond)
		cc.inLoop(st.Label, false, func() {
			cc.inScope(func() { cc.walkStmt(st.Body, 0) })
		})

	case ast.StmtFor:
		st, _ := stmts.For(id)
		cc.inScope(func() {
			cc.walkStmts(nonEmpty(st.Init))
			cc.walkExpr(st.Cond)
			cc.inLoop(st.Label, false, func() {
				cc.inScope(func() { cc.walkStmt(st.Body, 0) })
			})
			cc.walkExpr(st.Post)
		})

	case ast.StmtForIn:
		st, _ := stmts.ForIn(id)
		cc.walkExpr(st.Iterable)
		cc.inScope(func() {
			cc.declare(cc.scope, &Binding{
				Name:       st.Name,
				Mutability: Immutable,
				Position:   -1,
				Key:        LocalKey(id),
				Span:       st.NameSpan,
				Class:      cc.typeClass(st.Type),
				keyword:    "loop variable",
			})
			cc.inLoop(st.Label, false, func() { cc.walkStmt(st.Body, 0) })
		})

	case ast.StmtSwitch:
		st, _ := stmts.Switch(id)
		cc.walkSwitch(st)

	case ast.StmtBreak, ast.StmtContinue:
		j, _ := stmts.Jump(id)
		cc.checkJump(stmt, j)

	case ast.StmtReturn:
		ret, _ := stmts.Return(id)
		cc.walkExpr(ret.Value)
		cc.checkReturn(stmt.Span, ret.Value)

	case ast.StmtNestedFn:
		fn, _ := stmts.NestedFn(id)
		cc.walkNestedFn(id, fn, pos)
	}
}

func nonEmpty(id ast.StmtID) []ast.StmtID {
	if !id.IsValid() {
		return nil
	}
	return []ast.StmtID{id}
}

func (cc *captureChecker) walkLet(id ast.StmtID, let *ast.LetStmt, pos int) {
	// the initializer cannot see the binding it initializes
	cc.walkExpr(let.Value)

	b := &Binding{
		Name:     let.Name,
		Position: pos,
		Key:      LocalKey(id),
		Span:     let.NameSpan,
		Class:    cc.typeClass(let.Type),
	}
	if b.Class == ast.ClassNone && let.Value.IsValid() {
		b.Class = cc.exprClass(let.Value)
	}
	switch let.Keyword {
	case ast.LetLet:
		b.Mutability, b.keyword = Immutable, "immutable binding"
	case ast.LetConst:
		b.Mutability, b.keyword = Const, "constant"
	default:
		// var и неявные C-объявления: присваивать можно, форма вывода — по Mutated
		b.Mutability, b.keyword = Mutable, "variable"
	}
	cc.declare(cc.scope, b)
}

// walkNestedFn analyzes a nested function at position pos of its block.
// Its own name becomes visible only after the body is walked.
func (cc *captureChecker) walkNestedFn(id ast.StmtID, fn *ast.FnDecl, pos int) {
	name := cc.builder.Name(fn.Name)
	if parser.IsMacroName(name) {
		cc.report(InvalidOperation, fn.NameSpan,
			"nested function '%s' uses the reserved macro name form __name__", name)
	}

	fr := newFrame(cc.frame, id, fn.Name, fn.Result)
	sc := newScope(cc.scope, fr)
	for i, param := range fn.Params {
		cc.declare(sc, &Binding{
			Name:       param.Name,
			Mutability: Mutable,
			Position:   -1,
			Key:        NestedParamKey(id, i),
			Span:       param.Span,
			Class:      cc.typeClass(param.Type),
			keyword:    "parameter",
		})
	}
	cc.enter(sc, fr, func() {
		cc.walkBody(fn.Body)
	})

	captures := fr.captures
	if captures == nil {
		captures = []Capture{}
	}
	cc.result.Captures[id] = captures

	cc.declare(cc.scope, &Binding{
		Name:       fn.Name,
		Mutability: Immutable,
		Position:   pos,
		Key:        LocalKey(id),
		Span:       fn.NameSpan,
		Class:      cc.typeClass(fn.Result),
		Fn:         true,
		keyword:    "nested function",
	})
}

func (cc *captureChecker) inLoop(label source.StringID, isSwitch bool, fn func()) {
	fr := cc.frame
	fr.loops = append(fr.loops, loopCtx{label: label, isSwitch: isSwitch})
	fn()
	fr.loops = fr.loops[:len(fr.loops)-1]
}

func (cc *captureChecker) checkJump(stmt *ast.Stmt, j *ast.JumpStmt) {
	kw := "break"
	if stmt.Kind == ast.StmtContinue {
		kw = "continue"
	}
	loops := cc.frame.loops
	if j.Label != source.NoStringID {
		for i := len(loops) - 1; i >= 0; i-- {
			if !loops[i].isSwitch && loops[i].label == j.Label {
				return
			}
		}
		cc.report(InvalidOperation, j.LabelSpan, "'%s' refers to unknown loop label '.%s'", kw, cc.builder.Name(j.Label))
		return
	}
	for i := len(loops) - 1; i >= 0; i-- {
		if !loops[i].isSwitch || stmt.Kind == ast.StmtBreak {
			return
		}
	}
	if stmt.Kind == ast.StmtBreak {
		cc.report(InvalidOperation, stmt.Span, "'break' outside of a loop or switch")
	} else {
		cc.report(InvalidOperation, stmt.Span, "'continue' outside of a loop")
	}
}

// walkSwitch checks every arm; an arm that neither breaks nor leaves the
// switch would fall through, which the closure dialect cannot express.
func (cc *captureChecker) walkSwitch(st *ast.SwitchStmt) {
	cc.walkExpr(st.Value)
	cc.inLoop(source.NoStringID, true, func() {
		for i, arm := range st.Arms {
			for _, pat := range arm.Patterns {
				cc.walkExpr(pat)
			}
			cc.inScope(func() { cc.walkStmts(arm.Body) })
			if i < len(st.Arms)-1 && !arm.Break && !cc.terminates(arm.Body) {
				e := cc.report(UnsupportedFeature, arm.Span, "switch arm falls through into the next arm")
				e.Notes = []diag.Note{{Span: st.Arms[i+1].Span, Msg: "next arm starts here"}}
			}
		}
	})
}
