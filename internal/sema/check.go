package sema

import (
	"cinder/internal/ast"
	"cinder/internal/diag"
	"cinder/internal/source"
)

// Options configure a semantic pass over a file.
type Options struct {
	Reporter diag.Reporter
}

// Result stores what the capture analysis produced for one file.
type Result struct {
	// Captures holds the ordered capture list of every NestedFn statement.
	Captures map[ast.StmtID][]Capture
	// Mutated marks bindings written anywhere in their function.
	Mutated map[BindingKey]bool
	Errors  []SemanticError
}

// OK reports whether the analysis found no errors.
func (r *Result) OK() bool {
	return r != nil && len(r.Errors) == 0
}

func (r *Result) IsMutated(key BindingKey) bool {
	return r != nil && r.Mutated[key]
}

// HasMutableCapture reports whether the nested function writes any enclosing binding.
func (r *Result) HasMutableCapture(stmt ast.StmtID) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Captures[stmt] {
		if c.Kind == CaptureMutable {
			return true
		}
	}
	return false
}

// Check walks every function of the file and computes nested-function captures.
// Errors accumulate; the walk never stops early.
func Check(builder *ast.Builder, fileID ast.FileID, opts Options) Result {
	res := Result{
		Captures: make(map[ast.StmtID][]Capture),
		Mutated:  make(map[BindingKey]bool),
	}
	if builder == nil || fileID == ast.NoFileID {
		return res
	}
	cc := captureChecker{
		builder:  builder,
		fileID:   fileID,
		reporter: opts.Reporter,
		result:   &res,
	}
	cc.run()
	cc.flush()
	return res
}

type captureChecker struct {
	builder  *ast.Builder
	fileID   ast.FileID
	reporter diag.Reporter
	result   *Result

	globals *scope
	scope   *scope
	frame   *frame
}

func (cc *captureChecker) run() {
	file := cc.builder.Files.Get(cc.fileID)
	if file == nil {
		return
	}
	cc.globals = newScope(nil, nil)
	cc.collectGlobals(file.Items)

	cc.scope = cc.globals
	for _, itemID := range file.Items {
		item := cc.builder.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemFn:
			decl, _ := cc.builder.Items.Fn(itemID)
			cc.checkFn(itemID, decl)
		case ast.ItemConst:
			c, _ := cc.builder.Items.Const(itemID)
			cc.walkExpr(c.Value)
		case ast.ItemEnum:
			enum, _ := cc.builder.Items.Enum(itemID)
			for _, v := range enum.Variants {
				if v.Value.IsValid() {
					cc.walkExpr(v.Value)
				}
			}
		}
	}
}

// collectGlobals declares top-level functions, constants and enum variants.
// Struct and typedef names only take part in the duplicate check.
func (cc *captureChecker) collectGlobals(items []ast.ItemID) {
	seen := make(map[source.StringID]source.Span)
	define := func(name source.StringID, sp source.Span) bool {
		if prev, dup := seen[name]; dup {
			e := cc.report(DuplicateDefinition, sp, "'%s' is already defined", cc.builder.Name(name))
			e.Notes = []diag.Note{{Span: prev, Msg: "previous definition is here"}}
			return false
		}
		seen[name] = sp
		return true
	}
	for _, itemID := range items {
		item := cc.builder.Items.Get(itemID)
		key := BindingKey{Item: itemID, Param: -1}
		switch item.Kind {
		case ast.ItemFn:
			decl, _ := cc.builder.Items.Fn(itemID)
			if define(item.Name, decl.NameSpan) {
				cc.globals.add(&Binding{Name: item.Name, Mutability: Immutable, Key: key, Span: decl.NameSpan, Fn: true, keyword: "function"})
			}
		case ast.ItemConst:
			c, _ := cc.builder.Items.Const(itemID)
			if define(item.Name, item.Span) {
				cc.globals.add(&Binding{Name: item.Name, Mutability: Const, Key: key, Span: item.Span,
					Class: cc.typeClass(c.Type), keyword: "constant"})
			}
		case ast.ItemEnum:
			enum, _ := cc.builder.Items.Enum(itemID)
			define(item.Name, item.Span)
			for i, v := range enum.Variants {
				if define(v.Name, v.Span) {
					cc.globals.add(&Binding{Name: v.Name, Mutability: Const, Key: BindingKey{Item: itemID, Param: -2 - i},
						Span: v.Span, Class: ast.ClassInteger, keyword: "enum variant"})
				}
			}
		case ast.ItemStruct, ast.ItemTypedef:
			define(item.Name, item.Span)
		}
	}
}

func (s *scope) add(b *Binding) {
	b.frame = s.frame
	s.bindings[b.Name] = b
	s.order = append(s.order, b)
}

func (cc *captureChecker) checkFn(itemID ast.ItemID, decl *ast.FnDecl) {
	fr := newFrame(nil, ast.NoStmtID, decl.Name, decl.Result)
	sc := newScope(cc.globals, fr)
	for i, param := range decl.Params {
		cc.declare(sc, &Binding{
			Name:       param.Name,
			Mutability: Mutable,
			Position:   -1,
			Key:        ParamKey(itemID, i),
			Span:       param.Span,
			Class:      cc.typeClass(param.Type),
			keyword:    "parameter",
		})
	}
	cc.enter(sc, fr, func() {
		cc.walkBody(decl.Body)
	})
}

// enter runs fn with sc and fr as the current scope and frame.
func (cc *captureChecker) enter(sc *scope, fr *frame, fn func()) {
	prevScope, prevFrame := cc.scope, cc.frame
	cc.scope, cc.frame = sc, fr
	fn()
	cc.scope, cc.frame = prevScope, prevFrame
}

// walkBody walks a function body block in the scope that already holds the parameters.
func (cc *captureChecker) walkBody(body ast.StmtID) {
	blk, ok := cc.builder.Stmts.Block(body)
	if !ok {
		return
	}
	cc.walkStmts(blk.Stmts)
}

// declare adds b to sc, reporting a duplicate within the same block.
func (cc *captureChecker) declare(sc *scope, b *Binding) {
	if prev, dup := sc.bindings[b.Name]; dup {
		e := cc.report(DuplicateDefinition, b.Span, "'%s' is already declared in this scope", cc.builder.Name(b.Name))
		e.Notes = []diag.Note{{Span: prev.Span, Msg: "previous declaration is here"}}
	}
	sc.add(b)
}

func (cc *captureChecker) typeClass(t ast.TypeID) ast.PrimClass {
	if !t.IsValid() {
		return ast.ClassNone
	}
	return cc.builder.Types.PrimKindOf(t).Class()
}
