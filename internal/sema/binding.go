package sema

import (
	"cinder/internal/ast"
	"cinder/internal/source"
)

// Mutability is how a binding was declared.
type Mutability uint8

const (
	Immutable Mutability = iota
	Mutable
	Const
)

func (m Mutability) String() string {
	switch m {
	case Mutable:
		return "mutable"
	case Const:
		return "const"
	}
	return "immutable"
}

// BindingKey identifies a declaration. Locals are keyed by their declaring
// statement; parameters by the owning function and their index.
type BindingKey struct {
	Stmt  ast.StmtID // Let, ForIn or NestedFn; owner of a nested fn parameter
	Item  ast.ItemID // owner of a top-level parameter
	Param int        // -1 for locals
}

// LocalKey is the key of the binding declared by stmt.
func LocalKey(stmt ast.StmtID) BindingKey {
	return BindingKey{Stmt: stmt, Param: -1}
}

// ParamKey is the key of parameter i of a top-level function.
func ParamKey(item ast.ItemID, i int) BindingKey {
	return BindingKey{Item: item, Param: i}
}

// NestedParamKey is the key of parameter i of a nested function.
func NestedParamKey(stmt ast.StmtID, i int) BindingKey {
	return BindingKey{Stmt: stmt, Param: i}
}

// Binding is one entry of a block's ordered declaration list.
type Binding struct {
	Name       source.StringID
	Mutability Mutability
	Position   int // index of the declaring statement in its block; -1 for parameters
	Key        BindingKey
	Span       source.Span
	Class      ast.PrimClass // primitive class when known, for return checks
	Fn         bool          // declared by a nested function statement
	keyword    string

	frame *frame
}

// CaptureKind is Immutable (read only) or Mutable (written by the nested function).
type CaptureKind uint8

const (
	CaptureImmutable CaptureKind = iota
	CaptureMutable
)

func (k CaptureKind) String() string {
	if k == CaptureMutable {
		return "mutable"
	}
	return "immutable"
}

// Capture is one enclosing binding referenced by a nested function.
type Capture struct {
	Name    source.StringID
	Kind    CaptureKind
	Binding BindingKey
}

// scope is one block. bindings grows as declarations are walked; declared
// is filled up front so that uses before a declaration can point at it.
type scope struct {
	bindings map[source.StringID]*Binding
	order    []*Binding
	declared map[source.StringID]source.Span
	frame    *frame
	parent   *scope
}

func newScope(parent *scope, fr *frame) *scope {
	return &scope{
		bindings: make(map[source.StringID]*Binding),
		declared: make(map[source.StringID]source.Span),
		frame:    fr,
		parent:   parent,
	}
}

func (s *scope) lookup(name source.StringID) (*Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// declaredLater finds a not yet visible declaration of name in s or its parents.
func (s *scope) declaredLater(name source.StringID) (source.Span, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, visible := cur.bindings[name]; visible {
			return source.Span{}, false
		}
		if sp, ok := cur.declared[name]; ok {
			return sp, true
		}
	}
	return source.Span{}, false
}

// frame is one function body: a top-level function or a nested one.
type frame struct {
	stmt     ast.StmtID // NestedFn statement; NoStmtID for top-level functions
	name     source.StringID
	result   ast.TypeID
	captures []Capture
	index    map[BindingKey]int
	parent   *frame
	loops    []loopCtx
}

func newFrame(parent *frame, stmt ast.StmtID, name source.StringID, result ast.TypeID) *frame {
	return &frame{
		stmt:   stmt,
		name:   name,
		result: result,
		index:  make(map[BindingKey]int),
		parent: parent,
	}
}

func (f *frame) capture(b *Binding, write bool) {
	kind := CaptureImmutable
	if write {
		kind = CaptureMutable
	}
	if i, ok := f.index[b.Key]; ok {
		if write {
			f.captures[i].Kind = CaptureMutable
		}
		return
	}
	f.index[b.Key] = len(f.captures)
	f.captures = append(f.captures, Capture{Name: b.Name, Kind: kind, Binding: b.Key})
}

// loopCtx tracks break/continue targets inside one frame.
type loopCtx struct {
	label    source.StringID
	isSwitch bool
}
