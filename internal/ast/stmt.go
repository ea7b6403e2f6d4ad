package ast

import (
	"cinder/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtLet
	StmtExpr
	StmtIf
	StmtWhile
	StmtFor
	StmtForIn
	StmtSwitch
	StmtBreak
	StmtContinue
	StmtReturn
	StmtNestedFn
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type BlockStmt struct {
	Stmts []StmtID
}

// LetKeyword records how a declaration was written.
type LetKeyword uint8

const (
	// LetImplicit is a C-style `Type name = e;` without a keyword.
	LetImplicit LetKeyword = iota
	LetLet
	LetVar
	LetConst
)

func (k LetKeyword) String() string {
	switch k {
	case LetLet:
		return "let"
	case LetVar:
		return "var"
	case LetConst:
		return "const"
	}
	return ""
}

type LetStmt struct {
	Keyword  LetKeyword
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID // NoTypeID if inferred
	Value    ExprID // NoExprID if no initialization
	// Mutable is true only for `var`; implicit declarations are recorded immutable.
	Mutable bool
}

type ExprStmt struct {
	Expr ExprID
}

type IfStmt struct {
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmtID if absent
}

type WhileStmt struct {
	Label source.StringID
	Cond  ExprID
	Body  StmtID
}

// ForStmt is the three-part C loop; every part may be absent.
type ForStmt struct {
	Label source.StringID
	Init  StmtID // StmtLet or StmtExpr
	Cond  ExprID
	Post  ExprID
	Body  StmtID
}

type ForInStmt struct {
	Label    source.StringID
	Name     source.StringID
	NameSpan source.Span
	Type     TypeID // NoTypeID for `for (x in e)`
	Iterable ExprID
	Body     StmtID
}

// SwitchArm is one or more merged case labels with a shared body.
type SwitchArm struct {
	Patterns  []ExprID
	IsDefault bool
	Body      []StmtID
	// Break is true when the arm ended with an unlabeled `break;` that was consumed.
	Break bool
	Span  source.Span
}

type SwitchStmt struct {
	Value ExprID
	Arms  []SwitchArm
}

// JumpStmt backs break and continue.
type JumpStmt struct {
	Label     source.StringID
	LabelSpan source.Span
}

type ReturnStmt struct {
	Value ExprID
}

type Stmts struct {
	Arena     *Arena[Stmt]
	Blocks    *Arena[BlockStmt]
	Lets      *Arena[LetStmt]
	Exprs     *Arena[ExprStmt]
	Ifs       *Arena[IfStmt]
	Whiles    *Arena[WhileStmt]
	Fors      *Arena[ForStmt]
	ForIns    *Arena[ForInStmt]
	Switches  *Arena[SwitchStmt]
	Jumps     *Arena[JumpStmt]
	Returns   *Arena[ReturnStmt]
	NestedFns *Arena[FnDecl]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Blocks:    NewArena[BlockStmt](capHint / 2),
		Lets:      NewArena[LetStmt](capHint / 2),
		Exprs:     NewArena[ExprStmt](capHint / 2),
		Ifs:       NewArena[IfStmt](capHint / 4),
		Whiles:    NewArena[WhileStmt](capHint / 8),
		Fors:      NewArena[ForStmt](capHint / 8),
		ForIns:    NewArena[ForInStmt](capHint / 8),
		Switches:  NewArena[SwitchStmt](capHint / 8),
		Jumps:     NewArena[JumpStmt](capHint / 8),
		Returns:   NewArena[ReturnStmt](capHint / 4),
		NestedFns: NewArena[FnDecl](capHint / 8),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	return s.new(StmtBlock, span, PayloadID(s.Blocks.Allocate(BlockStmt{Stmts: stmts})))
}

func (s *Stmts) Block(id StmtID) (*BlockStmt, bool) {
	p, ok := s.payload(id, StmtBlock)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewLet(span source.Span, data LetStmt) StmtID {
	return s.new(StmtLet, span, PayloadID(s.Lets.Allocate(data)))
}

func (s *Stmts) Let(id StmtID) (*LetStmt, bool) {
	p, ok := s.payload(id, StmtLet)
	if !ok {
		return nil, false
	}
	return s.Lets.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, PayloadID(s.Exprs.Allocate(ExprStmt{Expr: expr})))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els StmtID) StmtID {
	return s.new(StmtIf, span, PayloadID(s.Ifs.Allocate(IfStmt{Cond: cond, Then: then, Else: els})))
}

func (s *Stmts) If(id StmtID) (*IfStmt, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewWhile(span source.Span, data WhileStmt) StmtID {
	return s.new(StmtWhile, span, PayloadID(s.Whiles.Allocate(data)))
}

func (s *Stmts) While(id StmtID) (*WhileStmt, bool) {
	p, ok := s.payload(id, StmtWhile)
	if !ok {
		return nil, false
	}
	return s.Whiles.Get(p), true
}

func (s *Stmts) NewFor(span source.Span, data ForStmt) StmtID {
	return s.new(StmtFor, span, PayloadID(s.Fors.Allocate(data)))
}

func (s *Stmts) For(id StmtID) (*ForStmt, bool) {
	p, ok := s.payload(id, StmtFor)
	if !ok {
		return nil, false
	}
	return s.Fors.Get(p), true
}

func (s *Stmts) NewForIn(span source.Span, data ForInStmt) StmtID {
	return s.new(StmtForIn, span, PayloadID(s.ForIns.Allocate(data)))
}

func (s *Stmts) ForIn(id StmtID) (*ForInStmt, bool) {
	p, ok := s.payload(id, StmtForIn)
	if !ok {
		return nil, false
	}
	return s.ForIns.Get(p), true
}

func (s *Stmts) NewSwitch(span source.Span, value ExprID, arms []SwitchArm) StmtID {
	return s.new(StmtSwitch, span, PayloadID(s.Switches.Allocate(SwitchStmt{Value: value, Arms: arms})))
}

func (s *Stmts) Switch(id StmtID) (*SwitchStmt, bool) {
	p, ok := s.payload(id, StmtSwitch)
	if !ok {
		return nil, false
	}
	return s.Switches.Get(p), true
}

// NewJump creates a break or continue statement.
func (s *Stmts) NewJump(span source.Span, kind StmtKind, label source.StringID, labelSpan source.Span) StmtID {
	return s.new(kind, span, PayloadID(s.Jumps.Allocate(JumpStmt{Label: label, LabelSpan: labelSpan})))
}

func (s *Stmts) Jump(id StmtID) (*JumpStmt, bool) {
	st := s.Get(id)
	if st == nil || (st.Kind != StmtBreak && st.Kind != StmtContinue) {
		return nil, false
	}
	return s.Jumps.Get(uint32(st.Payload)), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, PayloadID(s.Returns.Allocate(ReturnStmt{Value: value})))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewNestedFn(span source.Span, decl FnDecl) StmtID {
	return s.new(StmtNestedFn, span, PayloadID(s.NestedFns.Allocate(decl)))
}

func (s *Stmts) NestedFn(id StmtID) (*FnDecl, bool) {
	p, ok := s.payload(id, StmtNestedFn)
	if !ok {
		return nil, false
	}
	return s.NestedFns.Get(p), true
}

// LoopLabel returns the label of a while/for/for-in statement.
func (s *Stmts) LoopLabel(id StmtID) (source.StringID, bool) {
	switch st := s.Get(id); {
	case st == nil:
		return source.NoStringID, false
	case st.Kind == StmtWhile:
		return s.Whiles.Get(uint32(st.Payload)).Label, true
	case st.Kind == StmtFor:
		return s.Fors.Get(uint32(st.Payload)).Label, true
	case st.Kind == StmtForIn:
		return s.ForIns.Get(uint32(st.Payload)).Label, true
	}
	return source.NoStringID, false
}
