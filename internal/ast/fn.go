package ast

import "cinder/internal/source"

type FnParam struct {
	Name source.StringID
	Type TypeID
	Span source.Span
}

// FnDecl is the signature and body shared by top-level and nested functions.
type FnDecl struct {
	Name     source.StringID
	NameSpan source.Span
	Generics []source.StringID
	Params   []FnParam
	Result   TypeID // declared return type; void is a primitive, never NoTypeID
	Body     StmtID // always a StmtBlock
	Span     source.Span
}
