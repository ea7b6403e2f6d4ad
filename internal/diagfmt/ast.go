package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"cinder/internal/ast"
	"cinder/internal/source"
)

// ASTNodeOutput is one node of the debug dump. The tree and JSON
// renderers share it.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

func (n *ASTNodeOutput) set(key string, value any) {
	if n.Fields == nil {
		n.Fields = make(map[string]any)
	}
	n.Fields[key] = value
}

func (n *ASTNodeOutput) add(children ...ASTNodeOutput) {
	n.Children = append(n.Children, children...)
}

// BuildAST converts a parsed file into the dump representation.
func BuildAST(builder *ast.Builder, fileID ast.FileID) (ASTNodeOutput, error) {
	file := builder.Files.Get(fileID)
	if file == nil {
		return ASTNodeOutput{}, fmt.Errorf("file %d not found", fileID)
	}
	d := astDumper{b: builder}
	root := ASTNodeOutput{Type: "File", Span: file.Span}
	for _, id := range file.Items {
		root.add(d.item(id))
	}
	return root, nil
}

// FormatASTTree печатает AST деревом:
//
//	File "a.cnd" (span: 1:1-1:22)
//	└─ Item fn "f" {result=int, visibility=public} (span: 1:1-1:22)
//	   └─ Block (span: 1:9-1:22)
func FormatASTTree(w io.Writer, builder *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}
	if fs != nil && validSpan(fs, root.Span) {
		root.Text = displayPath(fs, root.Span.File, PathModeAuto)
	}
	var sb strings.Builder
	sb.WriteString(nodeLabel(&root, fs))
	sb.WriteByte('\n')
	writeChildren(&sb, root.Children, "", fs)
	_, err = io.WriteString(w, sb.String())
	return err
}

// FormatASTJSON выводит то же дерево в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, fileID ast.FileID) error {
	root, err := BuildAST(builder, fileID)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func writeChildren(sb *strings.Builder, children []ASTNodeOutput, prefix string, fs *source.FileSet) {
	for i := range children {
		branch, next := "├─ ", "│  "
		if i == len(children)-1 {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(nodeLabel(&children[i], fs))
		sb.WriteByte('\n')
		writeChildren(sb, children[i].Children, prefix+next, fs)
	}
}

func nodeLabel(n *ASTNodeOutput, fs *source.FileSet) string {
	parts := []string{n.Type}
	if n.Kind != "" {
		parts = append(parts, n.Kind)
	}
	if n.Text != "" {
		parts = append(parts, fmt.Sprintf("%q", n.Text))
	}
	if len(n.Fields) > 0 {
		keys := make([]string, 0, len(n.Fields))
		for k := range n.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, n.Fields[k]))
		}
		parts = append(parts, "{"+strings.Join(pairs, ", ")+"}")
	}
	parts = append(parts, "(span: "+formatSpan(n.Span, fs)+")")
	return strings.Join(parts, " ")
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if !validSpan(fs, span) {
		return fmt.Sprintf("%d..%d", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

type astDumper struct {
	b *ast.Builder
}

func (d astDumper) name(id source.StringID) string { return d.b.Name(id) }

func (d astDumper) item(id ast.ItemID) ASTNodeOutput {
	it := d.b.Items.Get(id)
	if it == nil {
		return ASTNodeOutput{Type: "Item", Text: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Item", Kind: it.Kind.String(), Span: it.Span, Text: d.name(it.Name)}
	n.set("visibility", it.Visibility.String())

	switch it.Kind {
	case ast.ItemFn:
		if fn, ok := d.b.Items.Fn(id); ok {
			d.fnInto(&n, fn)
		}
	case ast.ItemStruct:
		if st, ok := d.b.Items.Struct(id); ok {
			if len(st.Generics) > 0 {
				n.set("generics", d.names(st.Generics))
			}
			for _, f := range st.Fields {
				n.add(ASTNodeOutput{Type: "Field", Kind: d.typeString(f.Type), Span: f.Span, Text: d.name(f.Name)})
			}
		}
	case ast.ItemEnum:
		if en, ok := d.b.Items.Enum(id); ok {
			for _, v := range en.Variants {
				vn := ASTNodeOutput{Type: "Variant", Span: v.Span, Text: d.name(v.Name)}
				if v.Value.IsValid() {
					vn.add(d.expr(v.Value))
				}
				n.add(vn)
			}
		}
	case ast.ItemTypedef:
		if td, ok := d.b.Items.Typedef(id); ok {
			n.set("type", d.typeString(td.Type))
		}
	case ast.ItemMacro:
		if m, ok := d.b.Items.Macro(id); ok {
			n.set("delim", m.Delim.String())
			if len(m.Params) > 0 {
				n.set("params", d.names(m.Params))
			}
			body := make([]string, 0, len(m.Body))
			for _, tok := range m.Body {
				body = append(body, tok.Text)
			}
			n.set("body", strings.Join(body, " "))
		}
	case ast.ItemConst:
		if c, ok := d.b.Items.Const(id); ok {
			if c.Type.IsValid() {
				n.set("type", d.typeString(c.Type))
			}
			if c.Value.IsValid() {
				n.add(d.expr(c.Value))
			}
		}
	}
	return n
}

func (d astDumper) fnInto(n *ASTNodeOutput, fn *ast.FnDecl) {
	n.set("result", d.typeString(fn.Result))
	if len(fn.Generics) > 0 {
		n.set("generics", d.names(fn.Generics))
	}
	for _, p := range fn.Params {
		n.add(ASTNodeOutput{Type: "Param", Kind: d.typeString(p.Type), Span: p.Span, Text: d.name(p.Name)})
	}
	n.add(d.stmt(fn.Body))
}

func (d astDumper) names(ids []source.StringID) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.name(id))
	}
	return strings.Join(out, ", ")
}

func withRole(n ASTNodeOutput, role string) ASTNodeOutput {
	n.set("role", role)
	return n
}

func (d astDumper) stmt(id ast.StmtID) ASTNodeOutput {
	st := d.b.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "Stmt", Text: "<nil>"}
	}
	n := ASTNodeOutput{Span: st.Span}
	s := d.b.Stmts

	switch st.Kind {
	case ast.StmtBlock:
		n.Type = "Block"
		if blk, ok := s.Block(id); ok {
			for _, c := range blk.Stmts {
				n.add(d.stmt(c))
			}
		}
	case ast.StmtLet:
		n.Type = "Let"
		if let, ok := s.Let(id); ok {
			n.Kind = let.Keyword.String()
			if n.Kind == "" {
				n.Kind = "implicit"
			}
			n.Text = d.name(let.Name)
			if let.Type.IsValid() {
				n.set("type", d.typeString(let.Type))
			}
			if let.Mutable {
				n.set("mutable", true)
			}
			if let.Value.IsValid() {
				n.add(d.expr(let.Value))
			}
		}
	case ast.StmtExpr:
		n.Type = "ExprStmt"
		if es, ok := s.Expr(id); ok {
			n.add(d.expr(es.Expr))
		}
	case ast.StmtIf:
		n.Type = "If"
		if is, ok := s.If(id); ok {
			n.add(withRole(d.expr(is.Cond), "cond"), withRole(d.stmt(is.Then), "then"))
			if is.Else.IsValid() {
				n.add(withRole(d.stmt(is.Else), "else"))
			}
		}
	case ast.StmtWhile:
		n.Type = "While"
		if ws, ok := s.While(id); ok {
			d.label(&n, ws.Label)
			n.add(withRole(d.expr(ws.Cond), "cond"), d.stmt(ws.Body))
		}
	case ast.StmtFor:
		n.Type = "For"
		if fs, ok := s.For(id); ok {
			d.label(&n, fs.Label)
			if fs.Init.IsValid() {
				n.add(withRole(d.stmt(fs.Init), "init"))
			}
			if fs.Cond.IsValid() {
				n.add(withRole(d.expr(fs.Cond), "cond"))
			}
			if fs.Post.IsValid() {
				n.add(withRole(d.expr(fs.Post), "post"))
			}
			n.add(d.stmt(fs.Body))
		}
	case ast.StmtForIn:
		n.Type = "ForIn"
		if fi, ok := s.ForIn(id); ok {
			d.label(&n, fi.Label)
			n.Text = d.name(fi.Name)
			if fi.Type.IsValid() {
				n.Kind = d.typeString(fi.Type)
			}
			n.add(withRole(d.expr(fi.Iterable), "iterable"), d.stmt(fi.Body))
		}
	case ast.StmtSwitch:
		n.Type = "Switch"
		if sw, ok := s.Switch(id); ok {
			n.add(withRole(d.expr(sw.Value), "value"))
			for _, arm := range sw.Arms {
				n.add(d.arm(arm))
			}
		}
	case ast.StmtBreak, ast.StmtContinue:
		n.Type = "Break"
		if st.Kind == ast.StmtContinue {
			n.Type = "Continue"
		}
		if j, ok := s.Jump(id); ok {
			n.Text = d.name(j.Label)
		}
	case ast.StmtReturn:
		n.Type = "Return"
		if r, ok := s.Return(id); ok && r.Value.IsValid() {
			n.add(d.expr(r.Value))
		}
	case ast.StmtNestedFn:
		n.Type = "NestedFn"
		if fn, ok := s.NestedFn(id); ok {
			n.Text = d.name(fn.Name)
			d.fnInto(&n, fn)
		}
	default:
		n.Type = "Stmt"
	}
	return n
}

func (d astDumper) label(n *ASTNodeOutput, label source.StringID) {
	if label != source.NoStringID {
		n.set("label", d.name(label))
	}
}

func (d astDumper) arm(arm ast.SwitchArm) ASTNodeOutput {
	n := ASTNodeOutput{Type: "Case", Span: arm.Span}
	if arm.IsDefault {
		n.Type = "Default"
	}
	if arm.Break {
		n.set("break", true)
	}
	for _, p := range arm.Patterns {
		n.add(withRole(d.expr(p), "pattern"))
	}
	for _, st := range arm.Body {
		n.add(d.stmt(st))
	}
	return n
}

var litKindNames = [...]string{
	ast.ExprLitInt:    "int",
	ast.ExprLitFloat:  "float",
	ast.ExprLitString: "string",
	ast.ExprLitChar:   "char",
	ast.ExprLitTrue:   "bool",
	ast.ExprLitFalse:  "bool",
	ast.ExprLitNull:   "null",
}

func (d astDumper) expr(id ast.ExprID) ASTNodeOutput {
	ex := d.b.Exprs.Get(id)
	if ex == nil {
		return ASTNodeOutput{Type: "Expr", Text: "<nil>"}
	}
	n := ASTNodeOutput{Span: ex.Span}
	e := d.b.Exprs

	switch ex.Kind {
	case ast.ExprIdent:
		n.Type = "Ident"
		if data, ok := e.Ident(id); ok {
			n.Text = d.name(data.Name)
		}
	case ast.ExprLit:
		n.Type = "Literal"
		if data, ok := e.Literal(id); ok {
			if int(data.Kind) < len(litKindNames) {
				n.Kind = litKindNames[data.Kind]
			}
			n.Text = d.name(data.Value)
		}
	case ast.ExprBinary:
		n.Type = "Binary"
		if data, ok := e.Binary(id); ok {
			n.Kind = data.Op.String()
			n.add(d.expr(data.Left), d.expr(data.Right))
		}
	case ast.ExprUnary:
		n.Type = "Unary"
		if data, ok := e.Unary(id); ok {
			n.Kind = data.Op.String()
			if data.Op.IsPostfix() {
				n.set("postfix", true)
			}
			n.add(d.expr(data.Operand))
		}
	case ast.ExprCall:
		n.Type = "Call"
		if data, ok := e.Call(id); ok {
			n.add(withRole(d.expr(data.Target), "callee"))
			for _, a := range data.Args {
				n.add(d.expr(a))
			}
		}
	case ast.ExprIndex:
		n.Type = "Index"
		if data, ok := e.Index(id); ok {
			n.add(d.expr(data.Target), withRole(d.expr(data.Index), "index"))
		}
	case ast.ExprMember:
		n.Type = "Member"
		if data, ok := e.Member(id); ok {
			n.Kind = "."
			if data.Arrow {
				n.Kind = "->"
			}
			n.Text = d.name(data.Field)
			n.add(d.expr(data.Target))
		}
	case ast.ExprPath:
		n.Type = "Path"
		if data, ok := e.Path(id); ok {
			segs := make([]string, 0, len(data.Segments))
			for _, s := range data.Segments {
				segs = append(segs, d.name(s))
			}
			n.Text = strings.Join(segs, "::")
			if len(data.TypeArgs) > 0 {
				n.set("type_args", d.typeList(data.TypeArgs))
			}
		}
	case ast.ExprCast:
		n.Type = "Cast"
		if data, ok := e.Cast(id); ok {
			n.Kind = d.typeString(data.Type)
			n.add(d.expr(data.Value))
		}
	case ast.ExprTernary:
		n.Type = "Ternary"
		if data, ok := e.Ternary(id); ok {
			n.add(withRole(d.expr(data.Cond), "cond"), withRole(d.expr(data.Then), "then"), withRole(d.expr(data.Else), "else"))
		}
	case ast.ExprTuple:
		n.Type = "Tuple"
		if data, ok := e.Tuple(id); ok {
			for _, el := range data.Elements {
				n.add(d.expr(el))
			}
		}
	case ast.ExprArray:
		n.Type = "Array"
		if data, ok := e.Array(id); ok {
			for _, el := range data.Elements {
				n.add(d.expr(el))
			}
		}
	case ast.ExprStructInit:
		n.Type = "StructInit"
		if data, ok := e.StructInit(id); ok {
			n.Kind = d.typeString(data.Type)
			for _, f := range data.Fields {
				fn := ASTNodeOutput{Type: "FieldInit", Span: f.Span, Text: d.name(f.Name)}
				fn.add(d.expr(f.Value))
				n.add(fn)
			}
		}
	case ast.ExprMacroCall:
		n.Type = "MacroCall"
		if data, ok := e.MacroCall(id); ok {
			n.Text = d.name(data.Name)
			n.Kind = data.Delim.Open() + data.Delim.Close()
			for _, a := range data.Args {
				n.add(d.expr(a))
			}
		}
	default:
		n.Type = "Expr"
	}
	return n
}

// typeString renders a type the way it was written.
func (d astDumper) typeString(id ast.TypeID) string {
	ty := d.b.Types.Get(id)
	if ty == nil {
		return "void"
	}
	t := d.b.Types
	switch ty.Kind {
	case ast.TypePrimitive:
		if p, ok := t.Primitive(id); ok {
			return d.name(p.Name)
		}
	case ast.TypeIdent:
		if p, ok := t.Path(id); ok {
			segs := make([]string, 0, len(p.Segments))
			for _, s := range p.Segments {
				segs = append(segs, d.name(s))
			}
			return strings.Join(segs, "::")
		}
	case ast.TypePointer, ast.TypeReference:
		if el, ok := t.Elem(id); ok {
			suffix := "*"
			if ty.Kind == ast.TypeReference {
				suffix = "&"
			}
			return d.typeString(el.Elem) + suffix
		}
	case ast.TypeArray:
		if arr, ok := t.Array(id); ok {
			length := ""
			if arr.Len.IsValid() {
				length = d.exprText(arr.Len)
			}
			return d.typeString(arr.Elem) + "[" + length + "]"
		}
	case ast.TypeTuple:
		if tup, ok := t.Tuple(id); ok {
			return "(" + d.typeList(tup.Elems) + ")"
		}
	case ast.TypeGeneric:
		if g, ok := t.Generic(id); ok {
			return d.typeString(g.Base) + "<" + d.typeList(g.Args) + ">"
		}
	case ast.TypeFn:
		if fn, ok := t.Fn(id); ok {
			out := "fn(" + d.typeList(fn.Params) + ")"
			if fn.Result.IsValid() {
				out += " -> " + d.typeString(fn.Result)
			}
			return out
		}
	case ast.TypeAuto:
		return "auto"
	}
	return "?"
}

func (d astDumper) typeList(ids []ast.TypeID) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.typeString(id))
	}
	return strings.Join(out, ", ")
}

// exprText is enough for array lengths: a literal or a name.
func (d astDumper) exprText(id ast.ExprID) string {
	n := d.expr(id)
	if n.Text != "" {
		return n.Text
	}
	return "_"
}
