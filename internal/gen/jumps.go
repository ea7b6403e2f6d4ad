package gen

import (
	"fmt"

	"cinder/internal/ast"
	"cinder/internal/source"
)

// targetPlan describes how a loop or switch is emitted in the closure target.
type targetPlan struct {
	kind ast.StmtKind
	// label is the loop label without its sigil; "" leaves the loop unlabeled.
	label string
	// next labels the block wrapping a for body when a continue targets the loop.
	next string
	// exit labels the block wrapping a match when a break targets the switch.
	exit string

	hasContinue bool
	hasBreak    bool
	needsLabel  bool
}

type jumpRecord struct {
	stmt   ast.StmtID
	kind   ast.StmtKind
	target ast.StmtID
	// inner lists the breakables between the jump and its target.
	inner    []ast.StmtID
	crossing bool
}

// jumpPlan is computed once per file before emission: a labeled block can
// only be introduced once every jump into the construct is known.
type jumpPlan struct {
	targets map[ast.StmtID]*targetPlan
	jumps   map[ast.StmtID]*jumpRecord
	order   []ast.StmtID
	records []*jumpRecord
}

type breakable struct {
	stmt  ast.StmtID
	kind  ast.StmtKind
	label source.StringID
}

type jumpPlanner struct {
	b     *ast.Builder
	plan  *jumpPlan
	stack []breakable
}

func planJumps(b *ast.Builder, items []ast.ItemID) *jumpPlan {
	pl := &jumpPlanner{
		b: b,
		plan: &jumpPlan{
			targets: make(map[ast.StmtID]*targetPlan),
			jumps:   make(map[ast.StmtID]*jumpRecord),
		},
	}
	for _, id := range items {
		if fn, ok := b.Items.Fn(id); ok {
			pl.fnBody(fn.Body)
		}
	}
	pl.finish()
	return pl.plan
}

// fnBody walks a function body with a fresh stack; jumps never leave a function.
func (pl *jumpPlanner) fnBody(body ast.StmtID) {
	saved := pl.stack
	pl.stack = nil
	pl.stmt(body)
	pl.stack = saved
}

func (pl *jumpPlanner) stmts(ids []ast.StmtID) {
	for _, id := range ids {
		pl.stmt(id)
	}
}

func (pl *jumpPlanner) push(id ast.StmtID, kind ast.StmtKind, label source.StringID) {
	pl.stack = append(pl.stack, breakable{stmt: id, kind: kind, label: label})
	pl.plan.targets[id] = &targetPlan{kind: kind}
	pl.plan.order = append(pl.plan.order, id)
}

func (pl *jumpPlanner) pop() {
	pl.stack = pl.stack[:len(pl.stack)-1]
}

func (pl *jumpPlanner) stmt(id ast.StmtID) {
	if !id.IsValid() {
		return
	}
	stmts := pl.b.Stmts
	st := stmts.Get(id)
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := stmts.Block(id)
		pl.stmts(blk.Stmts)
	case ast.StmtIf:
		s, _ := stmts.If(id)
		pl.stmt(s.Then)
		pl.stmt(s.Else)
	case ast.StmtWhile:
		s, _ := stmts.While(id)
		pl.push(id, st.Kind, s.Label)
		pl.stmt(s.Body)
		pl.pop()
	case ast.StmtFor:
		s, _ := stmts.For(id)
		pl.push(id, st.Kind, s.Label)
		pl.stmt(s.Body)
		pl.pop()
	case ast.StmtForIn:
		s, _ := stmts.ForIn(id)
		pl.push(id, st.Kind, s.Label)
		pl.stmt(s.Body)
		pl.pop()
	case ast.StmtSwitch:
		s, _ := stmts.Switch(id)
		pl.push(id, st.Kind, source.NoStringID)
		for _, arm := range s.Arms {
			pl.stmts(arm.Body)
		}
		pl.pop()
	case ast.StmtBreak, ast.StmtContinue:
		j, _ := stmts.Jump(id)
		pl.resolve(id, st.Kind, j)
	case ast.StmtNestedFn:
		fn, _ := stmts.NestedFn(id)
		pl.fnBody(fn.Body)
	}
}

func (pl *jumpPlanner) resolve(id ast.StmtID, kind ast.StmtKind, j *ast.JumpStmt) {
	for i := len(pl.stack) - 1; i >= 0; i-- {
		e := pl.stack[i]
		if j.Label != source.NoStringID {
			if e.kind == ast.StmtSwitch || e.label != j.Label {
				continue
			}
		} else if kind == ast.StmtContinue && e.kind == ast.StmtSwitch {
			continue
		}
		rec := &jumpRecord{stmt: id, kind: kind, target: e.stmt}
		for _, in := range pl.stack[i+1:] {
			rec.inner = append(rec.inner, in.stmt)
		}
		pl.plan.jumps[id] = rec
		pl.plan.records = append(pl.plan.records, rec)

		t := pl.plan.targets[e.stmt]
		switch {
		case kind == ast.StmtContinue && e.kind == ast.StmtFor:
			t.hasContinue = true
		case kind == ast.StmtBreak && e.kind == ast.StmtSwitch:
			t.hasBreak = true
		}
		return
	}
}

// finish marks every jump that has to cross a generated labeled block and
// names the labels that are still missing.
func (pl *jumpPlanner) finish() {
	plan := pl.plan
	for _, rec := range plan.records {
		t := plan.targets[rec.target]
		if t.kind == ast.StmtSwitch {
			continue
		}
		if rec.kind == ast.StmtContinue && t.kind == ast.StmtFor && t.hasContinue {
			continue
		}
		crossing := rec.kind == ast.StmtBreak && t.kind == ast.StmtFor && t.hasContinue
		for _, in := range rec.inner {
			p := plan.targets[in]
			if (p.kind == ast.StmtFor && p.hasContinue) || (p.kind == ast.StmtSwitch && p.hasBreak) {
				crossing = true
			}
		}
		if crossing {
			rec.crossing = true
			t.needsLabel = true
		}
	}

	loops, nexts, exits := 0, 0, 0
	for _, id := range plan.order {
		t := plan.targets[id]
		if label, ok := pl.b.Stmts.LoopLabel(id); ok && label != source.NoStringID {
			t.label = pl.b.Name(label)
		} else if t.needsLabel {
			loops++
			t.label = fmt.Sprintf("loop_%d", loops)
		}
		if t.hasContinue {
			nexts++
			t.next = fmt.Sprintf("next_%d", nexts)
		}
		if t.hasBreak {
			exits++
			t.exit = fmt.Sprintf("switch_%d", exits)
		}
	}
}

func (p *jumpPlan) target(id ast.StmtID) *targetPlan {
	if t, ok := p.targets[id]; ok {
		return t
	}
	return &targetPlan{}
}
