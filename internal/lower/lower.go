// Package lower translates a checked AST into the procedure-structured
// linear IR defined by package ir: expression flattening into quad
// sequences, statement lowering via the IFZ branch convention, and the
// program's calling convention.
package lower

import (
	"cronac/internal/ast"
	"cronac/internal/ir"
	"cronac/internal/sema"
	"cronac/internal/symbols"
	"cronac/internal/types"
)

// Lowerer walks a type-checked Program and builds its ir.Program. It must
// be constructed with the same interner and Checker used to check the
// program being lowered — it depends on the checker's node→type side map
// to pick opcode widths and widen literals.
type Lowerer struct {
	interner *types.Interner
	checker  *sema.Checker
	prog     *ir.Program
	proc     *ir.Procedure
}

// New constructs a Lowerer bound to interner and a completed Checker.
func New(interner *types.Interner, checker *sema.Checker) *Lowerer {
	return &Lowerer{interner: interner, checker: checker}
}

// Lower produces the IR program for prog, which must already have passed
// type analysis (checker.Passed()).
func (l *Lowerer) Lower(prog *ast.Program) *ir.Program {
	l.prog = ir.NewProgram()
	for _, d := range prog.Decls {
		l.lowerTopDecl(d)
	}
	return l.prog
}

func (l *Lowerer) lowerTopDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		l.prog.GatherGlobal(n.Symbol, l.width(n.Symbol.Type))
	case *ast.FnDecl:
		l.lowerFnDecl(n)
	}
}

func (l *Lowerer) lowerFnDecl(n *ast.FnDecl) {
	proc := l.prog.MakeProc(n.Name)
	prevProc := l.proc
	l.proc = proc

	for i, f := range n.Formals {
		symOpd := proc.GatherFormal(f.Symbol, l.width(f.Symbol.Type))
		proc.AddQuad(&ir.Quad{Kind: ir.KGetArg, Index: i + 1, Dst: symOpd})
	}
	for _, s := range n.Body {
		l.lowerStmt(s)
	}

	l.proc = prevProc
}

// width returns a type's natural operand width (1 for Byte/Bool, 8 for
// Int and Void, elem-width*length for an array, 0 for a function or the
// Error type).
func (l *Lowerer) width(id types.TypeID) uint32 { return l.interner.Size(id) }

// typeOf returns the checked type recorded for n, panicking if analysis
// never assigned one — an internal invariant failure, since lowering only
// ever runs over a Program that has already passed Check.
func (l *Lowerer) typeOf(n any) types.TypeID {
	t, ok := l.checker.NodeType(n)
	if !ok {
		panic("lower: node has no recorded type")
	}
	return t
}

func (l *Lowerer) symOperand(sym *symbols.Symbol) ir.Operand {
	o, ok := l.proc.SymOperand(sym)
	if !ok {
		panic("lower: symbol not visible from this procedure")
	}
	return o
}

func (l *Lowerer) addLabeled(q *ir.Quad, lbl *ir.Label) {
	q.AddLabel(lbl)
	l.proc.AddQuad(q)
}
