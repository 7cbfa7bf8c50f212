package lower

import (
	"cronac/internal/ast"
	"cronac/internal/ir"
)

func (l *Lowerer) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		l.proc.GatherLocal(n.Symbol, l.width(n.Symbol.Type))

	case *ast.AssignStmt:
		l.flattenAssign(n.Exp)

	case *ast.ReadStmt:
		dst := l.flatten(n.Dst)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KRead, Dst: dst, SemType: l.typeOf(n.Dst)})

	case *ast.WriteStmt:
		src := l.flatten(n.Src)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KWrite, Src: src, SemType: l.typeOf(n.Src)})

	case *ast.PostIncStmt:
		x := l.flatten(n.LVal)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KBinOp, Dst: x, BinOp: ir.Add64, Src: x, Src2: ir.NewLit("1", 8)})

	case *ast.PostDecStmt:
		x := l.flatten(n.LVal)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KBinOp, Dst: x, BinOp: ir.Sub64, Src: x, Src2: ir.NewLit("1", 8)})

	case *ast.IfStmt:
		l.lowerIf(n)

	case *ast.IfElseStmt:
		l.lowerIfElse(n)

	case *ast.WhileStmt:
		l.lowerWhile(n)

	case *ast.ReturnStmt:
		l.lowerReturn(n)

	case *ast.CallStmt:
		l.flattenCall(n.CallExp)
	}
}

func (l *Lowerer) lowerBlock(body []ast.Stmt) {
	for _, s := range body {
		l.lowerStmt(s)
	}
}

// lowerIf lowers a single-armed conditional via the IFZ convention: jump
// past the body when the (flattened) condition is zero.
func (l *Lowerer) lowerIf(n *ast.IfStmt) {
	cond := l.flatten(n.Cond)
	exit := l.proc.MakeLabel()
	l.proc.AddQuad(&ir.Quad{Kind: ir.KJmpIf, Cond: cond, Target: exit})
	l.lowerBlock(n.Body)
	l.addLabeled(&ir.Quad{Kind: ir.KNop}, exit)
}

func (l *Lowerer) lowerIfElse(n *ast.IfElseStmt) {
	cond := l.flatten(n.Cond)
	elseLbl := l.proc.MakeLabel()
	l.proc.AddQuad(&ir.Quad{Kind: ir.KJmpIf, Cond: cond, Target: elseLbl})
	l.lowerBlock(n.BodyTrue)
	end := l.proc.MakeLabel()
	l.proc.AddQuad(&ir.Quad{Kind: ir.KJmp, Target: end})
	l.addLabeled(&ir.Quad{Kind: ir.KNop}, elseLbl)
	l.lowerBlock(n.BodyFalse)
	l.addLabeled(&ir.Quad{Kind: ir.KNop}, end)
}

func (l *Lowerer) lowerWhile(n *ast.WhileStmt) {
	head := l.proc.MakeLabel()
	l.addLabeled(&ir.Quad{Kind: ir.KNop}, head)
	cond := l.flatten(n.Cond)
	exit := l.proc.MakeLabel()
	l.proc.AddQuad(&ir.Quad{Kind: ir.KJmpIf, Cond: cond, Target: exit})
	l.lowerBlock(n.Body)
	l.proc.AddQuad(&ir.Quad{Kind: ir.KJmp, Target: head})
	l.addLabeled(&ir.Quad{Kind: ir.KNop}, exit)
}

// lowerReturn funnels every return through the procedure's single Leave
// quad: a value-carrying return sets the return slot first, then every
// return (bare or not) jumps to the shared leave label.
func (l *Lowerer) lowerReturn(n *ast.ReturnStmt) {
	if n.Exp != nil {
		v := l.flatten(n.Exp)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KSetRet, Src: v})
	}
	l.proc.AddQuad(&ir.Quad{Kind: ir.KJmp, Target: l.proc.LeaveLabel()})
}
