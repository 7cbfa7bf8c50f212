package lower

import (
	"strconv"

	"cronac/internal/ast"
	"cronac/internal/ir"
)

// flatten lowers e to the single operand its final value ends up in,
// emitting whatever quads are needed to compute it.
func (l *Lowerer) flatten(e ast.Expr) ir.Operand {
	switch n := e.(type) {
	case *ast.IntLit:
		return l.flattenIntLit(n)

	case *ast.StrLit:
		return l.prog.MakeString(n.Text)

	case *ast.BoolLit:
		if n.Value {
			return ir.NewLit("1", 1)
		}
		return ir.NewLit("0", 1)

	case *ast.HavocExp:
		tmp := l.proc.MakeTmp(1)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KHavoc, Dst: tmp})
		return tmp

	case *ast.Ident:
		return l.symOperand(n.Symbol)

	case *ast.IndexExpr:
		return l.flattenIndex(n)

	case *ast.ByteToInt:
		child := l.flatten(n.Child)
		tmp := l.proc.MakeTmp(8)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KAssign, Dst: tmp, Src: child})
		return tmp

	case *ast.UnaryExp:
		return l.flattenUnary(n)

	case *ast.BinaryExp:
		return l.flattenBinary(n)

	case *ast.CallExp:
		return l.flattenCall(n)

	case *ast.AssignExp:
		return l.flattenAssign(n)
	}
	panic("lower: unhandled expression node")
}

func (l *Lowerer) flattenIntLit(n *ast.IntLit) ir.Operand {
	text := strconv.FormatInt(n.Value, 10)
	if l.interner.MustLookup(l.typeOf(n)).IsByte() {
		return ir.NewLit(text, 1)
	}
	return ir.NewLit(text, 8)
}

// flattenIndex lowers a[i]: a byte/bool element needs only the raw offset,
// a wider element needs the offset scaled by its width first.
func (l *Lowerer) flattenIndex(n *ast.IndexExpr) ir.Operand {
	base := l.symOperand(n.Base.Symbol)
	off := l.flatten(n.Offset)

	arrT := l.interner.MustLookup(l.typeOf(n.Base))
	elemWidth := l.interner.Size(arrT.Elem)

	if elemWidth == 1 {
		addr := l.proc.MakeAddr(1)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KIndex, Dst: addr, Src: base, Offset: off})
		return addr
	}

	scaled := l.proc.MakeTmp(8)
	l.proc.AddQuad(&ir.Quad{Kind: ir.KBinOp, Dst: scaled, BinOp: ir.Mult64, Src: off, Src2: ir.NewLit(strconv.FormatUint(uint64(elemWidth), 10), 8)})
	addr := l.proc.MakeAddr(8)
	l.proc.AddQuad(&ir.Quad{Kind: ir.KIndex, Dst: addr, Src: base, Offset: scaled})
	return addr
}

func (l *Lowerer) flattenUnary(n *ast.UnaryExp) ir.Operand {
	src := l.flatten(n.Exp)
	switch n.Op {
	case ast.UnNeg:
		tmp := l.proc.MakeTmp(8)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KUnaryOp, Dst: tmp, UnaryOp: ir.Neg64, Src: src})
		return tmp
	case ast.UnNot:
		tmp := l.proc.MakeTmp(1)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KUnaryOp, Dst: tmp, UnaryOp: ir.Not8, Src: src})
		return tmp
	}
	panic("lower: unknown unary operator")
}

// flattenBinary applies the width-selection rule: logical AND/OR are
// always 8-bit regardless of operand width; every other binary op picks
// the 64-bit opcode variant (and an 8-byte destination) only when both
// operands are already 8 bytes wide, otherwise the 8-bit variant.
func (l *Lowerer) flattenBinary(n *ast.BinaryExp) ir.Operand {
	lhs := l.flatten(n.LHS)
	rhs := l.flatten(n.RHS)

	switch n.Op {
	case ast.BinAnd:
		tmp := l.proc.MakeTmp(1)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KBinOp, Dst: tmp, BinOp: ir.And8, Src: lhs, Src2: rhs})
		return tmp
	case ast.BinOr:
		tmp := l.proc.MakeTmp(1)
		l.proc.AddQuad(&ir.Quad{Kind: ir.KBinOp, Dst: tmp, BinOp: ir.Or8, Src: lhs, Src2: rhs})
		return tmp
	}

	wide := lhs.Width() == 8 && rhs.Width() == 8
	width := uint32(1)
	if wide {
		width = 8
	}
	tmp := l.proc.MakeTmp(width)
	l.proc.AddQuad(&ir.Quad{Kind: ir.KBinOp, Dst: tmp, BinOp: binOpFor(n.Op, wide), Src: lhs, Src2: rhs})
	return tmp
}

func binOpFor(op ast.BinOpKind, wide bool) ir.BinOp {
	switch op {
	case ast.BinPlus:
		if wide {
			return ir.Add64
		}
		return ir.Add8
	case ast.BinMinus:
		if wide {
			return ir.Sub64
		}
		return ir.Sub8
	case ast.BinTimes:
		if wide {
			return ir.Mult64
		}
		return ir.Mult8
	case ast.BinDivide:
		if wide {
			return ir.Div64
		}
		return ir.Div8
	case ast.BinEquals:
		if wide {
			return ir.Eq64
		}
		return ir.Eq8
	case ast.BinNotEquals:
		if wide {
			return ir.Neq64
		}
		return ir.Neq8
	case ast.BinLess:
		if wide {
			return ir.Lt64
		}
		return ir.Lt8
	case ast.BinLessEq:
		if wide {
			return ir.Lte64
		}
		return ir.Lte8
	case ast.BinGreater:
		if wide {
			return ir.Gt64
		}
		return ir.Gt8
	case ast.BinGreaterEq:
		if wide {
			return ir.Gte64
		}
		return ir.Gte8
	}
	panic("lower: unknown binary operator")
}

// flattenCall lowers a call expression per the calling convention: flatten
// every argument in source order, then emit SetArg quads (1-indexed) only
// once every argument's value is in hand, so an argument expression with
// its own call never clobbers an earlier SetArg slot.
func (l *Lowerer) flattenCall(n *ast.CallExp) ir.Operand {
	args := make([]ir.Operand, len(n.Args))
	for i, a := range n.Args {
		args[i] = l.flatten(a)
	}
	for i, o := range args {
		l.proc.AddQuad(&ir.Quad{Kind: ir.KSetArg, Index: i + 1, Src: o})
	}
	l.proc.AddQuad(&ir.Quad{Kind: ir.KCall, Callee: n.Callee.Name})

	retT := l.typeOf(n)
	if l.interner.MustLookup(retT).IsVoid() {
		return nil
	}
	// The GetRet temp is always 8 bytes regardless of the callee's return
	// type — the calling convention returns through a full-width slot.
	tmp := l.proc.MakeTmp(8)
	l.proc.AddQuad(&ir.Quad{Kind: ir.KGetRet, Dst: tmp})
	return tmp
}

// flattenAssign lowers an assignment expression, evaluating the source
// before the destination (an array-index destination's address
// computation must not affect which value was read as the source).
func (l *Lowerer) flattenAssign(n *ast.AssignExp) ir.Operand {
	rhs := l.flatten(n.Src)
	lhs := l.flatten(n.Dst)
	l.proc.AddQuad(&ir.Quad{Kind: ir.KAssign, Dst: lhs, Src: rhs})
	return lhs
}
