package sema

import (
	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/source"
	"cronac/internal/types"
)

// checkExprInPlace type-checks *e and overwrites it with the rewritten node
// when widening inserts a ByteToInt wrapper.
func (c *Checker) checkExprInPlace(e *ast.Expr) {
	*e = c.checkExpr(*e)
}

// checkExpr type-checks e post-order, returning the node that should
// replace e in its parent (itself, unless widening wraps it in a
// ByteToInt). The node's type is always recorded via setType before
// return, so callers use mustType on the returned node to read it back.
func (c *Checker) checkExpr(e ast.Expr) ast.Expr {
	b := c.builtins()

	switch n := e.(type) {
	case *ast.IntLit:
		if n.Value >= 0 && n.Value < 256 {
			c.setType(n, b.Byte)
		} else {
			c.setType(n, b.Int)
		}

	case *ast.StrLit:
		c.setType(n, c.interner.Array(b.Byte, 0))

	case *ast.BoolLit:
		c.setType(n, b.Bool)

	case *ast.HavocExp:
		c.setType(n, b.Bool)

	case *ast.Ident:
		c.setType(n, c.symbolType(n.Symbol))

	case *ast.IndexExpr:
		c.checkIdentUse(n.Base)
		c.checkExprInPlace(&n.Offset)
		c.setType(n, c.checkIndex(n))

	case *ast.CallExp:
		c.setType(n, c.checkCall(n))

	case *ast.BinaryExp:
		return c.checkBinary(n)

	case *ast.UnaryExp:
		return c.checkUnary(n)

	case *ast.AssignExp:
		return c.checkAssignExp(n)

	case *ast.ByteToInt:
		// Never produced by a parser; only appears here if a prior pass
		// already wrapped this subtree. Re-checking would double-widen,
		// so just trust the recorded type.
		c.setType(n, b.Int)

	default:
		c.setType(n, b.Error)
	}
	return e
}

func (c *Checker) checkIdentUse(n *ast.Ident) {
	c.setType(n, c.symbolType(n.Symbol))
}

func (c *Checker) checkIndex(n *ast.IndexExpr) types.TypeID {
	b := c.builtins()
	baseT, _ := c.interner.Lookup(c.mustType(n.Base))
	offT, _ := c.interner.Lookup(c.mustType(n.Offset))

	if baseT.IsError() || offT.IsError() {
		return b.Error
	}
	if !baseT.IsArray() {
		c.fail(diag.CodeArrayID, n.Base.Span)
		return b.Error
	}
	if !offT.IsInt() && !offT.IsByte() {
		c.fail(diag.CodeArrayIndex, spanOfE(n.Offset))
		return b.Error
	}
	return baseT.Elem
}

func (c *Checker) checkCall(n *ast.CallExp) types.TypeID {
	b := c.builtins()
	c.checkIdentUse(n.Callee)
	calleeT, _ := c.interner.Lookup(c.mustType(n.Callee))

	for i := range n.Args {
		c.checkExprInPlace(&n.Args[i])
	}

	if calleeT.IsError() {
		return b.Error
	}
	if !calleeT.IsFn() {
		c.fail(diag.CodeCallee, n.Callee.Span)
		return b.Error
	}
	if len(n.Args) != len(calleeT.Formals) {
		c.fail(diag.CodeArgCount, n.Span)
		return calleeT.Ret
	}

	mismatched := false
	for i, formal := range calleeT.Formals {
		argT, _ := c.interner.Lookup(c.mustType(n.Args[i]))
		formalT, _ := c.interner.Lookup(formal)
		if argT.IsError() {
			continue
		}
		if c.mustType(n.Args[i]) == formal {
			continue
		}
		if argT.IsByte() && formalT.IsInt() {
			n.Args[i] = c.widenToInt(n.Args[i])
			continue
		}
		mismatched = true
	}
	if mismatched {
		c.fail(diag.CodeArgMatch, n.Span)
	}
	return calleeT.Ret
}

func (c *Checker) checkBinary(n *ast.BinaryExp) ast.Expr {
	c.checkExprInPlace(&n.LHS)
	c.checkExprInPlace(&n.RHS)

	switch n.Op {
	case ast.BinPlus, ast.BinMinus, ast.BinTimes, ast.BinDivide:
		c.setType(n, c.checkArith(n))
	case ast.BinAnd, ast.BinOr:
		c.setType(n, c.checkLogic(n))
	case ast.BinEquals, ast.BinNotEquals:
		c.setType(n, c.checkEquality(n))
	default: // BinLess, BinLessEq, BinGreater, BinGreaterEq
		c.setType(n, c.checkRelational(n))
	}
	return n
}

func (c *Checker) checkArith(n *ast.BinaryExp) types.TypeID {
	b := c.builtins()
	lt, _ := c.interner.Lookup(c.mustType(n.LHS))
	rt, _ := c.interner.Lookup(c.mustType(n.RHS))

	if lt.IsError() || rt.IsError() {
		return b.Error
	}
	if !isIntOrByte(lt) || !isIntOrByte(rt) {
		c.fail(diag.CodeMathOpd, n.Span)
		return b.Error
	}
	if lt.IsInt() && rt.IsInt() {
		return b.Int
	}
	if lt.IsByte() && rt.IsByte() {
		return b.Byte
	}
	c.widenMixed(&n.LHS, lt, &n.RHS, rt)
	return b.Int
}

func (c *Checker) checkLogic(n *ast.BinaryExp) types.TypeID {
	b := c.builtins()
	lt, _ := c.interner.Lookup(c.mustType(n.LHS))
	rt, _ := c.interner.Lookup(c.mustType(n.RHS))

	if lt.IsError() || rt.IsError() {
		return b.Error
	}
	if !lt.IsBool() || !rt.IsBool() {
		c.fail(diag.CodeLogicOpd, n.Span)
		return b.Error
	}
	return b.Bool
}

func (c *Checker) checkEquality(n *ast.BinaryExp) types.TypeID {
	b := c.builtins()
	lt, _ := c.interner.Lookup(c.mustType(n.LHS))
	rt, _ := c.interner.Lookup(c.mustType(n.RHS))

	if lt.IsError() || rt.IsError() {
		return b.Error
	}
	if !isEqOperand(lt) || !isEqOperand(rt) {
		c.fail(diag.CodeEqOpd, n.Span)
		return b.Error
	}
	if lt.IsBool() != rt.IsBool() {
		c.fail(diag.CodeEqOpr, n.Span)
		return b.Error
	}
	if lt.IsBool() {
		return b.Bool
	}
	c.widenMixed(&n.LHS, lt, &n.RHS, rt)
	return b.Bool
}

func (c *Checker) checkRelational(n *ast.BinaryExp) types.TypeID {
	b := c.builtins()
	lt, _ := c.interner.Lookup(c.mustType(n.LHS))
	rt, _ := c.interner.Lookup(c.mustType(n.RHS))

	if lt.IsError() || rt.IsError() {
		return b.Error
	}
	if !isIntOrByte(lt) || !isIntOrByte(rt) {
		c.fail(diag.CodeRelOpd, n.Span)
		return b.Error
	}
	c.widenMixed(&n.LHS, lt, &n.RHS, rt)
	return b.Bool
}

// widenMixed widens whichever side is Byte when the other is Int, and
// does nothing when both sides already agree (both Byte or both Int) —
// matching width selection's rule that only a genuine Byte/Int mix needs
// a promotion to keep operand widths equal.
func (c *Checker) widenMixed(lhs *ast.Expr, lt types.Type, rhs *ast.Expr, rt types.Type) {
	switch {
	case lt.IsByte() && rt.IsInt():
		*lhs = c.widenToInt(*lhs)
	case rt.IsByte() && lt.IsInt():
		*rhs = c.widenToInt(*rhs)
	}
}

// widenToInt wraps e in a ByteToInt node typed Int. e must already be
// typed Byte; wrapping an Int node is never produced, per the
// widening-idempotence invariant.
func (c *Checker) widenToInt(e ast.Expr) ast.Expr {
	w := &ast.ByteToInt{Span: spanOfE(e), Child: e}
	c.setType(w, c.builtins().Int)
	return w
}

func (c *Checker) checkUnary(n *ast.UnaryExp) ast.Expr {
	b := c.builtins()
	c.checkExprInPlace(&n.Exp)
	t, _ := c.interner.Lookup(c.mustType(n.Exp))

	switch n.Op {
	case ast.UnNeg:
		switch {
		case t.IsError():
			c.setType(n, b.Error)
		case t.IsInt():
			c.setType(n, b.Int)
		case t.IsByte():
			n.Exp = c.widenToInt(n.Exp)
			c.setType(n, b.Int)
		default:
			c.fail(diag.CodeMathOpd, n.Span)
			c.setType(n, b.Error)
		}
	case ast.UnNot:
		switch {
		case t.IsError():
			c.setType(n, b.Error)
		case t.IsBool():
			c.setType(n, b.Bool)
		default:
			c.fail(diag.CodeLogicOpd, n.Span)
			c.setType(n, b.Error)
		}
	}
	return n
}

// checkAssignExp type-checks n and returns n itself; unlike other binary
// forms, an AssignExp is never replaced in its parent slot by widening —
// only its Src child is, in place.
func (c *Checker) checkAssignExp(n *ast.AssignExp) ast.Expr {
	b := c.builtins()
	c.checkIdentOrIndex(n.Dst)
	c.checkExprInPlace(&n.Src)

	dstT, _ := c.interner.Lookup(c.mustType(n.Dst))
	srcT, _ := c.interner.Lookup(c.mustType(n.Src))

	switch {
	case dstT.IsError() || srcT.IsError():
		c.setType(n, b.Error)
	case !isAssignOperand(dstT) || !isAssignOperand(srcT):
		c.fail(diag.CodeAssignOpd, n.Span)
		c.setType(n, b.Error)
	case c.mustType(n.Dst) == c.mustType(n.Src):
		c.setType(n, c.mustType(n.Dst))
	case dstT.IsArray() && srcT.IsArray() && dstT.Elem == srcT.Elem:
		c.setType(n, c.mustType(n.Dst))
	case dstT.IsInt() && srcT.IsByte():
		n.Src = c.widenToInt(n.Src)
		c.setType(n, b.Int)
	default:
		c.fail(diag.CodeAssignOpr, n.Span)
		c.setType(n, b.Error)
	}
	return n
}

// checkIdentOrIndex type-checks an LValue appearing as an AssignExp/
// assignment-context destination; LValues are never rewritten by widening.
func (c *Checker) checkIdentOrIndex(lv ast.LValue) {
	c.checkExpr(lv)
}

func isIntOrByte(t types.Type) bool { return t.IsInt() || t.IsByte() }

func isEqOperand(t types.Type) bool { return t.IsInt() || t.IsByte() || t.IsBool() }

func isAssignOperand(t types.Type) bool {
	return (t.IsBasic() && !t.IsVoid()) || t.IsArray()
}

func spanOfE(e ast.Expr) (s source.Span) {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Span
	case *ast.IndexExpr:
		return n.Span
	case *ast.CallExp:
		return n.Span
	case *ast.BinaryExp:
		return n.Span
	case *ast.UnaryExp:
		return n.Span
	case *ast.AssignExp:
		return n.Span
	case *ast.IntLit:
		return n.Span
	case *ast.StrLit:
		return n.Span
	case *ast.BoolLit:
		return n.Span
	case *ast.HavocExp:
		return n.Span
	case *ast.ByteToInt:
		return n.Span
	}
	return s
}
