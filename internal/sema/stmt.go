package sema

import (
	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/source"
	"cronac/internal/types"
)

// checkStmt type-checks s and returns the node to keep in its parent's
// slot (identity-preserving for every statement kind; statements, unlike
// expressions, are never themselves wrapped).
func (c *Checker) checkStmt(s ast.Stmt) ast.Stmt {
	b := c.builtins()

	switch n := s.(type) {
	case *ast.VarDecl:
		c.setType(n, c.symbolType(n.Symbol))

	case *ast.AssignStmt:
		c.checkAssignExp(n.Exp)
		c.setType(n, c.mustType(n.Exp))

	case *ast.ReadStmt:
		c.checkExpr(n.Dst)
		dst, _ := c.interner.Lookup(c.mustType(n.Dst))
		switch {
		case dst.IsError():
			// poisoned; no further diagnostic
		case dst.IsFn():
			c.fail(diag.CodeReadFn, spanOfE(n.Dst))
		case dst.IsInt() || dst.IsBool() || (dst.IsArray() && c.elemIsByte(dst)):
			// ok
		default:
			c.fail(diag.CodeReadOther, spanOfE(n.Dst))
		}
		c.setType(n, b.Void)

	case *ast.WriteStmt:
		c.checkExprInPlace(&n.Src)
		src, _ := c.interner.Lookup(c.mustType(n.Src))
		switch {
		case src.IsError():
			// poisoned; no further diagnostic
		case src.IsFn():
			c.fail(diag.CodeWriteFn, spanOfE(n.Src))
		case src.IsVoid():
			c.fail(diag.CodeWriteVoid, spanOfE(n.Src))
		case src.IsArray() && !c.elemIsByte(src):
			c.fail(diag.CodeWriteArray, spanOfE(n.Src))
		}
		c.setType(n, b.Void)

	case *ast.PostIncStmt:
		c.checkExpr(n.LVal)
		c.setType(n, b.Void)

	case *ast.PostDecStmt:
		c.checkExpr(n.LVal)
		c.setType(n, b.Void)

	case *ast.IfStmt:
		c.checkCond(&n.Cond, diag.CodeIfCond)
		c.checkBlock(n.Body)
		c.setType(n, b.Void)

	case *ast.IfElseStmt:
		c.checkCond(&n.Cond, diag.CodeIfCond)
		c.checkBlock(n.BodyTrue)
		c.checkBlock(n.BodyFalse)
		c.setType(n, b.Void)

	case *ast.WhileStmt:
		c.checkCond(&n.Cond, diag.CodeWhileCond)
		c.checkBlock(n.Body)
		c.setType(n, b.Void)

	case *ast.ReturnStmt:
		c.checkReturn(n)
		c.setType(n, b.Void)

	case *ast.CallStmt:
		c.checkExpr(n.CallExp)
		c.setType(n, c.mustType(n.CallExp))
	}
	return s
}

func (c *Checker) checkBlock(body []ast.Stmt) {
	for i := range body {
		body[i] = c.checkStmt(body[i])
	}
}

// checkCond type-checks *cond in place and reports code if it is not Bool.
// Unlike most checks, this one is NOT suppressed when cond is already
// poisoned: an if/while condition's own type is a property of the
// condition position itself, not a cascade from the operand error that
// produced Error, so both diagnostics surface (see the corpus's
// non-bool-condition-over-a-bad-operand scenario).
func (c *Checker) checkCond(cond *ast.Expr, code diag.Code) {
	c.checkExprInPlace(cond)
	t, _ := c.interner.Lookup(c.mustType(*cond))
	if !t.IsBool() {
		c.fail(code, spanOfE(*cond))
	}
}

func (c *Checker) checkReturn(n *ast.ReturnStmt) {
	retType := c.builtins().Void
	if c.fn != nil {
		if fnT, ok := c.interner.Lookup(c.symbolType(c.fn.Symbol)); ok && fnT.IsFn() {
			retType = fnT.Ret
		}
	}
	retT, _ := c.interner.Lookup(retType)

	if n.Exp == nil {
		if !retT.IsVoid() && !retT.IsError() {
			c.fail(diag.CodeRetEmpty, n.Span)
		}
		return
	}

	c.checkExprInPlace(&n.Exp)
	if retT.IsVoid() {
		c.fail(diag.CodeExtraRetValue, n.Span)
		return
	}

	expT, _ := c.interner.Lookup(c.mustType(n.Exp))
	if expT.IsError() || retT.IsError() {
		return
	}
	if expT.IsByte() && retT.IsInt() {
		n.Exp = c.widenToInt(n.Exp)
		return
	}
	if c.mustType(n.Exp) != retType {
		c.fail(diag.CodeRetWrong, n.Span)
	}
}

func (c *Checker) elemIsByte(arr types.Type) bool {
	elem, ok := c.interner.Lookup(arr.Elem)
	return ok && elem.IsByte()
}

// mustType returns the previously recorded type for n, or the poisoned
// Error type if n has none — an internal invariant violation this front
// end tolerates by poisoning rather than panicking, since it can only
// arise from a bug in an earlier checkExpr call within this same pass.
func (c *Checker) mustType(n any) types.TypeID {
	if t, ok := c.nodeType[n]; ok {
		return t
	}
	return c.builtins().Error
}

func (c *Checker) fail(code diag.Code, span source.Span) {
	c.hasError = true
	diag.Fatal(c.reporter, code, span)
}
