// Package resolve implements name analysis: binding every identifier use
// to the symbol it declares, and rejecting invalid or duplicate
// declarations before type analysis ever runs.
package resolve

import (
	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/source"
	"cronac/internal/symbols"
	"cronac/internal/types"
)

// Resolver walks a Program, declaring and binding symbols into a scope
// tree rooted at the module scope.
type Resolver struct {
	interner *types.Interner
	reporter diag.Reporter
	hasError bool
	module   *symbols.Scope
}

// New constructs a Resolver. interner supplies the TypeIDs symbols are
// declared with; reporter receives undeclared/multiply-declared/invalid
// type diagnostics.
func New(interner *types.Interner, reporter diag.Reporter) *Resolver {
	return &Resolver{
		interner: interner,
		reporter: reporter,
		module:   symbols.NewScope(nil),
	}
}

// Passed reports whether resolution completed without error.
func (r *Resolver) Passed() bool { return !r.hasError }

// Resolve binds every Ident in prog to a *symbols.Symbol and populates the
// Symbol field of every VarDecl, Formal, and FnDecl. It returns true on
// success; on failure the caller must not proceed to type analysis.
func (r *Resolver) Resolve(prog *ast.Program) bool {
	for _, d := range prog.Decls {
		r.resolveTopDecl(d)
	}
	return !r.hasError
}

func (r *Resolver) resolveTopDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		n.Symbol = r.declare(r.module, n.Name, n.Span, n.Type, symbols.KindVar)
	case *ast.FnDecl:
		r.resolveFnDecl(n)
	}
}

func (r *Resolver) resolveFnDecl(n *ast.FnDecl) {
	formals := make([]types.TypeID, 0, len(n.Formals))
	fnScope := symbols.NewScope(r.module)
	for _, f := range n.Formals {
		f.Symbol = r.declare(fnScope, f.Name, f.Span, f.Type, symbols.KindFormal)
		if f.Symbol != nil {
			formals = append(formals, f.Symbol.Type)
		} else {
			formals = append(formals, r.interner.Error())
		}
	}
	retType := r.typeExprToTypeID(n.RetType, n.Span)

	fnType := r.interner.Fn(formals, retType)
	n.Symbol = &symbols.Symbol{Name: n.Name, Type: fnType, Kind: symbols.KindFn}
	if !r.module.Declare(n.Symbol) {
		r.hasError = true
		diag.Fatal(r.reporter, diag.CodeMultiDecl, n.Span)
	}

	for _, s := range n.Body {
		r.resolveStmt(fnScope, s)
	}
}

// declare interns texpr, validates it as a variable type, and adds a new
// symbol to scope. It returns nil (after reporting) on any failure so
// callers can substitute an Error-typed placeholder.
func (r *Resolver) declare(scope *symbols.Scope, name string, span source.Span, texpr ast.TypeExpr, kind symbols.Kind) *symbols.Symbol {
	id := r.typeExprToTypeID(texpr, span)
	if t, ok := r.interner.Lookup(id); !ok || !t.ValidVarType() {
		r.hasError = true
		diag.Fatal(r.reporter, diag.CodeBadVarType, span)
		return nil
	}

	sym := &symbols.Symbol{Name: name, Type: id, Kind: kind}
	if !scope.Declare(sym) {
		r.hasError = true
		diag.Fatal(r.reporter, diag.CodeMultiDecl, span)
		return nil
	}
	return sym
}

func (r *Resolver) typeExprToTypeID(texpr ast.TypeExpr, span source.Span) types.TypeID {
	b := r.interner.Builtins()
	switch t := texpr.(type) {
	case *ast.VoidType:
		return b.Void
	case *ast.IntType:
		return b.Int
	case *ast.BoolType:
		return b.Bool
	case *ast.ByteType:
		return b.Byte
	case *ast.StringType:
		return r.interner.Array(b.Byte, 0)
	case *ast.ArrayType:
		base := r.typeExprToTypeID(t.Base, span)
		bt, ok := r.interner.Lookup(base)
		if !ok || !bt.IsBasic() || bt.IsVoid() {
			r.hasError = true
			diag.Fatal(r.reporter, diag.CodeBadVarType, span)
			return b.Error
		}
		return r.interner.Array(base, t.Length)
	default:
		return b.Error
	}
}

func (r *Resolver) resolveStmt(scope *symbols.Scope, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.VarDecl:
		n.Symbol = r.declare(scope, n.Name, n.Span, n.Type, symbols.KindVar)
	case *ast.AssignStmt:
		r.resolveExpr(scope, n.Exp)
	case *ast.ReadStmt:
		r.resolveExpr(scope, n.Dst)
	case *ast.WriteStmt:
		r.resolveExpr(scope, n.Src)
	case *ast.PostIncStmt:
		r.resolveExpr(scope, n.LVal)
	case *ast.PostDecStmt:
		r.resolveExpr(scope, n.LVal)
	case *ast.IfStmt:
		r.resolveExpr(scope, n.Cond)
		r.resolveBlock(scope, n.Body)
	case *ast.IfElseStmt:
		r.resolveExpr(scope, n.Cond)
		r.resolveBlock(scope, n.BodyTrue)
		r.resolveBlock(scope, n.BodyFalse)
	case *ast.WhileStmt:
		r.resolveExpr(scope, n.Cond)
		r.resolveBlock(scope, n.Body)
	case *ast.ReturnStmt:
		if n.Exp != nil {
			r.resolveExpr(scope, n.Exp)
		}
	case *ast.CallStmt:
		r.resolveExpr(scope, n.CallExp)
	}
}

func (r *Resolver) resolveBlock(parent *symbols.Scope, body []ast.Stmt) {
	inner := symbols.NewScope(parent)
	for _, s := range body {
		r.resolveStmt(inner, s)
	}
}

func (r *Resolver) resolveExpr(scope *symbols.Scope, e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		sym, ok := scope.Lookup(n.Name)
		if !ok {
			r.hasError = true
			diag.Fatal(r.reporter, diag.CodeUndeclID, n.Span)
			return
		}
		n.Symbol = sym
	case *ast.IndexExpr:
		r.resolveExpr(scope, n.Base)
		r.resolveExpr(scope, n.Offset)
	case *ast.CallExp:
		r.resolveExpr(scope, n.Callee)
		for _, a := range n.Args {
			r.resolveExpr(scope, a)
		}
	case *ast.BinaryExp:
		r.resolveExpr(scope, n.LHS)
		r.resolveExpr(scope, n.RHS)
	case *ast.UnaryExp:
		r.resolveExpr(scope, n.Exp)
	case *ast.AssignExp:
		r.resolveExpr(scope, n.Src)
		r.resolveExpr(scope, n.Dst)
	case *ast.ByteToInt:
		r.resolveExpr(scope, n.Child)
	case *ast.IntLit, *ast.StrLit, *ast.BoolLit, *ast.HavocExp:
		// no identifiers to bind
	}
}
