// Package diagfmt renders the two textual surfaces outside the core
// pipeline: a canonical unparse of the AST (with or without resolved-symbol
// annotations) and human-readable diagnostic output.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"cronac/internal/ast"
)

// UnparseOpts configures Unparse.
type UnparseOpts struct {
	// WithSymbols annotates every identifier that carries a resolved
	// symbol with that symbol's name in parentheses (`x(x)`), for the `-n`
	// output once name analysis has run; the symbol's type is not printed.
	// Leave false for a bare `-u` unparse straight off
	// the parser, before any identifier carries a symbol.
	WithSymbols bool
}

// Unparse writes a canonical rendering of prog to w: one declaration per
// top-level entry, tab-indented bodies, semicolon-terminated statements —
// matching the source project's own unparse walk closely enough that a
// human reading either output recognizes the same program.
func Unparse(w io.Writer, prog *ast.Program, opts UnparseOpts) {
	u := &unparser{w: w, withSymbols: opts.WithSymbols}
	for _, d := range prog.Decls {
		u.decl(d, 0)
	}
}

type unparser struct {
	w           io.Writer
	withSymbols bool
}

func (u *unparser) indent(n int) {
	fmt.Fprint(u.w, strings.Repeat("\t", n))
}

func (u *unparser) decl(d ast.Decl, ind int) {
	switch n := d.(type) {
	case *ast.VarDecl:
		u.indent(ind)
		fmt.Fprintf(u.w, "%s:%s;\n", n.Name, typeExprString(n.Type))

	case *ast.FnDecl:
		u.indent(ind)
		fmt.Fprintf(u.w, "%s:%s(", n.Name, typeExprString(n.RetType))
		for i, f := range n.Formals {
			if i > 0 {
				fmt.Fprint(u.w, ", ")
			}
			fmt.Fprintf(u.w, "%s:%s", f.Name, typeExprString(f.Type))
		}
		fmt.Fprint(u.w, "){\n")
		for _, s := range n.Body {
			u.stmt(s, ind+1)
		}
		u.indent(ind)
		fmt.Fprint(u.w, "}\n")
	}
}

func (u *unparser) stmt(s ast.Stmt, ind int) {
	switch n := s.(type) {
	case *ast.VarDecl:
		u.decl(n, ind)

	case *ast.AssignStmt:
		u.indent(ind)
		u.exprNested(n.Exp.Dst)
		fmt.Fprint(u.w, " = ")
		u.exprNested(n.Exp.Src)
		fmt.Fprint(u.w, ";\n")

	case *ast.ReadStmt:
		u.indent(ind)
		fmt.Fprint(u.w, "read ")
		u.expr(n.Dst)
		fmt.Fprint(u.w, ";\n")

	case *ast.WriteStmt:
		u.indent(ind)
		fmt.Fprint(u.w, "write ")
		u.expr(n.Src)
		fmt.Fprint(u.w, ";\n")

	case *ast.PostIncStmt:
		u.indent(ind)
		u.expr(n.LVal)
		fmt.Fprint(u.w, "++;\n")

	case *ast.PostDecStmt:
		u.indent(ind)
		u.expr(n.LVal)
		fmt.Fprint(u.w, "--;\n")

	case *ast.IfStmt:
		u.indent(ind)
		fmt.Fprint(u.w, "if (")
		u.expr(n.Cond)
		fmt.Fprint(u.w, "){\n")
		for _, s2 := range n.Body {
			u.stmt(s2, ind+1)
		}
		u.indent(ind)
		fmt.Fprint(u.w, "}\n")

	case *ast.IfElseStmt:
		u.indent(ind)
		fmt.Fprint(u.w, "if (")
		u.expr(n.Cond)
		fmt.Fprint(u.w, "){\n")
		for _, s2 := range n.BodyTrue {
			u.stmt(s2, ind+1)
		}
		u.indent(ind)
		fmt.Fprint(u.w, "} else {\n")
		for _, s2 := range n.BodyFalse {
			u.stmt(s2, ind+1)
		}
		u.indent(ind)
		fmt.Fprint(u.w, "}\n")

	case *ast.WhileStmt:
		u.indent(ind)
		fmt.Fprint(u.w, "while (")
		u.expr(n.Cond)
		fmt.Fprint(u.w, "){\n")
		for _, s2 := range n.Body {
			u.stmt(s2, ind+1)
		}
		u.indent(ind)
		fmt.Fprint(u.w, "}\n")

	case *ast.ReturnStmt:
		u.indent(ind)
		fmt.Fprint(u.w, "return")
		if n.Exp != nil {
			fmt.Fprint(u.w, " ")
			u.expr(n.Exp)
		}
		fmt.Fprint(u.w, ";\n")

	case *ast.CallStmt:
		u.indent(ind)
		u.expr(n.CallExp)
		fmt.Fprint(u.w, ";\n")
	}
}

// expr renders e bare: the form every statement-level context uses (a
// read/write operand, an if/while condition, a return value, a call
// argument, an index offset).
func (u *unparser) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.Ident:
		fmt.Fprint(u.w, n.Name)
		if u.withSymbols && n.Symbol != nil {
			fmt.Fprintf(u.w, "(%s)", n.Symbol.Name)
		}

	case *ast.IndexExpr:
		u.expr(n.Base)
		fmt.Fprint(u.w, "[")
		u.expr(n.Offset)
		fmt.Fprint(u.w, "]")

	case *ast.CallExp:
		u.expr(n.Callee)
		fmt.Fprint(u.w, "(")
		for i, a := range n.Args {
			if i > 0 {
				fmt.Fprint(u.w, ", ")
			}
			u.expr(a)
		}
		fmt.Fprint(u.w, ")")

	case *ast.BinaryExp:
		u.exprNested(n.LHS)
		fmt.Fprintf(u.w, " %s ", binOpToken(n.Op))
		u.exprNested(n.RHS)

	case *ast.UnaryExp:
		fmt.Fprint(u.w, unOpToken(n.Op))
		u.exprNested(n.Exp)

	case *ast.AssignExp:
		u.exprNested(n.Dst)
		fmt.Fprint(u.w, " = ")
		u.exprNested(n.Src)

	case *ast.IntLit:
		fmt.Fprintf(u.w, "%d", n.Value)

	case *ast.StrLit:
		fmt.Fprint(u.w, n.Text)

	case *ast.BoolLit:
		if n.Value {
			fmt.Fprint(u.w, "true")
		} else {
			fmt.Fprint(u.w, "false")
		}

	case *ast.HavocExp:
		fmt.Fprint(u.w, "havoc")

	case *ast.ByteToInt:
		// Never written by a parser; transparent in unparse output since
		// it carries no surface syntax of its own.
		u.expr(n.Child)
	}
}

// exprNested renders e the way a BinaryExp/UnaryExp/AssignExp operand
// does: an identifier, index, or call prints bare (already
// self-delimiting), anything else is parenthesized so the rendering stays
// unambiguous without reproducing the grammar's full precedence table.
func (u *unparser) exprNested(e ast.Expr) {
	switch e.(type) {
	case *ast.Ident, *ast.IndexExpr, *ast.CallExp:
		u.expr(e)
	default:
		fmt.Fprint(u.w, "(")
		u.expr(e)
		fmt.Fprint(u.w, ")")
	}
}

func binOpToken(op ast.BinOpKind) string {
	switch op {
	case ast.BinPlus:
		return "+"
	case ast.BinMinus:
		return "-"
	case ast.BinTimes:
		return "*"
	case ast.BinDivide:
		return "/"
	case ast.BinAnd:
		return "&&"
	case ast.BinOr:
		return "||"
	case ast.BinEquals:
		return "=="
	case ast.BinNotEquals:
		return "!="
	case ast.BinLess:
		return "<"
	case ast.BinLessEq:
		return "<="
	case ast.BinGreater:
		return ">"
	case ast.BinGreaterEq:
		return ">="
	}
	return "?"
}

func unOpToken(op ast.UnOpKind) string {
	if op == ast.UnNeg {
		return "-"
	}
	return "!"
}

func typeExprString(te ast.TypeExpr) string {
	switch n := te.(type) {
	case *ast.VoidType:
		return "void"
	case *ast.IntType:
		return "int"
	case *ast.BoolType:
		return "bool"
	case *ast.ByteType:
		return "byte"
	case *ast.StringType:
		return "string"
	case *ast.ArrayType:
		return fmt.Sprintf("%s array[%d]", typeExprString(n.Base), n.Length)
	}
	return "?"
}
