// Package ast defines the syntax tree this front end type-checks and
// lowers: a closed set of declaration, statement, expression, and type
// nodes, each a concrete struct implementing a small marker interface so a
// type switch dispatches over a sealed set instead of virtual methods.
package ast

import (
	"cronac/internal/source"
	"cronac/internal/symbols"
)

// Program is the root of a single compiled file: an ordered list of
// top-level declarations (variables and functions).
type Program struct {
	Decls []Decl
}

// Decl is a top-level or local declaration.
type Decl interface{ isDecl() }

// VarDecl declares a single named variable of a given type.
type VarDecl struct {
	Span   source.Span
	Type   TypeExpr
	Name   string
	Symbol *symbols.Symbol // filled in by resolve
}

func (*VarDecl) isDecl() {}
func (*VarDecl) isStmt() {}

// Formal is one parameter in a function's formal list. It has the same
// fields as VarDecl but satisfies only Decl, never Stmt — formals are never
// statements.
type Formal struct {
	Span   source.Span
	Type   TypeExpr
	Name   string
	Symbol *symbols.Symbol
}

func (*Formal) isDecl() {}

// FnDecl declares a procedure: a name, return type, formal list, and body.
type FnDecl struct {
	Span    source.Span
	Name    string
	RetType TypeExpr
	Formals []*Formal
	Body    []Stmt
	Symbol  *symbols.Symbol
}

func (*FnDecl) isDecl() {}

// TypeExpr is a type annotation as written in source, before it is
// resolved to a types.TypeID by type analysis.
type TypeExpr interface{ isTypeExpr() }

type VoidType struct{ Span source.Span }
type IntType struct{ Span source.Span }
type BoolType struct{ Span source.Span }
type ByteType struct{ Span source.Span }
type StringType struct{ Span source.Span }
type ArrayType struct {
	Span   source.Span
	Base   TypeExpr
	Length uint32
}

func (*VoidType) isTypeExpr()   {}
func (*IntType) isTypeExpr()    {}
func (*BoolType) isTypeExpr()   {}
func (*ByteType) isTypeExpr()   {}
func (*StringType) isTypeExpr() {}
func (*ArrayType) isTypeExpr()  {}

// Stmt is a statement within a function body.
type Stmt interface{ isStmt() }

// AssignStmt performs an assignment as a standalone statement (the source
// project's grammar makes assignment a statement form, not a general
// expression, even though AssignExp itself is typed as an expression for
// typing purposes).
type AssignStmt struct {
	Span source.Span
	Exp  *AssignExp
}

// ReadStmt reads external input into an lvalue.
type ReadStmt struct {
	Span source.Span
	Dst  LValue
}

// WriteStmt writes an expression's value to output.
type WriteStmt struct {
	Span source.Span
	Src  Expr
}

// PostIncStmt increments an lvalue by one in place.
type PostIncStmt struct {
	Span source.Span
	LVal LValue
}

// PostDecStmt decrements an lvalue by one in place.
type PostDecStmt struct {
	Span source.Span
	LVal LValue
}

// IfStmt is a single-armed conditional.
type IfStmt struct {
	Span source.Span
	Cond Expr
	Body []Stmt
}

// IfElseStmt is a two-armed conditional.
type IfElseStmt struct {
	Span      source.Span
	Cond      Expr
	BodyTrue  []Stmt
	BodyFalse []Stmt
}

// WhileStmt is a pre-tested loop.
type WhileStmt struct {
	Span source.Span
	Cond Expr
	Body []Stmt
}

// ReturnStmt returns from the enclosing function, optionally with a value.
type ReturnStmt struct {
	Span source.Span
	Exp  Expr // nil for a bare `return;`
}

// CallStmt invokes a function for its side effects, discarding any result.
type CallStmt struct {
	Span    source.Span
	CallExp *CallExp
}

func (*AssignStmt) isStmt()  {}
func (*ReadStmt) isStmt()    {}
func (*WriteStmt) isStmt()   {}
func (*PostIncStmt) isStmt() {}
func (*PostDecStmt) isStmt() {}
func (*IfStmt) isStmt()      {}
func (*IfElseStmt) isStmt()  {}
func (*WhileStmt) isStmt()   {}
func (*ReturnStmt) isStmt()  {}
func (*CallStmt) isStmt()    {}

// Expr is any expression node.
type Expr interface{ isExpr() }

// LValue is the subset of Expr that can appear on an assignment's left
// side or be passed to read/post-inc/post-dec: an Ident or an Index.
type LValue interface {
	Expr
	isLValue()
}

// Ident references a declared name.
type Ident struct {
	Span   source.Span
	Name   string
	Symbol *symbols.Symbol // filled in by resolve
}

// IndexExpr is an array element reference `base[offset]`.
type IndexExpr struct {
	Span   source.Span
	Base   *Ident
	Offset Expr
}

func (*Ident) isExpr()       {}
func (*Ident) isLValue()     {}
func (*IndexExpr) isExpr()   {}
func (*IndexExpr) isLValue() {}

// CallExp invokes a named function with an ordered argument list.
type CallExp struct {
	Span   source.Span
	Callee *Ident
	Args   []Expr
}

func (*CallExp) isExpr() {}

// BinOpKind enumerates the binary operators the grammar supports, spanning
// arithmetic, relational, equality, and logical categories; the type
// checker, not the parser, decides which category a given use belongs to.
type BinOpKind uint8

const (
	BinPlus BinOpKind = iota
	BinMinus
	BinTimes
	BinDivide
	BinAnd
	BinOr
	BinEquals
	BinNotEquals
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
)

// BinaryExp is any two-operand operator expression.
type BinaryExp struct {
	Span source.Span
	Op   BinOpKind
	LHS  Expr
	RHS  Expr
}

func (*BinaryExp) isExpr() {}

// UnOpKind enumerates the unary operators.
type UnOpKind uint8

const (
	UnNeg UnOpKind = iota
	UnNot
)

// UnaryExp is a single-operand operator expression.
type UnaryExp struct {
	Span source.Span
	Op   UnOpKind
	Exp  Expr
}

func (*UnaryExp) isExpr() {}

// AssignExp is an assignment used as an expression: evaluating it both
// performs the store and yields the stored value's type. The language's
// grammar only ever places it inside an AssignStmt, but type analysis
// treats it as an ordinary typed expression.
type AssignExp struct {
	Span source.Span
	Dst  LValue
	Src  Expr
}

func (*AssignExp) isExpr() {}

// IntLit is an integer literal; the type checker assigns it Byte or Int
// depending on its value.
type IntLit struct {
	Span  source.Span
	Value int64
}

func (*IntLit) isExpr() {}

// StrLit is a string literal, interned into the IR program's string pool
// during lowering.
type StrLit struct {
	Span source.Span
	Text string
}

func (*StrLit) isExpr() {}

// BoolLit is a `true` or `false` literal.
type BoolLit struct {
	Span  source.Span
	Value bool
}

func (*BoolLit) isExpr() {}

// HavocExp yields a nondeterministic boolean; used in testing the
// compiler's own control-flow lowering.
type HavocExp struct{ Span source.Span }

func (*HavocExp) isExpr() {}

// ByteToInt wraps a Byte-typed expression the type checker has decided to
// widen to Int. It is never produced by the parser — only inserted by type
// analysis — and must never wrap a node that is already Int (widening is
// not idempotent; see the checker's invariant).
type ByteToInt struct {
	Span  source.Span
	Child Expr
}

func (*ByteToInt) isExpr() {}
