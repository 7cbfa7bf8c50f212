package sema

import (
	"testing"

	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/resolve"
	"cronac/internal/types"
)

// checkProgram resolves then type-checks prog, returning the interner (for
// type inspection), the Checker, and the accumulated diagnostics.
func checkProgram(t *testing.T, prog *ast.Program) (*types.Interner, *Checker, *diag.Bag) {
	t.Helper()
	in := types.NewInterner()
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}

	r := resolve.New(in, reporter)
	if !r.Resolve(prog) {
		t.Fatalf("resolve failed unexpectedly: %v", bag.Items())
	}

	c := New(in, reporter)
	c.Check(prog)
	return in, c, bag
}

func TestConstantByteAddition(t *testing.T) {
	assign := &ast.AssignExp{
		Dst: &ast.Ident{Name: "a"},
		Src: &ast.BinaryExp{Op: ast.BinPlus, LHS: &ast.IntLit{Value: 1}, RHS: &ast.IntLit{Value: 2}},
	}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "a", Type: &ast.ByteType{}},
			&ast.AssignStmt{Exp: assign},
		}},
	}}

	in, c, bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if !c.Passed() {
		t.Fatal("check should have passed")
	}
	got, ok := c.NodeType(assign.Src)
	if !ok {
		t.Fatal("no type recorded for 1 + 2")
	}
	if !in.MustLookup(got).IsByte() {
		t.Fatalf("got %s, want byte", in.Name(got))
	}
}

func TestByteIntPromotionInsertsByteToInt(t *testing.T) {
	aIdent := &ast.Ident{Name: "a"}
	bin := &ast.BinaryExp{Op: ast.BinPlus, LHS: aIdent, RHS: &ast.IntLit{Value: 300}}
	assign := &ast.AssignExp{Dst: &ast.Ident{Name: "b"}, Src: bin}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "a", Type: &ast.ByteType{}},
			&ast.VarDecl{Name: "b", Type: &ast.IntType{}},
			&ast.AssignStmt{Exp: assign},
		}},
	}}

	in, c, bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}

	wrapped, ok := bin.LHS.(*ast.ByteToInt)
	if !ok {
		t.Fatalf("expected a's operand slot to hold a ByteToInt wrapper, got %T", bin.LHS)
	}
	if wrapped.Child != aIdent {
		t.Fatal("ByteToInt wrapper does not wrap the original identifier")
	}
	got, _ := c.NodeType(bin)
	if !in.MustLookup(got).IsInt() {
		t.Fatalf("got %s, want int", in.Name(got))
	}
}

func TestArrayIndexResultIsElementType(t *testing.T) {
	arrIdent := &ast.Ident{Name: "arr"}
	idx := &ast.IndexExpr{Base: arrIdent, Offset: &ast.IntLit{Value: 0}}
	assign := &ast.AssignExp{Dst: &ast.Ident{Name: "x"}, Src: idx}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "arr", Type: &ast.ArrayType{Base: &ast.IntType{}, Length: 4}},
			&ast.VarDecl{Name: "x", Type: &ast.IntType{}},
			&ast.AssignStmt{Exp: assign},
		}},
	}}

	in, c, bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	got, _ := c.NodeType(idx)
	if !in.MustLookup(got).IsInt() {
		t.Fatalf("got %s, want int (the array's base type)", in.Name(got))
	}
}

func TestCallArgumentCountMismatch(t *testing.T) {
	call := &ast.CallExp{Callee: &ast.Ident{Name: "f"}}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{
			Name: "f", RetType: &ast.VoidType{},
			Formals: []*ast.Formal{{Name: "p", Type: &ast.IntType{}}},
		},
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.CallStmt{CallExp: call},
		}},
	}}

	_, _, bag := checkProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected an arg-count diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeArgCount {
		t.Fatalf("got code %v, want CodeArgCount", bag.Items()[0].Code)
	}
}

func TestSemanticErrorContinuesAndPoisonsEnclosing(t *testing.T) {
	// if (b + n) {} with b: bool, n: int — a BinOp type error on the
	// operands, then a second, independent diagnostic because the
	// (poisoned) condition is still not Bool.
	bIdent := &ast.Ident{Name: "b"}
	nIdent := &ast.Ident{Name: "n"}
	cond := &ast.BinaryExp{Op: ast.BinPlus, LHS: bIdent, RHS: nIdent}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "b", Type: &ast.BoolType{}},
			&ast.VarDecl{Name: "n", Type: &ast.IntType{}},
			&ast.IfStmt{Cond: cond, Body: nil},
		}},
	}}

	_, c, bag := checkProgram(t, prog)
	if c.Passed() {
		t.Fatal("expected type analysis to report failure")
	}
	if len(bag.Items()) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(bag.Items()), bag.Items())
	}
	if bag.Items()[0].Code != diag.CodeMathOpd {
		t.Fatalf("first diagnostic = %v, want CodeMathOpd", bag.Items()[0].Code)
	}
	if bag.Items()[1].Code != diag.CodeIfCond {
		t.Fatalf("second diagnostic = %v, want CodeIfCond", bag.Items()[1].Code)
	}
}

func TestReturnByteWhereIntExpectedWidens(t *testing.T) {
	retExp := &ast.Ident{Name: "a"}
	ret := &ast.ReturnStmt{Exp: retExp}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "f", RetType: &ast.IntType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "a", Type: &ast.ByteType{}},
			ret,
		}},
	}}

	_, _, bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if _, ok := ret.Exp.(*ast.ByteToInt); !ok {
		t.Fatalf("expected return expression to be widened, got %T", ret.Exp)
	}
}

func TestReturnVoidFunctionWithValueIsExtraRetValue(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "f", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.ReturnStmt{Exp: &ast.IntLit{Value: 1}},
		}},
	}}

	_, _, bag := checkProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected an extra-return-value diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeExtraRetValue {
		t.Fatalf("got code %v, want CodeExtraRetValue", bag.Items()[0].Code)
	}
}

func TestReturnNonVoidFunctionWithoutValueIsRetEmpty(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "f", RetType: &ast.IntType{}, Body: []ast.Stmt{
			&ast.ReturnStmt{},
		}},
	}}

	_, _, bag := checkProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected a missing-return-value diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeRetEmpty {
		t.Fatalf("got code %v, want CodeRetEmpty", bag.Items()[0].Code)
	}
}

func TestWriteArrayOfIntIsRejected(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "arr", Type: &ast.ArrayType{Base: &ast.IntType{}, Length: 4}},
			&ast.WriteStmt{Src: &ast.Ident{Name: "arr"}},
		}},
	}}

	_, _, bag := checkProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected a write-array diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeWriteArray {
		t.Fatalf("got code %v, want CodeWriteArray", bag.Items()[0].Code)
	}
}

func TestWriteByteArrayIsAllowed(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.VarDecl{Name: "s", Type: &ast.StringType{}},
			&ast.WriteStmt{Src: &ast.Ident{Name: "s"}},
		}},
	}}

	_, _, bag := checkProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}
