package resolve

import (
	"testing"

	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/types"
)

func resolveProgram(t *testing.T, prog *ast.Program) (*Resolver, *diag.Bag) {
	t.Helper()
	in := types.NewInterner()
	bag := diag.NewBag()
	r := New(in, diag.BagReporter{Bag: bag})
	r.Resolve(prog)
	return r, bag
}

func TestResolveBindsIdentToDecl(t *testing.T) {
	aDecl := &ast.VarDecl{Name: "a", Type: &ast.IntType{}}
	use := &ast.Ident{Name: "a"}
	prog := &ast.Program{Decls: []ast.Decl{
		aDecl,
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.WriteStmt{Src: use},
		}},
	}}

	r, bag := resolveProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if !r.Passed() {
		t.Fatal("resolve should have passed")
	}
	if use.Symbol != aDecl.Symbol {
		t.Fatalf("Ident %q not bound to its declaration", "a")
	}
}

func TestResolveUndeclaredIdent(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{Name: "main", RetType: &ast.VoidType{}, Body: []ast.Stmt{
			&ast.WriteStmt{Src: &ast.Ident{Name: "missing"}},
		}},
	}}

	_, bag := resolveProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected an undeclared-identifier diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeUndeclID {
		t.Fatalf("got code %v, want CodeUndeclID", bag.Items()[0].Code)
	}
}

func TestResolveMultiplyDeclared(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.VarDecl{Name: "a", Type: &ast.IntType{}},
		&ast.VarDecl{Name: "a", Type: &ast.IntType{}},
	}}

	_, bag := resolveProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected a multiply-declared diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeMultiDecl {
		t.Fatalf("got code %v, want CodeMultiDecl", bag.Items()[0].Code)
	}
}

func TestResolveRejectsVoidVariable(t *testing.T) {
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.VarDecl{Name: "a", Type: &ast.VoidType{}},
	}}

	_, bag := resolveProgram(t, prog)
	if !bag.HasErrors() {
		t.Fatal("expected a bad-var-type diagnostic")
	}
	if bag.Items()[0].Code != diag.CodeBadVarType {
		t.Fatalf("got code %v, want CodeBadVarType", bag.Items()[0].Code)
	}
}

func TestResolveFormalScopedToFunction(t *testing.T) {
	formal := &ast.Formal{Name: "p", Type: &ast.IntType{}}
	use := &ast.Ident{Name: "p"}
	prog := &ast.Program{Decls: []ast.Decl{
		&ast.FnDecl{
			Name:    "f",
			RetType: &ast.VoidType{},
			Formals: []*ast.Formal{formal},
			Body:    []ast.Stmt{&ast.WriteStmt{Src: use}},
		},
	}}

	_, bag := resolveProgram(t, prog)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if use.Symbol != formal.Symbol {
		t.Fatal("formal was not visible inside its own function body")
	}
}
