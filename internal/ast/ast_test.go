package ast

import "testing"

func TestLValueKindsSatisfyExpr(t *testing.T) {
	var lvals []LValue = []LValue{&Ident{Name: "x"}, &IndexExpr{Base: &Ident{Name: "a"}}}
	for _, lv := range lvals {
		var _ Expr = lv
	}
}

func TestVarDeclIsDeclAndStmt(t *testing.T) {
	v := &VarDecl{Name: "a", Type: &IntType{}}
	var _ Decl = v
	var _ Stmt = v
}

func TestFormalIsDeclOnly(t *testing.T) {
	f := &Formal{Name: "p", Type: &ByteType{}}
	var _ Decl = f
}

func TestProgramHoldsMixedDecls(t *testing.T) {
	p := &Program{
		Decls: []Decl{
			&VarDecl{Name: "g", Type: &IntType{}},
			&FnDecl{Name: "main", RetType: &VoidType{}},
		},
	}
	if len(p.Decls) != 2 {
		t.Fatalf("got %d decls, want 2", len(p.Decls))
	}
}
