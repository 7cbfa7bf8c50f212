package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	cases := map[string]Kind{
		"int":   KwInt,
		"byte":  KwByte,
		"while": KwWhile,
		"havoc": KwHavoc,
		"true":  KwTrue,
	}
	for text, want := range cases {
		got, ok := LookupKeyword(text)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v, %v; want %v, true", text, got, ok, want)
		}
	}
}

func TestLookupKeywordCaseSensitive(t *testing.T) {
	if _, ok := LookupKeyword("Int"); ok {
		t.Fatal("LookupKeyword should not recognize uppercase spellings")
	}
}

func TestLookupKeywordRejectsIdent(t *testing.T) {
	if _, ok := LookupKeyword("foo"); ok {
		t.Fatal("LookupKeyword should reject a non-keyword identifier")
	}
}

func TestKindStringAndCategory(t *testing.T) {
	if !KwInt.IsKeyword() {
		t.Fatal("KwInt should be a keyword")
	}
	if Ident.IsKeyword() {
		t.Fatal("Ident should not be a keyword")
	}
	if !IntLit.IsLiteral() || !KwTrue.IsLiteral() {
		t.Fatal("IntLit and KwTrue should be literals")
	}
	if Plus := Cross; Plus.IsLiteral() {
		t.Fatal("Cross should not be a literal")
	}
	if got := Assign.String(); got != "ASSIGN" {
		t.Fatalf("Assign.String() = %q", got)
	}
}
