package driver

import (
	"testing"

	"cronac/internal/source"
	"cronac/internal/token"
)

func loadSrc(t *testing.T, src string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.crona", []byte(src))
	return fs.Get(id)
}

const validProgram = `a:int;
main:void(){
	a = 1 + 2;
	write a;
}
`

func TestRunTokensOnly(t *testing.T) {
	f := loadSrc(t, validProgram)
	res := Run(f, Request{Tokens: true})
	if len(res.Tokens) == 0 {
		t.Fatal("want tokens, got none")
	}
	if res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("last token = %v, want EOF", res.Tokens[len(res.Tokens)-1].Kind)
	}
	if res.Program != nil {
		t.Fatal("Tokens-only request should not parse")
	}
}

func TestRunParseOnlyStopsBeforeResolve(t *testing.T) {
	f := loadSrc(t, validProgram)
	res := Run(f, Request{Parse: true})
	if !res.ParseOK {
		t.Fatalf("parse failed: %+v", res.Bag.Items())
	}
	if res.Program == nil {
		t.Fatal("want a parsed Program")
	}
	if res.ResolveOK {
		t.Fatal("Parse-only request should not resolve")
	}
}

func TestRunIRProducesLoweredProgram(t *testing.T) {
	f := loadSrc(t, validProgram)
	res := Run(f, Request{IR: true})
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if !res.ParseOK || !res.ResolveOK || !res.CheckOK {
		t.Fatalf("expected every stage to pass: parse=%v resolve=%v check=%v",
			res.ParseOK, res.ResolveOK, res.CheckOK)
	}
	if res.IR == nil {
		t.Fatal("want a lowered ir.Program")
	}
}

func TestRunNamesImpliesResolveAndAnnotatesSymbols(t *testing.T) {
	f := loadSrc(t, validProgram)
	res := Run(f, Request{Names: true})
	if !res.ResolveOK {
		t.Fatalf("Names request should resolve: %+v", res.Bag.Items())
	}
	if !res.WithSymbols {
		t.Fatal("want WithSymbols set once resolve succeeds")
	}
	if res.CheckOK {
		t.Fatal("Names-only request should not type check")
	}
}

func TestRunStopsAtFirstFailingStage(t *testing.T) {
	f := loadSrc(t, "a:int\n") // missing semicolon
	res := Run(f, Request{IR: true})
	if res.ParseOK {
		t.Fatal("malformed source should fail to parse")
	}
	if res.ResolveOK || res.CheckOK || res.IR != nil {
		t.Fatal("a failed parse must short-circuit every later stage")
	}
	if !res.Bag.HasErrors() {
		t.Fatal("want a diagnostic for the syntax error")
	}
}

func TestRunResolveFailureSkipsLowering(t *testing.T) {
	f := loadSrc(t, "main:void(){\n\twrite undeclared;\n}\n")
	res := Run(f, Request{IR: true})
	if !res.ParseOK {
		t.Fatalf("parse unexpectedly failed: %+v", res.Bag.Items())
	}
	if res.ResolveOK {
		t.Fatal("undeclared identifier should fail resolve")
	}
	if res.IR != nil {
		t.Fatal("lowering must not run once resolve fails")
	}
}
