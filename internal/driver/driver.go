// Package driver orchestrates a single compiled file through the
// lex→parse→resolve→check→lower pipeline and hands the CLI whatever
// artifact it asked for. Each call to Run is single-threaded and starts
// from a fresh types.Interner and ir.Program, matching the concurrency
// model: no mutable state survives across files except through the
// caller's own fan-out.
package driver

import (
	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/ir"
	"cronac/internal/lexer"
	"cronac/internal/lower"
	"cronac/internal/parser"
	"cronac/internal/resolve"
	"cronac/internal/sema"
	"cronac/internal/source"
	"cronac/internal/token"
	"cronac/internal/types"
)

// Request selects which pipeline stages a Run call needs to reach. Later
// stages imply the need for every earlier one, but a caller only asking
// for -t never pays for a parse.
type Request struct {
	Tokens  bool // -t: token dump
	Parse   bool // -p: parse only
	Unparse bool // -u: bare unparse
	Names   bool // -n: symbol-annotated unparse (implies resolve)
	Check   bool // -c: type check (implies resolve)
	IR      bool // -a: lower to 3AC (implies resolve + check)
}

// Result holds every artifact Run was able to produce. A stage that was
// never reached (because an earlier one failed, or wasn't requested)
// leaves its field nil/false.
type Result struct {
	Tokens      []token.Token
	Program     *ast.Program
	ParseOK     bool
	ResolveOK   bool
	CheckOK     bool
	IR          *ir.Program
	Bag         *diag.Bag
	WithSymbols bool // whether Program's identifiers carry resolved symbols
}

// Run executes the requested pipeline stages over file f, reporting every
// diagnostic to a single shared Bag so output ordering across passes is
// the order the passes themselves ran in (Bag.Sort recovers source order).
func Run(f *source.File, req Request) *Result {
	bag := diag.NewBag()
	reporter := diag.BagReporter{Bag: bag}
	res := &Result{Bag: bag}

	if req.Tokens {
		res.Tokens = scanAll(f, reporter)
	}

	needParse := req.Parse || req.Unparse || req.Names || req.Check || req.IR
	if !needParse {
		return res
	}

	lx := lexer.New(f, reporter)
	res.Program = parser.ParseProgram(lx, reporter)
	res.ParseOK = !bag.HasErrors()
	if !res.ParseOK {
		return res
	}

	needResolve := req.Names || req.Check || req.IR
	if !needResolve {
		return res
	}

	interner := types.NewInterner()
	resolver := resolve.New(interner, reporter)
	res.ResolveOK = resolver.Resolve(res.Program)
	if req.Names {
		res.WithSymbols = res.ResolveOK
	}
	if !res.ResolveOK {
		return res
	}

	needCheck := req.Check || req.IR
	if !needCheck {
		return res
	}

	checker := sema.New(interner, reporter)
	res.CheckOK = checker.Check(res.Program)
	if !req.IR || !res.CheckOK {
		return res
	}

	lowerer := lower.New(interner, checker)
	res.IR = lowerer.Lower(res.Program)
	return res
}

// scanAll drains a fresh lexer over f into a token slice, mirroring the
// original driver's habit of scanning once more, independently, for the
// token dump rather than threading tokens through from the parse.
func scanAll(f *source.File, reporter diag.Reporter) []token.Token {
	lx := lexer.New(f, reporter)
	var toks []token.Token
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks
}
