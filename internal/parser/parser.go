// Package parser is a supplementary collaborator: a recursive-descent
// parser turning a lexer's token stream into an internal/ast tree. Like
// internal/lexer, it sits outside the core type-analysis/lowering scope
// (spec.md §1) and so favors a direct, single-pass implementation with
// panic-mode recovery over a full error-production grammar.
package parser

import (
	"cronac/internal/ast"
	"cronac/internal/diag"
	"cronac/internal/lexer"
	"cronac/internal/source"
	"cronac/internal/token"
)

// Parser holds per-file parsing state: the current lookahead token, a
// small buffer for the rare spot that needs a second token of lookahead
// (distinguishing a local declaration from an assignment), and the
// reporter every syntax error goes to.
type Parser struct {
	lx       *lexer.Lexer
	reporter diag.Reporter
	tok      token.Token   // current lookahead
	buf      []token.Token // pending tokens already read from lx, not yet current
	prev     source.Span   // span of the last consumed token
	failed   bool
}

// New constructs a Parser reading from lx, reporting syntax errors to r.
func New(lx *lexer.Lexer, r diag.Reporter) *Parser {
	p := &Parser{lx: lx, reporter: r}
	p.tok = lx.Next()
	return p
}

// Failed reports whether any syntax error was seen so far.
func (p *Parser) Failed() bool { return p.failed }

func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// peekNext returns the token after the current one without consuming it.
func (p *Parser) peekNext() token.Token {
	if len(p.buf) == 0 {
		p.buf = append(p.buf, p.lx.Next())
	}
	return p.buf[0]
}

func (p *Parser) advance() token.Token {
	t := p.tok
	p.prev = t.Span
	if t.Kind == token.EOF {
		return t
	}
	if len(p.buf) > 0 {
		p.tok = p.buf[0]
		p.buf = p.buf[1:]
	} else {
		p.tok = p.lx.Next()
	}
	return t
}

// expect consumes the current token if it has kind k, else reports a
// syntax error at its position and leaves it in place so the caller's
// recovery logic can decide what to skip.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.errHere()
	return p.tok, false
}

func (p *Parser) errHere() {
	p.failed = true
	diag.Fatal(p.reporter, diag.CodeSyntaxError, p.tok.Span)
}

// ParseProgram parses a whole file: a sequence of top-level declarations
// up to EOF, resynchronizing at the next plausible declaration start after
// each error so one bad declaration doesn't abort the whole file.
func ParseProgram(lx *lexer.Lexer, r diag.Reporter) *ast.Program {
	p := New(lx, r)
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		d, ok := p.parseTopDecl()
		if !ok {
			p.resyncTopLevel()
			continue
		}
		prog.Decls = append(prog.Decls, d)
	}
	return prog
}

// resyncTopLevel skips tokens until one that plausibly starts the next
// top-level declaration (an identifier) or EOF, swallowing a trailing
// semicolon if that's what stopped it.
func (p *Parser) resyncTopLevel() {
	for !p.at(token.EOF) && !p.at(token.Ident) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}
