package parser

import (
	"cronac/internal/ast"
	"cronac/internal/token"
)

// parseTopDecl parses one top-level `name:type;` variable declaration or
// `name:rettype(formals){ body }` function declaration — the two share a
// `name ':' type` prefix, so the decision point is the token after the
// type: '(' begins a function, ';' ends a variable.
func (p *Parser) parseTopDecl() (ast.Decl, bool) {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon); !ok {
		return nil, false
	}
	if p.at(token.LParen) {
		// A bare `(` right after the colon means an absent return type was
		// never written; the grammar has no way to express that, so this
		// is still a syntax error.
		p.errHere()
		return nil, false
	}
	typeExpr, ok := p.parseType()
	if !ok {
		return nil, false
	}

	if p.at(token.LParen) {
		return p.parseFnDeclTail(nameTok, typeExpr)
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return nil, false
	}
	return &ast.VarDecl{
		Span: nameTok.Span.Cover(p.prev),
		Name: nameTok.Text,
		Type: typeExpr,
	}, true
}

// parseLocalDecl parses the statement-position form of a variable
// declaration, sharing parseTopDecl's prefix logic but never allowing a
// function declaration to follow (locals can't be functions).
func (p *Parser) parseLocalDecl() (*ast.VarDecl, bool) {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon); !ok {
		return nil, false
	}
	typeExpr, ok := p.parseType()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Semicolon); !ok {
		return nil, false
	}
	return &ast.VarDecl{
		Span: nameTok.Span.Cover(p.prev),
		Name: nameTok.Text,
		Type: typeExpr,
	}, true
}

func (p *Parser) parseFnDeclTail(nameTok token.Token, retType ast.TypeExpr) (ast.Decl, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	var formals []*ast.Formal
	if !p.at(token.RParen) {
		for {
			f, ok := p.parseFormal()
			if !ok {
				return nil, false
			}
			formals = append(formals, f)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.LCurly); !ok {
		return nil, false
	}
	var body []ast.Stmt
	for !p.at(token.RCurly) && !p.at(token.EOF) {
		s, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			continue
		}
		body = append(body, s)
	}
	closeTok, ok := p.expect(token.RCurly)
	if !ok {
		return nil, false
	}
	return &ast.FnDecl{
		Span:    nameTok.Span.Cover(closeTok.Span),
		Name:    nameTok.Text,
		RetType: retType,
		Formals: formals,
		Body:    body,
	}, true
}

func (p *Parser) parseFormal() (*ast.Formal, bool) {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon); !ok {
		return nil, false
	}
	typeExpr, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return &ast.Formal{
		Span: nameTok.Span.Cover(p.prev),
		Name: nameTok.Text,
		Type: typeExpr,
	}, true
}

// parseType parses a base type keyword followed by zero or more `array[N]`
// suffixes, e.g. `int array[4] array[2]` (an array of 2 arrays of 4 ints).
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	start := p.tok.Span
	var base ast.TypeExpr
	switch p.tok.Kind {
	case token.KwVoid:
		p.advance()
		base = &ast.VoidType{Span: start}
	case token.KwInt:
		p.advance()
		base = &ast.IntType{Span: start}
	case token.KwBool:
		p.advance()
		base = &ast.BoolType{Span: start}
	case token.KwByte:
		p.advance()
		base = &ast.ByteType{Span: start}
	case token.KwString:
		p.advance()
		base = &ast.StringType{Span: start}
	default:
		p.errHere()
		return nil, false
	}

	for p.at(token.KwArray) {
		p.advance()
		if _, ok := p.expect(token.LBrace); !ok {
			return nil, false
		}
		lenTok, ok := p.expect(token.IntLit)
		if !ok {
			return nil, false
		}
		closeTok, ok := p.expect(token.RBrace)
		if !ok {
			return nil, false
		}
		base = &ast.ArrayType{
			Span:   start.Cover(closeTok.Span),
			Base:   base,
			Length: parseUint32(lenTok.Text),
		}
	}
	return base, true
}

func parseUint32(text string) uint32 {
	var n uint32
	for i := 0; i < len(text); i++ {
		n = n*10 + uint32(text[i]-'0')
	}
	return n
}
