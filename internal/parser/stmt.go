package parser

import (
	"cronac/internal/ast"
	"cronac/internal/token"
)

// parseStmt dispatches on the current token to one of the statement forms.
// An Ident lookahead is ambiguous until the token after it is seen: a
// colon means a local declaration, otherwise it's parsed as an lvalue that
// then resolves into an assignment, a post-inc/dec, or a call statement.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch p.tok.Kind {
	case token.Ident:
		return p.parseIdentStmt()
	case token.KwRead:
		return p.parseReadStmt()
	case token.KwWrite:
		return p.parseWriteStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	default:
		p.errHere()
		return nil, false
	}
}

func (p *Parser) parseIdentStmt() (ast.Stmt, bool) {
	// A colon immediately after the identifier can only start a local
	// declaration; nothing else in the grammar produces that shape.
	if p.peekIsColon() {
		return p.parseLocalDecl()
	}

	start := p.tok.Span
	name, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}

	if p.at(token.LParen) {
		call, ok := p.parseCallTail(name, &ast.Ident{Span: name.Span, Name: name.Text})
		if !ok {
			return nil, false
		}
		semi, ok := p.expect(token.Semicolon)
		if !ok {
			return nil, false
		}
		return &ast.CallStmt{Span: start.Cover(semi.Span), CallExp: call}, true
	}

	lval, ok := p.parseLValueTail(&ast.Ident{Span: name.Span, Name: name.Text})
	if !ok {
		return nil, false
	}

	switch p.tok.Kind {
	case token.CrossCross:
		p.advance()
		semi, ok := p.expect(token.Semicolon)
		if !ok {
			return nil, false
		}
		return &ast.PostIncStmt{Span: start.Cover(semi.Span), LVal: lval}, true
	case token.DashDash:
		p.advance()
		semi, ok := p.expect(token.Semicolon)
		if !ok {
			return nil, false
		}
		return &ast.PostDecStmt{Span: start.Cover(semi.Span), LVal: lval}, true
	case token.Assign:
		p.advance()
		src, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		semi, ok := p.expect(token.Semicolon)
		if !ok {
			return nil, false
		}
		return &ast.AssignStmt{
			Span: start.Cover(semi.Span),
			Exp:  &ast.AssignExp{Span: start.Cover(semi.Span), Dst: lval, Src: src},
		}, true
	default:
		p.errHere()
		return nil, false
	}
}

// peekIsColon reports whether the token right after the current
// identifier is a colon, without consuming either token.
func (p *Parser) peekIsColon() bool {
	return p.peekNext().Kind == token.Colon
}

func (p *Parser) parseReadStmt() (ast.Stmt, bool) {
	start := p.tok.Span
	p.advance()
	lval, ok := p.parseLValue()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return nil, false
	}
	return &ast.ReadStmt{Span: start.Cover(semi.Span), Dst: lval}, true
}

func (p *Parser) parseWriteStmt() (ast.Stmt, bool) {
	start := p.tok.Span
	p.advance()
	src, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return nil, false
	}
	return &ast.WriteStmt{Span: start.Cover(semi.Span), Src: src}, true
}

func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	start := p.tok.Span
	p.advance()
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	if !p.at(token.KwElse) {
		return &ast.IfStmt{Span: start.Cover(p.prev), Cond: cond, Body: body}, true
	}
	p.advance()
	elseBody, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.IfElseStmt{
		Span: start.Cover(p.prev), Cond: cond, BodyTrue: body, BodyFalse: elseBody,
	}, true
}

func (p *Parser) parseWhileStmt() (ast.Stmt, bool) {
	start := p.tok.Span
	p.advance()
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return &ast.WhileStmt{Span: start.Cover(p.prev), Cond: cond, Body: body}, true
}

func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	start := p.tok.Span
	p.advance()
	if p.at(token.Semicolon) {
		semi := p.advance()
		return &ast.ReturnStmt{Span: start.Cover(semi.Span)}, true
	}
	exp, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	semi, ok := p.expect(token.Semicolon)
	if !ok {
		return nil, false
	}
	return &ast.ReturnStmt{Span: start.Cover(semi.Span), Exp: exp}, true
}

func (p *Parser) parseBlock() ([]ast.Stmt, bool) {
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
	if _, ok := p.expect(token.RCurly); !ok {
		return nil, false
	}
	return body, true
}

// resyncStmt skips to the next semicolon or block boundary so one bad
// statement doesn't abort the rest of the enclosing body.
func (p *Parser) resyncStmt() {
	for !p.at(token.EOF) && !p.at(token.RCurly) {
		if p.at(token.Semicolon) {
			p.advance()
			return
		}
		p.advance()
	}
}
