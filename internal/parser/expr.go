package parser

import (
	"strconv"

	"cronac/internal/ast"
	"cronac/internal/token"
)

// parseExpr is the entry point for any expression context (read/write
// operand, if/while condition, return value, call argument, index offset,
// assignment source) — precedence climbing bottoms out here with the
// lowest-binding operator, ||.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expr, bool) {
	lhs, ok := p.parseAnd()
	if !ok {
		return nil, false
	}
	for p.at(token.Or) {
		opTok := p.advance()
		rhs, ok := p.parseAnd()
		if !ok {
			return nil, false
		}
		lhs = &ast.BinaryExp{Span: opTok.Span.Cover(p.prev), Op: ast.BinOr, LHS: lhs, RHS: rhs}
	}
	return lhs, true
}

func (p *Parser) parseAnd() (ast.Expr, bool) {
	lhs, ok := p.parseEquality()
	if !ok {
		return nil, false
	}
	for p.at(token.And) {
		opTok := p.advance()
		rhs, ok := p.parseEquality()
		if !ok {
			return nil, false
		}
		lhs = &ast.BinaryExp{Span: opTok.Span.Cover(p.prev), Op: ast.BinAnd, LHS: lhs, RHS: rhs}
	}
	return lhs, true
}

func (p *Parser) parseEquality() (ast.Expr, bool) {
	lhs, ok := p.parseRelational()
	if !ok {
		return nil, false
	}
	for p.at(token.Equals) || p.at(token.NotEquals) {
		op := ast.BinEquals
		if p.at(token.NotEquals) {
			op = ast.BinNotEquals
		}
		opTok := p.advance()
		rhs, ok := p.parseRelational()
		if !ok {
			return nil, false
		}
		lhs = &ast.BinaryExp{Span: opTok.Span.Cover(p.prev), Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, true
}

func (p *Parser) parseRelational() (ast.Expr, bool) {
	lhs, ok := p.parseAdditive()
	if !ok {
		return nil, false
	}
	for {
		var op ast.BinOpKind
		switch p.tok.Kind {
		case token.Less:
			op = ast.BinLess
		case token.LessEq:
			op = ast.BinLessEq
		case token.Greater:
			op = ast.BinGreater
		case token.GreaterEq:
			op = ast.BinGreaterEq
		default:
			return lhs, true
		}
		opTok := p.advance()
		rhs, ok := p.parseAdditive()
		if !ok {
			return nil, false
		}
		lhs = &ast.BinaryExp{Span: opTok.Span.Cover(p.prev), Op: op, LHS: lhs, RHS: rhs}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, bool) {
	lhs, ok := p.parseMultiplicative()
	if !ok {
		return nil, false
	}
	for p.at(token.Cross) || p.at(token.Dash) {
		op := ast.BinPlus
		if p.at(token.Dash) {
			op = ast.BinMinus
		}
		opTok := p.advance()
		rhs, ok := p.parseMultiplicative()
		if !ok {
			return nil, false
		}
		lhs = &ast.BinaryExp{Span: opTok.Span.Cover(p.prev), Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, true
}

func (p *Parser) parseMultiplicative() (ast.Expr, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return nil, false
	}
	for p.at(token.Star) || p.at(token.Slash) {
		op := ast.BinTimes
		if p.at(token.Slash) {
			op = ast.BinDivide
		}
		opTok := p.advance()
		rhs, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		lhs = &ast.BinaryExp{Span: opTok.Span.Cover(p.prev), Op: op, LHS: lhs, RHS: rhs}
	}
	return lhs, true
}

func (p *Parser) parseUnary() (ast.Expr, bool) {
	switch p.tok.Kind {
	case token.Dash:
		opTok := p.advance()
		exp, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExp{Span: opTok.Span.Cover(p.prev), Op: ast.UnNeg, Exp: exp}, true
	case token.Not:
		opTok := p.advance()
		exp, ok := p.parseUnary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExp{Span: opTok.Span.Cover(p.prev), Op: ast.UnNot, Exp: exp}, true
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	switch p.tok.Kind {
	case token.IntLit:
		t := p.advance()
		v, _ := strconv.ParseInt(t.Text, 10, 64)
		return &ast.IntLit{Span: t.Span, Value: v}, true
	case token.StrLit:
		t := p.advance()
		return &ast.StrLit{Span: t.Span, Text: t.Text}, true
	case token.KwTrue:
		t := p.advance()
		return &ast.BoolLit{Span: t.Span, Value: true}, true
	case token.KwFalse:
		t := p.advance()
		return &ast.BoolLit{Span: t.Span, Value: false}, true
	case token.KwHavoc:
		t := p.advance()
		return &ast.HavocExp{Span: t.Span}, true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return nil, false
		}
		return inner, true
	case token.Ident:
		nameTok := p.advance()
		id := &ast.Ident{Span: nameTok.Span, Name: nameTok.Text}
		switch {
		case p.at(token.LParen):
			return p.parseCallTail(nameTok, id)
		case p.at(token.LBrace):
			return p.parseIndexTail(id)
		default:
			return id, true
		}
	default:
		p.errHere()
		return nil, false
	}
}

// parseLValue parses an identifier, optionally followed by a single
// `[offset]` index — the two lvalue forms the grammar allows for read,
// post-inc, and post-dec.
func (p *Parser) parseLValue() (ast.LValue, bool) {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return nil, false
	}
	return p.parseLValueTail(&ast.Ident{Span: nameTok.Span, Name: nameTok.Text})
}

func (p *Parser) parseLValueTail(id *ast.Ident) (ast.LValue, bool) {
	if !p.at(token.LBrace) {
		return id, true
	}
	idx, ok := p.parseIndexTail(id)
	if !ok {
		return nil, false
	}
	return idx, true
}

func (p *Parser) parseIndexTail(base *ast.Ident) (*ast.IndexExpr, bool) {
	p.advance() // '['
	offset, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	closeTok, ok := p.expect(token.RBrace)
	if !ok {
		return nil, false
	}
	return &ast.IndexExpr{Span: base.Span.Cover(closeTok.Span), Base: base, Offset: offset}, true
}

func (p *Parser) parseCallTail(nameTok token.Token, callee *ast.Ident) (*ast.CallExp, bool) {
	p.advance() // '('
	var args []ast.Expr
	if !p.at(token.RParen) {
		for {
			arg, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	closeTok, ok := p.expect(token.RParen)
	if !ok {
		return nil, false
	}
	return &ast.CallExp{Span: nameTok.Span.Cover(closeTok.Span), Callee: callee, Args: args}, true
}
