package parser

import (
	"strconv"

	"github.com/varlet-dev/varlet/ast"
	"github.com/varlet-dev/varlet/internal/token"
)

// Expression parsing methods for the Parser.

func (p *Parser) parseIdent() ast.Node {
	return p.newIdent(p.curToken)
}

func (p *Parser) parseInt() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseInt(tok.Literal, 0, 64)
	if err != nil {
		return p.setTokenError(tok, "invalid integer literal %q", tok.Literal)
	}
	return &ast.Int{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseFloat() ast.Node {
	tok := p.curToken
	value, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		return p.setTokenError(tok, "invalid float literal %q", tok.Literal)
	}
	return &ast.Float{ValuePos: tok.StartPosition, Literal: tok.Literal, Value: value}
}

func (p *Parser) parseString() ast.Node {
	return &ast.String{ValuePos: p.curToken.StartPosition, Value: p.curToken.Literal}
}

func (p *Parser) parseBoolean() ast.Node {
	return &ast.Bool{
		ValuePos: p.curToken.StartPosition,
		Literal:  p.curToken.Literal,
		Value:    p.curTokenIs(token.TRUE),
	}
}

func (p *Parser) parseNil() ast.Node {
	return &ast.Nil{NilPos: p.curToken.StartPosition}
}

func (p *Parser) parsePrefixExpr() ast.Node {
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	if err := p.nextToken(); err != nil {
		return nil
	}
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	return &ast.Prefix{OpPos: opPos, Op: op, X: x}
}

func (p *Parser) parseInfixExpr(left ast.Node) ast.Node {
	leftExpr, ok := left.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "expected expression")
		return nil
	}
	opPos := p.curToken.StartPosition
	op := p.curToken.Literal
	precedence := precedences[p.curToken.Type]
	if err := p.nextToken(); err != nil {
		return nil
	}
	right := p.parseExpression(precedence)
	if right == nil {
		return nil
	}
	return &ast.Infix{X: leftExpr, OpPos: opPos, Op: op, Y: right}
}

func (p *Parser) parseSpread() ast.Node {
	ellipsis := p.curToken.StartPosition
	if err := p.nextToken(); err != nil {
		return nil
	}
	x := p.parseExpression(PREFIX)
	if x == nil {
		return nil
	}
	return &ast.Spread{Ellipsis: ellipsis, X: x}
}

func (p *Parser) parseGroupedExpr() ast.Node {
	if err := p.nextToken(); err != nil {
		return nil
	}
	p.eatNewlines()
	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}
	if !p.expectPeek("grouped expression", token.RPAREN) {
		return nil
	}
	return expr
}

func (p *Parser) parseList() ast.Node {
	lbrack := p.curToken.StartPosition
	var items []ast.Expr
	p.nextToken()
	p.eatNewlines()
	for !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil
		}
		item := p.parseExpression(LOWEST)
		if item == nil {
			return nil
		}
		items = append(items, item)
		for p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken() // Move to ','
			p.nextToken() // Move past ','
			p.eatNewlines()
		} else if p.peekTokenIs(token.RBRACKET) {
			p.nextToken() // Move to ']'
		} else {
			p.setTokenError(p.peekToken, "expected ',' or ']' in list literal")
			return nil
		}
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.setTokenError(p.curToken, "expected ']' to close list literal")
		return nil
	}
	return &ast.List{Lbrack: lbrack, Items: items, Rbrack: p.curToken.StartPosition}
}

func (p *Parser) parseIndex(left ast.Node) ast.Node {
	leftExpr, ok := left.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "expected expression")
		return nil
	}
	lbrack := p.curToken.StartPosition
	p.nextToken()
	key := p.parseExpression(LOWEST)
	if key == nil {
		return nil
	}
	if !p.expectPeek("index expression", token.RBRACKET) {
		return nil
	}
	return &ast.Index{X: leftExpr, Lbrack: lbrack, Key: key, Rbrack: p.curToken.StartPosition}
}

func (p *Parser) parseCall(left ast.Node) ast.Node {
	fun, ok := left.(ast.Expr)
	if !ok {
		p.setTokenError(p.curToken, "expected expression")
		return nil
	}
	lparen := p.curToken.StartPosition
	var args []ast.Expr
	for !p.peekTokenIs(token.RPAREN) {
		if p.peekTokenIs(token.EOF) {
			p.setTokenError(p.curToken, "unterminated call expression")
			return nil
		}
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // Move to ')'
	return &ast.Call{Fun: fun, Lparen: lparen, Args: args, Rparen: p.curToken.StartPosition}
}
