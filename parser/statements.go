package parser

import (
	"github.com/varlet-dev/varlet/ast"
	"github.com/varlet-dev/varlet/errors"
	"github.com/varlet-dev/varlet/internal/token"
)

// Statement parsing methods for the Parser.
// This file contains methods that parse statement constructs:
// - Variable declarations (var, let, const)
// - Destructuring patterns with per-slot declaration keywords
// - Assignment statements
// - Blocks

func (p *Parser) parseDecl() ast.Node {
	kind := ast.KindOf(p.curToken.Type)
	kindPos := p.curToken.StartPosition

	// Declaration keyword followed by a bracket is a destructuring pattern
	// with a default kind: let [a, b] = arr
	if p.peekTokenIs(token.LBRACKET) {
		p.nextToken() // Move to '['
		return p.parseDestructure(kind, kindPos)
	}

	context := kind.String() + " statement"
	if !p.expectPeek(context, token.IDENT) {
		return nil
	}
	name := p.newIdent(p.curToken)
	if !p.expectPeek(context, token.ASSIGN) {
		return nil
	}
	p.nextToken()
	value := p.parseAssignmentValue()
	if value == nil {
		return nil
	}
	return &ast.Declare{KindPos: kindPos, Kind: kind, Name: name, Value: value}
}

// parseDestructure parses an array destructuring pattern. The current token
// must be the opening bracket. defaultKind is the declaration keyword written
// before the bracket, or NoKind for a bare pattern.
func (p *Parser) parseDestructure(defaultKind ast.DeclKind, kindPos token.Position) ast.Node {
	lbrack := p.curToken.StartPosition
	p.nextToken() // Move past '['
	p.eatNewlines()

	elems := []ast.PatternElem{}
	lastComma := token.NoPos
	expectElem := true

	for !p.curTokenIs(token.RBRACKET) && !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil
		}
		if p.curTokenIs(token.NEWLINE) {
			p.nextToken()
			continue
		}
		if p.curTokenIs(token.COMMA) {
			if expectElem {
				// An elided slot: nothing between separators
				elems = append(elems, ast.PatternElem{Comma: lastComma})
			}
			lastComma = p.curToken.StartPosition
			expectElem = true
			p.nextToken()
			p.eatNewlines()
			continue
		}
		if !expectElem {
			p.setTokenError(p.curToken, "expected ',' or ']' in destructuring pattern")
			return nil
		}
		elem, ok := p.parsePatternElem()
		if !ok {
			return nil
		}
		elem.Comma = lastComma
		elems = append(elems, elem)
		expectElem = false
		p.nextToken()
	}

	if !p.curTokenIs(token.RBRACKET) {
		p.setTokenError(p.curToken, "expected ']' to close destructuring pattern")
		return nil
	}
	rbrack := p.curToken.StartPosition

	if len(elems) == 0 {
		p.setError(NewMalformedPatternError(ErrorOpts{
			Code:          errors.E1013,
			Message:       "destructuring pattern cannot be empty",
			File:          p.l.Filename(),
			StartPosition: lbrack,
			EndPosition:   rbrack,
			SourceCode:    p.l.GetLineText(p.curToken),
		}))
		return nil
	}

	if !p.checkPatternShape(elems) {
		return nil
	}

	// Expect '='
	if !p.expectPeek("destructuring assignment", token.ASSIGN) {
		return nil
	}

	p.nextToken()
	value := p.parseAssignmentValue()
	if value == nil {
		return nil
	}

	return &ast.Destructure{
		KindPos:     kindPos,
		DefaultKind: defaultKind,
		Lbrack:      lbrack,
		Elems:       elems,
		Rbrack:      rbrack,
		Value:       value,
	}
}

// parsePatternElem parses one slot of a destructuring pattern. On success the
// current token is the last token of the slot.
//
// Slot forms: "name", "<kind> name", "...name", "<kind> ...name", and
// "...<kind> name". The keyword may sit on either side of the spread marker;
// the two placements mean the same thing.
func (p *Parser) parsePatternElem() (ast.PatternElem, bool) {
	var elem ast.PatternElem

	if token.IsDeclKeyword(p.curToken.Type) {
		elem.Kind = ast.KindOf(p.curToken.Type)
		elem.KindPos = p.curToken.StartPosition
		p.nextToken()
		if token.IsDeclKeyword(p.curToken.Type) {
			p.duplicateKeywordError(elem.Kind, p.curToken)
			return elem, false
		}
	}

	if p.curTokenIs(token.SPREAD) {
		elem.Rest = true
		elem.Ellipsis = p.curToken.StartPosition
		p.nextToken()
		if token.IsDeclKeyword(p.curToken.Type) {
			if elem.Kind != ast.NoKind {
				p.duplicateKeywordError(elem.Kind, p.curToken)
				return elem, false
			}
			elem.Kind = ast.KindOf(p.curToken.Type)
			elem.KindPos = p.curToken.StartPosition
			p.nextToken()
		}
	}

	if !p.curTokenIs(token.IDENT) {
		p.setTokenError(p.curToken, "expected identifier in destructuring pattern")
		return elem, false
	}
	elem.Name = p.newIdent(p.curToken)

	// Check for default value: [a = 10] = xs
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken() // Move to '='
		p.nextToken() // Move past '='
		elem.Default = p.parseExpression(LOWEST)
		if elem.Default == nil {
			return elem, false
		}
	}
	return elem, true
}

func (p *Parser) duplicateKeywordError(existing ast.DeclKind, tok token.Token) {
	p.setError(NewMalformedPatternError(ErrorOpts{
		Code: errors.E1010,
		Message: "pattern slot has more than one declaration keyword (" +
			existing.String() + " and " + tok.Literal + ")",
		File:          p.l.Filename(),
		StartPosition: tok.StartPosition,
		EndPosition:   tok.EndPosition,
		SourceCode:    p.l.GetLineText(tok),
	}))
}

// checkPatternShape enforces the structural pattern invariants: at most one
// rest slot, and the rest slot must be last.
func (p *Parser) checkPatternShape(elems []ast.PatternElem) bool {
	restSeen := false
	for i, elem := range elems {
		if !elem.Rest {
			continue
		}
		if restSeen {
			p.setError(NewMalformedPatternError(ErrorOpts{
				Code:          errors.E1012,
				Message:       "destructuring pattern has multiple rest elements",
				File:          p.l.Filename(),
				StartPosition: elem.Ellipsis,
				EndPosition:   elem.Ellipsis.Advance(2),
				SourceCode:    p.l.GetLineText(p.curToken),
			}))
			return false
		}
		restSeen = true
		if i != len(elems)-1 {
			p.setError(NewMalformedPatternError(ErrorOpts{
				Code:          errors.E1011,
				Message:       "rest element must be the final element of the pattern",
				File:          p.l.Filename(),
				StartPosition: elem.Ellipsis,
				EndPosition:   elem.Ellipsis.Advance(2),
				SourceCode:    p.l.GetLineText(p.curToken),
			}))
			return false
		}
	}
	return true
}

func (p *Parser) parseBlock() ast.Node {
	lbrace := p.curToken.StartPosition
	p.nextToken() // Move past '{'

	var stmts []ast.Node
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		if p.cancelled() {
			return nil
		}
		if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			if p.hadNewError() {
				return nil
			}
			p.nextToken()
			continue
		}
		stmts = append(stmts, stmt)
		p.nextToken()
	}
	if !p.curTokenIs(token.RBRACE) {
		p.setTokenError(p.curToken, "expected '}' to close block")
		return nil
	}
	return &ast.Block{Lbrace: lbrace, Stmts: stmts, Rbrace: p.curToken.StartPosition}
}

// parseAssignmentValue parses the right hand side of an assignment statement.
func (p *Parser) parseAssignmentValue() ast.Expr {
	// Save the assignment token (=) before eatNewlines potentially changes prevToken
	assignToken := p.prevToken
	p.eatNewlines()
	result := p.parseExpression(LOWEST)
	if result == nil {
		// Only add error if none was added during parsing
		if !p.hadNewError() {
			p.setError(NewParserError(ErrorOpts{
				ErrType:       "parse error",
				Message:       "assignment is missing a value",
				File:          p.l.Filename(),
				StartPosition: assignToken.StartPosition,
				EndPosition:   assignToken.EndPosition,
				SourceCode:    p.l.GetLineText(assignToken),
			}))
		}
		return nil
	}
	return result
}

func (p *Parser) parseExpressionStatement() ast.Node {
	expr := p.parseNode(LOWEST)
	if expr == nil {
		// Only add error if none was added during parsing
		if !p.hadNewError() {
			p.setTokenError(p.curToken, "invalid syntax")
		}
		return nil
	}
	return expr
}

func (p *Parser) parseAssign(name ast.Node) ast.Node {
	ident, ok := name.(*ast.Ident)
	if !ok {
		p.setTokenError(p.curToken, "invalid assignment target: %s", name.String())
		return nil
	}
	opPos := p.curToken.StartPosition
	p.nextToken() // move to the RHS value
	p.eatNewlines()
	right := p.parseExpression(LOWEST)
	if right == nil {
		if !p.hadNewError() {
			p.setTokenError(p.curToken, "invalid assignment statement value")
		}
		return nil
	}
	return &ast.Assign{Name: ident, OpPos: opPos, Value: right}
}
