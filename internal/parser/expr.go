// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"github.com/mistvale/langrun/internal/ast"
	"github.com/mistvale/langrun/internal/token"
)

// expr parses an expression, returning nil (after recording an error) if it
// fails to produce one.
func (p *parser) expr() ast.Expr {
	return p.assign()
}

// assign implements the grammar's "target rewriting": an `expr "=" expr` is
// only legal when the left side is a Variable, Get, or Dereference
// (spec.md §4.2 "Assignment target rewriting").
func (p *parser) assign() ast.Expr {
	left := p.equality()
	if left == nil {
		return nil
	}
	if !p.check(token.ASSIGN) {
		return left
	}
	eq := p.advance()
	value := p.assign()
	if value == nil {
		return nil
	}
	switch t := left.(type) {
	case *ast.Variable:
		return &ast.Assign{Base: ast.NewBase(eq.Line), Name: t.Name, Value: value}
	case *ast.Get:
		return &ast.Set{Base: ast.NewBase(eq.Line), Object: t.Object, Name: t.Name, Value: value}
	case *ast.Dereference:
		return &ast.PointerSet{Base: ast.NewBase(eq.Line), Ptr: t.X, Value: value}
	default:
		p.errorf(eq.Line, "invalid assignment target")
		return nil
	}
}

func (p *parser) equality() ast.Expr {
	return p.binaryLevel(p.comparison, token.EQ, token.NEQ)
}

func (p *parser) comparison() ast.Expr {
	return p.binaryLevel(p.term, token.GT, token.GE, token.LT, token.LE)
}

func (p *parser) term() ast.Expr {
	return p.binaryLevel(p.factor, token.PLUS, token.MINUS)
}

func (p *parser) factor() ast.Expr {
	return p.binaryLevel(p.unary, token.STAR, token.SLASH)
}

// binaryLevel implements one level of left-associative precedence
// climbing: next() parses the higher-precedence operand, ops lists the
// operators accepted at this level.
func (p *parser) binaryLevel(next func() ast.Expr, ops ...token.Kind) ast.Expr {
	left := next()
	if left == nil {
		return nil
	}
	for p.matchAny(ops...) {
		op := p.toks[p.pos-1]
		right := next()
		if right == nil {
			return nil
		}
		left = &ast.Binary{Base: ast.NewBase(op.Line), Op: op.Kind, Left: left, Right: right}
	}
	return left
}

func (p *parser) matchAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// unary parses "!x", "-x", and "*IDENT" (AddressOf, spec.md §4.2 "Unary
// *IDENT"). The AddressOf production only accepts a bare identifier on its
// right; anything else is a syntax error.
func (p *parser) unary() ast.Expr {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		right := p.unary()
		if right == nil {
			return nil
		}
		return &ast.Unary{Base: ast.NewBase(op.Line), Op: op.Kind, Right: right}
	}
	if p.check(token.STAR) {
		star := p.advance()
		if !p.check(token.IDENT) {
			p.errorf(p.peek().Line, "expected identifier after '*'")
			return nil
		}
		name := p.advance()
		return &ast.AddressOf{Base: ast.NewBase(star.Line), Name: name.Lexeme}
	}
	return p.call()
}

// call parses postfix call/member chains: primary ( "(" args? ")" | "." ( "*" | IDENT ) )*
func (p *parser) call() ast.Expr {
	e := p.primary()
	if e == nil {
		return nil
	}
	for {
		switch {
		case p.check(token.LPAREN):
			lp := p.advance()
			args, ok := p.argList()
			if !ok {
				return nil
			}
			e = &ast.Call{Base: ast.NewBase(lp.Line), Callee: e, Args: args}
		case p.check(token.DOT):
			dot := p.advance()
			if p.check(token.STAR) {
				p.advance()
				e = &ast.Dereference{Base: ast.NewBase(dot.Line), X: e}
				continue
			}
			name, ok := p.expect(token.IDENT, "property name")
			if !ok {
				return nil
			}
			e = &ast.Get{Base: ast.NewBase(dot.Line), Object: e, Name: name.Lexeme}
		default:
			return e
		}
	}
}

func (p *parser) argList() ([]ast.Expr, bool) {
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			a := p.expr()
			if a == nil {
				return nil, false
			}
			args = append(args, a)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RPAREN, "')'"); !ok {
		return nil, false
	}
	return args, true
}

// primary parses literals, grouping, this, new, lists/lambdas, tuples, and
// maps.
func (p *parser) primary() ast.Expr {
	t := p.peek()
	switch t.Kind {
	case token.THIS:
		p.advance()
		return &ast.This{Base: ast.NewBase(t.Line)}
	case token.NEW:
		return p.newExpr()
	case token.LBRACKET:
		return p.listOrLambda()
	case token.NUMBER:
		p.advance()
		return &ast.Literal{Base: ast.NewBase(t.Line), Value: t.Literal}
	case token.STRING:
		p.advance()
		return &ast.Literal{Base: ast.NewBase(t.Line), Value: t.Literal}
	case token.IDENT:
		p.advance()
		return &ast.Variable{Base: ast.NewBase(t.Line), Name: t.Lexeme}
	case token.ATOM:
		p.advance()
		return &ast.AtomLit{Base: ast.NewBase(t.Line), Name: t.Literal.(string)}
	case token.LPAREN:
		p.advance()
		e := p.expr()
		if e == nil {
			return nil
		}
		if _, ok := p.expect(token.RPAREN, "')'"); !ok {
			return nil
		}
		return &ast.Grouping{Base: ast.NewBase(t.Line), X: e}
	case token.MAPSTART:
		return p.mapLit()
	case token.LBRACE:
		return p.tupleLit()
	default:
		p.errorf(t.Line, "unexpected token %s", t.Kind)
		return nil
	}
}

func (p *parser) newExpr() ast.Expr {
	line := p.advance().Line // consume 'new'
	name, ok := p.expect(token.IDENT, "type name")
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LPAREN, "'('"); !ok {
		return nil
	}
	args, ok := p.argList()
	if !ok {
		return nil
	}
	return &ast.New{Base: ast.NewBase(line), TypeName: name.Lexeme, Args: args}
}

// listOrLambda disambiguates `[...]` between a list literal and a lambda
// head by lookahead without consuming tokens (spec.md §4.2 "List/lambda
// disambiguation inside […]"): a sequence of (optional '*')IDENT separated
// by commas, accepted only if followed by "] (".
func (p *parser) listOrLambda() ast.Expr {
	if p.looksLikeLambdaHead() {
		return p.lambda()
	}
	return p.listLit()
}

func (p *parser) looksLikeLambdaHead() bool {
	i := p.pos
	if p.toks[i].Kind != token.LBRACKET {
		return false
	}
	i++
	for {
		if p.toks[i].Kind == token.RBRACKET {
			break
		}
		if p.toks[i].Kind == token.STAR {
			i++
		}
		if p.toks[i].Kind != token.IDENT {
			return false
		}
		i++
		if p.toks[i].Kind == token.COMMA {
			i++
			continue
		}
		if p.toks[i].Kind == token.RBRACKET {
			break
		}
		return false
	}
	// i is at ']'; accept only if followed by '('
	return p.toks[i+1].Kind == token.LPAREN
}

func (p *parser) lambda() ast.Expr {
	lb := p.advance() // consume '['
	var captures []ast.Capture
	for !p.check(token.RBRACKET) {
		byAddr := p.match(token.STAR)
		name, ok := p.expect(token.IDENT, "capture name")
		if !ok {
			return nil
		}
		captures = append(captures, ast.Capture{Name: name.Lexeme, ByAddress: byAddr})
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, ok := p.expect(token.RBRACKET, "']'"); !ok {
		return nil
	}
	params, ok := p.paramList()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.COLON, "':'"); !ok {
		return nil
	}
	if _, ok := p.expect(token.NEWLINE, "newline"); !ok {
		return nil
	}
	if _, ok := p.expect(token.INDENT, "indented block"); !ok {
		return nil
	}
	body := p.blockBody()
	if _, ok := p.expect(token.DEDENT, "dedent"); !ok {
		return nil
	}
	return &ast.Lambda{Base: ast.NewBase(lb.Line), Captures: captures, Params: params, Body: body}
}

func (p *parser) listLit() ast.Expr {
	lb := p.advance() // consume '['
	var elems []ast.Expr
	if !p.check(token.RBRACKET) {
		for {
			e := p.expr()
			if e == nil {
				return nil
			}
			elems = append(elems, e)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RBRACKET, "']'"); !ok {
		return nil
	}
	return &ast.ListLit{Base: ast.NewBase(lb.Line), Elems: elems}
}

func (p *parser) tupleLit() ast.Expr {
	lb := p.advance() // consume '{'
	var elems []ast.Expr
	if !p.check(token.RBRACE) {
		for {
			e := p.expr()
			if e == nil {
				return nil
			}
			elems = append(elems, e)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RBRACE, "'}'"); !ok {
		return nil
	}
	return &ast.Tuple{Base: ast.NewBase(lb.Line), Elems: elems}
}

func (p *parser) mapLit() ast.Expr {
	lb := p.advance() // consume '#{'
	var keys, values []ast.Expr
	if !p.check(token.RBRACE) {
		for {
			k := p.expr()
			if k == nil {
				return nil
			}
			if _, ok := p.expect(token.ARROW, "'=>'"); !ok {
				return nil
			}
			v := p.expr()
			if v == nil {
				return nil
			}
			keys = append(keys, k)
			values = append(values, v)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RBRACE, "'}'"); !ok {
		return nil
	}
	return &ast.MapLit{Base: ast.NewBase(lb.Line), Keys: keys, Values: values}
}
