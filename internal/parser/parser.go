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

// Package parser implements the recursive-descent grammar of spec.md §4.2
// over the token stream produced by internal/lexer, building the ast.Stmt
// trees consumed by internal/evaluator.
package parser

import (
	"fmt"

	"github.com/mistvale/langrun/internal/ast"
	"github.com/mistvale/langrun/internal/lexer"
	"github.com/mistvale/langrun/internal/token"
)

// parser holds the token stream and cursor. Unlike the teacher's
// channel-fed lexer, internal/lexer.Tokens returns the whole stream up
// front, so lookahead/backtracking is plain index arithmetic instead of a
// push/pop stack of re-queued tokens -- the same capability, simpler
// plumbing given the whole stream is already materialized.
type parser struct {
	toks []token.Token
	pos  int
	errs []string
}

// Parse lexes and parses input, returning the top-level statement list and
// any diagnostics gathered from either phase. Parse never returns a nil
// statement list with a nil error slice and no statements unless input was
// empty; syntax errors cause the offending declaration to be skipped, not
// the whole parse, per spec.md §4.2.
func Parse(input string) ([]ast.Stmt, []string) {
	toks, lexErrs := lexer.Tokens(input)
	p := &parser{toks: toks}
	p.errs = append(p.errs, lexErrs...)

	var stmts []ast.Stmt
	for !p.check(token.EOF) {
		if p.match(token.NEWLINE) {
			continue
		}
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts, p.errs
}

func (p *parser) errorf(line int, format string, args ...interface{}) {
	p.errs = append(p.errs, fmt.Sprintf("line %d: %s", line, fmt.Sprintf(format, args...)))
}

// ---- token stream primitives ----

func (p *parser) peek() token.Token { return p.toks[p.pos] }

func (p *parser) peekAt(off int) token.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) check(k token.Kind) bool { return p.peek().Kind == k }

func (p *parser) advance() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.check(k) {
		return p.advance(), true
	}
	p.errorf(p.peek().Line, "expected %s, got %s", what, p.peek().Kind)
	return token.Token{}, false
}

// skipNewlines consumes NEWLINE separators between declarations.
func (p *parser) skipNewlines() {
	for p.match(token.NEWLINE) {
	}
}

// synchronize resynchronizes after a syntax error: skip tokens until a
// NEWLINE or a statement-starting keyword (spec.md §4.2).
func (p *parser) synchronize() {
	for !p.check(token.EOF) {
		if p.peek().Kind == token.NEWLINE {
			p.advance()
			return
		}
		switch p.peek().Kind {
		case token.LET, token.TYPE, token.IMPL, token.FUN, token.IMPORT,
			token.DELETE, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

// ---- declarations & statements ----

func (p *parser) declaration() ast.Stmt {
	line := p.peek().Line
	var s ast.Stmt
	var ok bool
	switch p.peek().Kind {
	case token.FUN:
		s, ok = p.functionDecl()
	case token.LET:
		s, ok = p.letDecl()
	case token.TYPE:
		s, ok = p.typeDecl()
	case token.IMPL:
		s, ok = p.implDecl()
	case token.IMPORT:
		s, ok = p.importDecl()
	case token.DELETE:
		s, ok = p.deleteStmt()
	default:
		s, ok = p.statement()
	}
	if !ok {
		_ = line
		p.synchronize()
		return nil
	}
	return s
}

func (p *parser) letDecl() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'let'
	mutable := p.match(token.MUTABLE)
	name, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.ASSIGN, "'='"); !ok {
		return nil, false
	}
	init := p.expr()
	if init == nil {
		return nil, false
	}
	p.match(token.NEWLINE)
	return &ast.Let{Base: ast.NewBase(line), Name: name.Lexeme, Initializer: init, Mutable: mutable}, true
}

func (p *parser) typeDecl() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'type'
	name, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.ASSIGN, "'='"); !ok {
		return nil, false
	}
	var kind ast.TypeKind
	switch {
	case p.match(token.STRUCT):
		kind = ast.StructKind
	case p.match(token.CLASS):
		kind = ast.ClassKind
	default:
		p.errorf(p.peek().Line, "expected 'struct' or 'class'")
		return nil, false
	}
	if _, ok := p.expect(token.LBRACE, "'{'"); !ok {
		return nil, false
	}
	var fields []string
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		fname, ok := p.expect(token.IDENT, "field name")
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.COLON, "':'"); !ok {
			return nil, false
		}
		if _, ok := p.expect(token.IDENT, "field type"); !ok {
			return nil, false
		}
		fields = append(fields, fname.Lexeme)
		p.match(token.COMMA, token.SEMICOLON, token.NEWLINE)
	}
	if _, ok := p.expect(token.RBRACE, "'}'"); !ok {
		return nil, false
	}
	p.match(token.NEWLINE)
	return &ast.TypeDecl{Base: ast.NewBase(line), Name: name.Lexeme, Kind: kind, Fields: fields}, true
}

func (p *parser) implDecl() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'impl'
	name, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.COLON, "':'"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.NEWLINE, "newline"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.INDENT, "indented block"); !ok {
		return nil, false
	}
	var methods []*ast.Function
	for p.match(token.FUN) {
		f, ok := p.functionBody()
		if !ok {
			return nil, false
		}
		methods = append(methods, f)
	}
	if _, ok := p.expect(token.DEDENT, "dedent"); !ok {
		return nil, false
	}
	return &ast.Impl{Base: ast.NewBase(line), TypeName: name.Lexeme, Methods: methods}, true
}

func (p *parser) functionDecl() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'fun'
	return p.functionBody1(line)
}

func (p *parser) functionBody() (*ast.Function, bool) {
	line := p.peekAt(-1).Line
	f, ok := p.functionBody1(line)
	if !ok {
		return nil, false
	}
	return f.(*ast.Function), true
}

func (p *parser) functionBody1(line int) (ast.Stmt, bool) {
	name, ok := p.expect(token.IDENT, "function name")
	if !ok {
		return nil, false
	}
	params, ok := p.paramList()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.COLON, "':'"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.NEWLINE, "newline"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.INDENT, "indented block"); !ok {
		return nil, false
	}
	body := p.blockBody()
	if _, ok := p.expect(token.DEDENT, "dedent"); !ok {
		return nil, false
	}
	return &ast.Function{Base: ast.NewBase(line), Name: name.Lexeme, Params: params, Body: body}, true
}

func (p *parser) paramList() ([]string, bool) {
	if _, ok := p.expect(token.LPAREN, "'('"); !ok {
		return nil, false
	}
	var params []string
	if !p.check(token.RPAREN) {
		for {
			id, ok := p.expect(token.IDENT, "parameter name")
			if !ok {
				return nil, false
			}
			params = append(params, id.Lexeme)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, ok := p.expect(token.RPAREN, "')'"); !ok {
		return nil, false
	}
	return params, true
}

func (p *parser) importDecl() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'import'
	path, ok := p.expect(token.STRING, "string path")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.AS, "'as'"); !ok {
		return nil, false
	}
	alias, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return nil, false
	}
	p.match(token.NEWLINE)
	return &ast.Import{Base: ast.NewBase(line), Path: path.Literal.(string), Alias: alias.Lexeme}, true
}

func (p *parser) deleteStmt() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'delete'
	name, ok := p.expect(token.IDENT, "identifier")
	if !ok {
		return nil, false
	}
	p.match(token.NEWLINE)
	return &ast.Delete{Base: ast.NewBase(line), Name: name.Lexeme}, true
}

func (p *parser) statement() (ast.Stmt, bool) {
	switch p.peek().Kind {
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.PRINT:
		return p.printStmt()
	case token.RETURN:
		return p.returnStmt()
	case token.INDENT:
		return p.blockStmt()
	default:
		return p.exprStmt()
	}
}

func (p *parser) blockStmt() (ast.Stmt, bool) {
	line := p.advance().Line // consume INDENT
	stmts := p.blockBody()
	if _, ok := p.expect(token.DEDENT, "dedent"); !ok {
		return nil, false
	}
	return &ast.Block{Base: ast.NewBase(line), Stmts: stmts}, true
}

// blockBody parses declarations until a DEDENT or EOF is reached, without
// consuming the terminator.
func (p *parser) blockBody() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.DEDENT) && !p.check(token.EOF) {
		if p.match(token.NEWLINE) {
			continue
		}
		if s := p.declaration(); s != nil {
			stmts = append(stmts, s)
		}
	}
	return stmts
}

func (p *parser) ifStmt() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'if'
	cond := p.expr()
	if cond == nil {
		return nil, false
	}
	if _, ok := p.expect(token.COLON, "':'"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.NEWLINE, "newline"); !ok {
		return nil, false
	}
	then, ok := p.statement()
	if !ok {
		return nil, false
	}
	p.skipNewlines()
	var elseStmt ast.Stmt
	if p.match(token.ELSE) {
		if _, ok := p.expect(token.COLON, "':'"); !ok {
			return nil, false
		}
		if _, ok := p.expect(token.NEWLINE, "newline"); !ok {
			return nil, false
		}
		elseStmt, ok = p.statement()
		if !ok {
			return nil, false
		}
	}
	return &ast.If{Base: ast.NewBase(line), Cond: cond, Then: then, Else: elseStmt}, true
}

func (p *parser) whileStmt() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'while'
	cond := p.expr()
	if cond == nil {
		return nil, false
	}
	if _, ok := p.expect(token.COLON, "':'"); !ok {
		return nil, false
	}
	if _, ok := p.expect(token.NEWLINE, "newline"); !ok {
		return nil, false
	}
	body, ok := p.statement()
	if !ok {
		return nil, false
	}
	return &ast.While{Base: ast.NewBase(line), Cond: cond, Body: body}, true
}

func (p *parser) printStmt() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'print'
	v := p.expr()
	if v == nil {
		return nil, false
	}
	p.match(token.NEWLINE)
	return &ast.Print{Base: ast.NewBase(line), Value: v}, true
}

func (p *parser) returnStmt() (ast.Stmt, bool) {
	line := p.advance().Line // consume 'return'
	var v ast.Expr
	if !p.check(token.NEWLINE) && !p.check(token.EOF) && !p.check(token.DEDENT) {
		v = p.expr()
		if v == nil {
			return nil, false
		}
	}
	p.match(token.NEWLINE)
	return &ast.Return{Base: ast.NewBase(line), Value: v}, true
}

func (p *parser) exprStmt() (ast.Stmt, bool) {
	line := p.peek().Line
	e := p.expr()
	if e == nil {
		return nil, false
	}
	p.match(token.NEWLINE)
	return &ast.ExprStmt{Base: ast.NewBase(line), X: e}, true
}
