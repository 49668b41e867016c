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

package evaluator

import (
	"github.com/mistvale/langrun/internal/ast"
	"github.com/mistvale/langrun/internal/evalerr"
	"github.com/mistvale/langrun/internal/scope"
	"github.com/mistvale/langrun/internal/token"
	"github.com/mistvale/langrun/internal/value"
)

func (e *Evaluator) evalExpr(sc *scope.Scope, x ast.Expr) (value.Value, error) {
	switch n := x.(type) {
	case *ast.Literal:
		return literalValue(n.Value), nil
	case *ast.Variable:
		v, ok := sc.Get(n.Name)
		if !ok {
			return nil, evalerr.NewNameError(n.Line(), n.Name)
		}
		return v, nil
	case *ast.Assign:
		return e.evalAssign(sc, n)
	case *ast.Binary:
		return e.evalBinary(sc, n)
	case *ast.Unary:
		return e.evalUnary(sc, n)
	case *ast.Grouping:
		return e.evalExpr(sc, n.X)
	case *ast.Get:
		return e.evalGet(sc, n)
	case *ast.Set:
		return e.evalSet(sc, n)
	case *ast.Call:
		return e.evalCall(sc, n)
	case *ast.New:
		return e.evalNew(sc, n)
	case *ast.This:
		v, ok := sc.Get("this")
		if !ok {
			return nil, evalerr.NewNameError(n.Line(), "this")
		}
		return v, nil
	case *ast.ListLit:
		return e.evalListLit(sc, n)
	case *ast.Lambda:
		return e.evalLambda(sc, n)
	case *ast.AddressOf:
		owner, ok := sc.Resolve(n.Name)
		if !ok {
			return nil, evalerr.NewNameError(n.Line(), n.Name)
		}
		return value.Pointer{Scope: owner, Name: n.Name}, nil
	case *ast.Dereference:
		return e.evalDereference(sc, n)
	case *ast.PointerSet:
		return e.evalPointerSet(sc, n)
	case *ast.AtomLit:
		return value.Atom{Name: n.Name}, nil
	case *ast.Tuple:
		elems := make([]value.Value, len(n.Elems))
		for i, el := range n.Elems {
			v, err := e.evalExpr(sc, el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.Tuple{Elems: elems}, nil
	case *ast.MapLit:
		return e.evalMapLit(sc, n)
	default:
		return nil, evalerr.NewSyntaxError(x.Line(), "unhandled expression %T", x)
	}
}

func literalValue(v interface{}) value.Value {
	switch lv := v.(type) {
	case int32:
		return value.Int(lv)
	case string:
		return value.Str(lv)
	case bool:
		return value.Bool(lv)
	default:
		return value.Null{}
	}
}

func (e *Evaluator) evalAssign(sc *scope.Scope, n *ast.Assign) (value.Value, error) {
	v, err := e.evalExpr(sc, n.Value)
	if err != nil {
		return nil, err
	}
	old, _ := sc.Get(n.Name)
	stored := v.Copy()
	stored.Retain(e.Heap)
	if err := sc.Assign(n.Name, stored); err != nil {
		return nil, translateAssignError(n.Line(), n.Name, err)
	}
	if old != nil {
		old.Release(e.Heap)
	}
	return stored, nil
}

func translateAssignError(line int, name string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case containsSubstring(err.Error(), "not mutable"):
		return evalerr.NewImmutableError(line, name)
	case containsSubstring(err.Error(), "undefined name"):
		return evalerr.NewNameError(line, name)
	default:
		return evalerr.NewTypeError(line, "%s", err.Error())
	}
}

func containsSubstring(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func (e *Evaluator) evalBinary(sc *scope.Scope, n *ast.Binary) (value.Value, error) {
	l, err := e.evalExpr(sc, n.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.evalExpr(sc, n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case token.EQ:
		return value.Bool(value.Equal(l, r)), nil
	case token.NEQ:
		return value.Bool(!value.Equal(l, r)), nil
	}

	if n.Op == token.PLUS {
		if li, ok := l.(value.Int); ok {
			if ri, ok := r.(value.Int); ok {
				return li + ri, nil
			}
		}
		if ls, ok := l.(value.Str); ok {
			if rs, ok := r.(value.Str); ok {
				return ls + rs, nil
			}
		}
		return nil, evalerr.NewTypeError(n.Line(), "Operands must be two numbers or two strings.")
	}

	li, lok := l.(value.Int)
	ri, rok := r.(value.Int)
	if !lok || !rok {
		return nil, evalerr.NewTypeError(n.Line(), "Operands must be two numbers.")
	}
	switch n.Op {
	case token.MINUS:
		return li - ri, nil
	case token.STAR:
		return li * ri, nil
	case token.SLASH:
		if ri == 0 {
			return nil, evalerr.NewTypeError(n.Line(), "division by zero")
		}
		return li / ri, nil
	case token.LT:
		return value.Bool(li < ri), nil
	case token.LE:
		return value.Bool(li <= ri), nil
	case token.GT:
		return value.Bool(li > ri), nil
	case token.GE:
		return value.Bool(li >= ri), nil
	default:
		return nil, evalerr.NewSyntaxError(n.Line(), "unhandled binary operator %s", n.Op)
	}
}

func (e *Evaluator) evalUnary(sc *scope.Scope, n *ast.Unary) (value.Value, error) {
	v, err := e.evalExpr(sc, n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case token.BANG:
		return value.Bool(!v.Truthy()), nil
	case token.MINUS:
		i, ok := v.(value.Int)
		if !ok {
			return nil, evalerr.NewTypeError(n.Line(), "Operand must be a number.")
		}
		return -i, nil
	default:
		return nil, evalerr.NewSyntaxError(n.Line(), "unhandled unary operator %s", n.Op)
	}
}

func (e *Evaluator) evalListLit(sc *scope.Scope, n *ast.ListLit) (value.Value, error) {
	elems := make([]value.Value, len(n.Elems))
	for i, el := range n.Elems {
		v, err := e.evalExpr(sc, el)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return value.List{Elems: &elems}, nil
}

func (e *Evaluator) evalMapLit(sc *scope.Scope, n *ast.MapLit) (value.Value, error) {
	keys := make([]value.Value, len(n.Keys))
	vals := make([]value.Value, len(n.Values))
	for i := range n.Keys {
		k, err := e.evalExpr(sc, n.Keys[i])
		if err != nil {
			return nil, err
		}
		v, err := e.evalExpr(sc, n.Values[i])
		if err != nil {
			return nil, err
		}
		keys[i], vals[i] = k, v
	}
	return value.Map{Keys: keys, Values: vals}, nil
}

func (e *Evaluator) evalDereference(sc *scope.Scope, n *ast.Dereference) (value.Value, error) {
	pv, err := e.evalExpr(sc, n.X)
	if err != nil {
		return nil, err
	}
	p, ok := pv.(value.Pointer)
	if !ok {
		return nil, evalerr.NewTypeError(n.Line(), "cannot dereference a non-pointer value")
	}
	owner, ok := p.Scope.(*scope.Scope)
	if !ok {
		return nil, evalerr.NewMemoryError(n.Line(), "pointer scope handle is invalid")
	}
	v, ok := owner.GetLocal(p.Name)
	if !ok {
		return nil, evalerr.NewMemoryError(n.Line(), "Undefined variable '%s'", p.Name)
	}
	return v, nil
}

func (e *Evaluator) evalPointerSet(sc *scope.Scope, n *ast.PointerSet) (value.Value, error) {
	pv, err := e.evalExpr(sc, n.Ptr)
	if err != nil {
		return nil, err
	}
	p, ok := pv.(value.Pointer)
	if !ok {
		return nil, evalerr.NewTypeError(n.Line(), "cannot write through a non-pointer value")
	}
	owner, ok := p.Scope.(*scope.Scope)
	if !ok {
		return nil, evalerr.NewMemoryError(n.Line(), "pointer scope handle is invalid")
	}
	old, ok := owner.GetLocal(p.Name)
	if !ok {
		return nil, evalerr.NewMemoryError(n.Line(), "Undefined variable '%s'", p.Name)
	}
	v, err := e.evalExpr(sc, n.Value)
	if err != nil {
		return nil, err
	}
	stored := v.Copy()
	stored.Retain(e.Heap)
	if err := owner.AssignLocal(p.Name, stored); err != nil {
		stored.Release(e.Heap)
		return nil, translateAssignError(n.Line(), p.Name, err)
	}
	old.Release(e.Heap)
	return stored, nil
}
