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
	"github.com/mistvale/langrun/internal/value"
)

// evalCall implements spec.md §4.5.4: `obj.name(args)` dispatches through
// methodDispatch, anything else evaluates the callee to a Function or
// Native and calls it directly.
func (e *Evaluator) evalCall(sc *scope.Scope, n *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(sc, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if get, ok := n.Callee.(*ast.Get); ok {
		obj, err := e.evalExpr(sc, get.Object)
		if err != nil {
			return nil, err
		}
		return e.methodDispatch(sc, n.Line(), obj, get.Name, args)
	}

	callee, err := e.evalExpr(sc, n.Callee)
	if err != nil {
		return nil, err
	}
	switch c := callee.(type) {
	case value.Function:
		return e.callFunction(c, args, n.Line())
	case value.Native:
		if len(args) != nativeArity(c.Name) {
			return nil, evalerr.NewTypeError(n.Line(), "%s expects %d args.", c.Name, nativeArity(c.Name))
		}
		return c.Call(args)
	default:
		return nil, evalerr.NewTypeError(n.Line(), "%s is not callable", callee.TypeTag())
	}
}

// callFunction runs fn with args bound as fresh parameter bindings in a
// scope parented to fn's own captured scope (spec.md §4.5.4, §4.5.5): a
// Function Value carries its closure, not the call site's scope.
func (e *Evaluator) callFunction(fn value.Function, args []value.Value, line int) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, evalerr.NewTypeError(line, "Lambda/Method expects %d args.", len(fn.Params))
	}

	closure := scope.New()
	for name, v := range fn.Captured {
		closure.Define(name, v, false)
	}
	callScope := scope.NewChild(closure)
	for i, p := range fn.Params {
		if err := e.bindNew(callScope, line, p, args[i], false); err != nil {
			return nil, err
		}
	}
	return e.execCallBody(callScope, fn.Body)
}

// evalLambda implements spec.md §4.5.5: a copy-capture binds a copied,
// retained snapshot of the named binding; an address-capture binds a
// Pointer aliasing the defining scope.
func (e *Evaluator) evalLambda(sc *scope.Scope, n *ast.Lambda) (value.Value, error) {
	captured := map[string]value.Value{}
	for _, c := range n.Captures {
		if c.ByAddress {
			owner, ok := sc.Resolve(c.Name)
			if !ok {
				return nil, evalerr.NewNameError(n.Line(), c.Name)
			}
			captured[c.Name] = value.Pointer{Scope: owner, Name: c.Name}
			continue
		}
		v, ok := sc.Get(c.Name)
		if !ok {
			return nil, evalerr.NewNameError(n.Line(), c.Name)
		}
		cp := v.Copy()
		cp.Retain(e.Heap)
		captured[c.Name] = cp
	}
	return value.Function{Params: n.Params, Body: n.Body, Captured: captured}, nil
}
