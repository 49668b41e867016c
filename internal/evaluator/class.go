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

// evalNew implements `new T(args)` (spec.md §4.5.3): look up T, check
// arity, build a Struct payload by copying each evaluated argument into
// its field, then either allocate it on the heap (class) or hand back the
// Struct value directly (struct).
func (e *Evaluator) evalNew(sc *scope.Scope, n *ast.New) (value.Value, error) {
	td, ok := e.Tables.lookupType(n.TypeName)
	if !ok {
		return nil, evalerr.NewNameError(n.Line(), n.TypeName)
	}
	if len(n.Args) != len(td.Fields) {
		return nil, evalerr.NewTypeError(n.Line(), "%s expects %d args.", n.TypeName, len(td.Fields))
	}
	fields := make(map[string]value.Value, len(td.Fields))
	for i, argExpr := range n.Args {
		v, err := e.evalExpr(sc, argExpr)
		if err != nil {
			return nil, err
		}
		fields[td.Fields[i]] = v.Copy()
	}
	payload := value.Struct{TypeName: n.TypeName, Fields: fields}

	if td.Kind == ast.ClassKind {
		addr := e.Heap.Allocate(payload)
		return value.ClassRef{Addr: addr, TypeName: n.TypeName}, nil
	}
	return payload, nil
}

// evalGet implements a bare field read (spec.md §4.5.3 "Field read on a
// ClassRef first dereferences through the heap").
func (e *Evaluator) evalGet(sc *scope.Scope, n *ast.Get) (value.Value, error) {
	obj, err := e.evalExpr(sc, n.Object)
	if err != nil {
		return nil, err
	}
	return e.getField(n.Line(), obj, n.Name)
}

func (e *Evaluator) getField(line int, obj value.Value, name string) (value.Value, error) {
	switch ov := obj.(type) {
	case value.ClassRef:
		s, ok := e.Heap.Dereference(ov.Addr)
		if !ok {
			return nil, evalerr.NewMemoryError(line, "dereference of freed address")
		}
		v, ok := s.Fields[name]
		if !ok {
			return nil, evalerr.NewNameError(line, name)
		}
		return v, nil
	case value.Struct:
		v, ok := ov.Fields[name]
		if !ok {
			return nil, evalerr.NewNameError(line, name)
		}
		return v, nil
	default:
		return nil, evalerr.NewTypeError(line, "cannot read field %q of a %s", name, obj.TypeTag())
	}
}

// evalSet implements field write (spec.md §4.5.3 "Field write: evaluate,
// copy, retain the new value, release the old, store").
func (e *Evaluator) evalSet(sc *scope.Scope, n *ast.Set) (value.Value, error) {
	v, err := e.evalExpr(sc, n.Value)
	if err != nil {
		return nil, err
	}
	stored := v.Copy()
	stored.Retain(e.Heap)

	if variable, ok := n.Object.(*ast.Variable); ok {
		base, ok := sc.Get(variable.Name)
		if !ok {
			return nil, evalerr.NewNameError(n.Line(), variable.Name)
		}
		if cr, ok := base.(value.ClassRef); ok {
			return stored, e.storeClassField(n.Line(), cr, n.Name, stored)
		}
		st, ok := base.(value.Struct)
		if !ok {
			return nil, evalerr.NewTypeError(n.Line(), "cannot write field %q of a %s", n.Name, base.TypeTag())
		}
		old, hadOld := st.Fields[n.Name]
		st.Fields[n.Name] = stored
		if err := sc.Assign(variable.Name, st); err != nil {
			return nil, translateAssignError(n.Line(), variable.Name, err)
		}
		if hadOld {
			old.Release(e.Heap)
		}
		return stored, nil
	}

	obj, err := e.evalExpr(sc, n.Object)
	if err != nil {
		return nil, err
	}
	cr, ok := obj.(value.ClassRef)
	if !ok {
		return nil, evalerr.NewTypeError(n.Line(), "cannot write field %q of a %s", n.Name, obj.TypeTag())
	}
	return stored, e.storeClassField(n.Line(), cr, n.Name, stored)
}

func (e *Evaluator) storeClassField(line int, cr value.ClassRef, name string, stored value.Value) error {
	s, ok := e.Heap.Dereference(cr.Addr)
	if !ok {
		return evalerr.NewMemoryError(line, "dereference of freed address")
	}
	old, hadOld := s.Fields[name]
	s.Fields[name] = stored
	e.Heap.Store(cr.Addr, s)
	if hadOld {
		old.Release(e.Heap)
	}
	return nil
}

// methodDispatch implements spec.md §4.5.3's three-step method call rule
// for `obj.name(args)`.
func (e *Evaluator) methodDispatch(sc *scope.Scope, line int, obj value.Value, name string, args []value.Value) (value.Value, error) {
	if field, err := e.getField(line, obj, name); err == nil {
		switch callable := field.(type) {
		case value.Function:
			return e.callFunction(callable, args, line)
		case value.Native:
			return callable.Call(args)
		}
	}

	fn, ok := e.Tables.lookupMethod(obj.TypeTag(), name)
	if !ok {
		return nil, evalerr.NewNameError(line, name+" on "+obj.TypeTag())
	}
	if len(args) != len(fn.Params) {
		return nil, evalerr.NewTypeError(line, "Method '%s' expects %d args.", name, len(fn.Params))
	}

	methodScope := scope.NewChild(sc)
	thisCopy := obj.Copy()
	thisCopy.Retain(e.Heap)
	methodScope.Define("this", thisCopy, false)
	for i, p := range fn.Params {
		if err := e.bindNew(methodScope, line, p, args[i], false); err != nil {
			return nil, err
		}
	}

	result, err := e.execCallBody(methodScope, fn.Body)
	thisCopy.Release(e.Heap)
	return result, err
}

// execCallBody runs a call's body statements and translates a returnSignal
// into its carried Value (spec.md §4.5.4); falling off the end yields
// Null.
func (e *Evaluator) execCallBody(sc *scope.Scope, body []ast.Stmt) (value.Value, error) {
	for _, s := range body {
		if err := e.exec(sc, s); err != nil {
			if rs, ok := err.(returnSignal); ok {
				return rs.value, nil
			}
			return nil, err
		}
	}
	return value.Null{}, nil
}
