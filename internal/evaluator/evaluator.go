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

// Package evaluator implements the tree-walking interpreter: a type
// switch over ast.Stmt/ast.Expr, keeping a current *scope.Scope plus a
// reference to a heap and type/method tables shared across every thread
// an Engine spawns (spec.md §4.5, §5). This mirrors the way modules.go
// threads a *Modules with its shared caches through every recursive
// Read/Process call, rather than a visitor walking the tree from outside.
package evaluator

import (
	"fmt"
	"io"
	"sync"

	"github.com/mistvale/langrun/internal/ast"
	"github.com/mistvale/langrun/internal/evalerr"
	"github.com/mistvale/langrun/internal/heap"
	"github.com/mistvale/langrun/internal/host"
	"github.com/mistvale/langrun/internal/scope"
	"github.com/mistvale/langrun/internal/value"
)

// Tables is the shared, append-only type and method information every
// Evaluator spawned from the same Engine sees (spec.md §4.5, §5). A
// RWMutex guards it since `type`/`impl` declarations can run concurrently
// with lookups from a spawned thread.
type Tables struct {
	mu      sync.RWMutex
	types   map[string]*ast.TypeDecl
	methods map[string]map[string]*ast.Function
}

// NewTables returns an empty, ready-to-use Tables.
func NewTables() *Tables {
	return &Tables{
		types:   map[string]*ast.TypeDecl{},
		methods: map[string]map[string]*ast.Function{},
	}
}

func (t *Tables) defineType(td *ast.TypeDecl) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.types[td.Name] = td
}

func (t *Tables) lookupType(name string) (*ast.TypeDecl, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	td, ok := t.types[name]
	return td, ok
}

func (t *Tables) defineMethod(typeName string, fn *ast.Function) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.methods[typeName]
	if !ok {
		m = map[string]*ast.Function{}
		t.methods[typeName] = m
	}
	m[fn.Name] = fn
}

func (t *Tables) lookupMethod(typeName, name string) (*ast.Function, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.methods[typeName][name]
	return fn, ok
}

// Evaluator runs a Language program against a current scope (spec.md
// §4.5). Heap, Tables, Source, Clock, and Launcher are shared across every
// Evaluator a running program spawns; Scope is not.
type Evaluator struct {
	Heap     *heap.Heap
	Tables   *Tables
	Source   host.SourceProvider
	Clock    host.Clock
	Launcher host.TaskLauncher
	Out      io.Writer

	modulesMu sync.Mutex
	modules   map[string]value.Value // resolved path -> cached Module Struct
}

// New returns an Evaluator ready to run a top-level program. New and Run
// do not bind the natives of spec.md §4.5.10; the caller binds them into
// the root scope with BindNatives before calling Run.
func New(h *heap.Heap, tables *Tables, source host.SourceProvider, clock host.Clock, launcher host.TaskLauncher, out io.Writer) *Evaluator {
	return &Evaluator{
		Heap:     h,
		Tables:   tables,
		Source:   source,
		Clock:    clock,
		Launcher: launcher,
		Out:      out,
		modules:  map[string]value.Value{},
	}
}

// spawned returns a new Evaluator sharing this one's heap, tables, host
// collaborators, and module cache -- everything spec.md §5 says a spawned
// thread shares -- but nothing scope-related, since each thread keeps its
// own current scope.
func (e *Evaluator) spawned() *Evaluator {
	return &Evaluator{
		Heap:     e.Heap,
		Tables:   e.Tables,
		Source:   e.Source,
		Clock:    e.Clock,
		Launcher: e.Launcher,
		Out:      e.Out,
		modules:  e.modules,
	}
}

// returnSignal unwinds a call via Go's error-return channel (spec.md
// §4.5.4 "a return unwinds the call via non-local exit"), the way a
// Stmt/Expr walk elsewhere in the corpus would use a sentinel error to
// short-circuit a recursive walk rather than a labeled break.
type returnSignal struct {
	value value.Value
}

func (returnSignal) Error() string { return "return outside of a call" }

// Run executes stmts in sc, the top-level program scope. It is also used,
// with a fresh root scope, to run an imported module's body (spec.md
// §4.5.8). A spawned Function's body is run through callFunction instead.
func (e *Evaluator) Run(stmts []ast.Stmt, sc *scope.Scope) error {
	for _, s := range stmts {
		if err := e.exec(sc, s); err != nil {
			if _, ok := err.(returnSignal); ok {
				return nil // a bare top-level return simply stops the program
			}
			return err
		}
	}
	return nil
}

func (e *Evaluator) exec(sc *scope.Scope, s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Let:
		return e.execLet(sc, n)
	case *ast.TypeDecl:
		e.Tables.defineType(n)
		return nil
	case *ast.Impl:
		for _, fn := range n.Methods {
			e.Tables.defineMethod(n.TypeName, fn)
		}
		return nil
	case *ast.Function:
		fn := value.Function{Name: n.Name, Params: n.Params, Body: n.Body, Captured: map[string]value.Value{}}
		return e.bindNew(sc, n.Line(), n.Name, fn, true)
	case *ast.Return:
		var v value.Value = value.Null{}
		if n.Value != nil {
			rv, err := e.evalExpr(sc, n.Value)
			if err != nil {
				return err
			}
			v = rv
		}
		return returnSignal{value: v}
	case *ast.If:
		cond, err := e.evalExpr(sc, n.Cond)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return e.exec(sc, n.Then)
		}
		if n.Else != nil {
			return e.exec(sc, n.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := e.evalExpr(sc, n.Cond)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := e.exec(sc, n.Body); err != nil {
				return err
			}
		}
	case *ast.Block:
		child := scope.NewChild(sc)
		return e.execBlock(child, n.Stmts)
	case *ast.Print:
		v, err := e.evalExpr(sc, n.Value)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Out, stringify(v))
		return nil
	case *ast.Delete:
		fmt.Fprintln(e.Out, "Manual delete command ignored in ARC mode.")
		return nil
	case *ast.Import:
		return e.execImport(sc, n)
	case *ast.ExprStmt:
		_, err := e.evalExpr(sc, n.X)
		return err
	default:
		return evalerr.NewSyntaxError(s.Line(), "unhandled statement %T", s)
	}
}

// execBlock runs stmts in sc, then releases every binding sc itself
// introduced when the block exits (spec.md §4.5.2 "block exit releases
// every value in the exiting block's local scope") and clears sc's own
// bindings, destroying it: a Pointer captured by address into sc (spec.md
// §4.5.5, §5) must fail to read or write through it from this point on
// rather than see stale or freed data.
func (e *Evaluator) execBlock(sc *scope.Scope, stmts []ast.Stmt) error {
	err := func() error {
		for _, s := range stmts {
			if rerr := e.exec(sc, s); rerr != nil {
				return rerr
			}
		}
		return nil
	}()
	for _, v := range sc.Exports() {
		v.Release(e.Heap)
	}
	sc.Clear()
	return err
}

func (e *Evaluator) execLet(sc *scope.Scope, n *ast.Let) error {
	v, err := e.evalExpr(sc, n.Initializer)
	if err != nil {
		return err
	}
	return e.bindNew(sc, n.Line(), n.Name, v, n.Mutable)
}

// bindNew implements the copy-retain binding protocol of spec.md §4.5.2.
// Redefining a name already bound directly in sc overwrites it (spec.md
// §4.5.2 "let": no error on redefinition at the same level) and releases
// whatever the name previously held, the same as any other rebinding.
func (e *Evaluator) bindNew(sc *scope.Scope, line int, name string, v value.Value, mutable bool) error {
	old, hadOld := sc.GetLocal(name)
	stored := v.Copy()
	stored.Retain(e.Heap)
	if err := sc.Define(name, stored, mutable); err != nil {
		return evalerr.NewNameError(line, name)
	}
	if hadOld {
		old.Release(e.Heap)
	}
	return nil
}

// stringify renders v the way `print` does, expanding \n and \t inside a
// Prim(string) at print time only (spec.md §4.5.7).
func stringify(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return expandEscapes(string(s))
	}
	return v.String()
}

func expandEscapes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				out = append(out, '\n')
				i++
				continue
			case 't':
				out = append(out, '\t')
				i++
				continue
			}
		}
		out = append(out, s[i])
	}
	return string(out)
}
