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
	"github.com/mistvale/langrun/internal/parser"
	"github.com/mistvale/langrun/internal/scope"
	"github.com/mistvale/langrun/internal/value"
)

// execImport implements spec.md §4.5.8, grounded the same way
// modules.go's Read resolves a name through findFile before lexing and
// parsing it: ask the host SourceProvider for the text, run the full
// Lexer→Parser→Evaluator pipeline against a fresh scope sharing this
// Evaluator's heap and tables, then fold the module scope's direct
// bindings into a Struct named "Module".
func (e *Evaluator) execImport(sc *scope.Scope, n *ast.Import) error {
	resolvedName, contents, err := e.Source.Source(n.Path)
	if err != nil {
		return evalerr.NewImportError(n.Line(), n.Path, err.Error())
	}

	e.modulesMu.Lock()
	cached, ok := e.modules[resolvedName]
	e.modulesMu.Unlock()
	if ok {
		return e.bindNew(sc, n.Line(), n.Alias, cached, false)
	}

	stmts, errs := parser.Parse(contents)
	if len(errs) > 0 {
		return evalerr.NewImportError(n.Line(), n.Path, errs[0])
	}

	moduleScope := scope.New()
	child := e.spawned()
	child.BindNatives(moduleScope)
	if err := child.Run(stmts, moduleScope); err != nil {
		return evalerr.NewImportError(n.Line(), n.Path, err.Error())
	}

	fields := moduleScope.Exports()
	mod := value.Struct{TypeName: "Module", Fields: fields}

	e.modulesMu.Lock()
	e.modules[resolvedName] = mod
	e.modulesMu.Unlock()

	return e.bindNew(sc, n.Line(), n.Alias, mod, false)
}
