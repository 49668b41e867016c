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
	"fmt"
	"runtime"
	"testing"

	"github.com/openconfig/gnmi/errdiff"

	"github.com/mistvale/langrun/internal/ast"
)

func line() int {
	_, _, l, _ := runtime.Caller(1)
	return l
}

func TestParseShapes(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want string // fmt.Sprintf("%T", stmt) of each top-level statement, joined
	}{
		{line(), "let x = 10\n", "*ast.Let"},
		{line(), "let mutable y = 20\n", "*ast.Let"},
		{line(), "type Box = class { v: int }\n", "*ast.TypeDecl"},
		{line(), "type P = struct { x: int, y: int }\n", "*ast.TypeDecl"},
		{line(), "print 1 + 2\n", "*ast.Print"},
		{line(), "if x:\n    print 1\n", "*ast.If"},
		{line(), "while x:\n    print 1\n", "*ast.While"},
		{line(), "import \"mod\" as M\n", "*ast.Import"},
		{line(), "delete x\n", "*ast.Delete"},
		{line(), "fun f(a, b):\n    return a + b\n", "*ast.Function"},
		{line(), "x = 1\n", "*ast.ExprStmt"},
	} {
		stmts, errs := Parse(tt.in)
		if len(errs) != 0 {
			t.Errorf("case at line %d: Parse(%q): unexpected errors: %v", tt.line, tt.in, errs)
			continue
		}
		if len(stmts) != 1 {
			t.Errorf("case at line %d: Parse(%q): want 1 statement, got %d", tt.line, tt.in, len(stmts))
			continue
		}
		got := fmt.Sprintf("%T", stmts[0])
		if got != tt.want {
			t.Errorf("case at line %d: Parse(%q): got %s, want %s", tt.line, tt.in, got, tt.want)
		}
	}
}

func TestAssignmentTargetRewriting(t *testing.T) {
	stmts, errs := Parse("a.b = 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	es, ok := stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", stmts[0])
	}
	if _, ok := es.X.(*ast.Set); !ok {
		t.Errorf("want *ast.Set, got %T", es.X)
	}

	stmts, errs = Parse("x.* = 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	es, ok = stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("want *ast.ExprStmt, got %T", stmts[0])
	}
	if _, ok := es.X.(*ast.PointerSet); !ok {
		t.Errorf("want *ast.PointerSet, got %T", es.X)
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	_, errs := Parse("1 = 2\n")
	if len(errs) == 0 {
		t.Fatal("want an error, got none")
	}
	if diff := errdiff.Substring(joinErrs(errs), "invalid assignment target"); diff != "" {
		t.Errorf("%s", diff)
	}
}

func TestListVsLambdaDisambiguation(t *testing.T) {
	stmts, errs := Parse("let f = [factor](n):\n    return n * factor\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	l, ok := stmts[0].(*ast.Let)
	if !ok {
		t.Fatalf("want *ast.Let, got %T", stmts[0])
	}
	if _, ok := l.Initializer.(*ast.Lambda); !ok {
		t.Errorf("want *ast.Lambda initializer, got %T", l.Initializer)
	}

	stmts, errs = Parse("let xs = [1, 2, 3]\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	l, ok = stmts[0].(*ast.Let)
	if !ok {
		t.Fatalf("want *ast.Let, got %T", stmts[0])
	}
	if _, ok := l.Initializer.(*ast.ListLit); !ok {
		t.Errorf("want *ast.ListLit initializer, got %T", l.Initializer)
	}
}

func TestPointerCaptureByAddress(t *testing.T) {
	stmts, errs := Parse("let bump = [*x]():\n    return 1\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	l := stmts[0].(*ast.Let)
	lam := l.Initializer.(*ast.Lambda)
	if len(lam.Captures) != 1 || lam.Captures[0].Name != "x" || !lam.Captures[0].ByAddress {
		t.Errorf("got captures %+v, want [{x true}]", lam.Captures)
	}
}

func TestSyntaxErrorRecoveryContinues(t *testing.T) {
	// The first declaration is malformed ('let' missing a name); the
	// parser should resynchronize and still parse the second statement.
	in := "let = 1\nprint 2\n"
	stmts, errs := Parse(in)
	if len(errs) == 0 {
		t.Fatal("want at least one error, got none")
	}
	if len(stmts) != 1 {
		t.Fatalf("want 1 recovered statement, got %d: %#v", len(stmts), stmts)
	}
	if _, ok := stmts[0].(*ast.Print); !ok {
		t.Errorf("want *ast.Print recovered, got %T", stmts[0])
	}
}

func joinErrs(errs []string) error {
	return errsJoined(errs)
}

type errsJoined []string

func (e errsJoined) Error() string {
	out := ""
	for i, s := range e {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}
