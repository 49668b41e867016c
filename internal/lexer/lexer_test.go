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

package lexer

import (
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/openconfig/gnmi/errdiff"

	"github.com/mistvale/langrun/internal/token"
)

// line returns the line number from which it was called, used to mark
// where a test table entry was written.
func line() int {
	_, _, l, _ := runtime.Caller(1)
	return l
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokensKinds(t *testing.T) {
	for _, tt := range []struct {
		line int
		in   string
		want []token.Kind
	}{
		{line(), "", []token.Kind{token.EOF}},
		{line(), "\n", []token.Kind{token.EOF}},
		{line(), "// just a comment\n", []token.Kind{token.EOF}},
		{line(), "let x = 10\n", []token.Kind{
			token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.NEWLINE, token.EOF,
		}},
		{line(), "let mutable y = 20\n", []token.Kind{
			token.LET, token.MUTABLE, token.IDENT, token.ASSIGN, token.NUMBER, token.NEWLINE, token.EOF,
		}},
		{line(), "print \"hi\"\n", []token.Kind{
			token.PRINT, token.STRING, token.NEWLINE, token.EOF,
		}},
		{line(), "print @ok\n", []token.Kind{
			token.PRINT, token.ATOM, token.NEWLINE, token.EOF,
		}},
		{line(), "#{@a => 1}\n", []token.Kind{
			token.MAPSTART, token.ATOM, token.ARROW, token.NUMBER, token.RBRACE, token.NEWLINE, token.EOF,
		}},
		{line(), "{1, 2}\n", []token.Kind{
			token.LBRACE, token.NUMBER, token.COMMA, token.NUMBER, token.RBRACE, token.NEWLINE, token.EOF,
		}},
		{line(), "a == b != c\n", []token.Kind{
			token.IDENT, token.EQ, token.IDENT, token.NEQ, token.IDENT, token.NEWLINE, token.EOF,
		}},
		{line(), "*x\n", []token.Kind{
			token.STAR, token.IDENT, token.NEWLINE, token.EOF,
		}},
		{line(), "if x:\n    print x\n", []token.Kind{
			token.IF, token.IDENT, token.COLON, token.NEWLINE,
			token.INDENT, token.PRINT, token.IDENT, token.NEWLINE,
			token.DEDENT, token.EOF,
		}},
		{line(), "if x:\n\tprint x\nprint 1\n", []token.Kind{
			token.IF, token.IDENT, token.COLON, token.NEWLINE,
			token.INDENT, token.PRINT, token.IDENT, token.NEWLINE,
			token.DEDENT, token.NEWLINE, token.PRINT, token.NUMBER, token.NEWLINE,
			token.EOF,
		}},
	} {
		toks, errs := Tokens(tt.in)
		if len(errs) != 0 {
			t.Errorf("case at line %d: unexpected errors: %v", tt.line, errs)
			continue
		}
		if diff := cmp.Diff(tt.want, kinds(toks)); diff != "" {
			t.Errorf("case at line %d: Tokens(%q) kind mismatch (-want +got):\n%s", tt.line, tt.in, diff)
		}
	}
}

func TestIndentationNesting(t *testing.T) {
	in := "if a:\n  if b:\n    print 1\n  print 2\nprint 3\n"
	toks, errs := Tokens(in)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	want := []token.Kind{
		token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.IF, token.IDENT, token.COLON, token.NEWLINE,
		token.INDENT, token.PRINT, token.NUMBER, token.NEWLINE,
		token.DEDENT, token.NEWLINE, token.PRINT, token.NUMBER, token.NEWLINE,
		token.DEDENT, token.NEWLINE, token.PRINT, token.NUMBER, token.NEWLINE,
		token.EOF,
	}
	if diff := cmp.Diff(want, kinds(toks)); diff != "" {
		t.Errorf("Tokens(%q) mismatch (-want +got):\n%s", in, diff)
	}
}

func TestInconsistentIndentation(t *testing.T) {
	// Dedent to a width that was never pushed: reported, but scanning
	// continues (spec.md §4.1 rule 5).
	in := "if a:\n    print 1\n  print 2\n"
	_, errs := Tokens(in)
	wantErr := "inconsistent indentation"
	if len(errs) == 0 {
		t.Fatalf("Tokens(%q): expected an error, got none", in)
	}
	if diff := errdiff.Substring(errsToError(errs), wantErr); diff != "" {
		t.Errorf("Tokens(%q) error mismatch: %s", in, diff)
	}
}

func TestLiteralPayloads(t *testing.T) {
	toks, errs := Tokens("let x = 42\nprint @ok\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	var gotNum, gotAtom interface{}
	for _, tok := range toks {
		switch tok.Kind {
		case token.NUMBER:
			gotNum = tok.Literal
		case token.ATOM:
			gotAtom = tok.Literal
		}
	}
	if diff := cmp.Diff(int32(42), gotNum); diff != "" {
		t.Errorf("NUMBER literal mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("ok", gotAtom); diff != "" {
		t.Errorf("ATOM literal mismatch (-want +got):\n%s", diff)
	}
}

// errsToError folds a slice of error strings into a single error the way
// errdiff.Substring expects, since the lexer accumulates diagnostics as
// strings rather than a single error (it never stops scanning).
func errsToError(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errJoin(errs)
}

type errJoin []string

func (e errJoin) Error() string {
	out := ""
	for i, s := range e {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}
