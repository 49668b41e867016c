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

// Program engine lexes, parses, and runs a Language source file.
//
// Usage: engine [--format run|tokens|ast] [--trace FILE] SCRIPT
//
// --format run (the default) evaluates SCRIPT. --format tokens dumps the
// token stream the lexer produced; --format ast prints the node type and
// source line of each parsed top-level statement (nested statements are
// not printed). Both alternate formats are diagnostic views into the
// front end and never evaluate the script.
package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"runtime/trace"
	"sort"
	"strings"

	"github.com/pborman/getopt/v2"

	"github.com/mistvale/langrun/internal/evaluator"
	"github.com/mistvale/langrun/internal/heap"
	"github.com/mistvale/langrun/internal/host"
	"github.com/mistvale/langrun/internal/lexer"
	"github.com/mistvale/langrun/internal/parser"
	"github.com/mistvale/langrun/internal/scope"
)

// formatter is one --format value: a function run against the script's
// path and source text. Registering these in a map, the way yang.go
// registers its output formatters, keeps adding a new diagnostic view a
// matter of adding one entry rather than threading a new flag everywhere.
type formatter struct {
	name string
	help string
	f    func(w io.Writer, path, source string) error
}

var formatters = map[string]*formatter{}

func register(f *formatter) { formatters[f.name] = f }

func init() {
	register(&formatter{name: "run", help: "lex, parse, and evaluate SCRIPT", f: runFormat})
	register(&formatter{name: "tokens", help: "print the lexer's token stream", f: tokensFormat})
	register(&formatter{name: "ast", help: "print the parsed statement tree", f: astFormat})
}

// stop is a package var, not a direct os.Exit call, so --trace can flush
// its output before the process actually exits, mirroring yang.go's `var
// stop = os.Exit` indirection.
var stop = os.Exit

func main() {
	var format string
	var tracePath string
	var help bool

	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)

	getopt.StringVarLong(&format, "format", 0, "output format: "+strings.Join(names, ", "), "FORMAT")
	getopt.StringVarLong(&tracePath, "trace", 0, "write an execution trace to FILE", "FILE")
	getopt.BoolVarLong(&help, "help", '?', "display help")
	getopt.SetParameters("SCRIPT")

	if err := getopt.Getopt(func(o getopt.Option) bool { return true }); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		stop(1)
		return
	}

	if help {
		getopt.CommandLine.PrintUsage(os.Stderr)
		fmt.Fprintln(os.Stderr, "\nFormats:")
		for _, n := range names {
			fmt.Fprintf(os.Stderr, "    %s - %s\n", n, formatters[n].help)
		}
		stop(0)
		return
	}

	if tracePath != "" {
		fp, err := os.Create(tracePath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			stop(1)
			return
		}
		trace.Start(fp)
		stop = func(code int) { trace.Stop(); fp.Close(); os.Exit(code) }
		defer trace.Stop()
	}

	if format == "" {
		format = "run"
	}
	fm, ok := formatters[format]
	if !ok {
		fmt.Fprintf(os.Stderr, "%s: invalid format. Choices are %s\n", format, strings.Join(names, ", "))
		stop(1)
		return
	}

	args := getopt.Args()
	if len(args) == 0 {
		// Without a script argument, print the usage banner and exit
		// normally (spec.md §6 "Command line").
		getopt.PrintUsage(os.Stdout)
		stop(0)
		return
	}
	if len(args) != 1 {
		getopt.PrintUsage(os.Stderr)
		stop(1)
		return
	}
	path := args[0]

	data, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
		return
	}

	if err := fm.f(os.Stdout, path, string(data)); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func tokensFormat(w io.Writer, path, source string) error {
	toks, errs := lexer.Tokens(source)
	for _, t := range toks {
		fmt.Fprintln(w, t)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %s", path, strings.Join(errs, "; "))
	}
	return nil
}

func astFormat(w io.Writer, path, source string) error {
	stmts, errs := parser.Parse(source)
	for _, s := range stmts {
		fmt.Fprintf(w, "%T @%d\n", s, s.Line())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %s", path, strings.Join(errs, "; "))
	}
	return nil
}

func runFormat(w io.Writer, path, source string) error {
	stmts, errs := parser.Parse(source)
	if len(errs) > 0 {
		return fmt.Errorf("%s: %s", path, strings.Join(errs, "; "))
	}

	h := heap.New()
	tables := evaluator.NewTables()
	sourceProvider := &host.FileSourceProvider{}
	ev := evaluator.New(h, tables, sourceProvider, host.SystemClock{}, host.GoTaskLauncher{}, w)

	root := scope.New()
	ev.BindNatives(root)

	if err := ev.Run(stmts, root); err != nil {
		return fmt.Errorf("%s: %s", path, err)
	}
	return nil
}
