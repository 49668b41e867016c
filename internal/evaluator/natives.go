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
	"fmt"
	"time"

	"github.com/mistvale/langrun/internal/scope"
	"github.com/mistvale/langrun/internal/value"
)

// nativeArities mirrors the table in spec.md §4.5.10.
var nativeArities = map[string]int{
	"time":  0,
	"len":   1,
	"push":  2,
	"get":   2,
	"sleep": 1,
	"spawn": 1,
}

func nativeArity(name string) int { return nativeArities[name] }

// BindNatives defines every native in spec.md §4.5.10 in sc, the root
// scope of a running program. Each closes over e so it can reach the
// heap, clock, and task launcher without the value package needing to
// know about any of them.
func (e *Evaluator) BindNatives(sc *scope.Scope) {
	sc.Define("time", value.Native{Name: "time", Call: e.nativeTime}, false)
	sc.Define("len", value.Native{Name: "len", Call: e.nativeLen}, false)
	sc.Define("push", value.Native{Name: "push", Call: e.nativePush}, false)
	sc.Define("get", value.Native{Name: "get", Call: e.nativeGet}, false)
	sc.Define("sleep", value.Native{Name: "sleep", Call: e.nativeSleep}, false)
	sc.Define("spawn", value.Native{Name: "spawn", Call: e.nativeSpawn}, false)
}

func (e *Evaluator) nativeTime(args []value.Value) (value.Value, error) {
	return value.Int(e.Clock.Now().Unix()), nil
}

func (e *Evaluator) nativeLen(args []value.Value) (value.Value, error) {
	l, ok := args[0].(value.List)
	if !ok {
		return nil, fmt.Errorf("len: argument must be a List")
	}
	return value.Int(len(*l.Elems)), nil
}

func (e *Evaluator) nativePush(args []value.Value) (value.Value, error) {
	l, ok := args[0].(value.List)
	if !ok {
		return nil, fmt.Errorf("push: first argument must be a List")
	}
	item := args[1].Copy()
	item.Retain(e.Heap)
	*l.Elems = append(*l.Elems, item)
	return value.Null{}, nil
}

func (e *Evaluator) nativeGet(args []value.Value) (value.Value, error) {
	l, ok := args[0].(value.List)
	if !ok {
		return nil, fmt.Errorf("get: first argument must be a List")
	}
	i, ok := args[1].(value.Int)
	if !ok {
		return nil, fmt.Errorf("get: second argument must be an int")
	}
	if int(i) < 0 || int(i) >= len(*l.Elems) {
		return nil, fmt.Errorf("get: index %d out of range for length %d", i, len(*l.Elems))
	}
	return (*l.Elems)[i], nil
}

func (e *Evaluator) nativeSleep(args []value.Value) (value.Value, error) {
	ms, ok := args[0].(value.Int)
	if !ok {
		return nil, fmt.Errorf("sleep: argument must be an int")
	}
	e.Clock.Sleep(time.Duration(ms) * time.Millisecond)
	return value.Null{}, nil
}

func (e *Evaluator) nativeSpawn(args []value.Value) (value.Value, error) {
	fn, ok := args[0].(value.Function)
	if !ok {
		return nil, fmt.Errorf("spawn: argument must be a Function")
	}
	child := e.spawned()
	e.Launcher.Launch(func() error {
		_, err := child.callFunction(fn, nil, 0)
		return err
	})
	return value.Null{}, nil
}
