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

// Package host collects the Evaluator's collaborators with the outside
// world -- reading import source, telling time, and spawning concurrent
// tasks -- behind narrow interfaces (spec.md §6 "Host Interfaces"), the
// way pkg/yang kept file access behind a readFile variable so tests could
// swap it out without touching a real filesystem.
package host

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// SourceProvider resolves a module name used in an `import` statement to
// its source text (spec.md §4.5.8).
type SourceProvider interface {
	// Source returns the resolved file name and contents of the module
	// named by name.
	Source(name string) (resolvedName string, contents string, err error)
}

// Clock supplies the current time and blocking delay to the `time` and
// `sleep` natives (spec.md §4.5.10).
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// TaskLauncher runs fn as an independent concurrent task for the `spawn`
// native (spec.md §4.5.10 "spawn"). Implementations decide how fn's
// eventual error, if any, is reported; the Evaluator does not block on it.
type TaskLauncher interface {
	Launch(fn func() error)
}

// FileSourceProvider resolves modules against the local filesystem,
// searching Path the same way pkg/yang's findFile walked its module Path:
// the bare name first, then each search directory, appending ".lang" when
// name has no slash in it and does not already end in ".lang". A name
// containing a slash is only tried as given; Path is not searched for it.
type FileSourceProvider struct {
	// Path is the list of directories searched, in order, after the name
	// itself fails to open directly.
	Path []string
}

// readFile is a var, not a direct ioutil.ReadFile call, so tests can
// substitute a fake filesystem.
var readFile = ioutil.ReadFile

// AddPath appends dir to Path if it is not already present.
func (p *FileSourceProvider) AddPath(dirs ...string) {
	for _, d := range dirs {
		found := false
		for _, existing := range p.Path {
			if existing == d {
				found = true
				break
			}
		}
		if !found {
			p.Path = append(p.Path, d)
		}
	}
}

func (p *FileSourceProvider) Source(name string) (string, string, error) {
	slash := strings.Index(name, "/")
	fileName := name
	if slash < 0 && !strings.HasSuffix(fileName, ".lang") {
		fileName += ".lang"
	}

	if data, err := readFile(fileName); err == nil {
		p.AddPath(path.Dir(fileName))
		return fileName, string(data), nil
	} else if slash >= 0 {
		return "", "", fmt.Errorf("no such module: %s", name)
	}

	for _, dir := range p.Path {
		n := filepath.Join(dir, fileName)
		if data, err := readFile(n); err == nil {
			return n, string(data), nil
		}
	}
	return "", "", fmt.Errorf("no such module: %s", name)
}

// SystemClock is the Clock backed by the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time          { return time.Now() }
func (SystemClock) Sleep(d time.Duration)   { time.Sleep(d) }

// GoTaskLauncher is the TaskLauncher backed by a real goroutine. Errors
// returned by fn are reported to Stderr, mirroring how the Evaluator
// reports top-level runtime errors for the main task (spec.md §6): a
// spawned task has no caller left to hand an error back to.
type GoTaskLauncher struct{}

func (GoTaskLauncher) Launch(fn func() error) {
	go func() {
		if err := fn(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
}
