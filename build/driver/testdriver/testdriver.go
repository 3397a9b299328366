// Copyright 2025 Google LLC
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

// Package testdriver compiles Cordy sources in tests.
//
// Tests given to Run share a single driver: operators and keyword types
// declared by a test are available to the tests following it.
package testdriver

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/cordy-lang/cordy/build/diag"
	"github.com/cordy-lang/cordy/build/driver"
	"github.com/google/go-cmp/cmp"
)

// Result of compiling the sources of a test.
type Result struct {
	Units []*driver.Unit
	// Err is the error about the tree, if any.
	Err error
	// Diags are the diagnostics reported while compiling the test.
	Diags []diag.Diagnostic
}

// Errors returns the messages of the error diagnostics.
func (r Result) Errors() []string {
	var msgs []string
	for _, d := range r.Diags {
		if d.Severity == diag.Error {
			msgs = append(msgs, d.Msg)
		}
	}
	return msgs
}

// Test compiled by Run.
type Test interface {
	// Source returns the files to compile.
	Source() fstest.MapFS
	// Check the result of the compilation.
	Check(t *testing.T, i int, res Result)
}

// Prelude is a unit which must compile without error.
type Prelude struct {
	Path string
	Src  string
}

var _ Test = Prelude{}

// Source returns the prelude as a single file.
func (p Prelude) Source() fstest.MapFS {
	return fstest.MapFS{p.Path: &fstest.MapFile{Data: []byte(p.Src)}}
}

// Check fails the test if any error has been reported.
func (p Prelude) Check(t *testing.T, i int, res Result) {
	if res.Err != nil {
		t.Fatalf("test %d: cannot compile prelude %s: %v", i, p.Path, res.Err)
	}
	if errs := res.Errors(); len(errs) > 0 {
		t.Fatalf("test %d: cannot compile prelude %s:\n%s", i, p.Path, strings.Join(errs, "\n"))
	}
}

// Unit is a single unit compiled by a test.
type Unit struct {
	Path string
	Src  string
	// Err is a substring of an expected error.
	// The unit must compile without error if empty.
	Err string
	// Want maps function names to their expected IR.
	Want map[string]string
}

var _ Test = Unit{}

// Source returns the unit as a single file.
func (u Unit) Source() fstest.MapFS {
	return fstest.MapFS{u.Path: &fstest.MapFile{Data: []byte(u.Src)}}
}

// Check the errors and the IR of the unit.
func (u Unit) Check(t *testing.T, i int, res Result) {
	if !checkErrors(t, i, u.Err, res) {
		return
	}
	if len(res.Units) != 1 {
		t.Errorf("test %d: got %d units but want 1", i, len(res.Units))
		return
	}
	mod := res.Units[0].Module
	for name, want := range u.Want {
		fn, ok := mod.Function(name)
		if !ok {
			t.Errorf("test %d: function %s not found in:\n%s", i, name, mod)
			continue
		}
		if diff := cmp.Diff(strings.TrimSpace(want), strings.TrimSpace(fn.String())); diff != "" {
			t.Errorf("test %d: unexpected IR for %s (-want +got):\n%s", i, name, diff)
		}
	}
}

// Tree is a namespace tree compiled by a test.
type Tree struct {
	// Files maps paths to sources.
	Files map[string]string
	// Modules are the expected module names, in compilation order.
	Modules []string
	Err     string
}

var _ Test = Tree{}

// Source returns the files of the tree.
func (tr Tree) Source() fstest.MapFS {
	fsys := fstest.MapFS{}
	for path, src := range tr.Files {
		fsys[path] = &fstest.MapFile{Data: []byte(src)}
	}
	return fsys
}

// Check the errors and the compilation order of the tree.
func (tr Tree) Check(t *testing.T, i int, res Result) {
	if !checkErrors(t, i, tr.Err, res) {
		return
	}
	var got []string
	for _, unit := range res.Units {
		got = append(got, unit.Module.Name())
	}
	if diff := cmp.Diff(tr.Modules, got); diff != "" {
		t.Errorf("test %d: unexpected modules (-want +got):\n%s", i, diff)
	}
}

// checkErrors returns true if the test should continue.
func checkErrors(t *testing.T, i int, want string, res Result) bool {
	errs := res.Errors()
	if res.Err != nil {
		errs = append(errs, res.Err.Error())
	}
	if want == "" {
		if len(errs) > 0 {
			t.Errorf("test %d: unexpected errors:\n%s", i, strings.Join(errs, "\n"))
			return false
		}
		return true
	}
	for _, err := range errs {
		if strings.Contains(err, want) {
			return false
		}
	}
	if len(errs) == 0 {
		t.Errorf("test %d: got no error but want an error containing %q", i, want)
	} else {
		t.Errorf("test %d: got errors:\n%s\nbut want an error containing %q", i, strings.Join(errs, "\n"), want)
	}
	return false
}

// Run compiles the tests in order with a shared driver and returns the driver.
func Run(t *testing.T, tests ...Test) *driver.Driver {
	t.Helper()
	col := &diag.Collector{}
	drv, err := driver.New(driver.Options{Sink: col})
	if err != nil {
		t.Fatal(err)
	}
	for i, test := range tests {
		before := len(col.Diagnostics())
		units, err := drv.CompileTree(test.Source(), ".")
		test.Check(t, i, Result{
			Units: units,
			Err:   err,
			Diags: col.Diagnostics()[before:],
		})
	}
	return drv
}
