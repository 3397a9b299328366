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

// Package driver compiles a tree of Cordy units.
//
// Directories are namespaces. The namespaces nested in a directory are
// compiled before the units of that directory, and directories starting
// with an underscore are merged into their parent namespace. Every unit is
// compiled into its own IR module, appended to a universe shared by the
// whole compilation: operators and keyword types declared by a unit are
// visible to the units compiled after it.
package driver

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/codegen"
	"github.com/cordy-lang/cordy/build/diag"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/parser"
	"github.com/cordy-lang/cordy/build/registry"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/mod/module"
)

// Ext is the extension of Cordy source files.
const Ext = ".co"

// Options of a driver.
type Options struct {
	// Sink receives the diagnostics. Diagnostics are dropped if nil.
	Sink diag.Sink
	// Root is the table of operators visible from every unit.
	Root *registry.Table
	// Preludes are compiled, in order, before any other tree.
	Preludes []fs.FS
}

// Unit is a compiled unit.
type Unit struct {
	// Path of the source file in its file system.
	Path   string
	Module *ir.Module
	AST    *ast.Unit
	// Errors is the number of errors reported for the unit.
	Errors int
}

// Driver compiles units into a shared universe.
type Driver struct {
	opts  Options
	univ  *registry.Universe
	units []*Unit
}

// New returns a driver. The preludes of the options are compiled immediately.
func New(opts Options) (*Driver, error) {
	root := opts.Root
	if root == nil {
		root = registry.NewTable()
	}
	d := &Driver{opts: opts, univ: registry.NewUniverse(root)}
	var errs error
	for _, prelude := range opts.Preludes {
		_, err := d.CompileTree(prelude, ".")
		errs = multierr.Append(errs, err)
	}
	return d, errs
}

// Universe returns the universe shared by the units.
func (d *Driver) Universe() *registry.Universe {
	return d.univ
}

// Units returns every unit compiled by the driver, in compilation order.
func (d *Driver) Units() []*Unit {
	return d.units
}

// ErrorCount returns the number of errors reported so far.
func (d *Driver) ErrorCount() int {
	count := 0
	for _, u := range d.units {
		count += u.Errors
	}
	return count
}

// namespace is a directory of a tree.
type namespace struct {
	dir       string
	name      []string
	subspaces []*namespace
	files     []string
}

func namespaceName(elem string) string {
	return strings.ReplaceAll(elem, " ", "_")
}

// discover builds the namespace rooted at dir.
func discover(fsys fs.FS, dir string, name []string) (*namespace, error) {
	ns := &namespace{dir: dir, name: name}
	if err := ns.collect(fsys, dir); err != nil {
		return nil, err
	}
	return ns, nil
}

// collect adds the subspaces and the units found in dir to the namespace.
func (ns *namespace) collect(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return errors.Errorf("cannot read namespace %s: %v", dir, err)
	}
	var files []string
	for _, entry := range entries {
		entryPath := path.Join(dir, entry.Name())
		if !entry.IsDir() {
			if strings.HasSuffix(entry.Name(), Ext) {
				files = append(files, entryPath)
			}
			continue
		}
		if strings.HasPrefix(entry.Name(), "_") {
			if err := ns.collect(fsys, entryPath); err != nil {
				return err
			}
			continue
		}
		sub, err := discover(fsys, entryPath, append(append([]string{}, ns.name...), namespaceName(entry.Name())))
		if err != nil {
			return err
		}
		ns.subspaces = append(ns.subspaces, sub)
	}
	sort.Strings(files)
	ns.files = append(ns.files, files...)
	return nil
}

// CompileTree compiles the namespace tree rooted at dir.
// Errors in the sources are reported to the sink of the driver.
// The returned error is only about the tree itself.
func (d *Driver) CompileTree(fsys fs.FS, dir string) ([]*Unit, error) {
	ns, err := discover(fsys, dir, nil)
	if err != nil {
		return nil, err
	}
	var units []*Unit
	return units, d.compileNamespace(fsys, ns, &units)
}

func (d *Driver) compileNamespace(fsys fs.FS, ns *namespace, units *[]*Unit) error {
	var errs error
	for _, sub := range ns.subspaces {
		errs = multierr.Append(errs, d.compileNamespace(fsys, sub, units))
	}
	for _, file := range ns.files {
		unit, err := d.CompileFile(fsys, file, ns.name...)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		*units = append(*units, unit)
	}
	return errs
}

// CompileFile compiles a single unit of a namespace.
func (d *Driver) CompileFile(fsys fs.FS, filePath string, ns ...string) (*Unit, error) {
	if err := module.CheckFilePath(filePath); err != nil {
		return nil, errors.Errorf("invalid unit path: %v", err)
	}
	src, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, errors.Errorf("cannot read unit: %v", err)
	}
	stem := strings.TrimSuffix(path.Base(filePath), Ext)
	modName := strings.Join(append(append([]string{}, ns...), namespaceName(stem)), ".")
	mod := ir.NewModule(modName)
	if err := d.univ.Append(mod); err != nil {
		return nil, fmterr.Internal(err)
	}
	unit := &Unit{Path: filePath, Module: mod, AST: ast.NewUnit(stem, filePath)}
	d.units = append(d.units, unit)

	rep := diag.NewReporter(d.opts.Sink, filePath, fmterr.StageDriver)
	parserRep := rep.WithStage(fmterr.StageParser)
	codegenRep := rep.WithStage(fmterr.StageCodegen)
	defer func() {
		unit.Errors = rep.ErrorCount() + parserRep.ErrorCount() + codegenRep.ErrorCount()
	}()
	rep.Messagef(lexer.Pos{}, "compiling %s", modName)
	stream, err := lexer.Tokenize(filePath, string(src))
	if err != nil {
		rep.Err(fmterr.WithStage(fmterr.StageLexer, err))
		return unit, nil
	}
	gen := codegen.New(mod, d.univ, unit.AST)
	parser.New(stream, d.univ, unit.AST, gen, parserRep).Parse()
	for _, err := range multierr.Errors(gen.EmitUnit()) {
		codegenRep.Err(err)
	}
	return unit, nil
}
