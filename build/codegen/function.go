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

package codegen

import (
	"slices"
	"strings"

	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/internal/base/scope"
)

func (g *Generator) typeOf(ref *ast.TypeRef) (ir.Type, error) {
	if ref == nil {
		return ir.VoidType, nil
	}
	t, ok := g.univ.LookupType(ref.Name)
	if !ok {
		return nil, fmterr.Wrapf(ref.Src, ErrUndefined, "unknown type %s", ref.Name)
	}
	return t, nil
}

func (g *Generator) signature(def *ast.Definition) (*ir.FuncType, error) {
	result, err := g.typeOf(def.Return)
	if err != nil {
		return nil, err
	}
	sig := &ir.FuncType{Result: result, Params: make([]ir.Type, len(def.Params))}
	for i, param := range def.Params {
		t, err := g.typeOf(param.Type)
		if err != nil {
			return nil, err
		}
		if t == ir.VoidType {
			return nil, fmterr.Errorf(param.Src, "parameter %s cannot be void", param.Name)
		}
		sig.Params[i] = t
	}
	return sig, nil
}

// pendingBody is a declared function waiting for its body.
type pendingBody struct {
	grp  *ast.Group
	key  string
	def  *ast.Definition
	body *ast.SeqBlock
	fn   *ir.Function
	// created is true if the function has been added to the module by this member.
	created bool
}

// declare adds the function of a member to the module.
// It returns the body to emit, if any.
func (g *Generator) declare(def *ast.Definition, key string, body *ast.SeqBlock, override bool) (*pendingBody, error) {
	sig, err := g.signature(def)
	if err != nil {
		return nil, err
	}
	name := key
	if override {
		name = g.names.Name(key)
	}
	fn, created, err := g.declareFunction(def, key, name, sig, body != nil)
	if err != nil || body == nil {
		return nil, err
	}
	return &pendingBody{key: key, def: def, body: body, fn: fn, created: created}, nil
}

// declareFunction adds a function to the module.
// An existing declaration without a body is reused if its signature matches.
// The boolean is true if the function has been created.
func (g *Generator) declareFunction(def *ast.Definition, key, name string, sig *ir.FuncType, withBody bool) (*ir.Function, bool, error) {
	fn, ok := g.mod.Function(name)
	if !ok {
		fn, err := g.mod.AddFunction(name, sig)
		if err != nil {
			return nil, false, fmterr.Internal(fmterr.Position(def.Src, err))
		}
		g.names.Reserve(name)
		g.overloads[key] = append(g.overloads[key], fn)
		g.defined[fn] = withBody
		return fn, true, nil
	}
	switch {
	case len(fn.Params()) != len(sig.Params):
		return nil, false, fmterr.Wrapf(def.Src, ErrAlreadyDefined, "function %s already defined with different arity", name)
	case fn.HasBody() || g.defined[fn]:
		return nil, false, fmterr.Wrapf(def.Src, ErrAlreadyDefined, "function %s already defined", name)
	case !ir.Equal(fn.Signature(), sig):
		return nil, false, fmterr.Wrapf(def.Src, ErrAlreadyDefined, "function %s already declared as %s", name, fn.Signature())
	}
	if !slices.Contains(g.overloads[key], fn) {
		g.overloads[key] = append(g.overloads[key], fn)
	}
	g.defined[fn] = withBody
	return fn, false, nil
}

// emitPending emits the body of a declared function.
// If the body fails, the function is erased when this member created it
// and no call refers to it. Otherwise, only its body is dropped.
func (g *Generator) emitPending(p *pendingBody) error {
	err := g.emitBody(p.fn, p.def, p.body)
	if err == nil {
		return nil
	}
	if p.created && !g.called[p.fn] {
		g.erase(p.key, p.fn)
	} else {
		p.fn.DropBody()
	}
	return err
}

func (g *Generator) erase(key string, fn *ir.Function) {
	fn.EraseFromParent()
	delete(g.defined, fn)
	g.overloads[key] = slices.DeleteFunc(g.overloads[key], func(other *ir.Function) bool {
		return other == fn
	})
}

func (g *Generator) emitBody(fn *ir.Function, def *ast.Definition, body *ast.SeqBlock) error {
	g.fn = fn
	g.bld = ir.NewBuilder()
	g.frames = scope.NewFrames[ir.Value]()
	g.stack = g.stack[:0]
	defer func() {
		g.fn, g.bld, g.frames = nil, nil, nil
	}()
	g.bld.PositionAtEnd(fn.AppendBlock("entry"))
	for i, param := range fn.Params() {
		name := def.Params[i].Name
		param.SetName(name)
		g.frames.DefineValue(name, param)
	}
	if err := g.emitBlock(body); err != nil {
		return err
	}
	if !g.bld.InsertBlock().Terminated() {
		if fn.Signature().Result != ir.VoidType {
			return fmterr.Errorf(def.Src, "missing return at the end of %s", fn.Name())
		}
		if _, err := g.bld.RetVoid(); err != nil {
			return fmterr.Internal(fmterr.Position(def.Src, err))
		}
	}
	return fmterr.Position(def.Src, fn.Verify())
}

// resolveFunction finds a function given its name and its arguments:
// first in the unit, then in the modules compiled before.
// A function found in another module is declared in the current one.
func (g *Generator) resolveFunction(x ast.Node, name string, args []ir.Value) (*ir.Function, error) {
	var local []*ir.Function
	for _, fn := range g.overloads[name] {
		if len(fn.Params()) == len(args) {
			local = append(local, fn)
		}
	}
	if fn, ok := g.mod.Function(name); ok && len(fn.Params()) == len(args) && !slices.Contains(local, fn) {
		local = append(local, fn)
	}
	if len(local) > 0 {
		return pick(local, args), nil
	}
	for _, mod := range g.univ.Modules() {
		if mod == g.mod {
			continue
		}
		var ext []*ir.Function
		for fn := range mod.Functions() {
			if len(fn.Params()) == len(args) && isOverloadOf(fn.Name(), name) {
				ext = append(ext, fn)
			}
		}
		if len(ext) > 0 {
			return g.declareExtern(x, pick(ext, args))
		}
	}
	return nil, fmterr.Wrapf(x.Pos(), ErrUndefined, "undefined function %s with %d arguments", name, len(args))
}

// pick returns the first candidate accepting the types of the arguments,
// or the first candidate if none does.
func pick(candidates []*ir.Function, args []ir.Value) *ir.Function {
	for _, fn := range candidates {
		if accepts(fn, args) {
			return fn
		}
	}
	return candidates[0]
}

// accepts returns true if every argument has the type of its parameter.
// Constants are converted when the call is emitted and match any parameter.
func accepts(fn *ir.Function, args []ir.Value) bool {
	for i, param := range fn.Signature().Params {
		if _, ok := args[i].(*ir.Const); ok {
			continue
		}
		if !ir.Equal(param, args[i].Type()) {
			return false
		}
	}
	return true
}

// isOverloadOf returns true if name is root or root followed by an override index.
func isOverloadOf(name, root string) bool {
	if name == root {
		return true
	}
	suffix, ok := strings.CutPrefix(name, root+".")
	if !ok || suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (g *Generator) declareExtern(x ast.Node, ext *ir.Function) (*ir.Function, error) {
	if fn, ok := g.mod.Function(ext.Name()); ok {
		if !ir.Equal(fn.Signature(), ext.Signature()) {
			return nil, fmterr.Wrapf(x.Pos(), ErrAlreadyDefined, "function %s already declared as %s", fn.Name(), fn.Signature())
		}
		return fn, nil
	}
	fn, err := g.mod.AddFunction(ext.Name(), ext.Signature())
	if err != nil {
		return nil, fmterr.Internal(fmterr.Position(x.Pos(), err))
	}
	g.names.Reserve(fn.Name())
	return fn, nil
}
