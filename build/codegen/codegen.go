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

// Package codegen lowers the members of a Cordy unit to IR.
//
// The generator is also the handler of the parser: operators are registered
// in the universe as soon as they are declared, so that the members following
// them can use them. Bodies are lowered once the whole unit has been parsed.
package codegen

import (
	"strconv"

	"github.com/cordy-lang/cordy/base/uname"
	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/cordy-lang/cordy/build/registry"
	"github.com/cordy-lang/cordy/internal/base/scope"
	"github.com/pkg/errors"
)

// Generator errors.
var (
	ErrAlreadyDefined = errors.New("already defined")
	ErrUndefined      = errors.New("undefined")
	ErrNotImplemented = fmterr.ErrNotImplemented
)

// Generator lowers a unit into a module.
type Generator struct {
	mod  *ir.Module
	univ *registry.Universe
	unit *ast.Unit

	// names gives unique names to the functions of overrides.
	names *uname.Unique
	// overloads maps a source name to the functions emitted for it.
	overloads map[string][]*ir.Function
	// defined marks functions claimed by a member with a body.
	defined map[*ir.Function]bool
	// called marks functions referred to by an emitted call.
	called map[*ir.Function]bool

	// State of the function being emitted.
	fn     *ir.Function
	bld    *ir.Builder
	frames *scope.Frames[ir.Value]
	stack  []ir.Value
}

// New returns a generator emitting the members of unit into mod.
// The module must have been appended to the universe.
func New(mod *ir.Module, univ *registry.Universe, unit *ast.Unit) *Generator {
	g := &Generator{
		mod:       mod,
		univ:      univ,
		unit:      unit,
		names:     uname.NewWithSep("."),
		overloads: make(map[string][]*ir.Function),
		defined:   make(map[*ir.Function]bool),
		called:    make(map[*ir.Function]bool),
	}
	for fn := range mod.Functions() {
		g.names.Reserve(fn.Name())
	}
	return g
}

// Module returns the module in which the unit is emitted.
func (g *Generator) Module() *ir.Module {
	return g.mod
}

// Unit returns the unit being compiled.
func (g *Generator) Unit() *ast.Unit {
	return g.unit
}

// Handle adds a member to the unit.
// Operators are registered in the universe before being added.
func (g *Generator) Handle(m ast.Member) error {
	op, isOp := m.(*ast.Operator)
	if isOp {
		if err := g.univ.Register(g.mod, op.Op); err != nil {
			return fmterr.Position(op.Src, err)
		}
	}
	err := g.unit.Add(m)
	if err != nil && isOp {
		err = fmterr.SuffixWith(" (the %s operator %s stays registered with callee %s)", op.Op.Class, op.Op.Representation, op.Op.CalleeName)(err)
	}
	return err
}

// ApplyUnitParameter binds keyword types declared by the unit:
// TypeInt(Name, bits), TypeUint(Name, bits), TypeFloat(Name, bits) and TypeBool(Name).
func (g *Generator) ApplyUnitParameter(p ast.Parameter) error {
	var knd irkind.Kind
	switch p.Name {
	case "TypeBool":
		if len(p.Args) != 1 {
			return fmterr.Errorf(p.Src, "%s requires a type name", p.Name)
		}
		knd = irkind.Bool
	case "TypeInt", "TypeUint", "TypeFloat":
		if len(p.Args) != 2 {
			return fmterr.Errorf(p.Src, "%s requires a type name and a number of bits", p.Name)
		}
		bits, err := strconv.Atoi(p.Args[1])
		if err != nil {
			return fmterr.Errorf(p.Src, "invalid number of bits %q", p.Args[1])
		}
		switch p.Name {
		case "TypeInt":
			knd = irkind.IntKind(bits, false)
		case "TypeUint":
			knd = irkind.IntKind(bits, true)
		default:
			knd = irkind.FloatKind(bits)
		}
		if knd == irkind.Invalid {
			return fmterr.Errorf(p.Src, "%s: no %d bits type", p.Name, bits)
		}
	default:
		return fmterr.Errorf(p.Src, "wrong parameter %s for unit %s", p.Name, g.unit.Name)
	}
	return fmterr.Position(p.Src, g.univ.BindType(g.mod, p.Args[0], knd))
}

// EmitUnit emits every member of the unit, group by group.
// Every function is declared before any body is emitted, so that
// a body can call a function declared after it.
// A member failing to emit does not prevent the others from being emitted.
func (g *Generator) EmitUnit() error {
	var app fmterr.Appender
	var bodies []*pendingBody
	for grp := range g.unit.Groups() {
		app.Push(fmterr.PrefixWith("%s %s: ", grp.Kind, grp.Name))
		for i, m := range grp.Members() {
			body, err := g.declareMember(m, i > 0)
			if app.Append(err) && body != nil {
				body.grp = grp
				bodies = append(bodies, body)
			}
		}
		app.Pop()
	}
	for _, body := range bodies {
		app.Push(fmterr.PrefixWith("%s %s: ", body.grp.Kind, body.grp.Name))
		app.Append(g.emitPending(body))
		app.Pop()
	}
	return app.Err()
}

func (g *Generator) declareMember(m ast.Member, override bool) (*pendingBody, error) {
	switch m := m.(type) {
	case *ast.Function:
		return g.declare(&m.Definition, m.Name, m.Body, override)
	case *ast.Operator:
		if m.Op.Callee != registry.CalleeFunction {
			// Registered when declared.
			return nil, nil
		}
		return g.declare(&m.Definition, m.Op.CalleeName, m.Body, override)
	case *ast.Property, *ast.Indexer, *ast.Constructor, *ast.Event:
		return nil, fmterr.Wrapf(m.Pos(), ErrNotImplemented, "%s members", m.Kind())
	}
	return nil, fmterr.Internalf(m.Pos(), "member %T not supported", m)
}
