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
	"math"

	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/cordy-lang/cordy/build/registry"
)

func (g *Generator) push(v ir.Value) {
	g.stack = append(g.stack, v)
}

func (g *Generator) pop() ir.Value {
	v := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	return v
}

// popOperands pops n values, the last one first, and loads the slots among them.
func (g *Generator) popOperands(args []ast.Expr) ([]ir.Value, error) {
	vals := make([]ir.Value, len(args))
	for i := len(args) - 1; i >= 0; i-- {
		v, err := g.load(args[i], g.pop())
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}

func (g *Generator) emitBlock(b ast.Block) error {
	switch b := b.(type) {
	case *ast.SeqBlock:
		g.frames.Push()
		for _, child := range b.Children {
			if err := g.emitBlock(child); err != nil {
				return err
			}
		}
		return g.frames.Pop()
	case *ast.ExprBlock:
		for _, x := range b.Exprs {
			if err := g.emitExpr(x); err != nil {
				return err
			}
			g.pop()
		}
		return nil
	case *ast.ReturnBlock:
		return g.emitReturn(b)
	case *ast.OpaqueBlock:
		return fmterr.Wrapf(b.Src, ErrNotImplemented, "%s statements", b.Keyword)
	}
	return fmterr.Internalf(b.Pos(), "block %T not supported", b)
}

func (g *Generator) emitReturn(b *ast.ReturnBlock) error {
	result := g.fn.Signature().Result
	if b.Value == nil {
		if result != ir.VoidType {
			return fmterr.Errorf(b.Src, "missing return value of type %s", result)
		}
		_, err := g.bld.RetVoid()
		return fmterr.Position(b.Src, err)
	}
	if err := g.emitExpr(b.Value); err != nil {
		return err
	}
	v, err := g.load(b.Value, g.pop())
	if err != nil {
		return err
	}
	_, err = g.bld.Ret(convertConst(v, result))
	return fmterr.Position(b.Src, err)
}

// emitExpr pushes the value of an expression on the operand stack.
func (g *Generator) emitExpr(x ast.Expr) error {
	v, err := g.expr(x)
	if err != nil {
		return err
	}
	g.push(v)
	return nil
}

func (g *Generator) expr(x ast.Expr) (ir.Value, error) {
	switch x := x.(type) {
	case *ast.IntLit:
		return intConst(x), nil
	case *ast.FloatLit:
		return ir.ConstFloat(ir.Float64Type, x.Value), nil
	case *ast.StringLit:
		return nil, fmterr.Wrapf(x.Src, ErrNotImplemented, "string literals")
	case *ast.VarRef:
		entry, _, ok := g.frames.Find(x.Name)
		if !ok {
			return nil, fmterr.Wrapf(x.Src, ErrUndefined, "undefined variable %s", x.Name)
		}
		return entry.Get(), nil
	case *ast.VarDecl:
		return g.declareVar(x)
	case *ast.Call:
		return g.call(x)
	case *ast.Expression:
		if x.Op.Class == registry.Assign {
			return g.assign(x)
		}
		return g.operator(x)
	}
	return nil, fmterr.Internalf(x.Pos(), "expression %T not supported", x)
}

func intConst(x *ast.IntLit) *ir.Const {
	switch {
	case x.Unsigned:
		return ir.ConstUint(ir.Uint64Type, x.UValue)
	case x.Value < math.MinInt32 || x.Value > math.MaxInt32:
		return ir.ConstInt(ir.Int64Type, x.Value)
	}
	return ir.ConstInt(ir.TypeFromKind(irkind.DefaultInt), x.Value)
}

// load returns the value stored in a slot, or the value itself if it is not a slot.
func (g *Generator) load(x ast.Expr, v ir.Value) (ir.Value, error) {
	if v == nil || v.Type() == ir.VoidType {
		return nil, fmterr.Errorf(x.Pos(), "%s has no value", x)
	}
	if _, ok := v.Type().(*ir.PointerType); !ok {
		return v, nil
	}
	in, err := g.bld.Load(v, "")
	if err != nil {
		return nil, fmterr.Position(x.Pos(), err)
	}
	return in, nil
}

func (g *Generator) declareVar(x *ast.VarDecl) (ir.Value, error) {
	t, err := g.typeOf(x.Type)
	if err != nil {
		return nil, err
	}
	if t == ir.VoidType {
		return nil, fmterr.Errorf(x.Src, "variable %s cannot be void", x.Name)
	}
	if g.frames.IsLocal(x.Name) {
		return nil, fmterr.Wrapf(x.Src, ErrAlreadyDefined, "variable %s already declared", x.Name)
	}
	return g.allocate(x, t, x.Name)
}

func (g *Generator) allocate(x ast.Node, t ir.Type, name string) (ir.Value, error) {
	slot, err := g.bld.Alloca(t, name)
	if err != nil {
		return nil, fmterr.Position(x.Pos(), err)
	}
	g.frames.DefineSlot(name, slot)
	return slot, nil
}

// target returns the slot assigned by an expression.
// A value is promoted to a slot on its first assignment.
// It returns nil for a name not defined yet.
func (g *Generator) target(x ast.Expr) (ir.Value, error) {
	switch x := x.(type) {
	case *ast.VarDecl:
		return g.declareVar(x)
	case *ast.VarRef:
		entry, _, ok := g.frames.Find(x.Name)
		if !ok {
			return nil, nil
		}
		if entry.IsSlot() {
			return entry.Get(), nil
		}
		val := entry.Get()
		slot, err := g.bld.Alloca(val.Type(), x.Name)
		if err != nil {
			return nil, fmterr.Position(x.Src, err)
		}
		if _, err := g.bld.Store(val, slot); err != nil {
			return nil, fmterr.Position(x.Src, err)
		}
		if err := g.frames.Promote(x.Name, slot); err != nil {
			return nil, fmterr.Internal(fmterr.Position(x.Src, err))
		}
		return slot, nil
	}
	return nil, fmterr.Errorf(x.Pos(), "cannot assign to %s", x)
}

// assign stores the right-hand side into the slot of the left-hand side.
// The value of the assignment is the value read back from the slot.
func (g *Generator) assign(x *ast.Expression) (ir.Value, error) {
	lhs, rhs := x.Args[0], x.Args[1]
	slot, err := g.target(lhs)
	if err != nil {
		return nil, err
	}
	g.push(slot)
	if err := g.emitExpr(rhs); err != nil {
		return nil, err
	}
	val, err := g.load(rhs, g.pop())
	if err != nil {
		return nil, err
	}
	if slot = g.pop(); slot == nil {
		if slot, err = g.allocate(lhs, val.Type(), lhs.(*ast.VarRef).Name); err != nil {
			return nil, err
		}
	}
	val = convertConst(val, slot.Type().(*ir.PointerType).Elem)
	if _, err := g.bld.Store(val, slot); err != nil {
		return nil, fmterr.Position(x.Src, err)
	}
	return g.load(x, slot)
}

// operator emits an expression applying an instruction or a function operator.
func (g *Generator) operator(x *ast.Expression) (ir.Value, error) {
	for _, arg := range x.Args {
		if err := g.emitExpr(arg); err != nil {
			return nil, err
		}
	}
	operands, err := g.popOperands(x.Args)
	if err != nil {
		return nil, err
	}
	switch x.Op.Callee {
	case registry.CalleeInstruction:
		emit, ok := instructions[x.Op.CalleeName]
		if !ok {
			return nil, fmterr.Wrapf(x.Src, ErrUndefined, "unknown instruction %s for operator %s", x.Op.CalleeName, x.Op.Representation)
		}
		v, err := emit(g.bld, x.Op.Predicates, operands)
		if err != nil {
			return nil, fmterr.Position(x.Src, err)
		}
		return v, nil
	case registry.CalleeFunction:
		fn, err := g.resolveFunction(x, x.Op.CalleeName, operands)
		if err != nil {
			return nil, err
		}
		return g.emitCall(x, fn, operands)
	}
	return nil, fmterr.Internalf(x.Src, "operator %s has no callee", x.Op.Representation)
}

func (g *Generator) call(x *ast.Call) (ir.Value, error) {
	for _, arg := range x.Args {
		if err := g.emitExpr(arg); err != nil {
			return nil, err
		}
	}
	args, err := g.popOperands(x.Args)
	if err != nil {
		return nil, err
	}
	fn, err := g.resolveFunction(x, x.Name, args)
	if err != nil {
		return nil, err
	}
	return g.emitCall(x, fn, args)
}

func (g *Generator) emitCall(x ast.Node, fn *ir.Function, args []ir.Value) (ir.Value, error) {
	for i, param := range fn.Signature().Params {
		args[i] = convertConst(args[i], param)
	}
	in, err := g.bld.Call(fn, args, "")
	if err != nil {
		return nil, fmterr.Position(x.Pos(), err)
	}
	g.called[fn] = true
	return in, nil
}
