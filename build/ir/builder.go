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

package ir

import (
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/pkg/errors"
)

// Builder appends instructions at the end of a basic block.
type Builder struct {
	block *Block
}

// NewBuilder returns a builder with no insertion block.
func NewBuilder() *Builder {
	return &Builder{}
}

// PositionAtEnd sets the block where instructions are appended.
func (b *Builder) PositionAtEnd(blk *Block) {
	b.block = blk
}

// InsertBlock returns the current insertion block.
func (b *Builder) InsertBlock() *Block {
	return b.block
}

func (b *Builder) insert(in *Instr, name string) (*Instr, error) {
	if b.block == nil {
		return nil, errors.Errorf("no insertion block")
	}
	if b.block.Terminated() {
		return nil, errors.Errorf("block %s already terminated", b.block.name)
	}
	if in.typ != VoidType {
		if name == "" {
			name = "t"
		}
		in.name = b.block.fn.names.Name(name)
	}
	in.block = b.block
	b.block.instrs = append(b.block.instrs, in)
	return in, nil
}

// Alloca allocates a slot for values of type t.
func (b *Builder) Alloca(t Type, name string) (*Instr, error) {
	return b.insert(&Instr{op: OpAlloca, typ: PointerTo(t), alloc: t}, name)
}

func slotType(ptr Value) (Type, error) {
	pt, ok := ptr.Type().(*PointerType)
	if !ok {
		return nil, errors.Errorf("%s is not a slot", ptr.Ref())
	}
	return pt.Elem, nil
}

// Load reads the value of a slot.
func (b *Builder) Load(ptr Value, name string) (*Instr, error) {
	elem, err := slotType(ptr)
	if err != nil {
		return nil, err
	}
	return b.insert(&Instr{op: OpLoad, typ: elem, operands: []Value{ptr}}, name)
}

// Store writes a value into a slot.
func (b *Builder) Store(v, ptr Value) (*Instr, error) {
	elem, err := slotType(ptr)
	if err != nil {
		return nil, err
	}
	if !Equal(elem, v.Type()) {
		return nil, errors.Errorf("cannot store a %s value into a slot of %s", v.Type(), elem)
	}
	return b.insert(&Instr{op: OpStore, typ: VoidType, operands: []Value{v, ptr}}, "")
}

// Ret returns a value.
func (b *Builder) Ret(v Value) (*Instr, error) {
	return b.insert(&Instr{op: OpRet, typ: VoidType, operands: []Value{v}}, "")
}

// RetVoid returns from a void function.
func (b *Builder) RetVoid() (*Instr, error) {
	return b.insert(&Instr{op: OpRet, typ: VoidType}, "")
}

// Call calls a function.
func (b *Builder) Call(fn *Function, args []Value, name string) (*Instr, error) {
	if len(args) != len(fn.sig.Params) {
		return nil, errors.Errorf("%s expects %d arguments but got %d", fn.name, len(fn.sig.Params), len(args))
	}
	for i, arg := range args {
		if !Equal(arg.Type(), fn.sig.Params[i]) {
			return nil, errors.Errorf("argument %d of %s: cannot use %s as %s", i, fn.name, arg.Type(), fn.sig.Params[i])
		}
	}
	return b.insert(&Instr{
		op:       OpCall,
		typ:      fn.sig.Result,
		operands: append([]Value{}, args...),
		callee:   fn,
	}, name)
}

type operandClass int

const (
	anyNumber operandClass = iota
	integers
	floats
	integersOrBools
)

var binaryClasses = map[Opcode]operandClass{
	OpAdd:  integers,
	OpSub:  integers,
	OpMul:  integers,
	OpSDiv: integers,
	OpUDiv: integers,
	OpSRem: integers,
	OpURem: integers,
	OpFAdd: floats,
	OpFSub: floats,
	OpFMul: floats,
	OpFDiv: floats,
	OpFRem: floats,
	OpAnd:  integersOrBools,
	OpOr:   integersOrBools,
	OpXor:  integersOrBools,
	OpShl:  integers,
	OpLShr: integers,
	OpAShr: integers,
}

func checkClass(op Opcode, class operandClass, t Type) error {
	knd := t.Kind()
	ok := false
	switch class {
	case integers:
		ok = irkind.IsIntegerKind(knd)
	case floats:
		ok = irkind.IsFloatKind(knd)
	case integersOrBools:
		ok = irkind.IsIntegerKind(knd) || knd == irkind.Bool
	default:
		ok = irkind.IsIntegerKind(knd) || irkind.IsFloatKind(knd)
	}
	if !ok {
		return errors.Errorf("%s does not support operands of type %s", op, t)
	}
	return nil
}

// Binary appends a binary arithmetic or bitwise instruction.
func (b *Builder) Binary(op Opcode, x, y Value, name string) (*Instr, error) {
	class, ok := binaryClasses[op]
	if !ok {
		return nil, errors.Errorf("%s is not a binary instruction", op)
	}
	if !Equal(x.Type(), y.Type()) {
		return nil, errors.Errorf("%s: mismatched operand types %s and %s", op, x.Type(), y.Type())
	}
	if err := checkClass(op, class, x.Type()); err != nil {
		return nil, err
	}
	return b.insert(&Instr{op: op, typ: x.Type(), operands: []Value{x, y}}, name)
}

// Compare appends an integer or a float comparison, depending on the predicate.
func (b *Builder) Compare(pred Predicate, x, y Value, name string) (*Instr, error) {
	if !Equal(x.Type(), y.Type()) {
		return nil, errors.Errorf("compare: mismatched operand types %s and %s", x.Type(), y.Type())
	}
	op, class := OpICmp, integersOrBools
	if pred.IsFloat() {
		op, class = OpFCmp, floats
	}
	if err := checkClass(op, class, x.Type()); err != nil {
		return nil, err
	}
	return b.insert(&Instr{op: op, typ: BoolType, operands: []Value{x, y}, pred: pred}, name)
}

// Unary appends a negation or a bitwise complement.
func (b *Builder) Unary(op Opcode, x Value, name string) (*Instr, error) {
	var class operandClass
	switch op {
	case OpNeg:
		class = integers
	case OpFNeg:
		class = floats
	case OpNot:
		class = integersOrBools
	default:
		return nil, errors.Errorf("%s is not a unary instruction", op)
	}
	if err := checkClass(op, class, x.Type()); err != nil {
		return nil, err
	}
	return b.insert(&Instr{op: op, typ: x.Type(), operands: []Value{x}}, name)
}
