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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Opcode of an instruction.
type Opcode int

// Instruction opcodes.
const (
	OpInvalid Opcode = iota
	OpAlloca
	OpLoad
	OpStore
	OpRet
	OpCall
	OpAdd
	OpSub
	OpMul
	OpSDiv
	OpUDiv
	OpSRem
	OpURem
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFRem
	OpAnd
	OpOr
	OpXor
	OpShl
	OpLShr
	OpAShr
	OpICmp
	OpFCmp
	OpNeg
	OpFNeg
	OpNot
)

var opcodeNames = [...]string{
	OpInvalid: "invalid",
	OpAlloca:  "alloca",
	OpLoad:    "load",
	OpStore:   "store",
	OpRet:     "ret",
	OpCall:    "call",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpSDiv:    "sdiv",
	OpUDiv:    "udiv",
	OpSRem:    "srem",
	OpURem:    "urem",
	OpFAdd:    "fadd",
	OpFSub:    "fsub",
	OpFMul:    "fmul",
	OpFDiv:    "fdiv",
	OpFRem:    "frem",
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpShl:     "shl",
	OpLShr:    "lshr",
	OpAShr:    "ashr",
	OpICmp:    "icmp",
	OpFCmp:    "fcmp",
	OpNeg:     "neg",
	OpFNeg:    "fneg",
	OpNot:     "not",
}

func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return fmt.Sprintf("Opcode(%d)", int(op))
	}
	return opcodeNames[op]
}

// IsTerminator returns true if the opcode ends a basic block.
func (op Opcode) IsTerminator() bool {
	return op == OpRet
}

// Predicate of a comparison.
type Predicate int

// Comparison predicates.
const (
	PredInvalid Predicate = iota
	// Integer predicates.
	IntEQ
	IntNE
	IntUGT
	IntUGE
	IntULT
	IntULE
	IntSGT
	IntSGE
	IntSLT
	IntSLE
	// Float predicates.
	FloatOEQ
	FloatOGT
	FloatOGE
	FloatOLT
	FloatOLE
	FloatONE
	FloatORD
	FloatUNO
	FloatUEQ
	FloatUNE
)

type predicateNames struct {
	short string
	long  string
}

var predicates = map[Predicate]predicateNames{
	IntEQ:    {"eq", "Equal"},
	IntNE:    {"ne", "NotEqual"},
	IntUGT:   {"ugt", "UnsignedGreater"},
	IntUGE:   {"uge", "UnsignedGreaterOrEqual"},
	IntULT:   {"ult", "UnsignedLess"},
	IntULE:   {"ule", "UnsignedLessOrEqual"},
	IntSGT:   {"sgt", "SignedGreater"},
	IntSGE:   {"sge", "SignedGreaterOrEqual"},
	IntSLT:   {"slt", "SignedLess"},
	IntSLE:   {"sle", "SignedLessOrEqual"},
	FloatOEQ: {"oeq", "OrderedAndEqual"},
	FloatOGT: {"ogt", "OrderedAndGreaterThan"},
	FloatOGE: {"oge", "OrderedAndGreaterThanOrEqual"},
	FloatOLT: {"olt", "OrderedAndLessThan"},
	FloatOLE: {"ole", "OrderedAndLessThanOrEqual"},
	FloatONE: {"one", "OrderedAndNotEqual"},
	FloatORD: {"ord", "Ordered"},
	FloatUNO: {"uno", "Unordered"},
	FloatUEQ: {"ueq", "UnorderedOrEqual"},
	FloatUNE: {"une", "UnorderedOrNotEqual"},
}

func (p Predicate) String() string {
	if names, ok := predicates[p]; ok {
		return names.short
	}
	return fmt.Sprintf("Predicate(%d)", int(p))
}

// IsFloat returns true if the predicate compares floats.
func (p Predicate) IsFloat() bool {
	return p >= FloatOEQ
}

// ParsePredicate returns a predicate given its short or long name.
// The case of the name is ignored.
func ParsePredicate(name string) (Predicate, error) {
	for p, names := range predicates {
		if strings.EqualFold(name, names.short) || strings.EqualFold(name, names.long) {
			return p, nil
		}
	}
	return PredInvalid, errors.Errorf("unknown comparison predicate %q", name)
}

// Instr is an instruction in a basic block.
type Instr struct {
	op       Opcode
	typ      Type
	name     string
	operands []Value
	pred     Predicate
	callee   *Function
	alloc    Type
	block    *Block
}

// Opcode of the instruction.
func (in *Instr) Opcode() Opcode { return in.op }

// Type of the value computed by the instruction.
func (in *Instr) Type() Type { return in.typ }

// Name of the value computed by the instruction.
func (in *Instr) Name() string { return in.name }

// Operands of the instruction.
func (in *Instr) Operands() []Value { return in.operands }

// Predicate of a comparison.
func (in *Instr) Predicate() Predicate { return in.pred }

// Callee of a call.
func (in *Instr) Callee() *Function { return in.callee }

// Allocated returns the type of the values stored in a slot created by an alloca.
func (in *Instr) Allocated() Type { return in.alloc }

// Block returns the basic block of the instruction.
func (in *Instr) Block() *Block { return in.block }

// Ref returns the name of the value computed by the instruction.
func (in *Instr) Ref() string { return "%" + in.name }

func operandString(v Value) string {
	return v.Type().String() + " " + v.Ref()
}

func (in *Instr) String() string {
	var b strings.Builder
	if in.typ != VoidType {
		fmt.Fprintf(&b, "%s = ", in.Ref())
	}
	b.WriteString(in.op.String())
	switch in.op {
	case OpAlloca:
		fmt.Fprintf(&b, " %s", in.alloc)
	case OpLoad:
		fmt.Fprintf(&b, " %s, %s", in.typ, operandString(in.operands[0]))
	case OpRet:
		if len(in.operands) == 0 {
			b.WriteString(" void")
		} else {
			fmt.Fprintf(&b, " %s", operandString(in.operands[0]))
		}
	case OpCall:
		args := make([]string, len(in.operands))
		for i, arg := range in.operands {
			args[i] = operandString(arg)
		}
		fmt.Fprintf(&b, " %s @%s(%s)", in.typ, in.callee.Name(), strings.Join(args, ", "))
	case OpICmp, OpFCmp:
		fmt.Fprintf(&b, " %s %s, %s", in.pred, operandString(in.operands[0]), in.operands[1].Ref())
	default:
		refs := make([]string, len(in.operands))
		for i, op := range in.operands {
			refs[i] = op.Ref()
		}
		if in.op == OpStore {
			fmt.Fprintf(&b, " %s, %s", operandString(in.operands[0]), operandString(in.operands[1]))
			break
		}
		fmt.Fprintf(&b, " %s %s", in.operands[0].Type(), strings.Join(refs, ", "))
	}
	return b.String()
}
