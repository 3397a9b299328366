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
	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/pkg/errors"
)

// instruction emits an instruction given the predicates and the operands of an operator.
type instruction func(b *ir.Builder, preds []string, args []ir.Value) (ir.Value, error)

// instructions maps the callee names of operators to the instructions they emit.
var instructions = map[string]instruction{
	"Add":                  binary(ir.OpAdd),
	"Sub":                  binary(ir.OpSub),
	"Mul":                  binary(ir.OpMul),
	"SDiv":                 binary(ir.OpSDiv),
	"UDiv":                 binary(ir.OpUDiv),
	"SRem":                 binary(ir.OpSRem),
	"URem":                 binary(ir.OpURem),
	"FAdd":                 binary(ir.OpFAdd),
	"FSub":                 binary(ir.OpFSub),
	"FMul":                 binary(ir.OpFMul),
	"FDiv":                 binary(ir.OpFDiv),
	"FRem":                 binary(ir.OpFRem),
	"And":                  binary(ir.OpAnd),
	"Or":                   binary(ir.OpOr),
	"Xor":                  binary(ir.OpXor),
	"ShiftLeft":            binary(ir.OpShl),
	"LogicalShiftRight":    binary(ir.OpLShr),
	"ArithmeticShiftRight": binary(ir.OpAShr),
	"Compare":              compare,
	"Neg":                  unary(ir.OpNeg),
	"FNeg":                 unary(ir.OpFNeg),
	"Not":                  unary(ir.OpNot),
}

func value(in *ir.Instr, err error) (ir.Value, error) {
	if err != nil {
		return nil, err
	}
	return in, nil
}

func binary(op ir.Opcode) instruction {
	return func(b *ir.Builder, preds []string, args []ir.Value) (ir.Value, error) {
		if len(args) != 2 {
			return nil, errors.Errorf("%s takes 2 operands, got %d", op, len(args))
		}
		x, y := coerce(args[0], args[1])
		return value(b.Binary(op, x, y, ""))
	}
}

func unary(op ir.Opcode) instruction {
	return func(b *ir.Builder, preds []string, args []ir.Value) (ir.Value, error) {
		if len(args) != 1 {
			return nil, errors.Errorf("%s takes 1 operand, got %d", op, len(args))
		}
		return value(b.Unary(op, args[0], ""))
	}
}

// compare takes the predicate of the comparison before its operands.
func compare(b *ir.Builder, preds []string, args []ir.Value) (ir.Value, error) {
	if len(preds) != 1 {
		return nil, errors.Errorf("Compare requires exactly one predicate, got %d", len(preds))
	}
	if len(args) != 2 {
		return nil, errors.Errorf("Compare takes 2 operands, got %d", len(args))
	}
	pred, err := ir.ParsePredicate(preds[0])
	if err != nil {
		return nil, err
	}
	x, y := coerce(args[0], args[1])
	return value(b.Compare(pred, x, y, ""))
}

// convertConst converts a constant to a scalar type.
// Other values are returned unchanged.
func convertConst(v ir.Value, t ir.Type) ir.Value {
	c, ok := v.(*ir.Const)
	if !ok || ir.TypeFromKind(t.Kind()) == nil || t == ir.VoidType {
		return v
	}
	return c.Convert(t)
}

// coerce converts a constant operand to the type of the other operand.
// Between two constants, an integer is converted to a float.
func coerce(x, y ir.Value) (ir.Value, ir.Value) {
	_, xConst := x.(*ir.Const)
	_, yConst := y.(*ir.Const)
	switch {
	case ir.Equal(x.Type(), y.Type()):
		return x, y
	case xConst && !yConst:
		return convertConst(x, y.Type()), y
	case yConst && !xConst:
		return x, convertConst(y, x.Type())
	case xConst && yConst && irkind.IsFloatKind(y.Type().Kind()):
		return convertConst(x, y.Type()), y
	case xConst && yConst:
		return x, convertConst(y, x.Type())
	}
	return x, y
}
