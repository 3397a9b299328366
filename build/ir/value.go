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
	"strconv"

	"github.com/cordy-lang/cordy/build/ir/irkind"
)

// Value is an operand of an instruction.
type Value interface {
	Type() Type
	// Ref returns the text used to refer to the value in an instruction.
	Ref() string
}

// Const is a scalar constant.
type Const struct {
	typ Type
	i   int64
	u   uint64
	f   float64
}

// ConstInt returns a signed integer constant.
// Constants of an unsigned type are converted.
func ConstInt(t Type, v int64) *Const {
	return &Const{typ: t, i: v, u: uint64(v), f: float64(v)}
}

// ConstUint returns an unsigned integer constant.
func ConstUint(t Type, v uint64) *Const {
	return &Const{typ: t, i: int64(v), u: v, f: float64(v)}
}

// ConstFloat returns a float constant.
func ConstFloat(t Type, v float64) *Const {
	return &Const{typ: t, i: int64(v), u: uint64(v), f: v}
}

// ConstBool returns a boolean constant.
func ConstBool(v bool) *Const {
	c := &Const{typ: BoolType}
	if v {
		c.i, c.u, c.f = 1, 1, 1
	}
	return c
}

// Convert returns the same constant with another scalar type.
func (c *Const) Convert(t Type) *Const {
	switch {
	case irkind.IsFloatKind(t.Kind()):
		return ConstFloat(t, c.Float())
	case irkind.IsUnsigned(t.Kind()):
		return ConstUint(t, c.u)
	case t.Kind() == irkind.Bool:
		return ConstBool(c.i != 0)
	}
	return ConstInt(t, c.i)
}

// Type of the constant.
func (c *Const) Type() Type { return c.typ }

// Int returns the value as a signed integer.
func (c *Const) Int() int64 { return c.i }

// Float returns the value as a float.
func (c *Const) Float() float64 {
	if irkind.IsFloatKind(c.typ.Kind()) {
		return c.f
	}
	if irkind.IsUnsigned(c.typ.Kind()) {
		return float64(c.u)
	}
	return float64(c.i)
}

// Ref returns the literal of the constant.
func (c *Const) Ref() string {
	switch knd := c.typ.Kind(); {
	case knd == irkind.Bool:
		return strconv.FormatBool(c.i != 0)
	case irkind.IsFloatKind(knd):
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case irkind.IsUnsigned(knd):
		return strconv.FormatUint(c.u, 10)
	}
	return strconv.FormatInt(c.i, 10)
}

// Param is a parameter of a function.
type Param struct {
	fn    *Function
	index int
	name  string
	typ   Type
}

// Type of the parameter.
func (p *Param) Type() Type { return p.typ }

// Index of the parameter in the function signature.
func (p *Param) Index() int { return p.index }

// Name of the parameter.
func (p *Param) Name() string { return p.name }

// SetName names the parameter. The name is made unique within the function.
func (p *Param) SetName(name string) {
	p.name = p.fn.names.Name(name)
}

// Ref returns the name of the parameter.
func (p *Param) Ref() string { return "%" + p.name }
