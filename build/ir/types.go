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
	"strings"

	"github.com/cordy-lang/cordy/build/ir/irkind"
)

// Type of an IR value.
type Type interface {
	Kind() irkind.Kind
	String() string
}

// ScalarType is the type of a scalar value or void.
type ScalarType struct {
	knd irkind.Kind
}

// Scalar types.
var (
	VoidType    = &ScalarType{knd: irkind.Void}
	BoolType    = &ScalarType{knd: irkind.Bool}
	Int32Type   = &ScalarType{knd: irkind.Int32}
	Int64Type   = &ScalarType{knd: irkind.Int64}
	Uint32Type  = &ScalarType{knd: irkind.Uint32}
	Uint64Type  = &ScalarType{knd: irkind.Uint64}
	Float32Type = &ScalarType{knd: irkind.Float32}
	Float64Type = &ScalarType{knd: irkind.Float64}

	scalars = map[irkind.Kind]*ScalarType{
		irkind.Void:    VoidType,
		irkind.Bool:    BoolType,
		irkind.Int32:   Int32Type,
		irkind.Int64:   Int64Type,
		irkind.Uint32:  Uint32Type,
		irkind.Uint64:  Uint64Type,
		irkind.Float32: Float32Type,
		irkind.Float64: Float64Type,
	}
)

// TypeFromKind returns the scalar type of a kind or nil if the kind is not scalar.
func TypeFromKind(k irkind.Kind) Type {
	t, ok := scalars[k]
	if !ok {
		return nil
	}
	return t
}

// Kind of the type.
func (t *ScalarType) Kind() irkind.Kind { return t.knd }

func (t *ScalarType) String() string { return t.knd.String() }

// PointerType is the type of a slot holding a value of type Elem.
type PointerType struct {
	Elem Type
}

// PointerTo returns the type of a slot holding values of type t.
func PointerTo(t Type) *PointerType {
	return &PointerType{Elem: t}
}

// Kind of the type.
func (t *PointerType) Kind() irkind.Kind { return irkind.Pointer }

func (t *PointerType) String() string { return "ptr" }

// FuncType is the signature of a function.
type FuncType struct {
	Params []Type
	Result Type
}

// Kind of the type.
func (t *FuncType) Kind() irkind.Kind { return irkind.Func }

func (t *FuncType) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return t.Result.String() + " (" + strings.Join(params, ", ") + ")"
}

// Equal returns true if two types are the same.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch aT := a.(type) {
	case *PointerType:
		return Equal(aT.Elem, b.(*PointerType).Elem)
	case *FuncType:
		bT := b.(*FuncType)
		if len(aT.Params) != len(bT.Params) || !Equal(aT.Result, bT.Result) {
			return false
		}
		for i, p := range aT.Params {
			if !Equal(p, bT.Params[i]) {
				return false
			}
		}
	}
	return true
}
