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

// Package irkind defines the kinds of values of the Cordy intermediate representation (IR).
//
// Scalar kinds share their numbering with the data types of the backend.
package irkind

import "github.com/gx-org/backend/dtype"

// Kind of a type.
type Kind uint

// Scalar kinds.
const (
	Invalid = Kind(dtype.Invalid)

	Bool    = Kind(dtype.Bool)
	Int32   = Kind(dtype.Int32)
	Int64   = Kind(dtype.Int64)
	Uint32  = Kind(dtype.Uint32)
	Uint64  = Kind(dtype.Uint64)
	Float32 = Kind(dtype.Float32)
	Float64 = Kind(dtype.Float64)
)

// Non scalar kinds.
const (
	// Void is the kind of functions returning nothing.
	Void = Kind(iota + dtype.MaxDataType)
	// Pointer is the kind of slots.
	Pointer
	// Func is the kind of functions.
	Func

	// Max value for a Kind constant.
	Max
)

// DefaultInt is the kind of integer literals when nothing else constrains them.
const DefaultInt = Int32

// String returns a string representation of a kind.
func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Pointer:
		return "ptr"
	case Func:
		return "func"
	case Bool:
		return "bool"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	}
	return "invalid"
}

// DType converts a scalar kind into a backend data type.
func (k Kind) DType() dtype.DataType {
	if k >= dtype.MaxDataType {
		return dtype.Invalid
	}
	return dtype.DataType(k)
}

// Bits returns the size of a scalar kind in bits, 0 for other kinds.
func (k Kind) Bits() int {
	switch k {
	case Bool:
		return 1
	case Int32, Int64, Uint32, Uint64, Float32, Float64:
		return 8 * dtype.Sizeof(k.DType())
	}
	return 0
}

// Scalars lists the scalar kinds.
var Scalars = []Kind{Bool, Int32, Int64, Uint32, Uint64, Float32, Float64}

// KindFromString returns a kind given its name.
// Only scalar kinds and void can be named.
func KindFromString(ident string) Kind {
	switch ident {
	case "void":
		return Void
	}
	for _, k := range Scalars {
		if k.String() == ident {
			return k
		}
	}
	return Invalid
}

// IntKind returns the integer kind of a given size in bits.
func IntKind(bits int, unsigned bool) Kind {
	candidates := []Kind{Int32, Int64}
	if unsigned {
		candidates = []Kind{Uint32, Uint64}
	}
	for _, k := range candidates {
		if k.Bits() == bits {
			return k
		}
	}
	return Invalid
}

// FloatKind returns the float kind of a given size in bits.
func FloatKind(bits int) Kind {
	for _, k := range []Kind{Float32, Float64} {
		if k.Bits() == bits {
			return k
		}
	}
	return Invalid
}

// IsIntegerKind return true if kind is an integer.
func IsIntegerKind(kind Kind) bool {
	switch kind {
	case Int32, Int64, Uint32, Uint64:
		return true
	}
	return false
}

// IsUnsigned returns true if kind is an unsigned integer.
func IsUnsigned(kind Kind) bool {
	return kind == Uint32 || kind == Uint64
}

// IsFloatKind returns true if kind is a float.
func IsFloatKind(kind Kind) bool {
	return kind == Float32 || kind == Float64
}
