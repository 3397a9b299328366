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

// Package registry stores the operators declared by Cordy programs.
//
// An operator becomes parseable only once its descriptor has been
// registered. Descriptors are written into the named metadata of the
// module declaring them, so that units compiled later can find them
// by looking at the modules of the Universe.
package registry

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Class is the arity class of an operator.
type Class int

// Operator classes. The order is the lookup priority.
const (
	Prefix Class = iota
	Binary
	Postfix
	Assign

	numClasses
)

// lookupOrder is the order in which classes are tried when the class is unknown.
var lookupOrder = []Class{Prefix, Binary, Postfix}

var classNames = [...]string{
	Prefix:  "prefix",
	Binary:  "binary",
	Postfix: "postfix",
	Assign:  "assign",
}

func (c Class) String() string {
	if c < 0 || c >= numClasses {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// Arity returns the number of operands of an operator of that class.
func (c Class) Arity() int {
	if c == Prefix || c == Postfix {
		return 1
	}
	return 2
}

// ParseClass returns a class given its name.
func ParseClass(s string) (Class, error) {
	for c, name := range classNames {
		if strings.EqualFold(s, name) {
			return Class(c), nil
		}
	}
	return 0, errors.Errorf("unknown operator class %q", s)
}

// CalleeType tells what an operator is lowered to.
type CalleeType int

// Callee types.
const (
	// CalleeNone is only used by the assignment operator.
	CalleeNone CalleeType = iota
	// CalleeInstruction lowers the operator to an IR instruction.
	CalleeInstruction
	// CalleeFunction lowers the operator to a call to a function.
	CalleeFunction
)

func (c CalleeType) String() string {
	switch c {
	case CalleeInstruction:
		return "I"
	case CalleeFunction:
		return "F"
	}
	return ""
}

// ParseCalleeType returns a callee type from its persisted form.
func ParseCalleeType(s string) (CalleeType, error) {
	switch s {
	case "I":
		return CalleeInstruction, nil
	case "F":
		return CalleeFunction, nil
	case "":
		return CalleeNone, nil
	}
	return 0, errors.Errorf("unknown callee type %q", s)
}

// Descriptor describes an operator.
// It is never modified once registered.
type Descriptor struct {
	Representation string
	Class          Class
	// Precedence of the operator. A higher number binds tighter.
	Precedence int
	Callee     CalleeType
	// CalleeName is an instruction name or a function name depending on Callee.
	CalleeName string
	// Predicates are passed before the operands to the instruction.
	Predicates []string
	// Modules required by the operator.
	Modules []string
}

// AssignOperator is the descriptor synthesized for the assignment lexeme.
var AssignOperator = &Descriptor{
	Representation: "=",
	Class:          Assign,
	Callee:         CalleeNone,
}

// Arity returns the number of operands of the operator.
func (d *Descriptor) Arity() int {
	return d.Class.Arity()
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s %s(prec=%d, %s%s)", d.Class, d.Representation, d.Precedence, d.Callee, d.CalleeName)
}

// FunctionName returns the name of the function implementing an operator
// when the declaration does not name one.
func FunctionName(class Class, rep string) string {
	return "op." + class.String() + "." + rep
}
