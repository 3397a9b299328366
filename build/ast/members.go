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

package ast

import (
	"fmt"
	"strings"

	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/registry"
)

// MemberKind is the kind of a member of a unit.
type MemberKind int

// Member kinds.
const (
	FunctionMember MemberKind = iota
	OperatorMember
	PropertyMember
	IndexerMember
	ConstructorMember
	EventMember
)

func (k MemberKind) String() string {
	switch k {
	case FunctionMember:
		return "function"
	case OperatorMember:
		return "operator"
	case PropertyMember:
		return "property"
	case IndexerMember:
		return "indexer"
	case ConstructorMember:
		return "constructor"
	case EventMember:
		return "event"
	}
	return fmt.Sprintf("MemberKind(%d)", int(k))
}

// Parameter is an annotation written {Name(arg1, arg2)} before a declaration.
type Parameter struct {
	Src  lexer.Pos
	Name string
	Args []string
}

func (p Parameter) String() string {
	return p.Name + "(" + strings.Join(p.Args, ", ") + ")"
}

// Param is a parameter of a function.
type Param struct {
	Src  lexer.Pos
	Type *TypeRef
	Name string
}

// Definition is the signature shared by all members.
type Definition struct {
	Src       lexer.Pos
	Access    string
	Protected bool
	Static    bool
	Sealed    bool
	// Return type, nil for void.
	Return *TypeRef
	Name   string
	Params []*Param

	Parameters []Parameter
	Attributes [][]lexer.Lexeme
}

// SignatureEqual returns true if two definitions have the same return type name
// and the same parameter type names, in the same order.
func (d *Definition) SignatureEqual(o *Definition) bool {
	if TypeName(d.Return) != TypeName(o.Return) || len(d.Params) != len(o.Params) {
		return false
	}
	for i, p := range d.Params {
		if TypeName(p.Type) != TypeName(o.Params[i].Type) {
			return false
		}
	}
	return true
}

// Signature returns a string representation of the signature.
func (d *Definition) Signature() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.Type.String() + " " + p.Name
	}
	return fmt.Sprintf("%s %s(%s)", d.Return.String(), d.Name, strings.Join(params, ", "))
}

// Member of a unit.
type Member interface {
	Node
	Def() *Definition
	Kind() MemberKind
	member()
}

type (
	// Function is a function member.
	Function struct {
		Definition
		Body *SeqBlock
	}

	// Operator is an operator definition.
	Operator struct {
		Definition
		Op   *registry.Descriptor
		Body *SeqBlock
	}

	// Property is a property member with an optional default value.
	Property struct {
		Definition
		Default Expr
	}

	// Indexer is a member declared with this.
	Indexer struct {
		Definition
		Body *SeqBlock
	}

	// Constructor is a member declared with new.
	Constructor struct {
		Definition
		Body *SeqBlock
	}

	// Event is an event member.
	Event struct {
		Definition
	}
)

func (m *Function) node()    {}
func (m *Operator) node()    {}
func (m *Property) node()    {}
func (m *Indexer) node()     {}
func (m *Constructor) node() {}
func (m *Event) node()       {}

func (m *Function) member()    {}
func (m *Operator) member()    {}
func (m *Property) member()    {}
func (m *Indexer) member()     {}
func (m *Constructor) member() {}
func (m *Event) member()       {}

// Pos returns the position of the declaration.
func (d *Definition) Pos() lexer.Pos { return d.Src }

// Def returns the definition of the member.
func (d *Definition) Def() *Definition { return d }

// Kind returns FunctionMember.
func (m *Function) Kind() MemberKind { return FunctionMember }

// Kind returns OperatorMember.
func (m *Operator) Kind() MemberKind { return OperatorMember }

// Kind returns PropertyMember.
func (m *Property) Kind() MemberKind { return PropertyMember }

// Kind returns IndexerMember.
func (m *Indexer) Kind() MemberKind { return IndexerMember }

// Kind returns ConstructorMember.
func (m *Constructor) Kind() MemberKind { return ConstructorMember }

// Kind returns EventMember.
func (m *Event) Kind() MemberKind { return EventMember }
