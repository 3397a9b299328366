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

// Package ast defines the syntax tree of Cordy units.
//
// Expressions and blocks are closed sets of node types: every node
// implements an unexported marker method so that consumers can switch
// exhaustively over them.
package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/registry"
	"github.com/pkg/errors"
)

// ErrWrongExpression is returned when an expression has a number
// of arguments inconsistent with the class of its operator.
var ErrWrongExpression = errors.New("wrong expression")

type (
	// Node is a node of the tree.
	Node interface {
		Pos() lexer.Pos
		node()
	}

	// Expr is an expression.
	Expr interface {
		Node
		String() string
		expr()
	}
)

type (
	// IntLit is an integer literal.
	IntLit struct {
		Src  lexer.Pos
		Text string
		// Value of a signed literal.
		Value int64
		// UValue of a literal too large for an int64.
		UValue   uint64
		Unsigned bool
	}

	// FloatLit is a float literal.
	FloatLit struct {
		Src   lexer.Pos
		Text  string
		Value float64
	}

	// StringLit is a string literal.
	StringLit struct {
		Src   lexer.Pos
		Value string
	}

	// VarRef references a variable by name.
	VarRef struct {
		Src  lexer.Pos
		Name string
	}

	// VarDecl declares a local variable.
	VarDecl struct {
		Src  lexer.Pos
		Type *TypeRef
		Name string
	}

	// Call calls a function by name.
	Call struct {
		Src  lexer.Pos
		Name string
		Args []Expr
	}

	// Expression applies an operator to its arguments.
	Expression struct {
		Src  lexer.Pos
		Op   *registry.Descriptor
		Args []Expr
	}
)

// NewIntLit parses an integer literal.
// Prefixes 0b, 0o and 0x select the radix and underscores are ignored.
func NewIntLit(pos lexer.Pos, text string) (*IntLit, error) {
	clean := strings.ReplaceAll(text, "_", "")
	neg := strings.HasPrefix(clean, "-")
	digits := strings.TrimPrefix(clean, "-")
	base := 10
	if len(digits) > 2 && digits[0] == '0' {
		switch digits[1] {
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		case 'x', 'X':
			base = 16
		}
		if base != 10 {
			digits = digits[2:]
		}
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return nil, fmterr.Errorf(pos, "invalid integer literal %s", text)
	}
	lit := &IntLit{Src: pos, Text: text}
	switch {
	case neg && u > math.MaxInt64+1:
		return nil, fmterr.Errorf(pos, "integer literal %s overflows int64", text)
	case neg:
		lit.Value = int64(-u)
	case u > math.MaxInt64:
		lit.Unsigned = true
		lit.UValue = u
	default:
		lit.Value = int64(u)
	}
	return lit, nil
}

// NewFloatLit parses a float literal.
func NewFloatLit(pos lexer.Pos, text string) (*FloatLit, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return nil, fmterr.Errorf(pos, "invalid float literal %s", text)
	}
	return &FloatLit{Src: pos, Text: text, Value: v}, nil
}

// NewExpression returns an expression after checking that
// the number of arguments matches the class of the operator.
func NewExpression(pos lexer.Pos, op *registry.Descriptor, args ...Expr) (*Expression, error) {
	if len(args) != op.Arity() {
		return nil, fmterr.Wrapf(pos, ErrWrongExpression, "%s operator %q takes %d arguments but got %d", op.Class, op.Representation, op.Arity(), len(args))
	}
	return &Expression{Src: pos, Op: op, Args: args}, nil
}

func (n *IntLit) node()     {}
func (n *FloatLit) node()   {}
func (n *StringLit) node()  {}
func (n *VarRef) node()     {}
func (n *VarDecl) node()    {}
func (n *Call) node()       {}
func (n *Expression) node() {}

func (n *IntLit) expr()     {}
func (n *FloatLit) expr()   {}
func (n *StringLit) expr()  {}
func (n *VarRef) expr()     {}
func (n *VarDecl) expr()    {}
func (n *Call) expr()       {}
func (n *Expression) expr() {}

// Pos returns the position of the literal.
func (n *IntLit) Pos() lexer.Pos { return n.Src }

// Pos returns the position of the literal.
func (n *FloatLit) Pos() lexer.Pos { return n.Src }

// Pos returns the position of the literal.
func (n *StringLit) Pos() lexer.Pos { return n.Src }

// Pos returns the position of the reference.
func (n *VarRef) Pos() lexer.Pos { return n.Src }

// Pos returns the position of the declaration.
func (n *VarDecl) Pos() lexer.Pos { return n.Src }

// Pos returns the position of the call.
func (n *Call) Pos() lexer.Pos { return n.Src }

// Pos returns the position of the operator.
func (n *Expression) Pos() lexer.Pos { return n.Src }

func (n *IntLit) String() string {
	if n.Unsigned {
		return strconv.FormatUint(n.UValue, 10)
	}
	return strconv.FormatInt(n.Value, 10)
}

func (n *FloatLit) String() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *StringLit) String() string { return n.Value }

func (n *VarRef) String() string { return n.Name }

func (n *VarDecl) String() string { return n.Type.String() + " " + n.Name }

func joinExprs(exprs []Expr) string {
	ss := make([]string, len(exprs))
	for i, e := range exprs {
		ss[i] = e.String()
	}
	return strings.Join(ss, ", ")
}

func (n *Call) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, joinExprs(n.Args))
}

func (n *Expression) String() string {
	return fmt.Sprintf("%s(%s)", n.Op.Representation, joinExprs(n.Args))
}
