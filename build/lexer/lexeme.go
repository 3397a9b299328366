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

package lexer

import "fmt"

// Pos is a position in a source file. Rows and columns start at 1.
type Pos struct {
	File     string
	Row, Col int
}

// IsValid returns true if the position points to a row in a file.
func (p Pos) IsValid() bool {
	return p.Row > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Row, p.Col)
}

// Lexeme is a classified piece of source text.
type Lexeme struct {
	Kind  Kind
	Value string
	Pos   Pos
}

// Is returns true if the lexeme has the given kind and value.
func (l Lexeme) Is(kind Kind, value string) bool {
	return l.Kind == kind && l.Value == value
}

// IsOperator returns true if the lexeme is the operator symbol op.
func (l Lexeme) IsOperator(op string) bool {
	return l.Is(Operator, op)
}

func (l Lexeme) String() string {
	switch l.Kind {
	case NewLine:
		return `"\n"`
	case Indent:
		return fmt.Sprintf("indent(%d)", len(l.Value))
	case SOF, EOF:
		return l.Kind.String()
	}
	return fmt.Sprintf("%q", l.Value)
}
