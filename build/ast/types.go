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
	"strings"

	"github.com/cordy-lang/cordy/build/lexer"
)

// TypeRef is a reference to a type as written in the source:
// a name followed by settings (Name:3:false) and a template ({T1,T2}).
type TypeRef struct {
	Src      lexer.Pos
	Name     string
	Settings []Expr
	Template []*TypeRef
}

// Pos returns the position of the type name.
func (t *TypeRef) Pos() lexer.Pos { return t.Src }

func (t *TypeRef) String() string {
	if t == nil {
		return "void"
	}
	var b strings.Builder
	b.WriteString(t.Name)
	for _, s := range t.Settings {
		b.WriteString(":")
		b.WriteString(s.String())
	}
	if len(t.Template) > 0 {
		b.WriteString("{")
		for i, tmpl := range t.Template {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(tmpl.String())
		}
		b.WriteString("}")
	}
	return b.String()
}

// TypeName returns the name of a type, void if t is nil.
func TypeName(t *TypeRef) string {
	if t == nil {
		return "void"
	}
	return t.Name
}
