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

package parser

import (
	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/lexer"
)

// parseType parses Name(:setting)*({Type(,Type)*})?.
// The cursor is on the name and is left after the type.
func (p *Parser) parseType() (*ast.TypeRef, error) {
	name := p.s.Current()
	if name.Kind != lexer.Identifier {
		return nil, p.unexpected(name)
	}
	typ := &ast.TypeRef{Src: name.Pos, Name: name.Value}
	p.s.Next()
	for p.s.Current().IsOperator(":") {
		p.s.Next()
		setting, err := p.parseSetting()
		if err != nil {
			return nil, err
		}
		typ.Settings = append(typ.Settings, setting)
	}
	if p.s.Current().Kind != lexer.CurlyOpen {
		return typ, nil
	}
	p.s.Next()
	var err error
	if typ.Template, err = p.parseTypeList(); err != nil {
		return nil, err
	}
	return typ, nil
}

// parseSetting parses the value of a type setting: a literal or a name.
func (p *Parser) parseSetting() (ast.Expr, error) {
	cur := p.s.Current()
	switch cur.Kind {
	case lexer.Integer, lexer.Float, lexer.String:
		return p.parsePrimary()
	case lexer.Identifier:
		p.s.Next()
		return &ast.VarRef{Src: cur.Pos, Name: cur.Value}, nil
	}
	return nil, p.unexpected(cur)
}

// parseTypeList parses types separated by commas up to a closing curly bracket.
// The cursor is left after the bracket.
func (p *Parser) parseTypeList() ([]*ast.TypeRef, error) {
	var types []*ast.TypeRef
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
		switch cur := p.s.Current(); cur.Kind {
		case lexer.Comma:
			p.s.Next()
		case lexer.CurlyClose:
			p.s.Next()
			return types, nil
		default:
			return nil, p.unexpected(cur)
		}
	}
}
