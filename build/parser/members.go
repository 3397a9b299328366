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

// parseIdentifierMember disambiguates a declaration starting with an identifier.
// The identifier is either a type or the name of the member, depending on
// the lexeme following it.
func (p *Parser) parseIdentifierMember() error {
	for {
		id := p.s.Current()
		next := p.s.Next()
		switch next.Kind {
		case lexer.RoundOpen:
			if err := p.checkPos(id.Pos, ast.FunctionMember); err != nil {
				return err
			}
			return p.parseFunction(id)
		case lexer.NewLine, lexer.EOF, lexer.KeyIs, lexer.Assign:
			if err := p.checkPos(id.Pos, ast.PropertyMember); err != nil {
				return err
			}
			return p.parseProperty(id)
		case lexer.KeyEvent:
			if err := p.checkPos(id.Pos, ast.EventMember); err != nil {
				return err
			}
			p.s.Next()
			return p.finishEvent(id)
		case lexer.KeyThis:
			ret, err := p.commitType(&ast.TypeRef{Src: id.Pos, Name: id.Value})
			if err != nil {
				return err
			}
			return p.parseIndexer(ret)
		case lexer.Operator:
			if next.Value != ":" {
				ret, err := p.commitType(&ast.TypeRef{Src: id.Pos, Name: id.Value})
				if err != nil {
					return err
				}
				return p.parseOperator(ret)
			}
		case lexer.Identifier, lexer.CurlyOpen:
		default:
			return p.unexpected(next)
		}
		// The identifier is a type: parse it and loop on the name of the member.
		p.s.SetIndex(p.s.Index() - 1)
		typ, err := p.parseType()
		if err != nil {
			return err
		}
		if _, err := p.commitType(typ); err != nil {
			return err
		}
		switch cur := p.s.Current(); cur.Kind {
		case lexer.Identifier:
			continue
		case lexer.KeyThis:
			return p.parseIndexer(typ)
		case lexer.Operator:
			return p.parseOperator(typ)
		default:
			return p.errorf(cur.Pos, ErrBadDefinition, "only operators, indexers and constructors can be declared without a name")
		}
	}
}

// commitType records the type of the declaration being parsed.
// A declaration has at most one type.
func (p *Parser) commitType(typ *ast.TypeRef) (*ast.TypeRef, error) {
	if p.cons.typ != nil && p.cons.typ != typ {
		return nil, p.errorf(typ.Src, ErrBadDefinition, "declaration has more than one type: %s and %s", p.cons.typ, typ)
	}
	p.cons.typ = typ
	return typ, nil
}

// parseArgs parses the parameters of a member between an opening and closing bracket.
// The cursor is left after the closing bracket.
func (p *Parser) parseArgs(closing lexer.Kind) ([]*ast.Param, error) {
	p.s.Next()
	var params []*ast.Param
	for cur := p.s.Current(); cur.Kind != closing; cur = p.s.Current() {
		if len(params) > 0 {
			if cur.Kind != lexer.Comma {
				return nil, p.unexpected(cur)
			}
			p.s.Next()
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name := p.s.Current()
		if name.Kind != lexer.Identifier {
			return nil, p.unexpected(name)
		}
		params = append(params, &ast.Param{Src: typ.Src, Type: typ, Name: name.Value})
		p.s.Next()
	}
	p.s.Next()
	return params, nil
}

// parseBody parses the end of a declaration line and the indented body following it.
// The body is nil if the declaration has none.
func (p *Parser) parseBody() (*ast.SeqBlock, error) {
	if err := p.expectEOL(); err != nil {
		return nil, err
	}
	cur := p.s.Current()
	if cur.Kind != lexer.Indent {
		return nil, nil
	}
	return p.parseBlock(len(cur.Value))
}

func (p *Parser) parseFunction(name lexer.Lexeme) error {
	params, err := p.parseArgs(lexer.RoundClose)
	if err != nil {
		return err
	}
	def := p.definition(name.Pos, p.cons.typ, name.Value, params)
	body, err := p.parseBody()
	if err != nil {
		return err
	}
	p.handle(&ast.Function{Definition: def, Body: body})
	return nil
}

// parseOperator parses an operator declaration. The cursor is on the operator.
func (p *Parser) parseOperator(ret *ast.TypeRef) error {
	op := p.s.Current()
	if err := p.checkPos(op.Pos, ast.OperatorMember); err != nil {
		return err
	}
	if p.s.Next().Kind != lexer.RoundOpen {
		return p.unexpected(p.s.Current())
	}
	params, err := p.parseArgs(lexer.RoundClose)
	if err != nil {
		return err
	}
	def := p.definition(op.Pos, ret, op.Value, params)
	desc, err := p.operatorDescriptor(op, &def)
	if err != nil {
		return err
	}
	body, err := p.parseBody()
	if err != nil {
		return err
	}
	p.handle(&ast.Operator{Definition: def, Op: desc, Body: body})
	return nil
}

// parseIndexer parses this[Type name, ...]. The cursor is on this.
// An indexer declared without a type returns the type of the unit.
func (p *Parser) parseIndexer(ret *ast.TypeRef) error {
	this := p.s.Current()
	if err := p.checkPos(this.Pos, ast.IndexerMember); err != nil {
		return err
	}
	if ret == nil {
		ret = &ast.TypeRef{Src: this.Pos, Name: p.unit.Name}
	}
	if p.s.Next().Kind != lexer.SquareOpen {
		return p.unexpected(p.s.Current())
	}
	params, err := p.parseArgs(lexer.SquareClose)
	if err != nil {
		return err
	}
	def := p.definition(this.Pos, ret, this.Value, params)
	body, err := p.parseBody()
	if err != nil {
		return err
	}
	p.handle(&ast.Indexer{Definition: def, Body: body})
	return nil
}

// parseConstructor parses new(Type name, ...). The cursor is on new.
func (p *Parser) parseConstructor() error {
	kw := p.s.Current()
	if err := p.checkPos(kw.Pos, ast.ConstructorMember); err != nil {
		return err
	}
	if p.s.Next().Kind != lexer.RoundOpen {
		return p.unexpected(p.s.Current())
	}
	params, err := p.parseArgs(lexer.RoundClose)
	if err != nil {
		return err
	}
	ret := &ast.TypeRef{Src: kw.Pos, Name: p.unit.Name}
	def := p.definition(kw.Pos, ret, kw.Value, params)
	body, err := p.parseBody()
	if err != nil {
		return err
	}
	p.handle(&ast.Constructor{Definition: def, Body: body})
	return nil
}

// parseProperty parses a property. The cursor is after its name.
// The type of a property declared without one is the type of the unit.
func (p *Parser) parseProperty(name lexer.Lexeme) error {
	typ := p.cons.typ
	if typ == nil {
		typ = &ast.TypeRef{Src: name.Pos, Name: p.unit.Name}
	}
	prop := &ast.Property{Definition: p.definition(name.Pos, typ, name.Value, nil)}
	switch cur := p.s.Current(); cur.Kind {
	case lexer.Assign:
		p.s.Next()
		def, err := p.parseExpression()
		if err != nil {
			return err
		}
		prop.Default = def
	case lexer.KeyIs:
		p.s.SkipToEOL()
		p.skipIndented()
		p.handle(prop)
		return nil
	}
	if err := p.expectEOL(); err != nil {
		return err
	}
	p.skipIndented()
	p.handle(prop)
	return nil
}

// parseEventKeyword parses `event name`. The cursor is on event.
func (p *Parser) parseEventKeyword() error {
	kw := p.s.Current()
	if err := p.checkPos(kw.Pos, ast.EventMember); err != nil {
		return err
	}
	name := p.s.Next()
	if name.Kind != lexer.Identifier {
		return p.unexpected(name)
	}
	p.s.Next()
	return p.finishEvent(name)
}

func (p *Parser) finishEvent(name lexer.Lexeme) error {
	ev := &ast.Event{Definition: p.definition(name.Pos, nil, name.Value, nil)}
	if err := p.expectEOL(); err != nil {
		return err
	}
	p.skipIndented()
	p.handle(ev)
	return nil
}

// skipIndented skips the indented lines following a declaration.
func (p *Parser) skipIndented() {
	for p.s.Current().Kind == lexer.Indent {
		p.s.SkipToEOL()
	}
}
