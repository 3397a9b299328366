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

// Package parser builds the members of a Cordy unit from a stream of lexemes.
//
// Declarations are recognized line by line. Members are handed to a
// Handler as soon as they are parsed: an operator declared by a member
// can be used by the members following it. Errors are reported and the
// parser skips to the next blank line before resuming.
package parser

import (
	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/diag"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/registry"
	"github.com/pkg/errors"
)

// Parser errors.
var (
	ErrBadDefinition      = errors.New("bad definition")
	ErrBadDeclarationPos  = errors.New("bad declaration position")
	ErrUnexpected         = errors.New("unexpected token")
	ErrTooManySignatures  = errors.New("too many type signatures")
	ErrWrongParameter     = errors.New("wrong parameter")
	ErrIncludeRequiresStr = errors.New("include requires a string")
)

// Handler receives the declarations of a unit.
type Handler interface {
	// Handle a member once it has been parsed.
	Handle(ast.Member) error
	// ApplyUnitParameter applies a ^{...}^ parameter to the unit.
	ApplyUnitParameter(ast.Parameter) error
}

// consumables are the modifiers and annotations waiting for the next declaration.
type consumables struct {
	access    string
	accessPos lexer.Pos
	protected bool
	static    bool
	sealed    bool
	params    []ast.Parameter
	attrs     [][]lexer.Lexeme
	typ       *ast.TypeRef
}

// Parser parses one unit.
type Parser struct {
	s       *lexer.Stream
	univ    *registry.Universe
	unit    *ast.Unit
	handler Handler
	rep     *diag.Reporter

	cons            consumables
	signatureParsed bool
}

// New returns a parser for a unit.
func New(s *lexer.Stream, univ *registry.Universe, unit *ast.Unit, handler Handler, rep *diag.Reporter) *Parser {
	return &Parser{
		s:       s,
		univ:    univ,
		unit:    unit,
		handler: handler,
		rep:     rep,
	}
}

// Parse the whole stream. Errors are reported to the reporter of the parser.
func (p *Parser) Parse() {
	p.s.SetIndex(0)
	p.s.Next()
	p.clear()
	for !p.s.AtEOF() {
		err := p.parseElement()
		if err == nil {
			continue
		}
		p.rep.Err(err)
		if errors.Is(err, ErrTooManySignatures) {
			return
		}
		p.clear()
		p.s.SkipToEmptyLine()
		p.skipBodyLines()
	}
}

// skipBodyLines skips the indented lines left over from a member body.
// A declaration never starts indented.
func (p *Parser) skipBodyLines() {
	for {
		switch p.s.Current().Kind {
		case lexer.Indent:
			p.s.SkipToEOL()
		case lexer.NewLine:
			p.s.Next()
		default:
			return
		}
	}
}

func (p *Parser) clear() {
	p.cons = consumables{}
}

func (p *Parser) errorf(pos lexer.Pos, sentinel error, format string, a ...any) error {
	return fmterr.Wrapf(pos, sentinel, format, a...)
}

func (p *Parser) unexpected(lex lexer.Lexeme) error {
	return p.errorf(lex.Pos, ErrUnexpected, "unexpected %s %s", lex.Kind, lex)
}

// expectEOL consumes the end of a line.
func (p *Parser) expectEOL() error {
	switch cur := p.s.Current(); cur.Kind {
	case lexer.NewLine:
		p.s.Next()
		return nil
	case lexer.EOF:
		return nil
	default:
		return p.unexpected(cur)
	}
}

func (p *Parser) parseElement() error {
	cur := p.s.Current()
	switch cur.Kind {
	case lexer.NewLine, lexer.Indent:
		p.s.Next()
		return nil
	case lexer.KeyInclude:
		return p.parseInclude()
	case lexer.CurlyOpen, lexer.SquareOpen:
		return p.parseAnnotation(false)
	case lexer.KeyAccessLevel:
		if p.cons.access != "" {
			p.rep.Infof(cur.Pos, "definition already has an access level modifier, excess %s ignored", cur.Value)
		} else {
			p.cons.access = cur.Value
			p.cons.accessPos = cur.Pos
		}
		p.s.Next()
		return nil
	case lexer.KeyProtected:
		if p.cons.protected {
			p.rep.Infof(cur.Pos, "definition already has a protected modifier, excess one ignored")
		}
		p.cons.protected = true
		p.s.Next()
		return nil
	case lexer.KeyStatic:
		if p.cons.static {
			p.rep.Infof(cur.Pos, "definition already has a static modifier, excess one ignored")
		}
		p.cons.static = true
		p.s.Next()
		return nil
	case lexer.KeySealed:
		switch {
		case p.signatureParsed:
			p.rep.Warnf(cur.Pos, "sealed modifier cannot be applied to a definition, ignored")
		case p.cons.sealed:
			p.rep.Infof(cur.Pos, "type signature already has a sealed modifier, excess one ignored")
		}
		p.cons.sealed = !p.signatureParsed
		p.s.Next()
		return nil
	case lexer.KeyFileContext:
		return p.parseSignature()
	case lexer.KeyEvent:
		return p.parseEventKeyword()
	case lexer.KeyNew:
		return p.parseConstructor()
	case lexer.KeyThis:
		return p.parseIndexer(nil)
	case lexer.Operator:
		if cur.Value == "^" {
			if next := p.s.Peek(1); next.Kind == lexer.CurlyOpen || next.Kind == lexer.SquareOpen {
				p.s.Next()
				return p.parseAnnotation(true)
			}
		}
		return p.parseOperator(nil)
	case lexer.Identifier:
		return p.parseIdentifierMember()
	}
	return p.unexpected(cur)
}

func (p *Parser) parseInclude() error {
	p.s.Next()
	cur := p.s.Current()
	if cur.Kind != lexer.String {
		p.rep.Err(p.errorf(cur.Pos, ErrIncludeRequiresStr, "include takes a string argument"))
		p.s.SkipToEOL()
		return nil
	}
	p.unit.Includes = append(p.unit.Includes, unquote(cur.Value))
	p.s.Next()
	return p.expectEOL()
}

func (p *Parser) parseSignature() error {
	cur := p.s.Current()
	if p.signatureParsed {
		return p.errorf(cur.Pos, ErrTooManySignatures, "type signature of %s already defined", p.unit.Name)
	}
	p.signatureParsed = true
	p.unit.Context = cur.Value
	p.unit.Signature = &ast.Definition{
		Src:        cur.Pos,
		Access:     p.cons.access,
		Protected:  p.cons.protected,
		Static:     p.cons.static,
		Sealed:     p.cons.sealed,
		Name:       p.unit.Name,
		Parameters: p.cons.params,
		Attributes: p.cons.attrs,
	}
	p.clear()
	p.s.SkipToEOL()
	return nil
}

// checkPos returns an error if a member cannot be declared at this point of the unit.
func (p *Parser) checkPos(pos lexer.Pos, kind ast.MemberKind) error {
	if !p.signatureParsed || p.unit.Context == "enum" {
		return p.errorf(pos, ErrBadDeclarationPos, "%s can be defined only in class or interface", kind)
	}
	return nil
}

// definition builds a definition from the pending consumables.
func (p *Parser) definition(pos lexer.Pos, ret *ast.TypeRef, name string, params []*ast.Param) ast.Definition {
	return ast.Definition{
		Src:        pos,
		Access:     p.cons.access,
		Protected:  p.cons.protected,
		Static:     p.cons.static,
		Return:     ret,
		Name:       name,
		Params:     params,
		Parameters: p.cons.params,
		Attributes: p.cons.attrs,
	}
}

// handle hands a member to the handler.
// Handler errors are reported without skipping the following lines.
func (p *Parser) handle(m ast.Member) {
	if err := p.handler.Handle(m); err != nil {
		p.rep.Err(err)
	}
	p.clear()
}
