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
	"strconv"
	"strings"

	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/registry"
)

// parseAnnotation parses {Param(args), ...} or [attribute].
// Unit annotations are written ^{...}^ or ^[...]^.
func (p *Parser) parseAnnotation(unitLevel bool) error {
	open := p.s.Current()
	p.s.Next()
	var params []ast.Parameter
	var attr []lexer.Lexeme
	if open.Kind == lexer.CurlyOpen {
		var err error
		if params, err = p.parseParameters(); err != nil {
			return err
		}
	} else {
		attr = p.s.Until(lexer.SquareOpen, lexer.SquareClose)
		if p.s.Current().Kind != lexer.SquareClose {
			return p.unexpected(p.s.Current())
		}
		p.s.Next()
	}
	if !unitLevel {
		p.cons.params = append(p.cons.params, params...)
		if attr != nil {
			p.cons.attrs = append(p.cons.attrs, attr)
		}
		return nil
	}
	if p.s.Current().IsOperator("^") {
		p.s.Next()
	}
	if attr != nil {
		p.unit.Attributes = append(p.unit.Attributes, attr)
	}
	for _, param := range params {
		p.unit.Parameters = append(p.unit.Parameters, param)
		if err := p.handler.ApplyUnitParameter(param); err != nil {
			p.rep.Err(err)
		}
	}
	return nil
}

// parseParameters parses a list Name(arg, arg), Name until the closing curly bracket.
// The cursor is left after the bracket.
func (p *Parser) parseParameters() ([]ast.Parameter, error) {
	var params []ast.Parameter
	for {
		cur := p.s.Current()
		switch cur.Kind {
		case lexer.CurlyClose:
			p.s.Next()
			return params, nil
		case lexer.Comma:
			p.s.Next()
			continue
		case lexer.Identifier:
		default:
			return nil, p.unexpected(cur)
		}
		param := ast.Parameter{Src: cur.Pos, Name: cur.Value}
		if p.s.Next().Kind == lexer.RoundOpen {
			p.s.Next()
			var arg strings.Builder
			for _, lex := range p.s.Until(lexer.RoundOpen, lexer.RoundClose) {
				if lex.Kind == lexer.Comma {
					param.Args = append(param.Args, arg.String())
					arg.Reset()
					continue
				}
				arg.WriteString(unquote(lex.Value))
			}
			if arg.Len() > 0 {
				param.Args = append(param.Args, arg.String())
			}
			if p.s.Current().Kind != lexer.RoundClose {
				return nil, p.unexpected(p.s.Current())
			}
			p.s.Next()
		}
		params = append(params, param)
	}
}

func unquote(s string) string {
	if uq, err := strconv.Unquote(s); err == nil {
		return uq
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// operatorDescriptor builds the descriptor of an operator from its declaration.
// The class defaults to prefix for one parameter and binary for two.
func (p *Parser) operatorDescriptor(op lexer.Lexeme, def *ast.Definition) (*registry.Descriptor, error) {
	d := &registry.Descriptor{
		Representation: op.Value,
		Callee:         registry.CalleeFunction,
	}
	switch len(def.Params) {
	case 1:
		d.Class = registry.Prefix
	case 2:
		d.Class = registry.Binary
	default:
		return nil, p.errorf(op.Pos, ErrBadDefinition, "operator %s takes 1 or 2 parameters, got %d", op.Value, len(def.Params))
	}
	for _, param := range def.Parameters {
		switch param.Name {
		case "Instruction":
			if len(param.Args) == 0 {
				return nil, p.errorf(param.Src, ErrWrongParameter, "Instruction requires the name of an instruction")
			}
			d.Callee = registry.CalleeInstruction
			d.CalleeName = param.Args[0]
			d.Predicates = param.Args[1:]
		case "Function":
			if len(param.Args) != 1 {
				return nil, p.errorf(param.Src, ErrWrongParameter, "Function requires the name of a function")
			}
			d.Callee = registry.CalleeFunction
			d.CalleeName = param.Args[0]
		case "Precedence":
			if len(param.Args) != 1 {
				return nil, p.errorf(param.Src, ErrWrongParameter, "Precedence requires one integer")
			}
			prec, err := strconv.Atoi(param.Args[0])
			if err != nil {
				return nil, p.errorf(param.Src, ErrWrongParameter, "invalid precedence %q", param.Args[0])
			}
			d.Precedence = prec
		case "Prefix", "Binary", "Postfix":
			class, err := registry.ParseClass(param.Name)
			if err != nil {
				return nil, p.errorf(param.Src, ErrWrongParameter, "%v", err)
			}
			d.Class = class
		case "Modules":
			d.Modules = append(d.Modules, param.Args...)
		default:
			p.rep.Warnf(param.Src, "wrong parameter %s ignored for operator %s", param.Name, op.Value)
		}
	}
	if d.Arity() != len(def.Params) {
		return nil, p.errorf(op.Pos, ErrBadDefinition, "%s operator %s takes %d parameters, got %d", d.Class, op.Value, d.Arity(), len(def.Params))
	}
	if d.Callee == registry.CalleeFunction && d.CalleeName == "" {
		d.CalleeName = registry.FunctionName(d.Class, d.Representation)
	}
	return d, nil
}
