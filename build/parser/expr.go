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
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/registry"
)

// ParseExpression parses an expression starting at the cursor of a stream.
// Operators are resolved in the universe.
func ParseExpression(s *lexer.Stream, univ *registry.Universe) (ast.Expr, error) {
	p := &Parser{s: s, univ: univ}
	return p.parseExpression()
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return p.parseBinOpRHS(0, lhs)
}

// parseUnary parses prefix operators applied to a primary expression
// followed by postfix operators.
func (p *Parser) parseUnary() (ast.Expr, error) {
	cur := p.s.Current()
	if cur.Kind != lexer.Operator {
		prim, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return p.parsePostfix(prim)
	}
	op, err := p.univ.LookupClass(cur.Value, registry.Prefix)
	if err != nil {
		return nil, fmterr.Position(cur.Pos, err)
	}
	p.s.Next()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return ast.NewExpression(cur.Pos, op, operand)
}

// parsePostfix applies the operators following x that can only be postfix.
func (p *Parser) parsePostfix(x ast.Expr) (ast.Expr, error) {
	for {
		cur := p.s.Current()
		if cur.Kind != lexer.Operator {
			return x, nil
		}
		if _, err := p.univ.LookupClass(cur.Value, registry.Binary); err == nil {
			return x, nil
		}
		op, err := p.univ.LookupClass(cur.Value, registry.Postfix)
		if err != nil {
			return x, nil
		}
		p.s.Next()
		if x, err = ast.NewExpression(cur.Pos, op, x); err != nil {
			return nil, err
		}
	}
}

// binaryOperator returns the descriptor of the binary operator at the cursor.
// It returns nil if the lexeme does not continue an expression.
func (p *Parser) binaryOperator(lex lexer.Lexeme) (*registry.Descriptor, error) {
	switch lex.Kind {
	case lexer.Assign:
		return registry.AssignOperator, nil
	case lexer.Operator:
		op, err := p.univ.LookupClass(lex.Value, registry.Binary)
		if err != nil {
			return nil, fmterr.Position(lex.Pos, err)
		}
		return op, nil
	}
	return nil, nil
}

// parseBinOpRHS parses the right-hand sides of binary operators
// binding at least as tightly as minPrec.
// An assignment is always accepted.
func (p *Parser) parseBinOpRHS(minPrec int, lhs ast.Expr) (ast.Expr, error) {
	for {
		cur := p.s.Current()
		op, err := p.binaryOperator(cur)
		if err != nil {
			return nil, err
		}
		if op == nil {
			return lhs, nil
		}
		if op.Class != registry.Assign && op.Precedence < minPrec {
			return lhs, nil
		}
		p.s.Next()
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if next := p.s.Current(); next.Kind == lexer.Operator || next.Kind == lexer.Assign {
			// The registry does not know the assignment: chained assignments are rejected here.
			nextOp, err := p.univ.LookupClass(next.Value, registry.Binary)
			if err != nil {
				return nil, fmterr.Position(next.Pos, err)
			}
			if nextOp.Precedence > op.Precedence {
				if rhs, err = p.parseBinOpRHS(op.Precedence+1, rhs); err != nil {
					return nil, err
				}
			}
		}
		if lhs, err = ast.NewExpression(cur.Pos, op, lhs, rhs); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	cur := p.s.Current()
	switch cur.Kind {
	case lexer.Integer:
		p.s.Next()
		return ast.NewIntLit(cur.Pos, cur.Value)
	case lexer.Float:
		p.s.Next()
		return ast.NewFloatLit(cur.Pos, cur.Value)
	case lexer.String:
		p.s.Next()
		return &ast.StringLit{Src: cur.Pos, Value: cur.Value}, nil
	case lexer.Identifier:
		return p.parseIdentifierExpr()
	case lexer.RoundOpen:
		p.s.Next()
		x, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.s.Current(); closing.Kind != lexer.RoundClose {
			return nil, p.unexpected(closing)
		}
		p.s.Next()
		return x, nil
	case lexer.KeyNew, lexer.KeyThis:
		return nil, fmterr.Wrapf(cur.Pos, fmterr.ErrNotImplemented, "%s expressions", cur.Value)
	}
	return nil, p.unexpected(cur)
}

// parseIdentifierExpr parses a variable reference or a call.
func (p *Parser) parseIdentifierExpr() (ast.Expr, error) {
	name := p.s.Current()
	switch p.s.Next().Kind {
	case lexer.RoundOpen:
		args, err := p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Call{Src: name.Pos, Name: name.Value, Args: args}, nil
	case lexer.SquareOpen:
		return nil, fmterr.Wrapf(name.Pos, fmterr.ErrNotImplemented, "indexing %s", name.Value)
	}
	return &ast.VarRef{Src: name.Pos, Name: name.Value}, nil
}

// parseCallArgs parses (expr, ...). The cursor is left after the closing bracket.
func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	var args []ast.Expr
	p.s.Next()
	for cur := p.s.Current(); cur.Kind != lexer.RoundClose; cur = p.s.Current() {
		if len(args) > 0 {
			if cur.Kind != lexer.Comma {
				return nil, p.unexpected(cur)
			}
			p.s.Next()
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.s.Next()
	return args, nil
}
