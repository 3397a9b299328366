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

var opaqueKeywords = map[lexer.Kind]bool{
	lexer.KeyIf:      true,
	lexer.KeyElif:    true,
	lexer.KeyElse:    true,
	lexer.KeySwitch:  true,
	lexer.KeyFor:     true,
	lexer.KeyForeach: true,
	lexer.KeyWhile:   true,
	lexer.KeyDo:      true,
	lexer.KeyTry:     true,
	lexer.KeyCatch:   true,
	lexer.KeyFinally: true,
	lexer.KeyThrow:   true,
}

// parseBlock parses the lines indented by exactly indent tabs.
// The cursor is on the indentation of the first line.
// Consecutive expression statements are grouped in a single ExprBlock.
func (p *Parser) parseBlock(indent int) (*ast.SeqBlock, error) {
	seq := &ast.SeqBlock{Src: p.s.Current().Pos, Indent: indent}
	var run *ast.ExprBlock
	for {
		cur := p.s.Current()
		if cur.Kind == lexer.NewLine {
			p.s.Next()
			continue
		}
		if cur.Kind != lexer.Indent || len(cur.Value) < indent {
			return seq, nil
		}
		if len(cur.Value) > indent {
			p.rep.Warnf(cur.Pos, "unexpected indentation")
			child, err := p.parseBlock(len(cur.Value))
			if err != nil {
				return nil, err
			}
			seq.Children = append(seq.Children, child)
			run = nil
			continue
		}
		p.s.Next()
		blk, x, err := p.parseStatement(indent)
		if err != nil {
			return nil, err
		}
		if x != nil {
			if run == nil {
				run = &ast.ExprBlock{Src: x.Pos()}
				seq.Children = append(seq.Children, run)
			}
			run.Exprs = append(run.Exprs, x)
			continue
		}
		seq.Children = append(seq.Children, blk)
		run = nil
		if _, ok := blk.(*ast.ReturnBlock); ok {
			p.skipUnreachable(indent)
			return seq, nil
		}
	}
}

// skipUnreachable skips the lines of a block following a return.
func (p *Parser) skipUnreachable(indent int) {
	warned := false
	for {
		cur := p.s.Current()
		if cur.Kind == lexer.NewLine {
			p.s.Next()
			continue
		}
		if cur.Kind != lexer.Indent || len(cur.Value) < indent {
			return
		}
		if !warned {
			p.rep.Warnf(cur.Pos, "unreachable code")
			warned = true
		}
		p.s.SkipToEOL()
	}
}

// parseStatement parses a statement. The cursor is after the indentation.
// It returns either a block or an expression.
func (p *Parser) parseStatement(indent int) (ast.Block, ast.Expr, error) {
	cur := p.s.Current()
	switch {
	case cur.Kind == lexer.KeyReturn:
		p.s.Next()
		ret := &ast.ReturnBlock{Src: cur.Pos}
		if next := p.s.Current(); next.Kind != lexer.NewLine && next.Kind != lexer.EOF {
			x, err := p.parseExpression()
			if err != nil {
				return nil, nil, err
			}
			ret.Value = x
		}
		return ret, nil, p.expectEOL()
	case opaqueKeywords[cur.Kind]:
		return p.parseOpaque(indent)
	case cur.Kind == lexer.Identifier && p.isVarDecl():
		x, err := p.parseVarDecl()
		if err != nil {
			return nil, nil, err
		}
		return nil, x, p.expectEOL()
	}
	x, err := p.parseExpression()
	if err != nil {
		return nil, nil, err
	}
	return nil, x, p.expectEOL()
}

// isVarDecl returns true if the identifier at the cursor starts a variable declaration.
func (p *Parser) isVarDecl() bool {
	next := p.s.Peek(1)
	return next.Kind == lexer.Identifier || next.Kind == lexer.CurlyOpen || next.IsOperator(":")
}

// parseVarDecl parses Type name, optionally followed by an assignment.
func (p *Parser) parseVarDecl() (ast.Expr, error) {
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name := p.s.Current()
	if name.Kind != lexer.Identifier {
		return nil, p.unexpected(name)
	}
	p.s.Next()
	var decl ast.Expr = &ast.VarDecl{Src: typ.Src, Type: typ, Name: name.Value}
	return p.parseBinOpRHS(0, decl)
}

// parseOpaque records a control flow statement.
// The lines nested in it are skipped.
func (p *Parser) parseOpaque(indent int) (ast.Block, ast.Expr, error) {
	kw := p.s.Current()
	p.s.Next()
	blk := &ast.OpaqueBlock{Src: kw.Pos, Keyword: kw.Kind, Header: p.s.SkipToEOL()}
	for cur := p.s.Current(); cur.Kind == lexer.Indent && len(cur.Value) > indent; cur = p.s.Current() {
		p.s.SkipToEOL()
	}
	return blk, nil, nil
}
