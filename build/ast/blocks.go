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

import "github.com/cordy-lang/cordy/build/lexer"

// Block is a statement or a sequence of statements.
type Block interface {
	Node
	block()
}

type (
	// SeqBlock is a sequence of blocks sharing the same indentation.
	SeqBlock struct {
		Src      lexer.Pos
		Indent   int
		Children []Block
	}

	// ExprBlock is a run of expression statements.
	ExprBlock struct {
		Src   lexer.Pos
		Exprs []Expr
	}

	// ReturnBlock returns from the enclosing function.
	// Value is nil for a bare return.
	ReturnBlock struct {
		Src   lexer.Pos
		Value Expr
	}

	// OpaqueBlock is a control flow statement recognized but not lowered:
	// if, elif, else, for, foreach, while, do, switch and try.
	OpaqueBlock struct {
		Src     lexer.Pos
		Keyword lexer.Kind
		Header  []lexer.Lexeme
		Body    Block
	}
)

func (b *SeqBlock) node()    {}
func (b *ExprBlock) node()   {}
func (b *ReturnBlock) node() {}
func (b *OpaqueBlock) node() {}

func (b *SeqBlock) block()    {}
func (b *ExprBlock) block()   {}
func (b *ReturnBlock) block() {}
func (b *OpaqueBlock) block() {}

// Pos returns the position of the first statement.
func (b *SeqBlock) Pos() lexer.Pos { return b.Src }

// Pos returns the position of the first expression.
func (b *ExprBlock) Pos() lexer.Pos { return b.Src }

// Pos returns the position of the return keyword.
func (b *ReturnBlock) Pos() lexer.Pos { return b.Src }

// Pos returns the position of the keyword.
func (b *OpaqueBlock) Pos() lexer.Pos { return b.Src }
