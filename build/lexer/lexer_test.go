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

package lexer_test

import (
	"testing"

	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/google/go-cmp/cmp"
)

type lex struct {
	Kind  lexer.Kind
	Value string
}

func kinds(s *lexer.Stream) []lex {
	var got []lex
	for _, l := range s.Lexemes() {
		if l.Kind == lexer.SOF || l.Kind == lexer.EOF {
			continue
		}
		got = append(got, lex{Kind: l.Kind, Value: l.Value})
	}
	return got
}

func TestTokenize(t *testing.T) {
	nl := lex{lexer.NewLine, "\n"}
	tests := []struct {
		src  string
		want []lex
	}{
		{
			src: "Int a = b + 0x1F",
			want: []lex{
				{lexer.Identifier, "Int"},
				{lexer.Identifier, "a"},
				{lexer.Assign, "="},
				{lexer.Identifier, "b"},
				{lexer.Operator, "+"},
				{lexer.Integer, "0x1F"},
				nl,
			},
		},
		{
			src: "add(a, b)\n\treturn a-1",
			want: []lex{
				{lexer.Identifier, "add"},
				{lexer.RoundOpen, "("},
				{lexer.Identifier, "a"},
				{lexer.Comma, ","},
				{lexer.Identifier, "b"},
				{lexer.RoundClose, ")"},
				nl,
				{lexer.Indent, "\t"},
				{lexer.KeyReturn, "return"},
				{lexer.Identifier, "a"},
				{lexer.Operator, "-"},
				{lexer.Integer, "1"},
				nl,
			},
		},
		{
			src: "x = -1.5 ## comment\n\t## only a comment\n\t\n#* multi\nline *#y",
			want: []lex{
				{lexer.Identifier, "x"},
				{lexer.Assign, "="},
				{lexer.Float, "-1.5"},
				nl,
				nl,
				{lexer.Identifier, "y"},
				nl,
			},
		},
		{
			src: `public class "a \" b" else if`,
			want: []lex{
				{lexer.KeyAccessLevel, "public"},
				{lexer.KeyFileContext, "class"},
				{lexer.String, `"a \" b"`},
				{lexer.KeyElif, "else if"},
				nl,
			},
		},
		{
			src: "^{TypeInt(Int, 32)}^ a\tb",
			want: []lex{
				{lexer.Operator, "^"},
				{lexer.CurlyOpen, "{"},
				{lexer.Identifier, "TypeInt"},
				{lexer.RoundOpen, "("},
				{lexer.Identifier, "Int"},
				{lexer.Comma, ","},
				{lexer.Integer, "32"},
				{lexer.RoundClose, ")"},
				{lexer.CurlyClose, "}"},
				{lexer.Operator, "^"},
				{lexer.Identifier, "a"},
				{lexer.Identifier, "b"},
				nl,
			},
		},
	}
	for i, test := range tests {
		s, err := lexer.Tokenize("test.co", test.src)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(test.want, kinds(s)); diff != "" {
			t.Errorf("test %d: unexpected lexemes for %q:\n%s", i, test.src, diff)
		}
	}
}

func TestPositions(t *testing.T) {
	s, err := lexer.Tokenize("pos.co", "a\n\tbb  c")
	if err != nil {
		t.Fatal(err)
	}
	want := []lexer.Pos{
		{File: "pos.co", Row: 1, Col: 1},
		{File: "pos.co", Row: 1, Col: 2},
		{File: "pos.co", Row: 2, Col: 1},
		{File: "pos.co", Row: 2, Col: 2},
		{File: "pos.co", Row: 2, Col: 6},
	}
	var got []lexer.Pos
	for _, l := range s.Lexemes()[1:6] {
		got = append(got, l.Pos)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected positions:\n%s", diff)
	}
}

func TestStream(t *testing.T) {
	s, err := lexer.Tokenize("stream.co", "a b\nc\n\nd e\n\nf")
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Next(); got.Value != "a" {
		t.Fatalf("Next() = %v, want a", got)
	}
	mark := s.Index()
	s.Next()
	if got := s.Prev(); got.Value != "a" {
		t.Errorf("Prev() = %v, want a", got)
	}
	s.SetIndex(mark)
	if got := s.Peek(1); got.Value != "b" {
		t.Errorf("Peek(1) = %v, want b", got)
	}
	s.SkipToEmptyLine()
	if got := s.Current(); got.Value != "d" {
		t.Errorf("after SkipToEmptyLine: Current() = %v, want d", got)
	}
	s.SkipToEmptyLine()
	if got := s.Current(); got.Value != "f" {
		t.Errorf("after SkipToEmptyLine: Current() = %v, want f", got)
	}
	s.SkipToEmptyLine()
	if !s.AtEOF() {
		t.Errorf("stream should be at EOF, got %v", s.Current())
	}
	s.Next()
	if !s.AtEOF() {
		t.Errorf("Next() moved past EOF")
	}
}

func TestUntil(t *testing.T) {
	s, err := lexer.Tokenize("until.co", "(a (b) c) d")
	if err != nil {
		t.Fatal(err)
	}
	s.Next()
	s.Next()
	got := s.Until(lexer.RoundOpen, lexer.RoundClose)
	var vals []string
	for _, l := range got {
		vals = append(vals, l.Value)
	}
	if diff := cmp.Diff([]string{"a", "(", "b", ")", "c"}, vals); diff != "" {
		t.Errorf("unexpected lexemes:\n%s", diff)
	}
	if s.Current().Kind != lexer.RoundClose || s.Peek(1).Value != "d" {
		t.Errorf("cursor on %v, want the closing bracket before d", s.Current())
	}
}
