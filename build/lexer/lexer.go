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

// Package lexer splits Cordy source text into a replayable stream of lexemes.
//
// Cordy is indentation sensitive: a tab run at the start of a line is an
// Indent lexeme and line breaks are NewLine lexemes. Blank lines separate
// declarations and are used by the parser to recover from errors.
package lexer

import (
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

type rule struct {
	group   string
	kind    Kind
	pattern string
}

// Rules are tried in order: the first alternative matching at a position wins.
var rules = []rule{
	{"str", String, `[@$]?(?<q>["'` + "`" + `])(?:\\[\s\S]|(?!\k<q>)[\s\S])*\k<q>`},
	{"nl", NewLine, `\n`},
	{"indent", Indent, `\t+`},
	{"space", Invalid, `[^\S\n\t]+`},
	{"comment", Invalid, `\#\#(?:(?!\#\#|\n).)*(?:\#\#)?`},
	{"mlcomment", Invalid, `\#\*[\s\S]*?(?:\*\#|\z)`},
	{"directive", Invalid, `\#[^\n]*`},
	{"elif", KeyElif, `\belse[\x20\t]+if\b`},
	{"float", Float, `-?\d[\d_]*\.\d[\d_]*(?:[eE][-+]?\d+)?\b`},
	{"int", Integer, `-?0[bB][01][01_]*\b|-?0[oO][0-7][0-7_]*\b|-?0[xX][\da-fA-F][\da-fA-F_]*\b|-?\d[\d_]*\b`},
	{"ident", Identifier, `[@$_\p{L}]\w*(?:\.[@$_\p{L}]\w*)*`},
	{"op", Operator, `[<>=!%^?:&*.\-+\\/~|]{1,3}`},
	{"bracket", Invalid, `[(){}\[\]]`},
	{"comma", Comma, `,`},
}

var brackets = map[string]Kind{
	"(": RoundOpen,
	")": RoundClose,
	"[": SquareOpen,
	"]": SquareClose,
	"{": CurlyOpen,
	"}": CurlyClose,
}

var splitter = compileSplitter()

func compileSplitter() *regexp2.Regexp {
	alts := make([]string, len(rules))
	for i, r := range rules {
		alts[i] = "(?<" + r.group + ">" + r.pattern + ")"
	}
	return regexp2.MustCompile(strings.Join(alts, "|"), regexp2.None)
}

// Normalize converts line endings to \n and the text to Unicode NFC.
func Normalize(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return norm.NFC.String(src)
}

// tokenizer accumulates lexemes line by line.
type tokenizer struct {
	file string
	out  []Lexeme

	lineStart  int
	hasComment bool
}

func (t *tokenizer) emit(lex Lexeme) {
	switch lex.Kind {
	case Indent:
		if len(t.out) > t.lineStart {
			// Tabs inside a line are plain spaces.
			return
		}
	case Integer, Float:
		if strings.HasPrefix(lex.Value, "-") && len(t.out) > 0 && t.out[len(t.out)-1].Kind.IsOperand() {
			t.out = append(t.out, Lexeme{Kind: Operator, Value: "-", Pos: lex.Pos})
			lex.Value = lex.Value[1:]
			lex.Pos.Col++
		}
	case NewLine:
		t.endLine(lex)
		return
	}
	t.out = append(t.out, lex)
}

// endLine drops indentation on blank lines and whole lines holding only comments.
func (t *tokenizer) endLine(nl Lexeme) {
	line := t.out[t.lineStart:]
	onlyIndent := len(line) == 0 || (len(line) == 1 && line[0].Kind == Indent)
	if onlyIndent {
		t.out = t.out[:t.lineStart]
	}
	if !onlyIndent || !t.hasComment {
		t.out = append(t.out, nl)
	}
	t.lineStart = len(t.out)
	t.hasComment = false
}

func classify(m *regexp2.Match) (rule, bool) {
	for _, r := range rules {
		if g := m.GroupByName(r.group); g != nil && len(g.Captures) > 0 {
			return r, true
		}
	}
	return rule{}, false
}

// cursor converts rune offsets into rows and columns.
type cursor struct {
	runes    []rune
	off      int
	row, col int
}

func (c *cursor) advance(to int) {
	for ; c.off < to && c.off < len(c.runes); c.off++ {
		if c.runes[c.off] == '\n' {
			c.row++
			c.col = 1
		} else {
			c.col++
		}
	}
}

// Tokenize splits a source into lexemes.
// The stream always starts with SOF and ends with EOF.
// Characters that no rule matches are returned as Invalid lexemes.
func Tokenize(file, src string) (*Stream, error) {
	src = Normalize(src)
	t := &tokenizer{file: file}
	t.out = append(t.out, Lexeme{Kind: SOF, Pos: Pos{File: file}})
	t.lineStart = 1
	cur := &cursor{runes: []rune(src), row: 1, col: 1}
	m, err := splitter.FindStringMatch(src)
	for ; m != nil && err == nil; m, err = splitter.FindNextMatch(m) {
		if m.Index > cur.off {
			gap := string(cur.runes[cur.off:m.Index])
			t.emit(Lexeme{Kind: Invalid, Value: gap, Pos: Pos{File: file, Row: cur.row, Col: cur.col}})
		}
		cur.advance(m.Index)
		pos := Pos{File: file, Row: cur.row, Col: cur.col}
		cur.advance(m.Index + m.Length)
		r, ok := classify(m)
		if !ok {
			return nil, errors.Errorf("%s: cannot classify %q", pos, m.String())
		}
		value := m.String()
		switch r.group {
		case "space":
			continue
		case "comment", "mlcomment", "directive":
			t.hasComment = true
			continue
		case "ident":
			kind := Identifier
			if kw, isKW := keywords[value]; isKW {
				kind = kw
			}
			t.emit(Lexeme{Kind: kind, Value: value, Pos: pos})
		case "op":
			kind := Operator
			if value == "=" {
				kind = Assign
			}
			t.emit(Lexeme{Kind: kind, Value: value, Pos: pos})
		case "bracket":
			t.emit(Lexeme{Kind: brackets[value], Value: value, Pos: pos})
		default:
			t.emit(Lexeme{Kind: r.kind, Value: value, Pos: pos})
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot tokenize %s", file)
	}
	if cur.off < len(cur.runes) {
		t.emit(Lexeme{Kind: Invalid, Value: string(cur.runes[cur.off:]), Pos: Pos{File: file, Row: cur.row, Col: cur.col}})
		cur.advance(len(cur.runes))
	}
	if len(t.out) > t.lineStart {
		t.endLine(Lexeme{Kind: NewLine, Value: "\n", Pos: Pos{File: file, Row: cur.row, Col: cur.col}})
	}
	t.out = append(t.out, Lexeme{Kind: EOF, Pos: Pos{File: file, Row: cur.row, Col: cur.col}})
	return NewStream(file, t.out), nil
}
