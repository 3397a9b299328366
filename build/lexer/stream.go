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

package lexer

// Stream is a cursor over the lexemes of a file.
// The cursor can be saved and restored with Index and SetIndex.
type Stream struct {
	file    string
	lexemes []Lexeme
	i       int
}

// NewStream returns a stream over lexemes.
// The slice must start with SOF and end with EOF.
func NewStream(file string, lexemes []Lexeme) *Stream {
	return &Stream{file: file, lexemes: lexemes}
}

// File returns the name of the file the lexemes come from.
func (s *Stream) File() string {
	return s.file
}

// Lexemes returns all the lexemes of the stream.
func (s *Stream) Lexemes() []Lexeme {
	return s.lexemes
}

func (s *Stream) at(i int) Lexeme {
	switch {
	case i < 0:
		return s.lexemes[0]
	case i >= len(s.lexemes):
		return s.lexemes[len(s.lexemes)-1]
	}
	return s.lexemes[i]
}

// Current returns the lexeme under the cursor.
func (s *Stream) Current() Lexeme {
	return s.at(s.i)
}

// Prev returns the lexeme before the cursor.
func (s *Stream) Prev() Lexeme {
	return s.at(s.i - 1)
}

// Peek returns the lexeme n positions after the cursor.
func (s *Stream) Peek(n int) Lexeme {
	return s.at(s.i + n)
}

// Next moves the cursor forward and returns the new current lexeme.
// The cursor stops on EOF.
func (s *Stream) Next() Lexeme {
	if s.i < len(s.lexemes)-1 {
		s.i++
	}
	return s.Current()
}

// Index returns the position of the cursor.
func (s *Stream) Index() int {
	return s.i
}

// SetIndex moves the cursor to an absolute position.
func (s *Stream) SetIndex(i int) {
	s.i = max(0, min(i, len(s.lexemes)-1))
}

// AtEOF returns true if the cursor is on the last lexeme.
func (s *Stream) AtEOF() bool {
	return s.Current().Kind == EOF
}

// SkipToEOL moves the cursor after the next line break
// and returns the lexemes skipped before it.
func (s *Stream) SkipToEOL() []Lexeme {
	var skipped []Lexeme
	for cur := s.Current(); cur.Kind != NewLine && cur.Kind != EOF; cur = s.Next() {
		skipped = append(skipped, cur)
	}
	s.Next()
	return skipped
}

// SkipToEmptyLine moves the cursor to the first lexeme after the next blank line.
func (s *Stream) SkipToEmptyLine() {
	for !s.AtEOF() {
		s.SkipToEOL()
		if s.Current().Kind == NewLine {
			break
		}
	}
	for s.Current().Kind == NewLine {
		s.Next()
	}
}

// Until collects the lexemes up to, excluding, the first lexeme
// of kind closing found at the same bracket depth.
// The cursor is left on the closing lexeme.
func (s *Stream) Until(opening, closing Kind) []Lexeme {
	var got []Lexeme
	depth := 0
	for cur := s.Current(); cur.Kind != EOF; cur = s.Next() {
		switch cur.Kind {
		case opening:
			depth++
		case closing:
			if depth == 0 {
				return got
			}
			depth--
		}
		got = append(got, cur)
	}
	return got
}
