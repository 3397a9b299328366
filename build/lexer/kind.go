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

import "fmt"

// Kind of a lexeme.
type Kind int

// Lexeme kinds.
const (
	Invalid Kind = iota
	SOF
	EOF
	NewLine
	Indent
	String
	Integer
	Float
	Identifier
	Operator
	Assign
	Comma
	RoundOpen
	RoundClose
	SquareOpen
	SquareClose
	CurlyOpen
	CurlyClose

	KeyAccessLevel
	KeyProtected
	KeyStatic
	KeySealed
	KeyFileContext
	KeyTry
	KeyCatch
	KeyFinally
	KeyThrow
	KeyIf
	KeyElif
	KeyElse
	KeySwitch
	KeyFor
	KeyForeach
	KeyWhile
	KeyDo
	KeyInclude
	KeyGet
	KeySet
	KeyUsing
	KeyNew
	KeyEvent
	KeyIs
	KeyThis
	KeyReturn
)

var kindNames = map[Kind]string{
	Invalid:        "invalid",
	SOF:            "start of file",
	EOF:            "end of file",
	NewLine:        "new line",
	Indent:         "indent",
	String:         "string",
	Integer:        "integer",
	Float:          "float",
	Identifier:     "identifier",
	Operator:       "operator",
	Assign:         "assignment",
	Comma:          "comma",
	RoundOpen:      "(",
	RoundClose:     ")",
	SquareOpen:     "[",
	SquareClose:    "]",
	CurlyOpen:      "{",
	CurlyClose:     "}",
	KeyAccessLevel: "access level",
	KeyProtected:   "protected",
	KeyStatic:      "static",
	KeySealed:      "sealed",
	KeyFileContext: "file context",
	KeyTry:         "try",
	KeyCatch:       "catch",
	KeyFinally:     "finally",
	KeyThrow:       "throw",
	KeyIf:          "if",
	KeyElif:        "elif",
	KeyElse:        "else",
	KeySwitch:      "switch",
	KeyFor:         "for",
	KeyForeach:     "foreach",
	KeyWhile:       "while",
	KeyDo:          "do",
	KeyInclude:     "include",
	KeyGet:         "get",
	KeySet:         "set",
	KeyUsing:       "using",
	KeyNew:         "new",
	KeyEvent:       "event",
	KeyIs:          "is",
	KeyThis:        "this",
	KeyReturn:      "return",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// keywords maps reserved words to their kind.
var keywords = map[string]Kind{
	"public":    KeyAccessLevel,
	"private":   KeyAccessLevel,
	"internal":  KeyAccessLevel,
	"protected": KeyProtected,
	"static":    KeyStatic,
	"sealed":    KeySealed,
	"class":     KeyFileContext,
	"interface": KeyFileContext,
	"enum":      KeyFileContext,
	"try":       KeyTry,
	"catch":     KeyCatch,
	"finally":   KeyFinally,
	"throw":     KeyThrow,
	"if":        KeyIf,
	"elif":      KeyElif,
	"else":      KeyElse,
	"switch":    KeySwitch,
	"for":       KeyFor,
	"foreach":   KeyForeach,
	"while":     KeyWhile,
	"do":        KeyDo,
	"include":   KeyInclude,
	"get":       KeyGet,
	"set":       KeySet,
	"using":     KeyUsing,
	"new":       KeyNew,
	"event":     KeyEvent,
	"is":        KeyIs,
	"this":      KeyThis,
	"return":    KeyReturn,
}

// IsOperand returns true if a lexeme of that kind ends an operand.
func (k Kind) IsOperand() bool {
	switch k {
	case Identifier, Integer, Float, String, RoundClose, SquareClose, KeyThis:
		return true
	}
	return false
}
