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

package fmterr

import (
	"fmt"

	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/pkg/errors"
)

// ErrNotImplemented is returned for constructs recognized by the parser
// but not supported by the compiler.
var ErrNotImplemented = errors.New("not implemented")

type (
	// ErrorWithPos is an error attached to a position in Cordy source.
	ErrorWithPos interface {
		error
		Pos() lexer.Pos
		Err() error
	}

	errorWithPos struct {
		pos lexer.Pos
		err error
	}
)

// Position adds position information to an error.
// An error already carrying a position keeps its own.
func Position(pos lexer.Pos, err error) error {
	if err == nil {
		return nil
	}
	var withPos ErrorWithPos
	if errors.As(err, &withPos) {
		return err
	}
	return errorWithPos{pos: pos, err: err}
}

// Errorf returns a formatted compiler error for the user.
func Errorf(pos lexer.Pos, format string, a ...any) error {
	return errorWithPos{pos: pos, err: errors.Errorf(format, a...)}
}

// Wrapf returns a formatted compiler error wrapping a sentinel error.
// The sentinel can be tested with errors.Is.
func Wrapf(pos lexer.Pos, sentinel error, format string, a ...any) error {
	return errorWithPos{pos: pos, err: errors.Wrapf(sentinel, format, a...)}
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return internalError{err: err}
}

// Internalf returns an internal error at a position.
func Internalf(pos lexer.Pos, format string, a ...any) error {
	return Internal(Errorf(pos, format, a...))
}

type internalError struct {
	err error
}

func (err internalError) Error() string {
	return fmt.Sprintf("cordy internal error. This is a bug in the compiler. Please report it. Error:\n%+v", err.err)
}

func (err internalError) Unwrap() error {
	return err.err
}

// IsInternal returns true if the error has been marked as internal.
func IsInternal(err error) bool {
	var internal internalError
	return errors.As(err, &internal)
}

// Error returns a string description of the error.
func (err errorWithPos) Error() string {
	if !err.pos.IsValid() {
		return err.err.Error()
	}
	return PosString(err.pos) + " " + err.err.Error()
}

// Unwrap the error.
func (err errorWithPos) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err errorWithPos) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

func (err errorWithPos) Pos() lexer.Pos {
	return err.pos
}

func (err errorWithPos) Err() error {
	return err.err
}

// PosString returns a position as a string that can be used for an error.
func PosString(pos lexer.Pos) string {
	return pos.String() + ":"
}

// PosOf returns the position attached to an error, if any.
func PosOf(err error) (lexer.Pos, bool) {
	var withPos ErrorWithPos
	if !errors.As(err, &withPos) {
		return lexer.Pos{}, false
	}
	return withPos.Pos(), true
}

// Message returns the error message without its position prefix.
func Message(err error) string {
	var withPos ErrorWithPos
	if errors.As(err, &withPos) {
		return withPos.Err().Error()
	}
	return err.Error()
}
