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

// Package fmterr provides helpers to accumulate errors while compiling and
// to attach source positions and pipeline stages to errors.
package fmterr

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
)

// PrefixWith returns a function to prefix errors with a formatted string.
// The prefixed error keeps its position and can be unwrapped.
func PrefixWith(s string, o ...any) func(err error) error {
	prefix := fmt.Sprintf(s, o...)
	return func(err error) error {
		if pos, ok := PosOf(err); ok {
			return errorWithPos{pos: pos, err: fmt.Errorf("%s%w", prefix, unwrapPos(err))}
		}
		return fmt.Errorf("%s%w", prefix, err)
	}
}

// SuffixWith returns a function appending a formatted string to error messages.
func SuffixWith(s string, o ...any) func(err error) error {
	suffix := fmt.Sprintf(s, o...)
	return func(err error) error {
		if pos, ok := PosOf(err); ok {
			return errorWithPos{pos: pos, err: fmt.Errorf("%w%s", unwrapPos(err), suffix)}
		}
		return fmt.Errorf("%w%s", err, suffix)
	}
}

func unwrapPos(err error) error {
	if withPos, ok := err.(errorWithPos); ok {
		return withPos.err
	}
	return err
}

// Stage is a pipeline stage reported with an error.
type Stage string

// Pipeline stages.
const (
	StageLexer   Stage = "Lexer"
	StageParser  Stage = "Parser"
	StageCodegen Stage = "Codegen"
	StageDriver  Stage = "Driver"
)

type stagedError struct {
	stage Stage
	err   error
}

// WithStage attaches a pipeline stage to an error.
func WithStage(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return stagedError{stage: stage, err: err}
}

// StageOf returns the innermost stage attached to an error.
func StageOf(err error) (Stage, bool) {
	var staged stagedError
	if !errors.As(err, &staged) {
		return "", false
	}
	return staged.stage, true
}

func (err stagedError) Error() string {
	return err.err.Error()
}

func (err stagedError) Unwrap() error {
	return err.err
}

func (err stagedError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

// origin returns the stack recorded by github.com/pkg/errors
// the closest to where the error has been created.
func origin(err error) errors.StackTrace {
	var st errors.StackTrace
	for ; err != nil; err = errors.Unwrap(err) {
		if tracer, ok := err.(interface{ StackTrace() errors.StackTrace }); ok {
			st = tracer.StackTrace()
		}
	}
	return st
}

// format writes an error message. %+v appends the origin of the error.
func format(err error, s fmt.State, verb rune) {
	if verb == 'q' {
		fmt.Fprintf(s, "%q", err.Error())
		return
	}
	io.WriteString(s, err.Error())
	if verb != 'v' || !s.Flag('+') {
		return
	}
	if st := origin(err); st != nil {
		fmt.Fprintf(s, "\ncreated at:%+v\n", st)
	}
}
