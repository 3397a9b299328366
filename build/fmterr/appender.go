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
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type frame struct {
	wrap func(error) error
	err  error
}

// Appender accumulates the errors of a compilation step.
// Contexts pushed on the appender rewrite the errors appended
// while they are active, once they are popped.
type Appender struct {
	frames []frame
	err    error
}

// Push a context rewriting errors with wrap.
func (app *Appender) Push(wrap func(error) error) {
	app.frames = append(app.frames, frame{wrap: wrap})
}

// Pop the last context. Its errors are rewritten and
// appended to the enclosing context.
func (app *Appender) Pop() {
	last := app.frames[len(app.frames)-1]
	app.frames = app.frames[:len(app.frames)-1]
	for _, err := range multierr.Errors(last.err) {
		app.Append(last.wrap(err))
	}
}

// Append an error to the current context. A nil error is ignored.
// Append returns true if err is nil.
func (app *Appender) Append(err error) bool {
	if err == nil {
		return true
	}
	if len(app.frames) == 0 {
		app.err = multierr.Append(app.err, err)
	} else {
		top := &app.frames[len(app.frames)-1]
		top.err = multierr.Append(top.err, err)
	}
	return false
}

// Appendf appends an error at a position.
func (app *Appender) Appendf(pos lexer.Pos, format string, a ...any) bool {
	return app.Append(Errorf(pos, format, a...))
}

// Err returns the accumulated errors combined with multierr,
// or nil if no error has been appended.
func (app *Appender) Err() error {
	if len(app.frames) > 0 {
		return Internal(errors.Errorf("cannot fetch errors with %d context(s) still pushed", len(app.frames)))
	}
	return app.err
}

// Errors returns the accumulated errors one by one.
func (app *Appender) Errors() []error {
	return multierr.Errors(app.Err())
}

// Empty returns true if no error has been appended, in any context.
func (app *Appender) Empty() bool {
	if app.err != nil {
		return false
	}
	for _, f := range app.frames {
		if f.err != nil {
			return false
		}
	}
	return true
}

func (app *Appender) String() string {
	if app.err == nil {
		return ""
	}
	return app.err.Error()
}
