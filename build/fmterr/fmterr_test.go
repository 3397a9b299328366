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

package fmterr_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/pkg/errors"
)

var errSentinel = errors.New("sentinel")

func TestAppenderContext(t *testing.T) {
	pos := lexer.Pos{File: "a.co", Row: 3, Col: 2}
	var app fmterr.Appender
	app.Push(fmterr.PrefixWith("function %s: ", "f"))
	app.Append(fmterr.Wrapf(pos, errSentinel, "bad %d", 1))
	app.Pop()
	app.Append(errors.New("plain"))

	errs := app.Errors()
	if len(errs) != 2 {
		t.Fatalf("got %d errors but want 2: %v", len(errs), errs)
	}
	want := "a.co:3:2: function f: bad 1: sentinel"
	if got := errs[0].Error(); got != want {
		t.Errorf("got %q but want %q", got, want)
	}
	if !errors.Is(errs[0], errSentinel) {
		t.Errorf("error %v does not wrap the sentinel", errs[0])
	}
	if got, ok := fmterr.PosOf(errs[0]); !ok || got != pos {
		t.Errorf("PosOf() = %v,%v but want %v", got, ok, pos)
	}
	if got := fmterr.Message(errs[0]); got != "function f: bad 1: sentinel" {
		t.Errorf("Message() = %q", got)
	}
}

func TestAppenderEmpty(t *testing.T) {
	var app fmterr.Appender
	if !app.Empty() || app.Err() != nil {
		t.Errorf("new appender should be empty")
	}
	app.Push(fmterr.PrefixWith("ctx: "))
	app.Append(errors.New("e"))
	if app.Empty() {
		t.Errorf("appender with a pushed error should not be empty")
	}
	if err := app.Err(); !fmterr.IsInternal(err) {
		t.Errorf("fetching errors with a non-empty stack should be an internal error")
	}
	app.Pop()
	if got := app.String(); got != "ctx: e" {
		t.Errorf("got %q but want %q", got, "ctx: e")
	}
}

func TestStage(t *testing.T) {
	err := fmterr.WithStage(fmterr.StageParser, fmterr.Errorf(lexer.Pos{File: "s.co", Row: 1, Col: 1}, "oops"))
	stage, ok := fmterr.StageOf(err)
	if !ok || stage != fmterr.StageParser {
		t.Errorf("StageOf() = %q,%v", stage, ok)
	}
	if got := fmt.Sprintf("%+v", err); !strings.Contains(got, "created at:") {
		t.Errorf("verbose format does not contain a stack trace:\n%s", got)
	}
	if fmterr.WithStage(fmterr.StageParser, nil) != nil {
		t.Errorf("WithStage(nil) should be nil")
	}
}
