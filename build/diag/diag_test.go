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

package diag_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/cordy-lang/cordy/build/diag"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/google/go-cmp/cmp"
)

func TestReporter(t *testing.T) {
	col := &diag.Collector{}
	r := diag.NewReporter(col, "a.co", fmterr.StageParser)
	pos := lexer.Pos{File: "a.co", Row: 2, Col: 5}
	r.Infof(pos, "modifier %s already set", "static")
	r.Warnf(lexer.Pos{}, "unused")
	r.Err(fmterr.WithStage(fmterr.StageCodegen, fmterr.Errorf(pos, "member %q already defined", "f")))

	want := []diag.Diagnostic{
		{Severity: diag.Info, Msg: "modifier static already set", File: "a.co", Pos: pos, Stage: fmterr.StageParser},
		{Severity: diag.Warning, Msg: "unused", File: "a.co", Stage: fmterr.StageParser},
		{Severity: diag.Error, Msg: `member "f" already defined`, File: "a.co", Pos: pos, Stage: fmterr.StageCodegen},
	}
	if diff := cmp.Diff(want, col.Diagnostics()); diff != "" {
		t.Errorf("unexpected diagnostics:\n%s", diff)
	}
	if r.ErrorCount() != 1 || col.Count(diag.Error) != 1 {
		t.Errorf("got %d errors but want 1", r.ErrorCount())
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	sink := diag.LogSink{Logger: log.New(&buf, "", 0), Min: diag.Warning}
	r := diag.NewReporter(sink, "b.co", fmterr.StageLexer)
	r.Messagef(lexer.Pos{}, "hidden")
	r.Errorf(lexer.Pos{File: "b.co", Row: 1, Col: 3}, "unexpected token %q", "}")
	want := "[b.co][1:3][Lexer][Error] unexpected token \"}\"\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}
