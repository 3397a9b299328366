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

package diag

import (
	"fmt"

	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
)

// Reporter reports diagnostics for one file and one stage.
type Reporter struct {
	sink   Sink
	file   string
	stage  fmterr.Stage
	errors int
}

// NewReporter returns a reporter bound to a file and a stage.
// A nil sink drops every diagnostic but errors are still counted.
func NewReporter(sink Sink, file string, stage fmterr.Stage) *Reporter {
	return &Reporter{sink: sink, file: file, stage: stage}
}

// WithStage returns a reporter for the same file and sink but another stage.
// Errors reported by the new reporter are not counted by r.
func (r *Reporter) WithStage(stage fmterr.Stage) *Reporter {
	return NewReporter(r.sink, r.file, stage)
}

// File returns the file of the reporter.
func (r *Reporter) File() string {
	return r.file
}

// ErrorCount returns the number of errors reported.
func (r *Reporter) ErrorCount() int {
	return r.errors
}

func (r *Reporter) report(sev Severity, pos lexer.Pos, msg string) {
	if sev == Error {
		r.errors++
	}
	if r.sink == nil {
		return
	}
	r.sink.Report(Diagnostic{
		Severity: sev,
		Msg:      msg,
		File:     r.file,
		Pos:      pos,
		Stage:    r.stage,
	})
}

// Messagef reports a message.
func (r *Reporter) Messagef(pos lexer.Pos, format string, a ...any) {
	r.report(Message, pos, fmt.Sprintf(format, a...))
}

// Infof reports an information.
func (r *Reporter) Infof(pos lexer.Pos, format string, a ...any) {
	r.report(Info, pos, fmt.Sprintf(format, a...))
}

// Warnf reports a warning.
func (r *Reporter) Warnf(pos lexer.Pos, format string, a ...any) {
	r.report(Warning, pos, fmt.Sprintf(format, a...))
}

// Errorf reports an error.
func (r *Reporter) Errorf(pos lexer.Pos, format string, a ...any) {
	r.report(Error, pos, fmt.Sprintf(format, a...))
}

// Err reports an error value. The position and the stage
// attached to the error, if any, override the ones of the reporter.
func (r *Reporter) Err(err error) {
	if err == nil {
		return
	}
	pos, _ := fmterr.PosOf(err)
	stage := r.stage
	if s, ok := fmterr.StageOf(err); ok {
		stage = s
	}
	r.errors++
	if r.sink == nil {
		return
	}
	r.sink.Report(Diagnostic{
		Severity: Error,
		Msg:      fmterr.Message(err),
		File:     r.file,
		Pos:      pos,
		Stage:    stage,
	})
}
