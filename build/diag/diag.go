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

// Package diag reports compiler diagnostics.
//
// A diagnostic has one of four severities and optionally carries a
// file, a position and the pipeline stage that produced it.
package diag

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
)

// Severity of a diagnostic.
type Severity int

// Severities, from the least to the most severe.
const (
	Message Severity = iota
	Info
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Message:
		return "Message"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Diagnostic is a message reported to the user.
type Diagnostic struct {
	Severity Severity
	Msg      string
	File     string
	// Pos is the zero value if the diagnostic has no position.
	Pos   lexer.Pos
	Stage fmterr.Stage
}

func (d Diagnostic) String() string {
	var b strings.Builder
	if d.File != "" {
		fmt.Fprintf(&b, "[%s]", d.File)
	}
	if d.Pos.IsValid() {
		fmt.Fprintf(&b, "[%d:%d]", d.Pos.Row, d.Pos.Col)
	}
	if d.Stage != "" {
		fmt.Fprintf(&b, "[%s]", d.Stage)
	}
	fmt.Fprintf(&b, "[%s] %s", d.Severity, d.Msg)
	return b.String()
}

// Sink receives diagnostics.
type Sink interface {
	Report(Diagnostic)
}

// LogSink writes diagnostics to a logger.
type LogSink struct {
	Logger *log.Logger
	// Min is the least severe level written.
	Min Severity
}

// Report writes a diagnostic if it is at least as severe as Min.
func (s LogSink) Report(d Diagnostic) {
	if d.Severity < s.Min {
		return
	}
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Print(d.String())
}

// Collector stores diagnostics in memory.
type Collector struct {
	mu    sync.Mutex
	diags []Diagnostic
}

// Report appends a diagnostic to the collector.
func (c *Collector) Report(d Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.diags = append(c.diags, d)
}

// Diagnostics returns the diagnostics reported so far.
func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Diagnostic{}, c.diags...)
}

// Count returns the number of diagnostics at a given severity.
func (c *Collector) Count(sev Severity) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, d := range c.diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Tee forwards diagnostics to several sinks.
type Tee []Sink

// Report forwards a diagnostic to every sink.
func (t Tee) Report(d Diagnostic) {
	for _, s := range t {
		s.Report(d)
	}
}
