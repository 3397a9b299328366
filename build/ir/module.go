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

// Package ir is the target intermediate representation of the Cordy compiler.
//
// A Module holds functions and named string metadata. Functions are built
// instruction by instruction with a Builder, checked with Verify and can be
// removed from their module with EraseFromParent.
package ir

import (
	"fmt"
	"iter"
	"strings"

	"github.com/cordy-lang/cordy/base/ordered"
	"github.com/cordy-lang/cordy/base/uname"
	"github.com/pkg/errors"
)

// Module is a compiled unit.
type Module struct {
	name  string
	funcs *ordered.Map[string, *Function]
	meta  *ordered.Map[string, []string]
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		funcs: ordered.NewMap[string, *Function](),
		meta:  ordered.NewMap[string, []string](),
	}
}

// Name of the module.
func (m *Module) Name() string { return m.name }

// AddFunction adds a function declaration to the module.
func (m *Module) AddFunction(name string, sig *FuncType) (*Function, error) {
	if m.funcs.Has(name) {
		return nil, errors.Errorf("function %s already exists in module %s", name, m.name)
	}
	f := &Function{
		name:   name,
		sig:    sig,
		module: m,
		names:  uname.New(),
	}
	for i, t := range sig.Params {
		p := &Param{fn: f, index: i, typ: t}
		p.SetName(fmt.Sprintf("arg%d", i))
		f.params = append(f.params, p)
	}
	m.funcs.Store(name, f)
	return f, nil
}

// Function returns a function of the module given its name.
func (m *Module) Function(name string) (*Function, bool) {
	return m.funcs.Load(name)
}

// Functions returns an iterator over the functions of the module in creation order.
func (m *Module) Functions() iter.Seq[*Function] {
	return m.funcs.Values()
}

// AddNamedMetadataOperand appends a string to a named metadata list.
func (m *Module) AddNamedMetadataOperand(name, value string) {
	vals, _ := m.meta.Load(name)
	m.meta.Store(name, append(vals, value))
}

// NamedMetadata returns the strings of a named metadata list.
func (m *Module) NamedMetadata(name string) []string {
	vals, _ := m.meta.Load(name)
	return append([]string{}, vals...)
}

// MetadataNames returns an iterator over the names of the metadata lists.
func (m *Module) MetadataNames() iter.Seq[string] {
	return m.meta.Keys()
}

func (m *Module) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "; module %s\n", m.name)
	for name, vals := range m.meta.Iter() {
		quoted := make([]string, len(vals))
		for i, v := range vals {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, "!%s = !{%s}\n", name, strings.Join(quoted, ", "))
	}
	for f := range m.funcs.Values() {
		b.WriteString("\n")
		b.WriteString(f.String())
	}
	return b.String()
}
