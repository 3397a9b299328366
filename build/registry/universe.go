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

package registry

import (
	"sort"

	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// ErrOperatorNotDefined is returned when an operator cannot be found in any module.
var ErrOperatorNotDefined = errors.New("operator not defined")

type moduleEntry struct {
	mod   *ir.Module
	ops   *Table
	types map[string]irkind.Kind
}

// Universe is the list of modules compiled by a process.
// The list only grows: a module stays visible once appended.
// A Universe is not safe for concurrent use.
type Universe struct {
	root      *Table
	rootTypes map[string]irkind.Kind
	modules   []*moduleEntry
	byModule  map[*ir.Module]*moduleEntry
}

// BuiltinTypes maps the names of the types always available to their kinds.
func BuiltinTypes() map[string]irkind.Kind {
	types := map[string]irkind.Kind{"void": irkind.Void}
	for _, k := range irkind.Scalars {
		types[k.String()] = k
	}
	return types
}

// NewUniverse returns an empty universe.
// Operators of the root table are visible before the ones of any module.
// root can be nil.
func NewUniverse(root *Table) *Universe {
	if root == nil {
		root = NewTable()
	}
	return &Universe{
		root:      root,
		rootTypes: BuiltinTypes(),
		byModule:  make(map[*ir.Module]*moduleEntry),
	}
}

// Root returns the root table.
func (u *Universe) Root() *Table {
	return u.root
}

// Append a module to the universe.
// Operators and types already stored in the metadata of the module are decoded.
func (u *Universe) Append(mod *ir.Module) error {
	if _, ok := u.byModule[mod]; ok {
		return errors.Errorf("module %s already in the universe", mod.Name())
	}
	ops, err := Decode(mod)
	if err != nil {
		return err
	}
	types, err := DecodeTypes(mod)
	if err != nil {
		return err
	}
	entry := &moduleEntry{mod: mod, ops: ops, types: types}
	u.modules = append(u.modules, entry)
	u.byModule[mod] = entry
	return nil
}

// Modules returns the modules in the order in which they have been appended.
func (u *Universe) Modules() []*ir.Module {
	mods := make([]*ir.Module, len(u.modules))
	for i, entry := range u.modules {
		mods[i] = entry.mod
	}
	return mods
}

// Table returns the operators registered by a module.
func (u *Universe) Table(mod *ir.Module) (*Table, bool) {
	entry, ok := u.byModule[mod]
	if !ok {
		return nil, false
	}
	return entry.ops, true
}

// Register an operator declared in a module.
// Only the operators of that module are checked for duplicates.
func (u *Universe) Register(mod *ir.Module, d *Descriptor) error {
	entry, ok := u.byModule[mod]
	if !ok {
		return errors.Errorf("cannot register operator %q: module %s not in the universe", d.Representation, mod.Name())
	}
	if d.Class == Assign {
		return errors.Errorf("cannot register operator %q: assignment is built in", d.Representation)
	}
	if err := entry.ops.Add(d); err != nil {
		return err
	}
	Encode(mod, d)
	return nil
}

func (u *Universe) tables() []*Table {
	ts := make([]*Table, 0, len(u.modules)+1)
	ts = append(ts, u.root)
	for _, entry := range u.modules {
		ts = append(ts, entry.ops)
	}
	return ts
}

// Lookup returns the descriptor of an operator whatever its class.
// Classes are tried in the order prefix, binary, postfix. For each class,
// the root table is searched first, then the modules in order.
func (u *Universe) Lookup(rep string) (*Descriptor, error) {
	tables := u.tables()
	for _, class := range lookupOrder {
		for _, t := range tables {
			if d, ok := t.LookupClass(rep, class); ok {
				return d, nil
			}
		}
	}
	return nil, errors.Wrapf(ErrOperatorNotDefined, "unknown operator %q", rep)
}

// LookupClass returns the descriptor of an operator of a given class.
func (u *Universe) LookupClass(rep string, class Class) (*Descriptor, error) {
	for _, t := range u.tables() {
		if d, ok := t.LookupClass(rep, class); ok {
			return d, nil
		}
	}
	return nil, errors.Wrapf(ErrOperatorNotDefined, "unknown %s operator %q", class, rep)
}

// BindType binds a type keyword to a kind in a module.
func (u *Universe) BindType(mod *ir.Module, name string, knd irkind.Kind) error {
	entry, ok := u.byModule[mod]
	if !ok {
		return errors.Errorf("cannot bind type %s: module %s not in the universe", name, mod.Name())
	}
	if TypeFromKind(knd) == nil {
		return errors.Errorf("cannot bind type %s to kind %s", name, knd)
	}
	if prev, ok := entry.types[name]; ok {
		return errors.Errorf("type %s already bound to %s in module %s", name, prev, mod.Name())
	}
	entry.types[name] = knd
	EncodeType(mod, name, knd)
	return nil
}

// LookupType returns the IR type bound to a type name.
// Built-in types come first, then the modules in order.
func (u *Universe) LookupType(name string) (ir.Type, bool) {
	if knd, ok := u.rootTypes[name]; ok {
		return TypeFromKind(knd), true
	}
	for _, entry := range u.modules {
		if knd, ok := entry.types[name]; ok {
			return TypeFromKind(knd), true
		}
	}
	return nil, false
}

// TypeFromKind returns the IR type of a scalar kind or void.
func TypeFromKind(knd irkind.Kind) ir.Type {
	return ir.TypeFromKind(knd)
}

// TypeNames returns the sorted names of every type known to the universe.
func (u *Universe) TypeNames() []string {
	set := make(map[string]bool)
	for name := range u.rootTypes {
		set[name] = true
	}
	for _, entry := range u.modules {
		for name := range entry.types {
			set[name] = true
		}
	}
	names := maps.Keys(set)
	sort.Strings(names)
	return names
}
