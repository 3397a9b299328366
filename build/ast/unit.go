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

package ast

import (
	"iter"

	"github.com/cordy-lang/cordy/base/ordered"
	"github.com/cordy-lang/cordy/build/fmterr"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/pkg/errors"
)

// ErrDuplicate is returned when a member with the same signature is declared twice.
var ErrDuplicate = errors.New("duplicate member")

// Group gathers the members of a unit sharing a kind and a name.
// The first member declared is canonical, the others override it.
type Group struct {
	Kind      MemberKind
	Name      string
	Canonical Member
	Overrides []Member
}

// Members returns the canonical member followed by its overrides.
func (g *Group) Members() []Member {
	return append([]Member{g.Canonical}, g.Overrides...)
}

type groupKey struct {
	kind MemberKind
	name string
}

// Unit is a compiled source file.
type Unit struct {
	Name string
	File string

	// Context is class, interface or enum once the type signature has been parsed.
	Context   string
	Signature *Definition

	Includes   []string
	Parameters []Parameter
	Attributes [][]lexer.Lexeme

	groups *ordered.Map[groupKey, *Group]
}

// NewUnit returns an empty unit.
func NewUnit(name, file string) *Unit {
	return &Unit{
		Name:   name,
		File:   file,
		groups: ordered.NewMap[groupKey, *Group](),
	}
}

// Add a member to its group.
// A member with the same signature as a member already in the group is rejected.
func (u *Unit) Add(m Member) error {
	def := m.Def()
	key := groupKey{kind: m.Kind(), name: def.Name}
	grp, ok := u.groups.Load(key)
	if !ok {
		u.groups.Store(key, &Group{Kind: key.kind, Name: key.name, Canonical: m})
		return nil
	}
	for _, other := range grp.Members() {
		if other.Def().SignatureEqual(def) {
			return fmterr.Wrapf(def.Src, ErrDuplicate, "%s %s already defined in %q with these arguments", key.kind, def.Name, u.Name)
		}
	}
	grp.Overrides = append(grp.Overrides, m)
	return nil
}

// Groups returns the member groups in declaration order.
func (u *Unit) Groups() iter.Seq[*Group] {
	return u.groups.Values()
}

// Group returns the group of a given kind and name.
func (u *Unit) Group(kind MemberKind, name string) (*Group, bool) {
	return u.groups.Load(groupKey{kind: kind, name: name})
}

// NumGroups returns the number of groups in the unit.
func (u *Unit) NumGroups() int {
	return u.groups.Size()
}
