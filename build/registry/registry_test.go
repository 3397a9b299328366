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

package registry_test

import (
	"testing"

	"github.com/cordy-lang/cordy/build/ir"
	"github.com/cordy-lang/cordy/build/ir/irkind"
	"github.com/cordy-lang/cordy/build/registry"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func newUniverse(t *testing.T, names ...string) (*registry.Universe, []*ir.Module) {
	u := registry.NewUniverse(nil)
	var mods []*ir.Module
	for _, name := range names {
		mod := ir.NewModule(name)
		if err := u.Append(mod); err != nil {
			t.Fatal(err)
		}
		mods = append(mods, mod)
	}
	return u, mods
}

func op(rep string, class registry.Class, prec int) *registry.Descriptor {
	return &registry.Descriptor{
		Representation: rep,
		Class:          class,
		Precedence:     prec,
		Callee:         registry.CalleeInstruction,
		CalleeName:     "Add",
	}
}

func TestLookupOrder(t *testing.T) {
	u, mods := newUniverse(t, "a", "b", "c")
	register := func(mod *ir.Module, d *registry.Descriptor) {
		if err := u.Register(mod, d); err != nil {
			t.Fatal(err)
		}
	}
	register(mods[0], op("-", registry.Binary, 10))
	register(mods[1], op("-", registry.Prefix, 20))
	register(mods[0], op("!", registry.Postfix, 30))
	register(mods[2], op("!", registry.Binary, 40))
	register(mods[0], op("%", registry.Postfix, 50))
	register(mods[1], op("%", registry.Postfix, 60))

	tests := []struct {
		rep       string
		wantClass registry.Class
		wantPrec  int
	}{
		{rep: "-", wantClass: registry.Prefix, wantPrec: 20},
		{rep: "!", wantClass: registry.Binary, wantPrec: 40},
		{rep: "%", wantClass: registry.Postfix, wantPrec: 50},
	}
	for i, test := range tests {
		d, err := u.Lookup(test.rep)
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if d.Class != test.wantClass || d.Precedence != test.wantPrec {
			t.Errorf("test %d: Lookup(%q) = %v but want class %s with precedence %d", i, test.rep, d, test.wantClass, test.wantPrec)
		}
	}

	if d, err := u.LookupClass("-", registry.Binary); err != nil || d.Precedence != 10 {
		t.Errorf("LookupClass(-, binary) = %v, %v", d, err)
	}
	if _, err := u.LookupClass("!", registry.Prefix); !errors.Is(err, registry.ErrOperatorNotDefined) {
		t.Errorf("LookupClass(!, prefix): got error %v but want %v", err, registry.ErrOperatorNotDefined)
	}
}

func TestRootFirst(t *testing.T) {
	root := registry.NewTable()
	if err := root.Add(op("+", registry.Binary, 1)); err != nil {
		t.Fatal(err)
	}
	u := registry.NewUniverse(root)
	mod := ir.NewModule("m")
	if err := u.Append(mod); err != nil {
		t.Fatal(err)
	}
	if err := u.Register(mod, op("+", registry.Binary, 2)); err != nil {
		t.Fatal(err)
	}
	if d, _ := u.Lookup("+"); d.Precedence != 1 {
		t.Errorf("Lookup(+) = %v, want the root descriptor", d)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	u, mods := newUniverse(t, "a", "b")
	if err := u.Register(mods[0], op("+", registry.Binary, 1)); err != nil {
		t.Fatal(err)
	}
	if err := u.Register(mods[0], op("+", registry.Binary, 2)); !errors.Is(err, registry.ErrDuplicateOperator) {
		t.Errorf("registering + twice in a module: got %v but want %v", err, registry.ErrDuplicateOperator)
	}
	if err := u.Register(mods[0], op("+", registry.Prefix, 3)); err != nil {
		t.Errorf("registering + in another class: %v", err)
	}
	if err := u.Register(mods[1], op("+", registry.Binary, 4)); err != nil {
		t.Errorf("registering + in another module: %v", err)
	}
	if d, _ := u.LookupClass("+", registry.Binary); d.Precedence != 1 {
		t.Errorf("first registered module should win, got %v", d)
	}
	if err := u.Register(ir.NewModule("z"), op("*", registry.Binary, 1)); err == nil {
		t.Errorf("registering in a module outside of the universe succeeded")
	}
	if err := u.Register(mods[0], registry.AssignOperator); err == nil {
		t.Errorf("registering the assignment operator succeeded")
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	u, mods := newUniverse(t, "ops")
	want := []*registry.Descriptor{
		{
			Representation: "<",
			Class:          registry.Binary,
			Precedence:     20,
			Callee:         registry.CalleeInstruction,
			CalleeName:     "Compare",
			Predicates:     []string{"SignedLess"},
			Modules:        []string{"Int", "Math"},
		},
		{
			Representation: "++",
			Class:          registry.Postfix,
			Precedence:     90,
			Callee:         registry.CalleeFunction,
			CalleeName:     "inc",
		},
	}
	for _, d := range want {
		if err := u.Register(mods[0], d); err != nil {
			t.Fatal(err)
		}
	}
	if err := u.BindType(mods[0], "Int", irkind.Int32); err != nil {
		t.Fatal(err)
	}

	// A fresh universe only sees the module metadata.
	other := registry.NewUniverse(nil)
	if err := other.Append(mods[0]); err != nil {
		t.Fatal(err)
	}
	var got []*registry.Descriptor
	for _, d := range want {
		found, err := other.LookupClass(d.Representation, d.Class)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, found)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected descriptors:\n%s", diff)
	}
	if typ, ok := other.LookupType("Int"); !ok || typ != ir.Int32Type {
		t.Errorf("LookupType(Int) = %v, %v but want int32", typ, ok)
	}
	if diff := cmp.Diff([]string{"<"}, mods[0].NamedMetadata(registry.OperatorsKey(registry.Binary))); diff != "" {
		t.Errorf("unexpected operator list:\n%s", diff)
	}
}

func TestTypes(t *testing.T) {
	u, mods := newUniverse(t, "a")
	if typ, ok := u.LookupType("float64"); !ok || typ != ir.Float64Type {
		t.Errorf("LookupType(float64) = %v, %v", typ, ok)
	}
	if _, ok := u.LookupType("Int"); ok {
		t.Errorf("Int should not be defined yet")
	}
	if err := u.BindType(mods[0], "Int", irkind.Int64); err != nil {
		t.Fatal(err)
	}
	if err := u.BindType(mods[0], "Int", irkind.Int32); err == nil {
		t.Errorf("binding Int twice succeeded")
	}
	if err := u.BindType(mods[0], "Ptr", irkind.Pointer); err == nil {
		t.Errorf("binding a pointer kind succeeded")
	}
	names := u.TypeNames()
	want := []string{"Int", "bool", "float32", "float64", "int32", "int64", "uint32", "uint64", "void"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("unexpected type names:\n%s", diff)
	}
}
