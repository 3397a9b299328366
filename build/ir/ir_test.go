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

package ir_test

import (
	"strings"
	"testing"

	"github.com/cordy-lang/cordy/build/ir"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func buildAdd(t *testing.T, mod *ir.Module) *ir.Function {
	fn, err := mod.AddFunction("add", &ir.FuncType{
		Params: []ir.Type{ir.Int32Type, ir.Int32Type},
		Result: ir.Int32Type,
	})
	if err != nil {
		t.Fatal(err)
	}
	fn.Params()[0].SetName("a")
	fn.Params()[1].SetName("b")
	b := ir.NewBuilder()
	b.PositionAtEnd(fn.AppendBlock("entry"))
	slot, err := b.Alloca(ir.Int32Type, "a.ptr")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Store(fn.Params()[0], slot); err != nil {
		t.Fatal(err)
	}
	a, err := b.Load(slot, "a.get")
	if err != nil {
		t.Fatal(err)
	}
	sum, err := b.Binary(ir.OpAdd, a, fn.Params()[1], "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := b.Ret(sum); err != nil {
		t.Fatal(err)
	}
	return fn
}

func TestModuleString(t *testing.T) {
	mod := ir.NewModule("Math.co")
	mod.AddNamedMetadataOperand("cordy.operators.binary", "+")
	fn := buildAdd(t, mod)
	if err := fn.Verify(); err != nil {
		t.Fatal(err)
	}
	if _, err := mod.AddFunction("ext", &ir.FuncType{Params: []ir.Type{ir.Float64Type}, Result: ir.VoidType}); err != nil {
		t.Fatal(err)
	}
	want := `; module Math.co
!cordy.operators.binary = !{"+"}

define int32 @add(int32 %a, int32 %b) {
entry:
  %a.ptr = alloca int32
  store int32 %a, ptr %a.ptr
  %a.get = load int32, ptr %a.ptr
  %t = add int32 %a.get, %b
  ret int32 %t
}

declare void @ext(float64)
`
	if diff := cmp.Diff(want, mod.String()); diff != "" {
		t.Errorf("unexpected module:\n%s", diff)
	}
}

func TestEraseFromParent(t *testing.T) {
	mod := ir.NewModule("m")
	fn := buildAdd(t, mod)
	if _, err := mod.AddFunction("add", fn.Signature()); err == nil {
		t.Errorf("adding add twice succeeded, expected failure")
	}
	fn.EraseFromParent()
	if _, ok := mod.Function("add"); ok {
		t.Errorf("add is still in the module after EraseFromParent")
	}
	if fn.Module() != nil {
		t.Errorf("erased function still has a module")
	}
	if _, err := mod.AddFunction("add", fn.Signature()); err != nil {
		t.Errorf("cannot add a function after erasing it: %v", err)
	}
}

func TestDropBody(t *testing.T) {
	mod := ir.NewModule("m")
	fn := buildAdd(t, mod)
	fn.DropBody()
	if fn.HasBody() {
		t.Errorf("add still has a body after DropBody")
	}
	if fn.Module() != mod {
		t.Errorf("add has been removed from its module")
	}
	if got, want := fn.String(), "declare int32 @add(int32, int32)\n"; got != want {
		t.Errorf("got %q but want %q", got, want)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		result ir.Type
		build  func(b *ir.Builder, fn *ir.Function) error
		err    string
	}{
		{
			result: ir.VoidType,
			build:  func(*ir.Builder, *ir.Function) error { return nil },
			err:    "does not end with a terminator",
		},
		{
			result: ir.Int64Type,
			build: func(b *ir.Builder, fn *ir.Function) error {
				_, err := b.Ret(ir.ConstInt(ir.Int32Type, 1))
				return err
			},
			err: "returns int32 but the function result is int64",
		},
		{
			result: ir.Int64Type,
			build: func(b *ir.Builder, fn *ir.Function) error {
				_, err := b.RetVoid()
				return err
			},
			err: "missing return value",
		},
		{
			result: ir.VoidType,
			build: func(b *ir.Builder, fn *ir.Function) error {
				_, err := b.RetVoid()
				return err
			},
		},
	}
	for i, test := range tests {
		mod := ir.NewModule("m")
		fn, err := mod.AddFunction("f", &ir.FuncType{Result: test.result})
		if err != nil {
			t.Fatal(err)
		}
		b := ir.NewBuilder()
		b.PositionAtEnd(fn.AppendBlock("entry"))
		if err := test.build(b, fn); err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		err = fn.Verify()
		if test.err == "" {
			if err != nil {
				t.Errorf("test %d: unexpected error: %v", i, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), test.err) {
			t.Errorf("test %d: got error %v but want an error containing %q", i, err, test.err)
		}
		if !errors.Is(err, ir.ErrVerify) {
			t.Errorf("test %d: error %v is not a verification error", i, err)
		}
	}
}

func TestBuilderErrors(t *testing.T) {
	mod := ir.NewModule("m")
	fn, _ := mod.AddFunction("f", &ir.FuncType{Params: []ir.Type{ir.Float32Type}, Result: ir.VoidType})
	b := ir.NewBuilder()
	if _, err := b.RetVoid(); err == nil {
		t.Errorf("appending without a block succeeded")
	}
	b.PositionAtEnd(fn.AppendBlock("entry"))
	x := fn.Params()[0]
	if _, err := b.Binary(ir.OpAdd, x, x, ""); err == nil {
		t.Errorf("integer add of floats succeeded")
	}
	if _, err := b.Binary(ir.OpFAdd, x, ir.ConstFloat(ir.Float64Type, 1), ""); err == nil {
		t.Errorf("add of mismatched types succeeded")
	}
	if _, err := b.Load(x, ""); err == nil {
		t.Errorf("load of a non-slot succeeded")
	}
	if _, err := b.Compare(ir.IntSLT, x, x, ""); err == nil {
		t.Errorf("integer comparison of floats succeeded")
	}
	cmpIn, err := b.Compare(ir.FloatOLT, x, x, "lt")
	if err != nil {
		t.Fatal(err)
	}
	if cmpIn.Type() != ir.BoolType || cmpIn.String() != "%lt = fcmp olt float32 %arg0, %arg0" {
		t.Errorf("unexpected comparison %s", cmpIn)
	}
	if _, err := b.RetVoid(); err != nil {
		t.Fatal(err)
	}
	if _, err := b.RetVoid(); err == nil {
		t.Errorf("appending to a terminated block succeeded")
	}
}

func TestParsePredicate(t *testing.T) {
	tests := []struct {
		name string
		want ir.Predicate
	}{
		{name: "SignedLess", want: ir.IntSLT},
		{name: "signedless", want: ir.IntSLT},
		{name: "eq", want: ir.IntEQ},
		{name: "OrderedAndGreaterThan", want: ir.FloatOGT},
	}
	for i, test := range tests {
		got, err := ir.ParsePredicate(test.name)
		if err != nil || got != test.want {
			t.Errorf("test %d: ParsePredicate(%q) = %v,%v but want %v", i, test.name, got, err, test.want)
		}
	}
	if _, err := ir.ParsePredicate("almost"); err == nil {
		t.Errorf("ParsePredicate(almost) succeeded")
	}
}
