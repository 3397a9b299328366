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

package ast_test

import (
	"testing"

	"github.com/cordy-lang/cordy/build/ast"
	"github.com/cordy-lang/cordy/build/lexer"
	"github.com/cordy-lang/cordy/build/registry"
	"github.com/pkg/errors"
)

func TestNewExpressionArity(t *testing.T) {
	a := &ast.VarRef{Name: "a"}
	b := &ast.VarRef{Name: "b"}
	tests := []struct {
		class registry.Class
		args  []ast.Expr
		ok    bool
	}{
		{class: registry.Prefix, args: []ast.Expr{a}, ok: true},
		{class: registry.Prefix, args: []ast.Expr{a, b}},
		{class: registry.Postfix, args: []ast.Expr{a}, ok: true},
		{class: registry.Postfix, args: nil},
		{class: registry.Binary, args: []ast.Expr{a, b}, ok: true},
		{class: registry.Binary, args: []ast.Expr{a}},
		{class: registry.Assign, args: []ast.Expr{a, b}, ok: true},
		{class: registry.Assign, args: []ast.Expr{a, b, a}},
	}
	for i, test := range tests {
		op := &registry.Descriptor{Representation: "~", Class: test.class}
		expr, err := ast.NewExpression(lexer.Pos{}, op, test.args...)
		if test.ok {
			if err != nil || len(expr.Args) != len(test.args) {
				t.Errorf("test %d: unexpected error %v", i, err)
			}
			continue
		}
		if expr != nil || !errors.Is(err, ast.ErrWrongExpression) {
			t.Errorf("test %d: got %v, %v but want a %v error", i, expr, err, ast.ErrWrongExpression)
		}
	}
}

func TestIntLit(t *testing.T) {
	tests := []struct {
		text string
		want string
		err  bool
	}{
		{text: "42", want: "42"},
		{text: "-42", want: "-42"},
		{text: "0x1F", want: "31"},
		{text: "0b1010", want: "10"},
		{text: "0o17", want: "15"},
		{text: "1_000", want: "1000"},
		{text: "007", want: "7"},
		{text: "18446744073709551615", want: "18446744073709551615"},
		{text: "-9223372036854775808", want: "-9223372036854775808"},
		{text: "-9223372036854775809", err: true},
		{text: "0xZZ", err: true},
	}
	for i, test := range tests {
		lit, err := ast.NewIntLit(lexer.Pos{}, test.text)
		if test.err {
			if err == nil {
				t.Errorf("test %d: parsing %s succeeded but want an error", i, test.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if got := lit.String(); got != test.want {
			t.Errorf("test %d: got %s but want %s", i, got, test.want)
		}
	}
}

func def(name string, ret string, params ...string) ast.Definition {
	d := ast.Definition{Name: name}
	if ret != "" {
		d.Return = &ast.TypeRef{Name: ret}
	}
	for _, p := range params {
		d.Params = append(d.Params, &ast.Param{Type: &ast.TypeRef{Name: p}, Name: "x"})
	}
	return d
}

func TestUnitGroups(t *testing.T) {
	u := ast.NewUnit("Math", "Math.co")
	members := []struct {
		m   ast.Member
		err bool
	}{
		{m: &ast.Function{Definition: def("f", "", "Int")}},
		{m: &ast.Function{Definition: def("f", "", "Int")}, err: true},
		{m: &ast.Function{Definition: def("f", "", "Float")}},
		{m: &ast.Function{Definition: def("f", "Int", "Int")}},
		{m: &ast.Function{Definition: def("g", "")}},
		{m: &ast.Property{Definition: def("f", "Int")}},
		{m: &ast.Function{Definition: def("f", "", "Float")}, err: true},
	}
	for i, test := range members {
		err := u.Add(test.m)
		if test.err != (err != nil) {
			t.Errorf("test %d: got error %v but want error=%v", i, err, test.err)
		}
		if err != nil && !errors.Is(err, ast.ErrDuplicate) {
			t.Errorf("test %d: error %v is not a duplicate error", i, err)
		}
	}
	if u.NumGroups() != 3 {
		t.Errorf("got %d groups but want 3", u.NumGroups())
	}
	grp, ok := u.Group(ast.FunctionMember, "f")
	if !ok {
		t.Fatalf("group f not found")
	}
	if grp.Canonical != members[0].m || len(grp.Overrides) != 2 {
		t.Errorf("group f: canonical %v with %d overrides, want the first f with 2 overrides", grp.Canonical, len(grp.Overrides))
	}
	var order []string
	for g := range u.Groups() {
		order = append(order, g.Kind.String()+" "+g.Name)
	}
	want := []string{"function f", "function g", "property f"}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("group %d: got %s but want %s", i, order[i], want[i])
		}
	}
}

func TestTypeRefString(t *testing.T) {
	three, _ := ast.NewIntLit(lexer.Pos{}, "3")
	ref := &ast.TypeRef{
		Name:     "Vector",
		Settings: []ast.Expr{three},
		Template: []*ast.TypeRef{
			{Name: "Int"},
			{Name: "List", Template: []*ast.TypeRef{{Name: "int"}}},
		},
	}
	if got, want := ref.String(), "Vector:3{Int,List{int}}"; got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	var void *ast.TypeRef
	if got := void.String(); got != "void" {
		t.Errorf("got %s but want void", got)
	}
}
