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

package driver_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/cordy-lang/cordy/build/diag"
	"github.com/cordy-lang/cordy/build/driver"
	"github.com/cordy-lang/cordy/build/driver/testdriver"
	"github.com/cordy-lang/cordy/build/fmterr"
)

const prelude = `^{TypeInt(Int, 32)}^
^{TypeBool(Bool)}^
public class

{Instruction(Add), Precedence(30)}
Int + (Int a, Int b)

{Instruction(Mul), Precedence(40)}
Int * (Int a, Int b)
`

func TestCompileUnits(t *testing.T) {
	testdriver.Run(t,
		testdriver.Prelude{Path: "Prelude.co", Src: prelude},
		testdriver.Unit{
			Path: "Math.co",
			Src: `public class

Int mad(Int a, Int b, Int c)
	return a * b + c
`,
			Want: map[string]string{
				"mad": `
define int32 @mad(int32 %a, int32 %b, int32 %c) {
entry:
  %t = mul int32 %a, %b
  %t1 = add int32 %t, %c
  ret int32 %t1
}
`,
			},
		},
		testdriver.Unit{
			Path: "User.co",
			Src: `public class

Int square(Int a)
	return mad(a, a, 0)
`,
			Want: map[string]string{
				"square": `
define int32 @square(int32 %a) {
entry:
  %t = call int32 @mad(int32 %a, int32 %a, int32 0)
  ret int32 %t
}
`,
			},
		},
		testdriver.Unit{
			Path: "Broken.co",
			Src: `public class

Int f(Int a)
	return a % a
`,
			Err: "operator not defined",
		},
		testdriver.Unit{
			Path: "Missing.co",
			Src: `public class

Int f(Int a)
	return a + b
`,
			Err: "undefined",
		},
	)
}

func TestCompileTree(t *testing.T) {
	const empty = "public class\n"
	testdriver.Run(t,
		testdriver.Tree{
			Files: map[string]string{
				"Main.co":              empty,
				"Other.co":             empty,
				"README.md":            "not a unit",
				"Math/Vec.co":          empty,
				"Math/_impl/Helper.co": empty,
				"Math/Deep/X.co":       empty,
				"My Space/A.co":        empty,
			},
			Modules: []string{
				"Math.Deep.X",
				"Math.Helper",
				"Math.Vec",
				"My_Space.A",
				"Main",
				"Other",
			},
		},
		testdriver.Tree{
			Files: map[string]string{
				"Bad:Name.co": empty,
			},
			Err: "invalid unit path",
		},
	)
}

func TestBootstrapAcrossNamespaces(t *testing.T) {
	drv := testdriver.Run(t,
		testdriver.Tree{
			Files: map[string]string{
				// Core is a namespace: it is compiled before Main.
				"Core/Ops.co": prelude,
				"Main.co": `public class

Int twice(Int a)
	return a + a
`,
			},
			Modules: []string{"Core.Ops", "Main"},
		},
	)
	if got := len(drv.Units()); got != 2 {
		t.Errorf("got %d units but want 2", got)
	}
	if got := drv.ErrorCount(); got != 0 {
		t.Errorf("got %d errors but want 0", got)
	}
}

func TestPreludes(t *testing.T) {
	col := &diag.Collector{}
	drv, err := driver.New(driver.Options{
		Sink: col,
		Preludes: []fs.FS{fstest.MapFS{
			"Prelude.co": &fstest.MapFile{Data: []byte(prelude)},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	unit, err := drv.CompileFile(fstest.MapFS{
		"Geo/Area.co": &fstest.MapFile{Data: []byte(`public class

Int area(Int w, Int h)
	return w * h + 0
`)},
	}, "Geo/Area.co", "Geo")
	if err != nil {
		t.Fatal(err)
	}
	if unit.Errors != 0 {
		t.Errorf("got %d errors but want 0: %v", unit.Errors, col.Diagnostics())
	}
	if got, want := unit.Module.Name(), "Geo.Area"; got != want {
		t.Errorf("got module %s but want %s", got, want)
	}
	if _, ok := unit.Module.Function("area"); !ok {
		t.Errorf("function area not found in:\n%s", unit.Module)
	}
	stages := map[fmterr.Stage]bool{}
	for _, d := range col.Diagnostics() {
		stages[d.Stage] = true
	}
	if !stages[fmterr.StageDriver] {
		t.Errorf("no driver message in %v", col.Diagnostics())
	}
}

func TestErrorCount(t *testing.T) {
	drv, err := driver.New(driver.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := drv.CompileTree(fstest.MapFS{
		"A.co": &fstest.MapFile{Data: []byte(`public class

Int f(Int a)
	return a
`)},
	}, "."); err != nil {
		t.Fatal(err)
	}
	// Int is not bound to a kind without a prelude.
	if drv.ErrorCount() == 0 {
		t.Errorf("got no error but want an error about type Int")
	}
}
