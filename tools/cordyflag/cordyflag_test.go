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

package cordyflag_test

import (
	"flag"
	"testing"

	"github.com/cordy-lang/cordy/tools/cordyflag"
	"github.com/google/go-cmp/cmp"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		args []string
		want []string
	}{
		{
			args: nil,
			want: nil,
		},
		{
			args: []string{"-prelude=a"},
			want: []string{"a"},
		},
		{
			args: []string{"-prelude=a, b,,c"},
			want: []string{"a", "b", "c"},
		},
		{
			args: []string{"-prelude=a", "-prelude=b"},
			want: []string{"a", "b"},
		},
	}
	for i, test := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		got := cordyflag.StringListVar(fs, "prelude", "")
		if err := fs.Parse(test.args); err != nil {
			t.Errorf("test %d: %v", i, err)
			continue
		}
		if diff := cmp.Diff(test.want, *got); diff != "" {
			t.Errorf("test %d: unexpected list (-want +got):\n%s", i, diff)
		}
	}
}
