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

package irkind_test

import (
	"testing"

	"github.com/cordy-lang/cordy/build/ir/irkind"
)

func TestKindFromString(t *testing.T) {
	for _, k := range append([]irkind.Kind{irkind.Void}, irkind.Scalars...) {
		if got := irkind.KindFromString(k.String()); got != k {
			t.Errorf("KindFromString(%q) = %v but want %v", k.String(), got, k)
		}
	}
	if got := irkind.KindFromString("ptr"); got != irkind.Invalid {
		t.Errorf("KindFromString(ptr) = %v but want invalid", got)
	}
}

func TestBits(t *testing.T) {
	tests := []struct {
		bits     int
		unsigned bool
		want     irkind.Kind
	}{
		{bits: 32, want: irkind.Int32},
		{bits: 64, want: irkind.Int64},
		{bits: 32, unsigned: true, want: irkind.Uint32},
		{bits: 16, want: irkind.Invalid},
	}
	for i, test := range tests {
		if got := irkind.IntKind(test.bits, test.unsigned); got != test.want {
			t.Errorf("test %d: IntKind(%d, %v) = %v but want %v", i, test.bits, test.unsigned, got, test.want)
		}
	}
	if got := irkind.FloatKind(64); got != irkind.Float64 {
		t.Errorf("FloatKind(64) = %v but want float64", got)
	}
}
