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

	"github.com/cordy-lang/cordy/base/ordered"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// ErrDuplicateOperator is returned when an operator is registered twice in a class of a table.
var ErrDuplicateOperator = errors.New("operator already registered")

// Table stores descriptors by class and representation.
type Table struct {
	classes [numClasses]*ordered.Map[string, *Descriptor]
}

// NewTable returns an empty table.
func NewTable() *Table {
	t := &Table{}
	for i := range t.classes {
		t.classes[i] = ordered.NewMap[string, *Descriptor]()
	}
	return t
}

// Add a descriptor to the table.
func (t *Table) Add(d *Descriptor) error {
	if d.Class < 0 || d.Class >= numClasses {
		return errors.Errorf("invalid class %d for operator %q", d.Class, d.Representation)
	}
	ops := t.classes[d.Class]
	if ops.Has(d.Representation) {
		return errors.Wrapf(ErrDuplicateOperator, "%s operator %q", d.Class, d.Representation)
	}
	ops.Store(d.Representation, d)
	return nil
}

// LookupClass returns the descriptor of an operator in a given class.
func (t *Table) LookupClass(rep string, class Class) (*Descriptor, bool) {
	if class < 0 || class >= numClasses {
		return nil, false
	}
	return t.classes[class].Load(rep)
}

// Lookup returns the descriptor of an operator, trying the prefix, binary then postfix classes.
func (t *Table) Lookup(rep string) (*Descriptor, bool) {
	for _, class := range lookupOrder {
		if d, ok := t.classes[class].Load(rep); ok {
			return d, true
		}
	}
	return nil, false
}

// Descriptors returns the descriptors of a class in registration order.
func (t *Table) Descriptors(class Class) []*Descriptor {
	var ds []*Descriptor
	for d := range t.classes[class].Values() {
		ds = append(ds, d)
	}
	return ds
}

// Representations returns the sorted representations of a class.
func (t *Table) Representations(class Class) []string {
	set := make(map[string]bool)
	for rep := range t.classes[class].Keys() {
		set[rep] = true
	}
	reps := maps.Keys(set)
	sort.Strings(reps)
	return reps
}

// Size returns the number of descriptors in the table.
func (t *Table) Size() int {
	n := 0
	for _, ops := range t.classes {
		n += ops.Size()
	}
	return n
}
