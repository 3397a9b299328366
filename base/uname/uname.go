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

// Package uname provides unique names.
//
// It is used to name IR values within a function and to give
// overridden members of a unit distinct target names.
package uname

import "strconv"

// Unique generates unique names.
type Unique struct {
	sep   string
	next  map[string]int
	taken map[string]bool
}

// New returns a name generator appending a bare index to taken names.
func New() *Unique {
	return NewWithSep("")
}

// NewWithSep returns a name generator inserting sep between a root name and its index.
func NewWithSep(sep string) *Unique {
	return &Unique{
		sep:   sep,
		next:  make(map[string]int),
		taken: make(map[string]bool),
	}
}

// Reserve marks a name as used without generating it.
func (n *Unique) Reserve(name string) {
	n.taken[name] = true
}

// Taken returns true if a name has been generated or reserved.
func (n *Unique) Taken(name string) bool {
	return n.taken[name]
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	if !n.taken[root] {
		n.taken[root] = true
		return root
	}
	for {
		n.next[root]++
		name := root + n.sep + strconv.Itoa(n.next[root])
		if !n.taken[name] {
			n.taken[name] = true
			return name
		}
	}
}
