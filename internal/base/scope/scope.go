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

// Package scope models the variables visible while a function body is emitted.
//
// Frames are stored in a slice indexed by depth. Frame 0 holds the
// parameters of the function. Each entry is either a plain value or a
// slot, that is a mutable storage location. A value becomes a slot only
// through Promote.
package scope

import (
	"fmt"
	"strings"

	"github.com/cordy-lang/cordy/base/ordered"
	"github.com/pkg/errors"
)

// Kind of a scope entry.
type Kind int

const (
	// Value is an immutable value, for example a function parameter.
	Value Kind = iota
	// Slot is a storage location that can be loaded and stored.
	Slot
)

func (k Kind) String() string {
	if k == Slot {
		return "slot"
	}
	return "value"
}

// Entry of a frame.
type Entry[V any] struct {
	kind Kind
	val  V
}

// Kind returns the kind of the entry.
func (e Entry[V]) Kind() Kind { return e.kind }

// IsSlot returns true if the entry is a storage location.
func (e Entry[V]) IsSlot() bool { return e.kind == Slot }

// Get returns the underlying value of the entry.
func (e Entry[V]) Get() V { return e.val }

// Frames is a stack of frames.
type Frames[V any] struct {
	frames []*ordered.Map[string, Entry[V]]
}

// NewFrames returns a stack with an empty frame 0.
func NewFrames[V any]() *Frames[V] {
	return &Frames[V]{
		frames: []*ordered.Map[string, Entry[V]]{ordered.NewMap[string, Entry[V]]()},
	}
}

// Depth returns the index of the current frame.
func (f *Frames[V]) Depth() int {
	return len(f.frames) - 1
}

// Push a new empty frame.
func (f *Frames[V]) Push() {
	f.frames = append(f.frames, ordered.NewMap[string, Entry[V]]())
}

// Pop the current frame. Frame 0 cannot be popped.
func (f *Frames[V]) Pop() error {
	if len(f.frames) == 1 {
		return errors.Errorf("cannot pop frame 0")
	}
	f.frames[len(f.frames)-1] = nil
	f.frames = f.frames[:len(f.frames)-1]
	return nil
}

func (f *Frames[V]) current() *ordered.Map[string, Entry[V]] {
	return f.frames[len(f.frames)-1]
}

// DefineValue defines a value in the current frame, overwriting if necessary.
func (f *Frames[V]) DefineValue(name string, v V) {
	f.current().Store(name, Entry[V]{kind: Value, val: v})
}

// DefineSlot defines a storage location in the current frame, overwriting if necessary.
func (f *Frames[V]) DefineSlot(name string, v V) {
	f.current().Store(name, Entry[V]{kind: Slot, val: v})
}

// Find scans the frames from the current depth down to 0
// and returns the first entry defined for name with the depth of its frame.
func (f *Frames[V]) Find(name string) (entry Entry[V], depth int, ok bool) {
	for depth = len(f.frames) - 1; depth >= 0; depth-- {
		if entry, ok = f.frames[depth].Load(name); ok {
			return entry, depth, true
		}
	}
	return entry, -1, false
}

// IsLocal returns true if name is defined in the current frame.
func (f *Frames[V]) IsLocal(name string) bool {
	return f.current().Has(name)
}

// Promote replaces the value entry of name, wherever it is defined, by a slot.
func (f *Frames[V]) Promote(name string, slot V) error {
	entry, depth, ok := f.Find(name)
	if !ok {
		return errors.Errorf("cannot promote %s: not defined in scope", name)
	}
	if entry.IsSlot() {
		return errors.Errorf("cannot promote %s: already a slot", name)
	}
	f.frames[depth].Store(name, Entry[V]{kind: Slot, val: slot})
	return nil
}

func (f *Frames[V]) String() string {
	var b strings.Builder
	for depth, frame := range f.frames {
		fmt.Fprintf(&b, "frame %d:", depth)
		for name, entry := range frame.Iter() {
			fmt.Fprintf(&b, " %s(%s)", name, entry.kind)
		}
		b.WriteString("\n")
	}
	return b.String()
}
