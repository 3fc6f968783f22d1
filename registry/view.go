/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"iter"
	"slices"

	"dirpx.dev/enumx/apis"
)

// View is an immutable snapshot of a Registry: the hook chain applied to
// base ++ custom. A View never changes after publication, so holding an old
// View is safe and simply observes stale but consistent content.
type View[T any] struct {
	version uint64
	base    []Entry[T]
	custom  []Entry[T]
	entries []Entry[T]
	items   []T
	index   map[apis.Value]int
}

// newView indexes entries. The slices are owned by the View from here on.
func newView[T any](version uint64, base, custom, entries []Entry[T]) *View[T] {
	items := make([]T, len(entries))
	index := make(map[apis.Value]int, len(entries))
	for i, e := range entries {
		items[i] = e.Payload
		if _, dup := index[e.Value]; !dup {
			index[e.Value] = i
		}
	}
	return &View[T]{
		version: version,
		base:    base,
		custom:  custom,
		entries: entries,
		items:   items,
		index:   index,
	}
}

// Version increases by one with every publication.
func (v *View[T]) Version() uint64 {
	return v.version
}

// Len returns the number of effective entries.
func (v *View[T]) Len() int {
	return len(v.entries)
}

// Items returns the effective payloads in order.
func (v *View[T]) Items() []T {
	return slices.Clone(v.items)
}

// Entries returns the effective entries in order.
func (v *View[T]) Entries() []Entry[T] {
	return slices.Clone(v.entries)
}

// All iterates the effective entries without copying.
func (v *View[T]) All() iter.Seq2[int, Entry[T]] {
	return func(yield func(int, Entry[T]) bool) {
		for i, e := range v.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Lookup returns the first effective entry holding value.
func (v *View[T]) Lookup(value apis.Value) (Entry[T], bool) {
	i, ok := v.index[value]
	if !ok {
		var zero Entry[T]
		return zero, false
	}
	return v.entries[i], true
}

// Contains reports whether value is effective.
func (v *View[T]) Contains(value apis.Value) bool {
	_, ok := v.index[value]
	return ok
}

// Filter returns the payloads of entries accepted by keep, in order.
func (v *View[T]) Filter(keep func(Entry[T]) bool) []T {
	var out []T
	for _, e := range v.entries {
		if keep(e) {
			out = append(out, e.Payload)
		}
	}
	return out
}

// Values returns the effective values in order.
func (v *View[T]) Values() []apis.Value {
	out := make([]apis.Value, len(v.entries))
	for i, e := range v.entries {
		out[i] = e.Value
	}
	return out
}

// Base returns the host entries captured at initialization.
func (v *View[T]) Base() []Entry[T] {
	return slices.Clone(v.base)
}

// Custom returns the registered extension entries before hooks, in
// registration order.
func (v *View[T]) Custom() []Entry[T] {
	return slices.Clone(v.custom)
}
