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
	"strings"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/chain"
)

// Flags are appearance flags shared by every content type.
// Content-specific switches belong in the payload.
type Flags uint32

const (
	// FlagHidden keeps the entry out of selection pools.
	FlagHidden Flags = 1 << iota
	// FlagRulebook lists the entry in the host's rulebook/codex screens.
	FlagRulebook
	// FlagUnique allows at most one instance of the entry in a run.
	FlagUnique
)

// Has reports whether every bit of x is set in f.
func (f Flags) Has(x Flags) bool {
	return f&x == x
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagHidden, "hidden"},
	{FlagRulebook, "rulebook"},
	{FlagUnique, "unique"},
}

// ParseFlag maps a flag name to its bit.
func ParseFlag(s string) (Flags, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range flagNames {
		if f.name == s {
			return f.flag, true
		}
	}
	return 0, false
}

// Names returns the names of the set flags in bit order.
func (f Flags) Names() []string {
	var out []string
	for _, x := range flagNames {
		if f.Has(x.flag) {
			out = append(out, x.name)
		}
	}
	return out
}

// String joins Names with "|".
func (f Flags) String() string {
	return strings.Join(f.Names(), "|")
}

// Entry is one piece of content tagged with its domain Value.
// Entries are values; registries never hand out pointers to their own copies.
type Entry[T any] struct {
	// Value is the domain value the content occupies.
	Value apis.Value
	// Namespace is the registering extension's namespace, or the registry's
	// host namespace for base entries.
	Namespace string
	// Name is the symbolic name the Value was allocated under.
	Name string
	// Payload is the content itself.
	Payload T
	// Flags are appearance flags.
	Flags Flags
	// Base is true for entries shipped by the host.
	Base bool
}

// NewEntry builds a custom Entry.
func NewEntry[T any](v apis.Value, namespace, name string, payload T, flags ...Flags) Entry[T] {
	var f Flags
	for _, x := range flags {
		f |= x
	}
	return Entry[T]{Value: v, Namespace: namespace, Name: name, Payload: payload, Flags: f}
}

// Hook transforms the merged base+custom entry list when a View is built.
type Hook[T any] = chain.Hook[Entry[T]]
