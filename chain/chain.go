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

package chain

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"
)

// Hook transforms a list. Hooks run in registration order, each receiving
// the output of the previous one; a nil result is an empty list.
type Hook[E any] func([]E) []E

// HookError reports a hook that panicked. The hook is skipped: the next hook
// receives the panicking hook's input.
type HookError struct {
	// Index is the position of the hook in the chain.
	Index int
	// Name is the label the hook was added with.
	Name string
	// Panic is the recovered value.
	Panic any
}

// Error implements error.
func (e *HookError) Error() string {
	return fmt.Sprintf("enumx(chain): hook #%d %q panicked: %v", e.Index, e.Name, e.Panic)
}

// New constructs a Chain that applies the given hooks in order.
// Nil hooks are ignored.
func New[E any](hooks ...Hook[E]) Chain[E] {
	out := make([]link[E], 0, len(hooks))
	for i, h := range hooks {
		if h != nil {
			out = append(out, link[E]{name: fmt.Sprintf("hook-%d", i), fn: h})
		}
	}
	return Chain[E]{links: out}
}

// Chain is an immutable, order-preserving list of hooks.
// The zero value is an empty chain.
type Chain[E any] struct {
	links []link[E]
}

// link is a named hook.
type link[E any] struct {
	name string
	fn   Hook[E]
}

// With returns a new Chain with h appended. The receiver is unchanged.
// A nil hook returns the receiver.
func (c Chain[E]) With(name string, h Hook[E]) Chain[E] {
	if h == nil {
		return c
	}
	if name == "" {
		name = fmt.Sprintf("hook-%d", len(c.links))
	}
	links := make([]link[E], len(c.links), len(c.links)+1)
	copy(links, c.links)
	return Chain[E]{links: append(links, link[E]{name: name, fn: h})}
}

// Len returns the number of hooks.
func (c Chain[E]) Len() int {
	return len(c.links)
}

// Names returns hook labels in application order.
func (c Chain[E]) Names() []string {
	out := make([]string, len(c.links))
	for i, l := range c.links {
		out[i] = l.name
	}
	return out
}

// Apply folds the hooks left to right over a copy of items.
// Panicking hooks are skipped and reported as *HookError values combined
// into the returned error; the result is still usable.
func (c Chain[E]) Apply(items []E) ([]E, error) {
	cur := slices.Clone(items)
	var err error
	for i, l := range c.links {
		next, herr := run(i, l, cur)
		if herr != nil {
			err = multierr.Append(err, herr)
			continue
		}
		cur = next
	}
	if cur == nil {
		cur = []E{}
	}
	return cur, err
}

// run invokes one hook on its own copy of in, converting a panic into an error.
func run[E any](i int, l link[E], in []E) (out []E, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &HookError{Index: i, Name: l.name, Panic: r}
		}
	}()
	return l.fn(slices.Clone(in)), nil
}
