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
	"errors"
	"fmt"
	"slices"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/chain"
	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/notify"
)

// DefaultHostNamespace tags base entries unless WithHostNamespace is given.
const DefaultHostNamespace = "host"

// errUnchanged aborts a mutation that turned out to be a no-op so nothing
// is published.
var errUnchanged = errors.New("enumx(registry): unchanged")

// Option customizes a Registry built by New.
type Option func(*options)

type options struct {
	logger log.Logger
	host   string
}

// WithLogger sets the logger receiving rejection diagnostics.
func WithLogger(l log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHostNamespace sets the namespace recorded on base entries.
func WithHostNamespace(ns string) Option {
	return func(o *options) {
		if ns != "" {
			o.host = ns
		}
	}
}

// Registry keeps base ∪ custom content of one domain and publishes it as an
// immutable, hook-adjusted View.
//
// Readers (Snapshot, AllEffective) load the current View atomically and never
// block. Mutations run one at a time under the registry's Notifier: a
// mutation attempted from inside a hook or subscriber of the same registry
// fails with ErrReentrantMutation. A rejected mutation publishes nothing.
type Registry[T any] struct {
	domain   apis.Domain
	valueOf  func(T) apis.Value
	host     string
	logger   log.Logger
	notifier *notify.Notifier

	// Fields below are written only inside notifier.Mutate.
	ready   bool
	base    []Entry[T]
	custom  []Entry[T]
	taken   map[apis.Value]Entry[T]
	hooks   chain.Chain[Entry[T]]
	version uint64

	view  atomic.Pointer[View[T]]
	names atomic.Pointer[[]string]
}

// New creates an uninitialized Registry for domain.
// valueOf extracts the host Value of a base item; when nil, an item's
// position in the base slice is its Value.
func New[T any](domain apis.Domain, valueOf func(T) apis.Value, opts ...Option) *Registry[T] {
	o := options{host: DefaultHostNamespace}
	for _, opt := range opts {
		opt(&o)
	}
	logger := log.OrDiscard(o.logger).With("domain", domain.Name)
	return &Registry[T]{
		domain:   domain,
		valueOf:  valueOf,
		host:     o.host,
		logger:   logger,
		notifier: notify.New(logger),
	}
}

// Domain returns the domain the registry serves.
func (r *Registry[T]) Domain() apis.Domain {
	return r.domain
}

// Ready reports whether Initialize has completed.
func (r *Registry[T]) Ready() bool {
	return r.view.Load() != nil
}

// Initialize captures base as the host content. Only the first successful
// call has an effect; later calls are ignored.
func (r *Registry[T]) Initialize(base []T) error {
	err := r.notifier.Mutate(func() error {
		if r.ready {
			if len(base) != len(r.base) {
				r.logger.With("captured", len(r.base), "offered", len(base)).
					Debug("registry already initialized; base ignored")
			}
			return errUnchanged
		}

		entries := make([]Entry[T], len(base))
		taken := make(map[apis.Value]Entry[T], len(base))
		for i, item := range base {
			v := apis.Value(i)
			if r.valueOf != nil {
				v = r.valueOf(item)
			}
			e := Entry[T]{Value: v, Namespace: r.host, Name: v.String(), Payload: item, Base: true}
			if held, dup := taken[v]; dup {
				return r.duplicate(e, held)
			}
			entries[i] = e
			taken[v] = e
		}

		r.base = entries
		r.taken = taken
		r.ready = true
		r.publish(r.custom, r.hooks)
		r.logger.With("base", len(entries)).Debug("registry initialized")
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return r.reentrant(err, "initialize")
}

// Register adds a custom entry and publishes a new View.
// The entry is validated before anything changes: on error the published
// View is the same pointer as before the call.
func (r *Registry[T]) Register(e Entry[T]) error {
	err := r.notifier.Mutate(func() error {
		if !r.ready {
			r.logger.With("namespace", e.Namespace, "name", e.Name).Error("register before initialize")
			return ErrUninitialized
		}
		if err := r.admit(&e, r.taken); err != nil {
			return err
		}
		custom := append(slices.Clip(r.custom), e)
		r.taken[e.Value] = e
		r.publish(custom, r.hooks)
		return nil
	})
	return r.reentrant(err, "register")
}

// RegisterAll registers entries in order and publishes once. Each entry is
// validated on its own; rejected entries are reported in the combined error
// and do not stop the rest.
func (r *Registry[T]) RegisterAll(entries ...Entry[T]) error {
	var errs error
	err := r.notifier.Mutate(func() error {
		if !r.ready {
			r.logger.With("entries", len(entries)).Error("register before initialize")
			return ErrUninitialized
		}
		custom := slices.Clip(r.custom)
		accepted := 0
		for _, e := range entries {
			if err := r.admit(&e, r.taken); err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			custom = append(custom, e)
			r.taken[e.Value] = e
			accepted++
		}
		if accepted == 0 {
			return errUnchanged
		}
		r.publish(custom, r.hooks)
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return errs
	}
	if err != nil {
		return r.reentrant(err, "register all")
	}
	return errs
}

// Remove withdraws the custom entry holding v and publishes a new View.
func (r *Registry[T]) Remove(v apis.Value) error {
	err := r.notifier.Mutate(func() error {
		if !r.ready {
			return ErrUninitialized
		}
		held, ok := r.taken[v]
		if !ok {
			r.logger.With("value", int64(v)).Warn("unregister of unknown value")
			return fmt.Errorf("%w: %s", ErrUnknownValue, v)
		}
		if held.Base {
			r.logger.With("value", int64(v), "name", held.Name).Error("unregister of base entry refused")
			return fmt.Errorf("%w: %s", ErrBaseEntry, v)
		}
		i := slices.IndexFunc(r.custom, func(e Entry[T]) bool { return e.Value == v })
		custom := slices.Delete(slices.Clone(r.custom), i, i+1)
		delete(r.taken, v)
		r.publish(custom, r.hooks)
		return nil
	})
	return r.reentrant(err, "unregister")
}

// Unregister withdraws the custom entry holding v. It reports false for
// unknown values, base values and re-entrant calls; the reason is logged.
func (r *Registry[T]) Unregister(v apis.Value) bool {
	return r.Remove(v) == nil
}

// AddModifyHook appends fn to the hook chain and publishes a new View.
func (r *Registry[T]) AddModifyHook(fn Hook[T]) error {
	return r.AddNamedHook("", fn)
}

// AddNamedHook is AddModifyHook with a label used in diagnostics.
// A hook that panics while being added is rejected.
func (r *Registry[T]) AddNamedHook(name string, fn Hook[T]) error {
	if fn == nil {
		return nil
	}
	err := r.notifier.Mutate(func() error {
		hooks := r.hooks.With(name, fn)
		if !r.ready {
			r.setHooks(hooks)
			return errUnchanged
		}
		v, herr := r.build(r.custom, hooks)
		for _, e := range multierr.Errors(herr) {
			var he *chain.HookError
			if errors.As(e, &he) && he.Index == hooks.Len()-1 {
				r.logger.With("hook", he.Name).Error(he.Error())
				return he
			}
		}
		r.logHookErrors(herr)
		r.setHooks(hooks)
		r.store(v)
		return nil
	})
	if errors.Is(err, errUnchanged) {
		return nil
	}
	return r.reentrant(err, "add hook")
}

// Hooks returns hook labels in application order. It is safe to call
// concurrently with mutations.
func (r *Registry[T]) Hooks() []string {
	names := r.names.Load()
	if names == nil {
		return []string{}
	}
	return slices.Clone(*names)
}

// Subscribe registers fn to receive every newly published View, on the
// mutating goroutine. The returned function cancels the subscription.
func (r *Registry[T]) Subscribe(fn func(*View[T])) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	return r.notifier.Subscribe(func() { fn(r.view.Load()) })
}

// Snapshot returns the current View.
func (r *Registry[T]) Snapshot() (*View[T], error) {
	v := r.view.Load()
	if v == nil {
		return nil, ErrUninitialized
	}
	return v, nil
}

// AllEffective returns the effective payloads, or nil before Initialize.
func (r *Registry[T]) AllEffective() []T {
	v := r.view.Load()
	if v == nil {
		return nil
	}
	return v.Items()
}

// admit validates a custom entry against taken. It marks e as custom.
func (r *Registry[T]) admit(e *Entry[T], taken map[apis.Value]Entry[T]) error {
	e.Base = false
	if e.Namespace == "" {
		r.logger.With("name", e.Name, "value", int64(e.Value)).Error("entry without namespace")
		return fmt.Errorf("%w: %s has no namespace", ErrInvalidEntry, e.Value)
	}
	if held, dup := taken[e.Value]; dup {
		return r.duplicate(*e, held)
	}
	return nil
}

func (r *Registry[T]) duplicate(e, held Entry[T]) error {
	err := &DuplicateError{
		Domain:    r.domain.Name,
		Value:     e.Value,
		Namespace: e.Namespace,
		Name:      e.Name,
		HeldBy:    held.Namespace,
		HeldName:  held.Name,
		Base:      held.Base,
	}
	r.logger.With(
		"namespace", e.Namespace,
		"name", e.Name,
		"value", int64(e.Value),
		"held_by", held.Namespace,
		"held_name", held.Name,
	).Error(err.Error())
	return err
}

// publish rebuilds and stores a View, adopting custom and hooks.
func (r *Registry[T]) publish(custom []Entry[T], hooks chain.Chain[Entry[T]]) {
	v, herr := r.build(custom, hooks)
	r.logHookErrors(herr)
	r.custom = custom
	r.setHooks(hooks)
	r.store(v)
}

// build folds hooks over base ++ custom into the next View.
func (r *Registry[T]) build(custom []Entry[T], hooks chain.Chain[Entry[T]]) (*View[T], error) {
	merged := make([]Entry[T], 0, len(r.base)+len(custom))
	merged = append(merged, r.base...)
	merged = append(merged, custom...)
	out, err := hooks.Apply(merged)
	return newView(r.version+1, r.base, slices.Clone(custom), out), err
}

func (r *Registry[T]) store(v *View[T]) {
	r.version = v.version
	r.view.Store(v)
}

// setHooks adopts hooks and publishes their labels for Hooks.
func (r *Registry[T]) setHooks(hooks chain.Chain[Entry[T]]) {
	r.hooks = hooks
	names := hooks.Names()
	r.names.Store(&names)
}

func (r *Registry[T]) logHookErrors(err error) {
	for _, e := range multierr.Errors(err) {
		r.logger.Error(e.Error())
	}
}

// reentrant logs err when it is a re-entrancy rejection and returns it.
func (r *Registry[T]) reentrant(err error, op string) error {
	if errors.Is(err, ErrReentrantMutation) {
		r.logger.With("op", op).Error(err.Error())
	}
	return err
}
