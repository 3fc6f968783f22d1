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

// Package manager binds one content type to its domain: values come from a
// shared apis.Allocator and content lives in a registry.Registry.
//
// A Manager is what a host binding reads (AllEffective, Snapshot, Subscribe)
// and what extensions write to (Allocate, Register, AddModifyHook).
package manager

import (
	"fmt"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/registry"
)

// Option customizes a Manager built by New.
type Option[T any] func(*Manager[T])

// WithLogger sets the logger used by the manager and its registry.
func WithLogger[T any](l log.Logger) Option[T] {
	return func(m *Manager[T]) { m.logger = log.OrDiscard(l) }
}

// WithHostNamespace sets the namespace recorded on base entries.
func WithHostNamespace[T any](ns string) Option[T] {
	return func(m *Manager[T]) { m.host = ns }
}

// WithAssign installs a function that stamps the allocated Value into a
// payload before it is registered, for payloads that carry their own ID.
func WithAssign[T any](assign func(*T, apis.Value)) Option[T] {
	return func(m *Manager[T]) { m.assign = assign }
}

// Manager is the per-content-type facade over an allocator and a registry.
type Manager[T any] struct {
	domain apis.Domain
	alloc  apis.Allocator
	reg    *registry.Registry[T]
	assign func(*T, apis.Value)
	logger log.Logger
	host   string
}

// New defines domain on alloc (idempotently) and returns an uninitialized
// Manager. valueOf extracts the host Value from base items; see registry.New.
func New[T any](alloc apis.Allocator, domain apis.Domain, valueOf func(T) apis.Value, opts ...Option[T]) (*Manager[T], error) {
	if err := alloc.Define(domain); err != nil {
		return nil, fmt.Errorf("enumx(manager): define %q: %w", domain.Name, err)
	}
	d, _ := alloc.Domain(domain.Name)

	m := &Manager[T]{domain: d, alloc: alloc, logger: log.DiscardLogger, host: registry.DefaultHostNamespace}
	for _, opt := range opts {
		opt(m)
	}
	m.reg = registry.New(d, valueOf, registry.WithLogger(m.logger), registry.WithHostNamespace(m.host))
	return m, nil
}

// Domain returns the managed domain.
func (m *Manager[T]) Domain() apis.Domain {
	return m.domain
}

// Registry exposes the underlying registry.
func (m *Manager[T]) Registry() *registry.Registry[T] {
	return m.reg
}

// Initialize captures the host's base content.
func (m *Manager[T]) Initialize(base []T) error {
	return m.reg.Initialize(base)
}

// Allocate returns the stable Value for (namespace, name) in this domain.
func (m *Manager[T]) Allocate(namespace, name string) (apis.Value, error) {
	return m.alloc.Allocate(m.domain.Name, namespace, name)
}

// Register allocates a Value for (namespace, name) and registers payload
// under it. The allocation survives a rejected registration.
func (m *Manager[T]) Register(namespace, name string, payload T, flags ...registry.Flags) (registry.Entry[T], error) {
	v, err := m.Allocate(namespace, name)
	if err != nil {
		return registry.Entry[T]{}, err
	}
	key, _ := m.alloc.Resolve(m.domain.Name, v)
	if m.assign != nil {
		m.assign(&payload, v)
	}
	e := registry.NewEntry(v, key.Namespace, key.Name, payload, flags...)
	if err := m.reg.Register(e); err != nil {
		return registry.Entry[T]{}, err
	}
	return e, nil
}

// RegisterEntry registers a prepared entry whose Value was obtained elsewhere.
func (m *Manager[T]) RegisterEntry(e registry.Entry[T]) error {
	return m.reg.Register(e)
}

// Unregister withdraws the content registered under v. The allocation is kept.
func (m *Manager[T]) Unregister(v apis.Value) bool {
	return m.reg.Unregister(v)
}

// AllEffective returns the effective payloads, base first.
func (m *Manager[T]) AllEffective() []T {
	return m.reg.AllEffective()
}

// Snapshot returns the current View.
func (m *Manager[T]) Snapshot() (*registry.View[T], error) {
	return m.reg.Snapshot()
}

// Subscribe observes every published View.
func (m *Manager[T]) Subscribe(fn func(*registry.View[T])) (cancel func()) {
	return m.reg.Subscribe(fn)
}

// AddModifyHook appends fn to the registry's hook chain.
func (m *Manager[T]) AddModifyHook(fn registry.Hook[T]) error {
	return m.reg.AddModifyHook(fn)
}

// ResolveName returns the (namespace, name) v was allocated for. Base values
// resolve to the host namespace while they are part of the base content.
func (m *Manager[T]) ResolveName(v apis.Value) (namespace, name string, ok bool) {
	if key, found := m.alloc.Resolve(m.domain.Name, v); found {
		return key.Namespace, key.Name, true
	}
	view, err := m.reg.Snapshot()
	if err != nil {
		return "", "", false
	}
	for _, e := range view.Base() {
		if e.Value == v {
			return e.Namespace, e.Name, true
		}
	}
	return "", "", false
}

// Lookup returns the effective entry registered under (namespace, name).
func (m *Manager[T]) Lookup(namespace, name string) (registry.Entry[T], bool) {
	v, ok := m.alloc.Lookup(m.domain.Name, namespace, name)
	if !ok {
		return registry.Entry[T]{}, false
	}
	view, err := m.reg.Snapshot()
	if err != nil {
		return registry.Entry[T]{}, false
	}
	return view.Lookup(v)
}
