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

package content

import (
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/manager"
	"dirpx.dev/enumx/registry"
)

// Summary is a payload-independent view of one effective entry.
type Summary struct {
	Value       apis.Value `yaml:"value"`
	Namespace   string     `yaml:"namespace"`
	Name        string     `yaml:"name"`
	DisplayName string     `yaml:"displayName,omitempty"`
	Flags       []string   `yaml:"flags,omitempty"`
	Base        bool       `yaml:"base,omitempty"`
}

// Binding is the untyped face of a Manager, used where the payload type is
// chosen at runtime from a domain name.
type Binding interface {
	// Domain returns the managed domain.
	Domain() apis.Domain
	// Ready reports whether the base content has been captured.
	Ready() bool
	// Effective summarizes the current View, or returns nil before Initialize.
	Effective() []Summary
	// RegisterDecoded builds a zero payload, fills it with decode and
	// registers it under (namespace, name). A nil decode registers the
	// zero payload.
	RegisterDecoded(namespace, name string, flags registry.Flags, decode func(any) error) (apis.Value, error)
	// Unregister withdraws the content registered under v.
	Unregister(v apis.Value) bool
}

type binding[T Described] struct {
	m *manager.Manager[T]
}

// Ensure binding implements Binding.
var _ Binding = binding[Boon]{}

// Bind wraps a Manager whose payload is Described.
func Bind[T Described](m *manager.Manager[T]) Binding {
	return binding[T]{m: m}
}

func (b binding[T]) Domain() apis.Domain { return b.m.Domain() }

func (b binding[T]) Ready() bool { return b.m.Registry().Ready() }

func (b binding[T]) Effective() []Summary {
	view, err := b.m.Snapshot()
	if err != nil {
		return nil
	}
	out := make([]Summary, 0, view.Len())
	for _, e := range view.All() {
		out = append(out, Summary{
			Value:       e.Value,
			Namespace:   e.Namespace,
			Name:        e.Name,
			DisplayName: e.Payload.Metadata().DisplayName,
			Flags:       e.Flags.Names(),
			Base:        e.Base,
		})
	}
	return out
}

func (b binding[T]) RegisterDecoded(namespace, name string, flags registry.Flags, decode func(any) error) (apis.Value, error) {
	var payload T
	if decode != nil {
		if err := decode(&payload); err != nil {
			return 0, err
		}
	}
	e, err := b.m.Register(namespace, name, payload, flags)
	if err != nil {
		return 0, err
	}
	return e.Value, nil
}

func (b binding[T]) Unregister(v apis.Value) bool { return b.m.Unregister(v) }
