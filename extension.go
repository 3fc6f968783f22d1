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

package enumx

import (
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/manager"
	"dirpx.dev/enumx/registry"
	"dirpx.dev/enumx/utils/ident"
)

// Extension is an owner's handle on one namespace of the global allocator.
// Every call goes to the allocator published at call time, so an Extension
// keeps working across SetConfig.
type Extension struct {
	owner     string
	namespace string
}

// Open claims namespace for owner on the global allocator. Whether a second
// owner may open an already claimed namespace is decided by the configured
// apis.Policy.
func Open(owner, namespace string) (*Extension, error) {
	if err := Allocator().Claim(namespace, owner); err != nil {
		return nil, err
	}
	// Claim has validated both.
	ns, _ := ident.Namespace(namespace)
	ow, _ := ident.Name(owner)
	return &Extension{owner: ow, namespace: ns}, nil
}

// Owner returns the identity the extension was opened with.
func (e *Extension) Owner() string { return e.owner }

// Namespace returns the extension's namespace.
func (e *Extension) Namespace() string { return e.namespace }

// Allocate returns the stable Value of name in domain.
func (e *Extension) Allocate(domain, name string) (apis.Value, error) {
	return Allocate(domain, e.namespace, name)
}

// Lookup returns an existing Value of name in domain.
func (e *Extension) Lookup(domain, name string) (apis.Value, bool) {
	return Lookup(domain, e.namespace, name)
}

// Register registers payload under name in m, within the extension's namespace.
func Register[T any](e *Extension, m *manager.Manager[T], name string, payload T, flags ...registry.Flags) (registry.Entry[T], error) {
	return m.Register(e.namespace, name, payload, flags...)
}
