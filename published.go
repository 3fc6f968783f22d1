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

import "dirpx.dev/enumx/apis"

// published is an apis.Allocator that forwards every call to the allocator
// published at call time. Catalogs built by NewCatalog hold it, so their
// managers keep minting from the same table as Allocate and Open after
// SetConfig or SetBuilder migrates the allocator.
type published struct{}

// Ensure published implements apis.Allocator.
var _ apis.Allocator = published{}

func (published) Define(d apis.Domain) error {
	return st.Load().alloc.Define(d)
}

func (published) Allocate(domain, namespace, name string) (apis.Value, error) {
	return st.Load().alloc.Allocate(domain, namespace, name)
}

func (published) Lookup(domain, namespace, name string) (apis.Value, bool) {
	return st.Load().alloc.Lookup(domain, namespace, name)
}

func (published) Resolve(domain string, v apis.Value) (apis.Key, bool) {
	return st.Load().alloc.Resolve(domain, v)
}

func (published) Values(domain string) []apis.Value {
	return st.Load().alloc.Values(domain)
}

func (published) Allocations(domain string) []apis.Allocation {
	return st.Load().alloc.Allocations(domain)
}

func (published) NextFree(domain string) (apis.Value, bool) {
	return st.Load().alloc.NextFree(domain)
}

func (published) Domain(name string) (apis.Domain, bool) {
	return st.Load().alloc.Domain(name)
}

func (published) Domains() []apis.Domain {
	return st.Load().alloc.Domains()
}

func (published) Claim(namespace, owner string) error {
	return st.Load().alloc.Claim(namespace, owner)
}

func (published) Owner(namespace string) (string, bool) {
	return st.Load().alloc.Owner(namespace)
}

func (published) Owners() map[string]string {
	return st.Load().alloc.Owners()
}

func (published) Fingerprint() uint64 {
	return st.Load().alloc.Fingerprint()
}
