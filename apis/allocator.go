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

package apis

// Allocator maps (domain, namespace, name) keys to stable Values.
//
// Allocations are created lazily on first request and never removed. The
// same Key always yields the same Value for the lifetime of the Allocator;
// two distinct keys of one domain never share a Value. Assignment order is
// first-come-first-served, so Values may differ between processes: callers
// that persist must store the Key and re-resolve it.
type Allocator interface {
	// Define declares a domain. Redefining with identical parameters is a no-op.
	Define(d Domain) error
	// Allocate returns the Value for (domain, namespace, name), minting it if needed.
	Allocate(domain, namespace, name string) (Value, error)
	// Lookup returns an existing Value without allocating.
	Lookup(domain, namespace, name string) (Value, bool)
	// Resolve returns the Key that owns v in domain.
	Resolve(domain string, v Value) (Key, bool)
	// Values returns every extension Value of domain in ascending order.
	Values(domain string) []Value
	// Allocations returns every allocation of domain in ascending Value order.
	Allocations(domain string) []Allocation
	// NextFree returns the next Value the domain would mint.
	NextFree(domain string) (Value, bool)
	// Domain returns the definition of a domain.
	Domain(name string) (Domain, bool)
	// Domains returns every defined domain, sorted by name.
	Domains() []Domain
	// Claim records owner as the holder of namespace, subject to the Policy.
	Claim(namespace, owner string) error
	// Owner returns the owner that first claimed namespace.
	Owner(namespace string) (string, bool)
	// Owners returns a copy of every namespace claim.
	Owners() map[string]string
	// Fingerprint digests all allocations in canonical order.
	Fingerprint() uint64
}
