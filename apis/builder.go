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

// Builder composes an Allocator, its Policy and a Resolver from a Config.
// Implementations may migrate state from a previous Allocator, or ignore it.
type Builder interface {
	// BuildPolicy constructs the namespace Policy for Config.
	BuildPolicy(cfg Config) Policy
	// BuildAllocator constructs an Allocator for Config. Allocations held by
	// prev must be carried over with their Values unchanged.
	BuildAllocator(cfg Config, prev Allocator) (Allocator, error)
	// BuildResolver constructs a Resolver labeling the Values of alloc.
	BuildResolver(cfg Config, alloc Allocator) Resolver
}
