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

// Package enumx lets runtime extensions add named members to the closed,
// fixed-width enumerations of a host process.
//
// A host ships enumerations such as "boon kind" or "opponent kind" with a
// compiled maximum. Extensions loaded later need new members that are
// stable for the life of the process, never collide with each other, and
// show up wherever the host enumerates its content. enumx solves this in
// two layers:
//
//   - An Allocator turns (domain, namespace, name) into a Value. The first
//     request mints BaseMax+1, the next BaseMax+2, and so on. The same key
//     always yields the same Value; a domain that runs out of room for its
//     backing width reports an overflow instead of wrapping.
//
//   - A registry.Registry per content type keeps the host's base content
//     and the extensions' custom content, and publishes their union, run
//     through an ordered chain of modify hooks, as an immutable View. A new
//     View is built exactly when the content or the hook chain changes.
//
// # Global API
//
// The package keeps one process-wide allocator in an atomically published
// snapshot:
//
//	v, err := enumx.Allocate("boon", "mod.alice", "LuckyCoin")
//	key, ok := enumx.Resolve("boon", v)
//
// Extensions usually work through a namespace handle:
//
//	ext, err := enumx.Open("Alice's Mods", "mod.alice")
//	v, err := ext.Allocate("boon", "LuckyCoin")
//
// Open claims the namespace for its owner. Whether a different owner may
// open the same namespace is decided by the configured apis.Policy: strict
// (the default) refuses, cooperative admits an explicit list of shared
// namespaces, permissive admits everyone.
//
// # Content
//
// package content defines the host's extensible domains and a Catalog of
// typed managers over a shared allocator:
//
//	cat, err := enumx.NewCatalog()
//	err = cat.Initialize(content.Base{Boons: hostBoons})
//	entry, err := enumx.Register(ext, cat.Boons, "LuckyCoin", content.Boon{...})
//	boons := cat.Boons.AllEffective()
//
// Declarative content can be loaded from YAML with package manifest.
//
// # Concurrency model
//
// Reads (Allocate on an existing key, Lookup, Resolve, Snapshot,
// AllEffective) never block on writers: the allocator serves them under a
// read lock and registries publish immutable Views through an atomic
// pointer. Global reconfiguration (SetConfig, SetBuilder, SetAllocator,
// SetAll) takes a short build mutex, assembles a new state, and swaps it
// in. Rebuilding the allocator migrates every allocation with its Value
// unchanged, or fails and leaves the previous state published.
//
// Registry mutations are meant to happen on one goroutine, typically the
// host's main loop. A mutation issued from inside a modify hook or a
// subscriber of the same registry fails with
// registry.ErrReentrantMutation instead of recursing.
//
// # Persistence
//
// Values are assigned first come, first served and are only stable within
// one process. Anything persisted across runs must store the Key and
// re-resolve it; Allocator().Fingerprint() tells whether two runs agree.
package enumx
