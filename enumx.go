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
	"errors"
	"sync"

	"go.uber.org/atomic"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/builder"
	"dirpx.dev/enumx/config"
	"dirpx.dev/enumx/content"
)

// init publishes the default state.
func init() {
	s := &state{cfg: config.DefaultConfig(), bld: builder.New()}
	alloc, err := s.bld.BuildAllocator(s.cfg, nil)
	if err != nil {
		panic(err)
	}
	s.alloc = alloc
	s.res = s.bld.BuildResolver(s.cfg, alloc)
	st.Store(s)
}

// ErrNilAllocator is returned when a builder returns a nil allocator.
var ErrNilAllocator = errors.New("enumx: builder returned nil allocator")

// ErrNilResolver is returned when a builder returns a nil resolver.
var ErrNilResolver = errors.New("enumx: builder returned nil resolver")

// Define declares a domain on the global allocator.
func Define(d apis.Domain) error {
	return st.Load().alloc.Define(d)
}

// Allocate returns the stable Value for (domain, namespace, name) from the
// global allocator, minting it on first use.
func Allocate(domain, namespace, name string) (apis.Value, error) {
	return st.Load().alloc.Allocate(domain, namespace, name)
}

// Lookup returns an existing Value from the global allocator.
func Lookup(domain, namespace, name string) (apis.Value, bool) {
	return st.Load().alloc.Lookup(domain, namespace, name)
}

// Resolve returns the Key owning v in domain.
func Resolve(domain string, v apis.Value) (apis.Key, bool) {
	return st.Load().alloc.Resolve(domain, v)
}

// Values returns every extension Value of domain in ascending order.
func Values(domain string) []apis.Value {
	return st.Load().alloc.Values(domain)
}

// Describe labels v for logs and diagnostics using the global resolver:
// "namespace/name" for allocated values, "domain#value" otherwise.
func Describe(domain string, v apis.Value) string {
	return st.Load().res.Resolve(domain, v)
}

// Resolver returns the global resolver.
func Resolver() apis.Resolver {
	return st.Load().res
}

// NewCatalog builds a content.Catalog over the global allocator, logging
// through the global configuration's logger. The catalog follows the
// allocator across SetConfig and SetBuilder. SetAll and SetAllocator install
// a table without the catalog's domains; build a new catalog after them.
func NewCatalog() (*content.Catalog, error) {
	return content.NewCatalog(published{}, st.Load().cfg.Logger)
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig replaces the global configuration. Unless the allocator is
// pinned, a new allocator is built and every existing allocation migrated
// with its Value unchanged. On error the previous state stays published.
func SetConfig(cfg apis.Config) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nalloc := old.alloc
	if !old.pinned {
		a, err := old.bld.BuildAllocator(cfg, old.alloc)
		if err != nil {
			return err
		}
		nalloc = a
	}
	nres, err := build(old.bld, cfg, nalloc)
	if err != nil {
		return err
	}

	st.Store(&state{cfg: cfg, alloc: nalloc, res: nres, bld: old.bld, pinned: old.pinned})
	return nil
}

// Allocator returns the global allocator.
func Allocator() apis.Allocator {
	return st.Load().alloc
}

// SetAllocator installs alloc as the global allocator and pins it: SetConfig
// and SetBuilder stop rebuilding it until UnpinAllocator. A nil alloc is
// ignored.
func SetAllocator(alloc apis.Allocator) error {
	if alloc == nil {
		return nil
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nres, err := build(old.bld, old.cfg, alloc)
	if err != nil {
		return err
	}

	st.Store(&state{cfg: old.cfg, alloc: alloc, res: nres, bld: old.bld, pinned: true})
	return nil
}

// IsAllocatorPinned reports whether the global allocator is pinned.
func IsAllocatorPinned() bool {
	return st.Load().pinned
}

// UnpinAllocator lets SetConfig and SetBuilder rebuild the allocator again.
func UnpinAllocator() {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(&state{cfg: old.cfg, alloc: old.alloc, res: old.res, bld: old.bld, pinned: false})
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder replaces the global builder and, unless pinned, rebuilds the
// allocator with it.
func SetBuilder(b apis.Builder) error {
	if b == nil {
		return nil
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	nalloc := old.alloc
	if !old.pinned {
		a, err := b.BuildAllocator(old.cfg, old.alloc)
		if err != nil {
			return err
		}
		nalloc = a
	}
	nres, err := build(b, old.cfg, nalloc)
	if err != nil {
		return err
	}

	st.Store(&state{cfg: old.cfg, alloc: nalloc, res: nres, bld: b, pinned: old.pinned})
	return nil
}

// SetAll replaces every global component at once.
//
// Nil cfg and bld keep the current ones. A nil alloc builds a fresh
// allocator without migrating anything and unpins; a non-nil alloc is
// installed pinned. Used mainly by tests to get a clean state.
func SetAll(cfg *apis.Config, alloc apis.Allocator, bld apis.Builder) error {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	nalloc := alloc
	pinned := true
	if nalloc == nil {
		a, err := nbld.BuildAllocator(ncfg, nil)
		if err != nil {
			return err
		}
		nalloc, pinned = a, false
	}
	nres, err := build(nbld, ncfg, nalloc)
	if err != nil {
		return err
	}

	st.Store(&state{cfg: ncfg, alloc: nalloc, res: nres, bld: nbld, pinned: pinned})
	return nil
}

// build checks alloc and builds its resolver.
func build(b apis.Builder, cfg apis.Config, alloc apis.Allocator) (apis.Resolver, error) {
	if alloc == nil {
		return nil, ErrNilAllocator
	}
	res := b.BuildResolver(cfg, alloc)
	if res == nil {
		return nil, ErrNilResolver
	}
	return res, nil
}

// buildMu serializes writers so a partially built state is never published.
var buildMu sync.Mutex

// st is the global state.
var st atomic.Pointer[state]

// state is an immutable snapshot published through st.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// alloc is the global allocator.
	alloc apis.Allocator
	// res labels the values of alloc.
	res apis.Resolver
	// bld builds allocators on reconfiguration.
	bld apis.Builder
	// pinned stops automatic allocator rebuilds.
	pinned bool
}
