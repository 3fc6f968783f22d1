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

package builder

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/multierr"

	"dirpx.dev/enumx/allocator"
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/policy"
	"dirpx.dev/enumx/resolver"
	"dirpx.dev/enumx/strategy"
)

// ErrValueDrift is returned when a migrated allocation would change Value.
var ErrValueDrift = errors.New("enumx(builder): migrated allocation changed value")

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildPolicy returns the Policy selected by cfg.
func (b *builder) BuildPolicy(cfg apis.Config) apis.Policy {
	return policy.For(cfg)
}

// BuildAllocator builds an Allocator with cfg.Domains defined. When prev is
// non-nil, its domains, namespace claims and allocations are replayed into
// the new allocator in ascending Value order, which reproduces every Value.
// Any failure is fatal: the caller keeps prev.
func (b *builder) BuildAllocator(cfg apis.Config, prev apis.Allocator) (apis.Allocator, error) {
	next := allocator.New(cfg, allocator.WithPolicy(b.BuildPolicy(cfg)))

	var errs error
	for _, d := range cfg.Domains {
		errs = multierr.Append(errs, next.Define(d))
	}
	if errs != nil {
		return nil, errs
	}
	if prev == nil {
		return next, nil
	}

	owners := prev.Owners()
	for _, ns := range slices.Sorted(maps.Keys(owners)) {
		errs = multierr.Append(errs, next.Claim(ns, owners[ns]))
	}

	for _, d := range prev.Domains() {
		if err := next.Define(d); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		for _, al := range prev.Allocations(d.Name) {
			v, err := next.Allocate(d.Name, al.Key.Namespace, al.Key.Name)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			if v != al.Value {
				errs = multierr.Append(errs, fmt.Errorf("%w: %s was %s, now %s", ErrValueDrift, al.Key, al.Value, v))
			}
		}
	}
	if errs != nil {
		log.OrDiscard(cfg.Logger).With("domains", len(prev.Domains())).Error("allocator migration failed")
		return nil, errs
	}
	return next, nil
}

// BuildResolver labels Values by their allocation key, falling back to
// "domain#value" for base values.
func (b *builder) BuildResolver(_ apis.Config, alloc apis.Allocator) apis.Resolver {
	return resolver.New(
		strategy.NewAllocatorStrategy(alloc),
		strategy.NewNumericStrategy(),
	)
}
