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

package allocator

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/policy"
	"dirpx.dev/enumx/utils/ident"
)

// Option customizes an allocator built by New.
type Option func(*allocator)

// WithPolicy overrides the Policy derived from the Config.
func WithPolicy(p apis.Policy) Option {
	return func(a *allocator) {
		if p != nil {
			a.policy = p
		}
	}
}

// New constructs an Allocator with no domains defined.
// The namespace Policy is derived from cfg unless WithPolicy is given.
func New(cfg apis.Config, opts ...Option) apis.Allocator {
	a := &allocator{
		policy:  policy.For(cfg),
		logger:  log.OrDiscard(cfg.Logger),
		domains: make(map[string]*table),
		owners:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// allocator is the Allocator implementation backed by per-domain tables.
type allocator struct {
	// policy decides shared namespace claims.
	policy apis.Policy
	// logger receives rejection diagnostics.
	logger log.Logger
	// mu guards domains and owners.
	mu sync.RWMutex
	// domains maps a domain name to its table.
	domains map[string]*table
	// owners maps a namespace to the owner that first claimed it.
	owners map[string]string
}

// Ensure allocator implements apis.Allocator.
var _ apis.Allocator = (*allocator)(nil)

// slot is the (namespace, name) part of a Key inside one table.
type slot struct {
	namespace string
	name      string
}

// table holds the allocations of one domain.
type table struct {
	def apis.Domain
	// next is the value the next allocation receives.
	next apis.Value
	// exhausted is set once next would leave the backing width.
	exhausted bool
	bySlot    map[slot]apis.Value
	byValue   map[apis.Value]apis.Key
	// ordered is in ascending Value order because values are minted sequentially.
	ordered []apis.Allocation
}

func newTable(d apis.Domain) *table {
	return &table{
		def:       d,
		next:      d.FirstFree(),
		exhausted: d.BaseMax >= d.Width.Max(),
		bySlot:    make(map[slot]apis.Value),
		byValue:   make(map[apis.Value]apis.Key),
	}
}

// Define declares a domain.
func (a *allocator) Define(d apis.Domain) error {
	name, err := ident.Namespace(d.Name)
	if err != nil {
		return fmt.Errorf("%w: name %q: %w", ErrInvalidDomain, d.Name, err)
	}
	d.Name = name
	if d.BaseMax < d.Width.Min() || d.BaseMax > d.Width.Max() {
		return fmt.Errorf("%w: %q base max %s does not fit %s", ErrInvalidDomain, name, d.BaseMax, d.Width)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if t, ok := a.domains[name]; ok {
		if t.def == d {
			return nil // idempotent re-definition
		}
		return fmt.Errorf("%w: %q defined as {base max %s, %s}, got {base max %s, %s}",
			ErrDomainConflict, name, t.def.BaseMax, t.def.Width, d.BaseMax, d.Width)
	}
	a.domains[name] = newTable(d)
	a.logger.With("domain", name, "base_max", int64(d.BaseMax), "width", d.Width.String()).Debug("domain defined")
	return nil
}

// Allocate returns the Value for (domain, namespace, name), minting it on first use.
func (a *allocator) Allocate(domain, namespace, name string) (apis.Value, error) {
	key, err := normalizeKey(domain, namespace, name)
	if err != nil {
		return 0, err
	}
	s := slot{namespace: key.Namespace, name: key.Name}

	// Fast read path: already allocated.
	a.mu.RLock()
	t, ok := a.domains[key.Domain]
	if ok {
		if v, found := t.bySlot[s]; found {
			a.mu.RUnlock()
			return v, nil
		}
	}
	a.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, key.Domain)
	}

	// Write path: re-check under lock in case another caller minted meanwhile.
	a.mu.Lock()
	defer a.mu.Unlock()

	if v, found := t.bySlot[s]; found {
		return v, nil
	}
	if t.exhausted {
		err := &OverflowError{Key: key, Width: t.def.Width, Limit: t.def.Width.Max()}
		a.logger.With(
			"domain", key.Domain,
			"namespace", key.Namespace,
			"name", key.Name,
			"limit", int64(t.def.Width.Max()),
		).Error(err.Error())
		return 0, err
	}

	v := t.next
	if v == t.def.Width.Max() {
		t.exhausted = true
	} else {
		t.next++
	}
	t.bySlot[s] = v
	t.byValue[v] = key
	t.ordered = append(t.ordered, apis.Allocation{Key: key, Value: v})

	a.logger.With("domain", key.Domain, "namespace", key.Namespace, "name", key.Name, "value", int64(v)).
		Debug("value allocated")
	return v, nil
}

// Lookup returns an existing Value without allocating.
func (a *allocator) Lookup(domain, namespace, name string) (apis.Value, bool) {
	key, err := normalizeKey(domain, namespace, name)
	if err != nil {
		return 0, false
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.domains[key.Domain]
	if !ok {
		return 0, false
	}
	v, ok := t.bySlot[slot{namespace: key.Namespace, name: key.Name}]
	return v, ok
}

// Resolve returns the Key that owns v in domain.
func (a *allocator) Resolve(domain string, v apis.Value) (apis.Key, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.domains[strings.TrimSpace(domain)]
	if !ok {
		return apis.Key{}, false
	}
	k, ok := t.byValue[v]
	return k, ok
}

// Values returns every extension Value of domain in ascending order.
func (a *allocator) Values(domain string) []apis.Value {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.domains[strings.TrimSpace(domain)]
	if !ok {
		return nil
	}
	out := make([]apis.Value, len(t.ordered))
	for i, al := range t.ordered {
		out[i] = al.Value
	}
	return out
}

// Allocations returns every allocation of domain in ascending Value order.
func (a *allocator) Allocations(domain string) []apis.Allocation {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.domains[strings.TrimSpace(domain)]
	if !ok {
		return nil
	}
	return slices.Clone(t.ordered)
}

// NextFree returns the value the domain would mint next. It reports false
// for unknown or exhausted domains.
func (a *allocator) NextFree(domain string) (apis.Value, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.domains[strings.TrimSpace(domain)]
	if !ok || t.exhausted {
		return 0, false
	}
	return t.next, true
}

// Domain returns the definition of a domain.
func (a *allocator) Domain(name string) (apis.Domain, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	t, ok := a.domains[strings.TrimSpace(name)]
	if !ok {
		return apis.Domain{}, false
	}
	return t.def, true
}

// Domains returns every defined domain sorted by name.
func (a *allocator) Domains() []apis.Domain {
	a.mu.RLock()
	out := make([]apis.Domain, 0, len(a.domains))
	for _, t := range a.domains {
		out = append(out, t.def)
	}
	a.mu.RUnlock()
	slices.SortFunc(out, func(x, y apis.Domain) int { return strings.Compare(x.Name, y.Name) })
	return out
}

// Claim records owner as holder of namespace. A different owner is
// admitted only if the Policy allows it; the first owner is kept.
func (a *allocator) Claim(namespace, owner string) error {
	ns, err := ident.Namespace(namespace)
	if err != nil {
		return fmt.Errorf("%w: namespace %q: %w", ErrInvalidKey, namespace, err)
	}
	ow, err := ident.Name(owner)
	if err != nil {
		return fmt.Errorf("%w: owner %q: %w", ErrInvalidKey, owner, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	prev, ok := a.owners[ns]
	if !ok {
		a.owners[ns] = ow
		return nil
	}
	if prev == ow {
		return nil
	}
	if err := a.policy.Admit(ns, prev, ow); err != nil {
		a.logger.With("namespace", ns, "owner", prev, "claimant", ow, "policy", a.policy.Name()).
			Warn("namespace claim refused")
		return err
	}
	a.logger.With("namespace", ns, "owner", prev, "claimant", ow).Debug("namespace shared")
	return nil
}

// Owner returns the owner that first claimed namespace.
func (a *allocator) Owner(namespace string) (string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	o, ok := a.owners[strings.TrimSpace(namespace)]
	return o, ok
}

// Owners returns a copy of every namespace claim.
func (a *allocator) Owners() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return maps.Clone(a.owners)
}

// Fingerprint digests every domain definition and allocation with xxh3.
// Two allocators with equal fingerprints assign identical Values.
func (a *allocator) Fingerprint() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()

	names := make([]string, 0, len(a.domains))
	for n := range a.domains {
		names = append(names, n)
	}
	slices.Sort(names)

	var buf []byte
	for _, n := range names {
		t := a.domains[n]
		buf = append(buf, n...)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, int64(t.def.BaseMax), 10)
		buf = append(buf, 0, byte(t.def.Width), 0)
		for _, al := range t.ordered {
			buf = append(buf, al.Key.Namespace...)
			buf = append(buf, 0)
			buf = append(buf, al.Key.Name...)
			buf = append(buf, 0)
			buf = strconv.AppendInt(buf, int64(al.Value), 10)
			buf = append(buf, 0)
		}
		buf = append(buf, 1)
	}
	return xxh3.Hash(buf)
}

// normalizeKey trims and validates the three key parts.
func normalizeKey(domain, namespace, name string) (apis.Key, error) {
	d := strings.TrimSpace(domain)
	if d == "" {
		return apis.Key{}, fmt.Errorf("%w: empty domain", ErrUnknownDomain)
	}
	ns, err := ident.Namespace(namespace)
	if err != nil {
		return apis.Key{}, fmt.Errorf("%w: namespace %q: %w", ErrInvalidKey, namespace, err)
	}
	n, err := ident.Name(name)
	if err != nil {
		return apis.Key{}, fmt.Errorf("%w: name %q: %w", ErrInvalidKey, name, err)
	}
	return apis.Key{Domain: d, Namespace: ns, Name: n}, nil
}
