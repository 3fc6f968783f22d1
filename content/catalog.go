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
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/manager"
)

// DefaultDomains are the host's extensible domains as shipped. A domain
// already defined on the allocator takes precedence over its default.
var DefaultDomains = []apis.Domain{
	{Name: DomainBoon, BaseMax: 9, Width: apis.Int32},
	{Name: DomainCardCost, BaseMax: 3, Width: apis.Int32},
	{Name: DomainOpponent, BaseMax: 13, Width: apis.Int32},
	{Name: DomainAI, BaseMax: 18, Width: apis.Int32},
	{Name: DomainSequence, BaseMax: 24, Width: apis.Int32},
	{Name: DomainSlotMod, BaseMax: 6, Width: apis.Uint8},
	{Name: DomainConsumable, BaseMax: 31, Width: apis.Int32},
}

// Base is the host content captured at startup.
type Base struct {
	Boons             []Boon
	CardCosts         []CardCost
	Opponents         []Opponent
	AIs               []AI
	Sequences         []Sequence
	SlotModifications []SlotModification
	Consumables       []Consumable
}

// Catalog owns one Manager per extensible domain, all sharing one allocator.
type Catalog struct {
	Boons             *manager.Manager[Boon]
	CardCosts         *manager.Manager[CardCost]
	Opponents         *manager.Manager[Opponent]
	AIs               *manager.Manager[AI]
	Sequences         *manager.Manager[Sequence]
	SlotModifications *manager.Manager[SlotModification]
	Consumables       *manager.Manager[Consumable]

	alloc    apis.Allocator
	bindings map[string]Binding
}

// NewCatalog defines every domain on alloc and builds the managers.
func NewCatalog(alloc apis.Allocator, logger log.Logger) (*Catalog, error) {
	logger = log.OrDiscard(logger)
	c := &Catalog{alloc: alloc, bindings: make(map[string]Binding, len(DefaultDomains))}

	var err error
	c.Boons, err = bindInto(c, DomainBoon, logger, func(p *Boon) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	c.CardCosts, err = bindInto(c, DomainCardCost, logger, func(p *CardCost) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	c.Opponents, err = bindInto(c, DomainOpponent, logger, func(p *Opponent) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	c.AIs, err = bindInto(c, DomainAI, logger, func(p *AI) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	c.Sequences, err = bindInto(c, DomainSequence, logger, func(p *Sequence) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	c.SlotModifications, err = bindInto(c, DomainSlotMod, logger, func(p *SlotModification) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	c.Consumables, err = bindInto(c, DomainConsumable, logger, func(p *Consumable) *apis.Value { return &p.ID })
	if err != nil {
		return nil, err
	}
	return c, nil
}

// bindInto creates the Manager for domain name and records its Binding.
// id addresses the payload's Value field.
func bindInto[T Described](c *Catalog, name string, logger log.Logger, id func(*T) *apis.Value) (*manager.Manager[T], error) {
	d, ok := c.alloc.Domain(name)
	if !ok {
		i := slices.IndexFunc(DefaultDomains, func(x apis.Domain) bool { return x.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("enumx(content): no default for domain %q", name)
		}
		d = DefaultDomains[i]
	}
	m, err := manager.New(c.alloc, d,
		func(p T) apis.Value { return *id(&p) },
		manager.WithLogger[T](logger),
		manager.WithAssign(func(p *T, v apis.Value) { *id(p) = v }),
	)
	if err != nil {
		return nil, err
	}
	c.bindings[name] = Bind(m)
	return m, nil
}

// Initialize captures the host content of every domain. Domains are
// initialized independently; failures are combined.
func (c *Catalog) Initialize(base Base) error {
	return multierr.Combine(
		c.Boons.Initialize(base.Boons),
		c.CardCosts.Initialize(base.CardCosts),
		c.Opponents.Initialize(base.Opponents),
		c.AIs.Initialize(base.AIs),
		c.Sequences.Initialize(base.Sequences),
		c.SlotModifications.Initialize(base.SlotModifications),
		c.Consumables.Initialize(base.Consumables),
	)
}

// Allocator returns the shared allocator.
func (c *Catalog) Allocator() apis.Allocator {
	return c.alloc
}

// Domains returns the catalog's domain names, sorted.
func (c *Catalog) Domains() []string {
	out := make([]string, 0, len(c.bindings))
	for name := range c.bindings {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Binding returns the untyped manager of domain name.
func (c *Catalog) Binding(name string) (Binding, bool) {
	b, ok := c.bindings[name]
	return b, ok
}
