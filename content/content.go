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

// Package content defines the payloads of the host's extensible domains and
// a Catalog holding one manager.Manager per domain.
//
// Payloads carry display metadata and an optional Factory producing the
// extension's behavior component. The host binding calls the Factory when
// it attaches behavior to a host object; this package never instantiates
// anything itself.
package content

import "dirpx.dev/enumx/apis"

// Domain names.
const (
	DomainBoon       = "boon"
	DomainCardCost   = "cardcost"
	DomainOpponent   = "opponent"
	DomainAI         = "ai"
	DomainSequence   = "sequence"
	DomainSlotMod    = "slotmod"
	DomainConsumable = "consumable"
)

// Factory produces a behavior instance for one host object.
type Factory func() any

// New calls f, or returns nil for content without behavior.
func (f Factory) New() any {
	if f == nil {
		return nil
	}
	return f()
}

// Meta is the display metadata shared by every payload.
type Meta struct {
	DisplayName string `yaml:"displayName"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// Described is implemented by every payload.
type Described interface {
	Metadata() Meta
}

// Boon is a run-wide passive effect.
type Boon struct {
	Meta `yaml:",inline"`

	ID        apis.Value `yaml:"-"`
	Minor     bool       `yaml:"minor"`
	Stackable bool       `yaml:"stackable"`
	Behavior  Factory    `yaml:"-"`
}

// Metadata implements Described.
func (b Boon) Metadata() Meta { return b.Meta }

// CardCost is a resource a card can be paid with.
type CardCost struct {
	Meta `yaml:",inline"`

	ID       apis.Value `yaml:"-"`
	Resource string     `yaml:"resource"`
	Max      int        `yaml:"max"`
	Behavior Factory    `yaml:"-"`
}

// Metadata implements Described.
func (c CardCost) Metadata() Meta { return c.Meta }

// Opponent is a battle adversary. AI and Sequence name entries of the ai
// and sequence domains as "namespace/name".
type Opponent struct {
	Meta `yaml:",inline"`

	ID       apis.Value `yaml:"-"`
	Boss     bool       `yaml:"boss"`
	AI       string     `yaml:"ai"`
	Sequence string     `yaml:"sequence"`
	Behavior Factory    `yaml:"-"`
}

// Metadata implements Described.
func (o Opponent) Metadata() Meta { return o.Meta }

// AI drives an opponent's card play.
type AI struct {
	Meta `yaml:",inline"`

	ID       apis.Value `yaml:"-"`
	Behavior Factory    `yaml:"-"`
}

// Metadata implements Described.
func (a AI) Metadata() Meta { return a.Meta }

// Sequence is a scripted special event.
type Sequence struct {
	Meta `yaml:",inline"`

	ID       apis.Value `yaml:"-"`
	Trigger  string     `yaml:"trigger"`
	Behavior Factory    `yaml:"-"`
}

// Metadata implements Described.
func (s Sequence) Metadata() Meta { return s.Meta }

// SlotModification alters a board slot.
type SlotModification struct {
	Meta `yaml:",inline"`

	ID       apis.Value `yaml:"-"`
	Texture  string     `yaml:"texture"`
	Behavior Factory    `yaml:"-"`
}

// Metadata implements Described.
func (s SlotModification) Metadata() Meta { return s.Meta }

// Consumable is a single-use item.
type Consumable struct {
	Meta `yaml:",inline"`

	ID         apis.Value `yaml:"-"`
	PowerLevel int        `yaml:"powerLevel"`
	Regions    []string   `yaml:"regions"`
	Behavior   Factory    `yaml:"-"`
}

// Metadata implements Described.
func (c Consumable) Metadata() Meta { return c.Meta }
