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

package strategy_test

import (
	"testing"

	"dirpx.dev/enumx/allocator"
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/config"
	"dirpx.dev/enumx/content"
	"dirpx.dev/enumx/strategy"
)

func TestAllocatorStrategy_TryResolve(t *testing.T) {
	alloc := allocator.New(config.DefaultConfig())
	if err := alloc.Define(apis.Domain{Name: "boon", BaseMax: 9}); err != nil {
		t.Fatal(err)
	}
	v, err := alloc.Allocate("boon", "mod.alice", "LuckyCoin")
	if err != nil {
		t.Fatal(err)
	}
	s := strategy.NewAllocatorStrategy(alloc)

	got, ok := s.TryResolve("boon", v)
	if !ok || got != "mod.alice/LuckyCoin" {
		t.Fatalf("TryResolve: got (%q,%v), want (mod.alice/LuckyCoin,true)", got, ok)
	}

	// Base values were never allocated.
	got, ok = s.TryResolve("boon", 3)
	if ok || got != "" {
		t.Fatalf("TryResolve(base): got (%q,%v), want ('',false)", got, ok)
	}

	// A nil allocator never handles.
	if _, ok := strategy.NewAllocatorStrategy(nil).TryResolve("boon", v); ok {
		t.Fatal("nil allocator handled a value")
	}
}

func TestCatalogStrategy_TryResolve(t *testing.T) {
	c, err := content.NewCatalog(allocator.New(config.DefaultConfig()), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Initialize(content.Base{Boons: []content.Boon{{ID: 0}}}); err != nil {
		t.Fatal(err)
	}
	e, err := c.Boons.Register("mod.alice", "LuckyCoin", content.Boon{Meta: content.Meta{DisplayName: "Lucky Coin"}})
	if err != nil {
		t.Fatal(err)
	}
	s := strategy.NewCatalogStrategy(c)

	if got, ok := s.TryResolve(content.DomainBoon, e.Value); !ok || got != "Lucky Coin" {
		t.Fatalf("TryResolve: got (%q,%v), want (Lucky Coin,true)", got, ok)
	}
	// Effective but without a display name.
	if got, ok := s.TryResolve(content.DomainBoon, 0); ok {
		t.Fatalf("TryResolve(unnamed): got (%q,%v), want ('',false)", got, ok)
	}
	if _, ok := s.TryResolve("weather", 0); ok {
		t.Fatal("unknown domain handled")
	}

	// Withdrawn content is no longer labeled.
	c.Boons.Unregister(e.Value)
	if _, ok := s.TryResolve(content.DomainBoon, e.Value); ok {
		t.Fatal("withdrawn value still labeled")
	}
}

func TestNumericStrategy_TryResolve(t *testing.T) {
	got, ok := strategy.NewNumericStrategy().TryResolve("boon", 42)
	if !ok || got != "boon#42" {
		t.Fatalf("TryResolve: got (%q,%v), want (boon#42,true)", got, ok)
	}
}
