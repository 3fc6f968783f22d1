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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"dirpx.dev/enumx/allocator"
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/config"
	"dirpx.dev/enumx/content"
	"dirpx.dev/enumx/policy"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var boonDomain = apis.Domain{Name: "boon", BaseMax: 20}

// reset installs a clean, unpinned state built from cfg.
func reset(tb testing.TB, opts ...config.Option) {
	tb.Helper()
	cfg := config.NewConfig(opts...)
	require.NoError(tb, SetAll(&cfg, nil, nil))
}

// failingBuilder always fails to build an allocator.
type failingBuilder struct{ apis.Builder }

var errBuild = errors.New("build failed")

func (failingBuilder) BuildAllocator(apis.Config, apis.Allocator) (apis.Allocator, error) {
	return nil, errBuild
}

// nilBuilder returns a nil allocator without an error.
type nilBuilder struct{ apis.Builder }

func (nilBuilder) BuildAllocator(apis.Config, apis.Allocator) (apis.Allocator, error) {
	return nil, nil
}

func TestGlobal_AllocateResolve(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))

	v1, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)
	again, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)
	v2, err := Allocate("boon", "mod.bob", "LuckyCoin")
	require.NoError(t, err)

	assert.Equal(t, v1, again)
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, []apis.Value{21, 22}, Values("boon"))

	key, ok := Resolve("boon", v2)
	require.True(t, ok)
	assert.Equal(t, apis.Key{Domain: "boon", Namespace: "mod.bob", Name: "LuckyCoin"}, key)

	got, ok := Lookup("boon", "mod.alice", "LuckyCoin")
	require.True(t, ok)
	assert.Equal(t, v1, got)

	_, err = Allocate("weather", "mod.alice", "Rain")
	require.ErrorIs(t, err, allocator.ErrUnknownDomain)
}

func TestGlobal_Define(t *testing.T) {
	reset(t)
	require.NoError(t, Define(boonDomain))
	require.NoError(t, Define(boonDomain))
	require.ErrorIs(t, Define(apis.Domain{Name: "boon", BaseMax: 5}), allocator.ErrDomainConflict)
}

func TestSetConfig_MigratesAllocations(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))
	v, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)
	before := Allocator()

	require.NoError(t, SetConfig(config.NewConfig(config.WithPolicy(apis.PolicyPermissive))))
	assert.NotSame(t, before, Allocator())
	assert.Equal(t, apis.PolicyPermissive, Config().Policy)

	got, ok := Lookup("boon", "mod.alice", "LuckyCoin")
	require.True(t, ok)
	assert.Equal(t, v, got)
	assert.Equal(t, before.Fingerprint(), Allocator().Fingerprint())
}

func TestSetConfig_FailureKeepsState(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))
	_, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)
	before := Allocator()
	cfgBefore := Config()

	bad := config.NewConfig(config.WithDomains(apis.Domain{Name: "boon", BaseMax: 99}))
	require.ErrorIs(t, SetConfig(bad), allocator.ErrDomainConflict)
	assert.Same(t, before, Allocator())
	assert.Equal(t, cfgBefore, Config())
}

func TestSetAllocator_Pins(t *testing.T) {
	reset(t)
	mine := allocator.New(config.DefaultConfig())
	require.NoError(t, mine.Define(boonDomain))

	require.NoError(t, SetAllocator(mine))
	assert.True(t, IsAllocatorPinned())
	require.NoError(t, SetConfig(config.NewConfig(config.WithPolicy(apis.PolicyPermissive))))
	assert.Same(t, mine, Allocator(), "pinned allocator survives SetConfig")

	require.NoError(t, SetAllocator(nil))
	assert.Same(t, mine, Allocator())

	UnpinAllocator()
	assert.False(t, IsAllocatorPinned())
	require.NoError(t, SetConfig(config.DefaultConfig()))
	assert.NotSame(t, mine, Allocator())
	_, ok := Allocator().Domain("boon")
	assert.True(t, ok, "domains migrate with the allocator")
}

func TestDescribe(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))
	v, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)

	assert.Equal(t, "mod.alice/LuckyCoin", Describe("boon", v))
	assert.Equal(t, "boon#3", Describe("boon", 3))
	assert.Equal(t, "mod.alice/LuckyCoin", Resolver().Resolve("boon", v))

	// The resolver follows allocator swaps.
	mine := allocator.New(config.DefaultConfig())
	require.NoError(t, mine.Define(boonDomain))
	require.NoError(t, SetAllocator(mine))
	assert.Equal(t, "boon#"+v.String(), Describe("boon", v))
}

func TestSetBuilder(t *testing.T) {
	reset(t)
	orig := Builder()
	t.Cleanup(func() { require.NoError(t, SetAll(nil, nil, orig)) })

	before := Allocator()
	require.ErrorIs(t, SetBuilder(failingBuilder{orig}), errBuild)
	assert.Same(t, before, Allocator())
	assert.Same(t, orig, Builder())

	require.ErrorIs(t, SetBuilder(nilBuilder{orig}), ErrNilAllocator)
	require.NoError(t, SetBuilder(nil))
}

func TestSetAll_HardReset(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))
	_, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)

	reset(t, config.WithDomains(boonDomain))
	assert.Empty(t, Values("boon"))

	mine := allocator.New(config.DefaultConfig())
	require.NoError(t, SetAll(nil, mine, nil))
	assert.True(t, IsAllocatorPinned())
	assert.Same(t, mine, Allocator())
}

func TestOpen_Policy(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))

	alice, err := Open(" Alice ", " mod.alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", alice.Owner())
	assert.Equal(t, "mod.alice", alice.Namespace())

	_, err = Open("Alice", "mod.alice")
	require.NoError(t, err, "same owner reopens freely")

	_, err = Open("Mallory", "mod.alice")
	var shared *policy.SharedError
	require.ErrorAs(t, err, &shared)
	assert.Equal(t, "Alice", shared.Owner)

	reset(t, config.WithDomains(boonDomain), config.WithSharedNamespaces("mod.common"))
	_, err = Open("Alice", "mod.common")
	require.NoError(t, err)
	_, err = Open("Bob", "mod.common")
	require.NoError(t, err)
	_, err = Open("Bob", "mod.alice")
	require.NoError(t, err)
	_, err = Open("Alice", "mod.alice")
	require.ErrorIs(t, err, policy.ErrNamespaceShared)
}

func TestExtension_SurvivesSetConfig(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))
	ext, err := Open("Alice", "mod.alice")
	require.NoError(t, err)

	v, err := ext.Allocate("boon", "LuckyCoin")
	require.NoError(t, err)
	require.NoError(t, SetConfig(config.NewConfig(config.WithDomains(boonDomain))))

	got, ok := ext.Lookup("boon", "LuckyCoin")
	require.True(t, ok)
	assert.Equal(t, v, got)
	owner, _ := Allocator().Owner("mod.alice")
	assert.Equal(t, "Alice", owner)
}

func TestRegister_ThroughCatalog(t *testing.T) {
	reset(t)
	cat, err := NewCatalog()
	require.NoError(t, err)
	require.NoError(t, cat.Initialize(content.Base{}))

	ext, err := Open("Alice", "mod.alice")
	require.NoError(t, err)
	e, err := Register(ext, cat.Boons, "LuckyCoin", content.Boon{Meta: content.Meta{DisplayName: "Lucky Coin"}})
	require.NoError(t, err)
	assert.Equal(t, "mod.alice", e.Namespace)

	v, ok := Lookup(content.DomainBoon, "mod.alice", "LuckyCoin")
	require.True(t, ok)
	assert.Equal(t, v, e.Value)
}

func TestCatalog_FollowsAllocatorAcrossSetConfig(t *testing.T) {
	reset(t)
	cat, err := NewCatalog()
	require.NoError(t, err)
	require.NoError(t, cat.Initialize(content.Base{}))

	before, err := cat.Boons.Register("mod.carol", "Anchor", content.Boon{})
	require.NoError(t, err)

	require.NoError(t, SetConfig(config.NewConfig()))

	global, err := Allocate(content.DomainBoon, "mod.alice", "LuckyCoin")
	require.NoError(t, err)
	e, err := cat.Boons.Register("mod.bob", "Other", content.Boon{})
	require.NoError(t, err)
	assert.NotEqual(t, global, e.Value, "distinct keys share a value")
	assert.NotEqual(t, before.Value, e.Value)

	key, ok := Resolve(content.DomainBoon, e.Value)
	require.True(t, ok, "catalog allocation is visible to the global allocator")
	assert.Equal(t, apis.Key{Domain: content.DomainBoon, Namespace: "mod.bob", Name: "Other"}, key)

	v, ok := Lookup(content.DomainBoon, "mod.carol", "Anchor")
	require.True(t, ok)
	assert.Equal(t, before.Value, v, "migrated value unchanged")

	ext, err := Open("Dave", "mod.dave")
	require.NoError(t, err)
	require.NoError(t, SetBuilder(Builder()))
	d, err := Register(ext, cat.Boons, "Spark", content.Boon{})
	require.NoError(t, err)
	owner, ok := Allocator().Owner("mod.dave")
	require.True(t, ok)
	assert.Equal(t, "Dave", owner)
	got, ok := ext.Lookup(content.DomainBoon, "Spark")
	require.True(t, ok)
	assert.Equal(t, d.Value, got)
}

func TestConcurrentReadsDuringReconfigure(t *testing.T) {
	reset(t, config.WithDomains(boonDomain))
	v, err := Allocate("boon", "mod.alice", "LuckyCoin")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				got, ok := Lookup("boon", "mod.alice", "LuckyCoin")
				if !assert.True(t, ok) || !assert.Equal(t, v, got) {
					return
				}
			}
		}()
	}
	for range 20 {
		require.NoError(t, SetConfig(config.NewConfig(config.WithDomains(boonDomain))))
	}
	wg.Wait()
}
