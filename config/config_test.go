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

package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/config"
	"dirpx.dev/enumx/log"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	assert.Equal(t, config.DefaultPolicy, got.Policy)
	assert.Empty(t, got.SharedNamespaces)
	assert.Empty(t, got.Domains)
	assert.Equal(t, log.DiscardLogger, got.Logger)
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	require.Equal(t, config.DefaultConfig(), config.NewConfig())
}

func TestWithPolicy(t *testing.T) {
	c := config.NewConfig(config.WithPolicy(apis.PolicyPermissive))
	assert.Equal(t, apis.PolicyPermissive, c.Policy)

	c2 := config.NewConfig(config.WithPolicy("unheard-of"))
	assert.Equal(t, config.DefaultPolicy, c2.Policy)
}

func TestWithSharedNamespaces(t *testing.T) {
	c := config.NewConfig(
		config.WithSharedNamespaces("team.core"),
		config.WithSharedNamespaces("team.pack"),
	)
	assert.Equal(t, apis.PolicyCooperative, c.Policy)
	assert.Equal(t, []string{"team.core", "team.pack"}, c.SharedNamespaces)
}

func TestWithDomains_DoesNotAliasCallerSlice(t *testing.T) {
	base := config.NewConfig(config.WithDomains(apis.Domain{Name: "boon", BaseMax: 10}))
	opt := config.WithDomains(apis.Domain{Name: "opponent", BaseMax: 5})

	a := base
	opt(&a)
	b := base
	opt(&b)

	assert.Len(t, base.Domains, 1)
	assert.Len(t, a.Domains, 2)
	assert.Equal(t, a.Domains, b.Domains)
}

func TestWithLogger(t *testing.T) {
	zl := log.NewZap(log.DebugLevel, new(bytes.Buffer))
	c := config.NewConfig(config.WithLogger(zl))
	assert.Same(t, zl, c.Logger)

	c2 := config.NewConfig(config.WithLogger(nil))
	assert.Equal(t, log.DiscardLogger, c2.Logger)
}
