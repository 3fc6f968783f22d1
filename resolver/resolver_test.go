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

package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/resolver"
)

// fixed labels one value of one domain.
type fixed struct {
	domain string
	value  apis.Value
	label  string
	calls  *int
}

func (f fixed) TryResolve(domain string, v apis.Value) (string, bool) {
	if f.calls != nil {
		*f.calls++
	}
	if domain == f.domain && v == f.value {
		return f.label, true
	}
	return "", false
}

func TestResolve_FirstMatchWins(t *testing.T) {
	var second int
	r := resolver.New(
		fixed{domain: "boon", value: 1, label: "first"},
		nil,
		fixed{domain: "boon", value: 1, label: "second", calls: &second},
		fixed{domain: "boon", value: 2, label: "two"},
	)

	assert.Equal(t, "first", r.Resolve("boon", 1))
	assert.Zero(t, second, "later strategies are not consulted")
	assert.Equal(t, "two", r.Resolve("boon", 2))
	assert.Equal(t, 1, second)
}

func TestResolve_NoMatch(t *testing.T) {
	assert.Empty(t, resolver.New().Resolve("boon", 1))
	assert.Empty(t, resolver.New(fixed{domain: "ai", value: 1, label: "x"}).Resolve("boon", 1))
}
