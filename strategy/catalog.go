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

package strategy

import (
	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/content"
)

// NewCatalogStrategy creates an apis.Strategy that labels Values with the
// display name of their effective content.
func NewCatalogStrategy(c *content.Catalog) apis.Strategy {
	return &catalogStrategy{catalog: c}
}

// catalogStrategy reads the current View of the domain's binding.
type catalogStrategy struct {
	catalog *content.Catalog
}

// Ensure catalogStrategy implements apis.Strategy.
var _ apis.Strategy = (*catalogStrategy)(nil)

// TryResolve returns the display name of v, if v is effective and has one.
func (s *catalogStrategy) TryResolve(domain string, v apis.Value) (string, bool) {
	if s.catalog == nil {
		return "", false
	}
	b, ok := s.catalog.Binding(domain)
	if !ok {
		return "", false
	}
	for _, e := range b.Effective() {
		if e.Value == v {
			return e.DisplayName, e.DisplayName != ""
		}
	}
	return "", false
}
