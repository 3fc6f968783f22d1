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
)

// NewAllocatorStrategy creates an apis.Strategy that labels allocated Values
// as "namespace/name".
func NewAllocatorStrategy(alloc apis.Allocator) apis.Strategy {
	return &allocatorStrategy{alloc: alloc}
}

// allocatorStrategy consults the allocator's reverse table.
type allocatorStrategy struct {
	alloc apis.Allocator
}

// Ensure allocatorStrategy implements apis.Strategy.
var _ apis.Strategy = (*allocatorStrategy)(nil)

// TryResolve reverse-resolves v in domain.
func (s *allocatorStrategy) TryResolve(domain string, v apis.Value) (string, bool) {
	if s.alloc == nil {
		return "", false
	}
	k, ok := s.alloc.Resolve(domain, v)
	if !ok {
		return "", false
	}
	return k.Namespace + "/" + k.Name, true
}
