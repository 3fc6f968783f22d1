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

// NewNumericStrategy creates an apis.Strategy that labels every Value as
// "domain#value". It always succeeds and belongs last in a chain.
func NewNumericStrategy() apis.Strategy {
	return numericStrategy{}
}

type numericStrategy struct{}

// Ensure numericStrategy implements apis.Strategy.
var _ apis.Strategy = numericStrategy{}

// TryResolve formats v.
func (numericStrategy) TryResolve(domain string, v apis.Value) (string, bool) {
	return domain + "#" + v.String(), true
}
