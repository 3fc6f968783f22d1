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

package apis

// Strategy produces a human-readable label for a domain Value.
type Strategy interface {
	// TryResolve returns (label, true) if the strategy can label v in domain.
	TryResolve(domain string, v Value) (string, bool)
}

// Resolver labels domain Values for logs, reports and host diagnostics.
// Implementations are expected to be safe for concurrent use.
type Resolver interface {
	// Resolve returns the label of v in domain, or "" if nothing could label it.
	Resolve(domain string, v Value) string
}
