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

import "dirpx.dev/enumx/log"

// PolicyKind selects how namespace sharing between owners is treated.
type PolicyKind string

const (
	// PolicyStrict rejects a second owner for a claimed namespace.
	PolicyStrict PolicyKind = "strict"
	// PolicyCooperative admits a second owner only for listed shared namespaces.
	PolicyCooperative PolicyKind = "cooperative"
	// PolicyPermissive admits any owner for any namespace.
	PolicyPermissive PolicyKind = "permissive"
)

// Config carries read-only knobs for allocators and registries.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Policy selects the namespace sharing policy.
	Policy PolicyKind

	// SharedNamespaces lists namespaces that cooperating owners may share
	// under PolicyCooperative. Ignored by the other policies.
	SharedNamespaces []string

	// Domains are defined on every Allocator built from this Config.
	Domains []Domain

	// Logger receives diagnostics for rejected operations.
	Logger log.Logger
}
