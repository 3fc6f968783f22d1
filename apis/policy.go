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

// Policy decides whether a namespace already claimed by one owner may be
// used by another. It is consulted only when the owners differ.
type Policy interface {
	// Admit returns nil when claimant may share namespace with owner.
	Admit(namespace, owner, claimant string) error
	// Name identifies the policy in logs and configuration.
	Name() string
}
