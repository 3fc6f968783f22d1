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

package policy

import (
	"errors"
	"fmt"

	goset "github.com/deckarep/golang-set/v2"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/utils/ident"
)

// ErrNamespaceShared is returned when a Policy refuses a second owner.
var ErrNamespaceShared = errors.New("enumx(policy): namespace already claimed by another owner")

// SharedError reports a refused namespace claim.
type SharedError struct {
	Namespace string
	Owner     string
	Claimant  string
	Policy    string
}

// Error implements error.
func (e *SharedError) Error() string {
	return fmt.Sprintf("enumx(policy): namespace %q is owned by %q; %q refused by %s policy",
		e.Namespace, e.Owner, e.Claimant, e.Policy)
}

// Unwrap returns ErrNamespaceShared.
func (e *SharedError) Unwrap() error { return ErrNamespaceShared }

// NewStrict creates an apis.Policy that treats every shared namespace as an
// accidental collision.
func NewStrict() apis.Policy {
	return &strictPolicy{}
}

// strictPolicy refuses all second owners.
type strictPolicy struct{}

// Ensure strictPolicy implements apis.Policy.
var _ apis.Policy = (*strictPolicy)(nil)

// Admit always refuses.
func (p *strictPolicy) Admit(namespace, owner, claimant string) error {
	return &SharedError{Namespace: namespace, Owner: owner, Claimant: claimant, Policy: p.Name()}
}

// Name returns "strict".
func (*strictPolicy) Name() string { return string(apis.PolicyStrict) }

// NewCooperative creates an apis.Policy that admits additional owners only
// for the listed namespaces. Everything else is refused as in NewStrict.
// Entries are normalized like claimed namespaces; invalid ones are dropped.
func NewCooperative(shared ...string) apis.Policy {
	set := goset.NewThreadUnsafeSetWithSize[string](len(shared))
	for _, s := range shared {
		if ns, err := ident.Namespace(s); err == nil {
			set.Add(ns)
		}
	}
	return &cooperativePolicy{shared: set}
}

// cooperativePolicy admits owners of explicitly shared namespaces.
type cooperativePolicy struct {
	// shared is never mutated after construction.
	shared goset.Set[string]
}

// Ensure cooperativePolicy implements apis.Policy.
var _ apis.Policy = (*cooperativePolicy)(nil)

// Admit allows claimant when namespace is in the shared set.
func (p *cooperativePolicy) Admit(namespace, owner, claimant string) error {
	if p.shared.Contains(namespace) {
		return nil
	}
	return &SharedError{Namespace: namespace, Owner: owner, Claimant: claimant, Policy: p.Name()}
}

// Name returns "cooperative".
func (*cooperativePolicy) Name() string { return string(apis.PolicyCooperative) }

// NewPermissive creates an apis.Policy that admits every owner.
func NewPermissive() apis.Policy {
	return &permissivePolicy{}
}

// permissivePolicy never refuses.
type permissivePolicy struct{}

// Ensure permissivePolicy implements apis.Policy.
var _ apis.Policy = (*permissivePolicy)(nil)

// Admit always returns nil.
func (*permissivePolicy) Admit(_, _, _ string) error { return nil }

// Name returns "permissive".
func (*permissivePolicy) Name() string { return string(apis.PolicyPermissive) }

// For builds the Policy selected by cfg. Unknown kinds fall back to strict.
func For(cfg apis.Config) apis.Policy {
	switch cfg.Policy {
	case apis.PolicyCooperative:
		return NewCooperative(cfg.SharedNamespaces...)
	case apis.PolicyPermissive:
		return NewPermissive()
	default:
		return NewStrict()
	}
}
