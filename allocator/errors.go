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

package allocator

import (
	"errors"
	"fmt"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/policy"
)

var (
	// ErrUnknownDomain is returned when a domain has not been defined.
	ErrUnknownDomain = errors.New("enumx(allocator): unknown domain")
	// ErrInvalidDomain is returned for a domain whose name or BaseMax is unusable.
	ErrInvalidDomain = errors.New("enumx(allocator): invalid domain definition")
	// ErrDomainConflict indicates an attempt to redefine a domain with
	// different parameters.
	ErrDomainConflict = errors.New("enumx(allocator): conflicting domain definition")
	// ErrDomainOverflow is returned when a domain has no representable value left.
	ErrDomainOverflow = errors.New("enumx(allocator): domain overflow")
	// ErrInvalidKey is returned when a namespace or name fails validation.
	ErrInvalidKey = errors.New("enumx(allocator): invalid allocation key")
	// ErrNamespaceClaimed is returned when the Policy refuses a second owner.
	ErrNamespaceClaimed = policy.ErrNamespaceShared
)

// OverflowError reports which extension exhausted a domain.
type OverflowError struct {
	// Key is the allocation that could not be served.
	Key apis.Key
	// Width is the domain's backing type.
	Width apis.Width
	// Limit is the highest representable value.
	Limit apis.Value
}

// Error implements error.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("enumx(allocator): domain %q overflow: %s/%s needs a value above %s (%s)",
		e.Key.Domain, e.Key.Namespace, e.Key.Name, e.Limit, e.Width)
}

// Unwrap returns ErrDomainOverflow.
func (e *OverflowError) Unwrap() error { return ErrDomainOverflow }
