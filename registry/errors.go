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

package registry

import (
	"errors"
	"fmt"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/notify"
)

var (
	// ErrDuplicateValue is returned when an entry's Value is already taken.
	ErrDuplicateValue = errors.New("enumx(registry): duplicate value")
	// ErrUnknownValue is returned when removing a Value no custom entry holds.
	ErrUnknownValue = errors.New("enumx(registry): unknown value")
	// ErrBaseEntry is returned when removing a Value owned by a base entry.
	ErrBaseEntry = errors.New("enumx(registry): base entries cannot be removed")
	// ErrUninitialized is returned for operations issued before Initialize.
	ErrUninitialized = errors.New("enumx(registry): registry is not initialized")
	// ErrInvalidEntry is returned for an entry without a namespace.
	ErrInvalidEntry = errors.New("enumx(registry): invalid entry")
	// ErrReentrantMutation is returned when a hook or subscriber mutates the
	// registry that is calling it.
	ErrReentrantMutation = notify.ErrReentrant
)

// DuplicateError names both sides of a Value collision.
type DuplicateError struct {
	// Domain is the registry's domain name.
	Domain string
	// Value is the contested value.
	Value apis.Value
	// Namespace and Name identify the rejected entry.
	Namespace, Name string
	// HeldBy and HeldName identify the entry already holding Value.
	HeldBy, HeldName string
	// Base is true when the holder is a base entry.
	Base bool
}

// Error implements error.
func (e *DuplicateError) Error() string {
	holder := fmt.Sprintf("%s/%s", e.HeldBy, e.HeldName)
	if e.Base {
		holder = "base entry " + holder
	}
	return fmt.Sprintf("enumx(registry): %s value %s requested by %s/%s is held by %s",
		e.Domain, e.Value, e.Namespace, e.Name, holder)
}

// Unwrap returns ErrDuplicateValue.
func (e *DuplicateError) Unwrap() error { return ErrDuplicateValue }
