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

package config

import (
	"slices"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/log"
)

const (
	// DefaultPolicy represents the default for Policy.
	// Two owners sharing a namespace is treated as an accidental collision.
	DefaultPolicy = apis.PolicyStrict
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure Policy is valid.
	switch cfg.Policy {
	case apis.PolicyStrict, apis.PolicyCooperative, apis.PolicyPermissive:
	default:
		cfg.Policy = DefaultPolicy
	}
	if cfg.Logger == nil {
		cfg.Logger = log.DiscardLogger
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Policy: DefaultPolicy,
		Logger: log.DiscardLogger,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPolicy sets the Policy option.
// An unknown kind resets to the default.
func WithPolicy(kind apis.PolicyKind) Option {
	return func(c *apis.Config) {
		c.Policy = kind
	}
}

// WithSharedNamespaces appends namespaces that cooperating owners may share.
// It also selects apis.PolicyCooperative.
func WithSharedNamespaces(namespaces ...string) Option {
	return func(c *apis.Config) {
		c.Policy = apis.PolicyCooperative
		c.SharedNamespaces = append(slices.Clone(c.SharedNamespaces), namespaces...)
	}
}

// WithDomains appends domains to predefine on every built Allocator.
func WithDomains(domains ...apis.Domain) Option {
	return func(c *apis.Config) {
		c.Domains = append(slices.Clone(c.Domains), domains...)
	}
}

// WithLogger sets the Logger option. A nil logger discards diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = log.OrDiscard(l)
	}
}
