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

package manifest

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/content"
	"dirpx.dev/enumx/log"
	"dirpx.dev/enumx/registry"
)

// Applied records one registered manifest entry.
type Applied struct {
	Source string     `yaml:"source"`
	Key    apis.Key   `yaml:"key"`
	Value  apis.Value `yaml:"value"`
}

// Apply claims each file's namespace for its owner and registers its
// records into c, in order. A refused claim skips the whole file; a failed
// record skips only that record. All failures are combined in the
// returned error alongside what was applied.
func Apply(c *content.Catalog, files []*File, logger log.Logger) ([]Applied, error) {
	logger = log.OrDiscard(logger)

	var (
		applied []Applied
		errs    error
	)
	for _, f := range files {
		flog := logger.With("source", f.Source, "owner", f.Owner, "namespace", f.Namespace)
		if err := c.Allocator().Claim(f.Namespace, f.Owner); err != nil {
			flog.Error("manifest skipped: namespace claim refused")
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", f.Source, err))
			continue
		}

		for i := range f.Content {
			r := &f.Content[i]
			v, err := apply(c, f.Namespace, r)
			if err != nil {
				flog.With("domain", r.Domain, "name", r.Name).Warn(err.Error())
				errs = multierr.Append(errs, fmt.Errorf("%s: %s/%s: %w", f.Source, r.Domain, r.Name, err))
				continue
			}
			applied = append(applied, Applied{
				Source: f.Source,
				Key:    apis.Key{Domain: strings.TrimSpace(r.Domain), Namespace: f.Namespace, Name: strings.TrimSpace(r.Name)},
				Value:  v,
			})
		}
		flog.With("records", len(f.Content)).Debug("manifest applied")
	}
	return applied, errs
}

func apply(c *content.Catalog, namespace string, r *Record) (apis.Value, error) {
	b, ok := c.Binding(strings.TrimSpace(r.Domain))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDomain, r.Domain)
	}
	var flags registry.Flags
	for _, name := range r.Flags {
		f, ok := registry.ParseFlag(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
		}
		flags |= f
	}
	return b.RegisterDecoded(namespace, r.Name, flags, r.decode)
}
