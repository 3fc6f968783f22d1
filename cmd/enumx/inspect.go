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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/content"
	"dirpx.dev/enumx/manifest"
	"dirpx.dev/enumx/resolver"
	"dirpx.dev/enumx/strategy"
)

// inspectReport is the YAML document printed by inspect.
type inspectReport struct {
	Fingerprint string          `yaml:"fingerprint"`
	Manifests   []string        `yaml:"manifests"`
	Domains     []domainContent `yaml:"domains"`
	Errors      []string        `yaml:"errors,omitempty"`
}

// domainContent is a domain with its allocations and effective entries.
type domainContent struct {
	domainReport `yaml:",inline"`

	Allocations []allocationReport `yaml:"allocations,omitempty"`
	Effective   []content.Summary  `yaml:"effective,omitempty"`
}

type allocationReport struct {
	Namespace string `yaml:"namespace"`
	Name      string `yaml:"name"`
	Value     int64  `yaml:"value"`
	Label     string `yaml:"label"`
}

func newInspectCmd(a *app) *cobra.Command {
	var domain string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Apply manifests and print the resulting allocations",
		Long: `Load every *.enumx.yaml manifest under the manifests directory, apply them
in path order and print the allocations and effective content per domain.

Failed records are listed under "errors" and make the command exit non-zero;
the rest of the report is still printed.

Examples:
  # Inspect manifests in ./mods
  enumx inspect -m mods

  # Only show the boon domain
  enumx inspect -m mods --domain boon

  # Allow two owners to share mod.common
  ENUMX_SHARED=mod.common enumx inspect -m mods`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			files, err := manifest.LoadFS(os.DirFS(a.set.Manifests), ".")
			if err != nil {
				return err
			}
			_, applyErr := manifest.Apply(c, files, a.logger)
			labels := resolver.New(
				strategy.NewCatalogStrategy(c),
				strategy.NewAllocatorStrategy(c.Allocator()),
				strategy.NewNumericStrategy(),
			)

			rep := inspectReport{
				Fingerprint: fmt.Sprintf("%016x", c.Allocator().Fingerprint()),
				Manifests:   make([]string, 0, len(files)),
			}
			for _, f := range files {
				rep.Manifests = append(rep.Manifests, f.Source)
			}
			for _, name := range c.Domains() {
				if domain != "" && name != domain {
					continue
				}
				b, _ := c.Binding(name)
				rep.Domains = append(rep.Domains, domainContent{
					domainReport: reportDomain(c.Allocator(), name),
					Allocations:  reportAllocations(c.Allocator().Allocations(name), labels),
					Effective:    b.Effective(),
				})
			}
			for _, e := range multierr.Errors(applyErr) {
				rep.Errors = append(rep.Errors, e.Error())
			}

			if err := writeYAML(cmd, rep); err != nil {
				return err
			}
			if applyErr != nil {
				return fmt.Errorf("%d manifest record(s) failed", len(rep.Errors))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&domain, "domain", "d", "", "only report this domain")
	return cmd
}

func reportDomain(alloc apis.Allocator, name string) domainReport {
	d, _ := alloc.Domain(name)
	r := domainReport{
		Name:     d.Name,
		BaseMax:  int64(d.BaseMax),
		Width:    d.Width.String(),
		Capacity: d.Capacity(),
	}
	if next, ok := alloc.NextFree(name); ok {
		n := int64(next)
		r.NextFree = &n
	}
	return r
}

func reportAllocations(in []apis.Allocation, labels apis.Resolver) []allocationReport {
	out := make([]allocationReport, len(in))
	for i, al := range in {
		out[i] = allocationReport{
			Namespace: al.Key.Namespace,
			Name:      al.Key.Name,
			Value:     int64(al.Value),
			Label:     labels.Resolve(al.Key.Domain, al.Value),
		}
	}
	return out
}
