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
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// domainReport describes one domain's value space.
type domainReport struct {
	Name     string `yaml:"name"`
	BaseMax  int64  `yaml:"base_max"`
	Width    string `yaml:"width"`
	Capacity int64  `yaml:"capacity"`
	NextFree *int64 `yaml:"next_free"`
}

func newDomainsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "domains",
		Short: "List the extensible domains and their value ranges",
		Long: `List every extensible domain with its compiled maximum, backing width
and capacity, after applying domain overrides from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.catalog()
			if err != nil {
				return err
			}
			out := make([]domainReport, 0, len(c.Domains()))
			for _, name := range c.Domains() {
				out = append(out, reportDomain(c.Allocator(), name))
			}
			return writeYAML(cmd, out)
		},
	}
}

// writeYAML encodes v to the command's output.
func writeYAML(cmd *cobra.Command, v any) error {
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
