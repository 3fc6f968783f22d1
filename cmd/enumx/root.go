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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/enumx/apis"
	"dirpx.dev/enumx/builder"
	"dirpx.dev/enumx/config"
	"dirpx.dev/enumx/content"
	"dirpx.dev/enumx/log"
)

// settings is the CLI configuration, read from flags, ENUMX_* variables and
// an optional YAML file, in that order of precedence.
type settings struct {
	LogLevel  string          `mapstructure:"log_level"`
	Policy    string          `mapstructure:"policy"`
	Shared    []string        `mapstructure:"shared"`
	Manifests string          `mapstructure:"manifests"`
	Domains   []domainSetting `mapstructure:"domains"`
}

// domainSetting overrides a default domain definition.
type domainSetting struct {
	Name    string `mapstructure:"name"`
	BaseMax int64  `mapstructure:"base_max"`
	Width   string `mapstructure:"width"`
}

// app carries what every subcommand needs once settings are resolved.
type app struct {
	v      *viper.Viper
	set    settings
	logger *log.Zap
}

func newRootCmd(version string) *cobra.Command {
	a := &app{v: viper.New()}
	var cfgFile string

	root := &cobra.Command{
		Use:          "enumx",
		Short:        "Inspect extension identifiers and registries",
		Long:         `Load extension manifests, allocate their identifiers and show the resulting domains and effective content.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd, cfgFile)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.logger == nil {
				return nil
			}
			return a.logger.Flush()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: ./enumx.yaml if present)")
	flags.String("log-level", "warning", "log level: debug, info, warning, error")
	flags.String("policy", string(config.DefaultPolicy), "namespace sharing policy: strict, cooperative, permissive")
	flags.StringSlice("shared", nil, "namespaces cooperating owners may share (implies --policy cooperative)")
	flags.StringP("manifests", "m", ".", "directory searched for *.enumx.yaml manifests")

	_ = a.v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("policy", flags.Lookup("policy"))
	_ = a.v.BindPFlag("shared", flags.Lookup("shared"))
	_ = a.v.BindPFlag("manifests", flags.Lookup("manifests"))

	root.AddCommand(newDomainsCmd(a), newInspectCmd(a))
	return root
}

// load resolves settings and builds the logger.
func (a *app) load(cmd *cobra.Command, cfgFile string) error {
	a.v.SetEnvPrefix("ENUMX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName("enumx")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.set); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	level, ok := log.ParseLevel(a.set.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", a.set.LogLevel)
	}
	a.logger = log.NewZap(level, cmd.ErrOrStderr())
	return nil
}

// config translates settings into an apis.Config.
func (a *app) config() (apis.Config, error) {
	opts := []config.Option{
		config.WithPolicy(apis.PolicyKind(a.set.Policy)),
		config.WithLogger(a.logger),
	}
	if len(a.set.Shared) > 0 {
		opts = append(opts, config.WithSharedNamespaces(a.set.Shared...))
	}
	for _, d := range a.set.Domains {
		w, ok := apis.ParseWidth(d.Width)
		if !ok {
			return apis.Config{}, fmt.Errorf("domain %q: unknown width %q", d.Name, d.Width)
		}
		opts = append(opts, config.WithDomains(apis.Domain{Name: d.Name, BaseMax: apis.Value(d.BaseMax), Width: w}))
	}
	return config.NewConfig(opts...), nil
}

// catalog builds an initialized catalog with no host base content.
func (a *app) catalog() (*content.Catalog, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	alloc, err := builder.New().BuildAllocator(cfg, nil)
	if err != nil {
		return nil, err
	}
	c, err := content.NewCatalog(alloc, a.logger)
	if err != nil {
		return nil, err
	}
	if err := c.Initialize(content.Base{}); err != nil {
		return nil, err
	}
	return c, nil
}
