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

// Package manifest loads declarative extension content from YAML files and
// registers it into a content.Catalog.
//
// A manifest names its owner and namespace once and lists content records:
//
//	owner: Alice's Mods
//	namespace: mod.alice
//	content:
//	  - domain: boon
//	    name: LuckyCoin
//	    flags: [rulebook]
//	    data:
//	      displayName: Lucky Coin
//	      stackable: true
//
// The data mapping is decoded into the domain's payload type.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/enumx/utils/ident"
)

// Suffix marks manifest files.
const Suffix = ".enumx.yaml"

var (
	// ErrInvalidManifest is returned for a manifest missing its owner or namespace.
	ErrInvalidManifest = errors.New("enumx(manifest): invalid manifest")
	// ErrUnknownDomain is returned for a record naming a domain the catalog lacks.
	ErrUnknownDomain = errors.New("enumx(manifest): unknown domain")
	// ErrUnknownFlag is returned for a record carrying an unrecognized flag.
	ErrUnknownFlag = errors.New("enumx(manifest): unknown flag")
)

// File is one parsed manifest.
type File struct {
	Owner     string   `yaml:"owner"`
	Namespace string   `yaml:"namespace"`
	Content   []Record `yaml:"content"`

	// Source is the path the manifest was read from.
	Source string `yaml:"-"`
}

// Record declares one piece of content.
type Record struct {
	Domain string    `yaml:"domain"`
	Name   string    `yaml:"name"`
	Flags  []string  `yaml:"flags"`
	Data   yaml.Node `yaml:"data"`
}

// decode fills out from the record's data mapping. Records without data
// register the zero payload.
func (r *Record) decode(out any) error {
	if r.Data.Kind == 0 {
		return nil
	}
	return r.Data.Decode(out)
}

// Parse decodes and validates one manifest.
func Parse(data []byte, source string) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	f.Source = source

	owner, err := ident.Name(f.Owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: owner: %w", ErrInvalidManifest, source, err)
	}
	ns, err := ident.Namespace(f.Namespace)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: namespace: %w", ErrInvalidManifest, source, err)
	}
	f.Owner, f.Namespace = owner, ns

	for i, r := range f.Content {
		if strings.TrimSpace(r.Domain) == "" || strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("%w: %s: content[%d] needs domain and name", ErrInvalidManifest, source, i)
		}
	}
	return &f, nil
}

// LoadFS parses every *.enumx.yaml file under root, in lexical path order.
func LoadFS(fsys fs.FS, root string) ([]*File, error) {
	var files []*File

	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), Suffix) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		f, err := Parse(data, path)
		if err != nil {
			return err
		}
		files = append(files, f)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan manifests: %w", err)
	}
	return files, nil
}
