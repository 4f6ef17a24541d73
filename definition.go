// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Definition is the declaration of a menu, usually read from a YAML file:
//
//	options:
//	  header: "<ul>"
//	  footer: "</ul>"
//	  node: "<li><a href=\"{:=href}\">{:=label}</a>{:=nested}</li>"
//	items:
//	  - { level: 1, label: Home, path: / }
//	  - { level: 1, label: Shop, path: shop }
//	  - { level: 2, label: Config, path: shop/config, privilege: admin }
type Definition struct {
	Options map[string]string   `yaml:"options"`
	Items   []map[string]string `yaml:"items"`
}

// LoadDefinition reads a definition in YAML format from r. Unknown fields
// are an error.
func LoadDefinition(r io.Reader) (*Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var def Definition
	err := dec.Decode(&def)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &def, nil
		}
		return nil, fmt.Errorf("menus: cannot read definition: %w", err)
	}
	return &def, nil
}

// Apply sets the options of def, in key order, and adds its items, in
// declaration order, to m. The level of each item is read from its "level"
// attribute.
func (def *Definition) Apply(m *Menu) error {
	keys := make([]string, 0, len(def.Options))
	for k := range def.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := m.Set(k, def.Options[k]); err != nil {
			return err
		}
	}
	for i, item := range def.Items {
		if err := m.Add(0, item); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}
