// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"strconv"
	"strings"
)

// A Kind represents the kind of a node.
type Kind int

const (
	Leaf Kind = iota
	Branch
)

// String returns the name of the kind.
func (k Kind) String() string {
	if k == Branch {
		return "branch"
	}
	return "leaf"
}

// Node is a node of a menu.
type Node struct {
	ID       int  // sequence number starting from 1
	Level    int  // level starting from 1
	Parent   int  // identifier of the parent node, 0 for root nodes
	Kind     Kind // Leaf or Branch
	Label    string
	Path     string // path without leading and trailing slashes
	URL      string
	Target   string
	Template string // name of a template configured with the "template.NAME" option

	// Extra contains the attributes that are not well-known.
	Extra map[string]string

	// Highlighted reports whether the node path is a prefix of the current
	// path. Current reports whether it is the current path.
	Highlighted bool
	Current     bool
}

// Well-known attributes.
const (
	attrLevel    = "level"
	attrLabel    = "label"
	attrPath     = "path"
	attrURL      = "url"
	attrTarget   = "target"
	attrTemplate = "template"
)

// Admission attributes. They are not stored in the node.
const (
	attrIf        = "if"
	attrExists    = "exists"
	attrCheckPath = "checkPath"
	attrTables    = "tables"
	attrPrivilege = "privilege"
)

// declaration is a node, as declared with the Add method, with its admission
// attributes.
type declaration struct {
	node      Node
	cond      *string // nil if there is no "if" attribute
	exists    *string // nil if there is no "exists" attribute
	checkPath bool
	tables    []string
	privilege string
}

// newDeclaration returns the declaration of a node with the given attributes.
func newDeclaration(level int, attrs map[string]string) declaration {
	d := declaration{node: Node{Level: level, Kind: Leaf}}
	for k, v := range attrs {
		switch k {
		case attrLevel:
		case attrLabel:
			d.node.Label = v
		case attrPath:
			d.node.Path = normalizePath(v)
		case attrURL:
			d.node.URL = v
		case attrTarget:
			d.node.Target = v
		case attrTemplate:
			d.node.Template = v
		case attrIf:
			d.cond = &v
		case attrExists:
			v := normalizePath(v)
			d.exists = &v
		case attrCheckPath:
			d.checkPath = isTrue(v)
		case attrTables:
			for _, name := range strings.Split(v, ",") {
				if name = strings.TrimSpace(name); name != "" {
					d.tables = append(d.tables, name)
				}
			}
		case attrPrivilege:
			d.privilege = strings.TrimSpace(v)
		default:
			if d.node.Extra == nil {
				d.node.Extra = map[string]string{}
			}
			d.node.Extra[k] = v
		}
	}
	return d
}

// resolveLevel returns the level of a node added with the given level and
// attributes. If level is zero, it is read from the "level" attribute.
func resolveLevel(level int, attrs map[string]string) int {
	if level != 0 {
		return level
	}
	if s, ok := attrs[attrLevel]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err == nil {
			return n
		}
	}
	return 0
}

// normalizePath trims the leading and trailing slashes of p.
func normalizePath(p string) string {
	return strings.Trim(strings.TrimSpace(p), "/")
}

// isTrue reports whether s represents a true value.
func isTrue(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}

// parseBool parses a boolean option value.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	}
	return false, false
}
