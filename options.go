// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Options keys.
//
// Keys of the level templates accept a ".N" suffix, with N >= 1, that
// restricts the template to the nodes at level N. A template with a level
// suffix takes precedence over the same template without a suffix.
//
//	menu            wraps the root level, default "{:=nested}"
//	header[.N]      emitted before the nodes of a level, default ""
//	footer[.N]      emitted after the nodes of a level, default ""
//	delimiter[.N]   emitted between sibling nodes, default ""
//	node[.N]        template of a node, default "{:=label}{:=nested}"
//	highlighted[.N] template of a highlighted node
//	current[.N]     template of the current node
//	template.NAME   template of the nodes with attribute template=NAME
//	materialize     renders the collapsed branches into fragments, default false
//	checkPaths      checks the existence of every node path, default false
//	appPattern      pattern of the application root paths, default "^apps/([^/]+)"
//	linkPrefix      prefix of the href of nodes without an url, default "/"
//	escape          escapes the attribute values as HTML, default true
//
// The checkPaths and appPattern options affect the admission of nodes, so
// they can be set only before the first node is added.
const (
	OptionMenu        = "menu"
	OptionHeader      = "header"
	OptionFooter      = "footer"
	OptionDelimiter   = "delimiter"
	OptionNode        = "node"
	OptionHighlighted = "highlighted"
	OptionCurrent     = "current"
	OptionTemplate    = "template"
	OptionMaterialize = "materialize"
	OptionCheckPaths  = "checkPaths"
	OptionAppPattern  = "appPattern"
	OptionLinkPrefix  = "linkPrefix"
	OptionEscape      = "escape"
)

const (
	defaultMenuTemplate = "{:=nested}"
	defaultNodeTemplate = "{:=label}{:=nested}"
	defaultAppPattern   = "^apps/([^/]+)"
	defaultLinkPrefix   = "/"
)

var (
	errNotBool         = errors.New("not a boolean")
	errNoLevel         = errors.New("option has no level")
	errInvalidLevel    = errors.New("level must be a positive integer")
	errNoName          = errors.New("missing template name")
	errAdmissionOption = errors.New("option can only be set before adding nodes")
	errNoSubmatch      = errors.New("pattern has no subexpression")
	errNulByte         = errors.New("template contains a NUL byte")
)

var defaultAppRegexp = regexp.MustCompile(defaultAppPattern)

// levelOptions contains the options that accept a level suffix.
var levelOptions = map[string]bool{
	OptionHeader:      true,
	OptionFooter:      true,
	OptionDelimiter:   true,
	OptionNode:        true,
	OptionHighlighted: true,
	OptionCurrent:     true,
}

// plainOptions contains the options that do not accept a level suffix.
var plainOptions = map[string]bool{
	OptionMenu:        true,
	OptionMaterialize: true,
	OptionCheckPaths:  true,
	OptionAppPattern:  true,
	OptionLinkPrefix:  true,
	OptionEscape:      true,
}

// options contains the options of a menu.
type options struct {
	templates   map[string]string
	materialize bool
	checkPaths  bool
	escape      bool
	appPattern  *regexp.Regexp
	linkPrefix  string
}

func newOptions() *options {
	return &options{
		templates:  map[string]string{},
		escape:     true,
		appPattern: defaultAppRegexp,
		linkPrefix: defaultLinkPrefix,
	}
}

// clone returns a copy of o.
func (o *options) clone() *options {
	c := *o
	c.templates = make(map[string]string, len(o.templates))
	for k, v := range o.templates {
		c.templates[k] = v
	}
	return &c
}

// isAdmissionOption reports whether key affects the admission of nodes.
func isAdmissionOption(key string) bool {
	return key == OptionCheckPaths || key == OptionAppPattern
}

// set sets the option with the given key and value.
func (o *options) set(key, value string) error {
	switch key {
	case OptionMenu:
		return o.setTemplate(key, value)
	case OptionMaterialize, OptionCheckPaths, OptionEscape:
		b, ok := parseBool(value)
		if !ok {
			return &OptionError{Key: key, Value: value, Err: errNotBool}
		}
		switch key {
		case OptionMaterialize:
			o.materialize = b
		case OptionCheckPaths:
			o.checkPaths = b
		default:
			o.escape = b
		}
		return nil
	case OptionAppPattern:
		re, err := regexp.Compile(value)
		if err != nil {
			return &OptionError{Key: key, Value: value, Err: err}
		}
		if re.NumSubexp() == 0 {
			return &OptionError{Key: key, Value: value, Err: errNoSubmatch}
		}
		o.appPattern = re
		return nil
	case OptionLinkPrefix:
		o.linkPrefix = value
		return nil
	}
	if name, ok := strings.CutPrefix(key, OptionTemplate+"."); ok {
		if name == "" {
			return &OptionError{Key: key, Value: value, Err: errNoName}
		}
		return o.setTemplate(key, value)
	}
	base, suffix, hasLevel := strings.Cut(key, ".")
	if !levelOptions[base] {
		switch {
		case key == OptionTemplate:
			return &OptionError{Key: key, Value: value, Err: errNoName}
		case hasLevel && plainOptions[base]:
			return &OptionError{Key: key, Value: value, Err: errNoLevel}
		}
		return &OptionError{Key: key, Value: value, Err: ErrUnknownOption}
	}
	if hasLevel {
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 1 {
			return &OptionError{Key: key, Value: value, Err: errInvalidLevel}
		}
		key = base + "." + strconv.Itoa(n)
	}
	return o.setTemplate(key, value)
}

// setTemplate sets the template with the given key. Templates cannot contain
// NUL bytes, as they delimit the fragment references.
func (o *options) setTemplate(key, value string) error {
	if strings.IndexByte(value, fragmentMark) >= 0 {
		return &OptionError{Key: key, Value: value, Err: errNulByte}
	}
	o.templates[key] = value
	return nil
}

// template returns the template with the given key for the given level.
// It returns false if the template is not set.
func (o *options) template(key string, level int) (string, bool) {
	if src, ok := o.templates[key+"."+strconv.Itoa(level)]; ok {
		return src, true
	}
	src, ok := o.templates[key]
	return src, ok
}

// named returns the template with the given name.
func (o *options) named(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	src, ok := o.templates[OptionTemplate+"."+name]
	return src, ok
}

// menu returns the template that wraps the root level.
func (o *options) menu() string {
	if src, ok := o.templates[OptionMenu]; ok {
		return src
	}
	return defaultMenuTemplate
}

// node returns the plain template of a node at the given level.
func (o *options) node(level int) string {
	if src, ok := o.template(OptionNode, level); ok {
		return src
	}
	return defaultNodeTemplate
}

// text returns the header, footer or delimiter for the given level.
func (o *options) text(key string, level int) string {
	src, _ := o.template(key, level)
	return src
}
