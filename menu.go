// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"context"
	"sort"

	"go.uber.org/zap"
)

// Options contains the collaborators and the current path of a menu.
type Options struct {

	// Context is passed to the collaborators. If it is nil, the background
	// context is used.
	Context context.Context

	// CurrentPath is the path of the current request, with segments
	// separated by slashes.
	CurrentPath string

	// Privileges resolves the privilege attribute.
	Privileges Privileges

	// Tables resolves the tables attribute.
	Tables Tables

	// Paths resolves the exists and checkPath attributes and the checkPaths
	// option.
	Paths Paths

	// Applications resolves the paths that match the application root
	// pattern.
	Applications Applications

	// LabelConverter, if not nil, converts the labels to HTML.
	LabelConverter Converter

	// Logger logs the admission decisions at debug level. If it is nil,
	// nothing is logged.
	Logger *zap.Logger
}

type state int

const (
	stateBuilding state = iota
	stateRendered
	stateFailed
)

// Menu is a menu built node by node with the Add method and rendered with
// the Render method.
//
// A Menu is not safe for concurrent use.
type Menu struct {
	admission admission
	converter Converter
	logger    *zap.Logger
	opts      *options

	nodes       []Node
	declared    int // level of the last declared node
	skip        skipWindow
	state       state
	err         error
	highlighted bool
	fragments   map[int]string
}

// New returns a new empty menu. options can be nil.
func New(options *Options) *Menu {
	m := &Menu{opts: newOptions(), logger: zap.NewNop()}
	m.admission.ctx = context.Background()
	if options != nil {
		if options.Context != nil {
			m.admission.ctx = options.Context
		}
		m.admission.current = normalizeCurrent(options.CurrentPath)
		m.admission.privileges = options.Privileges
		m.admission.tables = options.Tables
		m.admission.paths = options.Paths
		m.admission.applications = options.Applications
		m.converter = options.LabelConverter
		if options.Logger != nil {
			m.logger = options.Logger
		}
	}
	return m
}

// Set sets the option with the given key to value. See the Option constants
// for the available options.
//
// The checkPaths and appPattern options can be set only before the first
// call to Add. No option can be set after the menu has been rendered.
func (m *Menu) Set(key, value string) error {
	if m.err != nil {
		return m.err
	}
	if m.state == stateRendered {
		return ErrFinalized
	}
	if isAdmissionOption(key) && m.declared > 0 {
		return &OptionError{Key: key, Value: value, Err: errAdmissionOption}
	}
	return m.opts.set(key, value)
}

// Add adds a node at the given level with the given attributes. If level is
// zero, the level is read from the "level" attribute.
//
// The node becomes a child of the previous node if its level is one more
// than the level of the previous node. Otherwise it becomes a sibling of
// the nearest previous node with the same level.
//
// If the node is not admitted, it is discarded together with the nodes
// subsequently added with a greater level.
//
// Levels are validated before the skip window is applied, so a level jump is
// an error even when the node would be discarded.
//
// Add returns a *LevelError if the level is not valid, and an error if an
// admission rule requires a missing collaborator. These errors are fatal:
// the menu does not accept other nodes and Render returns the same error.
func (m *Menu) Add(level int, attrs map[string]string) error {
	if m.err != nil {
		return m.err
	}
	if m.state == stateRendered {
		return ErrFinalized
	}
	level = resolveLevel(level, attrs)
	if level < 1 || m.declared > 0 && level > m.declared+1 {
		return m.fail(&LevelError{Level: level, Previous: m.declared})
	}
	m.declared = level

	if m.skip.threshold > 0 && level >= m.skip.threshold {
		path := normalizePath(attrs[attrPath])
		m.admission.skipped(&m.skip, path)
		m.logger.Debug("menus: node skipped", zap.Int("level", level), zap.String("path", path))
		return nil
	}
	m.skip = skipWindow{}

	d := newDeclaration(level, attrs)

	var prev *Node
	if n := len(m.nodes); n > 0 {
		prev = &m.nodes[n-1]
	}
	promote := false
	switch {
	case prev == nil:
	case level == prev.Level+1:
		d.node.Parent = prev.ID
		promote = true
	case level == prev.Level:
		d.node.Parent = prev.Parent
	case level > prev.Level+1:
		return m.fail(&LevelError{Level: level, Previous: prev.Level})
	default:
		for i := len(m.nodes) - 1; i >= 0; i-- {
			if m.nodes[i].Level == level {
				d.node.Parent = m.nodes[i].Parent
				break
			}
		}
	}

	rej, err := m.admission.evaluate(&d, m.opts)
	if err != nil {
		return m.fail(err)
	}
	if rej != nil {
		m.skip = skipWindow{
			threshold:  level + 1,
			privilege:  rej.privilege,
			redirected: rej.redirected,
		}
		m.logger.Debug("menus: node rejected",
			zap.Int("level", level),
			zap.String("path", d.node.Path),
			zap.String("reason", rej.reason))
		return nil
	}

	if promote {
		prev.Kind = Branch
	}
	d.node.ID = len(m.nodes) + 1
	m.nodes = append(m.nodes, d.node)
	return nil
}

// Render renders the menu and returns the resulting markup. overrides
// contains options that override, only for this call, the options of the
// menu. overrides cannot contain the checkPaths and appPattern options.
//
// After Render is called, nodes cannot be added anymore. Render can be
// called more times and, with the same overrides, returns the same markup.
func (m *Menu) Render(overrides map[string]string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	opts := m.opts
	if len(overrides) > 0 {
		opts = opts.clone()
		keys := make([]string, 0, len(overrides))
		for k := range overrides {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if isAdmissionOption(k) {
				return "", &OptionError{Key: k, Value: overrides[k], Err: errAdmissionOption}
			}
			if err := opts.set(k, overrides[k]); err != nil {
				return "", err
			}
		}
	}
	m.state = stateRendered
	m.fragments = nil
	if len(m.nodes) == 0 {
		return "", nil
	}
	if !m.highlighted {
		highlight(m.nodes, m.admission.current)
		m.highlighted = true
	}
	r := newRenderer(m.nodes, opts, m.converter)
	out, err := r.render()
	if err != nil {
		return "", err
	}
	m.fragments = r.fragments
	return out, nil
}

// Nodes returns the admitted nodes in the order in which they have been
// added.
func (m *Menu) Nodes() []Node {
	nodes := make([]Node, len(m.nodes))
	for i, node := range m.nodes {
		if node.Extra != nil {
			extra := make(map[string]string, len(node.Extra))
			for k, v := range node.Extra {
				extra[k] = v
			}
			node.Extra = extra
		}
		nodes[i] = node
	}
	return nodes
}

// Fragments returns the fragments rendered by the last call to Render,
// indexed by the identifier of the node whose children they contain.
// Fragments are rendered only when the materialize option is true.
func (m *Menu) Fragments() map[int]string {
	fragments := make(map[int]string, len(m.fragments))
	for id, f := range m.fragments {
		fragments[id] = f
	}
	return fragments
}

// Reset removes all the nodes and any error, so the menu can be built again.
// Options and collaborators are preserved.
func (m *Menu) Reset() {
	m.nodes = nil
	m.declared = 0
	m.skip = skipWindow{}
	m.state = stateBuilding
	m.err = nil
	m.highlighted = false
	m.fragments = nil
}

// fail makes the menu fail with the given error and returns it.
func (m *Menu) fail(err error) error {
	m.err = err
	m.state = stateFailed
	m.logger.Debug("menus: build failed", zap.Error(err))
	return err
}
