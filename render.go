// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
)

// fragmentMark delimits the references to the fragments in the markup
// rendered in the first pass.
const fragmentMark = '\x00'

// renderer renders the nodes of a menu.
type renderer struct {
	nodes     []Node
	opts      *options
	converter Converter
	fragments map[int]string
}

func newRenderer(nodes []Node, opts *options, converter Converter) *renderer {
	return &renderer{
		nodes:     nodes,
		opts:      opts,
		converter: converter,
		fragments: map[int]string{},
	}
}

// render renders the menu. Children of the materialized branches are
// rendered in fragments, that are substituted in a second pass.
func (r *renderer) render() (string, error) {
	root, err := r.children(-1)
	if err != nil {
		return "", err
	}
	out := substitute(r.opts.menu(), func(name string) string {
		if name == "nested" {
			return root
		}
		return ""
	})
	resolved := make(map[int]string, len(r.fragments))
	out = r.resolve(out, resolved)
	for id, f := range r.fragments {
		if _, ok := resolved[id]; !ok {
			resolved[id] = r.resolve(f, resolved)
		}
	}
	r.fragments = resolved
	return out, nil
}

// children renders the children of the node with index parent. If parent is
// -1, it renders the root nodes. Each run of consecutive siblings with the
// same level has its own header and footer.
func (r *renderer) children(parent int) (string, error) {
	var start, parentID, parentLevel int
	if parent >= 0 {
		start = parent + 1
		parentID = r.nodes[parent].ID
		parentLevel = r.nodes[parent].Level
	}
	var b strings.Builder
	var level, n int
	for i := start; i < len(r.nodes); i++ {
		node := &r.nodes[i]
		if parent >= 0 && node.Level <= parentLevel {
			break
		}
		if node.Parent != parentID {
			continue
		}
		switch {
		case n == 0:
			level = node.Level
			b.WriteString(r.text(OptionHeader, level))
		case node.Level != level:
			// Root nodes at a different level start a new run.
			b.WriteString(r.text(OptionFooter, level))
			level = node.Level
			b.WriteString(r.text(OptionHeader, level))
		default:
			b.WriteString(r.text(OptionDelimiter, level))
		}
		n++
		s, err := r.node(i)
		if err != nil {
			return "", err
		}
		b.WriteString(s)
	}
	if n == 0 {
		return "", nil
	}
	b.WriteString(r.text(OptionFooter, level))
	return b.String(), nil
}

// node renders the node with index i.
func (r *renderer) node(i int) (string, error) {
	node := &r.nodes[i]
	var nested string
	if node.Kind == Branch {
		var err error
		switch {
		case node.Highlighted:
			nested, err = r.children(i)
		case r.opts.materialize:
			var f string
			f, err = r.children(i)
			r.fragments[node.ID] = f
			nested = fragmentRef(node.ID)
		}
		if err != nil {
			return "", err
		}
	}
	label := node.Label
	if r.converter != nil {
		var b bytes.Buffer
		err := r.converter([]byte(label), &b)
		if err != nil {
			return "", fmt.Errorf("menus: cannot convert label of node %d: %w", node.ID, err)
		}
		label = b.String()
	} else {
		label = r.value(label)
	}
	return substitute(r.template(node), func(name string) string {
		switch name {
		case "id":
			return strconv.Itoa(node.ID)
		case "level":
			return strconv.Itoa(node.Level)
		case "parent":
			return strconv.Itoa(node.Parent)
		case "kind":
			return node.Kind.String()
		case "label":
			return label
		case "path":
			return r.value(node.Path)
		case "url":
			return r.value(node.URL)
		case "href":
			if node.URL != "" {
				return r.value(node.URL)
			}
			return r.value(r.opts.linkPrefix + node.Path)
		case "target":
			return r.value(node.Target)
		case "state":
			switch {
			case node.Current:
				return "current"
			case node.Highlighted:
				return "highlighted"
			}
			return ""
		case "nested":
			return nested
		}
		return r.value(node.Extra[name])
	}), nil
}

// template returns the template of node.
func (r *renderer) template(node *Node) string {
	if node.Highlighted {
		if src, ok := r.opts.template(OptionHighlighted, node.Level); ok {
			return src
		}
	}
	if node.Current {
		if src, ok := r.opts.template(OptionCurrent, node.Level); ok {
			return src
		}
	}
	if src, ok := r.opts.named(node.Template); ok {
		return src
	}
	return r.opts.node(node.Level)
}

// text returns the header, the footer or the delimiter of a level.
func (r *renderer) text(key string, level int) string {
	src := r.opts.text(key, level)
	if src == "" {
		return ""
	}
	return substitute(src, func(name string) string {
		if name == "level" {
			return strconv.Itoa(level)
		}
		return ""
	})
}

// value returns an attribute value ready to be substituted.
func (r *renderer) value(s string) string {
	if strings.IndexByte(s, fragmentMark) >= 0 {
		s = strings.ReplaceAll(s, string(fragmentMark), "")
	}
	if r.opts.escape {
		return html.EscapeString(s)
	}
	return s
}

// resolve replaces the fragment references in s with the fragments. done
// contains the already resolved fragments.
func (r *renderer) resolve(s string, done map[int]string) string {
	if strings.IndexByte(s, fragmentMark) < 0 {
		return s
	}
	var b strings.Builder
	for {
		i := strings.IndexByte(s, fragmentMark)
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i+1:], fragmentMark)
		if j < 0 {
			break
		}
		id, _ := strconv.Atoi(s[i+1 : i+1+j])
		b.WriteString(s[:i])
		f, ok := done[id]
		if !ok {
			f = r.resolve(r.fragments[id], done)
			done[id] = f
		}
		b.WriteString(f)
		s = s[i+j+2:]
	}
	b.WriteString(s)
	return b.String()
}

// fragmentRef returns the reference to the fragment of the node with the
// given identifier.
func fragmentRef(id int) string {
	return string(fragmentMark) + strconv.Itoa(id) + string(fragmentMark)
}

// substitute replaces the placeholders {:=name} in src with the values
// returned by value. Substituted values are not scanned again.
func substitute(src string, value func(name string) string) string {
	if !strings.Contains(src, "{:=") {
		return src
	}
	var b strings.Builder
	for {
		i := strings.Index(src, "{:=")
		if i < 0 {
			break
		}
		j := strings.IndexByte(src[i+3:], '}')
		if j < 0 || !isPlaceholderName(src[i+3:i+3+j]) {
			b.WriteString(src[:i+3])
			src = src[i+3:]
			continue
		}
		b.WriteString(src[:i])
		b.WriteString(value(src[i+3 : i+3+j]))
		src = src[i+j+4:]
	}
	b.WriteString(src)
	return b.String()
}

// isPlaceholderName reports whether name is a valid placeholder name.
func isPlaceholderName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c == '_' || c == '-' || c == '.') {
			return false
		}
	}
	return true
}
