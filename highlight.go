// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import "strings"

// highlight marks the nodes on the path current.
//
// For every prefix of current, in segments, the first node with that path is
// highlighted. The node with path current is also marked as current.
func highlight(nodes []Node, current string) {
	if len(nodes) == 0 {
		return
	}
	if last := &nodes[len(nodes)-1]; last.Kind == Branch {
		last.Kind = Leaf
	}
	if current == "" {
		return
	}
	var prefix string
	for _, segment := range strings.Split(current, "/") {
		if prefix == "" {
			prefix = segment
		} else {
			prefix += "/" + segment
		}
		for i := range nodes {
			if nodes[i].Path == prefix {
				nodes[i].Highlighted = true
				if prefix == current {
					nodes[i].Current = true
				}
				break
			}
		}
	}
}

// normalizeCurrent normalizes the current path, removing the leading,
// trailing and repeated slashes.
func normalizeCurrent(current string) string {
	current = normalizePath(current)
	if !strings.Contains(current, "//") {
		return current
	}
	var segments []string
	for _, s := range strings.Split(current, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, "/")
}
