// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHighlight(t *testing.T) {
	cases := map[string]struct {
		current     string
		paths       []string
		highlighted []bool
		currents    []bool
	}{
		"prefix and current": {
			current:     "shop/config",
			paths:       []string{"", "shop", "shop/config"},
			highlighted: []bool{false, true, true},
			currents:    []bool{false, false, true},
		},
		"unmatched prefixes are skipped": {
			current:     "shop/x/y",
			paths:       []string{"shop", "shop/x/y", "shop/x/yz"},
			highlighted: []bool{true, true, false},
			currents:    []bool{false, true, false},
		},
		"first match only": {
			current:     "blog",
			paths:       []string{"shop", "blog", "blog"},
			highlighted: []bool{false, true, false},
			currents:    []bool{false, true, false},
		},
		"empty current path": {
			current:     "",
			paths:       []string{"", "shop"},
			highlighted: []bool{false, false},
			currents:    []bool{false, false},
		},
		"no match": {
			current:     "blog/posts",
			paths:       []string{"shop", "shop/blog"},
			highlighted: []bool{false, false},
			currents:    []bool{false, false},
		},
	}
	for name, cas := range cases {
		t.Run(name, func(t *testing.T) {
			nodes := make([]Node, len(cas.paths))
			for i, p := range cas.paths {
				nodes[i] = Node{ID: i + 1, Level: 1, Path: p}
			}
			highlight(nodes, cas.current)
			var highlighted, currents []bool
			for _, n := range nodes {
				highlighted = append(highlighted, n.Highlighted)
				currents = append(currents, n.Current)
				if n.Current && !n.Highlighted {
					t.Fatalf("node %d is current but not highlighted", n.ID)
				}
			}
			if diff := cmp.Diff(cas.highlighted, highlighted); diff != "" {
				t.Fatalf("highlighted (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(cas.currents, currents); diff != "" {
				t.Fatalf("current (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestHighlightLastBranch(t *testing.T) {
	nodes := []Node{
		{ID: 1, Level: 1, Kind: Branch},
		{ID: 2, Level: 2, Parent: 1, Kind: Branch},
	}
	highlight(nodes, "")
	if nodes[0].Kind != Branch {
		t.Fatal("expected first node to be a branch")
	}
	if nodes[1].Kind != Leaf {
		t.Fatal("expected last node to be a leaf")
	}
}

func TestNormalizeCurrent(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"/":               "",
		"shop":            "shop",
		"/shop/config/":   "shop/config",
		"//shop//config/": "shop/config",
		" shop/x ":        "shop/x",
	}
	for current, want := range cases {
		if got := normalizeCurrent(current); got != want {
			t.Errorf("normalizeCurrent(%q): expected %q, got %q", current, want, got)
		}
	}
}
