// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"context"
	"errors"
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type attrs = map[string]string

// entry is a node declaration used in tests.
type entry struct {
	level int
	attrs attrs
}

// shape is the part of a node checked by the tree tests.
type shape struct {
	ID, Level, Parent int
	Kind              Kind
	Label             string
}

func shapes(nodes []Node) []shape {
	s := make([]shape, len(nodes))
	for i, n := range nodes {
		s[i] = shape{n.ID, n.Level, n.Parent, n.Kind, n.Label}
	}
	return s
}

// privilegeCall is a call to the HasPrivilege method of testPrivileges.
type privilegeCall struct {
	Requirement string
	Redirect    bool
}

// testPrivileges grants the privileges in granted and records the calls.
type testPrivileges struct {
	granted map[string]bool
	calls   []privilegeCall
}

func (p *testPrivileges) HasPrivilege(_ context.Context, requirement string, redirect bool) bool {
	p.calls = append(p.calls, privilegeCall{requirement, redirect})
	return p.granted[requirement]
}

func set(names ...string) func(context.Context, string) bool {
	m := map[string]bool{}
	for _, name := range names {
		m[name] = true
	}
	return func(_ context.Context, name string) bool { return m[name] }
}

var parentsCases = map[string]struct {
	entries []entry
	want    []shape
}{
	"children and siblings": {
		entries: []entry{
			{1, attrs{"label": "A"}},
			{2, attrs{"label": "B"}},
			{2, attrs{"label": "C"}},
			{1, attrs{"label": "D"}},
		},
		want: []shape{
			{1, 1, 0, Branch, "A"},
			{2, 2, 1, Leaf, "B"},
			{3, 2, 1, Leaf, "C"},
			{4, 1, 0, Leaf, "D"},
		},
	},
	"back to the nearest node with the same level": {
		entries: []entry{
			{1, attrs{"label": "A"}},
			{2, attrs{"label": "B"}},
			{3, attrs{"label": "C"}},
			{2, attrs{"label": "D"}},
			{3, attrs{"label": "E"}},
			{1, attrs{"label": "F"}},
		},
		want: []shape{
			{1, 1, 0, Branch, "A"},
			{2, 2, 1, Branch, "B"},
			{3, 3, 2, Leaf, "C"},
			{4, 2, 1, Branch, "D"},
			{5, 3, 4, Leaf, "E"},
			{6, 1, 0, Leaf, "F"},
		},
	},
	"first node not at level one": {
		entries: []entry{
			{3, attrs{"label": "A"}},
			{2, attrs{"label": "B"}},
			{3, attrs{"label": "C"}},
			{1, attrs{"label": "D"}},
		},
		want: []shape{
			{1, 3, 0, Leaf, "A"},
			{2, 2, 0, Branch, "B"},
			{3, 3, 2, Leaf, "C"},
			{4, 1, 0, Leaf, "D"},
		},
	},
	"level from attribute": {
		entries: []entry{
			{0, attrs{"label": "A", "level": "1"}},
			{0, attrs{"label": "B", "level": " 2 "}},
			{1, attrs{"label": "C", "level": "2"}},
		},
		want: []shape{
			{1, 1, 0, Branch, "A"},
			{2, 2, 1, Leaf, "B"},
			{3, 1, 0, Leaf, "C"},
		},
	},
}

func TestAddParents(t *testing.T) {
	for name, cas := range parentsCases {
		t.Run(name, func(t *testing.T) {
			m := New(nil)
			for _, e := range cas.entries {
				if err := m.Add(e.level, e.attrs); err != nil {
					t.Fatal(err)
				}
			}
			if diff := cmp.Diff(cas.want, shapes(m.Nodes())); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
		})
	}
}

// TestAddForest checks that random sequences of valid levels always build a
// forest whose non-root nodes have a parent with a lower level.
func TestAddForest(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		m := New(nil)
		level := 1 + r.Intn(3)
		for j := 0; j < 50; j++ {
			if err := m.Add(level, attrs{"label": strconv.Itoa(j)}); err != nil {
				t.Fatal(err)
			}
			level = 1 + r.Intn(level+1)
		}
		nodes := m.Nodes()
		for k, n := range nodes {
			if n.ID != k+1 {
				t.Fatalf("expected id %d, got %d", k+1, n.ID)
			}
			if n.Parent == 0 {
				continue
			}
			if n.Parent >= n.ID {
				t.Fatalf("node %d: parent %d is not a previous node", n.ID, n.Parent)
			}
			if p := nodes[n.Parent-1]; p.Level >= n.Level || p.Kind != Branch {
				t.Fatalf("node %d: invalid parent %d with level %d and kind %s", n.ID, p.ID, p.Level, p.Kind)
			}
		}
	}
}

func TestAddInvalidLevel(t *testing.T) {
	cases := map[string]struct {
		entries []entry
		want    *LevelError
		nodes   int
	}{
		"jump from 1 to 3":       {[]entry{{1, nil}, {3, nil}}, &LevelError{Level: 3, Previous: 1}, 1},
		"zero without attribute": {[]entry{{0, nil}}, &LevelError{Level: 0}, 0},
		"negative":               {[]entry{{1, nil}, {-1, nil}}, &LevelError{Level: -1, Previous: 1}, 1},
		"invalid attribute":      {[]entry{{0, attrs{"level": "a"}}}, &LevelError{Level: 0}, 0},
		"jump after skipped node": {
			entries: []entry{{1, nil}, {2, attrs{"if": "false"}}, {4, nil}},
			want:    &LevelError{Level: 4, Previous: 2},
			nodes:   1,
		},
	}
	for name, cas := range cases {
		t.Run(name, func(t *testing.T) {
			m := New(nil)
			var err error
			for _, e := range cas.entries {
				if err = m.Add(e.level, e.attrs); err != nil {
					break
				}
			}
			if !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
			if diff := cmp.Diff(cas.want, err); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
			if err2 := m.Add(1, nil); err2 != err {
				t.Fatalf("expected the same error after failure, got %v", err2)
			}
			if got := len(m.Nodes()); got != cas.nodes {
				t.Fatalf("expected %d nodes, got %d", cas.nodes, got)
			}
			if _, err2 := m.Render(nil); err2 != err {
				t.Fatalf("expected the same error from Render, got %v", err2)
			}
		})
	}
}

func TestSkipWindow(t *testing.T) {
	privileges := &testPrivileges{}
	m := New(&Options{Privileges: privileges})
	entries := []entry{
		{1, attrs{"label": "A"}},
		{2, attrs{"label": "B", "privilege": "admin"}},
		{3, attrs{"label": "C"}},
		{4, attrs{"label": "D"}},
		{3, attrs{"label": "E"}},
		{2, attrs{"label": "F"}},
		{1, attrs{"label": "G", "privilege": "admin"}},
		{2, attrs{"label": "H"}},
		{1, attrs{"label": "I"}},
	}
	for _, e := range entries {
		if err := m.Add(e.level, e.attrs); err != nil {
			t.Fatal(err)
		}
	}
	want := []shape{
		{1, 1, 0, Branch, "A"},
		{2, 2, 1, Leaf, "F"},
		{3, 1, 0, Leaf, "I"},
	}
	if diff := cmp.Diff(want, shapes(m.Nodes())); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
	if len(privileges.calls) != 2 {
		t.Fatalf("expected 2 privilege checks, got %d", len(privileges.calls))
	}
}

func TestSkipWindowPrivilegeRedirect(t *testing.T) {
	cases := map[string]struct {
		current string
		entries []entry
		want    []privilegeCall
	}{
		"gating node on the active path": {
			current: "admin/users",
			entries: []entry{
				{1, attrs{"path": "admin", "privilege": "admin"}},
				{2, attrs{"path": "admin/users"}},
			},
			want: []privilegeCall{{"admin", true}},
		},
		"gating node off the active path": {
			current: "shop",
			entries: []entry{
				{1, attrs{"path": "admin", "privilege": "admin"}},
				{2, attrs{"path": "admin/users"}},
				{1, attrs{"path": "shop"}},
			},
			want: []privilegeCall{{"admin", false}},
		},
		"descendant on the active path": {
			current: "/tools/users/",
			entries: []entry{
				{1, attrs{"label": "Tools", "privilege": "admin,tools"}},
				{2, attrs{"path": "tools/settings"}},
				{2, attrs{"path": "tools/users"}},
				{3, attrs{"path": "tools/users/new"}},
				{1, attrs{"path": "shop"}},
			},
			want: []privilegeCall{{"admin,tools", false}, {"admin,tools", true}},
		},
		"root node is never on the active path": {
			current: "",
			entries: []entry{
				{1, attrs{"path": "/", "privilege": "admin"}},
			},
			want: []privilegeCall{{"admin", false}},
		},
	}
	for name, cas := range cases {
		t.Run(name, func(t *testing.T) {
			privileges := &testPrivileges{}
			m := New(&Options{CurrentPath: cas.current, Privileges: privileges})
			for _, e := range cas.entries {
				if err := m.Add(e.level, e.attrs); err != nil {
					t.Fatal(err)
				}
			}
			if diff := cmp.Diff(cas.want, privileges.calls); diff != "" {
				t.Fatalf("(-want, +got):\n%s", diff)
			}
		})
	}
}

func TestAddNormalizesAttributes(t *testing.T) {
	m := New(nil)
	err := m.Add(1, attrs{
		"label":    "Shop",
		"path":     "/shop/",
		"url":      "https://example.com/shop",
		"target":   "_blank",
		"template": "icon",
		"icon":     "cart",
		"if":       "yes",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []Node{{
		ID:       1,
		Level:    1,
		Kind:     Leaf,
		Label:    "Shop",
		Path:     "shop",
		URL:      "https://example.com/shop",
		Target:   "_blank",
		Template: "icon",
		Extra:    map[string]string{"icon": "cart"},
	}}
	if diff := cmp.Diff(want, m.Nodes()); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestFinalized(t *testing.T) {
	m := New(nil)
	if err := m.Add(1, attrs{"label": "A"}); err != nil {
		t.Fatal(err)
	}
	if err := m.Set(OptionCheckPaths, "true"); !errors.Is(err, errAdmissionOption) {
		t.Fatalf("expected errAdmissionOption, got %v", err)
	}
	if _, err := m.Render(nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(1, attrs{"label": "B"}); err != ErrFinalized {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
	if err := m.Set(OptionNode, "{:=label}"); err != ErrFinalized {
		t.Fatalf("expected ErrFinalized, got %v", err)
	}
	m.Reset()
	if err := m.Set(OptionCheckPaths, "false"); err != nil {
		t.Fatal(err)
	}
	if err := m.Add(2, attrs{"label": "B"}); err != nil {
		t.Fatal(err)
	}
	want := []shape{{1, 2, 0, Leaf, "B"}}
	if diff := cmp.Diff(want, shapes(m.Nodes())); diff != "" {
		t.Fatalf("(-want, +got):\n%s", diff)
	}
}

func TestNodesReturnsACopy(t *testing.T) {
	m := New(nil)
	if err := m.Add(1, attrs{"label": "A", "icon": "home"}); err != nil {
		t.Fatal(err)
	}
	nodes := m.Nodes()
	nodes[0].Label = "B"
	nodes[0].Extra["icon"] = "shop"
	got := m.Nodes()[0]
	if got.Label != "A" || got.Extra["icon"] != "home" {
		t.Fatalf("unexpected node change: %#v", got)
	}
}
