// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package menus implements the menu plugin of the template engine: it builds
// a menu from a flat sequence of nodes, each with a level, and renders it as
// nested markup.
//
//	m := menus.New(&menus.Options{
//	    CurrentPath: "shop/config",
//	    Privileges:  privileges,
//	})
//	m.Set("header", "<ul>")
//	m.Set("footer", "</ul>")
//	m.Set("node", `<li class="{:=state}"><a href="{:=href}">{:=label}</a>{:=nested}</li>`)
//	m.Add(1, map[string]string{"label": "Home", "path": "/"})
//	m.Add(1, map[string]string{"label": "Shop", "path": "shop"})
//	m.Add(2, map[string]string{"label": "Config", "path": "shop/config", "privilege": "admin"})
//	html, err := m.Render(nil)
//
// A node added with a level one more than the previous node becomes its
// child. A node with the same level of the previous node becomes its
// sibling, and a node with a lower level becomes a sibling of the nearest
// previous node with the same level.
//
// # Admission
//
// A node is admitted only if its attributes allow it. The rules are
// evaluated in this order:
//
//	if         the value is not false ("", "0", "false", "no" and "off" are false)
//	exists     the path exists (also the node path with checkPath or the checkPaths option)
//	tables     all the comma-separated tables exist
//	privilege  the current actor has the privilege
//	path       if it matches the appPattern option, the application is enabled
//
// When a node is not admitted, the nodes subsequently added with a greater
// level, its declared descendants, are discarded too.
//
// If a node with a privilege that the actor does not have is on the current
// path, or one of its declared descendants is, the Privileges collaborator is
// asked to redirect.
//
// # Rendering
//
// Each node is rendered with a template, where the placeholders {:=name} are
// replaced with the node attributes. The placeholder {:=nested} is replaced
// with the children of the node, only if the node is highlighted or the
// materialize option is true.
package menus
