// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"context"
	"strings"
)

// Rejection reasons.
const (
	reasonCondition   = "condition"
	reasonPath        = "path"
	reasonTables      = "tables"
	reasonPrivilege   = "privilege"
	reasonApplication = "application"
)

// rejection describes why a declared node has not been admitted.
type rejection struct {
	reason string

	// privilege is the requirement that the actor does not satisfy, and
	// redirected reports whether the collaborator has already been asked to
	// redirect. They are set only if reason is reasonPrivilege.
	privilege  string
	redirected bool
}

// admission evaluates the admission rules of the declared nodes.
type admission struct {
	ctx          context.Context
	current      string
	privileges   Privileges
	tables       Tables
	paths        Paths
	applications Applications
}

// evaluate evaluates the admission rules of d, in order, and returns the
// first rule that rejects it. It returns nil if d is admitted.
func (a *admission) evaluate(d *declaration, opts *options) (*rejection, error) {

	if d.cond != nil && !isTrue(*d.cond) {
		return &rejection{reason: reasonCondition}, nil
	}

	var probe string
	var check bool
	if d.exists != nil {
		probe, check = *d.exists, true
	} else if (d.checkPath || opts.checkPaths) && d.node.Path != "" {
		probe, check = d.node.Path, true
	}
	if check {
		if a.paths == nil {
			return nil, ErrMissingPathContext
		}
		if !a.paths.PathExists(a.ctx, probe) {
			return &rejection{reason: reasonPath}, nil
		}
	}

	if len(d.tables) > 0 {
		if a.tables == nil {
			return nil, ErrMissingStorageContext
		}
		for _, name := range d.tables {
			if !a.tables.TableExists(a.ctx, name) {
				return &rejection{reason: reasonTables}, nil
			}
		}
	}

	if d.privilege != "" {
		if a.privileges == nil {
			return nil, ErrMissingPrivilegeContext
		}
		redirect := onActivePath(d.node.Path, a.current)
		if !a.privileges.HasPrivilege(a.ctx, d.privilege, redirect) {
			return &rejection{reason: reasonPrivilege, privilege: d.privilege, redirected: redirect}, nil
		}
	}

	if m := opts.appPattern.FindStringSubmatch(d.node.Path); m != nil && m[1] != "" {
		if a.applications == nil {
			return nil, ErrMissingApplicationContext
		}
		if !a.applications.ApplicationEnabled(a.ctx, m[1]) {
			return &rejection{reason: reasonApplication}, nil
		}
	}

	return nil, nil
}

// skipped is called for every node skipped by the skip window w. If the
// window has been opened by a privilege rejection and the skipped node is on
// the active path, it asks the collaborator to redirect, once per window.
func (a *admission) skipped(w *skipWindow, path string) {
	if w.privilege == "" || w.redirected || !onActivePath(path, a.current) {
		return
	}
	w.redirected = true
	_ = a.privileges.HasPrivilege(a.ctx, w.privilege, true)
}

// skipWindow represents the nodes skipped after a rejection. Nodes with a
// level greater or equal to threshold are skipped. A zero threshold means
// that the window is closed.
type skipWindow struct {
	threshold  int
	privilege  string
	redirected bool
}

// onActivePath reports whether path is a prefix, in segments, of the current
// path. The empty path is never on the active path.
func onActivePath(path, current string) bool {
	if path == "" || current == "" {
		return false
	}
	return current == path || strings.HasPrefix(current, path+"/")
}
