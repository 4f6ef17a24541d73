// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package menus

import (
	"context"
	"io"
)

// Privileges is implemented by the values that resolve the privileges of the
// current actor.
type Privileges interface {

	// HasPrivilege reports whether the current actor satisfies requirement, a
	// comma-separated list of privileges. If redirectIfForbidden is true and
	// the actor does not satisfy the requirement, the implementation performs
	// an access-denied redirect before returning false.
	HasPrivilege(ctx context.Context, requirement string, redirectIfForbidden bool) bool
}

// Tables is implemented by the values that report whether a storage table
// exists.
type Tables interface {
	TableExists(ctx context.Context, name string) bool
}

// Paths is implemented by the values that report whether a path exists.
type Paths interface {
	PathExists(ctx context.Context, path string) bool
}

// Applications is implemented by the values that report whether an
// application is enabled for the current actor.
type Applications interface {
	ApplicationEnabled(ctx context.Context, name string) bool
}

// The PrivilegesFunc type is an adapter to allow the use of ordinary
// functions as Privileges.
type PrivilegesFunc func(ctx context.Context, requirement string, redirectIfForbidden bool) bool

// HasPrivilege calls f(ctx, requirement, redirectIfForbidden).
func (f PrivilegesFunc) HasPrivilege(ctx context.Context, requirement string, redirectIfForbidden bool) bool {
	return f(ctx, requirement, redirectIfForbidden)
}

// The TablesFunc type is an adapter to allow the use of ordinary functions
// as Tables.
type TablesFunc func(ctx context.Context, name string) bool

// TableExists calls f(ctx, name).
func (f TablesFunc) TableExists(ctx context.Context, name string) bool {
	return f(ctx, name)
}

// The PathsFunc type is an adapter to allow the use of ordinary functions as
// Paths.
type PathsFunc func(ctx context.Context, path string) bool

// PathExists calls f(ctx, path).
func (f PathsFunc) PathExists(ctx context.Context, path string) bool {
	return f(ctx, path)
}

// The ApplicationsFunc type is an adapter to allow the use of ordinary
// functions as Applications.
type ApplicationsFunc func(ctx context.Context, name string) bool

// ApplicationEnabled calls f(ctx, name).
func (f ApplicationsFunc) ApplicationEnabled(ctx context.Context, name string) bool {
	return f(ctx, name)
}

// Converter converts the source of a label to HTML.
type Converter func(src []byte, out io.Writer) error
