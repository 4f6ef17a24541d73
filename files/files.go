// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package files implements the Paths collaborator of a menu over a file
// system.
package files

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Paths resolves the paths of the menu nodes as files in a file system.
type Paths struct {
	fsys       fs.FS
	extensions []string
	logger     *zap.Logger
}

// New returns a Paths that resolves paths in fsys. A path exists if it is a
// file or a directory in fsys or, if it has no extension, if it exists with
// one of the given extensions. For example, with the extension ".html", the
// path "shop/config" exists if the file "shop/config.html" exists.
func New(fsys fs.FS, logger *zap.Logger, extensions ...string) *Paths {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Paths{fsys: fsys, extensions: extensions, logger: logger}
}

// PathExists reports whether the path name exists.
func (p *Paths) PathExists(ctx context.Context, name string) bool {
	name = strings.Trim(name, "/")
	if name == "" {
		return true
	}
	name = path.Clean(name)
	if !fs.ValidPath(name) {
		return false
	}
	if p.stat(name) {
		return true
	}
	if path.Ext(name) != "" {
		return false
	}
	for _, ext := range p.extensions {
		if ctx.Err() != nil {
			return false
		}
		if p.stat(name + ext) {
			return true
		}
	}
	return false
}

func (p *Paths) stat(name string) bool {
	_, err := fs.Stat(p.fsys, name)
	if err == nil {
		return true
	}
	if !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("files: cannot stat path", zap.String("path", name), zap.Error(err))
	}
	return false
}
