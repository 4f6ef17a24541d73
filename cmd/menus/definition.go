// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/open2b/menus"
	"github.com/open2b/menus/storage"

	_ "modernc.org/sqlite"
)

// loadDefinition loads the definition file with the given name.
func loadDefinition(name string) (*menus.Definition, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	def, err := menus.LoadDefinition(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return def, nil
}

// openTables opens the SQLite database with the given file name and returns
// its tables. The returned function closes the database.
func openTables(name string) (*storage.Tables, func() error, error) {
	if _, err := os.Stat(name); err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("sqlite", name)
	if err != nil {
		return nil, nil, err
	}
	return storage.NewTables(db, storage.SQLiteQuery, logger), db.Close, nil
}

// parseOverrides parses options in the form key=value.
func parseOverrides(options []string) (map[string]string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	overrides := make(map[string]string, len(options))
	for _, o := range options {
		key, value, ok := strings.Cut(o, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q, expected key=value", o)
		}
		overrides[key] = value
	}
	return overrides, nil
}
