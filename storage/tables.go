// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storage implements the Tables collaborator of a menu over a SQL
// database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// SQLiteQuery is the query that checks if a table exists in a SQLite
// database.
const SQLiteQuery = "SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?"

// PostgresQuery is the query that checks if a table exists in the search
// path of a PostgreSQL database.
const PostgresQuery = "SELECT 1 FROM information_schema.tables WHERE table_schema = ANY(current_schemas(false)) AND table_name = $1"

// Tables reports whether the tables of a SQL database exist.
type Tables struct {
	db     *sql.DB
	query  string
	logger *zap.Logger
}

// NewTables returns a Tables that checks the tables of db with query. query
// must have a single parameter, the table name, and return a row only if the
// table exists. If query is empty, SQLiteQuery is used. logger can be nil.
func NewTables(db *sql.DB, query string, logger *zap.Logger) *Tables {
	if query == "" {
		query = SQLiteQuery
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tables{db: db, query: query, logger: logger}
}

// TableExists reports whether the table with the given name exists. If the
// query fails, the error is logged and the table is reported as missing.
func (t *Tables) TableExists(ctx context.Context, name string) bool {
	var one int
	err := t.db.QueryRowContext(ctx, t.query, name).Scan(&one)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			t.logger.Error("storage: cannot check table", zap.String("table", name), zap.Error(err))
		}
		return false
	}
	return true
}

// TableChecker is implemented by the values that report whether a table
// exists. It is satisfied by *Tables and by menus.Tables.
type TableChecker interface {
	TableExists(ctx context.Context, name string) bool
}

// CachedTables caches the results of a TableChecker for a limited time.
type CachedTables struct {
	tables TableChecker
	cache  *expirable.LRU[string, bool]
}

// NewCachedTables returns a CachedTables that caches up to size results of
// tables, each for ttl.
func NewCachedTables(tables TableChecker, size int, ttl time.Duration) *CachedTables {
	return &CachedTables{
		tables: tables,
		cache:  expirable.NewLRU[string, bool](size, nil, ttl),
	}
}

// TableExists reports whether the table with the given name exists.
func (c *CachedTables) TableExists(ctx context.Context, name string) bool {
	if exists, ok := c.cache.Get(name); ok {
		return exists
	}
	exists := c.tables.TableExists(ctx, name)
	if ctx.Err() == nil {
		c.cache.Add(name, exists)
	}
	return exists
}

// Purge removes all the cached results.
func (c *CachedTables) Purge() {
	c.cache.Purge()
}
