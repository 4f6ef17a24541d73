// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/open2b/menus"

	_ "modernc.org/sqlite"
)

var _ menus.Tables = (*Tables)(nil)
var _ menus.Tables = (*CachedTables)(nil)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec("CREATE TABLE orders (id INTEGER PRIMARY KEY)")
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec("CREATE VIEW orders_view AS SELECT id FROM orders")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestTableExists(t *testing.T) {
	tables := NewTables(openDB(t), "", nil)
	ctx := context.Background()
	cases := map[string]bool{
		"orders":      true,
		"customers":   false,
		"orders_view": false,
		"":            false,
	}
	for name, want := range cases {
		if got := tables.TableExists(ctx, name); got != want {
			t.Errorf("table %q: expected %t, got %t", name, want, got)
		}
	}
}

func TestTableExistsQueryError(t *testing.T) {
	tables := NewTables(openDB(t), "SELECT 1 FROM missing WHERE name = ?", nil)
	if tables.TableExists(context.Background(), "orders") {
		t.Fatal("expected false on query error")
	}
}

type countingTables struct {
	calls  map[string]int
	exists map[string]bool
}

func (c *countingTables) TableExists(_ context.Context, name string) bool {
	c.calls[name]++
	return c.exists[name]
}

func TestCachedTables(t *testing.T) {
	counting := &countingTables{calls: map[string]int{}, exists: map[string]bool{"orders": true}}
	cached := NewCachedTables(counting, 10, time.Minute)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if !cached.TableExists(ctx, "orders") {
			t.Fatal("expected orders to exist")
		}
		if cached.TableExists(ctx, "customers") {
			t.Fatal("expected customers to be missing")
		}
	}
	if counting.calls["orders"] != 1 || counting.calls["customers"] != 1 {
		t.Fatalf("expected one call per table, got %v", counting.calls)
	}
	cached.Purge()
	_ = cached.TableExists(ctx, "orders")
	if counting.calls["orders"] != 2 {
		t.Fatalf("expected a new call after purge, got %d", counting.calls["orders"])
	}
}

func TestCachedTablesCanceledContext(t *testing.T) {
	counting := &countingTables{calls: map[string]int{}, exists: map[string]bool{}}
	cached := NewCachedTables(counting, 10, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = cached.TableExists(ctx, "orders")
	_ = cached.TableExists(context.Background(), "orders")
	if counting.calls["orders"] != 2 {
		t.Fatalf("expected the canceled result not to be cached, got %d calls", counting.calls["orders"])
	}
}

func TestMenuWithTables(t *testing.T) {
	m := menus.New(&menus.Options{Tables: NewCachedTables(NewTables(openDB(t), "", nil), 10, time.Minute)})
	_ = m.Set(menus.OptionNode, "{:=label};")
	_ = m.Add(1, map[string]string{"label": "Orders", "tables": "orders"})
	_ = m.Add(1, map[string]string{"label": "Customers", "tables": "orders,customers"})
	got, err := m.Render(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Orders;" {
		t.Fatalf("expected %q, got %q", "Orders;", got)
	}
}
