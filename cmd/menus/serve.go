// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/open2b/menus"
	"github.com/open2b/menus/files"
	"github.com/open2b/menus/markdown"
	"github.com/open2b/menus/session"
	"github.com/open2b/menus/storage"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sessionName = "menus"

type serveFlags struct {
	dir      string
	root     string
	addr     string
	db       string
	secret   string
	markdown bool
}

func newServeCmd() *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the menus of a directory",
		Long: `Serve starts a web server that renders the menus defined in a directory.

  GET /menu/NAME?path=P            renders the menu NAME.yaml for the path P
  GET /login?privileges=a,b&apps=x sets the privileges and the applications
  GET /denied                      page to which the forbidden requests are redirected
  GET /metrics                     Prometheus metrics

The definition files are read once and read again when they change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.dir, "dir", ".", "directory with the definition files")
	fl.StringVar(&f.root, "root", "", "directory used to check the paths")
	fl.StringVar(&f.addr, "addr", ":8080", "address to listen on")
	fl.StringVar(&f.db, "db", "", "SQLite database used to check the tables")
	fl.StringVar(&f.secret, "secret", "", "key used to authenticate the session cookies")
	fl.BoolVar(&f.markdown, "markdown", false, "convert the labels from Markdown")
	return cmd
}

func runServe(cmd *cobra.Command, f *serveFlags) error {

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fsys, err := newDefinitionFS(f.dir)
	if err != nil {
		return err
	}
	defer fsys.Close()

	key := []byte(f.secret)
	if len(key) == 0 {
		key = securecookie.GenerateRandomKey(32)
		logger.Warn("no secret given, sessions will not survive a restart")
	}

	srv := newServer(fsys, session.NewStore(sessions.NewCookieStore(key), sessionName, "/denied", logger))
	if f.db != "" {
		tables, closeDB, err := openTables(f.db)
		if err != nil {
			return err
		}
		defer closeDB()
		srv.tables = storage.NewCachedTables(tables, 256, time.Minute)
	}
	if f.root != "" {
		srv.paths = files.New(os.DirFS(f.root), logger, pageExtensions...)
	}
	if f.markdown {
		srv.converter = markdown.New().Convert
	}
	go srv.watch(ctx)

	s := &http.Server{
		Addr:           f.addr,
		Handler:        srv.handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdown)
	}()

	fmt.Fprintf(cmd.ErrOrStderr(), "Menu server is available at http://localhost%s/menu/\n", f.addr)
	fmt.Fprintf(cmd.ErrOrStderr(), "Press Ctrl+C to stop\n\n")

	err = s.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// server renders the menus defined in a directory.
type server struct {
	fsys      *definitionFS
	store     *session.Store
	tables    menus.Tables
	paths     menus.Paths
	converter menus.Converter

	sync.Mutex
	definitions map[string]*menus.Definition
}

func newServer(fsys *definitionFS, store *session.Store) *server {
	return &server{
		fsys:        fsys,
		store:       store,
		definitions: map[string]*menus.Definition{},
	}
}

func (srv *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu/{name}", srv.serveMenu)
	mux.HandleFunc("GET /login", srv.serveLogin)
	mux.HandleFunc("GET /denied", srv.serveDenied)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// watch removes the changed definitions from the cache until ctx is done.
func (srv *server) watch(ctx context.Context) {
	for {
		select {
		case name := <-srv.fsys.Changed:
			srv.Lock()
			delete(srv.definitions, name)
			srv.Unlock()
			logger.Debug("definition changed", zap.String("file", name))
		case err := <-srv.fsys.Errors:
			logger.Warn("cannot watch the definitions", zap.Error(err))
		case <-ctx.Done():
			return
		}
	}
}

// definition returns the definition in the named file.
func (srv *server) definition(name string) (*menus.Definition, error) {
	srv.Lock()
	def, ok := srv.definitions[name]
	srv.Unlock()
	if ok {
		return def, nil
	}
	data, err := srv.fsys.ReadFile(name)
	if err != nil {
		return nil, err
	}
	def, err = menus.LoadDefinition(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	definitionsLoaded.Inc()
	srv.Lock()
	srv.definitions[name] = def
	srv.Unlock()
	return def, nil
}

func (srv *server) serveMenu(w http.ResponseWriter, r *http.Request) {

	name := r.PathValue("name")
	if strings.HasPrefix(name, ".") || !fs.ValidPath(name) {
		http.NotFound(w, r)
		return
	}
	def, err := srv.definition(name + ".yaml")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		srv.fail(w, name, err)
		return
	}

	start := time.Now()
	actor := srv.store.Actor(w, r)
	m := menus.New(&menus.Options{
		Context:        r.Context(),
		CurrentPath:    r.URL.Query().Get("path"),
		Privileges:     actor,
		Tables:         srv.tables,
		Paths:          srv.paths,
		Applications:   actor,
		LabelConverter: srv.converter,
		Logger:         logger.With(zap.String("menu", name)),
	})
	err = def.Apply(m)
	var html string
	if err == nil {
		html, err = m.Render(nil)
	}
	renderSeconds.Observe(time.Since(start).Seconds())

	if actor.Redirected() {
		rendersTotal.WithLabelValues(statusDenied).Inc()
		return
	}
	if err != nil {
		srv.fail(w, name, err)
		return
	}
	rendersTotal.WithLabelValues(statusOK).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write([]byte(html))
	if err != nil {
		logger.Debug("cannot write the menu", zap.String("menu", name), zap.Error(err))
	}
}

func (srv *server) serveLogin(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	err := srv.store.Grant(w, r, split(q.Get("privileges")), split(q.Get("apps")))
	if err != nil {
		logger.Error("cannot save the session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (srv *server) serveDenied(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "access denied", http.StatusForbidden)
}

// fail responds with the error that occurred rendering the menu name.
func (srv *server) fail(w http.ResponseWriter, name string, err error) {
	rendersTotal.WithLabelValues(statusError).Inc()
	logger.Error("cannot render the menu", zap.String("menu", name), zap.Error(err))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprintf(w, "%s", err)
}

// split splits a comma-separated list.
func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
