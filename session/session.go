// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package session implements the Privileges and Applications collaborators
// of a menu with the privileges and applications of the actor stored in a
// session.
package session

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Keys of the session values.
const (
	privilegesKey   = "privileges"
	applicationsKey = "applications"
)

// Store reads and writes the privileges and applications of the actors in
// sessions.
type Store struct {
	store     sessions.Store
	name      string
	deniedURL string
	logger    *zap.Logger
}

// NewStore returns a new Store that keeps the privileges and applications
// in the session with the given name. Actors are redirected to deniedURL
// when they access a page they have no privilege for. logger can be nil.
func NewStore(store sessions.Store, name, deniedURL string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{store: store, name: name, deniedURL: deniedURL, logger: logger}
}

// Grant replaces the privileges and applications of the actor of r.
func (s *Store) Grant(w http.ResponseWriter, r *http.Request, privileges, applications []string) error {
	sess, err := s.store.Get(r, s.name)
	if err != nil && sess == nil {
		return err
	}
	sess.Values[privilegesKey] = strings.Join(privileges, ",")
	sess.Values[applicationsKey] = strings.Join(applications, ",")
	return sess.Save(r, w)
}

// Actor returns the actor of the request r. If the session cannot be
// decoded, the actor has no privileges and no applications.
func (s *Store) Actor(w http.ResponseWriter, r *http.Request) *Actor {
	sess, err := s.store.Get(r, s.name)
	if err != nil {
		s.logger.Warn("session: cannot decode session", zap.String("name", s.name), zap.Error(err))
	}
	var privileges, applications string
	if sess != nil {
		privileges, _ = sess.Values[privilegesKey].(string)
		applications, _ = sess.Values[applicationsKey].(string)
	}
	a := NewActor(split(privileges), split(applications))
	a.w = w
	a.r = r
	a.deniedURL = s.deniedURL
	a.logger = s.logger
	return a
}

// Actor is an actor with its privileges and applications. It implements
// menus.Privileges and menus.Applications.
type Actor struct {
	privileges   map[string]bool
	applications map[string]bool

	w         http.ResponseWriter
	r         *http.Request
	deniedURL string
	logger    *zap.Logger

	mu         sync.Mutex
	redirected bool
}

// NewActor returns an actor with the given privileges and applications that
// is not bound to a request. An access-denied redirect is only recorded.
func NewActor(privileges, applications []string) *Actor {
	a := &Actor{
		privileges:   map[string]bool{},
		applications: map[string]bool{},
		logger:       zap.NewNop(),
	}
	for _, p := range privileges {
		a.privileges[p] = true
	}
	for _, app := range applications {
		a.applications[app] = true
	}
	return a
}

// HasPrivilege reports whether the actor has at least one of the
// comma-separated privileges in requirement. If the actor has none and
// redirectIfForbidden is true, the actor is redirected to the denied URL.
func (a *Actor) HasPrivilege(_ context.Context, requirement string, redirectIfForbidden bool) bool {
	for _, p := range split(requirement) {
		if a.privileges[p] {
			return true
		}
	}
	if redirectIfForbidden {
		a.redirect(requirement)
	}
	return false
}

// ApplicationEnabled reports whether the application is enabled for the
// actor.
func (a *Actor) ApplicationEnabled(_ context.Context, name string) bool {
	return a.applications[name]
}

// Redirected reports whether the actor has been redirected. When it returns
// true, the response has already been written.
func (a *Actor) Redirected() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.redirected
}

// redirect redirects the actor to the denied URL, only once.
func (a *Actor) redirect(requirement string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.redirected {
		return
	}
	a.redirected = true
	if a.w == nil || a.r == nil {
		return
	}
	a.logger.Info("session: access denied",
		zap.String("path", a.r.URL.Path),
		zap.String("requirement", requirement))
	target := a.deniedURL
	if target == "" {
		target = "/"
	}
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	target += sep + "from=" + url.QueryEscape(a.r.URL.RequestURI())
	http.Redirect(a.w, a.r, target, http.StatusSeeOther)
}

// split splits a comma-separated list, discarding the empty elements.
func split(s string) []string {
	var list []string
	for _, e := range strings.Split(s, ",") {
		if e = strings.TrimSpace(e); e != "" {
			list = append(list, e)
		}
	}
	return list
}
