// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// definitionFS reads the definition files in a directory and reports, on
// the Changed channel, the names of the read files that have been changed.
type definitionFS struct {
	root    string
	fsys    fs.FS
	watcher *fsnotify.Watcher
	Changed chan string
	Errors  chan error
	done    chan struct{}
	stopped chan struct{} // closed when the watching goroutine returns
	closed  sync.Once

	sync.Mutex
	watched map[string]bool
}

func newDefinitionFS(root string) (*definitionFS, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	dir := &definitionFS{
		root:    root,
		fsys:    os.DirFS(root),
		watcher: watcher,
		watched: map[string]bool{},
		Changed: make(chan string),
		Errors:  make(chan error),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go func() {
		defer close(dir.stopped)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				name, err := filepath.Rel(root, event.Name)
				if err != nil {
					continue
				}
				name = filepath.ToSlash(name)
				if !event.Has(fsnotify.Write) {
					// Removed and renamed files are no longer watched.
					dir.Lock()
					delete(dir.watched, name)
					dir.Unlock()
				}
				select {
				case dir.Changed <- name:
				case <-dir.done:
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				select {
				case dir.Errors <- err:
				case <-dir.done:
					return
				}
			case <-dir.done:
				return
			}
		}
	}()
	return dir, nil
}

// ReadFile reads the named file and watches it.
func (d *definitionFS) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(d.fsys, name)
	if err != nil {
		return nil, err
	}
	if err = d.watch(name); err != nil {
		return nil, err
	}
	return data, nil
}

// Close stops watching the files. Pending changes are discarded.
func (d *definitionFS) Close() error {
	d.closed.Do(func() { close(d.done) })
	return d.watcher.Close()
}

func (d *definitionFS) watch(name string) error {
	d.Lock()
	defer d.Unlock()
	if !d.watched[name] {
		err := d.watcher.Add(filepath.Join(d.root, filepath.FromSlash(name)))
		if err != nil {
			return err
		}
		d.watched[name] = true
	}
	return nil
}
