// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/open2b/menus"
	"github.com/open2b/menus/files"
	"github.com/open2b/menus/markdown"
	"github.com/open2b/menus/session"

	"github.com/spf13/cobra"
)

// pageExtensions are the extensions tried for the paths without extension.
var pageExtensions = []string{".html", ".md"}

type renderFlags struct {
	file       string
	path       string
	privileges []string
	apps       []string
	db         string
	root       string
	markdown   bool
	options    []string
}

func newRenderCmd() *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render -f FILE",
		Short: "Render a menu definition",
		Long: `Render builds the menu described by a definition file and writes the
resulting markup to the standard output.

The privileges and the applications of the actor are given with the
--privileges and --apps flags. If the actor has no privilege for the
current path, "access denied" is written to the standard error.

Example:
  menus render -f main.yaml --path shop/config --privileges admin -o materialize=true`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "definition file")
	fl.StringVar(&f.path, "path", "", "current path")
	fl.StringSliceVar(&f.privileges, "privileges", nil, "privileges of the actor")
	fl.StringSliceVar(&f.apps, "apps", nil, "applications enabled for the actor")
	fl.StringVar(&f.db, "db", "", "SQLite database used to check the tables")
	fl.StringVar(&f.root, "root", "", "directory used to check the paths")
	fl.BoolVar(&f.markdown, "markdown", false, "convert the labels from Markdown")
	fl.StringArrayVarP(&f.options, "option", "o", nil, "override an option, in the form key=value")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runRender(cmd *cobra.Command, f *renderFlags) error {
	def, err := loadDefinition(f.file)
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(f.options)
	if err != nil {
		return err
	}
	actor := session.NewActor(f.privileges, f.apps)
	opts := &menus.Options{
		Context:      cmd.Context(),
		CurrentPath:  f.path,
		Privileges:   actor,
		Applications: actor,
		Logger:       logger,
	}
	if f.db != "" {
		tables, closeDB, err := openTables(f.db)
		if err != nil {
			return err
		}
		defer closeDB()
		opts.Tables = tables
	}
	if f.root != "" {
		opts.Paths = files.New(os.DirFS(f.root), logger, pageExtensions...)
	}
	if f.markdown {
		opts.LabelConverter = markdown.New().Convert
	}
	m := menus.New(opts)
	if err := def.Apply(m); err != nil {
		return fmt.Errorf("%s: %w", f.file, err)
	}
	html, err := m.Render(overrides)
	if err != nil {
		return err
	}
	if actor.Redirected() {
		fmt.Fprintln(cmd.ErrOrStderr(), "access denied")
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
	return err
}
