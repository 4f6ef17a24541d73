// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/open2b/menus"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var names []string
	cmd := &cobra.Command{
		Use:   "check -f FILE...",
		Short: "Check menu definitions",
		Long: `Check builds the menus described by the definition files, admitting every
node whose condition is true, and reports the number of nodes and the depth
of each menu.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, names)
		},
	}
	cmd.Flags().StringArrayVarP(&names, "file", "f", nil, "definition file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// allow is a collaborator that allows everything.
var allow = func(context.Context, string) bool { return true }

func runCheck(cmd *cobra.Command, names []string) error {
	var failed bool
	for _, name := range names {
		nodes, depth, err := check(cmd.Context(), name)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			failed = true
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d nodes, depth %d\n", name, nodes, depth)
	}
	if failed {
		return fmt.Errorf("check failed")
	}
	return nil
}

// check builds the menu of the definition file name with collaborators that
// allow everything and returns the number of nodes and the depth.
func check(ctx context.Context, name string) (nodes, depth int, err error) {
	def, err := loadDefinition(name)
	if err != nil {
		return 0, 0, err
	}
	m := menus.New(&menus.Options{
		Context:      ctx,
		Privileges:   menus.PrivilegesFunc(func(context.Context, string, bool) bool { return true }),
		Tables:       menus.TablesFunc(allow),
		Paths:        menus.PathsFunc(allow),
		Applications: menus.ApplicationsFunc(allow),
		Logger:       logger,
	})
	if err := def.Apply(m); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	if _, err := m.Render(nil); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", name, err)
	}
	for _, n := range m.Nodes() {
		depth = max(depth, n.Level)
	}
	return len(m.Nodes()), depth, nil
}
