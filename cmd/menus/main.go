// Copyright (c) 2026 Open2b Software Snc. All rights reserved.
// https://www.open2b.com

// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command menus renders, checks and serves menus described by YAML
// definition files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "menus",
	Short: "Render, check and serve menu definitions",
	Long: `menus builds menus from YAML definition files and renders them as HTML.

A definition file has the options of the menu and its items:

  options:
    header: "<ul>"
    footer: "</ul>"
    node: '<li><a href="{:=href}">{:=label}</a>{:=nested}</li>'
  items:
    - {level: 1, label: Home, path: /}
    - {level: 1, label: Shop, path: shop}
    - {level: 2, label: Config, path: shop/config, privilege: admin}`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log the admission decisions")
	rootCmd.AddCommand(newRenderCmd(), newCheckCmd(), newServeCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
