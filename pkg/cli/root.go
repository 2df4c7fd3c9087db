// ModBridge
// Copyright (c) 2026 The ModBridge Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of ModBridge.
//
// ModBridge is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ModBridge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ModBridge.  If not, see <http://www.gnu.org/licenses/>.

// Package cli is the cobra front-end over pkg/bridge.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/modbridge/modbridge/pkg/bridge"
	"github.com/modbridge/modbridge/pkg/config"
	"github.com/modbridge/modbridge/pkg/helpers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// App holds what the commands share. Zero fields fall back to the XDG
// locations and the production bridge.
type App struct {
	// NewBridge builds the facade once config is loaded.
	NewBridge func(cfg *config.Instance) *bridge.Bridge
	Stderr    io.Writer
	ConfigDir string
	LogDir    string
	Home      string
	// NoSpinner disables spinners, which animate from a goroutine.
	NoSpinner bool

	cfg       *config.Instance
	bridge    *bridge.Bridge
	verbosity int
}

func (a *App) setup(cmd *cobra.Command) error {
	if a.ConfigDir == "" {
		a.ConfigDir = helpers.ConfigDir()
	}
	if a.LogDir == "" {
		a.LogDir = helpers.LogDir()
	}
	if a.Home == "" {
		a.Home = helpers.HomeDir()
	}
	if a.Stderr == nil {
		a.Stderr = os.Stderr
	}

	cfg, err := config.NewConfig(a.ConfigDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	level := helpers.VerbosityLevel(a.verbosity)
	if cfg.DebugLogging() && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	var writers []io.Writer
	if a.verbosity > 0 {
		writers = append(writers, helpers.NewConsoleWriter(a.Stderr))
	}
	if err := helpers.InitLogging(a.LogDir, level, writers...); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	if a.NewBridge != nil {
		a.bridge = a.NewBridge(cfg)
	} else {
		a.bridge = bridge.New(cfg, bridge.Options{Home: a.Home})
	}

	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", cfg.Path()).
		Str("version", config.AppVersion).
		Msg("command started")
	return nil
}

// NewRootCommand assembles the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   config.AppName,
		Short: "Set up mod managers for Steam games running under Proton",
		Long: `modbridge finds your Steam libraries, Proton runtimes and game prefixes,
installs the Windows components mod managers need, and registers tools
as non-Steam shortcuts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return app.setup(cmd)
		},
	}

	root.PersistentFlags().CountVarP(
		&app.verbosity, "verbose", "v", "increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)",
	)

	root.AddGroup(
		&cobra.Group{ID: "steam", Title: "Steam Commands:"},
		&cobra.Group{ID: "setup", Title: "Setup Commands:"},
	)

	root.AddCommand(
		newLibrariesCommand(app),
		newProtonsCommand(app),
		newGamesCommand(app),
		newPrefixCommand(app),
		newSelectCommand(app),
		newDepsCommand(app),
		newShortcutCommand(app),
		newExtractCommand(app),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand(&App{}).ExecuteContext(ctx)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, config.AppVersion)
		},
	}
}
