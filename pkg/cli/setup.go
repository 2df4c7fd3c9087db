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

package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/modbridge/modbridge/pkg/bridge"
	"github.com/modbridge/modbridge/pkg/deps"
	"github.com/spf13/cobra"
)

func newDepsCommand(app *App) *cobra.Command {
	var (
		list       bool
		proton     string
		components []string
	)
	cmd := &cobra.Command{
		Use:   "deps <query>",
		Short: "Install Windows components into a game's prefix",
		Long: `Install the components a mod manager needs into the Proton prefix of the
game matching <query>. Without --component the game's curated list is used.

With --list, print the component list for an AppID instead, or the AppIDs
with a curated list when no AppID is given.`,
		GroupID: "setup",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				if len(args) == 0 {
					for _, id := range app.bridge.CuratedAppIDs() {
						_, _ = fmt.Fprintln(out, id)
					}
					return nil
				}
				for _, c := range app.bridge.Components(args[0]) {
					_, _ = fmt.Fprintln(out, c)
				}
				return nil
			}
			if len(args) == 0 {
				return errors.New("a game query is required")
			}

			sel, err := app.bridge.Select(cmd.Context(), args[0], proton)
			if err != nil {
				return err
			}

			comps := make([]deps.Component, 0, len(components))
			for _, c := range components {
				comps = append(comps, deps.Component(c))
			}

			var report bridge.DependencyReport
			err = app.spin(cmd.ErrOrStderr(), "Installing dependencies for "+sel.Game.Name, func() error {
				var err error
				report, err = app.bridge.InstallDependencies(cmd.Context(), &sel, comps)
				return err
			})
			if err != nil {
				return err
			}
			if report.Warning != nil {
				warning(out, "protontricks reported errors, some components may already be installed")
			}
			if !report.Result.TweakApplied {
				warning(out, "could not enable hidden files in Wine file dialogs")
			}
			names := make([]string, 0, len(report.Result.Components))
			for _, c := range report.Result.Components {
				names = append(names, string(c))
			}
			success(out, "installed %s into %s", strings.Join(names, ", "), sel.CompatData)
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print component lists instead of installing")
	cmd.Flags().StringVar(&proton, "proton", "", "Proton runtime name to use")
	cmd.Flags().StringSliceVarP(&components, "component", "c", nil, "component to install (repeatable)")
	return cmd
}

func newShortcutCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "shortcut",
		Short:   "Manage non-Steam shortcuts",
		GroupID: "setup",
	}
	cmd.AddCommand(newShortcutAddCommand(app), newShortcutListCommand(app))
	return cmd
}

func newShortcutAddCommand(app *App) *cobra.Command {
	var req bridge.ShortcutRequest
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a non-Steam shortcut for every Steam user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			report, err := app.bridge.AddShortcut(cmd.Context(), req)
			if err != nil {
				return err
			}
			for _, u := range report.Users {
				if u.Existed {
					_, _ = fmt.Fprintf(out, "user %s: already present\n", u.UserID)
				} else {
					_, _ = fmt.Fprintf(out, "user %s: added as entry %s\n", u.UserID, u.Index)
				}
			}
			success(out, "shortcut %q has AppID %d", req.Name, report.AppID)
			if report.RestartSteam {
				if report.SteamRunning {
					warning(out, "Steam is running; restart it to see the shortcut")
				} else {
					_, _ = fmt.Fprintln(out, "start Steam to see the shortcut")
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "shortcut name (required)")
	cmd.Flags().StringVar(&req.Exe, "exe", "", "path to the executable (required)")
	cmd.Flags().StringVar(&req.StartDir, "start-dir", "", "working directory, defaults to the executable's")
	cmd.Flags().StringVar(&req.Icon, "icon", "", "icon path")
	cmd.Flags().StringVar(&req.LaunchOptions, "launch-options", "", "Steam launch options")
	cmd.Flags().StringSliceVar(&req.Tags, "tag", nil, "collection tag (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("exe")
	return cmd
}

func newShortcutListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every user's non-Steam shortcuts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := app.bridge.Shortcuts()
			if err != nil {
				return err
			}
			users := make([]string, 0, len(all))
			for id := range all {
				users = append(users, id)
			}
			sort.Strings(users)

			var rows [][]string
			for _, id := range users {
				for _, s := range all[id] {
					rows = append(rows, []string{id, fmt.Sprint(s.AppID), s.AppName, s.Exe})
				}
			}
			if len(rows) == 0 {
				warning(cmd.OutOrStdout(), "no shortcuts found")
				return nil
			}
			return renderTable(cmd.OutOrStdout(), []string{"User", "AppID", "Name", "Exe"}, rows)
		},
	}
}

func newExtractCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "extract <archive> <dest>",
		Short:   "Extract a downloaded archive without merging into existing files",
		GroupID: "setup",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dest string
			err := app.spin(cmd.ErrOrStderr(), "Extracting "+args[0], func() error {
				var err error
				dest, err = app.bridge.Extract(cmd.Context(), args[0], args[1])
				return err
			})
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "extracted to %s", dest)
			return nil
		},
	}
}
