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
	"fmt"
	"strconv"

	"github.com/gocarina/gocsv"
	"github.com/modbridge/modbridge/pkg/catalog"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/spf13/cobra"
)

func newLibrariesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "libraries",
		Short:   "List Steam library folders",
		GroupID: "steam",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			libs, err := app.bridge.LibraryRoots()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(libs))
			for i, lib := range libs {
				rows = append(rows, []string{strconv.Itoa(i), lib})
			}
			return renderTable(cmd.OutOrStdout(), []string{"#", "Path"}, rows)
		},
	}
}

func newProtonsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "protons",
		Short:   "List installed Proton runtimes",
		GroupID: "steam",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			installs := app.bridge.ProtonVersions()
			if len(installs) == 0 {
				warning(cmd.OutOrStdout(), "no Proton runtimes found")
				return nil
			}
			rows := make([][]string, 0, len(installs))
			for _, p := range installs {
				rows = append(rows, []string{p.Name, p.ExecutablePath})
			}
			return renderTable(cmd.OutOrStdout(), []string{"Name", "Executable"}, rows)
		},
	}
}

// gameRecord is one row of games --csv.
type gameRecord struct {
	AppID    string `csv:"appid"`
	Name     string `csv:"name"`
	NonSteam bool   `csv:"non_steam"`
}

func newGamesCommand(app *App) *cobra.Command {
	var nonSteam, asCSV bool
	cmd := &cobra.Command{
		Use:     "games",
		Short:   "List games that have a Proton prefix",
		GroupID: "steam",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var games []catalog.Game
			err := app.spin(cmd.ErrOrStderr(), "Asking protontricks for games", func() error {
				var err error
				if nonSteam {
					games, err = app.bridge.ListNonSteamGames(cmd.Context())
				} else {
					games, err = app.bridge.ListGames(cmd.Context())
				}
				return err
			})
			if err != nil {
				return err
			}
			if asCSV {
				records := make([]*gameRecord, 0, len(games))
				for _, g := range games {
					records = append(records, &gameRecord{AppID: g.AppID, Name: g.Name, NonSteam: g.NonSteam})
				}
				if err := gocsv.Marshal(records, cmd.OutOrStdout()); err != nil {
					return fmt.Errorf("failed to write csv: %w", err)
				}
				return nil
			}
			if len(games) == 0 {
				warning(cmd.OutOrStdout(), "no games found; launch a game through Steam once first")
				return nil
			}
			return renderTable(cmd.OutOrStdout(), []string{"AppID", "Name", "Type"}, gameRows(games))
		},
	}
	cmd.Flags().BoolVar(&nonSteam, "non-steam", false, "only list non-Steam shortcuts")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write the list as CSV")
	return cmd
}

func gameRows(games []catalog.Game) [][]string {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		kind := "Steam"
		if g.NonSteam {
			kind = "Non-Steam"
		}
		rows = append(rows, []string{g.AppID, g.Name, kind})
	}
	return rows
}

func newPrefixCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "prefix <appid>",
		Short:   "Print the compatdata prefix of a game",
		GroupID: "steam",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cd, ok := app.bridge.Locator().FindCompatData(args[0])
			if !ok {
				return errs.NotFound("compatdata for "+args[0], "launch the game once through Steam first", nil)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cd.Path)
			return nil
		},
	}
}

func newSelectCommand(app *App) *cobra.Command {
	var proton string
	cmd := &cobra.Command{
		Use:     "select <query>",
		Short:   "Resolve a game's prefix, install directory and Proton runtime",
		GroupID: "steam",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := app.bridge.Select(cmd.Context(), args[0], proton)
			if err != nil {
				return err
			}
			prefix := sel.CompatData
			if !sel.HasPrefix {
				prefix = "(none, launch the game once through Steam)"
			}
			return renderTable(cmd.OutOrStdout(), []string{"Field", "Value"}, [][]string{
				{"AppID", sel.Game.AppID},
				{"Name", sel.Game.Name},
				{"Steam root", sel.SteamRoot},
				{"Prefix", prefix},
				{"Install dir", sel.InstallDir},
				{"Proton", sel.Proton.Name + " (" + string(sel.ProtonSource) + ")"},
				{"Proton executable", sel.Proton.ExecutablePath},
			})
		},
	}
	cmd.Flags().StringVar(&proton, "proton", "", "Proton runtime name to use")
	return cmd
}
