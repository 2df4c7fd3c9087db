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

// Package catalog lists the games Protontricks can operate on.
//
// Protontricks has no machine-readable output, so its listing is scraped.
// The scraping lives behind GameCatalog so a better source can replace it.
package catalog

import (
	"context"
	"errors"

	"github.com/modbridge/modbridge/pkg/errs"
)

// ErrNoNonSteamGames means the listing worked but held no shortcut rows.
var ErrNoNonSteamGames = errors.New("no non-Steam games found")

// ErrGameNotFound means a query matched no listed game.
var ErrGameNotFound = errors.New("game not found")

// Game is one row of the listing. AppID is kept as the decimal string
// Protontricks printed.
type Game struct {
	AppID    string
	Name     string
	NonSteam bool
}

type GameCatalog interface {
	// ListGames returns every game with a Proton prefix, shortcuts included.
	ListGames(ctx context.Context) ([]Game, error)
	// ListNonSteamGames returns only the shortcut rows.
	ListNonSteamGames(ctx context.Context) ([]Game, error)
}

// NonSteamOnly filters games down to shortcut rows, returning
// ErrNoNonSteamGames (as a NotFound) when none remain.
func NonSteamOnly(games []Game) ([]Game, error) {
	var out []Game
	for _, g := range games {
		if g.NonSteam {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, errs.NotFound(
			"non-Steam games",
			"add the program to Steam as a non-Steam game and launch it once",
			ErrNoNonSteamGames,
		)
	}
	return out, nil
}
