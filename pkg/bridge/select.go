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

package bridge

import (
	"context"
	"fmt"

	"github.com/modbridge/modbridge/pkg/catalog"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/steam"
	"github.com/rs/zerolog/log"
)

// ProtonSource records which setting chose the runtime.
type ProtonSource string

const (
	ProtonFromHint      ProtonSource = "hint"
	ProtonFromSteam     ProtonSource = "steam"
	ProtonFromConfig    ProtonSource = "config"
	ProtonFromDiscovery ProtonSource = "discovery"
)

// SelectionContext is everything later operations need to know about the
// chosen game. It is passed explicitly; nothing is remembered between
// calls.
type SelectionContext struct {
	Game      catalog.Game
	SteamRoot string
	// CompatData is the prefix directory. Empty when HasPrefix is false.
	CompatData   string
	InstallDir   string
	Proton       steam.ProtonInstallation
	ProtonSource ProtonSource
	HasPrefix    bool
}

// Select resolves query against the game list and gathers the prefix,
// install directory and Proton runtime for the match.
//
// An explicit protonHint must resolve. Without one the runtime Steam maps
// to the game is tried, then the configured preference, then the first
// installed runtime.
func (b *Bridge) Select(ctx context.Context, query, protonHint string) (SelectionContext, error) {
	root, err := b.locator.FindSteamRoot()
	if err != nil {
		return SelectionContext{}, err
	}

	games, err := b.ListGames(ctx)
	if err != nil {
		return SelectionContext{}, err
	}
	game, err := catalog.FindGame(games, query)
	if err != nil {
		return SelectionContext{}, err
	}

	sel := SelectionContext{Game: game, SteamRoot: root}

	if cd, ok := b.locator.FindCompatData(game.AppID); ok {
		sel.CompatData = cd.Path
		sel.HasPrefix = true
	}
	if info, ok := b.locator.ReadAppManifest(game.AppID); ok {
		sel.InstallDir = info.InstallPath
	}

	sel.Proton, sel.ProtonSource, err = b.resolveProton(game.AppID, protonHint)
	if err != nil {
		return SelectionContext{}, err
	}

	log.Info().
		Str("appID", game.AppID).
		Str("name", game.Name).
		Bool("hasPrefix", sel.HasPrefix).
		Str("proton", sel.Proton.Name).
		Str("protonSource", string(sel.ProtonSource)).
		Msg("selected game")

	return sel, nil
}

func (b *Bridge) resolveProton(appID, hint string) (steam.ProtonInstallation, ProtonSource, error) {
	if hint != "" {
		p, err := b.locator.ResolveProton(hint)
		if err != nil {
			return steam.ProtonInstallation{}, "", fmt.Errorf("requested Proton runtime: %w", err)
		}
		return p, ProtonFromHint, nil
	}

	type candidate struct {
		source ProtonSource
		hint   string
	}
	var candidates []candidate
	if name, ok := b.locator.ConfiguredProton(appID); ok {
		candidates = append(candidates, candidate{ProtonFromSteam, name})
	}
	if pref := b.cfg.PreferredProton(); pref != "" {
		candidates = append(candidates, candidate{ProtonFromConfig, pref})
	}

	for _, c := range candidates {
		resolve := b.locator.ResolveProton
		if c.source == ProtonFromConfig {
			resolve = b.locator.MatchProton
		}
		p, err := resolve(c.hint)
		if err == nil {
			return p, c.source, nil
		}
		log.Warn().
			Err(err).
			Str("appID", appID).
			Str("hint", c.hint).
			Str("source", string(c.source)).
			Msg("Proton runtime not installed, trying next")
	}

	p, err := b.locator.ResolveProton("")
	if err != nil {
		return steam.ProtonInstallation{}, "", err
	}
	return p, ProtonFromDiscovery, nil
}

// requirePrefix fails with a NotFound naming the fix when the game has
// never been launched through Proton.
func requirePrefix(sel *SelectionContext) error {
	if sel.HasPrefix {
		return nil
	}
	return errs.NotFound(
		"compatdata for "+sel.Game.AppID,
		"launch the game once through Steam first",
		nil,
	)
}
