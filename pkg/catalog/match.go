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

package catalog

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinFuzzySimilarity is the Jaro-Winkler score a name must reach to match
// a query that found no exact hit.
const MinFuzzySimilarity float32 = 0.85

// foldName lowercases s and strips combining marks, so "Pokémon" and
// "pokemon" compare equal.
func foldName(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// FindGame resolves query against games: an exact AppID first, then a
// case- and accent-insensitive name, then the closest Jaro-Winkler match.
func FindGame(games []Game, query string) (Game, error) {
	query = strings.TrimSpace(query)

	for _, g := range games {
		if g.AppID == query {
			return g, nil
		}
	}
	lq := foldName(query)
	for _, g := range games {
		if foldName(g.Name) == lq {
			return g, nil
		}
	}

	type scored struct {
		game  Game
		score float32
	}
	var matches []scored
	for _, g := range games {
		score := edlib.JaroWinklerSimilarity(lq, foldName(g.Name))
		if score >= MinFuzzySimilarity {
			matches = append(matches, scored{game: g, score: score})
		}
	}
	if len(matches) > 0 {
		sort.SliceStable(matches, func(i, j int) bool {
			return matches[i].score > matches[j].score
		})
		log.Debug().
			Str("query", query).
			Str("match", matches[0].game.Name).
			Float32("similarity", matches[0].score).
			Msg("fuzzy matched game")
		return matches[0].game, nil
	}

	return Game{}, errs.NotFound(
		"game "+query,
		"check the name or AppID against the game list",
		ErrGameNotFound,
	)
}
