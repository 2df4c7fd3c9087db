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
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/rs/zerolog/log"
)

const (
	blockStart     = "Found the following games:"
	blockEnd       = "To run Protontricks"
	nonSteamPrefix = "Non-Steam shortcut: "
)

// rowRe splits "Name (appid)". The lazy name keeps inner parentheses such
// as "Foo (GOTY) (441309)" with the name.
var rowRe = regexp.MustCompile(`^(.*?)\s*\((\d+)\)$`)

// excludedMarkers drop runtimes and tools that Protontricks lists
// alongside games.
var excludedMarkers = []string{
	"SteamVR",
	"Proton",
	"Steam Linux Runtime",
	"Steamworks",
}

// ParseGameList reads a protontricks -l transcript. Rows count when they
// sit between the "Found the following games:" header and the "To run
// Protontricks" footer, or when they are standalone "Non-Steam shortcut:"
// lines. Output with neither shape is a ParseFailure.
func ParseGameList(r io.Reader) ([]Game, error) {
	var (
		raw        strings.Builder
		games      []Game
		inBlock    bool
		recognised bool
	)
	seen := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		raw.WriteString(line)
		raw.WriteByte('\n')

		trimmed := strings.TrimSpace(line)
		switch {
		case strings.Contains(trimmed, blockStart):
			inBlock = true
			recognised = true
			continue
		case strings.HasPrefix(trimmed, blockEnd):
			inBlock = false
			continue
		case strings.HasPrefix(trimmed, nonSteamPrefix):
			recognised = true
		case !inBlock || trimmed == "":
			continue
		}

		g, ok := parseRow(trimmed)
		if !ok {
			log.Debug().Str("line", trimmed).Msg("skipping unrecognised game row")
			continue
		}
		if _, dup := seen[g.AppID]; dup {
			continue
		}
		seen[g.AppID] = struct{}{}
		games = append(games, g)
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.ParseFailure("protontricks output", raw.String(), err)
	}

	if !recognised {
		return nil, errs.ParseFailure(
			"protontricks output",
			raw.String(),
			fmt.Errorf("no %q header or non-Steam shortcut rows", blockStart),
		)
	}

	log.Debug().Int("count", len(games)).Msg("parsed protontricks game list")
	return games, nil
}

func parseRow(line string) (Game, bool) {
	for _, marker := range excludedMarkers {
		if strings.Contains(line, marker) {
			return Game{}, false
		}
	}

	nonSteam := false
	if rest, ok := strings.CutPrefix(line, nonSteamPrefix); ok {
		line = rest
		nonSteam = true
	}

	m := rowRe.FindStringSubmatch(line)
	if m == nil {
		return Game{}, false
	}
	name := strings.TrimSpace(m[1])
	if name == "" {
		return Game{}, false
	}
	id, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Game{}, false
	}

	return Game{
		AppID:    strconv.FormatUint(id, 10),
		Name:     name,
		NonSteam: nonSteam,
	}, true
}
