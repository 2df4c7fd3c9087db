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

package steam

import (
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// ConfiguredProton returns the compatibility tool the user picked for
// appID in Steam's per-game properties, as recorded in config/config.vdf.
func (l *Locator) ConfiguredProton(appID string) (string, bool) {
	root, err := l.FindSteamRoot()
	if err != nil {
		return "", false
	}

	m, ok := l.readTextVDF(filepath.Join(root, "config", "config.vdf"))
	if !ok {
		return "", false
	}

	v, ok := lookupPath(m,
		"InstallConfigStore", "Software", "Valve", "Steam",
		"CompatToolMapping", appID, "name",
	)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return "", false
	}

	log.Debug().Str("appID", appID).Str("tool", name).Msg("found configured compatibility tool")
	return name, true
}
