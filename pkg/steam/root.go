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

	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/rs/zerolog/log"
)

// CandidateRoots returns the directories probed for a Steam installation,
// in order. The configured override, when set, comes first.
func (l *Locator) CandidateRoots() []string {
	var paths []string
	if l.override != "" {
		paths = append(paths, l.override)
	}
	paths = append(paths,
		filepath.Join(l.home, ".local", "share", "Steam"),
		filepath.Join(l.home, ".steam", "steam"),
		filepath.Join(l.home, ".steam", "debian-installation"),
	)
	if l.checkFlatpak {
		paths = append(paths, filepath.Join(
			l.home, ".var", "app", FlatpakSteamID, ".local", "share", "Steam",
		))
	}
	return paths
}

// FindSteamRoot returns the first candidate directory that contains a
// steamapps folder.
func (l *Locator) FindSteamRoot() (string, error) {
	for i, path := range l.CandidateRoots() {
		if l.isDir(filepath.Join(path, steamAppsDir)) {
			log.Debug().Str("path", path).Msg("found Steam installation")
			return path, nil
		}
		if i == 0 && l.override != "" {
			log.Warn().Str("path", path).Msg("configured Steam root has no steamapps, ignoring")
		}
	}

	return "", errs.NotFound(
		"Steam installation",
		"install Steam and launch it once",
		nil,
	)
}
