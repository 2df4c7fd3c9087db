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

import "path/filepath"

// CompatData is the Proton prefix directory Steam created for a game.
type CompatData struct {
	AppID string
	Path  string
}

// FindCompatData returns the first steamapps/compatdata/<appID> directory
// across the library roots. A game that was never launched has none.
func (l *Locator) FindCompatData(appID string) (CompatData, bool) {
	if !isDigits(appID) {
		return CompatData{}, false
	}
	for _, root := range l.libraryRoots() {
		path := filepath.Join(root, steamAppsDir, "compatdata", appID)
		if l.isDir(path) {
			return CompatData{AppID: appID, Path: path}, true
		}
	}
	return CompatData{}, false
}
