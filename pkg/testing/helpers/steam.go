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

package helpers

import (
	"path/filepath"
)

// SteamFixture lays out a fake Steam installation on an FSHelper.
type SteamFixture struct {
	FS   *FSHelper
	Root string
	Home string
}

// NewSteamFixture creates <home>/.local/share/Steam with an empty steamapps
// directory, the layout of a default native install.
func NewSteamFixture(home string) (*SteamFixture, error) {
	f := &SteamFixture{
		FS:   NewMemoryFS(),
		Home: home,
		Root: filepath.Join(home, ".local", "share", "Steam"),
	}
	if err := f.FS.Mkdir(filepath.Join(f.Root, "steamapps")); err != nil {
		return nil, err
	}
	return f, nil
}

// WriteLibraryFolders writes steamapps/libraryfolders.vdf verbatim.
func (f *SteamFixture) WriteLibraryFolders(content string) error {
	return f.FS.WriteFile(filepath.Join(f.Root, "steamapps", "libraryfolders.vdf"), []byte(content))
}

// AddLibrary creates an additional library root with a steamapps directory.
func (f *SteamFixture) AddLibrary(root string) error {
	return f.FS.Mkdir(filepath.Join(root, "steamapps"))
}

// AddCompatTool installs a fake runtime at <root>/compatibilitytools.d/<name>/proton.
func (f *SteamFixture) AddCompatTool(root, name string) (string, error) {
	path := filepath.Join(root, "compatibilitytools.d", name, "proton")
	return path, f.FS.WriteFile(path, []byte("#!/usr/bin/env python3\n"))
}

// AddOfficialProton installs a fake runtime at <root>/steamapps/common/<name>/proton.
func (f *SteamFixture) AddOfficialProton(root, name string) (string, error) {
	path := filepath.Join(root, "steamapps", "common", name, "proton")
	return path, f.FS.WriteFile(path, []byte("#!/usr/bin/env python3\n"))
}

// AddCompatData creates <root>/steamapps/compatdata/<appID>/pfx.
func (f *SteamFixture) AddCompatData(root, appID string) (string, error) {
	path := filepath.Join(root, "steamapps", "compatdata", appID)
	return path, f.FS.Mkdir(filepath.Join(path, "pfx"))
}

// AddUser creates userdata/<id>/config.
func (f *SteamFixture) AddUser(id string) (string, error) {
	path := filepath.Join(f.Root, "userdata", id)
	return path, f.FS.Mkdir(filepath.Join(path, "config"))
}

// ShortcutsPath returns userdata/<id>/config/shortcuts.vdf.
func (f *SteamFixture) ShortcutsPath(id string) string {
	return filepath.Join(f.Root, "userdata", id, "config", "shortcuts.vdf")
}

// WriteAppManifest writes a minimal appmanifest_<appID>.acf into root.
func (f *SteamFixture) WriteAppManifest(root, appID, name, installDir string) error {
	content := "\"AppState\"\n{\n" +
		"\t\"appid\"\t\t\"" + appID + "\"\n" +
		"\t\"name\"\t\t\"" + name + "\"\n" +
		"\t\"StateFlags\"\t\t\"4\"\n" +
		"\t\"installdir\"\t\t\"" + installDir + "\"\n" +
		"\t\"SizeOnDisk\"\t\t\"13421772800\"\n" +
		"}\n"
	return f.FS.WriteFile(filepath.Join(root, "steamapps", "appmanifest_"+appID+".acf"), []byte(content))
}
