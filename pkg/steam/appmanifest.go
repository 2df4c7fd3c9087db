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
	"fmt"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
)

// stateFullyInstalled is the StateFlags bit Steam sets once an app's
// content is complete on disk.
const stateFullyInstalled = 4

// AppInfo contains metadata for a Steam app from its manifest.
type AppInfo struct {
	AppID       string
	Name        string
	InstallDir  string
	InstallPath string
	LibraryRoot string
	SizeOnDisk  uint64
	StateFlags  uint32
}

// FullyInstalled reports whether Steam considers the app's content complete.
func (a AppInfo) FullyInstalled() bool {
	return a.StateFlags&stateFullyInstalled != 0
}

// appState mirrors the AppState block after key normalization.
type appState struct {
	Name       string `mapstructure:"name"`
	InstallDir string `mapstructure:"installdir"`
	SizeOnDisk uint64 `mapstructure:"sizeondisk"`
	StateFlags uint32 `mapstructure:"stateflags"`
}

func decodeAppState(raw map[string]any) (appState, error) {
	var st appState
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &st,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return st, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return st, fmt.Errorf("failed to decode AppState: %w", err)
	}
	return st, nil
}

// ReadAppManifest looks for appmanifest_<appID>.acf in every library root
// and returns the first one that parses.
func (l *Locator) ReadAppManifest(appID string) (AppInfo, bool) {
	if !isDigits(appID) {
		return AppInfo{}, false
	}

	for _, root := range l.libraryRoots() {
		manifestPath := filepath.Join(root, steamAppsDir, "appmanifest_"+appID+".acf")
		if !l.isFile(manifestPath) {
			continue
		}

		m, ok := l.readTextVDF(manifestPath)
		if !ok {
			continue
		}

		raw, ok := m["appstate"].(map[string]any)
		if !ok {
			log.Warn().Str("appID", appID).Msg("AppState not found in manifest")
			continue
		}

		st, err := decodeAppState(raw)
		if err != nil {
			log.Warn().Err(err).Str("path", manifestPath).Msg("skipping unreadable manifest")
			continue
		}
		if st.Name == "" {
			log.Warn().Str("appID", appID).Msg("name not found in manifest")
			continue
		}

		info := AppInfo{
			AppID:       appID,
			Name:        st.Name,
			InstallDir:  st.InstallDir,
			LibraryRoot: root,
			SizeOnDisk:  st.SizeOnDisk,
			StateFlags:  st.StateFlags,
		}
		if st.InstallDir != "" {
			info.InstallPath = filepath.Join(root, steamAppsDir, "common", st.InstallDir)
		}
		return info, true
	}

	return AppInfo{}, false
}
