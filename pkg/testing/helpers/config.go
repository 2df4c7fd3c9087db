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
	"github.com/modbridge/modbridge/pkg/config"
)

// NewTestConfig writes a default config into configDir and loads it.
// mutate, when set, edits the defaults first.
func NewTestConfig(configDir string, mutate func(*config.Values)) (*config.Instance, error) {
	defaults := config.BaseDefaults
	// fresh slices so mutate cannot alias BaseDefaults
	defaults.Tools.Protontricks = []string{"protontricks"}
	defaults.Tools.Extractor = []string{"7z"}
	if mutate != nil {
		mutate(&defaults)
	}
	//nolint:wrapcheck // test helper
	return config.NewConfig(configDir, defaults)
}
