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

	"github.com/adrg/xdg"
	"github.com/modbridge/modbridge/pkg/config"
)

// ConfigDir is where config.toml lives unless overridden by the
// environment.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

// LogDir holds the rotating log file.
func LogDir() string {
	return filepath.Join(xdg.StateHome, config.AppName)
}

// HomeDir is the user's home directory as resolved by xdg.
func HomeDir() string {
	return xdg.Home
}
