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
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// steamProcessNames are the executables of a running Steam client.
var steamProcessNames = []string{"steam", "steamwebhelper"}

// IsSteamRunning reports whether a Steam client process exists. Steam
// rewrites shortcuts.vdf on exit, so edits made while it runs can be lost.
func IsSteamRunning(ctx context.Context) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list processes: %w", err)
	}

	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if isSteamProcessName(name) {
			return true, nil
		}
	}
	return false, nil
}

func isSteamProcessName(name string) bool {
	for _, n := range steamProcessNames {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}
