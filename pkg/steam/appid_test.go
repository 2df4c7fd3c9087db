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
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGenerateShortcutAppID_Known(t *testing.T) {
	t.Parallel()

	a := GenerateShortcutAppID("Mod Organizer 2", "/home/u/MO2/ModOrganizer.exe")
	b := GenerateShortcutAppID("Mod Organizer 2", "/home/u/MO2/ModOrganizer.exe")
	c := GenerateShortcutAppID("Mod Organizer 2", "/home/u/MO2/other.exe")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotZero(t, a&0x80000000)
}

func TestGenerateShortcutAppID_SeparatorMatters(t *testing.T) {
	t.Parallel()

	assert.NotEqual(t,
		GenerateShortcutAppID("ab", "c"),
		GenerateShortcutAppID("a", "bc"),
	)
}

// TestPropertyShortcutAppIDPure verifies the ID is a stable function of its
// inputs and always carries the shortcut bit.
func TestPropertyShortcutAppIDPure(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.String().Draw(t, "name")
		exe := rapid.String().Draw(t, "exe")

		first := GenerateShortcutAppID(name, exe)
		second := GenerateShortcutAppID(name, exe)
		if first != second {
			t.Fatalf("appid not stable: %d != %d", first, second)
		}
		if first&0x80000000 == 0 {
			t.Fatalf("appid %#x lacks the high bit", first)
		}
	})
}

func TestShortcutGameID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0x80000001_02000000), ShortcutGameID(0x80000001))
}

func TestIsSteamProcessName(t *testing.T) {
	t.Parallel()

	assert.True(t, isSteamProcessName("steam"))
	assert.True(t, isSteamProcessName("steamwebhelper"))
	assert.True(t, isSteamProcessName("Steam"))
	assert.False(t, isSteamProcessName("steam-runtime-launcher"))
	assert.False(t, isSteamProcessName("protontricks"))
}
