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
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/modbridge/modbridge/internal/vdfbinary"
	"github.com/modbridge/modbridge/pkg/errs"
	testhelpers "github.com/modbridge/modbridge/pkg/testing/helpers"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

func mo2Entry() ShortcutEntry {
	return ShortcutEntry{
		AppName:            "Mod Organizer 2",
		Exe:                "/home/u/MO2/ModOrganizer.exe",
		StartDir:           "/home/u/MO2",
		AllowDesktopConfig: true,
		AllowOverlay:       true,
	}
}

func readShortcuts(t *testing.T, fs afero.Fs, path string) []vdfbinary.Shortcut {
	t.Helper()
	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	shortcuts, err := vdfbinary.ParseShortcuts(bytes.NewReader(data))
	require.NoError(t, err)
	return shortcuts
}

func TestShortcutStore_AddThenRepeatIsNoOp(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.AddUser("12345678")
	require.NoError(t, err)

	store := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClockAt(fixedNow))

	res, err := store.Add(f.Root, mo2Entry())
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "0", res.Users[0].Index)
	assert.False(t, res.Users[0].Existed)
	assert.True(t, res.RestartSteam)
	assert.Equal(t, GenerateShortcutAppID("Mod Organizer 2", "/home/u/MO2/ModOrganizer.exe"), res.AppID)

	shortcuts := readShortcuts(t, f.FS.Fs, f.ShortcutsPath("12345678"))
	require.Len(t, shortcuts, 1)
	assert.Equal(t, "Mod Organizer 2", shortcuts[0].AppName)
	assert.Equal(t, `"/home/u/MO2/ModOrganizer.exe"`, shortcuts[0].Exe)
	assert.Equal(t, `"/home/u/MO2"`, shortcuts[0].StartDir)
	assert.Equal(t, res.AppID, shortcuts[0].AppID)
	assert.Equal(t, uint32(fixedNow.Unix()), shortcuts[0].LastPlayTime)
	assert.True(t, shortcuts[0].AllowOverlay)

	again, err := store.Add(f.Root, mo2Entry())
	require.NoError(t, err)
	require.Len(t, again.Users, 1)
	assert.True(t, again.Users[0].Existed)
	assert.Equal(t, "0", again.Users[0].Index)
	assert.False(t, again.RestartSteam)

	assert.Len(t, readShortcuts(t, f.FS.Fs, f.ShortcutsPath("12345678")), 1)
}

func TestShortcutStore_AlreadyQuotedNotDoubleWrapped(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.AddUser("1")
	require.NoError(t, err)

	entry := mo2Entry()
	entry.Exe = `"/home/u/MO2/ModOrganizer.exe"`
	entry.StartDir = `"/home/u/MO2"`

	res, err := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClockAt(fixedNow)).Add(f.Root, entry)
	require.NoError(t, err)
	assert.Equal(t, GenerateShortcutAppID("Mod Organizer 2", "/home/u/MO2/ModOrganizer.exe"), res.AppID)

	shortcuts := readShortcuts(t, f.FS.Fs, f.ShortcutsPath("1"))
	require.Len(t, shortcuts, 1)
	assert.Equal(t, `"/home/u/MO2/ModOrganizer.exe"`, shortcuts[0].Exe)
	assert.Equal(t, `"/home/u/MO2"`, shortcuts[0].StartDir)
}

func TestShortcutStore_EveryNumericUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, id := range []string{"111", "222", "anonymous"} {
		_, err := f.AddUser(id)
		require.NoError(t, err)
	}
	require.NoError(t, f.FS.WriteFile(filepath.Join(f.Root, "userdata", "333"), []byte("not a dir")))

	res, err := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClockAt(fixedNow)).Add(f.Root, mo2Entry())
	require.NoError(t, err)

	require.Len(t, res.Users, 2)
	assert.Equal(t, "111", res.Users[0].UserID)
	assert.Equal(t, "222", res.Users[1].UserID)
	assert.False(t, f.FS.FileExists(f.ShortcutsPath("anonymous")))
}

func TestShortcutStore_PreservesForeignEntries(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.AddUser("1")
	require.NoError(t, err)

	existing := vdfbinary.NewShortcutsDocument()
	vdfbinary.AppendShortcut(existing, &vdfbinary.Shortcut{
		AppID:    0x81234567,
		AppName:  "Heroic",
		Exe:      `"/usr/bin/heroic"`,
		StartDir: `"/usr/bin"`,
	})
	foreign, ok := existing.GetMap("shortcuts")
	require.True(t, ok)
	first, ok := foreign.GetMap("0")
	require.True(t, ok)
	first.Set("DevkitGameID", vdfbinary.String(""))
	first.Set("FlatpakAppID", vdfbinary.String("com.heroicgameslauncher.hgl"))
	first.Set("sortas", vdfbinary.Uint64(42))
	data, err := vdfbinary.MarshalBytes(existing)
	require.NoError(t, err)
	require.NoError(t, f.FS.WriteFile(f.ShortcutsPath("1"), data))

	res, err := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClockAt(fixedNow)).Add(f.Root, mo2Entry())
	require.NoError(t, err)
	assert.Equal(t, "1", res.Users[0].Index)

	written, err := f.FS.ReadFile(f.ShortcutsPath("1"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(written, data[:len(data)-2]),
		"existing entry bytes must be untouched")

	shortcuts := readShortcuts(t, f.FS.Fs, f.ShortcutsPath("1"))
	require.Len(t, shortcuts, 2)
	assert.Equal(t, "Heroic", shortcuts[0].AppName)
	assert.Equal(t, "Mod Organizer 2", shortcuts[1].AppName)
}

func TestShortcutStore_CorruptFileStartsFresh(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.AddUser("1")
	require.NoError(t, err)
	require.NoError(t, f.FS.WriteFile(f.ShortcutsPath("1"), []byte("\x00shortcuts\x00\x00")))

	res, err := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClockAt(fixedNow)).Add(f.Root, mo2Entry())
	require.NoError(t, err)
	assert.Equal(t, "0", res.Users[0].Index)
	assert.Len(t, readShortcuts(t, f.FS.Fs, f.ShortcutsPath("1")), 1)
}

func TestShortcutStore_NoUsers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		setup func(t *testing.T, f *testhelpers.SteamFixture)
		name  string
	}{
		{name: "no userdata", setup: func(*testing.T, *testhelpers.SteamFixture) {}},
		{
			name: "only non numeric",
			setup: func(t *testing.T, f *testhelpers.SteamFixture) {
				t.Helper()
				_, err := f.AddUser("ac")
				require.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			tt.setup(t, f)

			_, err := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClock()).Add(f.Root, mo2Entry())
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrNotFound)
			assert.Contains(t, err.Error(), "log in to Steam at least once")
		})
	}
}

func TestShortcutStore_SkipsFailingUser(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	h := testhelpers.NewOSFS()
	// a directory where the file should be cannot be read or replaced
	require.NoError(t, h.CreateDirectoryStructure(map[string]any{
		filepath.Join(root, "userdata"): map[string]any{
			"1": map[string]any{"config": nil},
			"2": map[string]any{"config": map[string]any{"shortcuts.vdf": nil}},
		},
	}))

	store := NewShortcutStore(h.Fs, clockwork.NewFakeClockAt(fixedNow))
	res, err := store.Add(root, mo2Entry())
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "1", res.Users[0].UserID)

	entries, err := os.ReadDir(filepath.Join(root, "userdata", "1", "config"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must not be left behind")
	assert.Equal(t, "shortcuts.vdf", entries[0].Name())
}

func TestShortcutStore_AllUsersFail(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	h := testhelpers.NewOSFS()
	for _, id := range []string{"1", "2"} {
		require.NoError(t, h.Mkdir(shortcutsPath(root, id)))
	}

	_, err := NewShortcutStore(h.Fs, clockwork.NewFakeClock()).Add(root, mo2Entry())
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindPersistence))
	assert.Contains(t, err.Error(), filepath.Join("userdata", "1", "config"))
	assert.Contains(t, err.Error(), filepath.Join("userdata", "2", "config"))
}

func TestShortcutStore_List(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, id := range []string{"1", "2"} {
		_, err := f.AddUser(id)
		require.NoError(t, err)
	}

	store := NewShortcutStore(f.FS.Fs, clockwork.NewFakeClockAt(fixedNow))
	_, err := store.Add(f.Root, mo2Entry())
	require.NoError(t, err)
	_, err = f.AddUser("3")
	require.NoError(t, err)

	all, err := store.List(f.Root)
	require.NoError(t, err)

	require.Len(t, all, 3)
	require.Len(t, all["1"], 1)
	assert.Equal(t, "Mod Organizer 2", all["1"][0].AppName)
	assert.Equal(t, `"/home/u/MO2"`, all["2"][0].StartDir)
	assert.Empty(t, all["3"])
}

func TestQuoteField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"/a b"`, QuoteField("/a b"))
	assert.Equal(t, `"/a b"`, QuoteField(`"/a b"`))
	assert.Equal(t, `""`, QuoteField(""))
	assert.Equal(t, `"""`, QuoteField(`"`))
	assert.Equal(t, "/a b", UnquoteField(`"/a b"`))
	assert.Equal(t, "/a b", UnquoteField("/a b"))
}
