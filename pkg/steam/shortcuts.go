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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/modbridge/modbridge/internal/vdfbinary"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ShortcutEntry is one non-Steam game as stored in shortcuts.vdf. Exe and
// StartDir hold the raw payload, embedded quotes included.
type ShortcutEntry struct {
	AppName            string
	Exe                string
	StartDir           string
	Icon               string
	ShortcutPath       string
	LaunchOptions      string
	Tags               []string
	AppID              uint32
	LastPlayTime       uint32
	IsHidden           bool
	AllowDesktopConfig bool
	AllowOverlay       bool
	OpenVR             bool
}

// UserResult records what happened for one Steam user.
type UserResult struct {
	UserID string
	Path   string
	Index  string
	// Existed is true when an entry with the same AppName was already
	// present and nothing was written.
	Existed bool
}

type AddResult struct {
	Users []UserResult
	AppID uint32
	// RestartSteam is set when a file was rewritten. A running Steam only
	// picks up shortcuts on restart and may overwrite the file on exit.
	RestartSteam bool
}

// ShortcutStore adds entries to the shortcuts.vdf of every local user.
type ShortcutStore struct {
	fs    afero.Fs
	clock clockwork.Clock
}

func NewShortcutStore(fs afero.Fs, clock clockwork.Clock) *ShortcutStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ShortcutStore{fs: fs, clock: clock}
}

// QuoteField wraps a path in the literal double quotes Steam stores around
// Exe and StartDir. Already quoted input is returned unchanged.
func QuoteField(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s
	}
	return `"` + s + `"`
}

// UnquoteField strips one layer of surrounding double quotes.
func UnquoteField(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// userDirs returns the numeric account directories under userdata, sorted.
func (s *ShortcutStore) userDirs(steamRoot string) ([]string, error) {
	userdata := filepath.Join(steamRoot, "userdata")
	entries, err := afero.ReadDir(s.fs, userdata)
	if err != nil && !os.IsNotExist(err) {
		return nil, errs.Persistence(userdata, err)
	}

	var users []string
	for _, e := range entries {
		if !e.IsDir() || !isDigits(e.Name()) {
			continue
		}
		users = append(users, e.Name())
	}
	if len(users) == 0 {
		return nil, errs.NotFound(userdata, "log in to Steam at least once", nil)
	}
	sort.Strings(users)
	return users, nil
}

func shortcutsPath(steamRoot, userID string) string {
	return filepath.Join(steamRoot, "userdata", userID, "config", "shortcuts.vdf")
}

// Add writes entry into every user's shortcuts.vdf unless a shortcut with
// the same AppName is already there. A zero AppID is generated from the
// name and executable. It succeeds when at least one user ends up with the
// entry; if every user fails, their errors are joined.
//
//nolint:gocritic // entry is copied so it can be normalized
func (s *ShortcutStore) Add(steamRoot string, entry ShortcutEntry) (AddResult, error) {
	users, err := s.userDirs(steamRoot)
	if err != nil {
		return AddResult{}, err
	}

	if entry.AppID == 0 {
		entry.AppID = GenerateShortcutAppID(entry.AppName, UnquoteField(entry.Exe))
	}
	entry.Exe = QuoteField(entry.Exe)
	entry.StartDir = QuoteField(entry.StartDir)

	result := AddResult{AppID: entry.AppID}
	var failures []error

	for _, userID := range users {
		ur, err := s.addForUser(steamRoot, userID, &entry)
		if err != nil {
			log.Error().Err(err).Str("userID", userID).Msg("failed to add shortcut for user")
			failures = append(failures, err)
			continue
		}
		if !ur.Existed {
			result.RestartSteam = true
		}
		result.Users = append(result.Users, ur)
	}

	if len(result.Users) == 0 {
		return result, errors.Join(failures...)
	}
	return result, nil
}

func (s *ShortcutStore) addForUser(steamRoot, userID string, entry *ShortcutEntry) (UserResult, error) {
	path := shortcutsPath(steamRoot, userID)
	ur := UserResult{UserID: userID, Path: path}

	root, err := s.load(path)
	if err != nil {
		return ur, err
	}

	if key, ok := vdfbinary.FindShortcut(root, entry.AppName); ok {
		log.Info().Str("userID", userID).Str("name", entry.AppName).Msg("shortcut already exists")
		ur.Index = key
		ur.Existed = true
		return ur, nil
	}

	sc := vdfbinary.Shortcut(*entry)
	sc.LastPlayTime = uint32(s.clock.Now().Unix()) //nolint:gosec // unix seconds fit until 2106
	ur.Index = vdfbinary.AppendShortcut(root, &sc)

	data, err := vdfbinary.MarshalBytes(root)
	if err != nil {
		return ur, errs.Persistence(path, fmt.Errorf("failed to encode shortcuts: %w", err))
	}
	if err := s.writeAtomic(path, data); err != nil {
		return ur, errs.Persistence(path, err)
	}

	log.Info().
		Str("userID", userID).
		Str("name", entry.AppName).
		Str("index", ur.Index).
		Msg("added shortcut")
	return ur, nil
}

// load reads a shortcuts.vdf. A missing or corrupt file starts over with
// an empty document.
func (s *ShortcutStore) load(path string) (*vdfbinary.Map, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return vdfbinary.NewShortcutsDocument(), nil
		}
		return nil, errs.Persistence(path, err)
	}

	root, err := vdfbinary.Parse(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("unreadable shortcuts.vdf, starting fresh")
		return vdfbinary.NewShortcutsDocument(), nil
	}
	return root, nil
}

// writeAtomic replaces path through a temp file in the same directory so a
// reader never sees a partial file.
func (s *ShortcutStore) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".shortcuts-*.vdf")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := s.fs.Remove(tmpName); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Warn().Err(rmErr).Str("path", tmpName).Msg("failed to remove temp file")
		}
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace shortcuts file: %w", err)
	}
	return nil
}

// List returns every user's shortcuts keyed by user ID. Users whose file
// cannot be decoded are logged and left out.
func (s *ShortcutStore) List(steamRoot string) (map[string][]ShortcutEntry, error) {
	users, err := s.userDirs(steamRoot)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]ShortcutEntry, len(users))
	for _, userID := range users {
		path := shortcutsPath(steamRoot, userID)
		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn().Err(err).Str("path", path).Msg("error reading shortcuts.vdf")
				continue
			}
			out[userID] = []ShortcutEntry{}
			continue
		}

		shortcuts, err := vdfbinary.ParseShortcuts(bytes.NewReader(data))
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error parsing shortcuts.vdf")
			continue
		}

		entries := make([]ShortcutEntry, 0, len(shortcuts))
		for i := range shortcuts {
			entries = append(entries, ShortcutEntry(shortcuts[i]))
		}
		out[userID] = entries
	}
	return out, nil
}
