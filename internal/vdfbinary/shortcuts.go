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

package vdfbinary

import (
	"errors"
	"io"
	"strconv"
)

// ShortcutsKey is the root key of every shortcuts.vdf file.
const ShortcutsKey = "shortcuts"

// Shortcut represents a Steam non-Steam game shortcut.
// Exe and StartDir hold the raw payload, including any embedded quotes.
type Shortcut struct {
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

// ParseShortcuts parses Steam's shortcuts.vdf binary format.
// Only appid, AppName, Exe and StartDir are required; shortcuts created by
// third-party tools routinely omit the rest.
func ParseShortcuts(buf io.Reader) ([]Shortcut, error) {
	root, err := Parse(buf)
	if err != nil {
		return []Shortcut{}, err
	}
	return ShortcutsFromMap(root)
}

// ShortcutsFromMap decodes the typed shortcut list from a parsed document.
func ShortcutsFromMap(root *Map) ([]Shortcut, error) {
	shortcutsMap, ok := root.GetMap(ShortcutsKey)
	if !ok {
		return []Shortcut{}, errors.New("could not find 'shortcuts' in parsed vdf")
	}

	shortcuts := make([]Shortcut, shortcutsMap.Len())

	for i := range shortcuts {
		key := strconv.Itoa(i)

		s, ok := shortcutsMap.GetMap(key)
		if !ok {
			return []Shortcut{}, errors.New("vdf that should be an array does not have the corresponding index")
		}

		appID, ok := s.GetUint("appid")
		if !ok {
			return []Shortcut{}, errors.New("could not get key 'appid' for one of the shortcuts")
		}

		appName, ok := s.GetString("AppName")
		if !ok {
			return []Shortcut{}, errors.New("could not get key 'AppName' for one of the shortcuts")
		}

		exe, ok := s.GetString("Exe")
		if !ok {
			return []Shortcut{}, errors.New("could not get key 'Exe' for one of the shortcuts")
		}

		startDir, ok := s.GetString("StartDir")
		if !ok {
			return []Shortcut{}, errors.New("could not get key 'StartDir' for one of the shortcuts")
		}

		icon, _ := s.GetString("icon")
		shortcutPath, _ := s.GetString("ShortcutPath")
		launchOptions, _ := s.GetString("LaunchOptions")
		isHidden, _ := s.GetBool("IsHidden")
		allowDesktopConfig, _ := s.GetBool("AllowDesktopConfig")
		allowOverlay, _ := s.GetBool("AllowOverlay")
		openVR, _ := s.GetBool("OpenVR")
		lastPlayTime, _ := s.GetUint("LastPlayTime")

		var tags []string
		if tagsMap, ok := s.GetMap("tags"); ok {
			for j := range tagsMap.Len() {
				t, ok := tagsMap.GetString(strconv.Itoa(j))
				if !ok {
					break
				}
				tags = append(tags, t)
			}
		}

		shortcuts[i] = Shortcut{
			AppID:              appID,
			AppName:            appName,
			Exe:                exe,
			StartDir:           startDir,
			Icon:               icon,
			ShortcutPath:       shortcutPath,
			LaunchOptions:      launchOptions,
			IsHidden:           isHidden,
			AllowDesktopConfig: allowDesktopConfig,
			AllowOverlay:       allowOverlay,
			OpenVR:             openVR,
			LastPlayTime:       lastPlayTime,
			Tags:               tags,
		}
	}

	return shortcuts, nil
}

// NewShortcutsDocument returns a root map holding an empty shortcuts map.
func NewShortcutsDocument() *Map {
	root := NewMap()
	root.Set(ShortcutsKey, MapValue(NewMap()))
	return root
}

// FindShortcut returns the index key of the first entry whose AppName
// equals name.
func FindShortcut(root *Map, name string) (string, bool) {
	shortcutsMap, ok := root.GetMap(ShortcutsKey)
	if !ok {
		return "", false
	}
	for _, f := range shortcutsMap.fields {
		entry, ok := f.Value.AsMap()
		if !ok {
			continue
		}
		if appName, ok := entry.GetString("AppName"); ok && appName == name {
			return f.Key, true
		}
	}
	return "", false
}

// AppendShortcut adds s under the next sequential index, which is always
// the current size of the shortcuts map, and returns that index. A missing
// shortcuts map is created.
func AppendShortcut(root *Map, s *Shortcut) string {
	shortcutsMap, ok := root.GetMap(ShortcutsKey)
	if !ok {
		shortcutsMap = NewMap()
		root.Set(ShortcutsKey, MapValue(shortcutsMap))
	}
	// a hand-edited file with gaps must not lose an entry to the new one
	n := shortcutsMap.Len()
	key := strconv.Itoa(n)
	for shortcutsMap.index(key) >= 0 {
		n++
		key = strconv.Itoa(n)
	}
	shortcutsMap.Set(key, MapValue(s.toMap()))
	return key
}

// toMap lays the fields out in the order Steam writes them.
func (s *Shortcut) toMap() *Map {
	m := NewMap()
	m.Set("appid", Int32(s.AppID))
	m.Set("AppName", String(s.AppName))
	m.Set("Exe", String(s.Exe))
	m.Set("StartDir", String(s.StartDir))
	m.Set("icon", String(s.Icon))
	m.Set("ShortcutPath", String(s.ShortcutPath))
	m.Set("LaunchOptions", String(s.LaunchOptions))
	m.Set("IsHidden", Bool(s.IsHidden))
	m.Set("AllowDesktopConfig", Bool(s.AllowDesktopConfig))
	m.Set("AllowOverlay", Bool(s.AllowOverlay))
	m.Set("OpenVR", Bool(s.OpenVR))
	m.Set("LastPlayTime", Int32(s.LastPlayTime))

	tags := NewMap()
	for i, t := range s.Tags {
		tags.Set(strconv.Itoa(i), String(t))
	}
	m.Set("tags", MapValue(tags))
	return m
}
