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

// Package steam discovers the layout of a Linux Steam installation and
// maintains the per-user shortcuts.vdf files.
//
// Everything reads through an afero.Fs so callers can point a Locator at
// an in-memory tree. Nothing is cached: each call observes the filesystem
// as it is.
package steam

import (
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// FlatpakSteamID is the Flatpak app ID for Steam.
	FlatpakSteamID = "com.valvesoftware.Steam"

	steamAppsDir   = "steamapps"
	compatToolsDir = "compatibilitytools.d"
	protonBinary   = "proton"
)

// Options configures a Locator.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// Home is the user's home directory used to build the default probe
	// paths. Required.
	Home string
	// Root overrides discovery when it points at a directory with a
	// steamapps folder.
	Root string
	// CheckFlatpak adds the Flatpak Steam data directory to the probes.
	CheckFlatpak bool
}

// Locator answers questions about one user's Steam installation.
type Locator struct {
	fs           afero.Fs
	home         string
	override     string
	checkFlatpak bool
}

func NewLocator(opts Options) *Locator {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Locator{
		fs:           fs,
		home:         opts.Home,
		override:     opts.Root,
		checkFlatpak: opts.CheckFlatpak,
	}
}

// Fs returns the filesystem the locator reads.
func (l *Locator) Fs() afero.Fs {
	return l.fs
}

// steamRootLink is Steam's own pointer to the active installation.
func (l *Locator) steamRootLink() string {
	return filepath.Join(l.home, ".steam", "root")
}

// libraryRoots resolves the Steam root and its libraries, or nil when no
// installation exists.
func (l *Locator) libraryRoots() []string {
	root, err := l.FindSteamRoot()
	if err != nil {
		return nil
	}
	return l.ListLibraryRoots(root)
}

func (l *Locator) isDir(path string) bool {
	ok, err := afero.IsDir(l.fs, path)
	return err == nil && ok
}

func (l *Locator) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	return err == nil && !info.IsDir()
}
