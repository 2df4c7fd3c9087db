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

package bridge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/modbridge/modbridge/pkg/deps"
	"github.com/modbridge/modbridge/pkg/steam"
	"github.com/rs/zerolog/log"
)

// DependencyReport is the outcome of InstallDependencies. Warning holds a
// tool failure that was not treated as fatal.
type DependencyReport struct {
	Result  deps.InstallResult
	Warning error
}

// InstallDependencies installs components into the selected game's
// prefix. A nil or empty list uses the game's curated list. A non-zero
// protontricks exit is reported in Warning instead of failing the call.
func (b *Bridge) InstallDependencies(
	ctx context.Context,
	sel *SelectionContext,
	components []deps.Component,
) (DependencyReport, error) {
	if err := requirePrefix(sel); err != nil {
		return DependencyReport{}, err
	}
	if len(components) == 0 {
		components = b.components.Components(sel.Game.AppID)
	}

	res, err := b.installer.Install(ctx, sel.Game.AppID, components)
	report := DependencyReport{Result: res}
	if err != nil {
		if !isSoftFailure(err) {
			return report, fmt.Errorf("failed to install dependencies: %w", err)
		}
		log.Warn().
			Err(err).
			Str("appID", sel.Game.AppID).
			Msg("dependency install reported errors, components may already be present")
		report.Warning = err
	}
	return report, nil
}

// ShortcutRequest describes a tool to register with Steam.
type ShortcutRequest struct {
	Name          string   `validate:"required,nonul"`
	Exe           string   `validate:"required,nonul"`
	StartDir      string   `validate:"omitempty,nonul"`
	Icon          string   `validate:"omitempty,nonul"`
	LaunchOptions string   `validate:"omitempty,nonul"`
	Tags          []string `validate:"dive,required,nonul"`
}

// ShortcutReport carries the store result and whether Steam was running
// during the write.
type ShortcutReport struct {
	steam.AddResult
	SteamRunning bool
}

// ErrInvalidShortcut wraps request validation failures.
var ErrInvalidShortcut = errors.New("invalid shortcut request")

// AddShortcut registers req for every Steam user. StartDir defaults to the
// executable's directory.
func (b *Bridge) AddShortcut(ctx context.Context, req ShortcutRequest) (ShortcutReport, error) {
	if err := b.validate.Struct(req); err != nil {
		return ShortcutReport{}, fmt.Errorf("%w: %w", ErrInvalidShortcut, err)
	}

	root, err := b.locator.FindSteamRoot()
	if err != nil {
		return ShortcutReport{}, err
	}

	startDir := req.StartDir
	if startDir == "" {
		startDir = filepath.Dir(steam.UnquoteField(req.Exe))
	}

	report := ShortcutReport{SteamRunning: b.steamRunningWarning(ctx)}

	res, err := b.store.Add(root, steam.ShortcutEntry{
		AppName:            req.Name,
		Exe:                req.Exe,
		StartDir:           startDir,
		Icon:               req.Icon,
		LaunchOptions:      req.LaunchOptions,
		Tags:               req.Tags,
		AllowDesktopConfig: true,
		AllowOverlay:       true,
	})
	report.AddResult = res
	if err != nil {
		return report, fmt.Errorf("failed to add shortcut: %w", err)
	}
	return report, nil
}

// Shortcuts lists every user's shortcuts.
func (b *Bridge) Shortcuts() (map[string][]steam.ShortcutEntry, error) {
	root, err := b.locator.FindSteamRoot()
	if err != nil {
		return nil, err
	}
	return b.store.List(root)
}

// Extract unpacks archivePath and returns the directory actually used.
func (b *Bridge) Extract(ctx context.Context, archivePath, dest string) (string, error) {
	out, err := b.extractor.Extract(ctx, archivePath, dest)
	if err != nil {
		return "", fmt.Errorf("failed to extract %s: %w", archivePath, err)
	}
	return out, nil
}
