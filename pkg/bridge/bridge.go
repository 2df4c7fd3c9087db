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

// Package bridge is the single facade front-ends call. It wires the Steam
// locator, game catalog, shortcut store, extractor and dependency
// installer together from one config.
package bridge

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/modbridge/modbridge/pkg/archive"
	"github.com/modbridge/modbridge/pkg/catalog"
	"github.com/modbridge/modbridge/pkg/config"
	"github.com/modbridge/modbridge/pkg/deps"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/helpers/command"
	"github.com/modbridge/modbridge/pkg/steam"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Options replaces the production collaborators. Zero values select the
// real implementations.
type Options struct {
	Fs      afero.Fs
	Cmd     command.Executor
	Clock   clockwork.Clock
	Catalog catalog.GameCatalog
	// SteamRunning reports whether a Steam client is running.
	SteamRunning func(ctx context.Context) (bool, error)
	Home         string
}

type Bridge struct {
	cfg          *config.Instance
	locator      *steam.Locator
	catalog      catalog.GameCatalog
	store        *steam.ShortcutStore
	extractor    *archive.Extractor
	installer    *deps.Installer
	components   *deps.Table
	validate     *validator.Validate
	steamRunning func(ctx context.Context) (bool, error)
}

func New(cfg *config.Instance, opts Options) *Bridge {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Cmd == nil {
		opts.Cmd = &command.RealExecutor{}
	}
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.SteamRunning == nil {
		opts.SteamRunning = steam.IsSteamRunning
	}
	if opts.Catalog == nil {
		opts.Catalog = catalog.NewProtontricksCatalog(
			opts.Cmd, cfg.ProtontricksCommand(), cfg.ListingTimeout(),
		)
	}

	return &Bridge{
		cfg: cfg,
		locator: steam.NewLocator(steam.Options{
			Fs:           opts.Fs,
			Home:         opts.Home,
			Root:         cfg.SteamRoot(),
			CheckFlatpak: cfg.CheckFlatpak(),
		}),
		catalog:      opts.Catalog,
		store:        steam.NewShortcutStore(opts.Fs, opts.Clock),
		extractor:    archive.NewExtractor(opts.Cmd, cfg.ExtractorCommand(), cfg.ExtractionTimeout()),
		installer:    deps.NewInstaller(opts.Cmd, cfg.ProtontricksCommand(), cfg.DependencyInstallTimeout()),
		components:   deps.NewTable(cfg.DependencyOverrides()),
		validate:     newValidator(),
		steamRunning: opts.SteamRunning,
	}
}

// Locator exposes the underlying Steam locator for read-only queries.
func (b *Bridge) Locator() *steam.Locator {
	return b.locator
}

func (b *Bridge) SteamRoot() (string, error) {
	return b.locator.FindSteamRoot()
}

// LibraryRoots returns every library of the detected installation, the
// Steam root first.
func (b *Bridge) LibraryRoots() ([]string, error) {
	root, err := b.locator.FindSteamRoot()
	if err != nil {
		return nil, err
	}
	return b.locator.ListLibraryRoots(root), nil
}

func (b *Bridge) ProtonVersions() []steam.ProtonInstallation {
	return b.locator.ListProtonInstallations()
}

func (b *Bridge) ListGames(ctx context.Context) ([]catalog.Game, error) {
	games, err := b.catalog.ListGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

func (b *Bridge) ListNonSteamGames(ctx context.Context) ([]catalog.Game, error) {
	games, err := b.catalog.ListNonSteamGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list non-Steam games: %w", err)
	}
	return games, nil
}

// Components returns the dependency list for appID, configured overrides
// first.
func (b *Bridge) Components(appID string) []deps.Component {
	return b.components.Components(appID)
}

// CuratedAppIDs lists the games with a dedicated component list.
func (b *Bridge) CuratedAppIDs() []string {
	return b.components.Curated()
}

// steamRunningWarning logs when Steam is up. Probe errors are ignored.
func (b *Bridge) steamRunningWarning(ctx context.Context) bool {
	running, err := b.steamRunning(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("could not check for a running Steam client")
		return false
	}
	if running {
		log.Warn().Msg("Steam is running; restart it after the change so it is not overwritten")
	}
	return running
}

// isSoftFailure reports whether err is a non-zero tool exit, which the
// dependency installer treats as a warning.
func isSoftFailure(err error) bool {
	return errors.Is(err, errs.ErrExternalTool)
}

// newValidator adds "nonul", since shortcuts.vdf strings are
// NUL-terminated.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.RegisterValidation("nonul", func(fl validator.FieldLevel) bool {
		return !strings.ContainsRune(fl.Field().String(), 0)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to register nonul validation")
	}
	return v
}
