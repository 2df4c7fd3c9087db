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

package deps

import (
	"context"
	"time"

	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds one component install run.
const DefaultTimeout = 30 * time.Minute

// showDotFiles makes Wine file dialogs list dot directories, which mod
// managers need to browse ~/.local paths.
const showDotFiles = `wine reg add HKCU\Software\Wine /v ShowDotFiles /d Y /f`

type InstallResult struct {
	AppID      string
	Output     string
	Components []Component
	// TweakApplied reports whether the dot-file registry tweak succeeded.
	TweakApplied bool
}

// Installer drives protontricks against one prefix at a time.
type Installer struct {
	cmd     command.Executor
	argv    []string
	timeout time.Duration
}

func NewInstaller(cmd command.Executor, argv []string, timeout time.Duration) *Installer {
	if len(argv) == 0 {
		argv = []string{"protontricks"}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Installer{
		cmd:     cmd,
		argv:    append([]string{}, argv...),
		timeout: timeout,
	}
}

// Install runs protontricks once with every component, then applies the
// dot-file tweak. A non-zero exit returns the result alongside an
// ExternalTool error; components commonly fail that way when already
// present, so callers may treat it as a warning.
func (i *Installer) Install(ctx context.Context, appID string, components []Component) (InstallResult, error) {
	result := InstallResult{AppID: appID, Components: components}

	tool := i.argv[0]
	if _, err := i.cmd.LookPath(tool); err != nil {
		return result, errs.NotFound(tool, "install protontricks", err)
	}

	args := append(append([]string{}, i.argv[1:]...), "--no-bwrap", appID, "-q")
	for _, c := range components {
		args = append(args, string(c))
	}

	log.Info().
		Str("appID", appID).
		Int("components", len(components)).
		Msg("installing dependencies")

	installCtx, cancel := context.WithTimeout(ctx, i.timeout)
	out, err := i.cmd.CombinedOutput(installCtx, tool, args...)
	result.Output = string(out)
	var installErr error
	if err != nil {
		installErr = command.ToolError(installCtx, tool, "install protontricks", out, err)
	}
	cancel()

	result.TweakApplied = i.applyDotFileTweak(ctx, appID)

	return result, installErr
}

func (i *Installer) applyDotFileTweak(ctx context.Context, appID string) bool {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	tool := i.argv[0]
	args := append(append([]string{}, i.argv[1:]...), "--no-bwrap", "-c", showDotFiles, appID)
	out, err := i.cmd.CombinedOutput(ctx, tool, args...)
	if err != nil {
		log.Warn().
			Err(err).
			Str("appID", appID).
			Str("output", string(out)).
			Msg("failed to enable ShowDotFiles")
		return false
	}
	log.Debug().Str("appID", appID).Msg("enabled ShowDotFiles")
	return true
}
