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

package catalog

import (
	"bytes"
	"context"
	"time"

	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// DefaultListingTimeout bounds a single protontricks -l run.
const DefaultListingTimeout = 30 * time.Second

// ProtontricksCatalog lists games by running protontricks -l.
type ProtontricksCatalog struct {
	cmd     command.Executor
	argv    []string
	timeout time.Duration
}

// NewProtontricksCatalog builds a catalog around an argv prefix such as
// ["protontricks"] or ["flatpak", "run", "com.github.Matoking.protontricks"].
func NewProtontricksCatalog(cmd command.Executor, argv []string, timeout time.Duration) *ProtontricksCatalog {
	if len(argv) == 0 {
		argv = []string{"protontricks"}
	}
	if timeout <= 0 {
		timeout = DefaultListingTimeout
	}
	return &ProtontricksCatalog{
		cmd:     cmd,
		argv:    append([]string{}, argv...),
		timeout: timeout,
	}
}

func (c *ProtontricksCatalog) ListGames(ctx context.Context) ([]Game, error) {
	out, err := c.list(ctx)
	if err != nil {
		return nil, err
	}
	return ParseGameList(bytes.NewReader(out))
}

func (c *ProtontricksCatalog) ListNonSteamGames(ctx context.Context) ([]Game, error) {
	games, err := c.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	return NonSteamOnly(games)
}

func (c *ProtontricksCatalog) list(ctx context.Context) ([]byte, error) {
	tool := c.argv[0]
	if _, err := c.cmd.LookPath(tool); err != nil {
		return nil, errs.NotFound(tool, "install protontricks", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := append(append([]string{}, c.argv[1:]...), "-l")
	log.Debug().Str("tool", tool).Strs("args", args).Msg("listing games")

	out, err := c.cmd.Output(ctx, tool, args...)
	if err != nil {
		return nil, command.ToolError(ctx, tool, "install protontricks", out, err)
	}
	return out, nil
}
