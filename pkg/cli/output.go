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

package cli

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

func renderTable(out io.Writer, header []string, rows [][]string) error {
	data := append(pterm.TableData{header}, rows...)
	err := pterm.DefaultTable.
		WithHasHeader().
		WithWriter(out).
		WithData(data).
		Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// spin runs fn behind a spinner unless spinners are disabled.
func (a *App) spin(out io.Writer, text string, fn func() error) error {
	if a.NoSpinner {
		return fn()
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(out).WithRemoveWhenDone().Start(text)
	if err != nil {
		return fn()
	}
	if err := fn(); err != nil {
		spinner.Fail(text)
		return err
	}
	_ = spinner.Stop()
	return nil
}

func success(out io.Writer, format string, a ...any) {
	pterm.Success.WithWriter(out).Printfln(format, a...)
}

func warning(out io.Writer, format string, a ...any) {
	pterm.Warning.WithWriter(out).Printfln(format, a...)
}
