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

package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog/log"
)

func extractZip(ctx context.Context, archivePath, dest string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open zip: %w", err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing zip")
		}
	}()

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("extraction cancelled: %w", err)
		}

		name := strings.ReplaceAll(f.Name, `\`, "/")
		target, err := safeJoin(dest, name)
		if err != nil {
			return err
		}

		mode := f.Mode()
		switch {
		case mode.IsDir() || strings.HasSuffix(name, "/"):
			if err := os.MkdirAll(target, 0o750); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
		case mode&os.ModeSymlink != 0:
			log.Warn().Str("entry", f.Name).Msg("skipping symlink in zip")
		default:
			if err := writeZipEntry(f, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeZipEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer func() {
		_ = rc.Close()
	}()
	return writeFile(target, rc)
}

// writeFile creates target, and any missing parents, from r.
func writeFile(target string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	//nolint:gosec // target is confined to the destination by safeJoin
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}
	return nil
}
