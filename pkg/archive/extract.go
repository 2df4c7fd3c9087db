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

// Package archive unpacks downloaded mod tools into fresh directories.
//
// 7z and rar go through an external 7z binary; zip and the tar family are
// decoded in process. Extraction never merges into a directory that
// already has content.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds one extraction.
const DefaultTimeout = 10 * time.Minute

type Extractor struct {
	cmd     command.Executor
	argv    []string
	timeout time.Duration
}

// NewExtractor builds an extractor whose external tool is invoked through
// argv, for example ["7z"] or ["7zz"].
func NewExtractor(cmd command.Executor, argv []string, timeout time.Duration) *Extractor {
	if len(argv) == 0 {
		argv = []string{"7z"}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Extractor{
		cmd:     cmd,
		argv:    append([]string{}, argv...),
		timeout: timeout,
	}
}

// Extract unpacks archivePath and returns the directory it wrote to. That
// is destDir when it is missing or empty, otherwise the first of
// destDir_1, destDir_2, ... that is.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) (string, error) {
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return "", errs.NotFound(archivePath, "check the archive path", err)
		}
		return "", fmt.Errorf("failed to stat archive: %w", err)
	}

	format, err := DetectFormat(archivePath)
	if err != nil {
		return "", err
	}

	dest, err := ResolveDestination(destDir)
	if err != nil {
		return "", err
	}

	created := false
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		created = true
	}
	if err := os.MkdirAll(dest, 0o750); err != nil {
		return "", fmt.Errorf("failed to create destination: %w", err)
	}

	log.Info().
		Str("archive", archivePath).
		Str("format", string(format)).
		Str("dest", dest).
		Msg("extracting archive")

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	switch {
	case format.External():
		err = e.extractExternal(ctx, archivePath, dest)
	case format == FormatZip:
		err = extractZip(ctx, archivePath, dest)
	default:
		err = extractTar(ctx, archivePath, dest, format)
	}

	if err != nil {
		discardPartial(dest, created)
		return "", err
	}

	MakeExecutable(dest)
	return dest, nil
}

// discardPartial undoes a failed extraction. dest was absent or empty
// beforehand, so everything in it came from this run.
func discardPartial(dest string, created bool) {
	if created {
		if err := os.RemoveAll(dest); err != nil {
			log.Warn().Err(err).Str("dest", dest).Msg("failed to remove partial extraction")
		}
		return
	}
	entries, err := os.ReadDir(dest)
	if err != nil {
		log.Warn().Err(err).Str("dest", dest).Msg("failed to read partial extraction")
		return
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dest, e.Name())); err != nil {
			log.Warn().Err(err).Str("path", e.Name()).Msg("failed to remove partial extraction")
		}
	}
}

// ResolveDestination applies the collision policy without touching the
// filesystem.
func ResolveDestination(destDir string) (string, error) {
	destDir = filepath.Clean(destDir)
	for i := 0; ; i++ {
		candidate := destDir
		if i > 0 {
			candidate = destDir + "_" + strconv.Itoa(i)
		}
		usable, err := usableDestination(candidate)
		if err != nil {
			return "", err
		}
		if usable {
			if i > 0 {
				log.Info().Str("requested", destDir).Str("dest", candidate).Msg("destination not empty, using new directory")
			}
			return candidate, nil
		}
	}
}

// usableDestination reports whether path is absent or an empty directory.
func usableDestination(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat destination: %w", err)
	}
	if !info.IsDir() {
		return false, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read destination: %w", err)
	}
	return len(entries) == 0, nil
}

func (e *Extractor) extractExternal(ctx context.Context, archivePath, dest string) error {
	tool := e.argv[0]
	if _, err := e.cmd.LookPath(tool); err != nil {
		return errs.NotFound(tool, "install p7zip", err)
	}

	args := append(append([]string{}, e.argv[1:]...), "x", "-y", "-o"+dest, archivePath)
	log.Debug().Str("tool", tool).Strs("args", args).Msg("running external extractor")

	out, err := e.cmd.CombinedOutput(ctx, tool, args...)
	if err != nil {
		return command.ToolError(ctx, tool, "install p7zip", out, err)
	}
	return nil
}
