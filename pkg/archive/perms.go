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
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
	"github.com/rs/zerolog/log"
)

// ExecutableMode is applied to every extracted regular file so Windows
// executables can be launched through Proton.
const ExecutableMode fs.FileMode = 0o755

// MakeExecutable chmods every regular file under root. Failures are
// logged and otherwise ignored.
func MakeExecutable(root string) {
	var failed atomic.Int64

	err := fastwalk.Walk(&fastwalk.Config{}, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("error walking extracted files")
			failed.Add(1)
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if err := os.Chmod(path, ExecutableMode); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("failed to mark file executable")
			failed.Add(1)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("permission pass incomplete")
	}
	if n := failed.Load(); n > 0 {
		log.Warn().Int64("count", n).Str("root", root).Msg("some files could not be made executable")
	}
}
