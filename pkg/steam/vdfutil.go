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

package steam

import (
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
)

// normalizeVDFKeys recursively lowercases all keys in a map[string]any tree.
// Valve's VDF format is case-insensitive, but Go maps use exact string matching.
func normalizeVDFKeys(m map[string]any) map[string]any {
	result := make(map[string]any, len(m))
	for k, v := range m {
		if nested, ok := v.(map[string]any); ok {
			v = normalizeVDFKeys(nested)
		}
		result[strings.ToLower(k)] = v
	}
	return result
}

// readTextVDF parses a text VDF file with normalized keys.
func (l *Locator) readTextVDF(path string) (map[string]any, bool) {
	f, err := l.fs.Open(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("failed to open vdf file")
		return nil, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("path", path).Msg("error closing vdf file")
		}
	}()

	m, err := vdf.NewParser(f).Parse()
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to parse vdf file")
		return nil, false
	}
	return normalizeVDFKeys(m), true
}

// lookupPath walks nested maps by lowercase keys.
func lookupPath(m map[string]any, keys ...string) (any, bool) {
	var cur any = m
	for _, k := range keys {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[strings.ToLower(k)]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
