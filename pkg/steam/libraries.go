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
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// ListLibraryRoots returns steamRoot followed by every library folder
// named in steamapps/libraryfolders.vdf. A missing or unreadable file
// yields just the root.
func (l *Locator) ListLibraryRoots(steamRoot string) []string {
	roots := []string{filepath.Clean(steamRoot)}
	seen := map[string]struct{}{roots[0]: {}}

	lfPath := filepath.Join(steamRoot, steamAppsDir, "libraryfolders.vdf")
	f, err := l.fs.Open(lfPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", lfPath).Msg("error opening libraryfolders.vdf")
		}
		return roots
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
	}()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		path, ok := libraryPathFromLine(scanner.Text())
		if !ok {
			continue
		}
		path = filepath.Clean(path)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		roots = append(roots, path)
	}
	if err := scanner.Err(); err != nil {
		log.Warn().Err(err).Str("path", lfPath).Msg("error reading libraryfolders.vdf")
	}

	log.Debug().Strs("roots", roots).Msg("resolved Steam library roots")
	return roots
}

// libraryPathFromLine extracts a library path from one line of
// libraryfolders.vdf. It accepts "path" entries in quoted or bare form and
// the legacy layout where a numeric key maps straight to a path.
func libraryPathFromLine(line string) (string, bool) {
	tokens := splitVDFLine(line)
	if len(tokens) < 2 {
		return "", false
	}
	key, value := tokens[0], tokens[1]
	if bare, ok := bareValue(line); ok {
		value = bare
	}
	if value == "" {
		return "", false
	}
	if strings.EqualFold(key, "path") {
		return value, true
	}
	if isDigits(key) && filepath.IsAbs(value) {
		return value, true
	}
	return "", false
}

// bareValue returns the rest of the line after the key when the value is
// unquoted, so an unquoted path may contain spaces.
func bareValue(line string) (string, bool) {
	rest := strings.TrimLeft(line, " \t")
	if strings.HasPrefix(rest, `"`) {
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return "", false
		}
		rest = rest[end+2:]
	} else {
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			return "", false
		}
		rest = rest[i:]
	}
	rest = strings.TrimLeft(rest, " \t")
	if rest == "" || rest[0] == '"' {
		return "", false
	}
	if i := strings.Index(rest, "//"); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimRight(rest, " \t\r"), true
}

// splitVDFLine tokenizes a text VDF line into quoted or whitespace
// separated tokens. Backslash escapes inside quotes are resolved. A "//"
// outside quotes ends the line.
func splitVDFLine(line string) []string {
	var (
		tokens []string
		cur    strings.Builder
		quoted bool
		inTok  bool
	)
	flush := func() {
		if inTok {
			tokens = append(tokens, cur.String())
			cur.Reset()
			inTok = false
		}
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quoted && c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case quoted && c == '"':
			quoted = false
			flush()
		case quoted:
			cur.WriteByte(c)
		case c == '"':
			flush()
			quoted = true
			inTok = true
		case c == ' ' || c == '\t' || c == '\r':
			flush()
		case c == '{' || c == '}':
			flush()
			return tokens
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			flush()
			return tokens
		default:
			cur.WriteByte(c)
			inTok = true
		}
	}
	if quoted {
		// unterminated quote
		return nil
	}
	flush()
	return tokens
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
