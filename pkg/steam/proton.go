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
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrProtonNotFound is matched by every Proton resolution failure.
var ErrProtonNotFound = errors.New("proton runtime not found")

const protonRemedy = "install Proton from Steam (Library › Tools) or a GE-Proton build into compatibilitytools.d"

// ProtonInstallation is one runtime directory holding a proton launcher.
type ProtonInstallation struct {
	Name              string
	ExecutablePath    string
	SourceLibraryRoot string
}

// protonSearchRoots lists, in order, the roots whose compatibilitytools.d
// is searched: every library root, then ~/.steam/root.
func (l *Locator) protonSearchRoots(libraries []string) []string {
	return append(append([]string{}, libraries...), l.steamRootLink())
}

// FindProton returns the path of the proton executable for versionHint.
func (l *Locator) FindProton(versionHint string) (string, error) {
	inst, err := l.ResolveProton(versionHint)
	if err != nil {
		return "", err
	}
	return inst.ExecutablePath, nil
}

// ResolveProton finds the runtime named versionHint. Custom tools in
// compatibilitytools.d win over official builds in steamapps/common. An
// empty hint picks the first runtime discovered.
func (l *Locator) ResolveProton(versionHint string) (ProtonInstallation, error) {
	if versionHint == "" {
		installs := l.ListProtonInstallations()
		if len(installs) == 0 {
			return ProtonInstallation{}, protonNotFound("any Proton runtime")
		}
		log.Debug().Str("name", installs[0].Name).Msg("no Proton hint, using first runtime found")
		return installs[0], nil
	}

	if strings.ContainsRune(versionHint, filepath.Separator) || versionHint == "." || versionHint == ".." {
		return ProtonInstallation{}, protonNotFound(versionHint)
	}

	libraries := l.libraryRoots()

	for _, root := range l.protonSearchRoots(libraries) {
		candidate := filepath.Join(root, compatToolsDir, versionHint, protonBinary)
		if l.isFile(candidate) {
			return ProtonInstallation{
				Name:              versionHint,
				ExecutablePath:    candidate,
				SourceLibraryRoot: root,
			}, nil
		}
	}

	for _, root := range libraries {
		candidate := filepath.Join(root, steamAppsDir, "common", versionHint, protonBinary)
		if l.isFile(candidate) {
			return ProtonInstallation{
				Name:              versionHint,
				ExecutablePath:    candidate,
				SourceLibraryRoot: root,
			}, nil
		}
	}

	return ProtonInstallation{}, protonNotFound(versionHint)
}

// MatchProton resolves hint as an exact runtime name first, then as a
// case-insensitive substring of the discovered names. The first runtime in
// discovery order wins.
func (l *Locator) MatchProton(hint string) (ProtonInstallation, error) {
	p, err := l.ResolveProton(hint)
	if err == nil || hint == "" {
		return p, err
	}

	needle := strings.ToLower(hint)
	for _, inst := range l.ListProtonInstallations() {
		if strings.Contains(strings.ToLower(inst.Name), needle) {
			log.Debug().Str("hint", hint).Str("name", inst.Name).Msg("matched Proton runtime by substring")
			return inst, nil
		}
	}
	return ProtonInstallation{}, err
}

// ListAllProtonVersions returns the distinct runtime names in discovery
// order.
func (l *Locator) ListAllProtonVersions() []string {
	installs := l.ListProtonInstallations()
	names := make([]string, 0, len(installs))
	for _, inst := range installs {
		names = append(names, inst.Name)
	}
	return names
}

// ListProtonInstallations scans compatibilitytools.d/*/proton under every
// library root and ~/.steam/root, then steamapps/common/Proton*/proton.
// The first runtime seen under a given name wins.
func (l *Locator) ListProtonInstallations() []ProtonInstallation {
	libraries := l.libraryRoots()

	var out []ProtonInstallation
	seen := make(map[string]struct{})
	collect := func(root, pattern string) {
		matches, err := afero.Glob(l.fs, pattern)
		if err != nil {
			log.Warn().Err(err).Str("pattern", pattern).Msg("invalid Proton glob")
			return
		}
		for _, m := range matches {
			if !l.isFile(m) {
				continue
			}
			name := filepath.Base(filepath.Dir(m))
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, ProtonInstallation{
				Name:              name,
				ExecutablePath:    m,
				SourceLibraryRoot: root,
			})
		}
	}

	for _, root := range l.protonSearchRoots(libraries) {
		collect(root, filepath.Join(globEscape(root), compatToolsDir, "*", protonBinary))
	}
	for _, root := range libraries {
		collect(root, filepath.Join(globEscape(root), steamAppsDir, "common", "Proton*", protonBinary))
	}

	log.Debug().Int("count", len(out)).Msg("discovered Proton runtimes")
	return out
}

func protonNotFound(hint string) *errs.Error {
	return errs.NotFound(
		"Proton "+hint,
		protonRemedy,
		fmt.Errorf("%w: %s", ErrProtonNotFound, hint),
	)
}

// globEscape quotes glob metacharacters in a literal path prefix.
func globEscape(path string) string {
	var sb strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', ']', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
