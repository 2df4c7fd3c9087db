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

package fixtures

import (
	"fmt"
	"strings"

	"github.com/modbridge/modbridge/pkg/catalog"
)

// Common test game fixtures for use in tests

// NewSkyrimSE creates the Skyrim Special Edition catalog row
func NewSkyrimSE() catalog.Game {
	return catalog.Game{AppID: "489830", Name: "The Elder Scrolls V: Skyrim Special Edition"}
}

// NewFallout4 creates the Fallout 4 catalog row
func NewFallout4() catalog.Game {
	return catalog.Game{AppID: "377160", Name: "Fallout 4"}
}

// NewModOrganizerShortcut creates a non-Steam shortcut row
func NewModOrganizerShortcut() catalog.Game {
	return catalog.Game{AppID: "3456789012", Name: "Mod Organizer 2", NonSteam: true}
}

// SampleGames returns one of each fixture, Steam games first
func SampleGames() []catalog.Game {
	return []catalog.Game{NewSkyrimSE(), NewFallout4(), NewModOrganizerShortcut()}
}

// ProtontricksListing renders games the way `protontricks -l` prints them,
// including the runtime rows it always lists.
func ProtontricksListing(games ...catalog.Game) string {
	var sb strings.Builder
	sb.WriteString("Found the following games:\n")
	for _, g := range games {
		if g.NonSteam {
			sb.WriteString("Non-Steam shortcut: ")
		}
		_, _ = fmt.Fprintf(&sb, "%s (%s)\n", g.Name, g.AppID)
	}
	sb.WriteString("Proton 9.0 (2805730)\n")
	sb.WriteString("Steam Linux Runtime 3.0 (sniper) (1628350)\n")
	sb.WriteString("\nTo run Protontricks for the chosen game, run:\n")
	sb.WriteString("$ protontricks APPID COMMAND\n")
	return sb.String()
}

// CompatToolMapping renders a config.vdf that maps each AppID to a
// compatibility tool name.
func CompatToolMapping(mapping map[string]string) string {
	var sb strings.Builder
	sb.WriteString("\"InstallConfigStore\"\n{\n\t\"Software\"\n\t{\n\t\t\"Valve\"\n\t\t{\n")
	sb.WriteString("\t\t\t\"Steam\"\n\t\t\t{\n\t\t\t\t\"CompatToolMapping\"\n\t\t\t\t{\n")
	for appID, name := range mapping {
		_, _ = fmt.Fprintf(&sb, "\t\t\t\t\t%q\n\t\t\t\t\t{\n", appID)
		_, _ = fmt.Fprintf(&sb, "\t\t\t\t\t\t\"name\"\t\t%q\n", name)
		sb.WriteString("\t\t\t\t\t\t\"config\"\t\t\"\"\n\t\t\t\t\t\t\"priority\"\t\t\"250\"\n")
		sb.WriteString("\t\t\t\t\t}\n")
	}
	sb.WriteString("\t\t\t\t}\n\t\t\t}\n\t\t}\n\t}\n}\n")
	return sb.String()
}

// LibraryFolders renders a libraryfolders.vdf listing paths in order.
func LibraryFolders(paths ...string) string {
	var sb strings.Builder
	sb.WriteString("\"libraryfolders\"\n{\n")
	for i, p := range paths {
		_, _ = fmt.Fprintf(&sb, "\t\"%d\"\n\t{\n\t\t\"path\"\t\t%q\n\t\t\"label\"\t\t\"\"\n\t}\n", i, p)
	}
	sb.WriteString("}\n")
	return sb.String()
}
