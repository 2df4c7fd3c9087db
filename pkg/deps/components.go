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

// Package deps installs the Windows runtime components a modding tool
// needs into a game's Proton prefix.
package deps

import (
	"maps"
	"slices"
	"strconv"
)

// Component is a winetricks verb such as "vcrun2022" or "dotnet48".
type Component string

const (
	SkyrimSpecialEditionAppID = "489830"
	Fallout4AppID             = "377160"
)

// DefaultComponents is what most .NET/C++ based mod managers need.
var DefaultComponents = []Component{
	"xact",
	"xact_x64",
	"vcrun2022",
	"dotnet6",
	"dotnet7",
	"dotnet8",
	"d3dcompiler_47",
	"d3dx11_43",
	"d3dcompiler_43",
	"d3dx9_43",
	"d3dx9",
	"vkd3d",
}

var builtin = map[string][]Component{
	SkyrimSpecialEditionAppID: {
		"xact",
		"xact_x64",
		"d3dcompiler_47",
		"d3dx11_43",
		"d3dcompiler_43",
		"dotnet6",
		"dotnet7",
		"dotnet8",
		"vcrun2022",
	},
	Fallout4AppID: {
		"xact",
		"xact_x64",
		"d3dcompiler_47",
		"d3dx11_43",
		"d3dcompiler_43",
		"dotnet6",
		"dotnet7",
		"dotnet8",
		"vcrun2022",
		"d3dx9",
	},
}

// GetComponents returns the curated list for appID, or DefaultComponents.
// The result is a fresh slice.
func GetComponents(appID string) []Component {
	if comps, ok := builtin[appID]; ok {
		return slices.Clone(comps)
	}
	return slices.Clone(DefaultComponents)
}

// Table layers configured overrides on top of the built-in lists.
type Table struct {
	overrides map[string][]Component
}

// NewTable copies overrides keyed by AppID.
func NewTable(overrides map[uint32][]string) *Table {
	t := &Table{overrides: make(map[string][]Component, len(overrides))}
	for id, names := range overrides {
		appID := strconv.FormatUint(uint64(id), 10)
		comps := make([]Component, 0, len(names))
		for _, n := range names {
			comps = append(comps, Component(n))
		}
		t.overrides[appID] = comps
	}
	return t
}

func (t *Table) Components(appID string) []Component {
	if t != nil {
		if comps, ok := t.overrides[appID]; ok {
			return slices.Clone(comps)
		}
	}
	return GetComponents(appID)
}

// Curated lists the AppIDs with a dedicated list, overrides included,
// in sorted order.
func (t *Table) Curated() []string {
	ids := make(map[string]struct{}, len(builtin))
	for id := range builtin {
		ids[id] = struct{}{}
	}
	if t != nil {
		for id := range t.overrides {
			ids[id] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(ids))
}
