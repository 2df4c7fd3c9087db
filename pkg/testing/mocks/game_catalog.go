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

package mocks

import (
	"context"

	"github.com/modbridge/modbridge/pkg/catalog"
	"github.com/stretchr/testify/mock"
)

// MockGameCatalog is a testify mock for catalog.GameCatalog.
type MockGameCatalog struct {
	mock.Mock
}

func (m *MockGameCatalog) ListGames(ctx context.Context) ([]catalog.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]catalog.Game)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return games, args.Error(1)
}

func (m *MockGameCatalog) ListNonSteamGames(ctx context.Context) ([]catalog.Game, error) {
	args := m.Called(ctx)
	games, _ := args.Get(0).([]catalog.Game)
	//nolint:wrapcheck // Mock returns are already wrapped by caller
	return games, args.Error(1)
}
