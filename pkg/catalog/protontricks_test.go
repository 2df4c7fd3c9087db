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

package catalog_test

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/modbridge/modbridge/pkg/catalog"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/testing/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const listing = `Found the following games:
Fallout 4 (377160)
Foo (GOTY) (441309)
Proton 9.0 (2805730)
SteamVR (250820)

To run Protontricks for the chosen game, run:
$ protontricks APPID COMMAND
`

func TestProtontricksCatalog_ListGames(t *testing.T) {
	t.Parallel()

	cmd := &mocks.MockCommandExecutor{}
	cmd.On("LookPath", "flatpak").Return("/usr/bin/flatpak", nil).Once()
	cmd.On("Output", mock.Anything, "flatpak",
		[]string{"run", "com.github.Matoking.protontricks", "-l"},
	).Return([]byte(listing), nil).Once()

	c := catalog.NewProtontricksCatalog(cmd, []string{"flatpak", "run", "com.github.Matoking.protontricks"}, time.Second)
	games, err := c.ListGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 2)
	cmd.AssertExpectations(t)
}

func TestProtontricksCatalog_ListNonSteamGames(t *testing.T) {
	t.Parallel()

	t.Run("returns shortcuts only", func(t *testing.T) {
		t.Parallel()

		cmd := &mocks.MockCommandExecutor{}
		cmd.On("LookPath", "protontricks").Return("/usr/bin/protontricks", nil)
		cmd.On("Output", mock.Anything, "protontricks", []string{"-l"}).
			Return([]byte("Found the following games:\nFallout 4 (377160)\nNon-Steam shortcut: MO2 (3000000000)\n"), nil)

		games, err := catalog.NewProtontricksCatalog(cmd, nil, 0).ListNonSteamGames(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []catalog.Game{{AppID: "3000000000", Name: "MO2", NonSteam: true}}, games)
	})

	t.Run("none present", func(t *testing.T) {
		t.Parallel()

		cmd := &mocks.MockCommandExecutor{}
		cmd.On("LookPath", "protontricks").Return("/usr/bin/protontricks", nil)
		cmd.On("Output", mock.Anything, "protontricks", []string{"-l"}).
			Return([]byte(listing), nil)

		_, err := catalog.NewProtontricksCatalog(cmd, nil, 0).ListNonSteamGames(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, catalog.ErrNoNonSteamGames)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
	})
}

func TestProtontricksCatalog_Failures(t *testing.T) {
	t.Parallel()

	t.Run("missing binary", func(t *testing.T) {
		t.Parallel()

		cmd := &mocks.MockCommandExecutor{}
		cmd.On("LookPath", "protontricks").Return("", exec.ErrNotFound)

		_, err := catalog.NewProtontricksCatalog(cmd, nil, 0).ListGames(context.Background())
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindNotFound))
		assert.Contains(t, err.Error(), "install protontricks")
		cmd.AssertNotCalled(t, "Output", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("non zero exit", func(t *testing.T) {
		t.Parallel()

		cmd := &mocks.MockCommandExecutor{}
		cmd.On("LookPath", "protontricks").Return("/usr/bin/protontricks", nil)
		cmd.On("Output", mock.Anything, "protontricks", []string{"-l"}).
			Return([]byte("Traceback (most recent call last):"), &mocks.ExitError{Code: 1})

		_, err := catalog.NewProtontricksCatalog(cmd, nil, 0).ListGames(context.Background())
		require.Error(t, err)

		var e *errs.Error
		require.ErrorAs(t, err, &e)
		assert.Equal(t, errs.KindExternalTool, e.Kind)
		assert.Equal(t, 1, e.ExitCode)
		assert.Contains(t, e.Raw, "Traceback")
	})

	t.Run("deadline applied", func(t *testing.T) {
		t.Parallel()

		cmd := &mocks.MockCommandExecutor{}
		cmd.On("LookPath", "protontricks").Return("/usr/bin/protontricks", nil)
		cmd.On("Output", mock.Anything, "protontricks", []string{"-l"}).
			Run(func(args mock.Arguments) {
				ctx, ok := args.Get(0).(context.Context)
				require.True(t, ok)
				<-ctx.Done()
			}).
			Return([]byte(nil), errors.New("signal: killed"))

		_, err := catalog.NewProtontricksCatalog(cmd, nil, 20*time.Millisecond).ListGames(context.Background())
		require.Error(t, err)
		assert.True(t, errs.IsKind(err, errs.KindExternalTool))
		assert.Contains(t, err.Error(), "timed out")
	})
}
