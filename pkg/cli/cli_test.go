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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modbridge/modbridge/pkg/bridge"
	"github.com/modbridge/modbridge/pkg/catalog"
	"github.com/modbridge/modbridge/pkg/config"
	"github.com/modbridge/modbridge/pkg/errs"
	"github.com/modbridge/modbridge/pkg/testing/fixtures"
	testhelpers "github.com/modbridge/modbridge/pkg/testing/helpers"
	"github.com/modbridge/modbridge/pkg/testing/mocks"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// These tests share zerolog's global logger and pterm's styling switch,
// so none of them run in parallel.

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

const testHome = "/home/deck"

var testGames = []catalog.Game{fixtures.NewSkyrimSE(), fixtures.NewModOrganizerShortcut()}

type cliEnv struct {
	app     *App
	fixture *testhelpers.SteamFixture
	cmd     *mocks.MockCommandExecutor
	games   *mocks.MockGameCatalog
	stderr  *bytes.Buffer
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()

	f, err := testhelpers.NewSteamFixture(testHome)
	require.NoError(t, err)

	env := &cliEnv{
		fixture: f,
		cmd:     &mocks.MockCommandExecutor{},
		games:   &mocks.MockGameCatalog{},
		stderr:  &bytes.Buffer{},
	}
	env.games.On("ListGames", mock.Anything).Return(testGames, nil).Maybe()
	env.games.On("ListNonSteamGames", mock.Anything).Return(testGames[1:], nil).Maybe()

	env.app = &App{
		ConfigDir: t.TempDir(),
		LogDir:    t.TempDir(),
		Home:      testHome,
		Stderr:    env.stderr,
		NoSpinner: true,
		NewBridge: func(cfg *config.Instance) *bridge.Bridge {
			return bridge.New(cfg, bridge.Options{
				Fs:      f.FS.Fs,
				Cmd:     env.cmd,
				Catalog: env.games,
				Home:    testHome,
				SteamRunning: func(context.Context) (bool, error) {
					return false, nil
				},
			})
		},
	}
	return env
}

func (e *cliEnv) run(args ...string) (string, error) {
	root := NewRootCommand(e.app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion_SkipsSetup(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("version")
	require.NoError(t, err)
	assert.Equal(t, config.AppName+" "+config.AppVersion+"\n", out)
	assert.NoFileExists(t, filepath.Join(env.app.ConfigDir, config.CfgFile))
}

func TestSetup_WritesDefaultConfig(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("libraries")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(env.app.ConfigDir, config.CfgFile))
}

func TestSetup_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(env.app.ConfigDir, config.CfgFile),
		[]byte("config_schema = 1\n[timeouts]\nlisting_seconds = 0\n"),
		0o600,
	))

	_, err := env.run("libraries")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLibraries(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("libraries")
	require.NoError(t, err)
	assert.Contains(t, out, env.fixture.Root)
}

func TestProtons(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("protons")
	require.NoError(t, err)
	assert.Contains(t, out, "no Proton runtimes found")

	_, err = env.fixture.AddCompatTool(env.fixture.Root, "GE-Proton9-20")
	require.NoError(t, err)
	out, err = env.run("protons")
	require.NoError(t, err)
	assert.Contains(t, out, "GE-Proton9-20")
}

func TestGames(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("games")
	require.NoError(t, err)
	assert.Contains(t, out, "489830")
	assert.Contains(t, out, "Mod Organizer 2")
	assert.Contains(t, out, "Non-Steam")

	out, err = env.run("games", "--non-steam")
	require.NoError(t, err)
	assert.NotContains(t, out, "489830")
	assert.Contains(t, out, "3456789012")
}

func TestGames_CSV(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("games", "--csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "appid,name,non_steam", lines[0])
	assert.Contains(t, lines, "3456789012,Mod Organizer 2,true")
	assert.Contains(t, out, "489830,The Elder Scrolls V: Skyrim Special Edition,false")
}

func TestPrefix(t *testing.T) {
	env := newCLIEnv(t)
	prefix, err := env.fixture.AddCompatData(env.fixture.Root, "489830")
	require.NoError(t, err)

	out, err := env.run("prefix", "489830")
	require.NoError(t, err)
	assert.Equal(t, prefix+"\n", out)

	_, err = env.run("prefix", "377160")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSelect(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.fixture.AddOfficialProton(env.fixture.Root, "Proton 9.0 (Beta)")
	require.NoError(t, err)

	out, err := env.run("select", "489830")
	require.NoError(t, err)
	assert.Contains(t, out, "Proton 9.0 (Beta) (discovery)")
	assert.Contains(t, out, "launch the game once through Steam")
}

func TestDepsList(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("deps", "--list")
	require.NoError(t, err)
	assert.Equal(t, "377160\n489830\n", out)

	out, err = env.run("deps", "--list", "489830")
	require.NoError(t, err)
	assert.Contains(t, out, "dotnet8\n")
}

func TestDeps_Install(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.fixture.AddOfficialProton(env.fixture.Root, "Proton 9.0 (Beta)")
	require.NoError(t, err)
	_, err = env.fixture.AddCompatData(env.fixture.Root, "489830")
	require.NoError(t, err)

	env.cmd.On("LookPath", "protontricks").Return("/usr/bin/protontricks", nil)
	env.cmd.On("CombinedOutput", mock.Anything, "protontricks",
		[]string{"--no-bwrap", "489830", "-q", "xact", "vcrun2022"}).
		Return([]byte{}, &mocks.ExitError{Code: 1}).Once()
	env.cmd.On("CombinedOutput", mock.Anything, "protontricks", mock.Anything).
		Return([]byte{}, nil).Once()

	out, err := env.run("deps", "489830", "-c", "xact", "-c", "vcrun2022")
	require.NoError(t, err)
	assert.Contains(t, out, "some components may already be installed")
	assert.Contains(t, out, "installed xact, vcrun2022")
	env.cmd.AssertExpectations(t)
}

func TestDeps_RequiresQuery(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("deps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query is required")
}

func TestShortcutAddAndList(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.fixture.AddUser("1234")
	require.NoError(t, err)

	out, err := env.run("shortcut", "add", "--name", "Mod Organizer 2", "--exe", "/home/deck/MO2/ModOrganizer.exe")
	require.NoError(t, err)
	assert.Contains(t, out, "user 1234: added as entry 0")
	assert.Contains(t, out, "start Steam to see the shortcut")

	out, err = env.run("shortcut", "add", "--name", "Mod Organizer 2", "--exe", "/home/deck/MO2/ModOrganizer.exe")
	require.NoError(t, err)
	assert.Contains(t, out, "user 1234: already present")

	out, err = env.run("shortcut", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Mod Organizer 2")
	assert.Contains(t, out, `"/home/deck/MO2/ModOrganizer.exe"`)
}

func TestShortcutAdd_RequiresFlags(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("shortcut", "add", "--name", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exe")
}

func TestExtract_MissingArchive(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("extract", filepath.Join(t.TempDir(), "nope.7z"), t.TempDir())
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestVerboseLogsToStderr(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("-vv", "libraries")
	require.NoError(t, err)
	assert.Contains(t, env.stderr.String(), "command started")
	assert.FileExists(t, filepath.Join(env.app.LogDir, config.LogFile))
}
