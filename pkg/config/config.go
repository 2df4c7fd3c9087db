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

package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "MODBRIDGE_CFG"
)

type Values struct {
	Dependencies Dependencies `toml:"dependencies,omitempty"`
	Proton       Proton       `toml:"proton,omitempty"`
	Steam        Steam        `toml:"steam"`
	Tools        Tools        `toml:"tools"`
	Timeouts     Timeouts     `toml:"timeouts"`
	ConfigSchema int          `toml:"config_schema"`
	DebugLogging bool         `toml:"debug_logging"`
}

type Steam struct {
	// Root overrides Steam root discovery when set. A leading "~/" is
	// expanded to the user's home directory.
	Root         string `toml:"root,omitempty"`
	CheckFlatpak bool   `toml:"check_flatpak"`
}

type Proton struct {
	// Preferred names the runtime used when Steam maps none to the game.
	// An exact directory name wins, otherwise the first discovered runtime
	// whose name contains it, ignoring case. Empty selects the first
	// runtime found.
	Preferred string `toml:"preferred,omitempty"`
}

// Tools holds argv prefixes for the external programs. The first element is
// the executable, the rest are prepended to every invocation.
type Tools struct {
	Protontricks []string `toml:"protontricks" validate:"min=1,dive,required"`
	Extractor    []string `toml:"extractor" validate:"min=1,dive,required"`
}

type Timeouts struct {
	ListingSeconds           int `toml:"listing_seconds" validate:"gte=1"`
	DependencyInstallSeconds int `toml:"dependency_install_seconds" validate:"gte=1"`
	ExtractionSeconds        int `toml:"extraction_seconds" validate:"gte=1"`
}

type Dependencies struct {
	// Overrides replaces the built-in component list for an AppID.
	Overrides map[string][]string `toml:"overrides,omitempty" validate:"dive,keys,numeric,endkeys,min=1,dive,required"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
	Steam: Steam{
		CheckFlatpak: true,
	},
	Tools: Tools{
		Protontricks: []string{"protontricks"},
		Extractor:    []string{"7z"},
	},
	Timeouts: Timeouts{
		ListingSeconds:           30,
		DependencyInstallSeconds: 1800,
		ExtractionSeconds:        600,
	},
}

// clone copies v so decoding a file on top of it never writes through to
// slices or maps shared with the defaults.
func (v *Values) clone() Values {
	out := *v
	out.Tools.Protontricks = slices.Clone(v.Tools.Protontricks)
	out.Tools.Extractor = slices.Clone(v.Tools.Extractor)
	if v.Dependencies.Overrides != nil {
		out.Dependencies.Overrides = make(map[string][]string, len(v.Dependencies.Overrides))
		for k, comps := range v.Dependencies.Overrides {
			out.Dependencies.Overrides[k] = slices.Clone(comps)
		}
	}
	return out
}

type Instance struct {
	validate *validator.Validate
	cfgPath  string
	vals     Values
	defaults Values
	mu       sync.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	log.Debug().Msgf("env config path: %s", cfgPath)

	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := &Instance{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cfgPath:  cfgPath,
		vals:     defaults.clone(),
		defaults: defaults.clone(),
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		err := os.MkdirAll(filepath.Dir(cfgPath), 0o750)
		if err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		err = cfg.Save()
		if err != nil {
			return nil, err
		}
	}

	err := cfg.Load()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Fields absent from the file keep their default values.
	newVals := c.defaults.clone()
	err = toml.Unmarshal(data, &newVals)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Error().Msgf(
			"schema version mismatch: got %d, expecting %d",
			newVals.ConfigSchema,
			SchemaVersion,
		)
		return errors.New("schema version mismatch")
	}

	if c.validate == nil {
		c.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if err := c.validate.Struct(&newVals); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.cfgPath, err)
	}

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// SteamRoot returns the configured Steam root override with "~/" expanded,
// or an empty string when discovery should run.
func (c *Instance) SteamRoot() string {
	c.mu.RLock()
	root := c.vals.Steam.Root
	c.mu.RUnlock()

	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Warn().Err(err).Msg("failed to expand steam root")
			return root
		}
		return filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	return root
}

func (c *Instance) SetSteamRoot(root string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Steam.Root = root
}

func (c *Instance) CheckFlatpak() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.CheckFlatpak
}

func (c *Instance) PreferredProton() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Proton.Preferred
}

func (c *Instance) SetPreferredProton(hint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Proton.Preferred = hint
}

// ProtontricksCommand returns a copy of the protontricks argv prefix.
func (c *Instance) ProtontricksCommand() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Tools.Protontricks)
}

// ExtractorCommand returns a copy of the external extractor argv prefix.
func (c *Instance) ExtractorCommand() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.vals.Tools.Extractor)
}

func (c *Instance) ListingTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Timeouts.ListingSeconds) * time.Second
}

func (c *Instance) DependencyInstallTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Timeouts.DependencyInstallSeconds) * time.Second
}

func (c *Instance) ExtractionTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Timeouts.ExtractionSeconds) * time.Second
}

// DependencyOverrides returns the configured component lists keyed by
// AppID. Keys that do not fit a uint32 are skipped.
func (c *Instance) DependencyOverrides() map[uint32][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[uint32][]string, len(c.vals.Dependencies.Overrides))
	for _, key := range slices.Sorted(maps.Keys(c.vals.Dependencies.Overrides)) {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			log.Warn().Str("appid", key).Msg("ignoring dependency override with invalid appid")
			continue
		}
		out[uint32(id)] = slices.Clone(c.vals.Dependencies.Overrides[key])
	}
	return out
}
