// PitDeck
// Copyright (c) 2026 The PitDeck Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of PitDeck.
//
// PitDeck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PitDeck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PitDeck.  If not, see <http://www.gnu.org/licenses/>.

// Package config persists PitDeck settings, most importantly the app ID to
// executable path map seeding path resolution. The file is a best-effort
// cache, never the source of truth for existence: consumers must re-validate
// any stored path before relying on it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PitDeckProject/pitdeck/pkg/helpers/syncutil"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "PITDECK_CFG"
)

type Values struct {
	Apps         Apps `toml:"apps,omitempty"`
	ConfigSchema int  `toml:"config_schema"`
	DebugLogging bool `toml:"debug_logging"`
}

type Apps struct {
	// Paths maps app IDs to their last known executable path.
	Paths map[string]string `toml:"paths,omitempty"`
}

var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
}

// Instance is a loaded config file. All access goes through the mutex; the
// launcher app is single-instance per user session so there is no
// cross-process locking.
type Instance struct {
	cfgPath  string
	vals     Values
	defaults Values
	mu       syncutil.RWMutex
}

//nolint:gocritic // config struct copied for immutability
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := os.Getenv(CfgEnv)
	if cfgPath == "" {
		cfgPath = filepath.Join(configDir, CfgFile)
	}

	cfg := Instance{
		cfgPath:  cfgPath,
		vals:     defaults,
		defaults: defaults,
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		log.Info().Msg("saving new default config to disk")

		if err := os.MkdirAll(filepath.Dir(cfgPath), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		if err := cfg.Save(); err != nil {
			return nil, err
		}
	}

	if err := cfg.Load(); err != nil {
		return nil, err
	}

	return &cfg, nil
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

	// Start with defaults, then unmarshal file values on top, so fields
	// missing from the file retain their default values.
	newVals := c.defaults
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

	c.vals = newVals
	return nil
}

func (c *Instance) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save()
}

func (c *Instance) save() error {
	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	c.vals.ConfigSchema = SchemaVersion

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(c.cfgPath, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the location of the config file on disk.
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

// AppPath returns the saved executable path for an app ID, or empty if none
// was saved.
func (c *Instance) AppPath(id string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Apps.Paths[id]
}

// SetAppPath saves an app's executable path and writes the config to disk.
// Write failures are logged, not returned; the path stays set in memory.
func (c *Instance) SetAppPath(id, path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vals.Apps.Paths == nil {
		c.vals.Apps.Paths = make(map[string]string)
	}
	c.vals.Apps.Paths[id] = path

	if err := c.save(); err != nil {
		log.Warn().Err(err).Msgf("failed to persist path for %s", id)
	}
}
