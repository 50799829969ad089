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

// Package discover locates installed executables for managed applications.
// A path is searched for across uncertain sources in a fixed order: a
// previously saved path, Start Menu shortcuts, conventional install
// directories, and the Steam registry. The first existing match wins.
package discover

import (
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/PitDeckProject/pitdeck/pkg/apps"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// ErrNotFound is returned when no candidate source yields an existing path.
var ErrNotFound = errors.New("no executable path found")

const steamURLPrefix = "steam://rungameid/"

// IsSteamURL reports whether a resolved path is a steam:// protocol launch
// URL rather than a filesystem path.
func IsSteamURL(path string) bool {
	return strings.HasPrefix(path, steamURLPrefix)
}

// SteamRunURL builds the protocol URL that asks the Steam client to launch
// an app.
func SteamRunURL(appID string) string {
	return steamURLPrefix + appID
}

// ShortcutProber resolves Start Menu shortcuts to their link targets.
type ShortcutProber interface {
	// Resolve searches known Start Menu locations for a shortcut matching
	// one of names and returns its target path. The second return is false
	// when nothing was found or the facility is unavailable.
	Resolve(names []string) (string, bool)
}

// SteamProber reads the Steam client's registry-recorded state.
type SteamProber interface {
	// InstallDir returns the Steam client install directory.
	InstallDir() (string, bool)
	// AppInstalled reports whether the Steam app ID has an uninstall
	// registry entry, i.e. the game is installed.
	AppInstalled(appID string) bool
}

// Resolver finds executable paths for descriptors. It holds no state
// between calls and caches nothing; callers decide whether to persist a
// result.
type Resolver struct {
	fs        afero.Fs
	shortcuts ShortcutProber
	steam     SteamProber
}

// NewResolver creates a resolver. Nil arguments select the host-backed
// defaults: the OS filesystem and the platform's shortcut and registry
// probes.
func NewResolver(fs afero.Fs, shortcuts ShortcutProber, steam SteamProber) *Resolver {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if shortcuts == nil {
		shortcuts = newShortcutProber()
	}
	if steam == nil {
		steam = newSteamProber()
	}
	return &Resolver{fs: fs, shortcuts: shortcuts, steam: steam}
}

// Resolve produces a launchable path for a descriptor, trying each source
// in order and short-circuiting on the first hit. savedPath is the
// externally persisted path from a previous resolution or a manual browse;
// when it still exists it is trusted outright and no probing happens.
// Probe and filesystem errors count as "not found here" and never fail the
// whole resolution.
func (r *Resolver) Resolve(desc apps.Descriptor, savedPath string) (string, error) {
	if savedPath != "" && r.exists(savedPath) {
		log.Debug().Msgf("%s: using saved path: %s", desc.ID, savedPath)
		return savedPath, nil
	}

	if len(desc.ShortcutNames) > 0 {
		if target, ok := r.shortcuts.Resolve(desc.ShortcutNames); ok && r.exists(target) {
			log.Debug().Msgf("%s: found via shortcut: %s", desc.ID, target)
			return target, nil
		}
	}

	for _, candidate := range desc.Candidates {
		path := expandWinEnv(candidate)
		if r.exists(path) {
			log.Debug().Msgf("%s: found at known location: %s", desc.ID, path)
			return path, nil
		}
	}

	if desc.SteamAppID != "" {
		if dir, ok := r.steam.InstallDir(); ok && desc.SteamRelExe != "" {
			path := filepath.Join(dir, desc.SteamRelExe)
			if r.exists(path) {
				log.Debug().Msgf("%s: found via Steam install dir: %s", desc.ID, path)
				return path, nil
			}
		}
		if r.steam.AppInstalled(desc.SteamAppID) {
			url := SteamRunURL(desc.SteamAppID)
			log.Debug().Msgf("%s: installed via Steam, using %s", desc.ID, url)
			return url, nil
		}
	}

	return "", ErrNotFound
}

func (r *Resolver) exists(path string) bool {
	info, err := r.fs.Stat(path)
	return err == nil && !info.IsDir()
}

var winEnvRe = regexp.MustCompile(`%[^%]+%`)

// expandWinEnv expands Windows-style %VAR% references against the process
// environment. Unset variables are left verbatim, which then simply fail
// the existence check.
func expandWinEnv(s string) string {
	return winEnvRe.ReplaceAllStringFunc(s, func(m string) string {
		if val, ok := os.LookupEnv(m[1 : len(m)-1]); ok {
			return val
		}
		return m
	})
}
