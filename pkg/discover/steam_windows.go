//go:build windows

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

package discover

import (
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows/registry"
)

// registrySteamProber reads Steam install state from the Windows registry.
type registrySteamProber struct{}

func newSteamProber() SteamProber {
	return &registrySteamProber{}
}

// InstallDir locates the Steam client install directory via the registry.
// 64-bit systems are tried first (most common).
func (*registrySteamProber) InstallDir() (string, bool) {
	paths := []string{
		`SOFTWARE\Wow6432Node\Valve\Steam`,
		`SOFTWARE\Valve\Steam`,
	}

	for _, path := range paths {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		installPath, _, err := key.GetStringValue("InstallPath")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if err != nil {
			continue
		}

		if _, statErr := os.Stat(installPath); statErr == nil {
			log.Debug().Msgf("found Steam installation via registry: %s", installPath)
			return installPath, true
		}
	}

	return "", false
}

// AppInstalled reports whether the Steam app has an uninstall entry, which
// Steam writes when a game is installed.
func (*registrySteamProber) AppInstalled(appID string) bool {
	keyPath := `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\Steam App ` + appID
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE)
	if err != nil {
		log.Debug().Msgf("Steam app %s not found in registry", appID)
		return false
	}
	if closeErr := key.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("error closing registry key")
	}
	log.Debug().Msgf("Steam app %s found in registry", appID)
	return true
}
