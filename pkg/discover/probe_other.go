//go:build !windows

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

// Start Menu shortcuts and the Windows registry do not exist off Windows.
// The stub probes report nothing found so the resolution chain stays
// environment tolerant and falls through to the remaining sources.

type noShortcutProber struct{}

func newShortcutProber() ShortcutProber {
	return noShortcutProber{}
}

func (noShortcutProber) Resolve(_ []string) (string, bool) {
	return "", false
}

type noSteamProber struct{}

func newSteamProber() SteamProber {
	return noSteamProber{}
}

func (noSteamProber) InstallDir() (string, bool) {
	return "", false
}

func (noSteamProber) AppInstalled(_ string) bool {
	return false
}
