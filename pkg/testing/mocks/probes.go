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

// Package mocks holds shared testify mocks for the discovery probes and
// process primitives, so tests can assert on probe call counts without
// touching the host.
package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockShortcutProber is a testify mock for discover.ShortcutProber.
type MockShortcutProber struct {
	mock.Mock
}

func (m *MockShortcutProber) Resolve(names []string) (string, bool) {
	called := m.Called(names)
	return called.String(0), called.Bool(1)
}

// MockSteamProber is a testify mock for discover.SteamProber.
type MockSteamProber struct {
	mock.Mock
}

func (m *MockSteamProber) InstallDir() (string, bool) {
	called := m.Called()
	return called.String(0), called.Bool(1)
}

func (m *MockSteamProber) AppInstalled(appID string) bool {
	called := m.Called(appID)
	return called.Bool(0)
}

// MockSpawner is a testify mock for procs.Spawner.
type MockSpawner struct {
	mock.Mock
}

func (m *MockSpawner) Spawn(path string) error {
	called := m.Called(path)
	//nolint:wrapcheck // mock returns are asserted by the caller
	return called.Error(0)
}

func (m *MockSpawner) OpenURL(url string) error {
	called := m.Called(url)
	//nolint:wrapcheck // mock returns are asserted by the caller
	return called.Error(0)
}
