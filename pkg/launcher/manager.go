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

// Package launcher orchestrates the lifecycle of managed applications:
// resolve a path, spawn, verify, and terminate. Every expected failure is
// absorbed into a Status value; the only hard error surface is passing an
// unknown app ID, which is a caller bug.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PitDeckProject/pitdeck/pkg/apps"
	"github.com/PitDeckProject/pitdeck/pkg/discover"
	"github.com/PitDeckProject/pitdeck/pkg/procs"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ErrUnknownApp is returned when an ID has no descriptor in the registry.
var ErrUnknownApp = errors.New("unknown app id")

const (
	// launchVerifyDelay is how long a spawned app gets to initialize
	// before its process is checked.
	launchVerifyDelay = 2 * time.Second
	// steamVerifyDelay is longer because the Steam client has to start
	// the game on our behalf.
	steamVerifyDelay = 3 * time.Second
)

// ProcessQuery reports whether a process with an image name is running.
type ProcessQuery interface {
	IsRunning(ctx context.Context, name string) (bool, error)
}

// ProcessKiller terminates every process with an image name, best effort,
// returning how many were found.
type ProcessKiller interface {
	KillAll(ctx context.Context, name string) (int, error)
}

// Resolver finds a launchable path for a descriptor.
type Resolver interface {
	Resolve(desc apps.Descriptor, savedPath string) (string, error)
}

// PathStore is the persisted app ID to path cache, owned by the config
// collaborator.
type PathStore interface {
	AppPath(id string) string
	SetAppPath(id, path string)
}

// Manager launches, terminates, and reports status for the managed
// applications. All operations are synchronous and blocking; callers that
// need a responsive UI run them off the event loop.
type Manager struct {
	registry *apps.Registry
	store    PathStore
	resolver Resolver
	query    ProcessQuery
	killer   ProcessKiller
	spawner  procs.Spawner
	clock    clockwork.Clock
}

// NewManager wires a manager from its collaborators. Nil resolver, query,
// killer, spawner, or clock select the host-backed defaults.
func NewManager(
	registry *apps.Registry,
	store PathStore,
	resolver Resolver,
	query ProcessQuery,
	killer ProcessKiller,
	spawner procs.Spawner,
	clock clockwork.Clock,
) *Manager {
	ps := procs.NewPS()
	if resolver == nil {
		resolver = discover.NewResolver(nil, nil, nil)
	}
	if query == nil {
		query = ps
	}
	if killer == nil {
		killer = ps
	}
	if spawner == nil {
		spawner = &procs.ExecSpawner{}
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Manager{
		registry: registry,
		store:    store,
		resolver: resolver,
		query:    query,
		killer:   killer,
		spawner:  spawner,
		clock:    clock,
	}
}

// Registry returns the managed application table.
func (m *Manager) Registry() *apps.Registry {
	return m.registry
}

// Launch resolves, spawns, and verifies one application. The returned path
// is the resolved location, empty when resolution failed. The verification
// delay always runs to completion once a spawn is attempted; there is no
// mid-operation cancellation.
func (m *Manager) Launch(ctx context.Context, id string) (Status, string, error) {
	desc, ok := m.registry.Lookup(id)
	if !ok {
		return StatusNotFound, "", fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}

	saved := m.store.AppPath(id)
	path, err := m.resolver.Resolve(desc, saved)
	if err != nil {
		log.Info().Msgf("%s: no install found", desc.Name)
		return StatusNotFound, "", nil
	}

	if m.isRunning(ctx, desc.Exe) {
		log.Info().Msgf("%s already running", desc.Name)
		return StatusRunning, path, nil
	}

	// remember a fresh auto-detection for the next launch
	if path != saved {
		m.store.SetAppPath(id, path)
	}

	delay := launchVerifyDelay
	if discover.IsSteamURL(path) {
		log.Info().Msgf("launching %s via Steam: %s", desc.Name, path)
		err = m.spawner.OpenURL(path)
		delay = steamVerifyDelay
	} else {
		log.Info().Msgf("launching %s: %s", desc.Name, path)
		err = m.spawner.Spawn(path)
	}
	if err != nil {
		log.Error().Err(err).Msgf("failed to launch %s", desc.Name)
		return StatusFailed, path, nil
	}

	m.clock.Sleep(delay)

	if !m.isRunning(ctx, desc.Exe) {
		log.Warn().Msgf("%s not running after launch", desc.Name)
		return StatusFailed, path, nil
	}
	return StatusRunning, path, nil
}

// Close forcefully terminates every process of one application, the
// primary and any bundled auxiliary. There is no graceful-shutdown grace
// period. Per-process kill failures do not abort the rest.
func (m *Manager) Close(ctx context.Context, id string) (Status, error) {
	desc, ok := m.registry.Lookup(id)
	if !ok {
		return StatusIdle, fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}

	found := 0
	for _, name := range desc.ProcessNames() {
		n, err := m.killer.KillAll(ctx, name)
		if err != nil {
			log.Warn().Err(err).Msgf("failed to enumerate processes for %s", name)
			continue
		}
		found += n
	}

	if found == 0 {
		return StatusIdle, nil
	}
	log.Info().Msgf("closed %s (%d processes)", desc.Name, found)
	return StatusStopped, nil
}

// Status reports whether an application's primary process is currently
// running. Auxiliary processes never factor in. This is a pure read with
// no side effects, safe to call on a polling cadence.
func (m *Manager) Status(ctx context.Context, id string) (Status, error) {
	desc, ok := m.registry.Lookup(id)
	if !ok {
		return StatusIdle, fmt.Errorf("%w: %s", ErrUnknownApp, id)
	}
	if m.isRunning(ctx, desc.Exe) {
		return StatusRunning, nil
	}
	return StatusIdle, nil
}

// LaunchAll launches every managed application in registry order. Each
// launch is independently fallible; the result maps app IDs to their
// individual outcomes.
func (m *Manager) LaunchAll(ctx context.Context) map[string]Status {
	results := make(map[string]Status, m.registry.Len())
	for _, desc := range m.registry.All() {
		status, _, err := m.Launch(ctx, desc.ID)
		if err != nil {
			// cannot happen for registry-sourced IDs
			log.Error().Err(err).Msgf("launch all: %s", desc.ID)
			continue
		}
		results[desc.ID] = status
	}
	return results
}

// CloseAll terminates every managed application in registry order, each
// independently fallible.
func (m *Manager) CloseAll(ctx context.Context) map[string]Status {
	results := make(map[string]Status, m.registry.Len())
	for _, desc := range m.registry.All() {
		status, err := m.Close(ctx, desc.ID)
		if err != nil {
			log.Error().Err(err).Msgf("close all: %s", desc.ID)
			continue
		}
		results[desc.ID] = status
	}
	return results
}

// isRunning absorbs enumeration failures into "not running": a status is a
// point-in-time observation and the next poll re-derives it.
func (m *Manager) isRunning(ctx context.Context, exe string) bool {
	running, err := m.query.IsRunning(ctx, exe)
	if err != nil {
		log.Warn().Err(err).Msgf("process query failed for %s", exe)
		return false
	}
	return running
}
