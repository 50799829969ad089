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

package launcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PitDeckProject/pitdeck/pkg/apps"
	"github.com/PitDeckProject/pitdeck/pkg/discover"
	"github.com/PitDeckProject/pitdeck/pkg/testing/mocks"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeQuery struct {
	running map[string]bool
	err     error
	mu      sync.Mutex
}

func (f *fakeQuery) IsRunning(_ context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	return f.running[strings.ToLower(name)], nil
}

func (f *fakeQuery) set(name string, running bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.running == nil {
		f.running = make(map[string]bool)
	}
	f.running[strings.ToLower(name)] = running
}

type fakeKiller struct {
	counts map[string]int
	errs   map[string]error
	calls  []string
	mu     sync.Mutex
}

func (f *fakeKiller) KillAll(_ context.Context, name string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.ToLower(name)
	f.calls = append(f.calls, key)
	if err := f.errs[key]; err != nil {
		return 0, err
	}
	n := f.counts[key]
	f.counts[key] = 0
	return n, nil
}

type fakeStore struct {
	paths map[string]string
	sets  int
	mu    sync.Mutex
}

func (f *fakeStore) AppPath(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.paths[id]
}

func (f *fakeStore) SetAppPath(id, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.paths == nil {
		f.paths = make(map[string]string)
	}
	f.paths[id] = path
	f.sets++
}

type fakeResolver struct {
	paths map[string]string
	mu    sync.Mutex
	calls int
}

func (f *fakeResolver) Resolve(desc apps.Descriptor, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	path, ok := f.paths[desc.ID]
	if !ok {
		return "", discover.ErrNotFound
	}
	return path, nil
}

const crewChiefPath = `C:\Program Files (x86)\Britton IT Ltd\CrewChiefV4\CrewChiefV4.exe`

func newTestManager(
	resolver Resolver,
	query ProcessQuery,
	killer ProcessKiller,
	spawner *mocks.MockSpawner,
	clock clockwork.Clock,
) (*Manager, *fakeStore) {
	store := &fakeStore{}
	if resolver == nil {
		resolver = &fakeResolver{}
	}
	if query == nil {
		query = &fakeQuery{}
	}
	if killer == nil {
		killer = &fakeKiller{counts: map[string]int{}}
	}
	m := NewManager(apps.NewRegistry(), store, resolver, query, killer, spawner, clock)
	return m, store
}

func TestLaunchUnknownApp(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(nil, nil, nil, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	_, _, err := m.Launch(context.Background(), "acc")
	require.ErrorIs(t, err, ErrUnknownApp)
}

func TestLaunchUnresolvedReturnsNotFound(t *testing.T) {
	t.Parallel()

	spawner := &mocks.MockSpawner{}
	m, store := newTestManager(&fakeResolver{}, nil, nil, spawner, clockwork.NewFakeClock())

	status, path, err := m.Launch(context.Background(), "crewchief")
	require.NoError(t, err)
	assert.Equal(t, StatusNotFound, status)
	assert.Empty(t, path)
	assert.Zero(t, store.sets, "nothing to persist without a resolved path")
	spawner.AssertNotCalled(t, "Spawn", mock.Anything)
}

func TestLaunchAlreadyRunningSkipsSpawn(t *testing.T) {
	t.Parallel()

	query := &fakeQuery{}
	query.set("CrewChiefV4.exe", true)
	spawner := &mocks.MockSpawner{}
	resolver := &fakeResolver{paths: map[string]string{"crewchief": crewChiefPath}}
	m, _ := newTestManager(resolver, query, nil, spawner, clockwork.NewFakeClock())

	status, path, err := m.Launch(context.Background(), "crewchief")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, status)
	assert.Equal(t, crewChiefPath, path)
	spawner.AssertNotCalled(t, "Spawn", mock.Anything)
}

func TestLaunchVerifiedRunning(t *testing.T) {
	t.Parallel()

	query := &fakeQuery{}
	spawner := &mocks.MockSpawner{}
	spawner.On("Spawn", crewChiefPath).Return(nil)
	resolver := &fakeResolver{paths: map[string]string{"crewchief": crewChiefPath}}
	clock := clockwork.NewFakeClock()
	m, store := newTestManager(resolver, query, nil, spawner, clock)

	type result struct {
		status Status
		path   string
		err    error
	}
	done := make(chan result, 1)
	go func() {
		status, path, err := m.Launch(context.Background(), "crewchief")
		done <- result{status, path, err}
	}()

	// launch is now parked in the verification delay
	clock.BlockUntil(1)
	query.set("CrewChiefV4.exe", true)
	clock.Advance(2 * time.Second)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, StatusRunning, res.status)
	assert.Equal(t, crewChiefPath, res.path)
	assert.Equal(t, crewChiefPath, store.AppPath("crewchief"),
		"auto-detected path is persisted for the next launch")
	spawner.AssertExpectations(t)
}

func TestLaunchAbsentAfterDelayFails(t *testing.T) {
	t.Parallel()

	spawner := &mocks.MockSpawner{}
	spawner.On("Spawn", crewChiefPath).Return(nil)
	resolver := &fakeResolver{paths: map[string]string{"crewchief": crewChiefPath}}
	clock := clockwork.NewFakeClock()
	m, _ := newTestManager(resolver, &fakeQuery{}, nil, spawner, clock)

	done := make(chan Status, 1)
	go func() {
		status, _, _ := m.Launch(context.Background(), "crewchief")
		done <- status
	}()

	clock.BlockUntil(1)
	clock.Advance(2 * time.Second)

	assert.Equal(t, StatusFailed, <-done)
}

func TestLaunchSpawnErrorFails(t *testing.T) {
	t.Parallel()

	spawner := &mocks.MockSpawner{}
	spawner.On("Spawn", crewChiefPath).Return(errors.New("permission denied"))
	resolver := &fakeResolver{paths: map[string]string{"crewchief": crewChiefPath}}
	m, _ := newTestManager(resolver, nil, nil, spawner, clockwork.NewFakeClock())

	status, path, err := m.Launch(context.Background(), "crewchief")
	require.NoError(t, err, "spawn failures are absorbed, not propagated")
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, crewChiefPath, path)
}

func TestLaunchSteamURLOpensViaProtocol(t *testing.T) {
	t.Parallel()

	url := discover.SteamRunURL("266410")
	query := &fakeQuery{}
	spawner := &mocks.MockSpawner{}
	spawner.On("OpenURL", url).Return(nil)
	resolver := &fakeResolver{paths: map[string]string{"iracing": url}}
	clock := clockwork.NewFakeClock()
	m, _ := newTestManager(resolver, query, nil, spawner, clock)

	done := make(chan Status, 1)
	go func() {
		status, _, _ := m.Launch(context.Background(), "iracing")
		done <- status
	}()

	// Steam gets a longer verification window
	clock.BlockUntil(1)
	query.set("iRacingUI.exe", true)
	clock.Advance(3 * time.Second)

	assert.Equal(t, StatusRunning, <-done)
	spawner.AssertExpectations(t)
	spawner.AssertNotCalled(t, "Spawn", mock.Anything)
}

func TestLaunchDoesNotRewriteUnchangedSavedPath(t *testing.T) {
	t.Parallel()

	query := &fakeQuery{}
	query.set("CrewChiefV4.exe", true)
	resolver := &fakeResolver{paths: map[string]string{"crewchief": crewChiefPath}}
	m, store := newTestManager(resolver, query, nil, &mocks.MockSpawner{}, clockwork.NewFakeClock())
	store.SetAppPath("crewchief", crewChiefPath)
	store.sets = 0

	_, _, err := m.Launch(context.Background(), "crewchief")
	require.NoError(t, err)
	assert.Zero(t, store.sets)
}

func TestCloseNothingRunning(t *testing.T) {
	t.Parallel()

	killer := &fakeKiller{counts: map[string]int{}}
	m, _ := newTestManager(nil, nil, killer, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	status, err := m.Close(context.Background(), "simhub")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status)
	assert.Equal(t, []string{"simhubwpf.exe"}, killer.calls)
}

func TestCloseKillsPrimaryAndAuxiliary(t *testing.T) {
	t.Parallel()

	killer := &fakeKiller{counts: map[string]int{
		"garage61-launcher.exe": 1,
		"garage61-agent.exe":    1,
	}}
	query := &fakeQuery{}
	m, _ := newTestManager(nil, query, killer, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	status, err := m.Close(context.Background(), "garage61")
	require.NoError(t, err)
	assert.Equal(t, StatusStopped, status)
	assert.Equal(t, []string{"garage61-launcher.exe", "garage61-agent.exe"}, killer.calls)

	// the auxiliary never surfaces in displayed status
	st, err := m.Status(context.Background(), "garage61")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, st)
}

func TestClosePrimaryFailureStillKillsAuxiliary(t *testing.T) {
	t.Parallel()

	killer := &fakeKiller{
		counts: map[string]int{"garage61-agent.exe": 1},
		errs:   map[string]error{"garage61-launcher.exe": errors.New("access denied")},
	}
	m, _ := newTestManager(nil, nil, killer, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	status, err := m.Close(context.Background(), "garage61")
	require.NoError(t, err)
	assert.Equal(t, StatusStopped, status)
	assert.Equal(t, []string{"garage61-launcher.exe", "garage61-agent.exe"}, killer.calls)
}

func TestCloseTwiceIsStoppedThenIdle(t *testing.T) {
	t.Parallel()

	killer := &fakeKiller{counts: map[string]int{"bloops.exe": 1}}
	m, _ := newTestManager(nil, nil, killer, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	first, err := m.Close(context.Background(), "bloops")
	require.NoError(t, err)
	assert.Equal(t, StatusStopped, first)

	second, err := m.Close(context.Background(), "bloops")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, second)
}

func TestCloseUnknownApp(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(nil, nil, nil, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	_, err := m.Close(context.Background(), "acc")
	require.ErrorIs(t, err, ErrUnknownApp)
}

func TestStatus(t *testing.T) {
	t.Parallel()

	query := &fakeQuery{}
	query.set("Fanatec.exe", true)
	m, _ := newTestManager(nil, query, nil, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	status, err := m.Status(context.Background(), "fanatec")
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, status)

	status, err = m.Status(context.Background(), "simhub")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status)

	_, err = m.Status(context.Background(), "acc")
	require.ErrorIs(t, err, ErrUnknownApp)
}

func TestStatusAbsorbsEnumerationFailure(t *testing.T) {
	t.Parallel()

	query := &fakeQuery{err: errors.New("procfs unavailable")}
	m, _ := newTestManager(nil, query, nil, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	status, err := m.Status(context.Background(), "fanatec")
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, status)
}

func TestLaunchAllIsIndependentlyFallible(t *testing.T) {
	t.Parallel()

	// only crewchief resolves, and it is already running so no spawn or
	// verification delay is involved
	query := &fakeQuery{}
	query.set("CrewChiefV4.exe", true)
	resolver := &fakeResolver{paths: map[string]string{"crewchief": crewChiefPath}}
	m, _ := newTestManager(resolver, query, nil, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	results := m.LaunchAll(context.Background())

	require.Len(t, results, m.Registry().Len())
	assert.Equal(t, StatusRunning, results["crewchief"])
	for _, desc := range m.Registry().All() {
		if desc.ID == "crewchief" {
			continue
		}
		assert.Equal(t, StatusNotFound, results[desc.ID], desc.ID)
	}
}

func TestCloseAll(t *testing.T) {
	t.Parallel()

	killer := &fakeKiller{counts: map[string]int{
		"garage61-launcher.exe": 1,
		"garage61-agent.exe":    1,
	}}
	m, _ := newTestManager(nil, nil, killer, &mocks.MockSpawner{}, clockwork.NewFakeClock())

	results := m.CloseAll(context.Background())

	require.Len(t, results, m.Registry().Len())
	assert.Equal(t, StatusStopped, results["garage61"])
	assert.Equal(t, StatusIdle, results["simhub"])
	assert.Equal(t, StatusIdle, results["iracing"])
}
