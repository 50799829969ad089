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

package apps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	t.Run("contains_all_managed_apps", func(t *testing.T) {
		t.Parallel()

		for _, id := range []string{
			"fanatec", "crewchief", "tradingpaints", "simhub",
			"garage61", "tracktitan", "bloops", "iracing",
		} {
			_, ok := r.Lookup(id)
			assert.True(t, ok, "missing descriptor: %s", id)
		}
		assert.Equal(t, 8, r.Len())
	})

	t.Run("unknown_id_not_found", func(t *testing.T) {
		t.Parallel()

		_, ok := r.Lookup("acc")
		assert.False(t, ok)
	})

	t.Run("all_preserves_definition_order", func(t *testing.T) {
		t.Parallel()

		descs := r.All()
		require.Len(t, descs, r.Len())
		assert.Equal(t, "fanatec", descs[0].ID)
		assert.Equal(t, "iracing", descs[len(descs)-1].ID)
	})
}

func TestDescriptorProcessNames(t *testing.T) {
	t.Parallel()

	t.Run("primary_only", func(t *testing.T) {
		t.Parallel()

		d := Descriptor{ID: "simhub", Exe: "SimHubWPF.exe"}
		assert.Equal(t, []string{"SimHubWPF.exe"}, d.ProcessNames())
	})

	t.Run("primary_then_auxiliary", func(t *testing.T) {
		t.Parallel()

		d := Descriptor{
			ID:      "garage61",
			Exe:     "garage61-launcher.exe",
			AuxExes: []string{"garage61-agent.exe"},
		}
		assert.Equal(t,
			[]string{"garage61-launcher.exe", "garage61-agent.exe"},
			d.ProcessNames())
	})
}

func TestDescriptorGame(t *testing.T) {
	t.Parallel()

	r := NewRegistry()

	iracing, ok := r.Lookup("iracing")
	require.True(t, ok)
	assert.True(t, iracing.Game())

	crewchief, ok := r.Lookup("crewchief")
	require.True(t, ok)
	assert.False(t, crewchief.Game())
}

func TestNewRegistryIgnoresDuplicateIDs(t *testing.T) {
	t.Parallel()

	r := newRegistry([]Descriptor{
		{ID: "a", Exe: "a.exe"},
		{ID: "a", Exe: "other.exe"},
		{ID: "b", Exe: "b.exe"},
	})

	assert.Equal(t, 2, r.Len())
	d, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a.exe", d.Exe)
}
