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

// Package apps defines the static table of applications and games managed
// by PitDeck. Descriptors are fixed at startup and never mutated; only the
// resolved install path and the observed process status change at runtime.
package apps

// Descriptor is the static metadata for one managed application.
type Descriptor struct {
	// ID is the stable key used for config persistence and lookups.
	ID string
	// Name is the human-readable name shown in the UI.
	Name string
	// Exe is the image name of the primary process, matched
	// case-insensitively when querying running state.
	Exe string
	// AuxExes are background processes bundled with the primary. They are
	// terminated together with it but never factor into displayed status.
	AuxExes []string
	// ShortcutNames are Start Menu shortcut file names to probe, most
	// likely first.
	ShortcutNames []string
	// Candidates are conventional install paths to probe in order. Entries
	// may contain Windows-style environment variables (%APPDATA% etc.)
	// which are expanded at resolution time.
	Candidates []string
	// SteamAppID, if set, marks the app as distributed through Steam. It
	// enables the registry probe and steam:// protocol launches.
	SteamAppID string
	// SteamRelExe is the executable path relative to the Steam install
	// directory, used to validate a registry-resolved install.
	SteamRelExe string
}

// Game reports whether the descriptor is a racing game client rather than
// a companion app. Games get a longer launch verification window.
func (d Descriptor) Game() bool {
	return d.SteamAppID != ""
}

// ProcessNames returns every process name associated with the descriptor,
// primary first.
func (d Descriptor) ProcessNames() []string {
	names := make([]string, 0, len(d.AuxExes)+1)
	names = append(names, d.Exe)
	names = append(names, d.AuxExes...)
	return names
}

// Registry is an immutable collection of descriptors, constructed once at
// startup and passed explicitly to the resolver and lifecycle manager.
type Registry struct {
	byID  map[string]Descriptor
	order []string
}

// NewRegistry builds the registry of managed applications.
func NewRegistry() *Registry {
	return newRegistry(defaultDescriptors())
}

func newRegistry(descs []Descriptor) *Registry {
	r := &Registry{byID: make(map[string]Descriptor, len(descs))}
	for _, d := range descs {
		if _, ok := r.byID[d.ID]; ok {
			continue
		}
		r.byID[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

// Lookup returns the descriptor for an ID.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns every descriptor in definition order.
func (r *Registry) All() []Descriptor {
	descs := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		descs = append(descs, r.byID[id])
	}
	return descs
}

// Len returns the number of managed applications.
func (r *Registry) Len() int {
	return len(r.order)
}

func defaultDescriptors() []Descriptor {
	return []Descriptor{
		{
			ID:            "fanatec",
			Name:          "Fanatec Control Panel",
			Exe:           "Fanatec.exe",
			ShortcutNames: []string{"Fanatec.lnk", "Fanatec Control Panel.lnk"},
			Candidates: []string{
				`C:\Program Files\Fanatec\FanatecUI\UI\Fanatec.exe`,
				`C:\Program Files (x86)\Fanatec\FanatecUI\UI\Fanatec.exe`,
			},
		},
		{
			ID:            "crewchief",
			Name:          "Crew Chief V4",
			Exe:           "CrewChiefV4.exe",
			ShortcutNames: []string{"Crew Chief V4.lnk", "CrewChiefV4.lnk"},
			Candidates: []string{
				`C:\Program Files (x86)\Britton IT Ltd\CrewChiefV4\CrewChiefV4.exe`,
				`C:\Program Files\Britton IT Ltd\CrewChiefV4\CrewChiefV4.exe`,
			},
		},
		{
			ID:            "tradingpaints",
			Name:          "Trading Paints",
			Exe:           "Trading Paints.exe",
			ShortcutNames: []string{"Trading Paints.lnk"},
			Candidates: []string{
				`C:\Program Files (x86)\Rhinode LLC\Trading Paints\Trading Paints.exe`,
				`C:\Program Files\Rhinode LLC\Trading Paints\Trading Paints.exe`,
			},
		},
		{
			ID:            "simhub",
			Name:          "SimHub",
			Exe:           "SimHubWPF.exe",
			ShortcutNames: []string{"SimHub.lnk"},
			Candidates: []string{
				`C:\Program Files (x86)\SimHub\SimHubWPF.exe`,
				`C:\Program Files\SimHub\SimHubWPF.exe`,
			},
		},
		{
			ID:      "garage61",
			Name:    "Garage 61",
			Exe:     "garage61-launcher.exe",
			AuxExes: []string{"garage61-agent.exe"},
			ShortcutNames: []string{
				"Garage 61 Telemetry Agent.lnk",
				"Garage61.lnk",
				"garage61.lnk",
			},
			Candidates: []string{
				`%APPDATA%\garage61-install\garage61-launcher.exe`,
			},
		},
		{
			ID:            "tracktitan",
			Name:          "Track Titan",
			Exe:           "TrackTitanDesktopApplication.exe",
			ShortcutNames: []string{"Track Titan.lnk", "TrackTitan.lnk"},
			Candidates: []string{
				`%LOCALAPPDATA%\Programs\track-titan-ghost-application\TrackTitanDesktopApplication.exe`,
			},
		},
		{
			ID:            "bloops",
			Name:          "Bloops",
			Exe:           "Bloops.exe",
			ShortcutNames: []string{"Bloops.lnk"},
			Candidates: []string{
				`%LOCALAPPDATA%\Bloops\current\Bloops.exe`,
			},
		},
		{
			ID:          "iracing",
			Name:        "iRacing",
			Exe:         "iRacingUI.exe",
			SteamAppID:  "266410",
			SteamRelExe: `steamapps\common\iRacing\ui\iRacingUI.exe`,
		},
	}
}
