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

// Status is the observed state of a managed application at a point in
// time. It is recomputed on every query and never persisted.
type Status int

const (
	// StatusIdle means the app is not running and nothing was attempted.
	StatusIdle Status = iota
	// StatusStarting means a launch was attempted and verification is
	// pending.
	StatusStarting
	// StatusRunning means the primary process was confirmed present.
	StatusRunning
	// StatusFailed means a launch was attempted but the process was
	// absent after the verification delay, or the spawn itself failed.
	StatusFailed
	// StatusStopped means the app was running and termination was
	// attempted.
	StatusStopped
	// StatusNotFound means no executable path could be resolved.
	StatusNotFound
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusStarting:
		return "starting"
	case StatusRunning:
		return "running"
	case StatusFailed:
		return "failed"
	case StatusStopped:
		return "stopped"
	case StatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
