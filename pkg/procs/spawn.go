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

package procs

// Spawner starts applications detached from the launcher process.
// Implementations must return an error on immediate start failure (bad
// path, permission denied); a started process is otherwise fire-and-forget
// and verified by the caller through the process table.
type Spawner interface {
	// Spawn starts the executable at path as an independent child process.
	// The path is passed as a literal program invocation, never through a
	// shell, so it cannot be interpreted as a command line.
	Spawn(path string) error

	// OpenURL hands a protocol URL (e.g. steam://rungameid/266410) to the
	// OS shell handler.
	OpenURL(url string) error
}

// ExecSpawner starts real processes via os/exec.
type ExecSpawner struct{}
