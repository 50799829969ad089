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

// Package procs wraps the OS process table behind query, kill, and spawn
// primitives. Every result is a point-in-time observation of an inherently
// racy process table, re-derived on demand and never cached.
package procs

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
)

// proc is a single entry in a process table snapshot.
type proc interface {
	Name() (string, error)
	Kill() error
}

type listFunc func(ctx context.Context) ([]proc, error)

type gopsutilProc struct {
	p *process.Process
}

func (g gopsutilProc) Name() (string, error) {
	//nolint:wrapcheck // raw gopsutil error is only inspected, never surfaced
	return g.p.Name()
}

func (g gopsutilProc) Kill() error {
	//nolint:wrapcheck // raw gopsutil error is only inspected, never surfaced
	return g.p.Kill()
}

func gopsutilList(ctx context.Context) ([]proc, error) {
	ps, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck // callers wrap with operation context
	}
	entries := make([]proc, 0, len(ps))
	for _, p := range ps {
		entries = append(entries, gopsutilProc{p: p})
	}
	return entries, nil
}

// PS queries and terminates processes by image name. The zero value is not
// usable; construct with NewPS.
type PS struct {
	list listFunc
}

// NewPS returns a PS backed by the host process table.
func NewPS() *PS {
	return &PS{list: gopsutilList}
}

// IsRunning reports whether any running process has the given image name,
// matched exactly and case-insensitively. Entries whose name cannot be read
// (the process exited mid-enumeration, or access was denied) are skipped.
func (ps *PS) IsRunning(ctx context.Context, name string) (bool, error) {
	entries, err := ps.list(ctx)
	if err != nil {
		return false, err
	}

	for _, entry := range entries {
		entryName, err := entry.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(entryName, name) {
			return true, nil
		}
	}
	return false, nil
}

// KillAll forcefully terminates every process with the given image name and
// returns how many were found. Kill failures for individual processes
// (already exited, access denied) are logged and swallowed so siblings are
// still attempted.
func (ps *PS) KillAll(ctx context.Context, name string) (int, error) {
	entries, err := ps.list(ctx)
	if err != nil {
		return 0, err
	}

	found := 0
	for _, entry := range entries {
		entryName, err := entry.Name()
		if err != nil {
			continue
		}
		if !strings.EqualFold(entryName, name) {
			continue
		}
		found++
		if err := entry.Kill(); err != nil {
			log.Debug().Err(err).Msgf("failed to kill process: %s", name)
		}
	}
	return found, nil
}
