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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/rs/zerolog/log"
)

// startMenuProber resolves Start Menu shortcuts through the WScript.Shell
// COM object.
type startMenuProber struct{}

func newShortcutProber() ShortcutProber {
	return &startMenuProber{}
}

// startMenuDirs returns the per-user and all-users Start Menu program
// directories. Missing environment variables drop the entry.
func startMenuDirs() []string {
	dirs := make([]string, 0, 2)
	for _, env := range []string{"APPDATA", "ProgramData"} {
		base := os.Getenv(env)
		if base == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(base, "Microsoft", "Windows", "Start Menu", "Programs"))
	}
	return dirs
}

// Resolve walks the Start Menu directories for a shortcut whose file name
// matches one of names, then reads its link target. Unreadable directories
// and broken shortcuts are skipped; the caller re-validates the target.
func (p *startMenuProber) Resolve(names []string) (string, bool) {
	for _, dir := range startMenuDirs() {
		if _, err := os.Stat(dir); err != nil {
			continue
		}

		found := ""
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // unreadable entries are non-matches
			}
			if d.IsDir() {
				return nil
			}
			for _, name := range names {
				if strings.EqualFold(d.Name(), name) {
					found = path
					return filepath.SkipAll
				}
			}
			return nil
		})
		if err != nil || found == "" {
			continue
		}

		target, err := shortcutTarget(found)
		if err != nil {
			log.Debug().Err(err).Msgf("failed to read shortcut target: %s", found)
			continue
		}
		if target != "" {
			return target, true
		}
	}
	return "", false
}

// shortcutTarget reads the link target of a .lnk file via WScript.Shell.
func shortcutTarget(lnkPath string) (string, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		// S_FALSE (1) means COM was already initialized on this thread
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			return "", err //nolint:wrapcheck // probe errors are absorbed by the caller
		}
	}
	defer ole.CoUninitialize()

	unknown, err := oleutil.CreateObject("WScript.Shell")
	if err != nil {
		return "", err //nolint:wrapcheck // probe errors are absorbed by the caller
	}
	defer unknown.Release()

	shell, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return "", err //nolint:wrapcheck // probe errors are absorbed by the caller
	}
	defer shell.Release()

	shortcutRaw, err := oleutil.CallMethod(shell, "CreateShortcut", lnkPath)
	if err != nil {
		return "", err //nolint:wrapcheck // probe errors are absorbed by the caller
	}
	shortcut := shortcutRaw.ToIDispatch()
	defer shortcut.Release()

	targetRaw, err := oleutil.GetProperty(shortcut, "TargetPath")
	if err != nil {
		return "", err //nolint:wrapcheck // probe errors are absorbed by the caller
	}
	return targetRaw.ToString(), nil
}
