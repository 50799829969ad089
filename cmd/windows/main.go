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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/PitDeckProject/pitdeck/pkg/apps"
	"github.com/PitDeckProject/pitdeck/pkg/config"
	"github.com/PitDeckProject/pitdeck/pkg/helpers"
	"github.com/PitDeckProject/pitdeck/pkg/launcher"
	"github.com/PitDeckProject/pitdeck/pkg/ui/systray"
	"github.com/adrg/xdg"
	"github.com/rs/zerolog"

	_ "embed"
)

//go:embed systrayicon.ico
var icon []byte

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	tempDir := filepath.Join(os.TempDir(), config.AppName)
	err := helpers.InitLogging(tempDir, []io.Writer{
		zerolog.ConsoleWriter{Out: os.Stderr},
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	configDir := filepath.Join(xdg.ConfigHome, config.AppName)
	cfg, err := config.NewConfig(configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	mgr := launcher.NewManager(apps.NewRegistry(), cfg, nil, nil, nil, nil, nil)

	systray.Run(cfg, mgr, icon, tempDir)
	return nil
}
