//go:build !windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package steam

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// FindSteamDir locates the Steam installation directory on Linux and
// macOS by probing the usual install locations. A config override wins
// over detection.
func (c *Client) FindSteamDir(cfg *config.Instance) string {
	if cfg != nil {
		if def := cfg.LookupLauncherDefaults(launchers.IDSteam); def.InstallDir != "" {
			if exists, _ := afero.DirExists(c.fs, def.InstallDir); exists {
				log.Debug().Msgf("using configured Steam directory: %s", def.InstallDir)
				return def.InstallDir
			}
			log.Warn().Msgf("configured Steam directory not found: %s", def.InstallDir)
		}
	}

	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".steam", "steam"),
			filepath.Join(home, ".local", "share", "Steam"),
			// Flatpak
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".steam", "steam"),
			// macOS
			filepath.Join(home, "Library", "Application Support", "Steam"),
		)
	}
	candidates = append(candidates, c.opts.ExtraPaths...)

	for _, dir := range candidates {
		if exists, _ := afero.DirExists(c.fs, dir); exists {
			log.Debug().Msgf("found Steam installation: %s", dir)
			return dir
		}
	}

	log.Debug().Msgf("Steam detection failed, using fallback: %s", c.opts.FallbackPath)
	return c.opts.FallbackPath
}
