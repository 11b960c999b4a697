//go:build !windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package gog

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// FindGalaxyDir returns the configured or fallback Galaxy directory.
// Galaxy only registers itself in the Windows registry; outside Windows
// detection needs an explicit path.
func (c *Client) FindGalaxyDir(cfg *config.Instance) string {
	if cfg != nil {
		if def := cfg.LookupLauncherDefaults(launchers.IDGog); def.InstallDir != "" {
			if exists, _ := afero.DirExists(c.fs, def.InstallDir); exists {
				return def.InstallDir
			}
			log.Warn().Msgf("configured Galaxy directory not found: %s", def.InstallDir)
		}
	}
	return c.opts.FallbackGalaxyDir
}

// InstalledGames returns no games outside Windows; Galaxy's game list
// lives in the Windows registry.
func (c *Client) InstalledGames() ([]Game, error) {
	log.Debug().Msg("GOG game enumeration requires the Windows registry")
	return nil, nil
}
