//go:build windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package steam

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sys/windows/registry"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// FindSteamDir locates the Steam installation directory on Windows
// using the registry. A config override wins over detection.
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

	// 64-bit systems register under Wow6432Node, try that first.
	keys := []string{
		`SOFTWARE\WOW6432Node\Valve\Steam`,
		`SOFTWARE\Valve\Steam`,
	}

	for _, path := range keys {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}

		installPath, _, err := key.GetStringValue("InstallPath")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if err != nil {
			continue
		}

		if exists, _ := afero.DirExists(c.fs, installPath); exists {
			log.Debug().Msgf("found Steam installation via registry: %s", installPath)
			return installPath
		}
	}

	log.Debug().Msgf("Steam registry detection failed, using fallback: %s", c.opts.FallbackPath)
	return c.opts.FallbackPath
}
