//go:build !windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package epic

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// FindLauncherDir returns the configured or fallback launcher directory.
// The Epic Games Launcher registers itself in the Windows registry;
// outside Windows only explicit paths work (Heroic and Wine prefixes
// vary too much to probe).
func (c *Client) FindLauncherDir(cfg *config.Instance) string {
	if cfg != nil {
		if def := cfg.LookupLauncherDefaults(launchers.IDEpic); def.InstallDir != "" {
			if exists, _ := afero.DirExists(c.fs, def.InstallDir); exists {
				return def.InstallDir
			}
			log.Warn().Msgf("configured Epic directory not found: %s", def.InstallDir)
		}
	}
	return c.opts.FallbackLauncherDir
}

// FindManifestsDir returns the fallback manifests directory.
func (c *Client) FindManifestsDir(_ *config.Instance) string {
	return c.opts.FallbackManifestsDir
}
