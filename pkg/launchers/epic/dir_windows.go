//go:build windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package epic

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sys/windows/registry"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// installHelperSuffix trails the registry Path value, which points at
// the EOS install helper executable rather than the launcher root.
const installHelperSuffix = `\Epic Online Services\EpicOnlineServicesInstallHelper.exe`

// FindLauncherDir locates the Epic Games Launcher install directory on
// Windows using the registry. A config override wins over detection.
func (c *Client) FindLauncherDir(cfg *config.Instance) string {
	if cfg != nil {
		if def := cfg.LookupLauncherDefaults(launchers.IDEpic); def.InstallDir != "" {
			if exists, _ := afero.DirExists(c.fs, def.InstallDir); exists {
				log.Debug().Msgf("using configured Epic directory: %s", def.InstallDir)
				return def.InstallDir
			}
			log.Warn().Msgf("configured Epic directory not found: %s", def.InstallDir)
		}
	}

	key, err := registry.OpenKey(
		registry.LOCAL_MACHINE,
		`SOFTWARE\WOW6432Node\Epic Games\EOS\InstallHelper`,
		registry.QUERY_VALUE,
	)
	if err == nil {
		path, _, valErr := key.GetStringValue("Path")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if valErr == nil {
			path = strings.TrimSuffix(path, installHelperSuffix)
			if exists, _ := afero.DirExists(c.fs, path); exists {
				log.Debug().Msgf("found Epic launcher via registry: %s", path)
				return path
			}
		}
	}

	log.Debug().Msgf("Epic registry detection failed, using fallback: %s", c.opts.FallbackLauncherDir)
	return c.opts.FallbackLauncherDir
}

// FindManifestsDir locates the install manifests directory on Windows
// from the per-user EOS registry key.
func (c *Client) FindManifestsDir(_ *config.Instance) string {
	key, err := registry.OpenKey(
		registry.CURRENT_USER,
		`Software\Epic Games\EOS`,
		registry.QUERY_VALUE,
	)
	if err == nil {
		path, _, valErr := key.GetStringValue("ModSdkMetadataDir")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if valErr == nil {
			if exists, _ := afero.DirExists(c.fs, path); exists {
				log.Debug().Msgf("found Epic manifests via registry: %s", path)
				return path
			}
		}
	}

	log.Debug().Msgf("Epic manifests detection failed, using fallback: %s", c.opts.FallbackManifestsDir)
	return c.opts.FallbackManifestsDir
}
