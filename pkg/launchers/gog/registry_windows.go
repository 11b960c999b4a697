//go:build windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package gog

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sys/windows/registry"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

const gamesKeyPath = `SOFTWARE\WOW6432Node\GOG.com\Games`

// FindGalaxyDir locates the GOG Galaxy client directory on Windows
// using the registry. A config override wins over detection.
func (c *Client) FindGalaxyDir(cfg *config.Instance) string {
	if cfg != nil {
		if def := cfg.LookupLauncherDefaults(launchers.IDGog); def.InstallDir != "" {
			if exists, _ := afero.DirExists(c.fs, def.InstallDir); exists {
				log.Debug().Msgf("using configured Galaxy directory: %s", def.InstallDir)
				return def.InstallDir
			}
			log.Warn().Msgf("configured Galaxy directory not found: %s", def.InstallDir)
		}
	}

	key, err := registry.OpenKey(
		registry.LOCAL_MACHINE,
		`SOFTWARE\WOW6432Node\GOG.com\GalaxyClient\paths`,
		registry.QUERY_VALUE,
	)
	if err == nil {
		path, _, valErr := key.GetStringValue("client")
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
		if valErr == nil {
			if exists, _ := afero.DirExists(c.fs, path); exists {
				log.Debug().Msgf("found Galaxy client via registry: %s", path)
				return path
			}
		}
	}

	log.Debug().Msgf("Galaxy registry detection failed, using fallback: %s", c.opts.FallbackGalaxyDir)
	return c.opts.FallbackGalaxyDir
}

// InstalledGames enumerates the registry for games registered by
// Galaxy. Games whose subkey cannot be read are skipped.
func (c *Client) InstalledGames() ([]Game, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, gamesKeyPath, registry.ENUMERATE_SUB_KEYS)
	if err != nil {
		// No key means no GOG games were ever installed.
		log.Debug().Err(err).Msg("GOG games registry key not found")
		return nil, nil
	}
	defer func() {
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
	}()

	ids, err := key.ReadSubKeyNames(-1)
	if err != nil {
		return nil, fmt.Errorf("enumerate GOG games: %w", err)
	}

	games := make([]Game, 0, len(ids))
	for _, id := range ids {
		game, ok := readGameKey(id)
		if !ok {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

// readGameKey reads one game's registry subkey. gameName is required,
// the rest is optional.
func readGameKey(id string) (Game, bool) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, gamesKeyPath+`\`+id, registry.QUERY_VALUE)
	if err != nil {
		log.Warn().Err(err).Msgf("error opening GOG game key: %s", id)
		return Game{}, false
	}
	defer func() {
		if closeErr := key.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing registry key")
		}
	}()

	name, _, err := key.GetStringValue("gameName")
	if err != nil {
		log.Warn().Err(err).Msgf("GOG game %s has no gameName", id)
		return Game{}, false
	}

	startMenu, _, _ := key.GetStringValue("startMenu")
	installDir, _, _ := key.GetStringValue("path")
	workingDir, _, _ := key.GetStringValue("workingDir")

	return Game{
		ID:            id,
		Name:          name,
		StartMenuName: startMenu,
		InstallDir:    installDir,
		WorkingDir:    workingDir,
	}, true
}
