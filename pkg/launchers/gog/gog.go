// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package gog detects games installed through GOG Galaxy.
//
// Galaxy records every installed game in the Windows registry under
// SOFTWARE\WOW6432Node\GOG.com\Games, one subkey per game ID. Games
// launch through GalaxyClient.exe with a runGame command, so there is
// no URL protocol involved.
package gog

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// Options configures GOG detection.
type Options struct {
	// FallbackGalaxyDir is used if Galaxy client detection fails.
	// Windows example: "C:\\Program Files (x86)\\GOG Galaxy"
	FallbackGalaxyDir string
}

// Client detects GOG Galaxy installations and installed games.
type Client struct {
	fs   afero.Fs
	opts Options
}

// NewClient creates a GOG client backed by the OS filesystem.
func NewClient(opts Options) *Client {
	return &Client{opts: opts, fs: afero.NewOsFs()}
}

// NewClientWithFs creates a GOG client on the given filesystem. This is
// useful for testing.
func NewClientWithFs(opts Options, fs afero.Fs) *Client {
	return &Client{opts: opts, fs: fs}
}

// Game is one installed GOG game as registered by Galaxy.
type Game struct {
	// ID is the numeric GOG game ID, kept as a string because it is
	// only ever interpolated into registry paths and launch arguments.
	ID string

	// Name is the display name.
	Name string

	// StartMenuName is the name Galaxy deems safe for filenames.
	StartMenuName string

	// InstallDir is the game's installation directory.
	InstallDir string

	// WorkingDir is the working directory Galaxy launches the game in.
	WorkingDir string
}

// ShortcutTarget returns the Galaxy client executable used as the
// shortcut target.
func ShortcutTarget(galaxyDir string) string {
	return filepath.Join(galaxyDir, "GalaxyClient.exe")
}

// LaunchArgs returns the GalaxyClient.exe arguments that start a game.
func LaunchArgs(g Game) string {
	return fmt.Sprintf(`/command=runGame /gameId=%s /path="%s"`, g.ID, g.InstallDir)
}

// IconPath resolves the goggame-<id>.ico file Galaxy places in every
// game's install directory. Returns "" when the file does not exist.
func (c *Client) IconPath(g Game) string {
	if g.InstallDir == "" {
		return ""
	}
	path := filepath.Join(g.InstallDir, "goggame-"+g.ID+".ico")
	if exists, _ := afero.Exists(c.fs, path); !exists {
		return ""
	}
	return path
}

// Scan detects the Galaxy install and returns a scan result for every
// installed game. A missing Galaxy install is not an error; it yields
// zero results.
func (c *Client) Scan(cfg *config.Instance) ([]launchers.ScanResult, error) {
	galaxyDir := c.FindGalaxyDir(cfg)
	if galaxyDir == "" {
		log.Info().Msg("GOG Galaxy installation not found")
		return nil, nil
	}

	games, err := c.InstalledGames()
	if err != nil {
		return nil, err
	}

	results := make([]launchers.ScanResult, 0, len(games))
	for _, game := range games {
		name := game.StartMenuName
		if name == "" {
			name = game.Name
		}
		results = append(results, launchers.ScanResult{
			Name:       name,
			Launcher:   launchers.IDGog,
			URL:        ShortcutTarget(galaxyDir),
			Args:       LaunchArgs(game),
			IconPath:   c.IconPath(game),
			WorkingDir: game.WorkingDir,
		})
	}

	log.Debug().Int("count", len(results)).Msg("GOG scan complete")
	return results, nil
}
