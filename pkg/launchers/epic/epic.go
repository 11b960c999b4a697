// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package epic detects games installed through the Epic Games Launcher.
//
// The launcher keeps one JSON manifest per installed game in a central
// manifests directory (Windows default:
// C:\ProgramData\Epic\EpicGamesLauncher\Data\Manifests). Games launch
// through the com.epicgames.launcher:// URL protocol.
package epic

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// manifestExt is the extension of launcher install manifests.
const manifestExt = ".item"

// Options configures Epic detection.
type Options struct {
	// FallbackLauncherDir is used if launcher directory detection fails.
	FallbackLauncherDir string

	// FallbackManifestsDir is used if manifests directory detection
	// fails. Windows default:
	// "C:\\ProgramData\\Epic\\EpicGamesLauncher\\Data\\Manifests"
	FallbackManifestsDir string
}

// Client detects Epic Games Launcher installations and installed games.
type Client struct {
	fs   afero.Fs
	opts Options
}

// NewClient creates an Epic client backed by the OS filesystem.
func NewClient(opts Options) *Client {
	return &Client{opts: opts, fs: afero.NewOsFs()}
}

// NewClientWithFs creates an Epic client on the given filesystem. This
// is useful for testing.
func NewClientWithFs(opts Options, fs afero.Fs) *Client {
	return &Client{opts: opts, fs: fs}
}

// Manifest is the subset of an install manifest needed for shortcuts.
type Manifest struct {
	DisplayName      string `json:"DisplayName"`
	AppName          string `json:"AppName"`
	CatalogNamespace string `json:"CatalogNamespace"`
	CatalogItemID    string `json:"CatalogItemId"`
	InstallLocation  string `json:"InstallLocation"`
	LaunchExecutable string `json:"LaunchExecutable"`
}

// InstalledGames reads every manifest in the given directory. Manifests
// that fail to parse or lack a display name are skipped.
func (c *Client) InstalledGames(manifestsDir string) ([]Manifest, error) {
	entries, err := afero.ReadDir(c.fs, manifestsDir)
	if err != nil {
		return nil, fmt.Errorf("read manifests dir: %w", err)
	}

	var games []Manifest
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), manifestExt) {
			continue
		}

		path := filepath.Join(manifestsDir, entry.Name())
		data, err := afero.ReadFile(c.fs, path)
		if err != nil {
			log.Warn().Err(err).Msgf("error reading manifest: %s", path)
			continue
		}

		var m Manifest
		if err := json.Unmarshal(data, &m); err != nil {
			log.Warn().Err(err).Msgf("error parsing manifest: %s", path)
			continue
		}
		if m.DisplayName == "" {
			log.Debug().Msgf("manifest without display name: %s", path)
			continue
		}

		games = append(games, m)
	}

	return games, nil
}

// LaunchURL returns the launcher protocol URL that starts the game
// described by a manifest. The %3A separators are literal: the launcher
// expects the catalog triple URL-encoded inside the apps segment.
func LaunchURL(m Manifest) string {
	return fmt.Sprintf(
		"com.epicgames.launcher://apps/%s%%3A%s%%3A%s?action=launch&silent=true",
		m.CatalogNamespace, m.CatalogItemID, m.AppName,
	)
}

// IconPath returns the game's executable path, which Windows renders as
// the shortcut icon. Returns "" when the executable does not exist.
func (c *Client) IconPath(m Manifest) string {
	if m.InstallLocation == "" || m.LaunchExecutable == "" {
		return ""
	}
	path := filepath.Join(m.InstallLocation, m.LaunchExecutable)
	if exists, _ := afero.Exists(c.fs, path); !exists {
		return ""
	}
	return path
}

// Scan detects the Epic Games Launcher install and returns a scan
// result for every installed game. A missing launcher is not an error;
// it yields zero results.
func (c *Client) Scan(cfg *config.Instance) ([]launchers.ScanResult, error) {
	manifestsDir := c.FindManifestsDir(cfg)
	if manifestsDir == "" {
		log.Info().Msg("Epic Games Launcher manifests not found")
		return nil, nil
	}
	if exists, _ := afero.DirExists(c.fs, manifestsDir); !exists {
		log.Info().Msgf("Epic manifests directory does not exist: %s", manifestsDir)
		return nil, nil
	}

	launcherDir := c.FindLauncherDir(cfg)

	games, err := c.InstalledGames(manifestsDir)
	if err != nil {
		return nil, err
	}

	results := make([]launchers.ScanResult, 0, len(games))
	for _, game := range games {
		results = append(results, launchers.ScanResult{
			Name:       game.DisplayName,
			Launcher:   launchers.IDEpic,
			URL:        LaunchURL(game),
			IconPath:   c.IconPath(game),
			WorkingDir: launcherDir,
		})
	}

	log.Debug().Int("count", len(results)).Msg("Epic scan complete")
	return results, nil
}
