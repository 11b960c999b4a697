// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package steam detects games installed through the Steam client.
//
// Installed games are enumerated from appmanifest_*.acf files across
// all Steam library folders. Display metadata and icons are resolved
// from the appinfo.vdf cache through the appinfo package.
package steam

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/appinfo"
	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

// excludedAppID is Steamworks Common Redistributables, installed in
// every library but never a game.
const excludedAppID uint32 = 228980

// Options configures Steam detection.
type Options struct {
	// FallbackPath is used if Steam directory detection fails.
	// Linux example: "~/.steam/steam"
	// Windows example: "C:\\Program Files (x86)\\Steam"
	FallbackPath string

	// ExtraPaths are additional roots to check for a Steam install.
	ExtraPaths []string
}

// Client detects Steam installations and installed games.
type Client struct {
	fs   afero.Fs
	opts Options
}

// NewClient creates a Steam client backed by the OS filesystem.
func NewClient(opts Options) *Client {
	return &Client{opts: opts, fs: afero.NewOsFs()}
}

// NewClientWithFs creates a Steam client on the given filesystem. This
// is useful for testing.
func NewClientWithFs(opts Options, fs afero.Fs) *Client {
	return &Client{opts: opts, fs: fs}
}

// InstalledGame is one game found in a Steam library.
type InstalledGame struct {
	Name  string
	AppID uint32
}

// LibraryDirs returns the steamapps directories of every Steam library
// registered in libraryfolders.vdf, skipping libraries whose path no
// longer exists. The file lives under steamapps/ on older installs and
// under config/ on newer ones.
func (c *Client) LibraryDirs(steamDir string) []string {
	var libs []string

	candidates := []string{
		filepath.Join(steamDir, "steamapps", "libraryfolders.vdf"),
		filepath.Join(steamDir, "config", "libraryfolders.vdf"),
	}

	var m map[string]any
	for _, path := range candidates {
		f, err := c.fs.Open(path)
		if err != nil {
			continue
		}

		p := vdf.NewParser(f)
		parsed, parseErr := p.Parse()
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing libraryfolders.vdf")
		}
		if parseErr != nil {
			log.Warn().Err(parseErr).Msgf("error parsing libraryfolders.vdf: %s", path)
			continue
		}

		m = normalizeVDFKeys(parsed)
		break
	}
	if m == nil {
		log.Warn().Msgf("no readable libraryfolders.vdf under %s", steamDir)
		return nil
	}

	lfs, ok := m["libraryfolders"].(map[string]any)
	if !ok {
		log.Warn().Msg("libraryfolders is not a map")
		return nil
	}

	for id, v := range lfs {
		ls, ok := v.(map[string]any)
		if !ok {
			continue
		}

		libraryPath, ok := ls["path"].(string)
		if !ok {
			log.Warn().Msgf("library %s path is not a string", id)
			continue
		}

		steamApps := filepath.Join(libraryPath, "steamapps")
		if exists, _ := afero.DirExists(c.fs, steamApps); !exists {
			log.Debug().Msgf("library %s does not exist: %s", id, steamApps)
			continue
		}
		libs = append(libs, steamApps)
	}

	return libs
}

// InstalledGames reads the appmanifest_*.acf files in one steamapps
// directory and returns the installed games, excluding Steamworks
// Common Redistributables. Unreadable manifests are skipped.
func (c *Client) InstalledGames(libraryDir string) ([]InstalledGame, error) {
	entries, err := afero.ReadDir(c.fs, libraryDir)
	if err != nil {
		return nil, fmt.Errorf("read steamapps dir: %w", err)
	}

	var games []InstalledGame
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
			continue
		}

		game, ok := c.readManifest(filepath.Join(libraryDir, name))
		if !ok || game.AppID == excludedAppID {
			continue
		}
		games = append(games, game)
	}

	return games, nil
}

// readManifest parses one .acf app manifest.
func (c *Client) readManifest(path string) (InstalledGame, bool) {
	f, err := c.fs.Open(path)
	if err != nil {
		log.Warn().Err(err).Msgf("error opening manifest: %s", path)
		return InstalledGame{}, false
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing manifest")
		}
	}()

	p := vdf.NewParser(f)
	m, err := p.Parse()
	if err != nil {
		log.Warn().Err(err).Msgf("error parsing manifest: %s", path)
		return InstalledGame{}, false
	}
	m = normalizeVDFKeys(m)

	appState, ok := m["appstate"].(map[string]any)
	if !ok {
		log.Warn().Msgf("appstate is not a map in manifest: %s", path)
		return InstalledGame{}, false
	}

	appIDStr, ok := appState["appid"].(string)
	if !ok {
		log.Warn().Msgf("appid is not a string in manifest: %s", path)
		return InstalledGame{}, false
	}
	appID, err := strconv.ParseUint(appIDStr, 10, 32)
	if err != nil {
		log.Warn().Err(err).Msgf("invalid appid in manifest: %s", path)
		return InstalledGame{}, false
	}

	name, ok := appState["name"].(string)
	if !ok {
		log.Warn().Msgf("name is not a string in manifest: %s", path)
		return InstalledGame{}, false
	}

	return InstalledGame{AppID: uint32(appID), Name: name}, true
}

// Users reads config/loginusers.vdf and returns a map from account name
// to Steam user ID.
func (c *Client) Users(steamDir string) (map[string]string, error) {
	path := filepath.Join(steamDir, "config", "loginusers.vdf")
	f, err := c.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open loginusers.vdf: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing loginusers.vdf")
		}
	}()

	p := vdf.NewParser(f)
	m, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("parse loginusers.vdf: %w", err)
	}
	m = normalizeVDFKeys(m)

	usersMap, ok := m["users"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("users is not a map in %s", path)
	}

	users := make(map[string]string, len(usersMap))
	for id, v := range usersMap {
		u, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if account, ok := u["accountname"].(string); ok {
			users[account] = id
		}
	}

	return users, nil
}

// LoadAppInfo decodes the appcache/appinfo.vdf metadata cache.
func (c *Client) LoadAppInfo(steamDir string) (appinfo.Store, error) {
	path := filepath.Join(steamDir, "appcache", "appinfo.vdf")
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read appinfo.vdf: %w", err)
	}
	return appinfo.Decode(data)
}

// IconPath resolves an app's icon under <steamDir>/steam/games using
// the checksum naming convention. Returns "" when the app has no icon
// checksum or the file does not exist.
func (c *Client) IconPath(steamDir string, app appinfo.App) string {
	if app.IconChecksum == "" {
		return ""
	}
	path := filepath.Join(steamDir, "steam", "games", app.IconChecksum+".ico")
	if exists, _ := afero.Exists(c.fs, path); !exists {
		return ""
	}
	return path
}

// ShortcutURL returns the Steam protocol URL that launches an app.
func ShortcutURL(appID uint32) string {
	return fmt.Sprintf("steam://rungameid/%d", appID)
}

// Scan detects the Steam install and returns a scan result for every
// installed game across all libraries. A missing Steam install is not
// an error; it yields zero results.
func (c *Client) Scan(cfg *config.Instance) ([]launchers.ScanResult, error) {
	steamDir := c.FindSteamDir(cfg)
	if steamDir == "" {
		log.Info().Msg("Steam installation not found")
		return nil, nil
	}
	if exists, _ := afero.DirExists(c.fs, steamDir); !exists {
		log.Info().Msgf("Steam directory does not exist: %s", steamDir)
		return nil, nil
	}

	store, err := c.LoadAppInfo(steamDir)
	if err != nil {
		// Icons are best-effort; manifests still give us names.
		log.Warn().Err(err).Msg("could not decode appinfo.vdf, shortcuts will have no icons")
	}

	var results []launchers.ScanResult
	for _, lib := range c.LibraryDirs(steamDir) {
		games, err := c.InstalledGames(lib)
		if err != nil {
			log.Warn().Err(err).Msgf("error scanning library: %s", lib)
			continue
		}

		for _, game := range games {
			result := launchers.ScanResult{
				Name:     game.Name,
				Launcher: launchers.IDSteam,
				URL:      ShortcutURL(game.AppID),
			}
			if app, ok := store[game.AppID]; ok {
				result.IconPath = c.IconPath(steamDir, app)
				if result.Name == "" {
					result.Name = app.Name
				}
			}
			results = append(results, result)
		}
	}

	log.Debug().Int("count", len(results)).Msg("Steam scan complete")
	return results, nil
}
