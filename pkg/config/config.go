// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package config holds the tool's TOML configuration: where shortcuts
// are written and per-launcher overrides for install directories.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

const (
	SchemaVersion = 1
	CfgEnv        = "GAMES_DETECTOR_CFG"
	CfgFile       = "config.toml"
	LogFile       = "games-detector.log"
)

// Values is the on-disk configuration shape.
type Values struct {
	Shortcuts    Shortcuts `toml:"shortcuts,omitempty"`
	Launchers    Launchers `toml:"launchers,omitempty"`
	ConfigSchema int       `toml:"config_schema"`
	DebugLogging bool      `toml:"debug_logging"`
}

// Shortcuts configures shortcut output.
type Shortcuts struct {
	// OutputDir is where shortcut files are written. Empty means the
	// platform default (the user's desktop).
	OutputDir string `toml:"output_dir,omitempty"`
}

// Launchers holds per-launcher overrides, keyed by launcher ID.
type Launchers struct {
	Steam LauncherDefaults `toml:"steam,omitempty"`
	Epic  LauncherDefaults `toml:"epic,omitempty"`
	Gog   LauncherDefaults `toml:"gog,omitempty"`
}

// LauncherDefaults overrides detection for a single launcher.
type LauncherDefaults struct {
	// InstallDir overrides the detected launcher install directory.
	InstallDir string `toml:"install_dir,omitempty"`

	// Disabled skips the launcher entirely during scans.
	Disabled bool `toml:"disabled,omitempty"`
}

// BaseDefaults is the configuration written on first run.
var BaseDefaults = Values{
	ConfigSchema: SchemaVersion,
}

// Instance is a live configuration handle. Safe for concurrent use.
type Instance struct {
	cfgPath string
	vals    Values
	mu      sync.RWMutex
}

// NewConfig loads the config file from configDir, creating it with the
// given defaults if it does not exist. The CfgEnv environment variable
// overrides the file path.
func NewConfig(configDir string, defaults Values) (*Instance, error) {
	cfgPath := filepath.Join(configDir, CfgFile)
	if envPath, ok := os.LookupEnv(CfgEnv); ok && envPath != "" {
		log.Info().Msgf("using config path from env: %s", envPath)
		cfgPath = envPath
	}

	cfg := Instance{
		cfgPath: cfgPath,
		vals:    defaults,
	}

	err := cfg.Load()
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info().Msgf("no config file found, creating default: %s", cfgPath)
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, saveErr
		}
	case err != nil:
		return nil, err
	}

	return &cfg, nil
}

// Load reads and replaces the instance's values from disk.
func (c *Instance) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	//nolint:gosec // Safe: reads the tool's own config file
	data, err := os.ReadFile(c.cfgPath)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var newVals Values
	if err := toml.Unmarshal(data, &newVals); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if newVals.ConfigSchema != SchemaVersion {
		log.Warn().Msgf(
			"config schema mismatch: got %d, want %d",
			newVals.ConfigSchema, SchemaVersion,
		)
	}

	c.vals = newVals
	return nil
}

// Save writes the instance's values to disk.
func (c *Instance) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.cfgPath == "" {
		return errors.New("config path not set")
	}

	if err := os.MkdirAll(filepath.Dir(c.cfgPath), 0o750); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := toml.Marshal(&c.vals)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(c.cfgPath, data, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Path returns the config file path in use.
func (c *Instance) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfgPath
}

// DebugLogging reports whether debug logging is enabled.
func (c *Instance) DebugLogging() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.DebugLogging
}

// SetDebugLogging toggles debug logging in the live values. Callers
// persist with Save.
func (c *Instance) SetDebugLogging(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.DebugLogging = enabled
}

// ShortcutsOutputDir returns the configured shortcut output directory,
// or "" when unset.
func (c *Instance) ShortcutsOutputDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Shortcuts.OutputDir
}

// SetShortcutsOutputDir sets the shortcut output directory.
func (c *Instance) SetShortcutsOutputDir(dir string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Shortcuts.OutputDir = dir
}

// LookupLauncherDefaults returns the overrides for the given launcher
// ID. Unknown IDs return the zero value.
func (c *Instance) LookupLauncherDefaults(id string) LauncherDefaults {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch id {
	case "steam":
		return c.vals.Launchers.Steam
	case "epic":
		return c.vals.Launchers.Epic
	case "gog":
		return c.vals.Launchers.Gog
	default:
		return LauncherDefaults{}
	}
}
