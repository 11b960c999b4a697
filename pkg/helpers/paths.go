// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package helpers holds small pieces shared across the app: logging
// setup and well-known directory resolution.
package helpers

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appDirName = "games-detector"

// ConfigDir returns the directory holding the app's config file.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// LogDir returns the directory log files rotate in.
func LogDir() string {
	return filepath.Join(xdg.StateHome, appDirName)
}

// DefaultOutputDir returns where shortcuts land when no output
// directory is configured: the user's desktop, or the home directory
// when no desktop is known.
func DefaultOutputDir() string {
	if xdg.UserDirs.Desktop != "" {
		return xdg.UserDirs.Desktop
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
