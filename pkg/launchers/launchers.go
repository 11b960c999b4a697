// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package launchers defines the types shared by the per-store launcher
// integrations (Steam, Epic Games Launcher, GOG Galaxy).
package launchers

// Launcher IDs used in config sections, scan results and logs.
const (
	IDSteam = "steam"
	IDEpic  = "epic"
	IDGog   = "gog"
)

// ScanResult is one detected game, resolved far enough to build a
// desktop shortcut for it.
type ScanResult struct {
	// Name is the game's display name, unsanitized.
	Name string

	// Launcher is the ID of the launcher that found the game.
	Launcher string

	// URL is the launcher protocol target that starts the game, or for
	// launchers without a URL protocol, the absolute executable path.
	URL string

	// Args are extra command-line arguments when URL is an executable.
	Args string

	// IconPath is the absolute path of an icon for the shortcut, or ""
	// if none could be resolved.
	IconPath string

	// WorkingDir is the shortcut's working directory, or "".
	WorkingDir string
}
