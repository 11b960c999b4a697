//go:build !windows

// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package shortcuts

import "errors"

// ErrLnkUnsupported is returned when a shell link is requested outside
// Windows.
var ErrLnkUnsupported = errors.New("shell link shortcuts require Windows")

// WriteLnk is unsupported outside Windows; shell links are a Windows
// shell concept.
func WriteLnk(_ string, _ LnkShortcut) error {
	return ErrLnkUnsupported
}
