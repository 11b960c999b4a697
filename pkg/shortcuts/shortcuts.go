// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// Package shortcuts writes desktop shortcut files for detected games.
//
// Games reachable through a URL protocol get InternetShortcut .url
// files, which are plain INI and portable to write. Games that need an
// executable target with arguments (GOG) get real .lnk shell links,
// which only works on Windows.
package shortcuts

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	ini "gopkg.in/ini.v1"

	"github.com/fastattackv/Games-Detector/pkg/launchers"
)

func init() {
	// Windows expects KEY=value in .url files, without the spaces
	// go-ini adds by default.
	ini.PrettyFormat = false
}

// forbiddenFilenameChars are replaced when sanitizing shortcut names.
const forbiddenFilenameChars = `/\:*?"<>|`

// CleanFilename replaces characters Windows forbids in filenames with
// spaces and trims the result.
func CleanFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(forbiddenFilenameChars, r) {
			return ' '
		}
		return r
	}, name)
	return strings.TrimSpace(cleaned)
}

// URLShortcut is the content of an InternetShortcut .url file.
type URLShortcut struct {
	URL        string
	IconFile   string
	WorkingDir string
}

// LnkShortcut is the content of a Windows .lnk shell link.
type LnkShortcut struct {
	Target     string
	Args       string
	IconFile   string
	WorkingDir string
}

// WriteURL writes an InternetShortcut file. The first section marks the
// shortcut as runnable (Prop3=19,0 is the shell's "run as app" hint the
// Steam client itself writes).
func WriteURL(fs afero.Fs, path string, s URLShortcut) error {
	f := ini.Empty()

	shell, err := f.NewSection("{000214A0-0000-0000-C000-000000000046}")
	if err != nil {
		return fmt.Errorf("build shortcut: %w", err)
	}
	if _, err := shell.NewKey("Prop3", "19,0"); err != nil {
		return fmt.Errorf("build shortcut: %w", err)
	}

	link, err := f.NewSection("InternetShortcut")
	if err != nil {
		return fmt.Errorf("build shortcut: %w", err)
	}
	keys := [][2]string{
		{"IDList", ""},
		{"IconIndex", "0"},
		{"URL", s.URL},
		{"IconFile", s.IconFile},
	}
	if s.WorkingDir != "" {
		keys = append(keys, [2]string{"WorkingDirectory", s.WorkingDir})
	}
	for _, kv := range keys {
		if _, err := link.NewKey(kv[0], kv[1]); err != nil {
			return fmt.Errorf("build shortcut: %w", err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("render shortcut: %w", err)
	}

	if err := afero.WriteFile(fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write shortcut: %w", err)
	}
	return nil
}

// FilePath builds the shortcut path for a game name, sanitized for the
// filesystem.
func FilePath(outputDir, name, ext string) string {
	return filepath.Join(outputDir, CleanFilename(name)+ext)
}

// Write writes the shortcut file for one scan result into outputDir and
// returns the path written. Results with launch arguments need a .lnk
// shell link; everything else gets a portable .url file.
func Write(fs afero.Fs, outputDir string, res launchers.ScanResult) (string, error) {
	if res.Args != "" {
		path := FilePath(outputDir, res.Name, ".lnk")
		err := WriteLnk(path, LnkShortcut{
			Target:     res.URL,
			Args:       res.Args,
			IconFile:   res.IconPath,
			WorkingDir: res.WorkingDir,
		})
		if err != nil {
			return "", err
		}
		return path, nil
	}

	path := FilePath(outputDir, res.Name, ".url")
	err := WriteURL(fs, path, URLShortcut{
		URL:        res.URL,
		IconFile:   res.IconPath,
		WorkingDir: res.WorkingDir,
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
