// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

// games-detector scans the local machine for games installed through
// Steam, Epic Games and GOG Galaxy and writes desktop shortcuts for
// them.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/fastattackv/Games-Detector/pkg/config"
	"github.com/fastattackv/Games-Detector/pkg/helpers"
	"github.com/fastattackv/Games-Detector/pkg/launchers"
	"github.com/fastattackv/Games-Detector/pkg/launchers/epic"
	"github.com/fastattackv/Games-Detector/pkg/launchers/gog"
	"github.com/fastattackv/Games-Detector/pkg/launchers/steam"
	"github.com/fastattackv/Games-Detector/pkg/shortcuts"
)

// appVersion is set at build time with -ldflags.
var appVersion = "dev"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	launchersFlag := flag.String(
		"launchers",
		strings.Join([]string{launchers.IDSteam, launchers.IDEpic, launchers.IDGog}, ","),
		"comma-separated launchers to scan",
	)
	outFlag := flag.String(
		"out",
		"",
		"shortcut output directory (defaults to the desktop)",
	)
	dryRun := flag.Bool(
		"dry-run",
		false,
		"list detected games without writing shortcuts",
	)
	debug := flag.Bool(
		"debug",
		false,
		"enable debug logging",
	)
	showVersion := flag.Bool(
		"version",
		false,
		"print version and exit",
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("games-detector v" + appVersion)
		return nil
	}

	if err := helpers.InitLogging(helpers.LogDir(), []io.Writer{helpers.NewConsoleWriter()}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if *debug || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	selected, err := parseLaunchers(*launchersFlag)
	if err != nil {
		return err
	}

	results := scan(cfg, selected)
	if len(results) == 0 {
		fmt.Println("No games found.")
		return nil
	}

	if *dryRun {
		for _, res := range results {
			fmt.Printf("%s\t%s\n", res.Launcher, res.Name)
		}
		fmt.Printf("%d games found (dry run, nothing written)\n", len(results))
		return nil
	}

	outDir := *outFlag
	if outDir == "" {
		outDir = cfg.ShortcutsOutputDir()
	}
	if outDir == "" {
		outDir = helpers.DefaultOutputDir()
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	written := 0
	for _, res := range results {
		path, writeErr := shortcuts.Write(fs, outDir, res)
		if writeErr != nil {
			log.Warn().Err(writeErr).Msgf("skipping shortcut for %s", res.Name)
			continue
		}
		log.Debug().Msgf("wrote shortcut: %s", path)
		written++
	}

	fmt.Printf("%d of %d shortcuts written to %s\n", written, len(results), outDir)
	return nil
}

// parseLaunchers validates the -launchers flag into a set of known
// launcher IDs.
func parseLaunchers(raw string) (map[string]bool, error) {
	known := map[string]bool{
		launchers.IDSteam: true,
		launchers.IDEpic:  true,
		launchers.IDGog:   true,
	}

	selected := make(map[string]bool)
	for _, id := range strings.Split(raw, ",") {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if !known[id] {
			return nil, fmt.Errorf("unknown launcher: %s", id)
		}
		selected[id] = true
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no launchers selected")
	}
	return selected, nil
}

// scan runs every selected and enabled launcher scan. A launcher that
// fails is logged and skipped so the others still produce shortcuts.
func scan(cfg *config.Instance, selected map[string]bool) []launchers.ScanResult {
	scanners := []struct {
		scan func(*config.Instance) ([]launchers.ScanResult, error)
		id   string
	}{
		{id: launchers.IDSteam, scan: steam.NewClient(steam.Options{}).Scan},
		{id: launchers.IDEpic, scan: epic.NewClient(epic.Options{}).Scan},
		{id: launchers.IDGog, scan: gog.NewClient(gog.Options{}).Scan},
	}

	var results []launchers.ScanResult
	for _, s := range scanners {
		if !selected[s.id] {
			continue
		}
		if cfg.LookupLauncherDefaults(s.id).Disabled {
			log.Info().Msgf("launcher disabled in config: %s", s.id)
			continue
		}

		found, err := s.scan(cfg)
		if err != nil {
			log.Error().Err(err).Msgf("%s scan failed", s.id)
			continue
		}
		results = append(results, found...)
	}

	return results
}
