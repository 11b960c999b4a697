// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("creates_default_file_when_missing", func(t *testing.T) {
		dir := t.TempDir()

		cfg, err := NewConfig(dir, BaseDefaults)
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dir, CfgFile), cfg.Path())
		assert.False(t, cfg.DebugLogging())
		assert.Empty(t, cfg.ShortcutsOutputDir())

		_, err = os.Stat(cfg.Path())
		assert.NoError(t, err)
	})

	t.Run("loads_existing_file", func(t *testing.T) {
		dir := t.TempDir()
		content := "config_schema = 1\n" +
			"debug_logging = true\n\n" +
			"[shortcuts]\noutput_dir = \"/desktop\"\n\n" +
			"[launchers.steam]\ninstall_dir = \"/custom/steam\"\n\n" +
			"[launchers.gog]\ndisabled = true\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, CfgFile), []byte(content), 0o600))

		cfg, err := NewConfig(dir, BaseDefaults)
		require.NoError(t, err)

		assert.True(t, cfg.DebugLogging())
		assert.Equal(t, "/desktop", cfg.ShortcutsOutputDir())
		assert.Equal(t, "/custom/steam", cfg.LookupLauncherDefaults("steam").InstallDir)
		assert.True(t, cfg.LookupLauncherDefaults("gog").Disabled)
	})

	t.Run("env_var_overrides_path", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, "elsewhere", "custom.toml")
		t.Setenv(CfgEnv, envPath)

		cfg, err := NewConfig(filepath.Join(dir, "ignored"), BaseDefaults)
		require.NoError(t, err)

		assert.Equal(t, envPath, cfg.Path())
		_, err = os.Stat(envPath)
		assert.NoError(t, err)
	})

	t.Run("rejects_malformed_file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, CfgFile), []byte("not = [valid"), 0o600,
		))

		_, err := NewConfig(dir, BaseDefaults)
		assert.Error(t, err)
	})
}

func TestSaveLoadRoundtrip(t *testing.T) {
	dir := t.TempDir()

	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	cfg.SetDebugLogging(true)
	cfg.SetShortcutsOutputDir("/shortcuts")
	require.NoError(t, cfg.Save())

	reloaded, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.True(t, reloaded.DebugLogging())
	assert.Equal(t, "/shortcuts", reloaded.ShortcutsOutputDir())
}

func TestLookupLauncherDefaults(t *testing.T) {
	t.Parallel()

	cfg := Instance{vals: Values{
		Launchers: Launchers{
			Steam: LauncherDefaults{InstallDir: "/s"},
			Epic:  LauncherDefaults{InstallDir: "/e", Disabled: true},
			Gog:   LauncherDefaults{InstallDir: "/g"},
		},
	}}

	assert.Equal(t, "/s", cfg.LookupLauncherDefaults("steam").InstallDir)
	assert.True(t, cfg.LookupLauncherDefaults("epic").Disabled)
	assert.Equal(t, "/g", cfg.LookupLauncherDefaults("gog").InstallDir)
	assert.Equal(t, LauncherDefaults{}, cfg.LookupLauncherDefaults("unknown"))
}
