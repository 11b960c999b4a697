// Games Detector
// Copyright (c) 2026 Fastattack
// SPDX-License-Identifier: MIT
//
// This file is part of Games Detector.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLaunchers(t *testing.T) {
	t.Parallel()

	t.Run("accepts_known_launchers", func(t *testing.T) {
		t.Parallel()

		selected, err := parseLaunchers("steam,gog")

		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"steam": true, "gog": true}, selected)
	})

	t.Run("normalizes_case_and_spacing", func(t *testing.T) {
		t.Parallel()

		selected, err := parseLaunchers(" Steam , EPIC ")

		require.NoError(t, err)
		assert.Equal(t, map[string]bool{"steam": true, "epic": true}, selected)
	})

	t.Run("rejects_unknown_launcher", func(t *testing.T) {
		t.Parallel()

		_, err := parseLaunchers("steam,origin")
		assert.ErrorContains(t, err, "origin")
	})

	t.Run("rejects_empty_selection", func(t *testing.T) {
		t.Parallel()

		_, err := parseLaunchers(" , ")
		assert.Error(t, err)
	})
}
