// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, filepath.Join("log", "position_log.csv"), cfg.logPath(cfg.Files.Position))
	assert.Equal(t, LayoutQuad, cfg.layout())
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeLog(t, t.TempDir(), "scenario.yaml", `
log_dir: runs/42
layout: split
files:
  truth: truth.csv
chart:
  width: 800
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "runs/42", cfg.LogDir)
	assert.Equal(t, LayoutSplit, cfg.layout())
	assert.Equal(t, "truth.csv", cfg.Files.Truth)
	assert.Equal(t, "position_log.csv", cfg.Files.Position, "unset keys keep defaults")
	assert.Equal(t, 800, cfg.Chart.Width)
	assert.Equal(t, 480, cfg.Chart.Height)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfig(writeLog(t, dir, "bad.yaml", "layout: hexagon\n"))
	assert.ErrorContains(t, err, "hexagon")

	_, err = loadConfig(writeLog(t, dir, "broken.yaml", "chart: [\n"))
	assert.Error(t, err)

	_, err = loadConfig(filepath.Join(dir, "none.yaml"))
	assert.Error(t, err)
}

func TestOutPath(t *testing.T) {
	cfg := defaultConfig()
	cfg.Chart.OutDir = "figs"
	assert.Equal(t, filepath.Join("figs", "a.png"), cfg.outPath("a.png"))

	abs := filepath.Join(t.TempDir(), "b.png")
	assert.Equal(t, abs, cfg.outPath(abs))
}
