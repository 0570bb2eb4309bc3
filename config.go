// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// シナリオ設定
type Config struct {
	// ログの置き場所
	LogDir string `yaml:"log_dir"`
	// AUVの配置 quad|split
	Layout string `yaml:"layout"`

	Files FilesConfig `yaml:"files"`
	Chart ChartConfig `yaml:"chart"`
}

// 各ログのファイル名(LogDirからの相対パス)
type FilesConfig struct {
	Position     string `yaml:"position"`      // ASVの位置ログ
	AUVPosition  string `yaml:"auv_position"`  // AUVの位置ログ
	TaggedErrors string `yaml:"tagged_errors"` // 発生源付きエラーログ
	StateErrors  string `yaml:"state_errors"`  // 状態形式エラーログ
	Truth        string `yaml:"truth"`         // 真値ログ
	Tx           string `yaml:"tx"`            // 送信ログ(カレントディレクトリ基準)
}

// グラフの設定
type ChartConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Font   string `yaml:"font"`
	OutDir string `yaml:"out_dir"`
}

// 既定値
func defaultConfig() Config {
	return Config{
		LogDir: "log",
		Layout: string(LayoutQuad),
		Files: FilesConfig{
			Position:     "position_log.csv",
			AUVPosition:  "position_log_a.csv",
			TaggedErrors: "error_log_t.csv",
			StateErrors:  "error_log.csv",
			Truth:        "true_error_log.csv",
			Tx:           "log.out",
		},
		Chart: ChartConfig{
			Width:  640,
			Height: 480,
			OutDir: ".",
		},
	}
}

// 設定ファイルを読み込む(指定のない項目は既定値のまま)
func loadConfig(filePath string) (Config, error) {
	cfg := defaultConfig()
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", filePath, err)
	}
	if _, err := parseLayout(cfg.Layout); err != nil {
		return cfg, fmt.Errorf("%s: %w", filePath, err)
	}
	return cfg, nil
}

func (c Config) logPath(name string) string {
	return filepath.Join(c.LogDir, name)
}

func (c Config) layout() Layout {
	l, err := parseLayout(c.Layout)
	if err != nil {
		return LayoutQuad
	}
	return l
}
