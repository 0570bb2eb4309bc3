// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
// AUV/ASVネットワークシミュレーションが出力した
// 位置ログ,エラーログ,真値ログ,送信ログを解析する
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
)

// TrueTypeフォントを読み込んでグラフの既定フォントにする
func setupFont(fontPath string) error {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return err
	}
	ttf, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", fontPath, err)
	}

	typeface := font.Font{Typeface: font.Typeface(filepath.Base(fontPath))}
	font.DefaultCache.Add([]font.Face{
		{
			Font: typeface,
			Face: ttf,
		},
	})

	if !font.DefaultCache.Has(typeface) {
		return fmt.Errorf("typeface %s, font load error", typeface.Typeface)
	}

	plot.DefaultFont = typeface
	plotter.DefaultFont = typeface
	return nil
}

// 設定ファイルとコマンドライン引数から設定を決める
func resolveConfig(c *cli.Context) (Config, error) {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}
	if c.IsSet("log-dir") {
		cfg.LogDir = c.String("log-dir")
	}
	if c.IsSet("layout") {
		layout, err := parseLayout(c.String("layout"))
		if err != nil {
			return cfg, err
		}
		cfg.Layout = string(layout)
	}
	if c.IsSet("width") {
		cfg.Chart.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Chart.Height = c.Int("height")
	}
	if c.IsSet("font") {
		cfg.Chart.Font = c.String("font")
	}
	if c.IsSet("out-dir") {
		cfg.Chart.OutDir = c.String("out-dir")
	}

	if cfg.Chart.Font != "" {
		if err := setupFont(cfg.Chart.Font); err != nil {
			slog.Error("setupFont", "err", err)
			return cfg, err
		}
	}
	return cfg, nil
}

// ログを読むコマンドに共通のフラグ
func logFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "log-dir",
			Aliases: []string{"d"},
			Usage:   "ログのディレクトリ",
			Value:   "log",
		},
		&cli.StringFlag{
			Name:    "layout",
			Aliases: []string{"l"},
			Usage:   "AUVの配置 quad(4台) | split(2台)",
			Value:   string(LayoutQuad),
		},
	}
	return append(flags, extra...)
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "auvinsight",
		Usage:   "AUV/ASVシミュレーションのログを解析する",
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "設定ファイル(YAML)",
			},
			&cli.IntFlag{
				Name:    "width",
				Aliases: []string{"W", "Wpt"},
				Usage:   "グラフの横幅(pt)",
				Value:   640,
			},
			&cli.IntFlag{
				Name:    "height",
				Aliases: []string{"H", "Hpt"},
				Usage:   "グラフの縦幅(pt)",
				Value:   480,
			},
			&cli.StringFlag{
				Name:  "font",
				Usage: "グラフに使うTrueTypeフォント",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "デバッグログを出す",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "summary",
				Usage:     "1回分のログを集計して';'区切りの1行を出力する",
				ArgsUsage: "ACCURACY ERROR_PROB SIGMA TIME",
				Flags:     logFlags(),
				Action: func(c *cli.Context) error {
					if c.Args().Len() != 4 {
						return cli.Exit("実行条件を4つ指定してください", -1)
					}
					cfg, err := resolveConfig(c)
					if err != nil {
						return err
					}
					params := RunParams{
						Accuracy:  c.Args().Get(0),
						ErrorProb: c.Args().Get(1),
						Sigma:     c.Args().Get(2),
						Time:      c.Args().Get(3),
					}
					if err := printSummary(c.App.Writer, cfg, params); err != nil {
						slog.Error("printSummary", "err", err)
						return err
					}
					return nil
				},
			},
			{
				Name:  "trajectory",
				Usage: "軌跡とエラー発生地点のグラフを保存する",
				Flags: logFlags(&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "出力ファイル(拡張子で形式を決める)",
					Value:   "trajectory.png",
				}),
				Action: func(c *cli.Context) error {
					cfg, err := resolveConfig(c)
					if err != nil {
						return err
					}
					if err := plotTrajectory(cfg, c.String("out")); err != nil {
						slog.Error("plotTrajectory", "err", err)
						return err
					}
					return nil
				},
			},
			{
				Name:  "evolution",
				Usage: "時間に対する移動量とエラー発生のグラフを保存する",
				Flags: logFlags(&cli.StringFlag{
					Name:    "out",
					Aliases: []string{"o"},
					Usage:   "出力ファイル(拡張子で形式を決める)",
					Value:   "evolution.png",
				}),
				Action: func(c *cli.Context) error {
					cfg, err := resolveConfig(c)
					if err != nil {
						return err
					}
					if err := plotEvolution(cfg, c.String("out")); err != nil {
						slog.Error("plotEvolution", "err", err)
						return err
					}
					return nil
				},
			},
			{
				Name:      "compare",
				Usage:     "複数の結果ファイルを測位精度ごとに比較する",
				ArgsUsage: "LABEL=FILE ...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out-dir",
						Aliases: []string{"o"},
						Usage:   "グラフの出力先",
						Value:   ".",
					},
					&cli.StringFlag{
						Name:  "ext",
						Usage: "グラフの形式 png | svg | pdf",
						Value: "png",
					},
				},
				Action: func(c *cli.Context) error {
					if c.Args().Len() == 0 {
						return cli.Exit("結果ファイルが指定されていません", -1)
					}
					cfg, err := resolveConfig(c)
					if err != nil {
						return err
					}
					inputs, err := parseInputs(c.Args().Slice())
					if err != nil {
						return cli.Exit(err.Error(), -1)
					}
					if err := compareResults(c.App.Writer, cfg, inputs, c.String("ext")); err != nil {
						slog.Error("compareResults", "err", err)
						return err
					}
					return nil
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		slog.Error("app.Run", "err", err)
		os.Exit(1)
	}
}
