// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"text/tabwriter"
)

// 集計結果を1行出力する
func printSummary(w io.Writer, cfg Config, params RunParams) error {
	s, err := collectSummary(cfg, params)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s.Record())
	return err
}

// グラフ用にログを読み込む(無いログは空のまま)
func loadChartData(cfg Config) (ChartData, error) {
	layout := cfg.layout()
	data := ChartData{ASV: []Sample{}, AUVs: [][]Sample{}, Events: []ErrorEvent{}}

	asvLog := cfg.logPath(cfg.Files.Position)
	if track, err := loadPositionLog(asvLog); err == nil {
		data.ASV = track
	} else if !missing(err, asvLog) {
		slog.Error("loadPositionLog", "err", err)
		return data, err
	}

	auvLog := cfg.logPath(cfg.Files.AUVPosition)
	if samples, err := loadPositionLog(auvLog); err == nil {
		data.AUVs = partition(samples, layout)
	} else if !missing(err, auvLog) {
		slog.Error("loadPositionLog", "err", err)
		return data, err
	}

	var (
		events   []ErrorEvent
		err      error
		errorLog string
	)
	if layout == LayoutQuad {
		errorLog = cfg.logPath(cfg.Files.TaggedErrors)
		events, err = loadTaggedErrors(errorLog)
	} else {
		errorLog = cfg.logPath(cfg.Files.StateErrors)
		events, err = loadStateErrors(errorLog)
	}
	if err == nil {
		data.Events = events
	} else if !missing(err, errorLog) {
		slog.Error("loadErrors", "err", err)
		return data, err
	}
	return data, nil
}

func (c Config) outPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Chart.OutDir, name)
}

// 軌跡グラフ
func plotTrajectory(cfg Config, out string) error {
	data, err := loadChartData(cfg)
	if err != nil {
		return err
	}
	return saveTrajectoryChart(cfg.outPath(out), cfg.Chart.Width, cfg.Chart.Height, data)
}

// 移動量の時間変化グラフ
func plotEvolution(cfg Config, out string) error {
	data, err := loadChartData(cfg)
	if err != nil {
		return err
	}
	return saveEvolutionChart(cfg.outPath(out), cfg.Chart.Width, cfg.Chart.Height, data)
}

// 比較する結果ファイル
type ResultInput struct {
	Label string
	Path  string
}

// "ラベル=ファイル"を解釈する(ラベル省略時はファイル名)
func parseInputs(args []string) ([]ResultInput, error) {
	inputs := make([]ResultInput, 0, len(args))
	for _, arg := range args {
		label, path, found := strings.Cut(arg, "=")
		if !found {
			path = arg
			label = strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		}
		if path == "" || label == "" {
			return nil, fmt.Errorf("invalid input %q, want LABEL=FILE", arg)
		}
		inputs = append(inputs, ResultInput{Label: label, Path: path})
	}
	return inputs, nil
}

// 比較グラフの定義
type comparison struct {
	name   string
	option ChartOption
	series func(label string, a Aggregate) []LabeledSeries
}

func single(pick func(Aggregate) *Series) func(string, Aggregate) []LabeledSeries {
	return func(label string, a Aggregate) []LabeledSeries {
		return []LabeledSeries{{Label: label, Series: pick(a)}}
	}
}

var comparisons = []comparison{
	{
		name:   "precision",
		option: ChartOption{titleText: "Precision", xLabelText: "Accuracy", logX: true},
		series: single(func(a Aggregate) *Series { return a.Precision }),
	},
	{
		name:   "recall",
		option: ChartOption{titleText: "Recall", xLabelText: "Accuracy", logX: true},
		series: single(func(a Aggregate) *Series { return a.Recall }),
	},
	{
		name:   "distance",
		option: ChartOption{titleText: "Distance per error", xLabelText: "Accuracy", yLabelText: "Distance", logX: true, logY: true},
		series: single(func(a Aggregate) *Series { return a.Distance }),
	},
	{
		name:   "time",
		option: ChartOption{titleText: "Time per error", xLabelText: "Accuracy", yLabelText: "Time", logX: true, logY: true},
		series: single(func(a Aggregate) *Series { return a.Time }),
	},
	{
		name:   "covered",
		option: ChartOption{titleText: "AUV distance covered", xLabelText: "Accuracy", yLabelText: "Distance covered", logX: true, logY: true},
		series: func(label string, a Aggregate) []LabeledSeries {
			return []LabeledSeries{
				{Label: label + "_1", Series: a.Covered1},
				{Label: label + "_2", Series: a.Covered2},
			}
		},
	},
}

// 結果ファイルを読み込み、比較グラフと統計表を出力する
func compareResults(w io.Writer, cfg Config, inputs []ResultInput, ext string) error {
	aggregates := make([]Aggregate, len(inputs))
	for i, in := range inputs {
		runs, err := loadResults(in.Path)
		if err != nil {
			slog.Error("loadResults", "err", err)
			return err
		}
		slog.Debug("loaded", "file", in.Path, "runs", len(runs))
		aggregates[i] = aggregate(runs)
	}

	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintln(tw, "metric\tlabel\taccuracy\tmean\tci95\tn")
	for _, cmp := range comparisons {
		sets := []LabeledSeries{}
		for i, in := range inputs {
			sets = append(sets, cmp.series(in.Label, aggregates[i])...)
		}

		for _, set := range sets {
			for _, pt := range set.Series.Stats() {
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%d\n", cmp.name, set.Label, pt.Key, pt.Mean, pt.CI, pt.N)
			}
		}

		chartfile := cfg.outPath(cmp.name + "." + strings.TrimPrefix(ext, "."))
		if err := saveComparisonChart(chartfile, cfg.Chart.Width, cfg.Chart.Height, cmp.option, sets); err != nil {
			slog.Error("saveComparisonChart", "err", err)
			return err
		}
	}
	return tw.Flush()
}
