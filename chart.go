// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

type ChartOption struct {
	titleText  string
	xLabelText string
	yLabelText string
	logX       bool // X軸を対数にする
	logY       bool // Y軸を対数にする
}

// 軌跡グラフに載せるデータ
type ChartData struct {
	ASV    []Sample
	AUVs   [][]Sample
	Events []ErrorEvent
}

// 比較グラフの1系列
type LabeledSeries struct {
	Label  string
	Series *Series
}

// 系列の色
var palette = []color.RGBA{
	colornames.Darkmagenta,
	colornames.Darkcyan,
	colornames.Darkorange,
	colornames.Seagreen,
	colornames.Royalblue,
	colornames.Firebrick,
}

func paletteColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

// エラーイベントの描き方
type eventStyle struct {
	label string
	shape draw.GlyphDrawer
	color color.Color
}

func styleOf(ev ErrorEvent) eventStyle {
	switch {
	case ev.Origin == OriginG && ev.On:
		return eventStyle{"g_error_on", draw.CircleGlyph{}, colornames.Black}
	case ev.Origin == OriginG:
		return eventStyle{"g_error_off", draw.CrossGlyph{}, colornames.Black}
	case ev.Origin == OriginR && ev.On:
		return eventStyle{"r_error_on", draw.CircleGlyph{}, colornames.Red}
	case ev.Origin == OriginR:
		return eventStyle{"r_error_off", draw.CrossGlyph{}, colornames.Red}
	case ev.Origin == OriginW:
		return eventStyle{"error_resolved", draw.TriangleGlyph{}, colornames.Orange}
	case ev.On:
		return eventStyle{"error_called", draw.TriangleGlyph{}, colornames.Blue}
	default:
		return eventStyle{"error_solved", draw.CrossGlyph{}, colornames.Red}
	}
}

func newPlot(option ChartOption) *plot.Plot {
	p := plot.New()

	p.Title.Text = option.titleText
	p.X.Label.Text = option.xLabelText
	p.Y.Label.Text = option.yLabelText

	// 背景色
	p.BackgroundColor = colornames.Snow

	// 凡例の位置を右下に設定
	p.Legend.Top = false
	p.Legend.Left = false
	p.Legend.Padding = vg.Points(5)

	return p
}

// 折れ線を追加する
func addLine(p *plot.Plot, label string, xys plotter.XYs, c color.Color, dashes []vg.Length) error {
	if len(xys) == 0 {
		return nil
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = c
	line.Dashes = dashes
	p.Add(line)
	p.Legend.Add(label, line) // 凡例
	return nil
}

// 点を追加する
func addScatter(p *plot.Plot, label string, xys plotter.XYs, shape draw.GlyphDrawer, c color.Color) error {
	if len(xys) == 0 {
		return nil
	}
	points, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	points.Shape = shape
	points.Color = c
	points.Radius = vg.Points(3)
	p.Add(points)
	p.Legend.Add(label, points) // 凡例
	return nil
}

// エラーイベントを種類ごとに追加する
func addEvents(p *plot.Plot, events []ErrorEvent, xy func(ErrorEvent) plotter.XY) error {
	order := []string{}
	styles := map[string]eventStyle{}
	groups := map[string]plotter.XYs{}
	for _, ev := range events {
		style := styleOf(ev)
		if _, ok := styles[style.label]; !ok {
			order = append(order, style.label)
			styles[style.label] = style
		}
		groups[style.label] = append(groups[style.label], xy(ev))
	}
	for _, label := range order {
		style := styles[label]
		slog.Debug("events", "label", label, "count", len(groups[label]))
		if err := addScatter(p, label, groups[label], style.shape, style.color); err != nil {
			return err
		}
	}
	return nil
}

func xysOf(samples []Sample, xy func(Sample) plotter.XY) plotter.XYs {
	xys := make(plotter.XYs, len(samples))
	for i, s := range samples {
		xys[i] = xy(s)
	}
	return xys
}

func planeXY(s Sample) plotter.XY { return plotter.XY{X: s.X, Y: s.Y} }

func axisXY(s Sample) plotter.XY { return plotter.XY{X: s.T, Y: s.X + s.Y} }

// プロットを画像ファイルに保存する(形式は拡張子で決まる)
func savePlot(p *plot.Plot, savefilepath string, graphWidth int, graphHeight int) error {
	if err := os.MkdirAll(filepath.Dir(savefilepath), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := p.Save(vg.Points(float64(graphWidth)), vg.Points(float64(graphHeight)), savefilepath); err != nil {
		return fmt.Errorf("could not save plot: %w", err)
	}
	slog.Debug("saved", "file", savefilepath)
	return nil
}

// 平面上の軌跡とエラー発生地点のグラフを保存する
func saveTrajectoryChart(savefilepath string, graphWidth int, graphHeight int, data ChartData) error {
	p := newPlot(ChartOption{
		titleText:  "Trajectory",
		xLabelText: "X (m)",
		yLabelText: "Y (m)",
	})

	for i, track := range data.AUVs {
		if err := addLine(p, fmt.Sprintf("auv_%d", i+1), xysOf(track, planeXY), paletteColor(i), nil); err != nil {
			slog.Error("addLine", "err", err)
			return err
		}
	}
	if err := addLine(p, "asv", xysOf(data.ASV, planeXY), colornames.Green, plotutil.Dashes(1)); err != nil {
		slog.Error("addLine", "err", err)
		return err
	}
	err := addEvents(p, data.Events, func(ev ErrorEvent) plotter.XY {
		return plotter.XY{X: ev.X, Y: ev.Y}
	})
	if err != nil {
		slog.Error("addEvents", "err", err)
		return err
	}

	return savePlot(p, savefilepath, graphWidth, graphHeight)
}

// 時間に対する移動量(X+Y)とエラー発生のグラフを保存する
func saveEvolutionChart(savefilepath string, graphWidth int, graphHeight int, data ChartData) error {
	p := newPlot(ChartOption{
		titleText:  "Error evolution",
		xLabelText: "Time (s)",
		yLabelText: "X+Y (m)",
	})

	if err := addLine(p, "asv", xysOf(data.ASV, axisXY), colornames.Green, plotutil.Dashes(1)); err != nil {
		slog.Error("addLine", "err", err)
		return err
	}
	for i, track := range data.AUVs {
		if err := addScatter(p, fmt.Sprintf("auv_%d", i+1), xysOf(track, axisXY), draw.CircleGlyph{}, paletteColor(i)); err != nil {
			slog.Error("addScatter", "err", err)
			return err
		}
	}
	err := addEvents(p, evolutionEvents(data.Events), func(ev ErrorEvent) plotter.XY {
		return plotter.XY{X: ev.T, Y: ev.X + ev.Y}
	})
	if err != nil {
		slog.Error("addEvents", "err", err)
		return err
	}

	return savePlot(p, savefilepath, graphWidth, graphHeight)
}

// 時間変化グラフにはG,RのOFFを載せない
func evolutionEvents(events []ErrorEvent) []ErrorEvent {
	groups := splitEvents(events)
	kept := []ErrorEvent{}
	kept = append(kept, groups[OriginG][true]...)
	kept = append(kept, groups[OriginR][true]...)
	for _, origin := range []Origin{OriginW, ""} {
		kept = append(kept, groups[origin][true]...)
		kept = append(kept, groups[origin][false]...)
	}
	return kept
}

// 対数軸の範囲(値が1つしかなければ前後1桁に広げる)
func logRange(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 1, 10
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		return lo / 10, hi * 10
	}
	return lo, hi
}

// 対数軸に載せられない点を除く
func plottable(points []StatPoint, option ChartOption) []StatPoint {
	kept := []StatPoint{}
	for _, pt := range points {
		if option.logX && pt.Key <= 0 {
			continue
		}
		if option.logY && pt.Mean <= 0 {
			continue
		}
		kept = append(kept, pt)
	}
	return kept
}

// 測位精度に対する指標を系列ごとに比較するグラフを保存する
func saveComparisonChart(savefilepath string, graphWidth int, graphHeight int, option ChartOption, sets []LabeledSeries) error {
	// 対数軸に載せる点が無ければ線形軸にする
	stats := make([][]StatPoint, len(sets))
	hasData := false
	for i, set := range sets {
		stats[i] = plottable(set.Series.Stats(), option)
		hasData = hasData || len(stats[i]) > 0
	}
	if !hasData && (option.logX || option.logY) {
		slog.Warn("no positive values, falling back to linear axes", "file", savefilepath)
		option.logX, option.logY = false, false
		for i, set := range sets {
			stats[i] = set.Series.Stats()
		}
	}

	p := newPlot(option)
	p.Legend.Top = true
	if option.logX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if option.logY {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	// 補助線
	p.Add(plotter.NewGrid())

	// 描いた点の座標(対数軸の範囲に使う)
	xs, ys := []float64{}, []float64{}

	for i, set := range sets {
		points := stats[i]
		if len(points) == 0 {
			slog.Warn("empty series", "label", set.Label, "file", savefilepath)
			continue
		}
		c := paletteColor(i)

		// 信頼区間の帯
		if len(points) > 1 {
			band := make(plotter.XYs, 0, 2*len(points))
			for _, pt := range points {
				band = append(band, plotter.XY{X: pt.Key, Y: pt.Mean + pt.CI})
			}
			for j := len(points) - 1; j >= 0; j-- {
				low := points[j].Mean - points[j].CI
				if option.logY && low <= 0 {
					low = points[j].Mean
				}
				band = append(band, plotter.XY{X: points[j].Key, Y: low})
			}
			poly, err := plotter.NewPolygon(band)
			if err != nil {
				slog.Error("NewPolygon", "err", err)
				return err
			}
			poly.Color = color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0x40}
			poly.LineStyle.Color = poly.Color
			poly.LineStyle.Width = 0
			p.Add(poly)
			for _, xy := range band {
				xs = append(xs, xy.X)
				ys = append(ys, xy.Y)
			}
		}

		// 平均値の折れ線
		means := make(plotter.XYs, len(points))
		for j, pt := range points {
			means[j] = plotter.XY{X: pt.Key, Y: pt.Mean}
			xs = append(xs, pt.Key)
			ys = append(ys, pt.Mean)
		}
		line, marks, err := plotter.NewLinePoints(means)
		if err != nil {
			slog.Error("NewLinePoints", "err", err)
			return err
		}
		line.Color = c
		marks.Color = c
		marks.Shape = plotutil.Shape(i)
		p.Add(line, marks)
		p.Legend.Add(set.Label, line, marks) // 凡例
	}

	// 自動の範囲は幅が0のとき±1されて0以下になりうる
	if option.logX {
		p.X.Min, p.X.Max = logRange(xs)
	}
	if option.logY {
		p.Y.Min, p.Y.Max = logRange(ys)
	}

	return savePlot(p, savefilepath, graphWidth, graphHeight)
}
