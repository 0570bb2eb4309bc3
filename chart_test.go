// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg/draw"
)

// 画像ファイルができていて空でないこと
func requireImage(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func testChartData() ChartData {
	auv := []Sample{
		{T: 0, Point: Point{-1, 1}},
		{T: 1, Point: Point{-2, 2}},
		{T: 0, Point: Point{1, 1}},
		{T: 1, Point: Point{2, 3}},
	}
	return ChartData{
		ASV:  []Sample{{T: 0, Point: Point{0, 0}}, {T: 1, Point: Point{1, 1}}, {T: 2, Point: Point{2, 0}}},
		AUVs: partition(auv, LayoutQuad),
		Events: []ErrorEvent{
			{Origin: OriginG, On: true, T: 0.5, Point: Point{-1, 1}},
			{Origin: OriginR, On: false, T: 0.7, Point: Point{1, 1}},
			{Origin: OriginW, T: 1.5, Point: Point{-1, 1}},
		},
	}
}

func TestSaveTrajectoryChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trajectory.png")
	require.NoError(t, saveTrajectoryChart(path, 320, 240, testChartData()))
	requireImage(t, path)
}

func TestSaveEvolutionChartSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "evolution.svg")
	require.NoError(t, saveEvolutionChart(path, 320, 240, testChartData()))
	requireImage(t, path)
}

func TestSaveTrajectoryChartEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.png")
	require.NoError(t, saveTrajectoryChart(path, 320, 240, ChartData{}))
	requireImage(t, path)
}

func TestSaveChartUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.xyz")
	assert.Error(t, saveTrajectoryChart(path, 320, 240, testChartData()))
}

func TestSaveComparisonChart(t *testing.T) {
	smart := newSeries()
	smart.Add(0.1, 0.5)
	smart.Add(0.1, 0.7)
	smart.Add(1, 0.9)
	smart.Add(10, 0.95)
	basic := newSeries()
	basic.Add(0.1, 0.2)
	basic.Add(1, 0.4)

	option := ChartOption{titleText: "Precision", xLabelText: "Accuracy", logX: true, logY: true}
	sets := []LabeledSeries{{Label: "smart", Series: smart}, {Label: "basic", Series: basic}}

	path := filepath.Join(t.TempDir(), "precision.png")
	require.NoError(t, saveComparisonChart(path, 320, 240, option, sets))
	requireImage(t, path)
}

func TestSaveComparisonChartNoPositiveValues(t *testing.T) {
	zero := newSeries()
	zero.Add(0, 0)
	zero.Add(0, 0)

	option := ChartOption{titleText: "Time", logX: true, logY: true}
	path := filepath.Join(t.TempDir(), "time.png")
	require.NoError(t, saveComparisonChart(path, 320, 240, option, []LabeledSeries{{Label: "z", Series: zero}}))
	requireImage(t, path)
}

func TestSaveComparisonChartFlatLogY(t *testing.T) {
	flat := newSeries()
	flat.Add(2, 0.5)
	flat.Add(5, 0.5)

	option := ChartOption{titleText: "Time", logX: true, logY: true}
	path := filepath.Join(t.TempDir(), "time.png")
	require.NoError(t, saveComparisonChart(path, 320, 240, option, []LabeledSeries{{Label: "flat", Series: flat}}))
	requireImage(t, path)
}

func TestSaveComparisonChartSingleKey(t *testing.T) {
	one := newSeries()
	one.Add(0.1, 0.3)
	one.Add(0.1, 0.6)

	option := ChartOption{titleText: "Precision", logX: true}
	path := filepath.Join(t.TempDir(), "precision.png")
	require.NoError(t, saveComparisonChart(path, 320, 240, option, []LabeledSeries{{Label: "one", Series: one}}))
	requireImage(t, path)
}

func TestLogRange(t *testing.T) {
	lo, hi := logRange([]float64{0.5, 0.5})
	assert.InDelta(t, 0.05, lo, 1e-12)
	assert.InDelta(t, 5.0, hi, 1e-12)

	lo, hi = logRange([]float64{3, 0.2, 7})
	assert.Equal(t, 0.2, lo)
	assert.Equal(t, 7.0, hi)

	lo, hi = logRange(nil)
	assert.Greater(t, lo, 0.0)
	assert.Greater(t, hi, lo)
}

func TestEvolutionEvents(t *testing.T) {
	events := []ErrorEvent{
		{Origin: OriginG, On: true, T: 1},
		{Origin: OriginG, On: false, T: 2},
		{Origin: OriginR, On: true, T: 3},
		{Origin: OriginR, On: false, T: 4},
		{Origin: OriginW, On: false, T: 5},
		{On: true, T: 6},
		{On: false, T: 7},
	}

	kept := evolutionEvents(events)
	labels := []string{}
	for _, ev := range kept {
		labels = append(labels, styleOf(ev).label)
	}
	assert.ElementsMatch(t, []string{"g_error_on", "r_error_on", "error_resolved", "error_called", "error_solved"}, labels)
}

func TestPlottable(t *testing.T) {
	points := []StatPoint{{Key: 0, Mean: 1}, {Key: 1, Mean: 0}, {Key: 2, Mean: 3}}

	assert.Len(t, plottable(points, ChartOption{}), 3)
	assert.Len(t, plottable(points, ChartOption{logX: true}), 2)
	assert.Equal(t, []StatPoint{{Key: 2, Mean: 3}}, plottable(points, ChartOption{logX: true, logY: true}))
}

func TestStyleOf(t *testing.T) {
	assert.Equal(t, "g_error_on", styleOf(ErrorEvent{Origin: OriginG, On: true}).label)
	assert.Equal(t, "r_error_off", styleOf(ErrorEvent{Origin: OriginR}).label)
	assert.Equal(t, "error_resolved", styleOf(ErrorEvent{Origin: OriginW, On: true}).label)

	called := styleOf(ErrorEvent{On: true})
	assert.Equal(t, "error_called", called.label)
	assert.Equal(t, draw.TriangleGlyph{}, called.shape)
	assert.Equal(t, colornames.Blue, called.color)

	assert.Equal(t, "error_solved", styleOf(ErrorEvent{}).label)
}
