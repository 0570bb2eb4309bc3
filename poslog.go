// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const (
	ColTime = 0 // 位置ログの列1番目:時間(s)
	ColX    = 1 // 位置ログの列2番目:X座標(m)
	ColY    = 2 // 位置ログの列3番目:Y座標(m)
)

// 空のCSVファイル
var ErrNoRecords = errors.New("no records")

// 位置ログのCSVファイルを読み込んで、行列を返す
func loadCsv(filePath string, skipLines int) (*mat.Dense, error) {
	// CSVファイルを開く
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// CSVリーダーを作成
	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	// ヘッダー行を読み飛ばす
	for n := 0; n < skipLines; n++ {
		if _, err := reader.Read(); err != nil {
			slog.Error("Read", "err", err)
			return nil, err
		}
	}

	// 残りの行を読み込む
	records, err := reader.ReadAll()
	if err != nil {
		slog.Error("ReadAll", "err", err)
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", filePath, ErrNoRecords)
	}

	// データを格納するスライスを作成
	data := []float64{}
	rows := len(records)
	cols := len(records[0])

	// CSVデータをスライスに変換
	for r, record := range records {
		for c, value := range record {
			var floatValue float64
			value = strings.TrimSpace(value)
			if value == "" {
				slog.Warn("assigned to Zero", "file", filePath, "row", skipLines+1+r, "column", 1+c)
				// 空カラムには0を割り当てる
				floatValue = 0.0
			} else {
				floatValue, err = strconv.ParseFloat(value, 64)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", filePath, skipLines+1+r, err)
				}
			}
			data = append(data, floatValue)
		}
	}

	// 行列を作成
	return mat.NewDense(rows, cols, data), nil
}

// 2次元座標
type Point struct {
	X float64
	Y float64
}

// 時刻付きの座標
type Sample struct {
	T float64
	Point
}

// 行列から時刻,X,Yを取り出す
func samplesOf(matrix mat.Matrix) ([]Sample, error) {
	rows, cols := matrix.Dims()
	if cols <= ColY {
		return nil, fmt.Errorf("expected at least %d columns, got %d", ColY+1, cols)
	}
	samples := make([]Sample, rows)
	for r := range samples {
		samples[r].T = matrix.At(r, ColTime)
		samples[r].X = matrix.At(r, ColX)
		samples[r].Y = matrix.At(r, ColY)
	}
	return samples, nil
}

// 位置ログを読み込む
func loadPositionLog(filePath string) ([]Sample, error) {
	matrix, err := loadCsv(filePath, 0)
	if errors.Is(err, ErrNoRecords) {
		return []Sample{}, nil
	} else if err != nil {
		return nil, err
	}
	return samplesOf(matrix)
}

// 2点間のユークリッド距離
func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// 軌跡の総移動距離
func totalDistance(track []Sample) float64 {
	var total float64
	for i := 1; i < len(track); i++ {
		total += distance(track[i-1].Point, track[i].Point)
	}
	return total
}

// AUVの配置
type Layout string

const (
	LayoutQuad  Layout = "quad"  // 4台:象限で区別する
	LayoutSplit Layout = "split" // 2台:X座標の符号で区別する
)

func parseLayout(s string) (Layout, error) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutQuad, "4":
		return LayoutQuad, nil
	case LayoutSplit, "2":
		return LayoutSplit, nil
	}
	return "", fmt.Errorf("unknown layout %q", s)
}

// AUVの台数
func (l Layout) Vehicles() int {
	if l == LayoutSplit {
		return 2
	}
	return 4
}

// 座標からAUV番号(0始まり)を決める
func (l Layout) vehicleOf(p Point) int {
	if l == LayoutSplit {
		if p.X < 0 {
			return 0
		}
		return 1
	}
	switch {
	case p.X < 0 && p.Y > 0: // 第1区画 -> AUV1
		return 0
	case p.X > 0 && p.Y > 0: // 第2区画 -> AUV2
		return 1
	case p.X < 0 && p.Y < 0: // 第3区画 -> AUV3
		return 2
	default: // 残り(軸上を含む) -> AUV4
		return 3
	}
}

// 全AUVが混在した位置ログを台ごとの軌跡に分ける
func partition(samples []Sample, layout Layout) [][]Sample {
	tracks := make([][]Sample, layout.Vehicles())
	for i := range tracks {
		tracks[i] = []Sample{}
	}
	for _, s := range samples {
		v := layout.vehicleOf(s.Point)
		tracks[v] = append(tracks[v], s)
	}
	return tracks
}

// 時間に対する移動量(X+Y)
type AxisPoint struct {
	T    float64
	Axis float64
}

// 座標をX+Yの1軸に射影する
func movementAxis(samples []Sample) []AxisPoint {
	axis := make([]AxisPoint, len(samples))
	for i, s := range samples {
		axis[i] = AxisPoint{T: s.T, Axis: s.X + s.Y}
	}
	return axis
}
