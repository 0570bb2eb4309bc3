// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// エラーの発生源
type Origin string

const (
	OriginG Origin = "G" // G判定によるエラー
	OriginR Origin = "R" // R判定によるエラー
	OriginW Origin = "W" // それ以外(解決済み)
)

// エラーログの1行
type ErrorEvent struct {
	Origin Origin // 状態形式のログでは空
	On     bool
	T      float64
	Point
}

func (e ErrorEvent) String() string {
	state := "OFF"
	if e.On {
		state = "ON"
	}
	return fmt.Sprintf("%s %s t=%g (%g,%g)", e.Origin, state, e.T, e.X, e.Y)
}

// エラーログのCSVを1行ずつ読んで変換する
func readErrorRecords(filePath string, parse func(fields []string) (ErrorEvent, error)) ([]ErrorEvent, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // 行ごとに列数が違ってもよい

	events := []ErrorEvent{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}
		for i := range record {
			record[i] = strings.TrimSpace(record[i])
		}
		line, _ := reader.FieldPos(0)
		if len(record) < 4 {
			slog.Warn("short row skipped", "file", filePath, "line", line, "columns", len(record))
			continue
		}
		ev, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filePath, line, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// 時刻,X,Yの3列を数値にする
func parseTXY(fields []string) (t, x, y float64, err error) {
	if t, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return
	}
	if x, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return
	}
	y, err = strconv.ParseFloat(fields[2], 64)
	return
}

// 発生源付きエラーログ(発生源,時刻,X,Y,ON|OFF)を読み込む
func loadTaggedErrors(filePath string) ([]ErrorEvent, error) {
	return readErrorRecords(filePath, func(fields []string) (ErrorEvent, error) {
		t, x, y, err := parseTXY(fields[1:])
		if err != nil {
			return ErrorEvent{}, err
		}
		origin := OriginW
		switch Origin(fields[0]) {
		case OriginG:
			origin = OriginG
		case OriginR:
			origin = OriginR
		}
		on := len(fields) > 4 && fields[4] == "ON"
		return ErrorEvent{Origin: origin, On: on, T: t, Point: Point{x, y}}, nil
	})
}

// 状態形式のエラーログ(ON|OFF,時刻,X,Y)を読み込む
func loadStateErrors(filePath string) ([]ErrorEvent, error) {
	return readErrorRecords(filePath, func(fields []string) (ErrorEvent, error) {
		t, x, y, err := parseTXY(fields[1:])
		if err != nil {
			return ErrorEvent{}, err
		}
		return ErrorEvent{On: fields[0] == "ON", T: t, Point: Point{x, y}}, nil
	})
}

// G判定ONから同じ地点で解決(W)されるまでの時間
func resolutionTimesTagged(events []ErrorEvent) []float64 {
	// 解決した地点の時刻(後の行で上書き)
	resolved := map[Point]float64{}
	for _, ev := range events {
		if ev.Origin == OriginW {
			resolved[ev.Point] = ev.T
		}
	}

	diffs := []float64{}
	for _, ev := range events {
		if ev.Origin != OriginG || !ev.On {
			continue
		}
		if t, ok := resolved[ev.Point]; ok {
			diffs = append(diffs, t-ev.T)
		}
	}
	return diffs
}

// ONから同じ地点でOFFになるまでの時間
func resolutionTimesState(events []ErrorEvent) []float64 {
	// 各地点で最後のON時刻とOFF時刻
	onTime := map[Point]float64{}
	offTime := map[Point]float64{}
	for _, ev := range events {
		if ev.On {
			onTime[ev.Point] = ev.T
		} else {
			offTime[ev.Point] = ev.T
		}
	}

	// ONの行ごとに1つ(重複も数える)
	diffs := []float64{}
	for _, ev := range events {
		if !ev.On {
			continue
		}
		if t, ok := offTime[ev.Point]; ok {
			diffs = append(diffs, t-onTime[ev.Point])
		}
	}
	return diffs
}

// 平均解決時間
func meanResolution(diffs []float64) float64 {
	if len(diffs) == 0 {
		return 0
	}
	return stat.Mean(diffs, nil)
}

// 発生源と状態ごとに分ける
func splitEvents(events []ErrorEvent) map[Origin]map[bool][]ErrorEvent {
	groups := map[Origin]map[bool][]ErrorEvent{}
	for _, ev := range events {
		if _, ok := groups[ev.Origin]; !ok {
			groups[ev.Origin] = map[bool][]ErrorEvent{}
		}
		groups[ev.Origin][ev.On] = append(groups[ev.Origin][ev.On], ev)
	}
	return groups
}
