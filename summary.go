// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
)

// コマンドラインで与える実行条件
type RunParams struct {
	Accuracy  string // 測位精度
	ErrorProb string // エラー確率
	Sigma     string
	Time      string
}

// 1回のシミュレーションの集計結果
type Summary struct {
	Params         RunParams
	Layout         Layout
	MeanResolution float64 // エラーが解決されるまでの平均時間(s)
	ASVDistance    float64 // ASVの総移動距離(m)
	Confusion      Confusion
	AUVDistances   []float64   // AUVごとの総移動距離(m)
	Tx             *TxCounters // 4台構成のときだけ出力する
}

// ファイルが無ければ集計しない
func missing(err error, filePath string) bool {
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("log not found", "file", filePath)
		return true
	}
	return false
}

// ログディレクトリを集計する
func collectSummary(cfg Config, params RunParams) (Summary, error) {
	layout := cfg.layout()
	s := Summary{
		Params:       params,
		Layout:       layout,
		AUVDistances: make([]float64, layout.Vehicles()),
	}

	// エラーの解決時間
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
	switch {
	case missing(err, errorLog):
		s.MeanResolution = meanResolution([]float64{0})
	case err != nil:
		slog.Error("loadErrors", "err", err)
		return s, err
	case layout == LayoutQuad:
		s.MeanResolution = meanResolution(resolutionTimesTagged(events))
	default:
		s.MeanResolution = meanResolution(resolutionTimesState(events))
	}

	// 真値との比較
	truthLog := cfg.logPath(cfg.Files.Truth)
	if c, err := loadTruth(truthLog); err == nil {
		s.Confusion = c
	} else if !missing(err, truthLog) {
		slog.Error("loadTruth", "err", err)
		return s, err
	}

	// ASVの移動距離
	asvLog := cfg.logPath(cfg.Files.Position)
	if track, err := loadPositionLog(asvLog); err == nil {
		s.ASVDistance = totalDistance(track)
	} else if !missing(err, asvLog) {
		slog.Error("loadPositionLog", "err", err)
		return s, err
	}

	// AUVごとの移動距離
	auvLog := cfg.logPath(cfg.Files.AUVPosition)
	if samples, err := loadPositionLog(auvLog); err == nil {
		for i, track := range partition(samples, layout) {
			s.AUVDistances[i] = totalDistance(track)
		}
	} else if !missing(err, auvLog) {
		slog.Error("loadPositionLog", "err", err)
		return s, err
	}

	// 送信カウンタ
	if layout == LayoutQuad {
		tx, err := loadTx(cfg.Files.Tx)
		if err != nil && !missing(err, cfg.Files.Tx) {
			slog.Error("loadTx", "err", err)
			return s, err
		}
		s.Tx = &tx
	}

	return s, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ';'区切りの1行にする
func (s Summary) Record() string {
	fields := []string{
		s.Params.Accuracy,
		s.Params.ErrorProb,
		s.Params.Sigma,
		s.Params.Time,
		formatFloat(s.MeanResolution),
		formatFloat(s.ASVDistance),
		strconv.Itoa(s.Confusion.TP),
		strconv.Itoa(s.Confusion.FN),
		strconv.Itoa(s.Confusion.TN),
		strconv.Itoa(s.Confusion.FP),
		strconv.Itoa(s.Confusion.E),
	}
	for _, d := range s.AUVDistances {
		fields = append(fields, formatFloat(d))
	}
	if s.Tx != nil {
		fields = append(fields, s.Tx[:]...)
	}
	return strings.Join(fields, ";")
}
