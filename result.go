// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/jszwec/csvutil"
	"gonum.org/v1/gonum/stat"
)

// 結果ファイルの1行(summaryコマンドの出力)
type Run struct {
	Accuracy   float64 `csv:"acc"`
	ErrorProb  float64 `csv:"errp"`
	Sigma      float64 `csv:"sigma"`
	Tag        string  `csv:"tag"`
	Resolution float64 `csv:"resolution"`
	Distance   float64 `csv:"distance"`
	TP         float64 `csv:"tp"`
	FN         float64 `csv:"fn"`
	TN         float64 `csv:"tn"`
	FP         float64 `csv:"fp"`
	E          float64 `csv:"e"`
	Distance1  float64 `csv:"d1"`
	Distance2  float64 `csv:"d2"`
}

// 結果ファイルの列名(ファイルにはヘッダーが無い)
var runHeader = []string{
	"acc", "errp", "sigma", "tag", "resolution", "distance",
	"tp", "fn", "tn", "fp", "e", "d1", "d2",
}

// 小数点のカンマを直し、列数をヘッダーに合わせる
type resultReader struct {
	r *csv.Reader
}

func (rr resultReader) Read() ([]string, error) {
	for {
		record, err := rr.r.Read()
		if err != nil {
			return nil, err
		}
		blank := true
		for i := range record {
			record[i] = strings.TrimSpace(strings.ReplaceAll(record[i], ",", "."))
			if record[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		// 足りない列は0、余った列(送信カウンタなど)は捨てる
		for len(record) < len(runHeader) {
			record = append(record, "0")
		}
		return record[:len(runHeader)], nil
	}
}

// 数値変換エラーの行番号を返せるようにする
func (rr resultReader) FieldPos(field int) (line, column int) {
	return rr.r.FieldPos(field)
}

// 結果ファイルを読み込む
func loadResults(filePath string) ([]Run, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	runs, err := readResults(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return runs, nil
}

func readResults(r io.Reader) ([]Run, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	dec, err := csvutil.NewDecoder(resultReader{reader}, runHeader...)
	if err != nil {
		return nil, err
	}

	runs := []Run{}
	for {
		var run Run
		if err := dec.Decode(&run); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// 測位精度ごとの値の集まり
type Series struct {
	Keys   []float64 // 出現順
	Values map[float64][]float64
}

func newSeries() *Series {
	return &Series{Values: map[float64][]float64{}}
}

func (s *Series) Add(key, value float64) {
	if _, ok := s.Values[key]; !ok {
		s.Keys = append(s.Keys, key)
	}
	s.Values[key] = append(s.Values[key], value)
}

// 平均と95%信頼区間の半幅
type StatPoint struct {
	Key  float64
	Mean float64
	CI   float64
	N    int
}

// 測位精度の昇順に並べた統計量
func (s *Series) Stats() []StatPoint {
	points := make([]StatPoint, 0, len(s.Keys))
	for _, key := range s.Keys {
		values := s.Values[key]
		p := StatPoint{Key: key, N: len(values)}
		if len(values) > 1 {
			mean, std := stat.MeanStdDev(values, nil)
			p.Mean = mean
			p.CI = 1.96 * std / math.Sqrt(float64(len(values)))
		} else {
			p.Mean = values[0]
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Key < points[j].Key })
	return points
}

// 結果ファイル1つ分の集計
type Aggregate struct {
	Accuracies []float64 // 全行の測位精度
	Time       *Series   // エラー1件あたりの解決時間
	Distance   *Series   // エラー1件あたりのASV移動距離
	TP         *Series
	FP         *Series
	TN         *Series
	FN         *Series
	Errors     *Series
	Precision  *Series
	Recall     *Series
	Covered1   *Series // AUV1の移動距離
	Covered2   *Series // AUV2の移動距離
}

// 測位精度ごとにまとめる
func aggregate(runs []Run) Aggregate {
	a := Aggregate{
		Accuracies: []float64{},
		Time:       newSeries(),
		Distance:   newSeries(),
		TP:         newSeries(),
		FP:         newSeries(),
		TN:         newSeries(),
		FN:         newSeries(),
		Errors:     newSeries(),
		Precision:  newSeries(),
		Recall:     newSeries(),
		Covered1:   newSeries(),
		Covered2:   newSeries(),
	}

	for _, run := range runs {
		key := run.Accuracy
		if run.E != 0 {
			a.Time.Add(key, run.Resolution/run.E)
			a.Distance.Add(key, run.Distance/run.E)
		} else {
			a.Time.Add(key, run.Resolution)
			a.Distance.Add(key, run.Distance)
		}
		a.Covered1.Add(key, run.Distance1)
		a.Covered2.Add(key, run.Distance2)
		a.FN.Add(key, run.FN)
		a.TN.Add(key, run.TN)
		a.FP.Add(key, run.FP)
		a.Errors.Add(key, run.E)

		// エラーが起きた回だけ適合率と再現率を求める
		if run.E != 0 {
			a.TP.Add(key, run.TP)
			if run.TP+run.FP != 0 {
				a.Precision.Add(key, run.TP/(run.TP+run.FP))
			}
			if run.TP+run.FN != 0 {
				a.Recall.Add(key, run.TP/(run.TP+run.FN))
			}
		}
		a.Accuracies = append(a.Accuracies, key)
	}
	return a
}
