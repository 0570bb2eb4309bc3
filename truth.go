// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// 真値ログ(時刻,X,Y,ラベル)から求めた混同行列
type Confusion struct {
	TP int
	FN int
	FP int
	TN int
	E  int // ラベル"e"の行数
}

// 適合率
func (c Confusion) Precision() (float64, bool) {
	if c.TP+c.FP == 0 {
		return 0, false
	}
	return float64(c.TP) / float64(c.TP+c.FP), true
}

// 再現率
func (c Confusion) Recall() (float64, bool) {
	if c.TP+c.FN == 0 {
		return 0, false
	}
	return float64(c.TP) / float64(c.TP+c.FN), true
}

// 真値ログを読み込む
func loadTruth(filePath string) (Confusion, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return Confusion{}, err
	}
	defer f.Close()

	c, err := countTruth(f)
	if err != nil {
		return Confusion{}, fmt.Errorf("%s: %w", filePath, err)
	}
	return c, nil
}

// 地点ごとに最初のラベルだけを数える
func countTruth(r io.Reader) (Confusion, error) {
	var c Confusion
	labels := map[Point]string{}

	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		values := strings.Split(strings.TrimSpace(scanner.Text()), ",")
		if len(values) != 4 {
			continue
		}
		// 時刻も数値であることを確かめる
		if _, err := strconv.ParseFloat(strings.TrimSpace(values[0]), 64); err != nil {
			return Confusion{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(values[1]), 64)
		if err != nil {
			return Confusion{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(values[2]), 64)
		if err != nil {
			return Confusion{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		label := strings.TrimSpace(values[3])

		if label == "e" {
			c.E++
		} else if _, seen := labels[Point{x, y}]; !seen {
			labels[Point{x, y}] = label
		}
	}
	if err := scanner.Err(); err != nil {
		return Confusion{}, err
	}

	for p, label := range labels {
		switch label {
		case "tp":
			c.TP++
		case "fn":
			c.FN++
		case "fp":
			c.FP++
		case "tn":
			c.TN++
		default:
			slog.Debug("unknown label", "label", label, "x", p.X, "y", p.Y)
		}
	}
	return c, nil
}
