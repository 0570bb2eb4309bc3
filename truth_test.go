// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountTruth(t *testing.T) {
	input := strings.Join([]string{
		"1,0,0,tp",
		"2,0,0,fn", // 同じ地点は最初のラベルだけ
		"3,1,0,fn",
		"4,2,0,fp",
		"5,3,0,tn",
		"6,4,0,tn",
		"7,0,0,e",
		"8,9,9,e",
		"9,5,0,??",     // 不明なラベルはどこにも数えない
		"10,6,0,tp,xx", // 列数が4でない行は読み飛ばす
		"",
	}, "\n")

	c, err := countTruth(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, Confusion{TP: 1, FN: 1, FP: 1, TN: 2, E: 2}, c)
}

func TestCountTruthTrimsLabel(t *testing.T) {
	c, err := countTruth(strings.NewReader("1,0,0, tp\n2,1,0,fp \n3,2,0, e\n"))
	require.NoError(t, err)
	assert.Equal(t, Confusion{TP: 1, FP: 1, E: 1}, c)
}

func TestCountTruthBadNumber(t *testing.T) {
	_, err := countTruth(strings.NewReader("1,0,0,tp\n2,a,0,tp\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestPrecisionRecall(t *testing.T) {
	c := Confusion{TP: 3, FP: 1, FN: 2}

	p, ok := c.Precision()
	require.True(t, ok)
	assert.InDelta(t, 0.75, p, 1e-9)

	r, ok := c.Recall()
	require.True(t, ok)
	assert.InDelta(t, 0.6, r, 1e-9)

	_, ok = Confusion{}.Precision()
	assert.False(t, ok)
	_, ok = Confusion{}.Recall()
	assert.False(t, ok)
}

func TestLoadTruthMissing(t *testing.T) {
	_, err := loadTruth(filepath.Join(t.TempDir(), "true_error_log.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
