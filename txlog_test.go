// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTxLastLine(t *testing.T) {
	input := "1 2 3\n10 20 30 40 50 60 70 80 90\n\n"

	tx, err := readTx(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, TxCounters{"10", "20", "30", "40", "50", "60", "70", "80"}, tx)
}

func TestReadTxShort(t *testing.T) {
	tx, err := readTx(strings.NewReader("5  6\n"))
	require.NoError(t, err)
	assert.Equal(t, "5", tx[0])
	assert.Equal(t, "6", tx[1])
	assert.Equal(t, "", tx[7])
}

func TestLoadTx(t *testing.T) {
	path := writeLog(t, t.TempDir(), "log.out", "a b c d e f g h\n")

	tx, err := loadTx(path)
	require.NoError(t, err)
	assert.Equal(t, "h", tx[7])
}
