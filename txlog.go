// auvinsight
// SPDX-License-Identifier: MPL-2.0
// SPDX-FileCopyrightText: 2025 Akihiro Yamamoto <github.com/ak1211>
package main

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// シミュレータが最後に出力する送信/エネルギーのカウンタ数
const TxFields = 8

// 送信ログの最終行
type TxCounters [TxFields]string

// 送信ログ(log.out)を読み込む
func loadTx(filePath string) (TxCounters, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return TxCounters{}, err
	}
	defer f.Close()

	return readTx(f)
}

// 空白区切りの最終行から先頭8項目を取り出す
func readTx(r io.Reader) (TxCounters, error) {
	var last []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if fields := strings.Fields(scanner.Text()); len(fields) > 0 {
			last = fields
		}
	}
	if err := scanner.Err(); err != nil {
		return TxCounters{}, err
	}

	var tx TxCounters
	copy(tx[:], last)
	return tx, nil
}
