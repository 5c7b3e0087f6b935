// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"gopkg.in/ini.v1"
)

// Board settings
var Board = struct {
	// MaxColumns caps the number of columns on one board
	MaxColumns int
	// RevealBatchSize is the initial batch and the increment of the column paginator
	RevealBatchSize int
	// ConfigCacheSize is the number of board configurations kept in the LRU cache
	ConfigCacheSize int
}{
	MaxColumns:      20,
	RevealBatchSize: 10,
	ConfigCacheSize: 128,
}

func loadBoardFrom(cfg *ini.File) {
	sec := cfg.Section("board")
	Board.MaxColumns = sec.Key("MAX_COLUMNS").MustInt(20)
	Board.RevealBatchSize = sec.Key("REVEAL_BATCH_SIZE").MustInt(10)
	Board.ConfigCacheSize = sec.Key("CONFIG_CACHE_SIZE").MustInt(128)
}
