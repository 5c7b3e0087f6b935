// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"context"

	board_model "code.dealdesk.io/dealdesk/models/board"
	"code.dealdesk.io/dealdesk/modules/setting"

	lru "github.com/hashicorp/golang-lru/v2"
)

// BoardConfig is a board with its validated column layout
type BoardConfig struct {
	Board    *board_model.Board
	Columns  board_model.ColumnList
	Warnings []board_model.ConfigWarning
}

// IsMaster reports whether the cached board is a master board
func (c *BoardConfig) IsMaster() bool {
	return c.Board.IsMaster
}

// GetColumn returns a column of the cached layout by id
func (c *BoardConfig) GetColumn(columnID int64) (*board_model.Column, error) {
	for _, column := range c.Columns {
		if column.ID == columnID {
			return column, nil
		}
	}
	return nil, board_model.ErrColumnNotExist{ColumnID: columnID}
}

// ConfigCache caches validated board configurations. Column layouts change
// rarely compared to proposal moves, so reads come from the cache and every
// column admin operation invalidates its board.
type ConfigCache struct {
	cache *lru.Cache[int64, *BoardConfig]
}

// NewConfigCache creates a board configuration cache sized from settings
func NewConfigCache() (*ConfigCache, error) {
	size := setting.Board.ConfigCacheSize
	if size <= 0 {
		size = 128
	}
	cache, err := lru.New[int64, *BoardConfig](size)
	if err != nil {
		return nil, err
	}
	return &ConfigCache{cache: cache}, nil
}

// Get returns the validated configuration of a board, loading and validating
// it on a cache miss. Validation errors are not cached.
func (c *ConfigCache) Get(ctx context.Context, boardID int64) (*BoardConfig, error) {
	if config, ok := c.cache.Get(boardID); ok {
		return config, nil
	}

	b, err := board_model.GetBoardByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	columns, err := b.GetColumns(ctx)
	if err != nil {
		return nil, err
	}
	warnings, err := board_model.ValidateColumns(b, columns)
	if err != nil {
		return nil, err
	}

	config := &BoardConfig{Board: b, Columns: columns, Warnings: warnings}
	c.cache.Add(boardID, config)
	return config, nil
}

// Invalidate drops the cached configuration of a board
func (c *ConfigCache) Invalidate(boardID int64) {
	c.cache.Remove(boardID)
}
