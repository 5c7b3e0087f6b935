// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"testing"

	board_model "code.dealdesk.io/dealdesk/models/board"
	"code.dealdesk.io/dealdesk/models/db"
	"code.dealdesk.io/dealdesk/models/unittest"
	"code.dealdesk.io/dealdesk/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColumns(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	b, err := board_model.GetBoardByID(db.DefaultContext, 1)
	require.NoError(t, err)

	columns, err := b.GetColumns(db.DefaultContext)
	require.NoError(t, err)
	require.Len(t, columns, 6)

	assert.Equal(t, "Intake Review", columns[0].Title)
	assert.Equal(t, "Lost", columns[5].Title)
	for i, c := range columns {
		assert.EqualValues(t, i, c.Sorting)
	}
}

func TestNewColumnAppendsAtEnd(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	column := &board_model.Column{
		BoardID: 2,
		Title:   "Parked",
		Kind:    board_model.ColumnKindCustomStage,
	}
	require.NoError(t, board_model.NewColumn(db.DefaultContext, column))

	assert.EqualValues(t, 3, column.Sorting)
	unittest.AssertExistsAndLoadBean(t, &board_model.Column{}, "id = ?", column.ID)
}

func TestNewColumnInvalidShape(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	// locked-phase column without a phase mapping
	err := board_model.NewColumn(db.DefaultContext, &board_model.Column{
		BoardID: 1,
		Title:   "Broken",
		Kind:    board_model.ColumnKindLockedPhase,
	})
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestUpdateColumnLockedRename(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	column, err := board_model.GetColumn(db.DefaultContext, 1)
	require.NoError(t, err)
	require.True(t, column.IsLocked)

	column.Title = "Renamed"
	err = board_model.UpdateColumn(db.DefaultContext, column)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestUpdateColumnLimits(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	column, err := board_model.GetColumn(db.DefaultContext, 3)
	require.NoError(t, err)

	column.WIPLimit = 5
	column.WIPLimitKind = board_model.WIPLimitSoft
	require.NoError(t, board_model.UpdateColumn(db.DefaultContext, column))

	reloaded, err := board_model.GetColumn(db.DefaultContext, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 5, reloaded.WIPLimit)
	assert.True(t, reloaded.HasSoftWIPLimit())
}

func TestDeleteColumnLocked(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	err := board_model.DeleteColumnByID(db.DefaultContext, 1)
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestDeleteColumnNonEmpty(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	// column 3 maps status "draft" and holds three proposals
	err := board_model.DeleteColumnByID(db.DefaultContext, 3)
	assert.ErrorIs(t, err, util.ErrInvalidArgument)
}

func TestDeleteColumnEmpty(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	column := &board_model.Column{
		BoardID: 1,
		Title:   "Scratch",
		Kind:    board_model.ColumnKindCustomStage,
	}
	require.NoError(t, board_model.NewColumn(db.DefaultContext, column))
	require.NoError(t, board_model.DeleteColumnByID(db.DefaultContext, column.ID))

	_, err := board_model.GetColumn(db.DefaultContext, column.ID)
	assert.True(t, board_model.IsErrColumnNotExist(err))
}

func TestMoveColumnsOnBoard(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	b, err := board_model.GetBoardByID(db.DefaultContext, 2)
	require.NoError(t, err)

	require.NoError(t, board_model.MoveColumnsOnBoard(db.DefaultContext, b, map[int64]int64{
		0: 9,
		1: 7,
		2: 8,
	}))

	columns, err := b.GetColumns(db.DefaultContext)
	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.EqualValues(t, 9, columns[0].ID)
	assert.EqualValues(t, 7, columns[1].ID)
	assert.EqualValues(t, 8, columns[2].ID)
}

func TestMoveColumnsOnBoardLocked(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	b, err := board_model.GetBoardByID(db.DefaultContext, 1)
	require.NoError(t, err)

	// column 1 is locked at sorting 0
	err = board_model.MoveColumnsOnBoard(db.DefaultContext, b, map[int64]int64{
		0: 2,
		1: 1,
	})
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestNumProposals(t *testing.T) {
	unittest.PrepareTestDatabase(t)

	column, err := board_model.GetColumn(db.DefaultContext, 3)
	require.NoError(t, err)

	count, err := column.NumProposals(db.DefaultContext)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
