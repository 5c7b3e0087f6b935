// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"testing"

	board_model "code.dealdesk.io/dealdesk/models/board"
	"code.dealdesk.io/dealdesk/models/db"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/models/unittest"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadBoard(t *testing.T, boardID int64) (*board_model.Board, board_model.ColumnList, []*proposal_model.Proposal) {
	t.Helper()
	b, err := board_model.GetBoardByID(db.DefaultContext, boardID)
	require.NoError(t, err)
	columns, err := b.GetColumns(db.DefaultContext)
	require.NoError(t, err)
	proposals, err := proposal_model.FindProposals(db.DefaultContext, boardID)
	require.NoError(t, err)
	return b, columns, proposals
}

func TestResolveStageReferenceWins(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, _ := loadBoard(t, 1)

	// stage reference beats the status rule
	p := &proposal_model.Proposal{ID: 100, Status: proposal_model.StatusInProgress, CustomStageID: 2}
	columnID, diag := board_service.Resolve(p, columns, false)
	assert.EqualValues(t, 2, columnID)
	assert.Nil(t, diag)

	// a stage reference to a deleted column is skipped, the next rule decides
	p = &proposal_model.Proposal{ID: 101, Status: proposal_model.StatusDraft, CustomStageID: 999}
	columnID, diag = board_service.Resolve(p, columns, false)
	assert.EqualValues(t, 3, columnID)
	assert.Nil(t, diag)
}

func TestResolveTerminalStatus(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, _ := loadBoard(t, 1)

	// a live stage reference still wins, the terminal rule only takes over
	// once the reference is cleared or stale
	p := &proposal_model.Proposal{ID: 102, Status: proposal_model.StatusWon, CustomStageID: 2}
	columnID, diag := board_service.Resolve(p, columns, false)
	assert.EqualValues(t, 2, columnID)
	assert.Nil(t, diag)

	p = &proposal_model.Proposal{ID: 102, Status: proposal_model.StatusWon, CustomStageID: 999}
	columnID, diag = board_service.Resolve(p, columns, false)
	assert.EqualValues(t, 5, columnID)
	assert.Nil(t, diag)
}

func TestResolvePhase(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, _ := loadBoard(t, 1)

	p := &proposal_model.Proposal{ID: 103, Status: proposal_model.StatusEvaluating, CurrentPhase: proposal_model.Phase1}
	columnID, diag := board_service.Resolve(p, columns, false)
	assert.EqualValues(t, 1, columnID)
	assert.Nil(t, diag)
}

func TestResolveUnassigned(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, _ := loadBoard(t, 1)

	// evaluating without a phase matches no column on this board
	p := &proposal_model.Proposal{ID: 104, Status: proposal_model.StatusEvaluating}
	columnID, diag := board_service.Resolve(p, columns, false)
	assert.Equal(t, board_service.Unassigned, columnID)
	require.NotNil(t, diag)
	assert.Equal(t, board_service.DiagnosticUnassigned, diag.Kind)
}

func TestResolveMaster(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, _ := loadBoard(t, 2)

	p := &proposal_model.Proposal{ID: 105, Status: proposal_model.StatusDraft}
	columnID, diag := board_service.Resolve(p, columns, true)
	assert.EqualValues(t, 7, columnID)
	assert.Nil(t, diag)

	p = &proposal_model.Proposal{ID: 106, Status: proposal_model.StatusArchived}
	columnID, diag = board_service.Resolve(p, columns, true)
	assert.EqualValues(t, 9, columnID)
	assert.Nil(t, diag)
}

func TestResolveMasterAmbiguous(t *testing.T) {
	columns := board_model.ColumnList{
		{ID: 1, Title: "A", Kind: board_model.ColumnKindMasterStatus, StatusMapping: []proposal_model.Status{proposal_model.StatusDraft}},
		{ID: 2, Title: "B", Kind: board_model.ColumnKindMasterStatus, StatusMapping: []proposal_model.Status{proposal_model.StatusDraft}},
	}
	p := &proposal_model.Proposal{ID: 107, Status: proposal_model.StatusDraft}
	columnID, diag := board_service.Resolve(p, columns, true)
	assert.EqualValues(t, 1, columnID)
	require.NotNil(t, diag)
	assert.Equal(t, board_service.DiagnosticAmbiguous, diag.Kind)
}

func TestResolveMasterFallback(t *testing.T) {
	columns := board_model.ColumnList{
		{ID: 1, Title: "A", Kind: board_model.ColumnKindMasterStatus, StatusMapping: []proposal_model.Status{proposal_model.StatusDraft}},
	}
	p := &proposal_model.Proposal{ID: 108, Status: proposal_model.StatusWon}
	columnID, diag := board_service.Resolve(p, columns, true)
	assert.EqualValues(t, 1, columnID)
	require.NotNil(t, diag)
	assert.Equal(t, board_service.DiagnosticFallback, diag.Kind)
}

func TestResolveAll(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)

	res := board_service.ResolveAll(proposals, columns, false)
	assert.Empty(t, res.Unassigned)
	assert.Empty(t, res.Diagnostics)

	assert.Len(t, res.Columns[1], 1)
	assert.Len(t, res.Columns[2], 1)
	assert.Len(t, res.Columns[3], 3)
	assert.Len(t, res.Columns[4], 1)
	assert.Len(t, res.Columns[5], 1)
	assert.Empty(t, res.Columns[6])

	// members are in manual order
	drafting := res.Columns[3]
	assert.EqualValues(t, 1, drafting[0].ID)
	assert.EqualValues(t, 2, drafting[1].ID)
	assert.EqualValues(t, 3, drafting[2].ID)
}

func TestTerminalMembers(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)

	// a won proposal that still carries a stage reference shows up in the Won
	// column's display list even though the canonical assignment differs
	stale := &proposal_model.Proposal{ID: 109, Status: proposal_model.StatusWon, CustomStageID: 2, ManualOrder: 5}
	proposals = append(proposals, stale)

	var won *board_model.Column
	for _, c := range columns {
		if c.ID == 5 {
			won = c
		}
	}
	require.NotNil(t, won)

	members := board_service.TerminalMembers(won, proposals)
	require.Len(t, members, 2)
	assert.EqualValues(t, 7, members[0].ID)
	assert.EqualValues(t, 109, members[1].ID)
}
