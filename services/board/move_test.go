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

func getColumn(t *testing.T, columns board_model.ColumnList, id int64) *board_model.Column {
	t.Helper()
	for _, c := range columns {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("column %d not in list", id)
	return nil
}

func TestMoveProposalToTerminal(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)
	res := board_service.ResolveAll(proposals, columns, false)
	store := board_service.NewStateStore()

	p, err := proposal_model.GetProposalByID(db.DefaultContext, 6)
	require.NoError(t, err)

	source := getColumn(t, columns, 4)
	dest := getColumn(t, columns, 5)

	result, err := board_service.MoveProposal(db.DefaultContext, store, p, source, dest, 1, res.Columns[5])
	require.NoError(t, err)
	assert.Empty(t, result.SiblingErrs)
	assert.True(t, result.PromptContentPromotion)

	reloaded, err := proposal_model.GetProposalByID(db.DefaultContext, 6)
	require.NoError(t, err)
	assert.Equal(t, proposal_model.StatusWon, reloaded.Status)
	assert.EqualValues(t, 0, reloaded.CustomStageID)
	assert.Equal(t, proposal_model.PhaseNone, reloaded.CurrentPhase)
	assert.EqualValues(t, 1, reloaded.ManualOrder)
}

func TestMoveProposalReordersSiblings(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)
	res := board_service.ResolveAll(proposals, columns, false)
	store := board_service.NewStateStore()

	p, err := proposal_model.GetProposalByID(db.DefaultContext, 3)
	require.NoError(t, err)

	drafting := getColumn(t, columns, 3)

	// move the last drafting proposal to the top
	result, err := board_service.MoveProposal(db.DefaultContext, store, p, drafting, drafting, 0, res.Columns[3])
	require.NoError(t, err)
	assert.Empty(t, result.SiblingErrs)

	wantOrder := map[int64]int64{3: 0, 1: 1, 2: 2}
	for id, order := range wantOrder {
		reloaded, err := proposal_model.GetProposalByID(db.DefaultContext, id)
		require.NoError(t, err)
		assert.EqualValues(t, order, reloaded.ManualOrder, "proposal %d", id)
	}
}

func TestMoveProposalOutOfRangeIndex(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)
	res := board_service.ResolveAll(proposals, columns, false)
	store := board_service.NewStateStore()

	p, err := proposal_model.GetProposalByID(db.DefaultContext, 1)
	require.NoError(t, err)

	drafting := getColumn(t, columns, 3)

	// an index past the end clamps to the end
	_, err = board_service.MoveProposal(db.DefaultContext, store, p, drafting, drafting, 99, res.Columns[3])
	require.NoError(t, err)

	reloaded, err := proposal_model.GetProposalByID(db.DefaultContext, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, reloaded.ManualOrder)
}

func TestMoveProposalChecklistOnEntry(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)
	res := board_service.ResolveAll(proposals, columns, false)
	store := board_service.NewStateStore()

	p, err := proposal_model.GetProposalByID(db.DefaultContext, 1)
	require.NoError(t, err)

	drafting := getColumn(t, columns, 3)
	solutioning := getColumn(t, columns, 2)

	result, err := board_service.MoveProposal(db.DefaultContext, store, p, drafting, solutioning, 1, res.Columns[2])
	require.NoError(t, err)

	// the required manual check is outstanding, the system check does not block
	assert.True(t, result.Proposal.ActionRequired)
	assert.Contains(t, result.Proposal.ActionRequiredDesc, "Scope agreed with client")
	assert.Equal(t, proposal_model.StatusInProgress, result.Proposal.Status)
	assert.EqualValues(t, 2, result.Proposal.CustomStageID)
}

func TestMoveProposalChecklistPreservedOnReentry(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)
	res := board_service.ResolveAll(proposals, columns, false)
	store := board_service.NewStateStore()

	p, err := proposal_model.GetProposalByID(db.DefaultContext, 1)
	require.NoError(t, err)

	drafting := getColumn(t, columns, 3)
	solutioning := getColumn(t, columns, 2)

	_, err = board_service.MoveProposal(db.DefaultContext, store, p, drafting, solutioning, 1, res.Columns[2])
	require.NoError(t, err)

	p.CompleteChecklistItem(solutioning.ID, "scope")
	require.NoError(t, proposal_model.UpdateProposalCols(db.DefaultContext, p, "checklist_status"))

	// leave and re-enter the column
	proposals, err = proposal_model.FindProposals(db.DefaultContext, 1)
	require.NoError(t, err)
	res = board_service.ResolveAll(proposals, columns, false)
	_, err = board_service.MoveProposal(db.DefaultContext, store, p, solutioning, drafting, 0, res.Columns[3])
	require.NoError(t, err)

	proposals, err = proposal_model.FindProposals(db.DefaultContext, 1)
	require.NoError(t, err)
	res = board_service.ResolveAll(proposals, columns, false)
	result, err := board_service.MoveProposal(db.DefaultContext, store, p, drafting, solutioning, 0, res.Columns[2])
	require.NoError(t, err)

	// the completion from the first visit still counts
	assert.False(t, result.Proposal.ActionRequired)
	assert.True(t, result.Proposal.ColumnState(solutioning.ID)["scope"].Completed)
}

func TestMoveProposalSoftLimitAdvisory(t *testing.T) {
	unittest.PrepareTestDatabase(t)
	_, columns, proposals := loadBoard(t, 1)
	res := board_service.ResolveAll(proposals, columns, false)
	store := board_service.NewStateStore()

	solutioning := getColumn(t, columns, 2)
	solutioning.WIPLimit = 1
	solutioning.WIPLimitKind = board_model.WIPLimitSoft

	p, err := proposal_model.GetProposalByID(db.DefaultContext, 1)
	require.NoError(t, err)

	result, err := board_service.MoveProposal(db.DefaultContext, store, p, getColumn(t, columns, 3), solutioning, 0, res.Columns[2])
	require.NoError(t, err)

	// the move went through, the limit only warns
	require.NotNil(t, result.Advisory)
	assert.EqualValues(t, 2, result.Advisory.Current)
	assert.EqualValues(t, 1, result.Advisory.Limit)
}
