// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"testing"

	board_model "code.dealdesk.io/dealdesk/models/board"
	"code.dealdesk.io/dealdesk/models/proposal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnSpec(t *testing.T) {
	spec, err := (&board_model.Column{
		Title:        "Intake",
		Kind:         board_model.ColumnKindLockedPhase,
		PhaseMapping: proposal.Phase2,
	}).Spec()
	require.NoError(t, err)
	locked, ok := spec.(board_model.LockedPhaseSpec)
	require.True(t, ok)
	assert.Equal(t, proposal.Phase2, locked.Phase)

	spec, err = (&board_model.Column{
		Title:         "Done",
		Kind:          board_model.ColumnKindMasterStatus,
		StatusMapping: []proposal.Status{proposal.StatusWon, proposal.StatusLost},
	}).Spec()
	require.NoError(t, err)
	_, ok = spec.(board_model.MasterStatusSpec)
	assert.True(t, ok)

	// a locked-phase column without a phase is malformed
	_, err = (&board_model.Column{
		Title: "Broken",
		Kind:  board_model.ColumnKindLockedPhase,
	}).Spec()
	assert.Error(t, err)

	// a master-status column without statuses is malformed
	_, err = (&board_model.Column{
		Title: "Broken",
		Kind:  board_model.ColumnKindMasterStatus,
	}).Spec()
	assert.Error(t, err)
}

func TestValidateColumnsEmpty(t *testing.T) {
	b := &board_model.Board{ID: 1, Title: "Empty"}
	_, err := board_model.ValidateColumns(b, nil)
	assert.Error(t, err)
}

func TestValidateColumnsMaster(t *testing.T) {
	b := &board_model.Board{ID: 2, Title: "Master", IsMaster: true}

	columns := board_model.ColumnList{
		{ID: 1, BoardID: 2, Title: "Early", Kind: board_model.ColumnKindMasterStatus, StatusMapping: []proposal.Status{proposal.StatusEvaluating, proposal.StatusDraft}},
		{ID: 2, BoardID: 2, Title: "Active", Kind: board_model.ColumnKindMasterStatus, StatusMapping: []proposal.Status{proposal.StatusDraft, proposal.StatusInProgress}},
	}
	warnings, err := board_model.ValidateColumns(b, columns)
	require.NoError(t, err)

	// "draft" is claimed twice and four statuses are claimed by no column
	assert.Len(t, warnings, 5)
}

func TestValidateColumnsMasterNoMasterColumn(t *testing.T) {
	b := &board_model.Board{ID: 2, Title: "Master", IsMaster: true}

	columns := board_model.ColumnList{
		{ID: 1, BoardID: 2, Title: "Stage", Kind: board_model.ColumnKindCustomStage},
	}
	_, err := board_model.ValidateColumns(b, columns)
	assert.Error(t, err)
}

func TestValidateColumnsAllTerminal(t *testing.T) {
	b := &board_model.Board{ID: 1, Title: "Typed"}

	columns := board_model.ColumnList{
		{ID: 1, BoardID: 1, Title: "Won", Kind: board_model.ColumnKindDefaultStatus, DefaultStatusMapping: proposal.StatusWon, IsTerminal: true},
		{ID: 2, BoardID: 1, Title: "Lost", Kind: board_model.ColumnKindDefaultStatus, DefaultStatusMapping: proposal.StatusLost, IsTerminal: true},
	}
	_, err := board_model.ValidateColumns(b, columns)
	assert.Error(t, err)
}

func TestInitialColumn(t *testing.T) {
	columns := board_model.ColumnList{
		{ID: 1, Title: "Won", Kind: board_model.ColumnKindDefaultStatus, DefaultStatusMapping: proposal.StatusWon, IsTerminal: true},
		{ID: 2, Title: "Drafting", Kind: board_model.ColumnKindDefaultStatus, DefaultStatusMapping: proposal.StatusDraft},
	}
	initial := board_model.InitialColumn(columns)
	require.NotNil(t, initial)
	assert.EqualValues(t, 2, initial.ID)

	assert.Nil(t, board_model.InitialColumn(nil))
}

func TestChecklistItemBlocking(t *testing.T) {
	assert.True(t, board_model.ChecklistItem{Required: true, Kind: board_model.ChecklistItemManualCheck}.Blocking())
	assert.True(t, board_model.ChecklistItem{Required: true, Kind: board_model.ChecklistItemModal}.Blocking())
	assert.False(t, board_model.ChecklistItem{Required: true, Kind: board_model.ChecklistItemSystemCheck}.Blocking())
	assert.False(t, board_model.ChecklistItem{Required: false, Kind: board_model.ChecklistItemManualCheck}.Blocking())
}
