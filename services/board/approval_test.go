// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"testing"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApprovalQueue(t *testing.T) {
	q := board_service.NewApprovalQueue()

	p := &proposal_model.Proposal{ID: 1, BoardID: 1}
	source := &board_model.Column{ID: 4, RequiresApprovalToExit: true}
	dest := &board_model.Column{ID: 5, IsTerminal: true}

	pa := q.Suspend(p, source, dest, 0, "mel")
	require.NotEmpty(t, pa.Token)
	assert.EqualValues(t, 1, pa.ProposalID)
	assert.EqualValues(t, 1, pa.BoardID)
	assert.False(t, pa.CreatedUnix.IsZero())

	got, err := q.Get(pa.Token)
	require.NoError(t, err)
	assert.Equal(t, pa, got)

	assert.True(t, q.PendingForProposal(1))
	assert.False(t, q.PendingForProposal(2))

	require.NoError(t, q.Draft(pa.Token, "client signed"))
	got, err = q.Get(pa.Token)
	require.NoError(t, err)
	assert.Equal(t, "client signed", got.Justification)

	taken, err := q.Take(pa.Token)
	require.NoError(t, err)
	assert.Equal(t, pa.Token, taken.Token)

	_, err = q.Take(pa.Token)
	assert.True(t, board_service.IsErrApprovalNotExist(err))
	assert.False(t, q.PendingForProposal(1))
}

func TestApprovalQueueUnknownToken(t *testing.T) {
	q := board_service.NewApprovalQueue()

	_, err := q.Get("no-such-token")
	assert.True(t, board_service.IsErrApprovalNotExist(err))
	assert.Error(t, q.Draft("no-such-token", "x"))
}
