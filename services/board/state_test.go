// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"testing"

	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/timeutil"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateStoreOptimisticThenConfirm(t *testing.T) {
	s := board_service.NewStateStore()

	s.Seed(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusDraft, UpdatedUnix: 100})

	v := s.ApplyOptimistic(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusInProgress, UpdatedUnix: 100})
	p, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, proposal_model.StatusInProgress, p.Status)

	// the confirmed row becomes the new authoritative state
	merged := s.Reconcile(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusInProgress, UpdatedUnix: 200}, v)
	assert.Equal(t, proposal_model.StatusInProgress, merged.Status)
	assert.Equal(t, timeutil.TimeStamp(200), merged.UpdatedUnix)
}

func TestStateStoreSupersededWriteEcho(t *testing.T) {
	s := board_service.NewStateStore()

	s.Seed(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusDraft, UpdatedUnix: 100})
	v1 := s.ApplyOptimistic(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusInProgress, UpdatedUnix: 100})
	v2 := s.ApplyOptimistic(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusWon, UpdatedUnix: 100})
	require.Greater(t, v2, v1)

	// an echo of the first write arrives within the same second as the
	// pre-move copy, it must not clobber the newer optimistic state
	merged := s.Reconcile(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusInProgress, UpdatedUnix: 100}, v1)
	assert.Equal(t, proposal_model.StatusWon, merged.Status)

	// confirming the latest write adopts it
	merged = s.Reconcile(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusWon, UpdatedUnix: 100}, v2)
	assert.Equal(t, proposal_model.StatusWon, merged.Status)
}

func TestStateStoreInvalidate(t *testing.T) {
	s := board_service.NewStateStore()

	s.Seed(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusDraft, UpdatedUnix: 100})
	s.ApplyOptimistic(&proposal_model.Proposal{ID: 1, Status: proposal_model.StatusWon, UpdatedUnix: 100})

	// the write failed, roll back to the authoritative copy
	reverted := s.Invalidate(1)
	require.NotNil(t, reverted)
	assert.Equal(t, proposal_model.StatusDraft, reverted.Status)

	p, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, proposal_model.StatusDraft, p.Status)

	assert.Nil(t, s.Invalidate(999))
}

func TestStateStoreReconcileUnknown(t *testing.T) {
	s := board_service.NewStateStore()

	merged := s.Reconcile(&proposal_model.Proposal{ID: 7, Status: proposal_model.StatusSubmitted, UpdatedUnix: 300}, 0)
	assert.Equal(t, proposal_model.StatusSubmitted, merged.Status)

	p, ok := s.Get(7)
	require.True(t, ok)
	assert.Equal(t, proposal_model.StatusSubmitted, p.Status)
}
