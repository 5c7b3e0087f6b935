// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board_test

import (
	"testing"

	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	board_service "code.dealdesk.io/dealdesk/services/board"

	"github.com/stretchr/testify/assert"
)

func makeProposals(n int) []*proposal_model.Proposal {
	proposals := make([]*proposal_model.Proposal, 0, n)
	for i := 0; i < n; i++ {
		proposals = append(proposals, &proposal_model.Proposal{ID: int64(i + 1), ManualOrder: int64(i)})
	}
	return proposals
}

func TestRevealerBatches(t *testing.T) {
	r := board_service.NewRevealer(10)
	members := makeProposals(25)

	visible := r.Visible(1, members)
	assert.Len(t, visible, 10)
	assert.EqualValues(t, 1, visible[0].ID)
	assert.True(t, r.HasMore(1, len(members)))

	r.LoadMore(1, len(members))
	assert.Len(t, r.Visible(1, members), 20)
	assert.True(t, r.HasMore(1, len(members)))

	r.LoadMore(1, len(members))
	assert.Len(t, r.Visible(1, members), 25)
	assert.False(t, r.HasMore(1, len(members)))

	// a further load is a no-op
	r.LoadMore(1, len(members))
	assert.Len(t, r.Visible(1, members), 25)
}

func TestRevealerLoadAll(t *testing.T) {
	r := board_service.NewRevealer(10)
	members := makeProposals(42)

	r.LoadAll(1, len(members))
	assert.Len(t, r.Visible(1, members), 42)
	assert.False(t, r.HasMore(1, len(members)))
}

func TestRevealerSmallColumn(t *testing.T) {
	r := board_service.NewRevealer(10)
	members := makeProposals(3)

	assert.Len(t, r.Visible(1, members), 3)
	assert.False(t, r.HasMore(1, len(members)))
}

func TestRevealerCursorsAreIndependent(t *testing.T) {
	r := board_service.NewRevealer(10)
	a := makeProposals(25)
	b := makeProposals(25)

	r.LoadMore(1, len(a))
	assert.Len(t, r.Visible(1, a), 20)
	assert.Len(t, r.Visible(2, b), 10)
}

func TestRevealerRevalidate(t *testing.T) {
	r := board_service.NewRevealer(10)
	members := makeProposals(25)

	r.LoadAll(1, len(members))

	// membership shrank, the cursor follows
	shrunk := makeProposals(12)
	r.Revalidate(1, len(shrunk))
	assert.Len(t, r.Visible(1, shrunk), 12)

	// membership grew again, the revealed prefix stays where it was
	grown := makeProposals(30)
	assert.Len(t, r.Visible(1, grown), 12)
	assert.True(t, r.HasMore(1, len(grown)))
}

func TestRevealerReset(t *testing.T) {
	r := board_service.NewRevealer(10)
	members := makeProposals(25)

	r.LoadAll(1, len(members))
	r.Reset()
	assert.Len(t, r.Visible(1, members), 10)
}

func TestRevealerDefaultBatch(t *testing.T) {
	r := board_service.NewRevealer(0)
	members := makeProposals(15)
	assert.Len(t, r.Visible(1, members), 10)
}
