// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"fmt"
	"sync"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/timeutil"
	"code.dealdesk.io/dealdesk/modules/util"

	"github.com/google/uuid"
)

// PendingApproval is a suspended transition waiting for an approver decision.
// No proposal field changes until the decision is made, cancelling it has no
// side effects. Only the source column, destination column and index are
// fixed at suspension time, membership is re-resolved when the decision
// executes the move.
type PendingApproval struct {
	Token string

	BoardID     int64
	ProposalID  int64
	SourceID    int64
	DestID      int64
	DestIndex   int
	RequestedBy string

	// Justification may be drafted by a non-approver for a later approver
	Justification string

	CreatedUnix timeutil.TimeStamp

	// source decides who may approve, captured when the gate suspends
	source *board_model.Column
}

// ErrApprovalNotExist represents an "ApprovalNotExist" kind of error.
type ErrApprovalNotExist struct {
	Token string
}

// IsErrApprovalNotExist checks if an error is a ErrApprovalNotExist
func IsErrApprovalNotExist(err error) bool {
	_, ok := err.(ErrApprovalNotExist)
	return ok
}

func (err ErrApprovalNotExist) Error() string {
	return fmt.Sprintf("pending approval does not exist [token: %s]", err.Token)
}

func (err ErrApprovalNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ApprovalQueue holds all transitions suspended at the approval gate
type ApprovalQueue struct {
	mu      sync.Mutex
	pending map[string]*PendingApproval
}

// NewApprovalQueue creates an empty approval queue
func NewApprovalQueue() *ApprovalQueue {
	return &ApprovalQueue{pending: make(map[string]*PendingApproval)}
}

// Suspend parks a validated transition and returns its token
func (q *ApprovalQueue) Suspend(p *proposal_model.Proposal, source, dest *board_model.Column, destIndex int, requestedBy string) *PendingApproval {
	pa := &PendingApproval{
		Token:       uuid.NewString(),
		BoardID:     p.BoardID,
		ProposalID:  p.ID,
		SourceID:    source.ID,
		DestID:      dest.ID,
		DestIndex:   destIndex,
		RequestedBy: requestedBy,
		CreatedUnix: timeutil.TimeStampNow(),
		source:      source,
	}
	q.mu.Lock()
	q.pending[pa.Token] = pa
	q.mu.Unlock()
	return pa
}

// Get returns a pending approval by token
func (q *ApprovalQueue) Get(token string) (*PendingApproval, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pa, ok := q.pending[token]
	if !ok {
		return nil, ErrApprovalNotExist{Token: token}
	}
	return pa, nil
}

// Take removes and returns a pending approval by token
func (q *ApprovalQueue) Take(token string) (*PendingApproval, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	pa, ok := q.pending[token]
	if !ok {
		return nil, ErrApprovalNotExist{Token: token}
	}
	delete(q.pending, token)
	return pa, nil
}

// Draft records a justification on a pending approval without deciding it.
// Actors lacking the approver role may still draft for a later approver.
func (q *ApprovalQueue) Draft(token, justification string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	pa, ok := q.pending[token]
	if !ok {
		return ErrApprovalNotExist{Token: token}
	}
	pa.Justification = justification
	return nil
}

// PendingForProposal returns true if the proposal has a transition suspended
// at the gate
func (q *ApprovalQueue) PendingForProposal(proposalID int64) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, pa := range q.pending {
		if pa.ProposalID == proposalID {
			return true
		}
	}
	return false
}
