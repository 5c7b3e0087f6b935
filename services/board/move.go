// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"context"
	"fmt"

	board_model "code.dealdesk.io/dealdesk/models/board"
	"code.dealdesk.io/dealdesk/models/db"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/log"
)

// proposalMoveCols are the fields a transition may touch on the moved proposal
var proposalMoveCols = []string{
	"status",
	"current_phase",
	"custom_stage_id",
	"manual_order",
	"checklist_status",
	"action_required",
	"action_required_desc",
}

// MoveResult reports a completed transition
type MoveResult struct {
	Proposal *proposal_model.Proposal

	// Advisory is set when a soft WIP limit was exceeded by this move
	Advisory *Advisory

	// SiblingErrs holds sibling-order persistence failures. The move itself
	// succeeded, membership is correct, only ordering of some siblings may be
	// stale until the next write.
	SiblingErrs []error

	// PromptContentPromotion is set when the move crossed from a submitted
	// column into a won column
	PromptContentPromotion bool
}

// MoveProposal executes a validated transition of a proposal into destIndex of
// the destination column. destMembers is the destination membership from the
// most recently observed resolution, in manual order.
//
// The loaded proposal is seeded into the state store as authoritative, the
// post-transition copy is applied optimistically before the write and
// reconciled or rolled back depending on its outcome.
//
// The primary proposal update is atomic. Displaced sibling orders are
// persisted independently afterwards: a sibling failure does not undo the
// move, it is reported through MoveResult.SiblingErrs.
func MoveProposal(ctx context.Context, state *StateStore, p *proposal_model.Proposal, source, dest *board_model.Column, destIndex int, destMembers []*proposal_model.Proposal) (*MoveResult, error) {
	if _, err := dest.Spec(); err != nil {
		return nil, err
	}

	state.Seed(p)

	applyFieldUpdates(p, dest)
	applyChecklistOnEntry(p, dest)

	siblings := reorderSiblings(p, destIndex, destMembers)
	version := state.ApplyOptimistic(p)

	if err := db.WithTx(ctx, func(ctx context.Context) error {
		return proposal_model.UpdateProposalCols(ctx, p, proposalMoveCols...)
	}); err != nil {
		*p = *state.Invalidate(p.ID)
		return nil, fmt.Errorf("move proposal %d to column %d: %w", p.ID, dest.ID, err)
	}

	result := &MoveResult{Proposal: state.Reconcile(p, version)}
	for _, sibling := range siblings {
		if err := proposal_model.UpdateProposalOrder(ctx, sibling.ID, sibling.ManualOrder); err != nil {
			log.Error("UpdateProposalOrder: proposal %d: %v", sibling.ID, err)
			result.SiblingErrs = append(result.SiblingErrs,
				fmt.Errorf("reorder sibling %d: %w", sibling.ID, err))
		}
	}

	newCount := len(destMembers)
	if !contains(destMembers, p.ID) {
		newCount++
	}
	result.Advisory = SoftLimitAdvisory(dest, int64(newCount))
	result.PromptContentPromotion = columnMapsStatus(source, proposal_model.StatusSubmitted) &&
		columnMapsStatus(dest, proposal_model.StatusWon)
	return result, nil
}

// applyFieldUpdates computes the proposal fields implied by the destination
// column kind
func applyFieldUpdates(p *proposal_model.Proposal, dest *board_model.Column) {
	switch dest.Kind {
	case board_model.ColumnKindLockedPhase:
		p.CurrentPhase = dest.PhaseMapping
		p.Status = proposal_model.StatusFromPhase(dest.PhaseMapping)
		p.CustomStageID = dest.ID
	case board_model.ColumnKindCustomStage:
		p.CustomStageID = dest.ID
		p.CurrentPhase = proposal_model.PhaseNone
		p.Status = proposal_model.StatusInProgress
	case board_model.ColumnKindDefaultStatus:
		p.Status = dest.DefaultStatusMapping
		p.CurrentPhase = proposal_model.PhaseNone
		p.CustomStageID = 0
	case board_model.ColumnKindMasterStatus:
		p.Status = dest.StatusMapping[0]
		p.CurrentPhase = proposal_model.PhaseNone
		p.CustomStageID = 0
	}
}

// reorderSiblings rebuilds the destination membership with the moved proposal
// at destIndex and assigns every member a contiguous zero-based manual order.
// It returns the siblings whose order actually changed, the moved proposal's
// own order is taken from the recomputation.
func reorderSiblings(p *proposal_model.Proposal, destIndex int, destMembers []*proposal_model.Proposal) []*proposal_model.Proposal {
	newList := make([]*proposal_model.Proposal, 0, len(destMembers)+1)
	for _, member := range destMembers {
		if member.ID != p.ID {
			newList = append(newList, member)
		}
	}

	if destIndex < 0 {
		destIndex = 0
	}
	if destIndex > len(newList) {
		destIndex = len(newList)
	}
	newList = append(newList[:destIndex], append([]*proposal_model.Proposal{p}, newList[destIndex:]...)...)

	var changed []*proposal_model.Proposal
	for i, member := range newList {
		order := int64(i)
		if member.ManualOrder == order {
			continue
		}
		member.ManualOrder = order
		if member.ID != p.ID {
			changed = append(changed, member)
		}
	}
	return changed
}

func contains(proposals []*proposal_model.Proposal, id int64) bool {
	for _, p := range proposals {
		if p.ID == id {
			return true
		}
	}
	return false
}
