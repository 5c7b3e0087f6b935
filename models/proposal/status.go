// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package proposal

// Status is the workflow status of a proposal
type Status string

const (
	StatusEvaluating Status = "evaluating"
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
	StatusArchived   Status = "archived"
)

// IsStatusValid checks if the proposal status is valid
func IsStatusValid(s Status) bool {
	switch s {
	case StatusEvaluating, StatusDraft, StatusInProgress, StatusSubmitted,
		StatusWon, StatusLost, StatusArchived:
		return true
	default:
		return false
	}
}

// IsTerminal returns true for statuses that represent a final outcome.
// Proposals in these statuses are claimed by terminal columns board-wide.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSubmitted, StatusWon, StatusLost, StatusArchived:
		return true
	default:
		return false
	}
}

// Phase is the locked-phase position of a proposal, PhaseNone when the proposal
// is not in a locked-phase column
type Phase int

const (
	PhaseNone Phase = iota
	Phase1
	Phase2
	Phase3
	Phase4
	Phase5
	Phase6
	Phase7
)

// IsPhaseValid checks if the phase is a known phase or PhaseNone
func IsPhaseValid(p Phase) bool {
	return p >= PhaseNone && p <= Phase7
}

// StatusFromPhase derives the proposal status implied by a locked phase
func StatusFromPhase(p Phase) Status {
	switch {
	case p >= Phase1 && p <= Phase4:
		return StatusEvaluating
	case p == Phase5 || p == Phase6:
		return StatusDraft
	default:
		return StatusInProgress
	}
}
