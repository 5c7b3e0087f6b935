// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"fmt"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/util"
)

// GateRule identifies which validation rule denied a move
type GateRule string

const (
	RuleProtectedSource       GateRule = "protected_source"
	RuleRestrictedDestination GateRule = "restricted_destination"
	RuleWIPLimit              GateRule = "wip_limit"
)

// Decision is the structured trace of an access check, consumed by the API
// and by tests alike
type Decision struct {
	Allowed    bool     `json:"allowed"`
	FailedRule GateRule `json:"failed_rule,omitempty"`
	Reason     string   `json:"reason,omitempty"`

	// MissingRoles lists the roles that would have been accepted
	MissingRoles []string `json:"missing_roles,omitempty"`

	// Current and Limit are filled for WIP denials
	Current int64 `json:"current,omitempty"`
	Limit   int64 `json:"limit,omitempty"`
}

func allowed() Decision {
	return Decision{Allowed: true}
}

// CanMove validates a proposed move against role permissions and WIP limits,
// short-circuiting on the first failed rule. destCount is the current
// membership of the destination column, derived from the most recently
// observed resolution. Validation never mutates anything.
func CanMove(p *proposal_model.Proposal, source, dest *board_model.Column, actorRole string, destCount int64) Decision {
	if len(source.DragFromRoles) > 0 && !util.SliceContainsString(source.DragFromRoles, actorRole) {
		return Decision{
			FailedRule:   RuleProtectedSource,
			Reason:       fmt.Sprintf("column %q is a protected source column", source.Title),
			MissingRoles: source.DragFromRoles,
		}
	}

	if len(dest.DragToRoles) > 0 && !util.SliceContainsString(dest.DragToRoles, actorRole) {
		return Decision{
			FailedRule:   RuleRestrictedDestination,
			Reason:       fmt.Sprintf("column %q is a restricted destination column", dest.Title),
			MissingRoles: dest.DragToRoles,
		}
	}

	if dest.HasHardWIPLimit() && source.ID != dest.ID && destCount >= dest.WIPLimit {
		return Decision{
			FailedRule: RuleWIPLimit,
			Reason:     fmt.Sprintf("column %q reached its WIP limit (%d/%d)", dest.Title, destCount, dest.WIPLimit),
			Current:    destCount,
			Limit:      dest.WIPLimit,
		}
	}

	return allowed()
}

// Advisory is a non-blocking post-move warning
type Advisory struct {
	ColumnID int64  `json:"column_id"`
	Message  string `json:"message"`
	Current  int64  `json:"current"`
	Limit    int64  `json:"limit"`
}

// SoftLimitAdvisory returns an advisory when the new membership count of a
// soft-limited column exceeds its limit, nil otherwise. A soft limit never
// denies a move.
func SoftLimitAdvisory(dest *board_model.Column, newCount int64) *Advisory {
	if !dest.HasSoftWIPLimit() || newCount <= dest.WIPLimit {
		return nil
	}
	return &Advisory{
		ColumnID: dest.ID,
		Message:  fmt.Sprintf("column %q exceeds its WIP limit (%d/%d)", dest.Title, newCount, dest.WIPLimit),
		Current:  newCount,
		Limit:    dest.WIPLimit,
	}
}

// NeedsApproval reports whether a move must pass the approval gate: leaving a
// column that requires approval to exit toward a terminal column
func NeedsApproval(source, dest *board_model.Column) bool {
	return source.RequiresApprovalToExit && dest.IsTerminal && source.ID != dest.ID
}

// CanApprove reports whether the actor may decide the approval. An empty
// approver list means any actor may decide.
func CanApprove(source *board_model.Column, actorRole string) bool {
	return len(source.ApproverRoles) == 0 || util.SliceContainsString(source.ApproverRoles, actorRole)
}
