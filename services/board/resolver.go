// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"fmt"
	"sort"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
)

// Unassigned is the column id returned when no rule claims a proposal
const Unassigned int64 = 0

// DiagnosticKind classifies resolution diagnostics
type DiagnosticKind uint8

const (
	// DiagnosticUnassigned means no rule matched, the proposal state is inconsistent
	DiagnosticUnassigned DiagnosticKind = iota
	// DiagnosticAmbiguous means more than one master column claimed the status
	DiagnosticAmbiguous
	// DiagnosticFallback means no master column claimed the status and the
	// proposal was assigned to the first column by order
	DiagnosticFallback
)

// Diagnostic is a non-fatal resolution problem, surfaced instead of being
// silently hidden
type Diagnostic struct {
	Kind       DiagnosticKind
	ProposalID int64
	Message    string
}

// Resolve maps a proposal to exactly one column id, Unassigned when no rule
// matches. The returned diagnostic is nil for a clean resolution.
func Resolve(p *proposal_model.Proposal, columns board_model.ColumnList, isMaster bool) (int64, *Diagnostic) {
	if isMaster {
		return resolveMaster(p, columns)
	}
	return resolveTyped(p, columns)
}

// resolveMaster implements the status fan-in of master boards: the unique
// master-status column whose mapping contains the proposal status wins.
func resolveMaster(p *proposal_model.Proposal, columns board_model.ColumnList) (int64, *Diagnostic) {
	var matches board_model.ColumnList
	for _, c := range columns {
		if c.Kind != board_model.ColumnKindMasterStatus {
			continue
		}
		for _, s := range c.StatusMapping {
			if s == p.Status {
				matches = append(matches, c)
				break
			}
		}
	}

	switch len(matches) {
	case 1:
		return matches[0].ID, nil
	case 0:
		if len(columns) == 0 {
			return Unassigned, &Diagnostic{
				Kind:       DiagnosticUnassigned,
				ProposalID: p.ID,
				Message:    fmt.Sprintf("proposal %d: board has no columns", p.ID),
			}
		}
		// Observed legacy behavior: misfile into the first column rather than
		// hide the proposal, but say so.
		return columns[0].ID, &Diagnostic{
			Kind:       DiagnosticFallback,
			ProposalID: p.ID,
			Message:    fmt.Sprintf("proposal %d: status %q claimed by no column, falling back to %q", p.ID, p.Status, columns[0].Title),
		}
	default:
		return matches[0].ID, &Diagnostic{
			Kind:       DiagnosticAmbiguous,
			ProposalID: p.ID,
			Message:    fmt.Sprintf("proposal %d: status %q claimed by %d columns, using %q", p.ID, p.Status, len(matches), matches[0].Title),
		}
	}
}

// resolveTyped evaluates the four assignment rules of type-specific boards in
// strict priority order, first match wins.
func resolveTyped(p *proposal_model.Proposal, columns board_model.ColumnList) (int64, *Diagnostic) {
	// Rule 1: explicit stage reference to an existing custom or locked-phase column
	if p.CustomStageID != 0 {
		for _, c := range columns {
			if c.ID == p.CustomStageID &&
				(c.Kind == board_model.ColumnKindCustomStage || c.Kind == board_model.ColumnKindLockedPhase) {
				return c.ID, nil
			}
		}
	}

	// Rule 2: terminal status claims the matching terminal column
	if p.Status.IsTerminal() {
		for _, c := range columns {
			if c.Kind == board_model.ColumnKindDefaultStatus && c.IsTerminal && c.DefaultStatusMapping == p.Status {
				return c.ID, nil
			}
		}
	}

	// Rule 3: locked phase
	if p.CurrentPhase != proposal_model.PhaseNone {
		for _, c := range columns {
			if c.Kind == board_model.ColumnKindLockedPhase && c.PhaseMapping == p.CurrentPhase {
				return c.ID, nil
			}
		}
	}

	// Rule 4: plain status match
	for _, c := range columns {
		if c.Kind == board_model.ColumnKindDefaultStatus && c.DefaultStatusMapping == p.Status {
			return c.ID, nil
		}
	}

	return Unassigned, &Diagnostic{
		Kind:       DiagnosticUnassigned,
		ProposalID: p.ID,
		Message:    fmt.Sprintf("proposal %d: no column claims status %q, phase %d, stage %d", p.ID, p.Status, p.CurrentPhase, p.CustomStageID),
	}
}

// Resolution is the canonical assignment of every proposal of a board
type Resolution struct {
	// Columns maps column id to its members in manual order
	Columns map[int64][]*proposal_model.Proposal
	// Unassigned holds proposals no rule claims
	Unassigned []*proposal_model.Proposal
	Diagnostics []Diagnostic
}

// ResolveAll builds the canonical column membership for a full proposal list.
// Every proposal lands in exactly one column or in Unassigned.
func ResolveAll(proposals []*proposal_model.Proposal, columns board_model.ColumnList, isMaster bool) *Resolution {
	res := &Resolution{
		Columns: make(map[int64][]*proposal_model.Proposal, len(columns)),
	}
	for _, c := range columns {
		res.Columns[c.ID] = nil
	}

	for _, p := range proposals {
		columnID, diag := Resolve(p, columns, isMaster)
		if diag != nil {
			res.Diagnostics = append(res.Diagnostics, *diag)
		}
		if columnID == Unassigned {
			res.Unassigned = append(res.Unassigned, p)
			continue
		}
		res.Columns[columnID] = append(res.Columns[columnID], p)
	}

	for id := range res.Columns {
		sortByManualOrder(res.Columns[id])
	}
	return res
}

// TerminalMembers returns the display membership of a terminal column: every
// proposal with a matching status, regardless of its stage reference. This
// override is for rendering only and never feeds back into the canonical
// assignment map.
func TerminalMembers(column *board_model.Column, proposals []*proposal_model.Proposal) []*proposal_model.Proposal {
	if !column.IsTerminal {
		return nil
	}
	var members []*proposal_model.Proposal
	for _, p := range proposals {
		if columnMapsStatus(column, p.Status) {
			members = append(members, p)
		}
	}
	sortByManualOrder(members)
	return members
}

// columnMapsStatus returns true if the column claims the given status
func columnMapsStatus(column *board_model.Column, status proposal_model.Status) bool {
	switch column.Kind {
	case board_model.ColumnKindDefaultStatus:
		return column.DefaultStatusMapping == status
	case board_model.ColumnKindMasterStatus:
		for _, s := range column.StatusMapping {
			if s == status {
				return true
			}
		}
	}
	return false
}

func sortByManualOrder(proposals []*proposal_model.Proposal) {
	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].ManualOrder != proposals[j].ManualOrder {
			return proposals[i].ManualOrder < proposals[j].ManualOrder
		}
		return proposals[i].ID < proposals[j].ID
	})
}
