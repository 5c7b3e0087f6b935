// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"fmt"

	"code.dealdesk.io/dealdesk/models/proposal"
	"code.dealdesk.io/dealdesk/modules/util"
)

// ColumnSpec is the typed view of a column's claim rule, one variant per kind.
// Obtaining a spec from a malformed column fails, so the resolver never sees
// an invalid field combination.
type ColumnSpec interface {
	columnSpec()
}

// LockedPhaseSpec claims proposals whose current phase matches
type LockedPhaseSpec struct {
	Phase proposal.Phase
}

// CustomStageSpec claims proposals whose stage reference matches the column id
type CustomStageSpec struct{}

// DefaultStatusSpec claims proposals with exactly this status
type DefaultStatusSpec struct {
	Status proposal.Status
}

// MasterStatusSpec claims proposals whose status is in the list, the first
// entry is assigned when a proposal moves in
type MasterStatusSpec struct {
	Statuses []proposal.Status
}

func (LockedPhaseSpec) columnSpec()   {}
func (CustomStageSpec) columnSpec()   {}
func (DefaultStatusSpec) columnSpec() {}
func (MasterStatusSpec) columnSpec()  {}

// Spec returns the typed claim rule of the column, or an error when the
// column's kind and mapping fields do not line up
func (c *Column) Spec() (ColumnSpec, error) {
	switch c.Kind {
	case ColumnKindLockedPhase:
		if c.PhaseMapping == proposal.PhaseNone || !proposal.IsPhaseValid(c.PhaseMapping) {
			return nil, fmt.Errorf("locked-phase column %q has no valid phase mapping", c.Title)
		}
		return LockedPhaseSpec{Phase: c.PhaseMapping}, nil
	case ColumnKindCustomStage:
		return CustomStageSpec{}, nil
	case ColumnKindDefaultStatus:
		if !proposal.IsStatusValid(c.DefaultStatusMapping) {
			return nil, fmt.Errorf("default-status column %q has no valid status mapping", c.Title)
		}
		return DefaultStatusSpec{Status: c.DefaultStatusMapping}, nil
	case ColumnKindMasterStatus:
		if len(c.StatusMapping) == 0 {
			return nil, fmt.Errorf("master-status column %q has an empty status mapping", c.Title)
		}
		for _, s := range c.StatusMapping {
			if !proposal.IsStatusValid(s) {
				return nil, fmt.Errorf("master-status column %q maps unknown status %q", c.Title, s)
			}
		}
		return MasterStatusSpec{Statuses: c.StatusMapping}, nil
	default:
		return nil, fmt.Errorf("column %q has unknown kind %d", c.Title, c.Kind)
	}
}

// validateColumnShape rejects malformed columns before they are persisted
func validateColumnShape(c *Column) error {
	if c.Title == "" {
		return util.NewInvalidArgumentErrorf("column title must not be empty")
	}
	if !IsColumnKindValid(c.Kind) {
		return util.NewInvalidArgumentErrorf("column kind %d is not valid", c.Kind)
	}
	if _, err := c.Spec(); err != nil {
		return util.NewInvalidArgumentErrorf("%v", err)
	}
	if c.WIPLimit < 0 {
		return util.NewInvalidArgumentErrorf("column %q has a negative WIP limit", c.Title)
	}
	seen := make(map[string]bool, len(c.ChecklistItems))
	for _, item := range c.ChecklistItems {
		if item.ID == "" {
			return util.NewInvalidArgumentErrorf("column %q has a checklist item without id", c.Title)
		}
		if seen[item.ID] {
			return util.NewInvalidArgumentErrorf("column %q has duplicate checklist item %q", c.Title, item.ID)
		}
		seen[item.ID] = true
		if !IsChecklistItemKindValid(item.Kind) {
			return util.NewInvalidArgumentErrorf("column %q checklist item %q has unknown kind %q", c.Title, item.ID, item.Kind)
		}
	}
	return nil
}

// ConfigWarning is a non-fatal problem found in a board configuration
type ConfigWarning struct {
	ColumnID int64
	Message  string
}

func (w ConfigWarning) String() string {
	return w.Message
}

// ValidateColumns checks a loaded board configuration. The returned error is a
// blocking configuration error requiring administrator action, warnings are
// surfaced but the board stays usable. Nothing is ever auto-corrected.
func ValidateColumns(b *Board, columns ColumnList) ([]ConfigWarning, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("board %q has no columns", b.Title)
	}

	var warnings []ConfigWarning
	for _, c := range columns {
		if c.BoardID != b.ID {
			return nil, fmt.Errorf("column %q does not belong to board %q", c.Title, b.Title)
		}
		if _, err := c.Spec(); err != nil {
			return nil, err
		}
	}

	if b.IsMaster {
		claimed := make(map[proposal.Status]*Column)
		hasMaster := false
		for _, c := range columns {
			if c.Kind != ColumnKindMasterStatus {
				continue
			}
			hasMaster = true
			for _, s := range c.StatusMapping {
				if first, ok := claimed[s]; ok {
					warnings = append(warnings, ConfigWarning{
						ColumnID: c.ID,
						Message:  fmt.Sprintf("status %q is claimed by both %q and %q", s, first.Title, c.Title),
					})
					continue
				}
				claimed[s] = c
			}
		}
		if !hasMaster {
			return nil, fmt.Errorf("master board %q has no master-status columns", b.Title)
		}
		for _, s := range []proposal.Status{
			proposal.StatusEvaluating, proposal.StatusDraft, proposal.StatusInProgress,
			proposal.StatusSubmitted, proposal.StatusWon, proposal.StatusLost, proposal.StatusArchived,
		} {
			if _, ok := claimed[s]; !ok {
				warnings = append(warnings, ConfigWarning{
					Message: fmt.Sprintf("status %q is claimed by no column, proposals fall back to the first column", s),
				})
			}
		}
		return warnings, nil
	}

	hasNonTerminal := false
	for _, c := range columns {
		if !c.IsTerminal {
			hasNonTerminal = true
			break
		}
	}
	if !hasNonTerminal {
		return nil, fmt.Errorf("board %q has only terminal columns, new proposals have no initial column", b.Title)
	}
	return warnings, nil
}

// InitialColumn returns the column new proposals are created in, the first
// non-terminal column by board order
func InitialColumn(columns ColumnList) *Column {
	for _, c := range columns {
		if !c.IsTerminal {
			return c
		}
	}
	return nil
}
