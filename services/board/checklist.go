// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

import (
	"fmt"
	"strings"

	board_model "code.dealdesk.io/dealdesk/models/board"
	proposal_model "code.dealdesk.io/dealdesk/models/proposal"
)

// IsActionRequired reports whether the proposal has outstanding required
// checklist items in the given column. System checks are informational and
// never block on their own.
func IsActionRequired(p *proposal_model.Proposal, column *board_model.Column) bool {
	return len(outstandingItems(p, column)) > 0
}

// ActionRequiredDescription names the outstanding required items, empty when
// nothing is outstanding
func ActionRequiredDescription(p *proposal_model.Proposal, column *board_model.Column) string {
	outstanding := outstandingItems(p, column)
	if len(outstanding) == 0 {
		return ""
	}
	labels := make([]string, 0, len(outstanding))
	for _, item := range outstanding {
		labels = append(labels, item.Label)
	}
	return fmt.Sprintf("%d required item(s) outstanding in %q: %s",
		len(outstanding), column.Title, strings.Join(labels, ", "))
}

func outstandingItems(p *proposal_model.Proposal, column *board_model.Column) []board_model.ChecklistItem {
	state := p.ColumnState(column.ID)
	var outstanding []board_model.ChecklistItem
	for _, item := range column.ChecklistItems {
		if !item.Blocking() {
			continue
		}
		if !state[item.ID].Completed {
			outstanding = append(outstanding, item)
		}
	}
	return outstanding
}

// applyChecklistOnEntry prepares the proposal's checklist state for entering a
// column: the destination gets an empty map only when it has none yet, state
// for every other column is left untouched so prior progress survives.
func applyChecklistOnEntry(p *proposal_model.Proposal, dest *board_model.Column) {
	p.EnsureColumnState(dest.ID)
	p.ActionRequired = IsActionRequired(p, dest)
	p.ActionRequiredDesc = ActionRequiredDescription(p, dest)
}
