// Copyright 2025 The DealDesk Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package board

// ChecklistItemKind is the behavior class of a checklist item
type ChecklistItemKind string

const (
	// ChecklistItemSystemCheck is informational, it never blocks progression on its own
	ChecklistItemSystemCheck ChecklistItemKind = "system_check"
	ChecklistItemManualCheck ChecklistItemKind = "manual_check"
	ChecklistItemModal       ChecklistItemKind = "modal_trigger"
	ChecklistItemAI          ChecklistItemKind = "ai_trigger"
)

// IsChecklistItemKindValid checks if the checklist item kind is valid
func IsChecklistItemKindValid(k ChecklistItemKind) bool {
	switch k {
	case ChecklistItemSystemCheck, ChecklistItemManualCheck, ChecklistItemModal, ChecklistItemAI:
		return true
	default:
		return false
	}
}

// ChecklistItem is one entry of a column's checklist template
type ChecklistItem struct {
	ID       string            `json:"id"`
	Label    string            `json:"label"`
	Required bool              `json:"required"`
	Kind     ChecklistItemKind `json:"kind"`
}

// Blocking returns true if an incomplete item flags the proposal as action required
func (item ChecklistItem) Blocking() bool {
	return item.Required && item.Kind != ChecklistItemSystemCheck
}
